package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/text/unicode/norm"
)

func TestToBackendLabel(t *testing.T) {
	cases := map[string]string{
		"Completed":   "Hoàn thành",
		"Pending":     "Đang chờ xác nhận",
		"Scheduled":   "Đang chờ xác nhận",
		"Confirmed":   "Đã xác nhận",
		"In Progress": "Đang xử lý",
		"Cancelled":   "Hủy bỏ",
		"Checked-in":  "Đã xác nhận",
		"checked-in":  "Đã xác nhận",
	}
	for in, want := range cases {
		assert.Equal(t, want, ToBackendLabel(in), in)
	}
}

func TestToFrontendLabel(t *testing.T) {
	cases := map[string]string{
		"Hoàn thành":        "Completed",
		"Đang chờ xác nhận": "Pending",
		"Đã xác nhận":       "Confirmed",
		"Đang xử lý":        "In Progress",
		"Hủy bỏ":            "Cancelled",
	}
	for in, want := range cases {
		assert.Equal(t, want, ToFrontendLabel(in), in)
	}
}

func TestStatusRoundTripIsLossy(t *testing.T) {
	assert.Equal(t, ToBackendLabel("Pending"), ToBackendLabel("Scheduled"))
	assert.Equal(t, "Pending", ToFrontendLabel(ToBackendLabel("Scheduled")))
	assert.Equal(t, "Confirmed", ToFrontendLabel(ToBackendLabel("checked-in")))
}

func TestStatusIdentityFallback(t *testing.T) {
	assert.Equal(t, "unknown-status", ToBackendLabel("unknown-status"))
	assert.Equal(t, "unknown-status", ToFrontendLabel("unknown-status"))
	assert.Equal(t, "", ToBackendLabel(""))
	// Английский статус не переводится обратно в английский
	assert.Equal(t, "Completed", ToFrontendLabel("Completed"))
}

func TestToFrontendLabelDecomposedInput(t *testing.T) {
	decomposed := norm.NFD.String("Hủy bỏ")
	assert.NotEqual(t, "Hủy bỏ", decomposed)
	assert.Equal(t, "Cancelled", ToFrontendLabel(decomposed))

	unknown := norm.NFD.String("Đã hủy lịch")
	assert.Equal(t, unknown, ToFrontendLabel(unknown))
}

func TestStatusTranslationsAreCopies(t *testing.T) {
	forward, reverse := StatusTranslations()
	assert.Len(t, forward, 8)
	assert.Len(t, reverse, 5)

	forward["Completed"] = "changed"
	assert.Equal(t, "Hoàn thành", ToBackendLabel("Completed"))
}
