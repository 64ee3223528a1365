package domain

import (
	"golang.org/x/text/unicode/norm"
)

// Статусы, которые показывает фронтенд
type FrontendStatus string

const (
	FrontendStatusCompleted  FrontendStatus = "Completed"
	FrontendStatusPending    FrontendStatus = "Pending"
	FrontendStatusScheduled  FrontendStatus = "Scheduled"
	FrontendStatusConfirmed  FrontendStatus = "Confirmed"
	FrontendStatusInProgress FrontendStatus = "In Progress"
	FrontendStatusCancelled  FrontendStatus = "Cancelled"
	FrontendStatusCheckedIn  FrontendStatus = "Checked-in"
)

// Статусы, которые хранит бэкенд
type BackendStatus string

const (
	BackendStatusCompleted  BackendStatus = "Hoàn thành"
	BackendStatusPending    BackendStatus = "Đang chờ xác nhận"
	BackendStatusConfirmed  BackendStatus = "Đã xác nhận"
	BackendStatusInProgress BackendStatus = "Đang xử lý"
	BackendStatusCancelled  BackendStatus = "Hủy bỏ"
)

var frontendToBackend = map[string]BackendStatus{
	string(FrontendStatusCompleted):  BackendStatusCompleted,
	string(FrontendStatusPending):    BackendStatusPending,
	string(FrontendStatusScheduled):  BackendStatusPending,
	string(FrontendStatusConfirmed):  BackendStatusConfirmed,
	string(FrontendStatusInProgress): BackendStatusInProgress,
	string(FrontendStatusCancelled):  BackendStatusCancelled,
	string(FrontendStatusCheckedIn):  BackendStatusConfirmed,
	"checked-in":                     BackendStatusConfirmed,
}

var backendToFrontend = map[string]FrontendStatus{
	string(BackendStatusCompleted):  FrontendStatusCompleted,
	string(BackendStatusPending):    FrontendStatusPending,
	string(BackendStatusConfirmed):  FrontendStatusConfirmed,
	string(BackendStatusInProgress): FrontendStatusInProgress,
	string(BackendStatusCancelled):  FrontendStatusCancelled,
}

// ToBackendLabel переводит статус фронтенда в статус бэкенда.
// Неизвестный статус возвращается без изменений.
func ToBackendLabel(label string) string {
	if mapped, ok := frontendToBackend[norm.NFC.String(label)]; ok {
		return string(mapped)
	}
	return label
}

// ToFrontendLabel переводит статус бэкенда в статус фронтенда.
// Неизвестный статус возвращается без изменений.
func ToFrontendLabel(label string) string {
	if mapped, ok := backendToFrontend[norm.NFC.String(label)]; ok {
		return string(mapped)
	}
	return label
}

// StatusTranslations возвращает копию таблиц перевода
func StatusTranslations() (forward map[string]string, reverse map[string]string) {
	forward = make(map[string]string, len(frontendToBackend))
	for k, v := range frontendToBackend {
		forward[k] = string(v)
	}
	reverse = make(map[string]string, len(backendToFrontend))
	for k, v := range backendToFrontend {
		reverse[k] = string(v)
	}
	return forward, reverse
}
