package utils

import (
	"errors"
	"fmt"
	"time"
)

// Формат времени, который ждет API создания записи
const InstantLayout = "2006-01-02T15:04:05.000Z"

var (
	ErrEmptyDate         = errors.New("date is required to combine date and time")
	ErrEmptyTime         = errors.New("time is required to combine date and time")
	ErrMalformedDateTime = errors.New("malformed date or time")
)

var clockLayouts = []string{"15:04", "15:04:05"}

var instantLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
}

// CombineDateTime собирает дату и время в локальной таймзоне (секунды = 0)
// и возвращает момент в UTC в формате InstantLayout.
func CombineDateTime(date, clock string, loc *time.Location) (string, error) {
	if date == "" {
		return "", ErrEmptyDate
	}
	if clock == "" {
		return "", ErrEmptyTime
	}
	if loc == nil {
		loc = time.Local
	}

	day, err := time.ParseInLocation("2006-01-02", date, loc)
	if err != nil {
		return "", fmt.Errorf("%w: date %q: %v", ErrMalformedDateTime, date, err)
	}

	var hm time.Time
	parsed := false
	for _, layout := range clockLayouts {
		if hm, err = time.Parse(layout, clock); err == nil {
			parsed = true
			break
		}
	}
	if !parsed {
		return "", fmt.Errorf("%w: time %q", ErrMalformedDateTime, clock)
	}

	local := time.Date(day.Year(), day.Month(), day.Day(), hm.Hour(), hm.Minute(), 0, 0, loc)
	return FormatInstant(local), nil
}

func FormatInstant(t time.Time) string {
	return t.UTC().Format(InstantLayout)
}

// ParseInstant парсит момент в RFC3339, если не удается, то дату со временем без таймзоны в loc
func ParseInstant(str string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	for _, layout := range instantLayouts {
		parsed, err := time.ParseInLocation(layout, str, loc)
		if err == nil {
			return parsed, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: instant %q", ErrMalformedDateTime, str)
}

// StartCurrentYear возвращает 1 января 00:00 года t в таймзоне t
func StartCurrentYear(t time.Time) time.Time {
	return time.Date(t.Year(), time.January, 1, 0, 0, 0, 0, t.Location())
}

func StartNextYear(t time.Time) time.Time {
	return StartCurrentYear(t).AddDate(1, 0, 0)
}
