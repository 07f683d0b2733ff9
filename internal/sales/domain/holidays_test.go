package domain

import (
	"testing"
	"time"
)

func TestHolidayCalendarSpain(t *testing.T) {
	calendar, err := NewHolidayCalendar("ES")
	if err != nil {
		t.Fatalf("Failed to build calendar: %v", err)
	}

	newYear := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	if !calendar.IsHoliday(newYear) {
		t.Error("Expected Jan 1 to be a holiday in Spain")
	}

	ordinary := time.Date(2025, 3, 4, 0, 0, 0, 0, time.UTC)
	if calendar.IsHoliday(ordinary) {
		t.Error("Expected Mar 4 to be an ordinary day")
	}
}

func TestHolidayCalendarDefaultRegion(t *testing.T) {
	if _, err := NewHolidayCalendar(""); err != nil {
		t.Errorf("Expected empty region to default to ES, got error: %v", err)
	}
}

func TestHolidayCalendarUnknownRegion(t *testing.T) {
	if _, err := NewHolidayCalendar("XX"); err == nil {
		t.Error("Expected error for unknown region")
	}
}

func TestHolidayCalendarMemoizesYears(t *testing.T) {
	calendar, err := NewHolidayCalendar("ES")
	if err != nil {
		t.Fatalf("Failed to build calendar: %v", err)
	}

	date := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	first := calendar.IsHoliday(date)
	second := calendar.IsHoliday(date)
	if first != second {
		t.Error("Expected memoized answer to be stable")
	}
	if len(calendar.years) != 1 {
		t.Errorf("Expected exactly one memoized year, got %d", len(calendar.years))
	}
}
