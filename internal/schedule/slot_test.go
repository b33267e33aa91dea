package schedule

import (
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	if _, err := ParseDate("2026-02-02", time.UTC); err != nil {
		t.Fatalf("ParseDate error: %v", err)
	}
	if _, err := ParseDate("02/02/2026", time.UTC); err != ErrInvalidDate {
		t.Fatalf("expected ErrInvalidDate, got %v", err)
	}
	if _, err := ParseDate("", time.UTC); err != ErrInvalidDate {
		t.Fatalf("expected ErrInvalidDate, got %v", err)
	}
}

func TestParseClock(t *testing.T) {
	if _, err := ParseClock("14:00"); err != nil {
		t.Fatalf("ParseClock error: %v", err)
	}
	if _, err := ParseClock("2pm"); err != ErrInvalidTime {
		t.Fatalf("expected ErrInvalidTime, got %v", err)
	}
	if _, err := ParseClock("25:00"); err != ErrInvalidTime {
		t.Fatalf("expected ErrInvalidTime, got %v", err)
	}
}

func TestIsDatePast(t *testing.T) {
	now := time.Date(2026, 2, 4, 10, 0, 0, 0, time.UTC)

	past, err := IsDatePast("2026-02-03", time.UTC, now)
	if err != nil {
		t.Fatalf("IsDatePast error: %v", err)
	}
	if !past {
		t.Fatalf("expected date to be past")
	}

	past, err = IsDatePast("2026-02-04", time.UTC, now)
	if err != nil {
		t.Fatalf("IsDatePast error: %v", err)
	}
	if past {
		t.Fatalf("expected today to be not past")
	}

	if _, err := IsDatePast("junk", time.UTC, now); err != ErrInvalidDate {
		t.Fatalf("expected ErrInvalidDate, got %v", err)
	}
}
