package dateutil

import (
	"testing"
	"time"
)

func TestParse(t *testing.T) {
	t.Run("rfc3339_with_zulu", func(t *testing.T) {
		got, err := Parse("2024-03-15T10:30:00Z")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)
		if !got.Equal(want) {
			t.Errorf("expected %v, got %v", want, got)
		}
	})

	t.Run("rfc3339_with_offset", func(t *testing.T) {
		got, err := Parse("2024-03-15T10:30:00+05:00")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := time.Date(2024, 3, 15, 5, 30, 0, 0, time.UTC)
		if !got.Equal(want) {
			t.Errorf("expected %v, got %v", want, got)
		}
	})

	t.Run("timestamp_without_zone", func(t *testing.T) {
		got, err := Parse("2024-03-15T10:30:00")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.Year() != 2024 || got.Month() != 3 || got.Day() != 15 || got.Hour() != 10 {
			t.Errorf("unexpected parsed time: %v", got)
		}
	})

	t.Run("bare_date_is_midnight_utc", func(t *testing.T) {
		got, err := Parse("2024-03-15")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
		if !got.Equal(want) {
			t.Errorf("expected %v, got %v", want, got)
		}
	})

	t.Run("unparsable", func(t *testing.T) {
		if _, err := Parse("15/03/2024"); err == nil {
			t.Error("expected error for unsupported layout")
		}
	})
}

func TestParseOrNow(t *testing.T) {
	t.Run("valid_value", func(t *testing.T) {
		got := ParseOrNow("2024-03-15")
		want := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
		if !got.Equal(want) {
			t.Errorf("expected %v, got %v", want, got)
		}
	})

	t.Run("empty_defaults_to_now", func(t *testing.T) {
		before := time.Now().UTC()
		got := ParseOrNow("")
		after := time.Now().UTC()
		if got.Before(before) || got.After(after) {
			t.Errorf("expected a current timestamp, got %v", got)
		}
	})

	t.Run("unparsable_defaults_to_now", func(t *testing.T) {
		before := time.Now().UTC()
		got := ParseOrNow("not-a-date")
		after := time.Now().UTC()
		if got.Before(before) || got.After(after) {
			t.Errorf("expected a current timestamp, got %v", got)
		}
	})
}

func TestParseOptional(t *testing.T) {
	t.Run("valid_value", func(t *testing.T) {
		got := ParseOptional("2024-03-15T10:30:00Z")
		if got == nil {
			t.Fatal("expected non-nil time")
		}
		want := time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)
		if !got.Equal(want) {
			t.Errorf("expected %v, got %v", want, got)
		}
	})

	t.Run("empty_is_nil", func(t *testing.T) {
		if got := ParseOptional(""); got != nil {
			t.Errorf("expected nil, got %v", got)
		}
	})

	t.Run("unparsable_is_nil", func(t *testing.T) {
		if got := ParseOptional("garbage"); got != nil {
			t.Errorf("expected nil, got %v", got)
		}
	})
}
