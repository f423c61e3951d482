package formatting_test

import (
	"testing"
	"time"

	"github.com/campward/campward/pkg/formatting"
)

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func TestAgeAt(t *testing.T) {
	tests := []struct {
		name string
		dob  time.Time
		at   time.Time
		want int
	}{
		{"birthday already passed", date(2016, time.March, 10), date(2026, time.June, 15), 10},
		{"birthday later in year", date(2016, time.September, 1), date(2026, time.June, 15), 9},
		{"birthday is today", date(2016, time.June, 15), date(2026, time.June, 15), 10},
		{"birthday tomorrow", date(2016, time.June, 16), date(2026, time.June, 15), 9},
		{"zero dob", time.Time{}, date(2026, time.June, 15), 0},
		{"date before dob", date(2026, time.June, 15), date(2016, time.March, 10), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := formatting.AgeAt(tt.dob, tt.at); got != tt.want {
				t.Errorf("AgeAt(%v, %v) = %d, want %d", tt.dob, tt.at, got, tt.want)
			}
		})
	}
}
