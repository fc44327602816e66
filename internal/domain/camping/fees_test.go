package camping

import (
	"errors"
	"testing"
	"time"
)

func TestNights(t *testing.T) {
	tests := []struct {
		name      string
		arrival   time.Time
		departure time.Time
		want      int
		wantErr   bool
	}{
		{name: "one night", arrival: date(2019, time.May, 10), departure: date(2019, time.May, 11), want: 1},
		{name: "ten nights", arrival: date(2019, time.May, 10), departure: date(2019, time.May, 20), want: 10},
		{name: "month boundary", arrival: date(2019, time.May, 30), departure: date(2019, time.June, 2), want: 3},
		{name: "departure equals arrival", arrival: date(2019, time.May, 10), departure: date(2019, time.May, 10), wantErr: true},
		{name: "departure before arrival", arrival: date(2019, time.May, 11), departure: date(2019, time.May, 10), wantErr: true},
		{
			// times of day discarded, fractional day floors to zero nights
			name:      "same date different hours",
			arrival:   time.Date(2019, time.May, 10, 8, 0, 0, 0, time.UTC),
			departure: time.Date(2019, time.May, 10, 20, 0, 0, 0, time.UTC),
			wantErr:   true,
		},
		{
			name:      "partial extra day truncates",
			arrival:   time.Date(2019, time.May, 10, 20, 0, 0, 0, time.UTC),
			departure: time.Date(2019, time.May, 12, 8, 0, 0, 0, time.UTC),
			want:      2,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Nights(tt.arrival, tt.departure)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidRange) {
					t.Fatalf("Nights() error = %v, want ErrInvalidRange", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Nights() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Nights() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestCalculateFee(t *testing.T) {
	tests := []struct {
		name      string
		feeCents  int64
		arrival   time.Time
		departure time.Time
		want      int64
		wantErr   bool
	}{
		{name: "one night at 35.00", feeCents: 3500, arrival: date(2019, time.May, 10), departure: date(2019, time.May, 11), want: 3500},
		{name: "ten nights at 35.00", feeCents: 3500, arrival: date(2019, time.May, 10), departure: date(2019, time.May, 20), want: 35000},
		{name: "free campground", feeCents: 0, arrival: date(2019, time.May, 10), departure: date(2019, time.May, 12), want: 0},
		{name: "invalid range", feeCents: 3500, arrival: date(2019, time.May, 10), departure: date(2019, time.May, 10), wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CalculateFee(tt.feeCents, tt.arrival, tt.departure)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidRange) {
					t.Fatalf("CalculateFee() error = %v, want ErrInvalidRange", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("CalculateFee() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("CalculateFee() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestFormatCents(t *testing.T) {
	tests := []struct {
		cents int64
		want  string
	}{
		{3500, "$35.00"},
		{35000, "$350.00"},
		{5, "$0.05"},
		{0, "$0.00"},
		{-150, "-$1.50"},
	}
	for _, tt := range tests {
		if got := FormatCents(tt.cents); got != tt.want {
			t.Errorf("FormatCents(%d) = %q, want %q", tt.cents, got, tt.want)
		}
	}
}
