package domain_test

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/kudipay/kudipay/internal/domain"
)

func TestMinorToMajor(t *testing.T) {
	tests := []struct {
		name  string
		minor int64
		want  string
	}{
		{name: "whole naira", minor: 500000, want: "5000"},
		{name: "with kobo", minor: 150050, want: "1500.5"},
		{name: "one kobo", minor: 1, want: "0.01"},
		{name: "zero", minor: 0, want: "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := domain.MinorToMajor(tt.minor)
			if got.String() != tt.want {
				t.Errorf("MinorToMajor(%d) = %s, want %s", tt.minor, got.String(), tt.want)
			}
		})
	}
}

func TestMajorToMinor(t *testing.T) {
	tests := []struct {
		name        string
		major       string
		want        int64
		expectError bool
	}{
		{name: "whole naira", major: "5000", want: 500000},
		{name: "with kobo", major: "1500.50", want: 150050},
		{name: "sub-kobo precision rejected", major: "10.005", expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := domain.MajorToMinor(decimal.RequireFromString(tt.major))
			if tt.expectError {
				if !errors.Is(err, domain.ErrInvalidAmount) {
					t.Errorf("expected ErrInvalidAmount, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("MajorToMinor(%s) = %d, want %d", tt.major, got, tt.want)
			}
		})
	}
}

func TestMoneyRoundTrip(t *testing.T) {
	// No value drifts through repeated conversion in either direction.
	for _, minor := range []int64{1, 99, 100, 150050, 1_000_000_000} {
		major := domain.MinorToMajor(minor)
		back, err := domain.MajorToMinor(major)
		if err != nil {
			t.Fatalf("round trip of %d failed: %v", minor, err)
		}
		if back != minor {
			t.Errorf("round trip of %d produced %d", minor, back)
		}
	}
}
