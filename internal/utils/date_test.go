package utils

import (
	"strings"
	"testing"
	"time"
)

func TestParseSinceDate(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		wantErr     bool
		errContains string
		checkFunc   func(t *testing.T, got time.Time)
	}{
		{
			name:  "valid relative format 7d",
			input: "7d",
			checkFunc: func(t *testing.T, got time.Time) {
				expected := time.Now().AddDate(0, 0, -7)
				// Allow 1 second tolerance for test execution time
				diff := expected.Sub(got)
				if diff > time.Second || diff < -time.Second {
					t.Errorf("expected time around %v, got %v", expected, got)
				}
			},
		},
		{
			name:  "valid absolute format",
			input: "2026-08-15",
			checkFunc: func(t *testing.T, got time.Time) {
				expected := time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC)
				if !got.Equal(expected) {
					t.Errorf("expected %v, got %v", expected, got)
				}
			},
		},
		{
			name:        "empty string",
			input:       "",
			wantErr:     true,
			errContains: "cannot be empty",
		},
		{
			name:        "invalid format - no number",
			input:       "d",
			wantErr:     true,
			errContains: "invalid relative date format",
		},
		{
			name:        "invalid format - wrong separator",
			input:       "2026/08/15",
			wantErr:     true,
			errContains: "invalid date format",
		},
		{
			name:        "negative days",
			input:       "-7d",
			wantErr:     true,
			errContains: "days cannot be negative",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseSinceDate(tt.input)

			if tt.wantErr {
				if err == nil {
					t.Errorf("ParseSinceDate() expected error, got nil")
					return
				}
				if tt.errContains != "" && !strings.Contains(err.Error(), tt.errContains) {
					t.Errorf("ParseSinceDate() error = %v, should contain %v", err, tt.errContains)
				}
				return
			}

			if err != nil {
				t.Errorf("ParseSinceDate() unexpected error = %v", err)
				return
			}

			if tt.checkFunc != nil {
				tt.checkFunc(t, got)
			}
		})
	}
}
