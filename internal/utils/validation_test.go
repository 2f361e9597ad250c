package utils_test

import (
	"testing"
	"time"

	"hospital-management-server/internal/utils"
)

func TestValidDate(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"2026-09-15", true},
		{"2026-02-29", false},
		{"15-09-2026", false},
		{"2026-9-5", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := utils.ValidDate(tt.in); got != tt.want {
			t.Errorf("ValidDate(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestValidClockTime(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"09:30", true},
		{"23:59", true},
		{"24:00", false},
		{"9:30am", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := utils.ValidClockTime(tt.in); got != tt.want {
			t.Errorf("ValidClockTime(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestToday(t *testing.T) {
	got := utils.Today()
	if !utils.ValidDate(got) {
		t.Fatalf("Today() = %q is not a valid date", got)
	}
	if got != time.Now().Format("2006-01-02") {
		t.Errorf("Today() = %q does not match the current date", got)
	}
}

func TestValidate_StructTags(t *testing.T) {
	type payload struct {
		Phone string `validate:"required,len=10,numeric"`
	}

	if err := utils.Validate(payload{Phone: "9876543210"}); err != nil {
		t.Errorf("valid phone rejected: %v", err)
	}
	for _, phone := range []string{"", "12345", "98765432100", "98765abcde"} {
		if err := utils.Validate(payload{Phone: phone}); err == nil {
			t.Errorf("phone %q must fail validation", phone)
		}
	}
}
