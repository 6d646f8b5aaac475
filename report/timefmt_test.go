package report

import "testing"

func TestNormalizeTimeDisplay(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"[08:00 ~ 12:30]", "08:00~12:30"},
		{"08:00 ~ 12:30", "08:00~12:30"},
		{"[09:15]", "09:15"},
		{"10:00~11:00", "10:00~11:00"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := NormalizeTimeDisplay(tt.in); got != tt.want {
			t.Errorf("NormalizeTimeDisplay(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatTimeRange(t *testing.T) {
	tests := []struct {
		name, first, last, want string
	}{
		{"both different", "08-00", "12-30", "08:00~12:30"},
		{"both equal", "08-00", "08-00", "08:00"},
		{"first only", "09-45", "", "09:45"},
		{"last only", "", "11:20", "11:20"},
		{"none", "", "", ""},
		{"already colon", "08:00", "09:00", "08:00~09:00"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatTimeRange(tt.first, tt.last); got != tt.want {
				t.Errorf("FormatTimeRange(%q, %q) = %q, want %q", tt.first, tt.last, got, tt.want)
			}
		})
	}
}

func TestClockDisplay(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"08-05", "08:05"},
		{"8-05", "8-05"},
		{"ab-cd", "ab-cd"},
		{"12:00", "12:00"},
	}
	for _, tt := range tests {
		if got := ClockDisplay(tt.in); got != tt.want {
			t.Errorf("ClockDisplay(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatISOTime(t *testing.T) {
	tests := []struct {
		name, in, want string
	}{
		{"utc", "2025-01-07T08:00:00Z", "01-07 08:00"},
		{"offset kept", "2025-01-07T23:30:00+08:00", "01-07 23:30"},
		{"naive", "2025-03-15T06:05:00", "03-15 06:05"},
		{"fraction", "2025-03-15T06:05:00.123456", "03-15 06:05"},
		{"minutes only", "2025-12-31T23:59", "12-31 23:59"},
		{"compact offset", "2025-01-07T23:30:00+0800", "01-07 23:30"},
		{"compact offset fraction", "2025-01-07T23:30:00.5-0500", "01-07 23:30"},
		{"minutes with offset", "2025-01-07T23:30+08:00", "01-07 23:30"},
		{"minutes compact offset", "2025-01-07T23:30+0800", "01-07 23:30"},
		{"no time part", "2025-01-07", "2025-01-07"},
		{"garbage with T", "Tomorrow", "Tomorrow"},
		{"rfc1123", "Tue, 07 Jan 2025 08:00:00 GMT", "Tue, 07 Jan 2025 08:00:00 GMT"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatISOTime(tt.in); got != tt.want {
				t.Errorf("FormatISOTime(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
