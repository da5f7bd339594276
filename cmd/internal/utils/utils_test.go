package utils

import "testing"

func TestDateRoundTrip(t *testing.T) {
	tests := []string{"2024-03-01", "2024-02-29", "1999-12-31"}
	for _, iso := range tests {
		millis, err := ParseDate(iso)
		if err != nil {
			t.Fatalf("ParseDate(%q) failed: %v", iso, err)
		}
		if got := FormatDate(millis); got != iso {
			t.Errorf("Round trip of %q gave %q", iso, got)
		}
	}
}

func TestParseDateRejectsOtherFormats(t *testing.T) {
	bad := []string{"01/03/2024", "2024-3-1", "2024-13-01", "yesterday", "2024-02-30"}
	for _, s := range bad {
		if _, err := ParseDate(s); err == nil {
			t.Errorf("ParseDate(%q) should fail", s)
		}
	}
}

func TestDaysBetween(t *testing.T) {
	tests := []struct {
		from, to string
		want     int
	}{
		{"2024-01-10", "2024-03-01", 51},
		{"2024-03-01", "2024-03-01", 0},
		{"2024-03-02", "2024-03-01", -1},
	}
	for _, tt := range tests {
		from, _ := ParseDate(tt.from)
		to, _ := ParseDate(tt.to)
		if got := DaysBetween(from, to); got != tt.want {
			t.Errorf("DaysBetween(%s, %s) = %d, want %d", tt.from, tt.to, got, tt.want)
		}
	}
}

func TestSanitizeTrimsStringFields(t *testing.T) {
	type form struct {
		Name  string
		Notes string
	}
	f := &form{Name: "  A  ", Notes: "\tkeep inner  spaces\n"}
	Sanitize(f)
	if f.Name != "A" || f.Notes != "keep inner  spaces" {
		t.Errorf("Sanitize result: %+v", f)
	}
}
