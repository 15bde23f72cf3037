package clock

import "testing"

func TestAdvance(t *testing.T) {
	tests := []struct {
		name    string
		start   Time
		minutes int
		want    Time
	}{
		{"hours and minutes", Time{1, 3, 30}, 125, Time{1, 5, 35}},
		{"one day", Time{1, 3, 30}, 1440, Time{2, 3, 30}},
		{"minute carry", Time{1, 3, 50}, 15, Time{1, 4, 5}},
		{"hour carry into next day", Time{1, 23, 30}, 45, Time{2, 0, 15}},
		{"hour overflow keeps remainder", Time{1, 20, 0}, 600, Time{2, 6, 0}},
		{"late night rolls past midnight", Time{1, 23, 0}, 120, Time{2, 1, 0}},
		{"days hours minutes", Time{3, 12, 0}, 2*1440 + 13*60 + 59, Time{6, 1, 59}},
		{"zero", Time{1, 3, 30}, 0, Time{1, 3, 30}},
		{"negative ignored", Time{1, 3, 30}, -90, Time{1, 3, 30}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.start
			got.Advance(tt.minutes)
			if got != tt.want {
				t.Errorf("Advance(%d) from %v = %v, want %v", tt.minutes, tt.start, got, tt.want)
			}
		})
	}
}

func TestAdvanceStaysNormalized(t *testing.T) {
	tm := Start()
	for i := 0; i < 5000; i++ {
		tm.Advance(i % 97)
		if tm.Hour < 0 || tm.Hour > 23 || tm.Minute < 0 || tm.Minute > 59 {
			t.Fatalf("clock out of range after step %d: %+v", i, tm)
		}
	}
}

func TestString(t *testing.T) {
	if got := Start().String(); got != "Day 1, 03:30" {
		t.Errorf("String() = %q", got)
	}
}
