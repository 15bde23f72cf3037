package dice

import "testing"

// fixedSource returns the queued values in order.
type fixedSource struct {
	values []int
}

func (f *fixedSource) Intn(n int) int {
	v := f.values[0]
	f.values = f.values[1:]
	return v % n
}

func TestRollUsesSource(t *testing.T) {
	r := NewRoller(&fixedSource{values: []int{2, 5}})
	got := r.Roll()
	if got != (Pair{Die1: 3, Die2: 6}) {
		t.Errorf("Roll() = %v, want 3+6", got)
	}
}

func TestRollRange(t *testing.T) {
	r := NewRoller(NewSource(42))
	seen := map[int]bool{}
	for i := 0; i < 1000; i++ {
		p := r.Roll()
		for _, d := range []int{p.Die1, p.Die2} {
			if d < 1 || d > Sides {
				t.Fatalf("die out of range: %d", d)
			}
			seen[d] = true
		}
	}
	if len(seen) != Sides {
		t.Errorf("expected every face to appear, saw %v", seen)
	}
}

func TestRollDeterministic(t *testing.T) {
	a := NewRoller(NewSource(7))
	b := NewRoller(NewSource(7))
	for i := 0; i < 20; i++ {
		if pa, pb := a.Roll(), b.Roll(); pa != pb {
			t.Fatalf("roll %d differs: %v vs %v", i, pa, pb)
		}
	}
}

func TestDecideExamples(t *testing.T) {
	tests := []struct {
		name   string
		pair   Pair
		skill  int
		target int
		want   Outcome
	}{
		{"double six beats any target", Pair{6, 6}, 0, 100, Success},
		{"double one fails any target", Pair{1, 1}, 50, 2, Failure},
		{"exact target", Pair{3, 4}, 5, 12, Success},
		{"one short", Pair{3, 4}, 4, 12, Failure},
		{"negative skill", Pair{5, 5}, -3, 8, Failure},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Decide(tt.pair, tt.skill, tt.target); got != tt.want {
				t.Errorf("Decide(%v, %d, %d) = %v, want %v", tt.pair, tt.skill, tt.target, got, tt.want)
			}
		})
	}
}

func TestDecideTable(t *testing.T) {
	for d1 := 1; d1 <= Sides; d1++ {
		for d2 := 1; d2 <= Sides; d2++ {
			p := Pair{d1, d2}
			for skill := -2; skill <= 8; skill++ {
				threshold := d1 + d2 + skill
				for _, target := range []int{threshold - 1, threshold, threshold + 1} {
					var want Outcome
					switch {
					case d1 == 6 && d2 == 6:
						want = Success
					case d1 == 1 && d2 == 1:
						want = Failure
					case target <= threshold:
						want = Success
					default:
						want = Failure
					}
					if got := Decide(p, skill, target); got != want {
						t.Errorf("Decide(%v, %d, %d) = %v, want %v", p, skill, target, got, want)
					}
				}
			}
		}
	}
}

func TestOutcomeText(t *testing.T) {
	for _, o := range []Outcome{Success, Failure} {
		b, err := o.MarshalText()
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		var back Outcome
		if err := back.UnmarshalText(b); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if back != o {
			t.Errorf("expected %v, got %v", o, back)
		}
	}
	var o Outcome
	if err := o.UnmarshalText([]byte("Maybe")); err == nil {
		t.Error("expected error for unknown outcome")
	}
}

func TestNewSeed(t *testing.T) {
	a, err := NewSeed()
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	b, _ := NewSeed()
	if a == b {
		t.Errorf("expected distinct seeds, got %d twice", a)
	}
}
