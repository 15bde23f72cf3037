package player

import (
	"encoding/json"
	"errors"
	"reflect"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	p := New()
	for _, a := range Attributes() {
		if p.Attribute(a) != 1 {
			t.Errorf("expected %s at 1, got %d", a, p.Attribute(a))
		}
	}
	for _, s := range Skills() {
		if p.Modifier(s) != 0 {
			t.Errorf("expected zero modifier for %s", s)
		}
	}
	if p.RemainingPoints() != 8 {
		t.Errorf("expected 8 remaining points, got %d", p.RemainingPoints())
	}
	if p.IsValid() {
		t.Error("fresh player should not be valid")
	}
}

func TestIsValid(t *testing.T) {
	tests := []struct {
		name                 string
		tech, arts, bur, und int
		want                 bool
	}{
		{"even split", 3, 3, 3, 3, true},
		{"all max", 6, 6, 6, 6, false},
		{"lopsided but in range", 6, 4, 1, 1, true},
		{"zero attribute", 6, 6, 0, 0, false},
		{"over max", 7, 3, 1, 1, false},
		{"under budget", 2, 2, 2, 2, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := New()
			p.Tech, p.Arts, p.Bur, p.Und = tt.tech, tt.arts, tt.bur, tt.und
			if got := p.IsValid(); got != tt.want {
				t.Errorf("IsValid() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDerivedSkill(t *testing.T) {
	p := New()
	p.Tech, p.Arts, p.Bur, p.Und = 4, 2, 5, 1
	p.SetModifier(Rocketry, 2)
	p.SetModifier(Gizmo, -1)

	tests := []struct {
		skill Skill
		want  int
	}{
		{Checkmate, 4},
		{Rocketry, 6},
		{CivicEngineering, 4},
		{Quota, 5},
		{Dossier, 5},
		{Delusion, 2},
		{Arts4, 2},
		{Gizmo, 0},
		{OldtimeReligion, 1},
	}
	for _, tt := range tests {
		if got := p.DerivedSkill(tt.skill); got != tt.want {
			t.Errorf("DerivedSkill(%s) = %d, want %d", tt.skill, got, tt.want)
		}
	}
}

func TestSkillGroups(t *testing.T) {
	counts := map[Attribute]int{}
	for _, s := range Skills() {
		counts[s.Attribute()]++
	}
	for _, a := range Attributes() {
		if counts[a] != 4 {
			t.Errorf("expected 4 skills under %s, got %d", a, counts[a])
		}
	}
}

func TestParseSkill(t *testing.T) {
	tests := []struct {
		in   string
		want Skill
	}{
		{"checkmate", Checkmate},
		{"civic engineering", CivicEngineering},
		{"Civic_Engineering", CivicEngineering},
		{" oldtime religion ", OldtimeReligion},
		{"arts3", Arts3},
	}
	for _, tt := range tests {
		got, err := ParseSkill(tt.in)
		if err != nil {
			t.Errorf("ParseSkill(%q): %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseSkill(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}

	if _, err := ParseSkill("charisma"); !errors.Is(err, ErrUnknownSkill) {
		t.Errorf("expected ErrUnknownSkill, got %v", err)
	}
	p := New()
	if _, err := p.DerivedSkillByName("charisma"); !errors.Is(err, ErrUnknownSkill) {
		t.Errorf("expected ErrUnknownSkill from DerivedSkillByName, got %v", err)
	}
}

func TestParseAttribute(t *testing.T) {
	a, err := ParseAttribute("BUR")
	if err != nil || a != Bur {
		t.Errorf("ParseAttribute(BUR) = %v, %v", a, err)
	}
	if _, err := ParseAttribute("luck"); err == nil {
		t.Error("expected error for unknown attribute")
	}
}

func TestAddXP(t *testing.T) {
	tests := []struct {
		name       string
		start      int
		add        int
		wantXP     int
		wantPoints int
	}{
		{"multi level", 0, 250, 50, 2},
		{"below threshold", 0, 99, 99, 0},
		{"exact threshold", 0, 100, 0, 1},
		{"carry over", 80, 30, 10, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := New()
			p.XP = tt.start
			p.AddXP(tt.add)
			if p.XP != tt.wantXP || p.SkillPoints != tt.wantPoints {
				t.Errorf("got xp=%d points=%d, want xp=%d points=%d", p.XP, p.SkillPoints, tt.wantXP, tt.wantPoints)
			}
		})
	}
}

func TestSpendSkillPoint(t *testing.T) {
	p := New()
	if err := p.SpendSkillPoint(Quota); !errors.Is(err, ErrNoSkillPoints) {
		t.Fatalf("expected ErrNoSkillPoints, got %v", err)
	}
	p.AddXP(100)
	if err := p.SpendSkillPoint(Quota); err != nil {
		t.Fatalf("spend: %v", err)
	}
	if p.Modifier(Quota) != 1 || p.SkillPoints != 0 {
		t.Errorf("expected modifier 1 and no points, got %d and %d", p.Modifier(Quota), p.SkillPoints)
	}
}

func TestNarrativeState(t *testing.T) {
	p := New()
	if !p.MarkEntered("Start") {
		t.Error("first visit should report true")
	}
	if p.MarkEntered("Start") {
		t.Error("second visit should report false")
	}
	p.SetFlags("met_clerk", "saw_clock")
	p.AddItem("key")
	p.AddItem("key")

	if !p.HasFlag("met_clerk") || p.HasFlag("other") {
		t.Error("flag lookup wrong")
	}
	if !p.HasItem("key") || len(p.Items) != 2 {
		t.Errorf("expected duplicate items kept, got %v", p.Items)
	}
	if !reflect.DeepEqual(p.FlagList(), []string{"met_clerk", "saw_clock"}) {
		t.Errorf("unexpected flags: %v", p.FlagList())
	}
	if !reflect.DeepEqual(p.EnteredList(), []string{"Start"}) {
		t.Errorf("unexpected visits: %v", p.EnteredList())
	}
}

func TestPlayerJSON(t *testing.T) {
	p := New()
	p.Tech, p.Arts, p.Bur, p.Und = 3, 3, 3, 3
	p.SetModifier(CivicEngineering, 2)
	p.SetFlags("met_clerk")
	p.MarkEntered("Start")
	p.AddItem("ration card")

	b, err := json.Marshal(p)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var back Player
	if err := json.Unmarshal(b, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !reflect.DeepEqual(&back, p) {
		t.Errorf("player changed through JSON:\n%+v\n%+v", back, *p)
	}
	if !strings.Contains(string(b), `"civic engineering":2`) {
		t.Errorf("expected skill keyed by name, got %s", b)
	}
}

func TestPlayerJSONSets(t *testing.T) {
	p := New()
	p.SetFlags("saw_clock", "met_clerk")
	p.MarkEntered("Start")
	p.MarkEntered("Desk")

	b, err := json.Marshal(p)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	for _, want := range []string{
		`"flags":["met_clerk","saw_clock"]`,
		`"dialogues_entered":["Desk","Start"]`,
	} {
		if !strings.Contains(string(b), want) {
			t.Errorf("expected %s in %s", want, b)
		}
	}

	var back Player
	if err := json.Unmarshal([]byte(`{"tech":2,"flags":["a"]}`), &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if back.Tech != 2 || !back.HasFlag("a") {
		t.Errorf("unexpected player: %+v", back)
	}
	if back.Entered == nil || back.HasEntered("Start") {
		t.Errorf("expected empty visit set, got %v", back.Entered)
	}
}
