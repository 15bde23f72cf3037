// Package player models the protagonist: base attributes, skill modifiers,
// experience and accumulated narrative state.
package player

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
)

const (
	// PointBudget is the attribute total a finished character must have.
	PointBudget  = 12
	MinAttribute = 1
	MaxAttribute = 6
	// XPPerPoint is the experience needed for one skill point.
	XPPerPoint   = 100
)

var ErrNoSkillPoints = errors.New("no skill points available")

// Player is the protagonist's state for one play session.
type Player struct {
	Tech        int             `json:"tech"`
	Arts        int             `json:"arts"`
	Bur         int             `json:"bur"`
	Und         int             `json:"und"`
	Mods        map[Skill]int   `json:"skills,omitempty"`
	Items       []string        `json:"items"`
	XP          int             `json:"xp"`
	SkillPoints int             `json:"skill_points"`
	Entered     map[string]bool `json:"dialogues_entered"`
	Flags       map[string]bool `json:"flags"`
}

// New returns a player with every attribute at the floor and no modifiers.
func New() *Player {
	return &Player{
		Tech:    MinAttribute,
		Arts:    MinAttribute,
		Bur:     MinAttribute,
		Und:     MinAttribute,
		Mods:    map[Skill]int{},
		Items:   []string{},
		Entered: map[string]bool{},
		Flags:   map[string]bool{},
	}
}

// Attribute returns the value of a base attribute.
func (p *Player) Attribute(a Attribute) int {
	switch a {
	case Tech:
		return p.Tech
	case Arts:
		return p.Arts
	case Bur:
		return p.Bur
	case Und:
		return p.Und
	}
	return 0
}

// SetAttribute sets a base attribute. Range and budget are checked by IsValid.
func (p *Player) SetAttribute(a Attribute, v int) error {
	switch a {
	case Tech:
		p.Tech = v
	case Arts:
		p.Arts = v
	case Bur:
		p.Bur = v
	case Und:
		p.Und = v
	default:
		return fmt.Errorf("unknown attribute %d", int(a))
	}
	return nil
}

// Modifier returns the per-skill modifier.
func (p *Player) Modifier(s Skill) int {
	return p.Mods[s]
}

// SetModifier sets the per-skill modifier.
func (p *Player) SetModifier(s Skill, v int) {
	if p.Mods == nil {
		p.Mods = map[Skill]int{}
	}
	p.Mods[s] = v
}

// DerivedSkill is the governing attribute plus the skill's modifier.
func (p *Player) DerivedSkill(s Skill) int {
	return p.Attribute(s.Attribute()) + p.Modifier(s)
}

// DerivedSkillByName resolves name and returns its derived value.
func (p *Player) DerivedSkillByName(name string) (int, error) {
	s, err := ParseSkill(name)
	if err != nil {
		return 0, err
	}
	return p.DerivedSkill(s), nil
}

func (p *Player) TotalPoints() int {
	return p.Tech + p.Arts + p.Bur + p.Und
}

// RemainingPoints is how many attribute points are left to allocate during
// character creation.
func (p *Player) RemainingPoints() int {
	return PointBudget - p.TotalPoints()
}

// IsValid reports whether character creation is complete: every attribute
// in range and the budget spent exactly.
func (p *Player) IsValid() bool {
	for _, a := range Attributes() {
		v := p.Attribute(a)
		if v < MinAttribute || v > MaxAttribute {
			return false
		}
	}
	return p.TotalPoints() == PointBudget
}

// AddXP adds experience, converting every full XPPerPoint into a skill point.
func (p *Player) AddXP(amount int) {
	p.XP += amount
	for p.XP >= XPPerPoint {
		p.XP -= XPPerPoint
		p.SkillPoints++
	}
}

// SpendSkillPoint raises a skill modifier by one.
func (p *Player) SpendSkillPoint(s Skill) error {
	if p.SkillPoints <= 0 {
		return ErrNoSkillPoints
	}
	p.SkillPoints--
	p.SetModifier(s, p.Modifier(s)+1)
	return nil
}

func (p *Player) AddItem(item string) {
	p.Items = append(p.Items, item)
}

func (p *Player) HasItem(item string) bool {
	for _, it := range p.Items {
		if it == item {
			return true
		}
	}
	return false
}

// SetFlags records narrative flags.
func (p *Player) SetFlags(flags ...string) {
	if p.Flags == nil {
		p.Flags = map[string]bool{}
	}
	for _, f := range flags {
		p.Flags[f] = true
	}
}

func (p *Player) HasFlag(flag string) bool {
	return p.Flags[flag]
}

// MarkEntered records a visit and reports whether it was the first.
func (p *Player) MarkEntered(key string) bool {
	if p.Entered == nil {
		p.Entered = map[string]bool{}
	}
	if p.Entered[key] {
		return false
	}
	p.Entered[key] = true
	return true
}

func (p *Player) HasEntered(key string) bool {
	return p.Entered[key]
}

// FlagList returns the set flags in sorted order.
func (p *Player) FlagList() []string {
	return sortedSet(p.Flags)
}

// EnteredList returns the visited dialogue keys in sorted order.
func (p *Player) EnteredList() []string {
	return sortedSet(p.Entered)
}

// MarshalJSON encodes visited dialogues and flags as sorted arrays.
func (p Player) MarshalJSON() ([]byte, error) {
	type plain Player
	return json.Marshal(struct {
		plain
		Entered []string `json:"dialogues_entered"`
		Flags   []string `json:"flags"`
	}{plain(p), p.EnteredList(), p.FlagList()})
}

func (p *Player) UnmarshalJSON(b []byte) error {
	type plain Player
	aux := struct {
		*plain
		Entered []string `json:"dialogues_entered"`
		Flags   []string `json:"flags"`
	}{plain: (*plain)(p)}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	p.Entered = setOf(aux.Entered)
	p.Flags = setOf(aux.Flags)
	return nil
}

func setOf(keys []string) map[string]bool {
	m := make(map[string]bool, len(keys))
	for _, k := range keys {
		m[k] = true
	}
	return m
}

func sortedSet(m map[string]bool) []string {
	out := make([]string, 0, len(m))
	for k, ok := range m {
		if ok {
			out = append(out, k)
		}
	}
	sort.Strings(out)
	return out
}
