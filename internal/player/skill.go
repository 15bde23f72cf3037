package player

import (
	"errors"
	"fmt"
	"strings"
)

var ErrUnknownSkill = errors.New("unknown skill")

// Attribute is one of the four base stats.
type Attribute int

const (
	Tech Attribute = iota
	Arts
	Bur // bureaucracy
	Und // underworld
	numAttributes
)

var attributeNames = [numAttributes]string{"tech", "arts", "bur", "und"}

func (a Attribute) String() string {
	if a < 0 || a >= numAttributes {
		return fmt.Sprintf("Attribute(%d)", int(a))
	}
	return attributeNames[a]
}

// Attributes lists every base attribute in order.
func Attributes() []Attribute {
	return []Attribute{Tech, Arts, Bur, Und}
}

// ParseAttribute resolves an attribute name.
func ParseAttribute(name string) (Attribute, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	for i, s := range attributeNames {
		if s == n {
			return Attribute(i), nil
		}
	}
	return 0, fmt.Errorf("unknown attribute %q", name)
}

// Skill is a fine-grained competency governed by one attribute.
type Skill int

const (
	Checkmate Skill = iota
	Rocketry
	Pathology
	CivicEngineering
	Apparatchik
	Quota
	Robot
	Dossier
	Delusion
	Arts2
	Arts3
	Arts4
	Gunsmoke
	Prohibition
	Gizmo
	OldtimeReligion
	numSkills
)

var skills = [numSkills]struct {
	name string
	attr Attribute
}{
	Checkmate:        {"checkmate", Tech},
	Rocketry:         {"rocketry", Tech},
	Pathology:        {"pathology", Tech},
	CivicEngineering: {"civic engineering", Tech},
	Apparatchik:      {"apparatchik", Bur},
	Quota:            {"quota", Bur},
	Robot:            {"robot", Bur},
	Dossier:          {"dossier", Bur},
	Delusion:         {"delusion", Arts},
	Arts2:            {"arts2", Arts},
	Arts3:            {"arts3", Arts},
	Arts4:            {"arts4", Arts},
	Gunsmoke:         {"gunsmoke", Und},
	Prohibition:      {"prohibition", Und},
	Gizmo:            {"gizmo", Und},
	OldtimeReligion:  {"oldtime religion", Und},
}

// Skills lists every skill in declaration order.
func Skills() []Skill {
	out := make([]Skill, numSkills)
	for i := range out {
		out[i] = Skill(i)
	}
	return out
}

func (s Skill) valid() bool { return s >= 0 && s < numSkills }

func (s Skill) String() string {
	if !s.valid() {
		return fmt.Sprintf("Skill(%d)", int(s))
	}
	return skills[s].name
}

// Attribute returns the base attribute that governs s.
func (s Skill) Attribute() Attribute {
	return skills[s].attr
}

// ParseSkill resolves a skill name as written in dialogue files. Matching
// ignores case and treats underscores as spaces.
func ParseSkill(name string) (Skill, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	n = strings.ReplaceAll(n, "_", " ")
	for i, s := range skills {
		if s.name == n {
			return Skill(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownSkill, name)
}

// MarshalText encodes the skill as its name.
func (s Skill) MarshalText() ([]byte, error) {
	if !s.valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownSkill, int(s))
	}
	return []byte(s.String()), nil
}

// UnmarshalText decodes a skill name.
func (s *Skill) UnmarshalText(b []byte) error {
	v, err := ParseSkill(string(b))
	if err != nil {
		return err
	}
	*s = v
	return nil
}
