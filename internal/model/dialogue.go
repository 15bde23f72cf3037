// Package model defines the dialogue graph data types.
package model

import (
	"errors"
	"fmt"
	"sort"
)

const (
	// FallbackKey is the key of the single dialogue substituted for an unreadable graph.
	FallbackKey = "Default"
	// RootKey is the dialogue an option leads to when it names no target.
	RootKey = "Start"
	// DefaultDescription labels an option that has no description.
	DefaultDescription = "Continue"
)

var (
	ErrUnknownDialogue = errors.New("unknown dialogue")
	ErrDialogueExists  = errors.New("dialogue already exists")
)

// Dialogue is a node in the narrative graph.
type Dialogue struct {
	Speaker      string           `json:"speaker"`
	Intro        string           `json:"intro"`
	Options      []DialogueOption `json:"options"`
	PassiveCheck []PassiveCheck   `json:"passive_check"`
	XPReward     *int             `json:"xp_reward,omitempty"`
	IsHidden     bool             `json:"is_hidden"`
	Time         *int             `json:"time,omitempty"`
}

// DialogueOption is a single player-facing choice. Pointer fields are absent
// when nil; a pointer to "" is present but empty.
type DialogueOption struct {
	Description        string   `json:"description"`
	ChallengeAttribute *string  `json:"challenge_attribute,omitempty"`
	ChallengeNumber    *int     `json:"challenge_number,omitempty"`
	SuccessDialogue    *string  `json:"success_dialogue,omitempty"`
	FailureDialogue    *string  `json:"failure_dialogue,omitempty"`
	ItemToPickup       *string  `json:"item_to_pickup,omitempty"`
	VisibleWhen        *string  `json:"visible_when,omitempty"`
	Flags              []string `json:"flags,omitempty"`
}

// PassiveCheck is evaluated automatically when its dialogue is entered.
type PassiveCheck struct {
	Skill       string  `json:"skill"`
	Target      int     `json:"target"`
	SuccessText *string `json:"success_text,omitempty"`
	FailureText *string `json:"failure_text,omitempty"`
	Speaker     *string `json:"speaker,omitempty"`
}

// Str returns a pointer to s.
func Str(s string) *string { return &s }

// Int returns a pointer to n.
func Int(n int) *int { return &n }

// FallbackDialogue is used in place of a missing or unreadable graph, and
// supplies the speaker and intro for dialogues that lack them.
func FallbackDialogue() Dialogue {
	return Dialogue{
		Speaker:      "Error",
		Intro:        "No dialogue available.",
		Options:      []DialogueOption{DefaultOption()},
		PassiveCheck: []PassiveCheck{},
		IsHidden:     true,
		Time:         Int(1),
	}
}

// DefaultOption is an unconditional "Continue" back to the root dialogue.
func DefaultOption() DialogueOption {
	return DialogueOption{
		Description:     DefaultDescription,
		SuccessDialogue: Str(RootKey),
	}
}

// DefaultPassiveCheck is the blank check added by editors. It is not valid
// until a skill and speaker are filled in.
func DefaultPassiveCheck() PassiveCheck {
	return PassiveCheck{Target: 1}
}

// IsChallenge reports whether choosing the option requires a skill check.
func (o DialogueOption) IsChallenge() bool {
	return o.ChallengeAttribute != nil && o.ChallengeNumber != nil
}

// IsValid reports whether the check can be evaluated.
func (c PassiveCheck) IsValid() bool {
	return c.Skill != "" && c.Target > 0 && c.Speaker != nil
}

// Clone returns a deep copy of d.
func (d Dialogue) Clone() Dialogue {
	c := d
	c.XPReward = cloneInt(d.XPReward)
	c.Time = cloneInt(d.Time)
	if d.Options != nil {
		c.Options = make([]DialogueOption, len(d.Options))
		for i, o := range d.Options {
			c.Options[i] = o.Clone()
		}
	}
	if d.PassiveCheck != nil {
		c.PassiveCheck = make([]PassiveCheck, len(d.PassiveCheck))
		for i, pc := range d.PassiveCheck {
			c.PassiveCheck[i] = pc.Clone()
		}
	}
	return c
}

// Clone returns a deep copy of o.
func (o DialogueOption) Clone() DialogueOption {
	c := o
	c.ChallengeAttribute = cloneStr(o.ChallengeAttribute)
	c.ChallengeNumber = cloneInt(o.ChallengeNumber)
	c.SuccessDialogue = cloneStr(o.SuccessDialogue)
	c.FailureDialogue = cloneStr(o.FailureDialogue)
	c.ItemToPickup = cloneStr(o.ItemToPickup)
	c.VisibleWhen = cloneStr(o.VisibleWhen)
	if o.Flags != nil {
		c.Flags = append([]string(nil), o.Flags...)
	}
	return c
}

// Clone returns a deep copy of c.
func (c PassiveCheck) Clone() PassiveCheck {
	n := c
	n.SuccessText = cloneStr(c.SuccessText)
	n.FailureText = cloneStr(c.FailureText)
	n.Speaker = cloneStr(c.Speaker)
	return n
}

func cloneStr(p *string) *string {
	if p == nil {
		return nil
	}
	return Str(*p)
}

func cloneInt(p *int) *int {
	if p == nil {
		return nil
	}
	return Int(*p)
}

// Graph maps dialogue keys to dialogues.
type Graph map[string]Dialogue

// Keys returns every key in sorted order.
func (g Graph) Keys() []string {
	keys := make([]string, 0, len(g))
	for k := range g {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Listing returns the sorted keys of dialogues that are not hidden.
func (g Graph) Listing() []string {
	var keys []string
	for _, k := range g.Keys() {
		if !g[k].IsHidden {
			keys = append(keys, k)
		}
	}
	return keys
}

// Get returns the dialogue stored under key.
func (g Graph) Get(key string) (Dialogue, error) {
	d, ok := g[key]
	if !ok {
		return Dialogue{}, fmt.Errorf("%w: %q", ErrUnknownDialogue, key)
	}
	return d, nil
}

// NewDialogue inserts a placeholder dialogue under the next free
// "Dialogue_<n>" key and returns that key.
func (g Graph) NewDialogue() string {
	n := len(g) + 1
	key := fmt.Sprintf("Dialogue_%d", n)
	for {
		if _, taken := g[key]; !taken {
			break
		}
		n++
		key = fmt.Sprintf("Dialogue_%d", n)
	}
	g[key] = Dialogue{
		Speaker: "New Speaker",
		Intro:   "New Intro Text",
	}
	return key
}

// Delete removes a dialogue. Links pointing at it are left dangling.
func (g Graph) Delete(key string) error {
	if _, ok := g[key]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownDialogue, key)
	}
	delete(g, key)
	return nil
}

// Rename moves a dialogue to a new key and rewrites every option that
// pointed at the old key.
func (g Graph) Rename(from, to string) error {
	d, ok := g[from]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownDialogue, from)
	}
	if from == to {
		return nil
	}
	if _, taken := g[to]; taken {
		return fmt.Errorf("%w: %q", ErrDialogueExists, to)
	}
	delete(g, from)
	g[to] = d

	for k, dl := range g {
		changed := false
		for i := range dl.Options {
			o := &dl.Options[i]
			if o.SuccessDialogue != nil && *o.SuccessDialogue == from {
				o.SuccessDialogue = Str(to)
				changed = true
			}
			if o.FailureDialogue != nil && *o.FailureDialogue == from {
				o.FailureDialogue = Str(to)
				changed = true
			}
		}
		if changed {
			g[k] = dl
		}
	}
	return nil
}
