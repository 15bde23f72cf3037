package model

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	ErrUnknownField = errors.New("unknown field")
	ErrOptionIndex  = errors.New("index out of range")
	ErrInvalidCheck = errors.New("invalid passive check")
)

// Edit is a single change to a dialogue produced by an editor front end.
type Edit interface {
	apply(d *Dialogue) error
}

// SetField sets a top-level dialogue field: speaker, intro, xp_reward,
// is_hidden or time. Clear removes an optional field.
type SetField struct {
	Field string
	Value string
	Clear bool
}

// SetOptionField sets a field of the option at Index. Flags are given as a
// comma-separated list.
type SetOptionField struct {
	Index int
	Field string
	Value string
	Clear bool
}

// AddOption appends an option. A zero Option appends DefaultOption.
type AddOption struct {
	Option *DialogueOption
}

// RemoveOption deletes the option at Index.
type RemoveOption struct {
	Index int
}

// AddPassiveCheck appends a passive check. The check must be valid.
type AddPassiveCheck struct {
	Check PassiveCheck
}

// RemovePassiveCheck deletes the passive check at Index.
type RemovePassiveCheck struct {
	Index int
}

// SetCheckField sets a field of the passive check at Index: skill, target,
// success_text, failure_text or speaker.
type SetCheckField struct {
	Index int
	Field string
	Value string
	Clear bool
}

// Apply runs the edits against a copy of the dialogue under key, fills
// defaults, stores the result and returns it. On error the graph is left
// unchanged.
func (g Graph) Apply(key string, edits ...Edit) (Dialogue, error) {
	cur, err := g.Get(key)
	if err != nil {
		return Dialogue{}, err
	}
	d := cur.Clone()
	for _, e := range edits {
		if err := e.apply(&d); err != nil {
			return Dialogue{}, fmt.Errorf("edit %s: %w", key, err)
		}
	}
	if dropped := d.FillDefaults(); len(dropped) > 0 {
		return Dialogue{}, fmt.Errorf("edit %s: %w: %d check(s) need a skill, a positive target and a speaker",
			key, ErrInvalidCheck, len(dropped))
	}
	g[key] = d
	return d.Clone(), nil
}

func (e SetField) apply(d *Dialogue) error {
	switch e.Field {
	case "speaker":
		d.Speaker = e.Value
	case "intro":
		d.Intro = e.Value
	case "is_hidden":
		if e.Clear {
			d.IsHidden = false
			return nil
		}
		b, err := strconv.ParseBool(e.Value)
		if err != nil {
			return fmt.Errorf("is_hidden: %w", err)
		}
		d.IsHidden = b
	case "xp_reward":
		return setOptInt(&d.XPReward, e.Field, e.Value, e.Clear)
	case "time":
		return setOptInt(&d.Time, e.Field, e.Value, e.Clear)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownField, e.Field)
	}
	return nil
}

func (e SetOptionField) apply(d *Dialogue) error {
	if e.Index < 0 || e.Index >= len(d.Options) {
		return fmt.Errorf("option %d: %w", e.Index, ErrOptionIndex)
	}
	o := &d.Options[e.Index]
	switch e.Field {
	case "description":
		o.Description = e.Value
	case "challenge_attribute":
		setOptStr(&o.ChallengeAttribute, e.Value, e.Clear)
	case "challenge_number":
		return setOptInt(&o.ChallengeNumber, e.Field, e.Value, e.Clear)
	case "success_dialogue":
		setOptStr(&o.SuccessDialogue, e.Value, e.Clear)
	case "failure_dialogue":
		setOptStr(&o.FailureDialogue, e.Value, e.Clear)
	case "item_to_pickup":
		setOptStr(&o.ItemToPickup, e.Value, e.Clear)
	case "visible_when":
		setOptStr(&o.VisibleWhen, e.Value, e.Clear)
	case "flags":
		if e.Clear {
			o.Flags = nil
			return nil
		}
		o.Flags = splitList(e.Value)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownField, e.Field)
	}
	return nil
}

func (e AddOption) apply(d *Dialogue) error {
	if e.Option == nil {
		d.Options = append(d.Options, DefaultOption())
		return nil
	}
	d.Options = append(d.Options, e.Option.Clone())
	return nil
}

func (e RemoveOption) apply(d *Dialogue) error {
	if e.Index < 0 || e.Index >= len(d.Options) {
		return fmt.Errorf("option %d: %w", e.Index, ErrOptionIndex)
	}
	d.Options = append(d.Options[:e.Index], d.Options[e.Index+1:]...)
	return nil
}

func (e AddPassiveCheck) apply(d *Dialogue) error {
	if !e.Check.IsValid() {
		return fmt.Errorf("%w: skill=%q target=%d", ErrInvalidCheck, e.Check.Skill, e.Check.Target)
	}
	d.PassiveCheck = append(d.PassiveCheck, e.Check.Clone())
	return nil
}

func (e RemovePassiveCheck) apply(d *Dialogue) error {
	if e.Index < 0 || e.Index >= len(d.PassiveCheck) {
		return fmt.Errorf("passive check %d: %w", e.Index, ErrOptionIndex)
	}
	d.PassiveCheck = append(d.PassiveCheck[:e.Index], d.PassiveCheck[e.Index+1:]...)
	return nil
}

func (e SetCheckField) apply(d *Dialogue) error {
	if e.Index < 0 || e.Index >= len(d.PassiveCheck) {
		return fmt.Errorf("passive check %d: %w", e.Index, ErrOptionIndex)
	}
	c := &d.PassiveCheck[e.Index]
	switch e.Field {
	case "skill":
		c.Skill = e.Value
	case "target":
		n, err := strconv.Atoi(e.Value)
		if err != nil {
			return fmt.Errorf("target: %w", err)
		}
		c.Target = n
	case "success_text":
		setOptStr(&c.SuccessText, e.Value, e.Clear)
	case "failure_text":
		setOptStr(&c.FailureText, e.Value, e.Clear)
	case "speaker":
		setOptStr(&c.Speaker, e.Value, e.Clear)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownField, e.Field)
	}
	return nil
}

func setOptStr(dst **string, v string, clear bool) {
	if clear {
		*dst = nil
		return
	}
	*dst = Str(v)
}

func setOptInt(dst **int, field, v string, clear bool) error {
	if clear {
		*dst = nil
		return nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return fmt.Errorf("%s: %w", field, err)
	}
	*dst = Int(n)
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}
