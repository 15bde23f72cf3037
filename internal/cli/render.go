package cli

import (
	"fmt"
	"io"

	"github.com/rcliao/shadow-soldiers/internal/engine"
	"github.com/rcliao/shadow-soldiers/internal/model"
)

func renderDialogue(w io.Writer, key string, d model.Dialogue) {
	fmt.Fprintf(w, "[%s]\n%s: %s\n", key, d.Speaker, d.Intro)
	for i, o := range d.Options {
		fmt.Fprintf(w, "  %d. %s%s\n", i, o.Description, challengeSuffix(o))
	}
}

func renderEntry(w io.Writer, e *engine.Entry) {
	fmt.Fprintf(w, "\n%s: %s\n", e.Speaker, e.Intro)
	for _, p := range e.Passive {
		if p.Text == "" {
			continue
		}
		fmt.Fprintf(w, "  %s [%s %s]: %s\n", p.Speaker, p.Result.Skill, p.Result.Outcome, p.Text)
	}
	if e.XPGained > 0 {
		fmt.Fprintf(w, "  +%d XP\n", e.XPGained)
	}
}

func renderOptions(w io.Writer, opts []engine.VisibleOption) {
	for _, vo := range opts {
		fmt.Fprintf(w, "  %d. %s%s\n", vo.Index, vo.Option.Description, challengeSuffix(vo.Option))
	}
}

func renderChoice(w io.Writer, c *engine.Choice) {
	if r := c.Challenge; r != nil {
		fmt.Fprintf(w, "[%s %d vs %d: %s, rolled %s]\n", r.Skill, r.SkillValue, r.Target, r.Outcome, r.Dice)
	}
	if c.Item != "" {
		fmt.Fprintf(w, "Picked up %s.\n", c.Item)
	}
	if !c.Moved {
		fmt.Fprintln(w, "Nothing happens.")
	}
}

func challengeSuffix(o model.DialogueOption) string {
	if !o.IsChallenge() {
		return ""
	}
	return fmt.Sprintf(" [%s %d]", *o.ChallengeAttribute, *o.ChallengeNumber)
}
