// Package challenge resolves skill checks for dialogue options and passive
// checks against a player.
package challenge

import (
	"errors"
	"fmt"
	"io"
	"log"

	"github.com/rcliao/shadow-soldiers/internal/dice"
	"github.com/rcliao/shadow-soldiers/internal/model"
	"github.com/rcliao/shadow-soldiers/internal/player"
)

// ErrNoChallenge is returned for options that carry no skill check.
var ErrNoChallenge = errors.New("option has no challenge")

// Result records one resolved check.
type Result struct {
	Skill      string       `json:"skill"`
	SkillValue int          `json:"skill_value"`
	Target     int          `json:"target"`
	Dice       dice.Pair    `json:"dice"`
	Total      int          `json:"total"`
	Outcome    dice.Outcome `json:"outcome"`
}

// Success reports whether the check passed.
func (r Result) Success() bool { return r.Outcome == dice.Success }

// Resolver rolls checks. A nil Logger discards the roll trace.
type Resolver struct {
	Roller *dice.Roller
	Logger *log.Logger
}

// New returns a Resolver rolling from src.
func New(src dice.Source, logger *log.Logger) *Resolver {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Resolver{Roller: dice.NewRoller(src), Logger: logger}
}

// Resolve rolls the option's challenge. Options without both a challenge
// attribute and number return ErrNoChallenge; unknown skill names return
// player.ErrUnknownSkill.
func (r *Resolver) Resolve(p *player.Player, opt model.DialogueOption) (Result, error) {
	if !opt.IsChallenge() {
		return Result{}, ErrNoChallenge
	}
	return r.check(p, *opt.ChallengeAttribute, *opt.ChallengeNumber)
}

// Passive rolls a passive check with its target.
func (r *Resolver) Passive(p *player.Player, c model.PassiveCheck) (Result, error) {
	return r.check(p, c.Skill, c.Target)
}

func (r *Resolver) check(p *player.Player, skillName string, target int) (Result, error) {
	skill, err := player.ParseSkill(skillName)
	if err != nil {
		return Result{}, fmt.Errorf("resolve check: %w", err)
	}
	value := p.DerivedSkill(skill)
	pair := r.Roller.Roll()
	res := Result{
		Skill:      skill.String(),
		SkillValue: value,
		Target:     target,
		Dice:       pair,
		Total:      pair.Sum() + value,
		Outcome:    dice.Decide(pair, value, target),
	}
	r.logf("rolled %s, %s=%d, needed %d: %s", pair, res.Skill, value, target, res.Outcome)
	return res, nil
}

func (r *Resolver) logf(format string, args ...any) {
	if r.Logger != nil {
		r.Logger.Printf(format, args...)
	}
}
