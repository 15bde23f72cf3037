// Package engine drives a play session through a dialogue graph: entering
// dialogues, applying their side effects and following the options the
// player chooses.
package engine

import (
	"errors"
	"fmt"
	"io"
	"log"

	"github.com/rcliao/shadow-soldiers/internal/challenge"
	"github.com/rcliao/shadow-soldiers/internal/clock"
	"github.com/rcliao/shadow-soldiers/internal/model"
	"github.com/rcliao/shadow-soldiers/internal/player"
)

var (
	ErrNoSuchOption = errors.New("no such option")
	ErrOptionHidden = errors.New("option not visible")
	ErrNotStarted   = errors.New("session has not entered a dialogue")
)

// State is the persistent part of a session.
type State struct {
	Current string         `json:"current"`
	Player  *player.Player `json:"player"`
	Time    clock.Time     `json:"time"`
}

// Session is one playthrough. It is not safe for concurrent use.
type Session struct {
	Graph    model.Graph
	Player   *player.Player
	Time     clock.Time
	Current  string
	Resolver *challenge.Resolver
	Logger   *log.Logger
}

// New returns a session for p that has not yet entered any dialogue.
func New(g model.Graph, p *player.Player, r *challenge.Resolver, logger *log.Logger) *Session {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Session{
		Graph:    g,
		Player:   p,
		Time:     clock.Start(),
		Resolver: r,
		Logger:   logger,
	}
}

// Resume restores a session from saved state.
func Resume(g model.Graph, st State, r *challenge.Resolver, logger *log.Logger) (*Session, error) {
	if _, err := g.Get(st.Current); err != nil {
		return nil, fmt.Errorf("resume session: %w", err)
	}
	p := st.Player
	if p == nil {
		p = player.New()
	}
	s := New(g, p, r, logger)
	s.Time = st.Time
	s.Current = st.Current
	return s, nil
}

// State returns the persistent part of the session.
func (s *Session) State() State {
	return State{Current: s.Current, Player: s.Player, Time: s.Time}
}

// PassiveOutcome is one passive check evaluated on entry.
type PassiveOutcome struct {
	Index   int              `json:"index"`
	Speaker string           `json:"speaker"`
	Text    string           `json:"text,omitempty"`
	Result  challenge.Result `json:"result"`
}

// Entry describes what happened when a dialogue was entered.
type Entry struct {
	Key        string           `json:"key"`
	Speaker    string           `json:"speaker"`
	Intro      string           `json:"intro"`
	FirstVisit bool             `json:"first_visit"`
	XPGained   int              `json:"xp_gained,omitempty"`
	Minutes    int              `json:"minutes,omitempty"`
	Passive    []PassiveOutcome `json:"passive,omitempty"`
}

// Enter makes key the current dialogue. The visit is recorded, the XP reward
// is granted on the first visit only, the clock advances by the dialogue's
// time, and passive checks are rolled. Passive checks never change the
// current dialogue.
func (s *Session) Enter(key string) (*Entry, error) {
	d, err := s.Graph.Get(key)
	if err != nil {
		return nil, fmt.Errorf("enter: %w", err)
	}

	e := &Entry{
		Key:        key,
		Speaker:    d.Speaker,
		Intro:      d.Intro,
		FirstVisit: s.Player.MarkEntered(key),
	}
	if e.FirstVisit && d.XPReward != nil {
		s.Player.AddXP(*d.XPReward)
		e.XPGained = *d.XPReward
	}
	if d.Time != nil && *d.Time > 0 {
		s.Time.Advance(*d.Time)
		e.Minutes = *d.Time
	}

	for i, pc := range d.PassiveCheck {
		res, err := s.Resolver.Passive(s.Player, pc)
		if err != nil {
			s.Logger.Printf("dialogue %q: skipping passive check %d: %v", key, i, err)
			continue
		}
		out := PassiveOutcome{Index: i, Result: res}
		if pc.Speaker != nil {
			out.Speaker = *pc.Speaker
		}
		text := pc.FailureText
		if res.Success() {
			text = pc.SuccessText
		}
		if text != nil {
			out.Text = *text
		}
		e.Passive = append(e.Passive, out)
	}

	s.Current = key
	return e, nil
}

// VisibleOption is an option the player may currently choose.
type VisibleOption struct {
	Index  int                  `json:"index"`
	Option model.DialogueOption `json:"option"`
}

// Options returns the current dialogue's options whose visible_when holds.
func (s *Session) Options() ([]VisibleOption, error) {
	d, err := s.current()
	if err != nil {
		return nil, err
	}
	var out []VisibleOption
	for i, o := range d.Options {
		if o.VisibleWhen == nil || Visible(*o.VisibleWhen, s.Player) {
			out = append(out, VisibleOption{Index: i, Option: o})
		}
	}
	return out, nil
}

// Choice describes the result of choosing an option.
type Choice struct {
	Option    int               `json:"option"`
	Challenge *challenge.Result `json:"challenge,omitempty"`
	Item      string            `json:"item,omitempty"`
	Flags     []string          `json:"flags,omitempty"`
	Next      string            `json:"next"`
	Moved     bool              `json:"moved"`
	Entry     *Entry            `json:"entry,omitempty"`
}

// Choose selects the option at index of the current dialogue. A challenge is
// rolled first; then the option's flags and item are granted, and the session
// follows the success or failure target. A failed challenge without a failure
// target stays on the current dialogue. Nothing changes if an error is
// returned.
func (s *Session) Choose(index int) (*Choice, error) {
	d, err := s.current()
	if err != nil {
		return nil, err
	}
	if index < 0 || index >= len(d.Options) {
		return nil, fmt.Errorf("choose %d in %q: %w", index, s.Current, ErrNoSuchOption)
	}
	opt := d.Options[index]
	if opt.VisibleWhen != nil && !Visible(*opt.VisibleWhen, s.Player) {
		return nil, fmt.Errorf("choose %d in %q: %w", index, s.Current, ErrOptionHidden)
	}

	c := &Choice{Option: index}
	success := true
	if opt.IsChallenge() {
		res, err := s.Resolver.Resolve(s.Player, opt)
		if err != nil {
			return nil, fmt.Errorf("choose %d in %q: %w", index, s.Current, err)
		}
		c.Challenge = &res
		success = res.Success()
	}

	var target *string
	if success {
		target = opt.SuccessDialogue
		if target == nil {
			target = model.Str(model.RootKey)
		}
	} else {
		target = opt.FailureDialogue
	}
	if target != nil {
		if _, err := s.Graph.Get(*target); err != nil {
			return nil, fmt.Errorf("choose %d in %q: %w", index, s.Current, err)
		}
	}

	if len(opt.Flags) > 0 {
		s.Player.SetFlags(opt.Flags...)
		c.Flags = append([]string(nil), opt.Flags...)
	}
	if opt.ItemToPickup != nil && *opt.ItemToPickup != "" {
		s.Player.AddItem(*opt.ItemToPickup)
		c.Item = *opt.ItemToPickup
	}

	if target == nil {
		c.Next = s.Current
		return c, nil
	}
	entry, err := s.Enter(*target)
	if err != nil {
		return nil, err
	}
	c.Next = *target
	c.Moved = true
	c.Entry = entry
	return c, nil
}

func (s *Session) current() (model.Dialogue, error) {
	if s.Current == "" {
		return model.Dialogue{}, ErrNotStarted
	}
	return s.Graph.Get(s.Current)
}
