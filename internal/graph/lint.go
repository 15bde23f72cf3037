package graph

import (
	"fmt"

	"github.com/rcliao/shadow-soldiers/internal/model"
	"github.com/rcliao/shadow-soldiers/internal/player"
)

// Problem kinds reported by Lint.
const (
	DanglingSuccess     = "dangling_success"
	DanglingFailure     = "dangling_failure"
	UnknownSkill        = "unknown_skill"
	IncompleteChallenge = "incomplete_challenge"
)

// Problem is a non-fatal issue found in a graph. Option and Check are -1
// when they do not apply.
type Problem struct {
	Dialogue string `json:"dialogue"`
	Option   int    `json:"option"`
	Check    int    `json:"check"`
	Kind     string `json:"kind"`
	Detail   string `json:"detail"`
}

func (p Problem) String() string {
	where := fmt.Sprintf("dialogue %q", p.Dialogue)
	if p.Option >= 0 {
		where += fmt.Sprintf(" option %d", p.Option)
	}
	if p.Check >= 0 {
		where += fmt.Sprintf(" passive check %d", p.Check)
	}
	return fmt.Sprintf("%s: %s: %s", where, p.Kind, p.Detail)
}

// Edge is a link from an option to another dialogue.
type Edge struct {
	From    string `json:"from"`
	Option  int    `json:"option"`
	To      string `json:"to"`
	Failure bool   `json:"failure,omitempty"`
}

// Edges returns every success and failure link in the graph, ordered by
// source key and option.
func Edges(g model.Graph) []Edge {
	var out []Edge
	for _, key := range g.Keys() {
		for i, o := range g[key].Options {
			if o.SuccessDialogue != nil {
				out = append(out, Edge{From: key, Option: i, To: *o.SuccessDialogue})
			}
			if o.FailureDialogue != nil {
				out = append(out, Edge{From: key, Option: i, To: *o.FailureDialogue, Failure: true})
			}
		}
	}
	return out
}

// Lint reports links to missing dialogues, skill names no player has, and
// options carrying only half a challenge.
func Lint(g model.Graph) []Problem {
	var problems []Problem
	for _, e := range Edges(g) {
		if _, ok := g[e.To]; ok {
			continue
		}
		kind := DanglingSuccess
		if e.Failure {
			kind = DanglingFailure
		}
		problems = append(problems, Problem{
			Dialogue: e.From, Option: e.Option, Check: -1,
			Kind: kind, Detail: fmt.Sprintf("no dialogue %q", e.To),
		})
	}

	for _, key := range g.Keys() {
		d := g[key]
		for i, o := range d.Options {
			if (o.ChallengeAttribute == nil) != (o.ChallengeNumber == nil) {
				problems = append(problems, Problem{
					Dialogue: key, Option: i, Check: -1,
					Kind: IncompleteChallenge, Detail: "challenge needs both an attribute and a number",
				})
			}
			if o.ChallengeAttribute != nil {
				if _, err := player.ParseSkill(*o.ChallengeAttribute); err != nil {
					problems = append(problems, Problem{
						Dialogue: key, Option: i, Check: -1,
						Kind: UnknownSkill, Detail: err.Error(),
					})
				}
			}
		}
		for i, pc := range d.PassiveCheck {
			if _, err := player.ParseSkill(pc.Skill); err != nil {
				problems = append(problems, Problem{
					Dialogue: key, Option: -1, Check: i,
					Kind: UnknownSkill, Detail: err.Error(),
				})
			}
		}
	}
	return problems
}
