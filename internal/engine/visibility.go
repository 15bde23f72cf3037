package engine

import (
	"strings"

	"github.com/rcliao/shadow-soldiers/internal/player"
)

const itemPrefix = "item:"

// Visible evaluates a visible_when expression against the player. Terms are
// joined with "&&"; each is a flag name or "item:<id>", optionally negated
// with "!". An empty expression is always visible.
func Visible(expr string, p *player.Player) bool {
	for _, term := range strings.Split(expr, "&&") {
		term = strings.TrimSpace(term)
		if term == "" {
			continue
		}
		negate := strings.HasPrefix(term, "!")
		if negate {
			term = strings.TrimSpace(term[1:])
		}
		var holds bool
		if strings.HasPrefix(term, itemPrefix) {
			holds = p.HasItem(strings.TrimSpace(strings.TrimPrefix(term, itemPrefix)))
		} else {
			holds = p.HasFlag(term)
		}
		if holds == negate {
			return false
		}
	}
	return true
}
