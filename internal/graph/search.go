package graph

import (
	"strings"

	"github.com/rcliao/shadow-soldiers/internal/model"
)

// Match is a dialogue that matched a search, with the field that matched.
type Match struct {
	Key     string `json:"key"`
	Field   string `json:"field"`
	Excerpt string `json:"excerpt"`
}

const excerptLen = 80

// Search finds dialogues whose key, speaker, intro or option descriptions
// contain query, ignoring case. Each dialogue appears once, in key order.
func Search(g model.Graph, query string) []Match {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil
	}

	var out []Match
	for _, key := range g.Keys() {
		d := g[key]
		fields := []struct{ name, text string }{
			{"key", key},
			{"speaker", d.Speaker},
			{"intro", d.Intro},
		}
		for _, o := range d.Options {
			fields = append(fields, struct{ name, text string }{"option", o.Description})
		}
		for _, f := range fields {
			if strings.Contains(strings.ToLower(f.text), q) {
				out = append(out, Match{Key: key, Field: f.name, Excerpt: excerpt(f.text)})
				break
			}
		}
	}
	return out
}

func excerpt(s string) string {
	r := []rune(s)
	if len(r) <= excerptLen {
		return s
	}
	return string(r[:excerptLen]) + "..."
}
