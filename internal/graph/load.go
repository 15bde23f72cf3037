// Package graph loads, validates and saves dialogue graphs.
package graph

import (
	"encoding/json"
	"io"
	"log"
	"os"
	"strconv"

	"github.com/rcliao/shadow-soldiers/internal/model"
)

// Fallback is the graph substituted for unreadable input.
func Fallback() model.Graph {
	return model.Graph{model.FallbackKey: model.FallbackDialogue()}
}

// Load reads and validates the graph at path. It never fails: a missing or
// malformed file yields the fallback graph and a diagnostic.
func Load(path string, logger *log.Logger) model.Graph {
	g, _ := LoadReport(path, logger)
	return g
}

// LoadReport is Load that also reports whether the fallback graph was
// substituted for the file's contents.
func LoadReport(path string, logger *log.Logger) (model.Graph, bool) {
	logger = orDiscard(logger)
	data, err := os.ReadFile(path)
	if err != nil {
		logger.Printf("read dialogues %s: %v; using %q dialogue", path, err, model.FallbackKey)
		return Fallback(), true
	}
	return parse(data, logger)
}

// Parse decodes and validates a serialized graph. Like Load, it never fails.
func Parse(data []byte, logger *log.Logger) model.Graph {
	g, _ := parse(data, orDiscard(logger))
	return g
}

func parse(data []byte, logger *log.Logger) (model.Graph, bool) {
	var g model.Graph
	if err := json.Unmarshal(data, &g); err != nil {
		logger.Printf("parse dialogues: %v; using %q dialogue", err, model.FallbackKey)
		return Fallback(), true
	}
	if len(g) == 0 {
		logger.Printf("parse dialogues: no dialogues found; using %q dialogue", model.FallbackKey)
		return Fallback(), true
	}
	Validate(g, logger)
	return g, false
}

// Validate fills defaults on every dialogue in place, drops invalid passive
// checks and logs every problem found. Running it again changes nothing.
func Validate(g model.Graph, logger *log.Logger) {
	logger = orDiscard(logger)
	for _, key := range g.Keys() {
		d := g[key]
		for _, pc := range d.FillDefaults() {
			logger.Printf("dialogue %q: removed invalid passive check (skill=%q target=%d speaker=%s)",
				key, pc.Skill, pc.Target, present(pc.Speaker))
		}
		g[key] = d
	}
	for _, p := range Lint(g) {
		logger.Print(p.String())
	}
}

func present(s *string) string {
	if s == nil {
		return "<absent>"
	}
	return strconv.Quote(*s)
}

func orDiscard(logger *log.Logger) *log.Logger {
	if logger == nil {
		return log.New(io.Discard, "", 0)
	}
	return logger
}
