package graph

import "github.com/rcliao/shadow-soldiers/internal/model"

// Stats holds graph statistics.
type Stats struct {
	Dialogues     int `json:"dialogues"`
	Hidden        int `json:"hidden"`
	Options       int `json:"options"`
	Challenges    int `json:"challenges"`
	PassiveChecks int `json:"passive_checks"`
	Links         int `json:"links"`
	DanglingLinks int `json:"dangling_links"`
	TotalXP       int `json:"total_xp"`
	TotalMinutes  int `json:"total_minutes"`
}

// ComputeStats counts the contents of g.
func ComputeStats(g model.Graph) Stats {
	var st Stats
	for _, d := range g {
		st.Dialogues++
		if d.IsHidden {
			st.Hidden++
		}
		st.Options += len(d.Options)
		for _, o := range d.Options {
			if o.IsChallenge() {
				st.Challenges++
			}
		}
		st.PassiveChecks += len(d.PassiveCheck)
		if d.XPReward != nil {
			st.TotalXP += *d.XPReward
		}
		if d.Time != nil {
			st.TotalMinutes += *d.Time
		}
	}
	for _, e := range Edges(g) {
		st.Links++
		if _, ok := g[e.To]; !ok {
			st.DanglingLinks++
		}
	}
	return st
}
