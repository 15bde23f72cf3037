package cli

import (
	"github.com/spf13/cobra"

	"github.com/rcliao/shadow-soldiers/internal/graph"
)

func init() {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show graph and save database statistics",
		Args:  cobra.NoArgs,
		Run:   runStats,
	}

	cmd.Flags().Bool("saves", false, "Include save database statistics")

	RootCmd.AddCommand(cmd)
}

func runStats(cmd *cobra.Command, args []string) {
	withSaves, _ := cmd.Flags().GetBool("saves")

	out := map[string]any{
		"graph_path": getGraphPath(),
		"graph":      graph.ComputeStats(loadGraph(cmd)),
	}

	if withSaves {
		s, err := openStore()
		if err != nil {
			exitErr("open store", err)
		}
		defer s.Close()

		stats, err := s.Stats(cmd.Context(), getDBPath())
		if err != nil {
			exitErr("stats", err)
		}
		out["saves"] = stats
	}

	printJSON(cmd, out)
}
