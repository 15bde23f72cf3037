package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rcliao/shadow-soldiers/internal/graph"
)

func init() {
	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search dialogue keys, speakers, intros and options",
		Args:  cobra.MinimumNArgs(1),
		Run:   runSearch,
	}

	RootCmd.AddCommand(cmd)
}

func runSearch(cmd *cobra.Command, args []string) {
	query := strings.Join(args, " ")
	matches := graph.Search(loadGraph(cmd), query)

	if textFormat() {
		for _, m := range matches {
			fmt.Fprintf(cmd.OutOrStdout(), "%s [%s] %s\n", m.Key, m.Field, m.Excerpt)
		}
		return
	}
	if matches == nil {
		matches = []graph.Match{}
	}
	printJSON(cmd, matches)
}
