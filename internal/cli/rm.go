package cli

import (
	"github.com/spf13/cobra"

	"github.com/rcliao/shadow-soldiers/internal/graph"
)

func init() {
	cmd := &cobra.Command{
		Use:   "rm <key>",
		Short: "Delete a dialogue",
		Long:  "Delete a dialogue. Links pointing at it are left dangling and reported.",
		Args:  cobra.ExactArgs(1),
		Run:   runRm,
	}

	RootCmd.AddCommand(cmd)
}

func runRm(cmd *cobra.Command, args []string) {
	g := loadGraphForEdit(cmd)
	if err := g.Delete(args[0]); err != nil {
		exitErr("rm", err)
	}
	saveGraph(g)

	dangling := 0
	for _, e := range graph.Edges(g) {
		if e.To == args[0] {
			dangling++
		}
	}
	printJSON(cmd, map[string]any{"deleted": args[0], "dangling_links": dangling})
}
