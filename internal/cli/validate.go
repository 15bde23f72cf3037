package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rcliao/shadow-soldiers/internal/graph"
	"github.com/rcliao/shadow-soldiers/internal/model"
)

func init() {
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Load the dialogue graph and report problems",
		Long:  "Load the dialogue graph, apply defaults and report dropped passive checks, dangling links and unknown skills.",
		Args:  cobra.NoArgs,
		Run:   runValidate,
	}

	cmd.Flags().BoolP("write", "w", false, "Save the normalised graph back")

	RootCmd.AddCommand(cmd)
}

func runValidate(cmd *cobra.Command, args []string) {
	write, _ := cmd.Flags().GetBool("write")

	var g model.Graph
	if write {
		g = loadGraphForEdit(cmd)
	} else {
		g = loadGraph(cmd)
	}
	problems := graph.Lint(g)

	if write {
		saveGraph(g)
	}

	if textFormat() {
		for _, p := range problems {
			fmt.Fprintln(cmd.OutOrStdout(), p.String())
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%d dialogues, %d problems\n", len(g), len(problems))
		return
	}
	printJSON(cmd, map[string]any{
		"dialogues": len(g),
		"problems":  problems,
	})
}
