package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "new",
		Short: "Add a placeholder dialogue",
		Args:  cobra.NoArgs,
		Run:   runNew,
	}

	RootCmd.AddCommand(cmd)
}

func runNew(cmd *cobra.Command, args []string) {
	g := loadGraphForEdit(cmd)
	key := g.NewDialogue()
	if _, err := g.Apply(key); err != nil {
		exitErr("new", err)
	}
	saveGraph(g)

	if textFormat() {
		fmt.Fprintln(cmd.OutOrStdout(), key)
		return
	}
	printJSON(cmd, map[string]any{"key": key, "dialogue": g[key]})
}
