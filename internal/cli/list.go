package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List dialogue keys",
		Args:  cobra.NoArgs,
		Run:   runList,
	}

	cmd.Flags().BoolP("all", "a", false, "Include hidden dialogues")

	RootCmd.AddCommand(cmd)
}

func runList(cmd *cobra.Command, args []string) {
	all, _ := cmd.Flags().GetBool("all")

	g := loadGraph(cmd)
	keys := g.Listing()
	if all {
		keys = g.Keys()
	}

	if textFormat() {
		for _, k := range keys {
			fmt.Fprintln(cmd.OutOrStdout(), k)
		}
		return
	}
	if keys == nil {
		keys = []string{}
	}
	printJSON(cmd, keys)
}
