package cli

import (
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "show <key>",
		Short: "Print a dialogue",
		Args:  cobra.ExactArgs(1),
		Run:   runShow,
	}

	RootCmd.AddCommand(cmd)
}

func runShow(cmd *cobra.Command, args []string) {
	g := loadGraph(cmd)
	d, err := g.Get(args[0])
	if err != nil {
		exitErr("show", err)
	}

	if textFormat() {
		renderDialogue(cmd.OutOrStdout(), args[0], d)
		return
	}
	printJSON(cmd, d)
}
