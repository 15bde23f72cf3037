package cli

import "github.com/spf13/cobra"

func init() {
	cmd := &cobra.Command{
		Use:   "rename <old> <new>",
		Short: "Rename a dialogue and rewrite links to it",
		Args:  cobra.ExactArgs(2),
		Run:   runRename,
	}

	RootCmd.AddCommand(cmd)
}

func runRename(cmd *cobra.Command, args []string) {
	g := loadGraphForEdit(cmd)
	if err := g.Rename(args[0], args[1]); err != nil {
		exitErr("rename", err)
	}
	saveGraph(g)

	printJSON(cmd, map[string]string{"renamed": args[0], "to": args[1]})
}
