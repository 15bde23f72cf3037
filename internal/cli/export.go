package cli

import (
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export sessions as JSON",
		Long:  "Export every saved session as JSON. Use --this-graph to keep only sessions of the current graph.",
		Args:  cobra.NoArgs,
		Run:   runExport,
	}

	cmd.Flags().Bool("this-graph", false, "Only sessions of the current graph")

	sessionCmd.AddCommand(cmd)
}

func runExport(cmd *cobra.Command, args []string) {
	thisGraph, _ := cmd.Flags().GetBool("this-graph")

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	var path string
	if thisGraph {
		path = getGraphPath()
	}
	saves, err := s.Export(cmd.Context(), path)
	if err != nil {
		exitErr("export", err)
	}

	printJSON(cmd, saves)
}
