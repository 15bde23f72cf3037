// Package cli implements the shadow-soldiers CLI commands.
package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/rcliao/shadow-soldiers/internal/challenge"
	"github.com/rcliao/shadow-soldiers/internal/config"
	"github.com/rcliao/shadow-soldiers/internal/dice"
	"github.com/rcliao/shadow-soldiers/internal/graph"
	"github.com/rcliao/shadow-soldiers/internal/model"
	"github.com/rcliao/shadow-soldiers/internal/store"
)

var (
	graphPath  string
	dbPath     string
	seedFlag   int64
	formatFlag string
	forceFlag  bool
)

var errUnreadableGraph = errors.New("graph file could not be parsed; fix it or pass --force to overwrite it")

// RootCmd is the top-level command.
var RootCmd = &cobra.Command{
	Use:   "shadow-soldiers",
	Short: "Dialogue engine for Shadow Soldiers",
	Long:  "Edit, validate and play the Shadow Soldiers dialogue graph. Sessions are saved in SQLite.",
}

func init() {
	RootCmd.PersistentFlags().StringVarP(&graphPath, "graph", "g", "", "Dialogue graph path (default: $SHADOW_GRAPH_PATH or dialogues.json)")
	RootCmd.PersistentFlags().StringVarP(&dbPath, "db", "d", "", "Save database path (default: $SHADOW_DB or ~/.shadow-soldiers/saves.db)")
	RootCmd.PersistentFlags().Int64Var(&seedFlag, "seed", 0, "Dice seed (default: $SHADOW_SEED, 0 draws a random seed)")
	RootCmd.PersistentFlags().StringVarP(&formatFlag, "format", "f", "json", "Output format: json or text")
	RootCmd.PersistentFlags().BoolVar(&forceFlag, "force", false, "Let editing commands overwrite a graph file that could not be parsed")
}

func loadConfig() config.Config {
	cfg, err := config.Load()
	if err != nil {
		exitErr("load config", err)
	}
	return cfg
}

func getGraphPath() string {
	if graphPath != "" {
		return graphPath
	}
	return loadConfig().GraphPath
}

func getDBPath() string {
	if dbPath != "" {
		return dbPath
	}
	return loadConfig().DBPath
}

func getSeed() int64 {
	seed := seedFlag
	if seed == 0 {
		seed = loadConfig().Seed
	}
	if seed == 0 {
		var err error
		if seed, err = dice.NewSeed(); err != nil {
			exitErr("seed dice", err)
		}
	}
	return seed
}

func newLogger(cmd *cobra.Command) *log.Logger {
	return log.New(cmd.ErrOrStderr(), "shadow-soldiers: ", 0)
}

func newResolver(cmd *cobra.Command) *challenge.Resolver {
	return challenge.New(dice.NewSource(getSeed()), newLogger(cmd))
}

func loadGraph(cmd *cobra.Command) model.Graph {
	return graph.Load(getGraphPath(), newLogger(cmd))
}

// loadGraphForEdit loads the graph for a command that saves it back.
func loadGraphForEdit(cmd *cobra.Command) model.Graph {
	g, err := editableGraph(getGraphPath(), forceFlag, newLogger(cmd))
	if err != nil {
		exitErr("load graph", err)
	}
	return g
}

// editableGraph refuses a file that exists but yields the fallback graph,
// unless force is set. A missing file starts a new graph.
func editableGraph(path string, force bool, logger *log.Logger) (model.Graph, error) {
	g, fellBack := graph.LoadReport(path, logger)
	if !fellBack || force {
		return g, nil
	}
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return g, nil
	}
	return nil, fmt.Errorf("%s: %w", path, errUnreadableGraph)
}

func saveGraph(g model.Graph) {
	if err := graph.Save(g, getGraphPath()); err != nil {
		exitErr("save graph", err)
	}
}

func openStore() (*store.SQLiteStore, error) {
	return store.NewSQLiteStore(getDBPath())
}

func printJSON(cmd *cobra.Command, v any) {
	b, _ := json.MarshalIndent(v, "", "  ")
	fmt.Fprintln(cmd.OutOrStdout(), string(b))
}

func textFormat() bool {
	return formatFlag == "text"
}

func exitErr(msg string, err error) {
	fmt.Fprintf(os.Stderr, "error: %s: %v\n", msg, err)
	os.Exit(1)
}
