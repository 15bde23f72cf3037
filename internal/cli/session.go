package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/rcliao/shadow-soldiers/internal/engine"
	"github.com/rcliao/shadow-soldiers/internal/graph"
	"github.com/rcliao/shadow-soldiers/internal/player"
	"github.com/rcliao/shadow-soldiers/internal/store"
)

var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Play the dialogue graph with saved sessions",
}

func init() {
	newCmd := &cobra.Command{
		Use:   "new",
		Short: "Start a session",
		Args:  cobra.NoArgs,
		Run:   runSessionNew,
	}
	newCmd.Flags().StringP("name", "n", "", "Save name (default: generated ID)")
	newCmd.Flags().String("start", "", "Dialogue to begin on (default: $SHADOW_START or Start)")
	for _, a := range player.Attributes() {
		newCmd.Flags().Int(a.String(), 3, fmt.Sprintf("Starting %s", a))
	}

	showCmd := &cobra.Command{
		Use:   "show <save>",
		Short: "Show the current dialogue of a session",
		Args:  cobra.ExactArgs(1),
		Run:   runSessionShow,
	}

	chooseCmd := &cobra.Command{
		Use:   "choose <save> <option>",
		Short: "Choose an option by its index",
		Args:  cobra.ExactArgs(2),
		Run:   runSessionChoose,
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List sessions",
		Args:  cobra.NoArgs,
		Run:   runSessionList,
	}
	listCmd.Flags().IntP("limit", "l", 20, "Max results")
	listCmd.Flags().Bool("this-graph", false, "Only sessions of the current graph")

	rmCmd := &cobra.Command{
		Use:   "rm <save>",
		Short: "Delete a session and its roll history",
		Args:  cobra.ExactArgs(1),
		Run:   runSessionRm,
	}

	rollsCmd := &cobra.Command{
		Use:   "rolls <save>",
		Short: "Show the checks rolled in a session",
		Args:  cobra.ExactArgs(1),
		Run:   runSessionRolls,
	}
	rollsCmd.Flags().IntP("limit", "l", 0, "Max results (0 for all)")

	spendCmd := &cobra.Command{
		Use:   "spend <save> <skill>",
		Short: "Spend a skill point to raise a skill modifier by one",
		Args:  cobra.ExactArgs(2),
		Run:   runSessionSpend,
	}

	sessionCmd.AddCommand(newCmd, showCmd, chooseCmd, listCmd, rmCmd, rollsCmd, spendCmd)
	RootCmd.AddCommand(sessionCmd)
}

// sessionView is printed after every session command that moves the story.
type sessionView struct {
	Save    *store.Save            `json:"save"`
	Choice  *engine.Choice         `json:"choice,omitempty"`
	Entry   *engine.Entry          `json:"entry,omitempty"`
	Options []engine.VisibleOption `json:"options"`
}

func runSessionNew(cmd *cobra.Command, args []string) {
	name, _ := cmd.Flags().GetString("name")
	start, _ := cmd.Flags().GetString("start")
	if start == "" {
		start = loadConfig().Start
	}

	p := player.New()
	for _, a := range player.Attributes() {
		v, _ := cmd.Flags().GetInt(a.String())
		p.SetAttribute(a, v)
	}
	if !p.IsValid() {
		exitErr("session new", fmt.Errorf("attributes must each be %d-%d and total %d, got %d",
			player.MinAttribute, player.MaxAttribute, player.PointBudget, p.TotalPoints()))
	}

	path := getGraphPath()
	sess := engine.New(loadGraph(cmd), p, newResolver(cmd), newLogger(cmd))
	entry, err := sess.Enter(start)
	if err != nil {
		exitErr("session new", err)
	}

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	sv, err := s.Create(cmd.Context(), store.CreateParams{Name: name, GraphPath: path, State: sess.State()})
	if err != nil {
		exitErr("session new", err)
	}
	logEntryRolls(cmd.Context(), s, sv.ID, entry)

	printSession(cmd, sess, sessionView{Save: sv, Entry: entry})
}

func runSessionShow(cmd *cobra.Command, args []string) {
	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	sv, sess := resumeSession(cmd, s, args[0])
	d, _ := sess.Graph.Get(sess.Current)
	printSession(cmd, sess, sessionView{
		Save:  sv,
		Entry: &engine.Entry{Key: sess.Current, Speaker: d.Speaker, Intro: d.Intro},
	})
}

func runSessionChoose(cmd *cobra.Command, args []string) {
	index, err := strconv.Atoi(args[1])
	if err != nil {
		exitErr("session choose", fmt.Errorf("option must be a number: %w", err))
	}

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	sv, sess := resumeSession(cmd, s, args[0])
	from := sess.Current
	choice, err := sess.Choose(index)
	if err != nil {
		exitErr("session choose", err)
	}

	updated, err := s.Update(cmd.Context(), sv.ID, sess.State())
	if err != nil {
		exitErr("save session", err)
	}
	if choice.Challenge != nil {
		if _, err := s.LogRoll(cmd.Context(), sv.ID, from, store.RollChallenge, *choice.Challenge); err != nil {
			exitErr("log roll", err)
		}
	}
	logEntryRolls(cmd.Context(), s, sv.ID, choice.Entry)

	printSession(cmd, sess, sessionView{Save: updated, Choice: choice, Entry: choice.Entry})
}

func runSessionList(cmd *cobra.Command, args []string) {
	limit, _ := cmd.Flags().GetInt("limit")
	thisGraph, _ := cmd.Flags().GetBool("this-graph")

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	p := store.ListParams{Limit: limit}
	if thisGraph {
		p.GraphPath = getGraphPath()
	}
	saves, err := s.List(cmd.Context(), p)
	if err != nil {
		exitErr("session list", err)
	}

	if textFormat() {
		for _, sv := range saves {
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\t%s\n", sv.Name, sv.State.Current, sv.State.Time, sv.UpdatedAt.Format("2006-01-02 15:04"))
		}
		return
	}
	if saves == nil {
		saves = []store.Save{}
	}
	printJSON(cmd, saves)
}

func runSessionRm(cmd *cobra.Command, args []string) {
	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	if err := s.Delete(cmd.Context(), args[0]); err != nil {
		exitErr("session rm", err)
	}
	printJSON(cmd, map[string]string{"deleted": args[0]})
}

func runSessionRolls(cmd *cobra.Command, args []string) {
	limit, _ := cmd.Flags().GetInt("limit")

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	sv, err := s.Get(cmd.Context(), args[0])
	if err != nil {
		exitErr("session rolls", err)
	}
	rolls, err := s.Rolls(cmd.Context(), sv.ID, limit)
	if err != nil {
		exitErr("session rolls", err)
	}

	if textFormat() {
		for _, r := range rolls {
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s %d vs %d\t%s\t%s\n",
				r.Dialogue, r.Kind, r.Skill, r.SkillValue, r.Target, r.Dice, r.Outcome)
		}
		return
	}
	if rolls == nil {
		rolls = []store.Roll{}
	}
	printJSON(cmd, rolls)
}

func runSessionSpend(cmd *cobra.Command, args []string) {
	skill, err := player.ParseSkill(args[1])
	if err != nil {
		exitErr("session spend", err)
	}

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	sv, err := s.Get(cmd.Context(), args[0])
	if err != nil {
		exitErr("session spend", err)
	}
	p := sv.State.Player
	if err := p.SpendSkillPoint(skill); err != nil {
		exitErr("session spend", err)
	}
	updated, err := s.Update(cmd.Context(), sv.ID, sv.State)
	if err != nil {
		exitErr("save session", err)
	}

	if textFormat() {
		fmt.Fprintf(cmd.OutOrStdout(), "%s is now %d (%d skill points left)\n", skill, p.DerivedSkill(skill), p.SkillPoints)
		return
	}
	printJSON(cmd, updated)
}

// resumeSession loads a save and the graph it was started on.
func resumeSession(cmd *cobra.Command, s store.Store, ref string) (*store.Save, *engine.Session) {
	sv, err := s.Get(cmd.Context(), ref)
	if err != nil {
		exitErr("load session", err)
	}
	logger := newLogger(cmd)
	g := graph.Load(sv.GraphPath, logger)
	sess, err := engine.Resume(g, sv.State, newResolver(cmd), logger)
	if err != nil {
		exitErr("load session", err)
	}
	return sv, sess
}

func logEntryRolls(ctx context.Context, s *store.SQLiteStore, saveID string, e *engine.Entry) {
	if e == nil {
		return
	}
	for _, p := range e.Passive {
		if _, err := s.LogRoll(ctx, saveID, e.Key, store.RollPassive, p.Result); err != nil {
			exitErr("log roll", err)
		}
	}
}

func printSession(cmd *cobra.Command, sess *engine.Session, v sessionView) {
	opts, err := sess.Options()
	if err != nil {
		exitErr("list options", err)
	}
	v.Options = opts
	if v.Options == nil {
		v.Options = []engine.VisibleOption{}
	}

	if !textFormat() {
		printJSON(cmd, v)
		return
	}
	w := cmd.OutOrStdout()
	if v.Choice != nil {
		renderChoice(w, v.Choice)
	}
	if v.Entry != nil {
		renderEntry(w, v.Entry)
	}
	renderOptions(w, v.Options)
	fmt.Fprintf(w, "(%s, %d XP, %d skill points)\n", sess.Time, sess.Player.XP, sess.Player.SkillPoints)
}
