package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rcliao/shadow-soldiers/internal/model"
	"github.com/rcliao/shadow-soldiers/internal/player"
)

func init() {
	cmd := &cobra.Command{
		Use:   "roll",
		Short: "Resolve one skill check",
		Long:  "Resolve one skill check for a fresh player. Attributes start at 1 and modifiers at 0 unless set.",
		Args:  cobra.NoArgs,
		Run:   runRoll,
	}

	cmd.Flags().String("skill", "", "Skill to check (required)")
	cmd.Flags().IntP("target", "t", 0, "Target number (required)")
	cmd.Flags().StringArray("attr", nil, "attribute=value, e.g. bur=4 (repeatable)")
	cmd.Flags().StringArray("mod", nil, "skill=modifier, e.g. quota=2 (repeatable)")

	cmd.MarkFlagRequired("skill")
	cmd.MarkFlagRequired("target")

	RootCmd.AddCommand(cmd)
}

func runRoll(cmd *cobra.Command, args []string) {
	skill, _ := cmd.Flags().GetString("skill")
	target, _ := cmd.Flags().GetInt("target")
	attrs, _ := cmd.Flags().GetStringArray("attr")
	mods, _ := cmd.Flags().GetStringArray("mod")

	p, err := buildPlayer(attrs, mods)
	if err != nil {
		exitErr("roll", err)
	}

	res, err := newResolver(cmd).Resolve(p, model.DialogueOption{
		ChallengeAttribute: model.Str(skill),
		ChallengeNumber:    model.Int(target),
	})
	if err != nil {
		exitErr("roll", err)
	}

	if textFormat() {
		fmt.Fprintf(cmd.OutOrStdout(), "%s: rolled %s + %s %d = %d vs %d\n",
			res.Outcome, res.Dice, res.Skill, res.SkillValue, res.Total, res.Target)
		return
	}
	printJSON(cmd, res)
}

// buildPlayer returns a fresh player with the given attribute=value and
// skill=modifier assignments applied.
func buildPlayer(attrs, mods []string) (*player.Player, error) {
	p := player.New()
	for _, s := range attrs {
		name, v, err := parseAssignment(s)
		if err != nil {
			return nil, err
		}
		a, err := player.ParseAttribute(name)
		if err != nil {
			return nil, err
		}
		if err := p.SetAttribute(a, v); err != nil {
			return nil, err
		}
	}
	for _, s := range mods {
		name, v, err := parseAssignment(s)
		if err != nil {
			return nil, err
		}
		sk, err := player.ParseSkill(name)
		if err != nil {
			return nil, err
		}
		p.SetModifier(sk, v)
	}
	return p, nil
}

func parseAssignment(s string) (string, int, error) {
	name, value, ok := strings.Cut(s, "=")
	if !ok {
		return "", 0, fmt.Errorf("invalid assignment %q (use name=number)", s)
	}
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return "", 0, fmt.Errorf("invalid assignment %q: %w", s, err)
	}
	return strings.TrimSpace(name), n, nil
}
