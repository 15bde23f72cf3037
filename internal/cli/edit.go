package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rcliao/shadow-soldiers/internal/model"
)

func init() {
	cmd := &cobra.Command{
		Use:   "edit <key>",
		Short: "Edit a dialogue",
		Long: `Edit a dialogue and save the graph. --set and --clear target the dialogue,
or the option given by --option, or the passive check given by --check.

  shadow-soldiers edit Start --set intro="The door swings shut."
  shadow-soldiers edit Start --add-option --option 2 --set challenge_attribute=quota --set challenge_number=9
  shadow-soldiers edit Start --add-check "gizmo:8:Gizmo"`,
		Args: cobra.ExactArgs(1),
		Run:  runEdit,
	}

	cmd.Flags().StringArrayP("set", "s", nil, "field=value to set (repeatable)")
	cmd.Flags().StringArray("clear", nil, "Optional field to remove (repeatable)")
	cmd.Flags().IntP("option", "o", -1, "Option index targeted by --set/--clear")
	cmd.Flags().IntP("check", "c", -1, "Passive check index targeted by --set/--clear")
	cmd.Flags().Bool("add-option", false, "Append a default option")
	cmd.Flags().Int("remove-option", -1, "Option index to delete")
	cmd.Flags().StringArray("add-check", nil, "Passive check to append as skill:target:speaker (repeatable)")
	cmd.Flags().Int("remove-check", -1, "Passive check index to delete")

	RootCmd.AddCommand(cmd)
}

type editFlags struct {
	sets         []string
	clears       []string
	option       int
	check        int
	addOption    bool
	removeOption int
	addChecks    []string
	removeCheck  int
}

func runEdit(cmd *cobra.Command, args []string) {
	var f editFlags
	f.sets, _ = cmd.Flags().GetStringArray("set")
	f.clears, _ = cmd.Flags().GetStringArray("clear")
	f.option, _ = cmd.Flags().GetInt("option")
	f.check, _ = cmd.Flags().GetInt("check")
	f.addOption, _ = cmd.Flags().GetBool("add-option")
	f.removeOption, _ = cmd.Flags().GetInt("remove-option")
	f.addChecks, _ = cmd.Flags().GetStringArray("add-check")
	f.removeCheck, _ = cmd.Flags().GetInt("remove-check")

	edits, err := buildEdits(f)
	if err != nil {
		exitErr("edit", err)
	}

	g := loadGraphForEdit(cmd)
	d, err := g.Apply(args[0], edits...)
	if err != nil {
		exitErr("edit", err)
	}
	saveGraph(g)

	printJSON(cmd, d)
}

// buildEdits turns edit flags into edits. Additions run first so a new
// option can be filled in by the same invocation; removals run last.
func buildEdits(f editFlags) ([]model.Edit, error) {
	if f.option >= 0 && f.check >= 0 {
		return nil, fmt.Errorf("--option and --check are mutually exclusive")
	}

	var edits []model.Edit
	if f.addOption {
		edits = append(edits, model.AddOption{})
	}
	for _, s := range f.addChecks {
		c, err := parseCheck(s)
		if err != nil {
			return nil, err
		}
		edits = append(edits, model.AddPassiveCheck{Check: c})
	}

	field := func(name, value string, clear bool) model.Edit {
		switch {
		case f.option >= 0:
			return model.SetOptionField{Index: f.option, Field: name, Value: value, Clear: clear}
		case f.check >= 0:
			return model.SetCheckField{Index: f.check, Field: name, Value: value, Clear: clear}
		default:
			return model.SetField{Field: name, Value: value, Clear: clear}
		}
	}
	for _, s := range f.sets {
		name, value, ok := strings.Cut(s, "=")
		if !ok || strings.TrimSpace(name) == "" {
			return nil, fmt.Errorf("invalid --set %q (use field=value)", s)
		}
		edits = append(edits, field(strings.TrimSpace(name), value, false))
	}
	for _, name := range f.clears {
		edits = append(edits, field(strings.TrimSpace(name), "", true))
	}

	if f.removeCheck >= 0 {
		edits = append(edits, model.RemovePassiveCheck{Index: f.removeCheck})
	}
	if f.removeOption >= 0 {
		edits = append(edits, model.RemoveOption{Index: f.removeOption})
	}
	return edits, nil
}

// parseCheck parses skill:target:speaker.
func parseCheck(s string) (model.PassiveCheck, error) {
	parts := strings.SplitN(s, ":", 3)
	if len(parts) != 3 {
		return model.PassiveCheck{}, fmt.Errorf("invalid --add-check %q (use skill:target:speaker)", s)
	}
	target, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return model.PassiveCheck{}, fmt.Errorf("invalid --add-check target %q: %w", parts[1], err)
	}
	return model.PassiveCheck{
		Skill:   strings.TrimSpace(parts[0]),
		Target:  target,
		Speaker: model.Str(strings.TrimSpace(parts[2])),
	}, nil
}
