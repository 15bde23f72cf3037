package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/rcliao/shadow-soldiers/internal/challenge"
	"github.com/rcliao/shadow-soldiers/internal/clock"
	"github.com/rcliao/shadow-soldiers/internal/dice"
	"github.com/rcliao/shadow-soldiers/internal/engine"
	"github.com/rcliao/shadow-soldiers/internal/player"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	dir := t.TempDir()
	s, err := NewSQLiteStore(filepath.Join(dir, "test.db"))
	if err != nil {
		t.Fatalf("create store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func testState() engine.State {
	p := player.New()
	p.Tech, p.Arts, p.Bur, p.Und = 3, 3, 3, 3
	p.SetModifier(player.Quota, 2)
	p.AddItem("stamp")
	p.SetFlags("met_clerk")
	p.MarkEntered("Start")
	p.AddXP(150)
	return engine.State{Current: "Start", Player: p, Time: clock.Start()}
}

func TestCreateAndGet(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	sv, err := s.Create(ctx, CreateParams{Name: "morning", GraphPath: "dialogues.json", State: testState()})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if sv.ID == "" {
		t.Error("expected non-empty ID")
	}

	for _, ref := range []string{sv.ID, "morning"} {
		got, err := s.Get(ctx, ref)
		if err != nil {
			t.Fatalf("get %s: %v", ref, err)
		}
		if got.ID != sv.ID {
			t.Errorf("expected ID %s, got %s", sv.ID, got.ID)
		}
		if got.State.Current != "Start" {
			t.Errorf("expected current Start, got %q", got.State.Current)
		}
		if got.State.Time != clock.Start() {
			t.Errorf("expected %v, got %v", clock.Start(), got.State.Time)
		}
		p := got.State.Player
		if p.Bur != 3 || p.Modifier(player.Quota) != 2 {
			t.Errorf("player attributes not restored: %+v", p)
		}
		if !p.HasItem("stamp") || !p.HasFlag("met_clerk") || !p.HasEntered("Start") {
			t.Errorf("narrative state not restored: %+v", p)
		}
		if p.XP != 50 || p.SkillPoints != 1 {
			t.Errorf("expected 50 xp and 1 point, got %d and %d", p.XP, p.SkillPoints)
		}
	}
}

func TestCreateDefaultName(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	sv, err := s.Create(ctx, CreateParams{GraphPath: "g.json", State: engine.State{Current: "Start"}})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if sv.Name != sv.ID {
		t.Errorf("expected name to default to ID, got %q", sv.Name)
	}
	if sv.State.Player == nil {
		t.Error("expected a fresh player")
	}
}

func TestCreateNameTaken(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	if _, err := s.Create(ctx, CreateParams{Name: "dup", State: testState()}); err != nil {
		t.Fatalf("create: %v", err)
	}
	_, err := s.Create(ctx, CreateParams{Name: "dup", State: testState()})
	if !errors.Is(err, ErrNameTaken) {
		t.Errorf("expected ErrNameTaken, got %v", err)
	}
}

func TestGetNotFound(t *testing.T) {
	s := newTestStore(t)
	_, err := s.Get(context.Background(), "nope")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestUpdate(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	sv, _ := s.Create(ctx, CreateParams{Name: "run", State: testState()})

	st := sv.State
	st.Current = "Desk"
	st.Time.Advance(90)
	st.Player.AddItem("ledger")

	got, err := s.Update(ctx, sv.ID, st)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if got.State.Current != "Desk" {
		t.Errorf("expected Desk, got %q", got.State.Current)
	}
	want := clock.Time{Day: 1, Hour: 5, Minute: 0}
	if got.State.Time != want {
		t.Errorf("expected %v, got %v", want, got.State.Time)
	}
	if !got.State.Player.HasItem("ledger") {
		t.Error("expected ledger in inventory")
	}

	if _, err := s.Update(ctx, "missing", st); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestList(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	s.Create(ctx, CreateParams{Name: "a", GraphPath: "one.json", State: testState()})
	s.Create(ctx, CreateParams{Name: "b", GraphPath: "two.json", State: testState()})
	s.Create(ctx, CreateParams{Name: "c", GraphPath: "one.json", State: testState()})

	all, err := s.List(ctx, ListParams{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("expected 3 saves, got %d", len(all))
	}

	one, _ := s.List(ctx, ListParams{GraphPath: "one.json"})
	if len(one) != 2 {
		t.Errorf("expected 2 saves for one.json, got %d", len(one))
	}

	limited, _ := s.List(ctx, ListParams{Limit: 1})
	if len(limited) != 1 {
		t.Errorf("expected 1 save, got %d", len(limited))
	}
}

func TestDeleteCascadesRolls(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	sv, _ := s.Create(ctx, CreateParams{Name: "doomed", State: testState()})
	res := challenge.Result{Skill: "quota", SkillValue: 5, Target: 12, Dice: dice.Pair{Die1: 3, Die2: 4}, Total: 12, Outcome: dice.Success}
	if _, err := s.LogRoll(ctx, sv.ID, "Start", RollChallenge, res); err != nil {
		t.Fatalf("log roll: %v", err)
	}

	if err := s.Delete(ctx, "doomed"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := s.Get(ctx, sv.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
	rolls, _ := s.Rolls(ctx, sv.ID, 0)
	if len(rolls) != 0 {
		t.Errorf("expected rolls to be deleted, got %d", len(rolls))
	}
	if err := s.Delete(ctx, "doomed"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestRolls(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	sv, _ := s.Create(ctx, CreateParams{Name: "dice", State: testState()})
	results := []challenge.Result{
		{Skill: "quota", SkillValue: 5, Target: 12, Dice: dice.Pair{Die1: 6, Die2: 6}, Total: 17, Outcome: dice.Success},
		{Skill: "gizmo", SkillValue: 3, Target: 4, Dice: dice.Pair{Die1: 1, Die2: 1}, Total: 5, Outcome: dice.Failure},
		{Skill: "quota", SkillValue: 5, Target: 12, Dice: dice.Pair{Die1: 2, Die2: 3}, Total: 10, Outcome: dice.Failure},
	}
	for i, res := range results {
		kind := RollChallenge
		if i == 1 {
			kind = RollPassive
		}
		if _, err := s.LogRoll(ctx, sv.ID, "Start", kind, res); err != nil {
			t.Fatalf("log roll %d: %v", i, err)
		}
	}

	rolls, err := s.Rolls(ctx, sv.ID, 0)
	if err != nil {
		t.Fatalf("rolls: %v", err)
	}
	if len(rolls) != 3 {
		t.Fatalf("expected 3 rolls, got %d", len(rolls))
	}
	if rolls[0].Outcome != dice.Success || rolls[0].Dice != (dice.Pair{Die1: 6, Die2: 6}) {
		t.Errorf("unexpected first roll: %+v", rolls[0])
	}
	if rolls[1].Kind != RollPassive || rolls[1].Skill != "gizmo" {
		t.Errorf("unexpected second roll: %+v", rolls[1])
	}

	limited, _ := s.Rolls(ctx, sv.ID, 2)
	if len(limited) != 2 {
		t.Errorf("expected 2 rolls, got %d", len(limited))
	}

	st, err := s.Stats(ctx, filepath.Join(t.TempDir(), "none.db"))
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if st.Saves != 1 || st.Rolls != 3 || st.Successes != 1 {
		t.Errorf("unexpected stats: %+v", st)
	}
	if len(st.Skills) != 2 || st.Skills[0].Skill != "quota" || st.Skills[0].Rolls != 2 {
		t.Errorf("unexpected skill stats: %+v", st.Skills)
	}
}

func TestExportImport(t *testing.T) {
	ctx := context.Background()
	src := newTestStore(t)
	src.Create(ctx, CreateParams{Name: "one", GraphPath: "a.json", State: testState()})
	src.Create(ctx, CreateParams{Name: "two", GraphPath: "b.json", State: testState()})

	saves, err := src.Export(ctx, "")
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if len(saves) != 2 {
		t.Fatalf("expected 2 saves, got %d", len(saves))
	}
	onlyA, _ := src.Export(ctx, "a.json")
	if len(onlyA) != 1 {
		t.Errorf("expected 1 save for a.json, got %d", len(onlyA))
	}

	dst := newTestStore(t)
	dst.Create(ctx, CreateParams{Name: "two", State: testState()})
	n, err := dst.Import(ctx, saves)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if n != 1 {
		t.Errorf("expected 1 imported, got %d", n)
	}
	got, err := dst.Get(ctx, "one")
	if err != nil {
		t.Fatalf("get imported: %v", err)
	}
	if !got.State.Player.HasFlag("met_clerk") {
		t.Error("expected imported player state")
	}
}
