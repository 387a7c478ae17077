package app

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"scatterforge/internal/autogroup"
	"scatterforge/internal/config"
	"scatterforge/internal/dataset"
)

func newTestState(t *testing.T) *State {
	t.Helper()
	return NewState(config.Load(t.TempDir()))
}

// flatDataset builds a dataset whose mean intensity is exactly mean.
func flatDataset(name string, mean float64) *dataset.Dataset {
	return dataset.New(name+".dat", name, []float64{0.1, 0.2, 0.3}, []float64{mean, mean, mean}, nil)
}

func TestAutoGroupByMagnitude(t *testing.T) {
	s := newTestState(t)
	s.Unassigned = []*dataset.Dataset{
		flatDataset("low", 0.005),  // magnitude -2
		flatDataset("mid", 95),     // magnitude 2
		flatDataset("mid2", 110),   // magnitude 2
		flatDataset("high", 50000), // magnitude 5
	}

	var treeEvents, plotEvents int
	s.On(EventTreeChanged, func(interface{}) { treeEvents++ })
	s.On(EventPlotChanged, func(interface{}) { plotEvents++ })

	summary, err := s.AutoGroupByMagnitude()
	if err != nil {
		t.Fatalf("AutoGroupByMagnitude: %v", err)
	}

	if len(s.Unassigned) != 0 {
		t.Errorf("pool not emptied: %d left", len(s.Unassigned))
	}
	if len(s.Groups) != 3 {
		t.Fatalf("got %d groups, want 3", len(s.Groups))
	}

	wantNames := []string{"10^(-2)", "10^2", "10^5"}
	wantFactors := []float64{1, 10, 100}
	for i, g := range s.Groups {
		if g.Name != wantNames[i] {
			t.Errorf("group[%d].Name = %q, want %q", i, g.Name, wantNames[i])
		}
		if g.StackFactor != wantFactors[i] {
			t.Errorf("group[%d].StackFactor = %g, want %g", i, g.StackFactor, wantFactors[i])
		}
	}
	if n := len(s.Groups[1].Datasets); n != 2 {
		t.Errorf("magnitude-2 group has %d datasets, want 2", n)
	}
	if !strings.Contains(summary, "3 group(s) created") {
		t.Errorf("summary = %q", summary)
	}
	if treeEvents != 1 || plotEvents != 1 {
		t.Errorf("tree/plot events = %d/%d, want 1/1", treeEvents, plotEvents)
	}
}

func TestAutoGroupAppendsAfterExistingGroups(t *testing.T) {
	s := newTestState(t)
	existing, err := s.AddGroup("manual", 1)
	if err != nil {
		t.Fatal(err)
	}
	s.Unassigned = []*dataset.Dataset{flatDataset("a", 100)}

	if _, err := s.AutoGroupByMagnitude(); err != nil {
		t.Fatal(err)
	}
	if s.Groups[0] != existing {
		t.Error("existing group displaced from front")
	}
	if s.Groups[1].Name != "10^2" {
		t.Errorf("new group = %q, want 10^2", s.Groups[1].Name)
	}
}

func TestAutoGroupEmptyPoolLeavesStateUntouched(t *testing.T) {
	s := newTestState(t)
	s.AddGroup("manual", 1)

	var events int
	s.On(EventTreeChanged, func(interface{}) { events++ })

	if _, err := s.AutoGroupByMagnitude(); err != autogroup.ErrEmptyPool {
		t.Fatalf("err = %v, want ErrEmptyPool", err)
	}
	if len(s.Groups) != 1 || events != 0 {
		t.Error("state changed on failed auto-group")
	}
}

func TestAutoGroupSkipsNonPositiveDatasets(t *testing.T) {
	s := newTestState(t)
	dark := dataset.New("dark.dat", "dark", []float64{0.1, 0.2}, []float64{-1, 0}, nil)
	s.Unassigned = []*dataset.Dataset{flatDataset("a", 100), dark}

	if _, err := s.AutoGroupByMagnitude(); err != nil {
		t.Fatal(err)
	}
	if len(s.Unassigned) != 1 || s.Unassigned[0] != dark {
		t.Errorf("non-positive dataset should stay in pool, got %v", s.Unassigned)
	}
}

func TestDeleteGroupReturnsMembersToPool(t *testing.T) {
	s := newTestState(t)
	g, err := s.AddGroup("g", 10)
	if err != nil {
		t.Fatal(err)
	}
	d := flatDataset("member", 100)
	g.Add(d)

	s.DeleteGroup(g)
	if len(s.Groups) != 0 {
		t.Error("group not removed")
	}
	if len(s.Unassigned) != 1 || s.Unassigned[0] != d {
		t.Error("member did not return to unassigned pool")
	}
}

func TestMoveDatasetToGroup(t *testing.T) {
	s := newTestState(t)
	d := flatDataset("d", 100)
	s.Unassigned = []*dataset.Dataset{d}
	g, _ := s.AddGroup("g", 1)

	s.MoveDatasetToGroup(d, g)
	if len(s.Unassigned) != 0 || !g.Contains(d) {
		t.Fatal("dataset not moved into group")
	}

	s.MoveDatasetToGroup(d, nil)
	if g.Contains(d) || len(s.Unassigned) != 1 {
		t.Fatal("dataset not moved back to pool")
	}
}

func TestAddGroupRejectsDuplicateName(t *testing.T) {
	s := newTestState(t)
	if _, err := s.AddGroup("g", 1); err != nil {
		t.Fatal(err)
	}
	if _, err := s.AddGroup("g", 2); err == nil {
		t.Error("expected duplicate name error")
	}
}

func TestRenameKeepsInternalName(t *testing.T) {
	s := newTestState(t)
	g, _ := s.AddGroup("10^2", 1)
	d := flatDataset("sample_fit", 100)
	g.Add(d)

	s.RenameGroup(g, "SAXS series")
	s.RenameDataset(d, "Fit of sample 1")

	if g.Name != "10^2" || g.DisplayLabel != "SAXS series" {
		t.Errorf("group = %q/%q", g.Name, g.DisplayLabel)
	}
	if d.Name != "sample_fit" || d.DisplayLabel != "Fit of sample 1" {
		t.Errorf("dataset = %q/%q", d.Name, d.DisplayLabel)
	}

	s.RenameGroup(g, "")
	if g.DisplayLabel != "SAXS series" {
		t.Error("empty label should be a no-op")
	}
}

func TestUnifyGroupColors(t *testing.T) {
	s := newTestState(t)
	g, _ := s.AddGroup("g", 1)
	for i := 0; i < 12; i++ {
		g.Add(flatDataset("d", 100))
	}

	s.UnifyGroupColors(g, config.SchemeTUBAF)
	colors, _ := s.Config.Scheme(config.SchemeTUBAF)
	if g.Datasets[0].Color != colors[0] {
		t.Errorf("first color = %q, want %q", g.Datasets[0].Color, colors[0])
	}
	// Palette has 10 entries, member 10 wraps to the first color.
	if g.Datasets[10].Color != colors[0] {
		t.Errorf("cycled color = %q, want %q", g.Datasets[10].Color, colors[0])
	}

	before := g.Datasets[0].Color
	s.UnifyGroupColors(g, "no-such-scheme")
	if g.Datasets[0].Color != before {
		t.Error("unknown scheme should be a no-op")
	}
}

func TestSessionRoundTripThroughState(t *testing.T) {
	dir := t.TempDir()
	dataPath := filepath.Join(dir, "sample.dat")
	content := "0.1\t100\n0.2\t80\n0.3\t60\n"
	if err := os.WriteFile(dataPath, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	s := newTestState(t)
	if _, failures := s.LoadFiles([]string{dataPath}); len(failures) != 0 {
		t.Fatalf("LoadFiles failures: %v", failures)
	}
	if _, err := s.AutoGroupByMagnitude(); err != nil {
		t.Fatal(err)
	}
	s.PlotTitle = "round trip"

	sessionPath := filepath.Join(dir, "s.sfsession")
	if err := s.SaveSession(sessionPath); err != nil {
		t.Fatalf("SaveSession: %v", err)
	}
	if s.Modified {
		t.Error("Modified should clear after save")
	}

	s2 := newTestState(t)
	missing, err := s2.LoadSession(sessionPath)
	if err != nil {
		t.Fatalf("LoadSession: %v", err)
	}
	if len(missing) != 0 {
		t.Fatalf("missing files: %v", missing)
	}
	if len(s2.Groups) != 1 || s2.Groups[0].Name != "10^2" {
		t.Fatalf("groups not restored: %+v", s2.Groups)
	}
	if s2.PlotTitle != "round trip" {
		t.Errorf("PlotTitle = %q", s2.PlotTitle)
	}
	if len(s2.Groups[0].Datasets[0].X) != 3 {
		t.Error("dataset series not reloaded")
	}
}
