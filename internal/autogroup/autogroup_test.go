package autogroup

import (
	"errors"
	"math"
	"strings"
	"testing"

	"scatterforge/internal/dataset"
)

func mkDataset(t *testing.T, name string, y ...float64) *dataset.Dataset {
	t.Helper()
	x := make([]float64, len(y))
	for i := range x {
		x[i] = float64(i + 1)
	}
	return dataset.New(name+".dat", name, x, y, nil)
}

func TestMagnitude(t *testing.T) {
	tests := []struct {
		name  string
		y     []float64
		want  int
		wantOK bool
	}{
		{"exact decade", []float64{100, 100, 100}, 2, true},
		{"mean 50000 rounds up", []float64{50000, 50000}, 5, true},
		{"mean just below half decade", []float64{2000}, 3, true},
		{"unit scale", []float64{0.9, 1.1, 1.0}, 0, true},
		{"negative decade", []float64{0.001, 0.001}, -3, true},
		{"negative values filtered", []float64{-5, 10, -3, 10}, 1, true},
		{"zeroes filtered", []float64{0, 0, 1000}, 3, true},
		{"all non-positive", []float64{-1, 0, -0.5}, 0, false},
		{"empty", nil, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Magnitude(tt.y)
			if ok != tt.wantOK {
				t.Fatalf("Magnitude(%v) ok = %v, want %v", tt.y, ok, tt.wantOK)
			}
			if ok && got != tt.want {
				t.Errorf("Magnitude(%v) = %d, want %d", tt.y, got, tt.want)
			}
		})
	}
}

func TestGroupName(t *testing.T) {
	tests := []struct {
		label int
		want  string
	}{
		{2, "10^2"},
		{0, "10^0"},
		{-3, "10^(-3)"},
		{-1, "10^(-1)"},
		{7, "10^7"},
	}
	for _, tt := range tests {
		if got := GroupName(tt.label); got != tt.want {
			t.Errorf("GroupName(%d) = %q, want %q", tt.label, got, tt.want)
		}
	}
}

func TestBuildEmptyPool(t *testing.T) {
	if _, err := Build(nil); !errors.Is(err, ErrEmptyPool) {
		t.Fatalf("Build(nil) error = %v, want ErrEmptyPool", err)
	}
}

func TestBuildNoPositiveData(t *testing.T) {
	pool := []*dataset.Dataset{
		mkDataset(t, "a", -1, -2, 0),
		mkDataset(t, "b", 0, 0),
	}
	if _, err := Build(pool); !errors.Is(err, ErrNoPositiveData) {
		t.Fatalf("Build error = %v, want ErrNoPositiveData", err)
	}
}

// Stack factors are indexed over the sorted distinct labels, not derived
// from the label values: magnitudes {-2, 3, 7} still yield 1, 10, 100.
func TestBuildStackFactorsAreIndexBased(t *testing.T) {
	pool := []*dataset.Dataset{
		mkDataset(t, "high", 1e7, 1e7),
		mkDataset(t, "low", 0.01, 0.01),
		mkDataset(t, "mid", 1000, 1000),
	}
	plan, err := Build(pool)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(plan.Groups) != 3 {
		t.Fatalf("got %d groups, want 3", len(plan.Groups))
	}
	wantNames := []string{"10^(-2)", "10^3", "10^7"}
	wantFactors := []float64{1, 10, 100}
	for i, g := range plan.Groups {
		if g.Name != wantNames[i] {
			t.Errorf("group %d name = %q, want %q", i, g.Name, wantNames[i])
		}
		if g.StackFactor != wantFactors[i] {
			t.Errorf("group %d stack factor = %g, want %g", i, g.StackFactor, wantFactors[i])
		}
	}
}

// Equal labels always share a group; differing labels never do.
func TestBuildPartitionExactness(t *testing.T) {
	a := mkDataset(t, "a", 900, 1100)   // mean 1000 -> 3
	b := mkDataset(t, "b", 1000, 1000)  // 3
	c := mkDataset(t, "c", 10000, 10000) // 4
	plan, err := Build([]*dataset.Dataset{a, b, c})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(plan.Groups) != 2 {
		t.Fatalf("got %d groups, want 2 (labels 3 and 4 must not merge)", len(plan.Groups))
	}
	g3 := plan.Groups[0]
	if !g3.Contains(a) || !g3.Contains(b) {
		t.Errorf("datasets with equal labels split across groups")
	}
	if g3.Contains(c) {
		t.Errorf("label 4 dataset merged into label 3 group")
	}
}

func TestBuildEndToEnd(t *testing.T) {
	a := mkDataset(t, "A", 1.0, 1.0)
	b := mkDataset(t, "B", 1.2, 1.2)
	c := mkDataset(t, "C", 950, 950)
	d := mkDataset(t, "D", -1, 0, -3)
	pool := []*dataset.Dataset{a, b, c, d}

	plan, err := Build(pool)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(plan.Groups) != 2 {
		t.Fatalf("got %d groups, want 2", len(plan.Groups))
	}

	first := plan.Groups[0]
	if first.Name != "10^0" || first.StackFactor != 1 {
		t.Errorf("first group = %q factor %g, want 10^0 factor 1", first.Name, first.StackFactor)
	}
	if len(first.Datasets) != 2 || !first.Contains(a) || !first.Contains(b) {
		t.Errorf("10^0 group should contain exactly A and B")
	}

	second := plan.Groups[1]
	if second.Name != "10^3" || second.StackFactor != 10 {
		t.Errorf("second group = %q factor %g, want 10^3 factor 10", second.Name, second.StackFactor)
	}
	if len(second.Datasets) != 1 || !second.Contains(c) {
		t.Errorf("10^3 group should contain exactly C")
	}

	if plan.Took(d) {
		t.Errorf("dataset without positive values must stay unassigned")
	}
	for i, ds := range []*dataset.Dataset{a, b, c} {
		if !plan.Took(ds) {
			t.Errorf("classified dataset %d not claimed by plan", i)
		}
	}

	sum := plan.Summary()
	if !strings.Contains(sum, "2 group(s) created") {
		t.Errorf("summary missing group count: %q", sum)
	}
	if !strings.Contains(sum, "10^0: 2 dataset(s)") || !strings.Contains(sum, "10^3: 1 dataset(s)") {
		t.Errorf("summary missing per-group lines: %q", sum)
	}
	if strings.Index(sum, "10^0") > strings.Index(sum, "10^3") {
		t.Errorf("summary not in ascending magnitude order: %q", sum)
	}
}

// Build must not touch the pool it is given.
func TestBuildDoesNotMutateInput(t *testing.T) {
	a := mkDataset(t, "a", 10, 10)
	b := mkDataset(t, "b", -1, -1)
	pool := []*dataset.Dataset{a, b}

	if _, err := Build(pool); err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(pool) != 2 || pool[0] != a || pool[1] != b {
		t.Errorf("pool mutated by Build")
	}
	if got, ok := Magnitude(a.Y); !ok || got != 1 {
		t.Errorf("dataset Y series changed: label %d ok %v", got, ok)
	}
}

func TestBuildManyDecadesFactors(t *testing.T) {
	var pool []*dataset.Dataset
	for i := 0; i < 6; i++ {
		v := math.Pow(10, float64(i*2)) // labels 0, 2, 4, 6, 8, 10
		pool = append(pool, mkDataset(t, GroupName(i*2), v, v))
	}
	plan, err := Build(pool)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	for i, g := range plan.Groups {
		want := math.Pow(10, float64(i))
		if g.StackFactor != want {
			t.Errorf("group %d factor = %g, want %g", i, g.StackFactor, want)
		}
	}
}
