package loader

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDetectDelimiter(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
		want  string
	}{
		{"tabs", []string{"1\t2\t3", "4\t5\t6"}, "\t"},
		{"commas", []string{"1,2", "3,4"}, ","},
		{"semicolons", []string{"1;2", "3;4"}, ";"},
		{"whitespace", []string{"1 2 3", "4 5 6"}, ""},
		{"comments ignored", []string{"# a,b,c", "% x;y", "1\t2"}, "\t"},
		{"empty", nil, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetectDelimiter(tt.lines); got != tt.want {
				t.Errorf("DetectDelimiter = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLoadTwoColumns(t *testing.T) {
	path := writeFile(t, "two.dat", "# comment\n0.1 10\n0.2 20\n")
	tab, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	want := &Table{X: []float64{0.1, 0.2}, Y: []float64{10, 20}}
	if diff := cmp.Diff(want, tab); diff != "" {
		t.Errorf("table mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadThreeColumnsTab(t *testing.T) {
	path := writeFile(t, "three.dat", "# q\tI\terr\n0.1\t10\t1\n0.2\t20\t2\n")
	tab, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	want := &Table{X: []float64{0.1, 0.2}, Y: []float64{10, 20}, YErr: []float64{1, 2}}
	if diff := cmp.Diff(want, tab); diff != "" {
		t.Errorf("table mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadFourColumnsDropsXErr(t *testing.T) {
	path := writeFile(t, "four.csv", "0.1,10,0.01,1\n0.2,20,0.02,2\n")
	tab, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	want := &Table{X: []float64{0.1, 0.2}, Y: []float64{10, 20}, YErr: []float64{1, 2}}
	if diff := cmp.Diff(want, tab); diff != "" {
		t.Errorf("table mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadWideTableTakesFirstThree(t *testing.T) {
	path := writeFile(t, "wide.dat", "0.1 10 1 99 99\n0.2 20 2 99 99\n")
	tab, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	want := &Table{X: []float64{0.1, 0.2}, Y: []float64{10, 20}, YErr: []float64{1, 2}}
	if diff := cmp.Diff(want, tab); diff != "" {
		t.Errorf("table mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadSkipsTextHeader(t *testing.T) {
	path := writeFile(t, "header.dat", "Sample XYZ\nq I err\n\n0.1\t10\t1\n")
	tab, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(tab.X) != 1 || tab.X[0] != 0.1 {
		t.Errorf("got X = %v, want [0.1]", tab.X)
	}
}

func TestLoadSkipsDelimiterOnlyLines(t *testing.T) {
	// Spreadsheet CSV exports emit ",,," for rows of empty cells, both
	// before and after the data block.
	tests := []struct {
		name    string
		content string
	}{
		{"leading", ",,,\n0.1,10\n0.2,20\n"},
		{"trailing", "0.1,10\n0.2,20\n,,,\n"},
		{"interior", "0.1,10\n,,,\n0.2,20\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, "empty_cells.csv", tt.content)
			tab, err := Load(path)
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			want := &Table{X: []float64{0.1, 0.2}, Y: []float64{10, 20}}
			if diff := cmp.Diff(want, tab); diff != "" {
				t.Errorf("table mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLoadDropsNonPositiveRows(t *testing.T) {
	path := writeFile(t, "neg.dat", "0.1 10\n0.2 -5\n-0.3 7\n0.4 0\n0.5 50\n")
	tab, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	want := &Table{X: []float64{0.1, 0.5}, Y: []float64{10, 50}}
	if diff := cmp.Diff(want, tab); diff != "" {
		t.Errorf("table mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadDropsNonFiniteRows(t *testing.T) {
	path := writeFile(t, "nan.dat", "0.1 10\n0.2 NaN\n0.3 Inf\n0.4 40\n")
	tab, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	want := &Table{X: []float64{0.1, 0.4}, Y: []float64{10, 40}}
	if diff := cmp.Diff(want, tab); diff != "" {
		t.Errorf("table mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"no valid points", "# only comments\n-1 -2\n"},
		{"one column", "1\n2\n3\n"},
		{"garbage in data", "0.1 10\n0.2 abc\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, "bad.dat", tt.content)
			if _, err := Load(path); err == nil {
				t.Errorf("Load succeeded, want error")
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.dat")); err == nil {
		t.Fatal("Load succeeded for missing file")
	}
}

func TestWriteExampleDataRoundTrip(t *testing.T) {
	dir := t.TempDir()
	paths, err := WriteExampleData(dir)
	if err != nil {
		t.Fatalf("WriteExampleData: %v", err)
	}
	if len(paths) != 3 {
		t.Fatalf("got %d files, want 3", len(paths))
	}
	for _, p := range paths {
		tab, err := Load(p)
		if err != nil {
			t.Errorf("Load(%s): %v", p, err)
			continue
		}
		if len(tab.X) == 0 {
			t.Errorf("Load(%s): empty table", p)
		}
	}
}
