package dataset

import "testing"

func TestNewDefaults(t *testing.T) {
	d := New("/data/sample_01.dat", "", []float64{1}, []float64{2}, nil)
	if d.Name != "sample_01" {
		t.Errorf("Name = %q, want base name without extension", d.Name)
	}
	if d.DisplayLabel != "sample_01" {
		t.Errorf("DisplayLabel = %q", d.DisplayLabel)
	}
	if !d.ShowInLegend || !d.ShowErrorBars {
		t.Error("legend and error bars should default on")
	}
	if d.ErrorBarStyle != ErrorFill {
		t.Errorf("ErrorBarStyle = %q, want fill", d.ErrorBarStyle)
	}
}

func TestHasErrors(t *testing.T) {
	d := New("a.dat", "a", []float64{1, 2}, []float64{3, 4}, []float64{0.1, 0.2})
	if !d.HasErrors() {
		t.Error("dataset with matching error column should report errors")
	}
	d.YErr = []float64{0.1}
	if d.HasErrors() {
		t.Error("mismatched error column length should report no errors")
	}
	d.YErr = nil
	if d.HasErrors() {
		t.Error("nil error column should report no errors")
	}
}

func TestEffectiveStyle(t *testing.T) {
	meas := New("measurement.dat", "", nil, nil, nil)
	if line, marker := meas.EffectiveStyle(); line != LineNone || marker != MarkerCircle {
		t.Errorf("measurement style = (%q, %q), want markers", line, marker)
	}

	fit := New("sample_fit.dat", "", nil, nil, nil)
	if line, marker := fit.EffectiveStyle(); line != LineSolid || marker != MarkerNone {
		t.Errorf("fit style = (%q, %q), want solid line", line, marker)
	}

	// Explicit styling wins over the name rule.
	fit.MarkerStyle = MarkerSquare
	if _, marker := fit.EffectiveStyle(); marker != MarkerSquare {
		t.Error("explicit marker should override the fit-name rule")
	}
}

func TestInClip(t *testing.T) {
	d := New("a.dat", "a", nil, nil, nil)
	if !d.InClip(1, 2) {
		t.Error("empty clip should pass everything")
	}

	lo, hi := 0.5, 1.5
	d.Clip = Range{XMin: &lo, XMax: &hi}
	if d.InClip(0.4, 1) || d.InClip(1.6, 1) {
		t.Error("points outside x window should be clipped")
	}
	if !d.InClip(1.0, 1) {
		t.Error("point inside x window should pass")
	}
}

func TestGroupAddRemove(t *testing.T) {
	g := NewGroup("10^2", 10)
	if !g.Visible || !g.ShowInLegend {
		t.Error("new groups should be visible and in the legend")
	}

	a := New("a.dat", "a", nil, nil, nil)
	b := New("b.dat", "b", nil, nil, nil)
	c := New("c.dat", "c", nil, nil, nil)
	g.Add(a)
	g.Add(b)
	g.Add(c)

	if !g.Remove(b) {
		t.Fatal("Remove should report presence")
	}
	if g.Remove(b) {
		t.Error("second Remove should report absence")
	}
	if len(g.Datasets) != 2 || g.Datasets[0] != a || g.Datasets[1] != c {
		t.Error("Remove should preserve the order of remaining members")
	}
	if g.Contains(b) || !g.Contains(a) {
		t.Error("Contains out of sync after Remove")
	}
}
