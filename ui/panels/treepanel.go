// Package panels provides the data tree panel of the main window.
package panels

import (
	"fmt"
	"strconv"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/widget"

	"scatterforge/internal/app"
	"scatterforge/internal/dataset"
	"scatterforge/internal/plotmodel"
)

// Tree node IDs. The tree is derived from the state on every callback, so
// IDs are positional: "u" is the unassigned branch, "g:2" the third
// group, "g:2/0" its first dataset, "u:1" the second unassigned dataset.
const (
	nodeRoot       = ""
	nodeUnassigned = "u"
)

// TreePanel shows the group/dataset hierarchy. It holds no copy of the
// model; every callback reads the state directly.
type TreePanel struct {
	state *app.State
	tree  *widget.Tree

	// OnSelectionChanged is called with the selected dataset and its
	// group. Either may be nil.
	OnSelectionChanged func(d *dataset.Dataset, g *dataset.Group)

	selected widget.TreeNodeID
}

// NewTreePanel creates the data tree bound to the application state.
func NewTreePanel(state *app.State) *TreePanel {
	tp := &TreePanel{state: state}

	tp.tree = widget.NewTree(
		tp.childIDs,
		tp.isBranch,
		func(branch bool) fyne.CanvasObject {
			return widget.NewLabel("")
		},
		func(id widget.TreeNodeID, branch bool, obj fyne.CanvasObject) {
			obj.(*widget.Label).SetText(tp.label(id))
		},
	)
	tp.tree.OnSelected = func(id widget.TreeNodeID) {
		tp.selected = id
		if tp.OnSelectionChanged != nil {
			d, g := tp.resolve(id)
			tp.OnSelectionChanged(d, g)
		}
	}

	state.On(app.EventTreeChanged, func(interface{}) {
		tp.Refresh()
	})
	return tp
}

// Container returns the panel's root widget.
func (tp *TreePanel) Container() fyne.CanvasObject {
	return tp.tree
}

// Refresh rebuilds the tree from the state.
func (tp *TreePanel) Refresh() {
	tp.tree.Refresh()
	tp.tree.OpenAllBranches()
}

// Selected returns the currently selected dataset and group. A selected
// group node yields a nil dataset; an unassigned dataset a nil group.
func (tp *TreePanel) Selected() (*dataset.Dataset, *dataset.Group) {
	return tp.resolve(tp.selected)
}

func (tp *TreePanel) childIDs(id widget.TreeNodeID) []widget.TreeNodeID {
	groups, unassigned := tp.state.Snapshot()

	switch {
	case id == nodeRoot:
		ids := []widget.TreeNodeID{nodeUnassigned}
		for i := range groups {
			ids = append(ids, fmt.Sprintf("g:%d", i))
		}
		return ids
	case id == nodeUnassigned:
		ids := make([]widget.TreeNodeID, len(unassigned))
		for i := range unassigned {
			ids[i] = fmt.Sprintf("u:%d", i)
		}
		return ids
	case strings.HasPrefix(id, "g:") && !strings.Contains(id, "/"):
		gi, err := strconv.Atoi(id[2:])
		if err != nil || gi >= len(groups) {
			return nil
		}
		ids := make([]widget.TreeNodeID, len(groups[gi].Datasets))
		for i := range groups[gi].Datasets {
			ids[i] = fmt.Sprintf("g:%d/%d", gi, i)
		}
		return ids
	}
	return nil
}

func (tp *TreePanel) isBranch(id widget.TreeNodeID) bool {
	if id == nodeRoot || id == nodeUnassigned {
		return true
	}
	return strings.HasPrefix(id, "g:") && !strings.Contains(id, "/")
}

func (tp *TreePanel) label(id widget.TreeNodeID) string {
	if id == nodeUnassigned {
		_, unassigned := tp.state.Snapshot()
		return fmt.Sprintf("Unassigned (%d)", len(unassigned))
	}
	d, g := tp.resolve(id)
	if d != nil {
		return d.DisplayLabel
	}
	if g != nil {
		label := g.DisplayLabel
		if suffix := plotmodel.PlainStackFactor(g.StackFactor); suffix != "" {
			label += " " + suffix
		}
		return fmt.Sprintf("%s (%d)", label, len(g.Datasets))
	}
	return id
}

// resolve maps a tree node ID back to model objects.
func (tp *TreePanel) resolve(id widget.TreeNodeID) (*dataset.Dataset, *dataset.Group) {
	groups, unassigned := tp.state.Snapshot()

	switch {
	case strings.HasPrefix(id, "u:"):
		i, err := strconv.Atoi(id[2:])
		if err != nil || i >= len(unassigned) {
			return nil, nil
		}
		return unassigned[i], nil
	case strings.HasPrefix(id, "g:"):
		rest := id[2:]
		gi, di, hasDataset := splitGroupID(rest)
		if gi < 0 || gi >= len(groups) {
			return nil, nil
		}
		g := groups[gi]
		if !hasDataset {
			return nil, g
		}
		if di < 0 || di >= len(g.Datasets) {
			return nil, g
		}
		return g.Datasets[di], g
	}
	return nil, nil
}

func splitGroupID(s string) (gi, di int, hasDataset bool) {
	gi, di = -1, -1
	if slash := strings.IndexByte(s, '/'); slash >= 0 {
		g, err1 := strconv.Atoi(s[:slash])
		d, err2 := strconv.Atoi(s[slash+1:])
		if err1 != nil || err2 != nil {
			return -1, -1, false
		}
		return g, d, true
	}
	g, err := strconv.Atoi(s)
	if err != nil {
		return -1, -1, false
	}
	return g, -1, false
}
