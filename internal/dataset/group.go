package dataset

// Group is a named collection of datasets sharing a stack factor.
// The stack factor is a multiplicative Y offset applied at render time;
// it is never folded back into the member datasets.
type Group struct {
	Name         string `json:"name"`
	DisplayLabel string `json:"display_label"`

	StackFactor float64 `json:"stack_factor"`
	Visible     bool    `json:"visible"`
	Collapsed   bool    `json:"collapsed"`

	// ColorScheme optionally names a group-specific palette.
	ColorScheme string `json:"color_scheme,omitempty"`

	ShowInLegend bool `json:"show_in_legend"`
	LegendBold   bool `json:"legend_bold"`
	LegendItalic bool `json:"legend_italic"`

	// Datasets is owned by the group; insertion order is render and
	// legend order.
	Datasets []*Dataset `json:"datasets"`
}

// NewGroup creates an empty group with the given stack factor.
func NewGroup(name string, stackFactor float64) *Group {
	return &Group{
		Name:         name,
		DisplayLabel: name,
		StackFactor:  stackFactor,
		Visible:      true,
		ShowInLegend: true,
	}
}

// Add appends a dataset to the group.
func (g *Group) Add(d *Dataset) {
	g.Datasets = append(g.Datasets, d)
}

// Remove deletes a dataset from the group, preserving the order of the
// remaining members. It reports whether the dataset was present.
func (g *Group) Remove(d *Dataset) bool {
	for i, ds := range g.Datasets {
		if ds == d {
			g.Datasets = append(g.Datasets[:i], g.Datasets[i+1:]...)
			return true
		}
	}
	return false
}

// Contains reports whether the dataset is a member of the group.
func (g *Group) Contains(d *Dataset) bool {
	for _, ds := range g.Datasets {
		if ds == d {
			return true
		}
	}
	return false
}
