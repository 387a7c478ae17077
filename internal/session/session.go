// Package session provides session file handling and persistence.
//
// A session stores the grouping structure and every dataset's styling,
// but not the data series themselves: datasets are recorded by file path
// and reloaded from disk when the session is opened.
package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"scatterforge/internal/dataset"
	"scatterforge/internal/loader"
)

// File represents a ScatterForge session file (.sfsession).
type File struct {
	Version  int       `json:"version"`
	Name     string    `json:"name"`
	Created  time.Time `json:"created"`
	Modified time.Time `json:"modified"`

	// Plot settings
	PlotType   string  `json:"plot_type"`
	PlotTitle  string  `json:"plot_title,omitempty"`
	Wavelength float64 `json:"wavelength,omitempty"`

	Groups     []GroupRecord      `json:"groups"`
	Unassigned []*dataset.Dataset `json:"unassigned"`
}

// GroupRecord is the persisted form of a display group.
type GroupRecord struct {
	Name         string             `json:"name"`
	DisplayLabel string             `json:"display_label,omitempty"`
	StackFactor  float64            `json:"stack_factor"`
	Visible      bool               `json:"visible"`
	Collapsed    bool               `json:"collapsed"`
	ColorScheme  string             `json:"color_scheme,omitempty"`
	ShowInLegend bool               `json:"show_in_legend"`
	LegendBold   bool               `json:"legend_bold,omitempty"`
	LegendItalic bool               `json:"legend_italic,omitempty"`
	Datasets     []*dataset.Dataset `json:"datasets"`
}

// New creates an empty session.
func New(name string) *File {
	now := time.Now()
	return &File{
		Version:  1,
		Name:     name,
		Created:  now,
		Modified: now,
		PlotType: "Log-Log",
	}
}

// Snapshot captures the current object graph into a session file. Dataset
// file paths are rewritten relative to the session location so the
// session stays portable alongside its data.
func Snapshot(name, sessionPath string, groups []*dataset.Group, unassigned []*dataset.Dataset) *File {
	f := New(name)
	dir := filepath.Dir(sessionPath)
	for _, g := range groups {
		rec := GroupRecord{
			Name:         g.Name,
			DisplayLabel: g.DisplayLabel,
			StackFactor:  g.StackFactor,
			Visible:      g.Visible,
			Collapsed:    g.Collapsed,
			ColorScheme:  g.ColorScheme,
			ShowInLegend: g.ShowInLegend,
			LegendBold:   g.LegendBold,
			LegendItalic: g.LegendItalic,
		}
		for _, d := range g.Datasets {
			rec.Datasets = append(rec.Datasets, relocated(d, dir))
		}
		f.Groups = append(f.Groups, rec)
	}
	for _, d := range unassigned {
		f.Unassigned = append(f.Unassigned, relocated(d, dir))
	}
	return f
}

// relocated copies a dataset record with its file path made relative to
// dir where possible.
func relocated(d *dataset.Dataset, dir string) *dataset.Dataset {
	cp := *d
	if rel, err := filepath.Rel(dir, d.FilePath); err == nil {
		cp.FilePath = rel
	}
	return &cp
}

// Load reads a session from a .sfsession file.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var f File
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse session %s: %w", path, err)
	}
	if f.Version != 1 {
		return nil, fmt.Errorf("unsupported session version %d", f.Version)
	}
	return &f, nil
}

// Save saves the session to a file.
func (f *File) Save(path string) error {
	f.Modified = time.Now()

	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// Restore rebuilds the live object graph from the session, reloading
// every dataset's series from its data file. Datasets whose files are
// missing are skipped and reported in the returned list.
func (f *File) Restore(sessionPath string) (groups []*dataset.Group, unassigned []*dataset.Dataset, missing []string, err error) {
	dir := filepath.Dir(sessionPath)

	for _, rec := range f.Groups {
		g := dataset.NewGroup(rec.Name, rec.StackFactor)
		g.DisplayLabel = rec.DisplayLabel
		if g.DisplayLabel == "" {
			g.DisplayLabel = rec.Name
		}
		g.Visible = rec.Visible
		g.Collapsed = rec.Collapsed
		g.ColorScheme = rec.ColorScheme
		g.ShowInLegend = rec.ShowInLegend
		g.LegendBold = rec.LegendBold
		g.LegendItalic = rec.LegendItalic
		for _, d := range rec.Datasets {
			ld, lerr := rehydrate(d, dir)
			if lerr != nil {
				missing = append(missing, d.FilePath)
				continue
			}
			g.Add(ld)
		}
		groups = append(groups, g)
	}
	for _, d := range f.Unassigned {
		ld, lerr := rehydrate(d, dir)
		if lerr != nil {
			missing = append(missing, d.FilePath)
			continue
		}
		unassigned = append(unassigned, ld)
	}
	return groups, unassigned, missing, nil
}

// rehydrate reloads a persisted dataset's series from disk, keeping the
// persisted styling.
func rehydrate(d *dataset.Dataset, dir string) (*dataset.Dataset, error) {
	path := d.FilePath
	if !filepath.IsAbs(path) {
		path = filepath.Join(dir, path)
	}
	table, err := loader.Load(path)
	if err != nil {
		return nil, err
	}
	cp := *d
	cp.FilePath = path
	cp.X = table.X
	cp.Y = table.Y
	cp.YErr = table.YErr
	return &cp, nil
}
