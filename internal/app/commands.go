package app

import (
	"errors"
	"fmt"
	"log"

	"gonum.org/v1/plot"

	"scatterforge/internal/autogroup"
	"scatterforge/internal/config"
	"scatterforge/internal/dataset"
	"scatterforge/internal/loader"
	"scatterforge/internal/plotmodel"
	"scatterforge/internal/session"
)

// ErrGroupExists is returned when a group name is already taken.
var ErrGroupExists = errors.New("group name already in use")

// LoadFiles loads data files into the unassigned pool. Files that fail to
// parse are skipped and reported in the returned error list; the loaded
// datasets are returned either way.
func (s *State) LoadFiles(paths []string) ([]*dataset.Dataset, []error) {
	var loaded []*dataset.Dataset
	var failures []error

	for _, path := range paths {
		table, err := loader.Load(path)
		if err != nil {
			failures = append(failures, fmt.Errorf("%s: %w", path, err))
			continue
		}
		d := dataset.New(path, "", table.X, table.Y, table.YErr)
		if preset, ok := s.Config.PresetForFilename(path); ok {
			preset.Apply(d)
			log.Printf("auto-styled %s with preset rules", d.Name)
		}
		loaded = append(loaded, d)
	}

	if len(loaded) > 0 {
		s.mu.Lock()
		s.Unassigned = append(s.Unassigned, loaded...)
		s.mu.Unlock()

		s.SetModified(true)
		s.Emit(EventDatasetsLoaded, loaded)
		s.Emit(EventTreeChanged, nil)
		s.Emit(EventPlotChanged, nil)
	}
	return loaded, failures
}

// GroupByName returns the group with the given name, or nil.
func (s *State) GroupByName(name string) *dataset.Group {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, g := range s.Groups {
		if g.Name == name {
			return g
		}
	}
	return nil
}

// AddGroup creates a new empty group at the end of the group list.
func (s *State) AddGroup(name string, stackFactor float64) (*dataset.Group, error) {
	if s.GroupByName(name) != nil {
		return nil, fmt.Errorf("%w: %s", ErrGroupExists, name)
	}
	g := dataset.NewGroup(name, stackFactor)

	s.mu.Lock()
	s.Groups = append(s.Groups, g)
	s.mu.Unlock()

	s.SetModified(true)
	s.Emit(EventTreeChanged, nil)
	return g, nil
}

// DeleteGroup removes a group. Its member datasets return to the
// unassigned pool rather than being deleted with it.
func (s *State) DeleteGroup(g *dataset.Group) {
	s.mu.Lock()
	for i, cur := range s.Groups {
		if cur == g {
			s.Groups = append(s.Groups[:i], s.Groups[i+1:]...)
			s.Unassigned = append(s.Unassigned, g.Datasets...)
			break
		}
	}
	s.mu.Unlock()

	s.SetModified(true)
	s.Emit(EventTreeChanged, nil)
	s.Emit(EventPlotChanged, nil)
}

// MoveDatasetToGroup moves a dataset from wherever it currently lives
// into the target group. A nil target moves it to the unassigned pool.
func (s *State) MoveDatasetToGroup(d *dataset.Dataset, target *dataset.Group) {
	s.mu.Lock()
	s.detachLocked(d)
	if target != nil {
		target.Add(d)
	} else {
		s.Unassigned = append(s.Unassigned, d)
	}
	s.mu.Unlock()

	s.SetModified(true)
	s.Emit(EventTreeChanged, nil)
	s.Emit(EventPlotChanged, nil)
}

// DeleteDataset removes a dataset from the session entirely.
func (s *State) DeleteDataset(d *dataset.Dataset) {
	s.mu.Lock()
	s.detachLocked(d)
	s.mu.Unlock()

	s.SetModified(true)
	s.Emit(EventTreeChanged, nil)
	s.Emit(EventPlotChanged, nil)
}

// detachLocked removes d from the unassigned pool or its current group.
// Callers hold s.mu.
func (s *State) detachLocked(d *dataset.Dataset) {
	for i, cur := range s.Unassigned {
		if cur == d {
			s.Unassigned = append(s.Unassigned[:i], s.Unassigned[i+1:]...)
			return
		}
	}
	for _, g := range s.Groups {
		if g.Remove(d) {
			return
		}
	}
}

// RenameDataset changes a dataset's display label. The internal name and
// file path stay fixed so fit-name styling and reloads keep working.
func (s *State) RenameDataset(d *dataset.Dataset, label string) {
	if label == "" {
		return
	}
	s.mu.Lock()
	d.DisplayLabel = label
	s.mu.Unlock()

	s.SetModified(true)
	s.Emit(EventTreeChanged, nil)
	s.Emit(EventPlotChanged, nil)
}

// RenameGroup changes a group's display label, keeping the internal name
// as the stable lookup key.
func (s *State) RenameGroup(g *dataset.Group, label string) {
	if label == "" {
		return
	}
	s.mu.Lock()
	g.DisplayLabel = label
	s.mu.Unlock()

	s.SetModified(true)
	s.Emit(EventTreeChanged, nil)
	s.Emit(EventPlotChanged, nil)
}

// SetStackFactor changes a group's stack factor and triggers a redraw.
func (s *State) SetStackFactor(g *dataset.Group, factor float64) {
	s.mu.Lock()
	g.StackFactor = factor
	s.mu.Unlock()

	s.SetModified(true)
	s.Emit(EventPlotChanged, nil)
}

// UnifyGroupColors assigns every member of the group a color from the
// named scheme, cycling when the group outgrows the palette. An unknown
// scheme name is a no-op.
func (s *State) UnifyGroupColors(g *dataset.Group, scheme string) {
	colors, ok := s.Config.Scheme(scheme)
	if !ok || len(colors) == 0 {
		return
	}

	s.mu.Lock()
	g.ColorScheme = scheme
	for i, d := range g.Datasets {
		d.Color = colors[i%len(colors)]
	}
	s.mu.Unlock()

	s.SetModified(true)
	s.Emit(EventPlotChanged, nil)
}

// AutoGroupByMagnitude partitions the unassigned pool into groups by the
// order of magnitude of each dataset's mean intensity. The operation is
// all-or-nothing: on error the state is unchanged. New groups are
// appended after any existing groups. Returns a human-readable summary.
func (s *State) AutoGroupByMagnitude() (string, error) {
	s.mu.Lock()
	plan, err := autogroup.Build(s.Unassigned)
	if err != nil {
		s.mu.Unlock()
		return "", err
	}

	remaining := s.Unassigned[:0]
	for _, d := range s.Unassigned {
		if !plan.Took(d) {
			remaining = append(remaining, d)
		}
	}
	s.Unassigned = remaining
	s.Groups = append(s.Groups, plan.Groups...)
	s.mu.Unlock()

	s.SetModified(true)
	s.Emit(EventTreeChanged, nil)
	s.Emit(EventPlotChanged, nil)
	return plan.Summary(), nil
}

// Figure assembles the current plot from the state.
func (s *State) Figure() (*plot.Plot, error) {
	s.mu.RLock()
	opts := plotmodel.Options{
		Type:       s.PlotType,
		Title:      s.PlotTitle,
		Wavelength: s.Wavelength,
		SchemeFor:  s.Config.Scheme,
	}
	if tubaf, ok := s.Config.Scheme(config.SchemeTUBAF); ok {
		opts.Palette = tubaf
	}
	groups := append([]*dataset.Group(nil), s.Groups...)
	unassigned := append([]*dataset.Dataset(nil), s.Unassigned...)
	s.mu.RUnlock()

	return plotmodel.Figure(groups, unassigned, opts)
}

// SaveSession writes the current state to a session file.
func (s *State) SaveSession(path string) error {
	s.mu.RLock()
	f := session.Snapshot(s.PlotTitle, path, s.Groups, s.Unassigned)
	f.PlotType = string(s.PlotType)
	f.PlotTitle = s.PlotTitle
	f.Wavelength = s.Wavelength
	s.mu.RUnlock()

	if err := f.Save(path); err != nil {
		return err
	}

	s.mu.Lock()
	s.SessionPath = path
	s.Modified = false
	s.mu.Unlock()

	s.Emit(EventSessionSaved, path)
	return nil
}

// LoadSession replaces the current state with a session loaded from disk.
// Datasets whose data files are missing are skipped; their paths are
// returned so the caller can warn about them.
func (s *State) LoadSession(path string) ([]string, error) {
	f, err := session.Load(path)
	if err != nil {
		return nil, err
	}
	groups, unassigned, missing, err := f.Restore(path)
	if err != nil {
		return missing, err
	}

	s.mu.Lock()
	s.SessionPath = path
	s.Modified = false
	s.Groups = groups
	s.Unassigned = unassigned
	s.PlotType = plotmodel.PlotType(f.PlotType)
	s.PlotTitle = f.PlotTitle
	if f.Wavelength > 0 {
		s.Wavelength = f.Wavelength
	}
	s.mu.Unlock()

	s.Emit(EventSessionLoaded, path)
	s.Emit(EventTreeChanged, nil)
	s.Emit(EventPlotChanged, nil)
	return missing, nil
}
