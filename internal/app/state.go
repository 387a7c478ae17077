// Package app provides application lifecycle management, configuration, and events.
package app

import (
	"sync"

	"scatterforge/internal/config"
	"scatterforge/internal/dataset"
	"scatterforge/internal/metadata"
	"scatterforge/internal/plotmodel"
)

// State holds the application state: the loaded datasets, their grouping,
// the plot settings, and the user configuration.
type State struct {
	mu sync.RWMutex

	// Session
	SessionPath string
	Modified    bool

	// Configuration and metadata profile
	Config *config.Config
	Meta   *metadata.UserMetadata

	// Object graph. Groups own their member datasets; Unassigned holds
	// datasets not in any group. Slice order is render and tree order.
	Groups     []*dataset.Group
	Unassigned []*dataset.Dataset

	// Plot settings
	PlotType   plotmodel.PlotType
	PlotTitle  string
	Wavelength float64 // nm, for the 2-Theta transform

	// Event listeners
	listeners map[EventType][]EventListener
}

// EventType identifies different application events.
type EventType int

const (
	EventSessionLoaded EventType = iota
	EventSessionSaved
	EventDatasetsLoaded
	EventTreeChanged
	EventPlotChanged
	EventModified
	EventSelectionChanged
)

// EventListener is called when an event occurs.
type EventListener func(data interface{})

// CuKAlpha is the Cu K-alpha X-ray wavelength in nm, the default for the
// 2-Theta conversion.
const CuKAlpha = 0.15406

// NewState creates a new application state around a loaded configuration.
func NewState(cfg *config.Config) *State {
	return &State{
		Config:     cfg,
		Meta:       metadata.LoadUserMetadata(cfg.Dir()),
		PlotType:   plotmodel.LogLog,
		Wavelength: CuKAlpha,
		listeners:  make(map[EventType][]EventListener),
	}
}

// On registers an event listener for the specified event type.
func (s *State) On(event EventType, listener EventListener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners[event] = append(s.listeners[event], listener)
}

// Emit triggers all listeners for the specified event type.
func (s *State) Emit(event EventType, data interface{}) {
	s.mu.RLock()
	listeners := s.listeners[event]
	s.mu.RUnlock()

	for _, listener := range listeners {
		listener(data)
	}
}

// SetModified marks the session as modified and emits an event.
func (s *State) SetModified(modified bool) {
	s.mu.Lock()
	s.Modified = modified
	s.mu.Unlock()
	s.Emit(EventModified, modified)
}

// SetPlotType switches the plot representation and triggers a redraw.
func (s *State) SetPlotType(t plotmodel.PlotType) {
	s.mu.Lock()
	s.PlotType = t
	s.mu.Unlock()
	s.Emit(EventPlotChanged, nil)
}

// SetWavelength sets the wavelength used by the 2-Theta transform.
func (s *State) SetWavelength(nm float64) {
	s.mu.Lock()
	s.Wavelength = nm
	s.mu.Unlock()
	s.Emit(EventPlotChanged, nil)
}

// SetPlotTitle sets the figure title.
func (s *State) SetPlotTitle(title string) {
	s.mu.Lock()
	s.PlotTitle = title
	s.mu.Unlock()
	s.SetModified(true)
	s.Emit(EventPlotChanged, nil)
}

// Snapshot returns copies of the group and unassigned slices for
// rendering. The referenced datasets are shared, not copied.
func (s *State) Snapshot() (groups []*dataset.Group, unassigned []*dataset.Dataset) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	groups = append(groups, s.Groups...)
	unassigned = append(unassigned, s.Unassigned...)
	return groups, unassigned
}
