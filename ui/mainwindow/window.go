// Package mainwindow provides the main application window.
package mainwindow

import (
	"errors"
	"fmt"
	"log"
	"path/filepath"

	"fyne.io/fyne/v2"
	fynecanvas "fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"

	"scatterforge/internal/app"
	"scatterforge/internal/dataset"
	"scatterforge/internal/plotmodel"
	"scatterforge/internal/version"
	"scatterforge/ui/panels"
	"scatterforge/ui/prefs"
)

var dataFilter = storage.NewExtensionFileFilter([]string{".dat", ".csv", ".txt", ".out"})
var sessionFilter = storage.NewExtensionFileFilter([]string{".sfsession"})
var exportFilter = storage.NewExtensionFileFilter([]string{".png", ".svg", ".pdf", ".tif", ".tiff"})

// MainWindow is the primary application window.
type MainWindow struct {
	fyne.Window
	app   fyne.App
	state *app.State
	prefs *prefs.Prefs

	treePanel *panels.TreePanel
	plotView  *fynecanvas.Image
	statusBar *widget.Label
	split     *container.Split
}

// New creates a new main window.
func New(fyneApp fyne.App, state *app.State, p *prefs.Prefs) *MainWindow {
	win := fyneApp.NewWindow(version.AppName)

	mw := &MainWindow{
		Window: win,
		app:    fyneApp,
		state:  state,
		prefs:  p,
	}

	mw.setupUI()
	mw.setupMenus()
	mw.setupEventHandlers()

	win.Resize(fyne.NewSize(
		float32(p.FloatWithFallback(prefs.KeyWindowWidth, 1200)),
		float32(p.FloatWithFallback(prefs.KeyWindowHeight, 800)),
	))
	win.SetOnClosed(mw.savePreferences)

	return mw
}

// setupUI creates the main UI layout.
func (mw *MainWindow) setupUI() {
	mw.treePanel = panels.NewTreePanel(mw.state)
	mw.treePanel.OnSelectionChanged = func(d *dataset.Dataset, g *dataset.Group) {
		switch {
		case d != nil:
			mw.updateStatus(d.Name + " - " + d.FilePath)
		case g != nil:
			mw.updateStatus(fmt.Sprintf("%s: %d dataset(s), stack factor %g",
				g.DisplayLabel, len(g.Datasets), g.StackFactor))
		}
	}

	mw.plotView = fynecanvas.NewImageFromImage(nil)
	mw.plotView.FillMode = fynecanvas.ImageFillContain

	mw.statusBar = widget.NewLabel("Ready")

	toolbar := container.NewHBox(
		widget.NewButton("Load Data...", mw.onLoadData),
		widget.NewButton("Auto-Group", mw.onAutoGroup),
		widget.NewSeparator(),
		widget.NewButton("Export...", mw.onExport),
	)

	plotArea := container.NewBorder(toolbar, nil, nil, nil, mw.plotView)

	mw.split = container.NewHSplit(mw.treePanel.Container(), plotArea)
	mw.split.SetOffset(mw.prefs.FloatWithFallback(prefs.KeySplitOffset, 0.25))

	content := container.NewBorder(
		nil,
		container.NewPadded(mw.statusBar),
		nil,
		nil,
		mw.split,
	)

	mw.SetContent(content)
}

// setupMenus creates the application menus.
func (mw *MainWindow) setupMenus() {
	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("Load Data...", mw.onLoadData),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Open Session...", mw.onOpenSession),
		fyne.NewMenuItem("Save Session", mw.onSaveSession),
		fyne.NewMenuItem("Save Session As...", mw.onSaveSessionAs),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Export Figure...", mw.onExport),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Quit", func() { mw.app.Quit() }),
	)

	groupMenu := fyne.NewMenu("Grouping",
		fyne.NewMenuItem("Auto-Group by Magnitude", mw.onAutoGroup),
		fyne.NewMenuItem("New Group...", mw.onNewGroup),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Move Selection to Group...", mw.onMoveToGroup),
		fyne.NewMenuItem("Rename Selection...", mw.onRenameSelection),
		fyne.NewMenuItem("Delete Selection", mw.onDeleteSelection),
	)

	plotItems := make([]*fyne.MenuItem, 0, len(plotmodel.PlotTypes))
	for _, t := range plotmodel.PlotTypes {
		typ := t
		plotItems = append(plotItems, fyne.NewMenuItem(string(typ), func() {
			mw.state.SetPlotType(typ)
		}))
	}
	plotMenu := fyne.NewMenu("Plot", plotItems...)

	helpMenu := fyne.NewMenu("Help",
		fyne.NewMenuItem("About", mw.onAbout),
	)

	mw.SetMainMenu(fyne.NewMainMenu(fileMenu, groupMenu, plotMenu, helpMenu))
}

// setupEventHandlers registers for application events.
func (mw *MainWindow) setupEventHandlers() {
	mw.state.On(app.EventSessionLoaded, func(data interface{}) {
		if path, ok := data.(string); ok {
			mw.SetTitle(version.AppName + " - " + filepath.Base(path))
			mw.updateStatus("Session loaded: " + path)
		}
	})

	mw.state.On(app.EventDatasetsLoaded, func(data interface{}) {
		if loaded, ok := data.([]*dataset.Dataset); ok {
			mw.updateStatus(fmt.Sprintf("Loaded %d dataset(s)", len(loaded)))
		}
	})

	mw.state.On(app.EventPlotChanged, func(interface{}) {
		mw.redrawPlot()
	})

	mw.state.On(app.EventModified, func(data interface{}) {
		if modified, ok := data.(bool); ok && modified {
			title := mw.Title()
			if len(title) > 0 && title[len(title)-1] != '*' {
				mw.SetTitle(title + " *")
			}
		}
	})
}

// redrawPlot re-renders the figure into the plot view.
func (mw *MainWindow) redrawPlot() {
	p, err := mw.state.Figure()
	if err != nil {
		if errors.Is(err, plotmodel.ErrNothingToPlot) {
			mw.plotView.Image = nil
			mw.plotView.Refresh()
			return
		}
		mw.updateStatus("Plot error: " + err.Error())
		return
	}
	// Screen preview renders at modest DPI; exports use the configured one.
	mw.plotView.Image = plotmodel.Raster(p, plotmodel.ExportOptions{DPI: 120})
	mw.plotView.Refresh()
}

// updateStatus updates the status bar text.
func (mw *MainWindow) updateStatus(text string) {
	mw.statusBar.SetText(text)
}

// getLastDir returns the last used directory as a ListableURI, or nil.
func (mw *MainWindow) getLastDir() fyne.ListableURI {
	path := mw.state.Config.Settings.LastDirectory
	if path == "" {
		return nil
	}
	listable, err := storage.ListerForURI(storage.NewFileURI(path))
	if err != nil {
		return nil
	}
	return listable
}

// saveLastDir remembers the directory of the given file path.
func (mw *MainWindow) saveLastDir(filePath string) {
	mw.state.Config.Settings.LastDirectory = filepath.Dir(filePath)
	if err := mw.state.Config.Save(); err != nil {
		log.Printf("save config: %v", err)
	}
}

func (mw *MainWindow) savePreferences() {
	size := mw.Canvas().Size()
	mw.prefs.SetFloat(prefs.KeyWindowWidth, float64(size.Width))
	mw.prefs.SetFloat(prefs.KeyWindowHeight, float64(size.Height))
	mw.prefs.SetFloat(prefs.KeySplitOffset, mw.split.Offset)
	if mw.state.SessionPath != "" {
		mw.prefs.SetString(prefs.KeyLastSession, mw.state.SessionPath)
	}
	if err := mw.prefs.Save(); err != nil {
		log.Printf("save window prefs: %v", err)
	}
}

// Menu action handlers

func (mw *MainWindow) onLoadData() {
	d := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		path := reader.URI().Path()
		reader.Close()
		mw.saveLastDir(path)

		_, failures := mw.state.LoadFiles([]string{path})
		for _, ferr := range failures {
			dialog.ShowError(ferr, mw.Window)
		}
	}, mw.Window)
	d.SetFilter(dataFilter)
	if dir := mw.getLastDir(); dir != nil {
		d.SetLocation(dir)
	}
	d.Show()
}

func (mw *MainWindow) onAutoGroup() {
	summary, err := mw.state.AutoGroupByMagnitude()
	if err != nil {
		dialog.ShowInformation("Auto-Group", err.Error(), mw.Window)
		return
	}
	dialog.ShowInformation("Auto-Group", summary, mw.Window)
}

func (mw *MainWindow) onNewGroup() {
	entry := widget.NewEntry()
	entry.SetPlaceHolder("Group name")
	dialog.ShowForm("New Group", "Create", "Cancel",
		[]*widget.FormItem{widget.NewFormItem("Name", entry)},
		func(ok bool) {
			if !ok || entry.Text == "" {
				return
			}
			if _, err := mw.state.AddGroup(entry.Text, 1); err != nil {
				dialog.ShowError(err, mw.Window)
			}
		}, mw.Window)
}

func (mw *MainWindow) onMoveToGroup() {
	d, _ := mw.treePanel.Selected()
	if d == nil {
		mw.updateStatus("Select a dataset first")
		return
	}

	groups, _ := mw.state.Snapshot()
	names := []string{"(unassigned)"}
	for _, g := range groups {
		names = append(names, g.Name)
	}
	sel := widget.NewSelect(names, nil)
	sel.SetSelectedIndex(0)

	dialog.ShowForm("Move to Group", "Move", "Cancel",
		[]*widget.FormItem{widget.NewFormItem("Group", sel)},
		func(ok bool) {
			if !ok {
				return
			}
			mw.state.MoveDatasetToGroup(d, mw.state.GroupByName(sel.Selected))
		}, mw.Window)
}

func (mw *MainWindow) onRenameSelection() {
	d, g := mw.treePanel.Selected()
	if d == nil && g == nil {
		mw.updateStatus("Select a dataset or group first")
		return
	}

	entry := widget.NewEntry()
	if d != nil {
		entry.SetText(d.DisplayLabel)
	} else {
		entry.SetText(g.DisplayLabel)
	}

	dialog.ShowForm("Rename", "Rename", "Cancel",
		[]*widget.FormItem{widget.NewFormItem("Label", entry)},
		func(ok bool) {
			if !ok {
				return
			}
			if d != nil {
				mw.state.RenameDataset(d, entry.Text)
			} else {
				mw.state.RenameGroup(g, entry.Text)
			}
		}, mw.Window)
}

func (mw *MainWindow) onDeleteSelection() {
	d, g := mw.treePanel.Selected()
	switch {
	case d != nil:
		mw.state.DeleteDataset(d)
	case g != nil:
		// Members return to the unassigned pool.
		mw.state.DeleteGroup(g)
	}
}

func (mw *MainWindow) onOpenSession() {
	d := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		path := reader.URI().Path()
		reader.Close()

		missing, err := mw.state.LoadSession(path)
		if err != nil {
			dialog.ShowError(err, mw.Window)
			return
		}
		if len(missing) > 0 {
			dialog.ShowInformation("Missing Data Files",
				fmt.Sprintf("%d data file(s) could not be found:\n%v", len(missing), missing),
				mw.Window)
		}
	}, mw.Window)
	d.SetFilter(sessionFilter)
	d.Show()
}

func (mw *MainWindow) onSaveSession() {
	if mw.state.SessionPath == "" {
		mw.onSaveSessionAs()
		return
	}
	if err := mw.state.SaveSession(mw.state.SessionPath); err != nil {
		dialog.ShowError(err, mw.Window)
		return
	}
	mw.SetTitle(version.AppName + " - " + filepath.Base(mw.state.SessionPath))
	mw.updateStatus("Session saved")
}

func (mw *MainWindow) onSaveSessionAs() {
	d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		path := writer.URI().Path()
		writer.Close()

		if err := mw.state.SaveSession(path); err != nil {
			dialog.ShowError(err, mw.Window)
			return
		}
		mw.SetTitle(version.AppName + " - " + filepath.Base(path))
		mw.updateStatus("Session saved: " + path)
	}, mw.Window)
	d.SetFileName("session.sfsession")
	d.SetFilter(sessionFilter)
	d.Show()
}

func (mw *MainWindow) onExport() {
	p, err := mw.state.Figure()
	if err != nil {
		dialog.ShowInformation("Export", "Nothing to export: "+err.Error(), mw.Window)
		return
	}

	d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		path := writer.URI().Path()
		writer.Close()

		opts := plotmodel.ExportOptions{
			DPI:    mw.state.Config.Settings.ExportDPI,
			Fields: mw.state.Meta.Fields(mw.state.PlotTitle, ""),
		}
		if err := plotmodel.Export(p, path, opts); err != nil {
			dialog.ShowError(err, mw.Window)
			return
		}
		mw.updateStatus("Exported: " + path)
	}, mw.Window)
	d.SetFileName("figure.png")
	d.SetFilter(exportFilter)
	d.Show()
}

func (mw *MainWindow) onAbout() {
	dialog.ShowInformation("About", version.AppName+" "+version.String(), mw.Window)
}
