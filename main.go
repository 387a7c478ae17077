// Package main provides the entry point for the ScatterForge application.
package main

import (
	"log"
	"os"

	fyneapp "fyne.io/fyne/v2/app"

	"scatterforge/internal/app"
	"scatterforge/internal/config"
	"scatterforge/internal/version"
	"scatterforge/ui/mainwindow"
	"scatterforge/ui/prefs"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Printf("Starting %s", version.String())

	fyneApp := fyneapp.NewWithID("org.scatterforge.app")

	cfg := config.Load(config.DefaultDir())
	fyneApp.Settings().SetTheme(&app.Theme{Dark: cfg.Settings.DarkMode})

	state := app.NewState(cfg)
	windowPrefs := prefs.Load()

	win := mainwindow.New(fyneApp, state, windowPrefs)

	// A session file on the command line is opened on startup.
	if len(os.Args) > 1 {
		sessionPath := os.Args[1]
		if missing, err := state.LoadSession(sessionPath); err != nil {
			log.Printf("Failed to load session %s: %v", sessionPath, err)
		} else if len(missing) > 0 {
			log.Printf("Session %s: %d data file(s) missing", sessionPath, len(missing))
		}
	}

	win.ShowAndRun()
}
