package main

import (
	"errors"
	"fmt"
	"log"
	"os"
	"os/exec"
	"runtime"

	"github.com/google/uuid"

	"github.com/langsard/pose/internal/app"
	"github.com/langsard/pose/internal/config"
	"github.com/langsard/pose/internal/detector"
	"github.com/langsard/pose/internal/server"
	"github.com/langsard/pose/internal/store"
	"github.com/langsard/pose/internal/tray"
)

func main() {
	fmt.Println("PoseCheck - Posture Snapshot Analyzer")

	cfg := config.Load()

	if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
		log.Fatalf("Failed to create data directory: %v", err)
	}

	st, err := store.New(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to initialize store: %v", err)
	}
	defer st.Close()

	defaults := store.Settings{
		ConfidenceThreshold: cfg.ConfidenceThreshold,
		PresenceThreshold:   cfg.PresenceThreshold,
		ExtendedJoints:      cfg.ExtendedJoints,
		MergePolicy:         cfg.MergePolicy,
		DisplayWidth:        cfg.DisplayWidth,
		DisplayHeight:       cfg.DisplayHeight,
	}

	model := activeModel(st, cfg)
	det := detector.NewMoveNet(detector.Config{
		ModelPath:         model.Path,
		InputSize:         model.InputSize,
		PresenceThreshold: cfg.PresenceThreshold,
	})

	application := app.New(app.Config{
		Store:      st,
		Detector:   det,
		CanvasSize: cfg.CanvasSize,
		Defaults:   defaults,
	})
	defer application.Close()

	var tr *tray.Tray
	if cfg.EnableTray {
		tr = tray.New()
	}

	if cfg.WarmStart {
		go func() {
			if err := det.Load(); err != nil {
				log.Printf("model load: %v", err)
			}
			if tr != nil {
				tr.SetDetectorState(string(det.State()))
			}
		}()
	}

	if cfg.StaticDir != "" {
		fmt.Printf("Serving static files from: %s\n", cfg.StaticDir)
	}

	srv := server.New(server.Config{
		StaticDir:       cfg.StaticDir,
		Store:           st,
		App:             application,
		Defaults:        defaults,
		OnModelActivate: application.UseModel,
	})

	if tr != nil {
		go func() {
			if err := srv.ListenAndServe(cfg.Addr); err != nil {
				log.Fatalf("Server failed: %v", err)
			}
		}()

		url := "http://localhost" + cfg.Addr
		tr.OnOpen(func() {
			if err := openBrowser(url); err != nil {
				log.Printf("open browser: %v", err)
			}
		})
		tr.Run()
		return
	}

	fmt.Printf("Starting server on %s\n", cfg.Addr)
	if err := srv.ListenAndServe(cfg.Addr); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

// activeModel returns the active registry entry, registering the seed
// model from the environment on first run.
func activeModel(st *store.Store, cfg config.Config) *store.Model {
	m, err := st.Models().Active()
	if err == nil {
		return m
	}
	if !errors.Is(err, store.ErrNotFound) {
		log.Printf("read model registry: %v", err)
	}

	m = &store.Model{
		ID:        uuid.New().String(),
		Name:      "movenet-thunder",
		Path:      cfg.ModelPath,
		InputSize: cfg.ModelInputSize,
		Active:    true,
	}
	if err := st.Models().Create(m); err != nil {
		log.Printf("register seed model: %v", err)
	}
	return m
}

// openBrowser opens the UI in the default browser.
func openBrowser(url string) error {
	switch runtime.GOOS {
	case "darwin":
		return exec.Command("open", url).Start()
	case "windows":
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", url).Start()
	default:
		return exec.Command("xdg-open", url).Start()
	}
}
