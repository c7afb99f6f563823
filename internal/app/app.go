// Package app runs the chart viewer window and render loop.
package app

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/stockbars/internal/assets"
	"github.com/Faultbox/stockbars/internal/config"
	"github.com/Faultbox/stockbars/internal/engine/capture"
	"github.com/Faultbox/stockbars/internal/engine/input"
	"github.com/Faultbox/stockbars/internal/engine/renderer"
	"github.com/Faultbox/stockbars/internal/engine/texture"
	"github.com/Faultbox/stockbars/internal/engine/window"
	"github.com/Faultbox/stockbars/internal/logger"
	"github.com/Faultbox/stockbars/internal/metrics"
	"github.com/Faultbox/stockbars/internal/viewer"
)

// Title is the window title.
const Title = "Stock Bars"

// App owns the window and drives the render loop.
type App struct {
	cfg      *config.Config
	window   *window.Window
	renderer *renderer.Renderer
	input    *input.State
	assets   *assets.Manager
	viewer   *viewer.Viewer
	shots    *capture.Screenshots
	log      *zap.Logger
}

// New opens the window and prepares the renderer. Must be called on the
// main thread.
func New(cfg *config.Config) (*App, error) {
	a := &App{
		cfg:   cfg,
		input: input.New(input.DefaultKeymap()),
		shots: capture.NewScreenshots(cfg.Graphics.ScreenshotDir, "stockbars"),
		log:   logger.Named("app"),
	}

	var err error
	a.assets, err = viewer.NewAssets(cfg.Data)
	if err != nil {
		return nil, err
	}

	a.window, err = window.New(window.FromGraphics(Title, cfg.Graphics))
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	// Renderer after the window, the GL context must exist
	w, h := a.window.DrawableSize()
	a.renderer, err = renderer.New(renderer.FromGraphics(cfg.Graphics, w, h))
	if err != nil {
		a.window.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	a.viewer = viewer.NewViewer(cfg, metrics.NewRecorder())
	return a, nil
}

// Run starts the loads in the background and renders until the window is
// closed, Escape is pressed or ctx is cancelled.
func (a *App) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	textures := texture.NewLoader(ctx, a.assets, texture.DefaultConcurrency)
	go func() {
		if err := a.viewer.Load(ctx, a.assets, textures); err != nil {
			a.log.Warn("rendering without a complete chart", zap.Error(err))
		}
	}()

	a.log.Info("starting render loop")
	frames := 0
	fpsTimer := time.Now()

	for ctx.Err() == nil {
		a.window.PollEvents(a.input)
		if a.input.QuitRequested() {
			break
		}
		if w, h, ok := a.input.TakeResize(); ok {
			a.renderer.Resize(w, h)
		}
		screenshot := false
		for _, action := range a.input.Triggered() {
			if action == input.ActionScreenshot {
				screenshot = true
				continue
			}
			a.viewer.Apply(action)
		}

		a.viewer.Tick()
		frame, entity := a.viewer.Frame(a.renderer.Aspect())
		a.renderer.Draw(frame, entity)
		if screenshot {
			a.saveScreenshot()
		}
		a.window.SwapBuffers()

		frames++
		if time.Since(fpsTimer) >= time.Second {
			a.log.Debug("fps", zap.Int("count", frames), zap.Int("bars", len(frame.Bars)))
			frames = 0
			fpsTimer = time.Now()
		}
	}

	a.log.Info("render loop stopped")
	return nil
}

// saveScreenshot writes the frame just drawn, before it is swapped out.
func (a *App) saveScreenshot() {
	pixels, w, h := a.renderer.ReadPixels()
	path, err := a.shots.SavePixels(pixels, w, h)
	if err != nil {
		a.log.Warn("screenshot failed", zap.Error(err))
		return
	}
	a.log.Info("screenshot saved", zap.String("path", path))
}

// Close releases the renderer, the window and cached assets.
func (a *App) Close() {
	a.log.Info("closing")
	if a.renderer != nil {
		a.renderer.Close()
	}
	if a.window != nil {
		a.window.Close()
	}
	if a.assets != nil {
		a.assets.Close()
	}
}
