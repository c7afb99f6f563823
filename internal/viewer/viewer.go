// Package viewer holds the chart state shared by the loaders and the render
// loop. It does not touch SDL or OpenGL.
package viewer

import (
	"bytes"
	"context"
	"fmt"
	"math/rand/v2"
	"sync/atomic"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Faultbox/stockbars/internal/chart"
	"github.com/Faultbox/stockbars/internal/config"
	"github.com/Faultbox/stockbars/internal/dataset"
	"github.com/Faultbox/stockbars/internal/engine/camera"
	"github.com/Faultbox/stockbars/internal/engine/input"
	"github.com/Faultbox/stockbars/internal/logger"
	"github.com/Faultbox/stockbars/internal/metrics"
	"github.com/Faultbox/stockbars/pkg/wavefront"
)

// Viewer is the chart state shared by the loaders and the render loop.
// Only the render loop touches the scene; the model and data are published
// through atomic snapshots.
type Viewer struct {
	cfg     *config.Config
	scene   chart.Scene
	layout  chart.Layout
	palette chart.Palette

	entity atomic.Pointer[wavefront.Entity]
	series dataset.Series

	rng     *rand.Rand
	metrics *metrics.Recorder
	log     *zap.Logger
}

// NewViewer creates a viewer with the camera and layout from cfg.
func NewViewer(cfg *config.Config, rec *metrics.Recorder) *Viewer {
	cam := camera.New(mgl32.Vec3(cfg.Camera.Position), mgl32.Vec3(cfg.Camera.Target))
	cam.Speed = cfg.Camera.Speed
	cam.FovY = cfg.Camera.FovY
	cam.Near = cfg.Camera.Near
	cam.Far = cfg.Camera.Far

	palette := chart.DefaultPalette
	if len(cfg.Chart.Palette) > 0 {
		palette = make(chart.Palette, len(cfg.Chart.Palette))
		for i, c := range cfg.Chart.Palette {
			palette[i] = chart.Color(c)
		}
	}

	return &Viewer{
		cfg:     cfg,
		scene:   chart.NewScene(cam),
		layout:  chart.Layout{SpacingX: cfg.Chart.BarSpacing, SpacingZ: cfg.Chart.TimeSpacing},
		palette: palette,
		rng:     rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0x5eed)),
		metrics: rec,
		log:     logger.Named("viewer"),
	}
}

// Load fetches the bar model and the price table concurrently. Each load
// publishes its result as soon as it finishes. A failure is logged and
// leaves that part empty; the first error is returned.
func (v *Viewer) Load(ctx context.Context, f wavefront.Fetcher, textures wavefront.TextureLoader) error {
	var g errgroup.Group
	g.Go(func() error { return v.loadModel(ctx, f, textures) })
	g.Go(func() error { return v.loadData(ctx, f) })
	return g.Wait()
}

func (v *Viewer) loadModel(ctx context.Context, f wavefront.Fetcher, textures wavefront.TextureLoader) error {
	opts := []wavefront.LoaderOption{wavefront.WithImagePrefix(v.cfg.Data.ImagePrefix)}
	if textures != nil {
		opts = append(opts, wavefront.WithTextureLoader(textures))
	}
	loader := wavefront.NewLoader(f, opts...)

	timer := metrics.NewTimer()
	e, err := loader.Load(ctx, v.cfg.Data.ModelPath, wavefront.LoadOptions{
		ResolveMaterials: v.cfg.Data.ResolveMaterials,
	})
	v.metrics.RecordLoad(metrics.KindModel, err, timer.Duration())
	if err != nil {
		v.log.Error("model load failed", zap.String("path", v.cfg.Data.ModelPath), zap.Error(err))
		return err
	}

	v.entity.Store(e)
	v.metrics.RecordModel(e.VertexCount())
	b := e.Bounds()
	v.log.Info("model loaded",
		zap.String("path", v.cfg.Data.ModelPath),
		zap.Int("vertices", e.VertexCount()),
		zap.Int("components", len(e.Components())),
		zap.Float32s("min", b.Min[:]),
		zap.Float32s("max", b.Max[:]),
		zap.Duration("took", timer.Duration()))
	return nil
}

func (v *Viewer) loadData(ctx context.Context, f wavefront.Fetcher) error {
	timer := metrics.NewTimer()
	data, err := f.Fetch(ctx, v.cfg.Data.StocksPath)
	var table *dataset.Table
	if err == nil {
		table, err = dataset.ParseCSV(bytes.NewReader(data))
	}
	v.metrics.RecordLoad(metrics.KindDataset, err, timer.Duration())
	if err != nil {
		err = fmt.Errorf("loading %s: %w", v.cfg.Data.StocksPath, err)
		v.log.Error("price data load failed", zap.Error(err))
		return err
	}

	v.publish(table.Points())
	v.log.Info("price data loaded",
		zap.String("path", v.cfg.Data.StocksPath),
		zap.Int("months", len(table.Months)),
		zap.Strings("symbols", table.Symbols))
	return nil
}

func (v *Viewer) publish(points []chart.DataPoint) {
	v.series.Replace(points)
	v.metrics.RecordData(len(points))
	for _, entry := range dataset.Legend(points, v.palette) {
		v.log.Info(entry.String())
	}
}

// Refresh replaces the data with a simulated update. It does nothing
// before the data has loaded.
func (v *Viewer) Refresh() {
	points := v.series.Load()
	if len(points) == 0 {
		v.log.Debug("refresh ignored, no data yet")
		return
	}
	v.publish(dataset.Simulate(points, v.rng, v.cfg.Chart.UpdateJitter, v.cfg.Chart.PriceFloor))
	v.metrics.RecordRefresh()
}

var moves = map[input.Action]camera.Direction{
	input.ActionMoveForward:  camera.Forward,
	input.ActionMoveBackward: camera.Backward,
	input.ActionMoveLeft:     camera.Left,
	input.ActionMoveRight:    camera.Right,
	input.ActionMoveUp:       camera.Up,
	input.ActionMoveDown:     camera.Down,
}

// Apply handles one action. Quit is left to the caller.
func (v *Viewer) Apply(a input.Action) {
	switch a {
	case input.ActionToggleRotation:
		v.scene.ToggleRotation()
		v.log.Debug("rotation toggled", zap.Bool("rotating", v.scene.Rotating))
	case input.ActionRefresh:
		v.Refresh()
	default:
		if d, ok := moves[a]; ok {
			v.scene.Camera.Move(d)
		}
	}
}

// Tick advances the rotation by one frame.
func (v *Viewer) Tick() {
	v.scene.Advance(v.cfg.Chart.RotationStep)
}

// Frame builds the draw list for the current snapshots. The entity is
// returned with the frame so both come from the same snapshot.
func (v *Viewer) Frame(aspect float32) (chart.Frame, *wavefront.Entity) {
	e := v.entity.Load()
	f := chart.BuildFrame(chart.FrameInput{
		Scene:   v.scene,
		Entity:  e,
		Points:  v.series.Load(),
		Layout:  v.layout,
		Palette: v.palette,
		Aspect:  aspect,
	})
	v.metrics.RecordFrame(len(f.Bars), f.Skipped)
	return f, e
}

// Scene returns a copy of the current scene.
func (v *Viewer) Scene() chart.Scene {
	return v.scene
}
