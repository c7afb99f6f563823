package viewer

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/Faultbox/stockbars/internal/assets"
	"github.com/Faultbox/stockbars/internal/config"
	"github.com/Faultbox/stockbars/internal/engine/input"
	"github.com/Faultbox/stockbars/internal/metrics"
	"github.com/Faultbox/stockbars/pkg/wavefront"
)

const barOBJ = `mtllib bar.mtl
v -0.5 -0.5 0
v 0.5 -0.5 0
v 0 0.5 0
vt 0 0
vn 0 0 1
usemtl Side
f 1/1/1 2/1/1 3/1/1
`

const barMTL = `newmtl Side
Kd 0.2 0.4 0.6
`

const stocksCSV = `Month,AAPL,GOOG
Jan,100,200
Feb,150,50
`

func writeAssets(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, text := range files {
		p := filepath.Join(dir, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(p), 0755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		if err := os.WriteFile(p, []byte(text), 0644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	return dir
}

func testConfig(dir string) *config.Config {
	cfg := config.Default()
	cfg.Data.AssetDirs = []string{dir}
	cfg.Data.ModelPath = "models/bar.obj"
	cfg.Data.StocksPath = "stocks.csv"
	return cfg
}

func newTestViewer(t *testing.T, files map[string]string) (*Viewer, *assets.Manager) {
	t.Helper()
	cfg := testConfig(writeAssets(t, files))
	m, err := NewAssets(cfg.Data)
	if err != nil {
		t.Fatalf("NewAssets failed: %v", err)
	}
	t.Cleanup(m.Close)
	return NewViewer(cfg, metrics.NewRecorder()), m
}

func TestLoadAndFrame(t *testing.T) {
	v, m := newTestViewer(t, map[string]string{
		"models/bar.obj": barOBJ,
		"models/bar.mtl": barMTL,
		"stocks.csv":     stocksCSV,
	})

	f, e := v.Frame(1)
	if e != nil || len(f.Bars) != 0 {
		t.Fatal("expected an empty frame before loading")
	}

	if err := v.Load(context.Background(), m, nil); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	f, e = v.Frame(16.0 / 9.0)
	if e == nil {
		t.Fatal("expected the entity to be published")
	}
	if len(f.Bars) != 4 {
		t.Fatalf("expected 4 bars, got %d", len(f.Bars))
	}
	// GOOG in January is the largest value.
	if got := f.Bars[1].Model.At(1, 1); got != 1 {
		t.Errorf("expected max bar Y scale 1, got %v", got)
	}
	// Companies are spaced along X.
	if got := f.Bars[1].Model.At(0, 3); got != 5 {
		t.Errorf("expected GOOG at X=5, got %v", got)
	}
}

func TestLoadResolvesMaterials(t *testing.T) {
	v, m := newTestViewer(t, map[string]string{
		"models/bar.obj": barOBJ,
		"models/bar.mtl": barMTL,
		"stocks.csv":     stocksCSV,
	})
	v.cfg.Data.ResolveMaterials = true

	if err := v.Load(context.Background(), m, nil); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	_, e := v.Frame(1)
	c := e.Components()
	if len(c) != 1 || c[0].Material == nil || c[0].Material.Color != [3]float32{0.2, 0.4, 0.6} {
		t.Errorf("expected resolved Side material, got %+v", c)
	}
}

func TestLoadPartialFailure(t *testing.T) {
	tests := []struct {
		name      string
		files     map[string]string
		wantModel bool
		wantBars  int
		wantErr   error
	}{
		{
			name:      "missing model",
			files:     map[string]string{"stocks.csv": stocksCSV},
			wantModel: false,
			wantErr:   assets.ErrResourceUnavailable,
		},
		{
			name:      "malformed model",
			files:     map[string]string{"models/bar.obj": "f 1 2 3\n", "stocks.csv": stocksCSV},
			wantModel: false,
			wantErr:   wavefront.ErrMalformedFormat,
		},
		{
			name:      "missing data",
			files:     map[string]string{"models/bar.obj": barOBJ},
			wantModel: true,
			wantErr:   assets.ErrResourceUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, m := newTestViewer(t, tt.files)

			err := v.Load(context.Background(), m, nil)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}

			f, e := v.Frame(1)
			if (e != nil) != tt.wantModel {
				t.Errorf("expected model loaded = %v", tt.wantModel)
			}
			if len(f.Bars) != tt.wantBars {
				t.Errorf("expected %d bars, got %d", tt.wantBars, len(f.Bars))
			}
		})
	}
}

func TestApply(t *testing.T) {
	v, _ := newTestViewer(t, nil)
	start := v.Scene().Camera

	v.Apply(input.ActionMoveForward)
	v.Apply(input.ActionMoveRight)
	v.Apply(input.ActionMoveUp)

	cam := v.Scene().Camera
	if cam.Position.Z() != start.Position.Z()-1 || cam.Position.X() != start.Position.X()+1 {
		t.Errorf("unexpected camera position %v", cam.Position)
	}
	if cam.Position.Y() != start.Position.Y()+1 {
		t.Errorf("expected camera raised, got %v", cam.Position)
	}
	if cam.Target.Y() != start.Target.Y() {
		t.Errorf("expected target height unchanged, got %v", cam.Target)
	}

	v.Apply(input.ActionToggleRotation)
	v.Tick()
	v.Tick()
	if got := v.Scene().BarAngle(); got != 1 {
		t.Errorf("expected angle 1 after two ticks, got %v", got)
	}

	v.Apply(input.ActionQuit) // left to the caller
}

func TestRefresh(t *testing.T) {
	v, m := newTestViewer(t, map[string]string{
		"models/bar.obj": barOBJ,
		"stocks.csv":     stocksCSV,
	})

	// No data yet: nothing to refresh.
	v.Apply(input.ActionRefresh)
	if v.series.Load() != nil {
		t.Fatal("refresh must not invent data")
	}

	if err := v.Load(context.Background(), m, nil); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	before := v.series.Load()

	v.Apply(input.ActionRefresh)
	after := v.series.Load()

	if len(after) != len(before) {
		t.Fatalf("expected %d points, got %d", len(before), len(after))
	}
	for i := range after {
		if after[i].Value < v.cfg.Chart.PriceFloor {
			t.Errorf("point %d below the floor: %v", i, after[i].Value)
		}
		if after[i].Symbol != before[i].Symbol {
			t.Errorf("point %d changed symbol", i)
		}
	}
	if &after[0] == &before[0] {
		t.Error("expected a new snapshot")
	}
}

func TestNewViewerPalette(t *testing.T) {
	cfg := config.Default()
	cfg.Chart.Palette = [][3]float32{{0.5, 0.5, 0.5}}
	v := NewViewer(cfg, metrics.NewRecorder())
	if len(v.palette) != 1 || v.palette.For(3) != [3]float32{0.5, 0.5, 0.5} {
		t.Errorf("expected configured palette, got %v", v.palette)
	}

	cfg.Chart.Palette = nil
	if v := NewViewer(cfg, metrics.NewRecorder()); len(v.palette) != 4 {
		t.Errorf("expected default palette, got %v", v.palette)
	}
}

func TestNewAssetsBadURL(t *testing.T) {
	cfg := config.Default().Data
	cfg.AssetURL = "://bad"
	if _, err := NewAssets(cfg); err == nil {
		t.Error("expected an error for a malformed asset URL")
	}
}
