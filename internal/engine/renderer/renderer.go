// Package renderer draws chart frames with OpenGL.
package renderer

import (
	_ "embed"
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/stockbars/internal/chart"
	"github.com/Faultbox/stockbars/internal/config"
	"github.com/Faultbox/stockbars/internal/engine/lighting"
	"github.com/Faultbox/stockbars/internal/engine/shader"
	"github.com/Faultbox/stockbars/internal/logger"
	"github.com/Faultbox/stockbars/pkg/wavefront"
)

//go:embed shaders/toon.vert
var toonVertex string

//go:embed shaders/toon.frag
var toonFragment string

// Config holds renderer configuration.
type Config struct {
	Width      int
	Height     int
	Background mgl32.Vec3
	LightDir   mgl32.Vec3
	Ambient    float32

	// MaterialTint multiplies the company color by each component's Kd.
	// Off, every component takes the company color.
	MaterialTint bool
}

// DefaultConfig returns the standard toon lighting for a window size.
func DefaultConfig(width, height int) Config {
	return Config{
		Width:      width,
		Height:     height,
		Background: mgl32.Vec3{0.1, 0.1, 0.15},
		LightDir:   lighting.SunDirection(0, 45),
		Ambient:    0.2,
	}
}

// FromGraphics builds a renderer config from the graphics section.
func FromGraphics(g config.GraphicsConfig, width, height int) Config {
	cfg := DefaultConfig(width, height)
	cfg.LightDir = lighting.SunDirection(g.LightAzimuth, g.LightElevation)
	cfg.MaterialTint = g.MaterialTint
	return cfg
}

// Renderer draws bar frames.
type Renderer struct {
	config  Config
	program *shader.Program
	mesh    *mesh
	log     *zap.Logger
}

// New creates a renderer.
// IMPORTANT: Must be called AFTER OpenGL context is created!
func New(cfg Config) (*Renderer, error) {
	r := &Renderer{
		config: cfg,
		log:    logger.Named("renderer"),
	}

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	r.log.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.Disable(gl.BLEND)
	bg := cfg.Background
	gl.ClearColor(bg[0], bg[1], bg[2], 1.0)
	gl.Viewport(0, 0, int32(cfg.Width), int32(cfg.Height))

	var err error
	r.program, err = shader.New(toonVertex, toonFragment)
	if err != nil {
		return nil, fmt.Errorf("toon shader: %w", err)
	}
	r.log.Debug("shader program created", zap.Uint32("program", r.program.ID))

	return r, nil
}

// Close releases GPU resources.
func (r *Renderer) Close() {
	r.log.Info("closing renderer")
	if r.mesh != nil {
		released := r.mesh.delete()
		r.log.Debug("entity released", zap.Int("textures", released))
		r.mesh = nil
	}
	if r.program != nil {
		r.program.Delete()
	}
}

// Resize sets the viewport to the new drawable size.
func (r *Renderer) Resize(width, height int) {
	r.config.Width = width
	r.config.Height = height
	gl.Viewport(0, 0, int32(width), int32(height))
	r.log.Debug("renderer resized", zap.Int("width", width), zap.Int("height", height))
}

// Aspect returns the viewport aspect ratio.
func (r *Renderer) Aspect() float32 {
	if r.config.Height <= 0 {
		return 1
	}
	return float32(r.config.Width) / float32(r.config.Height)
}

// Draw clears the screen and draws every bar in f using e. A nil entity
// draws nothing but still clears.
func (r *Renderer) Draw(f chart.Frame, e *wavefront.Entity) {
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
	if e == nil || len(f.Bars) == 0 {
		return
	}
	r.useEntity(e)

	p := r.program
	p.Use()
	p.SetMat4("uView", f.View)
	p.SetMat4("uProjection", f.Projection)
	p.SetVec3("uLightDir", r.config.LightDir)
	p.SetFloat("uAmbient", r.config.Ambient)
	p.SetInt("uTexture", 0)
	gl.ActiveTexture(gl.TEXTURE0)

	for _, bar := range f.Bars {
		p.SetMat4("uModel", bar.Model)
		p.SetMat3("uNormalMatrix", bar.Normal)
		r.mesh.draw(func(m *wavefront.Material) {
			color := bar.Color
			if r.config.MaterialTint {
				color = color.Tint(m)
			}
			p.SetVec3("uColor", mgl32.Vec3(color))
			tex, ok := materialTexture(m)
			p.SetBool("uHasTexture", ok)
			if ok {
				gl.BindTexture(gl.TEXTURE_2D, tex)
			}
		})
	}
	gl.BindTexture(gl.TEXTURE_2D, 0)
}

// useEntity uploads e when it differs from the current mesh.
func (r *Renderer) useEntity(e *wavefront.Entity) {
	if r.mesh != nil && r.mesh.entity == e {
		return
	}
	if r.mesh != nil {
		released := r.mesh.delete()
		r.log.Debug("previous entity released", zap.Int("textures", released))
	}
	r.mesh = newMesh(e)
	r.log.Debug("entity uploaded",
		zap.Int("vertices", e.VertexCount()),
		zap.Int("components", len(e.Components())))
}

func materialTexture(m *wavefront.Material) (uint32, bool) {
	if m == nil || m.Texture == nil {
		return 0, false
	}
	t, ok := m.Texture.(glTexture)
	if !ok {
		return 0, false
	}
	return t.GLName()
}

// ReadPixels returns the back buffer as bottom-up RGBA rows. Call it after
// Draw and before the buffers are swapped.
func (r *Renderer) ReadPixels() ([]byte, int, int) {
	w, h := r.config.Width, r.config.Height
	pixels := make([]byte, w*h*4)
	if len(pixels) == 0 {
		return pixels, w, h
	}
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(w), int32(h), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
	return pixels, w, h
}
