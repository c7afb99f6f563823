package texture

import (
	"context"
	"image"
	"sync/atomic"

	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"

	"github.com/Faultbox/stockbars/internal/logger"
	"github.com/Faultbox/stockbars/pkg/wavefront"
)

// Handle is a texture that is decoded in the background. The renderer
// uploads it once Ready reports true.
type Handle struct {
	path string
	done chan struct{}
	img  *image.RGBA
	err  error

	uploaded atomic.Uint32 // GL texture name, 0 until uploaded
}

// Path returns the image path the handle was created for.
func (h *Handle) Path() string { return h.path }

// Ready reports whether decoding has finished, successfully or not.
func (h *Handle) Ready() bool {
	select {
	case <-h.done:
		return true
	default:
		return false
	}
}

// Wait blocks until decoding finishes or ctx is done.
func (h *Handle) Wait(ctx context.Context) error {
	select {
	case <-h.done:
		return h.err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Image returns the decoded image, or nil while loading or after a failure.
func (h *Handle) Image() *image.RGBA {
	if !h.Ready() {
		return nil
	}
	return h.img
}

// Err returns the decoding error once the handle is ready.
func (h *Handle) Err() error {
	if !h.Ready() {
		return nil
	}
	return h.err
}

func (h *Handle) finish(img *image.RGBA, err error) {
	h.img, h.err = img, err
	close(h.done)
}

// Loader decodes textures in background goroutines. It implements
// wavefront.TextureLoader.
type Loader struct {
	ctx     context.Context
	fetcher wavefront.Fetcher
	sem     *semaphore.Weighted
	log     *zap.Logger
}

// DefaultConcurrency bounds simultaneous decodes.
const DefaultConcurrency = 4

// NewLoader creates a loader. Pending decodes stop when ctx is cancelled.
func NewLoader(ctx context.Context, f wavefront.Fetcher, concurrency int) *Loader {
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}
	return &Loader{
		ctx:     ctx,
		fetcher: f,
		sem:     semaphore.NewWeighted(int64(concurrency)),
		log:     logger.Named("texture"),
	}
}

// LoadTexture starts loading path and returns immediately.
func (l *Loader) LoadTexture(path string) wavefront.Texture {
	return l.Load(path)
}

// Load is LoadTexture returning the concrete handle.
func (l *Loader) Load(path string) *Handle {
	h := &Handle{path: path, done: make(chan struct{})}
	go l.run(h)
	return h
}

func (l *Loader) run(h *Handle) {
	if err := l.sem.Acquire(l.ctx, 1); err != nil {
		h.finish(nil, err)
		return
	}
	defer l.sem.Release(1)

	data, err := l.fetcher.Fetch(l.ctx, h.path)
	if err != nil {
		l.log.Warn("texture fetch failed", zap.String("path", h.path), zap.Error(err))
		h.finish(nil, err)
		return
	}

	img, err := Decode(h.path, data)
	if err != nil {
		l.log.Warn("texture decode failed", zap.String("path", h.path), zap.Error(err))
		h.finish(nil, err)
		return
	}

	rgba := ToRGBA(img)
	l.log.Debug("texture decoded",
		zap.String("path", h.path),
		zap.Int("width", rgba.Bounds().Dx()),
		zap.Int("height", rgba.Bounds().Dy()))
	h.finish(rgba, nil)
}
