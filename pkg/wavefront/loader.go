package wavefront

import (
	"context"
	"fmt"
	"path"
)

// Fetcher retrieves a resource by slash-separated path.
type Fetcher interface {
	Fetch(ctx context.Context, path string) ([]byte, error)
}

// LoadOptions controls a Load or Parse call.
type LoadOptions struct {
	ParseOptions

	// ResolveMaterials fetches the mtllib companion file and attaches a
	// Material to every component.
	ResolveMaterials bool
}

// Loader fetches OBJ files and their material libraries.
type Loader struct {
	fetcher     Fetcher
	textures    TextureLoader
	imagePrefix string
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithTextureLoader sets the collaborator that loads map_Kd images.
func WithTextureLoader(t TextureLoader) LoaderOption {
	return func(l *Loader) { l.textures = t }
}

// WithImagePrefix sets the directory texture file names are resolved in.
func WithImagePrefix(prefix string) LoaderOption {
	return func(l *Loader) { l.imagePrefix = prefix }
}

// NewLoader creates a loader reading through f.
func NewLoader(f Fetcher, opts ...LoaderOption) *Loader {
	l := &Loader{fetcher: f, imagePrefix: DefaultImagePrefix}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load fetches and parses the OBJ file at objPath. Fetch errors are returned
// unchanged apart from wrapping.
func (l *Loader) Load(ctx context.Context, objPath string, opts LoadOptions) (*Entity, error) {
	data, err := l.fetcher.Fetch(ctx, objPath)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", objPath, err)
	}
	entity, err := l.Parse(ctx, string(data), path.Dir(objPath), opts)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", objPath, err)
	}
	return entity, nil
}

// Parse parses OBJ text whose companion files live in dir.
func (l *Loader) Parse(ctx context.Context, text, dir string, opts LoadOptions) (*Entity, error) {
	obj, err := ParseOBJ(text, opts.ParseOptions)
	if err != nil {
		return nil, err
	}

	if opts.ResolveMaterials && obj.MaterialLib != "" {
		if err := l.resolveMaterials(ctx, obj, path.Join(dir, obj.MaterialLib)); err != nil {
			return nil, err
		}
	}

	return obj.Entity()
}

func (l *Loader) resolveMaterials(ctx context.Context, obj *OBJ, mtlPath string) error {
	data, err := l.fetcher.Fetch(ctx, mtlPath)
	if err != nil {
		return fmt.Errorf("%w: material library %s: %w", ErrUnresolvedMaterial, mtlPath, err)
	}

	materials, err := ParseMaterials(string(data), MaterialOptions{
		ImagePrefix: l.imagePrefix,
		Textures:    l.textures,
	})
	if err != nil {
		return fmt.Errorf("material library %s: %w", mtlPath, err)
	}

	for i := range obj.Components {
		c := &obj.Components[i]
		m, ok := materials[c.MaterialName]
		if !ok {
			return fmt.Errorf("%w: %q is not defined in %s", ErrUnresolvedMaterial, c.MaterialName, mtlPath)
		}
		c.Material = m
	}
	return nil
}
