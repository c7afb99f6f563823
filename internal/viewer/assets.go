package viewer

import (
	"fmt"

	"github.com/Faultbox/stockbars/internal/assets"
	"github.com/Faultbox/stockbars/internal/config"
)

// NewAssets builds the asset manager for the data section. Directories are
// searched last to first and the HTTP source, if any, before all of them.
func NewAssets(cfg config.DataConfig) (*assets.Manager, error) {
	m := assets.NewManager()
	for _, dir := range cfg.AssetDirs {
		m.AddSource(assets.NewDirSource(dir))
	}
	if cfg.AssetURL != "" {
		src, err := assets.NewHTTPSource(cfg.AssetURL, cfg.FetchTimeout)
		if err != nil {
			return nil, fmt.Errorf("asset url: %w", err)
		}
		m.AddSource(src)
	}
	return m, nil
}
