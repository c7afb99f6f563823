package config

import "flag"

var (
	flagConfig     = flag.String("config", "", "Path to config file")
	flagDebug      = flag.Bool("debug", false, "Enable debug logging")
	flagModel      = flag.String("model", "", "Path of the bar OBJ model")
	flagData       = flag.String("data", "", "Path of the stock price CSV")
	flagAssets     = flag.String("assets", "", "Extra asset directory (highest priority)")
	flagMetrics    = flag.String("metrics", "", "Prometheus listen address, e.g. :9090")
	flagMaterials  = flag.Bool("materials", false, "Resolve the model's material library")
	flagWindowed   = flag.Bool("windowed", false, "Run in windowed mode")
	flagFullscreen = flag.Bool("fullscreen", false, "Run in fullscreen mode")
	flagWidth      = flag.Int("width", 0, "Window width")
	flagHeight     = flag.Int("height", 0, "Window height")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagModel != "" {
		cfg.Data.ModelPath = *flagModel
	}
	if *flagData != "" {
		cfg.Data.StocksPath = *flagData
	}
	if *flagAssets != "" {
		cfg.Data.AssetDirs = append(cfg.Data.AssetDirs, *flagAssets)
	}
	if *flagMetrics != "" {
		cfg.Metrics.Listen = *flagMetrics
	}
	if *flagMaterials {
		cfg.Data.ResolveMaterials = true
	}
	if *flagWindowed {
		cfg.Graphics.Fullscreen = false
	}
	if *flagFullscreen {
		cfg.Graphics.Fullscreen = true
	}
	if *flagWidth > 0 {
		cfg.Graphics.Width = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.Graphics.Height = *flagHeight
	}
}
