// Package config handles viewer configuration loading and management.
package config

import "time"

// Config holds all viewer settings.
type Config struct {
	Graphics GraphicsConfig `yaml:"graphics"`
	Data     DataConfig     `yaml:"data"`
	Chart    ChartConfig    `yaml:"chart"`
	Camera   CameraConfig   `yaml:"camera"`
	Metrics  MetricsConfig  `yaml:"metrics"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// GraphicsConfig holds display and rendering settings.
type GraphicsConfig struct {
	Width          int     `yaml:"width"`
	Height         int     `yaml:"height"`
	Fullscreen     bool    `yaml:"fullscreen"`
	VSync          bool    `yaml:"vsync"`
	LightAzimuth   float32 `yaml:"light_azimuth"`   // degrees around Y, 0 faces +Z
	LightElevation float32 `yaml:"light_elevation"` // degrees above the horizon
	ScreenshotDir  string  `yaml:"screenshot_dir"`
	MaterialTint   bool    `yaml:"material_tint"` // multiply bar colors by the material Kd
}

// DataConfig holds where the model and price data come from.
type DataConfig struct {
	AssetDirs        []string      `yaml:"asset_dirs"`    // searched last to first
	AssetURL         string        `yaml:"asset_url"`     // optional HTTP base, highest priority
	FetchTimeout     time.Duration `yaml:"fetch_timeout"` // per HTTP request
	ModelPath        string        `yaml:"model_path"`    // bar OBJ
	StocksPath       string        `yaml:"stocks_path"`   // price CSV
	ImagePrefix      string        `yaml:"image_prefix"`  // directory for map_Kd textures
	ResolveMaterials bool          `yaml:"resolve_materials"`
}

// ChartConfig holds bar layout and data refresh settings.
type ChartConfig struct {
	BarSpacing   float32      `yaml:"bar_spacing"`   // X distance between companies
	TimeSpacing  float32      `yaml:"time_spacing"`  // Z distance between months
	RotationStep float32      `yaml:"rotation_step"` // degrees per frame
	PriceFloor   float32      `yaml:"price_floor"`
	UpdateJitter float32      `yaml:"update_jitter"` // max relative change per refresh
	Palette      [][3]float32 `yaml:"palette"`
}

// CameraConfig holds the initial camera.
type CameraConfig struct {
	Position [3]float32 `yaml:"position"`
	Target   [3]float32 `yaml:"target"`
	Speed    float32    `yaml:"speed"`
	FovY     float32    `yaml:"fov_y"`
	Near     float32    `yaml:"near"`
	Far      float32    `yaml:"far"`
}

// MetricsConfig holds the Prometheus endpoint settings.
type MetricsConfig struct {
	Listen string `yaml:"listen"` // empty disables the endpoint
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Graphics: GraphicsConfig{
			Width:          1280,
			Height:         720,
			Fullscreen:     false,
			VSync:          true,
			LightAzimuth:   0,
			LightElevation: 45,
			ScreenshotDir:  "screenshots",
		},
		Data: DataConfig{
			AssetDirs:        []string{"."},
			FetchTimeout:     10 * time.Second,
			ModelPath:        "models/bar.obj",
			StocksPath:       "stocks.csv",
			ImagePrefix:      "images/",
			ResolveMaterials: false,
		},
		Chart: ChartConfig{
			BarSpacing:   5.0,
			TimeSpacing:  3.0,
			RotationStep: 0.5,
			PriceFloor:   10,
			UpdateJitter: 0.1,
			Palette: [][3]float32{
				{1, 0, 0},
				{0, 1, 0},
				{0, 0, 1},
				{1, 1, 0},
			},
		},
		Camera: CameraConfig{
			Position: [3]float32{0, 20, 30},
			Target:   [3]float32{0, 0, 0},
			Speed:    1.0,
			FovY:     45,
			Near:     0.1,
			Far:      500,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
