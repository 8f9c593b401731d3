package config

import (
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/pagefx/internal/particle"
)

const (
	DefaultWidth     = 800
	DefaultHeight    = 600
	DefaultFPS       = 60
	DefaultFrames    = 600
	DefaultBaseURL   = "http://localhost:8081"
	DefaultAdminPath = "/admin"
	DefaultTheme     = "minimal"
)

type Config struct {
	Profile string        `yaml:"profile"`
	Width   int           `yaml:"width"`
	Height  int           `yaml:"height"`
	Seed    int64         `yaml:"seed"`
	FPS     int           `yaml:"fps"`
	Frames  int           `yaml:"frames"`
	Theme   string        `yaml:"theme"`
	Network NetworkConfig `yaml:"network"`
	Server  ServerConfig  `yaml:"server"`
}

type NetworkConfig struct {
	LineDistance   float64  `yaml:"line_distance"`
	LineColor      string   `yaml:"line_color"`
	LineWidth      float64  `yaml:"line_width"`
	ParticleColors []string `yaml:"particle_colors"`
	Density        float64  `yaml:"density"`
	VelocityScale  float64  `yaml:"velocity_scale"`
	Motion         string   `yaml:"motion"`
	Spawn          string   `yaml:"spawn"`
	SpawnInterval  int      `yaml:"spawn_interval"`
	FadeStep       float64  `yaml:"fade_step"`
	Margin         float64  `yaml:"margin"`
	LinkFade       bool     `yaml:"link_fade"`
}

// ServerConfig addresses the CMS that serves the preview and auth endpoints.
// Environment variables win over the file.
type ServerConfig struct {
	BaseURL   string `yaml:"base_url" env:"PAGEFX_BASE_URL"`
	AdminPath string `yaml:"admin_path" env:"PAGEFX_ADMIN_PATH"`
	Cookie    string `yaml:"cookie" env:"PAGEFX_COOKIE"`
	Editor    string `yaml:"editor" env:"PAGEFX_EDITOR"`
	WalletKey string `yaml:"-" env:"PAGEFX_WALLET_KEY"`
}

func DefaultNetwork() NetworkConfig {
	o := particle.DefaultOptions()
	return NetworkConfig{
		LineDistance:   o.LineDistance,
		LineColor:      o.LineColor,
		LineWidth:      o.LineWidth,
		ParticleColors: append([]string(nil), o.ParticleColors...),
		Density:        o.Density,
		VelocityScale:  o.VelocityScale,
		Motion:         o.Motion.String(),
		Spawn:          o.Spawn.String(),
		SpawnInterval:  o.SpawnInterval,
		FadeStep:       o.FadeStep,
		Margin:         o.Margin,
		LinkFade:       o.LinkFade,
	}
}

func DefaultConfig() *Config {
	return &Config{
		Profile: "orbit",
		Width:   DefaultWidth,
		Height:  DefaultHeight,
		FPS:     DefaultFPS,
		Frames:  DefaultFrames,
		Theme:   DefaultTheme,
		Network: DefaultNetwork(),
		Server: ServerConfig{
			BaseURL:   DefaultBaseURL,
			AdminPath: DefaultAdminPath,
		},
	}
}

// Load reads a YAML file over the defaults, then applies the environment.
// An empty path skips the file.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	}
	if err := ApplyEnv(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyEnv overrides server settings from PAGEFX_* variables.
func ApplyEnv(cfg *Config) error {
	if err := env.Parse(&cfg.Server); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Options converts the network section into particle options.
func (n NetworkConfig) Options() (particle.Options, error) {
	o := particle.DefaultOptions()
	motion, err := particle.ParseMotion(n.Motion)
	if err != nil {
		return o, err
	}
	spawn, err := particle.ParseSpawn(n.Spawn)
	if err != nil {
		return o, err
	}
	o.LineDistance = n.LineDistance
	o.LineColor = n.LineColor
	o.LineWidth = n.LineWidth
	if len(n.ParticleColors) > 0 {
		o.ParticleColors = n.ParticleColors
	}
	o.Density = n.Density
	o.VelocityScale = n.VelocityScale
	o.Motion = motion
	o.Spawn = spawn
	o.SpawnInterval = n.SpawnInterval
	o.FadeStep = n.FadeStep
	o.Margin = n.Margin
	o.LinkFade = n.LinkFade
	return o, o.Validate()
}

// ApplyPreset replaces the network section with a named preset.
func (c *Config) ApplyPreset(name string) error {
	p := GetPreset(name)
	if p == nil {
		return fmt.Errorf("unknown preset: %s (available: %v)", name, ListPresets())
	}
	c.Profile = name
	c.Network = *p
	return nil
}
