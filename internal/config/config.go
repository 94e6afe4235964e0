package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"
	"time"

	errtree "github.com/Konstantin8105/errors"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DefaultFile is read from the working directory when no path is given
const DefaultFile = "gosfd.yaml"

// Config holds the tool settings
type Config struct {
	Server ServerConfig `yaml:"server"`
	Plot   PlotConfig   `yaml:"plot"`
	Log    LogConfig    `yaml:"log"`
	Report ReportConfig `yaml:"report"`
}

type ServerConfig struct {
	Addr            string        `yaml:"addr"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	RateLimit       float64       `yaml:"rate_limit"` // requests per second per client
	RateBurst       int           `yaml:"rate_burst"`
}

type PlotConfig struct {
	WidthIn  float64 `yaml:"width_in"`
	HeightIn float64 `yaml:"height_in"`
}

type LogConfig struct {
	Dir   string `yaml:"dir"`
	Debug bool   `yaml:"debug"`
}

type ReportConfig struct {
	Project string `yaml:"project"`
	Author  string `yaml:"author"`
}

// Default returns the built-in settings
func Default() Config {
	return Config{
		Server: ServerConfig{
			Addr:            ":8080",
			ShutdownTimeout: 5 * time.Second,
			RateLimit:       5,
			RateBurst:       10,
		},
		Plot: PlotConfig{
			WidthIn:  8,
			HeightIn: 4.5,
		},
	}
}

// Load builds the configuration from defaults, the YAML file, a .env file
// and GOSFD_* environment variables, in that order of precedence.
// An empty path falls back to DefaultFile when it exists.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultFile
	}

	b, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := decode(bytes.NewReader(b), &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	case errors.Is(err, fs.ErrNotExist) && !explicit:
		// no config file is fine
	default:
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}
	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return Config{}, err
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func decode(r io.Reader, cfg *Config) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup("GOSFD_ADDR"); ok {
		c.Server.Addr = v
	}
	if v, ok := lookup("GOSFD_LOG_DIR"); ok {
		c.Log.Dir = v
	}

	et := errtree.New("environment")
	if v, ok := lookup("GOSFD_DEBUG"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			et.Add(fmt.Errorf("GOSFD_DEBUG: %w", err))
		}
		c.Log.Debug = b
	}
	if v, ok := lookup("GOSFD_RATE_LIMIT"); ok {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			et.Add(fmt.Errorf("GOSFD_RATE_LIMIT: %w", err))
		}
		c.Server.RateLimit = f
	}
	if v, ok := lookup("GOSFD_RATE_BURST"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			et.Add(fmt.Errorf("GOSFD_RATE_BURST: %w", err))
		}
		c.Server.RateBurst = n
	}
	if v, ok := lookup("GOSFD_PLOT_WIDTH_IN"); ok {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			et.Add(fmt.Errorf("GOSFD_PLOT_WIDTH_IN: %w", err))
		}
		c.Plot.WidthIn = f
	}
	if v, ok := lookup("GOSFD_PLOT_HEIGHT_IN"); ok {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			et.Add(fmt.Errorf("GOSFD_PLOT_HEIGHT_IN: %w", err))
		}
		c.Plot.HeightIn = f
	}

	if et.IsError() {
		return et
	}
	return nil
}

// Validate reports every invalid setting at once
func (c Config) Validate() error {
	et := errtree.New("config")
	if c.Server.Addr == "" {
		et.Add(errors.New("server.addr must not be empty"))
	}
	if c.Server.ShutdownTimeout <= 0 {
		et.Add(fmt.Errorf("server.shutdown_timeout must be positive, got %s", c.Server.ShutdownTimeout))
	}
	if c.Server.RateLimit <= 0 {
		et.Add(fmt.Errorf("server.rate_limit must be positive, got %g", c.Server.RateLimit))
	}
	if c.Server.RateBurst < 1 {
		et.Add(fmt.Errorf("server.rate_burst must be at least 1, got %d", c.Server.RateBurst))
	}
	if c.Plot.WidthIn <= 0 || c.Plot.HeightIn <= 0 {
		et.Add(fmt.Errorf("plot size must be positive, got %gx%g in", c.Plot.WidthIn, c.Plot.HeightIn))
	}
	if et.IsError() {
		return et
	}
	return nil
}
