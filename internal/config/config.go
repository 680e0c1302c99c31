package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"

	"gopkg.in/yaml.v3"

	"motordiag/internal/model"
)

type Config struct {
	LogLevel string          `json:"log_level" yaml:"log_level"`
	Defaults DefaultsConfig  `json:"defaults" yaml:"defaults"`
	Source   SourceConfig    `json:"source" yaml:"source"`
	API      APIConfig       `json:"api" yaml:"api"`
	Results  ResultsConfig   `json:"results" yaml:"results"`
	Publish  PublishConfig   `json:"publish" yaml:"publish"`
	Report   ReportConfig    `json:"report" yaml:"report"`
}

// DefaultsConfig holds the run defaults a caller may override per
// invocation. Fault thresholds and window constants are deliberately not
// configurable.
type DefaultsConfig struct {
	Mode        string  `json:"mode" yaml:"mode"`
	AxialAxis   string  `json:"axial_axis" yaml:"axial_axis"`
	RPM         float64 `json:"rpm" yaml:"rpm"`
	Span        string  `json:"span" yaml:"span"`
	MaxRows     int     `json:"max_rows" yaml:"max_rows"`
	Orientation string  `json:"orientation" yaml:"orientation"`
}

type SourceConfig struct {
	Path string `json:"path" yaml:"path"`
}

type APIConfig struct {
	Enabled bool   `json:"enabled" yaml:"enabled"`
	Addr    string `json:"addr" yaml:"addr"`
}

type ResultsConfig struct {
	StoreLimit int `json:"store_limit" yaml:"store_limit"`
}

type PublishConfig struct {
	Enabled bool     `json:"enabled" yaml:"enabled"`
	Brokers []string `json:"brokers" yaml:"brokers"`
	Topic   string   `json:"topic" yaml:"topic"`
}

type ReportConfig struct {
	OutputDir string `json:"output_dir" yaml:"output_dir"`
}

func DefaultConfig() *Config {
	return &Config{
		LogLevel: "info",
		Defaults: DefaultsConfig{
			Mode:      string(model.ModeRMS),
			AxialAxis: string(model.AxisZ),
			RPM:       1500,
			Span:      string(model.SpanAll),
			MaxRows:   500,
		},
		API:     APIConfig{Enabled: true, Addr: ":8080"},
		Results: ResultsConfig{StoreLimit: 200},
		Publish: PublishConfig{Enabled: false},
		Report:  ReportConfig{OutputDir: "."},
	}
}

func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	content, err := io.ReadAll(f)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()

	trimmed := strings.TrimSpace(string(content))
	if len(trimmed) == 0 {
		return nil, errors.New("config file is empty")
	}
	var decodeErr error
	if looksLikeJSON(trimmed) {
		decodeErr = json.Unmarshal([]byte(trimmed), cfg)
	} else {
		decodeErr = yaml.Unmarshal([]byte(trimmed), cfg)
	}
	if decodeErr != nil {
		return nil, decodeErr
	}
	applyDefaults(cfg)
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	if path == "" || cfg == nil {
		return errors.New("config path or config is empty")
	}
	var data []byte
	var err error
	ext := strings.ToLower(filepath.Ext(path))
	if ext == ".json" {
		data, err = json.MarshalIndent(cfg, "", "  ")
	} else {
		data, err = yaml.Marshal(cfg)
	}
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func looksLikeJSON(s string) bool {
	for _, ch := range s {
		if ch == '{' || ch == '[' {
			return true
		}
		if ch > ' ' {
			return false
		}
	}
	return false
}

func applyDefaults(cfg *Config) {
	if cfg.Defaults.Mode == "" {
		cfg.Defaults.Mode = string(model.ModeRMS)
	}
	if cfg.Defaults.AxialAxis == "" {
		cfg.Defaults.AxialAxis = string(model.AxisZ)
	}
	if cfg.Defaults.Span == "" {
		cfg.Defaults.Span = string(model.SpanAll)
	}
	if cfg.Defaults.MaxRows < 0 {
		cfg.Defaults.MaxRows = 0
	}
	if cfg.Results.StoreLimit <= 0 {
		cfg.Results.StoreLimit = 200
	}
	if cfg.Report.OutputDir == "" {
		cfg.Report.OutputDir = "."
	}
}

func Validate(cfg *Config) error {
	if _, err := model.ParseMode(cfg.Defaults.Mode); err != nil {
		return fmt.Errorf("defaults.mode: %w", err)
	}
	if _, err := model.ParseAxis(cfg.Defaults.AxialAxis); err != nil {
		return fmt.Errorf("defaults.axial_axis: %w", err)
	}
	if _, err := model.ParseSpan(cfg.Defaults.Span); err != nil {
		return fmt.Errorf("defaults.span: %w", err)
	}
	if cfg.Defaults.Mode == string(model.ModeSpectral) && cfg.Defaults.RPM <= 0 {
		return errors.New("defaults.rpm must be > 0 for spectral mode")
	}
	if cfg.API.Enabled && cfg.API.Addr == "" {
		return errors.New("api.addr required when api.enabled is true")
	}
	if cfg.Publish.Enabled {
		if len(cfg.Publish.Brokers) == 0 || cfg.Publish.Topic == "" {
			return errors.New("publish requires brokers and topic")
		}
	}
	return nil
}

type Manager struct {
	path    string
	cfg     atomic.Value
	modTime time.Time
}

func NewManager(path string) (*Manager, error) {
	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}
	m := &Manager{path: path}
	m.cfg.Store(cfg)
	info, err := os.Stat(path)
	if err == nil {
		m.modTime = info.ModTime()
	}
	return m, nil
}

func (m *Manager) Get() *Config {
	if v := m.cfg.Load(); v != nil {
		return v.(*Config)
	}
	return DefaultConfig()
}

func (m *Manager) Path() string {
	return m.path
}

func (m *Manager) Reload() (*Config, error) {
	cfg, err := Load(m.path)
	if err != nil {
		return nil, err
	}
	m.cfg.Store(cfg)
	if info, err := os.Stat(m.path); err == nil {
		m.modTime = info.ModTime()
	}
	return cfg, nil
}

func (m *Manager) NeedsReload() (bool, error) {
	info, err := os.Stat(m.path)
	if err != nil {
		return false, err
	}
	return info.ModTime().After(m.modTime), nil
}

func (m *Manager) Watch(interval time.Duration, onReload func(*Config), onError func(error), stop <-chan struct{}) {
	if interval <= 0 {
		interval = 3 * time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			needs, err := m.NeedsReload()
			if err != nil {
				if onError != nil {
					onError(err)
				}
				continue
			}
			if !needs {
				continue
			}
			cfg, err := m.Reload()
			if err != nil {
				if onError != nil {
					onError(err)
				}
				continue
			}
			if onReload != nil {
				onReload(cfg)
			}
		case <-stop:
			return
		}
	}
}

func ResolvePath(path string) string {
	if path == "" {
		return path
	}
	if filepath.IsAbs(path) {
		return path
	}
	cwd, err := os.Getwd()
	if err != nil {
		return path
	}
	return filepath.Join(cwd, path)
}
