package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the file locations and timing knobs. All paths are relative
// to the working directory unless absolute.
type Config struct {
	DataFile         string        `yaml:"data_file"`
	SessionDB        string        `yaml:"session_db"`
	EventLog         string        `yaml:"event_log"`
	TickInterval     time.Duration `yaml:"tick_interval"`
	CountdownDefault time.Duration `yaml:"countdown_default"`
	RecentSessions   int           `yaml:"recent_sessions"`
}

func Default() *Config {
	return &Config{
		DataFile:         "projects_data.json",
		SessionDB:        "sessions.db",
		EventLog:         "sessions.log",
		TickInterval:     time.Second,
		CountdownDefault: time.Hour,
		RecentSessions:   5,
	}
}

// Load reads the config at path. A missing file yields the defaults; a file
// that cannot be parsed yields the defaults plus the error. Fields left out
// of the file keep their default values.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return Default(), err
	}
	cfg.fillDefaults()
	return cfg, nil
}

// LoadOrCreate reads the config at path, writing the defaults back when no
// file exists yet. A failed write still returns usable defaults along with
// the error so the caller can warn and continue.
func LoadOrCreate(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		cfg := Default()
		return cfg, cfg.Save(path)
	}
	return Load(path)
}

func (c *Config) fillDefaults() {
	def := Default()
	if c.DataFile == "" {
		c.DataFile = def.DataFile
	}
	if c.SessionDB == "" {
		c.SessionDB = def.SessionDB
	}
	if c.EventLog == "" {
		c.EventLog = def.EventLog
	}
	if c.TickInterval <= 0 {
		c.TickInterval = def.TickInterval
	}
	if c.CountdownDefault <= 0 {
		c.CountdownDefault = def.CountdownDefault
	}
	if c.RecentSessions <= 0 {
		c.RecentSessions = def.RecentSessions
	}
}

// Save writes the config to path.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
