package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Database  DatabaseConfig  `yaml:"database"`
	RabbitMQ  RabbitMQConfig  `yaml:"rabbitmq"`
	HTTP      HTTPConfig      `yaml:"http"`
	Ingestion IngestionConfig `yaml:"ingestion"`
	Cleanup   CleanupConfig   `yaml:"cleanup"`
	LogLevel  string          `yaml:"log_level"`
}

// RabbitMQConfig configures the cycle outcome publisher. An empty URL
// disables publishing.
type RabbitMQConfig struct {
	URL        string `yaml:"url"`
	Exchange   string `yaml:"exchange"`
	RoutingKey string `yaml:"routing_key"`
	QueueName  string `yaml:"queue_name"`
}

type DatabaseConfig struct {
	URL      string `yaml:"url"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	DBName   string `yaml:"dbname"`
	SSLMode  string `yaml:"sslmode"`
}

func (d DatabaseConfig) DSN() string {
	if d.URL != "" {
		return d.URL
	}
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode,
	)
}

type HTTPConfig struct {
	Addr       string `yaml:"addr"`
	AdminToken string `yaml:"admin_token"`
}

type IngestionConfig struct {
	Interval           time.Duration `yaml:"interval"`
	StartupDelay       time.Duration `yaml:"startup_delay"`
	FetchTimeout       time.Duration `yaml:"fetch_timeout"`
	MaxEntriesPerFetch int           `yaml:"max_entries_per_fetch"`
	MaxEntriesRetained int           `yaml:"max_entries_retained"`
	UserAgent          string        `yaml:"user_agent"`
}

type CleanupConfig struct {
	Enabled            *bool         `yaml:"enabled"`
	IntervalHours      int           `yaml:"interval_hours"`
	StartupDelay       time.Duration `yaml:"startup_delay"`
	CompletedTasksDays int           `yaml:"completed_tasks_days"`
	ArchivedNotesDays  int           `yaml:"archived_notes_days"`
	PastEventsDays     int           `yaml:"past_events_days"`
}

// IsEnabled reports whether the retention scheduler should run. Retention is
// on unless explicitly switched off.
func (c CleanupConfig) IsEnabled() bool {
	return c.Enabled == nil || *c.Enabled
}

func (c CleanupConfig) Interval() time.Duration {
	return time.Duration(c.IntervalHours) * time.Hour
}

// Load reads the YAML file at path, applies environment overrides and fills in
// defaults. A missing file is not an error: the environment alone is enough.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	var cfg Config

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("read config file: %w", err)
	default:
		expanded := os.ExpandEnv(string(data))
		if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return nil, err
	}

	cfg.setDefaults()

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup("DATABASE_URL"); ok && v != "" {
		c.Database.URL = v
	}
	if v, ok := lookup("LOG_LEVEL"); ok && v != "" {
		c.LogLevel = v
	}
	if v, ok := lookup("HTTP_ADDR"); ok && v != "" {
		c.HTTP.Addr = v
	}
	if v, ok := lookup("RABBITMQ_URL"); ok {
		c.RabbitMQ.URL = v
	}

	if v, ok := lookup("CLEANUP_ENABLED"); ok && v != "" {
		enabled, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("parse CLEANUP_ENABLED: %w", err)
		}
		c.Cleanup.Enabled = &enabled
	}

	ints := []struct {
		key string
		dst *int
	}{
		{"CLEANUP_INTERVAL_HOURS", &c.Cleanup.IntervalHours},
		{"CLEANUP_COMPLETED_TASKS_DAYS", &c.Cleanup.CompletedTasksDays},
		{"CLEANUP_ARCHIVED_NOTES_DAYS", &c.Cleanup.ArchivedNotesDays},
		{"CLEANUP_PAST_EVENTS_DAYS", &c.Cleanup.PastEventsDays},
	}
	for _, e := range ints {
		v, ok := lookup(e.key)
		if !ok || v == "" {
			continue
		}
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("parse %s: %w", e.key, err)
		}
		if n <= 0 {
			return fmt.Errorf("%s must be positive, got %d", e.key, n)
		}
		*e.dst = n
	}

	return nil
}

func (c *Config) setDefaults() {
	if c.Database.Host == "" {
		c.Database.Host = "localhost"
	}
	if c.Database.Port == 0 {
		c.Database.Port = 5432
	}
	if c.Database.SSLMode == "" {
		c.Database.SSLMode = "disable"
	}
	if c.RabbitMQ.URL != "" {
		if c.RabbitMQ.Exchange == "" {
			c.RabbitMQ.Exchange = "noteflow"
		}
		if c.RabbitMQ.RoutingKey == "" {
			c.RabbitMQ.RoutingKey = "scheduler"
		}
		if c.RabbitMQ.QueueName == "" {
			c.RabbitMQ.QueueName = "noteflow_scheduler_outcomes"
		}
	}
	if c.HTTP.Addr == "" {
		c.HTTP.Addr = ":8080"
	}
	if c.Ingestion.Interval == 0 {
		c.Ingestion.Interval = 15 * time.Minute
	}
	if c.Ingestion.StartupDelay == 0 {
		c.Ingestion.StartupDelay = 10 * time.Second
	}
	if c.Ingestion.FetchTimeout == 0 {
		c.Ingestion.FetchTimeout = 10 * time.Second
	}
	if c.Ingestion.MaxEntriesPerFetch == 0 {
		c.Ingestion.MaxEntriesPerFetch = 50
	}
	if c.Ingestion.MaxEntriesRetained == 0 {
		c.Ingestion.MaxEntriesRetained = 100
	}
	if c.Ingestion.UserAgent == "" {
		c.Ingestion.UserAgent = "NoteFlow/1.0 (RSS reader)"
	}
	if c.Cleanup.IntervalHours == 0 {
		c.Cleanup.IntervalHours = 24
	}
	if c.Cleanup.StartupDelay == 0 {
		c.Cleanup.StartupDelay = time.Minute
	}
	if c.Cleanup.CompletedTasksDays == 0 {
		c.Cleanup.CompletedTasksDays = 90
	}
	if c.Cleanup.ArchivedNotesDays == 0 {
		c.Cleanup.ArchivedNotesDays = 180
	}
	if c.Cleanup.PastEventsDays == 0 {
		c.Cleanup.PastEventsDays = 180
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
}

// validate rejects values that survive setDefaults but would break a job,
// such as negative retention windows.
func (c *Config) validate() error {
	positive := []struct {
		key string
		val int64
	}{
		{"ingestion.interval", int64(c.Ingestion.Interval)},
		{"ingestion.fetch_timeout", int64(c.Ingestion.FetchTimeout)},
		{"ingestion.max_entries_per_fetch", int64(c.Ingestion.MaxEntriesPerFetch)},
		{"ingestion.max_entries_retained", int64(c.Ingestion.MaxEntriesRetained)},
		{"cleanup.interval_hours", int64(c.Cleanup.IntervalHours)},
		{"cleanup.completed_tasks_days", int64(c.Cleanup.CompletedTasksDays)},
		{"cleanup.archived_notes_days", int64(c.Cleanup.ArchivedNotesDays)},
		{"cleanup.past_events_days", int64(c.Cleanup.PastEventsDays)},
	}
	for _, p := range positive {
		if p.val <= 0 {
			return fmt.Errorf("%s must be positive, got %d", p.key, p.val)
		}
	}

	if c.Ingestion.StartupDelay < 0 {
		return fmt.Errorf("ingestion.startup_delay must not be negative, got %s", c.Ingestion.StartupDelay)
	}
	if c.Cleanup.StartupDelay < 0 {
		return fmt.Errorf("cleanup.startup_delay must not be negative, got %s", c.Cleanup.StartupDelay)
	}

	return nil
}
