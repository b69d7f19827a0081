package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearCleanupEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"CLEANUP_ENABLED",
		"CLEANUP_INTERVAL_HOURS",
		"CLEANUP_COMPLETED_TASKS_DAYS",
		"CLEANUP_ARCHIVED_NOTES_DAYS",
		"CLEANUP_PAST_EVENTS_DAYS",
		"DATABASE_URL",
		"RABBITMQ_URL",
	} {
		t.Setenv(k, "")
	}
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	clearCleanupEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)

	assert.True(t, cfg.Cleanup.IsEnabled())
	assert.Equal(t, 24, cfg.Cleanup.IntervalHours)
	assert.Equal(t, 24*time.Hour, cfg.Cleanup.Interval())
	assert.Equal(t, 90, cfg.Cleanup.CompletedTasksDays)
	assert.Equal(t, 180, cfg.Cleanup.ArchivedNotesDays)
	assert.Equal(t, 180, cfg.Cleanup.PastEventsDays)
	assert.Equal(t, 15*time.Minute, cfg.Ingestion.Interval)
	assert.Equal(t, 10*time.Second, cfg.Ingestion.FetchTimeout)
	assert.Equal(t, 50, cfg.Ingestion.MaxEntriesPerFetch)
	assert.Equal(t, 100, cfg.Ingestion.MaxEntriesRetained)
	assert.Equal(t, ":8080", cfg.HTTP.Addr)
	assert.Empty(t, cfg.RabbitMQ.Exchange)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoad_YAMLAndEnvOverrides(t *testing.T) {
	clearCleanupEnv(t)
	t.Setenv("CLEANUP_ARCHIVED_NOTES_DAYS", "365")
	t.Setenv("TEST_DB_PASSWORD", "s3cret")

	path := filepath.Join(t.TempDir(), "config.yaml")
	yml := `
database:
  host: db
  user: noteflow
  password: ${TEST_DB_PASSWORD}
  dbname: noteflow
cleanup:
  enabled: false
  interval_hours: 6
  archived_notes_days: 30
ingestion:
  interval: 5m
rabbitmq:
  url: amqp://guest:guest@mq:5672/
`
	require.NoError(t, os.WriteFile(path, []byte(yml), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.False(t, cfg.Cleanup.IsEnabled())
	assert.Equal(t, 6, cfg.Cleanup.IntervalHours)
	assert.Equal(t, 365, cfg.Cleanup.ArchivedNotesDays)
	assert.Equal(t, 5*time.Minute, cfg.Ingestion.Interval)
	assert.Equal(t, "noteflow", cfg.RabbitMQ.Exchange)
	assert.Contains(t, cfg.Database.DSN(), "password=s3cret")
	assert.Contains(t, cfg.Database.DSN(), "host=db")
}

func TestApplyEnv(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		check   func(t *testing.T, c *Config)
		wantErr bool
	}{
		{
			name: "enable flag parses",
			env:  map[string]string{"CLEANUP_ENABLED": "false"},
			check: func(t *testing.T, c *Config) {
				assert.False(t, c.Cleanup.IsEnabled())
			},
		},
		{
			name: "database url wins over parts",
			env:  map[string]string{"DATABASE_URL": "postgres://u:p@h/db"},
			check: func(t *testing.T, c *Config) {
				assert.Equal(t, "postgres://u:p@h/db", c.Database.DSN())
			},
		},
		{
			name:    "bad bool",
			env:     map[string]string{"CLEANUP_ENABLED": "maybe"},
			wantErr: true,
		},
		{
			name:    "non numeric days",
			env:     map[string]string{"CLEANUP_PAST_EVENTS_DAYS": "ten"},
			wantErr: true,
		},
		{
			name:    "zero interval",
			env:     map[string]string{"CLEANUP_INTERVAL_HOURS": "0"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var cfg Config
			err := cfg.applyEnv(func(k string) (string, bool) {
				v, ok := tt.env[k]
				return v, ok
			})
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			tt.check(t, &cfg)
		})
	}
}

func TestLoad_RejectsNonPositiveYAMLValues(t *testing.T) {
	tests := []struct {
		name    string
		yml     string
		wantErr string
	}{
		{
			name:    "negative completed tasks days",
			yml:     "cleanup:\n  completed_tasks_days: -30\n",
			wantErr: "cleanup.completed_tasks_days must be positive",
		},
		{
			name:    "negative archived notes days",
			yml:     "cleanup:\n  archived_notes_days: -1\n",
			wantErr: "cleanup.archived_notes_days must be positive",
		},
		{
			name:    "negative past events days",
			yml:     "cleanup:\n  past_events_days: -7\n",
			wantErr: "cleanup.past_events_days must be positive",
		},
		{
			name:    "negative interval hours",
			yml:     "cleanup:\n  interval_hours: -1\n",
			wantErr: "cleanup.interval_hours must be positive",
		},
		{
			name:    "negative retention cap",
			yml:     "ingestion:\n  max_entries_retained: -5\n",
			wantErr: "ingestion.max_entries_retained must be positive",
		},
		{
			name:    "negative per fetch cap",
			yml:     "ingestion:\n  max_entries_per_fetch: -1\n",
			wantErr: "ingestion.max_entries_per_fetch must be positive",
		},
		{
			name:    "negative fetch timeout",
			yml:     "ingestion:\n  fetch_timeout: -10s\n",
			wantErr: "ingestion.fetch_timeout must be positive",
		},
		{
			name:    "negative poll interval",
			yml:     "ingestion:\n  interval: -1m\n",
			wantErr: "ingestion.interval must be positive",
		},
		{
			name:    "negative startup delay",
			yml:     "cleanup:\n  startup_delay: -1m\n",
			wantErr: "cleanup.startup_delay must not be negative",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearCleanupEnv(t)

			path := filepath.Join(t.TempDir(), "config.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.yml), 0o600))

			cfg, err := Load(path)
			require.Error(t, err)
			assert.Nil(t, cfg)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
