package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
)

const (
	defaultPath               = "."
	defaultMaxRequestBodySize = "100KB"

	defaultRemoteTimeout      = 8 * time.Second
	minRemoteTimeout          = time.Second
	maxRemoteTimeout          = 30 * time.Second
	defaultProbeEndpoint      = "/health"
	defaultProbeTimeout       = 3 * time.Second
	defaultLocalStorePath     = "quest.db"
	defaultBusyTimeout        = 5 * time.Second
	defaultReplicationQueue   = 256
	defaultReplicationWorkers = 1
	defaultReplicationTimeout = 20 * time.Second
	defaultSyncTimeout        = 60 * time.Second
	defaultMetricsPath        = "/metrics"
)

type Config struct {
	Env struct {
		Env         string `json:"env" yaml:"env"`
		ServiceName string `json:"serviceName" yaml:"serviceName"`
		Debug       bool   `json:"debug" yaml:"debug"`
		Log         Log    `json:"log" yaml:"log"`
	} `json:"env" yaml:"env"`

	HTTP struct {
		Port               int    `json:"port" yaml:"port"`
		MaxRequestBodySize string `json:"maxRequestBodySize" yaml:"maxRequestBodySize"`
		Timeouts           struct {
			ReadTimeout       time.Duration `json:"readTimeout" yaml:"readTimeout"`
			ReadHeaderTimeout time.Duration `json:"readHeaderTimeout" yaml:"readHeaderTimeout"`
			WriteTimeout      time.Duration `json:"writeTimeout" yaml:"writeTimeout"`
			IdleTimeout       time.Duration `json:"idleTimeout" yaml:"idleTimeout"`
		} `json:"timeouts" yaml:"timeouts"`
	} `json:"http" yaml:"http"`

	// Remote configuration for the remote JSON API
	Remote *RemoteConfig `json:"remote" yaml:"remote"`

	// LocalStore configuration for the embedded SQLite mirror
	LocalStore *LocalStoreConfig `json:"localStore" yaml:"localStore"`

	// Replication configuration for background mirror writes
	Replication *ReplicationConfig `json:"replication" yaml:"replication"`

	// Sync configuration for full resyncs
	Sync *SyncConfig `json:"sync" yaml:"sync"`

	// PubSub configuration for sync event publishing
	PubSub *PubSubConfig `json:"pubsub" yaml:"pubsub"`

	// Metrics configuration for the Prometheus endpoint
	Metrics *MetricsConfig `json:"metrics" yaml:"metrics"`
}

type Log struct {
	Pretty bool   `json:"pretty" yaml:"pretty"`
	Level  string `json:"level" yaml:"level"`
}

// RemoteConfig defines how the remote service is reached
type RemoteConfig struct {
	// Base URL every endpoint is resolved against, e.g. https://api.example.com/v1
	BaseURL string `json:"baseUrl" yaml:"baseUrl"`

	// Hard deadline for one request; the request is aborted when it elapses
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// Endpoint used by the health probe
	ProbeEndpoint string `json:"probeEndpoint" yaml:"probeEndpoint"`

	// Deadline for the health probe
	ProbeTimeout time.Duration `json:"probeTimeout" yaml:"probeTimeout"`

	// Static headers added to every request
	Headers map[string]string `json:"headers" yaml:"headers"`
}

// LocalStoreConfig defines the embedded database
type LocalStoreConfig struct {
	// Path to the SQLite file
	Path string `json:"path" yaml:"path"`

	// Drop and recreate every table when the store initializes.
	// The local store is then a disposable cache that is reset on each launch.
	// Unset means true.
	ResetOnInit *bool `json:"resetOnInit" yaml:"resetOnInit"`

	// SQLite busy timeout
	BusyTimeout time.Duration `json:"busyTimeout" yaml:"busyTimeout"`

	// Maximum open connections; 1 serializes every write
	MaxOpenConns int `json:"maxOpenConns" yaml:"maxOpenConns"`
}

// ResetsOnInit reports whether the store drops its tables on first use.
func (c *LocalStoreConfig) ResetsOnInit() bool {
	return c.ResetOnInit == nil || *c.ResetOnInit
}

// ReplicationConfig defines the background mirror writer
type ReplicationConfig struct {
	// Buffered jobs before new jobs are dropped
	QueueSize int `json:"queueSize" yaml:"queueSize"`

	// Number of writer goroutines
	Workers int `json:"workers" yaml:"workers"`

	// Deadline for one mirror write, including fetching missing parents from the remote service
	WriteTimeout time.Duration `json:"writeTimeout" yaml:"writeTimeout"`
}

// SyncConfig defines full resync behavior
type SyncConfig struct {
	// Interval between periodic syncs; zero disables the sync worker
	Interval time.Duration `json:"interval" yaml:"interval"`

	// Run one sync as soon as the application starts
	OnStart bool `json:"onStart" yaml:"onStart"`

	// Deadline for one full sync
	Timeout time.Duration `json:"timeout" yaml:"timeout"`
}

// PubSubConfig defines Pub/Sub configuration for sync event publishing
type PubSubConfig struct {
	// Provider type: "local" for local HTTP or "google" for Google Pub/Sub
	Provider string `json:"provider" yaml:"provider"`

	// Google Cloud project ID (for google provider)
	ProjectID string `json:"projectId" yaml:"projectId"`

	// Pub/Sub topic ID (for google provider)
	TopicID string `json:"topicId" yaml:"topicId"`

	// Local HTTP endpoint for development (for local provider)
	LocalEndpoint string `json:"localEndpoint" yaml:"localEndpoint"`
}

// MetricsConfig defines the Prometheus endpoint
type MetricsConfig struct {
	Enabled bool   `json:"enabled" yaml:"enabled"`
	Path    string `json:"path" yaml:"path"`
}

// LoadWithEnv loads .yaml files through koanf.
func LoadWithEnv[T any](currEnv string, configPath ...string) (*T, error) {
	cfg := new(T)
	koanfInstance := koanf.New(".")

	// Build list of paths to search for config file
	searchPaths := []string{defaultPath}
	if len(configPath) != 0 {
		pwd, err := os.Getwd()
		if err != nil {
			return nil, errors.Wrap(err, "os.Getwd")
		}
		for _, path := range configPath {
			abs := filepath.Join(pwd, path)
			searchPaths = append(searchPaths, abs)
		}
	}

	var configFile string
	var found bool
	for _, path := range searchPaths {
		candidate := filepath.Join(path, currEnv+".yaml")
		if _, err := os.Stat(candidate); err == nil {
			configFile = candidate
			found = true

			break
		}
	}

	if !found {
		return nil, errors.Errorf("config file %s.yaml not found in any search path", currEnv)
	}

	if err := koanfInstance.Load(file.Provider(configFile), yaml.Parser()); err != nil {
		return nil, errors.Wrapf(err, "read %s config failed", currEnv)
	}

	existingConfigMap := koanfInstance.Raw()

	if err := koanfInstance.Load(env.Provider(".", env.Opt{
		TransformFunc: func(k, v string) (string, any) {
			// REMOTE_BASEURL -> remote.baseUrl, aligned with the keys already loaded from YAML.
			key := canonicalizeEnvKey(k, existingConfigMap)

			return key, v
		},
	}), nil); err != nil {
		return nil, errors.Wrap(err, "load env variables failed")
	}

	if err := koanfInstance.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
			),
			MatchName: func(mapKey, fieldName string) bool {
				return strings.EqualFold(mapKey, fieldName)
			},
		},
	}); err != nil {
		return nil, errors.Wrapf(err, "unmarshal %s config failed", currEnv)
	}

	return cfg, nil
}

func New() (*Config, error) {
	cfg, err := LoadWithEnv[Config]("config", "config", "../config", "../../config")
	if err != nil {
		return nil, err
	}

	if err := cfg.ApplyDefaults(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// ApplyDefaults fills unset sections and values and validates the remote settings.
func (cfg *Config) ApplyDefaults() error {
	if strings.TrimSpace(cfg.HTTP.MaxRequestBodySize) == "" {
		cfg.HTTP.MaxRequestBodySize = defaultMaxRequestBodySize
	}

	if cfg.Remote == nil {
		cfg.Remote = &RemoteConfig{}
	}
	if strings.TrimSpace(cfg.Remote.BaseURL) == "" {
		return errors.New("remote.baseUrl is required")
	}
	cfg.Remote.BaseURL = strings.TrimRight(cfg.Remote.BaseURL, "/")
	switch {
	case cfg.Remote.Timeout == 0:
		cfg.Remote.Timeout = defaultRemoteTimeout
	case cfg.Remote.Timeout < minRemoteTimeout:
		cfg.Remote.Timeout = minRemoteTimeout
	case cfg.Remote.Timeout > maxRemoteTimeout:
		cfg.Remote.Timeout = maxRemoteTimeout
	}
	if cfg.Remote.ProbeEndpoint == "" {
		cfg.Remote.ProbeEndpoint = defaultProbeEndpoint
	}
	if cfg.Remote.ProbeTimeout <= 0 {
		cfg.Remote.ProbeTimeout = defaultProbeTimeout
	}

	if cfg.LocalStore == nil {
		cfg.LocalStore = &LocalStoreConfig{}
	}
	if cfg.LocalStore.ResetOnInit == nil {
		reset := true
		cfg.LocalStore.ResetOnInit = &reset
	}
	if cfg.LocalStore.Path == "" {
		cfg.LocalStore.Path = defaultLocalStorePath
	}
	if cfg.LocalStore.BusyTimeout <= 0 {
		cfg.LocalStore.BusyTimeout = defaultBusyTimeout
	}
	if cfg.LocalStore.MaxOpenConns <= 0 {
		cfg.LocalStore.MaxOpenConns = 1
	}

	if cfg.Replication == nil {
		cfg.Replication = &ReplicationConfig{}
	}
	if cfg.Replication.QueueSize <= 0 {
		cfg.Replication.QueueSize = defaultReplicationQueue
	}
	if cfg.Replication.Workers <= 0 {
		cfg.Replication.Workers = defaultReplicationWorkers
	}
	if cfg.Replication.WriteTimeout <= 0 {
		cfg.Replication.WriteTimeout = defaultReplicationTimeout
	}

	if cfg.Sync == nil {
		cfg.Sync = &SyncConfig{}
	}
	if cfg.Sync.Timeout <= 0 {
		cfg.Sync.Timeout = defaultSyncTimeout
	}

	if cfg.Metrics == nil {
		cfg.Metrics = &MetricsConfig{}
	}
	if cfg.Metrics.Path == "" {
		cfg.Metrics.Path = defaultMetricsPath
	}

	return nil
}

func canonicalizeEnvKey(rawKey string, existing map[string]any) string {
	segments := strings.Split(strings.ToLower(rawKey), "_")
	canonical := make([]string, 0, len(segments))
	current := existing

	for _, segment := range segments {
		if segment == "" {
			continue
		}

		if matched, next, ok := findExistingSegment(current, segment); ok {
			canonical = append(canonical, matched)
			current = next
		} else {
			canonical = append(canonical, segment)
			current = nil
		}
	}

	return strings.Join(canonical, ".")
}

func findExistingSegment(current map[string]any, segment string) (matched string, next map[string]any, ok bool) {
	if len(current) == 0 {
		return "", nil, false
	}

	needle := normalizeToken(segment)
	for key, value := range current {
		if normalizeToken(key) != needle {
			continue
		}

		child, _ := value.(map[string]any)

		return key, child, true
	}

	return "", nil, false
}

func normalizeToken(s string) string {
	var normalized strings.Builder
	normalized.Grow(len(s))

	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			continue
		}
		normalized.WriteRune(unicode.ToLower(r))
	}

	return normalized.String()
}
