// Package config builds the output-files configuration from env and .env-files
package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	wbfconfig "github.com/wb-go/wbf/config"
)

const (
	DefaultCredentialPath  = "/etc/outputs/credentials.json"
	DefaultCredentialAlias = "outputs"
	DefaultBucketName      = "generated-images"
	DefaultOutputRoot      = "outputs/files"
	DefaultObjectPrefix    = "users_img/"
	DefaultConnectAttempts = 3
	DefaultConnectDelay    = 2 * time.Second
	DefaultLogLevel        = "info"
)

// Config is built once at startup and passed to storage and the output manager
type Config struct {
	CredentialPath  string
	CredentialAlias string
	BucketName      string
	OutputRoot      string
	PublicBaseURL   string
	ObjectPrefix    string
	ConnectAttempts int
	ConnectDelay    time.Duration
	LogLevel        string
}

// Load reads env (no prefix) and then every env-file given
func Load(envFiles ...string) (Config, error) {
	appConfig := wbfconfig.New()
	appConfig.EnableEnv("")
	for _, f := range envFiles {
		if err := appConfig.LoadEnvFiles(f); err != nil {
			return Config{}, fmt.Errorf("failed to load env-file %q: %w", f, err)
		}
	}

	return FromGetter(appConfig.GetString)
}

// FromGetter fills Config using get for raw values, empty values get defaults
func FromGetter(get func(key string) string) (Config, error) {
	cfg := Config{
		CredentialPath:  valueOr(get("OUTPUTS_CREDENTIAL_PATH"), DefaultCredentialPath),
		CredentialAlias: valueOr(get("OUTPUTS_CREDENTIAL_ALIAS"), DefaultCredentialAlias),
		BucketName:      valueOr(get("OUTPUTS_BUCKET"), DefaultBucketName),
		OutputRoot:      valueOr(get("OUTPUTS_ROOT"), DefaultOutputRoot),
		PublicBaseURL:   strings.TrimRight(strings.TrimSpace(get("OUTPUTS_PUBLIC_BASE")), "/"),
		ObjectPrefix:    valueOr(get("OUTPUTS_OBJECT_PREFIX"), DefaultObjectPrefix),
		ConnectAttempts: DefaultConnectAttempts,
		ConnectDelay:    DefaultConnectDelay,
		LogLevel:        valueOr(get("LOG_LEVEL"), DefaultLogLevel),
	}

	if raw := strings.TrimSpace(get("OUTPUTS_CONNECT_ATTEMPTS")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			return Config{}, fmt.Errorf("incorrect OUTPUTS_CONNECT_ATTEMPTS value %q", raw)
		}
		cfg.ConnectAttempts = n
	}

	if raw := strings.TrimSpace(get("OUTPUTS_CONNECT_DELAY")); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil || d < 0 {
			return Config{}, fmt.Errorf("incorrect OUTPUTS_CONNECT_DELAY value %q", raw)
		}
		cfg.ConnectDelay = d
	}

	// префикс ключа всегда заканчивается слешем, если он вообще задан
	if cfg.ObjectPrefix != "" && !strings.HasSuffix(cfg.ObjectPrefix, "/") {
		cfg.ObjectPrefix += "/"
	}

	return cfg, nil
}

func valueOr(v, fallback string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return fallback
	}
	return v
}
