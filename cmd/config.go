package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/infotech-symposium/event-registration/api"
	"github.com/infotech-symposium/event-registration/draft"
	"gopkg.in/yaml.v3"
)

// appName is the single source of truth for the application name.
const appName = "infotech"

const defaultEndpoint = "http://localhost:8080"

var (
	envConfigDir      = strings.ToUpper(appName) + "_CONFIG_DIR"
	envEndpoint       = strings.ToUpper(appName) + "_ENDPOINT"
	envEndpointParam  = strings.ToUpper(appName) + "_ENDPOINT_PARAM"
	envDraftBackend   = strings.ToUpper(appName) + "_DRAFT_BACKEND"
	envDraftTable     = strings.ToUpper(appName) + "_DRAFT_TABLE"
	envDynamoEndpoint = strings.ToUpper(appName) + "_DYNAMO_ENDPOINT"
)

const (
	draftBackendFile   = "file"
	draftBackendSQLite = "sqlite"
	draftBackendDynamo = "dynamo"
)

type Config struct {
	Env              api.Environment
	ConfigDir        string
	Endpoint         string
	EndpointParam    string
	DraftBackend     string
	DraftTable       string
	DynamoEndpoint   string
	AutosaveInterval time.Duration
	AllowedOrigins   []string
}

// fileConfig is the optional config.yaml in the config directory.
type fileConfig struct {
	Endpoint         string         `yaml:"endpoint"`
	EndpointParam    string         `yaml:"endpointParam"`
	DraftBackend     string         `yaml:"draftBackend"`
	DraftTable       string         `yaml:"draftTable"`
	DynamoEndpoint   string         `yaml:"dynamoEndpoint"`
	AutosaveInterval *time.Duration `yaml:"autosaveInterval"`
	AllowedOrigins   []string       `yaml:"allowedOrigins"`
}

// resolveConfigDir returns the base config directory for the application.
// Priority: $INFOTECH_CONFIG_DIR > $XDG_CONFIG_HOME/infotech > ~/.config/infotech
func resolveConfigDir() (string, error) {
	if v := os.Getenv(envConfigDir); v != "" {
		return v, nil
	}
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return filepath.Join(v, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".config", appName), nil
}

func getEnvOrDefault(key string, defaultVal string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}

	return defaultVal
}

func parseEnvironment(v string) (api.Environment, error) {
	switch strings.ToUpper(v) {
	case "", "LOCAL":
		return api.LOCAL, nil
	case "PROD":
		return api.PROD, nil
	default:
		return api.LOCAL, fmt.Errorf("unknown ENV %q, expected LOCAL or PROD", v)
	}
}

func readFileConfig(dir string) (fileConfig, error) {
	var fc fileConfig

	data, err := os.ReadFile(filepath.Join(dir, "config.yaml"))
	if errors.Is(err, fs.ErrNotExist) {
		return fc, nil
	}
	if err != nil {
		return fc, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fc, fmt.Errorf("failed to parse config file: %w", err)
	}
	return fc, nil
}

// loadConfig layers environment variables over config.yaml over defaults.
func loadConfig() (Config, error) {
	env, err := parseEnvironment(getEnvOrDefault("ENV", "LOCAL"))
	if err != nil {
		return Config{}, err
	}

	dir, err := resolveConfigDir()
	if err != nil {
		return Config{}, err
	}

	fc, err := readFileConfig(dir)
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		Env:              env,
		ConfigDir:        dir,
		Endpoint:         getEnvOrDefault(envEndpoint, orDefault(fc.Endpoint, defaultEndpoint)),
		EndpointParam:    getEnvOrDefault(envEndpointParam, fc.EndpointParam),
		DraftBackend:     getEnvOrDefault(envDraftBackend, orDefault(fc.DraftBackend, draftBackendFile)),
		DraftTable:       getEnvOrDefault(envDraftTable, orDefault(fc.DraftTable, "InfoTechDrafts")),
		DynamoEndpoint:   getEnvOrDefault(envDynamoEndpoint, fc.DynamoEndpoint),
		AutosaveInterval: draft.SaveInterval,
		AllowedOrigins:   fc.AllowedOrigins,
	}
	if fc.AutosaveInterval != nil && *fc.AutosaveInterval > 0 {
		cfg.AutosaveInterval = *fc.AutosaveInterval
	}

	switch cfg.DraftBackend {
	case draftBackendFile, draftBackendSQLite, draftBackendDynamo:
	default:
		return Config{}, fmt.Errorf("unknown draft backend %q, expected %q, %q or %q",
			cfg.DraftBackend, draftBackendFile, draftBackendSQLite, draftBackendDynamo)
	}

	return cfg, nil
}

// resolveEndpoint returns the backend URL. In PROD it can be kept in SSM
// Parameter Store instead of the local config.
func resolveEndpoint(ctx context.Context, cfg Config, params parameterGetter) (string, error) {
	if cfg.Env != api.PROD || cfg.EndpointParam == "" {
		return cfg.Endpoint, nil
	}

	endpoint, err := params.GetParameter(ctx, cfg.EndpointParam)
	if err != nil {
		return "", fmt.Errorf("failed to look up endpoint parameter %q: %w", cfg.EndpointParam, err)
	}
	return endpoint, nil
}

func orDefault(v string, defaultVal string) string {
	if v == "" {
		return defaultVal
	}
	return v
}
