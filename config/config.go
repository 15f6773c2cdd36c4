package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Configuration keys.
const (
	KeyBaseBranch    = "base_branch"
	KeyRemote        = "remote"
	KeyStartID       = "start_id"
	KeyInterval      = "interval"
	KeyProvider      = "provider"
	KeyGitHubToken   = "github_token"
	KeyGitHubOwner   = "github_owner"
	KeyGitHubRepo    = "github_repo"
	KeyGitLabToken   = "gitlab_token"
	KeyGitLabHost    = "gitlab_host"
	KeyGitLabProject = "gitlab_project"
	KeyWebhookURL    = "webhook_url"

	// KeySlackWebhookURL points at a Slack incoming webhook; run
	// summaries are posted there in addition to the generic webhook.
	KeySlackWebhookURL = "slack_webhook_url"
)

// EnvPrefix is prepended to upper-cased key names for environment
// variable lookup; base_branch maps to PRSEED_BASE_BRANCH.
const EnvPrefix = "PRSEED_"

// DefaultFileName is the config file looked up in the working
// directory when no -config flag is given.
const DefaultFileName = ".prseed.yaml"

// defaults provides the built-in values for configuration keys.
var defaults = map[string]string{
	KeyBaseBranch:      "main",
	KeyRemote:          "origin",
	KeyStartID:         "1",
	KeyInterval:        "1s",
	KeyProvider:        "cli",
	KeyGitHubToken:     "",
	KeyGitHubOwner:     "",
	KeyGitHubRepo:      "",
	KeyGitLabToken:     "",
	KeyGitLabHost:      "",
	KeyGitLabProject:   "",
	KeyWebhookURL:      "",
	KeySlackWebhookURL: "",
}

// Resolved holds the merged configuration with per-key source
// tracking. Precedence, lowest to highest: defaults, config file,
// environment, flags.
type Resolved struct {
	values  map[string]string
	sources map[string]Source
}

// Load resolves configuration. When path is empty, DefaultFileName is
// used if it exists; an explicitly given path must exist.
func Load(path string) (*Resolved, error) {
	r := &Resolved{
		values:  make(map[string]string, len(defaults)),
		sources: make(map[string]Source, len(defaults)),
	}
	for k, v := range defaults {
		r.values[k] = v
		r.sources[k] = SourceDefault
	}

	explicit := path != ""
	if path == "" {
		path = DefaultFileName
	}

	if err := r.mergeFile(path, explicit); err != nil {
		return nil, err
	}
	r.mergeEnv()

	return r, nil
}

// mergeFile layers values from a YAML file of key: value pairs.
// A missing file is only an error when it was explicitly requested.
func (r *Resolved) mergeFile(path string, explicit bool) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return nil
		}
		return fmt.Errorf("read config %s: %w", path, err)
	}

	fileValues := make(map[string]string)
	if err := yaml.Unmarshal(data, &fileValues); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	for k, v := range fileValues {
		if _, known := defaults[k]; !known {
			return fmt.Errorf("config %s: unknown key %q", path, k)
		}
		r.values[k] = v
		r.sources[k] = SourceFile
	}

	return nil
}

// mergeEnv layers PRSEED_-prefixed environment variables.
func (r *Resolved) mergeEnv() {
	for k := range defaults {
		envKey := EnvPrefix + strings.ToUpper(k)
		if v, ok := os.LookupEnv(envKey); ok {
			r.values[k] = v
			r.sources[k] = SourceEnv
		}
	}
}

// SetFlag records a command-line flag value, the highest-precedence
// layer.
func (r *Resolved) SetFlag(key, value string) {
	r.values[key] = value
	r.sources[key] = SourceFlag
}

// Get returns the value for a key, or empty string if not set.
func (r *Resolved) Get(key string) string {
	return r.values[key]
}

// Source returns the source of a key's value.
func (r *Resolved) Source(key string) Source {
	return r.sources[key]
}

// Int returns the key's value parsed as an integer.
func (r *Resolved) Int(key string) (int, error) {
	n, err := strconv.Atoi(r.values[key])
	if err != nil {
		return 0, fmt.Errorf("config %s: %w", key, err)
	}
	return n, nil
}

// Duration returns the key's value parsed as a time.Duration.
func (r *Resolved) Duration(key string) (time.Duration, error) {
	d, err := time.ParseDuration(r.values[key])
	if err != nil {
		return 0, fmt.Errorf("config %s: %w", key, err)
	}
	return d, nil
}
