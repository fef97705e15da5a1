package config

import (
	"fmt"
	"os"
	"time"

	"reddit-stock-sentiment/pkg/config"

	"gopkg.in/ini.v1"
)

// Reddit holds the configuration for the Reddit API.
type Reddit struct {
	ClientID            string        `mapstructure:"client_id"`
	ClientSecret        string        `mapstructure:"client_secret"`
	UserAgent           string        `mapstructure:"user_agent"`
	BaseURL             string        `mapstructure:"base_url"`
	AuthURL             string        `mapstructure:"auth_url"`
	Timeout             time.Duration `mapstructure:"timeout"`
	MaxRequestPerMinute int           `mapstructure:"max_request_per_minute"`
	SecretsFile         string        `mapstructure:"secrets_file"`
}

// Analyzer selects the sentiment scoring provider.
type Analyzer struct {
	Provider string `mapstructure:"provider"`
}

// Gemini holds the configuration for the Gemini API.
type Gemini struct {
	APIKey              string `mapstructure:"api_key"`
	Model               string `mapstructure:"model"`
	MaxRequestPerMinute int    `mapstructure:"max_request_per_minute"`
}

// Config holds the full configuration for the sentiment service.
type Config struct {
	App      config.App    `mapstructure:"app"`
	Logger   config.Logger `mapstructure:"logger"`
	API      config.API    `mapstructure:"api"`
	Reddit   Reddit        `mapstructure:"reddit"`
	Analyzer Analyzer      `mapstructure:"analyzer"`
	Gemini   Gemini        `mapstructure:"gemini"`
}

// Load loads the sentiment service configuration from the given path and
// resolves Reddit credentials.
func Load(path string) (*Config, error) {
	var cfg Config
	err := config.Load(path, &cfg,
		config.WithDefault("app.name", "reddit-stock-sentiment"),
		config.WithDefault("logger.level", "info"),
		config.WithDefault("logger.encoding", "json"),
		config.WithDefault("api.port", 5000),
		config.WithEnv("api.port", "API_PORT", "PORT"),
		config.WithDefault("reddit.base_url", "https://oauth.reddit.com"),
		config.WithDefault("reddit.auth_url", "https://www.reddit.com/api/v1/access_token"),
		config.WithDefault("reddit.timeout", "30s"),
		config.WithDefault("reddit.max_request_per_minute", 100),
		config.WithDefault("reddit.secrets_file", "secrets.ini"),
		config.WithDefault("analyzer.provider", "vader"),
		config.WithDefault("gemini.model", "gemini-2.0-flash"),
		config.WithDefault("gemini.max_request_per_minute", 15),
	)
	if err != nil {
		return nil, err
	}

	if err := cfg.Reddit.resolveCredentials(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// resolveCredentials prefers REDDIT_CLIENT_ID, REDDIT_CLIENT_SECRET and
// REDDIT_USER_AGENT and falls back to the INI secrets file when any is missing.
func (r *Reddit) resolveCredentials() error {
	if v := os.Getenv("REDDIT_CLIENT_ID"); v != "" {
		r.ClientID = v
	}
	if v := os.Getenv("REDDIT_CLIENT_SECRET"); v != "" {
		r.ClientSecret = v
	}
	if v := os.Getenv("REDDIT_USER_AGENT"); v != "" {
		r.UserAgent = v
	}

	if r.ClientID != "" && r.ClientSecret != "" && r.UserAgent != "" {
		return nil
	}

	if _, err := os.Stat(r.SecretsFile); err != nil {
		return fmt.Errorf("%s not found. Please create it or set environment variables", r.SecretsFile)
	}

	creds, err := ReadSecretsFile(r.SecretsFile)
	if err != nil {
		return err
	}
	r.ClientID = creds.ClientID
	r.ClientSecret = creds.ClientSecret
	r.UserAgent = creds.UserAgent
	return nil
}

// Credentials are the Reddit script-app credentials.
type Credentials struct {
	ClientID     string
	ClientSecret string
	UserAgent    string
}

// ReadSecretsFile reads client_id, client_secret and user_agent from the
// [REDDIT] section, or [reddit] when that is absent. Key names are case-insensitive.
func ReadSecretsFile(path string) (*Credentials, error) {
	file, err := ini.LoadSources(ini.LoadOptions{InsensitiveKeys: true}, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	creds, upperErr := readSection(file, "REDDIT", "client_id", "client_secret", "user_agent")
	if upperErr == nil {
		return creds, nil
	}

	creds, err = readSection(file, "reddit", "client_id", "client_secret", "user_agent")
	if err != nil {
		return nil, fmt.Errorf("failed to read reddit credentials from %s: %w", path, err)
	}
	return creds, nil
}

func readSection(file *ini.File, section, idKey, secretKey, agentKey string) (*Credentials, error) {
	sec, err := file.GetSection(section)
	if err != nil {
		return nil, err
	}

	values := make([]string, 0, 3)
	for _, name := range []string{idKey, secretKey, agentKey} {
		key, err := sec.GetKey(name)
		if err != nil {
			return nil, err
		}
		values = append(values, key.String())
	}

	return &Credentials{
		ClientID:     values[0],
		ClientSecret: values[1],
		UserAgent:    values[2],
	}, nil
}
