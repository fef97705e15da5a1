package config

import (
	"log"
	"strings"

	"github.com/spf13/viper"
)

// App holds application configuration.
type App struct {
	Name    string `mapstructure:"name"`
	Env     string `mapstructure:"env"`
	Version string `mapstructure:"version"`
}

// Logger holds logger configuration.
type Logger struct {
	Level    string `mapstructure:"level"`
	Encoding string `mapstructure:"encoding"`
}

// API holds API server configuration.
type API struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

// Option customizes how Load resolves keys.
type Option func(v *viper.Viper)

// WithDefault registers a default value for key. Keys with a default can also be set from the environment.
func WithDefault(key string, value interface{}) Option {
	return func(v *viper.Viper) {
		v.SetDefault(key, value)
	}
}

// WithEnv binds key to explicit environment variable names, checked in order.
func WithEnv(key string, envs ...string) Option {
	return func(v *viper.Viper) {
		_ = v.BindEnv(append([]string{key}, envs...)...)
	}
}

// Load loads configuration from a file into the given config struct.
// Values in the environment override the file (key "a.b" maps to "A_B").
func Load(path string, config interface{}, opts ...Option) error {
	v := viper.New()
	for _, opt := range opts {
		opt(v)
	}

	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		log.Printf("Failed to read config file %s, reading from environment variables", path)
	}

	return v.Unmarshal(config)
}
