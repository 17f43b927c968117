// Package config loads the application configuration from YAML, falling
// back to embedded defaults when no user config exists.
package config

// Config is the application configuration.
type Config struct {
	// DB is the path to the save database.
	DB string `yaml:"db"`

	SSH    SSHConfig   `yaml:"ssh"`
	Tokens TokenConfig `yaml:"tokens"`
}

// SSHConfig holds remote-play server settings.
type SSHConfig struct {
	Address            string `yaml:"address"`
	IdleTimeoutMinutes int    `yaml:"idle_timeout_minutes"`
}

// TokenConfig controls battle-pass token spawning on the level screen.
type TokenConfig struct {
	SpawnSeconds int `yaml:"spawn_seconds"`
}

// DefaultConfig returns the hardcoded fallback configuration.
func DefaultConfig() Config {
	return Config{
		DB: "~/.jigsaw/save.db",
		SSH: SSHConfig{
			Address:            ":23235",
			IdleTimeoutMinutes: 30,
		},
		Tokens: TokenConfig{
			SpawnSeconds: 20,
		},
	}
}
