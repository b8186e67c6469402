package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Settings holds everything read from the environment. Balance data lives in
// the other files of this package and is compiled in.
type Settings struct {
	Port       int    `env:"PORT" envDefault:"8000"`
	HostSecret string `env:"HOST_SECRET" envDefault:"kienquoc@FPT2026"`

	// Seconds between server pings on an open websocket.
	HeartbeatInterval int `env:"WS_HEARTBEAT_INTERVAL" envDefault:"30"`
}

// LoadSettings parses Settings from environment variables. Callers load .env
// into the environment first (see cmd/server).
func LoadSettings() (Settings, error) {
	var s Settings
	if err := env.Parse(&s); err != nil {
		return Settings{}, fmt.Errorf("parse env: %w", err)
	}
	return s, nil
}
