package repository

import (
	"fmt"
	"strconv"
	"strings"

	"wavelink-cli/internal/domain"
)

// Environment variables that override the settings file.
const (
	EnvHost = "WAVELINK_HOST"
	EnvPort = "WAVELINK_PORT"
)

// ApplyEnv overlays environment overrides on settings. lookup is usually os.LookupEnv.
func ApplyEnv(settings domain.Settings, lookup func(string) (string, bool)) (domain.Settings, error) {
	if host, ok := lookup(EnvHost); ok && strings.TrimSpace(host) != "" {
		settings.Host = strings.TrimSpace(host)
	}
	if raw, ok := lookup(EnvPort); ok && strings.TrimSpace(raw) != "" {
		port, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil || port < 1 || port > 65535 {
			return domain.Settings{}, fmt.Errorf("%s=%q: %w", EnvPort, raw, domain.ErrInvalidPort)
		}
		settings.Port = port
	}
	return settings, nil
}
