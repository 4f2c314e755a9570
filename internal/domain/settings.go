package domain

import (
	"errors"
	"time"
)

const (
	DefaultHost    = "127.0.0.1"
	DefaultPortMin = 1884
	DefaultPortMax = 1893
	DefaultTimeout = 5 * time.Second
)

var (
	// ErrInvalidPort indicates a port outside 1-65535 or an inverted discovery range.
	ErrInvalidPort = errors.New("port must be between 1 and 65535 and port_min must not exceed port_max")

	// ErrInvalidTimeout indicates that the request timeout is too short.
	ErrInvalidTimeout = errors.New("timeout must be at least 1 second")

	// ErrInvalidHost indicates that the host is empty.
	ErrInvalidHost = errors.New("host is required")
)

// Settings describes how to reach the Wave Link remote-control server.
// A zero Port means the port is discovered by scanning PortMin..PortMax.
type Settings struct {
	Host    string
	Port    int
	PortMin int
	PortMax int
	Timeout time.Duration
}

// DefaultSettings returns the default connection settings.
func DefaultSettings() Settings {
	return Settings{
		Host:    DefaultHost,
		PortMin: DefaultPortMin,
		PortMax: DefaultPortMax,
		Timeout: DefaultTimeout,
	}
}

// Validate checks if the settings values are usable.
func (s Settings) Validate() error {
	if s.Host == "" {
		return ErrInvalidHost
	}
	if s.Port < 0 || s.Port > 65535 {
		return ErrInvalidPort
	}
	if s.PortMin < 1 || s.PortMax > 65535 || s.PortMin > s.PortMax {
		return ErrInvalidPort
	}
	if s.Timeout < time.Second {
		return ErrInvalidTimeout
	}
	return nil
}

// Ports returns the candidate ports in the order they should be tried.
func (s Settings) Ports() []int {
	if s.Port > 0 {
		return []int{s.Port}
	}
	ports := make([]int, 0, s.PortMax-s.PortMin+1)
	for p := s.PortMin; p <= s.PortMax; p++ {
		ports = append(ports, p)
	}
	return ports
}
