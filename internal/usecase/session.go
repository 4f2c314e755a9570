package usecase

import (
	"context"
	"fmt"

	"wavelink-cli/internal/domain"
	"wavelink-cli/internal/logging"
)

// WithSession opens a session, runs fn and closes the session exactly once,
// whether fn succeeds, fails or panics. A close error is reported only when fn succeeded.
func WithSession(ctx context.Context, connector domain.Connector, fn func(domain.Mixer) error) (err error) {
	logging.Infof("Connecting to Wave Link...")
	session, err := connector.Connect(ctx)
	if err != nil {
		return fmt.Errorf("connect to wave link: %w", err)
	}
	logging.Infof("Connected successfully")

	defer func() {
		closeErr := session.Close()
		if closeErr != nil {
			logging.Debugf("close session: %v", closeErr)
		}
		if err == nil && closeErr != nil {
			err = fmt.Errorf("close wave link session: %w", closeErr)
		}
	}()
	return fn(session)
}

// ErrorMessage renders err for the top-level boundary, substituting a generic
// message when err has none.
func ErrorMessage(err error) string {
	if err == nil {
		return ""
	}
	if msg := err.Error(); msg != "" {
		return msg
	}
	return "An unexpected error occurred"
}
