package memory

import (
	"context"

	"wavelink-cli/internal/domain"
)

// Connector hands out the same in-memory mixer for every session.
type Connector struct {
	Mixer *Mixer
	Err   error

	connects int
}

// NewConnector creates a connector serving mixer.
func NewConnector(mixer *Mixer) *Connector {
	return &Connector{Mixer: mixer}
}

// Connect returns the mixer, or Err when set.
func (c *Connector) Connect(ctx context.Context) (domain.Session, error) {
	c.connects++
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if c.Err != nil {
		return nil, c.Err
	}
	return c.Mixer, nil
}

// Connects returns how many sessions were requested.
func (c *Connector) Connects() int {
	return c.connects
}

var _ domain.Connector = (*Connector)(nil)
