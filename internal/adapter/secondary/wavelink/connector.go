package wavelink

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strconv"

	"wavelink-cli/internal/domain"
	"wavelink-cli/internal/logging"
)

// ErrNoServer indicates that no candidate port accepted a Wave Link handshake.
var ErrNoServer = errors.New("wave link is not reachable")

// Connector implements domain.Connector by dialing the configured host,
// trying each candidate port in turn until one accepts the handshake.
type Connector struct {
	settings domain.Settings
}

// NewConnector creates a connector for the given settings.
func NewConnector(settings domain.Settings) *Connector {
	return &Connector{settings: settings}
}

// URL returns the WebSocket endpoint for host and port.
func URL(host string, port int) string {
	return "ws://" + net.JoinHostPort(host, strconv.Itoa(port)) + "/"
}

// Connect opens a session on the first reachable port.
func (c *Connector) Connect(ctx context.Context) (domain.Session, error) {
	ports := c.settings.Ports()
	if len(ports) == 0 {
		return nil, domain.ErrInvalidPort
	}
	var lastErr error
	for _, port := range ports {
		url := URL(c.settings.Host, port)
		logging.Debugf("dialing %s", url)
		client, err := Dial(ctx, url, c.settings.Timeout)
		if err == nil {
			logging.Debugf("connected to %s", url)
			return client, nil
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		logging.Tracef("dial %s: %v", url, err)
		lastErr = err
	}
	where := c.settings.Host + ":" + strconv.Itoa(ports[0])
	if len(ports) > 1 {
		where = fmt.Sprintf("%s ports %d-%d", c.settings.Host, ports[0], ports[len(ports)-1])
	}
	return nil, fmt.Errorf("%w on %s (is Wave Link running?): %v", ErrNoServer, where, lastErr)
}

var _ domain.Connector = (*Connector)(nil)
