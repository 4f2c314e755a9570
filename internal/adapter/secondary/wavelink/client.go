// Package wavelink implements the domain.Session port over the Wave Link
// remote-control interface: JSON-RPC 2.0 messages carried in WebSocket text
// frames. The client sends one request at a time,
// waits for the matching response, and never reconnects on its own.
package wavelink

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"wavelink-cli/internal/domain"
	"wavelink-cli/internal/logging"
)

// Origin is sent with the handshake; the server rejects unknown origins.
const Origin = "streamdeck://"

// ErrClosed is returned by calls made after Close.
var ErrClosed = errors.New("wave link session closed")

// Client is a single Wave Link session. It is safe for use by one command at a time;
// calls are serialised so a response is always matched to its request.
type Client struct {
	conn    *websocket.Conn
	timeout time.Duration

	mu     sync.Mutex
	closed bool
}

// Dial opens a session to the server at url (for example ws://127.0.0.1:1884/).
func Dial(ctx context.Context, url string, timeout time.Duration) (*Client, error) {
	dialer := websocket.Dialer{HandshakeTimeout: timeout}
	header := http.Header{}
	header.Set("Origin", Origin)

	conn, _, err := dialer.DialContext(ctx, url, header)
	if err != nil {
		return nil, err
	}
	return &Client{conn: conn, timeout: timeout}, nil
}

// Close sends a close frame and releases the connection. Subsequent calls are no-ops.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil
	}
	c.closed = true
	deadline := time.Now().Add(time.Second)
	_ = c.conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), deadline)
	return c.conn.Close()
}

// call sends one request and blocks until its response arrives, the deadline passes or ctx ends.
// Frames that do not answer the request (notifications, stale replies) are skipped.
func (c *Client) call(ctx context.Context, method string, params, result any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrClosed
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	id := uuid.NewString()
	deadline := time.Now().Add(c.timeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}
	start := time.Now()
	req := rpcRequest{JSONRPC: "2.0", ID: id, Method: method, Params: params}
	if logging.Enabled(logging.LevelTrace) {
		if raw, err := json.Marshal(req); err == nil {
			logging.Tracef("-> %s", raw)
		}
	}
	_ = c.conn.SetWriteDeadline(deadline)
	if err := c.conn.WriteJSON(req); err != nil {
		return fmt.Errorf("send %s: %w", method, err)
	}
	_ = c.conn.SetReadDeadline(deadline)
	// Unblock a pending read if the caller gives up early.
	stop := context.AfterFunc(ctx, func() {
		_ = c.conn.SetReadDeadline(time.Now())
	})
	defer stop()

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			return fmt.Errorf("receive %s: %w", method, err)
		}
		logging.Tracef("<- %s", data)

		var resp rpcResponse
		if err := json.Unmarshal(data, &resp); err != nil {
			logging.Debugf("skipping undecodable frame: %v", err)
			continue
		}
		if !resp.answers(id) {
			if resp.Method != "" {
				logging.Tracef("skipping notification %s", resp.Method)
			}
			continue
		}
		logging.Debugf("rpc %s completed in %s", method, time.Since(start).Round(time.Millisecond))
		if resp.Error != nil {
			return resp.Error
		}
		if result == nil || len(resp.Result) == 0 {
			return nil
		}
		if err := json.Unmarshal(resp.Result, result); err != nil {
			return fmt.Errorf("decode %s result: %w", method, err)
		}
		return nil
	}
}

// ApplicationInfo returns the application identity.
func (c *Client) ApplicationInfo(ctx context.Context) (domain.AppInfo, error) {
	var w wireAppInfo
	if err := c.call(ctx, methodGetApplicationInfo, nil, &w); err != nil {
		return domain.AppInfo{}, err
	}
	return domain.AppInfo{AppID: w.AppID, Name: w.Name, InterfaceRevision: w.InterfaceRevision}, nil
}

// Mixes lists the mixes in server order.
func (c *Client) Mixes(ctx context.Context) ([]domain.Mix, error) {
	var w wireMixes
	if err := c.call(ctx, methodGetMixes, nil, &w); err != nil {
		return nil, err
	}
	mixes := make([]domain.Mix, 0, len(w.Mixes))
	for _, m := range w.Mixes {
		mixes = append(mixes, m.toDomain())
	}
	return mixes, nil
}

// OutputDevices lists output devices and the main output.
func (c *Client) OutputDevices(ctx context.Context) (domain.OutputDevices, error) {
	var w wireOutputDevices
	if err := c.call(ctx, methodGetOutputDevices, nil, &w); err != nil {
		return domain.OutputDevices{}, err
	}
	return w.toDomain(), nil
}

// Channels lists channels in server order.
func (c *Client) Channels(ctx context.Context) ([]domain.Channel, error) {
	var w wireChannels
	if err := c.call(ctx, methodGetChannels, nil, &w); err != nil {
		return nil, err
	}
	channels := make([]domain.Channel, 0, len(w.Channels))
	for _, ch := range w.Channels {
		channels = append(channels, ch.toDomain())
	}
	return channels, nil
}

// InputDevices lists input devices in server order.
func (c *Client) InputDevices(ctx context.Context) ([]domain.InputDevice, error) {
	var w wireInputDevices
	if err := c.call(ctx, methodGetInputDevices, nil, &w); err != nil {
		return nil, err
	}
	devices := make([]domain.InputDevice, 0, len(w.InputDevices))
	for _, d := range w.InputDevices {
		devices = append(devices, d.toDomain())
	}
	return devices, nil
}

func (c *Client) SetMixLevel(ctx context.Context, mixID string, level float64) error {
	return c.call(ctx, methodSetMix, setMixParams{Mix: mixPatch{ID: mixID, Level: ptr(level)}}, nil)
}

func (c *Client) SetMixMute(ctx context.Context, mixID string, muted bool) error {
	return c.call(ctx, methodSetMix, setMixParams{Mix: mixPatch{ID: mixID, IsMuted: ptr(muted)}}, nil)
}

func (c *Client) SetOutputLevel(ctx context.Context, deviceID, outputID string, level float64) error {
	return c.setOutput(ctx, deviceID, outputPatch{ID: outputID, Level: ptr(level)})
}

func (c *Client) SetOutputMute(ctx context.Context, deviceID, outputID string, muted bool) error {
	return c.setOutput(ctx, deviceID, outputPatch{ID: outputID, IsMuted: ptr(muted)})
}

func (c *Client) SwitchOutputMix(ctx context.Context, deviceID, outputID, mixID string) error {
	return c.setOutput(ctx, deviceID, outputPatch{ID: outputID, MixID: ptr(mixID)})
}

// RemoveOutputFromMix detaches the output from whatever mix it is on.
func (c *Client) RemoveOutputFromMix(ctx context.Context, deviceID, outputID string) error {
	return c.setOutput(ctx, deviceID, outputPatch{ID: outputID, MixID: ptr("")})
}

func (c *Client) setOutput(ctx context.Context, deviceID string, patch outputPatch) error {
	params := setOutputDeviceParams{OutputDevice: outputDevicePatch{ID: deviceID, Outputs: []outputPatch{patch}}}
	return c.call(ctx, methodSetOutputDevice, params, nil)
}

func (c *Client) SetChannelLevel(ctx context.Context, channelID string, level float64) error {
	return c.call(ctx, methodSetChannel, setChannelParams{Channel: channelPatch{ID: channelID, Level: ptr(level)}}, nil)
}

func (c *Client) SetChannelMute(ctx context.Context, channelID string, muted bool) error {
	return c.call(ctx, methodSetChannel, setChannelParams{Channel: channelPatch{ID: channelID, IsMuted: ptr(muted)}}, nil)
}

func (c *Client) SetChannelMixLevel(ctx context.Context, channelID, mixID string, level float64) error {
	patch := channelPatch{ID: channelID, Mixes: []channelMixPatch{{ID: mixID, Level: ptr(level)}}}
	return c.call(ctx, methodSetChannel, setChannelParams{Channel: patch}, nil)
}

func (c *Client) SetChannelMixMute(ctx context.Context, channelID, mixID string, muted bool) error {
	patch := channelPatch{ID: channelID, Mixes: []channelMixPatch{{ID: mixID, IsMuted: ptr(muted)}}}
	return c.call(ctx, methodSetChannel, setChannelParams{Channel: patch}, nil)
}

func (c *Client) SetInputGain(ctx context.Context, deviceID, inputID string, gain float64) error {
	return c.setInput(ctx, deviceID, inputPatch{ID: inputID, Gain: &gainPatch{Value: gain}})
}

func (c *Client) SetInputMute(ctx context.Context, deviceID, inputID string, muted bool) error {
	return c.setInput(ctx, deviceID, inputPatch{ID: inputID, IsMuted: ptr(muted)})
}

func (c *Client) setInput(ctx context.Context, deviceID string, patch inputPatch) error {
	params := setInputDeviceParams{InputDevice: inputDevicePatch{ID: deviceID, Inputs: []inputPatch{patch}}}
	return c.call(ctx, methodSetInputDevice, params, nil)
}

var _ domain.Session = (*Client)(nil)
