package wavelink

import (
	"encoding/json"
	"fmt"

	"wavelink-cli/internal/domain"
)

// JSON-RPC methods exposed by the Wave Link remote-control server.
const (
	methodGetApplicationInfo = "getApplicationInfo"
	methodGetMixes           = "getMixes"
	methodGetChannels        = "getChannels"
	methodGetOutputDevices   = "getOutputDevices"
	methodGetInputDevices    = "getInputDevices"
	methodSetMix             = "setMix"
	methodSetChannel         = "setChannel"
	methodSetOutputDevice    = "setOutputDevice"
	methodSetInputDevice     = "setInputDevice"
)

type rpcRequest struct {
	JSONRPC string `json:"jsonrpc"`
	ID      string `json:"id"`
	Method  string `json:"method"`
	Params  any    `json:"params,omitempty"`
}

type rpcResponse struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id,omitempty"`
	Method  string          `json:"method,omitempty"`
	Result  json.RawMessage `json:"result,omitempty"`
	Error   *RPCError       `json:"error,omitempty"`
}

// answers reports whether the frame is the response to request id.
// Notifications carry no id and never match.
func (r rpcResponse) answers(id string) bool {
	if len(r.ID) == 0 {
		return false
	}
	var got string
	if err := json.Unmarshal(r.ID, &got); err != nil {
		return false
	}
	return got == id
}

// RPCError is an error object returned by the server.
type RPCError struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data,omitempty"`
}

func (e *RPCError) Error() string {
	return fmt.Sprintf("wave link error %d: %s", e.Code, e.Message)
}

// Wire shapes of enumeration results.

type wireAppInfo struct {
	AppID             string `json:"appID"`
	Name              string `json:"name"`
	InterfaceRevision int    `json:"interfaceRevision"`
}

type wireMixes struct {
	Mixes []wireMix `json:"mixes"`
}

type wireMix struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Level   float64 `json:"level"`
	IsMuted bool    `json:"isMuted"`
}

type wireChannels struct {
	Channels []wireChannel `json:"channels"`
}

type wireChannel struct {
	ID      string           `json:"id"`
	Name    string           `json:"name"`
	Type    string           `json:"type"`
	Image   *wireImage       `json:"image"`
	Level   float64          `json:"level"`
	IsMuted bool             `json:"isMuted"`
	Apps    []wireApp        `json:"apps"`
	Mixes   []wireChannelMix `json:"mixes"`
}

type wireImage struct {
	Name string `json:"name"`
}

type wireApp struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type wireChannelMix struct {
	ID      string  `json:"id"`
	Level   float64 `json:"level"`
	IsMuted bool    `json:"isMuted"`
}

type wireOutputDevices struct {
	MainOutput    string             `json:"mainOutput"`
	OutputDevices []wireOutputDevice `json:"outputDevices"`
}

type wireOutputDevice struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	IsWaveDevice bool         `json:"isWaveDevice"`
	Outputs      []wireOutput `json:"outputs"`
}

type wireOutput struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Level   float64 `json:"level"`
	IsMuted bool    `json:"isMuted"`
	MixID   string  `json:"mixId"`
}

type wireInputDevices struct {
	InputDevices []wireInputDevice `json:"inputDevices"`
}

type wireInputDevice struct {
	ID           string      `json:"id"`
	Name         string      `json:"name"`
	IsWaveDevice bool        `json:"isWaveDevice"`
	Inputs       []wireInput `json:"inputs"`
}

type wireInput struct {
	ID           string           `json:"id"`
	Name         string           `json:"name"`
	Gain         wireGain         `json:"gain"`
	IsMuted      bool             `json:"isMuted"`
	IsGainLockOn *bool            `json:"isGainLockOn"`
	MicPcMix     *domain.MicPcMix `json:"micPcMix"`
	Effects      []wireEffect     `json:"effects"`
}

type wireGain struct {
	Value    float64  `json:"value"`
	Min      *float64 `json:"min"`
	Max      *float64 `json:"max"`
	MaxRange *float64 `json:"maxRange"`
}

type wireEffect struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	IsEnabled bool   `json:"isEnabled"`
}

// Mutation parameters. Every field except the id is optional so a call
// only touches the properties it names.

type setMixParams struct {
	Mix mixPatch `json:"mix"`
}

type mixPatch struct {
	ID      string   `json:"id"`
	Level   *float64 `json:"level,omitempty"`
	IsMuted *bool    `json:"isMuted,omitempty"`
}

type setChannelParams struct {
	Channel channelPatch `json:"channel"`
}

type channelPatch struct {
	ID      string            `json:"id"`
	Level   *float64          `json:"level,omitempty"`
	IsMuted *bool             `json:"isMuted,omitempty"`
	Mixes   []channelMixPatch `json:"mixes,omitempty"`
}

type channelMixPatch struct {
	ID      string   `json:"id"`
	Level   *float64 `json:"level,omitempty"`
	IsMuted *bool    `json:"isMuted,omitempty"`
}

type setOutputDeviceParams struct {
	OutputDevice outputDevicePatch `json:"outputDevice"`
}

type outputDevicePatch struct {
	ID      string        `json:"id"`
	Outputs []outputPatch `json:"outputs"`
}

type outputPatch struct {
	ID      string   `json:"id"`
	Level   *float64 `json:"level,omitempty"`
	IsMuted *bool    `json:"isMuted,omitempty"`
	MixID   *string  `json:"mixId,omitempty"`
}

type setInputDeviceParams struct {
	InputDevice inputDevicePatch `json:"inputDevice"`
}

type inputDevicePatch struct {
	ID     string       `json:"id"`
	Inputs []inputPatch `json:"inputs"`
}

type inputPatch struct {
	ID      string     `json:"id"`
	Gain    *gainPatch `json:"gain,omitempty"`
	IsMuted *bool      `json:"isMuted,omitempty"`
}

type gainPatch struct {
	Value float64 `json:"value"`
}

func ptr[T any](v T) *T {
	return &v
}

// Conversions from wire shapes to domain snapshots.

func (w wireMix) toDomain() domain.Mix {
	return domain.Mix{ID: w.ID, Name: w.Name, Level: w.Level, IsMuted: w.IsMuted}
}

func (w wireChannel) toDomain() domain.Channel {
	ch := domain.Channel{
		ID:      w.ID,
		Name:    w.Name,
		Type:    w.Type,
		Level:   w.Level,
		IsMuted: w.IsMuted,
	}
	if w.Image != nil {
		ch.ImageName = w.Image.Name
	}
	for _, a := range w.Apps {
		ch.Apps = append(ch.Apps, domain.App{ID: a.ID, Name: a.Name})
	}
	for _, m := range w.Mixes {
		ch.Mixes = append(ch.Mixes, domain.ChannelMix{ID: m.ID, Level: m.Level, IsMuted: m.IsMuted})
	}
	return ch
}

func (w wireOutputDevices) toDomain() domain.OutputDevices {
	result := domain.OutputDevices{MainOutput: w.MainOutput, Devices: make([]domain.OutputDevice, 0, len(w.OutputDevices))}
	for _, d := range w.OutputDevices {
		dev := domain.OutputDevice{ID: d.ID, Name: d.Name, IsWaveDevice: d.IsWaveDevice, Outputs: make([]domain.Output, 0, len(d.Outputs))}
		for _, o := range d.Outputs {
			dev.Outputs = append(dev.Outputs, domain.Output{
				ID:      o.ID,
				Name:    o.Name,
				Level:   o.Level,
				IsMuted: o.IsMuted,
				MixID:   o.MixID,
			})
		}
		result.Devices = append(result.Devices, dev)
	}
	return result
}

func (w wireInputDevice) toDomain() domain.InputDevice {
	dev := domain.InputDevice{ID: w.ID, Name: w.Name, IsWaveDevice: w.IsWaveDevice, Inputs: make([]domain.Input, 0, len(w.Inputs))}
	for _, in := range w.Inputs {
		input := domain.Input{
			ID:   in.ID,
			Name: in.Name,
			Gain: domain.Gain{
				Value:    in.Gain.Value,
				Min:      in.Gain.Min,
				Max:      in.Gain.Max,
				MaxRange: in.Gain.MaxRange,
			},
			IsMuted:      in.IsMuted,
			IsGainLockOn: in.IsGainLockOn,
			MicPcMix:     in.MicPcMix,
		}
		for _, e := range in.Effects {
			input.Effects = append(input.Effects, domain.Effect{ID: e.ID, Name: e.Name, IsEnabled: e.IsEnabled})
		}
		dev.Inputs = append(dev.Inputs, input)
	}
	return dev
}
