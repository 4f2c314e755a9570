// Package memory provides an in-process domain.Session backed by a mutable snapshot.
// Mutations are applied to the snapshot and recorded, which makes it suitable
// for offline use and for exercising use cases without a running application.
package memory

import (
	"context"
	"fmt"
	"sync"

	"wavelink-cli/internal/domain"
)

// State is the snapshot served by a Mixer.
type State struct {
	Info          domain.AppInfo
	Mixes         []domain.Mix
	OutputDevices domain.OutputDevices
	Channels      []domain.Channel
	InputDevices  []domain.InputDevice
}

// Call is one recorded mutation, e.g. {Method: "SetMixMute", Args: ["m1", true]}.
type Call struct {
	Method string
	Args   []any
}

func (c Call) String() string {
	return fmt.Sprintf("%s%v", c.Method, c.Args)
}

// Mixer implements domain.Session in memory.
type Mixer struct {
	mu     sync.Mutex
	state  State
	calls  []Call
	fail   map[string]error
	closes int
}

// NewMixer creates a mixer serving a deep copy of state.
func NewMixer(state State) *Mixer {
	return &Mixer{state: cloneState(state), fail: map[string]error{}}
}

// FailOn makes every subsequent call to method return err.
func (m *Mixer) FailOn(method string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fail[method] = err
}

// Calls returns the recorded mutations in order.
func (m *Mixer) Calls() []Call {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Call(nil), m.calls...)
}

// Closes returns how many times Close was called.
func (m *Mixer) Closes() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closes
}

// State returns a copy of the current snapshot.
func (m *Mixer) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return cloneState(m.state)
}

func (m *Mixer) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closes++
	return m.fail["Close"]
}

func (m *Mixer) ApplicationInfo(ctx context.Context) (domain.AppInfo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.check(ctx, "ApplicationInfo"); err != nil {
		return domain.AppInfo{}, err
	}
	return m.state.Info, nil
}

func (m *Mixer) Mixes(ctx context.Context) ([]domain.Mix, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.check(ctx, "Mixes"); err != nil {
		return nil, err
	}
	return cloneState(m.state).Mixes, nil
}

func (m *Mixer) OutputDevices(ctx context.Context) (domain.OutputDevices, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.check(ctx, "OutputDevices"); err != nil {
		return domain.OutputDevices{}, err
	}
	return cloneState(m.state).OutputDevices, nil
}

func (m *Mixer) Channels(ctx context.Context) ([]domain.Channel, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.check(ctx, "Channels"); err != nil {
		return nil, err
	}
	return cloneState(m.state).Channels, nil
}

func (m *Mixer) InputDevices(ctx context.Context) ([]domain.InputDevice, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.check(ctx, "InputDevices"); err != nil {
		return nil, err
	}
	return cloneState(m.state).InputDevices, nil
}

func (m *Mixer) SetMixLevel(ctx context.Context, mixID string, level float64) error {
	return m.mutate(ctx, "SetMixLevel", []any{mixID, level}, func() bool {
		return m.withMix(mixID, func(mix *domain.Mix) { mix.Level = level })
	})
}

func (m *Mixer) SetMixMute(ctx context.Context, mixID string, muted bool) error {
	return m.mutate(ctx, "SetMixMute", []any{mixID, muted}, func() bool {
		return m.withMix(mixID, func(mix *domain.Mix) { mix.IsMuted = muted })
	})
}

func (m *Mixer) SetOutputLevel(ctx context.Context, deviceID, outputID string, level float64) error {
	return m.mutate(ctx, "SetOutputLevel", []any{deviceID, outputID, level}, func() bool {
		return m.withOutput(deviceID, outputID, func(o *domain.Output) { o.Level = level })
	})
}

func (m *Mixer) SetOutputMute(ctx context.Context, deviceID, outputID string, muted bool) error {
	return m.mutate(ctx, "SetOutputMute", []any{deviceID, outputID, muted}, func() bool {
		return m.withOutput(deviceID, outputID, func(o *domain.Output) { o.IsMuted = muted })
	})
}

func (m *Mixer) SwitchOutputMix(ctx context.Context, deviceID, outputID, mixID string) error {
	return m.mutate(ctx, "SwitchOutputMix", []any{deviceID, outputID, mixID}, func() bool {
		return m.withOutput(deviceID, outputID, func(o *domain.Output) { o.MixID = mixID })
	})
}

func (m *Mixer) RemoveOutputFromMix(ctx context.Context, deviceID, outputID string) error {
	return m.mutate(ctx, "RemoveOutputFromMix", []any{deviceID, outputID}, func() bool {
		return m.withOutput(deviceID, outputID, func(o *domain.Output) { o.MixID = "" })
	})
}

func (m *Mixer) SetChannelLevel(ctx context.Context, channelID string, level float64) error {
	return m.mutate(ctx, "SetChannelLevel", []any{channelID, level}, func() bool {
		return m.withChannel(channelID, func(ch *domain.Channel) { ch.Level = level })
	})
}

func (m *Mixer) SetChannelMute(ctx context.Context, channelID string, muted bool) error {
	return m.mutate(ctx, "SetChannelMute", []any{channelID, muted}, func() bool {
		return m.withChannel(channelID, func(ch *domain.Channel) { ch.IsMuted = muted })
	})
}

func (m *Mixer) SetChannelMixLevel(ctx context.Context, channelID, mixID string, level float64) error {
	return m.mutate(ctx, "SetChannelMixLevel", []any{channelID, mixID, level}, func() bool {
		return m.withChannelMix(channelID, mixID, func(cm *domain.ChannelMix) { cm.Level = level })
	})
}

func (m *Mixer) SetChannelMixMute(ctx context.Context, channelID, mixID string, muted bool) error {
	return m.mutate(ctx, "SetChannelMixMute", []any{channelID, mixID, muted}, func() bool {
		return m.withChannelMix(channelID, mixID, func(cm *domain.ChannelMix) { cm.IsMuted = muted })
	})
}

func (m *Mixer) SetInputGain(ctx context.Context, deviceID, inputID string, gain float64) error {
	return m.mutate(ctx, "SetInputGain", []any{deviceID, inputID, gain}, func() bool {
		return m.withInput(deviceID, inputID, func(in *domain.Input) { in.Gain.Value = gain })
	})
}

func (m *Mixer) SetInputMute(ctx context.Context, deviceID, inputID string, muted bool) error {
	return m.mutate(ctx, "SetInputMute", []any{deviceID, inputID, muted}, func() bool {
		return m.withInput(deviceID, inputID, func(in *domain.Input) { in.IsMuted = muted })
	})
}

// check must be called with mu held.
func (m *Mixer) check(ctx context.Context, method string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return m.fail[method]
}

// mutate records the call and applies it. A failed call is still recorded.
func (m *Mixer) mutate(ctx context.Context, method string, args []any, apply func() bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, Call{Method: method, Args: args})
	if err := m.check(ctx, method); err != nil {
		return err
	}
	if !apply() {
		return fmt.Errorf("%s: unknown target %v", method, args)
	}
	return nil
}

func (m *Mixer) withMix(id string, fn func(*domain.Mix)) bool {
	for i := range m.state.Mixes {
		if m.state.Mixes[i].ID == id {
			fn(&m.state.Mixes[i])
			return true
		}
	}
	return false
}

func (m *Mixer) withOutput(deviceID, outputID string, fn func(*domain.Output)) bool {
	for i := range m.state.OutputDevices.Devices {
		dev := &m.state.OutputDevices.Devices[i]
		if dev.ID != deviceID {
			continue
		}
		for j := range dev.Outputs {
			if dev.Outputs[j].ID == outputID {
				fn(&dev.Outputs[j])
				return true
			}
		}
	}
	return false
}

func (m *Mixer) withChannel(id string, fn func(*domain.Channel)) bool {
	for i := range m.state.Channels {
		if m.state.Channels[i].ID == id {
			fn(&m.state.Channels[i])
			return true
		}
	}
	return false
}

func (m *Mixer) withChannelMix(channelID, mixID string, fn func(*domain.ChannelMix)) bool {
	found := false
	m.withChannel(channelID, func(ch *domain.Channel) {
		for i := range ch.Mixes {
			if ch.Mixes[i].ID == mixID {
				fn(&ch.Mixes[i])
				found = true
				return
			}
		}
	})
	return found
}

func (m *Mixer) withInput(deviceID, inputID string, fn func(*domain.Input)) bool {
	for i := range m.state.InputDevices {
		dev := &m.state.InputDevices[i]
		if dev.ID != deviceID {
			continue
		}
		for j := range dev.Inputs {
			if dev.Inputs[j].ID == inputID {
				fn(&dev.Inputs[j])
				return true
			}
		}
	}
	return false
}

func cloneState(s State) State {
	out := State{Info: s.Info, OutputDevices: domain.OutputDevices{MainOutput: s.OutputDevices.MainOutput}}
	out.Mixes = append([]domain.Mix(nil), s.Mixes...)
	for _, d := range s.OutputDevices.Devices {
		d.Outputs = append([]domain.Output(nil), d.Outputs...)
		out.OutputDevices.Devices = append(out.OutputDevices.Devices, d)
	}
	for _, ch := range s.Channels {
		ch.Apps = append([]domain.App(nil), ch.Apps...)
		ch.Mixes = append([]domain.ChannelMix(nil), ch.Mixes...)
		out.Channels = append(out.Channels, ch)
	}
	for _, d := range s.InputDevices {
		inputs := make([]domain.Input, 0, len(d.Inputs))
		for _, in := range d.Inputs {
			in.Effects = append([]domain.Effect(nil), in.Effects...)
			inputs = append(inputs, in)
		}
		d.Inputs = inputs
		out.InputDevices = append(out.InputDevices, d)
	}
	return out
}

var _ domain.Session = (*Mixer)(nil)
