package usecase

import (
	"context"
	"fmt"
	"strings"

	"wavelink-cli/internal/domain"
	"wavelink-cli/internal/logging"
)

// MixerUseCase is the primary port for Wave Link operations.
// Every call opens its own session and returns the line(s) to show the user.
type MixerUseCase interface {
	Info(ctx context.Context) (domain.AppInfo, error)
	ListMixes(ctx context.Context) ([]domain.Mix, error)
	ListOutputs(ctx context.Context) (OutputListing, error)
	ListChannels(ctx context.Context) ([]domain.Channel, error)
	ListInputs(ctx context.Context) ([]domain.InputDevice, error)

	SetOutputVolume(ctx context.Context, output, volume string) (string, error)
	SetOutputMute(ctx context.Context, output string, muted bool) (string, error)
	ToggleOutputMute(ctx context.Context, output string) (string, error)
	AssignOutput(ctx context.Context, output, mix string) (string, error)
	UnassignOutput(ctx context.Context, output string) (string, error)

	SetMixVolume(ctx context.Context, mix, volume string) (string, error)
	SetMixMute(ctx context.Context, mix string, muted bool) (string, error)
	ToggleMixMute(ctx context.Context, mix string) (string, error)
	SetExclusiveOutput(ctx context.Context, mix, output string) (ExclusiveOutputResult, error)

	SetChannelVolume(ctx context.Context, channel, volume string) (string, error)
	SetChannelMute(ctx context.Context, channel string, muted bool) (string, error)
	ToggleChannelMute(ctx context.Context, channel string) (string, error)
	SetChannelMixVolume(ctx context.Context, channel, mix, volume string) (string, error)
	SetChannelMixMute(ctx context.Context, channel, mix string, muted bool) (string, error)
	ToggleChannelMixMute(ctx context.Context, channel, mix string) (string, error)
	IsolateChannel(ctx context.Context, channel, mix string) (IsolationResult, error)

	SetInputGain(ctx context.Context, input, gain string) (string, error)
	SetInputMute(ctx context.Context, input string, muted bool) (string, error)
	ToggleInputMute(ctx context.Context, input string) (string, error)
}

// OutputListing is the output-device enumeration joined with the mixes it refers to.
type OutputListing struct {
	domain.OutputDevices
	Mixes []domain.Mix `json:"mixes"`
}

// MixName returns the display label for an output's mix assignment.
func (l OutputListing) MixName(mixID string) string {
	for _, m := range l.Mixes {
		if m.ID == mixID {
			return m.DisplayName()
		}
	}
	return mixID
}

// ExclusiveOutputResult reports what making an output the only one on a mix did.
type ExclusiveOutputResult struct {
	Output   string
	Mix      string
	Assigned bool
	Removed  int
}

// Message renders the outcome.
func (r ExclusiveOutputResult) Message() string {
	switch {
	case r.Assigned && r.Removed > 0:
		return fmt.Sprintf("Successfully set '%s' as the only output for mix '%s' (removed %d other output(s) from the mix)",
			r.Output, r.Mix, r.Removed)
	case r.Assigned:
		return fmt.Sprintf("Successfully assigned '%s' to mix '%s' (it is now the only output on this mix)", r.Output, r.Mix)
	case r.Removed > 0:
		return fmt.Sprintf("'%s' was already assigned to mix '%s'. Removed %d other output(s) from the mix.",
			r.Output, r.Mix, r.Removed)
	default:
		return fmt.Sprintf("'%s' is already the only output for mix '%s'", r.Output, r.Mix)
	}
}

// IsolationResult reports what isolating a channel in a mix did.
type IsolationResult struct {
	Channel      string
	Mix          string
	TargetAction domain.IsolationAction
	TargetInMix  bool
	Muted        int
	AlreadyMuted int
}

// Message renders the outcome, one line per fact.
func (r IsolationResult) Message() string {
	var b strings.Builder
	if r.TargetInMix {
		if r.TargetAction == domain.ActionUnmuteTarget {
			fmt.Fprintf(&b, "Unmuted target channel '%s'\n", r.Channel)
		} else {
			fmt.Fprintf(&b, "Target channel '%s' is already unmuted\n", r.Channel)
		}
	}
	fmt.Fprintf(&b, "SUCCESS: Isolated '%s' in mix '%s'.\n", r.Channel, r.Mix)
	fmt.Fprintf(&b, "  - Muted %d other channels.\n", r.Muted)
	fmt.Fprintf(&b, "  - %d channels were already muted.", r.AlreadyMuted)
	return b.String()
}

// mixerInteractor implements MixerUseCase.
// It depends only on the domain layer and the connector port.
type mixerInteractor struct {
	connector domain.Connector
	service   *domain.MixerService
}

// NewMixerUseCase creates the use case over connector.
func NewMixerUseCase(connector domain.Connector) MixerUseCase {
	return &mixerInteractor{
		connector: connector,
		service:   domain.NewMixerService(),
	}
}

func (u *mixerInteractor) session(ctx context.Context, fn func(domain.Mixer) error) error {
	return WithSession(ctx, u.connector, fn)
}

// Listings

func (u *mixerInteractor) Info(ctx context.Context) (info domain.AppInfo, err error) {
	err = u.session(ctx, func(m domain.Mixer) error {
		info, err = m.ApplicationInfo(ctx)
		return err
	})
	return info, err
}

func (u *mixerInteractor) ListMixes(ctx context.Context) (mixes []domain.Mix, err error) {
	err = u.session(ctx, func(m domain.Mixer) error {
		mixes, err = m.Mixes(ctx)
		return err
	})
	return mixes, err
}

func (u *mixerInteractor) ListOutputs(ctx context.Context) (listing OutputListing, err error) {
	err = u.session(ctx, func(m domain.Mixer) error {
		devices, err := m.OutputDevices(ctx)
		if err != nil {
			return err
		}
		mixes, err := m.Mixes(ctx)
		if err != nil {
			return err
		}
		listing = OutputListing{OutputDevices: devices, Mixes: mixes}
		return nil
	})
	return listing, err
}

func (u *mixerInteractor) ListChannels(ctx context.Context) (channels []domain.Channel, err error) {
	err = u.session(ctx, func(m domain.Mixer) error {
		channels, err = m.Channels(ctx)
		return err
	})
	return channels, err
}

func (u *mixerInteractor) ListInputs(ctx context.Context) (devices []domain.InputDevice, err error) {
	err = u.session(ctx, func(m domain.Mixer) error {
		devices, err = m.InputDevices(ctx)
		return err
	})
	return devices, err
}

// Outputs

func (u *mixerInteractor) SetOutputVolume(ctx context.Context, output, volume string) (msg string, err error) {
	percent, err := u.service.ParsePercent(volume, "Volume")
	if err != nil {
		return "", err
	}
	err = u.session(ctx, func(m domain.Mixer) error {
		ref, err := u.output(ctx, m, output)
		if err != nil {
			return err
		}
		if err := m.SetOutputLevel(ctx, ref.DeviceID, ref.Output.ID, domain.PercentToLevel(percent)); err != nil {
			return err
		}
		msg = fmt.Sprintf("Successfully set output '%s' volume to %d%%", ref.Name(), percent)
		return nil
	})
	return msg, err
}

func (u *mixerInteractor) SetOutputMute(ctx context.Context, output string, muted bool) (msg string, err error) {
	err = u.session(ctx, func(m domain.Mixer) error {
		ref, err := u.output(ctx, m, output)
		if err != nil {
			return err
		}
		msg, err = u.muteOutput(ctx, m, ref, muted)
		return err
	})
	return msg, err
}

func (u *mixerInteractor) ToggleOutputMute(ctx context.Context, output string) (msg string, err error) {
	err = u.session(ctx, func(m domain.Mixer) error {
		ref, err := u.output(ctx, m, output)
		if err != nil {
			return err
		}
		msg, err = u.muteOutput(ctx, m, ref, !ref.Output.IsMuted)
		return err
	})
	return msg, err
}

func (u *mixerInteractor) muteOutput(ctx context.Context, m domain.Mixer, ref domain.OutputRef, muted bool) (string, error) {
	if err := m.SetOutputMute(ctx, ref.DeviceID, ref.Output.ID, muted); err != nil {
		return "", err
	}
	return fmt.Sprintf("Successfully %s output '%s'", mutedVerb(muted), ref.Name()), nil
}

func (u *mixerInteractor) AssignOutput(ctx context.Context, output, mix string) (msg string, err error) {
	err = u.session(ctx, func(m domain.Mixer) error {
		target, err := u.mix(ctx, m, mix)
		if err != nil {
			return err
		}
		ref, err := u.output(ctx, m, output)
		if err != nil {
			return err
		}
		if ref.Output.MixID == target.ID {
			msg = fmt.Sprintf("Output '%s' is already assigned to mix '%s'", ref.Name(), target.DisplayName())
			return nil
		}
		if err := m.SwitchOutputMix(ctx, ref.DeviceID, ref.Output.ID, target.ID); err != nil {
			return err
		}
		msg = fmt.Sprintf("Successfully assigned output '%s' to mix '%s'", ref.Name(), target.DisplayName())
		return nil
	})
	return msg, err
}

func (u *mixerInteractor) UnassignOutput(ctx context.Context, output string) (msg string, err error) {
	err = u.session(ctx, func(m domain.Mixer) error {
		ref, err := u.output(ctx, m, output)
		if err != nil {
			return err
		}
		if err := m.RemoveOutputFromMix(ctx, ref.DeviceID, ref.Output.ID); err != nil {
			return err
		}
		msg = fmt.Sprintf("Successfully unassigned output '%s'", ref.Name())
		return nil
	})
	return msg, err
}

// Mixes

func (u *mixerInteractor) SetMixVolume(ctx context.Context, mix, volume string) (msg string, err error) {
	percent, err := u.service.ParsePercent(volume, "Volume")
	if err != nil {
		return "", err
	}
	err = u.session(ctx, func(m domain.Mixer) error {
		target, err := u.mix(ctx, m, mix)
		if err != nil {
			return err
		}
		if err := m.SetMixLevel(ctx, target.ID, domain.PercentToLevel(percent)); err != nil {
			return err
		}
		msg = fmt.Sprintf("Successfully set mix '%s' volume to %d%%", target.DisplayName(), percent)
		return nil
	})
	return msg, err
}

func (u *mixerInteractor) SetMixMute(ctx context.Context, mix string, muted bool) (msg string, err error) {
	err = u.session(ctx, func(m domain.Mixer) error {
		target, err := u.mix(ctx, m, mix)
		if err != nil {
			return err
		}
		if err := m.SetMixMute(ctx, target.ID, muted); err != nil {
			return err
		}
		msg = fmt.Sprintf("Successfully %s mix '%s'", mutedVerb(muted), target.DisplayName())
		return nil
	})
	return msg, err
}

func (u *mixerInteractor) ToggleMixMute(ctx context.Context, mix string) (msg string, err error) {
	err = u.session(ctx, func(m domain.Mixer) error {
		target, err := u.mix(ctx, m, mix)
		if err != nil {
			return err
		}
		if err := m.SetMixMute(ctx, target.ID, !target.IsMuted); err != nil {
			return err
		}
		msg = fmt.Sprintf("Successfully toggled mute for mix '%s'", target.DisplayName())
		return nil
	})
	return msg, err
}

// SetExclusiveOutput makes output the only output assigned to mix.
// The plan is computed from one snapshot and applied call by call; a failed call
// aborts the rest without undoing earlier ones.
func (u *mixerInteractor) SetExclusiveOutput(ctx context.Context, mix, output string) (result ExclusiveOutputResult, err error) {
	err = u.session(ctx, func(m domain.Mixer) error {
		target, err := u.mix(ctx, m, mix)
		if err != nil {
			return err
		}
		devices, err := m.OutputDevices(ctx)
		if err != nil {
			return err
		}
		ref, err := u.service.FindOutput(devices.Devices, output)
		if err != nil {
			return err
		}

		plan := u.service.PlanExclusiveOutput(devices.Devices, ref, target.ID)
		result = ExclusiveOutputResult{Output: ref.Name(), Mix: target.DisplayName()}
		for _, step := range plan.Steps {
			switch step.Kind {
			case domain.StepAssign:
				if err := m.SwitchOutputMix(ctx, step.Output.DeviceID, step.Output.Output.ID, target.ID); err != nil {
					return err
				}
				result.Assigned = true
			case domain.StepRemove:
				if err := m.RemoveOutputFromMix(ctx, step.Output.DeviceID, step.Output.Output.ID); err != nil {
					return err
				}
				logging.Debugf("removed output %s from mix %s", step.Output.Name(), target.ID)
				result.Removed++
			}
		}
		return nil
	})
	return result, err
}

// Channels

func (u *mixerInteractor) SetChannelVolume(ctx context.Context, channel, volume string) (msg string, err error) {
	percent, err := u.service.ParsePercent(volume, "Volume")
	if err != nil {
		return "", err
	}
	err = u.session(ctx, func(m domain.Mixer) error {
		ch, err := u.channel(ctx, m, channel)
		if err != nil {
			return err
		}
		if err := m.SetChannelLevel(ctx, ch.ID, domain.PercentToLevel(percent)); err != nil {
			return err
		}
		msg = fmt.Sprintf("Successfully set channel '%s' volume to %d%%", ch.DisplayName(), percent)
		return nil
	})
	return msg, err
}

func (u *mixerInteractor) SetChannelMute(ctx context.Context, channel string, muted bool) (msg string, err error) {
	err = u.session(ctx, func(m domain.Mixer) error {
		ch, err := u.channel(ctx, m, channel)
		if err != nil {
			return err
		}
		if err := m.SetChannelMute(ctx, ch.ID, muted); err != nil {
			return err
		}
		msg = fmt.Sprintf("Successfully %s channel '%s'", mutedVerb(muted), ch.DisplayName())
		return nil
	})
	return msg, err
}

func (u *mixerInteractor) ToggleChannelMute(ctx context.Context, channel string) (msg string, err error) {
	err = u.session(ctx, func(m domain.Mixer) error {
		ch, err := u.channel(ctx, m, channel)
		if err != nil {
			return err
		}
		if err := m.SetChannelMute(ctx, ch.ID, !ch.IsMuted); err != nil {
			return err
		}
		msg = fmt.Sprintf("Successfully toggled mute for channel '%s'", ch.DisplayName())
		return nil
	})
	return msg, err
}

func (u *mixerInteractor) SetChannelMixVolume(ctx context.Context, channel, mix, volume string) (msg string, err error) {
	percent, err := u.service.ParsePercent(volume, "Volume")
	if err != nil {
		return "", err
	}
	err = u.session(ctx, func(m domain.Mixer) error {
		ch, target, err := u.channelAndMix(ctx, m, channel, mix)
		if err != nil {
			return err
		}
		if err := m.SetChannelMixLevel(ctx, ch.ID, target.ID, domain.PercentToLevel(percent)); err != nil {
			return err
		}
		msg = fmt.Sprintf("Successfully set channel '%s' volume to %d%% in mix '%s'", ch.DisplayName(), percent, target.DisplayName())
		return nil
	})
	return msg, err
}

func (u *mixerInteractor) SetChannelMixMute(ctx context.Context, channel, mix string, muted bool) (msg string, err error) {
	err = u.session(ctx, func(m domain.Mixer) error {
		ch, target, err := u.channelAndMix(ctx, m, channel, mix)
		if err != nil {
			return err
		}
		if err := m.SetChannelMixMute(ctx, ch.ID, target.ID, muted); err != nil {
			return err
		}
		msg = fmt.Sprintf("Successfully %s channel '%s' in mix '%s'", mutedVerb(muted), ch.DisplayName(), target.DisplayName())
		return nil
	})
	return msg, err
}

func (u *mixerInteractor) ToggleChannelMixMute(ctx context.Context, channel, mix string) (msg string, err error) {
	err = u.session(ctx, func(m domain.Mixer) error {
		ch, target, err := u.channelAndMix(ctx, m, channel, mix)
		if err != nil {
			return err
		}
		assignment, ok := ch.Assignment(target.ID)
		if !ok {
			return &domain.NotInMixError{Channel: ch.DisplayName(), Mix: target.DisplayName()}
		}
		if err := m.SetChannelMixMute(ctx, ch.ID, target.ID, !assignment.IsMuted); err != nil {
			return err
		}
		msg = fmt.Sprintf("Successfully toggled mute for channel '%s' in mix '%s'", ch.DisplayName(), target.DisplayName())
		return nil
	})
	return msg, err
}

// IsolateChannel unmutes channel in mix and mutes every other channel assigned to the mix.
// Like SetExclusiveOutput it plans from one snapshot and stops at the first failed call.
func (u *mixerInteractor) IsolateChannel(ctx context.Context, channel, mix string) (result IsolationResult, err error) {
	err = u.session(ctx, func(m domain.Mixer) error {
		ch, target, err := u.channelAndMix(ctx, m, channel, mix)
		if err != nil {
			return err
		}
		channels, err := m.Channels(ctx)
		if err != nil {
			return err
		}

		plan := u.service.PlanIsolation(channels, ch.ID, target.ID)
		result = IsolationResult{Channel: ch.DisplayName(), Mix: target.DisplayName()}
		for _, step := range plan.Steps {
			switch step.Action {
			case domain.ActionUnmuteTarget, domain.ActionTargetAlreadyUnmuted:
				result.TargetInMix = true
				result.TargetAction = step.Action
			}
			if !step.Action.NeedsCall() {
				if step.Action == domain.ActionAlreadyMuted {
					result.AlreadyMuted++
				}
				continue
			}
			muted := step.Action == domain.ActionMute
			if err := m.SetChannelMixMute(ctx, step.Channel.ID, target.ID, muted); err != nil {
				return err
			}
			if muted {
				result.Muted++
			}
		}
		return nil
	})
	return result, err
}

// Inputs

func (u *mixerInteractor) SetInputGain(ctx context.Context, input, gain string) (msg string, err error) {
	percent, err := u.service.ParsePercent(gain, "Gain")
	if err != nil {
		return "", err
	}
	err = u.session(ctx, func(m domain.Mixer) error {
		ref, err := u.input(ctx, m, input)
		if err != nil {
			return err
		}
		if err := m.SetInputGain(ctx, ref.DeviceID, ref.Input.ID, domain.PercentToLevel(percent)); err != nil {
			return err
		}
		msg = fmt.Sprintf("Successfully set input '%s' gain to %d%%", ref.Name(), percent)
		return nil
	})
	return msg, err
}

func (u *mixerInteractor) SetInputMute(ctx context.Context, input string, muted bool) (msg string, err error) {
	err = u.session(ctx, func(m domain.Mixer) error {
		ref, err := u.input(ctx, m, input)
		if err != nil {
			return err
		}
		msg, err = u.muteInput(ctx, m, ref, muted)
		return err
	})
	return msg, err
}

func (u *mixerInteractor) ToggleInputMute(ctx context.Context, input string) (msg string, err error) {
	err = u.session(ctx, func(m domain.Mixer) error {
		ref, err := u.input(ctx, m, input)
		if err != nil {
			return err
		}
		msg, err = u.muteInput(ctx, m, ref, !ref.Input.IsMuted)
		return err
	})
	return msg, err
}

func (u *mixerInteractor) muteInput(ctx context.Context, m domain.Mixer, ref domain.InputRef, muted bool) (string, error) {
	if err := m.SetInputMute(ctx, ref.DeviceID, ref.Input.ID, muted); err != nil {
		return "", err
	}
	return fmt.Sprintf("Successfully %s input '%s'", mutedVerb(muted), ref.Name()), nil
}

// Resolution helpers: fetch the current list and resolve the query against it.

func (u *mixerInteractor) mix(ctx context.Context, m domain.Mixer, query string) (domain.Mix, error) {
	mixes, err := m.Mixes(ctx)
	if err != nil {
		return domain.Mix{}, err
	}
	return u.service.FindMix(mixes, query)
}

func (u *mixerInteractor) output(ctx context.Context, m domain.Mixer, query string) (domain.OutputRef, error) {
	devices, err := m.OutputDevices(ctx)
	if err != nil {
		return domain.OutputRef{}, err
	}
	return u.service.FindOutput(devices.Devices, query)
}

func (u *mixerInteractor) channel(ctx context.Context, m domain.Mixer, query string) (domain.Channel, error) {
	channels, err := m.Channels(ctx)
	if err != nil {
		return domain.Channel{}, err
	}
	return u.service.FindChannel(channels, query)
}

func (u *mixerInteractor) channelAndMix(ctx context.Context, m domain.Mixer, channel, mix string) (domain.Channel, domain.Mix, error) {
	ch, err := u.channel(ctx, m, channel)
	if err != nil {
		return domain.Channel{}, domain.Mix{}, err
	}
	target, err := u.mix(ctx, m, mix)
	if err != nil {
		return domain.Channel{}, domain.Mix{}, err
	}
	return ch, target, nil
}

func (u *mixerInteractor) input(ctx context.Context, m domain.Mixer, query string) (domain.InputRef, error) {
	devices, err := m.InputDevices(ctx)
	if err != nil {
		return domain.InputRef{}, err
	}
	return u.service.FindInput(devices, query)
}

func mutedVerb(muted bool) string {
	if muted {
		return "muted"
	}
	return "unmuted"
}
