package domain

import "context"

// SettingsRepository is a secondary port that defines how to persist connection settings.
// This interface is defined in the domain layer and implemented by adapters.
type SettingsRepository interface {
	Load() (Settings, error)
	Save(settings Settings) error
}

// Mixer is a secondary port exposing the Wave Link remote-control surface.
// Levels and gains are fractions in the range 0.0-1.0.
type Mixer interface {
	ApplicationInfo(ctx context.Context) (AppInfo, error)
	Mixes(ctx context.Context) ([]Mix, error)
	OutputDevices(ctx context.Context) (OutputDevices, error)
	Channels(ctx context.Context) ([]Channel, error)
	InputDevices(ctx context.Context) ([]InputDevice, error)

	SetMixLevel(ctx context.Context, mixID string, level float64) error
	SetMixMute(ctx context.Context, mixID string, muted bool) error

	SetOutputLevel(ctx context.Context, deviceID, outputID string, level float64) error
	SetOutputMute(ctx context.Context, deviceID, outputID string, muted bool) error
	SwitchOutputMix(ctx context.Context, deviceID, outputID, mixID string) error
	RemoveOutputFromMix(ctx context.Context, deviceID, outputID string) error

	SetChannelLevel(ctx context.Context, channelID string, level float64) error
	SetChannelMute(ctx context.Context, channelID string, muted bool) error
	SetChannelMixLevel(ctx context.Context, channelID, mixID string, level float64) error
	SetChannelMixMute(ctx context.Context, channelID, mixID string, muted bool) error

	SetInputGain(ctx context.Context, deviceID, inputID string, gain float64) error
	SetInputMute(ctx context.Context, deviceID, inputID string, muted bool) error
}

// Session is a live connection to the application. Close must be safe to call once per session.
type Session interface {
	Mixer
	Close() error
}

// Connector opens sessions. Each CLI command opens exactly one.
type Connector interface {
	Connect(ctx context.Context) (Session, error)
}
