package domain

// AppInfo describes the running Wave Link application.
type AppInfo struct {
	AppID             string `json:"appID"`
	Name              string `json:"name"`
	InterfaceRevision int    `json:"interfaceRevision"`
}

// Mix is an aggregate audio bus with its own level and mute state.
// Levels are fractions in the range 0.0-1.0.
type Mix struct {
	ID      string  `json:"id"`
	Name    string  `json:"name,omitempty"`
	Level   float64 `json:"level"`
	IsMuted bool    `json:"isMuted"`
}

// DisplayName returns the mix name, falling back to its ID.
func (m Mix) DisplayName() string {
	if m.Name != "" {
		return m.Name
	}
	return m.ID
}

// OutputDevice is a playback device exposing one or more outputs.
type OutputDevice struct {
	ID           string   `json:"id"`
	Name         string   `json:"name,omitempty"`
	IsWaveDevice bool     `json:"isWaveDevice"`
	Outputs      []Output `json:"outputs"`
}

// DisplayName returns the device name, falling back to its ID.
func (d OutputDevice) DisplayName() string {
	if d.Name != "" {
		return d.Name
	}
	return d.ID
}

// Output is a single playback endpoint. An empty MixID means unassigned.
type Output struct {
	ID      string  `json:"id"`
	Name    string  `json:"name,omitempty"`
	Level   float64 `json:"level"`
	IsMuted bool    `json:"isMuted"`
	MixID   string  `json:"mixId,omitempty"`
}

// DisplayName returns the output name, falling back to its ID.
func (o Output) DisplayName() string {
	if o.Name != "" {
		return o.Name
	}
	return o.ID
}

// OutputDevices is the result of enumerating output devices.
type OutputDevices struct {
	MainOutput string         `json:"mainOutput,omitempty"`
	Devices    []OutputDevice `json:"outputDevices"`
}

// OutputRef is an output flattened together with its owning device.
type OutputRef struct {
	DeviceID     string
	DeviceName   string
	IsWaveDevice bool
	Output       Output
}

// Name returns the display name of the referenced output.
func (r OutputRef) Name() string {
	return r.Output.DisplayName()
}

// Same reports whether both references point at the same device output.
func (r OutputRef) Same(other OutputRef) bool {
	return r.DeviceID == other.DeviceID && r.Output.ID == other.Output.ID
}

// Channel is a logical audio source with per-mix assignment overrides.
type Channel struct {
	ID        string       `json:"id"`
	Name      string       `json:"name,omitempty"`
	ImageName string       `json:"imageName,omitempty"`
	Type      string       `json:"type"`
	Level     float64      `json:"level"`
	IsMuted   bool         `json:"isMuted"`
	Apps      []App        `json:"apps,omitempty"`
	Mixes     []ChannelMix `json:"mixes,omitempty"`
}

// DisplayName derives the channel label: name, then image name, then ID.
func (c Channel) DisplayName() string {
	switch {
	case c.Name != "":
		return c.Name
	case c.ImageName != "":
		return c.ImageName
	default:
		return c.ID
	}
}

// Assignment returns the channel's settings for the given mix.
func (c Channel) Assignment(mixID string) (ChannelMix, bool) {
	for _, m := range c.Mixes {
		if m.ID == mixID {
			return m, true
		}
	}
	return ChannelMix{}, false
}

// App is an application attributed to a channel.
type App struct {
	ID   string `json:"id"`
	Name string `json:"name,omitempty"`
}

// DisplayName returns the app name, falling back to its ID.
func (a App) DisplayName() string {
	if a.Name != "" {
		return a.Name
	}
	return a.ID
}

// ChannelMix is a channel's level and mute override inside one mix.
type ChannelMix struct {
	ID      string  `json:"id"`
	Level   float64 `json:"level"`
	IsMuted bool    `json:"isMuted"`
}

// InputDevice is a capture device exposing one or more inputs.
type InputDevice struct {
	ID           string  `json:"id"`
	Name         string  `json:"name,omitempty"`
	IsWaveDevice bool    `json:"isWaveDevice"`
	Inputs       []Input `json:"inputs"`
}

// DisplayName returns the device name, falling back to its ID.
func (d InputDevice) DisplayName() string {
	if d.Name != "" {
		return d.Name
	}
	return d.ID
}

// Input is a single capture endpoint.
type Input struct {
	ID           string    `json:"id"`
	Name         string    `json:"name,omitempty"`
	Gain         Gain      `json:"gain"`
	IsMuted      bool      `json:"isMuted"`
	IsGainLockOn *bool     `json:"isGainLockOn,omitempty"`
	MicPcMix     *MicPcMix `json:"micPcMix,omitempty"`
	Effects      []Effect  `json:"effects,omitempty"`
}

// DisplayName returns the input name, falling back to its ID.
func (i Input) DisplayName() string {
	if i.Name != "" {
		return i.Name
	}
	return i.ID
}

// Gain holds an input gain value and its optional bounds.
type Gain struct {
	Value    float64  `json:"value"`
	Min      *float64 `json:"min,omitempty"`
	Max      *float64 `json:"max,omitempty"`
	MaxRange *float64 `json:"maxRange,omitempty"`
}

// UpperBound returns Max, or MaxRange when Max is absent.
func (g Gain) UpperBound() (float64, bool) {
	if g.Max != nil {
		return *g.Max, true
	}
	if g.MaxRange != nil {
		return *g.MaxRange, true
	}
	return 0, false
}

// MicPcMix is the blend between microphone and PC audio.
type MicPcMix struct {
	Value      float64 `json:"value"`
	IsInverted bool    `json:"isInverted"`
}

// Effect is a named processing effect on an input.
type Effect struct {
	ID        string `json:"id"`
	Name      string `json:"name,omitempty"`
	IsEnabled bool   `json:"isEnabled"`
}

// DisplayName returns the effect name, falling back to its ID.
func (e Effect) DisplayName() string {
	if e.Name != "" {
		return e.Name
	}
	return e.ID
}

// InputRef is an input flattened together with its owning device.
type InputRef struct {
	DeviceID   string
	DeviceName string
	Input      Input
}

// Name returns the display name of the referenced input.
func (r InputRef) Name() string {
	return r.Input.DisplayName()
}
