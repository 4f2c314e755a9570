package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"wavelink-cli/internal/adapter/secondary/memory"
	"wavelink-cli/internal/domain"
	"wavelink-cli/internal/logging"
)

func ptr[T any](v T) *T { return &v }

func fixtureState() memory.State {
	return memory.State{
		Info: domain.AppInfo{AppID: "EWL", Name: "Elgato Wave Link", InterfaceRevision: 7},
		Mixes: []domain.Mix{
			{ID: "mix-stream", Name: "Stream Mix", Level: 0.8},
			{ID: "mix-monitor", Name: "Monitor Mix", Level: 0.456, IsMuted: true},
		},
		OutputDevices: domain.OutputDevices{
			MainOutput: "dev-1",
			Devices: []domain.OutputDevice{
				{ID: "dev-1", Name: "Speakers", Outputs: []domain.Output{
					{ID: "out-1", Name: "Speakers Out", Level: 0.5, MixID: "mix-monitor"},
				}},
				{ID: "dev-2", Name: "Headphones", IsWaveDevice: true, Outputs: []domain.Output{
					{ID: "out-2", Name: "Headphones Out", Level: 1},
				}},
				{ID: "dev-3", Name: "Empty"},
			},
		},
		Channels: []domain.Channel{
			{ID: "ch-music", ImageName: "Music", Type: "software", Level: 0.3,
				Apps:  []domain.App{{ID: "spotify", Name: "Spotify"}, {ID: "vlc"}},
				Mixes: []domain.ChannelMix{{ID: "mix-monitor", Level: 0.6}, {ID: "mix-stream", Level: 0.2, IsMuted: true}}},
			{ID: "ch-game", Name: "Game", Type: "software", Mixes: []domain.ChannelMix{{ID: "mix-monitor"}}},
		},
		InputDevices: []domain.InputDevice{
			{ID: "wave3", Name: "Wave:3", IsWaveDevice: true, Inputs: []domain.Input{{
				ID: "mic", Name: "Microphone",
				Gain:         domain.Gain{Value: 0.65, Min: ptr(0.0), MaxRange: ptr(0.9)},
				IsGainLockOn: ptr(false),
				MicPcMix:     &domain.MicPcMix{Value: 0.25, IsInverted: true},
				Effects:      []domain.Effect{{ID: "clip", Name: "Clipguard", IsEnabled: true}, {ID: "lowcut", IsEnabled: false}},
			}}},
			{ID: "usb", Name: "USB Mic", Inputs: []domain.Input{{ID: "usb-in", Gain: domain.Gain{Value: 0.1}}}},
		},
	}
}

type testEnv struct {
	mixer      *memory.Mixer
	connector  *memory.Connector
	configPath string
	env        map[string]string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	te := &testEnv{
		mixer:      memory.NewMixer(fixtureState()),
		configPath: filepath.Join(t.TempDir(), "config.toml"),
		env:        map[string]string{},
	}
	te.connector = memory.NewConnector(te.mixer)

	prevFactory, prevLookup := ConnectorFactory, lookupEnv
	ConnectorFactory = func(domain.Settings) domain.Connector { return te.connector }
	lookupEnv = func(key string) (string, bool) {
		v, ok := te.env[key]
		return v, ok
	}
	t.Cleanup(func() {
		ConnectorFactory, lookupEnv = prevFactory, prevLookup
	})
	return te
}

func (te *testEnv) run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	cmd := NewRootCmd()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(append([]string{"--config", te.configPath}, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}

func TestMixListText(t *testing.T) {
	te := newTestEnv(t)
	out, _, err := te.run(t, "mix", "list")
	if err != nil {
		t.Fatalf("mix list: %v", err)
	}
	want := "\n=== Mixes ===\n\n" +
		"Mix: Stream Mix\n  ID: mix-stream\n  Level: 80%\n  Muted: No\n\n" +
		"Mix: Monitor Mix\n  ID: mix-monitor\n  Level: 46%\n  Muted: Yes\n\n"
	if out != want {
		t.Fatalf("unexpected output:\n%q\nwant:\n%q", out, want)
	}
	if len(te.mixer.Calls()) != 0 {
		t.Fatal("list must not mutate")
	}
}

func TestListEmpty(t *testing.T) {
	te := newTestEnv(t)
	te.mixer = memory.NewMixer(memory.State{})
	te.connector.Mixer = te.mixer

	cases := map[string]string{
		"mix":     "No mixes found.",
		"output":  "No output devices found.",
		"channel": "No channels found.",
		"input":   "No input devices found.",
	}
	for group, want := range cases {
		out, _, err := te.run(t, group, "list")
		if err != nil {
			t.Fatalf("%s list: %v", group, err)
		}
		requireContains(t, out, want)
	}
}

func TestOutputListText(t *testing.T) {
	te := newTestEnv(t)
	out, _, err := te.run(t, "output", "list")
	if err != nil {
		t.Fatalf("output list: %v", err)
	}
	requireContains(t, out, "Device: Speakers (MAIN OUTPUT)\n  Device ID: dev-1\n  Wave Device: No\n")
	requireContains(t, out, "    Current Mix: Monitor Mix (mix-monitor)\n    Level: 50%\n")
	requireContains(t, out, "  Output: Headphones Out\n    Output ID: out-2\n    Current Mix: Not assigned\n")
	requireContains(t, out, "Device: Empty\n  Device ID: dev-3\n  Wave Device: No\n  No outputs available\n")
}

func TestChannelListText(t *testing.T) {
	te := newTestEnv(t)
	out, _, err := te.run(t, "channel", "list")
	if err != nil {
		t.Fatalf("channel list: %v", err)
	}
	requireContains(t, out, "Channel: Music\n  ID: ch-music\n  Type: software\n  Level: 30%\n  Muted: No\n")
	requireContains(t, out, "  Apps: Spotify, vlc\n")
	requireContains(t, out, "  Mix Assignments:\n    mix-monitor: Level 60%, Muted: No\n    mix-stream: Level 20%, Muted: Yes\n")
}

func TestInputListText(t *testing.T) {
	te := newTestEnv(t)
	out, _, err := te.run(t, "input", "list")
	if err != nil {
		t.Fatalf("input list: %v", err)
	}
	requireContains(t, out, "    Gain: 65% (min: 0%, max: 90%)\n    Gain Lock: No\n    Muted: No\n")
	requireContains(t, out, "    Mic/PC Mix: 25% (inverted)\n")
	requireContains(t, out, "    Effects: Clipguard (ON), lowcut (OFF)\n")
	requireContains(t, out, "  Input: usb-in\n    Input ID: usb-in\n    Gain: 10% (min: unknown, max: unknown)\n    Muted: No\n")
}

func TestInfoText(t *testing.T) {
	te := newTestEnv(t)
	out, _, err := te.run(t, "info")
	if err != nil {
		t.Fatalf("info: %v", err)
	}
	want := "\n=== Wave Link Application Info ===\n\nApplication ID: EWL\nName: Elgato Wave Link\nInterface Revision: 7\n\n"
	if out != want {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestListJSONAndTable(t *testing.T) {
	te := newTestEnv(t)

	out, _, err := te.run(t, "-o", "json", "output", "list")
	if err != nil {
		t.Fatalf("output list json: %v", err)
	}
	var decoded struct {
		MainOutput    string `json:"mainOutput"`
		OutputDevices []struct {
			ID string `json:"id"`
		} `json:"outputDevices"`
		Mixes []domain.Mix `json:"mixes"`
	}
	if err := json.Unmarshal([]byte(out), &decoded); err != nil {
		t.Fatalf("decode json: %v\n%s", err, out)
	}
	if decoded.MainOutput != "dev-1" || len(decoded.OutputDevices) != 3 || len(decoded.Mixes) != 2 {
		t.Fatalf("unexpected json %+v", decoded)
	}

	out, _, err = te.run(t, "--output", "table", "input", "list")
	if err != nil {
		t.Fatalf("input list table: %v", err)
	}
	requireContains(t, out, "Microphone")
	requireContains(t, out, "╭")

	if _, _, err := te.run(t, "-o", "xml", "mix", "list"); err == nil || !strings.Contains(err.Error(), "invalid argument") {
		t.Fatalf("expected invalid argument error, got %v", err)
	}
}

func TestMutationsPrintMessages(t *testing.T) {
	tests := []struct {
		args []string
		want string
	}{
		{[]string{"output", "set-volume", "speakers out", "40"}, "Successfully set output 'Speakers Out' volume to 40%\n"},
		{[]string{"output", "assign", "out-2", "stream mix"}, "Successfully assigned output 'Headphones Out' to mix 'Stream Mix'\n"},
		{[]string{"output", "assign", "out-1", "Monitor Mix"}, "Output 'Speakers Out' is already assigned to mix 'Monitor Mix'\n"},
		{[]string{"mix", "toggle-mute", "Monitor Mix"}, "Successfully toggled mute for mix 'Monitor Mix'\n"},
		{[]string{"mix", "set-output", "Monitor Mix", "Headphones Out"}, "Successfully set 'Headphones Out' as the only output for mix 'Monitor Mix' (removed 1 other output(s) from the mix)\n"},
		{[]string{"channel", "mute-in-mix", "music", "Stream Mix"}, "Successfully muted channel 'Music' in mix 'Stream Mix'\n"},
		{[]string{"channel", "isolate", "Game", "Monitor Mix"}, "Target channel 'Game' is already unmuted\nSUCCESS: Isolated 'Game' in mix 'Monitor Mix'.\n  - Muted 1 other channels.\n  - 0 channels were already muted.\n"},
		{[]string{"input", "set-gain", "Microphone", "70"}, "Successfully set input 'Microphone' gain to 70%\n"},
		{[]string{"input", "unmute", "usb-in"}, "Successfully unmuted input 'usb-in'\n"},
	}
	for _, tt := range tests {
		t.Run(strings.Join(tt.args, " "), func(t *testing.T) {
			te := newTestEnv(t)
			out, _, err := te.run(t, tt.args...)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if out != tt.want {
				t.Fatalf("output = %q, want %q", out, tt.want)
			}
		})
	}
}

func TestErrorsAreReturnedNotPrinted(t *testing.T) {
	te := newTestEnv(t)

	out, stderr, err := te.run(t, "mix", "mute", "Nope")
	if !errors.Is(err, domain.ErrNotFound) || err.Error() != "Mix 'Nope' not found" {
		t.Fatalf("unexpected error %v", err)
	}
	if out != "" || stderr != "" {
		t.Fatalf("nothing should be printed, got stdout=%q stderr=%q", out, stderr)
	}

	_, _, err = te.run(t, "channel", "set-volume", "Game", "101")
	if err == nil || err.Error() != "Volume must be a number between 0 and 100" {
		t.Fatalf("unexpected error %v", err)
	}
	if te.connector.Connects() != 1 {
		t.Fatalf("invalid percent must not connect, connects = %d", te.connector.Connects())
	}

	_, _, err = te.run(t, "channel", "toggle-mute-in-mix", "Game", "Stream Mix")
	if !errors.Is(err, domain.ErrNotInMix) {
		t.Fatalf("expected ErrNotInMix, got %v", err)
	}

	if _, _, err := te.run(t, "mix", "mute"); err == nil || !strings.Contains(err.Error(), "accepts 1 arg(s)") {
		t.Fatalf("expected usage error, got %v", err)
	}
}

func TestConfigSetGetPath(t *testing.T) {
	te := newTestEnv(t)

	out, _, err := te.run(t, "config", "path")
	if err != nil {
		t.Fatalf("config path: %v", err)
	}
	if strings.TrimSpace(out) != te.configPath {
		t.Fatalf("config path = %q, want %q", out, te.configPath)
	}

	if _, _, err := te.run(t, "config", "set"); err == nil {
		t.Fatal("config set without flags should fail")
	}
	if _, _, err := te.run(t, "config", "set", "--port-min", "1900", "--port-max", "1800"); !errors.Is(err, domain.ErrInvalidPort) {
		t.Fatalf("expected ErrInvalidPort, got %v", err)
	}

	out, _, err = te.run(t, "config", "set", "--host", "10.1.1.1", "--timeout", "3s")
	if err != nil {
		t.Fatalf("config set: %v", err)
	}
	requireContains(t, out, "host=10.1.1.1")
	if _, err := os.Stat(te.configPath); err != nil {
		t.Fatalf("settings file not written: %v", err)
	}

	te.env["WAVELINK_PORT"] = "1890"
	out, _, err = te.run(t, "config", "get")
	if err != nil {
		t.Fatalf("config get: %v", err)
	}
	var view settingsView
	if err := json.Unmarshal([]byte(out), &view); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if view.Host != "10.1.1.1" || view.Port != 1890 || view.TimeoutSeconds != 3 {
		t.Fatalf("unexpected settings %+v", view)
	}

	out, _, err = te.run(t, "--host", "override.local", "--port", "1999", "config", "get")
	if err != nil {
		t.Fatalf("config get with flags: %v", err)
	}
	if err := json.Unmarshal([]byte(out), &view); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if view.Host != "override.local" || view.Port != 1999 {
		t.Fatalf("flags must win over env and file, got %+v", view)
	}
}

func TestConnectorReceivesResolvedSettings(t *testing.T) {
	te := newTestEnv(t)
	var got domain.Settings
	ConnectorFactory = func(s domain.Settings) domain.Connector {
		got = s
		return te.connector
	}
	te.env["WAVELINK_HOST"] = "studio.local"

	if _, _, err := te.run(t, "mix", "list"); err != nil {
		t.Fatalf("mix list: %v", err)
	}
	if got.Host != "studio.local" || got.Port != 0 || got.PortMin != domain.DefaultPortMin {
		t.Fatalf("unexpected settings %+v", got)
	}
}

func TestShellHandle(t *testing.T) {
	te := newTestEnv(t)
	var out, errOut bytes.Buffer
	sh := &shell{out: &out, errOut: &errOut, baseArgs: []string{"--config", te.configPath}}

	if sh.handle("mix mute 'Stream Mix'") {
		t.Fatal("command line must not exit the shell")
	}
	requireContains(t, out.String(), "Successfully muted mix 'Stream Mix'")

	sh.handle("mix mute Nope")
	requireContains(t, errOut.String(), "Error: Mix 'Nope' not found")

	sh.handle("log --level debug")
	if sh.verbosity != 2 {
		t.Fatalf("expected session verbosity 2, got %d", sh.verbosity)
	}
	t.Cleanup(func() {
		verbosity = 0
		logging.SetVerbosity(0)
	})

	sh.handle("shell")
	requireContains(t, out.String(), "Already in the shell.")

	sh.handle(`mix mute "unterminated`)
	requireContains(t, out.String(), "Parse error")

	if !sh.handle("exit") {
		t.Fatal("exit should end the shell")
	}
}
