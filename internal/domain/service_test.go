package domain

import (
	"errors"
	"testing"
)

func TestParsePercent(t *testing.T) {
	svc := NewMixerService()
	tests := []struct {
		raw     string
		want    int
		wantErr bool
	}{
		{raw: "0", want: 0},
		{raw: "100", want: 100},
		{raw: " 42 ", want: 42},
		{raw: "-1", wantErr: true},
		{raw: "101", wantErr: true},
		{raw: "abc", wantErr: true},
		{raw: "50.5", wantErr: true},
		{raw: "", wantErr: true},
	}
	for _, tt := range tests {
		got, err := svc.ParsePercent(tt.raw, "Volume")
		if tt.wantErr {
			if !errors.Is(err, ErrInvalidPercent) {
				t.Fatalf("ParsePercent(%q) error = %v, want ErrInvalidPercent", tt.raw, err)
			}
			if err.Error() != "Volume must be a number between 0 and 100" {
				t.Fatalf("unexpected message %q", err.Error())
			}
			continue
		}
		if err != nil {
			t.Fatalf("ParsePercent(%q) unexpected error: %v", tt.raw, err)
		}
		if got != tt.want {
			t.Fatalf("ParsePercent(%q) = %d, want %d", tt.raw, got, tt.want)
		}
	}
}

func TestPercentToLevel(t *testing.T) {
	if got := PercentToLevel(40); got != 0.4 {
		t.Fatalf("PercentToLevel(40) = %v", got)
	}
	if got := PercentToLevel(100); got != 1 {
		t.Fatalf("PercentToLevel(100) = %v", got)
	}
}

func TestFindMixPrefersIDOverName(t *testing.T) {
	svc := NewMixerService()
	mixes := []Mix{
		{ID: "monitor", Name: "stream"},
		{ID: "stream", Name: "Stream Mix"},
	}
	got, err := svc.FindMix(mixes, "STREAM")
	if err != nil {
		t.Fatalf("FindMix: %v", err)
	}
	if got.ID != "stream" {
		t.Fatalf("expected ID match to win, got %q", got.ID)
	}

	got, err = svc.FindMix(mixes, "stream mix")
	if err != nil {
		t.Fatalf("FindMix by name: %v", err)
	}
	if got.ID != "stream" {
		t.Fatalf("expected name match, got %q", got.ID)
	}
}

func TestFindMixNotFound(t *testing.T) {
	svc := NewMixerService()
	_, err := svc.FindMix(nil, "ghost")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err.Error() != "Mix 'ghost' not found" {
		t.Fatalf("unexpected message %q", err.Error())
	}
}

func TestFindOutputSearchesAllDevicesByIDFirst(t *testing.T) {
	svc := NewMixerService()
	devices := []OutputDevice{
		{ID: "dev-a", Outputs: []Output{{ID: "out-1", Name: "out-2"}}},
		{ID: "dev-b", Name: "Headset", Outputs: []Output{{ID: "out-2", Name: "Headphones"}}},
	}
	got, err := svc.FindOutput(devices, "Out-2")
	if err != nil {
		t.Fatalf("FindOutput: %v", err)
	}
	if got.DeviceID != "dev-b" || got.Output.ID != "out-2" {
		t.Fatalf("expected ID match on second device, got %+v", got)
	}
	if got.DeviceName != "Headset" {
		t.Fatalf("expected device name carried, got %q", got.DeviceName)
	}

	got, err = svc.FindOutput(devices, "headphones")
	if err != nil {
		t.Fatalf("FindOutput by name: %v", err)
	}
	if got.Name() != "Headphones" {
		t.Fatalf("unexpected output %+v", got)
	}

	if _, err := svc.FindOutput(devices, "speakers"); err == nil || err.Error() != "Output 'speakers' not found" {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestFindChannelUsesDerivedName(t *testing.T) {
	svc := NewMixerService()
	channels := []Channel{
		{ID: "ch-1", ImageName: "Music"},
		{ID: "ch-2", Name: "Game"},
		{ID: "ch-3"},
	}
	tests := map[string]string{
		"music": "ch-1",
		"GAME":  "ch-2",
		"Ch-3":  "ch-3",
	}
	for query, wantID := range tests {
		got, err := svc.FindChannel(channels, query)
		if err != nil {
			t.Fatalf("FindChannel(%q): %v", query, err)
		}
		if got.ID != wantID {
			t.Fatalf("FindChannel(%q) = %q, want %q", query, got.ID, wantID)
		}
	}
	if _, err := svc.FindChannel(channels, "chat"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestFindInputUnicodeCaseFolding(t *testing.T) {
	svc := NewMixerService()
	devices := []InputDevice{
		{ID: "dev", Inputs: []Input{{ID: "in-1", Name: "Écoute Mic"}}},
	}
	got, err := svc.FindInput(devices, "éCOUTE mic")
	if err != nil {
		t.Fatalf("FindInput: %v", err)
	}
	if got.Input.ID != "in-1" || got.DeviceID != "dev" {
		t.Fatalf("unexpected input %+v", got)
	}
	if _, err := svc.FindInput(devices, "nope"); err == nil || err.Error() != "Input 'nope' not found" {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestChannelDisplayNameFallback(t *testing.T) {
	tests := []struct {
		ch   Channel
		want string
	}{
		{Channel{ID: "id", Name: "Name", ImageName: "Image"}, "Name"},
		{Channel{ID: "id", ImageName: "Image"}, "Image"},
		{Channel{ID: "id"}, "id"},
	}
	for _, tt := range tests {
		if got := tt.ch.DisplayName(); got != tt.want {
			t.Fatalf("DisplayName() = %q, want %q", got, tt.want)
		}
	}
}

func TestPlanExclusiveOutputReplacesOthers(t *testing.T) {
	svc := NewMixerService()
	devices := []OutputDevice{
		{ID: "d1", Outputs: []Output{{ID: "A", MixID: "M"}, {ID: "B", MixID: "M"}}},
		{ID: "d2", Outputs: []Output{{ID: "C", MixID: "other"}, {ID: "D"}}},
	}
	target := OutputRef{DeviceID: "d2", Output: Output{ID: "C"}}

	plan := svc.PlanExclusiveOutput(devices, target, "M")
	if !plan.Assigns() {
		t.Fatal("expected target to be assigned")
	}
	if plan.Removals() != 2 {
		t.Fatalf("expected 2 removals, got %d", plan.Removals())
	}
	order := []string{}
	for _, st := range plan.Steps {
		order = append(order, st.Output.Output.ID)
	}
	if len(order) != 3 || order[0] != "A" || order[1] != "B" || order[2] != "C" {
		t.Fatalf("steps should follow list order, got %v", order)
	}
}

func TestPlanExclusiveOutputAlreadyExclusive(t *testing.T) {
	svc := NewMixerService()
	devices := []OutputDevice{
		{ID: "d1", Outputs: []Output{{ID: "A"}, {ID: "C", MixID: "M"}}},
	}
	target := OutputRef{DeviceID: "d1", Output: Output{ID: "C"}}
	plan := svc.PlanExclusiveOutput(devices, target, "M")
	if len(plan.Steps) != 0 || plan.Assigns() || plan.Removals() != 0 {
		t.Fatalf("expected empty plan, got %+v", plan)
	}
}

func TestPlanExclusiveOutputMatchesDeviceAndOutput(t *testing.T) {
	svc := NewMixerService()
	// Same output ID on two devices: only the target device's output is the target.
	devices := []OutputDevice{
		{ID: "d1", Outputs: []Output{{ID: "main", MixID: "M"}}},
		{ID: "d2", Outputs: []Output{{ID: "main"}}},
	}
	target := OutputRef{DeviceID: "d2", Output: Output{ID: "main"}}
	plan := svc.PlanExclusiveOutput(devices, target, "M")
	if !plan.Assigns() || plan.Removals() != 1 {
		t.Fatalf("unexpected plan %+v", plan)
	}
	if plan.Steps[0].Kind != StepRemove || plan.Steps[0].Output.DeviceID != "d1" {
		t.Fatalf("expected d1 removal first, got %+v", plan.Steps[0])
	}
}

func TestPlanIsolation(t *testing.T) {
	svc := NewMixerService()
	channels := []Channel{
		{ID: "X", Mixes: []ChannelMix{{ID: "M", IsMuted: false}}},
		{ID: "Y", Mixes: []ChannelMix{{ID: "M", IsMuted: false}}},
		{ID: "Z", Mixes: []ChannelMix{{ID: "M", IsMuted: true}}},
		{ID: "W", Mixes: []ChannelMix{{ID: "other", IsMuted: false}}},
	}
	plan := svc.PlanIsolation(channels, "X", "M")
	if len(plan.Steps) != 3 {
		t.Fatalf("expected unassigned channel to be skipped, got %d steps", len(plan.Steps))
	}
	want := []IsolationAction{ActionTargetAlreadyUnmuted, ActionMute, ActionAlreadyMuted}
	for i, st := range plan.Steps {
		if st.Action != want[i] {
			t.Fatalf("step %d (%s) action = %v, want %v", i, st.Channel.ID, st.Action, want[i])
		}
	}
	if plan.Muted() != 1 || plan.AlreadyMuted() != 1 {
		t.Fatalf("counts muted=%d already=%d", plan.Muted(), plan.AlreadyMuted())
	}
}

func TestPlanIsolationUnmutesMutedTarget(t *testing.T) {
	svc := NewMixerService()
	channels := []Channel{{ID: "X", Mixes: []ChannelMix{{ID: "M", IsMuted: true}}}}
	plan := svc.PlanIsolation(channels, "X", "M")
	if len(plan.Steps) != 1 || plan.Steps[0].Action != ActionUnmuteTarget {
		t.Fatalf("unexpected plan %+v", plan)
	}
	if !plan.Steps[0].Action.NeedsCall() {
		t.Fatal("unmuting the target needs a call")
	}
	if ActionAlreadyMuted.NeedsCall() || ActionTargetAlreadyUnmuted.NeedsCall() {
		t.Fatal("no-op actions must not need a call")
	}
}

func TestSettingsValidateAndPorts(t *testing.T) {
	s := DefaultSettings()
	if err := s.Validate(); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}
	if got := s.Ports(); len(got) != 10 || got[0] != 1884 || got[9] != 1893 {
		t.Fatalf("unexpected discovery ports %v", got)
	}
	s.Port = 2000
	if got := s.Ports(); len(got) != 1 || got[0] != 2000 {
		t.Fatalf("explicit port should be the only candidate, got %v", got)
	}

	bad := DefaultSettings()
	bad.PortMin, bad.PortMax = 10, 5
	if !errors.Is(bad.Validate(), ErrInvalidPort) {
		t.Fatal("expected ErrInvalidPort for inverted range")
	}
	bad = DefaultSettings()
	bad.Host = ""
	if !errors.Is(bad.Validate(), ErrInvalidHost) {
		t.Fatal("expected ErrInvalidHost")
	}
	bad = DefaultSettings()
	bad.Timeout = 0
	if !errors.Is(bad.Validate(), ErrInvalidTimeout) {
		t.Fatal("expected ErrInvalidTimeout")
	}
}

func TestNotInMixError(t *testing.T) {
	err := error(&NotInMixError{Channel: "Music", Mix: "Stream"})
	if !errors.Is(err, ErrNotInMix) {
		t.Fatal("expected errors.Is ErrNotInMix")
	}
	if err.Error() != "Channel 'Music' is not available in mix 'Stream'" {
		t.Fatalf("unexpected message %q", err.Error())
	}
}
