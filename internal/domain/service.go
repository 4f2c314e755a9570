package domain

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
)

// MixerService provides pure domain logic for resolving and planning mixer operations.
// This service has no side effects and no dependencies on external concerns.
type MixerService struct{}

// NewMixerService creates a new mixer service.
func NewMixerService() *MixerService {
	return &MixerService{}
}

// ParsePercent validates a user-supplied percentage. label prefixes the error message.
func (s *MixerService) ParsePercent(raw, label string) (int, error) {
	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || v < 0 || v > 100 {
		return 0, fmt.Errorf("%s %w", label, ErrInvalidPercent)
	}
	return v, nil
}

// PercentToLevel converts a 0-100 percentage into a 0.0-1.0 fraction.
func PercentToLevel(percent int) float64 {
	return float64(percent) / 100
}

// FindMix resolves a mix by ID first, then by name. Matching is case-insensitive.
func (s *MixerService) FindMix(mixes []Mix, query string) (Mix, error) {
	i := resolve(len(mixes), query,
		func(i int) string { return mixes[i].ID },
		func(i int) string { return mixes[i].Name })
	if i < 0 {
		return Mix{}, &NotFoundError{Kind: KindMix, Query: query}
	}
	return mixes[i], nil
}

// FindOutput resolves an output across all devices by output ID first, then by output name.
func (s *MixerService) FindOutput(devices []OutputDevice, query string) (OutputRef, error) {
	refs := OutputRefs(devices)
	i := resolve(len(refs), query,
		func(i int) string { return refs[i].Output.ID },
		func(i int) string { return refs[i].Output.Name })
	if i < 0 {
		return OutputRef{}, &NotFoundError{Kind: KindOutput, Query: query}
	}
	return refs[i], nil
}

// FindChannel resolves a channel by ID first, then by its derived display name.
func (s *MixerService) FindChannel(channels []Channel, query string) (Channel, error) {
	i := resolve(len(channels), query,
		func(i int) string { return channels[i].ID },
		func(i int) string { return channels[i].DisplayName() })
	if i < 0 {
		return Channel{}, &NotFoundError{Kind: KindChannel, Query: query}
	}
	return channels[i], nil
}

// FindInput resolves an input across all devices by input ID first, then by input name.
func (s *MixerService) FindInput(devices []InputDevice, query string) (InputRef, error) {
	refs := InputRefs(devices)
	i := resolve(len(refs), query,
		func(i int) string { return refs[i].Input.ID },
		func(i int) string { return refs[i].Input.Name })
	if i < 0 {
		return InputRef{}, &NotFoundError{Kind: KindInput, Query: query}
	}
	return refs[i], nil
}

// resolve returns the index of the first ID match, else the first name match, else -1.
func resolve(n int, query string, id, name func(int) string) int {
	fold := cases.Fold()
	want := fold.String(query)
	for i := 0; i < n; i++ {
		if fold.String(id(i)) == want {
			return i
		}
	}
	for i := 0; i < n; i++ {
		if label := name(i); label != "" && fold.String(label) == want {
			return i
		}
	}
	return -1
}

// OutputRefs flattens devices into outputs, preserving list order.
func OutputRefs(devices []OutputDevice) []OutputRef {
	var refs []OutputRef
	for _, d := range devices {
		for _, o := range d.Outputs {
			refs = append(refs, OutputRef{
				DeviceID:     d.ID,
				DeviceName:   d.DisplayName(),
				IsWaveDevice: d.IsWaveDevice,
				Output:       o,
			})
		}
	}
	return refs
}

// InputRefs flattens devices into inputs, preserving list order.
func InputRefs(devices []InputDevice) []InputRef {
	var refs []InputRef
	for _, d := range devices {
		for _, in := range d.Inputs {
			refs = append(refs, InputRef{
				DeviceID:   d.ID,
				DeviceName: d.DisplayName(),
				Input:      in,
			})
		}
	}
	return refs
}

// OutputStepKind is the mutation an exclusive-output step performs.
type OutputStepKind int

const (
	StepAssign OutputStepKind = iota
	StepRemove
)

// OutputStep is one mutation of an exclusive-output plan.
type OutputStep struct {
	Kind   OutputStepKind
	Output OutputRef
}

// ExclusiveOutputPlan lists, in device order, the calls that make one output the only output of a mix.
type ExclusiveOutputPlan struct {
	Steps []OutputStep
}

// Assigns reports whether the target must be moved onto the mix.
func (p ExclusiveOutputPlan) Assigns() bool {
	for _, st := range p.Steps {
		if st.Kind == StepAssign {
			return true
		}
	}
	return false
}

// Removals counts the other outputs that will be taken off the mix.
func (p ExclusiveOutputPlan) Removals() int {
	n := 0
	for _, st := range p.Steps {
		if st.Kind == StepRemove {
			n++
		}
	}
	return n
}

// PlanExclusiveOutput computes the steps over a single snapshot of devices.
func (s *MixerService) PlanExclusiveOutput(devices []OutputDevice, target OutputRef, mixID string) ExclusiveOutputPlan {
	var plan ExclusiveOutputPlan
	for _, ref := range OutputRefs(devices) {
		isTarget := ref.Same(target)
		switch {
		case isTarget && ref.Output.MixID != mixID:
			plan.Steps = append(plan.Steps, OutputStep{Kind: StepAssign, Output: ref})
		case !isTarget && ref.Output.MixID == mixID:
			plan.Steps = append(plan.Steps, OutputStep{Kind: StepRemove, Output: ref})
		}
	}
	return plan
}

// IsolationAction is what isolating a channel does to one channel of the mix.
type IsolationAction int

const (
	ActionUnmuteTarget IsolationAction = iota
	ActionTargetAlreadyUnmuted
	ActionMute
	ActionAlreadyMuted
)

// NeedsCall reports whether the action requires a mutation call.
func (a IsolationAction) NeedsCall() bool {
	return a == ActionUnmuteTarget || a == ActionMute
}

// IsolationStep pairs a channel with the action isolation applies to it.
type IsolationStep struct {
	Channel Channel
	Action  IsolationAction
}

// IsolationPlan lists, in channel order, what isolating a channel in a mix does.
type IsolationPlan struct {
	Steps []IsolationStep
}

// Muted counts channels that will be muted.
func (p IsolationPlan) Muted() int {
	return p.count(ActionMute)
}

// AlreadyMuted counts non-target channels that were muted already.
func (p IsolationPlan) AlreadyMuted() int {
	return p.count(ActionAlreadyMuted)
}

func (p IsolationPlan) count(a IsolationAction) int {
	n := 0
	for _, st := range p.Steps {
		if st.Action == a {
			n++
		}
	}
	return n
}

// PlanIsolation computes the per-channel actions over a single snapshot of channels.
// Channels without an assignment in the mix are left out.
func (s *MixerService) PlanIsolation(channels []Channel, targetID, mixID string) IsolationPlan {
	var plan IsolationPlan
	for _, ch := range channels {
		assignment, ok := ch.Assignment(mixID)
		if !ok {
			continue
		}
		var action IsolationAction
		switch {
		case ch.ID == targetID && assignment.IsMuted:
			action = ActionUnmuteTarget
		case ch.ID == targetID:
			action = ActionTargetAlreadyUnmuted
		case !assignment.IsMuted:
			action = ActionMute
		default:
			action = ActionAlreadyMuted
		}
		plan.Steps = append(plan.Steps, IsolationStep{Channel: ch, Action: action})
	}
	return plan
}
