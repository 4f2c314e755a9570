package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"wavelink-cli/internal/domain"
	"wavelink-cli/internal/usecase"
)

func formatPercent(level float64) string {
	return fmt.Sprintf("%d%%", int(math.Round(level*100)))
}

func formatYesNo(v bool) string {
	if v {
		return "Yes"
	}
	return "No"
}

// writeJSON encodes v as indented JSON to the command's stdout.
func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

type columnAlignment int

const (
	alignLeft columnAlignment = iota
	alignRight
)

func renderTable(out io.Writer, headers []string, rows [][]string, aligns []columnAlignment) string {
	columns := len(headers)
	if columns == 0 {
		return ""
	}

	tw := table.NewWriter()
	if shouldColorize(out) {
		tw.SetStyle(table.StyleColoredBright)
	} else {
		tw.SetStyle(table.StyleRounded)
	}

	header := make(table.Row, columns)
	for i := range headers {
		header[i] = headers[i]
	}
	tw.AppendHeader(header)

	for _, row := range rows {
		r := make(table.Row, columns)
		for i := 0; i < columns; i++ {
			if i < len(row) {
				r[i] = row[i]
			} else {
				r[i] = ""
			}
		}
		tw.AppendRow(r)
	}

	configs := make([]table.ColumnConfig, 0, columns)
	for i := 0; i < columns; i++ {
		align := text.AlignLeft
		if i < len(aligns) && aligns[i] == alignRight {
			align = text.AlignRight
		}
		configs = append(configs, table.ColumnConfig{Number: i + 1, Align: align, AlignHeader: text.AlignLeft})
	}
	tw.SetColumnConfigs(configs)

	return tw.Render()
}

func shouldColorize(w io.Writer) bool {
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func writeTable(cmd *cobra.Command, headers []string, rows [][]string, aligns []columnAlignment) error {
	out := cmd.OutOrStdout()
	_, err := fmt.Fprintln(out, renderTable(out, headers, rows, aligns))
	return err
}

// lineWriter accumulates listing lines and reports the first write error.
type lineWriter struct {
	w   io.Writer
	err error
}

func (l *lineWriter) printf(format string, args ...any) {
	if l.err != nil {
		return
	}
	_, l.err = fmt.Fprintf(l.w, format+"\n", args...)
}

func (l *lineWriter) header(title string) {
	l.printf("\n=== %s ===\n", title)
}

func renderInfo(cmd *cobra.Command, info domain.AppInfo) error {
	switch outputFormat {
	case FormatJSON:
		return writeJSON(cmd, info)
	case FormatTable:
		return writeTable(cmd, []string{"Application ID", "Name", "Interface Revision"},
			[][]string{{info.AppID, info.Name, fmt.Sprint(info.InterfaceRevision)}},
			[]columnAlignment{alignLeft, alignLeft, alignRight})
	}
	lw := &lineWriter{w: cmd.OutOrStdout()}
	lw.header("Wave Link Application Info")
	lw.printf("Application ID: %s", info.AppID)
	lw.printf("Name: %s", info.Name)
	lw.printf("Interface Revision: %d", info.InterfaceRevision)
	lw.printf("")
	return lw.err
}

func renderMixes(cmd *cobra.Command, mixes []domain.Mix) error {
	switch outputFormat {
	case FormatJSON:
		return writeJSON(cmd, nonNil(mixes))
	case FormatTable:
		rows := make([][]string, 0, len(mixes))
		for _, m := range mixes {
			rows = append(rows, []string{m.DisplayName(), m.ID, formatPercent(m.Level), formatYesNo(m.IsMuted)})
		}
		return writeTable(cmd, []string{"Mix", "ID", "Level", "Muted"}, rows,
			[]columnAlignment{alignLeft, alignLeft, alignRight, alignLeft})
	}
	lw := &lineWriter{w: cmd.OutOrStdout()}
	lw.header("Mixes")
	if len(mixes) == 0 {
		lw.printf("No mixes found.")
		return lw.err
	}
	for _, m := range mixes {
		lw.printf("Mix: %s", m.DisplayName())
		lw.printf("  ID: %s", m.ID)
		lw.printf("  Level: %s", formatPercent(m.Level))
		lw.printf("  Muted: %s", formatYesNo(m.IsMuted))
		lw.printf("")
	}
	return lw.err
}

func renderOutputs(cmd *cobra.Command, listing usecase.OutputListing) error {
	mixDisplay := func(o domain.Output) string {
		if o.MixID == "" {
			return "Not assigned"
		}
		return fmt.Sprintf("%s (%s)", listing.MixName(o.MixID), o.MixID)
	}

	switch outputFormat {
	case FormatJSON:
		if listing.Devices == nil {
			listing.Devices = []domain.OutputDevice{}
		}
		listing.Mixes = nonNil(listing.Mixes)
		return writeJSON(cmd, listing)
	case FormatTable:
		var rows [][]string
		for _, ref := range domain.OutputRefs(listing.Devices) {
			device := ref.DeviceName
			if ref.DeviceID == listing.MainOutput {
				device += " (main)"
			}
			rows = append(rows, []string{device, ref.Name(), ref.Output.ID, mixDisplay(ref.Output),
				formatPercent(ref.Output.Level), formatYesNo(ref.Output.IsMuted)})
		}
		return writeTable(cmd, []string{"Device", "Output", "ID", "Mix", "Level", "Muted"}, rows,
			[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft, alignRight, alignLeft})
	}

	lw := &lineWriter{w: cmd.OutOrStdout()}
	lw.header("Output Devices")
	if len(listing.Devices) == 0 {
		lw.printf("No output devices found.")
		return lw.err
	}
	for _, d := range listing.Devices {
		mainTag := ""
		if d.ID == listing.MainOutput {
			mainTag = " (MAIN OUTPUT)"
		}
		lw.printf("Device: %s%s", d.DisplayName(), mainTag)
		lw.printf("  Device ID: %s", d.ID)
		lw.printf("  Wave Device: %s", formatYesNo(d.IsWaveDevice))
		if len(d.Outputs) == 0 {
			lw.printf("  No outputs available")
		}
		for _, o := range d.Outputs {
			lw.printf("  Output: %s", o.DisplayName())
			lw.printf("    Output ID: %s", o.ID)
			lw.printf("    Current Mix: %s", mixDisplay(o))
			lw.printf("    Level: %s", formatPercent(o.Level))
			lw.printf("    Muted: %s", formatYesNo(o.IsMuted))
		}
		lw.printf("")
	}
	return lw.err
}

func renderChannels(cmd *cobra.Command, channels []domain.Channel) error {
	switch outputFormat {
	case FormatJSON:
		return writeJSON(cmd, nonNil(channels))
	case FormatTable:
		rows := make([][]string, 0, len(channels))
		for _, ch := range channels {
			rows = append(rows, []string{ch.DisplayName(), ch.ID, ch.Type, formatPercent(ch.Level),
				formatYesNo(ch.IsMuted), channelMixSummary(ch)})
		}
		return writeTable(cmd, []string{"Channel", "ID", "Type", "Level", "Muted", "Mixes"}, rows,
			[]columnAlignment{alignLeft, alignLeft, alignLeft, alignRight, alignLeft, alignLeft})
	}

	lw := &lineWriter{w: cmd.OutOrStdout()}
	lw.header("Channels")
	if len(channels) == 0 {
		lw.printf("No channels found.")
		return lw.err
	}
	for _, ch := range channels {
		lw.printf("Channel: %s", ch.DisplayName())
		lw.printf("  ID: %s", ch.ID)
		lw.printf("  Type: %s", ch.Type)
		lw.printf("  Level: %s", formatPercent(ch.Level))
		lw.printf("  Muted: %s", formatYesNo(ch.IsMuted))
		if len(ch.Apps) > 0 {
			names := make([]string, 0, len(ch.Apps))
			for _, a := range ch.Apps {
				names = append(names, a.DisplayName())
			}
			lw.printf("  Apps: %s", strings.Join(names, ", "))
		}
		if len(ch.Mixes) > 0 {
			lw.printf("  Mix Assignments:")
			for _, m := range ch.Mixes {
				lw.printf("    %s: Level %s, Muted: %s", m.ID, formatPercent(m.Level), formatYesNo(m.IsMuted))
			}
		}
		lw.printf("")
	}
	return lw.err
}

func channelMixSummary(ch domain.Channel) string {
	parts := make([]string, 0, len(ch.Mixes))
	for _, m := range ch.Mixes {
		state := formatPercent(m.Level)
		if m.IsMuted {
			state += " muted"
		}
		parts = append(parts, fmt.Sprintf("%s %s", m.ID, state))
	}
	return strings.Join(parts, ", ")
}

func renderInputs(cmd *cobra.Command, devices []domain.InputDevice) error {
	switch outputFormat {
	case FormatJSON:
		return writeJSON(cmd, nonNil(devices))
	case FormatTable:
		var rows [][]string
		for _, ref := range domain.InputRefs(devices) {
			rows = append(rows, []string{ref.DeviceName, ref.Name(), ref.Input.ID,
				formatPercent(ref.Input.Gain.Value), formatYesNo(ref.Input.IsMuted)})
		}
		return writeTable(cmd, []string{"Device", "Input", "ID", "Gain", "Muted"}, rows,
			[]columnAlignment{alignLeft, alignLeft, alignLeft, alignRight, alignLeft})
	}

	lw := &lineWriter{w: cmd.OutOrStdout()}
	lw.header("Input Devices")
	if len(devices) == 0 {
		lw.printf("No input devices found.")
		return lw.err
	}
	for _, d := range devices {
		lw.printf("Device: %s", d.DisplayName())
		lw.printf("  Device ID: %s", d.ID)
		lw.printf("  Wave Device: %s", formatYesNo(d.IsWaveDevice))
		if len(d.Inputs) == 0 {
			lw.printf("  No inputs available")
		}
		for _, in := range d.Inputs {
			lw.printf("  Input: %s", in.DisplayName())
			lw.printf("    Input ID: %s", in.ID)
			lw.printf("    Gain: %s (min: %s, max: %s)", formatPercent(in.Gain.Value), gainMin(in.Gain), gainMax(in.Gain))
			if in.IsGainLockOn != nil {
				lw.printf("    Gain Lock: %s", formatYesNo(*in.IsGainLockOn))
			}
			lw.printf("    Muted: %s", formatYesNo(in.IsMuted))
			if in.MicPcMix != nil {
				inverted := ""
				if in.MicPcMix.IsInverted {
					inverted = " (inverted)"
				}
				lw.printf("    Mic/PC Mix: %s%s", formatPercent(in.MicPcMix.Value), inverted)
			}
			if len(in.Effects) > 0 {
				effects := make([]string, 0, len(in.Effects))
				for _, e := range in.Effects {
					state := "OFF"
					if e.IsEnabled {
						state = "ON"
					}
					effects = append(effects, fmt.Sprintf("%s (%s)", e.DisplayName(), state))
				}
				lw.printf("    Effects: %s", strings.Join(effects, ", "))
			}
		}
		lw.printf("")
	}
	return lw.err
}

func gainMin(g domain.Gain) string {
	if g.Min == nil {
		return "unknown"
	}
	return formatPercent(*g.Min)
}

func gainMax(g domain.Gain) string {
	if upper, ok := g.UpperBound(); ok {
		return formatPercent(upper)
	}
	return "unknown"
}

// nonNil makes empty listings encode as [] rather than null.
func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
