package cli

import (
	"github.com/spf13/cobra"

	"wavelink-cli/internal/usecase"
)

func newOutputCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "output",
		Short: "Manage output devices",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List all output devices with their IDs and current mix assignments",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				uc, err := mixerUseCase(cmd)
				if err != nil {
					return err
				}
				listing, err := uc.ListOutputs(cmd.Context())
				if err != nil {
					return err
				}
				return renderOutputs(cmd, listing)
			},
		},
		&cobra.Command{
			Use:   "assign <output-id-or-name> <mix-id-or-name>",
			Short: "Assign an output device to a specific mix",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				return runMessage(cmd, func(uc usecase.MixerUseCase) (string, error) {
					return uc.AssignOutput(cmd.Context(), args[0], args[1])
				})
			},
		},
		&cobra.Command{
			Use:   "unassign <output-id-or-name>",
			Short: "Unassign an output device from its current mix",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return runMessage(cmd, func(uc usecase.MixerUseCase) (string, error) {
					return uc.UnassignOutput(cmd.Context(), args[0])
				})
			},
		},
		&cobra.Command{
			Use:   "set-volume <output-id-or-name> <volume>",
			Short: "Set output device volume (0-100)",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				return runMessage(cmd, func(uc usecase.MixerUseCase) (string, error) {
					return uc.SetOutputVolume(cmd.Context(), args[0], args[1])
				})
			},
		},
		&cobra.Command{
			Use:   "mute <output-id-or-name>",
			Short: "Mute an output device",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return runMessage(cmd, func(uc usecase.MixerUseCase) (string, error) {
					return uc.SetOutputMute(cmd.Context(), args[0], true)
				})
			},
		},
		&cobra.Command{
			Use:   "unmute <output-id-or-name>",
			Short: "Unmute an output device",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return runMessage(cmd, func(uc usecase.MixerUseCase) (string, error) {
					return uc.SetOutputMute(cmd.Context(), args[0], false)
				})
			},
		},
		&cobra.Command{
			Use:   "toggle-mute <output-id-or-name>",
			Short: "Toggle output device mute state",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return runMessage(cmd, func(uc usecase.MixerUseCase) (string, error) {
					return uc.ToggleOutputMute(cmd.Context(), args[0])
				})
			},
		},
	)
	return cmd
}
