package cli

import (
	"github.com/spf13/cobra"

	"wavelink-cli/internal/usecase"
)

func newInputCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "input",
		Short: "Manage input devices",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List all input devices with their IDs",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				uc, err := mixerUseCase(cmd)
				if err != nil {
					return err
				}
				devices, err := uc.ListInputs(cmd.Context())
				if err != nil {
					return err
				}
				return renderInputs(cmd, devices)
			},
		},
		&cobra.Command{
			Use:   "set-gain <input-id-or-name> <gain>",
			Short: "Set input gain (0-100)",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				return runMessage(cmd, func(uc usecase.MixerUseCase) (string, error) {
					return uc.SetInputGain(cmd.Context(), args[0], args[1])
				})
			},
		},
		&cobra.Command{
			Use:   "mute <input-id-or-name>",
			Short: "Mute an input",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return runMessage(cmd, func(uc usecase.MixerUseCase) (string, error) {
					return uc.SetInputMute(cmd.Context(), args[0], true)
				})
			},
		},
		&cobra.Command{
			Use:   "unmute <input-id-or-name>",
			Short: "Unmute an input",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return runMessage(cmd, func(uc usecase.MixerUseCase) (string, error) {
					return uc.SetInputMute(cmd.Context(), args[0], false)
				})
			},
		},
		&cobra.Command{
			Use:   "toggle-mute <input-id-or-name>",
			Short: "Toggle input mute state",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return runMessage(cmd, func(uc usecase.MixerUseCase) (string, error) {
					return uc.ToggleInputMute(cmd.Context(), args[0])
				})
			},
		},
	)
	return cmd
}

func newInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Show Wave Link application information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			uc, err := mixerUseCase(cmd)
			if err != nil {
				return err
			}
			info, err := uc.Info(cmd.Context())
			if err != nil {
				return err
			}
			return renderInfo(cmd, info)
		},
	}
}
