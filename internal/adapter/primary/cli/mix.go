package cli

import (
	"github.com/spf13/cobra"

	"wavelink-cli/internal/usecase"
)

func newMixCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mix",
		Short: "Manage mixes",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List all mixes with their IDs",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				uc, err := mixerUseCase(cmd)
				if err != nil {
					return err
				}
				mixes, err := uc.ListMixes(cmd.Context())
				if err != nil {
					return err
				}
				return renderMixes(cmd, mixes)
			},
		},
		&cobra.Command{
			Use:   "set-volume <mix-id-or-name> <volume>",
			Short: "Set mix volume (0-100)",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				return runMessage(cmd, func(uc usecase.MixerUseCase) (string, error) {
					return uc.SetMixVolume(cmd.Context(), args[0], args[1])
				})
			},
		},
		&cobra.Command{
			Use:   "mute <mix-id-or-name>",
			Short: "Mute a mix",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return runMessage(cmd, func(uc usecase.MixerUseCase) (string, error) {
					return uc.SetMixMute(cmd.Context(), args[0], true)
				})
			},
		},
		&cobra.Command{
			Use:   "unmute <mix-id-or-name>",
			Short: "Unmute a mix",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return runMessage(cmd, func(uc usecase.MixerUseCase) (string, error) {
					return uc.SetMixMute(cmd.Context(), args[0], false)
				})
			},
		},
		&cobra.Command{
			Use:   "toggle-mute <mix-id-or-name>",
			Short: "Toggle mix mute state",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return runMessage(cmd, func(uc usecase.MixerUseCase) (string, error) {
					return uc.ToggleMixMute(cmd.Context(), args[0])
				})
			},
		},
		&cobra.Command{
			Use:   "set-output <mix-id-or-name> <output-id-or-name>",
			Short: "Make an output the only output assigned to a mix",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				return runMessage(cmd, func(uc usecase.MixerUseCase) (string, error) {
					result, err := uc.SetExclusiveOutput(cmd.Context(), args[0], args[1])
					if err != nil {
						return "", err
					}
					return result.Message(), nil
				})
			},
		},
	)
	return cmd
}
