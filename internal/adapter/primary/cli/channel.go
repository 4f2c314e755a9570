package cli

import (
	"github.com/spf13/cobra"

	"wavelink-cli/internal/usecase"
)

func newChannelCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "channel",
		Short: "Manage channels",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List all channels with their IDs and mix assignments",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				uc, err := mixerUseCase(cmd)
				if err != nil {
					return err
				}
				channels, err := uc.ListChannels(cmd.Context())
				if err != nil {
					return err
				}
				return renderChannels(cmd, channels)
			},
		},
		&cobra.Command{
			Use:   "set-volume <channel-id-or-name> <volume>",
			Short: "Set channel volume (0-100)",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				return runMessage(cmd, func(uc usecase.MixerUseCase) (string, error) {
					return uc.SetChannelVolume(cmd.Context(), args[0], args[1])
				})
			},
		},
		&cobra.Command{
			Use:   "mute <channel-id-or-name>",
			Short: "Mute a channel",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return runMessage(cmd, func(uc usecase.MixerUseCase) (string, error) {
					return uc.SetChannelMute(cmd.Context(), args[0], true)
				})
			},
		},
		&cobra.Command{
			Use:   "unmute <channel-id-or-name>",
			Short: "Unmute a channel",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return runMessage(cmd, func(uc usecase.MixerUseCase) (string, error) {
					return uc.SetChannelMute(cmd.Context(), args[0], false)
				})
			},
		},
		&cobra.Command{
			Use:   "toggle-mute <channel-id-or-name>",
			Short: "Toggle channel mute state",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return runMessage(cmd, func(uc usecase.MixerUseCase) (string, error) {
					return uc.ToggleChannelMute(cmd.Context(), args[0])
				})
			},
		},
		&cobra.Command{
			Use:   "set-mix-volume <channel-id-or-name> <mix-id-or-name> <volume>",
			Short: "Set channel volume in a specific mix (0-100)",
			Args:  cobra.ExactArgs(3),
			RunE: func(cmd *cobra.Command, args []string) error {
				return runMessage(cmd, func(uc usecase.MixerUseCase) (string, error) {
					return uc.SetChannelMixVolume(cmd.Context(), args[0], args[1], args[2])
				})
			},
		},
		&cobra.Command{
			Use:   "mute-in-mix <channel-id-or-name> <mix-id-or-name>",
			Short: "Mute a channel in a specific mix",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				return runMessage(cmd, func(uc usecase.MixerUseCase) (string, error) {
					return uc.SetChannelMixMute(cmd.Context(), args[0], args[1], true)
				})
			},
		},
		&cobra.Command{
			Use:   "unmute-in-mix <channel-id-or-name> <mix-id-or-name>",
			Short: "Unmute a channel in a specific mix",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				return runMessage(cmd, func(uc usecase.MixerUseCase) (string, error) {
					return uc.SetChannelMixMute(cmd.Context(), args[0], args[1], false)
				})
			},
		},
		&cobra.Command{
			Use:   "toggle-mute-in-mix <channel-id-or-name> <mix-id-or-name>",
			Short: "Toggle channel mute state in a specific mix",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				return runMessage(cmd, func(uc usecase.MixerUseCase) (string, error) {
					return uc.ToggleChannelMixMute(cmd.Context(), args[0], args[1])
				})
			},
		},
		&cobra.Command{
			Use:   "isolate <channel-id-or-name> <mix-id-or-name>",
			Short: "Unmute a channel in a mix and mute every other channel of that mix",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				return runMessage(cmd, func(uc usecase.MixerUseCase) (string, error) {
					result, err := uc.IsolateChannel(cmd.Context(), args[0], args[1])
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
