package cli

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"wavelink-cli/internal/domain"
	"wavelink-cli/internal/usecase"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or change connection settings",
	}
	cmd.AddCommand(newConfigGetCmd(), newConfigSetCmd(), newConfigPathCmd())
	return cmd
}

// settingsView is the JSON shape printed by config get.
type settingsView struct {
	Host           string `json:"host"`
	Port           int    `json:"port"`
	PortMin        int    `json:"port_min"`
	PortMax        int    `json:"port_max"`
	TimeoutSeconds int    `json:"timeout_seconds"`
}

func newSettingsView(s domain.Settings) settingsView {
	return settingsView{
		Host:           s.Host,
		Port:           s.Port,
		PortMin:        s.PortMin,
		PortMax:        s.PortMax,
		TimeoutSeconds: int(s.Timeout / time.Second),
	}
}

func newConfigGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get",
		Short: "Print the effective settings as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := resolveSettings(cmd)
			if err != nil {
				return err
			}
			return writeJSON(cmd, newSettingsView(settings))
		},
	}
}

func newConfigSetCmd() *cobra.Command {
	var (
		host    string
		port    int
		portMin int
		portMax int
		timeout time.Duration
	)
	cmd := &cobra.Command{
		Use:   "set",
		Short: "Persist connection settings to the settings file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			changed := false
			for _, name := range []string{"host", "port", "port-min", "port-max", "timeout"} {
				changed = changed || flags.Changed(name)
			}
			if !changed {
				return errors.New("nothing to change: pass at least one of --host, --port, --port-min, --port-max, --timeout")
			}
			repo, err := settingsRepository()
			if err != nil {
				return err
			}
			saved, err := usecase.NewSettingsUseCase(repo).Update(func(s *domain.Settings) {
				if flags.Changed("host") {
					s.Host = strings.TrimSpace(host)
				}
				if flags.Changed("port") {
					s.Port = port
				}
				if flags.Changed("port-min") {
					s.PortMin = portMin
				}
				if flags.Changed("port-max") {
					s.PortMax = portMax
				}
				if flags.Changed("timeout") {
					s.Timeout = timeout
				}
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved %s: host=%s port=%d range=%d-%d timeout=%s\n",
				repo.Path(), saved.Host, saved.Port, saved.PortMin, saved.PortMax, saved.Timeout)
			return nil
		},
	}
	cmd.Flags().StringVar(&host, "host", domain.DefaultHost, "Wave Link host")
	cmd.Flags().IntVar(&port, "port", 0, "fixed port; 0 scans the range")
	cmd.Flags().IntVar(&portMin, "port-min", domain.DefaultPortMin, "first port to scan")
	cmd.Flags().IntVar(&portMax, "port-max", domain.DefaultPortMax, "last port to scan")
	cmd.Flags().DurationVar(&timeout, "timeout", domain.DefaultTimeout, "per-request timeout, e.g. 5s")
	return cmd
}

func newConfigPathCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the settings file location",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := settingsRepository()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), repo.Path())
			return nil
		},
	}
}
