package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"wavelink-cli/internal/adapter/secondary/repository"
	"wavelink-cli/internal/adapter/secondary/wavelink"
	"wavelink-cli/internal/domain"
	"wavelink-cli/internal/logging"
	"wavelink-cli/internal/usecase"
)

// Listing formats accepted by --output.
const (
	FormatText  = "text"
	FormatTable = "table"
	FormatJSON  = "json"
)

var (
	cfgPath      string
	verbosity    int
	hostFlag     string
	portFlag     int
	outputFormat string

	version = "dev"
)

// ConnectorFactory builds the connector used by mixer commands.
var ConnectorFactory = func(settings domain.Settings) domain.Connector {
	return wavelink.NewConnector(settings)
}

// lookupEnv is swapped out in tests.
var lookupEnv = os.LookupEnv

// SetVersion sets the string reported by --version.
func SetVersion(v string) {
	if strings.TrimSpace(v) != "" {
		version = v
	}
}

// NewRootCmd creates the root CLI command.
// This is the primary adapter that translates CLI inputs to use case calls.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "wavelink-cli",
		Short:   "Control Elgato Wave Link from the command line",
		Long:    "List and change Wave Link mixes, outputs, channels and inputs.\nEntities are addressed by ID or by case-insensitive name.",
		Version: version,

		SilenceErrors: true,
		SilenceUsage:  true,
	}

	cmd.PersistentFlags().StringVar(&cfgPath, "config", repository.DefaultPath(), "settings file path")
	cmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "increase logging (-v, -vv, ... up to 4)")
	cmd.PersistentFlags().StringVar(&hostFlag, "host", "", "Wave Link host (overrides "+repository.EnvHost+")")
	cmd.PersistentFlags().IntVar(&portFlag, "port", 0, "Wave Link port; 0 scans the configured range (overrides "+repository.EnvPort+")")
	cmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", FormatText, "listing format: text, table or json")
	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		logging.SetVerbosity(verbosity)
		switch outputFormat {
		case FormatText, FormatTable, FormatJSON:
			return nil
		default:
			return fmt.Errorf("invalid argument %q for --output: must be text, table or json", outputFormat)
		}
	}

	cmd.AddCommand(
		newInfoCmd(),
		newOutputCmd(),
		newMixCmd(),
		newChannelCmd(),
		newInputCmd(),
		newConfigCmd(),
		newShellCmd(),
	)

	return cmd
}

func settingsRepository() (*repository.FileRepository, error) {
	return repository.NewFileRepository(cfgPath)
}

// resolveSettings merges defaults, the settings file, the environment and flags,
// in increasing order of precedence.
func resolveSettings(cmd *cobra.Command) (domain.Settings, error) {
	repo, err := settingsRepository()
	if err != nil {
		return domain.Settings{}, err
	}
	settings, err := repo.Load()
	if err != nil {
		return domain.Settings{}, err
	}
	settings, err = repository.ApplyEnv(settings, lookupEnv)
	if err != nil {
		return domain.Settings{}, err
	}
	if cmd.Flags().Changed("host") {
		settings.Host = strings.TrimSpace(hostFlag)
	}
	if cmd.Flags().Changed("port") {
		settings.Port = portFlag
	}
	if err := settings.Validate(); err != nil {
		return domain.Settings{}, err
	}
	logging.Debugf("settings: host=%s port=%d range=%d-%d timeout=%s",
		settings.Host, settings.Port, settings.PortMin, settings.PortMax, settings.Timeout)
	return settings, nil
}

// mixerUseCase wires the use case for one command invocation.
func mixerUseCase(cmd *cobra.Command) (usecase.MixerUseCase, error) {
	settings, err := resolveSettings(cmd)
	if err != nil {
		return nil, err
	}
	return usecase.NewMixerUseCase(ConnectorFactory(settings)), nil
}

// runMessage runs a mutation and prints its message.
func runMessage(cmd *cobra.Command, op func(usecase.MixerUseCase) (string, error)) error {
	uc, err := mixerUseCase(cmd)
	if err != nil {
		return err
	}
	msg, err := op(uc)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), msg)
	return nil
}
