// Package cmd provides the entrypoint for the eventbridge-explorer cli.
package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/isometry/eventbridge-explorer/internal/capabilities"
	"github.com/isometry/eventbridge-explorer/internal/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	configFilePath string
	logger         *slog.Logger
)

type boundEnvVar[T argType] struct {
	Name, Description string
	Env, Short        *string
	Hidden            bool
	// Count registers an int as a repeatable counter flag.
	Count bool
}

// New returns the root command for the eventbridge-explorer.
func New() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "eventbridge-explorer",
		Short:        "Explore EventBridge routing topology and the logs of its targets",
		SilenceUsage: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			config.Global.Mode = strings.TrimSpace(config.Global.Mode)
			logger = slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
				AddSource: config.Global.Logging.CallerTrace,
				Level:     slog.LevelWarn - slog.Level(config.Global.Logging.Verbosity*4),
			}))
			if err := config.Validate(); err != nil {
				return err
			}
			capabilities.Load()
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			switch config.Global.Mode {
			case config.ModeService:
				return cmdService().RunE(cmd, args)
			case config.ModeLambda:
				return cmdLambda().RunE(cmd, args)
			default:
				return fmt.Errorf("invalid mode: %s", config.Global.Mode)
			}
		},
	}

	// Root command flags
	configFilePath = "config.yaml"
	if path, found := os.LookupEnv("EXPLORER_CONFIG"); found {
		configFilePath = path
	}
	cmd.PersistentFlags().StringVarP(&configFilePath, "config", "c", configFilePath, "[EXPLORER_CONFIG] path to the configuration file, read before flags are parsed")

	// Configuration loading & defaults
	if err := errors.Join(
		config.LoadFromFile(configFilePath),
		config.SetDefaults(),
	); err != nil {
		panic(err)
	}

	// Dynamic flags
	setupDynamicFlags(cmd)

	// Subcommands
	cmd.AddCommand(
		cmdLambda(),
		cmdService(),
		cmdBuses(),
		cmdRules(),
		cmdGraph(),
		cmdLogs(),
		cmdStreams(),
		cmdEntries(),
		cmdPublish(),
		cmdWhoami(),
	)

	return cmd
}

func setupDynamicFlags(cmd *cobra.Command) {
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(replacer)

	bindEnvMap(cmd, envMapString)
	bindEnvMap(cmd, envMapBool)
	bindEnvMap(cmd, envMapCount)
	bindEnvMap(cmd, envMapInt)
	bindEnvMap(cmd, envMapFloat)
	bindEnvMap(cmd, envMapDuration)
}
