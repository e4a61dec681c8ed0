package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"pkg-sandbox/internal/adapters"
	"pkg-sandbox/internal/types"
)

// version is set at build time via ldflags.
var version = "dev"

const envPrefix = "PKG_SANDBOX"

const (
	defaultPackage   = "lodash@4.17.21"
	defaultWorkspace = "sandbox"
)

type RootConfig struct {
	ConfigFile string
	LogLevel   string
}

func Execute() {
	root := newRootCommand()
	if err := root.Execute(); err != nil {
		reportFailure(root.ErrOrStderr(), err)
		os.Exit(exitCodeForError(err))
	}
}

func newRootCommand() *cobra.Command {
	cfg := RootConfig{}
	opts := runOptions{}
	cmd := &cobra.Command{
		Use:           "pkg-sandbox",
		Short:         "Install a package into a throwaway workspace and verify its lockfile integrity",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := initConfig(cfg.ConfigFile); err != nil {
				return err
			}
			setupLogging(viper.GetString("log_level"))
			cmd.SetContext(log.Logger.WithContext(cmd.Context()))
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runRun(cmd, opts)
		},
	}
	cmd.PersistentFlags().StringVar(&cfg.ConfigFile, "config", "", "Config file path")
	cmd.PersistentFlags().StringVar(&cfg.LogLevel, "log-level", "info", "Log level")
	_ = viper.BindPFlag("log_level", cmd.PersistentFlags().Lookup("log-level"))
	addRunFlags(cmd, &opts)

	cmd.AddCommand(newRunCommand())
	cmd.AddCommand(newVerifyCommand())
	cmd.AddCommand(newResetCommand())
	cmd.AddCommand(newCleanCommand())
	cmd.AddCommand(newInspectCommand())
	return cmd
}

func initConfig(configFile string) error {
	viper.SetEnvPrefix(envPrefix)
	viper.AutomaticEnv()
	viper.SetDefault("package", defaultPackage)
	viper.SetDefault("workspace", defaultWorkspace)
	viper.SetDefault("npm", adapters.DefaultNpmBinary)
	viper.SetDefault("timeout", adapters.DefaultInstallTimeout)

	if configFile != "" {
		viper.SetConfigFile(configFile)
		if err := viper.ReadInConfig(); err != nil {
			return errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg("failed to read config file").
				WithCause(err)
		}
		return nil
	}

	viper.SetConfigName("pkg-sandbox")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("$HOME/.config/pkg-sandbox")
	if err := viper.ReadInConfig(); err != nil {
		return nil
	}
	return nil
}

func setupLogging(level string) {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	switch level {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "warn":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}

// exitCodeForError maps run failures to one code per error kind; errors
// without a kind fall back to their errbuilder code.
func exitCodeForError(err error) int {
	switch types.KindOf(err) {
	case types.ErrorKindIO:
		return 10
	case types.ErrorKindInstallation:
		return 11
	case types.ErrorKindMissingArtifact:
		return 12
	case types.ErrorKindParse:
		return 13
	case types.ErrorKindLookup:
		return 14
	case types.ErrorKindMissingIntegrity:
		return 15
	}
	switch errbuilder.CodeOf(err) {
	case errbuilder.CodeInvalidArgument, errbuilder.CodeAlreadyExists:
		return 2
	case errbuilder.CodePermissionDenied:
		return 3
	case errbuilder.CodeFailedPrecondition:
		return 4
	case errbuilder.CodeNotFound, errbuilder.CodeInternal:
		return 5
	default:
		return 1
	}
}

func errorMessage(err error) string {
	var builder *errbuilder.ErrBuilder
	if errors.As(err, &builder) && strings.TrimSpace(builder.Msg) != "" {
		return builder.Msg
	}
	return err.Error()
}

// reportFailure prints the failed stage and the full error chain, which
// carries installer output for install failures.
func reportFailure(w io.Writer, err error) {
	message := errorMessage(err)
	var stageErr *types.StageError
	if errors.As(err, &stageErr) {
		fmt.Fprintf(w, "Verification FAILED at %s stage (%s): %s\n", stageErr.Stage(), stageErr.Kind, message)
	} else {
		fmt.Fprintf(w, "Error: %s\n", message)
	}
	if detail := err.Error(); detail != message {
		fmt.Fprintf(w, "  %s\n", detail)
	}
}
