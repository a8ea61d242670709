// Package cli wires the cobra commands of the interactions binary: a one-shot
// check that prints a plain-text report, and an HTTP service.
package cli

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/giygas/medscape-interactions/config"
	"github.com/giygas/medscape-interactions/logging"
)

// ErrReported marks a failure whose message was already written to the output
var ErrReported = errors.New("error already reported")

// Options holds CLI-level flags shared by every command.
type Options struct {
	EnvFile  string
	LogLevel string
}

// state carries the configuration loaded before a command runs
type state struct {
	opts Options
	cfg  *config.Config
}

// NewRootCmd wires the cobra root command.
func NewRootCmd() *cobra.Command {
	st := &state{}
	checkCmd := newCheckCommand(st)

	root := &cobra.Command{
		Use:   "interactions [medication...]",
		Short: "Check drug interactions against the Medscape catalog",
		Long: "interactions resolves medication names to catalog identifiers, requests their " +
			"pairwise interactions in one call and prints them grouped by severity.",
		Args: cobra.ArbitraryArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return st.load(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = logging.Close()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return cmd.Help()
			}
			return checkCmd.RunE(cmd, args)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&st.opts.EnvFile, "env-file", ".env", "Environment file to load before reading configuration")
	root.PersistentFlags().StringVar(&st.opts.LogLevel, "log-level", "", "Override LOG_LEVEL (debug, info, warn, error)")

	root.AddCommand(checkCmd)
	root.AddCommand(newServeCommand(st))
	return root
}

// load reads the env file, the configuration and starts the logger
func (st *state) load(cmd *cobra.Command) error {
	if err := godotenv.Load(st.opts.EnvFile); err != nil {
		// The default file is optional
		if cmd.Flags().Changed("env-file") || !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("loading %s: %w", st.opts.EnvFile, err)
		}
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	if st.opts.LogLevel != "" {
		cfg.LogLevel = st.opts.LogLevel
	}

	logging.InitLogger(cfg.LogLevel, cfg.LogDir)
	st.cfg = cfg
	return nil
}
