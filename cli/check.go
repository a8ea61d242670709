package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/giygas/medscape-interactions/checker"
	"github.com/giygas/medscape-interactions/medscape"
)

func newCheckCommand(st *state) *cobra.Command {
	var workers int

	cmd := &cobra.Command{
		Use:   "check [medication...]",
		Short: "Print the interactions between the given medications",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if workers < 1 {
				workers = st.cfg.ResolveWorkers
			}

			client := medscape.NewClientFromConfig(st.cfg)
			c := checker.NewChecker(client, client, workers)

			out := cmd.OutOrStdout()
			if err := c.Run(cmd.Context(), args, out); err != nil {
				fmt.Fprintf(out, "Error retrieving interactions: %v\n", err)
				return ErrReported
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&workers, "workers", "w", 0, "Concurrent identifier lookups (default from RESOLVE_WORKERS)")

	return cmd
}
