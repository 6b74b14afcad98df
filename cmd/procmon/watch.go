package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/hightemp/process-manager/monitor/client"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func newWatchCmd(root *rootOptions) *cobra.Command {
	var verbose bool
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Print every change set the server publishes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			format, err := root.format()
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			c := root.client()
			if err := c.Health(ctx); err != nil {
				return errors.Wrapf(err, "server %s is not reachable", root.server)
			}
			out := cmd.OutOrStdout()
			err = c.Watch(ctx, func(ev client.Event) error {
				return renderEvent(out, format, ev, verbose)
			})
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		},
	}
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "list every added, updated and removed process")
	return cmd
}
