package main

import (
	"fmt"
	"strconv"

	"github.com/hightemp/process-manager/monitor/domain"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func newDetailsCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "details <pid>",
		Short: "Show the extended view of one process",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := root.format()
			if err != nil {
				return err
			}
			pid, err := parsePID(args[0])
			if err != nil {
				return err
			}
			details, err := root.client().ProcessDetails(cmd.Context(), pid)
			if err != nil {
				return err
			}
			return renderDetails(cmd.OutOrStdout(), format, details)
		},
	}
}

func newKillCmd(root *rootOptions) *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "kill <pid>",
		Short: "Terminate a process, or kill it with --force",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pid, err := parsePID(args[0])
			if err != nil {
				return err
			}
			mode := domain.KillModeTerminate
			if force {
				mode = domain.KillModeKill
			}
			if err := root.client().Terminate(cmd.Context(), pid, mode); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "sent %s to %d\n", mode, pid)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&force, "force", "f", false, "kill instead of asking the process to exit")
	return cmd
}

func newOpenFolderCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "open-folder <pid>",
		Short: "Open the directory holding a process executable on the server's desktop",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pid, err := parsePID(args[0])
			if err != nil {
				return err
			}
			return root.client().OpenContainingFolder(cmd.Context(), pid)
		},
	}
}

func newCopyCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "copy <text>",
		Short: "Place text on the server's clipboard",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return root.client().CopyText(cmd.Context(), args[0])
		},
	}
}

func newPauseCmd(root *rootOptions, paused bool) *cobra.Command {
	use, short := "resume", "Resume periodic refresh"
	if paused {
		use, short = "pause", "Pause periodic refresh"
	}
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			format, err := root.format()
			if err != nil {
				return err
			}
			cfg, err := root.client().SetPaused(cmd.Context(), paused)
			if err != nil {
				return err
			}
			return renderRefresh(cmd.OutOrStdout(), format, cfg)
		},
	}
}

func newIntervalCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "interval <ms>",
		Short: "Set the refresh interval in milliseconds",
		Long:  fmt.Sprintf("Set the refresh interval. Values are clamped to [%d, %d].", domain.MinIntervalMs, domain.MaxIntervalMs),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := root.format()
			if err != nil {
				return err
			}
			ms, err := strconv.ParseUint(args[0], 10, 64)
			if err != nil {
				return errors.Errorf("invalid interval %q", args[0])
			}
			cfg, err := root.client().SetRefreshInterval(cmd.Context(), ms)
			if err != nil {
				return err
			}
			return renderRefresh(cmd.OutOrStdout(), format, cfg)
		},
	}
}

func newConfigCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Show the refresh settings in effect",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			format, err := root.format()
			if err != nil {
				return err
			}
			cfg, err := root.client().RefreshConfig(cmd.Context())
			if err != nil {
				return err
			}
			return renderRefresh(cmd.OutOrStdout(), format, cfg)
		},
	}
}
