package main

import (
	"os"
	"strconv"

	"github.com/hightemp/process-manager/monitor/client"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

const defaultServer = "127.0.0.1:7420"

type rootOptions struct {
	server string
	token  string
	output string
}

func (o *rootOptions) client() *client.Client {
	var opts []client.Option
	if o.token != "" {
		opts = append(opts, client.WithToken(o.token))
	}
	return client.New(o.server, opts...)
}

func (o *rootOptions) format() (outputFormat, error) {
	return parseFormat(o.output)
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:           "procmon",
		Short:         "Live process monitor with a REST and event-stream API",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	server := os.Getenv("PROCMON_SERVER")
	if server == "" {
		server = defaultServer
	}
	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.server, "server", server, "address of a running procmon server")
	flags.StringVar(&opts.token, "token", os.Getenv("PROCMON_TOKEN"), "bearer token for control endpoints")
	flags.StringVarP(&opts.output, "output", "o", string(formatTable), "output format: table, json or yaml")

	cmd.AddCommand(
		newServeCmd(),
		newPsCmd(opts),
		newDetailsCmd(opts),
		newKillCmd(opts),
		newOpenFolderCmd(opts),
		newCopyCmd(opts),
		newPauseCmd(opts, true),
		newPauseCmd(opts, false),
		newIntervalCmd(opts),
		newConfigCmd(opts),
		newWatchCmd(opts),
	)
	return cmd
}

func parsePID(raw string) (uint32, error) {
	pid, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, errors.Errorf("invalid pid %q", raw)
	}
	return uint32(pid), nil
}
