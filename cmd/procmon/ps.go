package main

import (
	"github.com/hightemp/process-manager/monitor/domain"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

type psOptions struct {
	search    string
	user      string
	mine      bool
	system    bool
	nonSystem bool
	status    string
	cpuGt     float64
	memGt     uint64
	sort      string
	limit     int
}

// filter builds a domain.Filter from the flags the user actually set.
func (o *psOptions) filter(cmd *cobra.Command) (*domain.Filter, error) {
	flags := cmd.Flags()
	var (
		f   domain.Filter
		set bool
	)
	if flags.Changed("search") {
		f.Search, set = &o.search, true
	}
	if flags.Changed("user") {
		f.User, set = &o.user, true
	}
	if flags.Changed("mine") {
		f.MineOnly, set = &o.mine, true
	}
	if flags.Changed("system") {
		f.SystemOnly, set = &o.system, true
	}
	if flags.Changed("non-system") {
		f.NonSystemOnly, set = &o.nonSystem, true
	}
	if flags.Changed("status") {
		st, ok := domain.ParseStatus(o.status)
		if !ok {
			return nil, errors.Errorf("invalid status %q", o.status)
		}
		f.Status, set = &st, true
	}
	if flags.Changed("cpu-gt") {
		f.CPUGt, set = &o.cpuGt, true
	}
	if flags.Changed("mem-gt") {
		f.MemoryGtBytes, set = &o.memGt, true
	}
	if !set {
		return nil, nil
	}
	return &f, nil
}

func newPsCmd(root *rootOptions) *cobra.Command {
	opts := &psOptions{}
	cmd := &cobra.Command{
		Use:   "ps",
		Short: "List processes from the latest snapshot",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			format, err := root.format()
			if err != nil {
				return err
			}
			filter, err := opts.filter(cmd)
			if err != nil {
				return err
			}
			var sort *domain.SortSpec
			if opts.sort != "" {
				spec, err := domain.ParseSortSpec(opts.sort)
				if err != nil {
					return err
				}
				sort = &spec
			}

			records, err := root.client().ListProcesses(cmd.Context(), filter, sort)
			if err != nil {
				return err
			}
			if opts.limit > 0 && len(records) > opts.limit {
				records = records[:opts.limit]
			}
			return renderProcesses(cmd.OutOrStdout(), format, records)
		},
	}
	flags := cmd.Flags()
	flags.StringVar(&opts.search, "search", "", "case-insensitive match on name, path or pid")
	flags.StringVar(&opts.user, "user", "", "only processes owned by this user")
	flags.BoolVar(&opts.mine, "mine", false, "only processes owned by the server's user")
	flags.BoolVar(&opts.system, "system", false, "only system processes")
	flags.BoolVar(&opts.nonSystem, "non-system", false, "hide system processes")
	flags.StringVar(&opts.status, "status", "", "running, sleeping, stopped, zombie or unknown")
	flags.Float64Var(&opts.cpuGt, "cpu-gt", 0, "only processes above this cpu percentage")
	flags.Uint64Var(&opts.memGt, "mem-gt", 0, "only processes above this many resident bytes")
	flags.StringVar(&opts.sort, "sort", "", "sort as field[:asc|desc], e.g. memory_bytes:desc")
	flags.IntVar(&opts.limit, "limit", 0, "print at most this many rows")
	return cmd
}
