package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/hightemp/process-manager/monitor/client"
	"github.com/hightemp/process-manager/monitor/domain"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

type outputFormat string

const (
	formatTable outputFormat = "table"
	formatJSON  outputFormat = "json"
	formatYAML  outputFormat = "yaml"
)

func parseFormat(raw string) (outputFormat, error) {
	switch f := outputFormat(strings.ToLower(raw)); f {
	case formatTable, formatJSON, formatYAML:
		return f, nil
	}
	return "", errors.Errorf("unknown output format %q", raw)
}

// renderValue writes v as indented json or yaml.
func renderValue(w io.Writer, format outputFormat, v any) error {
	switch format {
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return errors.WithStack(err)
		}
		return enc.Close()
	default:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return errors.WithStack(enc.Encode(v))
	}
}

func newTable(w io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	return t
}

func renderProcesses(w io.Writer, format outputFormat, records []domain.ProcessRecord) error {
	if format != formatTable {
		if records == nil {
			records = []domain.ProcessRecord{}
		}
		return renderValue(w, format, records)
	}

	t := newTable(w)
	t.AppendHeader(table.Row{"PID", "Name", "Status", "CPU %", "Memory", "User", "Path"})
	for _, r := range records {
		t.AppendRow(table.Row{
			r.PID,
			r.Name,
			r.Status,
			strconv.FormatFloat(r.CPUPercent, 'f', 1, 64),
			formatBytes(r.MemoryBytes),
			orDash(r.User),
			orDash(r.Path),
		})
	}
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 4, Align: text.AlignRight},
		{Number: 5, Align: text.AlignRight},
	})
	t.AppendFooter(table.Row{"", fmt.Sprintf("%d processes", len(records))})
	t.Render()
	return nil
}

func renderDetails(w io.Writer, format outputFormat, d domain.ProcessDetails) error {
	if format != formatTable {
		return renderValue(w, format, d)
	}

	r := d.ProcessRecord
	t := newTable(w)
	t.AppendRows([]table.Row{
		{"PID", r.PID},
		{"Name", r.Name},
		{"Status", r.Status},
		{"CPU %", strconv.FormatFloat(r.CPUPercent, 'f', 1, 64)},
		{"Memory", formatBytes(r.MemoryBytes)},
		{"User", orDash(r.User)},
		{"Path", orDash(r.Path)},
		{"Parent PID", orDash(r.ParentPID)},
		{"Started", formatStart(r.StartTime)},
		{"Needs elevation", r.NeedsElevation},
		{"Command", strings.Join(r.Cmd, " ")},
		{"Threads", orDash(d.Threads)},
		{"Virtual memory", bytesOrDash(d.VirtualMemoryBytes)},
		{"Disk read", bytesOrDash(d.DiskReadBytes)},
		{"Disk written", bytesOrDash(d.DiskWrittenBytes)},
		{"Open files", orDash(d.OpenFilesCount)},
		{"Environment", fmt.Sprintf("%d variables", len(d.Environment))},
	})
	t.Render()
	return nil
}

func renderRefresh(w io.Writer, format outputFormat, cfg domain.RefreshConfig) error {
	if format != formatTable {
		return renderValue(w, format, cfg)
	}
	state := "running"
	if cfg.Paused {
		state = "paused"
	}
	_, err := fmt.Fprintf(w, "refresh every %dms (%s)\n", cfg.IntervalMs, state)
	return err
}

// renderEvent prints one summary line per change set, or the change set
// itself for json and yaml.
func renderEvent(w io.Writer, format outputFormat, ev client.Event, verbose bool) error {
	if format != formatTable {
		return renderValue(w, format, ev.Payload)
	}
	cs := ev.Payload
	at := time.UnixMilli(int64(cs.TimestampMs)).Format("15:04:05.000")
	if _, err := fmt.Fprintf(w, "%s #%d +%d ~%d -%d\n", at, ev.ID, len(cs.Added), len(cs.Updated), len(cs.Removed)); err != nil {
		return err
	}
	if !verbose {
		return nil
	}
	for _, r := range cs.Added {
		fmt.Fprintf(w, "  + %d %s\n", r.PID, r.Name)
	}
	for _, r := range cs.Updated {
		fmt.Fprintf(w, "  ~ %d %s cpu=%.1f mem=%s %s\n", r.PID, r.Name, r.CPUPercent, formatBytes(r.MemoryBytes), r.Status)
	}
	for _, pid := range cs.Removed {
		fmt.Fprintf(w, "  - %d\n", pid)
	}
	return nil
}

func orDash[T any](v *T) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprint(*v)
}

func bytesOrDash(v *uint64) string {
	if v == nil {
		return "-"
	}
	return formatBytes(*v)
}

func formatStart(secs *uint64) string {
	if secs == nil {
		return "-"
	}
	return time.Unix(int64(*secs), 0).Format(time.DateTime)
}

func formatBytes(n uint64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := uint64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
