package domain

import (
	"cmp"
	"slices"
	"strings"

	"github.com/pkg/errors"
)

type SortField string

const (
	SortByPID         SortField = "pid"
	SortByName        SortField = "name"
	SortByCPUPercent  SortField = "cpu_percent"
	SortByMemoryBytes SortField = "memory_bytes"
	SortByUser        SortField = "user"
	SortByStatus      SortField = "status"
	SortByStartTime   SortField = "start_time"
)

type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

type SortSpec struct {
	Field     SortField     `json:"field" yaml:"field"`
	Direction SortDirection `json:"direction" yaml:"direction"`
}

// DefaultSort is applied when the caller gives no SortSpec.
var DefaultSort = SortSpec{Field: SortByCPUPercent, Direction: SortDesc}

func (s SortSpec) Validate() error {
	switch s.Field {
	case SortByPID, SortByName, SortByCPUPercent, SortByMemoryBytes,
		SortByUser, SortByStatus, SortByStartTime:
	default:
		return errors.Wrapf(ErrInvalidArgument, "unknown sort field %q", s.Field)
	}
	switch s.Direction {
	case SortAsc, SortDesc:
	default:
		return errors.Wrapf(ErrInvalidArgument, "unknown sort direction %q", s.Direction)
	}
	return nil
}

func (s SortSpec) String() string {
	return string(s.Field) + ":" + string(s.Direction)
}

// ParseSortSpec parses "field" or "field:dir". The direction defaults to asc.
func ParseSortSpec(raw string) (SortSpec, error) {
	field, dir, found := strings.Cut(strings.TrimSpace(raw), ":")
	spec := SortSpec{
		Field:     SortField(strings.ToLower(field)),
		Direction: SortAsc,
	}
	if found {
		spec.Direction = SortDirection(strings.ToLower(dir))
	}
	if err := spec.Validate(); err != nil {
		return SortSpec{}, err
	}
	return spec, nil
}

// compareFloat treats NaN as equal to everything so a bad sample cannot
// break the ordering.
func compareFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func derefOr[T any](p *T, def T) T {
	if p == nil {
		return def
	}
	return *p
}

func compareBy(field SortField) func(a, b ProcessRecord) int {
	switch field {
	case SortByName:
		return func(a, b ProcessRecord) int {
			return strings.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
		}
	case SortByCPUPercent:
		return func(a, b ProcessRecord) int { return compareFloat(a.CPUPercent, b.CPUPercent) }
	case SortByMemoryBytes:
		return func(a, b ProcessRecord) int { return cmp.Compare(a.MemoryBytes, b.MemoryBytes) }
	case SortByUser:
		return func(a, b ProcessRecord) int { return strings.Compare(a.UserOrEmpty(), b.UserOrEmpty()) }
	case SortByStatus:
		return func(a, b ProcessRecord) int { return strings.Compare(string(a.Status), string(b.Status)) }
	case SortByStartTime:
		return func(a, b ProcessRecord) int {
			return cmp.Compare(derefOr(a.StartTime, 0), derefOr(b.StartTime, 0))
		}
	default:
		return func(a, b ProcessRecord) int { return cmp.Compare(a.PID, b.PID) }
	}
}

// ApplySort orders records in place. The sort is stable so equal keys keep
// their input order.
func ApplySort(records []ProcessRecord, spec SortSpec) {
	compare := compareBy(spec.Field)
	if spec.Direction == SortDesc {
		slices.SortStableFunc(records, func(a, b ProcessRecord) int { return compare(b, a) })
		return
	}
	slices.SortStableFunc(records, compare)
}
