package domain

import (
	"encoding/json"
	"fmt"

	"github.com/pkg/errors"
)

// ErrInvalidArgument marks malformed requests such as an unknown sort field.
var ErrInvalidArgument = errors.New("invalid argument")

type ErrorKind string

const (
	KindNotFound         ErrorKind = "NotFound"
	KindPermissionDenied ErrorKind = "PermissionDenied"
	KindInvalidPid       ErrorKind = "InvalidPid"
	KindOsError          ErrorKind = "OsError"
	KindUnsupported      ErrorKind = "Unsupported"
)

// AppError is the error surfaced to API consumers. It serializes as
// {"type": <kind>, "data": {...}} with only the fields the kind carries.
type AppError struct {
	Kind    ErrorKind
	PID     uint32
	Message string
	Feature string
}

func (e *AppError) Error() string {
	switch e.Kind {
	case KindNotFound:
		return fmt.Sprintf("process %d not found", e.PID)
	case KindPermissionDenied:
		return fmt.Sprintf("permission denied for process %d: %s", e.PID, e.Message)
	case KindInvalidPid:
		return fmt.Sprintf("invalid pid: %d", e.PID)
	case KindUnsupported:
		return fmt.Sprintf("feature not supported on this OS: %s", e.Feature)
	default:
		return fmt.Sprintf("os error: %s", e.Message)
	}
}

type appErrorJSON struct {
	Type ErrorKind       `json:"type"`
	Data json.RawMessage `json:"data"`
}

type appErrorData struct {
	PID     *uint32 `json:"pid,omitempty"`
	Message *string `json:"message,omitempty"`
	Feature *string `json:"feature,omitempty"`
}

func (e *AppError) data() appErrorData {
	var d appErrorData
	switch e.Kind {
	case KindNotFound, KindInvalidPid:
		d.PID = &e.PID
	case KindPermissionDenied:
		d.PID = &e.PID
		d.Message = &e.Message
	case KindUnsupported:
		d.Feature = &e.Feature
	default:
		d.Message = &e.Message
	}
	return d
}

func (e *AppError) MarshalJSON() ([]byte, error) {
	data, err := json.Marshal(e.data())
	if err != nil {
		return nil, err
	}
	return json.Marshal(appErrorJSON{Type: e.Kind, Data: data})
}

func (e *AppError) UnmarshalJSON(b []byte) error {
	var raw appErrorJSON
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	var d appErrorData
	if len(raw.Data) > 0 {
		if err := json.Unmarshal(raw.Data, &d); err != nil {
			return err
		}
	}
	*e = AppError{Kind: raw.Type}
	if d.PID != nil {
		e.PID = *d.PID
	}
	if d.Message != nil {
		e.Message = *d.Message
	}
	if d.Feature != nil {
		e.Feature = *d.Feature
	}
	return nil
}

func ErrNotFoundPID(pid uint32) *AppError {
	return &AppError{Kind: KindNotFound, PID: pid}
}

func ErrPermissionDenied(pid uint32, message string) *AppError {
	return &AppError{Kind: KindPermissionDenied, PID: pid, Message: message}
}

func ErrInvalidPid(pid uint32) *AppError {
	return &AppError{Kind: KindInvalidPid, PID: pid}
}

func ErrOs(message string) *AppError {
	return &AppError{Kind: KindOsError, Message: message}
}

func ErrUnsupported(feature string) *AppError {
	return &AppError{Kind: KindUnsupported, Feature: feature}
}

// AsAppError unwraps err to an *AppError. Errors of any other type are
// reported as OsError so callers always get a structured value.
func AsAppError(err error) *AppError {
	if err == nil {
		return nil
	}
	var appErr *AppError
	if errors.As(errors.Cause(err), &appErr) {
		return appErr
	}
	if errors.As(err, &appErr) {
		return appErr
	}
	return ErrOs(err.Error())
}
