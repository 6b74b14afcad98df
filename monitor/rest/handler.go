package rest

import (
	"context"
	"crypto/rsa"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/hightemp/process-manager/config"
	"github.com/hightemp/process-manager/monitor/domain"
	"github.com/hightemp/process-manager/monitor/notify"
	"github.com/hightemp/process-manager/pkg/logger"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"
)

// Version is reported by /version and overridden at link time.
var Version = "0.1.0"

// SuccessResponse wraps every successful API payload.
type SuccessResponse struct {
	Success   bool   `json:"success"`
	Data      any    `json:"data,omitempty"`
	Timestamp string `json:"timestamp"`
}

// ErrorResponse carries a tagged error: {"type": ..., "data": {...}}.
type ErrorResponse struct {
	Success bool            `json:"success"`
	Error   json.RawMessage `json:"error"`
	Message string          `json:"message"`
}

// ErrorDetail is the tagged shape used for failures that are not process
// errors, such as a malformed request body.
type ErrorDetail struct {
	Type string            `json:"type"`
	Data map[string]string `json:"data,omitempty"`
}

const (
	ErrTypeBadRequest   = "BadRequest"
	ErrTypeUnauthorized = "Unauthorized"
	ErrTypeInternal     = "Internal"
)

type Params struct {
	fx.In
	Svc      domain.Service
	Hub      *notify.Hub
	Auth     config.AuthConfig
	Gatherer prometheus.Gatherer `optional:"true"`
}

func NewHandler(params Params) (*Handler, error) {
	h := &Handler{
		Svc:       params.Svc,
		Hub:       params.Hub,
		Gatherer:  params.Gatherer,
		keepAlive: 15 * time.Second,
	}
	if params.Auth.Enable {
		key, err := jwt.ParseRSAPublicKeyFromPEM([]byte(params.Auth.RsaPublicKeyPem.Value()))
		if err != nil {
			return nil, errors.Wrap(err, "parse auth public key")
		}
		h.authKey = key
	}
	return h, nil
}

type Handler struct {
	Svc       domain.Service
	Hub       *notify.Hub
	Gatherer  prometheus.Gatherer
	authKey   *rsa.PublicKey
	keepAlive time.Duration
}

func (h *Handler) JSONResponse(ctx context.Context, w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	err := json.NewEncoder(w).Encode(data)
	if err != nil {
		logger.Logger(ctx).Error().Err(err).Msg("Failed to encode JSON response")
	}
}

// JSONBind decodes the request body into dst. An empty body leaves dst
// untouched.
func (h *Handler) JSONBind(r *http.Request, dst any) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	err := decoder.Decode(dst)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

func (h *Handler) SuccessResponse(ctx context.Context, w http.ResponseWriter, data any) {
	h.JSONResponse(ctx, w, http.StatusOK, SuccessResponse{
		Success:   true,
		Data:      data,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

func (h *Handler) ErrorResponse(ctx context.Context, w http.ResponseWriter, status int, errType string, errMsg string) {
	detail, _ := json.Marshal(ErrorDetail{Type: errType, Data: map[string]string{"message": errMsg}})
	h.JSONResponse(ctx, w, status, ErrorResponse{
		Success: false,
		Error:   detail,
		Message: errMsg,
	})
}

// HandleError maps service errors to HTTP statuses and writes the envelope.
func (h *Handler) HandleError(ctx context.Context, w http.ResponseWriter, err error) {
	if errors.Is(err, domain.ErrInvalidArgument) {
		h.ErrorResponse(ctx, w, http.StatusBadRequest, ErrTypeBadRequest, err.Error())
		return
	}
	appErr := domain.AsAppError(err)
	detail, mErr := json.Marshal(appErr)
	if mErr != nil {
		h.ErrorResponse(ctx, w, http.StatusInternalServerError, ErrTypeInternal, err.Error())
		return
	}
	h.JSONResponse(ctx, w, StatusForKind(appErr.Kind), ErrorResponse{
		Success: false,
		Error:   detail,
		Message: appErr.Error(),
	})
}

func StatusForKind(kind domain.ErrorKind) int {
	switch kind {
	case domain.KindNotFound:
		return http.StatusNotFound
	case domain.KindPermissionDenied:
		return http.StatusForbidden
	case domain.KindInvalidPid:
		return http.StatusBadRequest
	case domain.KindUnsupported:
		return http.StatusNotImplemented
	default:
		return http.StatusInternalServerError
	}
}

func (h *Handler) Version(w http.ResponseWriter, r *http.Request) {
	response := map[string]string{
		"message": "procmon process monitor",
		"version": Version,
		"events":  domain.EventProcessesUpdate,
	}
	h.JSONResponse(r.Context(), w, http.StatusOK, response)
}

func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	response := map[string]any{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"service":   "procmon",
	}
	h.JSONResponse(r.Context(), w, http.StatusOK, response)
}
