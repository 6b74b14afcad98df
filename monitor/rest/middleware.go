package rest

import (
	"bytes"
	"crypto/rsa"
	"fmt"
	"net/http"
	"runtime/debug"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/hightemp/process-manager/pkg/logger"
	"github.com/rs/xid"
)

// Claims represents JWT token claims
type Claims struct {
	ClientID string `json:"client_id"`
	jwt.RegisteredClaims
}

// AuthMiddleware requires a valid RS256 bearer token when auth is enabled
// and is a pass-through otherwise.
func (h *Handler) AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h.authKey == nil || r.Method == http.MethodOptions {
			next.ServeHTTP(w, r)
			return
		}
		ctx := r.Context()
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			h.ErrorResponse(ctx, w, http.StatusUnauthorized, ErrTypeUnauthorized, "Authorization header is required")
			return
		}

		const bearerSchema = "Bearer "
		if !strings.HasPrefix(authHeader, bearerSchema) {
			h.ErrorResponse(ctx, w, http.StatusUnauthorized, ErrTypeUnauthorized, "Authorization header must start with 'Bearer '")
			return
		}

		claims, err := validateJWT(h.authKey, authHeader[len(bearerSchema):])
		if err != nil {
			h.ErrorResponse(ctx, w, http.StatusUnauthorized, ErrTypeUnauthorized, "Invalid or expired token: "+err.Error())
			return
		}

		logger.Logger(ctx).Debug().Str("client_id", claims.ClientID).Msg("JWT token validated successfully")
		next.ServeHTTP(w, r)
	})
}

// validateJWT validates a JWT token and returns the claims
func validateJWT(key *rsa.PublicKey, tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodRSA); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return key, nil
	})
	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}
	return nil, fmt.Errorf("invalid token")
}

func LoggerMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		reqID := r.Header.Get("X-Request-ID")
		if reqID == "" {
			reqID = xid.New().String()
		}
		start := time.Now()
		log := logger.Logger(ctx).With().
			Str("method", r.Method).Str("req_id", reqID).
			Str("url", r.URL.String()).Logger()

		defer func() {
			if err := recover(); err != nil {
				log.Error().Interface("panic", err).Msgf("Recovered from panic, stack trace: %s", string(debug.Stack()))
				http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			}
		}()

		ctx = log.WithContext(ctx)
		r = r.WithContext(ctx)
		w.Header().Set("X-Request-ID", reqID)
		responseWriter := NewResponseWriter(w)
		next.ServeHTTP(responseWriter, r)
		log = log.With().
			Int("cost_msec", int(time.Since(start).Milliseconds())).
			Int("status_code", responseWriter.statusCode).
			Logger()
		switch {
		case responseWriter.statusCode >= 500:
			log.Error().Str("response_body", responseWriter.responseBody.String()).Msg("Request completed with server error")
		case responseWriter.statusCode >= 400:
			log.Warn().Str("response_body", responseWriter.responseBody.String()).Msg("Request completed with client error")
		default:
			log.Info().Msg("Request completed successfully")
		}
	})
}

// responseWriter records the status code and, for error responses, the body.
// It forwards Flush so event streams work behind the logger.
type responseWriter struct {
	http.ResponseWriter
	responseBody bytes.Buffer
	statusCode   int
}

func NewResponseWriter(w http.ResponseWriter) *responseWriter {
	return &responseWriter{
		ResponseWriter: w,
		statusCode:     http.StatusOK,
	}
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	if rw.statusCode >= 400 {
		rw.responseBody.Write(b)
	}
	return rw.ResponseWriter.Write(b)
}

func (rw *responseWriter) Flush() {
	if f, ok := rw.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

func (rw *responseWriter) Unwrap() http.ResponseWriter {
	return rw.ResponseWriter
}
