package rest

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func (h *Handler) SetupRoutes(engine *echo.Echo) {
	engine.GET("/health", h.echoHandler(h.HealthCheck))
	engine.GET("/version", h.echoHandler(h.Version))
	gatherer := h.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	engine.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	auth := echo.WrapMiddleware(h.AuthMiddleware)
	api := engine.Group("/api", echo.WrapMiddleware(LoggerMiddleware))
	// v1 routes
	{
		apiV1 := api.Group("/v1")
		// process query routes
		apiV1.GET("/processes", h.echoHandler(h.ListProcesses))
		apiV1.POST("/processes/query", h.echoHandler(h.QueryProcesses))
		apiV1.GET("/processes/:pid", h.echoHandlerWithParams(h.GetProcessDetails))

		// process control routes
		apiV1.POST("/processes/:pid/terminate", h.echoHandlerWithParams(h.TerminateProcess), auth)
		apiV1.POST("/processes/:pid/open-folder", h.echoHandlerWithParams(h.OpenContainingFolder), auth)
		apiV1.POST("/clipboard", h.echoHandler(h.CopyText), auth)

		// refresh settings routes
		apiV1.GET("/settings/refresh", h.echoHandler(h.GetRefreshSettings))
		apiV1.PUT("/settings/refresh/interval", h.echoHandler(h.SetRefreshInterval), auth)
		apiV1.PUT("/settings/refresh/paused", h.echoHandler(h.SetPaused), auth)

		// notifications
		apiV1.GET("/events", h.echoHandler(h.StreamEvents))
	}
}

func (h *Handler) echoHandler(handlerFunc func(w http.ResponseWriter, r *http.Request)) echo.HandlerFunc {
	return echo.WrapHandler(http.HandlerFunc(handlerFunc))
}

// echoHandlerWithParams wraps a handler function and injects path parameters into request context
func (h *Handler) echoHandlerWithParams(handlerFunc func(w http.ResponseWriter, r *http.Request)) echo.HandlerFunc {
	return func(c echo.Context) error {
		r := c.Request()
		for _, name := range c.ParamNames() {
			r = r.WithContext(context.WithValue(r.Context(), pathParamKey(name), c.Param(name)))
		}
		handlerFunc(c.Response(), r)
		return nil
	}
}

type pathParamKey string

// GetPathParam retrieves a path parameter from request context
func (h *Handler) GetPathParam(r *http.Request, name string) string {
	if val, ok := r.Context().Value(pathParamKey(name)).(string); ok {
		return val
	}
	return ""
}
