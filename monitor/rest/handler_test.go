package rest_test

import (
	"bufio"
	"bytes"
	"context"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/json"
	"encoding/pem"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/hightemp/process-manager/config"
	"github.com/hightemp/process-manager/monitor/domain"
	"github.com/hightemp/process-manager/monitor/notify"
	"github.com/hightemp/process-manager/monitor/rest"
	"github.com/hightemp/process-manager/monitor/service"
	"github.com/hightemp/process-manager/monitor/store"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/fx"
)

func TestHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(HandlerTestSuite))
}

type HandlerTestSuite struct {
	suite.Suite
	Handler    *rest.Handler
	Engine     *echo.Echo
	Store      *store.Store
	Hub        *notify.Hub
	Collector  *domain.MockCollector
	Terminator *domain.MockTerminator
	Opener     *domain.MockOpener
	Clipboard  *domain.MockClipboard
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   json.RawMessage `json:"error"`
	Message string          `json:"message"`
}

func ptr[T any](v T) *T { return &v }

func seededStore() *store.Store {
	st := store.New(domain.DefaultRefreshConfig())
	st.Replace(domain.Snapshot{
		1:    {PID: 1, Name: "init", Status: domain.StatusSleeping, CPUPercent: 0.1, MemoryBytes: 100, User: ptr("root"), Path: ptr("/sbin/init")},
		1200: {PID: 1200, Name: "chrome", Status: domain.StatusRunning, CPUPercent: 35, MemoryBytes: 900, User: ptr("alice"), Path: ptr("/opt/google/chrome/chrome")},
		1300: {PID: 1300, Name: "bash", Status: domain.StatusSleeping, CPUPercent: 2, MemoryBytes: 50, User: ptr("alice")},
	}, "alice")
	return st
}

func newEngine(t require.TestingT, auth config.AuthConfig, deps fx.Option) *rest.Handler {
	var handler *rest.Handler
	app := fx.New(
		fx.NopLogger,
		fx.Supply(auth),
		deps,
		fx.Provide(service.NewService),
		fx.Provide(rest.NewHandler),
		fx.Populate(&handler),
	)
	require.NoError(t, app.Err())
	return handler
}

func (suite *HandlerTestSuite) SetupTest() {
	suite.Store = seededStore()
	suite.Hub = notify.NewHub(8)
	suite.Collector = domain.NewMockCollector(suite.T())
	suite.Terminator = domain.NewMockTerminator(suite.T())
	suite.Opener = domain.NewMockOpener(suite.T())
	suite.Clipboard = domain.NewMockClipboard(suite.T())

	suite.Handler = newEngine(suite.T(), config.AuthConfig{}, fx.Options(
		fx.Supply(suite.Store, suite.Hub),
		fx.Provide(
			func() domain.Collector { return suite.Collector },
			func() domain.Terminator { return suite.Terminator },
			func() domain.Opener { return suite.Opener },
			func() domain.Clipboard { return suite.Clipboard },
		),
	))
	suite.Require().NotNil(suite.Handler, "Handler should not be nil")
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	suite.Engine = e
	suite.Handler.SetupRoutes(e)
}

func (suite *HandlerTestSuite) do(method, target string, body string) (*httptest.ResponseRecorder, envelope) {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	suite.Engine.ServeHTTP(rec, req)

	var env envelope
	suite.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	return rec, env
}

func (suite *HandlerTestSuite) processPIDs(data json.RawMessage) []uint32 {
	var records []domain.ProcessRecord
	suite.Require().NoError(json.Unmarshal(data, &records))
	pids := make([]uint32, 0, len(records))
	for _, r := range records {
		pids = append(pids, r.PID)
	}
	return pids
}

func (suite *HandlerTestSuite) TestHealthCheck() {
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	suite.Engine.ServeHTTP(rec, req)

	suite.Equal(http.StatusOK, rec.Code, "Expected status OK")
	var resp map[string]any
	suite.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
	suite.Equal("healthy", resp["status"], "Expected status to be healthy")
}

func (suite *HandlerTestSuite) TestMetricsEndpoint() {
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	suite.Engine.ServeHTTP(rec, req)
	suite.Equal(http.StatusOK, rec.Code)
}

func (suite *HandlerTestSuite) TestListProcessesDefaultOrder() {
	rec, env := suite.do(http.MethodGet, "/api/v1/processes", "")
	suite.Equal(http.StatusOK, rec.Code)
	suite.True(env.Success)
	suite.Equal([]uint32{1200, 1300, 1}, suite.processPIDs(env.Data))
	suite.NotEmpty(rec.Header().Get("X-Request-ID"))
}

func (suite *HandlerTestSuite) TestListProcessesQueryString() {
	rec, env := suite.do(http.MethodGet, "/api/v1/processes?mine_only=true&sort=name:asc", "")
	suite.Equal(http.StatusOK, rec.Code)
	suite.Equal([]uint32{1300, 1200}, suite.processPIDs(env.Data))

	rec, env = suite.do(http.MethodGet, "/api/v1/processes?status=sleeping&cpu_gt=1", "")
	suite.Equal(http.StatusOK, rec.Code)
	suite.Equal([]uint32{1300}, suite.processPIDs(env.Data))
}

func (suite *HandlerTestSuite) TestListProcessesRejectsBadQuery() {
	for _, target := range []string{
		"/api/v1/processes?sort=colour:asc",
		"/api/v1/processes?mine_only=perhaps",
		"/api/v1/processes?status=dancing",
		"/api/v1/processes?memory_gt_bytes=-1",
	} {
		rec, env := suite.do(http.MethodGet, target, "")
		suite.Equal(http.StatusBadRequest, rec.Code, target)
		suite.False(env.Success)
		suite.JSONEq(`"BadRequest"`, string(mustField(suite.T(), env.Error, "type")))
	}
}

func mustField(t *testing.T, raw json.RawMessage, field string) json.RawMessage {
	var m map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raw, &m))
	return m[field]
}

func (suite *HandlerTestSuite) TestQueryProcessesBody() {
	rec, env := suite.do(http.MethodPost, "/api/v1/processes/query",
		`{"filter":{"search":"CHROME"},"sort":{"field":"pid","direction":"asc"}}`)
	suite.Equal(http.StatusOK, rec.Code)
	suite.Equal([]uint32{1200}, suite.processPIDs(env.Data))

	rec, env = suite.do(http.MethodPost, "/api/v1/processes/query", "")
	suite.Equal(http.StatusOK, rec.Code)
	suite.Len(suite.processPIDs(env.Data), 3)

	rec, _ = suite.do(http.MethodPost, "/api/v1/processes/query", `{"filter":`)
	suite.Equal(http.StatusBadRequest, rec.Code)
}

func (suite *HandlerTestSuite) TestQueryProcessesValidatesStatus() {
	rec, env := suite.do(http.MethodPost, "/api/v1/processes/query", `{"filter":{"status":"Running"}}`)
	suite.Equal(http.StatusOK, rec.Code)
	suite.Equal([]uint32{1200}, suite.processPIDs(env.Data))

	for _, body := range []string{
		`{"filter":{"status":"bogus"}}`,
		`{"filter":{"status":""}}`,
		`{"filter":{"status":3}}`,
	} {
		rec, env = suite.do(http.MethodPost, "/api/v1/processes/query", body)
		suite.Equal(http.StatusBadRequest, rec.Code, body)
		suite.False(env.Success)
		suite.JSONEq(`"BadRequest"`, string(mustField(suite.T(), env.Error, "type")))
	}
}

func (suite *HandlerTestSuite) TestProcessDetails() {
	suite.Collector.EXPECT().Details(mock.Anything, uint32(1200)).
		Return(domain.ExtendedInfo{Threads: ptr(uint32(12))}, nil).Once()

	rec, env := suite.do(http.MethodGet, "/api/v1/processes/1200", "")
	suite.Equal(http.StatusOK, rec.Code)
	var details map[string]json.RawMessage
	suite.Require().NoError(json.Unmarshal(env.Data, &details))
	suite.JSONEq(`12`, string(details["threads"]))
	suite.Contains(string(details["dto"]), `"name":"chrome"`)
}

func (suite *HandlerTestSuite) TestProcessDetailsErrors() {
	rec, env := suite.do(http.MethodGet, "/api/v1/processes/99999", "")
	suite.Equal(http.StatusNotFound, rec.Code)
	suite.JSONEq(`{"type":"NotFound","data":{"pid":99999}}`, string(env.Error))
	suite.Equal("process 99999 not found", env.Message)

	rec, _ = suite.do(http.MethodGet, "/api/v1/processes/abc", "")
	suite.Equal(http.StatusBadRequest, rec.Code)
}

func (suite *HandlerTestSuite) TestTerminate() {
	suite.Terminator.EXPECT().Terminate(uint32(1200), domain.KillModeKill).Return(nil).Once()
	rec, env := suite.do(http.MethodPost, "/api/v1/processes/1200/terminate", `{"mode":"kill"}`)
	suite.Equal(http.StatusOK, rec.Code)
	suite.JSONEq(`{"pid":1200,"mode":"kill"}`, string(env.Data))

	suite.Terminator.EXPECT().Terminate(uint32(1300), domain.KillModeTerminate).Return(nil).Once()
	rec, _ = suite.do(http.MethodPost, "/api/v1/processes/1300/terminate", "")
	suite.Equal(http.StatusOK, rec.Code)
}

func (suite *HandlerTestSuite) TestTerminateErrors() {
	rec, env := suite.do(http.MethodPost, "/api/v1/processes/99999/terminate", `{"mode":"terminate"}`)
	suite.Equal(http.StatusNotFound, rec.Code)
	suite.JSONEq(`{"type":"NotFound","data":{"pid":99999}}`, string(env.Error))

	rec, env = suite.do(http.MethodPost, "/api/v1/processes/0/terminate", `{"mode":"terminate"}`)
	suite.Equal(http.StatusBadRequest, rec.Code)
	suite.JSONEq(`{"type":"InvalidPid","data":{"pid":0}}`, string(env.Error))

	rec, _ = suite.do(http.MethodPost, "/api/v1/processes/1200/terminate", `{"mode":"explode"}`)
	suite.Equal(http.StatusBadRequest, rec.Code)

	suite.Terminator.EXPECT().Terminate(uint32(1), domain.KillModeTerminate).
		Return(domain.ErrPermissionDenied(1, "insufficient permissions to signal this process")).Once()
	rec, env = suite.do(http.MethodPost, "/api/v1/processes/1/terminate", `{"mode":"terminate"}`)
	suite.Equal(http.StatusForbidden, rec.Code)
	suite.JSONEq(`"PermissionDenied"`, string(mustField(suite.T(), env.Error, "type")))

	suite.Terminator.EXPECT().Terminate(uint32(1300), domain.KillModeKill).
		Return(domain.ErrUnsupported("terminate")).Once()
	rec, _ = suite.do(http.MethodPost, "/api/v1/processes/1300/terminate", `{"mode":"kill"}`)
	suite.Equal(http.StatusNotImplemented, rec.Code)
}

func (suite *HandlerTestSuite) TestOpenFolder() {
	suite.Opener.EXPECT().Open("/opt/google/chrome").Return(nil).Once()
	rec, _ := suite.do(http.MethodPost, "/api/v1/processes/1200/open-folder", "")
	suite.Equal(http.StatusOK, rec.Code)

	rec, _ = suite.do(http.MethodPost, "/api/v1/processes/1300/open-folder", "")
	suite.Equal(http.StatusNotFound, rec.Code)
}

func (suite *HandlerTestSuite) TestRefreshSettings() {
	rec, env := suite.do(http.MethodGet, "/api/v1/settings/refresh", "")
	suite.Equal(http.StatusOK, rec.Code)
	suite.JSONEq(`{"interval_ms":1000,"paused":false}`, string(env.Data))

	rec, env = suite.do(http.MethodPut, "/api/v1/settings/refresh/interval", `{"ms":50}`)
	suite.Equal(http.StatusOK, rec.Code)
	suite.JSONEq(`{"interval_ms":200,"paused":false}`, string(env.Data))

	rec, env = suite.do(http.MethodPut, "/api/v1/settings/refresh/interval", `{"ms":999999}`)
	suite.Equal(http.StatusOK, rec.Code)
	suite.JSONEq(`{"interval_ms":10000,"paused":false}`, string(env.Data))

	rec, env = suite.do(http.MethodPut, "/api/v1/settings/refresh/paused", `{"paused":true}`)
	suite.Equal(http.StatusOK, rec.Code)
	suite.JSONEq(`{"interval_ms":10000,"paused":true}`, string(env.Data))
	suite.True(suite.Store.Config().Paused)

	rec, _ = suite.do(http.MethodPut, "/api/v1/settings/refresh/interval", `{}`)
	suite.Equal(http.StatusBadRequest, rec.Code)
	rec, _ = suite.do(http.MethodPut, "/api/v1/settings/refresh/paused", `{"paused":"yes"}`)
	suite.Equal(http.StatusBadRequest, rec.Code)
}

func (suite *HandlerTestSuite) TestClipboard() {
	suite.Clipboard.EXPECT().WriteText("1200").Return(nil).Once()
	rec, _ := suite.do(http.MethodPost, "/api/v1/clipboard", `{"text":"1200"}`)
	suite.Equal(http.StatusOK, rec.Code)
}

func (suite *HandlerTestSuite) TestEventStream() {
	srv := httptest.NewServer(suite.Engine)
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+"/api/v1/events", nil)
	suite.Require().NoError(err)
	resp, err := http.DefaultClient.Do(req)
	suite.Require().NoError(err)
	defer resp.Body.Close()
	suite.Equal("text/event-stream", resp.Header.Get("Content-Type"))

	suite.Require().Eventually(func() bool { return suite.Hub.Subscribers() == 1 }, 2*time.Second, 10*time.Millisecond)
	cs := domain.ChangeSet{Removed: []uint32{1300}, TimestampMs: 77}
	suite.Require().NoError(suite.Hub.Publish(ctx, domain.EventProcessesUpdate, cs))

	reader := bufio.NewReader(resp.Body)
	var frame bytes.Buffer
	for {
		line, err := reader.ReadString('\n')
		suite.Require().NoError(err)
		if strings.HasPrefix(line, ":") || (line == "\n" && frame.Len() == 0) {
			continue
		}
		if line == "\n" {
			break
		}
		frame.WriteString(line)
	}
	suite.Equal("id: 1\nevent: processes:update\n"+
		`data: {"added":[],"updated":[],"removed":[1300],"timestamp_ms":77}`+"\n", frame.String())
}

func TestAuthGuardsControlEndpoints(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	der, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	require.NoError(t, err)
	pubPEM := pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: der})

	st := seededStore()
	handler := newEngine(t, config.AuthConfig{Enable: true, RsaPublicKeyPem: config.SecretValue(pubPEM)}, fx.Options(
		fx.Supply(st, notify.NewHub(1)),
		fx.Provide(
			func() domain.Collector { return domain.NewMockCollector(t) },
			func() domain.Terminator { return domain.NewMockTerminator(t) },
			func() domain.Opener { return domain.NewMockOpener(t) },
			func() domain.Clipboard { return domain.NewMockClipboard(t) },
		),
	))
	e := echo.New()
	handler.SetupRoutes(e)

	call := func(token string) int {
		req := httptest.NewRequest(http.MethodPut, "/api/v1/settings/refresh/paused", strings.NewReader(`{"paused":true}`))
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		return rec.Code
	}

	require.Equal(t, http.StatusUnauthorized, call(""))
	require.Equal(t, http.StatusUnauthorized, call("not-a-jwt"))
	require.False(t, st.Config().Paused)

	signed, err := jwt.NewWithClaims(jwt.SigningMethodRS256, rest.Claims{
		ClientID: "cli",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
		},
	}).SignedString(key)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, call(signed))
	require.True(t, st.Config().Paused)

	// Read endpoints stay open.
	req := httptest.NewRequest(http.MethodGet, "/api/v1/settings/refresh", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestNewHandlerRejectsBadKey(t *testing.T) {
	_, err := rest.NewHandler(rest.Params{
		Auth: config.AuthConfig{Enable: true, RsaPublicKeyPem: "garbage"},
	})
	require.Error(t, err)
}
