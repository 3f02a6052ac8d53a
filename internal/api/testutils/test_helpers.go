package testutils

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/rongwang/nyayadrishti/internal/api"
	"github.com/rongwang/nyayadrishti/internal/auth"
	"github.com/rongwang/nyayadrishti/internal/config"
	"github.com/rongwang/nyayadrishti/internal/models"
	"github.com/rongwang/nyayadrishti/internal/repository"
	"github.com/rongwang/nyayadrishti/internal/service"
)

// Fixture data shared by the API tests. Judge "Rao" sees C1 and C2; advocate
// "Mehta" sees C1 and C2; advocate "Das" sees C2 and C3.
const (
	CasesCSV = `CNR Number,Date Filed,Decision Date,Current Status,RemappedStages
C1,2020-01-01,,Pending,Evidence
C2,2024-03-01,2024-06-01,Disposed,Judgment
C3,2024-02-01,,Pending,Evidence
`
	HearingsCSV = `cnr_number,business_on_date,BeforeHonourableJudges,Petitioner Advocate,Respondent Advocate,next_hearing_date,previous_hearing
C1,2024-05-01,Hon. A. Rao,S. Mehta,K. Iyer,2024-06-10,2024-04-01
C2,2024-05-02,Hon. A. Rao,P. Das,S. Mehta,2024-06-20,
C3,2024-05-03,Hon. B. Nair,P. Das,R. Sen,2024-06-10,
`
)

// TestContext holds all dependencies for tests
type TestContext struct {
	Router     *gin.Engine
	Repository repository.Repository
	Service    service.Service
	Config     *config.Config
}

// SetupTestContext creates a new test context backed by temporary CSV files
// and a file store
func SetupTestContext(t *testing.T) *TestContext {
	t.Helper()
	dir := t.TempDir()

	cfg := config.Default()
	cfg.Data.CasesPath = writeFile(t, dir, "cases.csv", CasesCSV)
	cfg.Data.HearingsPath = writeFile(t, dir, "hearings.csv", HearingsCSV)
	cfg.Store.Dir = filepath.Join(dir, "store")
	cfg.Auth.CookieSecret = "test-secret-key"

	repo := repository.NewFileRepository(cfg.Store.Dir)
	svc := service.Build(cfg, repo, zap.NewNop())

	handler := api.NewHandler(svc, api.CookieOptions{
		Name:   cfg.Auth.CookieName,
		MaxAge: cfg.Auth.EvidenceTTL,
	}, zap.NewNop())

	// Set up Gin router
	gin.SetMode(gin.TestMode)
	router := gin.New()
	handler.SetupRoutes(router)

	return &TestContext{
		Router:     router,
		Repository: repo,
		Service:    svc,
		Config:     cfg,
	}
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

// PerformRequest executes an HTTP request against the router
func PerformRequest(r http.Handler, method, path string, body interface{}, headers map[string]string) *httptest.ResponseRecorder {
	var reqBody *bytes.Buffer

	if body != nil {
		jsonBody, _ := json.Marshal(body)
		reqBody = bytes.NewBuffer(jsonBody)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req, _ := http.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// AuthHeaders returns headers with Authorization token
func AuthHeaders(token string) map[string]string {
	return map[string]string{
		"Authorization": fmt.Sprintf("Bearer %s", token),
	}
}

// CookieHeaders returns headers carrying the session cookie
func CookieHeaders(name, value string) map[string]string {
	return map[string]string{
		"Cookie": fmt.Sprintf("%s=%s", name, value),
	}
}

// SessionCookie returns the session cookie set by a response, or nil
func (tc *TestContext) SessionCookie(w *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range w.Result().Cookies() {
		if c.Name == tc.Config.Auth.CookieName {
			return c
		}
	}
	return nil
}

// Login signs a user in with their default password and returns the evidence
func (tc *TestContext) Login(t *testing.T, name string, role models.Role) string {
	t.Helper()
	w := PerformRequest(tc.Router, http.MethodPost, "/api/auth/login", models.LoginRequest{
		Name:     name,
		Password: auth.DefaultPassword(name),
		Role:     string(role),
	}, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp models.AuthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Token
}

// LoginWithPassword signs a user in and replaces the default password so
// the case routes open up
func (tc *TestContext) LoginWithPassword(t *testing.T, name string, role models.Role, password string) string {
	t.Helper()
	token := tc.Login(t, name, role)
	w := PerformRequest(tc.Router, http.MethodPost, "/api/auth/password", models.SetPasswordRequest{
		Password: password,
		Confirm:  password,
	}, AuthHeaders(token))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	return token
}
