package api_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rongwang/nyayadrishti/internal/api/testutils"
	"github.com/rongwang/nyayadrishti/internal/models"
)

func TestLogin(t *testing.T) {
	testCtx := testutils.SetupTestContext(t)

	// Test case 1: Successful login with the default password
	w := testutils.PerformRequest(
		testCtx.Router,
		http.MethodPost,
		"/api/auth/login",
		models.LoginRequest{Name: "Rao", Password: "RAO01", Role: "Judge"},
		nil,
	)
	require.Equal(t, http.StatusOK, w.Code)

	var resp models.AuthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "success", resp.Status)
	assert.Equal(t, models.RoleJudge, resp.Role)
	assert.True(t, resp.FirstLogin)
	assert.NotEmpty(t, resp.Token)

	cookie := testCtx.SessionCookie(w)
	require.NotNil(t, cookie)
	assert.Equal(t, resp.Token, cookie.Value)
	assert.True(t, cookie.HttpOnly)

	// Test case 2: Wrong password
	w = testutils.PerformRequest(
		testCtx.Router,
		http.MethodPost,
		"/api/auth/login",
		models.LoginRequest{Name: "Rao", Password: "wrong", Role: "Judge"},
		nil,
	)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Test case 3: Invalid request (missing required fields)
	w = testutils.PerformRequest(
		testCtx.Router,
		http.MethodPost,
		"/api/auth/login",
		models.LoginRequest{Name: "Rao"},
		nil,
	)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Test case 4: Unknown role
	w = testutils.PerformRequest(
		testCtx.Router,
		http.MethodPost,
		"/api/auth/login",
		models.LoginRequest{Name: "Rao", Password: "RAO01", Role: "Clerk"},
		nil,
	)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Test case 5: No cases for this name
	w = testutils.PerformRequest(
		testCtx.Router,
		http.MethodPost,
		"/api/auth/login",
		models.LoginRequest{Name: "Gupta", Password: "GUPT01", Role: "Judge"},
		nil,
	)
	assert.Equal(t, http.StatusForbidden, w.Code)

	var errResp models.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &errResp))
	assert.Equal(t, "NO_CASES", errResp.Code)
}

func TestSession(t *testing.T) {
	testCtx := testutils.SetupTestContext(t)
	cookieName := testCtx.Config.Auth.CookieName

	// Test case 1: No evidence
	w := testutils.PerformRequest(testCtx.Router, http.MethodGet, "/api/auth/session", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp models.SessionResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Authenticated)

	// Test case 2: Returning with a valid cookie
	token := testCtx.Login(t, "Mehta", models.RoleAdvocate)
	w = testutils.PerformRequest(testCtx.Router, http.MethodGet, "/api/auth/session", nil, testutils.CookieHeaders(cookieName, token))
	require.Equal(t, http.StatusOK, w.Code)

	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Authenticated)
	assert.Equal(t, "Mehta", resp.Name)
	assert.Equal(t, models.RoleAdvocate, resp.Role)
	assert.True(t, resp.FirstLogin)
}

func TestLogout(t *testing.T) {
	testCtx := testutils.SetupTestContext(t)
	cookieName := testCtx.Config.Auth.CookieName
	token := testCtx.LoginWithPassword(t, "Rao", models.RoleJudge, "hunter22")

	w := testutils.PerformRequest(testCtx.Router, http.MethodPost, "/api/auth/logout", nil, testutils.CookieHeaders(cookieName, token))
	require.Equal(t, http.StatusOK, w.Code)

	cookie := testCtx.SessionCookie(w)
	require.NotNil(t, cookie)
	assert.NotEqual(t, token, cookie.Value)

	// The logout cookie does not restore a session
	w = testutils.PerformRequest(testCtx.Router, http.MethodGet, "/api/auth/session", nil, testutils.CookieHeaders(cookieName, cookie.Value))
	var resp models.SessionResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Authenticated)

	// And the old token has been revoked
	w = testutils.PerformRequest(testCtx.Router, http.MethodGet, "/api/cases", nil, testutils.AuthHeaders(token))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestSetPassword(t *testing.T) {
	testCtx := testutils.SetupTestContext(t)
	token := testCtx.Login(t, "Rao", models.RoleJudge)
	headers := testutils.AuthHeaders(token)

	// Test case 1: First login is blocked from the case views
	w := testutils.PerformRequest(testCtx.Router, http.MethodGet, "/api/cases", nil, headers)
	require.Equal(t, http.StatusForbidden, w.Code)

	var errResp models.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &errResp))
	assert.Equal(t, "PASSWORD_CHANGE_REQUIRED", errResp.Code)

	// Test case 2: Too short
	w = testutils.PerformRequest(testCtx.Router, http.MethodPost, "/api/auth/password",
		models.SetPasswordRequest{Password: "abc", Confirm: "abc"}, headers)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Test case 3: Confirmation does not match
	w = testutils.PerformRequest(testCtx.Router, http.MethodPost, "/api/auth/password",
		models.SetPasswordRequest{Password: "hunter22", Confirm: "hunter23"}, headers)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Test case 4: Success opens up the case views on the same session
	w = testutils.PerformRequest(testCtx.Router, http.MethodPost, "/api/auth/password",
		models.SetPasswordRequest{Password: "hunter22", Confirm: "hunter22"}, headers)
	require.Equal(t, http.StatusOK, w.Code)

	w = testutils.PerformRequest(testCtx.Router, http.MethodGet, "/api/cases", nil, headers)
	assert.Equal(t, http.StatusOK, w.Code)

	// Test case 5: The default password no longer works
	w = testutils.PerformRequest(testCtx.Router, http.MethodPost, "/api/auth/login",
		models.LoginRequest{Name: "Rao", Password: "RAO01", Role: "Judge"}, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestProtectedRoutesRequireAuth(t *testing.T) {
	testCtx := testutils.SetupTestContext(t)

	for _, path := range []string{"/api/cases", "/api/cases/alerts", "/api/reminders"} {
		w := testutils.PerformRequest(testCtx.Router, http.MethodGet, path, nil, nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code, path)
	}

	w := testutils.PerformRequest(testCtx.Router, http.MethodGet, "/api/cases", nil, testutils.AuthHeaders("not-a-token"))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
