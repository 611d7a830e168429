package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Caminhos que não tocam o Redis podem ser exercitados sem sessão real.

func TestLoginRejectsMalformedBody(t *testing.T) {
	handler := NewAuthHandler(nil, nil, "dashboard_session")

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader("{"))
	rec := httptest.NewRecorder()
	handler.Login(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetSessionWithoutCookie(t *testing.T) {
	handler := NewAuthHandler(nil, nil, "dashboard_session")

	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/session", nil)
	rec := httptest.NewRecorder()
	handler.GetSession(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Status  string      `json:"status"`
		Message string      `json:"message"`
		Data    interface{} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "success", resp.Status)
	assert.Equal(t, "Nenhuma sessão ativa", resp.Message)
	assert.Nil(t, resp.Data)
}

func TestLogoutWithoutCookieClearsIt(t *testing.T) {
	handler := NewAuthHandler(nil, nil, "dashboard_session")

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/logout", nil)
	rec := httptest.NewRecorder()
	handler.Logout(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "dashboard_session", cookies[0].Name)
	assert.Empty(t, cookies[0].Value)
	assert.Negative(t, cookies[0].MaxAge)
}
