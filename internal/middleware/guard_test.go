package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"contact-dashboard/internal/models"
)

const testCookie = "dashboard_session"

type fakeSessionFetcher struct {
	session *models.Session
	err     error
	calls   int
}

func (f *fakeSessionFetcher) FetchSession(ctx context.Context, token string) (*models.Session, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.session, nil
}

func guardRequest(t *testing.T, guard *RouteGuard, path string, withCookie bool) *httptest.ResponseRecorder {
	t.Helper()

	passed := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, path, nil)
	if withCookie {
		req.AddCookie(&http.Cookie{Name: testCookie, Value: "token-abc"})
	}

	rec := httptest.NewRecorder()
	guard.Handler(passed).ServeHTTP(rec, req)
	return rec
}

func TestRouteGuardRedirectsAnonymousFromDashboard(t *testing.T) {
	guard := NewRouteGuard(&fakeSessionFetcher{}, testCookie)

	rec := guardRequest(t, guard, "/dashboard/x", false)

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))
}

func TestRouteGuardRedirectsAuthenticatedFromLogin(t *testing.T) {
	fetcher := &fakeSessionFetcher{session: &models.Session{UserID: 1, Email: "a@b.com"}}
	guard := NewRouteGuard(fetcher, testCookie)

	for _, path := range []string{"/login", "/"} {
		rec := guardRequest(t, guard, path, true)
		assert.Equal(t, http.StatusFound, rec.Code, "path %s", path)
		assert.Equal(t, "/dashboard", rec.Header().Get("Location"), "path %s", path)
	}
}

func TestRouteGuardPassesThroughOtherPaths(t *testing.T) {
	t.Run("without session", func(t *testing.T) {
		guard := NewRouteGuard(&fakeSessionFetcher{}, testCookie)
		rec := guardRequest(t, guard, "/other", false)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("with session", func(t *testing.T) {
		fetcher := &fakeSessionFetcher{session: &models.Session{UserID: 1}}
		guard := NewRouteGuard(fetcher, testCookie)
		rec := guardRequest(t, guard, "/other", true)
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestRouteGuardAllowsAuthenticatedDashboard(t *testing.T) {
	fetcher := &fakeSessionFetcher{session: &models.Session{UserID: 7, Email: "a@b.com"}}
	guard := NewRouteGuard(fetcher, testCookie)

	var got *models.Session
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = SessionFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	req.AddCookie(&http.Cookie{Name: testCookie, Value: "token-abc"})
	rec := httptest.NewRecorder()
	guard.Handler(inner).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, got)
	assert.Equal(t, 7, got.UserID)
}

// Falha na consulta de sessão conta como sessão ausente.
func TestRouteGuardFetchErrorBehavesAsAnonymous(t *testing.T) {
	fetcher := &fakeSessionFetcher{err: errors.New("redis indisponível")}
	guard := NewRouteGuard(fetcher, testCookie)

	rec := guardRequest(t, guard, "/dashboard", true)

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))
}

func TestRouteGuardFetchesSessionOncePerRequest(t *testing.T) {
	fetcher := &fakeSessionFetcher{session: &models.Session{UserID: 1}}
	guard := NewRouteGuard(fetcher, testCookie)

	guardRequest(t, guard, "/dashboard", true)

	assert.Equal(t, 1, fetcher.calls)
}

func TestRequireSessionRejectsAnonymous(t *testing.T) {
	guard := NewRouteGuard(&fakeSessionFetcher{}, testCookie)

	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/contacts", nil)
	rec := httptest.NewRecorder()
	guard.RequireSession(inner).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireSessionAllowsAuthenticated(t *testing.T) {
	fetcher := &fakeSessionFetcher{session: &models.Session{UserID: 3}}
	guard := NewRouteGuard(fetcher, testCookie)

	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session := SessionFromContext(r.Context())
		require.NotNil(t, session)
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/contacts", nil)
	req.AddCookie(&http.Cookie{Name: testCookie, Value: "token-abc"})
	rec := httptest.NewRecorder()
	guard.RequireSession(inner).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}
