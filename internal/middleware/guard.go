package middleware

import (
	"context"
	"net/http"
	"strings"

	"contact-dashboard/internal/models"
	"contact-dashboard/internal/utils"
)

type contextKey string

// SessionContextKey guarda a sessão resolvida pelo guard na requisição.
const SessionContextKey contextKey = "session"

// SessionFetcher resolve o token do cookie em uma sessão ativa.
type SessionFetcher interface {
	FetchSession(ctx context.Context, token string) (*models.Session, error)
}

// RouteGuard decide o redirecionamento antes de qualquer página renderizar:
//
//	sem sessão + rota /dashboard       -> /login
//	com sessão + rota /login ou /      -> /dashboard
//	qualquer outro caso                -> segue adiante
type RouteGuard struct {
	sessions   SessionFetcher
	cookieName string
}

func NewRouteGuard(sessions SessionFetcher, cookieName string) *RouteGuard {
	return &RouteGuard{sessions: sessions, cookieName: cookieName}
}

func (g *RouteGuard) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session := g.currentSession(r)

		path := r.URL.Path
		switch {
		case session == nil && strings.HasPrefix(path, "/dashboard"):
			http.Redirect(w, r, "/login", http.StatusFound)
			return
		case session != nil && (path == "/login" || path == "/"):
			http.Redirect(w, r, "/dashboard", http.StatusFound)
			return
		}

		if session != nil {
			r = r.WithContext(context.WithValue(r.Context(), SessionContextKey, session))
		}
		next.ServeHTTP(w, r)
	})
}

// RequireSession protege as rotas da API: sem sessão ativa a resposta
// é 401, sem redirecionamento.
func (g *RouteGuard) RequireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodOptions {
			next.ServeHTTP(w, r)
			return
		}

		session := g.currentSession(r)
		if session == nil {
			models.RespondWithJSON(w, http.StatusUnauthorized,
				models.NewErrorResponse("Não autenticado"))
			return
		}

		r = r.WithContext(context.WithValue(r.Context(), SessionContextKey, session))
		next.ServeHTTP(w, r)
	})
}

// currentSession busca a sessão do cookie. Falha na consulta é tratada
// como sessão ausente.
func (g *RouteGuard) currentSession(r *http.Request) *models.Session {
	cookie, err := r.Cookie(g.cookieName)
	if err != nil || cookie.Value == "" {
		return nil
	}

	session, err := g.sessions.FetchSession(r.Context(), cookie.Value)
	if err != nil {
		utils.LogError("Erro ao consultar sessão no guard: %v", err)
		return nil
	}
	return session
}

// SessionFromContext devolve a sessão colocada pelo guard, se houver.
func SessionFromContext(ctx context.Context) *models.Session {
	session, _ := ctx.Value(SessionContextKey).(*models.Session)
	return session
}
