package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"contact-dashboard/internal/models"
	"contact-dashboard/internal/services"
	"contact-dashboard/internal/utils"
)

type AuthHandler struct {
	sessions   *services.SessionService
	users      models.UserRepository
	cookieName string
}

func NewAuthHandler(sessions *services.SessionService, users models.UserRepository, cookieName string) *AuthHandler {
	return &AuthHandler{
		sessions:   sessions,
		users:      users,
		cookieName: cookieName,
	}
}

// @Summary Sign in
// @Description Authenticate with email and password and receive a session cookie
// @Tags auth
// @Accept json
// @Produce json
// @Param request body models.LoginRequest true "Credentials"
// @Success 200 {object} models.APIResponse
// @Failure 401 {object} models.APIResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.LogError("Erro ao decodificar requisição /auth/login: %v", err)
		models.RespondWithJSON(w, http.StatusBadRequest, models.NewErrorResponse("Erro ao decodificar requisição: "+err.Error()))
		return
	}

	user, err := h.users.GetByEmail(req.Email)
	if err != nil {
		utils.LogError("Erro ao buscar usuário no /auth/login: %v", err)
		models.RespondWithJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Erro ao autenticar"))
		return
	}

	if user == nil {
		models.RespondWithJSON(w, http.StatusUnauthorized, models.NewErrorResponse("Credenciais inválidas"))
		return
	}

	ok, err := utils.VerifyPassword(req.Password, user.PasswordHash)
	if err != nil || !ok {
		models.RespondWithJSON(w, http.StatusUnauthorized, models.NewErrorResponse("Credenciais inválidas"))
		return
	}

	token, err := h.sessions.CreateSession(r.Context(), user.ID)
	if err != nil {
		utils.LogError("Erro ao criar sessão no /auth/login: %v", err)
		models.RespondWithJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Erro ao criar sessão"))
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     h.cookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Expires:  time.Now().Add(services.SessionDuration),
	})

	data := map[string]interface{}{
		"user_id": user.ID,
		"email":   user.Email,
		"phone":   user.Phone,
	}
	models.RespondWithJSON(w, http.StatusOK, models.NewSuccessResponse("Autenticado com sucesso", data))
}

// @Summary Sign out
// @Description Invalidate the current session and clear the cookie
// @Tags auth
// @Produce json
// @Success 200 {object} models.APIResponse
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(h.cookieName); err == nil && cookie.Value != "" {
		if err := h.sessions.InvalidateSession(r.Context(), cookie.Value); err != nil {
			utils.LogError("Erro ao invalidar sessão no /auth/logout: %v", err)
		}
	}

	http.SetCookie(w, &http.Cookie{
		Name:     h.cookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})

	models.RespondWithJSON(w, http.StatusOK, models.NewSuccessResponse("Sessão encerrada", nil))
}

// @Summary Current session
// @Description Return the session bound to the request cookie, if any
// @Tags auth
// @Produce json
// @Success 200 {object} models.APIResponse
// @Router /auth/session [get]
func (h *AuthHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(h.cookieName)
	if err != nil || cookie.Value == "" {
		models.RespondWithJSON(w, http.StatusOK, models.NewSuccessResponse("Nenhuma sessão ativa", nil))
		return
	}

	session, err := h.sessions.FetchSession(r.Context(), cookie.Value)
	if err != nil {
		utils.LogError("Erro ao consultar sessão no /auth/session: %v", err)
		models.RespondWithJSON(w, http.StatusOK, models.NewSuccessResponse("Nenhuma sessão ativa", nil))
		return
	}

	if session == nil {
		models.RespondWithJSON(w, http.StatusOK, models.NewSuccessResponse("Nenhuma sessão ativa", nil))
		return
	}

	models.RespondWithJSON(w, http.StatusOK, models.NewSuccessResponse("Sessão ativa", session))
}
