package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"
	qrcode "github.com/skip2/go-qrcode"

	"contact-dashboard/internal/models"
	"contact-dashboard/internal/services"
	"contact-dashboard/internal/utils"
)

type ContactHandler struct {
	contacts  models.ContactRepository
	s3Service *services.S3Service
}

func NewContactHandler(contacts models.ContactRepository, s3Service *services.S3Service) *ContactHandler {
	return &ContactHandler{
		contacts:  contacts,
		s3Service: s3Service,
	}
}

// parseContactFilter lê o estado de filtro da query string. Página ausente
// vale 1; período desconhecido cai em "all".
func parseContactFilter(r *http.Request) services.ContactFilter {
	query := r.URL.Query()

	period := strings.ToLower(query.Get("period"))
	switch period {
	case services.PeriodToday, services.PeriodWeek, services.PeriodMonth:
	default:
		period = services.PeriodAll
	}

	page := 1
	if raw := query.Get("page"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil {
			page = parsed
		}
	}

	return services.ContactFilter{
		Search: query.Get("search"),
		Period: period,
		Page:   page,
	}
}

func (h *ContactHandler) respondWithList(w http.ResponseWriter, r *http.Request, message string) {
	contacts, err := h.contacts.GetAll()
	if err != nil {
		utils.LogError("Erro ao buscar contatos: %v", err)
		models.RespondWithJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Erro ao buscar contatos"))
		return
	}

	list := services.BuildContactList(contacts, parseContactFilter(r), time.Now())
	models.RespondWithJSON(w, http.StatusOK, models.NewSuccessResponse(message, list))
}

// @Summary List contacts
// @Description List contacts with search, date filter and pagination
// @Tags contacts
// @Produce json
// @Param search query string false "Substring match on name or number"
// @Param period query string false "Date filter over updated_at" Enums(all, today, week, month)
// @Param page query int false "1-based page, 10 items per page"
// @Success 200 {object} models.APIResponse
// @Failure 500 {object} models.APIResponse
// @Router /contacts [get]
func (h *ContactHandler) ListContacts(w http.ResponseWriter, r *http.Request) {
	h.respondWithList(w, r, "Contatos carregados com sucesso")
}

// @Summary Delete a contact
// @Description Delete a contact by id and return the refreshed list
// @Tags contacts
// @Produce json
// @Param id path int true "Contact id"
// @Success 200 {object} models.APIResponse
// @Failure 400 {object} models.APIResponse
// @Failure 500 {object} models.APIResponse
// @Router /contacts/{id} [delete]
func (h *ContactHandler) DeleteContact(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		models.RespondWithJSON(w, http.StatusBadRequest, models.NewErrorResponse("ID de contato inválido"))
		return
	}

	if err := h.contacts.Delete(id); err != nil {
		utils.LogError("Erro ao excluir contato %d: %v", id, err)
		models.RespondWithJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Erro ao excluir contato"))
		return
	}

	h.respondWithList(w, r, "Contato excluído com sucesso")
}

// @Summary Toggle the bot for a contact
// @Description Enable or disable the messaging bot for a contact and return the refreshed list
// @Tags contacts
// @Accept json
// @Produce json
// @Param id path int true "Contact id"
// @Param request body models.ToggleBotRequest true "New bot state"
// @Success 200 {object} models.APIResponse
// @Failure 400 {object} models.APIResponse
// @Failure 500 {object} models.APIResponse
// @Router /contacts/{id}/bot [put]
func (h *ContactHandler) ToggleBot(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		models.RespondWithJSON(w, http.StatusBadRequest, models.NewErrorResponse("ID de contato inválido"))
		return
	}

	var req models.ToggleBotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.LogError("Erro ao decodificar requisição /contacts/%d/bot: %v", id, err)
		models.RespondWithJSON(w, http.StatusBadRequest, models.NewErrorResponse("Erro ao decodificar requisição: "+err.Error()))
		return
	}

	if err := h.contacts.SetAIActive(id, req.AIActive); err != nil {
		utils.LogError("Erro ao atualizar bot do contato %d: %v", id, err)
		models.RespondWithJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Erro ao atualizar bot do contato"))
		return
	}

	h.respondWithList(w, r, "Bot do contato atualizado com sucesso")
}

// @Summary Upload a contact avatar
// @Description Upload an avatar image to S3 or set an external avatar URL
// @Tags contacts
// @Accept multipart/form-data
// @Produce json
// @Param id path int true "Contact id"
// @Param file formData file false "Avatar image"
// @Success 200 {object} models.APIResponse
// @Failure 400 {object} models.APIResponse
// @Failure 500 {object} models.APIResponse
// @Router /contacts/{id}/avatar [post]
func (h *ContactHandler) UploadAvatar(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		models.RespondWithJSON(w, http.StatusBadRequest, models.NewErrorResponse("ID de contato inválido"))
		return
	}

	contact, err := h.contacts.GetByID(id)
	if err != nil {
		utils.LogError("Erro ao buscar contato %d: %v", id, err)
		models.RespondWithJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Erro ao buscar contato"))
		return
	}
	if contact == nil {
		models.RespondWithJSON(w, http.StatusNotFound, models.NewErrorResponse("Contato não encontrado"))
		return
	}

	// URL externa enviada como JSON dispensa o upload
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		var req struct {
			AvatarURL string `json:"avatar_url"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || !utils.IsURL(req.AvatarURL) {
			models.RespondWithJSON(w, http.StatusBadRequest, models.NewErrorResponse("URL de avatar inválida"))
			return
		}
		if err := h.contacts.SetAvatarURL(id, req.AvatarURL); err != nil {
			utils.LogError("Erro ao salvar avatar do contato %d: %v", id, err)
			models.RespondWithJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Erro ao salvar avatar"))
			return
		}
		models.RespondWithJSON(w, http.StatusOK,
			models.NewSuccessResponse("Avatar atualizado com sucesso", map[string]string{"avatar_url": req.AvatarURL}))
		return
	}

	if h.s3Service == nil {
		utils.LogError("Serviço S3 não está disponível em /contacts/%d/avatar", id)
		models.RespondWithJSON(w, http.StatusInternalServerError,
			models.NewErrorResponse("Serviço S3 não está disponível"))
		return
	}

	if err := r.ParseMultipartForm(5 << 20); err != nil {
		utils.LogError("Arquivo muito grande em /contacts/%d/avatar: %v", id, err)
		models.RespondWithJSON(w, http.StatusBadRequest,
			models.NewErrorResponse("Arquivo muito grande. Limite de 5MB"))
		return
	}

	file, handler, err := r.FormFile("file")
	if err != nil {
		utils.LogError("Erro ao processar arquivo em /contacts/%d/avatar: %v", id, err)
		models.RespondWithJSON(w, http.StatusBadRequest,
			models.NewErrorResponse("Erro ao processar arquivo"))
		return
	}
	defer file.Close()

	fileUrl, err := h.s3Service.UploadAvatar(file, handler)
	if err != nil {
		utils.LogError("Erro ao fazer upload em /contacts/%d/avatar: %v", id, err)
		models.RespondWithJSON(w, http.StatusInternalServerError,
			models.NewErrorResponse("Erro ao fazer upload: "+err.Error()))
		return
	}

	if err := h.contacts.SetAvatarURL(id, fileUrl); err != nil {
		utils.LogError("Erro ao salvar avatar do contato %d: %v", id, err)
		models.RespondWithJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Erro ao salvar avatar"))
		return
	}

	models.RespondWithJSON(w, http.StatusOK,
		models.NewSuccessResponse("Avatar atualizado com sucesso", map[string]string{"avatar_url": fileUrl}))
}

// @Summary WhatsApp QR code
// @Description PNG QR code pointing at the contact's WhatsApp deep link
// @Tags contacts
// @Produce png
// @Param id path int true "Contact id"
// @Success 200 {file} binary
// @Failure 404 {object} models.APIResponse
// @Router /contacts/{id}/qrcode [get]
func (h *ContactHandler) GetQRCode(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		models.RespondWithJSON(w, http.StatusBadRequest, models.NewErrorResponse("ID de contato inválido"))
		return
	}

	contact, err := h.contacts.GetByID(id)
	if err != nil {
		utils.LogError("Erro ao buscar contato %d: %v", id, err)
		models.RespondWithJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Erro ao buscar contato"))
		return
	}
	if contact == nil {
		models.RespondWithJSON(w, http.StatusNotFound, models.NewErrorResponse("Contato não encontrado"))
		return
	}

	png, err := qrcode.Encode(services.WhatsAppLink(contact.Number), qrcode.Medium, 256)
	if err != nil {
		utils.LogError("Erro ao gerar QR code do contato %d: %v", id, err)
		models.RespondWithJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Erro ao gerar QR code"))
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Write(png)
}
