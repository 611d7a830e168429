package handlers

import (
	"net/http"
	"path/filepath"
)

// PageHandler serve as páginas estáticas do dashboard. O controle de acesso
// fica inteiramente no guard, aqui é só entrega de arquivo.
type PageHandler struct {
	webDir string
}

func NewPageHandler(webDir string) *PageHandler {
	return &PageHandler{webDir: webDir}
}

func (h *PageHandler) LoginPage(w http.ResponseWriter, r *http.Request) {
	http.ServeFile(w, r, filepath.Join(h.webDir, "login.html"))
}

func (h *PageHandler) DashboardPage(w http.ResponseWriter, r *http.Request) {
	http.ServeFile(w, r, filepath.Join(h.webDir, "dashboard.html"))
}
