package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"contact-dashboard/internal/models"
)

type fakeContactRepository struct {
	contacts    []*models.Contact
	getAllCalls int
	deletedIDs  []int
	toggles     []struct {
		ID     int
		Active bool
	}
	deleteErr error
	toggleErr error
}

func (f *fakeContactRepository) GetAll() ([]*models.Contact, error) {
	f.getAllCalls++
	return f.contacts, nil
}

func (f *fakeContactRepository) GetByID(id int) (*models.Contact, error) {
	for _, c := range f.contacts {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, nil
}

func (f *fakeContactRepository) SetAIActive(id int, active bool) error {
	if f.toggleErr != nil {
		return f.toggleErr
	}
	f.toggles = append(f.toggles, struct {
		ID     int
		Active bool
	}{id, active})
	return nil
}

func (f *fakeContactRepository) SetAvatarURL(id int, avatarURL string) error {
	return nil
}

func (f *fakeContactRepository) Delete(id int) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deletedIDs = append(f.deletedIDs, id)
	return nil
}

func newTestRouter(repo models.ContactRepository) *mux.Router {
	handler := NewContactHandler(repo, nil)
	router := mux.NewRouter().PathPrefix("/api/v1").Subrouter()
	router.HandleFunc("/contacts", handler.ListContacts).Methods("GET")
	router.HandleFunc("/contacts/{id}", handler.DeleteContact).Methods("DELETE")
	router.HandleFunc("/contacts/{id}/bot", handler.ToggleBot).Methods("PUT")
	router.HandleFunc("/contacts/{id}/qrcode", handler.GetQRCode).Methods("GET")
	return router
}

func seedContacts(n int) []*models.Contact {
	now := time.Now()
	contacts := make([]*models.Contact, 0, n)
	for i := 1; i <= n; i++ {
		contacts = append(contacts, &models.Contact{
			ID:        i,
			Name:      fmt.Sprintf("Contato %d", i),
			Number:    "5511987654321",
			CreatedAt: now,
			UpdatedAt: now,
		})
	}
	return contacts
}

func decodeListResponse(t *testing.T, rec *httptest.ResponseRecorder) *models.ContactListResponse {
	t.Helper()

	var resp struct {
		Status string                      `json:"status"`
		Data   *models.ContactListResponse `json:"data"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.Equal(t, "success", resp.Status)
	require.NotNil(t, resp.Data)
	return resp.Data
}

func TestListContacts(t *testing.T) {
	repo := &fakeContactRepository{contacts: seedContacts(25)}
	router := newTestRouter(repo)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/contacts", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	list := decodeListResponse(t, rec)
	assert.Equal(t, 1, list.Page)
	assert.Equal(t, 3, list.TotalPages)
	assert.Equal(t, 25, list.TotalCount)
	assert.Len(t, list.Contacts, 10)
	assert.Equal(t, "(11) 9 8765-4321", list.Contacts[0].FormattedNumber)
}

func TestListContactsSecondPage(t *testing.T) {
	repo := &fakeContactRepository{contacts: seedContacts(25)}
	router := newTestRouter(repo)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/contacts?page=3", nil))

	list := decodeListResponse(t, rec)
	assert.Equal(t, 3, list.Page)
	assert.Len(t, list.Contacts, 5)
}

func TestListContactsOutOfRangePageIsEmpty(t *testing.T) {
	repo := &fakeContactRepository{contacts: seedContacts(5)}
	router := newTestRouter(repo)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/contacts?page=9", nil))

	list := decodeListResponse(t, rec)
	assert.Equal(t, 9, list.Page)
	assert.Empty(t, list.Contacts)
	assert.Equal(t, 1, list.TotalPages)
}

func TestListContactsWithSearch(t *testing.T) {
	repo := &fakeContactRepository{contacts: []*models.Contact{
		{ID: 1, Name: "Maria", Number: "5511911111111", UpdatedAt: time.Now()},
		{ID: 2, Name: "João", Number: "5521922222222", UpdatedAt: time.Now()},
	}}
	router := newTestRouter(repo)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/contacts?search=maria", nil))

	list := decodeListResponse(t, rec)
	require.Len(t, list.Contacts, 1)
	assert.Equal(t, "Maria", list.Contacts[0].Name)
}

func TestDeleteContactScopedToIDWithOneRefetch(t *testing.T) {
	repo := &fakeContactRepository{contacts: seedContacts(3)}
	router := newTestRouter(repo)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/v1/contacts/42", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []int{42}, repo.deletedIDs)
	assert.Equal(t, 1, repo.getAllCalls)
}

func TestDeleteContactFailureSkipsRefetch(t *testing.T) {
	repo := &fakeContactRepository{deleteErr: fmt.Errorf("contact not found")}
	router := newTestRouter(repo)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/v1/contacts/42", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Zero(t, repo.getAllCalls)
}

func TestDeleteContactInvalidID(t *testing.T) {
	repo := &fakeContactRepository{}
	router := newTestRouter(repo)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/v1/contacts/abc", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, repo.deletedIDs)
}

func TestToggleBotScopedToIDWithOneRefetch(t *testing.T) {
	repo := &fakeContactRepository{contacts: seedContacts(10)}
	router := newTestRouter(repo)

	body := strings.NewReader(`{"ai_active": true}`)
	req := httptest.NewRequest(http.MethodPut, "/api/v1/contacts/7/bot", body)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, repo.toggles, 1)
	assert.Equal(t, 7, repo.toggles[0].ID)
	assert.True(t, repo.toggles[0].Active)
	assert.Equal(t, 1, repo.getAllCalls)
}

func TestToggleBotOff(t *testing.T) {
	repo := &fakeContactRepository{contacts: seedContacts(10)}
	router := newTestRouter(repo)

	body := strings.NewReader(`{"ai_active": false}`)
	req := httptest.NewRequest(http.MethodPut, "/api/v1/contacts/7/bot", body)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, repo.toggles, 1)
	assert.False(t, repo.toggles[0].Active)
}

func TestToggleBotFailureSkipsRefetch(t *testing.T) {
	repo := &fakeContactRepository{toggleErr: fmt.Errorf("contact not found")}
	router := newTestRouter(repo)

	body := strings.NewReader(`{"ai_active": true}`)
	req := httptest.NewRequest(http.MethodPut, "/api/v1/contacts/7/bot", body)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Zero(t, repo.getAllCalls)
}

func TestGetQRCode(t *testing.T) {
	repo := &fakeContactRepository{contacts: seedContacts(1)}
	router := newTestRouter(repo)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/contacts/1/qrcode", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
	assert.NotEmpty(t, rec.Body.Bytes())
}

func TestGetQRCodeUnknownContact(t *testing.T) {
	repo := &fakeContactRepository{}
	router := newTestRouter(repo)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/contacts/99/qrcode", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
