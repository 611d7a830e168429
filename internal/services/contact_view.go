package services

import (
	"fmt"
	"strings"
	"time"

	"contact-dashboard/internal/models"
)

// PageSize é o tamanho fixo de página do dashboard
const PageSize = 10

// Períodos aceitos pelo filtro de data sobre updated_at
const (
	PeriodAll   = "all"
	PeriodToday = "today"
	PeriodWeek  = "week"
	PeriodMonth = "month"
)

// ContactFilter representa o estado de filtro vindo do dashboard.
type ContactFilter struct {
	Search string
	Period string
	Page   int
}

// FilterContacts aplica busca e filtro de data preservando a ordem da
// coleção. Busca é substring sem diferenciar maiúsculas sobre nome e número.
func FilterContacts(contacts []*models.Contact, search, period string, now time.Time) []*models.Contact {
	search = strings.ToLower(strings.TrimSpace(search))
	cutoff, hasCutoff := periodCutoff(period, now)

	filtered := make([]*models.Contact, 0, len(contacts))
	for _, contact := range contacts {
		if search != "" {
			name := strings.ToLower(contact.Name)
			number := strings.ToLower(contact.Number)
			if !strings.Contains(name, search) && !strings.Contains(number, search) {
				continue
			}
		}
		if hasCutoff && contact.UpdatedAt.Before(cutoff) {
			continue
		}
		filtered = append(filtered, contact)
	}
	return filtered
}

func periodCutoff(period string, now time.Time) (time.Time, bool) {
	switch period {
	case PeriodToday:
		year, month, day := now.Date()
		return time.Date(year, month, day, 0, 0, 0, 0, now.Location()), true
	case PeriodWeek:
		return now.AddDate(0, 0, -7), true
	case PeriodMonth:
		return now.AddDate(0, -1, 0), true
	default:
		return time.Time{}, false
	}
}

// TotalPages é ceil(len/PageSize), no mínimo 1.
func TotalPages(count int) int {
	pages := (count + PageSize - 1) / PageSize
	if pages < 1 {
		return 1
	}
	return pages
}

// PaginateContacts fatia a página pedida. A página não é normalizada:
// fora do intervalo o resultado é vazio, igual ao comportamento do dashboard.
func PaginateContacts(contacts []*models.Contact, page int) []*models.Contact {
	start := (page - 1) * PageSize
	if start < 0 || start >= len(contacts) {
		return []*models.Contact{}
	}
	end := start + PageSize
	if end > len(contacts) {
		end = len(contacts)
	}
	return contacts[start:end]
}

// FormatPhoneNumber converte o número bruto para exibição: remove tudo que
// não for dígito, descarta o código do país "55", trata os 2 dígitos
// seguintes como DDD e formata o restante como número de assinante.
func FormatPhoneNumber(raw string) string {
	var digits strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}

	number := digits.String()
	if number == "" {
		return ""
	}

	number = strings.TrimPrefix(number, "55")
	if len(number) < 2 {
		return number
	}

	area := number[:2]
	subscriber := number[2:]

	switch len(subscriber) {
	case 9:
		return fmt.Sprintf("(%s) %s %s-%s", area, subscriber[:1], subscriber[1:5], subscriber[5:])
	case 8:
		return fmt.Sprintf("(%s) %s-%s", area, subscriber[:4], subscriber[4:])
	default:
		return fmt.Sprintf("(%s) %s", area, subscriber)
	}
}

// WhatsAppLink monta o deep link da conversa com os dígitos brutos do número.
func WhatsAppLink(raw string) string {
	var digits strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	return "https://wa.me/" + digits.String()
}

// NewContactView projeta um contato para a forma exibida no dashboard.
func NewContactView(contact *models.Contact) *models.ContactView {
	return &models.ContactView{
		ID:              contact.ID,
		Name:            contact.Name,
		Number:          contact.Number,
		FormattedNumber: FormatPhoneNumber(contact.Number),
		AvatarURL:       contact.AvatarURL,
		AIActive:        contact.AIActive,
		WhatsAppLink:    WhatsAppLink(contact.Number),
		CreatedAt:       contact.CreatedAt,
		UpdatedAt:       contact.UpdatedAt,
	}
}

// BuildContactList aplica filtro e paginação e projeta o resultado.
func BuildContactList(contacts []*models.Contact, filter ContactFilter, now time.Time) *models.ContactListResponse {
	filtered := FilterContacts(contacts, filter.Search, filter.Period, now)
	pageItems := PaginateContacts(filtered, filter.Page)

	views := make([]*models.ContactView, 0, len(pageItems))
	for _, contact := range pageItems {
		views = append(views, NewContactView(contact))
	}

	return &models.ContactListResponse{
		Contacts:   views,
		Page:       filter.Page,
		PageSize:   PageSize,
		TotalPages: TotalPages(len(filtered)),
		TotalCount: len(filtered),
	}
}
