package models

// Session carrega apenas os campos consumidos pelo dashboard,
// nunca o payload completo do provedor de autenticação.
type Session struct {
	UserID int    `json:"user_id"`
	Email  string `json:"email"`
	Phone  string `json:"phone"`
	Token  string `json:"-"`
}
