package models

type LoginRequest struct {
	Email    string `json:"email" example:"admin@empresa.com" swagger:"required" description:"E-mail do usuário"`
	Password string `json:"password" example:"senha123" swagger:"required" description:"Senha do usuário"`
}

type ToggleBotRequest struct {
	AIActive bool `json:"ai_active" example:"true" description:"Novo estado do bot para o contato"`
}
