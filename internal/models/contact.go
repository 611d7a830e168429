package models

import "time"

type Contact struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Number    string    `json:"number"`
	AvatarURL string    `json:"avatar_url"`
	AIActive  bool      `json:"ai_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type ContactRepository interface {
	GetAll() ([]*Contact, error)
	GetByID(id int) (*Contact, error)
	SetAIActive(id int, active bool) error
	SetAvatarURL(id int, avatarURL string) error
	Delete(id int) error
}
