package models

type User struct {
	ID           int    `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	PasswordHash string `json:"-"`
}

type UserRepository interface {
	GetByID(id int) (*User, error)
	GetByEmail(email string) (*User, error)
}
