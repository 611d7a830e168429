package repositories

import (
	"database/sql"
	"fmt"

	"contact-dashboard/internal/models"
)

type MySQLUserRepository struct {
	db *sql.DB
}

func NewMySQLUserRepository(db *sql.DB) *MySQLUserRepository {
	return &MySQLUserRepository{db: db}
}

func (r *MySQLUserRepository) GetByID(id int) (*models.User, error) {
	query := `SELECT id, name, email, phone, password_hash FROM users WHERE id = ?`

	user := &models.User{}
	var phone sql.NullString

	err := r.db.QueryRow(query, id).Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&phone,
		&user.PasswordHash,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error getting user: %v", err)
	}

	user.Phone = phone.String
	return user, nil
}

func (r *MySQLUserRepository) GetByEmail(email string) (*models.User, error) {
	query := `SELECT id, name, email, phone, password_hash FROM users WHERE email = ?`

	user := &models.User{}
	var phone sql.NullString

	err := r.db.QueryRow(query, email).Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&phone,
		&user.PasswordHash,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error getting user: %v", err)
	}

	user.Phone = phone.String
	return user, nil
}
