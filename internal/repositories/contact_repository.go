package repositories

import (
	"database/sql"
	"fmt"

	"contact-dashboard/internal/models"
	"contact-dashboard/internal/utils"
	"contact-dashboard/internal/wsnotify"
)

type MySQLContactRepository struct {
	db *sql.DB
}

func NewMySQLContactRepository(db *sql.DB) *MySQLContactRepository {
	return &MySQLContactRepository{db: db}
}

func (r *MySQLContactRepository) GetAll() ([]*models.Contact, error) {
	query := `
		SELECT
			id, name, number, avatar_url, ai_active, created_at, updated_at
		FROM contacts
		ORDER BY id`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("error querying contacts: %v", err)
	}
	defer rows.Close()

	var contacts []*models.Contact

	for rows.Next() {
		contact := &models.Contact{}
		var avatarURL sql.NullString

		err := rows.Scan(
			&contact.ID,
			&contact.Name,
			&contact.Number,
			&avatarURL,
			&contact.AIActive,
			&contact.CreatedAt,
			&contact.UpdatedAt,
		)

		if err != nil {
			return nil, fmt.Errorf("error scanning contact: %v", err)
		}

		contact.AvatarURL = avatarURL.String
		contacts = append(contacts, contact)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating contacts: %v", err)
	}

	return contacts, nil
}

func (r *MySQLContactRepository) GetByID(id int) (*models.Contact, error) {
	query := `
		SELECT
			id, name, number, avatar_url, ai_active, created_at, updated_at
		FROM contacts
		WHERE id = ?`

	contact := &models.Contact{}
	var avatarURL sql.NullString

	err := r.db.QueryRow(query, id).Scan(
		&contact.ID,
		&contact.Name,
		&contact.Number,
		&avatarURL,
		&contact.AIActive,
		&contact.CreatedAt,
		&contact.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error getting contact: %v", err)
	}

	contact.AvatarURL = avatarURL.String
	return contact, nil
}

func (r *MySQLContactRepository) SetAIActive(id int, active bool) error {
	query := `
		UPDATE contacts
		SET ai_active = ?,
			updated_at = NOW()
		WHERE id = ?`

	result, err := r.db.Exec(query, utils.BoolToInt(active), id)
	if err != nil {
		return fmt.Errorf("error updating contact bot status: %v", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("error getting rows affected: %v", err)
	}

	if rows == 0 {
		return fmt.Errorf("contact not found")
	}

	// Buscar dados atualizados do contato para enviar via WebSocket
	contact, err := r.GetByID(id)
	if err == nil && contact != nil {
		wsnotify.SendContactEvent(
			contact.ID,
			contact.Name,
			contact.Number,
			contact.AvatarURL,
			contact.AIActive,
			contact.CreatedAt,
			contact.UpdatedAt,
		)
	}

	return nil
}

func (r *MySQLContactRepository) SetAvatarURL(id int, avatarURL string) error {
	query := `
		UPDATE contacts
		SET avatar_url = ?,
			updated_at = NOW()
		WHERE id = ?`

	result, err := r.db.Exec(query, utils.NullString(avatarURL), id)
	if err != nil {
		return fmt.Errorf("error updating contact avatar: %v", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("error getting rows affected: %v", err)
	}

	if rows == 0 {
		return fmt.Errorf("contact not found")
	}

	return nil
}

func (r *MySQLContactRepository) Delete(id int) error {
	result, err := r.db.Exec(`DELETE FROM contacts WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("error deleting contact: %v", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("error getting rows affected: %v", err)
	}

	if rows == 0 {
		return fmt.Errorf("contact not found")
	}

	wsnotify.SendContactDeletedEvent(id)

	return nil
}
