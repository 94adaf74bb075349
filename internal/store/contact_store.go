package store

import (
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/agenda-project/agenda/internal/model"
)

// ContactStore is the persistence gateway for contacts.
type ContactStore struct {
	db  *sqlx.DB
	log *zap.Logger
}

// NewContactStore returns a gateway bound to the given database handle.
func NewContactStore(db *sqlx.DB, log *zap.Logger) *ContactStore {
	return &ContactStore{db: db, log: log}
}

// contactRow is the database shape of a contact.
type contactRow struct {
	ID    int64          `db:"id"`
	Name  string         `db:"name"`
	Email sql.NullString `db:"email"`
	Phone sql.NullString `db:"phone"`
}

// contactFromRow maps a row to the domain entity. Pure, so the mapping
// is testable without a live store.
func contactFromRow(r contactRow) model.Contact {
	c := model.Contact{
		ID:   model.PersistedID(r.ID),
		Name: r.Name,
	}
	if r.Email.Valid {
		email := r.Email.String
		c.Email = &email
	}
	if r.Phone.Valid {
		phone := r.Phone.String
		c.Phone = &phone
	}
	return c
}

// FindAll returns every contact ordered by name.
func (s *ContactStore) FindAll() ([]model.Contact, error) {
	var rows []contactRow
	if err := s.db.Select(&rows, `SELECT id, name, email, phone FROM contacts ORDER BY name`); err != nil {
		return nil, s.fault("find all contacts", err)
	}
	contacts := make([]model.Contact, len(rows))
	for i, r := range rows {
		contacts[i] = contactFromRow(r)
	}
	return contacts, nil
}

// FindByID returns the contact with the given id, or ErrNotFound.
func (s *ContactStore) FindByID(id int64) (model.Contact, error) {
	var r contactRow
	err := s.db.Get(&r, `SELECT id, name, email, phone FROM contacts WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Contact{}, ErrNotFound
	}
	if err != nil {
		return model.Contact{}, s.fault("find contact by id", err)
	}
	return contactFromRow(r), nil
}

// Insert stores a new contact and assigns the generated id to it.
func (s *ContactStore) Insert(c *model.Contact) error {
	res, err := s.db.Exec(
		`INSERT INTO contacts (name, email, phone) VALUES (?, ?, ?)`,
		c.Name, c.Email, c.Phone,
	)
	if err != nil {
		return s.fault("insert contact", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return s.fault("insert contact", err)
	}
	c.ID = model.PersistedID(id)
	return nil
}

// Update rewrites a persisted contact. It returns ErrUnsaved when the
// contact has never been inserted and ErrNotFound when its row is gone.
func (s *ContactStore) Update(c *model.Contact) error {
	if !c.ID.Persisted() {
		return ErrUnsaved
	}
	res, err := s.db.Exec(
		`UPDATE contacts SET name = ?, email = ?, phone = ? WHERE id = ?`,
		c.Name, c.Email, c.Phone, c.ID.Int64(),
	)
	if err != nil {
		return s.fault("update contact", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return s.fault("update contact", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes the contact with the given id. The schema-level
// cascade also removes its appointments.
func (s *ContactStore) Delete(id int64) error {
	res, err := s.db.Exec(`DELETE FROM contacts WHERE id = ?`, id)
	if err != nil {
		return s.fault("delete contact", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return s.fault("delete contact", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *ContactStore) fault(op string, err error) error {
	s.log.Error("contact store operation failed", zap.String("op", op), zap.Error(err))
	return &FaultError{Op: op, Err: err}
}
