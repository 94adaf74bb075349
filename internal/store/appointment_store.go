package store

import (
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/agenda-project/agenda/internal/model"
)

// AppointmentStore is the persistence gateway for appointments.
type AppointmentStore struct {
	db  *sqlx.DB
	log *zap.Logger
}

// NewAppointmentStore returns a gateway bound to the given database
// handle.
func NewAppointmentStore(db *sqlx.DB, log *zap.Logger) *AppointmentStore {
	return &AppointmentStore{db: db, log: log}
}

// appointmentRow is the database shape of an appointment. The
// timestamp is stored as text in the fixed format; empty or NULL means
// no date set.
type appointmentRow struct {
	ID          int64          `db:"id"`
	ContactID   int64          `db:"contact_id"`
	DateTime    sql.NullString `db:"datetime"`
	Location    sql.NullString `db:"location"`
	Online      bool           `db:"online"`
	Description sql.NullString `db:"description"`
}

// appointmentFromRow maps a row to the domain entity. An absent or
// empty stored timestamp maps to a nil DateTime; malformed text is an
// error.
func appointmentFromRow(r appointmentRow) (model.Appointment, error) {
	dt, err := model.ParseDateTime(r.DateTime.String)
	if err != nil {
		return model.Appointment{}, err
	}
	a := model.Appointment{
		ID:        model.PersistedID(r.ID),
		ContactID: r.ContactID,
		DateTime:  dt,
		Location:  r.Location.String,
		Online:    r.Online,
	}
	if r.Description.Valid {
		description := r.Description.String
		a.Description = &description
	}
	return a, nil
}

const appointmentColumns = `id, contact_id, datetime, location, online, description`

// FindAll returns every appointment ordered by timestamp ascending.
func (s *AppointmentStore) FindAll() ([]model.Appointment, error) {
	return s.selectMany("find all appointments",
		`SELECT `+appointmentColumns+` FROM appointments ORDER BY datetime`)
}

// FindByContactID returns the appointments of one contact ordered by
// timestamp ascending.
func (s *AppointmentStore) FindByContactID(contactID int64) ([]model.Appointment, error) {
	return s.selectMany("find appointments by contact",
		`SELECT `+appointmentColumns+` FROM appointments WHERE contact_id = ? ORDER BY datetime`,
		contactID)
}

func (s *AppointmentStore) selectMany(op, query string, args ...any) ([]model.Appointment, error) {
	var rows []appointmentRow
	if err := s.db.Select(&rows, query, args...); err != nil {
		return nil, s.fault(op, err)
	}
	appointments := make([]model.Appointment, len(rows))
	for i, r := range rows {
		a, err := appointmentFromRow(r)
		if err != nil {
			return nil, s.fault(op, err)
		}
		appointments[i] = a
	}
	return appointments, nil
}

// FindByID returns the appointment with the given id, or ErrNotFound.
func (s *AppointmentStore) FindByID(id int64) (model.Appointment, error) {
	var r appointmentRow
	err := s.db.Get(&r, `SELECT `+appointmentColumns+` FROM appointments WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Appointment{}, ErrNotFound
	}
	if err != nil {
		return model.Appointment{}, s.fault("find appointment by id", err)
	}
	a, err := appointmentFromRow(r)
	if err != nil {
		return model.Appointment{}, s.fault("find appointment by id", err)
	}
	return a, nil
}

// Insert stores a new appointment and assigns the generated id to it.
func (s *AppointmentStore) Insert(a *model.Appointment) error {
	res, err := s.db.Exec(
		`INSERT INTO appointments (contact_id, datetime, location, online, description) VALUES (?, ?, ?, ?, ?)`,
		a.ContactID, model.FormatDateTime(a.DateTime), a.Location, a.Online, a.Description,
	)
	if err != nil {
		return s.fault("insert appointment", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return s.fault("insert appointment", err)
	}
	a.ID = model.PersistedID(id)
	return nil
}

// Update rewrites a persisted appointment.
func (s *AppointmentStore) Update(a *model.Appointment) error {
	if !a.ID.Persisted() {
		return ErrUnsaved
	}
	res, err := s.db.Exec(
		`UPDATE appointments SET contact_id = ?, datetime = ?, location = ?, online = ?, description = ? WHERE id = ?`,
		a.ContactID, model.FormatDateTime(a.DateTime), a.Location, a.Online, a.Description, a.ID.Int64(),
	)
	if err != nil {
		return s.fault("update appointment", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return s.fault("update appointment", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes the appointment with the given id.
func (s *AppointmentStore) Delete(id int64) error {
	res, err := s.db.Exec(`DELETE FROM appointments WHERE id = ?`, id)
	if err != nil {
		return s.fault("delete appointment", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return s.fault("delete appointment", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *AppointmentStore) fault(op string, err error) error {
	s.log.Error("appointment store operation failed", zap.String("op", op), zap.Error(err))
	return &FaultError{Op: op, Err: err}
}
