// Package store implements the schema lifecycle and the persistence
// gateways for contacts and appointments on top of an embedded SQLite
// database.
package store

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
	_ "modernc.org/sqlite" // SQLite driver (pure Go)
)

const createContactsTable = `
	CREATE TABLE IF NOT EXISTS contacts (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		email TEXT,
		phone TEXT
	)`

const createAppointmentsTable = `
	CREATE TABLE IF NOT EXISTS appointments (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		contact_id INTEGER NOT NULL,
		datetime TEXT,
		location TEXT,
		online INTEGER DEFAULT 0,
		description TEXT,
		FOREIGN KEY(contact_id) REFERENCES contacts(id) ON DELETE CASCADE
	)`

// Open opens the database file at the given path and verifies the
// connection. Foreign keys are enabled per connection so that deleting
// a contact cascades to its appointments.
func Open(path string) (*sqlx.DB, error) {
	dsn := fmt.Sprintf("file:%s?_pragma=foreign_keys(1)", path)
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database %s: %w", path, err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("open database %s: %w", path, err)
	}
	return db, nil
}

// EnsureSchema brings the schema up before any gateway operation. It
// creates the tables when absent, adds the description column to
// appointment tables created by older versions, and seeds sample data
// into an empty store. Creation failures are fatal and returned; the
// migration and seed steps are best-effort and only logged.
func EnsureSchema(db *sqlx.DB, log *zap.Logger) error {
	if _, err := db.Exec(createContactsTable); err != nil {
		return fmt.Errorf("create contacts table: %w", err)
	}
	if _, err := db.Exec(createAppointmentsTable); err != nil {
		return fmt.Errorf("create appointments table: %w", err)
	}
	migrateDescriptionColumn(db, log)
	seedIfEmpty(db, log)
	return nil
}

// migrateDescriptionColumn adds the description column to appointment
// tables that predate it. Failure here must not prevent startup; an
// old table without descriptions is still usable.
func migrateDescriptionColumn(db *sqlx.DB, log *zap.Logger) {
	rows, err := db.Query(`PRAGMA table_info(appointments)`)
	if err != nil {
		log.Warn("schema: cannot inspect appointments table", zap.Error(err))
		return
	}
	defer rows.Close()

	found := false
	for rows.Next() {
		var (
			cid, notNull, pk int
			name, colType    string
			dflt             sql.NullString
		)
		if err := rows.Scan(&cid, &name, &colType, &notNull, &dflt, &pk); err != nil {
			log.Warn("schema: cannot read appointments column info", zap.Error(err))
			return
		}
		if strings.EqualFold(name, "description") {
			found = true
		}
	}
	if err := rows.Err(); err != nil {
		log.Warn("schema: cannot read appointments column info", zap.Error(err))
		return
	}
	if found {
		return
	}
	if _, err := db.Exec(`ALTER TABLE appointments ADD COLUMN description TEXT`); err != nil {
		log.Warn("schema: cannot add description column", zap.Error(err))
	}
}

// seedContact mirrors the sample data inserted on first run.
type seedContact struct {
	name, email, phone string
}

type seedAppointment struct {
	contactID   int64
	datetime    string
	location    string
	online      bool
	description string
}

var seedContacts = []seedContact{
	{"Alice Silva", "alice@example.com", "+55 11 99999-0001"},
	{"Bruno Costa", "bruno@example.com", "+55 21 98888-0002"},
	{"Carla Santos", "carla@example.com", "+55 31 97777-0003"},
	{"Diego Almeida", "diego@example.com", "+55 41 96666-0004"},
	{"Elisa Pereira", "elisa@example.com", "+55 51 95555-0005"},
}

var seedAppointments = []seedAppointment{
	{1, "2025-12-01 10:00:00", "Sala 101", false, "Reunião inicial"},
	{2, "2025-12-02 14:30:00", "Sala 202", false, "Apresentação de projeto"},
	{1, "2025-12-05 09:00:00", "Zoom: https://zoom.us/j/123", true, "Chamada com cliente"},
	{3, "2025-12-10 16:00:00", "", false, "Check-up"},
}

// seedIfEmpty inserts the sample contacts and appointments on first
// run so that a fresh store never starts empty. A populated store is
// never touched. Failures are logged and swallowed.
func seedIfEmpty(db *sqlx.DB, log *zap.Logger) {
	var count int
	if err := db.Get(&count, `SELECT COUNT(*) FROM contacts`); err != nil {
		log.Warn("schema: cannot count contacts for seeding", zap.Error(err))
		return
	}
	if count > 0 {
		return
	}

	tx, err := db.Begin()
	if err != nil {
		log.Warn("schema: cannot begin seed transaction", zap.Error(err))
		return
	}
	for _, c := range seedContacts {
		if _, err := tx.Exec(
			`INSERT INTO contacts (name, email, phone) VALUES (?, ?, ?)`,
			c.name, c.email, c.phone,
		); err != nil {
			log.Warn("schema: seeding contacts failed", zap.Error(err))
			tx.Rollback()
			return
		}
	}
	for _, a := range seedAppointments {
		if _, err := tx.Exec(
			`INSERT INTO appointments (contact_id, datetime, location, online, description) VALUES (?, ?, ?, ?, ?)`,
			a.contactID, a.datetime, a.location, a.online, a.description,
		); err != nil {
			log.Warn("schema: seeding appointments failed", zap.Error(err))
			tx.Rollback()
			return
		}
	}
	if err := tx.Commit(); err != nil {
		log.Warn("schema: cannot commit seed transaction", zap.Error(err))
	}
}
