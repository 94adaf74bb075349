// Package export serializes contact and appointment collections to
// CSV. The column names are the historical Portuguese ones, which
// other tooling depends on.
package export

import (
	"bufio"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/agenda-project/agenda/internal/model"
)

const contactsHeader = "id,nome,email,telefone"

const appointmentsHeader = "id,contato_id,contato_nome,datetime,local,online,descricao"

// Contacts writes the contact collection as CSV, header first.
func Contacts(w io.Writer, contacts []model.Contact) error {
	bw := bufio.NewWriter(w)
	writeLine(bw, contactsHeader)
	for _, c := range contacts {
		writeRecord(bw, idField(c.ID), c.Name, deref(c.Email), deref(c.Phone))
	}
	return bw.Flush()
}

// Appointments writes the appointment collection as CSV, header
// first. The contact collection is only used to resolve the
// denormalized contato_nome column; an unresolvable contact id leaves
// it empty.
func Appointments(w io.Writer, appointments []model.Appointment, contacts []model.Contact) error {
	names := make(map[int64]string, len(contacts))
	for _, c := range contacts {
		if c.ID.Persisted() {
			names[c.ID.Int64()] = c.Name
		}
	}

	bw := bufio.NewWriter(w)
	writeLine(bw, appointmentsHeader)
	for _, a := range appointments {
		writeRecord(bw,
			idField(a.ID),
			strconv.FormatInt(a.ContactID, 10),
			names[a.ContactID],
			model.FormatDateTime(a.DateTime),
			a.Location,
			strconv.FormatBool(a.Online),
			deref(a.Description),
		)
	}
	return bw.Flush()
}

// ContactsFile exports contacts to the given path, creating parent
// directories as needed.
func ContactsFile(path string, contacts []model.Contact) error {
	return toFile(path, func(w io.Writer) error {
		return Contacts(w, contacts)
	})
}

// AppointmentsFile exports appointments to the given path, creating
// parent directories as needed.
func AppointmentsFile(path string, appointments []model.Appointment, contacts []model.Contact) error {
	return toFile(path, func(w io.Writer) error {
		return Appointments(w, appointments, contacts)
	})
}

func toFile(path string, write func(io.Writer) error) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return err
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func writeRecord(bw *bufio.Writer, fields ...string) {
	for i, f := range fields {
		if i > 0 {
			bw.WriteByte(',')
		}
		bw.WriteString(escape(f))
	}
	bw.WriteByte('\n')
}

func writeLine(bw *bufio.Writer, s string) {
	bw.WriteString(s)
	bw.WriteByte('\n')
}

// escape quotes a field only when it contains a comma, a quote or a
// newline; quotes inside a quoted field are doubled. Everything else
// is emitted raw.
func escape(s string) string {
	if !strings.ContainsAny(s, ",\"\n\r") {
		return s
	}
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

func idField(id model.ID) string {
	if !id.Persisted() {
		return ""
	}
	return strconv.FormatInt(id.Int64(), 10)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
