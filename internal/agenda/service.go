// Package agenda implements the save and delete workflows that sit
// between the presentation layer and the persistence gateways:
// validation, duplicate detection and error classification.
package agenda

import (
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/agenda-project/agenda/internal/model"
	"github.com/agenda-project/agenda/internal/store"
	"github.com/agenda-project/agenda/internal/validate"
)

// Service bundles the two gateways behind the workflow operations.
type Service struct {
	contacts     *store.ContactStore
	appointments *store.AppointmentStore
	log          *zap.Logger
}

// NewService returns a workflow service over the given gateways.
func NewService(contacts *store.ContactStore, appointments *store.AppointmentStore, log *zap.Logger) *Service {
	return &Service{contacts: contacts, appointments: appointments, log: log}
}

// SaveContact validates the contact, checks it against the existing
// contact set for duplicates, and inserts or updates it depending on
// whether it is already persisted. On success the contact carries its
// store-assigned id.
func (s *Service) SaveContact(c *model.Contact) error {
	c.Name = strings.TrimSpace(c.Name)
	if c.Name == "" {
		return invalid("name is required")
	}
	trimOptional(&c.Email)
	trimOptional(&c.Phone)
	if c.Email != nil && *c.Email != "" && !validate.Email(*c.Email) {
		return invalid("invalid email address")
	}
	if c.Phone != nil && *c.Phone != "" && !validate.Phone(*c.Phone) {
		return invalid("invalid phone number")
	}

	existing, err := s.contacts.FindAll()
	if err != nil {
		return s.classify(err)
	}
	if validate.DuplicateContact(*c, existing) {
		return conflict("duplicate contact: same email, phone or name as an existing contact")
	}

	if c.ID.Persisted() {
		err = s.contacts.Update(c)
	} else {
		err = s.contacts.Insert(c)
	}
	if err != nil {
		return s.classify(err)
	}
	s.log.Info("contact saved", zap.Int64("id", c.ID.Int64()), zap.String("name", c.Name))
	return nil
}

// SaveAppointment validates the appointment and inserts or updates
// it. The referenced contact must exist, a date and time must be set,
// and in-person appointments require a location.
func (s *Service) SaveAppointment(a *model.Appointment) error {
	if a.ContactID == 0 {
		return invalid("a contact is required")
	}
	if _, err := s.contacts.FindByID(a.ContactID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return &Error{Kind: KindNotFound, Msg: "contact does not exist", Err: err}
		}
		return s.classify(err)
	}
	if a.DateTime == nil {
		return invalid("date and time are required")
	}
	a.Location = strings.TrimSpace(a.Location)
	if !a.Online && a.Location == "" {
		return invalid("location is required for in-person appointments")
	}
	trimOptional(&a.Description)

	var err error
	if a.ID.Persisted() {
		err = s.appointments.Update(a)
	} else {
		err = s.appointments.Insert(a)
	}
	if err != nil {
		return s.classify(err)
	}
	s.log.Info("appointment saved", zap.Int64("id", a.ID.Int64()), zap.Int64("contact_id", a.ContactID))
	return nil
}

// DeleteContact removes a contact; its appointments go with it via
// the schema-level cascade.
func (s *Service) DeleteContact(id int64) error {
	return s.classify(s.contacts.Delete(id))
}

// DeleteAppointment removes a single appointment.
func (s *Service) DeleteAppointment(id int64) error {
	return s.classify(s.appointments.Delete(id))
}

// Contacts returns all contacts ordered by name.
func (s *Service) Contacts() ([]model.Contact, error) {
	contacts, err := s.contacts.FindAll()
	if err != nil {
		return nil, s.classify(err)
	}
	return contacts, nil
}

// Appointments returns all appointments ordered by timestamp.
func (s *Service) Appointments() ([]model.Appointment, error) {
	appointments, err := s.appointments.FindAll()
	if err != nil {
		return nil, s.classify(err)
	}
	return appointments, nil
}

// classify maps gateway errors onto the public error kinds.
func (s *Service) classify(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, store.ErrNotFound):
		return &Error{Kind: KindNotFound, Msg: "record not found", Err: err}
	case errors.Is(err, store.ErrUnsaved):
		return &Error{Kind: KindValidation, Msg: "record was never saved", Err: err}
	default:
		return &Error{Kind: KindStoreFault, Err: err}
	}
}

func trimOptional(s **string) {
	if *s == nil {
		return
	}
	trimmed := strings.TrimSpace(**s)
	*s = &trimmed
}
