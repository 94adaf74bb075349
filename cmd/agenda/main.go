// Package main provides the agenda command line interface: contact
// and appointment management, filtering and CSV export on top of a
// local SQLite database.
package main

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/agenda-project/agenda/internal/agenda"
	"github.com/agenda-project/agenda/internal/config"
	"github.com/agenda-project/agenda/internal/export"
	"github.com/agenda-project/agenda/internal/filter"
	"github.com/agenda-project/agenda/internal/model"
	"github.com/agenda-project/agenda/internal/store"
)

// inputTimeLayout is the format in which date-times are entered on
// the command line.
const inputTimeLayout = "2006-01-02 15:04"

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if err := newRootCmd(logger).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// app bundles everything a subcommand needs against one open store.
type app struct {
	contacts     *store.ContactStore
	appointments *store.AppointmentStore
	service      *agenda.Service
}

func newRootCmd(log *zap.Logger) *cobra.Command {
	var dbPath string

	rootCmd := &cobra.Command{
		Use:           "agenda",
		Short:         "Manage contacts and appointments in a local database",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "",
		"database file (default: $AGENDA_DB or "+config.DefaultDatabasePath+")")

	open := func() (*app, func(), error) {
		path := dbPath
		if path == "" {
			path = config.Load().DatabasePath
		}
		db, err := store.Open(path)
		if err != nil {
			return nil, nil, err
		}
		if err := store.EnsureSchema(db, log); err != nil {
			db.Close()
			return nil, nil, err
		}
		contacts := store.NewContactStore(db, log)
		appointments := store.NewAppointmentStore(db, log)
		return &app{
			contacts:     contacts,
			appointments: appointments,
			service:      agenda.NewService(contacts, appointments, log),
		}, func() { db.Close() }, nil
	}

	rootCmd.AddCommand(newInitCmd(open))
	rootCmd.AddCommand(newContactsCmd(open))
	rootCmd.AddCommand(newAppointmentsCmd(open))
	rootCmd.AddCommand(newExportCmd(open))
	return rootCmd
}

type openFunc func() (*app, func(), error)

// newInitCmd creates the database schema and seed data without doing
// anything else. Every other command does this implicitly as well.
func newInitCmd(open openFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create or migrate the database schema",
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, cleanup, err := open()
			if err != nil {
				return err
			}
			defer cleanup()
			fmt.Fprintln(cmd.OutOrStdout(), "database ready")
			return nil
		},
	}
}

func newContactsCmd(open openFunc) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "contacts",
		Short: "List, add and remove contacts",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List all contacts ordered by name",
		RunE: func(c *cobra.Command, _ []string) error {
			a, cleanup, err := open()
			if err != nil {
				return err
			}
			defer cleanup()
			contacts, err := a.service.Contacts()
			if err != nil {
				return err
			}
			for _, contact := range contacts {
				fmt.Fprintf(c.OutOrStdout(), "%d\t%s\t%s\t%s\n",
					contact.ID.Int64(), contact.Name,
					stringOrDash(contact.Email), stringOrDash(contact.Phone))
			}
			return nil
		},
	})

	var name, email, phone string
	addCmd := &cobra.Command{
		Use:   "add",
		Short: "Add a new contact",
		RunE: func(c *cobra.Command, _ []string) error {
			a, cleanup, err := open()
			if err != nil {
				return err
			}
			defer cleanup()
			contact := model.Contact{Name: name}
			if email != "" {
				contact.Email = &email
			}
			if phone != "" {
				contact.Phone = &phone
			}
			if err := a.service.SaveContact(&contact); err != nil {
				return err
			}
			fmt.Fprintf(c.OutOrStdout(), "contact %d saved\n", contact.ID.Int64())
			return nil
		},
	}
	addCmd.Flags().StringVar(&name, "name", "", "contact name (required)")
	addCmd.Flags().StringVar(&email, "email", "", "email address")
	addCmd.Flags().StringVar(&phone, "phone", "", "phone number")
	cmd.AddCommand(addCmd)

	cmd.AddCommand(&cobra.Command{
		Use:   "show ID",
		Short: "Show one contact and its appointments",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid id %q", args[0])
			}
			a, cleanup, err := open()
			if err != nil {
				return err
			}
			defer cleanup()
			contact, err := a.contacts.FindByID(id)
			if err != nil {
				return err
			}
			fmt.Fprintf(c.OutOrStdout(), "%d\t%s\t%s\t%s\n",
				contact.ID.Int64(), contact.Name,
				stringOrDash(contact.Email), stringOrDash(contact.Phone))
			appointments, err := a.appointments.FindByContactID(id)
			if err != nil {
				return err
			}
			for _, appt := range appointments {
				fmt.Fprintf(c.OutOrStdout(), "  %d\t%s\t%s\t%s\n",
					appt.ID.Int64(), model.FormatDateTime(appt.DateTime),
					appt.Location, stringOrDash(appt.Description))
			}
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "rm ID",
		Short: "Delete a contact and its appointments",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid id %q", args[0])
			}
			a, cleanup, err := open()
			if err != nil {
				return err
			}
			defer cleanup()
			if err := a.service.DeleteContact(id); err != nil {
				return err
			}
			fmt.Fprintf(c.OutOrStdout(), "contact %d deleted\n", id)
			return nil
		},
	})

	return cmd
}

func newAppointmentsCmd(open openFunc) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "appointments",
		Short: "List, add and remove appointments",
	}

	var startText, endText string
	var contactID int64
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List appointments, optionally filtered by date range and contact",
		RunE: func(c *cobra.Command, _ []string) error {
			criteria, err := buildCriteria(startText, endText, contactID)
			if err != nil {
				return err
			}
			a, cleanup, err := open()
			if err != nil {
				return err
			}
			defer cleanup()
			appointments, err := a.service.Appointments()
			if err != nil {
				return err
			}
			contacts, err := a.service.Contacts()
			if err != nil {
				return err
			}
			names := make(map[int64]string, len(contacts))
			for _, contact := range contacts {
				names[contact.ID.Int64()] = contact.Name
			}
			for _, appt := range criteria.Apply(appointments) {
				where := appt.Location
				if appt.Online {
					where = "(online) " + where
				}
				fmt.Fprintf(c.OutOrStdout(), "%d\t%s\t%s\t%s\t%s\n",
					appt.ID.Int64(), model.FormatDateTime(appt.DateTime),
					names[appt.ContactID], where, stringOrDash(appt.Description))
			}
			return nil
		},
	}
	listCmd.Flags().StringVar(&startText, "start", "", "earliest date, YYYY-MM-DD")
	listCmd.Flags().StringVar(&endText, "end", "", "latest date, YYYY-MM-DD")
	listCmd.Flags().Int64Var(&contactID, "contact", 0, "only appointments of this contact id")
	cmd.AddCommand(listCmd)

	var atText, location, description string
	var apptContactID int64
	var online bool
	addCmd := &cobra.Command{
		Use:   "add",
		Short: "Add a new appointment",
		RunE: func(c *cobra.Command, _ []string) error {
			at, err := time.Parse(inputTimeLayout, atText)
			if err != nil {
				return fmt.Errorf("invalid --at %q, use \"YYYY-MM-DD HH:MM\"", atText)
			}
			a, cleanup, err := open()
			if err != nil {
				return err
			}
			defer cleanup()
			appt := model.Appointment{
				ContactID: apptContactID,
				DateTime:  &at,
				Location:  location,
				Online:    online,
			}
			if description != "" {
				appt.Description = &description
			}
			if err := a.service.SaveAppointment(&appt); err != nil {
				return err
			}
			fmt.Fprintf(c.OutOrStdout(), "appointment %d saved\n", appt.ID.Int64())
			return nil
		},
	}
	addCmd.Flags().Int64Var(&apptContactID, "contact", 0, "contact id (required)")
	addCmd.Flags().StringVar(&atText, "at", "", "date and time, \"YYYY-MM-DD HH:MM\" (required)")
	addCmd.Flags().StringVar(&location, "location", "", "location (required unless --online)")
	addCmd.Flags().BoolVar(&online, "online", false, "online appointment")
	addCmd.Flags().StringVar(&description, "description", "", "free-form description")
	cmd.AddCommand(addCmd)

	cmd.AddCommand(&cobra.Command{
		Use:   "rm ID",
		Short: "Delete an appointment",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid id %q", args[0])
			}
			a, cleanup, err := open()
			if err != nil {
				return err
			}
			defer cleanup()
			if err := a.service.DeleteAppointment(id); err != nil {
				return err
			}
			fmt.Fprintf(c.OutOrStdout(), "appointment %d deleted\n", id)
			return nil
		},
	})

	return cmd
}

func newExportCmd(open openFunc) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export contacts or appointments to CSV",
	}

	var contactsOut string
	contactsCmd := &cobra.Command{
		Use:   "contacts",
		Short: "Export all contacts to a CSV file",
		RunE: func(c *cobra.Command, _ []string) error {
			a, cleanup, err := open()
			if err != nil {
				return err
			}
			defer cleanup()
			contacts, err := a.service.Contacts()
			if err != nil {
				return err
			}
			if err := export.ContactsFile(contactsOut, contacts); err != nil {
				return err
			}
			fmt.Fprintf(c.OutOrStdout(), "exported %d contacts to %s\n", len(contacts), contactsOut)
			return nil
		},
	}
	contactsCmd.Flags().StringVar(&contactsOut, "out", "contatos.csv", "output file")
	cmd.AddCommand(contactsCmd)

	var appointmentsOut string
	appointmentsCmd := &cobra.Command{
		Use:   "appointments",
		Short: "Export all appointments to a CSV file",
		RunE: func(c *cobra.Command, _ []string) error {
			a, cleanup, err := open()
			if err != nil {
				return err
			}
			defer cleanup()
			appointments, err := a.service.Appointments()
			if err != nil {
				return err
			}
			contacts, err := a.service.Contacts()
			if err != nil {
				return err
			}
			if err := export.AppointmentsFile(appointmentsOut, appointments, contacts); err != nil {
				return err
			}
			fmt.Fprintf(c.OutOrStdout(), "exported %d appointments to %s\n", len(appointments), appointmentsOut)
			return nil
		},
	}
	appointmentsCmd.Flags().StringVar(&appointmentsOut, "out", "compromissos.csv", "output file")
	cmd.AddCommand(appointmentsCmd)

	return cmd
}

// buildCriteria turns the list flags into filter criteria. Dates are
// entered day-granular; the bounds compare calendar days anyway.
func buildCriteria(startText, endText string, contactID int64) (filter.Criteria, error) {
	var criteria filter.Criteria
	if startText != "" {
		start, err := time.Parse("2006-01-02", startText)
		if err != nil {
			return criteria, fmt.Errorf("invalid --start %q, use YYYY-MM-DD", startText)
		}
		criteria.Start = &start
	}
	if endText != "" {
		end, err := time.Parse("2006-01-02", endText)
		if err != nil {
			return criteria, fmt.Errorf("invalid --end %q, use YYYY-MM-DD", endText)
		}
		criteria.End = &end
	}
	if contactID != 0 {
		criteria.ContactID = &contactID
	}
	return criteria, nil
}

func stringOrDash(s *string) string {
	if s == nil || *s == "" {
		return "-"
	}
	return *s
}
