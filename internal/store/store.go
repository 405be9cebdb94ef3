package store

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sunbonsys/backend/internal/models"
)

// ErrNotFound is returned when a lookup matches no row.
var ErrNotFound = errors.New("not found")

// Store handles all database operations. It owns no connection lifecycle; the
// *sql.DB is opened by the caller and injected here.
type Store struct {
	db     *sql.DB
	dbType string
}

// New creates a new store instance over an already-opened connection.
func New(db *sql.DB, dbType string) *Store {
	return &Store{db: db, dbType: dbType}
}

// rebind rewrites ? placeholders to $1..$n for PostgreSQL. SQLite takes the
// query as written.
func (s *Store) rebind(query string) string {
	if s.dbType != "postgres" {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			fmt.Fprintf(&b, "$%d", n)
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// CreateContact inserts a contact-form submission and fills in its ID and
// creation time.
func (s *Store) CreateContact(c *models.Contact) error {
	c.CreatedAt = time.Now().UTC()

	if s.dbType == "postgres" {
		return s.db.QueryRow(
			s.rebind(`INSERT INTO contacts (first_name, last_name, email, company, product, message, created_at)
				VALUES (?, ?, ?, ?, ?, ?, ?) RETURNING id`),
			c.FirstName, c.LastName, c.Email, c.Company, c.Product, c.Message, c.CreatedAt,
		).Scan(&c.ID)
	}

	result, err := s.db.Exec(
		`INSERT INTO contacts (first_name, last_name, email, company, product, message, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
		c.FirstName, c.LastName, c.Email, c.Company, c.Product, c.Message, c.CreatedAt,
	)
	if err != nil {
		return err
	}
	c.ID, err = result.LastInsertId()
	return err
}

// ListContacts returns all submissions, newest first.
func (s *Store) ListContacts() ([]models.Contact, error) {
	rows, err := s.db.Query(
		`SELECT id, first_name, last_name, email, company, product, message, created_at
			FROM contacts ORDER BY created_at DESC, id DESC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	contacts := []models.Contact{}
	for rows.Next() {
		var c models.Contact
		if err := rows.Scan(&c.ID, &c.FirstName, &c.LastName, &c.Email, &c.Company, &c.Product, &c.Message, &c.CreatedAt); err != nil {
			return nil, err
		}
		contacts = append(contacts, c)
	}
	return contacts, rows.Err()
}

// RecordVisit increments the counter for a page, creating it on first visit.
func (s *Store) RecordVisit(page string) error {
	_, err := s.db.Exec(
		s.rebind(`INSERT INTO visits (page, count) VALUES (?, 1)
			ON CONFLICT (page) DO UPDATE SET count = visits.count + 1`),
		page,
	)
	return err
}

// ListVisits returns the visit counters for every tracked page.
func (s *Store) ListVisits() ([]models.Visit, error) {
	rows, err := s.db.Query(`SELECT id, page, count FROM visits ORDER BY page`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	visits := []models.Visit{}
	for rows.Next() {
		var v models.Visit
		if err := rows.Scan(&v.ID, &v.Page, &v.Count); err != nil {
			return nil, err
		}
		visits = append(visits, v)
	}
	return visits, rows.Err()
}

// GetAdminByEmail looks up the admin account for a login attempt. The email
// comparison is exact (case-sensitive), matching how accounts are provisioned.
func (s *Store) GetAdminByEmail(email string) (*models.AdminAccount, error) {
	var (
		acct      models.AdminAccount
		name      sql.NullString
		lastLogin sql.NullTime
	)
	err := s.db.QueryRow(
		s.rebind(`SELECT id, email, password_hash, name, created_at, last_login
			FROM admin_users WHERE email = ?`),
		email,
	).Scan(&acct.ID, &acct.Email, &acct.PasswordHash, &name, &acct.CreatedAt, &lastLogin)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	acct.Name = name.String
	if lastLogin.Valid {
		t := lastLogin.Time
		acct.LastLogin = &t
	}
	return &acct, nil
}

// TouchAdminLogin records the time of a successful login.
func (s *Store) TouchAdminLogin(accountID int64, at time.Time) error {
	result, err := s.db.Exec(
		s.rebind(`UPDATE admin_users SET last_login = ? WHERE id = ?`),
		at, accountID,
	)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

// UpsertAdmin creates the admin account, or replaces its password hash and
// display name if the email is already provisioned.
func (s *Store) UpsertAdmin(email, passwordHash, name string) error {
	_, err := s.db.Exec(
		s.rebind(`INSERT INTO admin_users (email, password_hash, name, created_at)
			VALUES (?, ?, ?, ?)
			ON CONFLICT (email) DO UPDATE SET password_hash = excluded.password_hash, name = excluded.name`),
		email, passwordHash, name, time.Now().UTC(),
	)
	return err
}
