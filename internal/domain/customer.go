package domain

import (
	"strings"
	"time"
)

// Customer an external contact identified by email and phone records
type Customer struct {
	ID              int64
	Name            string
	PrimaryEmail    string
	IsActive        bool
	TotalBookings   int
	LastBookingDate *time.Time
	Emails          []CustomerEmail
	Phones          []CustomerPhone
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// CustomerEmail secondary (or primary) email record
type CustomerEmail struct {
	ID         int64
	CustomerID int64
	Address    string
	EmailType  string
	IsPrimary  bool
}

// CustomerPhone phone record; Normalized is the comparison key
type CustomerPhone struct {
	ID         int64
	CustomerID int64
	Number     string
	Normalized string
	PhoneType  string
	IsPrimary  bool
}

// Email and phone kinds
const (
	EmailTypePrimary  = "Primary"
	EmailTypePersonal = "Personal"
	PhoneTypeMobile   = "Mobile"
)

// NormalizeEmail trims and lower-cases an email
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// NormalizePhone keeps digits and the '+' sign only
func NormalizePhone(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		if (r >= '0' && r <= '9') || r == '+' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// HasEmail returns true if the customer owns the email in any representation
func (c *Customer) HasEmail(email string) bool {
	email = NormalizeEmail(email)
	if NormalizeEmail(c.PrimaryEmail) == email {
		return true
	}
	for _, e := range c.Emails {
		if NormalizeEmail(e.Address) == email {
			return true
		}
	}
	return false
}

// PrimaryPhone returns the primary phone number, falling back to the first one
func (c *Customer) PrimaryPhone() *string {
	for _, p := range c.Phones {
		if p.IsPrimary {
			number := p.Number
			return &number
		}
	}
	if len(c.Phones) > 0 {
		number := c.Phones[0].Number
		return &number
	}
	return nil
}
