package valueobject

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

// emailPattern is a pragmatic syntax check, not a full RFC 5322 parser.
var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// ShippingAddress is a value object holding the delivery destination and
// recipient contact details for an order. It is immutable - construct a new
// value to change it.
type ShippingAddress struct {
	firstName  string
	lastName   string
	email      string
	phone      string
	street     string
	city       string
	postalCode string
	country    string
}

// ShippingAddressInput carries the raw fields used to build a ShippingAddress.
type ShippingAddressInput struct {
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	Email      string `json:"email"`
	Phone      string `json:"phone,omitempty"`
	Street     string `json:"street"`
	City       string `json:"city"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
}

// NewShippingAddress validates and creates a ShippingAddress.
// All fields except phone are required; email must be syntactically valid.
func NewShippingAddress(in ShippingAddressInput) (ShippingAddress, error) {
	addr := ShippingAddress{
		firstName:  strings.TrimSpace(in.FirstName),
		lastName:   strings.TrimSpace(in.LastName),
		email:      strings.TrimSpace(in.Email),
		phone:      strings.TrimSpace(in.Phone),
		street:     strings.TrimSpace(in.Street),
		city:       strings.TrimSpace(in.City),
		postalCode: strings.TrimSpace(in.PostalCode),
		country:    strings.TrimSpace(in.Country),
	}

	required := []struct {
		name  string
		value string
	}{
		{"first name", addr.firstName},
		{"last name", addr.lastName},
		{"email", addr.email},
		{"street address", addr.street},
		{"city", addr.city},
		{"postal code", addr.postalCode},
		{"country", addr.country},
	}
	for _, f := range required {
		if f.value == "" {
			return ShippingAddress{}, fmt.Errorf("%s cannot be empty", f.name)
		}
		if len(f.value) > 200 {
			return ShippingAddress{}, fmt.Errorf("%s cannot exceed 200 characters", f.name)
		}
	}
	if !emailPattern.MatchString(addr.email) {
		return ShippingAddress{}, fmt.Errorf("invalid email address: %s", addr.email)
	}
	if len(addr.phone) > 30 {
		return ShippingAddress{}, fmt.Errorf("phone cannot exceed 30 characters")
	}

	return addr, nil
}

// MustNewShippingAddress creates a ShippingAddress, panics on error
func MustNewShippingAddress(in ShippingAddressInput) ShippingAddress {
	addr, err := NewShippingAddress(in)
	if err != nil {
		panic(err)
	}
	return addr
}

// EmptyShippingAddress returns an empty address (for optional address fields)
func EmptyShippingAddress() ShippingAddress {
	return ShippingAddress{}
}

// FirstName returns the recipient first name
func (a ShippingAddress) FirstName() string { return a.firstName }

// LastName returns the recipient last name
func (a ShippingAddress) LastName() string { return a.lastName }

// Email returns the recipient email
func (a ShippingAddress) Email() string { return a.email }

// Phone returns the recipient phone, may be empty
func (a ShippingAddress) Phone() string { return a.phone }

// Street returns the street address
func (a ShippingAddress) Street() string { return a.street }

// City returns the city
func (a ShippingAddress) City() string { return a.city }

// PostalCode returns the postal code
func (a ShippingAddress) PostalCode() string { return a.postalCode }

// Country returns the country
func (a ShippingAddress) Country() string { return a.country }

// IsEmpty returns true if the address has no data
func (a ShippingAddress) IsEmpty() bool {
	return a == ShippingAddress{}
}

// RecipientName returns the recipient full name
func (a ShippingAddress) RecipientName() string {
	return strings.TrimSpace(a.firstName + " " + a.lastName)
}

// String returns a single-line formatted address
func (a ShippingAddress) String() string {
	if a.IsEmpty() {
		return ""
	}
	parts := []string{a.RecipientName(), a.street, a.postalCode + " " + a.city, a.country}
	return strings.Join(parts, ", ")
}

// Equals returns true if both addresses are equal
func (a ShippingAddress) Equals(other ShippingAddress) bool {
	return a == other
}

// ToInput converts the address back to its raw input form
func (a ShippingAddress) ToInput() ShippingAddressInput {
	return ShippingAddressInput{
		FirstName:  a.firstName,
		LastName:   a.lastName,
		Email:      a.email,
		Phone:      a.phone,
		Street:     a.street,
		City:       a.city,
		PostalCode: a.postalCode,
		Country:    a.country,
	}
}

// MarshalJSON implements json.Marshaler
func (a ShippingAddress) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.ToInput())
}

// UnmarshalJSON implements json.Unmarshaler. Validation is delegated to
// NewShippingAddress so a stored address always satisfies the same rules.
func (a *ShippingAddress) UnmarshalJSON(data []byte) error {
	var in ShippingAddressInput
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	if (in == ShippingAddressInput{}) {
		*a = EmptyShippingAddress()
		return nil
	}
	addr, err := NewShippingAddress(in)
	if err != nil {
		return err
	}
	*a = addr
	return nil
}

// Value implements driver.Valuer for database storage
// Stores as JSON string
func (a ShippingAddress) Value() (driver.Value, error) {
	if a.IsEmpty() {
		return nil, nil
	}
	return json.Marshal(a)
}

// Scan implements sql.Scanner for database retrieval
func (a *ShippingAddress) Scan(value any) error {
	if value == nil {
		*a = EmptyShippingAddress()
		return nil
	}

	var data []byte
	switch v := value.(type) {
	case string:
		data = []byte(v)
	case []byte:
		data = v
	default:
		return fmt.Errorf("cannot scan %T into ShippingAddress", value)
	}

	if len(data) == 0 || string(data) == "null" {
		*a = EmptyShippingAddress()
		return nil
	}

	return json.Unmarshal(data, a)
}
