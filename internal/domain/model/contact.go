// Package model contains domain models passed between layers.
package model

import (
	"errors"
)

// ErrMissingField is returned when a contact lacks a name or a phone number.
var ErrMissingField = errors.New("please provide a `name` and a `phone_number` field")

// Contact is one phonebook entry.
//
// Presence is the only rule: an empty string is a present value. Phone
// numbers are stored exactly as submitted.
type Contact struct {
	Name        string
	PhoneNumber string
}

// NewContact builds a Contact from optional fields. A nil pointer means the
// field was absent from the request.
func NewContact(name, phoneNumber *string) (Contact, error) {
	if name == nil || phoneNumber == nil {
		return Contact{}, ErrMissingField
	}
	return Contact{Name: *name, PhoneNumber: *phoneNumber}, nil
}
