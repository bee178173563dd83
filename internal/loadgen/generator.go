package loadgen

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"

	"github.com/google/uuid"
	"github.com/okian/phonebook/pkg/logger"
)

const (
	namePrefix   = "contact-"
	phoneDigits  = 10
	decimalRadix = 10
)

// randomPhoneNumber returns a number in the NNN-NNN-NNNN shape of the seed entry.
func randomPhoneNumber() (string, error) {
	digits := make([]byte, phoneDigits)
	for i := range digits {
		n, err := rand.Int(rand.Reader, big.NewInt(decimalRadix))
		if err != nil {
			return "", fmt.Errorf("random digit: %w", err)
		}
		digits[i] = byte('0' + n.Int64())
	}
	return fmt.Sprintf("%s-%s-%s", digits[:3], digits[3:6], digits[6:]), nil
}

// generateContacts creates n contacts with unique names.
func generateContacts(ctx context.Context, n int) ([]Contact, error) {
	logger.Get().Info(ctx, "generating contacts with unique names", logger.Int("contacts", n))

	contacts := make([]Contact, n)
	for i := range contacts {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("generation cancelled: %w", err)
		}
		phone, err := randomPhoneNumber()
		if err != nil {
			return nil, err
		}
		contacts[i] = Contact{Name: namePrefix + uuid.NewString(), PhoneNumber: phone}
	}
	return contacts, nil
}

// generateOverwrites re-issues the first n contacts with a different number.
func generateOverwrites(contacts []Contact, n int) ([]Contact, error) {
	if n > len(contacts) {
		n = len(contacts)
	}
	out := make([]Contact, n)
	for i := 0; i < n; i++ {
		phone, err := randomPhoneNumber()
		if err != nil {
			return nil, err
		}
		for phone == contacts[i].PhoneNumber {
			if phone, err = randomPhoneNumber(); err != nil {
				return nil, err
			}
		}
		out[i] = Contact{Name: contacts[i].Name, PhoneNumber: phone}
	}
	return out, nil
}
