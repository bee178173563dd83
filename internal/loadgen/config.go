// Package loadgen drives a running phonebook service with concurrent
// form posts and verifies the resulting book.
package loadgen

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	// ErrInvalidConfig is returned when a run is misconfigured.
	ErrInvalidConfig = errors.New("invalid load generator config")
	// ErrUnhealthy is returned when the service health check fails.
	ErrUnhealthy = errors.New("service unhealthy")
	// ErrVerification is returned when the final book disagrees with what was written.
	ErrVerification = errors.New("phonebook verification failed")
)

// Config holds configuration for a load run.
type Config struct {
	BaseURL     string        // Base URL of the service
	NumContacts int           // Number of distinct contacts to add
	Overwrites  int           // Number of contacts re-posted with a new number
	Workers     int           // Number of concurrent workers
	Timeout     time.Duration // HTTP request timeout
	ReportFile  string        // Optional YAML report path
}

// Validate checks the fields a run cannot start without.
func (c *Config) Validate() error {
	switch {
	case strings.TrimSpace(c.BaseURL) == "":
		return fmt.Errorf("%w: url must not be empty", ErrInvalidConfig)
	case c.NumContacts <= 0:
		return fmt.Errorf("%w: contacts must be positive", ErrInvalidConfig)
	case c.Overwrites < 0 || c.Overwrites > c.NumContacts:
		return fmt.Errorf("%w: overwrites must be between 0 and contacts", ErrInvalidConfig)
	case c.Workers <= 0:
		return fmt.Errorf("%w: workers must be positive", ErrInvalidConfig)
	case c.Timeout <= 0:
		return fmt.Errorf("%w: timeout must be positive", ErrInvalidConfig)
	}
	return nil
}

// Contact is one form submission.
type Contact struct {
	Name        string `yaml:"name"`
	PhoneNumber string `yaml:"phone_number"`
}

// Stats holds run statistics.
type Stats struct {
	Generated   int           `yaml:"generated"`
	Submitted   int           `yaml:"submitted"`
	Successful  int           `yaml:"successful"`
	Failed      int           `yaml:"failed"`
	Overwritten int           `yaml:"overwritten"`
	Listed      int           `yaml:"listed"`
	Verified    int           `yaml:"verified"`
	Mismatched  int           `yaml:"mismatched"`
	Missing     int           `yaml:"missing"`
	StartTime   time.Time     `yaml:"start_time"`
	EndTime     time.Time     `yaml:"end_time"`
	Duration    time.Duration `yaml:"duration"`
}
