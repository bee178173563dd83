package loadgen

import (
	"context"
	"fmt"

	"github.com/okian/phonebook/pkg/logger"
)

// expectedBook folds accepted rounds in order so later writes win.
func expectedBook(rounds ...[]Contact) map[string]string {
	want := make(map[string]string)
	for _, round := range rounds {
		for _, c := range round {
			want[c.Name] = c.PhoneNumber
		}
	}
	return want
}

// verifyBook checks every expected name against the listed phonebook.
// Entries the run did not write, such as the seed, are ignored.
func verifyBook(ctx context.Context, want, got map[string]string, stats *Stats) error {
	log := logger.Get()
	stats.Listed = len(got)

	for name, phone := range want {
		listed, ok := got[name]
		switch {
		case !ok:
			stats.Missing++
			log.Warn(ctx, "contact missing from phonebook", logger.String("name", name))
		case listed != phone:
			stats.Mismatched++
			log.Warn(ctx, "contact has unexpected number",
				logger.String("name", name),
				logger.String("want", phone),
				logger.String("got", listed))
		default:
			stats.Verified++
		}
	}

	if stats.Missing > 0 || stats.Mismatched > 0 {
		return fmt.Errorf("%w: %d missing, %d mismatched", ErrVerification, stats.Missing, stats.Mismatched)
	}
	log.Info(ctx, "phonebook verified", logger.Int("verified", stats.Verified))
	return nil
}
