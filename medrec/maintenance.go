package medrec

import (
	"context"
	"errors"
	"os"

	"go.uber.org/zap"

	"github.com/KARTHIKRAIG/MEDIMORPH/meddb"
)

// ErrSeedingDisabled is returned by SeedDefaultAccounts when the
// process runs with ENVIRONMENT=production.
var ErrSeedingDisabled = errors.New("account seeding is disabled in production")

type seedAccount struct {
	username  string
	email     string
	password  string
	firstName string
	lastName  string
}

// Development bootstrap accounts. The passwords are deliberately weak;
// the production gate in SeedDefaultAccounts is what keeps them out of
// real deployments.
var defaultAccounts = []seedAccount{
	{
		username:  "testuser",
		email:     "testuser@example.com",
		password:  "testpass123",
		firstName: "Test",
		lastName:  "User",
	},
	{
		username:  "karthikrai390@gmail.com",
		email:     "karthikrai390@gmail.com",
		password:  "123456",
		firstName: "Karthik",
		lastName:  "Rai",
	},
}

// SeedDefaultAccounts creates any of the fixed development accounts
// that do not already exist, returning how many were created.
// Idempotent: a second run creates nothing. Refuses to run in
// production.
func (s *Store) SeedDefaultAccounts(ctx context.Context) (int, error) {
	if os.Getenv("ENVIRONMENT") == "production" {
		return 0, ErrSeedingDisabled
	}

	created := 0
	for _, seed := range defaultAccounts {
		existing, err := s.UserByUsername(ctx, seed.username)
		if err != nil {
			return created, err
		}
		if existing != nil {
			continue
		}

		user := NewUser(seed.username, seed.email)
		user.FirstName = seed.firstName
		user.LastName = seed.lastName
		if err := user.SetPassword(seed.password); err != nil {
			return created, err
		}
		if err := s.SaveUser(ctx, user); err != nil {
			return created, err
		}
		created++
		s.log.Info("Created default user", zap.String("username", seed.username))
	}

	return created, nil
}

// CollectionStats counts the records in each of the five collections.
// Returns nil and the error when any count fails; never partial
// counts.
func (s *Store) CollectionStats(ctx context.Context) (map[string]int64, error) {
	collections := []struct {
		name       string
		collection *meddb.Collection
	}{
		{"users", &s.users.Collection},
		{"medications", &s.medications.Collection},
		{"reminders", &s.reminders.Collection},
		{"medication_logs", &s.logs.Collection},
		{"prescription_uploads", &s.uploads.Collection},
	}

	stats := make(map[string]int64, len(collections))
	for _, entry := range collections {
		count, err := entry.collection.Count(ctx, meddb.NoFilter())
		if err != nil {
			s.log.Error("Collection count failed",
				zap.String("collection", entry.name), zap.Error(err))
			return nil, err
		}
		stats[entry.name] = count
	}

	return stats, nil
}
