package guest

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	domainguest "staybook/internal/domain/guest"
)

var ErrEmailRequired = errors.New("guest: email required")

// Service owns guest identity resolution. The booking lifecycle treats it as
// an external collaborator: identities are upserted by email and never
// conflict-checked.
type Service struct {
	Logger *slog.Logger
}

// ResolveOrCreate returns the guest registered under email, creating one if
// none exists. Idempotent by email: when a guest already exists the supplied
// name fields are ignored and the stored profile wins.
func (s *Service) ResolveOrCreate(ctx context.Context, repo domainguest.Repository, email, firstName, lastName string) (*domainguest.Guest, error) {
	email = normalizeEmail(email)
	if email == "" {
		return nil, ErrEmailRequired
	}
	existing, err := repo.ByEmail(ctx, email)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, domainguest.ErrGuestNotFound) {
		return nil, err
	}

	g := &domainguest.Guest{
		ID:        domainguest.GuestID(uuid.NewString()),
		FirstName: strings.TrimSpace(firstName),
		LastName:  strings.TrimSpace(lastName),
		Email:     email,
	}
	if err := repo.Save(ctx, g); err != nil {
		if errors.Is(err, domainguest.ErrEmailTaken) {
			// Lost a race with a concurrent create for the same email; the
			// identity that won holds the stored profile.
			return repo.ByEmail(ctx, email)
		}
		return nil, err
	}
	if s.Logger != nil {
		s.Logger.Info("guest created", "guest_id", g.ID)
	}
	return g, nil
}

// UpdateParams carries a partial guest-identity update; nil fields are left
// untouched.
type UpdateParams struct {
	Email     *string
	FirstName *string
	LastName  *string
}

// UpdateIdentity applies params to the guest's profile. When the new email
// already belongs to a different guest the update resolves to that guest
// instead and returns their id; the booking is expected to repoint. The name
// fields in params are NOT applied to the merged-into guest. This
// merge-on-collision semantic is deliberate, not an error.
func (s *Service) UpdateIdentity(ctx context.Context, repo domainguest.Repository, id domainguest.GuestID, params UpdateParams) (domainguest.GuestID, error) {
	g, err := repo.ByID(ctx, id)
	if err != nil {
		return "", err
	}

	if params.Email != nil {
		email := normalizeEmail(*params.Email)
		if email == "" {
			return "", ErrEmailRequired
		}
		other, err := repo.ByEmail(ctx, email)
		switch {
		case err == nil && other.ID != g.ID:
			if s.Logger != nil {
				s.Logger.Info("guest merged on email collision", "from", g.ID, "to", other.ID)
			}
			return other.ID, nil
		case err != nil && !errors.Is(err, domainguest.ErrGuestNotFound):
			return "", err
		}
		g.Email = email
	}

	if params.FirstName != nil {
		g.FirstName = strings.TrimSpace(*params.FirstName)
	}
	if params.LastName != nil {
		g.LastName = strings.TrimSpace(*params.LastName)
	}
	if err := repo.Save(ctx, g); err != nil {
		if errors.Is(err, domainguest.ErrEmailTaken) {
			// A concurrent writer claimed the email between the lookup and
			// the save; resolve to that identity like any other collision.
			other, lookupErr := repo.ByEmail(ctx, g.Email)
			if lookupErr != nil {
				return "", err
			}
			if s.Logger != nil {
				s.Logger.Info("guest merged on email collision", "from", id, "to", other.ID)
			}
			return other.ID, nil
		}
		return "", err
	}
	return g.ID, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
