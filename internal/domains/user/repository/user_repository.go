package repository

import (
	"context"

	"github.com/google/uuid"

	"bloghub-backend/internal/domains/user/model"
)

// UserRepository is the account store. Email uniqueness is enforced by
// the database, not by callers.
type UserRepository interface {
	// Create stores a new user. Returns model.ErrEmailAlreadyExists when
	// the email is taken.
	Create(ctx context.Context, u *model.User) error

	FindByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)

	List(ctx context.Context) ([]*model.User, error)
	ListPendingApproval(ctx context.Context) ([]*model.User, error)
	CountPendingApproval(ctx context.Context) (int, error)

	// Approve marks the user approved and stamps approved_at. Returns
	// model.ErrUserNotFound when the id does not reference a
	// still-pending user.
	Approve(ctx context.Context, id uuid.UUID) (*model.User, error)

	// Delete removes the account. Used when an admin rejects a signup.
	Delete(ctx context.Context, id uuid.UUID) error
}
