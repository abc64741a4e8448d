package notif

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"culturlens/internal/common"
	"culturlens/internal/dbmysql"

	"gorm.io/gorm"
)

// UserDirectory is the slice of the user store the resolver needs.
// Satisfied by user.UserRepository.
type UserDirectory interface {
	GetUserByID(ctx context.Context, userID uint64) (*dbmysql.User, error)
	GetUserByUsername(ctx context.Context, username string) (*dbmysql.User, error)
}

// IdentityResolver turns a username or numeric id into a stable Identity.
// Pure lookup, no side effects.
type IdentityResolver struct {
	users UserDirectory
}

func NewIdentityResolver(users UserDirectory) *IdentityResolver {
	return &IdentityResolver{users: users}
}

func (r *IdentityResolver) Resolve(ctx context.Context, username string) (common.Identity, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return common.Identity{}, fmt.Errorf("%w: empty identifier", common.ErrUserNotFound)
	}

	user, err := r.users.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return common.Identity{}, fmt.Errorf("%w: %s", common.ErrUserNotFound, username)
		}
		return common.Identity{}, fmt.Errorf("failed to resolve user %s: %w", username, err)
	}

	return identityOf(user), nil
}

func (r *IdentityResolver) ResolveID(ctx context.Context, userID uint64) (common.Identity, error) {
	if userID == 0 {
		return common.Identity{}, fmt.Errorf("%w: empty identifier", common.ErrUserNotFound)
	}

	user, err := r.users.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return common.Identity{}, fmt.Errorf("%w: id %d", common.ErrUserNotFound, userID)
		}
		return common.Identity{}, fmt.Errorf("failed to resolve user %d: %w", userID, err)
	}

	return identityOf(user), nil
}

func identityOf(user *dbmysql.User) common.Identity {
	name := user.DisplayName
	if name == "" {
		name = user.Username
	}
	return common.Identity{
		ID:          user.UserID,
		DisplayName: name,
		Handle:      user.Username,
		AvatarRef:   user.AvatarRef,
	}
}
