package model

import "time"

// Role names stored in the users.role column and embedded in access
// tokens.  The set is closed; RequireRole middleware rejects anything
// outside it.
const (
	RolePlayer   = "PLAYER"
	RoleManager  = "MANAGER"
	RoleOwner    = "OWNER"
	RolePromoter = "PROMOTER"
	RoleReferee  = "REFEREE"
	RoleAdmin    = "ADMIN"
)

// ValidRole reports whether the given name belongs to the closed role set.
func ValidRole(role string) bool {
	switch role {
	case RolePlayer, RoleManager, RoleOwner, RolePromoter, RoleReferee, RoleAdmin:
		return true
	}
	return false
}

// User represents an application user record as stored in the `users`
// table.  Handlers define separate response types with JSON tags; this
// struct is used by the repository layer only.
//
// Fields:
//  ID           – primary key identifier of the user.
//  Email        – unique email address.
//  PasswordHash – bcrypt hashed password.
//  Name         – display name.
//  Role         – one of the role constants above.
//  IsActive     – whether the account is active.
//  CreatedAt    – timestamp of creation.
//  UpdatedAt    – timestamp of last update.
type User struct {
	ID           uint64    // users.id
	Email        string    // users.email
	PasswordHash string    // users.password_hash
	Name         string    // users.name
	Role         string    // users.role
	IsActive     bool      // users.is_active
	CreatedAt    time.Time // users.created_at
	UpdatedAt    time.Time // users.updated_at
}

// RefreshToken models an entry in the `refresh_tokens` table.  Each
// refresh token belongs to a user; only a SHA-256 hash of the raw
// token value is stored.
//
// Fields:
//  ID        – primary key identifier.
//  UserID    – owner of the token.
//  TokenHash – SHA-256 hex digest of the token value.
//  ExpiresAt – expiration timestamp of the token.
//  RevokedAt – when the token was revoked (null if still active).
//  CreatedAt – timestamp of creation.
type RefreshToken struct {
	ID        uint64     // refresh_tokens.id
	UserID    uint64     // refresh_tokens.user_id
	TokenHash string     // refresh_tokens.token_hash
	ExpiresAt time.Time  // refresh_tokens.expires_at
	RevokedAt *time.Time // refresh_tokens.revoked_at (nullable)
	CreatedAt time.Time  // refresh_tokens.created_at
}
