package usersrepo

import "time"

// User is the account entity.
type User struct {
	UserID       string    `db:"user_id" json:"userId"`
	Email        string    `db:"email" json:"email"`
	FullName     string    `db:"full_name" json:"fullName"`
	PasswordHash string    `db:"password_hash" json:"-"`
	CreatedAt    time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt    time.Time `db:"updated_at" json:"updatedAt"`
}

// CreateUser contains fields for creating a new user.
type CreateUser struct {
	Email        string
	FullName     string
	PasswordHash string
}

// UpdateUser contains fields for updating an existing user.
// All fields are optional (pointers) to support partial updates.
type UpdateUser struct {
	FullName     *string
	PasswordHash *string
	UpdatedAt    *time.Time
}
