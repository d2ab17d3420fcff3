package usersessionsrepo

import "time"

// UserSession is a bearer-token session row.
type UserSession struct {
	SessionID string    `db:"session_id" json:"sessionId"`
	UserID    string    `db:"user_id" json:"userId"`
	Token     string    `db:"token" json:"-"`
	ExpiresAt time.Time `db:"expires_at" json:"expiresAt"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

// CreateUserSession contains fields for creating a new session.
type CreateUserSession struct {
	UserID    string
	Token     string
	ExpiresAt time.Time
}
