package auth

import (
	"errors"

	"github.com/openmarket/marketplace-backend/internal/user"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

// Principal is the identity a successful credential check resolves to.
// ID is zero for principals without a directory entry (the dev admin).
type Principal struct {
	ID       int
	Email    string
	Username string
}

// CredentialChecker validates a username/password pair. Implementations are
// pluggable so the dev pair can be swapped for real verification.
type CredentialChecker interface {
	Check(username, password string) (Principal, error)
}

// StaticChecker accepts one fixed username/password pair. It backs the
// development login and should be left unconfigured in production.
type StaticChecker struct {
	Username string
	Password string
}

func (s StaticChecker) Check(username, password string) (Principal, error) {
	if s.Username == "" || username != s.Username || password != s.Password {
		return Principal{}, ErrInvalidCredentials
	}
	return Principal{Username: s.Username}, nil
}

// DirectoryChecker verifies against the user directory, treating the
// username as the account email.
type DirectoryChecker struct {
	Users *user.Service
}

func (d DirectoryChecker) Check(username, password string) (Principal, error) {
	u, err := d.Users.Authenticate(username, password)
	if err != nil {
		return Principal{}, ErrInvalidCredentials
	}
	return Principal{ID: u.ID, Email: u.Email, Username: u.Email}, nil
}

// MultiChecker tries each checker in order and succeeds on the first match.
type MultiChecker []CredentialChecker

func (m MultiChecker) Check(username, password string) (Principal, error) {
	for _, c := range m {
		if p, err := c.Check(username, password); err == nil {
			return p, nil
		}
	}
	return Principal{}, ErrInvalidCredentials
}
