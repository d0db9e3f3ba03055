package store

import (
	"errors"

	"askboard/pkg/domain"
)

// ErrEmailExists reports a case-insensitive email uniqueness violation.
var ErrEmailExists = errors.New("email already exists")

// Store defines persistence operations for registered users.
//
// CreateUser runs the whole uniqueness-check / id-allocation / append /
// persist cycle as one critical section; callers only fill in name, surname,
// email and createdAt and receive the stored record with its id assigned.
type Store interface {
	CreateUser(u domain.User) (domain.User, error)
	GetUserByEmail(email string) (domain.User, bool, error)
	ListUsers() ([]domain.User, error)
}
