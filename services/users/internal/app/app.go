package app

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"askboard/pkg/domain"
	"askboard/services/users/internal/store"
)

// Config holds runtime configuration for the core application.
type Config struct {
	UsersFile   string
	DatabaseURL string
	Store       store.Store
}

// App is the core application service wiring storage to the user operations.
type App struct {
	store store.Store
}

// New constructs the application. A caller-supplied Store wins (tests);
// otherwise a database URL selects the Postgres store and the default is the
// JSON file store.
func New(cfg Config) (*App, error) {
	dataStore := cfg.Store
	if dataStore == nil {
		if cfg.DatabaseURL != "" {
			var err error
			dataStore, err = store.NewGormStore(cfg.DatabaseURL)
			if err != nil {
				return nil, fmt.Errorf("init postgres store: %w", err)
			}
		} else {
			var err error
			dataStore, err = store.NewFileStore(cfg.UsersFile)
			if err != nil {
				return nil, fmt.Errorf("init file store: %w", err)
			}
		}
	}
	return &App{store: dataStore}, nil
}

// Register creates a new user. All three fields are required; values are
// trimmed before storage and the email must be unused (case-insensitive).
func (a *App) Register(name, surname, email string) (domain.User, error) {
	name = strings.TrimSpace(name)
	surname = strings.TrimSpace(surname)
	email = strings.TrimSpace(email)
	if name == "" || surname == "" || email == "" {
		return domain.User{}, ErrFieldsRequired
	}
	user, err := a.store.CreateUser(domain.User{
		Name:      name,
		Surname:   surname,
		Email:     email,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		if errors.Is(err, store.ErrEmailExists) {
			return domain.User{}, ErrEmailExists
		}
		return domain.User{}, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

// Login resolves an existing user by email, case-insensitively. There is no
// credential check; possession of the email is the whole contract.
func (a *App) Login(email string) (domain.User, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return domain.User{}, ErrEmailRequired
	}
	user, ok, err := a.store.GetUserByEmail(email)
	if err != nil {
		return domain.User{}, fmt.Errorf("fetch user: %w", err)
	}
	if !ok {
		return domain.User{}, ErrUserNotFound
	}
	return user, nil
}

// ListUsers returns all registered users in insertion order.
func (a *App) ListUsers() ([]domain.User, error) {
	return a.store.ListUsers()
}
