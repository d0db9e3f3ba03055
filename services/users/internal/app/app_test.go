package app

import (
	"errors"
	"path/filepath"
	"testing"

	"askboard/services/users/internal/store"
)

func newTestApp(t *testing.T) *App {
	t.Helper()
	a, err := New(Config{UsersFile: filepath.Join(t.TempDir(), "users.json")})
	if err != nil {
		t.Fatalf("new app: %v", err)
	}
	return a
}

func TestRegisterAssignsSequentialIDs(t *testing.T) {
	a := newTestApp(t)
	for i, email := range []string{"a@x.com", "b@x.com", "c@x.com"} {
		user, err := a.Register("Name", "Surname", email)
		if err != nil {
			t.Fatalf("register %s: %v", email, err)
		}
		if user.ID != i+1 {
			t.Fatalf("register %s got id %d, want %d", email, user.ID, i+1)
		}
	}
}

func TestRegisterTrimsFields(t *testing.T) {
	a := newTestApp(t)
	user, err := a.Register("  Alice ", " Smith", " alice@x.com  ")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if user.Name != "Alice" || user.Surname != "Smith" || user.Email != "alice@x.com" {
		t.Fatalf("fields not trimmed: %+v", user)
	}
}

func TestRegisterRequiresAllFields(t *testing.T) {
	a := newTestApp(t)
	cases := []struct {
		name, surname, email string
	}{
		{"", "Smith", "a@x.com"},
		{"Alice", "", "a@x.com"},
		{"Alice", "Smith", ""},
		{"   ", "Smith", "a@x.com"},
	}
	for _, tc := range cases {
		if _, err := a.Register(tc.name, tc.surname, tc.email); !errors.Is(err, ErrFieldsRequired) {
			t.Fatalf("register(%q, %q, %q) = %v, want ErrFieldsRequired", tc.name, tc.surname, tc.email, err)
		}
	}
}

func TestRegisterRejectsDuplicateEmailIgnoringCase(t *testing.T) {
	a := newTestApp(t)
	if _, err := a.Register("Alice", "Smith", "alice@x.com"); err != nil {
		t.Fatalf("first register: %v", err)
	}
	if _, err := a.Register("Other", "Person", "Alice@X.COM"); !errors.Is(err, ErrEmailExists) {
		t.Fatalf("duplicate register = %v, want ErrEmailExists", err)
	}
	users, err := a.ListUsers()
	if err != nil {
		t.Fatalf("list users: %v", err)
	}
	if len(users) != 1 {
		t.Fatalf("have %d users after rejected duplicate, want 1", len(users))
	}
}

func TestLoginFindsUserIgnoringCase(t *testing.T) {
	a := newTestApp(t)
	created, err := a.Register("Alice", "Smith", "alice@x.com")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	user, err := a.Login("ALICE@x.com")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if user.ID != created.ID || user.Email != created.Email {
		t.Fatalf("login returned %+v, want %+v", user, created)
	}
}

func TestLoginUnknownEmail(t *testing.T) {
	a := newTestApp(t)
	if _, err := a.Login("ghost@x.com"); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("login unknown = %v, want ErrUserNotFound", err)
	}
}

func TestLoginRequiresEmail(t *testing.T) {
	a := newTestApp(t)
	if _, err := a.Login("   "); !errors.Is(err, ErrEmailRequired) {
		t.Fatalf("login blank = %v, want ErrEmailRequired", err)
	}
}

func TestNewWithExplicitStore(t *testing.T) {
	fileStore, err := store.NewFileStore(filepath.Join(t.TempDir(), "users.json"))
	if err != nil {
		t.Fatalf("new file store: %v", err)
	}
	a, err := New(Config{Store: fileStore})
	if err != nil {
		t.Fatalf("new app: %v", err)
	}
	if _, err := a.Register("Alice", "Smith", "alice@x.com"); err != nil {
		t.Fatalf("register via injected store: %v", err)
	}
}
