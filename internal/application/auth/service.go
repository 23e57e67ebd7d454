package auth

import (
	"errors"
	"strings"
	"sync"

	"estate-backend/internal/domain"
	"estate-backend/internal/middleware"
	"estate-backend/internal/pkg/validation"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// MinPasswordLength applies to signup and to the demo login.
const MinPasswordLength = 6

var (
	ErrEmailPasswordRequired = errors.New("Email and password are required")
	ErrInvalidEmail          = errors.New("Invalid email format")
	ErrInvalidName           = errors.New("Name must contain only letters, spaces, dots, hyphens or apostrophes")
	ErrPasswordTooShort      = errors.New("Password must be at least 6 characters")
	ErrEmailTaken            = errors.New("Email already registered")
	ErrInvalidCredentials    = errors.New("Invalid credentials")
	ErrNotAuthenticated      = errors.New("Not authenticated")
)

// UserFinder authenticates a login attempt.
type UserFinder interface {
	FindByEmailAndPassword(email, password string) (*domain.User, error)
}

// Directory is the in-memory account list. Accounts live only as long as the process.
type Directory struct {
	// DemoUserID is handed to any unregistered email that passes the password check.
	DemoUserID string
	Cost       int // bcrypt cost, bcrypt.DefaultCost when zero

	mu      sync.RWMutex
	byEmail map[string]*domain.User
}

func NewDirectory(demoUserID string) *Directory {
	return &Directory{DemoUserID: demoUserID, byEmail: make(map[string]*domain.User)}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates an account with a fresh uuid id.
func (d *Directory) Register(email, name, password string) (*domain.User, error) {
	email = normalizeEmail(email)
	name = strings.TrimSpace(name)
	if email == "" || password == "" {
		return nil, ErrEmailPasswordRequired
	}
	if !validation.IsValidEmail(email) {
		return nil, ErrInvalidEmail
	}
	if !validation.IsValidName(name) {
		return nil, ErrInvalidName
	}
	if len(password) < MinPasswordLength {
		return nil, ErrPasswordTooShort
	}

	cost := d.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return nil, err
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if _, ok := d.byEmail[email]; ok {
		return nil, ErrEmailTaken
	}
	u := &domain.User{ID: uuid.NewString(), Email: email, Name: name, PasswordHash: string(hash)}
	d.byEmail[email] = u
	c := *u
	return &c, nil
}

// FindByEmailAndPassword checks registered accounts against their hash. Any other
// well-formed email signs in as the demo user, named after the email's local part.
func (d *Directory) FindByEmailAndPassword(email, password string) (*domain.User, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, ErrEmailPasswordRequired
	}
	if len(password) < MinPasswordLength {
		return nil, ErrInvalidCredentials
	}

	d.mu.RLock()
	u, ok := d.byEmail[email]
	d.mu.RUnlock()
	if ok {
		if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
			return nil, ErrInvalidCredentials
		}
		c := *u
		return &c, nil
	}

	if !validation.IsValidEmail(email) {
		return nil, ErrInvalidEmail
	}
	return &domain.User{ID: d.DemoUserID, Email: email, Name: strings.SplitN(email, "@", 2)[0]}, nil
}

// VerifyUser reads the session's user value.
func VerifyUser(sessionUser interface{}) (*middleware.SessionUser, error) {
	u, ok := middleware.SessionUserFrom(sessionUser)
	if !ok {
		return nil, ErrNotAuthenticated
	}
	return u, nil
}
