package user

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/badoux/checkmail"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const (
	maxEmailLength    = 120
	maxNameLength     = 80
	minPasswordLength = 8
	bcryptCost        = 12
)

var (
	ErrInvalidEmail       = errors.New("email address is not valid")
	ErrEmailLength        = fmt.Errorf("email address is too long, max length: %d", maxEmailLength)
	ErrInvalidName        = errors.New("name must not be empty")
	ErrNameLength         = fmt.Errorf("name is too long, max length: %d", maxNameLength)
	ErrPasswordTooShort   = fmt.Errorf("password must be at least %d characters", minPasswordLength)
	ErrPasswordMismatch   = errors.New("password confirmation does not match")
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInternalError      = errors.New("internal Server Error")
)

type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// AccountSeeder creates the default account set for a fresh user.
type AccountSeeder interface {
	SeedDefaults(userID string) error
}

type Service interface {
	Register(name, email, password, confirmPassword string) (*User, error)
	Authenticate(email, password string) (*User, error)
	GetUserByID(userID string) (*User, error)
}

type service struct {
	repo   Repository
	seeder AccountSeeder
}

func NewUserService(repo Repository, seeder AccountSeeder) Service {
	return &service{
		repo:   repo,
		seeder: seeder,
	}
}

func hashPassword(password string) (string, error) {
	hashedPasswordBytes, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	return string(hashedPasswordBytes), err
}

func validateEmailAddress(email string) error {
	if err := checkmail.ValidateFormat(email); err != nil {
		return ErrInvalidEmail
	}
	if len(email) > maxEmailLength {
		return ErrEmailLength
	}
	return nil
}

func (s *service) Register(name, email, password, confirmPassword string) (*User, error) {
	if name == "" {
		return nil, ErrInvalidName
	}
	if len(name) > maxNameLength {
		return nil, ErrNameLength
	}
	if err := validateEmailAddress(email); err != nil {
		return nil, err
	}
	if len(password) < minPasswordLength {
		return nil, ErrPasswordTooShort
	}
	if password != confirmPassword {
		return nil, ErrPasswordMismatch
	}

	exists, err := s.repo.emailExists(email)
	if err != nil {
		log.Printf("could not check existing email: %v", err)
		return nil, ErrInternalError
	}
	if exists {
		return nil, ErrEmailAlreadyExists
	}

	passwordHash, err := hashPassword(password)
	if err != nil {
		log.Printf("could not hash password: %v", err)
		return nil, ErrInternalError
	}

	user := &User{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
	}
	if err := s.repo.createUser(user); err != nil {
		log.Printf("could not create user: %v", err)
		return nil, ErrInternalError
	}

	if err := s.seeder.SeedDefaults(user.ID); err != nil {
		log.Printf("could not seed default accounts for user %s: %v", user.ID, err)
	}

	return user, nil
}

// Authenticate never reveals whether the email or the password was wrong.
func (s *service) Authenticate(email, password string) (*User, error) {
	existingUser, err := s.repo.getUserByEmail(email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		log.Printf("could not load user by email: %v", err)
		return nil, ErrInternalError
	}

	if err := bcrypt.CompareHashAndPassword([]byte(existingUser.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	// Older users can predate the default account set.
	if err := s.seeder.SeedDefaults(existingUser.ID); err != nil {
		log.Printf("could not seed default accounts for user %s: %v", existingUser.ID, err)
	}

	return existingUser, nil
}

func (s *service) GetUserByID(userID string) (*User, error) {
	return s.repo.getUserByID(userID)
}
