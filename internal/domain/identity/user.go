package identity

import (
	"regexp"
	"strings"

	"github.com/peeves/backend/internal/domain/shared"
	"golang.org/x/crypto/bcrypt"
)

// Password cost for bcrypt
const bcryptCost = 12

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// User represents a storefront account.
// The email is the login identifier and never changes after registration.
type User struct {
	shared.BaseAggregateRoot
	Email        string `gorm:"type:varchar(254);not null;uniqueIndex"`
	PasswordHash string `gorm:"type:varchar(100);not null"`
	FirstName    string `gorm:"type:varchar(100)"`
	Address      string `gorm:"type:varchar(200)"`
	PostalCode   string `gorm:"type:varchar(20)"`
	City         string `gorm:"type:varchar(100)"`
	Admin        bool   `gorm:"not null;default:false"`
}

// TableName returns the table name for GORM
func (User) TableName() string {
	return "users"
}

// NewUser creates a new account from an email and plain-text password
func NewUser(email, password string) (*User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if err := validateEmail(email); err != nil {
		return nil, err
	}
	if err := validatePassword(password); err != nil {
		return nil, err
	}

	hash, err := hashPassword(password)
	if err != nil {
		return nil, shared.NewDomainError("PASSWORD_HASH_ERROR", "Failed to hash password")
	}

	user := &User{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Email:             email,
		PasswordHash:      hash,
	}

	user.AddDomainEvent(NewUserRegisteredEvent(user))

	return user, nil
}

// CheckPassword verifies a plain-text password against the stored hash
func (u *User) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

// ChangePassword replaces the stored password hash
func (u *User) ChangePassword(password string) error {
	if err := validatePassword(password); err != nil {
		return err
	}
	hash, err := hashPassword(password)
	if err != nil {
		return shared.NewDomainError("PASSWORD_HASH_ERROR", "Failed to hash password")
	}
	u.PasswordHash = hash
	u.Touch()
	u.IncrementVersion()
	return nil
}

// UpdateProfile updates the shipping profile. The email is not part of the
// profile and stays as registered.
func (u *User) UpdateProfile(firstName, address, postalCode, city string) error {
	if len(firstName) > 100 {
		return shared.NewDomainError("INVALID_PROFILE", "First name cannot exceed 100 characters")
	}
	if len(address) > 200 {
		return shared.NewDomainError("INVALID_PROFILE", "Address cannot exceed 200 characters")
	}

	u.FirstName = strings.TrimSpace(firstName)
	u.Address = strings.TrimSpace(address)
	u.PostalCode = strings.TrimSpace(postalCode)
	u.City = strings.TrimSpace(city)
	u.Touch()
	u.IncrementVersion()

	return nil
}

// SetAdmin grants or revokes the admin claim. Sessions issued before the
// change keep their old claim until the next login.
func (u *User) SetAdmin(enabled bool) {
	if u.Admin == enabled {
		return
	}
	u.Admin = enabled
	u.Touch()
	u.IncrementVersion()

	u.AddDomainEvent(NewAdminClaimChangedEvent(u))
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func validateEmail(email string) error {
	if email == "" {
		return shared.NewDomainError("INVALID_EMAIL", "Email is required")
	}
	if len(email) > 254 || !emailRegex.MatchString(email) {
		return shared.NewDomainError("INVALID_EMAIL", "Email format is invalid")
	}
	return nil
}

func validatePassword(password string) error {
	if len(password) < 8 {
		return shared.NewDomainError("INVALID_PASSWORD", "Password must be at least 8 characters")
	}
	if len(password) > 72 {
		// bcrypt truncates beyond 72 bytes
		return shared.NewDomainError("INVALID_PASSWORD", "Password cannot exceed 72 characters")
	}
	return nil
}
