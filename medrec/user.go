package medrec

import (
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/KARTHIKRAIG/MEDIMORPH/meddb"
)

const (
	maxUsernameLength     = 80
	maxEmailLength        = 120
	maxPasswordHashLength = 200
	maxNameLength         = 50
	maxPhoneLength        = 20
)

const bcryptCost = 12

// User is the root entity; every other record references its owner by
// user id. Usernames and emails are unique across all users, enforced
// by the unique indexes on the users collection.
type User struct {
	meddb.Identity `bson:"inline"`

	Username     string `bson:"username"`
	Email        string `bson:"email"`
	PasswordHash string `bson:"password_hash" json:"-"`

	FirstName   string    `bson:"first_name,omitempty"`
	LastName    string    `bson:"last_name,omitempty"`
	Phone       string    `bson:"phone,omitempty"`
	DateOfBirth time.Time `bson:"date_of_birth,omitempty"`

	IsActive  bool      `bson:"is_active"`
	CreatedAt time.Time `bson:"created_at"`
	LastLogin time.Time `bson:"last_login,omitempty"`
}

// NewUser returns a user with defaults applied: active, created now.
func NewUser(username, email string) *User {
	return &User{
		Username:  username,
		Email:     email,
		IsActive:  true,
		CreatedAt: time.Now().UTC(),
	}
}

// Validate checks field constraints,
// returning a *ValidationError for the first violation.
func (u *User) Validate() error {
	if err := checkRequired("username", u.Username); err != nil {
		return err
	}
	if err := checkMaxLength("username", u.Username, maxUsernameLength); err != nil {
		return err
	}
	if err := checkRequired("email", u.Email); err != nil {
		return err
	}
	if err := checkMaxLength("email", u.Email, maxEmailLength); err != nil {
		return err
	}
	if err := checkRequired("password_hash", u.PasswordHash); err != nil {
		return err
	}
	if err := checkMaxLength("password_hash", u.PasswordHash, maxPasswordHashLength); err != nil {
		return err
	}
	if err := checkMaxLength("first_name", u.FirstName, maxNameLength); err != nil {
		return err
	}
	if err := checkMaxLength("last_name", u.LastName, maxNameLength); err != nil {
		return err
	}
	return checkMaxLength("phone", u.Phone, maxPhoneLength)
}

// SetPassword stores a salted one-way hash of the plaintext.
// The plaintext is never retained, logged or serialized.
func (u *User) SetPassword(plaintext string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcryptCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	u.PasswordHash = string(hash)
	return nil
}

// CheckPassword reports whether the candidate matches the stored hash.
// The comparison is constant-time.
func (u *User) CheckPassword(candidate string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(candidate)) == nil
}

// RecordLogin stamps the last-login time.
// The session layer calls this on successful authentication.
func (u *User) RecordLogin() {
	u.LastLogin = time.Now().UTC()
}

// Serialize returns the transport-safe representation of the user.
// The password hash is never included.
func (u *User) Serialize() map[string]interface{} {
	return map[string]interface{}{
		"id":            hexID(u.ObjectID),
		"username":      u.Username,
		"email":         u.Email,
		"first_name":    u.FirstName,
		"last_name":     u.LastName,
		"phone":         u.Phone,
		"date_of_birth": isoTime(u.DateOfBirth),
		"is_active":     u.IsActive,
		"created_at":    isoTime(u.CreatedAt),
		"last_login":    isoTime(u.LastLogin),
	}
}
