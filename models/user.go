package models

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

// UserRole enum
type UserRole string

const (
	RoleCitizen    UserRole = "CITIZEN"
	RoleCouncillor UserRole = "COUNCILLOR"
)

// ValidRole reports whether r is one of the recognized roles
func ValidRole(r UserRole) bool {
	return r == RoleCitizen || r == RoleCouncillor
}

type User struct {
	ID        string    `bson:"id" json:"id"`
	Name      string    `bson:"name" json:"name"`
	Email     string    `bson:"email" json:"email"`
	Password  string    `bson:"password,omitempty" json:"-"`
	Role      UserRole  `bson:"role" json:"role"`
	WardID    string    `bson:"wardId" json:"wardId"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// HashPassword replaces the plaintext password with its bcrypt hash.
// The hash is kept on the record but login never compares against it;
// credential checking is outside the current contract.
func (u *User) HashPassword() error {
	hashed, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.Password = string(hashed)
	return nil
}
