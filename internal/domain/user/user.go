// Package user models the people who file and work tickets. Authentication
// is handled elsewhere; this package only carries identity and privilege.
package user

import (
	"errors"
	"fmt"
	"net/mail"
	"regexp"
	"strings"
	"time"
)

var ErrUserNotFound = errors.New("user not found")

var usernamePattern = regexp.MustCompile(`^[\w.@+-]{1,150}$`)

type User struct {
	id          uint
	username    string
	email       string
	firstName   string
	lastName    string
	isStaff     bool
	isSuperuser bool
	isActive    bool
	groups      []string
	createdAt   time.Time
}

func NewUser(username, email, firstName, lastName string) (*User, error) {
	if !usernamePattern.MatchString(username) {
		return nil, fmt.Errorf("invalid username: %q", username)
	}
	if email != "" {
		if _, err := mail.ParseAddress(email); err != nil {
			return nil, fmt.Errorf("invalid email: %q", email)
		}
	}
	return &User{
		username:  username,
		email:     email,
		firstName: strings.TrimSpace(firstName),
		lastName:  strings.TrimSpace(lastName),
		isActive:  true,
		createdAt: time.Now().UTC(),
	}, nil
}

func ReconstructUser(
	id uint,
	username, email, firstName, lastName string,
	isStaff, isSuperuser, isActive bool,
	groups []string,
	createdAt time.Time,
) *User {
	return &User{
		id:          id,
		username:    username,
		email:       email,
		firstName:   firstName,
		lastName:    lastName,
		isStaff:     isStaff,
		isSuperuser: isSuperuser,
		isActive:    isActive,
		groups:      groups,
		createdAt:   createdAt,
	}
}

func (u *User) ID() uint             { return u.id }
func (u *User) Username() string     { return u.username }
func (u *User) Email() string        { return u.email }
func (u *User) FirstName() string    { return u.firstName }
func (u *User) LastName() string     { return u.lastName }
func (u *User) IsStaff() bool        { return u.isStaff }
func (u *User) IsSuperuser() bool    { return u.isSuperuser }
func (u *User) IsActive() bool       { return u.isActive }
func (u *User) CreatedAt() time.Time { return u.createdAt }

// Groups returns the group names the user belonged to when loaded.
func (u *User) Groups() []string {
	out := make([]string, len(u.groups))
	copy(out, u.groups)
	return out
}

// DisplayName prefers the full name and falls back to the username.
func (u *User) DisplayName() string {
	if u.firstName == "" {
		return u.username
	}
	return strings.TrimSpace(u.firstName + " " + u.lastName)
}

func (u *User) SetID(id uint) error {
	if u.id != 0 {
		return fmt.Errorf("user ID is already set")
	}
	u.id = id
	return nil
}

func (u *User) SetStaff(staff bool)         { u.isStaff = staff }
func (u *User) SetSuperuser(superuser bool) { u.isSuperuser = superuser }
