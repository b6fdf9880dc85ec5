package user

import (
	"time"

	"github.com/google/uuid"
)

// User entity. Read-only in this service; account management lives in the
// storefront application.
type User struct {
	id        uuid.UUID
	email     Email
	profile   Profile
	createdAt time.Time
}

func NewUser(email Email, profile Profile) *User {
	return &User{
		id:      uuid.New(),
		email:   email,
		profile: profile,
	}
}

func ReconstructUser(id uuid.UUID, email Email, profile Profile, createdAt time.Time) *User {
	return &User{
		id:        id,
		email:     email,
		profile:   profile,
		createdAt: createdAt,
	}
}

func (u *User) ID() uuid.UUID        { return u.id }
func (u *User) Email() Email         { return u.email }
func (u *User) Profile() Profile     { return u.profile }
func (u *User) CreatedAt() time.Time { return u.createdAt }

// Profile is the shipping profile attached to a user.
// 配送に必須の項目が全て埋まっているかは IsShippable で判定する。
type Profile struct {
	Name       string `json:"name"`
	Zipcode    string `json:"zipcode"`
	Prefecture string `json:"prefecture"`
	City       string `json:"city"`
	Address1   string `json:"address1"`
	Address2   string `json:"address2"`
}

// IsShippable reports whether every field required for shipping is filled.
// Address2 (building name etc.) is optional.
func (p Profile) IsShippable() bool {
	required := []string{p.Name, p.Zipcode, p.Prefecture, p.City, p.Address1}
	for _, f := range required {
		if f == "" {
			return false
		}
	}
	return true
}
