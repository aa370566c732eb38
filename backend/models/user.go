package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	Email        string `gorm:"unique;not null"`
	PasswordHash string `gorm:"not null"`
	Age          *int
	Gender       string // Male, Female, Other
	Occupation   string // Student, Employed, Self-employed
	WorkMode     string // Remote, Hybrid, On-site
}

// HasPersona reports whether the profile step ever happened. Submission is
// rejected until then; individually missing fields are defaulted instead.
func (u *User) HasPersona() bool {
	return u.Age != nil || u.Gender != "" || u.Occupation != "" || u.WorkMode != ""
}

type LoginHistory struct {
	gorm.Model
	UserID    uint
	LoginTime time.Time
}
