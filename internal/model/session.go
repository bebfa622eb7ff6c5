package model

import (
	"time"

	"github.com/google/uuid"
)

// Supported interface languages.
const (
	LanguageEnglish = "en"
	LanguageKannada = "kn"
)

// DefaultLanguage is assigned to new sessions.
const DefaultLanguage = LanguageEnglish

// Session holds the client state the mobile app used to keep on the device.
type Session struct {
	ID                uuid.UUID `json:"id" db:"id"`
	Language          string    `json:"language" db:"language"`
	HasSeenOnboarding bool      `json:"hasSeenOnboarding" db:"has_seen_onboarding"`
	UserName          *string   `json:"userName,omitempty" db:"user_name"`
	CreatedAt         time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt         time.Time `json:"updatedAt" db:"updated_at"`
}

// IsSupportedLanguage reports whether lang is a known interface language.
func IsSupportedLanguage(lang string) bool {
	return lang == LanguageEnglish || lang == LanguageKannada
}

// Credentials is the payload for login and registration.
type Credentials struct {
	Name     string `json:"name" validate:"required,min=2,max=64"`
	Password string `json:"password" validate:"required,min=4,max=128"`
}

// Account is the profile returned by the upstream after login.
type Account struct {
	Token string `json:"token"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// LanguageRequest is the payload for changing the session language.
type LanguageRequest struct {
	Language string `json:"language" validate:"required,oneof=en kn"`
}
