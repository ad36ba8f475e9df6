package storefront

import (
	"encoding/json"
	"strings"
)

const profileKey = "userProfile"

// Profile is the locally cached identity of the signed-in user. No password
// is retained beyond the initial login or registration exchange.
type Profile struct {
	FIO   string `json:"fio"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// Complete reports whether the profile can serve as a checkout identity.
func (p Profile) Complete() bool {
	return strings.TrimSpace(p.FIO) != "" &&
		strings.TrimSpace(p.Email) != "" &&
		strings.TrimSpace(p.Phone) != ""
}

// Session owns the profile lifecycle: established on login or registration,
// persisted locally, cleared on logout.
type Session struct {
	storage Storage
	profile *Profile
}

// NewSession loads any previously saved profile.
func NewSession(storage Storage) (*Session, error) {
	session := &Session{storage: storage}

	data, ok, err := storage.Get(profileKey)
	if err != nil {
		return nil, err
	}
	if ok {
		var profile Profile
		if err := json.Unmarshal(data, &profile); err == nil {
			session.profile = &profile
		}
	}

	return session, nil
}

// Current returns the active profile, if any.
func (s *Session) Current() (Profile, bool) {
	if s.profile == nil {
		return Profile{}, false
	}
	return *s.profile, true
}

// Establish saves the profile as the active identity.
func (s *Session) Establish(profile Profile) error {
	s.profile = &profile
	data, err := json.Marshal(profile)
	if err != nil {
		return err
	}
	return s.storage.Set(profileKey, data)
}

// Clear forgets the active identity.
func (s *Session) Clear() error {
	s.profile = nil
	return s.storage.Delete(profileKey)
}
