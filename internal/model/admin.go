package model

import (
	"github.com/google/uuid"
)

// DefaultAdminUsername is the administrator account name provisioned
// on first seed.
const DefaultAdminUsername = "admincareconnect"

type Admin struct {
	ID         uuid.UUID
	username   string
	credential Credential
}

func NewAdmin(username string) *Admin {
	if username == "" {
		username = DefaultAdminUsername
	}
	return &Admin{
		ID:       uuid.New(),
		username: username,
	}
}

// RestoreAdmin rebuilds an admin from persisted state.
func RestoreAdmin(id uuid.UUID, username string, credential Credential) *Admin {
	return &Admin{
		ID:         id,
		username:   username,
		credential: credential,
	}
}

func (a *Admin) Username() string       { return a.username }
func (a *Admin) Credential() Credential { return a.credential }

func (a *Admin) SetUsername(value string) error {
	v, err := validateName("username", value)
	if err != nil {
		return err
	}
	a.username = v
	return nil
}

func (a *Admin) SetCredential(plaintext string) error {
	return a.credential.Set(plaintext)
}

func (a *Admin) Authenticate(plaintext string) bool {
	return a.credential.Verify(plaintext)
}

func (a *Admin) RestoreCredential(c Credential) {
	a.credential = c
}

func (a *Admin) Serialize() map[string]interface{} {
	return map[string]interface{}{
		"id":       a.ID,
		"username": a.username,
	}
}
