package model

import (
	"database/sql/driver"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/itsivali/careconnect-v1/pkg/errors"
)

// Credential stores a salted one-way hash of a secret. The plaintext
// is never retained, and the hash has no public read accessor; callers
// get Set and Verify only. The Valuer/Scanner implementations exist
// solely so the persistence layer can round-trip the hash column.
type Credential struct {
	hash string
}

// Set hashes the plaintext with bcrypt and stores only the hash.
func (c *Credential) Set(plaintext string) error {
	h, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcrypt.DefaultCost)
	if err != nil {
		return errors.NewInternal(err)
	}
	c.hash = string(h)
	return nil
}

// Hash always fails: credentials are write-only.
func (c *Credential) Hash() (string, error) {
	return "", errors.ErrCredentialRead
}

// Verify reports whether the plaintext matches the stored hash. It
// never reveals the stored value.
func (c *Credential) Verify(plaintext string) bool {
	if c.hash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(c.hash), []byte(plaintext)) == nil
}

// Value implements driver.Valuer for the password hash column.
func (c Credential) Value() (driver.Value, error) {
	return c.hash, nil
}

// Scan implements sql.Scanner for the password hash column.
func (c *Credential) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		c.hash = ""
	case string:
		c.hash = v
	case []byte:
		c.hash = string(v)
	default:
		return fmt.Errorf("cannot scan %T into Credential", src)
	}
	return nil
}
