// Package credentials generates the username, email and password of the panel
// account created for each provisioning request.
package credentials

import (
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"strings"
)

const (
	suffixCharset   = "abcdefghijklmnopqrstuvwxyz0123456789"
	passwordCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789!@#$%^&*"

	DefaultPasswordLength = 12
	MinPasswordLength     = 8
	SuffixLength          = 5

	maxSlugLength = 40
	fallbackSlug  = "user"
)

// Credentials are the generated login details of a new panel account.
type Credentials struct {
	Username string
	Email    string
	Password string
}

// Generator derives credentials from a free-form server name.
//
// Usernames are not guaranteed to be unique: the random suffix only makes
// collisions unlikely, and the panel reports the rare collision as a conflict.
type Generator struct {
	// PasswordLength defaults to DefaultPasswordLength.
	PasswordLength int

	// EmailDomain is used as username@EmailDomain when set. When empty the
	// address is slug@suffix.com.
	EmailDomain string

	// Rand defaults to crypto/rand.Reader.
	Rand io.Reader
}

// NewGenerator returns a Generator with the given password length and email domain.
func NewGenerator(passwordLength int, emailDomain string) (*Generator, error) {
	if passwordLength == 0 {
		passwordLength = DefaultPasswordLength
	}
	if passwordLength < MinPasswordLength {
		return nil, fmt.Errorf("password length %d is below the minimum of %d", passwordLength, MinPasswordLength)
	}
	return &Generator{
		PasswordLength: passwordLength,
		EmailDomain:    strings.TrimPrefix(strings.TrimSpace(emailDomain), "@"),
	}, nil
}

// Generate returns fresh credentials for serverName.
func (g *Generator) Generate(serverName string) (*Credentials, error) {
	slug := Slug(serverName)

	suffix, err := randomString(g.rand(), suffixCharset, SuffixLength)
	if err != nil {
		return nil, fmt.Errorf("could not generate username suffix: %w", err)
	}

	length := g.PasswordLength
	if length == 0 {
		length = DefaultPasswordLength
	}
	password, err := randomString(g.rand(), passwordCharset, length)
	if err != nil {
		return nil, fmt.Errorf("could not generate password: %w", err)
	}

	username := slug + "_" + suffix
	email := slug + "@" + suffix + ".com"
	if g.EmailDomain != "" {
		email = username + "@" + g.EmailDomain
	}

	return &Credentials{
		Username: username,
		Email:    email,
		Password: password,
	}, nil
}

func (g *Generator) rand() io.Reader {
	if g.Rand != nil {
		return g.Rand
	}
	return rand.Reader
}

// Slug lower-cases name and keeps only [a-z0-9]. An empty result becomes "user".
func Slug(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			if b.Len() == maxSlugLength {
				break
			}
		}
	}
	if b.Len() == 0 {
		return fallbackSlug
	}
	return b.String()
}

// randomString draws n characters uniformly from charset using rejection sampling.
func randomString(r io.Reader, charset string, n int) (string, error) {
	if len(charset) == 0 || len(charset) > 256 {
		return "", errors.New("invalid charset")
	}
	limit := 256 - 256%len(charset)

	out := make([]byte, 0, n)
	buf := make([]byte, n)
	for len(out) < n {
		if _, err := io.ReadFull(r, buf); err != nil {
			return "", err
		}
		for _, b := range buf {
			if int(b) >= limit {
				continue
			}
			out = append(out, charset[int(b)%len(charset)])
			if len(out) == n {
				break
			}
		}
	}
	return string(out), nil
}
