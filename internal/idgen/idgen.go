// Package idgen generates the short, URL-safe identifiers used for
// optimistic local entities before the backend assigns a real ID.
package idgen

import (
	"fmt"
	"strings"

	nanoid "github.com/matoous/go-nanoid/v2"
)

// TempPrefix marks an ID as client-generated. The backend never issues IDs
// with this prefix.
var TempPrefix = "temp-"

// Alphabet defines the character set used for the random portion of the ID.
var Alphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// Length is the number of random characters generated (excluding the prefix).
var Length = 12

// Temp returns a new temporary ID.
func Temp() (string, error) {
	return GenerateWithPrefix(TempPrefix)
}

// GenerateWithPrefix returns a new unique ID with the given prefix.
func GenerateWithPrefix(prefix string) (string, error) {
	id, err := nanoid.Generate(Alphabet, Length)
	if err != nil {
		return "", fmt.Errorf("idgen: %w", err)
	}
	return prefix + id, nil
}

// IsTemp reports whether id was produced by Temp.
func IsTemp(id string) bool {
	return strings.HasPrefix(id, TempPrefix)
}

// inviteAlphabet omits characters that are easy to misread when a code is
// typed by hand (0/O, 1/I/l).
const inviteAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// InviteCode returns a random, human-typable join code of length n.
func InviteCode(n int) (string, error) {
	code, err := nanoid.Generate(inviteAlphabet, n)
	if err != nil {
		return "", fmt.Errorf("idgen: %w", err)
	}
	return code, nil
}
