// Package referral derives the short shareable codes that identify a
// channel partner on public lead submissions.
package referral

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"regexp"
	"strings"
	"unicode"
)

// CodePattern is the canonical referral code format: up to three name
// initials followed by six digits.
var CodePattern = regexp.MustCompile(`^[A-Z]{0,3}\d{6}$`)

var randomInt = func(max int64) (int64, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(max))
	if err != nil {
		return 0, err
	}
	return n.Int64(), nil
}

// Generate builds a referral code from a partner's full name: the first
// letter of up to the first three words, uppercased, plus a random
// six-digit suffix in [100000, 999999]. Uniqueness is the caller's job.
func Generate(fullName string) (string, error) {
	var prefix strings.Builder
	words := strings.Fields(fullName)
	if len(words) > 3 {
		words = words[:3]
	}
	for _, w := range words {
		first := []rune(w)[0]
		if unicode.IsLetter(first) {
			prefix.WriteRune(unicode.ToUpper(first))
		}
	}

	n, err := randomInt(900000)
	if err != nil {
		return "", fmt.Errorf("failed to generate referral suffix: %w", err)
	}
	return fmt.Sprintf("%s%06d", prefix.String(), 100000+n), nil
}

// Normalize canonicalizes user-supplied codes before lookup.
func Normalize(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
