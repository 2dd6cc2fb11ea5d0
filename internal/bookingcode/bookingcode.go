package bookingcode

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"strings"

	"github.com/google/uuid"
)

const (
	shortBytes  = 6
	MaxAttempts = 5
)

// Checker reports whether a code is already taken.
type Checker interface {
	BookingCodeExists(ctx context.Context, code string) (bool, error)
}

type Generator struct {
	short func() (string, error)
	long  func() string
}

func New() *Generator {
	return &Generator{short: randomShort, long: randomLong}
}

// Generate tries MaxAttempts short codes and then falls back to a long
// code that is not checked again.
func (g *Generator) Generate(ctx context.Context, chk Checker) (string, error) {
	for i := 0; i < MaxAttempts; i++ {
		code, err := g.short()
		if err != nil {
			return "", err
		}
		taken, err := chk.BookingCodeExists(ctx, code)
		if err != nil {
			return "", err
		}
		if !taken {
			return code, nil
		}
	}
	return g.long(), nil
}

func randomShort() (string, error) {
	b := make([]byte, shortBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

func randomLong() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}
