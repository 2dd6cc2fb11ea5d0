package bookingcode

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeChecker struct {
	taken map[string]bool
	calls int
	err   error
}

func (f *fakeChecker) BookingCodeExists(_ context.Context, code string) (bool, error) {
	f.calls++
	return f.taken[code], f.err
}

func TestGenerateShortCodeIsURLSafe(t *testing.T) {
	code, err := New().Generate(context.Background(), &fakeChecker{})
	require.NoError(t, err)
	assert.Len(t, code, 8)
	assert.NotContains(t, code, "+")
	assert.NotContains(t, code, "/")
	assert.NotContains(t, code, "=")
}

func TestGenerateRetriesOnCollision(t *testing.T) {
	seq := []string{"aaaa", "bbbb", "cccc"}
	i := 0
	g := &Generator{
		short: func() (string, error) { c := seq[i]; i++; return c, nil },
		long:  func() string { return "long" },
	}
	chk := &fakeChecker{taken: map[string]bool{"aaaa": true, "bbbb": true}}

	code, err := g.Generate(context.Background(), chk)
	require.NoError(t, err)
	assert.Equal(t, "cccc", code)
	assert.Equal(t, 3, chk.calls)
}

func TestGenerateFallsBackToLongCode(t *testing.T) {
	g := &Generator{
		short: func() (string, error) { return "same", nil },
		long:  randomLong,
	}
	chk := &fakeChecker{taken: map[string]bool{"same": true}}

	code, err := g.Generate(context.Background(), chk)
	require.NoError(t, err)
	assert.Len(t, code, 32)
	assert.Equal(t, MaxAttempts, chk.calls)
}

func TestGeneratePropagatesLookupErrors(t *testing.T) {
	boom := errors.New("db down")
	_, err := New().Generate(context.Background(), &fakeChecker{err: boom})
	assert.ErrorIs(t, err, boom)
}
