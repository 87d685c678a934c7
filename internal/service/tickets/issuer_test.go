package tickets

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/suyay-events/suyay-go/internal/repository"
)

var codePattern = regexp.MustCompile(`^[0-9]{12}$`)

func TestIssuerDrawFormat(t *testing.T) {
	iss := NewIssuer(0)

	for i := 0; i < 1000; i++ {
		code, err := iss.Draw()
		require.NoError(t, err)
		require.True(t, codePattern.MatchString(code), "code %q is not 12 decimal digits", code)
	}
}

func TestIssuerDrawSpread(t *testing.T) {
	iss := NewIssuer(0)

	seen := make(map[string]struct{}, 10000)
	for i := 0; i < 10000; i++ {
		code, err := iss.Draw()
		require.NoError(t, err)
		seen[code] = struct{}{}
	}

	// With 1e12 possible codes, 10k draws colliding would mean the
	// source is broken.
	assert.Len(t, seen, 10000)
}

func TestIssuerIssueFirstTry(t *testing.T) {
	iss := NewIssuer(0)

	var persisted string
	code, err := iss.Issue(context.Background(), func(_ context.Context, c string) error {
		persisted = c
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, persisted, code)
	assert.True(t, codePattern.MatchString(code))
}

func TestIssuerRedrawsOnConflict(t *testing.T) {
	iss := NewIssuer(0)

	var attempts []string
	code, err := iss.Issue(context.Background(), func(_ context.Context, c string) error {
		attempts = append(attempts, c)
		if len(attempts) < 4 {
			return repository.ErrConflict
		}
		return nil
	})

	require.NoError(t, err)
	require.Len(t, attempts, 4)
	assert.Equal(t, attempts[3], code)
}

func TestIssuerExhaustsAfterCap(t *testing.T) {
	iss := NewIssuer(5)

	calls := 0
	_, err := iss.Issue(context.Background(), func(_ context.Context, c string) error {
		calls++
		return repository.ErrConflict
	})

	require.ErrorIs(t, err, ErrCodeSpaceExhausted)
	assert.Equal(t, 5, calls)
}

func TestIssuerPropagatesPersistError(t *testing.T) {
	iss := NewIssuer(0)

	boom := errors.New("connection reset")
	calls := 0
	_, err := iss.Issue(context.Background(), func(_ context.Context, c string) error {
		calls++
		return boom
	})

	require.ErrorIs(t, err, boom)
	assert.Equal(t, 1, calls, "non-conflict errors must not trigger a redraw")
}
