package tickets

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"

	"github.com/suyay-events/suyay-go/internal/repository"
)

// CodeLength is the number of decimal digits in a redemption code.
const CodeLength = 12

const defaultMaxAttempts = 20

// Issuer draws redemption codes from a cryptographically secure source.
// The pre-insert uniqueness check lives in the database: the caller's
// persist function must report a duplicate code as repository.ErrConflict,
// and the issuer redraws. With a uniform 12-digit space the collision
// probability per draw is about 1e-12, so hitting the attempt cap means
// the random source is broken, not that the space is full.
type Issuer struct {
	maxAttempts int
}

func NewIssuer(maxAttempts int) *Issuer {
	if maxAttempts <= 0 {
		maxAttempts = defaultMaxAttempts
	}
	return &Issuer{maxAttempts: maxAttempts}
}

var ten = big.NewInt(10)

// Draw returns a candidate code of exactly CodeLength decimal digits.
// Each digit is drawn independently so no modulo bias sneaks in.
func (i *Issuer) Draw() (string, error) {
	buf := make([]byte, CodeLength)
	for j := range buf {
		n, err := rand.Int(rand.Reader, ten)
		if err != nil {
			return "", fmt.Errorf("issuer.Draw: %w", err)
		}
		buf[j] = byte('0' + n.Int64())
	}
	return string(buf), nil
}

// Issue draws codes until persist accepts one, retrying on conflict up to
// the attempt cap. Collisions are recovered internally; only exhaustion
// surfaces, as ErrCodeSpaceExhausted. Any other persist error propagates
// unchanged.
func (i *Issuer) Issue(
	ctx context.Context,
	persist func(ctx context.Context, code string) error,
) (string, error) {
	const op = "tickets.Issuer.Issue"

	for attempt := 0; attempt < i.maxAttempts; attempt++ {
		code, err := i.Draw()
		if err != nil {
			return "", fmt.Errorf("%s:%w", op, err)
		}

		err = persist(ctx, code)
		if err == nil {
			return code, nil
		}

		if errors.Is(err, repository.ErrConflict) {
			continue
		}

		return "", fmt.Errorf("%s:%w", op, err)
	}

	return "", fmt.Errorf("%s:%w", op, ErrCodeSpaceExhausted)
}
