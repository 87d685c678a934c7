package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/suyay-events/suyay-go/internal/domain"
	"github.com/suyay-events/suyay-go/internal/repository"
)

// UserStore is the slice of the user repository auth needs.
// Implemented by *postgresrepo.UserRepo.
type UserStore interface {
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Create(ctx context.Context, u *domain.User) (*domain.User, error)
}

type Config struct {
	Secret     []byte
	TokenTTL   time.Duration
	BcryptCost int
}

type Service struct {
	users UserStore
	cfg   Config
	log   *slog.Logger
	now   func() time.Time
}

func New(users UserStore, cfg Config, log *slog.Logger) *Service {
	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = 24 * time.Hour
	}
	if cfg.BcryptCost <= 0 {
		cfg.BcryptCost = bcrypt.DefaultCost
	}
	return &Service{users: users, cfg: cfg, log: log, now: time.Now}
}

type RegisterInput struct {
	FirstNames string
	LastNames  string
	Email      string
	Password   string
	Phone      *string
	Gender     *string
	AvatarURL  *string
	RoleID     int64
}

// Register creates a user account. The email unique constraint is the
// authoritative duplicate check; the pre-read just gives a friendlier
// error on the common path.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*domain.User, error) {
	const op = "auth.Service.Register"

	if in.RoleID == 0 {
		in.RoleID = int64(domain.RoleBuyer)
	}
	if domain.RoleFromID(in.RoleID) == domain.RoleUnknown {
		return nil, ErrUnknownRole
	}

	if _, err := s.users.GetByEmail(ctx, in.Email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.cfg.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	u, err := s.users.Create(ctx, &domain.User{
		FirstNames:   in.FirstNames,
		LastNames:    in.LastNames,
		AvatarURL:    in.AvatarURL,
		Email:        in.Email,
		PasswordHash: string(hash),
		Phone:        in.Phone,
		RoleID:       in.RoleID,
		Gender:       in.Gender,
	})
	if err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	s.log.InfoContext(ctx, "user registered",
		slog.Int64("user_id", u.ID),
		slog.String("role", u.Role.String()),
	)

	return u, nil
}

// Login verifies credentials and returns a signed bearer token. A missing
// account and a wrong password are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	const op = "auth.Service.Login"

	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, fmt.Errorf("%s:%w", op, err)
	}

	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.signToken(u.Email)
	if err != nil {
		return "", nil, fmt.Errorf("%s:%w", op, err)
	}

	return token, u, nil
}

func (s *Service) signToken(email string) (string, error) {
	now := s.now()
	claims := jwt.RegisteredClaims{
		Subject:   email,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.TokenTTL)),
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.cfg.Secret)
}

// Authenticate resolves a bearer token to its user. Tokens carry the email
// in the subject claim, so a deleted account invalidates the token too.
func (s *Service) Authenticate(ctx context.Context, tokenStr string) (*domain.User, error) {
	const op = "auth.Service.Authenticate"

	var claims jwt.RegisteredClaims
	token, err := jwt.ParseWithClaims(
		tokenStr,
		&claims,
		func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
			}
			return s.cfg.Secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !token.Valid || claims.Subject == "" {
		return nil, ErrInvalidToken
	}

	u, err := s.users.GetByEmail(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	return u, nil
}

// Principal maps a resolved user to the identity the policy evaluator uses.
func Principal(u *domain.User) domain.Principal {
	return domain.Principal{UserID: u.ID, Role: u.Role}
}
