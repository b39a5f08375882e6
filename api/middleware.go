package api

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/shaj13/go-guardian/auth"
	"github.com/shaj13/go-guardian/auth/strategies/basic"
	"github.com/shaj13/go-guardian/auth/strategies/bearer"
	"github.com/shaj13/go-guardian/store"
	"go.uber.org/zap"

	"github.com/linesmerrill/efiling-api/apperrors"
	"github.com/linesmerrill/efiling-api/models"
	"github.com/linesmerrill/efiling-api/policy"
)

// tokenCacheTTL bounds how long a verified bearer token skips signature checks
const tokenCacheTTL = 5 * time.Minute

// Directory is the part of the user directory the identity provider needs
type Directory interface {
	Authenticate(ctx context.Context, email, password string) (models.Identity, error)
	Get(ctx context.Context, id string) (*models.User, error)
}

// Guardian resolves the caller of a request from basic credentials or a bearer token
type Guardian struct {
	authenticator auth.Authenticator
	revoked       store.Cache
	Tokens        *TokenManager
	Directory     Directory
}

// SetupGoGuardian sets up the go-guardian strategies
func SetupGoGuardian(ctx context.Context, directory Directory, tokens *TokenManager) *Guardian {
	g := &Guardian{
		authenticator: auth.New(),
		revoked:       store.NewFIFO(ctx, tokens.TTL()),
		Tokens:        tokens,
		Directory:     directory,
	}
	basicStrategy := basic.New(g.ValidateUser, store.NewFIFO(ctx, tokenCacheTTL))
	tokenStrategy := bearer.New(g.ValidateToken, store.NewFIFO(ctx, tokenCacheTTL))

	g.authenticator.EnableStrategy(basic.StrategyKey, basicStrategy)
	g.authenticator.EnableStrategy(bearer.CachedStrategyKey, tokenStrategy)
	return g
}

// Middleware authenticates the request and stores the caller in its context.
// The role always comes from the directory, never from the request.
func (g *Guardian) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		info, err := g.authenticator.Authenticate(r)
		if err != nil {
			zap.S().Infow("unauthorized", "url", r.URL.Path)
			WriteError(w, r, apperrors.Auth("unauthorized"))
			return
		}

		ctx, cancel := WithQueryTimeout(r.Context())
		user, err := g.Directory.Get(ctx, info.ID())
		cancel()
		if err != nil {
			if apperrors.Is(err, apperrors.KindNotFound) {
				err = apperrors.Auth("unauthorized")
			}
			WriteError(w, r, err)
			return
		}

		actor := policy.Actor{ID: user.ID, Role: user.Details.Role}
		zap.S().Debugw("user authenticated", "userId", info.ID(), "role", actor.Role)
		next.ServeHTTP(w, r.WithContext(WithActor(r.Context(), actor)))
	})
}

// ValidateUser checks basic credentials against the directory
func (g *Guardian) ValidateUser(ctx context.Context, r *http.Request, email, password string) (auth.Info, error) {
	identity, err := g.Directory.Authenticate(ctx, email, password)
	if err != nil {
		return nil, err
	}
	return auth.NewDefaultUser(identity.Email, identity.ID, nil, nil), nil
}

// ValidateToken verifies a bearer token that is not in the strategy cache
func (g *Guardian) ValidateToken(ctx context.Context, r *http.Request, token string) (auth.Info, error) {
	if _, revoked, _ := g.revoked.Load(token, r); revoked {
		return nil, apperrors.Auth("token revoked")
	}
	subject, err := g.Tokens.Verify(token)
	if err != nil {
		return nil, apperrors.Auth("invalid token")
	}
	return auth.NewDefaultUser(subject, subject, nil, nil), nil
}

// IssueToken returns a signed token for the given identity
func (g *Guardian) IssueToken(identity models.Identity) (string, time.Time, error) {
	token, expires, err := g.Tokens.Generate(identity.ID)
	if err != nil {
		return "", time.Time{}, apperrors.Internal("failed to sign token", err)
	}
	return token, expires, nil
}

// RevokeToken revokes the bearer token of the request
func (g *Guardian) RevokeToken(r *http.Request) error {
	token := BearerToken(r)
	if token == "" {
		return apperrors.Validation("missing bearer token", apperrors.Required("Authorization"))
	}
	if err := g.revoked.Store(token, true, r); err != nil {
		return apperrors.Internal("failed to revoke token", err)
	}
	tokenStrategy := g.authenticator.Strategy(bearer.CachedStrategyKey)
	return auth.Revoke(tokenStrategy, token, r)
}

// BearerToken extracts the bearer token from the Authorization header
func BearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
}

// QueryToken lets clients that cannot set headers, such as browser websockets,
// pass their bearer token as the access_token query parameter
func QueryToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if token := r.URL.Query().Get("access_token"); token != "" && r.Header.Get("Authorization") == "" {
			r = r.Clone(r.Context())
			r.Header.Set("Authorization", "Bearer "+token)
		}
		next.ServeHTTP(w, r)
	})
}
