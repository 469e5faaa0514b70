package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/ksbmInfotechOfficial/vscct/internal/domain"
	"github.com/ksbmInfotechOfficial/vscct/internal/repository"
	"github.com/ksbmInfotechOfficial/vscct/pkg/jwtutil"
	"github.com/ksbmInfotechOfficial/vscct/pkg/response"
	"github.com/ksbmInfotechOfficial/vscct/pkg/xerrors"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type contextKey string

const (
	ContextUser  contextKey = "user"
	ContextAdmin contextKey = "admin"
)

// UserFrom returns the authenticated user attached by RequireUser or
// OptionalUser, if any.
func UserFrom(ctx context.Context) (*domain.User, bool) {
	u, ok := ctx.Value(ContextUser).(*domain.User)
	return u, ok
}

// AdminFrom returns the authenticated admin attached by RequireAdmin.
func AdminFrom(ctx context.Context) (*domain.Admin, bool) {
	a, ok := ctx.Value(ContextAdmin).(*domain.Admin)
	return a, ok
}

// AuthMiddleware gates requests on access tokens and loads the principal
// behind them.
type AuthMiddleware struct {
	tokens    *jwtutil.Manager
	userRepo  repository.UserRepository
	adminRepo repository.AdminRepository
	logger    *zap.Logger
}

func NewAuthMiddleware(
	tokens *jwtutil.Manager,
	userRepo repository.UserRepository,
	adminRepo repository.AdminRepository,
	logger *zap.Logger,
) *AuthMiddleware {
	return &AuthMiddleware{
		tokens:    tokens,
		userRepo:  userRepo,
		adminRepo: adminRepo,
		logger:    logger,
	}
}

func extractToken(r *http.Request) string {
	if authHeader := r.Header.Get("Authorization"); strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
	}
	return ""
}

// RequireUser admits only active member accounts. Admin tokens are rejected
// so a panel credential can never act as a member.
func (am *AuthMiddleware) RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := extractToken(r)
		if token == "" {
			response.Error(w, http.StatusUnauthorized, "No token provided")
			return
		}

		claims, err := am.tokens.VerifyAccessToken(token)
		if err != nil {
			response.Error(w, http.StatusUnauthorized, "Invalid token")
			return
		}
		if claims.IsAdmin {
			response.Error(w, http.StatusForbidden, "Admin token not allowed")
			return
		}

		user, err := am.loadUser(r.Context(), claims.ID)
		if err != nil {
			response.Error(w, http.StatusUnauthorized, "User not found or inactive")
			return
		}

		ctx := context.WithValue(r.Context(), ContextUser, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireAdmin admits only active panel accounts.
func (am *AuthMiddleware) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := extractToken(r)
		if token == "" {
			response.Error(w, http.StatusUnauthorized, "No token provided")
			return
		}

		claims, err := am.tokens.VerifyAccessToken(token)
		if err != nil {
			response.Error(w, http.StatusUnauthorized, "Invalid token")
			return
		}
		if !claims.IsAdmin {
			response.Error(w, http.StatusForbidden, "Admin access required")
			return
		}

		id, err := primitive.ObjectIDFromHex(claims.ID)
		if err != nil {
			response.Error(w, http.StatusUnauthorized, "Invalid token")
			return
		}
		admin, err := am.adminRepo.FindByID(r.Context(), id)
		if err != nil || !admin.IsActive {
			response.Error(w, http.StatusUnauthorized, "Admin not found or inactive")
			return
		}

		ctx := context.WithValue(r.Context(), ContextAdmin, admin)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// OptionalUser attaches the user when a valid member token is presented and
// continues anonymously on any failure. Content endpoints use this to serve
// a public rendition absent a session.
func (am *AuthMiddleware) OptionalUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := extractToken(r)
		if token == "" {
			next.ServeHTTP(w, r)
			return
		}

		claims, err := am.tokens.VerifyAccessToken(token)
		if err != nil || claims.IsAdmin {
			next.ServeHTTP(w, r)
			return
		}

		user, err := am.loadUser(r.Context(), claims.ID)
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}

		ctx := context.WithValue(r.Context(), ContextUser, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (am *AuthMiddleware) loadUser(ctx context.Context, idHex string) (*domain.User, error) {
	id, err := primitive.ObjectIDFromHex(idHex)
	if err != nil {
		return nil, err
	}
	user, err := am.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !user.IsActive {
		return nil, xerrors.ErrUserInactive
	}
	return user, nil
}
