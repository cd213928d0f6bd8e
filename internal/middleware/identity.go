package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/pageza/recipe-tracker/backend/internal/types"
)

// ActorKey is the gin context key holding the caller's user id.
const ActorKey = "user_id"

var ErrMissingUserID = errors.New("token has no user_id claim")

// TokenValidator is an interface for validating JWT tokens
type TokenValidator interface {
	ValidateToken(token string) (*types.TokenClaims, error)
}

// HMACValidator verifies HS256 tokens signed with a shared secret.
type HMACValidator struct {
	secret []byte
}

func NewHMACValidator(secret string) *HMACValidator {
	return &HMACValidator{secret: []byte(secret)}
}

func (v *HMACValidator) ValidateToken(token string) (*types.TokenClaims, error) {
	claims := &types.TokenClaims{}
	_, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return v.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}
	if claims.UserID == uuid.Nil {
		return nil, ErrMissingUserID
	}
	return claims, nil
}

// Identity records who is calling so writes can be stamped with it.
// Requests without an Authorization header stay anonymous; a header that
// does not hold a valid bearer token is rejected.
func Identity(validator TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.Next()
			return
		}

		token, ok := strings.CutPrefix(authHeader, "Bearer ")
		if !ok || strings.TrimSpace(token) == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{Error: "invalid authorization header format"})
			return
		}

		claims, err := validator.ValidateToken(strings.TrimSpace(token))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{Error: "invalid token"})
			return
		}

		c.Set(ActorKey, claims.UserID)
		c.Request = c.Request.WithContext(types.WithActor(c.Request.Context(), claims.UserID))
		c.Next()
	}
}
