package middleware

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	"github.com/moody/moodyserver/config"
	"github.com/moody/moodyserver/database"
)

// ContextUserID is the gin context key carrying the authenticated user id.
const ContextUserID = "userID"

// TokenManager issues and validates JWT tokens. The signing key comes
// from configuration once at startup, never from the environment per
// request.
type TokenManager struct {
	key []byte
	ttl time.Duration
}

func NewTokenManager(cfg *config.Config) *TokenManager {
	secret := cfg.JWTSecret
	if secret == "" {
		// in production this should come from a secret store
		log.Println("Warning: JWT_SECRET_KEY not set, using an insecure development key")
		secret = "insecure-development-key-do-not-use-in-production"
	}
	return &TokenManager{key: []byte(secret), ttl: cfg.TokenTTL}
}

// JWTClaims is the token payload.
type JWTClaims struct {
	UserID string `json:"userId"`
	jwt.RegisteredClaims
}

// GenerateToken issues a signed token for the user.
func (tm *TokenManager) GenerateToken(userID uuid.UUID) (string, error) {
	claims := &JWTClaims{
		UserID: userID.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(tm.ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    "moody-server",
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(tm.key)
}

// ValidateToken parses and verifies a token.
func (tm *TokenManager) ValidateToken(tokenString string) (*JWTClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return tm.key, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}
	claims, ok := token.Claims.(*JWTClaims)
	if !ok {
		return nil, errors.New("unexpected token claims")
	}
	return claims, nil
}

// Middleware authorizes the request from the Authorization header and
// stores the user id in the gin context.
func (tm *TokenManager) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized access"})
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		claims, err := tm.ValidateToken(tokenString)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid token"})
			c.Abort()
			return
		}

		userID, err := uuid.Parse(claims.UserID)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid token"})
			c.Abort()
			return
		}

		c.Set(ContextUserID, userID)
		c.Next()
	}
}

// Authenticate checks credentials and returns a token for the user.
func (tm *TokenManager) Authenticate(ctx context.Context, email, password string) (string, *uuid.UUID, error) {
	user, err := database.GetUserByEmail(ctx, email)
	if err != nil {
		return "", nil, errors.New("invalid credentials")
	}
	if err := database.VerifyPassword(password, user.PasswordHash); err != nil {
		return "", nil, errors.New("invalid credentials")
	}
	token, err := tm.GenerateToken(user.ID)
	if err != nil {
		return "", nil, err
	}
	return token, &user.ID, nil
}

// UserID extracts the authenticated user id from the gin context.
func UserID(c *gin.Context) (uuid.UUID, bool) {
	v, ok := c.Get(ContextUserID)
	if !ok {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}
