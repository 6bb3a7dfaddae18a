// Package auth handles session tokens and the external identity-provider
// boundary. Credential verification itself is delegated to the provider;
// this package only mints and checks session tokens for identities the
// provider (or the demo login flow) has already vouched for.
package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	tokenIssuer   = "squad-api"
	tokenAudience = "squad-client"
	tokenLifetime = time.Hour * 24 * 7
)

// Identity is the opaque identity an external provider supplies after its
// own OAuth or password flow.
type Identity struct {
	ID       string            `json:"id"`
	Email    string            `json:"email"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

// TokenManager issues and validates HMAC-signed session tokens.
type TokenManager struct {
	secret []byte
}

// NewTokenManager returns a TokenManager signing with the given secret.
func NewTokenManager(secret string) *TokenManager {
	return &TokenManager{secret: []byte(secret)}
}

// Issue creates a session token for the given user.
func (m *TokenManager) Issue(userID, username string) (string, error) {
	if len(m.secret) == 0 {
		return "", fmt.Errorf("JWT secret not configured")
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"sub":      userID,                       // Subject (user ID)
		"username": username,                     // Username (cached in token)
		"iss":      tokenIssuer,                  // Issuer
		"aud":      tokenAudience,                // Audience
		"exp":      now.Add(tokenLifetime).Unix(), // Expiration (7 days)
		"iat":      now.Unix(),                   // Issued at
		"nbf":      now.Unix(),                   // Not before
		"jti":      generateJTI(),                // JWT ID (unique identifier)
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// Parse validates the token and returns the subject user id.
func (m *TokenManager) Parse(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("invalid signing method")
		}
		return m.secret, nil
	})
	if err != nil || !token.Valid {
		return "", fmt.Errorf("invalid or expired token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", fmt.Errorf("invalid token claims")
	}
	if issuer, issuerOk := claims["iss"].(string); !issuerOk || issuer != tokenIssuer {
		return "", fmt.Errorf("invalid token issuer")
	}
	if audience, audienceOk := claims["aud"].(string); !audienceOk || audience != tokenAudience {
		return "", fmt.Errorf("invalid token audience")
	}
	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return "", fmt.Errorf("invalid subject claim")
	}
	return sub, nil
}

// generateJTI creates a unique JWT ID to prevent replay attacks
func generateJTI() string {
	return fmt.Sprintf("%d-%s", time.Now().Unix(), uuid.New().String()[:8])
}
