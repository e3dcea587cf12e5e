package helpers

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Claims is the verified identity attached to a request. The subject is the
// user's document id; the role decides which surfaces the caller may touch.
type Claims struct {
	Role  string `json:"role"`
	Email string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

func (c *Claims) IsAdmin() bool {
	return c.Role == "admin"
}

func (c *Claims) IsVendor() bool {
	return c.Role == "vendor"
}

func (c *Claims) HasRole(role string) bool {
	return c.Role == role
}

func (c *Claims) GetSafeRole() string {
	if c.Role == "" {
		return "customer"
	}
	return c.Role
}

// UserObjectID parses the token subject into the user's document id.
func (c *Claims) UserObjectID() (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(c.Subject)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("invalid user ID in token: %v", err)
	}
	return id, nil
}

// ValidateToken verifies an HMAC-signed bearer token and returns its claims.
func ValidateToken(tokenStr, secret string) (*Claims, error) {
	if secret == "" {
		return nil, errors.New("JWT secret is not configured")
	}

	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("token validation failed: %v", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid or expired token")
	}

	return claims, nil
}
