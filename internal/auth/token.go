// Package auth issues and verifies the JWT bearer tokens that identify the
// current user, and resolves the Authorization header of each request into a
// user attached to the request context.
package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"libraryql/internal/model"
)

const (
	issuer   = "libraryql"
	tokenTTL = 24 * time.Hour

	usernameClaim = "username"
	userIDClaim   = "jti"
	expiryClaim   = "exp"
	issuerClaim   = "iss"
)

// Tokens signs and verifies bearer tokens with a shared HMAC secret.
type Tokens struct {
	secret []byte
}

func NewTokens(secret string) *Tokens {
	return &Tokens{secret: []byte(secret)}
}

// Issue returns a signed token encoding the user's name and id.
func (t *Tokens) Issue(u model.User) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		usernameClaim: u.Username,
		userIDClaim:   u.ID.Hex(),
		expiryClaim:   time.Now().Add(tokenTTL).Unix(),
		issuerClaim:   issuer,
	})
	return token.SignedString(t.secret)
}

// UserID verifies the token signature and returns the embedded user id.
// Any verification failure (bad signature, wrong algorithm, expiry, missing
// or malformed id claim) is reported as ErrInvalidToken.
func (t *Tokens) UserID(tokenString string) (primitive.ObjectID, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return t.secret, nil
	})
	if err != nil || !token.Valid {
		return primitive.NilObjectID, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return primitive.NilObjectID, ErrInvalidToken
	}
	hex, _ := claims[userIDClaim].(string)
	id, err := primitive.ObjectIDFromHex(hex)
	if err != nil {
		return primitive.NilObjectID, ErrInvalidToken
	}
	return id, nil
}
