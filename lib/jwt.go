package lib

import (
	"fmt"
	"net/http"
	"paiges_bagels_server/structs"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// IssueSessionToken mints an admin session JWT for the configured
// credential.
func IssueSessionToken(email, secret string, expiry time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"email": email,
		"role":  "admin",
		"iat":   now.Unix(),
		"exp":   now.Add(expiry).Unix(),
	})
	return token.SignedString([]byte(secret))
}

// ParseToken parses and validates a session JWT and returns the claims
func ParseToken(tokenStr string, secret string) (*structs.AuthClaims, error) {
	token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenMalformed
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		email, ok := claims["email"].(string)
		if !ok {
			return nil, fmt.Errorf("invalid email claim")
		}

		role, ok := claims["role"].(string)
		if !ok {
			return nil, fmt.Errorf("invalid role claim")
		}

		iat, ok := claims["iat"].(float64)
		if !ok {
			return nil, fmt.Errorf("invalid iat claim")
		}

		exp, ok := claims["exp"].(float64)
		if !ok {
			return nil, fmt.Errorf("invalid exp claim")
		}

		return &structs.AuthClaims{
			Email: email,
			Role:  role,
			Iat:   time.Unix(int64(iat), 0),
			Exp:   time.Unix(int64(exp), 0),
		}, nil
	}
	return nil, jwt.ErrInvalidKey
}

// ExtractClaims reads the admin session cookie off a request and parses it.
func ExtractClaims(r *http.Request, secret string) (*structs.AuthClaims, error) {
	sessionToken, err := GetCookieValue(SessionCookieName, r)
	if err != nil {
		return nil, err
	}

	claims, err := ParseToken(sessionToken, secret)
	if err != nil {
		return nil, err
	}

	return claims, nil
}
