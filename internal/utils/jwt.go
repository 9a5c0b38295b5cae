package utils

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// subjectKey is the gin context key holding the authenticated token subject
const subjectKey = "auth_subject"

// JWTMiddleware rejects requests without a valid HMAC-signed, expiring bearer token
func JWTMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid authorization header format"})
			c.Abort()
			return
		}

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(secret), nil
		}, jwt.WithExpirationRequired())

		if err != nil || !token.Valid {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			c.Abort()
			return
		}

		if subject, err := token.Claims.GetSubject(); err == nil && subject != "" {
			c.Set(subjectKey, subject)
		}

		c.Next()
	}
}

// GetSubject returns the subject stored by JWTMiddleware
func GetSubject(c *gin.Context) (string, error) {
	subject := c.GetString(subjectKey)
	if subject == "" {
		return "", errors.New("no authenticated subject")
	}
	return subject, nil
}
