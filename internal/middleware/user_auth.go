package middleware

import (
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// Identity carries the verified claims of the external identity provider.
// The provider owns registration and login; this service only maps the
// subject to a local user document.
type Identity struct {
	Subject string
	Email   string
	Name    string
}

const identityKey = "identity"

// UserAuth validates bearer tokens and injects the caller's Identity into
// the context.
func UserAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := strings.TrimSpace(c.GetHeader("Authorization"))
		if raw == "" {
			log.Println("[AUTH] [ERROR] missing token")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing token"})
			return
		}

		parts := strings.Split(raw, " ")
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			log.Println("[AUTH] [ERROR] invalid token format")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		token, err := jwt.Parse(parts[1], func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			log.Println("[AUTH] [ERROR] token validation failed:", err)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			log.Println("[AUTH] [ERROR] token claims invalid")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		ident, ok := identityFromClaims(claims)
		if !ok {
			log.Println("[AUTH] [ERROR] sub claim missing")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		c.Set(identityKey, ident)
		c.Next()
	}
}

func identityFromClaims(claims jwt.MapClaims) (Identity, bool) {
	sub, _ := claims["sub"].(string)
	if strings.TrimSpace(sub) == "" {
		return Identity{}, false
	}
	ident := Identity{Subject: sub}
	ident.Email, _ = claims["email"].(string)

	if name, _ := claims["name"].(string); name != "" {
		ident.Name = name
	} else {
		given, _ := claims["given_name"].(string)
		family, _ := claims["family_name"].(string)
		ident.Name = strings.TrimSpace(given + " " + family)
	}
	return ident, true
}

// IdentityFrom returns the Identity set by UserAuth.
func IdentityFrom(c *gin.Context) (Identity, bool) {
	value, exists := c.Get(identityKey)
	if !exists {
		return Identity{}, false
	}
	ident, ok := value.(Identity)
	return ident, ok
}
