package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/remitchain/remitd/app"
	"github.com/remitchain/remitd/models"
	log "github.com/sirupsen/logrus"
)

const principalContextKey = "principal"

// RequireAuth rejects requests without a valid bearer token and attaches
// the decoded principal to the request context.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, err := principalFromHeader(c.GetHeader("Authorization"))
		if err != nil {
			log.Debug("[API] Rejected request: ", err)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}
		c.Set(principalContextKey, principal)
		c.Next()
	}
}

// OptionalAuth decodes a bearer token when present but lets anonymous
// requests through; used on endpoints that also honor share tokens.
func OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if principal, err := principalFromHeader(c.GetHeader("Authorization")); err == nil {
			c.Set(principalContextKey, principal)
		}
		c.Next()
	}
}

func principalFromHeader(header string) (models.Principal, error) {
	if header == "" {
		return models.Principal{}, models.NewError(models.ErrorKindAuthentication, "missing authorization header")
	}
	tokenString, found := strings.CutPrefix(header, "Bearer ")
	if !found {
		return models.Principal{}, models.NewError(models.ErrorKindAuthentication, "malformed authorization header")
	}

	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, models.NewError(models.ErrorKindAuthentication, "unexpected signing method %v", token.Header["alg"])
		}
		return []byte(app.Config.API.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return models.Principal{}, models.WrapError(models.ErrorKindAuthentication, err, "invalid token")
	}

	subject, err := claims.GetSubject()
	if err != nil || subject == "" {
		return models.Principal{}, models.NewError(models.ErrorKindAuthentication, "token missing subject")
	}

	role := models.RoleUser
	if claimed, ok := claims["role"].(string); ok && claimed == models.RoleAdmin {
		role = models.RoleAdmin
	}

	return models.Principal{Id: subject, Role: role}, nil
}

func currentPrincipal(c *gin.Context) models.Principal {
	if value, exists := c.Get(principalContextKey); exists {
		if principal, ok := value.(models.Principal); ok {
			return principal
		}
	}
	return models.Principal{}
}
