package adoptserver

import (
	"strings"

	"github.com/gin-gonic/gin"

	usersdomain "github.com/pawhaven/adopt-api/internal/domains/users/domain"
	usersports "github.com/pawhaven/adopt-api/internal/domains/users/ports"
	apierrors "github.com/pawhaven/adopt-api/internal/shared/errors"
)

const (
	contextUserKey  = "adoptserver.user"
	contextTokenKey = "adoptserver.token"
	bearerPrefix    = "Bearer "
)

// SessionMiddleware resolves a bearer token into the authenticated user.
// Resolution is best effort here; handlers that need an identity call
// requireUser, which rejects unauthenticated requests.
func SessionMiddleware(users usersports.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token != "" && users != nil {
			if user, err := users.ResolveSession(c.Request.Context(), token); err == nil {
				c.Set(contextUserKey, user)
				c.Set(contextTokenKey, token)
			}
		}
		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if !strings.HasPrefix(header, bearerPrefix) {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(header, bearerPrefix))
}

// currentUser returns the authenticated user, if any.
func currentUser(c *gin.Context) (*usersdomain.User, bool) {
	value, exists := c.Get(contextUserKey)
	if !exists {
		return nil, false
	}
	user, ok := value.(*usersdomain.User)
	return user, ok && user != nil
}

// requireUser returns the authenticated user or writes a 401 problem.
func requireUser(c *gin.Context) (*usersdomain.User, bool) {
	user, ok := currentUser(c)
	if !ok {
		respondProblem(c, apierrors.ErrUnauthorized.WithDetail("a bearer session token is required"))
		return nil, false
	}
	return user, true
}

// sessionToken returns the bearer token attached to the request.
func sessionToken(c *gin.Context) string {
	if value, exists := c.Get(contextTokenKey); exists {
		if token, ok := value.(string); ok {
			return token
		}
	}
	return bearerToken(c)
}
