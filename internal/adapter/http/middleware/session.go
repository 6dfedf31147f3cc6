package middleware

import (
	"net/http"
	"strings"

	"tallerpro/internal/domain/entities"
	"tallerpro/internal/usecase"
	"tallerpro/pkg"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const sessionKey = "session"

var (
	errMissingSession = pkg.NewDomainErrorSimple("UNAUTHORIZED", "Sesión requerida", http.StatusUnauthorized)
	errInvalidSession = pkg.NewDomainErrorSimple("UNAUTHORIZED", "Sesión inválida o expirada", http.StatusUnauthorized)
	errForbidden      = pkg.NewDomainErrorSimple("FORBIDDEN", "No tiene permiso para esta acción", http.StatusForbidden)
)

// RequireSession accepts "Authorization: Bearer <token>" and stores the
// validated session in the gin context.
func RequireSession(auth usecase.IAuthUseCase, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c.GetHeader("Authorization"))
		if token == "" {
			c.AbortWithStatusJSON(errMissingSession.HTTPStatus, errMissingSession.ToHTTPError())
			return
		}
		s, err := auth.ValidateSession(c.Request.Context(), token)
		if err != nil {
			if log != nil {
				log.Info("[auth][middleware] session rejected", zap.String("path", c.FullPath()), zap.Error(err))
			}
			c.AbortWithStatusJSON(errInvalidSession.HTTPStatus, errInvalidSession.ToHTTPError())
			return
		}
		c.Set(sessionKey, s)
		c.Next()
	}
}

// RequireUserManager lets only roles that may manage staff through. It must
// run after RequireSession.
func RequireUserManager() gin.HandlerFunc {
	return func(c *gin.Context) {
		s, ok := CurrentSession(c)
		if !ok || !s.Role.CanManageUsers() {
			c.AbortWithStatusJSON(errForbidden.HTTPStatus, errForbidden.ToHTTPError())
			return
		}
		c.Next()
	}
}

// CurrentSession returns the session stored by RequireSession.
func CurrentSession(c *gin.Context) (entities.Session, bool) {
	v, ok := c.Get(sessionKey)
	if !ok {
		return entities.Session{}, false
	}
	s, ok := v.(entities.Session)
	return s, ok
}

// Actor is the display name recorded on history entries and ledger rows.
func Actor(c *gin.Context) string {
	if s, ok := CurrentSession(c); ok {
		return s.Name
	}
	return ""
}

// SetSession stores s as the current session. Used by tests and by routes
// that authenticate by other means.
func SetSession(c *gin.Context, s entities.Session) {
	c.Set(sessionKey, s)
}

func bearerToken(header string) string {
	parts := strings.SplitN(strings.TrimSpace(header), " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
