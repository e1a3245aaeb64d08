package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"eventos_inscricoes/internal/domain/entities"
	"eventos_inscricoes/internal/usecase/interfaces"
	"eventos_inscricoes/pkg"
)

const principalKey = "principal"

var errUnauthorized = pkg.NewDomainErrorSimple("UNAUTHORIZED", "Missing or invalid bearer credential", http.StatusUnauthorized)

// BearerAuth verifies the Authorization header and stores the resolved
// Principal in the gin context.
func BearerAuth(verifier interfaces.IIdentityVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || strings.TrimSpace(token) == "" {
			c.AbortWithStatusJSON(errUnauthorized.HTTPStatus, errUnauthorized.ToHTTPError())
			return
		}

		p, err := verifier.Verify(c.Request.Context(), token)
		if err != nil {
			log.WithField("path", c.FullPath()).WithError(err).Info("[auth][middleware] credential rejected")
			c.AbortWithStatusJSON(errUnauthorized.HTTPStatus, errUnauthorized.ToHTTPError())
			return
		}

		c.Set(principalKey, p)
		c.Next()
	}
}

// PrincipalFrom returns the caller stored by BearerAuth, or a zero Principal.
func PrincipalFrom(c *gin.Context) entities.Principal {
	if v, ok := c.Get(principalKey); ok {
		if p, ok := v.(entities.Principal); ok {
			return p
		}
	}
	return entities.Principal{}
}

// WithPrincipal stores p as the caller. Tests use it in place of BearerAuth.
func WithPrincipal(p entities.Principal) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(principalKey, p)
		c.Next()
	}
}
