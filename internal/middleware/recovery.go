package middleware

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/JonnyWalker81/librarium/backend/internal/apierror"
	"github.com/JonnyWalker81/librarium/backend/internal/logger"
)

// Recovery turns a handler panic into an internal-error problem response.
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		logger.FromContext(c.Request.Context()).Error("panic recovered",
			logger.String("panic", fmt.Sprint(recovered)),
			logger.String("path", c.Request.URL.Path),
		)
		apierror.WriteProblem(c, apierror.NewInternalError(apierror.GetRequestID(c)))
		c.Abort()
	})
}
