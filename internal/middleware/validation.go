package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/JonnyWalker81/librarium/backend/internal/schema"
	"github.com/JonnyWalker81/librarium/backend/internal/translator"
)

// RequestValidation rejects requests that do not match the API contract
// before any handler runs. Whitelisted paths pass through untouched.
func RequestValidation(v *schema.Validator, t *translator.Translator) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := v.Check(c.Request); err != nil {
			t.Abort(c, err)
			return
		}
		c.Next()
	}
}
