package middlewares

import (
	"github.com/Kariqs/kartdaily-api/apperrors"
	"github.com/gin-gonic/gin"
)

// RequireAdmin must run after Authenticate.
func RequireAdmin() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		user, ok := CurrentUser(ctx)
		if !ok || !user.IsAdmin {
			abortWithError(ctx, apperrors.Unauthorized("Not authorised as an admin"))
			return
		}

		ctx.Next()
	}
}
