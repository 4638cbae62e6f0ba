package middlewares

import (
	"strings"

	"github.com/Kariqs/kartdaily-api/apperrors"
	"github.com/Kariqs/kartdaily-api/models"
	"github.com/Kariqs/kartdaily-api/store"
	"github.com/Kariqs/kartdaily-api/utils"
	"github.com/gin-gonic/gin"
)

const userKey = "user"

const (
	msgTokenNotFound = "Token not found"
	msgTokenFailed   = "Not authorised, token failed"
)

// Authenticate resolves the bearer token to a stored user and puts it on the
// context. A missing header is reported as 404, which existing clients rely on.
func Authenticate(tokens *utils.TokenManager, users store.UserStore) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		header := ctx.GetHeader("Authorization")
		tokenString, found := strings.CutPrefix(header, "Bearer ")
		if !found || strings.TrimSpace(tokenString) == "" {
			abortWithError(ctx, apperrors.NotFound(msgTokenNotFound))
			return
		}

		userID, err := tokens.Parse(strings.TrimSpace(tokenString))
		if err != nil {
			abortWithError(ctx, apperrors.Unauthenticated(msgTokenFailed))
			return
		}

		user, err := users.FindByID(ctx.Request.Context(), userID)
		if err != nil {
			abortWithError(ctx, apperrors.Unauthenticated(msgTokenFailed))
			return
		}
		user.Password = ""

		ctx.Set(userKey, user)
		ctx.Next()
	}
}

// CurrentUser returns the user stored by Authenticate.
func CurrentUser(ctx *gin.Context) (*models.User, bool) {
	value, exists := ctx.Get(userKey)
	if !exists {
		return nil, false
	}
	user, ok := value.(*models.User)
	return user, ok && user != nil
}

func abortWithError(ctx *gin.Context, err error) {
	_ = ctx.Error(err)
	ctx.Abort()
}
