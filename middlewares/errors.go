package middlewares

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"runtime/debug"

	"github.com/Kariqs/kartdaily-api/apperrors"
	"github.com/gin-gonic/gin"
)

type errorResponse struct {
	Message string `json:"message"`
	Stack   string `json:"stack,omitempty"`
}

// ErrorHandler renders the last error pushed with ctx.Error. Gateway errors
// carrying a provider body are written back unchanged. The stack field is
// left out in production.
func ErrorHandler(production bool) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		ctx.Next()

		if len(ctx.Errors) == 0 || ctx.Writer.Written() {
			return
		}
		err := ctx.Errors.Last().Err
		status := apperrors.StatusOf(err)

		var appErr *apperrors.Error
		if errors.As(err, &appErr) && appErr.Kind == apperrors.KindGateway && len(appErr.Body) > 0 {
			log.Println("Payment gateway error:", err)
			ctx.Data(status, "application/json; charset=utf-8", appErr.Body)
			return
		}

		if status >= http.StatusInternalServerError {
			log.Printf("%s %s: %v", ctx.Request.Method, ctx.Request.URL.Path, err)
		}

		resp := errorResponse{Message: publicMessage(err)}
		if !production {
			resp.Stack = err.Error()
		}
		ctx.JSON(status, resp)
	}
}

func publicMessage(err error) string {
	var appErr *apperrors.Error
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return err.Error()
}

// Recovery turns panics into the same JSON shape as handled errors.
func Recovery(production bool) gin.HandlerFunc {
	return gin.CustomRecovery(func(ctx *gin.Context, recovered any) {
		stack := debug.Stack()
		log.Printf("panic recovered: %v\n%s", recovered, stack)

		resp := errorResponse{Message: fmt.Sprint(recovered)}
		if production {
			resp.Message = "Internal server error"
		} else {
			resp.Stack = string(stack)
		}
		ctx.AbortWithStatusJSON(http.StatusInternalServerError, resp)
	})
}

// NotFound is installed as the engine's NoRoute handler.
func NotFound() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		_ = ctx.Error(apperrors.NotFound("Not Found - " + ctx.Request.URL.Path))
	}
}
