// Package controllers holds the gin handlers. Each handler binds input, calls a
// service and either writes the result or pushes an error with ctx.Error for
// middlewares.ErrorHandler to render.
package controllers

import (
	"log"

	"github.com/Kariqs/kartdaily-api/apperrors"
	"github.com/Kariqs/kartdaily-api/middlewares"
	"github.com/Kariqs/kartdaily-api/models"
	"github.com/gin-gonic/gin"
)

const msgInvalidInput = "Invalid input"

func sendJSONResponse(ctx *gin.Context, status int, data any) {
	ctx.JSON(status, data)
}

func sendMessage(ctx *gin.Context, status int, message string) {
	sendJSONResponse(ctx, status, gin.H{"message": message})
}

func sendError(ctx *gin.Context, err error) {
	_ = ctx.Error(err)
}

// bindJSON reports a bind failure as a validation error and returns false.
func bindJSON(ctx *gin.Context, target any) bool {
	if err := ctx.ShouldBindJSON(target); err != nil {
		log.Println("Bind error:", err)
		sendError(ctx, apperrors.Validation(msgInvalidInput))
		return false
	}
	return true
}

// requireUser returns the authenticated caller. Routes using it sit behind
// middlewares.Authenticate, so a miss means the route was wired wrong.
func requireUser(ctx *gin.Context) (*models.User, bool) {
	user, ok := middlewares.CurrentUser(ctx)
	if !ok {
		sendError(ctx, apperrors.Unauthenticated("Not authorised, token failed"))
	}
	return user, ok
}
