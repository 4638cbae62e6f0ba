package controllers

import (
	"net/http"

	"github.com/Kariqs/kartdaily-api/models"
	"github.com/Kariqs/kartdaily-api/services"
	"github.com/gin-gonic/gin"
)

type UserController struct {
	users *services.UserService
}

func NewUserController(users *services.UserService) *UserController {
	return &UserController{users: users}
}

// Register handles POST /api/users
func (c *UserController) Register(ctx *gin.Context) {
	var data models.RegisterData
	if !bindJSON(ctx, &data) {
		return
	}

	resp, err := c.users.Register(ctx.Request.Context(), data)
	if err != nil {
		sendError(ctx, err)
		return
	}
	sendJSONResponse(ctx, http.StatusCreated, resp)
}

// Login handles POST /api/users/login
func (c *UserController) Login(ctx *gin.Context) {
	var data models.LoginData
	if !bindJSON(ctx, &data) {
		return
	}

	resp, err := c.users.Login(ctx.Request.Context(), data)
	if err != nil {
		sendError(ctx, err)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, resp)
}

func (c *UserController) GetProfile(ctx *gin.Context) {
	current, ok := requireUser(ctx)
	if !ok {
		return
	}

	user, err := c.users.Get(ctx.Request.Context(), current.ID)
	if err != nil {
		sendError(ctx, err)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, user)
}

func (c *UserController) UpdateProfile(ctx *gin.Context) {
	current, ok := requireUser(ctx)
	if !ok {
		return
	}

	var update models.ProfileUpdate
	if !bindJSON(ctx, &update) {
		return
	}

	resp, err := c.users.UpdateProfile(ctx.Request.Context(), current.ID, update)
	if err != nil {
		sendError(ctx, err)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, resp)
}

func (c *UserController) GetUsers(ctx *gin.Context) {
	users, err := c.users.List(ctx.Request.Context())
	if err != nil {
		sendError(ctx, err)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, users)
}

func (c *UserController) GetUser(ctx *gin.Context) {
	user, err := c.users.Get(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		sendError(ctx, err)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, user)
}

func (c *UserController) UpdateUser(ctx *gin.Context) {
	var update models.UserUpdate
	if !bindJSON(ctx, &update) {
		return
	}

	user, err := c.users.Update(ctx.Request.Context(), ctx.Param("id"), update)
	if err != nil {
		sendError(ctx, err)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, user)
}

func (c *UserController) DeleteUser(ctx *gin.Context) {
	if err := c.users.Delete(ctx.Request.Context(), ctx.Param("id")); err != nil {
		sendError(ctx, err)
		return
	}
	sendMessage(ctx, http.StatusOK, "User deleted")
}
