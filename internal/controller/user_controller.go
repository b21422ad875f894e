package controller

import (
	"errors"
	"strconv"

	"survey_quiz_backend/internal/service"
	"survey_quiz_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type UserController struct {
	UserService *service.UserService
}

func NewUserController(userService *service.UserService) *UserController {
	return &UserController{UserService: userService}
}

// GetProfile godoc
// @Summary Current user's profile with derived average score
// @Tags users
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=service.Profile}
// @Failure 404 {object} util.Response
// @Router /api/users/profile [get]
func (c *UserController) GetProfile(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	profile, err := c.UserService.GetProfile(user.UserID)
	if err != nil {
		if errors.Is(err, util.ErrUserNotFound) {
			util.NotFound(ctx, err.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, profile)
}

// GetLeaderboard godoc
// @Summary Global leaderboard ranked by total score
// @Tags users
// @Produce json
// @Param limit query int false "number of entries" default(10)
// @Success 200 {object} util.Response{data=[]service.LeaderboardEntry}
// @Router /api/users/leaderboard [get]
func (c *UserController) GetLeaderboard(ctx *gin.Context) {
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "10"))

	entries, err := c.UserService.GetLeaderboard(ctx.Request.Context(), limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, entries)
}
