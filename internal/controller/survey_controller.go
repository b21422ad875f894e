package controller

import (
	"errors"
	"net/http"

	"survey_quiz_backend/internal/service"
	"survey_quiz_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type SurveyController struct {
	SurveyService *service.SurveyService
}

func NewSurveyController(surveyService *service.SurveyService) *SurveyController {
	return &SurveyController{SurveyService: surveyService}
}

// StartSurvey godoc
// @Summary Start a new survey from randomly sampled questions
// @Description Returns the redacted question projection; correctness flags are withheld until submission.
// @Tags surveys
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.StartSurveyReq true "category filter and question count"
// @Success 201 {object} util.Response{data=service.StartSurveyResult}
// @Failure 400 {object} util.Response "invalid question count"
// @Failure 404 {object} util.Response "no questions for category"
// @Router /api/surveys/start [post]
func (c *SurveyController) StartSurvey(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.StartSurveyReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.SurveyService.StartSurvey(user.UserID, req)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrNoQuestions):
			util.NotFound(ctx, err.Error())
		case errors.Is(err, util.ErrInvalidCount):
			util.BadRequest(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Created(ctx, result)
}

// SubmitSurvey godoc
// @Summary Submit a survey's answer batch for grading
// @Description Grades the batch, finalizes the survey exactly once, and updates the owner's aggregates.
// @Tags surveys
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.SubmitSurveyReq true "answers"
// @Success 200 {object} util.Response{data=service.SurveyResult}
// @Failure 400 {object} util.Response "malformed request or option index out of range"
// @Failure 403 {object} util.Response "survey belongs to another user"
// @Failure 404 {object} util.Response "survey not found"
// @Failure 409 {object} util.Response "survey already completed"
// @Router /api/surveys/submit [post]
func (c *SurveyController) SubmitSurvey(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.SubmitSurveyReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.SurveyService.SubmitSurvey(user.UserID, req)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrSurveyNotFound):
			util.NotFound(ctx, err.Error())
		case errors.Is(err, util.ErrNotSurveyOwner):
			util.Forbidden(ctx, err.Error())
		case errors.Is(err, util.ErrSurveyCompleted):
			util.Error(ctx, http.StatusConflict, err.Error())
		case errors.Is(err, util.ErrInvalidAnswer):
			util.BadRequest(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, result)
}

// GetSurveyHistory godoc
// @Summary Completed surveys of the current user, newest first
// @Tags surveys
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]service.SurveyHistoryEntry}
// @Router /api/surveys/history [get]
func (c *SurveyController) GetSurveyHistory(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	history, err := c.SurveyService.GetSurveyHistory(user.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, history)
}
