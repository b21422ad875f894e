package controller

import (
	"strconv"

	"survey_quiz_backend/internal/service"
	"survey_quiz_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type QuestionController struct {
	QuestionService *service.QuestionService
}

func NewQuestionController(questionService *service.QuestionService) *QuestionController {
	return &QuestionController{QuestionService: questionService}
}

// CreateQuestion godoc
// @Summary Add a question to the bank
// @Description Requires admin role. Exactly one option must be marked correct.
// @Tags questions
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.CreateQuestionReq true "question"
// @Success 201 {object} util.Response{data=model.Question}
// @Failure 400 {object} util.Response
// @Router /api/questions [post]
func (c *QuestionController) CreateQuestion(ctx *gin.Context) {
	var req service.CreateQuestionReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	question, err := c.QuestionService.CreateQuestion(req)
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	util.Created(ctx, question)
}

// ListQuestions godoc
// @Summary List all questions, newest first
// @Tags questions
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.Question}
// @Router /api/questions [get]
func (c *QuestionController) ListQuestions(ctx *gin.Context) {
	questions, err := c.QuestionService.ListQuestions()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, questions)
}

// GetRandomQuestions godoc
// @Summary Random question sample with correctness flags stripped
// @Tags questions
// @Produce json
// @Param count path int false "sample size" default(5)
// @Param category query string false "category filter, empty or 'all' for none"
// @Success 200 {object} util.Response{data=[]service.QuestionForUser}
// @Router /api/questions/random/{count} [get]
func (c *QuestionController) GetRandomQuestions(ctx *gin.Context) {
	count, err := strconv.Atoi(ctx.Param("count"))
	if err != nil || count <= 0 {
		count = 5
	}
	category := ctx.Query("category")

	questions, err := c.QuestionService.RandomQuestions(category, count)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, questions)
}

// GetCategories godoc
// @Summary Distinct categories present in the question bank
// @Tags questions
// @Produce json
// @Success 200 {object} util.Response{data=[]string}
// @Router /api/questions/categories [get]
func (c *QuestionController) GetCategories(ctx *gin.Context) {
	categories, err := c.QuestionService.ListCategories()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, categories)
}
