package admin

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/aptiscore/internal/auth"
	"github.com/lshigami/aptiscore/internal/controller"
	"github.com/lshigami/aptiscore/internal/dto"
	"github.com/lshigami/aptiscore/internal/model"
	"github.com/lshigami/aptiscore/internal/scoring"
	"github.com/lshigami/aptiscore/internal/service"
)

type GradingController struct {
	gradingService service.GradingService
}

func NewGradingController(gradingService service.GradingService) *GradingController {
	return &GradingController{gradingService: gradingService}
}

// ListPending godoc
// @Summary (Admin) List submissions with free-response answers
// @Description Lists submissions in the given status (default submitted) that have writing or speaking answers, with graded counts.
// @Tags Admin - Grading
// @Produce json
// @Param status query string false "Submission status" Enums(in_progress, submitted, graded)
// @Param skill query string false "Restrict to one skill" Enums(writing, speaking)
// @Success 200 {array} dto.PendingSubmissionResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid filter"
// @Failure 401 {object} dto.ErrorResponse "Missing or invalid session"
// @Failure 403 {object} dto.ErrorResponse "Admin role required"
// @Router /admin/submissions [get]
func (c *GradingController) ListPending(ctx *gin.Context) {
	var q dto.PendingSubmissionsQuery
	if err := ctx.ShouldBindQuery(&q); err != nil {
		controller.BindError(ctx, err)
		return
	}
	resp, err := c.gradingService.ListPending(ctx.Request.Context(), model.SubmissionStatus(q.Status), scoring.Skill(q.Skill))
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// ListAnswers godoc
// @Summary (Admin) Free-response answers of a submission
// @Tags Admin - Grading
// @Produce json
// @Param id path int true "Submission ID"
// @Success 200 {array} dto.FreeResponseAnswerResponse
// @Failure 401 {object} dto.ErrorResponse "Missing or invalid session"
// @Failure 403 {object} dto.ErrorResponse "Admin role required"
// @Failure 404 {object} dto.ErrorResponse "Submission not found"
// @Router /admin/submissions/{id}/answers [get]
func (c *GradingController) ListAnswers(ctx *gin.Context) {
	id, err := controller.ParseIDParam(ctx, "id")
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	resp, err := c.gradingService.ListFreeResponseAnswers(ctx.Request.Context(), id)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// Grade godoc
// @Summary (Admin) Grade one writing or speaking answer
// @Description Records the manual grading and copies the score onto the answer. Regrading overwrites.
// @Tags Admin - Grading
// @Accept json
// @Produce json
// @Param request body dto.GradeRequest true "Grading"
// @Success 200 {object} dto.GradeResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid grading, auto-scored question or submission still in progress"
// @Failure 401 {object} dto.ErrorResponse "Missing or invalid session"
// @Failure 403 {object} dto.ErrorResponse "Admin role required"
// @Failure 404 {object} dto.ErrorResponse "Submission, question or answer not found"
// @Router /admin/grade [post]
func (c *GradingController) Grade(ctx *gin.Context) {
	var req dto.GradeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		controller.BindError(ctx, err)
		return
	}
	resp, err := c.gradingService.Grade(ctx.Request.Context(), auth.UserID(ctx), req)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// Complete godoc
// @Summary (Admin) Complete grading of a submission
// @Description Recomputes the totals including manual scores, marks the submission graded and refreshes its result.
// @Tags Admin - Grading
// @Produce json
// @Param id path int true "Submission ID"
// @Success 200 {object} dto.CompleteGradingResponse
// @Failure 400 {object} dto.ErrorResponse "Submission still in progress"
// @Failure 401 {object} dto.ErrorResponse "Missing or invalid session"
// @Failure 403 {object} dto.ErrorResponse "Admin role required"
// @Failure 404 {object} dto.ErrorResponse "Submission not found"
// @Router /admin/submissions/{id}/complete [post]
func (c *GradingController) Complete(ctx *gin.Context) {
	id, err := controller.ParseIDParam(ctx, "id")
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	resp, err := c.gradingService.Complete(ctx.Request.Context(), id)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// SuggestScore godoc
// @Summary (Admin) AI score suggestion for a free-response answer
// @Description Asks the language model for a score and feedback. Nothing is stored.
// @Tags Admin - Grading
// @Produce json
// @Param id path int true "Submission ID"
// @Param questionId path int true "Question ID"
// @Success 200 {object} dto.ScoreSuggestionResponse
// @Failure 400 {object} dto.ErrorResponse "Question is auto-scored"
// @Failure 404 {object} dto.ErrorResponse "Submission, question or answer not found"
// @Failure 503 {object} dto.ErrorResponse "Suggestions not configured"
// @Router /admin/submissions/{id}/answers/{questionId}/suggestion [get]
func (c *GradingController) SuggestScore(ctx *gin.Context) {
	id, err := controller.ParseIDParam(ctx, "id")
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	questionID, err := controller.ParseIDParam(ctx, "questionId")
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	resp, err := c.gradingService.SuggestScore(ctx.Request.Context(), id, questionID)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}
