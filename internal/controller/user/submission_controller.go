package user

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/aptiscore/internal/auth"
	"github.com/lshigami/aptiscore/internal/controller"
	"github.com/lshigami/aptiscore/internal/dto"
	"github.com/lshigami/aptiscore/internal/service"
)

type SubmissionController struct {
	submissionService service.SubmissionService
}

func NewSubmissionController(submissionService service.SubmissionService) *SubmissionController {
	return &SubmissionController{submissionService: submissionService}
}

// StartSubmission godoc
// @Summary (Learner) Start a new attempt on a test set
// @Description Creates an in-progress submission. The attempt number is one more than the caller's previous attempt on the set.
// @Tags Learner - Submissions
// @Accept json
// @Produce json
// @Param request body dto.StartSubmissionRequest true "Test set to attempt"
// @Success 201 {object} dto.StartSubmissionResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid request body"
// @Failure 401 {object} dto.ErrorResponse "Missing or invalid session"
// @Failure 404 {object} dto.ErrorResponse "Test set not found"
// @Router /submissions/start [post]
func (c *SubmissionController) StartSubmission(ctx *gin.Context) {
	var req dto.StartSubmissionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		controller.BindError(ctx, err)
		return
	}
	resp, err := c.submissionService.Start(ctx.Request.Context(), auth.UserID(ctx), req.SetID)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, resp)
}

// SaveAnswer godoc
// @Summary (Learner) Save the answer to one question
// @Description Upserts the answer, scores it immediately when the question type allows, and appends a progress record.
// @Tags Learner - Submissions
// @Accept json
// @Produce json
// @Param id path int true "Submission ID"
// @Param request body dto.SaveAnswerRequest true "Question and answer"
// @Success 200 {object} dto.SaveAnswerResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid answer or submission not in progress"
// @Failure 401 {object} dto.ErrorResponse "Missing or invalid session"
// @Failure 403 {object} dto.ErrorResponse "Submission belongs to another user"
// @Failure 404 {object} dto.ErrorResponse "Submission or question not found"
// @Router /submissions/{id}/answers [post]
func (c *SubmissionController) SaveAnswer(ctx *gin.Context) {
	id, err := controller.ParseIDParam(ctx, "id")
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	var req dto.SaveAnswerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		controller.BindError(ctx, err)
		return
	}
	resp, err := c.submissionService.SaveAnswer(ctx.Request.Context(), auth.UserID(ctx), id, req)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// Submit godoc
// @Summary (Learner) Submit an attempt
// @Description Computes the totals and records the result. Submitting again before grading recomputes the totals.
// @Tags Learner - Submissions
// @Produce json
// @Param id path int true "Submission ID"
// @Success 200 {object} dto.ResultResponse
// @Failure 400 {object} dto.ErrorResponse "Submission already graded"
// @Failure 401 {object} dto.ErrorResponse "Missing or invalid session"
// @Failure 403 {object} dto.ErrorResponse "Submission belongs to another user"
// @Failure 404 {object} dto.ErrorResponse "Submission not found"
// @Router /submissions/{id}/submit [post]
func (c *SubmissionController) Submit(ctx *gin.Context) {
	id, err := controller.ParseIDParam(ctx, "id")
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	resp, err := c.submissionService.Submit(ctx.Request.Context(), auth.UserID(ctx), id)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// GetSubmission godoc
// @Summary (Learner) Get a submission with its answers
// @Tags Learner - Submissions
// @Produce json
// @Param id path int true "Submission ID"
// @Success 200 {object} dto.SubmissionDetailResponse
// @Failure 401 {object} dto.ErrorResponse "Missing or invalid session"
// @Failure 403 {object} dto.ErrorResponse "Submission belongs to another user"
// @Failure 404 {object} dto.ErrorResponse "Submission not found"
// @Router /submissions/{id} [get]
func (c *SubmissionController) GetSubmission(ctx *gin.Context) {
	id, err := controller.ParseIDParam(ctx, "id")
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	resp, err := c.submissionService.GetSubmission(ctx.Request.Context(), auth.UserID(ctx), id)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// ListMySubmissions godoc
// @Summary (Learner) List my submissions
// @Description Lists the caller's submissions, optionally for one set, latest attempt first.
// @Tags Learner - Submissions
// @Produce json
// @Param setId query int false "Filter by test set"
// @Success 200 {array} dto.SubmissionResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid query"
// @Failure 401 {object} dto.ErrorResponse "Missing or invalid session"
// @Router /submissions [get]
func (c *SubmissionController) ListMySubmissions(ctx *gin.Context) {
	var q dto.ListSubmissionsQuery
	if err := ctx.ShouldBindQuery(&q); err != nil {
		controller.BindError(ctx, err)
		return
	}
	resp, err := c.submissionService.ListMine(ctx.Request.Context(), auth.UserID(ctx), q.SetID)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}
