package user

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/aptiscore/internal/controller"
	"github.com/lshigami/aptiscore/internal/service"
)

type TestSetController struct {
	testSetService service.TestSetService
}

func NewTestSetController(testSetService service.TestSetService) *TestSetController {
	return &TestSetController{testSetService: testSetService}
}

// ListSets godoc
// @Summary (Learner) List test sets
// @Tags Learner - Test Sets
// @Produce json
// @Success 200 {array} dto.TestSetSummaryResponse
// @Failure 401 {object} dto.ErrorResponse "Missing or invalid session"
// @Router /sets [get]
func (c *TestSetController) ListSets(ctx *gin.Context) {
	sets, err := c.testSetService.ListSets(ctx.Request.Context())
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, sets)
}

// GetSet godoc
// @Summary (Learner) Get a test set with its questions
// @Description Questions are returned in set order without answer keys.
// @Tags Learner - Test Sets
// @Produce json
// @Param id path int true "Test set ID"
// @Success 200 {object} dto.TestSetResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid ID"
// @Failure 401 {object} dto.ErrorResponse "Missing or invalid session"
// @Failure 404 {object} dto.ErrorResponse "Test set not found"
// @Router /sets/{id} [get]
func (c *TestSetController) GetSet(ctx *gin.Context) {
	id, err := controller.ParseIDParam(ctx, "id")
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	set, err := c.testSetService.GetSet(ctx.Request.Context(), id)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, set)
}
