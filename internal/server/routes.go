package server

import (
	"github.com/gin-gonic/gin"
	"github.com/lshigami/aptiscore/config"
	"github.com/lshigami/aptiscore/internal/auth"
	"github.com/lshigami/aptiscore/internal/controller"
	adminctrl "github.com/lshigami/aptiscore/internal/controller/admin"
	userctrl "github.com/lshigami/aptiscore/internal/controller/user"
	"go.uber.org/fx"
)

// Controllers groups everything RegisterRoutes mounts.
type Controllers struct {
	fx.In

	Auth       *controller.AuthController
	TestSets   *userctrl.TestSetController
	Submission *userctrl.SubmissionController
	Grading    *adminctrl.GradingController
}

func RegisterRoutes(router *gin.Engine, cfg *config.Config, mw *auth.Middleware, c Controllers) {
	api := router.Group("/api/v1")

	if cfg.Server.Mode != gin.ReleaseMode {
		api.POST("/auth/token", c.Auth.IssueToken)
	}

	learner := api.Group("", mw.Authenticate())
	{
		learner.GET("/sets", c.TestSets.ListSets)
		learner.GET("/sets/:id", c.TestSets.GetSet)

		learner.POST("/submissions/start", c.Submission.StartSubmission)
		learner.GET("/submissions", c.Submission.ListMySubmissions)
		learner.GET("/submissions/:id", c.Submission.GetSubmission)
		learner.POST("/submissions/:id/answers", c.Submission.SaveAnswer)
		learner.POST("/submissions/:id/submit", c.Submission.Submit)
	}

	admin := api.Group("/admin", mw.Authenticate(), mw.RequireAdmin())
	{
		admin.GET("/submissions", c.Grading.ListPending)
		admin.GET("/submissions/:id/answers", c.Grading.ListAnswers)
		admin.GET("/submissions/:id/answers/:questionId/suggestion", c.Grading.SuggestScore)
		admin.POST("/submissions/:id/complete", c.Grading.Complete)
		admin.POST("/grade", c.Grading.Grade)
	}
}
