package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/Snapquiz/internal/controller/proxy"
	"github.com/lshigami/Snapquiz/internal/controller/user"
	"github.com/lshigami/Snapquiz/internal/dto"
	"github.com/lshigami/Snapquiz/internal/repository"
)

// Controller groups the HTTP handlers and knows where each one is mounted.
type Controller struct {
	quizCtrl    *user.QuizController
	proxyCtrl   *proxy.GeminiProxyController
	sessionRepo repository.SessionRepository
}

func NewController(quizCtrl *user.QuizController, proxyCtrl *proxy.GeminiProxyController, sessionRepo repository.SessionRepository) *Controller {
	return &Controller{
		quizCtrl:    quizCtrl,
		proxyCtrl:   proxyCtrl,
		sessionRepo: sessionRepo,
	}
}

func (ctrl *Controller) RegisterRoutes(router *gin.Engine) {
	router.GET("/healthz", ctrl.Healthz)

	apiV1 := router.Group("/api/v1")
	{
		apiV1.POST("/quizzes", ctrl.quizCtrl.GenerateQuiz)

		sessions := apiV1.Group("/sessions")
		sessions.POST("", ctrl.quizCtrl.StartSession)
		sessions.GET("/:session_id", ctrl.quizCtrl.GetSession)
		sessions.DELETE("/:session_id", ctrl.quizCtrl.EndSession)
		sessions.POST("/:session_id/answers", ctrl.quizCtrl.SubmitAnswer)
		sessions.GET("/:session_id/results", ctrl.quizCtrl.GetResults)
		sessions.POST("/:session_id/review", ctrl.quizCtrl.StartReview)
	}

	const proxyPath = "/api/gemini-proxy"
	router.POST(proxyPath, ctrl.proxyCtrl.Forward)
	for _, method := range []string{http.MethodGet, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodHead} {
		router.Handle(method, proxyPath, ctrl.proxyCtrl.MethodNotAllowed)
	}
}

// Healthz godoc
// @Summary Liveness probe
// @Tags Health
// @Produce json
// @Success 200 {object} dto.HealthResponse
// @Router /healthz [get]
func (ctrl *Controller) Healthz(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, dto.HealthResponse{Status: "ok", Sessions: ctrl.sessionRepo.Count()})
}
