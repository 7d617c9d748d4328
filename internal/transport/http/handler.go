package http

import (
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"quiz-timer-service/internal/app"
	"quiz-timer-service/internal/domain"
)

// Handler exposes the quiz use cases as JSON endpoints under /api/quiz.
type Handler struct {
	service              *app.QuizService
	logger               *zap.SugaredLogger
	defaultQuestionCount int
}

func NewHandler(service *app.QuizService, logger *zap.SugaredLogger, defaultQuestionCount int) *Handler {
	if defaultQuestionCount <= 0 {
		defaultQuestionCount = 10
	}
	return &Handler{
		service:              service,
		logger:               logger,
		defaultQuestionCount: defaultQuestionCount,
	}
}

// NewRouter wires the REST API, the websocket endpoint and health check onto a gin engine.
func NewRouter(h *Handler, ws *WSHandler, logger *zap.SugaredLogger) *gin.Engine {
	r := gin.New()
	r.HandleMethodNotAllowed = true
	r.Use(requestLogger(logger))
	r.Use(gin.CustomRecovery(func(c *gin.Context, recovered any) {
		logger.Errorw("panic while handling request", "path", c.Request.URL.Path, "panic", recovered)
		c.AbortWithStatusJSON(http.StatusInternalServerError, errorResponse{Error: "internal server error"})
	}))
	r.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders:    []string{"Content-Type"},
		MaxAge:          12 * time.Hour,
	}))

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, errorResponse{Error: "not found"})
	})
	r.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, errorResponse{Error: "method not allowed"})
	})

	r.GET("/healthz", func(c *gin.Context) { c.String(http.StatusOK, "ok") })
	if ws != nil {
		r.GET("/ws", gin.WrapF(ws.ServeWS))
	}
	h.Register(r.Group("/api/quiz"))
	return r
}

func (h *Handler) Register(api gin.IRoutes) {
	api.POST("/create", h.CreateQuiz)
	api.POST("/answer", h.SubmitAnswer)
	api.POST("/end", h.EndQuiz)
	api.GET("/bank", h.Bank)
	api.GET("/:sessionId/question", h.CurrentQuestion)
	api.GET("/:sessionId/stats", h.Stats)
	api.GET("/:sessionId/results", h.Results)
}

func (h *Handler) CreateQuiz(c *gin.Context) {
	var req createQuizRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "questionCount must be a non-negative integer"})
		return
	}
	count := h.defaultQuestionCount
	if req.QuestionCount != nil {
		count = *req.QuestionCount
	}

	session := h.service.CreateSession(c.Request.Context(), count)
	resp := createQuizResponse{
		SessionID:      session.ID(),
		TotalQuestions: session.TotalQuestions(),
	}
	if q, ok := session.CurrentQuestion(); ok {
		resp.FirstQuestion = &q
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) SubmitAnswer(c *gin.Context) {
	var req answerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "missing sessionId or selectedAnswer"})
		return
	}

	outcome, err := h.service.SubmitAnswer(c.Request.Context(), req.SessionID, *req.SelectedAnswer)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, outcome)
}

func (h *Handler) EndQuiz(c *gin.Context) {
	var req endQuizRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "missing sessionId"})
		return
	}

	ctx := c.Request.Context()
	if !h.service.EndSession(ctx, req.SessionID) {
		h.writeServiceError(c, domain.ErrSessionNotFound)
		return
	}
	results, err := h.service.FinalResults(ctx, req.SessionID)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, endQuizResponse{Ended: true, Results: results})
}

func (h *Handler) CurrentQuestion(c *gin.Context) {
	q, ok, err := h.service.CurrentQuestion(c.Request.Context(), c.Param("sessionId"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	if !ok {
		c.JSON(http.StatusNotFound, errorResponse{Error: "question not found"})
		return
	}
	c.JSON(http.StatusOK, q)
}

func (h *Handler) Stats(c *gin.Context) {
	stats, err := h.service.Stats(c.Request.Context(), c.Param("sessionId"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (h *Handler) Results(c *gin.Context) {
	results, err := h.service.FinalResults(c.Request.Context(), c.Param("sessionId"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, results)
}

func (h *Handler) Bank(c *gin.Context) {
	c.JSON(http.StatusOK, bankResponse{TotalQuestions: h.service.TotalQuestions()})
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrSessionNotFound):
		c.JSON(http.StatusNotFound, errorResponse{Error: "session not found"})
	default:
		h.logger.Errorw("request failed", "path", c.Request.URL.Path, "error", err)
		c.JSON(http.StatusInternalServerError, errorResponse{Error: "internal server error"})
	}
}

func requestLogger(logger *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Infow("http request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency", time.Since(start),
		)
	}
}
