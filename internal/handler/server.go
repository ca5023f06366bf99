package handler

import (
	"net/http"

	"github.com/fxola/trivia-api/internal/pagination"
	"github.com/fxola/trivia-api/internal/ratelimit"
	"github.com/fxola/trivia-api/internal/service"
	"github.com/fxola/trivia-api/internal/websocket"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

// Options configures the HTTP server. Zero values disable the optional parts.
type Options struct {
	PageSize int
	Limiter  *ratelimit.Limiter
	Hub      *websocket.Hub
	Log      *zap.Logger
}

// NewServer wires the trivia API onto a new echo instance
func NewServer(questions *service.QuestionService, quizzes *service.QuizService, opts Options) *echo.Echo {
	log := opts.Log
	if log == nil {
		log = zap.NewNop()
	}
	pageSize := opts.PageSize
	if pageSize < 1 {
		pageSize = pagination.DefaultPageSize
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = NewRequestValidator()
	e.HTTPErrorHandler = ErrorHandler(log)

	// Middleware
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(requestLogger(log))
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{
			http.MethodGet,
			http.MethodPatch,
			http.MethodPost,
			http.MethodDelete,
			http.MethodOptions,
		},
		AllowHeaders: []string{echo.HeaderContentType, echo.HeaderAuthorization},
	}))

	var limited []echo.MiddlewareFunc
	if opts.Limiter != nil {
		limited = append(limited, ratelimit.Middleware(opts.Limiter, log))
	}

	// Routes
	NewCategoryHandler(questions, pageSize).Register(e)
	NewQuestionHandler(questions, pageSize).Register(e, limited...)
	NewQuizHandler(quizzes).Register(e, limited...)

	if opts.Hub != nil {
		e.GET("/ws", NewWebSocketHandler(opts.Hub, log).HandleWebSocket)
	}

	// Health check endpoint
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"status": "ok",
		})
	})

	return e
}

func requestLogger(log *zap.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:       true,
		LogMethod:    true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			fields := []zap.Field{
				zap.String("request_id", v.RequestID),
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency),
			}
			if v.Error != nil {
				log.Warn("request", append(fields, zap.Error(v.Error))...)
				return nil
			}
			log.Info("request", fields...)
			return nil
		},
	})
}
