package server

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/abhisek/scholar/internal/logger"
	"github.com/abhisek/scholar/internal/server/handlers"
	"github.com/abhisek/scholar/internal/server/middleware"
)

// MaxAudioBytes bounds multipart memory for audio uploads.
const MaxAudioBytes = 25 << 20

type RouterConfig struct {
	TutorHandler  *handlers.TutorHandler
	VoiceHandler  *handlers.VoiceHandler
	HealthHandler *handlers.HealthHandler

	Logger         *logger.Logger
	AllowedOrigins []string
	Session        middleware.SessionConfig
	RequestTimeout time.Duration
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.MaxMultipartMemory = MaxAudioBytes
	r.Use(gin.Recovery())
	r.Use(middleware.CORS(cfg.AllowedOrigins))
	r.Use(middleware.Session(cfg.Session))
	r.Use(middleware.RequestLogger(cfg.Logger))

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	}

	// Lessons and analyses
	if cfg.TutorHandler != nil {
		gen := r.Group("/")
		gen.Use(middleware.Timeout(cfg.RequestTimeout))
		gen.POST("/generate_content", cfg.TutorHandler.GenerateContent)
		gen.POST("/analyze_response", cfg.TutorHandler.AnalyzeResponse)

		r.GET("/get_session_data", cfg.TutorHandler.GetSessionData)
		r.POST("/reset_session", cfg.TutorHandler.ResetSession)
	}

	// Voice
	if cfg.VoiceHandler != nil {
		r.POST("/transcribe_audio", middleware.Timeout(cfg.RequestTimeout), cfg.VoiceHandler.Transcribe)
		r.GET("/voice_status", cfg.VoiceHandler.Status)
	}

	return r
}
