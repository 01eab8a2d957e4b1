package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/abhisek/scholar/internal/lesson"
	"github.com/abhisek/scholar/internal/logger"
	"github.com/abhisek/scholar/internal/server/middleware"
	"github.com/abhisek/scholar/internal/server/response"
	"github.com/abhisek/scholar/internal/tutor"
)

var errInternal = errors.New("something went wrong, please try again")

type TutorHandler struct {
	workflow *tutor.Workflow
	log      *logger.Logger
}

func NewTutorHandler(workflow *tutor.Workflow, log *logger.Logger) *TutorHandler {
	if log == nil {
		log = logger.Nop()
	}
	return &TutorHandler{workflow: workflow, log: log}
}

type generateRequest struct {
	AcademicLevel string `json:"academic_level"`
	Subject       string `json:"subject"`
	Topic         string `json:"topic"`
}

type generateResponse struct {
	Success        bool               `json:"success"`
	Content        string             `json:"content"`
	Structure      []lesson.Section   `json:"structure"`
	References     []lesson.Reference `json:"references"`
	KeyPoints      []string           `json:"key_points"`
	WordCount      int                `json:"word_count"`
	Source         lesson.Source      `json:"source"`
	SessionID      string             `json:"session_id"`
	ContentVersion string             `json:"content_version"`
}

// POST /generate_content
func (h *TutorHandler) GenerateContent(c *gin.Context) {
	var req generateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}

	st, err := h.workflow.StartLesson(c.Request.Context(), middleware.SessionKey(c), req.AcademicLevel, req.Subject, req.Topic)
	if err != nil {
		h.respondWorkflowError(c, err)
		return
	}

	content := st.Content
	response.RespondOK(c, generateResponse{
		Success:        true,
		Content:        content.Body,
		Structure:      content.Structure,
		References:     content.References,
		KeyPoints:      content.KeyPoints,
		WordCount:      content.WordCount,
		Source:         content.Source,
		SessionID:      st.SessionID,
		ContentVersion: st.ContentVersion,
	})
}

type analyzeRequest struct {
	Response       string `json:"response"`
	ContentVersion string `json:"content_version"`
}

type analyzeResponse struct {
	Success     bool              `json:"success"`
	Analysis    *lesson.Analysis  `json:"analysis"`
	Celebration tutor.Celebration `json:"celebration"`
}

// POST /analyze_response
func (h *TutorHandler) AnalyzeResponse(c *gin.Context) {
	var req analyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}

	st, err := h.workflow.SubmitResponse(c.Request.Context(), middleware.SessionKey(c), req.Response, req.ContentVersion)
	if err != nil {
		h.respondWorkflowError(c, err)
		return
	}

	response.RespondOK(c, analyzeResponse{
		Success:     true,
		Analysis:    st.LastAnalysis,
		Celebration: h.workflow.Celebration(st),
	})
}

type sessionDataResponse struct {
	AcademicLevel  string           `json:"academic_level"`
	Subject        string           `json:"subject"`
	Topic          string           `json:"topic"`
	SessionID      string           `json:"session_id"`
	HasContent     bool             `json:"has_content"`
	ContentVersion string           `json:"content_version"`
	LastAnalysis   *lesson.Analysis `json:"last_analysis"`
}

// GET /get_session_data
func (h *TutorHandler) GetSessionData(c *gin.Context) {
	st, err := h.workflow.State(c.Request.Context(), middleware.SessionKey(c))
	if err != nil {
		h.respondWorkflowError(c, err)
		return
	}
	response.RespondOK(c, sessionDataResponse{
		AcademicLevel:  st.AcademicLevel,
		Subject:        st.Subject,
		Topic:          st.Topic,
		SessionID:      st.SessionID,
		HasContent:     st.HasContent(),
		ContentVersion: st.ContentVersion,
		LastAnalysis:   st.LastAnalysis,
	})
}

// POST /reset_session
func (h *TutorHandler) ResetSession(c *gin.Context) {
	if err := h.workflow.Reset(c.Request.Context(), middleware.SessionKey(c)); err != nil {
		h.respondWorkflowError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"success": true})
}

// respondWorkflowError maps caller contract violations to 4xx and hides
// everything else behind a generic 500.
func (h *TutorHandler) respondWorkflowError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, tutor.ErrMissingFields):
		response.RespondError(c, http.StatusBadRequest, "missing_fields", err)
	case errors.Is(err, tutor.ErrEmptyResponse):
		response.RespondError(c, http.StatusBadRequest, "empty_response", err)
	case errors.Is(err, tutor.ErrNoContent):
		response.RespondError(c, http.StatusBadRequest, "no_content", err)
	case errors.Is(err, tutor.ErrStaleContent):
		response.RespondError(c, http.StatusConflict, "stale_content", err)
	default:
		_ = c.Error(err)
		h.log.Error("request failed", "path", c.FullPath(), "error", err)
		response.RespondError(c, http.StatusInternalServerError, "internal", errInternal)
	}
}
