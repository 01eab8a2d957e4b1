package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/abhisek/scholar/internal/logger"
	"github.com/abhisek/scholar/internal/server/response"
	"github.com/abhisek/scholar/internal/transcribe"
)

// AudioField is the multipart field carrying the recording.
const AudioField = "audio"

var errNoAudio = errors.New("no audio file provided")

type VoiceHandler struct {
	transcriber transcribe.Transcriber
	log         *logger.Logger
}

func NewVoiceHandler(t transcribe.Transcriber, log *logger.Logger) *VoiceHandler {
	if t == nil {
		t = transcribe.Unavailable{}
	}
	if log == nil {
		log = logger.Nop()
	}
	return &VoiceHandler{transcriber: t, log: log}
}

// POST /transcribe_audio
func (h *VoiceHandler) Transcribe(c *gin.Context) {
	if !h.transcriber.Status().Available {
		response.RespondError(c, http.StatusServiceUnavailable, "voice_unavailable", transcribe.ErrUnavailable)
		return
	}

	fh, err := c.FormFile(AudioField)
	if err != nil || fh.Size == 0 {
		response.RespondError(c, http.StatusBadRequest, "no_audio", errNoAudio)
		return
	}
	f, err := fh.Open()
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "no_audio", errNoAudio)
		return
	}
	defer f.Close()

	text, err := h.transcriber.Transcribe(c.Request.Context(), fh.Filename, f)
	if err != nil {
		_ = c.Error(err)
		h.log.Error("transcription failed", "error", err, "bytes", fh.Size)
		response.RespondError(c, http.StatusInternalServerError, "transcription_failed", errInternal)
		return
	}

	response.RespondOK(c, gin.H{"success": true, "transcription": text})
}

// GET /voice_status
func (h *VoiceHandler) Status(c *gin.Context) {
	response.RespondOK(c, h.transcriber.Status())
}
