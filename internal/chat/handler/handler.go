// Package handler exposes the conversation controller over HTTP.
package handler

import (
	"net/http"

	"propertychat_backend/internal/chat/service"
	"propertychat_backend/internal/chat/transport"
	"propertychat_backend/platform/apperr"
	"propertychat_backend/platform/httpkit"
	"propertychat_backend/platform/validator"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Handler adapts HTTP requests to controller operations.
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

// New creates a chat handler.
func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// StartSession creates a conversation session.
// POST /api/v1/chat/sessions
func (h *Handler) StartSession(c *gin.Context) {
	var req transport.StartSessionRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			httpkit.Error(c, http.StatusBadRequest, "invalid request body", nil)
			return
		}
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid request", err.Error())
		return
	}

	session, err := h.svc.StartSession(c.Request.Context(), req.Language)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.Created(c, transport.ToSessionResponse(session))
}

// GetSession returns the current session view.
// GET /api/v1/chat/sessions/:id
func (h *Handler) GetSession(c *gin.Context) {
	id, ok := h.sessionID(c)
	if !ok {
		return
	}

	session, err := h.svc.GetSession(c.Request.Context(), id)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, transport.ToSessionResponse(session))
}

// SendMessage processes one user turn.
// POST /api/v1/chat/sessions/:id/messages
func (h *Handler) SendMessage(c *gin.Context) {
	id, ok := h.sessionID(c)
	if !ok {
		return
	}

	var req transport.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid request", err.Error())
		return
	}

	session, err := h.svc.SendMessage(c.Request.Context(), id, req.Message)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, transport.ToSessionResponse(session))
}

// ConfirmInterest sends the fixed interest turn.
// POST /api/v1/chat/sessions/:id/interest
func (h *Handler) ConfirmInterest(c *gin.Context) {
	id, ok := h.sessionID(c)
	if !ok {
		return
	}

	session, err := h.svc.ConfirmInterest(c.Request.Context(), id)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, transport.ToSessionResponse(session))
}

func (h *Handler) sessionID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.HandleError(c, apperr.BadRequest("invalid session id"))
		return uuid.UUID{}, false
	}
	return id, true
}
