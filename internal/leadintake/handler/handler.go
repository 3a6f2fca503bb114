// Package handler exposes the lead intake module's HTTP endpoints.
package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"propertychat_backend/internal/leadintake/service"
	"propertychat_backend/internal/leadintake/transport"
	"propertychat_backend/platform/httpkit"
	"propertychat_backend/platform/phone"
	"propertychat_backend/platform/validator"
)

// DigestSource supplies the listing digest attached to form submissions.
// Nil means no listing is available.
type DigestSource interface {
	PropertyDigest(ctx context.Context) *transport.PropertyContext
}

type Handler struct {
	svc    *service.Service
	digest DigestSource
	val    *validator.Validator
}

func New(svc *service.Service, digest DigestSource, val *validator.Validator) *Handler {
	return &Handler{svc: svc, digest: digest, val: val}
}

// SubmitLead accepts the widget's direct lead form.
// POST /api/v1/leads
func (h *Handler) SubmitLead(c *gin.Context) {
	var req transport.LeadFormRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid request", err.Error())
		return
	}
	if !phone.IsValid(req.Phone) {
		httpkit.Error(c, http.StatusBadRequest, "invalid phone number", nil)
		return
	}

	language := req.PreferredLanguage
	if language == "" {
		language = "en"
	}

	submission := transport.LeadSubmission{
		Name:              req.Name,
		Phone:             req.Phone,
		Email:             req.Email,
		FamilyBackground:  req.FamilyBackground,
		Occupation:        req.Occupation,
		Location:          req.Location,
		IsJain:            req.IsJain,
		InterestedIn:      req.InterestedIn,
		PreferredFloor:    req.PreferredFloor,
		VastuPreference:   req.VastuPreference,
		Budget:            req.Budget,
		Timeline:          req.Timeline,
		ChatHistory:       []transport.ChatTurn{},
		PreferredLanguage: language,
	}
	if h.digest != nil {
		submission.Property = h.digest.PropertyDigest(c.Request.Context())
	}

	if err := h.svc.Submit(c.Request.Context(), uuid.Nil, submission); err != nil {
		httpkit.HandleError(c, err)
		return
	}

	httpkit.JSON(c, http.StatusCreated, transport.SubmitLeadResponse{Success: true})
}
