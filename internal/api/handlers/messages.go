package handlers

import (
	"net/http"

	"github.com/geezit/geezit-server/internal/apperrors"
	"github.com/geezit/geezit-server/internal/utils"
)

type sendMessageInput struct {
	Username string `json:"username"`
	Message  string `json:"message"`
}

// POST /api/messages
// SendMessage godoc
// @Summary Send an anonymous message
// @Description No authentication; the sender is never recorded.
// @Tags Messages
// @Accept json
// @Produce json
// @Param body body sendMessageInput true "Recipient and text"
// @Success 200 {object} map[string]bool
// @Failure 400 {object} utils.ErrorPayload "Username and message required"
// @Failure 404 {object} utils.ErrorPayload "User not found"
// @Router /api/messages [post]
func (h *Handler) SendMessage(w http.ResponseWriter, r *http.Request) {
	var input sendMessageInput
	if err := utils.DecodeJSON(r, &input); err != nil {
		h.fail(w, r, "send message", apperrors.ErrInvalidInput)
		return
	}

	if err := h.svc.SendMessage(r.Context(), input.Username, input.Message); err != nil {
		h.fail(w, r, "send message", err)
		return
	}
	utils.JSONResponse(w, http.StatusOK, map[string]bool{"success": true})
}

// GET /api/messages
// ListMessages godoc
// @Summary Messages received by the caller, newest first
// @Tags Messages
// @Produce json
// @Security BearerAuth
// @Success 200 {array} services.MessageView
// @Router /api/messages [get]
func (h *Handler) ListMessages(w http.ResponseWriter, r *http.Request) {
	msgs, err := h.svc.ListMessages(r.Context(), caller(r).UserID)
	if err != nil {
		h.fail(w, r, "list messages", err)
		return
	}
	utils.JSONResponse(w, http.StatusOK, msgs)
}

// GET /api/messages/export
// ExportMessages godoc
// @Summary Export the caller's inbox
// @Description Uploads the inbox as JSON to object storage and returns a link valid for 15 minutes.
// @Tags Messages
// @Produce json
// @Security BearerAuth
// @Success 200 {object} services.ExportLink
// @Failure 503 {object} utils.ErrorPayload "Export storage not configured"
// @Router /api/messages/export [get]
func (h *Handler) ExportMessages(w http.ResponseWriter, r *http.Request) {
	link, err := h.svc.ExportMessages(r.Context(), caller(r).UserID)
	if err != nil {
		h.fail(w, r, "export messages", err)
		return
	}
	utils.JSONResponse(w, http.StatusOK, link)
}
