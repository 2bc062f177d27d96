package handlers

import (
	"net/http"

	"github.com/geezit/geezit-server/internal/apperrors"
	"github.com/geezit/geezit-server/internal/utils"
)

type heartInput struct {
	Username string `json:"username"`
}

// POST /api/hearts
// ToggleHeart godoc
// @Summary Toggle a heart for a user
// @Description Sends a heart, or takes back the one already sent.
// @Tags Hearts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body heartInput true "Recipient"
// @Success 200 {object} map[string]bool
// @Failure 404 {object} utils.ErrorPayload "User not found"
// @Router /api/hearts [post]
func (h *Handler) ToggleHeart(w http.ResponseWriter, r *http.Request) {
	var input heartInput
	if err := utils.DecodeJSON(r, &input); err != nil {
		h.fail(w, r, "heart", apperrors.ErrInvalidInput)
		return
	}

	hearted, err := h.svc.ToggleHeart(r.Context(), caller(r).UserID, input.Username)
	if err != nil {
		h.fail(w, r, "heart", err)
		return
	}
	utils.JSONResponse(w, http.StatusOK, map[string]bool{"hearted": hearted})
}

// GET /api/hearts
// ListHearts godoc
// @Summary Hearts received by the caller, newest first
// @Tags Hearts
// @Produce json
// @Security BearerAuth
// @Success 200 {array} services.HeartView
// @Router /api/hearts [get]
func (h *Handler) ListHearts(w http.ResponseWriter, r *http.Request) {
	hearts, err := h.svc.ListHearts(r.Context(), caller(r).UserID)
	if err != nil {
		h.fail(w, r, "list hearts", err)
		return
	}
	utils.JSONResponse(w, http.StatusOK, hearts)
}
