package handlers

import (
	"net/http"

	"github.com/geezit/geezit-server/internal/apperrors"
	"github.com/geezit/geezit-server/internal/utils"
)

// GET /api/user/profile
// GetProfile godoc
// @Summary Current user's profile
// @Description Returns the caller's account with received message and heart counts.
// @Tags Profile
// @Produce json
// @Security BearerAuth
// @Success 200 {object} services.Profile
// @Failure 401 {object} utils.ErrorPayload
// @Failure 403 {object} utils.ErrorPayload
// @Failure 404 {object} utils.ErrorPayload "User not found"
// @Router /api/user/profile [get]
func (h *Handler) GetProfile(w http.ResponseWriter, r *http.Request) {
	profile, err := h.svc.GetProfile(r.Context(), caller(r).UserID)
	if err != nil {
		h.fail(w, r, "profile", err)
		return
	}
	utils.JSONResponse(w, http.StatusOK, profile)
}

type profileUpdateInput struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

// PUT /api/user/profile
// UpdateProfile godoc
// @Summary Update username and/or email
// @Tags Profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body profileUpdateInput true "Fields to change"
// @Success 200 {object} services.ProfileUpdateResult
// @Failure 400 {object} utils.ErrorPayload "No updates provided or username taken"
// @Router /api/user/profile [put]
func (h *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var input profileUpdateInput
	if err := utils.DecodeJSON(r, &input); err != nil {
		h.fail(w, r, "update profile", apperrors.ErrInvalidInput)
		return
	}

	res, err := h.svc.UpdateProfile(r.Context(), caller(r).UserID, input.Username, input.Email)
	if err != nil {
		h.fail(w, r, "update profile", err)
		return
	}
	utils.JSONResponse(w, http.StatusOK, res)
}
