package handlers

import (
	"net/http"

	"github.com/geezit/geezit-server/internal/utils"
)

// GET /api/users/{username}
// UserExists godoc
// @Summary Check whether a profile link is valid
// @Tags Users
// @Produce json
// @Param username path string true "Username"
// @Success 200 {object} map[string]bool
// @Router /api/users/{username} [get]
func (h *Handler) UserExists(w http.ResponseWriter, r *http.Request) {
	exists, err := h.svc.UserExists(r.Context(), r.PathValue("username"))
	if err != nil {
		h.fail(w, r, "check user", err)
		return
	}
	utils.JSONResponse(w, http.StatusOK, map[string]bool{"exists": exists})
}

// GET /api/health
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	utils.JSONResponse(w, http.StatusOK, map[string]string{"status": "OK"})
}
