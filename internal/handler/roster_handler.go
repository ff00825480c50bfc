package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"rollcall/internal/domain"
	"rollcall/internal/service"
)

// RosterHandler handles roster management endpoints.
type RosterHandler struct {
	rosterService service.RosterService
}

// NewRosterHandler creates a new RosterHandler.
func NewRosterHandler(rosterService service.RosterService) *RosterHandler {
	return &RosterHandler{rosterService: rosterService}
}

// PersonRequest names a single roster member as "Surname, FirstName".
type PersonRequest struct {
	Name string `json:"name" binding:"required"`
}

// ReplaceRosterRequest is the full replacement roster.
type ReplaceRosterRequest struct {
	Names []string `json:"names"`
}

// List handles GET /api/v1/roster
func (h *RosterHandler) List(c *gin.Context) {
	members, err := h.rosterService.List(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, members)
}

// Add handles POST /api/v1/roster
func (h *RosterHandler) Add(c *gin.Context) {
	var req PersonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "name is required")
		return
	}

	p, err := h.rosterService.Add(c.Request.Context(), req.Name)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondCreated(c, p)
}

// Remove handles DELETE /api/v1/roster?name=Surname,%20FirstName
func (h *RosterHandler) Remove(c *gin.Context) {
	name := c.Query("name")
	if name == "" {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "name query parameter is required")
		return
	}

	if err := h.rosterService.Remove(c.Request.Context(), name); err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, gin.H{"removed": name})
}

// Replace handles PUT /api/v1/roster
func (h *RosterHandler) Replace(c *gin.Context) {
	var req ReplaceRosterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "names must be a list of strings")
		return
	}

	members, err := h.rosterService.Replace(c.Request.Context(), req.Names)
	if err != nil {
		HandleError(c, err)
		return
	}
	if members == nil {
		members = []domain.PersonKey{}
	}
	RespondOK(c, members)
}
