package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"navix-backend/internal/models"
	"navix-backend/internal/supabase"
)

type ProfilesHandler struct {
	dbClient *supabase.DatabaseClient
}

func NewProfilesHandler(dbClient *supabase.DatabaseClient) *ProfilesHandler {
	return &ProfilesHandler{dbClient: dbClient}
}

// Get godoc
// @Summary     Current user's profile
// @Tags        profile
// @Produce     json
// @Security    Bearer
// @Success     200 {object} models.ProfileResponse
// @Failure     404 {object} models.ErrorResponse
// @Router      /profile [get]
func (h *ProfilesHandler) Get(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	profile, err := h.dbClient.GetProfile(userID)
	if err != nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "profile not found", Message: err.Error()})
		return
	}

	c.JSON(http.StatusOK, models.ProfileResponse{
		ID:          profile.ID.String(),
		Email:       profile.Email,
		CompanyName: profile.CompanyName,
		Balance:     profile.Balance,
	})
}
