package handlers

import (
	"database/sql"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/isfaaghyth/kotlinconf-app/internal/api/middleware"
	"github.com/isfaaghyth/kotlinconf-app/internal/models"
	"github.com/isfaaghyth/kotlinconf-app/pkg/types"
)

type UserHandler struct {
	queries *models.Queries
}

func NewUserHandler(db *sql.DB) *UserHandler {
	return &UserHandler{
		queries: models.New(db),
	}
}

// UserProfileResponse represents a user profile
type UserProfileResponse struct {
	ID          string  `json:"id"`
	DisplayName *string `json:"displayName"`
	CreatedAt   int64   `json:"createdAt"`
}

// UpdateProfileRequest represents profile update
type UpdateProfileRequest struct {
	DisplayName *string `json:"displayName"`
}

// GetProfile handles GET /v1/user
func (h *UserHandler) GetProfile(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	account, err := h.queries.GetAccountByID(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, types.ErrorResponse{Error: "failed to get profile"})
		return
	}

	var displayName *string
	if account.DisplayName.Valid {
		displayName = &account.DisplayName.String
	}

	c.JSON(http.StatusOK, UserProfileResponse{
		ID:          account.ID,
		DisplayName: displayName,
		CreatedAt:   account.CreatedAt.UnixMilli(),
	})
}

// UpdateProfile handles POST /v1/user/profile
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, types.ErrorResponse{Error: err.Error()})
		return
	}

	displayName := sql.NullString{}
	if req.DisplayName != nil {
		displayName = sql.NullString{String: *req.DisplayName, Valid: true}
	}

	if err := h.queries.UpdateAccountProfile(c.Request.Context(), models.UpdateAccountProfileParams{
		DisplayName: displayName,
		ID:          userID,
	}); err != nil {
		c.JSON(http.StatusInternalServerError, types.ErrorResponse{Error: "failed to update profile"})
		return
	}

	c.JSON(http.StatusOK, types.SuccessResponse{Success: true})
}
