package handlers

import (
	"database/sql"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/isfaaghyth/kotlinconf-app/internal/crypto"
	"github.com/isfaaghyth/kotlinconf-app/internal/models"
	"github.com/isfaaghyth/kotlinconf-app/pkg/types"
)

type AuthHandler struct {
	db         *sql.DB
	queries    *models.Queries
	jwtManager *crypto.JWTManager
}

func NewAuthHandler(db *sql.DB, jwtManager *crypto.JWTManager) *AuthHandler {
	return &AuthHandler{
		db:         db,
		queries:    models.New(db),
		jwtManager: jwtManager,
	}
}

// PostRegister registers a device and returns a bearer token. Accounts are
// anonymous: a client presents a stable device id (generated server-side
// when absent) and re-registering the same device returns a token for the
// existing account.
// POST /v1/auth/register
func (h *AuthHandler) PostRegister(c *gin.Context) {
	var req types.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil && c.Request.ContentLength > 0 {
		c.JSON(http.StatusBadRequest, types.ErrorResponse{Error: err.Error()})
		return
	}

	deviceID := req.DeviceID
	if deviceID == "" {
		deviceID = uuid.New().String()
	}

	account, err := h.queries.GetAccountByDeviceID(c.Request.Context(), deviceID)
	if err == nil {
		token, err := h.jwtManager.CreateToken(account.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, types.ErrorResponse{Error: "failed to create token"})
			return
		}
		c.JSON(http.StatusOK, types.RegisterResponse{
			UserID:  account.ID,
			Token:   token,
			Created: false,
		})
		return
	}
	if err != sql.ErrNoRows {
		c.JSON(http.StatusInternalServerError, types.ErrorResponse{Error: "database error"})
		return
	}

	userID := uuid.New().String()
	if err := h.queries.CreateAccount(c.Request.Context(), models.CreateAccountParams{
		ID:       userID,
		DeviceID: deviceID,
	}); err != nil {
		c.JSON(http.StatusInternalServerError, types.ErrorResponse{Error: "failed to create account"})
		return
	}

	token, err := h.jwtManager.CreateToken(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, types.ErrorResponse{Error: "failed to create token"})
		return
	}

	c.JSON(http.StatusCreated, types.RegisterResponse{
		UserID:  userID,
		Token:   token,
		Created: true,
	})
}
