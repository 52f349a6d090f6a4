package handler

import (
	"log/slog"
	"net/http"

	"github.com/LeonardoCto/myeconomyback/internal/repository"
	"github.com/LeonardoCto/myeconomyback/internal/transport/http/middleware"
	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	users  repository.UserRepository
	logger *slog.Logger
}

func NewUserHandler(users repository.UserRepository, logger *slog.Logger) *UserHandler {
	return &UserHandler{users: users, logger: logger.With("component", "user_handler")}
}

// GET /user — returns the authenticated user's own record.
func (h *UserHandler) Get(c *gin.Context) {
	principal := middleware.Principal(c)

	user, err := h.users.FindByID(c.Request.Context(), principal.UserID)
	if err != nil {
		h.logger.Error("get user", "user_id", principal.UserID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": toUserResponse(user)})
}
