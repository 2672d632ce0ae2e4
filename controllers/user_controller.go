package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"restock-backend/models"
	"restock-backend/services"
)

// UserController handles user preference endpoints.
type UserController struct {
	userService *services.UserService
}

// NewUserController creates a UserController.
func NewUserController(svc *services.UserService) *UserController {
	return &UserController{userService: svc}
}

// GetPreferences handles GET /users/:user_id/preferences
func (uc *UserController) GetPreferences(ctx *gin.Context) {
	userID := ctx.Param("user_id")
	if userID == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "User id is required"})
		return
	}

	prefs, svcErr := uc.userService.GetPreferences(ctx.Request.Context(), userID)
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}

	ctx.JSON(http.StatusOK, prefs)
}

// UpdatePreferences handles PUT /users/:user_id/preferences
func (uc *UserController) UpdatePreferences(ctx *gin.Context) {
	userID := ctx.Param("user_id")
	if userID == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "User id is required"})
		return
	}

	var req models.UpdatePreferencesRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	prefs, svcErr := uc.userService.UpdatePreferences(ctx.Request.Context(), userID, req)
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}

	ctx.JSON(http.StatusOK, prefs)
}
