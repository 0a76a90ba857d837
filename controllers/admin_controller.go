package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/modae/teamup/models"
	"github.com/modae/teamup/utils"
)

// AdminController serves management endpoints. Routes using it sit
// behind the admin middleware.
type AdminController struct {
	db *gorm.DB
}

// NewAdminController creates an AdminController.
func NewAdminController(db *gorm.DB) *AdminController {
	return &AdminController{db: db}
}

// ListUsers returns a page of all accounts, newest first.
func (a *AdminController) ListUsers(ctx *gin.Context) {
	page, size := parsePagination(ctx.Query("page"), ctx.Query("size"))

	var total int64
	if err := a.db.Model(&models.User{}).Count(&total).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50090, "failed to count users")
		return
	}

	var users []models.User
	err := a.db.Order("created_at DESC").
		Offset((page - 1) * size).
		Limit(size).
		Find(&users).Error
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50091, "failed to load users")
		return
	}

	utils.Success(ctx, gin.H{
		"users":      users,
		"pagination": paginationPayload(page, size, total),
	})
}

// UpdateRole changes an account's role.
func (a *AdminController) UpdateRole(ctx *gin.Context) {
	id, ok := parseID(ctx.Param("userId"))
	if !ok {
		utils.Error(ctx, http.StatusBadRequest, 40090, "invalid user id")
		return
	}

	var req struct {
		Role models.Role `json:"role" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40091, "invalid role payload")
		return
	}
	if !req.Role.Valid() {
		utils.Error(ctx, http.StatusBadRequest, 40092, "unknown role")
		return
	}

	var user models.User
	if err := a.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.Error(ctx, http.StatusNotFound, 40490, "user not found")
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, 50092, "failed to load user")
		return
	}

	if err := a.db.Model(&user).Update("role", req.Role).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50093, "failed to update role")
		return
	}
	user.Role = req.Role

	utils.Sugar.Infow("user role updated", "user_id", user.ID, "role", user.Role)
	utils.Success(ctx, gin.H{"user": user})
}
