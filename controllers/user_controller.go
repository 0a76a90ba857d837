package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/modae/teamup/models"
	"github.com/modae/teamup/utils"
)

// UserController serves public profiles and per-user posting listings.
type UserController struct {
	db *gorm.DB
}

// NewUserController creates a UserController.
func NewUserController(db *gorm.DB) *UserController {
	return &UserController{db: db}
}

// Get returns a user's public profile.
func (u *UserController) Get(ctx *gin.Context) {
	id, ok := parseID(ctx.Param("userId"))
	if !ok {
		utils.Error(ctx, http.StatusBadRequest, 40080, "invalid user id")
		return
	}

	var user models.User
	if err := u.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.Error(ctx, http.StatusNotFound, 40480, "user not found")
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, 50080, "failed to load user")
		return
	}
	utils.Success(ctx, gin.H{"user": user})
}

// Authored returns the postings a user has written, newest first.
func (u *UserController) Authored(ctx *gin.Context) {
	id, ok := parseID(ctx.Param("userId"))
	if !ok {
		utils.Error(ctx, http.StatusBadRequest, 40081, "invalid user id")
		return
	}
	page, size := parsePagination(ctx.Query("page"), ctx.Query("size"))

	base := u.db.Model(&models.Posting{}).Where("author_id = ?", id)
	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50081, "failed to count postings")
		return
	}

	var postings []models.Posting
	err := base.Order("created_at DESC").
		Offset((page - 1) * size).
		Limit(size).
		Find(&postings).Error
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50082, "failed to load postings")
		return
	}

	utils.Success(ctx, gin.H{
		"postings":   postings,
		"pagination": paginationPayload(page, size, total),
	})
}

// Joined returns the postings a user participates in with APPROVED
// status, newest first.
func (u *UserController) Joined(ctx *gin.Context) {
	id, ok := parseID(ctx.Param("userId"))
	if !ok {
		utils.Error(ctx, http.StatusBadRequest, 40082, "invalid user id")
		return
	}
	page, size := parsePagination(ctx.Query("page"), ctx.Query("size"))

	base := u.db.Model(&models.Posting{}).
		Select("postings.*").
		Joins("JOIN participations ON participations.posting_id = postings.id").
		Where("participations.participant_id = ? AND participations.status = ? AND participations.deleted_at IS NULL",
			id, models.ParticipationApproved)

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50083, "failed to count postings")
		return
	}

	var postings []models.Posting
	err := base.Preload("Author").
		Order("postings.created_at DESC").
		Offset((page - 1) * size).
		Limit(size).
		Find(&postings).Error
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50084, "failed to load postings")
		return
	}

	utils.Success(ctx, gin.H{
		"postings":   postings,
		"pagination": paginationPayload(page, size, total),
	})
}
