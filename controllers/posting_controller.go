package controllers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/modae/teamup/models"
	"github.com/modae/teamup/utils"
)

// PostingController serves the posting CRUD and search endpoints.
type PostingController struct {
	db *gorm.DB
}

// NewPostingController creates a PostingController.
func NewPostingController(db *gorm.DB) *PostingController {
	return &PostingController{db: db}
}

const (
	postingDetailCachePrefix = "cache:posting:detail:"
	postingListCachePrefix   = "cache:postings:list:"
)

func invalidatePostingCaches(postingID uint) {
	utils.InvalidateByPrefix(fmt.Sprintf("%s%d", postingDetailCachePrefix, postingID))
	utils.InvalidateByPrefix(postingListCachePrefix)
}

type postingRequest struct {
	Title       string               `json:"title" binding:"required,max=100"`
	Description string               `json:"description" binding:"required"`
	Type        models.PostingType   `json:"type" binding:"required"`
	MaxCapacity int                  `json:"max_capacity" binding:"required,min=1"`
	Latitude    float64              `json:"latitude" binding:"required"`
	Longitude   float64              `json:"longitude" binding:"required"`
	Status      models.PostingStatus `json:"status"`
}

// postingView is the posting payload with derived counts attached.
type postingView struct {
	models.Posting
	ApprovedCount int    `json:"approved_count"`
	CreatedAgo    string `json:"created_ago"`
}

func (p *PostingController) approvedCount(db *gorm.DB, postingID uint) (int, error) {
	var n int64
	err := db.Model(&models.Participation{}).
		Where("posting_id = ? AND status = ?", postingID, models.ParticipationApproved).
		Count(&n).Error
	return int(n), err
}

func (p *PostingController) toView(posting models.Posting) (postingView, error) {
	approved, err := p.approvedCount(p.db, posting.ID)
	if err != nil {
		return postingView{}, err
	}
	return postingView{
		Posting:       posting,
		ApprovedCount: approved,
		CreatedAgo:    utils.RelativeTime(posting.CreatedAt, time.Now()),
	}, nil
}

// List returns a page of postings, newest first. The first few pages
// are served from Redis when available.
func (p *PostingController) List(ctx *gin.Context) {
	page, size := parsePagination(ctx.Query("page"), ctx.Query("size"))

	cacheKey := fmt.Sprintf("%spage=%d:size=%d", postingListCachePrefix, page, size)
	if page <= 3 {
		if b, ok := utils.CacheGetBytes(cacheKey); ok {
			var cached gin.H
			if json.Unmarshal(b, &cached) == nil {
				utils.Success(ctx, cached)
				return
			}
		}
	}

	var total int64
	if err := p.db.Model(&models.Posting{}).Count(&total).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50020, "failed to count postings")
		return
	}

	var postings []models.Posting
	err := p.db.Preload("Author").
		Order("created_at DESC").
		Offset((page - 1) * size).
		Limit(size).
		Find(&postings).Error
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50021, "failed to load postings")
		return
	}

	views := make([]postingView, 0, len(postings))
	for _, posting := range postings {
		v, err := p.toView(posting)
		if err != nil {
			utils.Error(ctx, http.StatusInternalServerError, 50022, "failed to load postings")
			return
		}
		views = append(views, v)
	}

	payload := gin.H{
		"postings":   views,
		"pagination": paginationPayload(page, size, total),
	}
	if page <= 3 {
		utils.CacheSetJSON(cacheKey, payload, 0)
	}
	utils.Success(ctx, payload)
}

// Get returns one posting with its author and approved count.
func (p *PostingController) Get(ctx *gin.Context) {
	id, ok := parseID(ctx.Param("postingId"))
	if !ok {
		utils.Error(ctx, http.StatusBadRequest, 40020, "invalid posting id")
		return
	}

	cacheKey := fmt.Sprintf("%s%d", postingDetailCachePrefix, id)
	if b, ok := utils.CacheGetBytes(cacheKey); ok {
		var cached gin.H
		if json.Unmarshal(b, &cached) == nil {
			utils.Success(ctx, cached)
			return
		}
	}

	var posting models.Posting
	err := p.db.Preload("Author").First(&posting, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.Error(ctx, http.StatusNotFound, 40420, "posting not found")
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, 50023, "failed to load posting")
		return
	}

	view, err := p.toView(posting)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50024, "failed to load posting")
		return
	}

	payload := gin.H{"posting": view}
	utils.CacheSetJSON(cacheKey, payload, 0)
	utils.Success(ctx, payload)
}

// Create opens a new posting in RECRUITING state owned by the caller.
func (p *PostingController) Create(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40120, "unauthorized")
		return
	}

	var req postingRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40021, "invalid posting payload")
		return
	}
	if !req.Type.Valid() {
		utils.Error(ctx, http.StatusBadRequest, 40022, "invalid posting type")
		return
	}

	posting := models.Posting{
		Title:       strings.TrimSpace(req.Title),
		Description: utils.Sanitize(req.Description),
		Type:        req.Type,
		Status:      models.PostingRecruiting,
		MaxCapacity: req.MaxCapacity,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
		AuthorID:    userID,
	}
	if err := p.db.Create(&posting).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50025, "failed to create posting")
		return
	}

	utils.InvalidateByPrefix(postingListCachePrefix)
	utils.Sugar.Infow("posting created", "posting_id", posting.ID, "author_id", userID)
	utils.Success(ctx, gin.H{"posting": posting})
}

// Update modifies a posting. Only the author or an admin may update,
// and status changes must follow the recruitment lifecycle.
func (p *PostingController) Update(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40121, "unauthorized")
		return
	}
	id, ok := parseID(ctx.Param("postingId"))
	if !ok {
		utils.Error(ctx, http.StatusBadRequest, 40023, "invalid posting id")
		return
	}

	var req postingRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40024, "invalid posting payload")
		return
	}
	if !req.Type.Valid() {
		utils.Error(ctx, http.StatusBadRequest, 40025, "invalid posting type")
		return
	}

	var posting models.Posting
	if err := p.db.First(&posting, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.Error(ctx, http.StatusNotFound, 40421, "posting not found")
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, 50026, "failed to load posting")
		return
	}

	if posting.AuthorID != userID && !isAdmin(ctx) {
		utils.Error(ctx, http.StatusForbidden, 40320, "not the posting author")
		return
	}

	if req.Status != "" {
		if !req.Status.Valid() {
			utils.Error(ctx, http.StatusBadRequest, 40026, "invalid posting status")
			return
		}
		if !posting.Status.CanTransitionTo(req.Status) {
			utils.Error(ctx, http.StatusConflict, 40920, "invalid status transition")
			return
		}
		posting.Status = req.Status
	}

	posting.Title = strings.TrimSpace(req.Title)
	posting.Description = utils.Sanitize(req.Description)
	posting.Type = req.Type
	posting.MaxCapacity = req.MaxCapacity
	posting.Latitude = req.Latitude
	posting.Longitude = req.Longitude

	if err := p.db.Save(&posting).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50027, "failed to update posting")
		return
	}

	invalidatePostingCaches(posting.ID)
	utils.Success(ctx, gin.H{"posting": posting})
}

// Delete soft-deletes a posting. Author or admin only.
func (p *PostingController) Delete(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40122, "unauthorized")
		return
	}
	id, ok := parseID(ctx.Param("postingId"))
	if !ok {
		utils.Error(ctx, http.StatusBadRequest, 40027, "invalid posting id")
		return
	}

	var posting models.Posting
	if err := p.db.First(&posting, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.Error(ctx, http.StatusNotFound, 40422, "posting not found")
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, 50028, "failed to load posting")
		return
	}

	if posting.AuthorID != userID && !isAdmin(ctx) {
		utils.Error(ctx, http.StatusForbidden, 40321, "not the posting author")
		return
	}

	if err := p.db.Delete(&posting).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50029, "failed to delete posting")
		return
	}

	invalidatePostingCaches(posting.ID)
	utils.Sugar.Infow("posting deleted", "posting_id", posting.ID, "actor_id", userID)
	utils.Success(ctx, gin.H{"message": "posting deleted"})
}

type searchRequest struct {
	Title          string               `json:"title"`
	Type           models.PostingType   `json:"type"`
	Status         models.PostingStatus `json:"status"`
	AuthorNickname string               `json:"author_nickname"`
	SortByDistance bool                 `json:"sort_by_distance"`
	UserLatitude   float64              `json:"user_latitude"`
	UserLongitude  float64              `json:"user_longitude"`
}

// searchResult carries the caller-relative distance when the search was
// distance-sorted.
type searchResult struct {
	models.Posting
	DistanceKm *float64 `json:"distance_km,omitempty"`
}

// Search filters postings by title, type, status and author nickname,
// optionally ordered by distance from the caller's location.
func (p *PostingController) Search(ctx *gin.Context) {
	page, size := parsePagination(ctx.Query("page"), ctx.Query("size"))

	var req searchRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40028, "invalid search payload")
		return
	}
	if req.Type != "" && !req.Type.Valid() {
		utils.Error(ctx, http.StatusBadRequest, 40029, "invalid posting type")
		return
	}
	if req.Status != "" && !req.Status.Valid() {
		utils.Error(ctx, http.StatusBadRequest, 40030, "invalid posting status")
		return
	}

	query := p.db.Model(&models.Posting{}).Preload("Author")
	if title := strings.TrimSpace(req.Title); title != "" {
		query = query.Where("postings.title LIKE ?", "%"+title+"%")
	}
	if req.Type != "" {
		query = query.Where("postings.type = ?", req.Type)
	}
	if req.Status != "" {
		query = query.Where("postings.status = ?", req.Status)
	}
	if nickname := strings.TrimSpace(req.AuthorNickname); nickname != "" {
		query = query.Select("postings.*").
			Joins("JOIN users ON users.id = postings.author_id").
			Where("users.nickname LIKE ? AND users.deleted_at IS NULL", "%"+nickname+"%")
	}

	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50030, "failed to count search results")
		return
	}

	if req.SortByDistance {
		// Haversine in SQL so the database orders by proximity.
		query = query.Order(fmt.Sprintf(
			"6371 * ACOS(LEAST(1.0, COS(RADIANS(%[1]f)) * COS(RADIANS(postings.latitude)) * "+
				"COS(RADIANS(postings.longitude) - RADIANS(%[2]f)) + SIN(RADIANS(%[1]f)) * SIN(RADIANS(postings.latitude)))) ASC",
			req.UserLatitude, req.UserLongitude,
		))
	} else {
		query = query.Order("postings.created_at DESC")
	}

	var postings []models.Posting
	err := query.Offset((page - 1) * size).Limit(size).Find(&postings).Error
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50031, "failed to search postings")
		return
	}

	results := make([]searchResult, 0, len(postings))
	for _, posting := range postings {
		r := searchResult{Posting: posting}
		if req.SortByDistance {
			d := utils.Distance(req.UserLatitude, req.UserLongitude, posting.Latitude, posting.Longitude)
			r.DistanceKm = &d
		}
		results = append(results, r)
	}

	utils.Success(ctx, gin.H{
		"postings":   results,
		"pagination": paginationPayload(page, size, total),
	})
}
