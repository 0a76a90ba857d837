package controllers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/modae/teamup/models"
	"github.com/modae/teamup/utils"
)

// CommentController serves the threaded comments under a posting.
type CommentController struct {
	db *gorm.DB
}

// NewCommentController creates a CommentController.
func NewCommentController(db *gorm.DB) *CommentController {
	return &CommentController{db: db}
}

// maxCommentDepth guards against runaway reply chains.
const maxCommentDepth = 10

// commentNodeView is a comment subtree as rendered to clients. Deleted
// comments keep their place with a masked body.
type commentNodeView struct {
	ID              uint               `json:"id"`
	PostingID       uint               `json:"posting_id"`
	AuthorID        uint               `json:"author_id"`
	AuthorNickname  string             `json:"author_nickname"`
	ParentCommentID *uint              `json:"parent_comment_id"`
	Content         string             `json:"content"`
	Depth           int                `json:"depth"`
	Deleted         bool               `json:"deleted"`
	CreatedAt       time.Time          `json:"created_at"`
	CreatedAgo      string             `json:"created_ago"`
	Replies         []*commentNodeView `json:"replies"`
}

func toCommentView(node *models.CommentNode, now time.Time) *commentNodeView {
	view := &commentNodeView{
		ID:              node.ID,
		PostingID:       node.PostingID,
		AuthorID:        node.AuthorID,
		AuthorNickname:  node.Author.Nickname,
		ParentCommentID: node.ParentCommentID,
		Content:         node.DisplayContent(),
		Depth:           node.Depth,
		Deleted:         node.Deleted(),
		CreatedAt:       node.CreatedAt,
		CreatedAgo:      utils.RelativeTime(node.CreatedAt, now),
		Replies:         make([]*commentNodeView, 0, len(node.Replies)),
	}
	for _, reply := range node.Replies {
		view.Replies = append(view.Replies, toCommentView(reply, now))
	}
	return view
}

// List returns the posting's comments as a forest of threads, root
// comments paged in creation order with their full reply subtrees.
func (c *CommentController) List(ctx *gin.Context) {
	postingID, ok := parseID(ctx.Param("postingId"))
	if !ok {
		utils.Error(ctx, http.StatusBadRequest, 40060, "invalid posting id")
		return
	}
	page, size := parsePagination(ctx.Query("page"), ctx.Query("size"))

	var exists int64
	if err := c.db.Model(&models.Posting{}).Where("id = ?", postingID).Count(&exists).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50060, "failed to load posting")
		return
	}
	if exists == 0 {
		utils.Error(ctx, http.StatusNotFound, 40460, "posting not found")
		return
	}

	// All comments for the posting, then page over the root threads.
	// Deleted rows are included so subtrees under them survive.
	var comments []models.Comment
	err := c.db.Preload("Author").
		Where("posting_id = ?", postingID).
		Order("created_at ASC, id ASC").
		Find(&comments).Error
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50061, "failed to load comments")
		return
	}

	forest := models.BuildCommentTree(comments)
	total := int64(len(forest))

	start := (page - 1) * size
	if start > len(forest) {
		start = len(forest)
	}
	end := start + size
	if end > len(forest) {
		end = len(forest)
	}

	now := time.Now()
	views := make([]*commentNodeView, 0, end-start)
	for _, node := range forest[start:end] {
		views = append(views, toCommentView(node, now))
	}

	utils.Success(ctx, gin.H{
		"comments":   views,
		"pagination": paginationPayload(page, size, total),
	})
}

// Create adds a comment, or a reply when parent_comment_id is given.
// Replies must target a live comment on the same posting.
func (c *CommentController) Create(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40160, "unauthorized")
		return
	}
	postingID, ok := parseID(ctx.Param("postingId"))
	if !ok {
		utils.Error(ctx, http.StatusBadRequest, 40061, "invalid posting id")
		return
	}

	var req struct {
		Content         string `json:"content" binding:"required"`
		ParentCommentID *uint  `json:"parent_comment_id"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40062, "invalid comment payload")
		return
	}
	content := utils.Sanitize(strings.TrimSpace(req.Content))
	if content == "" {
		utils.Error(ctx, http.StatusBadRequest, 40063, "comment content is empty")
		return
	}

	var posting models.Posting
	if err := c.db.First(&posting, postingID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.Error(ctx, http.StatusNotFound, 40461, "posting not found")
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, 50062, "failed to load posting")
		return
	}

	depth := 0
	if req.ParentCommentID != nil {
		var parent models.Comment
		if err := c.db.First(&parent, *req.ParentCommentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				utils.Error(ctx, http.StatusNotFound, 40462, "parent comment not found")
				return
			}
			utils.Error(ctx, http.StatusInternalServerError, 50063, "failed to load parent comment")
			return
		}
		if parent.PostingID != postingID {
			utils.Error(ctx, http.StatusBadRequest, 40064, "parent comment belongs to another posting")
			return
		}
		if parent.Deleted() {
			utils.Error(ctx, http.StatusConflict, 40960, "cannot reply to a deleted comment")
			return
		}
		if parent.Depth+1 > maxCommentDepth {
			utils.Error(ctx, http.StatusBadRequest, 40065, "reply nesting too deep")
			return
		}
		depth = parent.Depth + 1
	}

	comment := models.Comment{
		PostingID:       postingID,
		AuthorID:        userID,
		ParentCommentID: req.ParentCommentID,
		Content:         content,
		Depth:           depth,
	}
	if err := c.db.Create(&comment).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50064, "failed to create comment")
		return
	}

	utils.Sugar.Infow("comment created",
		"comment_id", comment.ID, "posting_id", postingID, "author_id", userID, "depth", depth)
	utils.Success(ctx, gin.H{"comment": comment})
}

// Update edits a comment's body. Author or admin only; a deleted
// comment cannot be edited.
func (c *CommentController) Update(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40161, "unauthorized")
		return
	}
	postingID, ok := parseID(ctx.Param("postingId"))
	if !ok {
		utils.Error(ctx, http.StatusBadRequest, 40066, "invalid posting id")
		return
	}
	commentID, ok := parseID(ctx.Param("commentId"))
	if !ok {
		utils.Error(ctx, http.StatusBadRequest, 40067, "invalid comment id")
		return
	}

	var req struct {
		Content string `json:"content" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40068, "invalid comment payload")
		return
	}
	content := utils.Sanitize(strings.TrimSpace(req.Content))
	if content == "" {
		utils.Error(ctx, http.StatusBadRequest, 40069, "comment content is empty")
		return
	}

	var comment models.Comment
	if err := c.db.First(&comment, commentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.Error(ctx, http.StatusNotFound, 40463, "comment not found")
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, 50065, "failed to load comment")
		return
	}
	if comment.PostingID != postingID {
		utils.Error(ctx, http.StatusBadRequest, 40070, "comment belongs to another posting")
		return
	}
	if comment.Deleted() {
		utils.Error(ctx, http.StatusConflict, 40961, "comment is deleted")
		return
	}
	if comment.AuthorID != userID && !isAdmin(ctx) {
		utils.Error(ctx, http.StatusForbidden, 40360, "not the comment author")
		return
	}

	if err := c.db.Model(&comment).Update("content", content).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50066, "failed to update comment")
		return
	}
	comment.Content = content
	utils.Success(ctx, gin.H{"comment": comment})
}

// Delete soft-deletes a comment, keeping the row so replies under it
// remain threaded. Author or admin only.
func (c *CommentController) Delete(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40162, "unauthorized")
		return
	}
	postingID, ok := parseID(ctx.Param("postingId"))
	if !ok {
		utils.Error(ctx, http.StatusBadRequest, 40071, "invalid posting id")
		return
	}
	commentID, ok := parseID(ctx.Param("commentId"))
	if !ok {
		utils.Error(ctx, http.StatusBadRequest, 40072, "invalid comment id")
		return
	}

	var comment models.Comment
	if err := c.db.First(&comment, commentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.Error(ctx, http.StatusNotFound, 40464, "comment not found")
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, 50067, "failed to load comment")
		return
	}
	if comment.PostingID != postingID {
		utils.Error(ctx, http.StatusBadRequest, 40073, "comment belongs to another posting")
		return
	}
	if comment.Deleted() {
		utils.Error(ctx, http.StatusConflict, 40962, "comment is already deleted")
		return
	}
	if comment.AuthorID != userID && !isAdmin(ctx) {
		utils.Error(ctx, http.StatusForbidden, 40361, "not the comment author")
		return
	}

	now := time.Now()
	if err := c.db.Model(&comment).Update("deleted_at", &now).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50068, "failed to delete comment")
		return
	}

	utils.Sugar.Infow("comment deleted", "comment_id", comment.ID, "actor_id", userID)
	utils.Success(ctx, gin.H{"message": "comment deleted"})
}
