package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/modae/teamup/models"
	"github.com/modae/teamup/utils"
)

// ParticipationController manages the join/approve/reject workflow.
type ParticipationController struct {
	db *gorm.DB
}

// NewParticipationController creates a ParticipationController.
func NewParticipationController(db *gorm.DB) *ParticipationController {
	return &ParticipationController{db: db}
}

// workflowError maps a workflow rule violation to an HTTP response.
// Duplicate joins and full capacity get distinct codes so clients can
// tell them apart.
func workflowError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, models.ErrSelfJoin):
		utils.Error(ctx, http.StatusForbidden, 40330, "cannot join your own posting")
	case errors.Is(err, models.ErrAlreadyJoined):
		utils.Error(ctx, http.StatusConflict, 40901, "already joined this posting")
	case errors.Is(err, models.ErrNotRecruiting):
		utils.Error(ctx, http.StatusConflict, 40903, "posting is not recruiting")
	case errors.Is(err, models.ErrNotPostingAuthor):
		utils.Error(ctx, http.StatusForbidden, 40331, "not the posting author")
	case errors.Is(err, models.ErrNotParticipant):
		utils.Error(ctx, http.StatusForbidden, 40332, "not your participation")
	case errors.Is(err, models.ErrAlreadyApproved):
		utils.Error(ctx, http.StatusConflict, 40904, "participation already approved")
	case errors.Is(err, models.ErrAlreadyRejected):
		utils.Error(ctx, http.StatusConflict, 40905, "participation already rejected")
	case errors.Is(err, models.ErrCapacityFull):
		utils.Error(ctx, http.StatusConflict, 40902, "posting capacity is full")
	case errors.Is(err, models.ErrPostingMismatch):
		utils.Error(ctx, http.StatusBadRequest, 40040, "participation does not belong to this posting")
	default:
		utils.Error(ctx, http.StatusInternalServerError, 50040, "participation request failed")
	}
}

// activeParticipation loads the actor's non-rejected participation for
// a posting, if any.
func activeParticipation(tx *gorm.DB, postingID, userID uint) (*models.Participation, error) {
	var participation models.Participation
	err := tx.Where("posting_id = ? AND participant_id = ? AND status <> ?",
		postingID, userID, models.ParticipationRejected).
		First(&participation).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &participation, nil
}

// Check reports whether the caller has an active participation on the
// posting.
func (p *ParticipationController) Check(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40130, "unauthorized")
		return
	}
	postingID, ok := parseID(ctx.Param("postingId"))
	if !ok {
		utils.Error(ctx, http.StatusBadRequest, 40041, "invalid posting id")
		return
	}

	participation, err := activeParticipation(p.db, postingID, userID)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50041, "failed to check participation")
		return
	}

	payload := gin.H{"joined": participation != nil}
	if participation != nil {
		payload["participation"] = participation
	}
	utils.Success(ctx, payload)
}

// Me returns the caller's own participation on the posting, including a
// rejected one.
func (p *ParticipationController) Me(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40131, "unauthorized")
		return
	}
	postingID, ok := parseID(ctx.Param("postingId"))
	if !ok {
		utils.Error(ctx, http.StatusBadRequest, 40042, "invalid posting id")
		return
	}

	var participation models.Participation
	err := p.db.Where("posting_id = ? AND participant_id = ?", postingID, userID).
		Order("created_at DESC").
		First(&participation).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.Error(ctx, http.StatusNotFound, 40440, "participation not found")
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, 50042, "failed to load participation")
		return
	}
	utils.Success(ctx, gin.H{"participation": participation})
}

// Join creates a pending participation for the caller on a recruiting
// posting.
func (p *ParticipationController) Join(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40132, "unauthorized")
		return
	}
	postingID, ok := parseID(ctx.Param("postingId"))
	if !ok {
		utils.Error(ctx, http.StatusBadRequest, 40043, "invalid posting id")
		return
	}

	var created models.Participation
	err := p.db.Transaction(func(tx *gorm.DB) error {
		var posting models.Posting
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&posting, postingID).Error
		if err != nil {
			return err
		}

		existing, err := activeParticipation(tx, postingID, userID)
		if err != nil {
			return err
		}

		var approvedCount int64
		err = tx.Model(&models.Participation{}).
			Where("posting_id = ? AND status = ?", postingID, models.ParticipationApproved).
			Count(&approvedCount).Error
		if err != nil {
			return err
		}
		if err := models.CheckJoin(&posting, userID, existing != nil, int(approvedCount)); err != nil {
			return err
		}

		created = models.Participation{
			PostingID:     postingID,
			ParticipantID: userID,
			Status:        models.ParticipationPending,
		}
		return tx.Create(&created).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.Error(ctx, http.StatusNotFound, 40441, "posting not found")
			return
		}
		workflowError(ctx, err)
		return
	}

	invalidatePostingCaches(postingID)
	utils.Sugar.Infow("participation requested", "posting_id", postingID, "participant_id", userID)
	utils.Success(ctx, gin.H{"participation": created})
}

// Leave withdraws the caller's pending or approved participation. If an
// approved participant leaves a RECRUITED posting, it reopens.
func (p *ParticipationController) Leave(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40133, "unauthorized")
		return
	}
	postingID, ok := parseID(ctx.Param("postingId"))
	if !ok {
		utils.Error(ctx, http.StatusBadRequest, 40044, "invalid posting id")
		return
	}

	err := p.db.Transaction(func(tx *gorm.DB) error {
		var posting models.Posting
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&posting, postingID).Error
		if err != nil {
			return err
		}

		existing, err := activeParticipation(tx, postingID, userID)
		if err != nil {
			return err
		}
		if existing == nil {
			return models.ErrNotParticipant
		}
		if err := models.CheckLeave(existing, userID); err != nil {
			return err
		}

		wasApproved := existing.Status == models.ParticipationApproved
		if err := tx.Delete(existing).Error; err != nil {
			return err
		}
		if wasApproved && posting.Status == models.PostingRecruited {
			return tx.Model(&posting).Update("status", models.PostingRecruiting).Error
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.Error(ctx, http.StatusNotFound, 40442, "posting not found")
			return
		}
		workflowError(ctx, err)
		return
	}

	invalidatePostingCaches(postingID)
	utils.Sugar.Infow("participation withdrawn", "posting_id", postingID, "participant_id", userID)
	utils.Success(ctx, gin.H{"message": "participation withdrawn"})
}

// List returns the participations on a posting. Only the posting author
// or an admin may see them.
func (p *ParticipationController) List(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40134, "unauthorized")
		return
	}
	postingID, ok := parseID(ctx.Param("postingId"))
	if !ok {
		utils.Error(ctx, http.StatusBadRequest, 40045, "invalid posting id")
		return
	}
	page, size := parsePagination(ctx.Query("page"), ctx.Query("size"))

	var posting models.Posting
	if err := p.db.First(&posting, postingID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.Error(ctx, http.StatusNotFound, 40443, "posting not found")
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, 50043, "failed to load posting")
		return
	}
	if posting.AuthorID != userID && !isAdmin(ctx) {
		utils.Error(ctx, http.StatusForbidden, 40333, "not the posting author")
		return
	}

	base := p.db.Model(&models.Participation{}).Where("posting_id = ?", postingID)
	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50044, "failed to count participations")
		return
	}

	var participations []models.Participation
	err := base.Preload("Participant").
		Order("created_at ASC").
		Offset((page - 1) * size).
		Limit(size).
		Find(&participations).Error
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50045, "failed to load participations")
		return
	}

	utils.Success(ctx, gin.H{
		"participations": participations,
		"pagination":     paginationPayload(page, size, total),
	})
}

// Approve moves a pending participation to APPROVED. When the approval
// fills the last seat, the posting flips to RECRUITED.
func (p *ParticipationController) Approve(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40135, "unauthorized")
		return
	}
	postingID, ok := parseID(ctx.Param("postingId"))
	if !ok {
		utils.Error(ctx, http.StatusBadRequest, 40046, "invalid posting id")
		return
	}
	participationID, ok := parseID(ctx.Param("participationId"))
	if !ok {
		utils.Error(ctx, http.StatusBadRequest, 40047, "invalid participation id")
		return
	}

	var approved models.Participation
	err := p.db.Transaction(func(tx *gorm.DB) error {
		var posting models.Posting
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&posting, postingID).Error
		if err != nil {
			return err
		}

		var participation models.Participation
		err = tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&participation, participationID).Error
		if err != nil {
			return err
		}

		var approvedCount int64
		err = tx.Model(&models.Participation{}).
			Where("posting_id = ? AND status = ?", postingID, models.ParticipationApproved).
			Count(&approvedCount).Error
		if err != nil {
			return err
		}

		decision, err := models.CheckApprove(&posting, &participation, userID, int(approvedCount))
		if err != nil {
			return err
		}

		if err := tx.Model(&participation).Update("status", models.ParticipationApproved).Error; err != nil {
			return err
		}
		if decision.FillsCapacity {
			if err := tx.Model(&posting).Update("status", models.PostingRecruited).Error; err != nil {
				return err
			}
		}
		participation.Status = models.ParticipationApproved
		approved = participation
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.Error(ctx, http.StatusNotFound, 40444, "posting or participation not found")
			return
		}
		workflowError(ctx, err)
		return
	}

	invalidatePostingCaches(postingID)
	utils.Sugar.Infow("participation approved",
		"posting_id", postingID, "participation_id", participationID, "author_id", userID)
	utils.Success(ctx, gin.H{"participation": approved})
}

// Reject rejects a pending participation, or cancels an approved one.
// Cancelling an approval on a RECRUITED posting reopens recruiting.
func (p *ParticipationController) Reject(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40136, "unauthorized")
		return
	}
	postingID, ok := parseID(ctx.Param("postingId"))
	if !ok {
		utils.Error(ctx, http.StatusBadRequest, 40048, "invalid posting id")
		return
	}
	participationID, ok := parseID(ctx.Param("participationId"))
	if !ok {
		utils.Error(ctx, http.StatusBadRequest, 40049, "invalid participation id")
		return
	}

	var rejected models.Participation
	err := p.db.Transaction(func(tx *gorm.DB) error {
		var posting models.Posting
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&posting, postingID).Error
		if err != nil {
			return err
		}

		var participation models.Participation
		err = tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&participation, participationID).Error
		if err != nil {
			return err
		}

		decision, err := models.CheckReject(&posting, &participation, userID)
		if err != nil {
			return err
		}

		if err := tx.Model(&participation).Update("status", models.ParticipationRejected).Error; err != nil {
			return err
		}
		if decision.ReopensPosting {
			if err := tx.Model(&posting).Update("status", models.PostingRecruiting).Error; err != nil {
				return err
			}
		}
		participation.Status = models.ParticipationRejected
		rejected = participation
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.Error(ctx, http.StatusNotFound, 40445, "posting or participation not found")
			return
		}
		workflowError(ctx, err)
		return
	}

	invalidatePostingCaches(postingID)
	utils.Sugar.Infow("participation rejected",
		"posting_id", postingID, "participation_id", participationID, "author_id", userID)
	utils.Success(ctx, gin.H{"participation": rejected})
}
