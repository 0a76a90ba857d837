package models

import "errors"

// Participation workflow rule violations. Controllers map these onto
// HTTP statuses; none of them may leave partially mutated state behind.
var (
	ErrSelfJoin         = errors.New("posting author cannot join their own posting")
	ErrAlreadyJoined    = errors.New("an active participation already exists for this posting")
	ErrNotRecruiting    = errors.New("posting is no longer recruiting")
	ErrNotPostingAuthor = errors.New("only the posting author may manage participations")
	ErrNotParticipant   = errors.New("participation belongs to another user")
	ErrAlreadyApproved  = errors.New("participation is already approved")
	ErrAlreadyRejected  = errors.New("participation is already rejected")
	ErrCapacityFull     = errors.New("approved participants already fill the posting capacity")
	ErrPostingMismatch  = errors.New("participation does not belong to this posting")
)

// CheckJoin validates a join request against the posting's state.
// alreadyJoined is whether an active participation exists for the
// actor; approvedCount is the current number of approved participants,
// which can hit capacity while the posting is still RECRUITING.
func CheckJoin(posting *Posting, actorID uint, alreadyJoined bool, approvedCount int) error {
	if posting.AuthorID == actorID {
		return ErrSelfJoin
	}
	if alreadyJoined {
		return ErrAlreadyJoined
	}
	if posting.Status != PostingRecruiting {
		return ErrNotRecruiting
	}
	if approvedCount >= posting.MaxCapacity {
		return ErrCapacityFull
	}
	return nil
}

// CheckLeave validates a participant withdrawing their own record.
// Withdrawal is allowed while PENDING or APPROVED; a rejected record
// stays on the books.
func CheckLeave(participation *Participation, actorID uint) error {
	if participation.ParticipantID != actorID {
		return ErrNotParticipant
	}
	if participation.Status == ParticipationRejected {
		return ErrAlreadyRejected
	}
	return nil
}

// ApprovalDecision describes the state changes an approval implies.
type ApprovalDecision struct {
	// FillsCapacity is true when this approval takes the posting to its
	// maximum, moving it to RECRUITED.
	FillsCapacity bool
}

// CheckApprove validates the posting author approving a pending
// participation, given the current count of approved participants.
func CheckApprove(posting *Posting, participation *Participation, actorID uint, approvedCount int) (ApprovalDecision, error) {
	if posting.AuthorID != actorID {
		return ApprovalDecision{}, ErrNotPostingAuthor
	}
	if participation.PostingID != posting.ID {
		return ApprovalDecision{}, ErrPostingMismatch
	}
	if posting.Status != PostingRecruiting {
		return ApprovalDecision{}, ErrNotRecruiting
	}
	if participation.Status == ParticipationApproved {
		return ApprovalDecision{}, ErrAlreadyApproved
	}
	if participation.Status == ParticipationRejected {
		return ApprovalDecision{}, ErrAlreadyRejected
	}
	if approvedCount >= posting.MaxCapacity {
		return ApprovalDecision{}, ErrCapacityFull
	}
	return ApprovalDecision{FillsCapacity: approvedCount+1 == posting.MaxCapacity}, nil
}

// RejectDecision describes the state changes a rejection implies.
type RejectDecision struct {
	// ReopensPosting is true when rejecting frees a seat on a RECRUITED
	// posting, returning it to RECRUITING.
	ReopensPosting bool
}

// CheckReject validates the posting author rejecting a participation.
// Rejecting an APPROVED record doubles as cancelling the approval.
func CheckReject(posting *Posting, participation *Participation, actorID uint) (RejectDecision, error) {
	if posting.AuthorID != actorID {
		return RejectDecision{}, ErrNotPostingAuthor
	}
	if participation.PostingID != posting.ID {
		return RejectDecision{}, ErrPostingMismatch
	}
	if participation.Status == ParticipationRejected {
		return RejectDecision{}, ErrAlreadyRejected
	}
	reopens := participation.Status == ParticipationApproved && posting.Status == PostingRecruited
	return RejectDecision{ReopensPosting: reopens}, nil
}
