package models

import (
	"errors"
	"testing"
)

func recruitingPosting() *Posting {
	return &Posting{ID: 7, AuthorID: 1, Status: PostingRecruiting, MaxCapacity: 3}
}

func TestCheckJoin(t *testing.T) {
	posting := recruitingPosting()

	if err := CheckJoin(posting, 2, false, 0); err != nil {
		t.Fatalf("valid join rejected: %v", err)
	}
	if err := CheckJoin(posting, 1, false, 0); !errors.Is(err, ErrSelfJoin) {
		t.Fatalf("author join = %v, want ErrSelfJoin", err)
	}
	if err := CheckJoin(posting, 2, true, 0); !errors.Is(err, ErrAlreadyJoined) {
		t.Fatalf("duplicate join = %v, want ErrAlreadyJoined", err)
	}
	if err := CheckJoin(posting, 2, false, posting.MaxCapacity); !errors.Is(err, ErrCapacityFull) {
		t.Fatalf("join on full posting = %v, want ErrCapacityFull", err)
	}

	posting.Status = PostingRecruited
	if err := CheckJoin(posting, 2, false, 0); !errors.Is(err, ErrNotRecruiting) {
		t.Fatalf("join on recruited posting = %v, want ErrNotRecruiting", err)
	}
	posting.Status = PostingCompleted
	if err := CheckJoin(posting, 2, false, 0); !errors.Is(err, ErrNotRecruiting) {
		t.Fatalf("join on completed posting = %v, want ErrNotRecruiting", err)
	}
}

func TestCheckJoinDistinguishesDuplicateFromCapacity(t *testing.T) {
	// Duplicate join and capacity exhaustion must surface as different
	// errors so clients can tell them apart.
	posting := recruitingPosting()
	dupErr := CheckJoin(posting, 2, true, 0)

	part := &Participation{ID: 11, PostingID: posting.ID, ParticipantID: 2, Status: ParticipationPending}
	_, capErr := CheckApprove(posting, part, posting.AuthorID, posting.MaxCapacity)

	if errors.Is(dupErr, capErr) || dupErr == nil || capErr == nil {
		t.Fatalf("duplicate (%v) and capacity (%v) errors must be distinct", dupErr, capErr)
	}
}

func TestCheckLeave(t *testing.T) {
	part := &Participation{ID: 5, PostingID: 7, ParticipantID: 2, Status: ParticipationPending}

	if err := CheckLeave(part, 2); err != nil {
		t.Fatalf("pending withdrawal rejected: %v", err)
	}
	part.Status = ParticipationApproved
	if err := CheckLeave(part, 2); err != nil {
		t.Fatalf("approved withdrawal rejected: %v", err)
	}
	part.Status = ParticipationRejected
	if err := CheckLeave(part, 2); !errors.Is(err, ErrAlreadyRejected) {
		t.Fatalf("rejected withdrawal = %v, want ErrAlreadyRejected", err)
	}
	part.Status = ParticipationPending
	if err := CheckLeave(part, 3); !errors.Is(err, ErrNotParticipant) {
		t.Fatalf("foreign withdrawal = %v, want ErrNotParticipant", err)
	}
}

func TestCheckApprove(t *testing.T) {
	posting := recruitingPosting()
	part := &Participation{ID: 11, PostingID: posting.ID, ParticipantID: 2, Status: ParticipationPending}

	decision, err := CheckApprove(posting, part, posting.AuthorID, 0)
	if err != nil {
		t.Fatalf("valid approval rejected: %v", err)
	}
	if decision.FillsCapacity {
		t.Fatalf("approval of 1/3 must not fill capacity")
	}

	decision, err = CheckApprove(posting, part, posting.AuthorID, posting.MaxCapacity-1)
	if err != nil {
		t.Fatalf("final approval rejected: %v", err)
	}
	if !decision.FillsCapacity {
		t.Fatalf("final approval must fill capacity")
	}
}

func TestCheckApproveCapacityInvariant(t *testing.T) {
	posting := recruitingPosting()
	part := &Participation{ID: 11, PostingID: posting.ID, ParticipantID: 2, Status: ParticipationPending}

	_, err := CheckApprove(posting, part, posting.AuthorID, posting.MaxCapacity)
	if !errors.Is(err, ErrCapacityFull) {
		t.Fatalf("approval at capacity = %v, want ErrCapacityFull", err)
	}
	if part.Status != ParticipationPending {
		t.Fatalf("refused approval mutated participation status to %s", part.Status)
	}
}

func TestCheckApproveAuthorization(t *testing.T) {
	posting := recruitingPosting()
	part := &Participation{ID: 11, PostingID: posting.ID, ParticipantID: 2, Status: ParticipationPending}

	if _, err := CheckApprove(posting, part, 99, 0); !errors.Is(err, ErrNotPostingAuthor) {
		t.Fatalf("non-author approval = %v, want ErrNotPostingAuthor", err)
	}
	if part.Status != ParticipationPending || posting.Status != PostingRecruiting {
		t.Fatalf("failed approval mutated state: part=%s posting=%s", part.Status, posting.Status)
	}
}

func TestCheckApproveStateRules(t *testing.T) {
	posting := recruitingPosting()
	part := &Participation{ID: 11, PostingID: posting.ID, ParticipantID: 2, Status: ParticipationApproved}

	if _, err := CheckApprove(posting, part, posting.AuthorID, 1); !errors.Is(err, ErrAlreadyApproved) {
		t.Fatalf("double approval = %v, want ErrAlreadyApproved", err)
	}

	part.Status = ParticipationRejected
	if _, err := CheckApprove(posting, part, posting.AuthorID, 1); !errors.Is(err, ErrAlreadyRejected) {
		t.Fatalf("approving rejected = %v, want ErrAlreadyRejected", err)
	}

	part.Status = ParticipationPending
	posting.Status = PostingRecruited
	if _, err := CheckApprove(posting, part, posting.AuthorID, 1); !errors.Is(err, ErrNotRecruiting) {
		t.Fatalf("approval on recruited posting = %v, want ErrNotRecruiting", err)
	}

	stray := &Participation{ID: 12, PostingID: 999, ParticipantID: 3, Status: ParticipationPending}
	posting.Status = PostingRecruiting
	if _, err := CheckApprove(posting, stray, posting.AuthorID, 0); !errors.Is(err, ErrPostingMismatch) {
		t.Fatalf("cross-posting approval = %v, want ErrPostingMismatch", err)
	}
}

func TestCheckReject(t *testing.T) {
	posting := recruitingPosting()
	part := &Participation{ID: 11, PostingID: posting.ID, ParticipantID: 2, Status: ParticipationPending}

	decision, err := CheckReject(posting, part, posting.AuthorID)
	if err != nil {
		t.Fatalf("valid rejection failed: %v", err)
	}
	if decision.ReopensPosting {
		t.Fatalf("rejecting a pending request must not reopen the posting")
	}

	if _, err := CheckReject(posting, part, 99); !errors.Is(err, ErrNotPostingAuthor) {
		t.Fatalf("non-author rejection = %v, want ErrNotPostingAuthor", err)
	}

	part.Status = ParticipationRejected
	if _, err := CheckReject(posting, part, posting.AuthorID); !errors.Is(err, ErrAlreadyRejected) {
		t.Fatalf("double rejection = %v, want ErrAlreadyRejected", err)
	}
}

func TestCheckRejectCancelApprovalReopens(t *testing.T) {
	posting := recruitingPosting()
	posting.Status = PostingRecruited
	part := &Participation{ID: 11, PostingID: posting.ID, ParticipantID: 2, Status: ParticipationApproved}

	decision, err := CheckReject(posting, part, posting.AuthorID)
	if err != nil {
		t.Fatalf("cancel approval failed: %v", err)
	}
	if !decision.ReopensPosting {
		t.Fatalf("cancelling approval on a full posting must reopen recruitment")
	}
}
