package models

// PostingType classifies what kind of teammates a posting recruits.
type PostingType string

const (
	PostingTypeProject PostingType = "PROJECT"
	PostingTypeStudy   PostingType = "STUDY"
)

// Valid reports whether the value is one of the known posting types.
func (t PostingType) Valid() bool {
	return t == PostingTypeProject || t == PostingTypeStudy
}

// PostingStatus is the recruitment lifecycle state of a posting.
type PostingStatus string

const (
	PostingRecruiting PostingStatus = "RECRUITING"
	PostingRecruited  PostingStatus = "RECRUITED"
	PostingCompleted  PostingStatus = "COMPLETED"
)

// postingTransitions enumerates the legal posting status transitions.
// RECRUITED may reopen to RECRUITING when an approval is cancelled;
// COMPLETED is terminal.
var postingTransitions = map[PostingStatus][]PostingStatus{
	PostingRecruiting: {PostingRecruited, PostingCompleted},
	PostingRecruited:  {PostingRecruiting, PostingCompleted},
	PostingCompleted:  {},
}

// Valid reports whether the value is a known posting status.
func (s PostingStatus) Valid() bool {
	_, ok := postingTransitions[s]
	return ok
}

// CanTransitionTo reports whether moving from s to next is a legal transition.
// A no-op transition (s == next) is always allowed.
func (s PostingStatus) CanTransitionTo(next PostingStatus) bool {
	if s == next {
		return true
	}
	for _, allowed := range postingTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// ParticipationStatus is the approval state of a join request.
type ParticipationStatus string

const (
	ParticipationPending  ParticipationStatus = "PENDING"
	ParticipationApproved ParticipationStatus = "APPROVED"
	ParticipationRejected ParticipationStatus = "REJECTED"
)

// participationTransitions enumerates legal participation transitions.
// APPROVED -> REJECTED models the author cancelling a prior approval.
var participationTransitions = map[ParticipationStatus][]ParticipationStatus{
	ParticipationPending:  {ParticipationApproved, ParticipationRejected},
	ParticipationApproved: {ParticipationRejected},
	ParticipationRejected: {},
}

// Valid reports whether the value is a known participation status.
func (s ParticipationStatus) Valid() bool {
	_, ok := participationTransitions[s]
	return ok
}

// CanTransitionTo reports whether moving from s to next is legal.
func (s ParticipationStatus) CanTransitionTo(next ParticipationStatus) bool {
	if s == next {
		return false
	}
	for _, allowed := range participationTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Role is the account-level authority of a user.
type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// Valid reports whether the value is a known role.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}
