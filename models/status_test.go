package models

import "testing"

func TestPostingStatusTransitions(t *testing.T) {
	cases := []struct {
		from, to PostingStatus
		ok       bool
	}{
		{PostingRecruiting, PostingRecruited, true},
		{PostingRecruiting, PostingCompleted, true},
		{PostingRecruited, PostingRecruiting, true},
		{PostingRecruited, PostingCompleted, true},
		{PostingCompleted, PostingRecruiting, false},
		{PostingCompleted, PostingRecruited, false},
		{PostingRecruiting, PostingRecruiting, true}, // no-op update
	}
	for _, tc := range cases {
		if got := tc.from.CanTransitionTo(tc.to); got != tc.ok {
			t.Errorf("%s -> %s = %v, want %v", tc.from, tc.to, got, tc.ok)
		}
	}
}

func TestParticipationStatusTransitions(t *testing.T) {
	cases := []struct {
		from, to ParticipationStatus
		ok       bool
	}{
		{ParticipationPending, ParticipationApproved, true},
		{ParticipationPending, ParticipationRejected, true},
		{ParticipationApproved, ParticipationRejected, true}, // cancel approval
		{ParticipationApproved, ParticipationPending, false},
		{ParticipationRejected, ParticipationApproved, false},
		{ParticipationRejected, ParticipationPending, false},
		{ParticipationPending, ParticipationPending, false},
	}
	for _, tc := range cases {
		if got := tc.from.CanTransitionTo(tc.to); got != tc.ok {
			t.Errorf("%s -> %s = %v, want %v", tc.from, tc.to, got, tc.ok)
		}
	}
}

func TestEnumValidity(t *testing.T) {
	if !PostingTypeProject.Valid() || !PostingTypeStudy.Valid() || PostingType("GAME").Valid() {
		t.Error("posting type validity broken")
	}
	if !PostingRecruiting.Valid() || PostingStatus("OPEN").Valid() {
		t.Error("posting status validity broken")
	}
	if !ParticipationPending.Valid() || ParticipationStatus("WAITING").Valid() {
		t.Error("participation status validity broken")
	}
	if !RoleUser.Valid() || !RoleAdmin.Valid() || Role("ROOT").Valid() {
		t.Error("role validity broken")
	}
}
