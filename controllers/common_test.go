package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/modae/teamup/models"
)

func TestParsePagination(t *testing.T) {
	cases := []struct {
		name     string
		page     string
		size     string
		wantPage int
		wantSize int
	}{
		{"defaults", "", "", 1, 10},
		{"explicit", "3", "25", 3, 25},
		{"zero page clamps to one", "0", "10", 1, 10},
		{"negative page clamps to one", "-5", "10", 1, 10},
		{"size capped at hundred", "1", "500", 1, 100},
		{"garbage falls back", "abc", "xyz", 1, 10},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			page, size := parsePagination(tc.page, tc.size)
			if page != tc.wantPage || size != tc.wantSize {
				t.Fatalf("parsePagination(%q, %q) = (%d, %d), want (%d, %d)",
					tc.page, tc.size, page, size, tc.wantPage, tc.wantSize)
			}
		})
	}
}

func TestParseID(t *testing.T) {
	if id, ok := parseID("42"); !ok || id != 42 {
		t.Fatalf("parseID(42) = (%d, %v)", id, ok)
	}
	for _, raw := range []string{"", "0", "-1", "abc", "1.5"} {
		if _, ok := parseID(raw); ok {
			t.Fatalf("parseID(%q) accepted invalid input", raw)
		}
	}
}

func respondWorkflowError(t *testing.T, err error) (int, int) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	ctx, _ := gin.CreateTestContext(w)
	workflowError(ctx, err)

	var body struct {
		Code int `json:"code"`
	}
	if jerr := json.Unmarshal(w.Body.Bytes(), &body); jerr != nil {
		t.Fatalf("decode response: %v", jerr)
	}
	return w.Code, body.Code
}

func TestWorkflowErrorMapping(t *testing.T) {
	cases := []struct {
		err        error
		wantStatus int
	}{
		{models.ErrSelfJoin, http.StatusForbidden},
		{models.ErrAlreadyJoined, http.StatusConflict},
		{models.ErrNotRecruiting, http.StatusConflict},
		{models.ErrNotPostingAuthor, http.StatusForbidden},
		{models.ErrNotParticipant, http.StatusForbidden},
		{models.ErrAlreadyApproved, http.StatusConflict},
		{models.ErrAlreadyRejected, http.StatusConflict},
		{models.ErrCapacityFull, http.StatusConflict},
		{models.ErrPostingMismatch, http.StatusBadRequest},
	}
	for _, tc := range cases {
		status, _ := respondWorkflowError(t, tc.err)
		if status != tc.wantStatus {
			t.Errorf("workflowError(%v) status = %d, want %d", tc.err, status, tc.wantStatus)
		}
	}
}

// Clients distinguish a duplicate join from a full posting only through
// the body code, so both conflicts must carry different codes.
func TestWorkflowErrorDistinctConflictCodes(t *testing.T) {
	_, dupCode := respondWorkflowError(t, models.ErrAlreadyJoined)
	_, fullCode := respondWorkflowError(t, models.ErrCapacityFull)
	if dupCode == fullCode {
		t.Fatalf("duplicate-join and capacity-full share code %d", dupCode)
	}
}
