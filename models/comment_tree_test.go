package models

import (
	"testing"
	"time"
)

func uintPtr(v uint) *uint { return &v }

func TestBuildCommentTreeNesting(t *testing.T) {
	comments := []Comment{
		{ID: 1, ParentCommentID: nil},
		{ID: 2, ParentCommentID: uintPtr(1)},
		{ID: 3, ParentCommentID: uintPtr(1)},
		{ID: 4, ParentCommentID: uintPtr(2)},
	}

	forest := BuildCommentTree(comments)
	if len(forest) != 1 {
		t.Fatalf("expected 1 root, got %d", len(forest))
	}
	root := forest[0]
	if root.ID != 1 {
		t.Fatalf("root id = %d, want 1", root.ID)
	}
	if len(root.Replies) != 2 || root.Replies[0].ID != 2 || root.Replies[1].ID != 3 {
		t.Fatalf("unexpected root replies: %+v", root.Replies)
	}
	if len(root.Replies[0].Replies) != 1 || root.Replies[0].Replies[0].ID != 4 {
		t.Fatalf("expected comment 4 nested under comment 2")
	}
	if len(root.Replies[0].Replies[0].Replies) != 0 {
		t.Fatalf("leaf node should have empty replies")
	}
	if len(root.Replies[1].Replies) != 0 {
		t.Fatalf("comment 3 should have no replies")
	}
}

func TestBuildCommentTreeOrderPreserved(t *testing.T) {
	var comments []Comment
	comments = append(comments, Comment{ID: 10, ParentCommentID: nil})
	comments = append(comments, Comment{ID: 20, ParentCommentID: nil})
	for _, id := range []uint{31, 32, 33, 34} {
		comments = append(comments, Comment{ID: id, ParentCommentID: uintPtr(20)})
	}

	forest := BuildCommentTree(comments)
	if len(forest) != 2 || forest[0].ID != 10 || forest[1].ID != 20 {
		t.Fatalf("root order not preserved: %+v", forest)
	}
	replies := forest[1].Replies
	if len(replies) != 4 {
		t.Fatalf("expected 4 replies, got %d", len(replies))
	}
	for i, want := range []uint{31, 32, 33, 34} {
		if replies[i].ID != want {
			t.Fatalf("reply %d = id %d, want %d", i, replies[i].ID, want)
		}
	}
}

func TestBuildCommentTreeDropsOrphans(t *testing.T) {
	comments := []Comment{
		{ID: 1, ParentCommentID: nil},
		{ID: 2, ParentCommentID: uintPtr(99)}, // parent on another page
		{ID: 3, ParentCommentID: uintPtr(1)},
	}

	forest := BuildCommentTree(comments)
	if len(forest) != 1 {
		t.Fatalf("orphan must not become a root, got %d roots", len(forest))
	}
	if got := CountCommentNodes(forest); got != 2 {
		t.Fatalf("node count = %d, want 2 (orphan dropped)", got)
	}
}

func TestBuildCommentTreeIdempotent(t *testing.T) {
	comments := []Comment{
		{ID: 1, ParentCommentID: nil},
		{ID: 2, ParentCommentID: uintPtr(1)},
		{ID: 3, ParentCommentID: nil},
		{ID: 4, ParentCommentID: uintPtr(3)},
		{ID: 5, ParentCommentID: uintPtr(4)},
	}

	first := BuildCommentTree(comments)
	second := BuildCommentTree(comments)

	var walk func(a, b []*CommentNode)
	walk = func(a, b []*CommentNode) {
		if len(a) != len(b) {
			t.Fatalf("sibling count diverged: %d vs %d", len(a), len(b))
		}
		for i := range a {
			if a[i].ID != b[i].ID {
				t.Fatalf("node id diverged: %d vs %d", a[i].ID, b[i].ID)
			}
			walk(a[i].Replies, b[i].Replies)
		}
	}
	walk(first, second)

	if got := CountCommentNodes(first); got != len(comments) {
		t.Fatalf("node count = %d, want %d", got, len(comments))
	}
}

func TestBuildCommentTreeEmptyInput(t *testing.T) {
	if forest := BuildCommentTree(nil); len(forest) != 0 {
		t.Fatalf("expected empty forest, got %d roots", len(forest))
	}
}

func TestDisplayContentMasksDeleted(t *testing.T) {
	now := time.Now()
	c := Comment{Content: "secret", DeletedAt: &now}
	if c.DisplayContent() != DeletedCommentContent {
		t.Fatalf("deleted comment content not masked: %q", c.DisplayContent())
	}
	c.DeletedAt = nil
	if c.DisplayContent() != "secret" {
		t.Fatalf("live comment content altered: %q", c.DisplayContent())
	}
}
