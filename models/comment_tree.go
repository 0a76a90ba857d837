package models

// CommentNode is a comment plus its direct replies, as rendered in a
// thread. Replies is never nil.
type CommentNode struct {
	Comment
	Replies []*CommentNode `json:"replies"`
}

// BuildCommentTree converts a flat, creation-ordered batch of comments
// into a forest of reply trees. Each node's Replies holds its direct
// children in input order; comments with a nil parent reference become
// roots in input order. A comment whose parent is not part of the batch
// (the parent lives on another page) is dropped rather than promoted to
// a root. The transform is pure and runs one map insert and one lookup
// per comment.
func BuildCommentTree(comments []Comment) []*CommentNode {
	nodes := make(map[uint]*CommentNode, len(comments))
	for i := range comments {
		nodes[comments[i].ID] = &CommentNode{
			Comment: comments[i],
			Replies: []*CommentNode{},
		}
	}

	roots := []*CommentNode{}
	for i := range comments {
		node := nodes[comments[i].ID]
		if comments[i].ParentCommentID == nil {
			roots = append(roots, node)
			continue
		}
		if parent, ok := nodes[*comments[i].ParentCommentID]; ok {
			parent.Replies = append(parent.Replies, node)
		}
	}
	return roots
}

// CountCommentNodes returns the total number of nodes in a forest.
func CountCommentNodes(forest []*CommentNode) int {
	total := 0
	for _, node := range forest {
		total += 1 + CountCommentNodes(node.Replies)
	}
	return total
}
