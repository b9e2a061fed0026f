package domain

// Comment is an issue comment as fetched from the tracker. The client never
// creates or mutates comment identity, it only matches against body content.
type Comment struct {
	ID     int64
	Author string // empty when the author identity is unavailable
	Body   string // empty when the comment has no body content
}

// Issue is the subset of issue data the workflow reads.
type Issue struct {
	Number int
	ID     int64 // internal identifier, required by the sub-issue link relation
	State  string
	Author string
	Body   string
	Labels []string
}

// IsClosed reports whether the issue is closed, regardless of closing reason.
func (i *Issue) IsClosed() bool {
	return i.State == "closed"
}
