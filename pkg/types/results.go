package types

// LinkAction is the filesystem action a LinkResult describes.
type LinkAction string

const (
	ActionUnlink     LinkAction = "unlink"
	ActionRemoveTree LinkAction = "remove-tree"
	ActionSymlink    LinkAction = "symlink"
	ActionSymlinkDir LinkAction = "symlink-dir"
	ActionHardLink   LinkAction = "hardlink"
)

// LinkResult is the outcome of one link manager operation.
type LinkResult struct {
	Action      LinkAction
	Source      string
	Destination string
	Err         error
}

// OK reports whether the operation succeeded
func (r LinkResult) OK() bool {
	return r.Err == nil
}

// LinkResults is the outcome of an unlink or link pass.
type LinkResults []LinkResult

// Failed returns the failed operations
func (rs LinkResults) Failed() LinkResults {
	var out LinkResults
	for _, r := range rs {
		if r.Err != nil {
			out = append(out, r)
		}
	}
	return out
}

// Succeeded returns the number of successful operations
func (rs LinkResults) Succeeded() int {
	n := 0
	for _, r := range rs {
		if r.Err == nil {
			n++
		}
	}
	return n
}
