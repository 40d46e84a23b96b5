package activities

import (
	"github.com/beplus/beplus/internal/reconcile"
	"github.com/beplus/beplus/internal/resource"
)

// loadedMsg carries the result of a list fetch.
type loadedMsg struct {
	owner   string
	outcome reconcile.Outcome[[]resource.Activity]
	// refresh is set when the fetch follows a mutation.
	refresh     bool
	mutationErr string
	notice      string
}

// mutatedMsg carries the result of a create or delete.
type mutatedMsg struct {
	owner   string
	outcome reconcile.Outcome[struct{}]
	notice  string
}

// noticeExpiredMsg hides the success notice it was scheduled for.
type noticeExpiredMsg struct {
	owner string
	seq   int
}
