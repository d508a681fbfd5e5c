package service

import "errors"

// Not-found conditions are distinguishable from generic failures so
// callers can branch on them; see IsNotFound.
var (
	ErrPatchNotFound = errors.New("patch not found")
	ErrIssueNotFound = errors.New("issue not found")
)

// IsNotFound reports whether err is one of the not-found conditions.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrPatchNotFound) || errors.Is(err, ErrIssueNotFound)
}
