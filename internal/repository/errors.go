package repository

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/go-github/v74/github"
)

// NotFoundError reports that a remote resource does not exist. It is the
// user-actionable error class: the caller should surface it rather than
// retry.
type NotFoundError struct {
	Resource string
	Name     string
	Owner    string
	Repo     string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found in %s/%s", e.Resource, e.Name, e.Owner, e.Repo)
}

// IsNotFound reports whether err, or anything it wraps, is a NotFoundError.
func IsNotFound(err error) bool {
	var notFound *NotFoundError
	return errors.As(err, &notFound)
}

// RemoteMessage returns the most specific message the remote attached to err,
// falling back to the literal "unknown error" when none can be extracted.
func RemoteMessage(err error) string {
	var ghErr *github.ErrorResponse
	if errors.As(err, &ghErr) {
		if message := strings.TrimSpace(ghErr.Message); message != "" {
			return message
		}
		return "unknown error"
	}
	if err == nil || strings.TrimSpace(err.Error()) == "" {
		return "unknown error"
	}
	return err.Error()
}
