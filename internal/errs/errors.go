package errs

import (
	"github.com/pkg/errors"
)

var (
	TaskNotFound = errors.New("task not found")
	UserNotFound = errors.New("user not found")

	EmptyTitle        = errors.New("task title is required")
	EmptyStatus       = errors.New("status is required")
	InvalidStatus     = errors.New("invalid status value")
	InvalidPriority   = errors.New("invalid priority value")
	EmptyQuery        = errors.New("query is required")
	EmptySuggestInput = errors.New("title or description is required")
	EmptySettingValue = errors.New("setting value is required")

	UpstreamUnavailable = errors.New("completion service unavailable")
)

// IsNotFound reports whether err is one of the not-found sentinels.
func IsNotFound(err error) bool {
	return errors.Is(err, TaskNotFound) || errors.Is(err, UserNotFound)
}

// IsValidation reports whether err is caused by bad caller input.
func IsValidation(err error) bool {
	for _, v := range []error{
		EmptyTitle, EmptyStatus, InvalidStatus, InvalidPriority,
		EmptyQuery, EmptySuggestInput, EmptySettingValue,
	} {
		if errors.Is(err, v) {
			return true
		}
	}
	return false
}
