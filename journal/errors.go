package journal

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyToken = errors.New("journal: empty order token")
	ErrRejected   = errors.New("journal: write rejected by provider")
)

// CancelError reports a Cancel whose revision bump failed. DelErr is set when
// the delete failed as well.
type CancelError struct {
	Token   string
	BumpErr error
	DelErr  error
}

func (e *CancelError) Error() string {
	switch {
	case e.BumpErr != nil && e.DelErr != nil:
		return fmt.Sprintf("cancel %q failed: revision bump and delete failed: bump=%v; delete=%v",
			e.Token, e.BumpErr, e.DelErr)
	case e.BumpErr != nil:
		return fmt.Sprintf("cancel %q: revision bump failed: %v", e.Token, e.BumpErr)
	case e.DelErr != nil:
		return fmt.Sprintf("cancel %q: delete failed: %v", e.Token, e.DelErr)
	default:
		return fmt.Sprintf("cancel %q: unknown error", e.Token)
	}
}

func (e *CancelError) Unwrap() []error {
	errs := make([]error, 0, 2)
	if e.BumpErr != nil {
		errs = append(errs, e.BumpErr)
	}
	if e.DelErr != nil {
		errs = append(errs, e.DelErr)
	}
	return errs
}
