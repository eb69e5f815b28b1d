package users

import (
	"errors"
	"fmt"
)

// InvalidIdentityError is returned when a credential does not carry a usable identity
type InvalidIdentityError struct {
	Reason string
}

func (e *InvalidIdentityError) Error() string {
	return fmt.Sprintf("invalid identity: %s", e.Reason)
}

// IsInvalidIdentity checks if error is an invalid identity error
func IsInvalidIdentity(err error) bool {
	var idErr *InvalidIdentityError
	return errors.As(err, &idErr)
}
