package services

import "fmt"

// ownerOnly gates destructive operations: only the author of a resource may
// delete it.
func ownerOnly(resourceAuthorID, requestingUserID string) error {
	if resourceAuthorID != requestingUserID {
		return fmt.Errorf("%w: only the author can delete this resource", ErrPermissionDenied)
	}
	return nil
}
