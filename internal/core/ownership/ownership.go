// Package ownership holds the single authorization rule for content mutation:
// only the identity that authored a post or comment may change or remove it.
package ownership

// CanMutate reports whether actingID may update or delete a resource authored by authorID.
// An empty acting identity never owns anything.
func CanMutate(actingID, authorID string) bool {
	return actingID != "" && actingID == authorID
}
