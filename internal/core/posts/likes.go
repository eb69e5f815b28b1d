package posts

// ToggleMember flips userID's membership in likes.
// It returns a new slice, never aliasing the input, and whether userID is a
// member afterwards. Any duplicate entries for userID are dropped on unlike so
// the result is always a set.
func ToggleMember(likes []string, userID string) ([]string, bool) {
	next := make([]string, 0, len(likes)+1)
	found := false
	for _, id := range likes {
		if id == userID {
			found = true
			continue
		}
		next = append(next, id)
	}
	if found {
		return next, false
	}
	return append(next, userID), true
}
