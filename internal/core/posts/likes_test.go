package posts

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToggleMember(t *testing.T) {
	tests := []struct {
		name      string
		likes     []string
		user      string
		want      []string
		wantLiked bool
	}{
		{"like empty", nil, "u1", []string{"u1"}, true},
		{"like appends", []string{"u1"}, "u2", []string{"u1", "u2"}, true},
		{"unlike removes", []string{"u1", "u2"}, "u1", []string{"u2"}, false},
		{"unlike drops duplicates", []string{"u1", "u2", "u1"}, "u1", []string{"u2"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, liked := ToggleMember(tt.likes, tt.user)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantLiked, liked)
		})
	}
}

func TestToggleMember_DoesNotAliasInput(t *testing.T) {
	likes := make([]string, 1, 4)
	likes[0] = "u1"

	got, _ := ToggleMember(likes, "u2")
	got[0] = "changed"

	assert.Equal(t, "u1", likes[0])
}

func TestToggleMember_PairIsIdentity(t *testing.T) {
	start := []string{"a", "b"}
	once, _ := ToggleMember(start, "c")
	twice, _ := ToggleMember(once, "c")
	assert.Equal(t, start, twice)
}
