package postgres

import (
	"fmt"
	"strings"

	"Scribe/internal/core/posts"
)

const postColumns = `id, title, content, image, author_id, likes, created_at, updated_at`

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike makes s match itself literally inside a LIKE pattern
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

// buildListQuery translates a composed post query into SQL.
// Ordering mirrors posts.Query.Compare: byte-wise titles, then id in the same direction.
func buildListQuery(q posts.Query) (string, []any) {
	var (
		conds []string
		args  []any
	)

	if q.Search != "" {
		args = append(args, "%"+escapeLike(q.Search)+"%")
		n := len(args)
		conds = append(conds, fmt.Sprintf(`(title ILIKE $%d ESCAPE '\' OR content ILIKE $%d ESCAPE '\')`, n, n))
	}
	if q.AuthorID != "" {
		args = append(args, q.AuthorID)
		conds = append(conds, fmt.Sprintf("author_id = $%d", len(args)))
	}

	var b strings.Builder
	b.WriteString("SELECT ")
	b.WriteString(postColumns)
	b.WriteString(" FROM posts")
	if len(conds) > 0 {
		b.WriteString(" WHERE ")
		b.WriteString(strings.Join(conds, " AND "))
	}

	dir := "ASC"
	if q.Sort.Descending {
		dir = "DESC"
	}
	switch q.Sort.Field {
	case posts.SortByTitle:
		fmt.Fprintf(&b, ` ORDER BY title COLLATE "C" %s, id %s`, dir, dir)
	default:
		fmt.Fprintf(&b, " ORDER BY created_at %s, id %s", dir, dir)
	}

	return b.String(), args
}
