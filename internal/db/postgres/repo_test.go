package postgres

import (
	"context"
	"database/sql"
	"os"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	_ "github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Scribe/internal/core/comments"
	"Scribe/internal/core/posts"
	"Scribe/internal/core/users"
	"Scribe/internal/db/migrations"
)

// setupTestDB connects to TEST_DATABASE_URL and applies migrations.
// Tests are skipped when no database is configured.
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	db, err := sql.Open("postgres", dsn)
	require.NoError(t, err, "Failed to connect to test database")
	require.NoError(t, db.Ping())
	require.NoError(t, migrations.Up(db), "Failed to run migrations")

	t.Cleanup(func() { _ = db.Close() })
	return db
}

// createTestUser inserts a profile and removes everything it authored afterwards
func createTestUser(t *testing.T, db *sql.DB, name string) string {
	t.Helper()
	id := "test-" + uuid.NewString()
	_, err := NewUserRepository(db).Upsert(context.Background(), &users.User{ID: id, Name: name})
	require.NoError(t, err)

	t.Cleanup(func() {
		_, _ = db.Exec("DELETE FROM comments WHERE author_id = $1", id)
		_, _ = db.Exec("DELETE FROM posts WHERE author_id = $1", id)
		_, _ = db.Exec("DELETE FROM users WHERE id = $1", id)
	})
	return id
}

func newTestPost(authorID, title, content string, at time.Time) *posts.Post {
	return &posts.Post{
		ID:        uuid.NewString(),
		Title:     title,
		Content:   content,
		AuthorID:  authorID,
		Likes:     []string{},
		CreatedAt: at,
		UpdatedAt: at,
	}
}

func TestUserRepo_UpsertAndBatch(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	id := createTestUser(t, db, "Ada")

	updated, err := repo.Upsert(ctx, &users.User{ID: id, Name: "Ada L.", Email: "ada@example.com"})
	require.NoError(t, err)
	assert.Equal(t, "Ada L.", updated.Name)

	found, err := repo.GetByIDs(ctx, []string{id, "test-missing"})
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "Ada L.", found[id].Name)
	assert.Equal(t, "ada@example.com", found[id].Email)
}

func TestPostRepo_CRUD(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	author := createTestUser(t, db, "Author")
	at := time.Now().UTC().Truncate(time.Millisecond)
	post := newTestPost(author, "Title", "Body", at)

	require.NoError(t, repo.Create(ctx, post))

	got, err := repo.GetByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, post.Title, got.Title)
	assert.Nil(t, got.Image)
	assert.Equal(t, []string{}, got.Likes)
	assert.True(t, at.Equal(got.CreatedAt))

	image := "/uploads/x.jpg"
	got.Title = "Edited"
	got.Image = &image
	got.UpdatedAt = at.Add(time.Minute)
	updated, err := repo.Update(ctx, got)
	require.NoError(t, err)
	assert.Equal(t, "Edited", updated.Title)
	require.NotNil(t, updated.Image)
	assert.Equal(t, image, *updated.Image)
	assert.Equal(t, author, updated.AuthorID)
	assert.True(t, at.Equal(updated.CreatedAt))

	require.NoError(t, repo.Delete(ctx, post.ID))
	_, err = repo.GetByID(ctx, post.ID)
	assert.ErrorIs(t, err, posts.ErrNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, post.ID), posts.ErrNotFound)

	_, err = repo.Update(ctx, got)
	assert.ErrorIs(t, err, posts.ErrNotFound)
}

func TestPostRepo_ToggleLike(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	author := createTestUser(t, db, "Author")
	post := newTestPost(author, "t", "c", time.Now().UTC().Truncate(time.Millisecond))
	require.NoError(t, repo.Create(ctx, post))

	liked, err := repo.ToggleLike(ctx, post.ID, "u1")
	require.NoError(t, err)
	assert.Equal(t, []string{"u1"}, liked.Likes)

	unliked, err := repo.ToggleLike(ctx, post.ID, "u1")
	require.NoError(t, err)
	assert.Empty(t, unliked.Likes)

	_, err = repo.ToggleLike(ctx, uuid.NewString(), "u1")
	assert.ErrorIs(t, err, posts.ErrNotFound)

	// Concurrent toggles by distinct users are all applied
	var wg sync.WaitGroup
	likers := []string{"u1", "u2", "u3", "u4", "u5", "u6"}
	for _, u := range likers {
		wg.Add(1)
		go func(u string) {
			defer wg.Done()
			_, _ = repo.ToggleLike(ctx, post.ID, u)
		}(u)
	}
	wg.Wait()

	got, err := repo.GetByID(ctx, post.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, likers, got.Likes)
}

func TestPostRepo_List(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	author := createTestUser(t, db, "Author")
	base := time.Now().UTC().Truncate(time.Millisecond)
	marker := uuid.NewString()[:8]

	created := []*posts.Post{
		newTestPost(author, "beta "+marker, "100% literal", base),
		newTestPost(author, "Alpha "+marker, "nothing", base.Add(time.Second)),
		newTestPost(author, "gamma "+marker, "CATS", base.Add(2*time.Second)),
	}
	for _, p := range created {
		require.NoError(t, repo.Create(ctx, p))
	}

	titles := func(ps []*posts.Post) []string {
		out := make([]string, 0, len(ps))
		for _, p := range ps {
			out = append(out, p.Title)
		}
		return out
	}

	newest, err := repo.List(ctx, posts.AuthorQuery(author))
	require.NoError(t, err)
	assert.Equal(t, []string{"gamma " + marker, "Alpha " + marker, "beta " + marker}, titles(newest))

	byTitle, err := repo.List(ctx, posts.ComposeQuery("", "title", author))
	require.NoError(t, err)
	got := titles(byTitle)
	assert.True(t, sort.StringsAreSorted(got), "titles sorted byte-wise: %v", got)

	cats, err := repo.List(ctx, posts.ComposeQuery("cat", "", author))
	require.NoError(t, err)
	assert.Equal(t, []string{"gamma " + marker}, titles(cats))

	percent, err := repo.List(ctx, posts.ComposeQuery("0% lit", "", author))
	require.NoError(t, err)
	assert.Equal(t, []string{"beta " + marker}, titles(percent))

	wildcard, err := repo.List(ctx, posts.ComposeQuery("%", "", author))
	require.NoError(t, err)
	assert.Len(t, wildcard, 1, "percent sign matches only itself")
}

func TestCommentRepo(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCommentRepository(db)
	ctx := context.Background()

	author := createTestUser(t, db, "Commenter")
	postID := uuid.NewString()
	at := time.Now().UTC().Truncate(time.Millisecond)

	first := &comments.Comment{ID: uuid.NewString(), PostID: postID, AuthorID: author, Content: "first", CreatedAt: at}
	second := &comments.Comment{ID: uuid.NewString(), PostID: postID, AuthorID: author, Content: "second", CreatedAt: at.Add(time.Second)}
	require.NoError(t, repo.Create(ctx, second))
	require.NoError(t, repo.Create(ctx, first))

	listed, err := repo.ListByPost(ctx, postID)
	require.NoError(t, err)
	require.Len(t, listed, 2)
	assert.Equal(t, "first", listed[0].Content)
	assert.Equal(t, "second", listed[1].Content)

	got, err := repo.GetByID(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, author, got.AuthorID)

	require.NoError(t, repo.Delete(ctx, first.ID))
	_, err = repo.GetByID(ctx, first.ID)
	assert.ErrorIs(t, err, comments.ErrCommentNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, first.ID), comments.ErrCommentNotFound)

	empty, err := repo.ListByPost(ctx, uuid.NewString())
	require.NoError(t, err)
	assert.Empty(t, empty)
}
