package memory

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Scribe/internal/core/comments"
	"Scribe/internal/core/posts"
	"Scribe/internal/core/users"
)

func TestUserRepo_Upsert(t *testing.T) {
	repo := NewUserRepository()
	ctx := context.Background()

	first, err := repo.Upsert(ctx, &users.User{ID: "u1", Name: "Ada"})
	require.NoError(t, err)
	second, err := repo.Upsert(ctx, &users.User{ID: "u1", Name: "Ada L."})
	require.NoError(t, err)

	assert.Equal(t, first.CreatedAt, second.CreatedAt)
	found, err := repo.GetByIDs(ctx, []string{"u1", "ghost"})
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "Ada L.", found["u1"].Name)
}

func TestPostRepo_ReturnsCopies(t *testing.T) {
	repo := NewPostRepository()
	ctx := context.Background()

	post := &posts.Post{ID: "p1", Title: "t", Content: "c", AuthorID: "a", Likes: []string{}}
	require.NoError(t, repo.Create(ctx, post))

	post.Title = "mutated after create"
	got, err := repo.GetByID(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, "t", got.Title)

	got.Likes = append(got.Likes, "intruder")
	again, err := repo.GetByID(ctx, "p1")
	require.NoError(t, err)
	assert.Empty(t, again.Likes)

	assert.Error(t, repo.Create(ctx, &posts.Post{ID: "p1"}))
}

func TestPostRepo_UpdateKeepsImmutableFields(t *testing.T) {
	repo := NewPostRepository()
	ctx := context.Background()
	created := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, repo.Create(ctx, &posts.Post{ID: "p1", Title: "t", Content: "c", AuthorID: "a", CreatedAt: created}))
	_, err := repo.ToggleLike(ctx, "p1", "u1")
	require.NoError(t, err)

	updated, err := repo.Update(ctx, &posts.Post{ID: "p1", Title: "new", Content: "c2", AuthorID: "someone-else", UpdatedAt: created.Add(time.Hour)})
	require.NoError(t, err)

	assert.Equal(t, "new", updated.Title)
	assert.Equal(t, "a", updated.AuthorID)
	assert.Equal(t, created, updated.CreatedAt)
	assert.Equal(t, []string{"u1"}, updated.Likes)

	_, err = repo.Update(ctx, &posts.Post{ID: "missing"})
	assert.ErrorIs(t, err, posts.ErrNotFound)
}

func TestPostRepo_ToggleLikeConcurrent(t *testing.T) {
	repo := NewPostRepository()
	ctx := context.Background()
	require.NoError(t, repo.Create(ctx, &posts.Post{ID: "p1", AuthorID: "a"}))

	// Every user toggles twice; the set must end empty
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		user := string(rune('a' + i%26))
		if i >= 26 {
			user += "2"
		}
		wg.Add(2)
		for j := 0; j < 2; j++ {
			go func() {
				defer wg.Done()
				_, err := repo.ToggleLike(ctx, "p1", user)
				assert.NoError(t, err)
			}()
		}
	}
	wg.Wait()

	got, err := repo.GetByID(ctx, "p1")
	require.NoError(t, err)
	assert.Empty(t, got.Likes)

	_, err = repo.ToggleLike(ctx, "missing", "u1")
	assert.ErrorIs(t, err, posts.ErrNotFound)
}

func TestPostRepo_ListAndDelete(t *testing.T) {
	repo := NewPostRepository()
	ctx := context.Background()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, repo.Create(ctx, &posts.Post{ID: "p1", Title: "b", Content: "cat", AuthorID: "a", CreatedAt: base}))
	require.NoError(t, repo.Create(ctx, &posts.Post{ID: "p2", Title: "a", Content: "dog", AuthorID: "b", CreatedAt: base.Add(time.Minute)}))

	found, err := repo.List(ctx, posts.ComposeQuery("CAT", "", ""))
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "p1", found[0].ID)

	all, err := repo.List(ctx, posts.ComposeQuery("", "title", ""))
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "p2", all[0].ID)

	require.NoError(t, repo.Delete(ctx, "p1"))
	assert.ErrorIs(t, repo.Delete(ctx, "p1"), posts.ErrNotFound)
}

func TestCommentRepo(t *testing.T) {
	repo := NewCommentRepository()
	ctx := context.Background()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, repo.Create(ctx, &comments.Comment{ID: "c2", PostID: "p1", AuthorID: "u", Content: "second", CreatedAt: base.Add(time.Second)}))
	require.NoError(t, repo.Create(ctx, &comments.Comment{ID: "c1", PostID: "p1", AuthorID: "u", Content: "first", CreatedAt: base}))
	require.NoError(t, repo.Create(ctx, &comments.Comment{ID: "c3", PostID: "p2", AuthorID: "u", Content: "elsewhere", CreatedAt: base}))

	listed, err := repo.ListByPost(ctx, "p1")
	require.NoError(t, err)
	require.Len(t, listed, 2)
	assert.Equal(t, "c1", listed[0].ID)
	assert.Equal(t, "c2", listed[1].ID)

	require.NoError(t, repo.Delete(ctx, "c1"))
	_, err = repo.GetByID(ctx, "c1")
	assert.ErrorIs(t, err, comments.ErrCommentNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, "c1"), comments.ErrCommentNotFound)

	empty, err := repo.ListByPost(ctx, "nothing")
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}

func TestComments_ListInInsertionOrder(t *testing.T) {
	ctx := context.Background()
	postRepo := NewPostRepository()
	authors := users.NewUserService(NewUserRepository(), 16, nil)
	service := comments.NewCommentService(NewCommentRepository(), postRepo, authors, nil)

	post := &posts.Post{ID: "0190f3a2-5b6c-7d8e-9f01-23456789abcd", Title: "t", Content: "c", AuthorID: "u1"}
	require.NoError(t, postRepo.Create(ctx, post))

	var added []string
	for i := 0; i < 20; i++ {
		view, err := service.AddComment(ctx, comments.AddCommentRequest{
			PostID:   post.ID,
			AuthorID: "u1",
			Content:  "comment",
		})
		require.NoError(t, err)
		added = append(added, view.ID)
	}

	listed, err := service.ListComments(ctx, post.ID)
	require.NoError(t, err)
	var got []string
	for _, c := range listed {
		got = append(got, c.ID)
	}
	assert.Equal(t, added, got)
}

func TestPosts_ListInCreationOrder(t *testing.T) {
	ctx := context.Background()
	authors := users.NewUserService(NewUserRepository(), 16, nil)
	service := posts.NewPostService(NewPostRepository(), authors, nil, nil)

	var created []string
	for i := 0; i < 20; i++ {
		view, err := service.CreatePost(ctx, posts.CreatePostRequest{AuthorID: "u1", Title: "t", Content: "c"})
		require.NoError(t, err)
		created = append(created, view.ID)
	}

	oldest, err := service.ListPosts(ctx, posts.ListPostsRequest{Sort: "oldest"})
	require.NoError(t, err)
	newest, err := service.ListPosts(ctx, posts.ListPostsRequest{})
	require.NoError(t, err)
	require.Len(t, oldest, len(created))
	require.Len(t, newest, len(created))

	for i, id := range created {
		assert.Equal(t, id, oldest[i].ID)
		assert.Equal(t, id, newest[len(created)-1-i].ID)
	}
}
