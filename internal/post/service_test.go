package post_test

import (
	"context"
	"testing"

	"waven/internal/achievement"
	"waven/internal/auth"
	"waven/internal/post"
	"waven/internal/testdb"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newService(t *testing.T) (*post.Service, *gorm.DB) {
	t.Helper()
	gdb := testdb.Open(t)
	achSvc := &achievement.Service{DB: gdb}
	require.NoError(t, achSvc.Seed(context.Background()))
	return &post.Service{DB: gdb, Achievements: achSvc}, gdb
}

func createUser(t *testing.T, gdb *gorm.DB, name string) auth.User {
	t.Helper()
	u := auth.User{Name: name, Email: name + "@example.com", PasswordHash: "x"}
	require.NoError(t, gdb.Create(&u).Error)
	return u
}

func TestCreateSlugFromTitle(t *testing.T) {
	svc, gdb := newService(t)
	u := createUser(t, gdb, "alice")

	res, err := svc.Create(context.Background(), u.ID, post.CreateInput{
		Title: "My First Post!", Content: "hello", Published: true,
	})
	require.NoError(t, err)
	assert.Equal(t, "my-first-post", res.Post.Slug)
	assert.NotNil(t, res.Post.PublishedAt)
}

func TestCreateUniquesDuplicateSlugs(t *testing.T) {
	svc, gdb := newService(t)
	u := createUser(t, gdb, "alice")
	ctx := context.Background()

	in := post.CreateInput{Title: "Same Title", Content: "c", Published: true}

	first, err := svc.Create(ctx, u.ID, in)
	require.NoError(t, err)
	second, err := svc.Create(ctx, u.ID, in)
	require.NoError(t, err)
	third, err := svc.Create(ctx, u.ID, in)
	require.NoError(t, err)

	assert.Equal(t, "same-title", first.Post.Slug)
	assert.Equal(t, "same-title-1", second.Post.Slug)
	assert.Equal(t, "same-title-2", third.Post.Slug)
}

func TestCreateAttachesTags(t *testing.T) {
	svc, gdb := newService(t)
	u := createUser(t, gdb, "alice")
	ctx := context.Background()

	_, err := svc.Create(ctx, u.ID, post.CreateInput{
		Title: "Tagged", Content: "c", Published: true,
		Tags: []string{"Go", "go", " web dev ", ""},
	})
	require.NoError(t, err)

	var tags []post.Tag
	require.NoError(t, gdb.Order("slug asc").Find(&tags).Error)
	require.Len(t, tags, 2)
	assert.Equal(t, "go", tags[0].Slug)
	assert.Equal(t, "web-dev", tags[1].Slug)

	// Second post reuses the existing tag rows.
	_, err = svc.Create(ctx, u.ID, post.CreateInput{
		Title: "Tagged Again", Content: "c", Published: true,
		Tags: []string{"go"},
	})
	require.NoError(t, err)

	var tagCount int64
	require.NoError(t, gdb.Model(&post.Tag{}).Count(&tagCount).Error)
	assert.Equal(t, int64(2), tagCount)

	var joins int64
	require.NoError(t, gdb.Model(&post.PostTag{}).Count(&joins).Error)
	assert.Equal(t, int64(3), joins)
}

func TestCreateAwardsFirstPostAchievements(t *testing.T) {
	svc, gdb := newService(t)
	u := createUser(t, gdb, "alice")

	res, err := svc.Create(context.Background(), u.ID, post.CreateInput{
		Title: "Debut", Content: "c", Published: true,
	})
	require.NoError(t, err)

	var got []string
	for _, a := range res.NewAchievements {
		got = append(got, a.Name)
	}
	assert.Equal(t, []string{"Welcome Aboard", "Author"}, got)
}

func TestCreateDraftAwardsNothing(t *testing.T) {
	svc, gdb := newService(t)
	u := createUser(t, gdb, "alice")

	res, err := svc.Create(context.Background(), u.ID, post.CreateInput{
		Title: "Draft", Content: "c", Published: false,
	})
	require.NoError(t, err)
	assert.Empty(t, res.NewAchievements)
	assert.Nil(t, res.Post.PublishedAt)
}

func TestBySlug(t *testing.T) {
	svc, gdb := newService(t)
	u := createUser(t, gdb, "alice")
	ctx := context.Background()

	created, err := svc.Create(ctx, u.ID, post.CreateInput{Title: "Find Me", Content: "c", Published: true})
	require.NoError(t, err)

	got, err := svc.BySlug(ctx, created.Post.Slug)
	require.NoError(t, err)
	assert.Equal(t, created.Post.ID, got.ID)

	_, err = svc.BySlug(ctx, "missing")
	assert.ErrorIs(t, err, post.ErrNotFound)
}
