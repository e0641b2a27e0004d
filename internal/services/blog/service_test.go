package blog_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ustat/internal/domain"
	"ustat/internal/mockapi"
	"ustat/internal/mockapi/mockapitest"
	"ustat/internal/services/blog"
)

func TestPosts(t *testing.T) {
	h := mockapitest.NewHarness(t, mockapi.Options{})
	svc := blog.New(h.API)
	ctx := context.Background()

	all, err := svc.Posts(ctx, domain.PostQuery{})
	require.NoError(t, err)
	assert.Len(t, all, 4)

	page, err := svc.Posts(ctx, domain.PostQuery{Page: 2, Limit: 3})
	require.NoError(t, err)
	assert.Len(t, page, 1)

	filtered, err := svc.Posts(ctx, domain.PostQuery{Category: "is"})
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	assert.Equal(t, "2", filtered[0].ID)

	found, err := svc.Posts(ctx, domain.PostQuery{Search: "trafik"})
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "3", found[0].ID)
}

func TestPosts_RejectsNegativePaging(t *testing.T) {
	h := mockapitest.NewHarness(t, mockapi.Options{})
	_, err := blog.New(h.API).Posts(context.Background(), domain.PostQuery{Page: -1})
	require.ErrorIs(t, err, domain.ErrValidation)
}

func TestPost(t *testing.T) {
	h := mockapitest.NewHarness(t, mockapi.Options{})
	svc := blog.New(h.API)

	p, err := svc.Post(context.Background(), "1")
	require.NoError(t, err)
	assert.Equal(t, "ceza", p.Category)
	assert.False(t, p.PublishedAt.IsZero())

	_, err = svc.Post(context.Background(), "404")
	var se *domain.ServerError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, 404, se.Status)

	_, err = svc.Post(context.Background(), " ")
	require.ErrorIs(t, err, domain.ErrValidation)
}
