package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestThreadReviews_Flat(t *testing.T) {
	reviews := []Review{
		{ID: "r1", ProductID: "p1"},
		{ID: "r2", ProductID: "p1"},
	}
	roots, replies := ThreadReviews(reviews)
	require.Len(t, roots, 2)
	assert.Empty(t, replies)
	assert.Equal(t, "r1", roots[0].ID)
	assert.Equal(t, "r2", roots[1].ID)
}

func TestThreadReviews_Nested(t *testing.T) {
	reviews := []Review{
		{ID: "r1", ProductID: "p1"},
		{ID: "r2", ProductID: "p1", ParentReviewID: "r1"},
		{ID: "r3", ProductID: "p1", ParentReviewID: "r1"},
		{ID: "r4", ProductID: "p1", ParentReviewID: "r2"},
	}
	roots, replies := ThreadReviews(reviews)
	require.Len(t, roots, 1)
	assert.Equal(t, "r1", roots[0].ID)

	require.Len(t, replies["r1"], 2)
	assert.Equal(t, "r2", replies["r1"][0].ID)
	assert.Equal(t, "r3", replies["r1"][1].ID)

	require.Len(t, replies["r2"], 1)
	assert.Equal(t, "r4", replies["r2"][0].ID)
}

func TestThreadReviews_OrphanReplyDropped(t *testing.T) {
	reviews := []Review{
		{ID: "r1", ProductID: "p1"},
		{ID: "r2", ProductID: "p1", ParentReviewID: "gone"},
	}
	roots, replies := ThreadReviews(reviews)
	require.Len(t, roots, 1)
	assert.Empty(t, replies)
}

func TestThreadReviews_Empty(t *testing.T) {
	roots, replies := ThreadReviews(nil)
	assert.Empty(t, roots)
	assert.Empty(t, replies)
}
