package entity

import (
	"time"
)

// Review is a comment on a product. ParentReviewID, when non-empty, makes
// the review a reply to another review on the same product.
// CreatedDate is set once at creation.
type Review struct {
	ID             string
	AuthorID       string
	Text           string
	ProductID      string
	ParentReviewID string
	CreatedDate    time.Time
}

// ThreadReviews builds the reply tree for a product's reviews from the flat
// set. It returns the top-level reviews in input order plus an adjacency map
// from a review id to its direct replies. Replies whose parent is missing
// from the set are dropped rather than promoted.
func ThreadReviews(reviews []Review) (roots []Review, replies map[string][]Review) {
	byID := make(map[string]struct{}, len(reviews))
	for _, r := range reviews {
		byID[r.ID] = struct{}{}
	}
	replies = make(map[string][]Review)
	for _, r := range reviews {
		if r.ParentReviewID == "" {
			roots = append(roots, r)
			continue
		}
		if _, ok := byID[r.ParentReviewID]; ok {
			replies[r.ParentReviewID] = append(replies[r.ParentReviewID], r)
		}
	}
	return roots, replies
}
