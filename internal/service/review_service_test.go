package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/soniabinty/gizmorent-server/internal/domain"
	"github.com/soniabinty/gizmorent-server/internal/service"
)

type mockReviewRepo struct {
	reviews []domain.Review
}

func (m *mockReviewRepo) Insert(_ context.Context, review *domain.Review) (*domain.Review, error) {
	copied := *review
	copied.ID = primitive.NewObjectID()
	m.reviews = append(m.reviews, copied)
	return &copied, nil
}

func (m *mockReviewRepo) ListByProduct(_ context.Context, productID string) ([]domain.Review, error) {
	out := []domain.Review{}
	for _, r := range m.reviews {
		if r.ProductID == productID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *mockReviewRepo) ListByOwner(_ context.Context, ownerEmail string) ([]domain.Review, error) {
	out := []domain.Review{}
	for _, r := range m.reviews {
		if r.OwnerEmail == ownerEmail {
			out = append(out, r)
		}
	}
	return out, nil
}

func TestAddReviewValidatesRating(t *testing.T) {
	svc := service.NewReviewService(&mockReviewRepo{})

	for _, rating := range []int{0, 6, -1} {
		_, err := svc.AddReview(context.Background(), &domain.Review{
			ProductID:     "g1",
			ReviewerEmail: "u@example.com",
			Rating:        rating,
		})
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrValidation)
	}
}

func TestAddReviewRequiresSubject(t *testing.T) {
	svc := service.NewReviewService(&mockReviewRepo{})

	_, err := svc.AddReview(context.Background(), &domain.Review{
		ReviewerEmail: "u@example.com",
		Rating:        4,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestListProductReviewsAverageRating(t *testing.T) {
	repo := &mockReviewRepo{}
	svc := service.NewReviewService(repo)
	ctx := context.Background()

	for _, rating := range []int{5, 4, 4} {
		_, err := svc.AddReview(ctx, &domain.Review{
			ProductID:     "g1",
			ReviewerEmail: "u@example.com",
			Rating:        rating,
		})
		require.NoError(t, err)
	}

	summary, err := svc.ListProductReviews(ctx, "g1")
	require.NoError(t, err)
	assert.Len(t, summary.Reviews, 3)
	assert.Equal(t, 4.3, summary.AverageRating)
}

func TestListProductReviewsEmpty(t *testing.T) {
	svc := service.NewReviewService(&mockReviewRepo{})

	summary, err := svc.ListProductReviews(context.Background(), "g-none")
	require.NoError(t, err)
	assert.NotNil(t, summary.Reviews)
	assert.Empty(t, summary.Reviews)
	assert.Zero(t, summary.AverageRating)
}

func TestListRenterReviews(t *testing.T) {
	repo := &mockReviewRepo{}
	svc := service.NewReviewService(repo)
	ctx := context.Background()

	_, err := svc.AddReview(ctx, &domain.Review{
		OwnerEmail:    "renter@example.com",
		ReviewerEmail: "u@example.com",
		Rating:        5,
	})
	require.NoError(t, err)

	summary, err := svc.ListRenterReviews(ctx, "Renter@Example.com")
	require.NoError(t, err)
	assert.Len(t, summary.Reviews, 1)
	assert.Equal(t, 5.0, summary.AverageRating)
}
