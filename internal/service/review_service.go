package service

import (
	"context"
	"math"
	"time"

	"github.com/soniabinty/gizmorent-server/internal/domain"
	"github.com/soniabinty/gizmorent-server/internal/repository"
)

// ReviewSummary pairs a review list with its average rating so clients
// render both from one response.
type ReviewSummary struct {
	Reviews       []domain.Review `json:"reviews"`
	AverageRating float64         `json:"averageRating"`
}

type ReviewService interface {
	AddReview(ctx context.Context, review *domain.Review) (*domain.Review, error)
	ListProductReviews(ctx context.Context, productID string) (*ReviewSummary, error)
	ListRenterReviews(ctx context.Context, ownerEmail string) (*ReviewSummary, error)
}

type reviewService struct {
	reviewRepo repository.ReviewRepository
}

func NewReviewService(reviewRepo repository.ReviewRepository) ReviewService {
	return &reviewService{reviewRepo: reviewRepo}
}

func (s *reviewService) AddReview(ctx context.Context, review *domain.Review) (*domain.Review, error) {
	review.ReviewerEmail = domain.NormalizeEmail(review.ReviewerEmail)
	if review.OwnerEmail != "" {
		review.OwnerEmail = domain.NormalizeEmail(review.OwnerEmail)
	}
	if err := review.Validate(); err != nil {
		return nil, err
	}
	review.CreatedAt = time.Now()

	return s.reviewRepo.Insert(ctx, review)
}

func (s *reviewService) ListProductReviews(ctx context.Context, productID string) (*ReviewSummary, error) {
	if productID == "" {
		return nil, domain.ValidationError("Product id is required")
	}
	reviews, err := s.reviewRepo.ListByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	return summarize(reviews), nil
}

func (s *reviewService) ListRenterReviews(ctx context.Context, ownerEmail string) (*ReviewSummary, error) {
	ownerEmail = domain.NormalizeEmail(ownerEmail)
	if !domain.IsValidEmail(ownerEmail) {
		return nil, domain.ValidationError("A valid email is required")
	}
	reviews, err := s.reviewRepo.ListByOwner(ctx, ownerEmail)
	if err != nil {
		return nil, err
	}
	return summarize(reviews), nil
}

func summarize(reviews []domain.Review) *ReviewSummary {
	if reviews == nil {
		reviews = []domain.Review{}
	}
	summary := &ReviewSummary{Reviews: reviews}
	if len(reviews) == 0 {
		return summary
	}

	total := 0
	for _, r := range reviews {
		total += r.Rating
	}
	avg := float64(total) / float64(len(reviews))
	summary.AverageRating = math.Round(avg*10) / 10
	return summary
}
