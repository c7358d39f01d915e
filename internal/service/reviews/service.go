package reviews

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/m04kA/SMC-WorkshopService/internal/domain"
	"github.com/m04kA/SMC-WorkshopService/internal/service/reviews/models"
)

const (
	listLimit        = 50
	maxCommentLength = 1000
)

// Service сервис публичных отзывов
type Service struct {
	repo   ReviewRepository
	logger Logger
}

func NewService(repo ReviewRepository, logger Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// List последние отзывы, новые первыми
func (s *Service) List(ctx context.Context) (*models.ReviewListResponse, error) {
	reviews, err := s.repo.List(ctx, listLimit)
	if err != nil {
		s.logger.Error("ListReviews: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}
	return models.FromDomainReviewList(reviews), nil
}

// Create сохраняет отзыв: оценка 1..5, имя и комментарий обязательны
func (s *Service) Create(ctx context.Context, req *models.CreateReviewRequest) (*models.ReviewResponse, error) {
	review := &domain.Review{
		Name:    strings.TrimSpace(req.Name),
		Rating:  req.Rating,
		Comment: strings.TrimSpace(req.Comment),
	}

	switch {
	case review.Name == "":
		return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
	case utf8.RuneCountInString(review.Name) > domain.MaxNameLength:
		return nil, fmt.Errorf("%w: name exceeds %d characters", ErrInvalidInput, domain.MaxNameLength)
	case review.Comment == "":
		return nil, fmt.Errorf("%w: comment is required", ErrInvalidInput)
	case utf8.RuneCountInString(review.Comment) > maxCommentLength:
		return nil, fmt.Errorf("%w: comment exceeds %d characters", ErrInvalidInput, maxCommentLength)
	case review.Rating < domain.MinRating || review.Rating > domain.MaxRating:
		return nil, fmt.Errorf("%w: rating must be between %d and %d", ErrInvalidInput, domain.MinRating, domain.MaxRating)
	}

	created, err := s.repo.Create(ctx, review)
	if err != nil {
		s.logger.Error("CreateReview: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("CreateReview: review id=%d rating=%d", created.ID, created.Rating)
	resp := models.FromDomainReview(created)
	return &resp, nil
}
