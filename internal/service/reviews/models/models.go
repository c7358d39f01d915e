package models

import (
	"time"

	"github.com/m04kA/SMC-WorkshopService/internal/domain"
)

// CreateReviewRequest отзыв клиента
type CreateReviewRequest struct {
	Name    string `json:"name"`
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

// ReviewResponse отзыв
type ReviewResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"createdAt"`
}

// ReviewListResponse список отзывов со средней оценкой
type ReviewListResponse struct {
	Reviews       []ReviewResponse `json:"reviews"`
	Total         int              `json:"total"`
	AverageRating float64          `json:"averageRating"`
}

func FromDomainReview(r *domain.Review) ReviewResponse {
	return ReviewResponse{
		ID:        r.ID,
		Name:      r.Name,
		Rating:    r.Rating,
		Comment:   r.Comment,
		CreatedAt: r.CreatedAt,
	}
}

func FromDomainReviewList(reviews []*domain.Review) *ReviewListResponse {
	resp := &ReviewListResponse{Reviews: make([]ReviewResponse, 0, len(reviews))}

	sum := 0
	for _, r := range reviews {
		resp.Reviews = append(resp.Reviews, FromDomainReview(r))
		sum += r.Rating
	}
	resp.Total = len(resp.Reviews)
	if resp.Total > 0 {
		resp.AverageRating = float64(sum) / float64(resp.Total)
	}
	return resp
}
