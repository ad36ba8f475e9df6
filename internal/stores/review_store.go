package stores

import (
	"time"

	"gorm.io/gorm"

	"github.com/example/mangal/internal/apperrors"
	"github.com/example/mangal/internal/models"
)

// ReviewStore persists user-submitted reviews. Rating and content validation
// happens at the HTTP boundary before anything reaches this store.
type ReviewStore struct {
	db *gorm.DB
}

// NewReviewStore constructs a ReviewStore.
func NewReviewStore(db *gorm.DB) *ReviewStore {
	return &ReviewStore{db: db}
}

// Append stores a review and returns it with its assigned identity.
func (s *ReviewStore) Append(author string, rating int, content string, date time.Time) (*models.Review, error) {
	review := models.Review{
		Author:  author,
		Rating:  rating,
		Content: content,
		Date:    date,
	}

	if err := s.db.Create(&review).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.CodePersistence, err, "failed to store review")
	}

	return &review, nil
}

// ListAll returns every review, most recent first. Equal dates fall back to
// insertion order; callers must not rely on that tie-break.
func (s *ReviewStore) ListAll() ([]models.Review, error) {
	var reviews []models.Review
	if err := s.db.Order("date desc, id asc").Find(&reviews).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.CodePersistence, err, "failed to list reviews")
	}
	return reviews, nil
}
