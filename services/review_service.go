package services

import (
	"context"
	"errors"
	"strings"

	"foodorder/entity"
	"foodorder/pkg/apperr"
	"foodorder/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type ReviewService struct {
	ReviewRepo *repository.ReviewRepository
	OrderRepo  *repository.OrderRepository
	StoreRepo  *repository.StoreRepository
	Ranking    RankingCache
	Log        logrus.FieldLogger
}

func NewReviewService(
	rr *repository.ReviewRepository,
	or *repository.OrderRepository,
	sr *repository.StoreRepository,
	ranking RankingCache,
	log logrus.FieldLogger,
) *ReviewService {
	return &ReviewService{ReviewRepo: rr, OrderRepo: or, StoreRepo: sr, Ranking: ranking, Log: log}
}

type ReviewInput struct {
	OrderID     uint   `json:"orderId"`
	Rate        int    `json:"rate"`
	Content     string `json:"content"`
	ReviewImage string `json:"reviewImage"`
}

type ReviewUpdate struct {
	Rate        *int    `json:"rate"`
	Content     *string `json:"content"`
	ReviewImage *string `json:"reviewImage"`
}

func validRate(rate int) bool { return rate >= 1 && rate <= 5 }

func (s *ReviewService) CreateReview(ctx context.Context, userID, storeID uint, in ReviewInput) (*entity.Review, error) {
	if _, err := s.StoreRepo.FindByID(ctx, storeID); errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("store not found")
	} else if err != nil {
		return nil, err
	}
	if !validRate(in.Rate) {
		return nil, apperr.BadRequest("rate must be between 1 and 5")
	}

	orderID := in.OrderID
	if orderID != 0 {
		o, err := s.OrderRepo.FindByID(ctx, orderID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("order not found")
		}
		if err != nil {
			return nil, err
		}
		if o.UserID != userID || o.StoreID != storeID {
			return nil, apperr.Forbidden("order does not belong to you and this store")
		}
	} else {
		latest, err := s.OrderRepo.LatestOrderIDFromStore(ctx, userID, storeID)
		if err != nil {
			return nil, err
		}
		if latest == 0 {
			return nil, apperr.Forbidden("only customers who ordered from this store can review it")
		}
		orderID = latest
	}

	n, err := s.ReviewRepo.CountByOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if n > 0 {
		return nil, apperr.Conflict("order already reviewed")
	}

	rev := &entity.Review{
		UserID:      userID,
		StoreID:     storeID,
		OrderID:     orderID,
		Rate:        in.Rate,
		Content:     strings.TrimSpace(in.Content),
		ReviewImage: strings.TrimSpace(in.ReviewImage),
	}
	if err := s.ReviewRepo.Create(ctx, rev); err != nil {
		return nil, err
	}
	if err := s.refreshRate(ctx, storeID); err != nil {
		return nil, err
	}
	return rev, nil
}

func (s *ReviewService) ListStoreReviews(ctx context.Context, storeID uint) ([]entity.Review, error) {
	return s.ReviewRepo.ListByStore(ctx, storeID)
}

func (s *ReviewService) ListMyReviews(ctx context.Context, userID uint) ([]entity.Review, error) {
	return s.ReviewRepo.ListByUser(ctx, userID)
}

func (s *ReviewService) GetReview(ctx context.Context, reviewID uint) (*entity.Review, error) {
	rev, err := s.ReviewRepo.FindByID(ctx, reviewID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("review not found")
	}
	return rev, err
}

func (s *ReviewService) UpdateReview(ctx context.Context, userID, reviewID uint, in ReviewUpdate) (*entity.Review, error) {
	rev, err := s.authoredReview(ctx, userID, reviewID)
	if err != nil {
		return nil, err
	}

	updates := map[string]any{}
	if in.Rate != nil {
		if !validRate(*in.Rate) {
			return nil, apperr.BadRequest("rate must be between 1 and 5")
		}
		updates["rate"] = *in.Rate
	}
	if in.Content != nil {
		updates["content"] = strings.TrimSpace(*in.Content)
	}
	if in.ReviewImage != nil {
		updates["review_image"] = strings.TrimSpace(*in.ReviewImage)
	}
	if len(updates) == 0 {
		return rev, nil
	}

	if err := s.ReviewRepo.Update(ctx, rev.ID, updates); err != nil {
		return nil, err
	}
	if in.Rate != nil {
		if err := s.refreshRate(ctx, rev.StoreID); err != nil {
			return nil, err
		}
	}
	return s.ReviewRepo.FindByID(ctx, rev.ID)
}

func (s *ReviewService) DeleteReview(ctx context.Context, userID, reviewID uint) error {
	rev, err := s.authoredReview(ctx, userID, reviewID)
	if err != nil {
		return err
	}
	if err := s.ReviewRepo.Delete(ctx, rev.ID); err != nil {
		return err
	}
	return s.refreshRate(ctx, rev.StoreID)
}

func (s *ReviewService) authoredReview(ctx context.Context, userID, reviewID uint) (*entity.Review, error) {
	rev, err := s.GetReview(ctx, reviewID)
	if err != nil {
		return nil, err
	}
	if rev.UserID != userID {
		return nil, apperr.Forbidden("not the author of this review")
	}
	return rev, nil
}

func (s *ReviewService) refreshRate(ctx context.Context, storeID uint) error {
	avg, err := s.ReviewRepo.AverageRate(ctx, storeID)
	if err != nil {
		return err
	}
	if err := s.StoreRepo.UpdateRate(ctx, storeID, avg); err != nil {
		return err
	}
	invalidateRanking(ctx, s.Ranking, s.Log)
	return nil
}
