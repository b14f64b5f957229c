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

type StoreService struct {
	Repo    *repository.StoreRepository
	Ranking RankingCache
	Log     logrus.FieldLogger
}

func NewStoreService(repo *repository.StoreRepository, ranking RankingCache, log logrus.FieldLogger) *StoreService {
	return &StoreService{Repo: repo, Ranking: ranking, Log: log}
}

type StoreInput struct {
	StoreName    string `json:"storeName"`
	Category     string `json:"category"`
	StoreImage   string `json:"storeImage"`
	StoreIntro   string `json:"storeIntro"`
	StoreAddress string `json:"storeAddress"`
	StorePhone   string `json:"storePhone"`
	ShippingFee  int64  `json:"shippingFee"`
}

type StoreUpdate struct {
	StoreName    *string `json:"storeName"`
	Category     *string `json:"category"`
	StoreImage   *string `json:"storeImage"`
	StoreIntro   *string `json:"storeIntro"`
	StoreAddress *string `json:"storeAddress"`
	StorePhone   *string `json:"storePhone"`
	ShippingFee  *int64  `json:"shippingFee"`
	Status       *string `json:"status"`
}

func (s *StoreService) CreateStore(ctx context.Context, ownerID uint, in StoreInput) (*entity.Store, error) {
	name := strings.TrimSpace(in.StoreName)
	address := strings.TrimSpace(in.StoreAddress)
	category := strings.ToUpper(strings.TrimSpace(in.Category))
	switch {
	case name == "":
		return nil, apperr.BadRequest("storeName is required")
	case address == "":
		return nil, apperr.BadRequest("storeAddress is required")
	case !entity.ValidStoreCategory(category):
		return nil, apperr.BadRequest("invalid category")
	case in.ShippingFee < 0:
		return nil, apperr.BadRequest("shippingFee cannot be negative")
	}

	n, err := s.Repo.CountByOwnerID(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if n > 0 {
		return nil, apperr.Conflict("store already exists for this owner")
	}

	store := &entity.Store{
		OwnerID:      ownerID,
		StoreName:    name,
		Category:     category,
		StoreImage:   strings.TrimSpace(in.StoreImage),
		StoreIntro:   strings.TrimSpace(in.StoreIntro),
		StoreAddress: address,
		StorePhone:   strings.TrimSpace(in.StorePhone),
		ShippingFee:  in.ShippingFee,
		Status:       entity.StoreAvailable,
	}
	if err := s.Repo.Create(ctx, store); err != nil {
		return nil, err
	}
	return store, nil
}

func (s *StoreService) GetStore(ctx context.Context, storeID uint) (*entity.Store, error) {
	st, err := s.Repo.FindByID(ctx, storeID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("store not found")
	}
	return st, err
}

func (s *StoreService) GetMyStore(ctx context.Context, ownerID uint) (*entity.Store, error) {
	st, err := s.Repo.FindByOwnerID(ctx, ownerID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("store not found")
	}
	return st, err
}

func (s *StoreService) ListStores(ctx context.Context) ([]entity.Store, error) {
	return s.Repo.FindAll(ctx)
}

func (s *StoreService) UpdateStore(ctx context.Context, ownerID, storeID uint, in StoreUpdate) (*entity.Store, error) {
	if err := s.checkOwner(ctx, ownerID, storeID); err != nil {
		return nil, err
	}

	updates := map[string]any{}
	if in.StoreName != nil {
		name := strings.TrimSpace(*in.StoreName)
		if name == "" {
			return nil, apperr.BadRequest("storeName is required")
		}
		updates["store_name"] = name
	}
	if in.Category != nil {
		c := strings.ToUpper(strings.TrimSpace(*in.Category))
		if !entity.ValidStoreCategory(c) {
			return nil, apperr.BadRequest("invalid category")
		}
		updates["category"] = c
	}
	if in.Status != nil {
		st := strings.ToUpper(strings.TrimSpace(*in.Status))
		if !entity.ValidStoreStatus(st) {
			return nil, apperr.BadRequest("invalid status")
		}
		updates["status"] = st
	}
	if in.StoreAddress != nil {
		addr := strings.TrimSpace(*in.StoreAddress)
		if addr == "" {
			return nil, apperr.BadRequest("storeAddress is required")
		}
		updates["store_address"] = addr
	}
	if in.ShippingFee != nil {
		if *in.ShippingFee < 0 {
			return nil, apperr.BadRequest("shippingFee cannot be negative")
		}
		updates["shipping_fee"] = *in.ShippingFee
	}
	if in.StoreImage != nil {
		updates["store_image"] = strings.TrimSpace(*in.StoreImage)
	}
	if in.StoreIntro != nil {
		updates["store_intro"] = strings.TrimSpace(*in.StoreIntro)
	}
	if in.StorePhone != nil {
		updates["store_phone"] = strings.TrimSpace(*in.StorePhone)
	}

	if len(updates) > 0 {
		if err := s.Repo.Update(ctx, storeID, updates); err != nil {
			return nil, err
		}
		invalidateRanking(ctx, s.Ranking, s.Log)
	}
	return s.Repo.FindByID(ctx, storeID)
}

func (s *StoreService) DeleteStore(ctx context.Context, ownerID, storeID uint) error {
	if err := s.checkOwner(ctx, ownerID, storeID); err != nil {
		return err
	}
	if err := s.Repo.Delete(ctx, storeID); err != nil {
		return err
	}
	invalidateRanking(ctx, s.Ranking, s.Log)
	return nil
}

// checkOwner returns not found for a missing store and forbidden for someone else's.
func (s *StoreService) checkOwner(ctx context.Context, ownerID, storeID uint) error {
	st, err := s.Repo.FindByID(ctx, storeID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.NotFound("store not found")
	}
	if err != nil {
		return err
	}
	if st.OwnerID != ownerID {
		return apperr.Forbidden("not the owner of this store")
	}
	return nil
}
