package services

import (
	"context"
	"sort"
	"strings"

	"foodorder/entity"
	"foodorder/pkg/apperr"
	"foodorder/repository"

	"github.com/sirupsen/logrus"
)

// MainRepository is the read side used by the browse, search and ranking pages.
type MainRepository interface {
	GetStoreIdsByMenu(ctx context.Context, word string) ([]uint, error)
	GetStoreInfoById(ctx context.Context, storeID uint) (*repository.StoreInfo, error)
	GetAllStores(ctx context.Context) ([]repository.StoreSummary, error)
	GetSortedStores(ctx context.Context, orderKey, orderValue string) ([]repository.StoreSummary, error)
	GetStoresNOrders(ctx context.Context) ([]entity.Store, error)
}

type SearchResult struct {
	StoreID   uint                  `json:"storeId"`
	StoreInfo *repository.StoreInfo `json:"storeInfo"`
}

type StoreRanking struct {
	ID         uint    `json:"id"`
	OwnerID    uint    `json:"ownerId"`
	StoreName  string  `json:"storeName"`
	Category   string  `json:"category"`
	StoreImage string  `json:"storeImage"`
	StoreRate  float64 `json:"storeRate"`
	OrderCount int     `json:"orderCount"`
	Status     string  `json:"status"`
	Sales      int64   `json:"sales"`
}

type MainService struct {
	Repo    MainRepository
	Ranking RankingCache
	Log     logrus.FieldLogger
}

func NewMainService(repo MainRepository, ranking RankingCache, log logrus.FieldLogger) *MainService {
	return &MainService{Repo: repo, Ranking: ranking, Log: log}
}

func (s *MainService) SearchMenu(ctx context.Context, searchWord string) ([]SearchResult, error) {
	word := strings.TrimSpace(searchWord)
	if word == "" {
		return nil, apperr.BadRequest("search word cannot be blank")
	}

	storeIDs, err := s.Repo.GetStoreIdsByMenu(ctx, word)
	if err != nil {
		return nil, err
	}
	if len(storeIDs) == 0 {
		return nil, apperr.NotFound("no search results")
	}

	results := make([]SearchResult, 0, len(storeIDs))
	for _, id := range storeIDs {
		info, err := s.Repo.GetStoreInfoById(ctx, id)
		if err != nil {
			return nil, err
		}
		results = append(results, SearchResult{StoreID: id, StoreInfo: info})
	}
	return results, nil
}

func (s *MainService) GetAllStores(ctx context.Context) ([]repository.StoreSummary, error) {
	return s.Repo.GetAllStores(ctx)
}

func (s *MainService) SortStores(ctx context.Context, orderKey, orderValue string) ([]repository.StoreSummary, error) {
	if orderKey == "" || orderValue == "" {
		return nil, apperr.BadRequest("orderKey and orderValue are required")
	}
	if _, ok := repository.SortColumns[orderKey]; !ok {
		return nil, apperr.BadRequest("orderKey must be one of orderCount, storeRate, storeName, shippingFee, createdAt")
	}
	orderValue = strings.ToLower(orderValue)
	if orderValue != "asc" && orderValue != "desc" {
		return nil, apperr.BadRequest("orderValue must be asc or desc")
	}
	return s.Repo.GetSortedStores(ctx, orderKey, orderValue)
}

// GetStoreRanking ranks stores by the sum of their order totals, highest first.
// Ties keep the repository order.
func (s *MainService) GetStoreRanking(ctx context.Context) ([]StoreRanking, error) {
	if s.Ranking != nil {
		cached, ok, err := s.Ranking.Get(ctx)
		if err != nil {
			s.logger().WithError(err).Warn("ranking cache read failed")
		} else if ok {
			return cached, nil
		}
	}

	stores, err := s.Repo.GetStoresNOrders(ctx)
	if err != nil {
		return nil, err
	}

	ranking := make([]StoreRanking, 0, len(stores))
	for _, st := range stores {
		var sales int64
		for _, o := range st.Orders {
			sales += o.TotalPrice
		}
		ranking = append(ranking, StoreRanking{
			ID:         st.ID,
			OwnerID:    st.OwnerID,
			StoreName:  st.StoreName,
			Category:   st.Category,
			StoreImage: st.StoreImage,
			StoreRate:  st.StoreRate,
			OrderCount: st.OrderCount,
			Status:     st.Status,
			Sales:      sales,
		})
	}
	sort.SliceStable(ranking, func(i, j int) bool { return ranking[i].Sales > ranking[j].Sales })

	if s.Ranking != nil {
		if err := s.Ranking.Set(ctx, ranking); err != nil {
			s.logger().WithError(err).Warn("ranking cache write failed")
		}
	}
	return ranking, nil
}

func (s *MainService) logger() logrus.FieldLogger {
	if s.Log == nil {
		return logrus.StandardLogger()
	}
	return s.Log
}
