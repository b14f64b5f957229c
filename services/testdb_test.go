package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"foodorder/configs"
	"foodorder/entity"
	"foodorder/events"
	"foodorder/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type eventRecorder struct {
	mu  sync.Mutex
	got []events.OrderEvent
	err error
}

func (r *eventRecorder) Publish(_ context.Context, evt events.OrderEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.got = append(r.got, evt)
	return r.err
}

func (r *eventRecorder) events() []events.OrderEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]events.OrderEvent(nil), r.got...)
}

type fixture struct {
	db       *gorm.DB
	users    *repository.UserRepository
	stores   *repository.StoreRepository
	menus    *repository.MenuRepository
	carts    *repository.CartRepository
	orders   *repository.OrderRepository
	reviews  *repository.ReviewRepository
	sessions *MemorySessionStore
	ranking  *MemoryRankingCache
	events   *eventRecorder
	logHook  *test.Hook

	userSvc   *UserService
	storeSvc  *StoreService
	menuSvc   *MenuService
	cartSvc   *CartService
	orderSvc  *OrderService
	reviewSvc *ReviewService
}

const testDefaultPoint = 1000000

func newFixture(t *testing.T) *fixture {
	t.Helper()
	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, configs.SetupDatabase(db))

	log, hook := test.NewNullLogger()
	log.SetLevel(logrus.DebugLevel)

	f := &fixture{
		db:       db,
		users:    repository.NewUserRepository(db),
		stores:   repository.NewStoreRepository(db),
		menus:    repository.NewMenuRepository(db),
		carts:    repository.NewCartRepository(db),
		orders:   repository.NewOrderRepository(db),
		reviews:  repository.NewReviewRepository(db),
		sessions: NewMemorySessionStore(),
		ranking:  NewMemoryRankingCache(time.Minute),
		events:   &eventRecorder{},
		logHook:  hook,
	}
	f.userSvc = NewUserService(f.users, f.sessions, TokenConfig{
		AccessSecret:  "access-secret",
		RefreshSecret: "refresh-secret",
		AccessTTL:     time.Hour,
		RefreshTTL:    24 * time.Hour,
	}, testDefaultPoint)
	f.storeSvc = NewStoreService(f.stores, f.ranking, log)
	f.menuSvc = NewMenuService(f.menus, f.storeSvc)
	f.cartSvc = NewCartService(f.carts, f.menus, f.stores)
	f.orderSvc = NewOrderService(db, f.orders, f.carts, f.menus, f.stores, f.users, f.events, f.ranking, log)
	f.reviewSvc = NewReviewService(f.reviews, f.orders, f.stores, f.ranking, log)
	return f
}

func (f *fixture) customer(t *testing.T, email, address string, point int64) *entity.User {
	t.Helper()
	u := &entity.User{Email: &email, Role: entity.RoleCustomer, Address: address, Point: point}
	require.NoError(t, f.db.Create(u).Error)
	return u
}

func (f *fixture) owner(t *testing.T, email string) *entity.User {
	t.Helper()
	u := &entity.User{Email: &email, Role: entity.RoleOwner}
	require.NoError(t, f.db.Create(u).Error)
	return u
}

func (f *fixture) store(t *testing.T, owner *entity.User, name string, fee int64) *entity.Store {
	t.Helper()
	st := &entity.Store{
		OwnerID: owner.ID, StoreName: name, Category: entity.CategoryChicken,
		StoreAddress: "Seoul", Status: entity.StoreAvailable, ShippingFee: fee,
	}
	require.NoError(t, f.db.Create(st).Error)
	return st
}

func (f *fixture) menu(t *testing.T, store *entity.Store, name string, price int64) *entity.Menu {
	t.Helper()
	m := &entity.Menu{StoreID: store.ID, MenuName: name, Price: price, Status: entity.MenuForSale}
	require.NoError(t, f.db.Create(m).Error)
	return m
}

func (f *fixture) reloadUser(t *testing.T, id uint) *entity.User {
	t.Helper()
	u, err := f.users.FindByID(context.Background(), id)
	require.NoError(t, err)
	return u
}

func (f *fixture) reloadStore(t *testing.T, id uint) *entity.Store {
	t.Helper()
	st, err := f.stores.FindByID(context.Background(), id)
	require.NoError(t, err)
	return st
}
