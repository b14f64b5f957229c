package routes

import (
	"foodorder/configs"
	"foodorder/controllers"
	"foodorder/entity"
	"foodorder/events"
	"foodorder/middlewares"
	"foodorder/pkg/metrics"
	"foodorder/repository"
	"foodorder/services"
	"foodorder/ws"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Deps are the long-lived collaborators built in main.
type Deps struct {
	DB        *gorm.DB
	Config    *configs.Config
	Log       *logrus.Logger
	Sessions  services.SessionStore
	Ranking   services.RankingCache
	Publisher events.Publisher
	Hub       *ws.OrderHub
	Limiter   *middlewares.RateLimiter
}

func RegisterRoutes(r *gin.Engine, d Deps) error {
	cfg := d.Config
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}

	r.Use(
		middlewares.RequestLogger(d.Log),
		middlewares.CORSMiddleware(cfg.CORSOrigins),
		middlewares.Metrics(),
		middlewares.ErrorHandler(d.Log),
	)

	// Repositories
	userRepo := repository.NewUserRepository(d.DB)
	storeRepo := repository.NewStoreRepository(d.DB)
	menuRepo := repository.NewMenuRepository(d.DB)
	cartRepo := repository.NewCartRepository(d.DB)
	orderRepo := repository.NewOrderRepository(d.DB)
	reviewRepo := repository.NewReviewRepository(d.DB)
	mainRepo := repository.NewMainRepository(d.DB)

	// Services
	userSvc := services.NewUserService(userRepo, d.Sessions, services.TokenConfig{
		AccessSecret:  cfg.AccessSecret,
		RefreshSecret: cfg.RefreshSecret,
		AccessTTL:     cfg.AccessTTL,
		RefreshTTL:    cfg.RefreshTTL,
	}, cfg.DefaultPoint)
	storeSvc := services.NewStoreService(storeRepo, d.Ranking, d.Log)
	menuSvc := services.NewMenuService(menuRepo, storeSvc)
	cartSvc := services.NewCartService(cartRepo, menuRepo, storeRepo)
	orderSvc := services.NewOrderService(d.DB, orderRepo, cartRepo, menuRepo, storeRepo, userRepo, d.Publisher, d.Ranking, d.Log)
	reviewSvc := services.NewReviewService(reviewRepo, orderRepo, storeRepo, d.Ranking, d.Log)
	mainSvc := services.NewMainService(mainRepo, d.Ranking, d.Log)

	// Controllers
	healthCtrl := controllers.NewHealthController(sqlDB)
	userCtrl := controllers.NewUserController(userSvc)
	storeCtrl := controllers.NewStoreController(storeSvc)
	menuCtrl := controllers.NewMenuController(menuSvc)
	cartCtrl := controllers.NewCartController(cartSvc)
	orderCtrl := controllers.NewOrderController(orderSvc)
	reviewCtrl := controllers.NewReviewController(reviewSvc)
	mainCtrl := controllers.NewMainController(mainSvc)

	limit := d.Limiter.Handler()
	anyUser := middlewares.AuthMiddleware(cfg.AccessSecret, userSvc)
	owner := middlewares.AuthMiddleware(cfg.AccessSecret, userSvc, entity.RoleOwner)
	customer := middlewares.AuthMiddleware(cfg.AccessSecret, userSvc, entity.RoleCustomer)

	// Operational
	r.GET("/health", healthCtrl.Health)
	r.GET("/ready", healthCtrl.Ready)
	r.GET("/metrics", gin.WrapH(metrics.Handler()))
	r.GET("/ws/orders", middlewares.WSAuthMiddleware(cfg.AccessSecret, userSvc), d.Hub.HandleWebSocket)

	// Public
	pub := r.Group("/", limit)
	{
		pub.POST("/sign-up", userCtrl.SignUp)
		pub.POST("/sign-in", userCtrl.SignIn)
		pub.POST("/token/refresh", userCtrl.Refresh)

		pub.GET("/stores", storeCtrl.List)
		pub.GET("/stores/:storeId", storeCtrl.Get)
		pub.GET("/stores/:storeId/menus", menuCtrl.List)
		pub.GET("/stores/:storeId/reviews", reviewCtrl.ListByStore)
		pub.GET("/menus/:menuId", menuCtrl.Get)
		pub.GET("/reviews/:reviewId", reviewCtrl.Get)

		pub.GET("/main/search", mainCtrl.Search)
		pub.GET("/main/stores", mainCtrl.Stores)
		pub.GET("/main/sort", mainCtrl.Sort)
		pub.GET("/main/ranking", mainCtrl.Ranking)
	}

	// Any signed-in user
	u := r.Group("/", anyUser, limit)
	{
		u.POST("/sign-out", userCtrl.SignOut)
		u.GET("/user", userCtrl.GetProfile)
		u.PATCH("/user", userCtrl.UpdateProfile)
		u.POST("/user/point", userCtrl.ChargePoint)
		u.GET("/user/order", orderCtrl.List)
		u.GET("/user/reviews", reviewCtrl.Mine)
		u.PATCH("/reviews/:reviewId", reviewCtrl.Update)
		u.DELETE("/reviews/:reviewId", reviewCtrl.Delete)
	}

	// Store owners
	o := r.Group("/", owner, limit)
	{
		o.POST("/stores", storeCtrl.Create)
		o.PATCH("/stores/:storeId", storeCtrl.Update)
		o.DELETE("/stores/:storeId", storeCtrl.Delete)
		o.GET("/user/store", storeCtrl.Mine)
		o.POST("/stores/:storeId/menus", menuCtrl.Create)
		o.PATCH("/menus/:menuId", menuCtrl.Update)
		o.DELETE("/menus/:menuId", menuCtrl.Delete)
		o.PATCH("/user/order/:orderId", orderCtrl.UpdateStatus)
	}

	// Customers
	cu := r.Group("/", customer, limit)
	{
		cu.GET("/user/cart", cartCtrl.Get)
		cu.POST("/user/cart", cartCtrl.Add)
		cu.DELETE("/user/cart", cartCtrl.Clear)
		cu.PATCH("/user/cart/:cartId", cartCtrl.UpdateQuantity)
		cu.DELETE("/user/cart/:cartId", cartCtrl.Remove)
		cu.POST("/user/cart/order", orderCtrl.CreateFromCart)
		cu.POST("/menus/:menuId/order", orderCtrl.CreateFromMenu)
		cu.POST("/stores/:storeId/reviews", reviewCtrl.Create)
	}

	return nil
}
