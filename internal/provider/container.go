package provider

import (
	"time"

	"github.com/mallhub-next/internal/authz"
	"github.com/mallhub-next/internal/cache"
	"github.com/mallhub-next/internal/cart"
	"github.com/mallhub-next/internal/config"
	"github.com/mallhub-next/internal/logger"
	"github.com/mallhub-next/internal/models"
	"github.com/mallhub-next/internal/queue"
	"github.com/mallhub-next/internal/repository"
	"github.com/mallhub-next/internal/service"
)

// Container 依赖注入容器
type Container struct {
	Config      *config.Config
	QueueClient *queue.Client
	CartStore   cart.Store

	// Repositories
	UserRepo            repository.UserRepository
	TenantRepo          repository.TenantRepository
	CustomerProfileRepo repository.CustomerProfileRepository
	ProductRepo         repository.ProductRepository
	OrderRepo           repository.OrderRepository
	WishlistRepo        repository.WishlistRepository
	UserLoginLogRepo    repository.UserLoginLogRepository
	DashboardRepo       repository.DashboardRepository

	// Services
	AuthzService     *authz.Service
	AuthService      *service.AuthService
	CartService      *service.CartService
	CheckoutService  *service.CheckoutService
	OrderService     *service.OrderService
	LoyaltyService   *service.LoyaltyService
	WishlistService  *service.WishlistService
	ProductService   *service.ProductService
	TenantService    *service.TenantService
	DashboardService *service.DashboardService
}

// NewContainer 初始化容器
func NewContainer(cfg *config.Config) *Container {
	// 初始化缓存
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	// 初始化队列客户端
	var queueClient *queue.Client
	if cfg.Queue.Enabled {
		qc, err := queue.NewClient(&cfg.Queue)
		if err != nil {
			logger.Errorw("provider_init_queue_client_failed", "error", err)
		} else {
			queueClient = qc
		}
	}

	c := &Container{
		Config:      cfg,
		QueueClient: queueClient,
	}

	// 1. 初始化购物车存储
	c.initCartStore()

	// 2. 初始化 Repositories
	c.initRepositories()

	// 3. 初始化 Services
	c.initServices()

	return c
}

// initCartStore 会话购物车：Redis 可用时落 Redis，否则用进程内存储
func (c *Container) initCartStore() {
	ttl := time.Duration(c.Config.Cart.TTLMinutes) * time.Minute
	if cache.Enabled() {
		c.CartStore = cart.NewRedisStore(ttl)
		return
	}
	logger.Warnw("provider_cart_store_fallback_memory", "reason", "redis disabled")
	c.CartStore = cart.NewMemoryStore(ttl)
}

func (c *Container) initRepositories() {
	db := models.DB
	c.UserRepo = repository.NewUserRepository(db)
	c.TenantRepo = repository.NewTenantRepository(db)
	c.CustomerProfileRepo = repository.NewCustomerProfileRepository(db)
	c.ProductRepo = repository.NewProductRepository(db)
	c.OrderRepo = repository.NewOrderRepository(db)
	c.WishlistRepo = repository.NewWishlistRepository(db)
	c.UserLoginLogRepo = repository.NewUserLoginLogRepository(db)
	c.DashboardRepo = repository.NewDashboardRepository(db)
}

func (c *Container) initServices() {
	authzService, err := authz.NewService(models.DB)
	if err != nil {
		logger.Errorw("provider_init_authz_failed", "error", err)
		panic(err)
	}
	c.AuthzService = authzService
	if err := c.AuthzService.BootstrapBuiltinRoles(); err != nil {
		logger.Errorw("provider_bootstrap_builtin_roles_failed", "error", err)
		panic(err)
	}

	c.AuthService = service.NewAuthService(c.Config, c.UserRepo, c.TenantRepo, c.CustomerProfileRepo, c.UserLoginLogRepo)
	c.CartService = service.NewCartService(c.CartStore, c.ProductRepo)
	c.LoyaltyService = service.NewLoyaltyService(c.CustomerProfileRepo, c.OrderRepo, c.TenantRepo)
	c.CheckoutService = service.NewCheckoutService(c.Config, c.CartService, c.CartStore, c.ProductRepo, c.OrderRepo, c.QueueClient)
	c.OrderService = service.NewOrderService(c.OrderRepo, c.TenantRepo, c.LoyaltyService, c.QueueClient)
	c.WishlistService = service.NewWishlistService(c.WishlistRepo, c.ProductRepo)
	c.ProductService = service.NewProductService(c.ProductRepo, c.TenantRepo)
	c.TenantService = service.NewTenantService(c.TenantRepo, c.ProductRepo, c.OrderRepo, c.UserRepo)
	c.DashboardService = service.NewDashboardService(c.DashboardRepo, c.TenantRepo, c.UserRepo)
}
