package provider

import (
	"github.com/vitrine-next/internal/cache"
	"github.com/vitrine-next/internal/cart"
	"github.com/vitrine-next/internal/config"
	"github.com/vitrine-next/internal/logger"
	"github.com/vitrine-next/internal/models"
	"github.com/vitrine-next/internal/queue"
	"github.com/vitrine-next/internal/repository"
	"github.com/vitrine-next/internal/service"

	"gorm.io/gorm"
)

// Container 依赖注入容器
type Container struct {
	Config      *config.Config
	QueueClient *queue.Client

	// Repositories
	ProductRepo  repository.ProductRepository
	CartRepo     repository.CartRepository
	WishlistRepo repository.WishlistRepository
	OrderRepo    repository.OrderRepository

	// Cart ports
	CartStore   cart.Store
	CartDrawer  *cache.DrawerState
	CartBackend string

	// Services
	SessionService  *service.SessionService
	CatalogService  *service.CatalogService
	CartService     *service.CartService
	WishlistService *service.WishlistService
	CheckoutService *service.CheckoutService
}

// NewContainer 使用全局数据库初始化容器
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
	return NewContainerWithDB(cfg, models.DB, queueClient)
}

// NewContainerWithDB 使用指定数据库与队列客户端初始化容器
func NewContainerWithDB(cfg *config.Config, db *gorm.DB, queueClient *queue.Client) *Container {
	c := &Container{
		Config:      cfg,
		QueueClient: queueClient,
	}

	// 1. 初始化 Repositories
	c.initRepositories(db)

	// 2. 初始化购物车端口
	c.initCartPorts()

	// 3. 初始化 Services
	c.initServices()

	return c
}

func (c *Container) initRepositories(db *gorm.DB) {
	c.ProductRepo = repository.NewProductRepository(db)
	c.CartRepo = repository.NewCartRepository(db)
	c.WishlistRepo = repository.NewWishlistRepository(db)
	c.OrderRepo = repository.NewOrderRepository(db)
}

// initCartPorts 选择快照存储：配置为 redis 但 Redis 未启用时回退到数据库
func (c *Container) initCartPorts() {
	c.CartDrawer = cache.NewDrawerState(c.Config.Cart.SnapshotTTL())
	switch {
	case c.Config.Cart.Store == config.CartStoreRedis && cache.Enabled():
		c.CartStore = cache.NewCartStore(c.Config.Cart.SnapshotTTL())
		c.CartBackend = config.CartStoreRedis
	default:
		if c.Config.Cart.Store == config.CartStoreRedis {
			logger.Warnw("provider_cart_store_fallback", "configured", config.CartStoreRedis, "using", config.CartStoreSQL)
		}
		c.CartStore = c.CartRepo
		c.CartBackend = config.CartStoreSQL
	}
	logger.Infow("provider_cart_store_selected", "backend", c.CartBackend, "open_on_add", c.Config.Cart.OpenOnAdd)
}

func (c *Container) initServices() {
	c.SessionService = service.NewSessionService(c.Config.Session.SecretKey, c.Config.Session.ExpireDuration())
	c.CatalogService = service.NewCatalogService(c.ProductRepo)
	var ledgerOpts []cart.Option
	if c.Config.Cart.MaxLineQuantity > 0 {
		ledgerOpts = append(ledgerOpts, cart.WithMaxQuantity(c.Config.Cart.MaxLineQuantity))
	}
	c.CartService = service.NewCartService(c.CartStore, c.ProductRepo, service.CartServiceOptions{
		Drawer:    c.CartDrawer,
		OpenOnAdd: c.Config.Cart.OpenOnAdd,
		Ledger:    ledgerOpts,
	})
	c.WishlistService = service.NewWishlistService(c.WishlistRepo, c.ProductRepo, c.CartService)
	c.CheckoutService = service.NewCheckoutService(
		c.CartService,
		c.OrderRepo,
		c.QueueClient,
		c.Config.Order.Currency,
		c.Config.Order.ConfirmDelay(),
	)
}
