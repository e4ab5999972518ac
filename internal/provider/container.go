package provider

import (
	"github.com/petpaw-pos/internal/cache"
	"github.com/petpaw-pos/internal/config"
	"github.com/petpaw-pos/internal/logger"
	"github.com/petpaw-pos/internal/models"
	"github.com/petpaw-pos/internal/queue"
	"github.com/petpaw-pos/internal/repository"
	"github.com/petpaw-pos/internal/service"
)

// Container 依赖注入容器
type Container struct {
	Config      *config.Config
	QueueClient *queue.Client

	// Repositories
	CashierRepo     repository.CashierRepository
	CategoryRepo    repository.CategoryRepository
	ProductRepo     repository.ProductRepository
	CartRepo        repository.CartRepository
	TransactionRepo *repository.GormTransactionRepository
	SettingRepo     repository.SettingRepository
	DashboardRepo   repository.DashboardRepository

	// Services
	AuthService        *service.AuthService
	CaptchaService     *service.CaptchaService
	CategoryService    *service.CategoryService
	ProductService     *service.ProductService
	CartService        *service.CartService
	CheckoutService    *service.CheckoutService
	TransactionService *service.TransactionService
	SettingService     *service.SettingService
	DashboardService   *service.DashboardService
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

	// 1. 初始化 Repositories
	c.initRepositories()

	// 2. 初始化 Services
	c.initServices()

	return c
}

func (c *Container) initRepositories() {
	db := models.DB
	c.CashierRepo = repository.NewCashierRepository(db)
	c.CategoryRepo = repository.NewCategoryRepository(db)
	c.ProductRepo = repository.NewProductRepository(db)
	c.CartRepo = repository.NewCartRepository(db)
	c.TransactionRepo = repository.NewTransactionRepository(db)
	c.SettingRepo = repository.NewSettingRepository(db)
	c.DashboardRepo = repository.NewDashboardRepository(db)
}

func (c *Container) initServices() {
	c.SettingService = service.NewSettingService(c.SettingRepo)

	c.AuthService = service.NewAuthService(c.Config, c.CashierRepo)
	c.CaptchaService = service.NewCaptchaService(c.Config.Captcha)
	c.CategoryService = service.NewCategoryService(c.CategoryRepo)
	c.ProductService = service.NewProductService(c.ProductRepo, c.SettingService, c.Config.POS.LowStockThreshold)
	c.CartService = service.NewCartService(c.CartRepo, c.ProductRepo, c.ProductService)
	c.CheckoutService = service.NewCheckoutService(c.CartRepo, c.ProductRepo, c.TransactionRepo, c.CashierRepo, c.QueueClient)
	c.TransactionService = service.NewTransactionService(c.TransactionRepo, c.ProductRepo)
	c.DashboardService = service.NewDashboardService(c.DashboardRepo, c.SettingService, c.Config.POS.LowStockThreshold)
}
