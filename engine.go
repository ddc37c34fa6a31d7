package notice_sdk

import (
	"log"
	"net/http"
	"sync"

	"github.com/cydxin/notice-sdk/middleware"
	"github.com/cydxin/notice-sdk/service"
	"github.com/gin-gonic/gin"
)

// NoticeEngine SDK 入口：宿主应用持有 gin/数据库/Redis，
// 引擎只负责公告/待办/私信这块的表、service 和 handler。
type NoticeEngine struct {
	config *Config

	AdminService   *service.NoticeAdminService
	ClientService  *service.NoticeClientService
	AllowedService *service.AllowedTypesService
	BacklogService *service.BacklogService
	PrivateService *service.PrivateNoticeService
	AuthService    *service.AuthService
	WsServer       *WsServer
}

var (
	Instance *NoticeEngine
	once     sync.Once
)

// NewEngine 创建实例
// 使用选项模式传入配置，Option回调
func NewEngine(opts ...Option) *NoticeEngine {
	once.Do(func() {
		c := &Config{
			DatetimeFormat: service.DefaultDatetimeFormat,
		}
		for _, opt := range opts {
			opt(c)
		}

		Instance = &NoticeEngine{config: c}

		// 初始化 WS 推送中心
		Instance.WsServer = NewWsServer()
		go Instance.WsServer.Run()

		// 初始化基础 Service，注入 WS 推送回调
		baseService := &service.Service{
			DB:             c.DB,
			RDB:            c.RDB,
			DatetimeFormat: c.DatetimeFormat,
			WsNotifier:     Instance.WsServer.SendToReceiver,
		}

		Instance.AllowedService = service.NewAllowedTypesService(baseService, c.Resolver)
		Instance.AdminService = service.NewNoticeAdminService(baseService)
		Instance.ClientService = service.NewNoticeClientService(baseService, Instance.AllowedService)
		Instance.BacklogService = service.NewBacklogService(baseService)
		Instance.PrivateService = service.NewPrivateNoticeService(baseService)
		Instance.AuthService = service.NewAuthService(c.RDB, c.TokenTTL)

		// 迁移表
		if !c.DisableMigrate {
			if err := Instance.AutoMigrate(); err != nil {
				log.Printf("AutoMigrate failed: %v", err)
			}
		}
	})

	return Instance
}

// GinAuthMiddleware 返回配置好的 Gin 鉴权中间件
// 使用 NoticeEngine 内部的 AuthService 和 Redis 配置
//
// 使用示例:
//
//	engine := notice_sdk.NewEngine(...)
//	api := r.Group("/api/v1/notice")
//	api.Use(engine.GinAuthMiddleware(nil)) // 使用默认配置
//	// 或接宿主自己的登录体系
//	api.Use(engine.GinAuthMiddleware(&middleware.AuthOptions{
//	    IdentityFn: func(c *gin.Context) (string, error) { ... },
//	}))
func (e *NoticeEngine) GinAuthMiddleware(opt *middleware.AuthOptions) gin.HandlerFunc {
	return middleware.GinAuthMiddleware(e.AuthService, opt)
}

// RegisterRoutes 把全部接口挂到一个 RouterGroup 上。
// 更推荐宿主按需自己挂 handler，这里只是省事的默认布局。
func (e *NoticeEngine) RegisterRoutes(g *gin.RouterGroup) {
	admin := g.Group("/admin")
	{
		admin.GET("", e.GinHandleListNotices)
		admin.POST("", e.GinHandleCreateNotice)
		admin.GET("/types", e.GinHandleListNoticeTypes)
		admin.GET("/receiver_types", e.GinHandleListReceiverTypes)
		admin.GET("/:id", e.GinHandleRetrieveNotice)
		admin.PUT("/:id", e.GinHandleUpdateNotice)
		admin.DELETE("/:id", e.GinHandleDeleteNotice)
		admin.PUT("/timing/:id", e.GinHandleRescheduleNotice)
		admin.DELETE("/timing/:id", e.GinHandleCancelTiming)
	}

	client := g.Group("/client")
	{
		client.GET("", e.GinHandleListVisibleNotices)
		client.GET("/:id", e.GinHandleReadNotice)
	}

	backlog := g.Group("/backlog")
	{
		backlog.POST("", e.GinHandleCreateBacklog)
		backlog.GET("", e.GinHandleBacklogStats)
		backlog.GET("/list", e.GinHandleListBacklogs)
		backlog.PUT("/read/:id", e.GinHandleReadBacklog)
		backlog.POST("/handle", e.GinHandleHandleBacklog)
		backlog.POST("/handle_obj", e.GinHandleHandleObject)
	}

	private := g.Group("/private")
	{
		private.POST("", e.GinHandleCreatePrivate)
		private.GET("", e.GinHandleUnreadPrivate)
		private.GET("/list", e.GinHandleListPrivates)
		private.GET("/:id", e.GinHandlePrivateDetail)
		private.PUT("/read/:id", e.GinHandleFinishPrivate)
		private.PUT("/node_status", e.GinHandleChangeNodeStatus)
	}
}

// ServeWS 处理 WebSocket 请求，receiver 必须是宿主鉴权后的接收者标识
func (e *NoticeEngine) ServeWS(w http.ResponseWriter, r *http.Request, receiver string) {
	e.WsServer.ServeWS(w, r, receiver)
}
