package main

import (
	"context"
	"log"
	"time"

	notice_sdk "github.com/cydxin/notice-sdk"
	"github.com/cydxin/notice-sdk/service"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// demoResolver 演示用的授权插件：
// 全部公告类型放行；接收者类型只放行 "staff"。
// 注意必须覆盖 names 里的每一个名字，漏判会被驱动侧拒绝服务。
type demoResolver struct{}

func (demoResolver) JudgeNoticeTypes(ctx context.Context, rc service.ReceiverContext, names []string) ([]service.TypeJudgement, error) {
	out := make([]service.TypeJudgement, 0, len(names))
	for _, name := range names {
		out = append(out, service.TypeJudgement{Name: name, Allowed: true})
	}
	return out, nil
}

func (demoResolver) JudgeReceiverTypes(ctx context.Context, rc service.ReceiverContext, names []string) ([]service.TypeJudgement, error) {
	out := make([]service.TypeJudgement, 0, len(names))
	for _, name := range names {
		out = append(out, service.TypeJudgement{Name: name, Allowed: name == "staff"})
	}
	return out, nil
}

func main() {
	// 1. 初始化数据库连接
	dsn := "root:password@tcp(127.0.0.1:3306)/notice_db?charset=utf8mb4&parseTime=True&loc=Local"
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal("数据库连接失败:", err)
	}

	// 2. Redis（Token 认证需要）
	rdb := redis.NewClient(&redis.Options{Addr: "127.0.0.1:6379"})

	// 3. 初始化 Notice Engine（单例模式，全局只需调用一次）
	engine := notice_sdk.NewEngine(
		notice_sdk.WithDB(db),
		notice_sdk.WithRDB(rdb),
		notice_sdk.WithAllowedTypesResolver(demoResolver{}),
		notice_sdk.WithTokenTTL(24*time.Hour),
	)

	// 初始类型目录（已存在则跳过）
	if err := engine.EnsureNoticeTypes([]notice_sdk.TypeSeed{
		{Name: "system", Desc: "系统公告"},
		{Name: "activity", Desc: "活动公告"},
	}); err != nil {
		log.Fatal("初始化公告类型失败:", err)
	}
	if err := engine.EnsureReceiverTypes([]notice_sdk.TypeSeed{
		{Name: "staff", Desc: "内部员工"},
		{Name: "visitor", Desc: "访客"},
	}); err != nil {
		log.Fatal("初始化接收者类型失败:", err)
	}

	// 4. 创建 Gin 路由
	r := gin.Default()

	// 设置 CORS（如果需要）
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	})

	// 注册 Swagger UI
	notice_sdk.RegisterSwagger(r, "/swagger/*any")

	// 5. WebSocket 连接路由
	// 客户端连接：ws://localhost:8080/ws?token=YOUR_TOKEN
	r.GET("/ws", func(c *gin.Context) {
		token := c.Query("token")
		if token == "" {
			c.JSON(400, gin.H{"error": "缺少 token 参数"})
			return
		}

		receiver, err := engine.AuthService.Authenticate(c.Request.Context(), token)
		if err != nil {
			c.JSON(401, gin.H{"error": "token 无效"})
			return
		}

		// 升级为 WebSocket 连接
		engine.ServeWS(c.Writer, c.Request, receiver)
	})

	// 6. API 路由组，挂上 Token 鉴权中间件
	api := r.Group("/api/v1/notice")
	api.Use(engine.GinAuthMiddleware(nil))
	engine.RegisterRoutes(api)

	// 7. 启动服务器
	log.Println("Notice Server 启动在 :8080")
	log.Println("Swagger UI: http://localhost:8080/swagger/index.html")
	log.Println("WebSocket 地址: ws://localhost:8080/ws?token=YOUR_TOKEN")
	if err := r.Run(":8080"); err != nil {
		log.Fatal("服务器启动失败:", err)
	}
}
