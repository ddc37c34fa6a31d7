package service

import (
	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

// DefaultDatetimeFormat 全局时间文案格式（可被 engine 配置覆盖）
const DefaultDatetimeFormat = "2006-01-02 15:04:05"

// Service 基础服务，包含数据库和配置
type Service struct {
	DB  *gorm.DB
	RDB *redis.Client

	// DatetimeFormat 所有时间字段对外渲染/解析用同一个格式
	DatetimeFormat string

	// WsNotifier 用于发送 WebSocket 通知的回调函数
	// 避免循环依赖，通过函数注入的方式；推送尽力而为，失败不影响主流程
	WsNotifier func(receiver string, message []byte)
}

func (s *Service) layout() string {
	if s.DatetimeFormat == "" {
		return DefaultDatetimeFormat
	}
	return s.DatetimeFormat
}

// notify 按接收者推送 WS 消息（未接 WS 时为空操作）
func (s *Service) notify(receiver string, message []byte) {
	if s.WsNotifier == nil || receiver == "" {
		return
	}
	s.WsNotifier(receiver, message)
}

// notDeleted 软删过滤；删除语义是显式的 is_deleted 列，不用 gorm.DeletedAt
func notDeleted(db *gorm.DB) *gorm.DB {
	return db.Where("is_deleted = ?", false)
}

// PageResult 列表接口统一分页结构
type PageResult struct {
	Total   int64       `json:"total"`
	MaxPage int64       `json:"max_page"`
	Page    int         `json:"page"`
	Size    int         `json:"size"`
	Items   interface{} `json:"items"`
}

// newPageResult items 必须传已初始化的切片，保证空页序列化成 [] 而不是 null
func newPageResult(total int64, page, size int, items interface{}) *PageResult {
	maxPage := (total + int64(size) - 1) / int64(size)
	if maxPage < 1 {
		maxPage = 1
	}
	return &PageResult{
		Total:   total,
		MaxPage: maxPage,
		Page:    page,
		Size:    size,
		Items:   items,
	}
}

// pastMaxPage 请求页超出最大页时直接返回空 items，不再发第二条查询
func pastMaxPage(total int64, page, size int) bool {
	maxPage := (total + int64(size) - 1) / int64(size)
	if maxPage < 1 {
		maxPage = 1
	}
	return int64(page) > maxPage
}
