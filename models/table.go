package models

import (
	"time"

	"gorm.io/datatypes"
)

const (
	prefix = "notice_"
)

// NoticeType 公告类型字典表
type NoticeType struct {
	ID        int64  `gorm:"primarykey"`
	Name      string `gorm:"size:64;not null"`  // 类型名（resolver 按名字逐个判定）
	Desc      string `gorm:"size:256;not null"` // 描述（对外展示）
	CreatedAt time.Time
	UpdatedAt time.Time
	IsDeleted bool `gorm:"default:false;index"`
}

func (NoticeType) TableName() string {
	return prefix + "type"
}

// ReceiverType 接收者类型字典表
type ReceiverType struct {
	ID        int64  `gorm:"primarykey"`
	Name      string `gorm:"size:64;not null"`
	Desc      string `gorm:"size:256;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
	IsDeleted bool `gorm:"default:false;index"`
}

func (ReceiverType) TableName() string {
	return prefix + "receiver_type"
}

// 公告状态（不落库，由 is_draft + publish_at 实时推导）
type NoticeStatus string

const (
	StatusDraft NoticeStatus = "draft" // 草稿
	StatusQueue NoticeStatus = "queue" // 定时待发布
	StatusDone  NoticeStatus = "done"  // 已发布
)

// StatusLabel 状态对外展示文案
var StatusLabel = map[NoticeStatus]string{
	StatusDraft: "Draft",
	StatusQueue: "Queue",
	StatusDone:  "Done",
}

// NoticeStore 广播公告表
// 状态不单独存一列：is_draft + publish_at 对照当前时间即可确定，
// 定时公告到点"自动"发布，不需要任何后台任务。
type NoticeStore struct {
	ID              int64                      `gorm:"primarykey"`
	Title           string                     `gorm:"size:64"`
	Content         string                     `gorm:"type:text"`
	NoticeTypeID    int64                      `gorm:"index;not null"` // 公告类型
	ReceiverTypeIDs datatypes.JSONSlice[int64] `gorm:"type:json"`     // 可见的接收者类型（数组，查询用 JSON_OVERLAPS）
	IsDraft         bool                       `gorm:"default:true"`
	CreatorID       int64                      `gorm:"index;not null"`
	PublishAt       *time.Time                 // 发布时间；草稿为 NULL
	CreatedAt       time.Time
	UpdatedAt       time.Time
	IsDeleted       bool `gorm:"default:false;index"`

	NoticeType NoticeType `gorm:"foreignKey:NoticeTypeID"`
}

func (NoticeStore) TableName() string {
	return prefix + "store"
}

// Status 推导公告状态。
// 约定：is_draft=true 时 publish_at 一定是 NULL；非草稿时 publish_at 一定有值。
func (n *NoticeStore) Status(now time.Time) NoticeStatus {
	if n.IsDraft {
		return StatusDraft
	}
	if n.PublishAt != nil && n.PublishAt.After(now) {
		return StatusQueue
	}
	return StatusDone
}

// PublishedAt 已发布公告的发布时间文案；未发布（草稿/排队中）返回空串。
func (n *NoticeStore) PublishedAt(now time.Time, layout string) string {
	if n.Status(now) != StatusDone || n.PublishAt == nil {
		return ""
	}
	return n.PublishAt.Format(layout)
}

// ReceiverTag 公告已读标记表
// 每个 (公告, 接收者) 至多一条，首次阅读时懒创建；
// 并发首读靠唯一索引 + ON CONFLICT DO NOTHING 幂等。
type ReceiverTag struct {
	ID            int64     `gorm:"primarykey"`
	NoticeStoreID int64     `gorm:"not null;uniqueIndex:idx_notice_receiver"`
	ReceiverID    int64     `gorm:"not null;uniqueIndex:idx_notice_receiver"`
	ReadAt        time.Time `gorm:"not null"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (ReceiverTag) TableName() string {
	return prefix + "receiver_tag"
}

// Backlog 待办表
// 一个流程节点按接收者扇出成 N 行，batch 相同；
// handlers / is_done / data 属于整个 batch，只允许经 HandleBatch 整组改写。
type Backlog struct {
	ID            int64  `gorm:"primarykey"`
	Batch         string `gorm:"size:64;index"` // 同一流程节点的分组标识
	Receiver      string `gorm:"size:64;index"`
	Creator       string `gorm:"size:64"`
	Title         string `gorm:"size:64"`
	Initiator     string `gorm:"size:64"`
	InitiatorName string `gorm:"size:64"`
	InitiatedAt   *time.Time

	ObjKey    string `gorm:"size:64;index"` // 业务对象标识
	ObjName   string `gorm:"size:64"`
	ObjStatus string `gorm:"size:64"` // 业务对象的流程状态

	Handlers   datatypes.JSONSlice[string] `gorm:"type:json"` // 已处理人（整个 batch 共享）
	Candidates datatypes.JSONSlice[string] `gorm:"type:json"` // 候选处理人
	Data       datatypes.JSON              `gorm:"type:json"` // 业务附加数据

	ObjAssociatedData     string `gorm:"size:64"`
	ObjAssociatedDataType string `gorm:"size:64"`
	Company               string `gorm:"size:64"`
	CompanyType           string `gorm:"size:64"`

	IsDone bool `gorm:"default:false;index"`
	DoneAt *time.Time
	IsRead bool `gorm:"default:false"`
	ReadAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
	IsDeleted bool `gorm:"default:false;index"`
}

func (Backlog) TableName() string {
	return prefix + "backlog"
}

// PrivateNotice 私信表（点对点，挂在业务对象 + 流程节点上）
type PrivateNotice struct {
	ID           int64          `gorm:"primarykey"`
	Creator      string         `gorm:"size:64"`
	Receiver     string         `gorm:"size:64;uniqueIndex:idx_private_obj"`
	Title        string         `gorm:"size:64;uniqueIndex:idx_private_obj"`
	ObjKey       string         `gorm:"size:64;uniqueIndex:idx_private_obj"`
	BusinessType string         `gorm:"size:64;uniqueIndex:idx_private_obj"`
	Node         string         `gorm:"size:64"`       // 流程节点
	IsNodeDone   bool           `gorm:"default:false"` // 节点是否完成（按对象批量置位）
	Data         datatypes.JSON `gorm:"type:json"`

	IsRead bool `gorm:"default:false"`
	ReadAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (PrivateNotice) TableName() string {
	return prefix + "private"
}
