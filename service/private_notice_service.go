package service

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/cydxin/notice-sdk/cons"
	"github.com/cydxin/notice-sdk/models"
	"gorm.io/gorm"
)

// PrivateForm 私信创建表单，按 receivers 扇出
type PrivateForm struct {
	Receivers    []string               `json:"receivers" binding:"required,min=1"`
	Title        string                 `json:"title" binding:"max=64"`
	ObjKey       string                 `json:"obj_key" binding:"max=64"`
	BusinessType string                 `json:"business_type" binding:"max=64"`
	Node         string                 `json:"node" binding:"max=64"`
	Data         map[string]interface{} `json:"data"`
}

// NodeStatusForm 节点完成批量置位：谁的哪个对象的哪个节点
type NodeStatusForm struct {
	ObjKey       string `json:"obj_key" binding:"required,max=64"`
	BusinessType string `json:"business_type" binding:"required,max=64"`
	Node         string `json:"node" binding:"required,max=64"`
}

// PrivateNoticeItem 列表/详情项
type PrivateNoticeItem struct {
	ID           int64                  `json:"id"`
	Creator      string                 `json:"creator"`
	Title        string                 `json:"title"`
	ObjKey       string                 `json:"obj_key"`
	BusinessType string                 `json:"business_type"`
	Node         string                 `json:"node"`
	IsNodeDone   bool                   `json:"is_node_done"`
	Data         map[string]interface{} `json:"data"`
	IsRead       bool                   `json:"is_read"`
	CreatedAt    string                 `json:"created_at"`
}

type PrivateNoticeService struct{ *Service }

func NewPrivateNoticeService(s *Service) *PrivateNoticeService {
	return &PrivateNoticeService{Service: s}
}

// Create 扇出私信，每个 receiver 一行。
func (s *PrivateNoticeService) Create(f *PrivateForm, creator string) ([]int64, error) {
	data, err := marshalData(f.Data)
	if err != nil {
		return nil, err
	}

	rows := make([]models.PrivateNotice, 0, len(f.Receivers))
	for _, receiver := range f.Receivers {
		rows = append(rows, models.PrivateNotice{
			Creator:      creator,
			Receiver:     receiver,
			Title:        f.Title,
			ObjKey:       f.ObjKey,
			BusinessType: f.BusinessType,
			Node:         f.Node,
			Data:         data,
		})
	}
	if err := s.DB.Create(&rows).Error; err != nil {
		return nil, err
	}

	ids := make([]int64, 0, len(rows))
	for i := range rows {
		ids = append(ids, rows[i].ID)
		s.pushEvent(rows[i].Receiver, map[string]interface{}{
			"id":      rows[i].ID,
			"title":   f.Title,
			"obj_key": f.ObjKey,
		})
	}
	return ids, nil
}

// HasUnread 是否存在未读私信。
func (s *PrivateNoticeService) HasUnread(receiver string) (bool, error) {
	var cnt int64
	err := s.DB.Model(&models.PrivateNotice{}).
		Where("receiver = ? AND is_read = ?", receiver, false).
		Count(&cnt).Error
	return cnt > 0, err
}

// List 私信分页列表；title 模糊、可选只看未读。
func (s *PrivateNoticeService) List(receiver string, page, size int, title string, unreadOnly bool) (*PageResult, error) {
	items := make([]PrivateNoticeItem, 0, size)

	q := s.DB.Model(&models.PrivateNotice{}).Where("receiver = ?", receiver)
	if title != "" {
		q = q.Where("title LIKE ?", "%"+title+"%")
	}
	if unreadOnly {
		q = q.Where("is_read = ?", false)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, err
	}
	if pastMaxPage(total, page, size) {
		return newPageResult(total, page, size, items), nil
	}

	var rows []models.PrivateNotice
	if err := q.Order("id DESC").Offset((page - 1) * size).Limit(size).Find(&rows).Error; err != nil {
		return nil, err
	}
	for i := range rows {
		items = append(items, s.toItem(&rows[i]))
	}
	return newPageResult(total, page, size, items), nil
}

// Detail 单条私信。
func (s *PrivateNoticeService) Detail(receiver string, id int64) (*PrivateNoticeItem, error) {
	var n models.PrivateNotice
	err := s.DB.Model(&models.PrivateNotice{}).
		Where("receiver = ? AND id = ?", receiver, id).
		First(&n).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	item := s.toItem(&n)
	return &item, nil
}

// Finish 标记私信已读。
func (s *PrivateNoticeService) Finish(receiver string, id int64) error {
	now := time.Now()
	return s.DB.Model(&models.PrivateNotice{}).
		Where("receiver = ? AND id = ?", receiver, id).
		Updates(map[string]interface{}{"is_read": true, "read_at": now, "updated_at": now}).Error
}

// ChangeNodeStatus 节点完成批量置位。
// 单条 UPDATE ... WHERE，新值不依赖别的行，不需要额外加锁。
func (s *PrivateNoticeService) ChangeNodeStatus(receiver string, f *NodeStatusForm) error {
	return s.DB.Model(&models.PrivateNotice{}).
		Where("receiver = ? AND obj_key = ? AND business_type = ? AND node = ?",
			receiver, f.ObjKey, f.BusinessType, f.Node).
		Updates(map[string]interface{}{"is_node_done": true, "updated_at": time.Now()}).Error
}

func (s *PrivateNoticeService) toItem(n *models.PrivateNotice) PrivateNoticeItem {
	data := map[string]interface{}{}
	if len(n.Data) > 0 {
		_ = json.Unmarshal(n.Data, &data)
	}
	return PrivateNoticeItem{
		ID:           n.ID,
		Creator:      n.Creator,
		Title:        n.Title,
		ObjKey:       n.ObjKey,
		BusinessType: n.BusinessType,
		Node:         n.Node,
		IsNodeDone:   n.IsNodeDone,
		Data:         data,
		IsRead:       n.IsRead,
		CreatedAt:    n.CreatedAt.Format(s.layout()),
	}
}

func (s *PrivateNoticeService) pushEvent(receiver string, payload map[string]interface{}) {
	if s.WsNotifier == nil {
		return
	}
	msg := map[string]interface{}{"type": cons.EventPrivateCreated}
	for k, v := range payload {
		msg[k] = v
	}
	b, err := json.Marshal(msg)
	if err != nil {
		return
	}
	s.notify(receiver, b)
}
