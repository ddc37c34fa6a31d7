package service

import (
	"errors"
	"time"

	"github.com/cydxin/notice-sdk/cons"
	"github.com/cydxin/notice-sdk/models"
	"github.com/cydxin/notice-sdk/response"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// NoticeForm 公告创建/编辑表单
// send_way: no=存草稿 now=立即发布 timing=定时发布（publish_at 必填且必须在未来）
type NoticeForm struct {
	Title           string  `json:"title" binding:"max=64"`
	Content         string  `json:"content"`
	TypeID          int64   `json:"type_id"`
	ReceiverTypeIDs []int64 `json:"receiver_type_ids"`
	SendWay         string  `json:"send_way" binding:"required"`
	PublishAt       string  `json:"publish_at"`
}

// ChangeTimingForm 调整定时发布时间
type ChangeTimingForm struct {
	PublishAt string `json:"publish_at" binding:"required"`
}

// AdminNoticeItem 管理端列表项
type AdminNoticeItem struct {
	ID        int64  `json:"id"`
	Title     string `json:"title"`
	CreatedAt string `json:"created_at"`
	PublishAt string `json:"publish_at"`
	Type      string `json:"type"`
	Status    string `json:"status"`
}

// AdminNoticeDetail 管理端/客户端公告详情
// publish_at 只在真正发布后才有值
type AdminNoticeDetail struct {
	ID        int64  `json:"id"`
	Title     string `json:"title"`
	Content   string `json:"content"`
	PublishAt string `json:"publish_at"`
}

// TypeItem 类型字典项
type TypeItem struct {
	ID   int64  `json:"id"`
	Desc string `json:"desc"`
}

type NoticeAdminService struct{ *Service }

func NewNoticeAdminService(s *Service) *NoticeAdminService { return &NoticeAdminService{Service: s} }

// cleanForm 校验表单并按 send_way 算出 (is_draft, publish_at)。
// 所有校验都在写库之前完成。
func (s *NoticeAdminService) cleanForm(f *NoticeForm) (isDraft bool, publishAt *time.Time, err error) {
	if f.TypeID <= 0 {
		return false, nil, invalid(response.DetailInvalidNoticeType)
	}
	var cnt int64
	if err := notDeleted(s.DB.Model(&models.NoticeType{})).
		Where("id = ?", f.TypeID).Count(&cnt).Error; err != nil {
		return false, nil, err
	}
	if cnt == 0 {
		return false, nil, invalid(response.DetailInvalidNoticeType)
	}

	if len(f.ReceiverTypeIDs) > 0 {
		var got int64
		if err := notDeleted(s.DB.Model(&models.ReceiverType{})).
			Where("id IN ?", f.ReceiverTypeIDs).Count(&got).Error; err != nil {
			return false, nil, err
		}
		if got != int64(len(dedupIDs(f.ReceiverTypeIDs))) {
			return false, nil, invalid(response.DetailInvalidReceiverType)
		}
	}

	switch f.SendWay {
	case cons.SendWayNo:
		return true, nil, nil
	case cons.SendWayNow:
		now := time.Now()
		return false, &now, nil
	case cons.SendWayTiming:
		if f.PublishAt == "" {
			return false, nil, invalid(response.DetailInvalidSendWay)
		}
		at, err := time.ParseInLocation(s.layout(), f.PublishAt, time.Local)
		if err != nil {
			return false, nil, invalid(response.DetailInvalidPublishTime)
		}
		if !at.After(time.Now()) {
			return false, nil, invalid(response.DetailOutdate)
		}
		return false, &at, nil
	default:
		return false, nil, invalid(response.DetailInvalidSendWay)
	}
}

// Create 新建公告，按 send_way 直接落为草稿/排队/已发布。
func (s *NoticeAdminService) Create(f *NoticeForm, creatorID int64) (int64, error) {
	isDraft, publishAt, err := s.cleanForm(f)
	if err != nil {
		return 0, err
	}

	n := &models.NoticeStore{
		Title:           f.Title,
		Content:         f.Content,
		NoticeTypeID:    f.TypeID,
		ReceiverTypeIDs: datatypes.NewJSONSlice(f.ReceiverTypeIDs),
		IsDraft:         isDraft,
		CreatorID:       creatorID,
		PublishAt:       publishAt,
	}
	if err := s.DB.Create(n).Error; err != nil {
		return 0, err
	}
	return n.ID, nil
}

// Update 编辑公告，仅草稿可改；send_way 规则与创建一致，
// 所以一次编辑可以把草稿原地发布或转成定时。
func (s *NoticeAdminService) Update(id int64, f *NoticeForm) error {
	n, err := s.getNotice(id)
	if err != nil {
		return err
	}
	if n.Status(time.Now()) != models.StatusDraft {
		return invalid(response.DetailChangeNotDraft)
	}

	isDraft, publishAt, err := s.cleanForm(f)
	if err != nil {
		return err
	}

	updates := map[string]interface{}{
		"title":             f.Title,
		"content":           f.Content,
		"notice_type_id":    f.TypeID,
		"receiver_type_ids": datatypes.NewJSONSlice(f.ReceiverTypeIDs),
		"is_draft":          isDraft,
		"publish_at":        publishAt,
		"updated_at":        time.Now(),
	}
	return s.DB.Model(&models.NoticeStore{}).Where("id = ?", id).Updates(updates).Error
}

// Delete 软删公告，仅草稿可删。
func (s *NoticeAdminService) Delete(id int64) error {
	n, err := s.getNotice(id)
	if err != nil {
		return err
	}
	if n.Status(time.Now()) != models.StatusDraft {
		return invalid(response.DetailDeleteNotDraft)
	}
	return s.DB.Model(&models.NoticeStore{}).Where("id = ?", id).
		Updates(map[string]interface{}{"is_deleted": true, "updated_at": time.Now()}).Error
}

// Reschedule 调整定时发布时间，仅排队中的公告可调。
func (s *NoticeAdminService) Reschedule(id int64, f *ChangeTimingForm) error {
	n, err := s.getNotice(id)
	if err != nil {
		return err
	}
	switch n.Status(time.Now()) {
	case models.StatusDraft:
		return invalid(response.DetailChangeDraftTiming)
	case models.StatusDone:
		return invalid(response.DetailChangePublished)
	}

	at, err := time.ParseInLocation(s.layout(), f.PublishAt, time.Local)
	if err != nil {
		return invalid(response.DetailInvalidPublishTime)
	}
	if !at.After(time.Now()) {
		return invalid(response.DetailOutdate)
	}
	return s.DB.Model(&models.NoticeStore{}).Where("id = ?", id).
		Updates(map[string]interface{}{"publish_at": at, "updated_at": time.Now()}).Error
}

// CancelTiming 取消定时发送，公告退回草稿。
func (s *NoticeAdminService) CancelTiming(id int64) error {
	n, err := s.getNotice(id)
	if err != nil {
		return err
	}
	switch n.Status(time.Now()) {
	case models.StatusDraft:
		return invalid(response.DetailDeleteDraftTiming)
	case models.StatusDone:
		return invalid(response.DetailChangePublished)
	}
	return s.DB.Model(&models.NoticeStore{}).Where("id = ?", id).
		Updates(map[string]interface{}{"is_draft": true, "publish_at": nil, "updated_at": time.Now()}).Error
}

// List 管理端分页列表（含草稿），新的在前。
func (s *NoticeAdminService) List(page, size int) (*PageResult, error) {
	items := make([]AdminNoticeItem, 0, size)

	var total int64
	if err := notDeleted(s.DB.Model(&models.NoticeStore{})).Count(&total).Error; err != nil {
		return nil, err
	}
	if pastMaxPage(total, page, size) {
		return newPageResult(total, page, size, items), nil
	}

	var rows []models.NoticeStore
	if err := notDeleted(s.DB.Model(&models.NoticeStore{})).
		Preload("NoticeType").
		Order("id DESC").
		Offset((page - 1) * size).Limit(size).
		Find(&rows).Error; err != nil {
		return nil, err
	}

	now := time.Now()
	for i := range rows {
		n := &rows[i]
		publishAt := ""
		if n.PublishAt != nil {
			publishAt = n.PublishAt.Format(s.layout())
		}
		items = append(items, AdminNoticeItem{
			ID:        n.ID,
			Title:     n.Title,
			CreatedAt: n.CreatedAt.Format(s.layout()),
			PublishAt: publishAt,
			Type:      n.NoticeType.Desc,
			Status:    models.StatusLabel[n.Status(now)],
		})
	}
	return newPageResult(total, page, size, items), nil
}

// Retrieve 管理端公告详情。
func (s *NoticeAdminService) Retrieve(id int64) (*AdminNoticeDetail, error) {
	n, err := s.getNotice(id)
	if err != nil {
		return nil, err
	}
	return &AdminNoticeDetail{
		ID:        n.ID,
		Title:     n.Title,
		Content:   n.Content,
		PublishAt: n.PublishedAt(time.Now(), s.layout()),
	}, nil
}

// ListNoticeTypes 公告类型字典。
func (s *NoticeAdminService) ListNoticeTypes() ([]TypeItem, error) {
	items := make([]TypeItem, 0)
	err := notDeleted(s.DB.Model(&models.NoticeType{})).
		Select("id, `desc`").
		Order("id").
		Find(&items).Error
	return items, err
}

// ListReceiverTypes 接收者类型字典。
func (s *NoticeAdminService) ListReceiverTypes() ([]TypeItem, error) {
	items := make([]TypeItem, 0)
	err := notDeleted(s.DB.Model(&models.ReceiverType{})).
		Select("id, `desc`").
		Order("id").
		Find(&items).Error
	return items, err
}

func (s *NoticeAdminService) getNotice(id int64) (*models.NoticeStore, error) {
	var n models.NoticeStore
	err := notDeleted(s.DB.Model(&models.NoticeStore{})).
		Where("id = ?", id).
		First(&n).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &n, nil
}

func dedupIDs(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
