package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/cydxin/notice-sdk/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ClientNoticeItem 客户端列表项
type ClientNoticeItem struct {
	ID        int64  `json:"id"`
	Title     string `json:"title"`
	PublishAt string `json:"publish_at"`
	IsRead    bool   `json:"is_read"`
}

// NoticeClientService 接收者侧的公告读取：
// 可见性 = 已发布 + 公告类型被 resolver 放行 + 接收者类型数组与放行集合有交集。
type NoticeClientService struct {
	*Service
	Allowed *AllowedTypesService
}

func NewNoticeClientService(s *Service, allowed *AllowedTypesService) *NoticeClientService {
	return &NoticeClientService{Service: s, Allowed: allowed}
}

// visibleScope 已发布且类型被放行的公告；receiver_type_ids 是 JSON 数组，
// 交集判断交给 MySQL 的 JSON_OVERLAPS。
func (s *NoticeClientService) visibleScope(noticeTypeIDs, receiverTypeIDs []int64, now time.Time) *gorm.DB {
	overlap, _ := json.Marshal(receiverTypeIDs)
	return notDeleted(s.DB.Model(&models.NoticeStore{})).
		Where("is_draft = ?", false).
		Where("publish_at <= ?", now).
		Where("notice_type_id IN ?", noticeTypeIDs).
		Where("JSON_OVERLAPS(receiver_type_ids, CAST(? AS JSON))", string(overlap))
}

// List 接收者可见的公告分页，带已读标记。
// resolver 放行集合为空时不发任何查询，直接回空页。
func (s *NoticeClientService) List(ctx context.Context, rc ReceiverContext, page, size int) (*PageResult, error) {
	items := make([]ClientNoticeItem, 0, size)

	noticeTypeIDs, receiverTypeIDs, err := s.Allowed.Judge(ctx, rc)
	if err != nil {
		return nil, err
	}
	if len(noticeTypeIDs) == 0 || len(receiverTypeIDs) == 0 {
		return newPageResult(0, page, size, items), nil
	}

	now := time.Now()
	var total int64
	if err := s.visibleScope(noticeTypeIDs, receiverTypeIDs, now).Count(&total).Error; err != nil {
		return nil, err
	}
	if pastMaxPage(total, page, size) {
		return newPageResult(total, page, size, items), nil
	}

	// LEFT JOIN 读标记，一趟查出 is_read
	type row struct {
		ID        int64
		Title     string
		PublishAt *time.Time
		TagID     *int64
	}
	var rows []row
	if err := s.visibleScope(noticeTypeIDs, receiverTypeIDs, now).
		Select("`notice_store`.id, `notice_store`.title, `notice_store`.publish_at, tag.id AS tag_id").
		Joins("LEFT JOIN `notice_receiver_tag` tag ON tag.notice_store_id = `notice_store`.id AND tag.receiver_id = ?", rc.ReceiverID).
		Order("`notice_store`.id DESC").
		Offset((page - 1) * size).Limit(size).
		Find(&rows).Error; err != nil {
		return nil, err
	}

	for _, r := range rows {
		publishAt := ""
		if r.PublishAt != nil {
			publishAt = r.PublishAt.Format(s.layout())
		}
		items = append(items, ClientNoticeItem{
			ID:        r.ID,
			Title:     r.Title,
			PublishAt: publishAt,
			IsRead:    r.TagID != nil,
		})
	}
	return newPageResult(total, page, size, items), nil
}

// Read 读取一条可见公告并落已读标记。
// 标记创建是幂等的：唯一索引 + ON CONFLICT DO NOTHING，并发首读不报错。
func (s *NoticeClientService) Read(ctx context.Context, rc ReceiverContext, id int64) (*AdminNoticeDetail, error) {
	noticeTypeIDs, receiverTypeIDs, err := s.Allowed.Judge(ctx, rc)
	if err != nil {
		return nil, err
	}
	if len(noticeTypeIDs) == 0 || len(receiverTypeIDs) == 0 {
		return nil, ErrNotFound
	}

	now := time.Now()
	var n models.NoticeStore
	if err := s.visibleScope(noticeTypeIDs, receiverTypeIDs, now).
		Where("`notice_store`.id = ?", id).
		First(&n).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	tag := &models.ReceiverTag{
		NoticeStoreID: n.ID,
		ReceiverID:    rc.ReceiverID,
		ReadAt:        now,
	}
	if err := s.DB.Clauses(clause.OnConflict{DoNothing: true}).Create(tag).Error; err != nil {
		return nil, err
	}

	return &AdminNoticeDetail{
		ID:        n.ID,
		Title:     n.Title,
		Content:   n.Content,
		PublishAt: n.PublishedAt(now, s.layout()),
	}, nil
}
