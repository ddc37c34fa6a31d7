package service

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestNoticeClientService_ListEmptyAllowedSets(t *testing.T) {
	gormDB, mock, sqlDB := newMockDB(t)
	defer func() { _ = sqlDB.Close() }()

	// resolver 全 deny：直接回空页，公告表一条查询都不发
	resolver := &fakeResolver{}
	allowed := NewAllowedTypesService(&Service{DB: gormDB}, resolver)
	svc := NewNoticeClientService(&Service{DB: gormDB}, allowed)

	expectTypeNames(mock, "notice_type", [][2]interface{}{{int64(1), "system"}})
	expectTypeNames(mock, "notice_receiver_type", [][2]interface{}{{int64(1), "staff"}})

	result, err := svc.List(context.Background(), ReceiverContext{ReceiverID: 1}, 1, 10)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if result.Total != 0 || result.MaxPage != 1 {
		t.Fatalf("expected empty page, got %+v", result)
	}
	items, ok := result.Items.([]ClientNoticeItem)
	if !ok || len(items) != 0 {
		t.Fatalf("expected empty items slice, got %#v", result.Items)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("sql expectations: %v", err)
	}
}

func TestNoticeClientService_List(t *testing.T) {
	gormDB, mock, sqlDB := newMockDB(t)
	defer func() { _ = sqlDB.Close() }()

	resolver := &fakeResolver{
		allowNotice:   map[string]bool{"system": true},
		allowReceiver: map[string]bool{"staff": true},
	}
	allowed := NewAllowedTypesService(&Service{DB: gormDB}, resolver)
	svc := NewNoticeClientService(&Service{DB: gormDB}, allowed)

	expectTypeNames(mock, "notice_type", [][2]interface{}{{int64(1), "system"}})
	expectTypeNames(mock, "notice_receiver_type", [][2]interface{}{{int64(1), "staff"}})

	mock.ExpectQuery(regexp.QuoteMeta("SELECT count(*) FROM `notice_store` WHERE is_deleted = ? AND is_draft = ? AND publish_at <= ? AND notice_type_id IN (?) AND JSON_OVERLAPS(receiver_type_ids, CAST(? AS JSON))")).
		WithArgs(false, false, sqlmock.AnyArg(), int64(1), "[1]").
		WillReturnRows(sqlmock.NewRows([]string{"count(*)"}).AddRow(2))

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "title", "publish_at", "tag_id"}).
		AddRow(int64(5), "second", now, nil).
		AddRow(int64(4), "first", now, int64(9))

	// JOIN 参数在 WHERE 参数之前
	mock.ExpectQuery(regexp.QuoteMeta("SELECT `notice_store`.id, `notice_store`.title, `notice_store`.publish_at, tag.id AS tag_id FROM `notice_store` LEFT JOIN `notice_receiver_tag` tag ON tag.notice_store_id = `notice_store`.id AND tag.receiver_id = ? WHERE is_deleted = ? AND is_draft = ? AND publish_at <= ? AND notice_type_id IN (?) AND JSON_OVERLAPS(receiver_type_ids, CAST(? AS JSON)) ORDER BY `notice_store`.id DESC LIMIT ?")).
		WithArgs(int64(1), false, false, sqlmock.AnyArg(), int64(1), "[1]", 10).
		WillReturnRows(rows)

	result, err := svc.List(context.Background(), ReceiverContext{ReceiverID: 1}, 1, 10)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if result.Total != 2 {
		t.Fatalf("expected total 2, got %d", result.Total)
	}
	items := result.Items.([]ClientNoticeItem)
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	if items[0].ID != 5 || items[0].IsRead {
		t.Fatalf("expected unread #5 first, got %+v", items[0])
	}
	if items[1].ID != 4 || !items[1].IsRead {
		t.Fatalf("expected read #4, got %+v", items[1])
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("sql expectations: %v", err)
	}
}

func TestNoticeClientService_ReadNotVisible(t *testing.T) {
	gormDB, mock, sqlDB := newMockDB(t)
	defer func() { _ = sqlDB.Close() }()

	resolver := &fakeResolver{
		allowNotice:   map[string]bool{"system": true},
		allowReceiver: map[string]bool{"staff": true},
	}
	allowed := NewAllowedTypesService(&Service{DB: gormDB}, resolver)
	svc := NewNoticeClientService(&Service{DB: gormDB}, allowed)

	expectTypeNames(mock, "notice_type", [][2]interface{}{{int64(1), "system"}})
	expectTypeNames(mock, "notice_receiver_type", [][2]interface{}{{int64(1), "staff"}})

	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `notice_store` WHERE is_deleted = ? AND is_draft = ? AND publish_at <= ? AND notice_type_id IN (?) AND JSON_OVERLAPS(receiver_type_ids, CAST(? AS JSON)) AND `notice_store`.id = ? ORDER BY `notice_store`.`id` LIMIT ?")).
		WithArgs(false, false, sqlmock.AnyArg(), int64(1), "[1]", int64(77), 1).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	// 不可见与不存在不作区分，也不能落已读标记
	_, err := svc.Read(context.Background(), ReceiverContext{ReceiverID: 1}, 77)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("sql expectations: %v", err)
	}
}

func TestNoticeClientService_Read(t *testing.T) {
	gormDB, mock, sqlDB := newMockDB(t)
	defer func() { _ = sqlDB.Close() }()

	resolver := &fakeResolver{
		allowNotice:   map[string]bool{"system": true},
		allowReceiver: map[string]bool{"staff": true},
	}
	allowed := NewAllowedTypesService(&Service{DB: gormDB}, resolver)
	svc := NewNoticeClientService(&Service{DB: gormDB}, allowed)

	expectTypeNames(mock, "notice_type", [][2]interface{}{{int64(1), "system"}})
	expectTypeNames(mock, "notice_receiver_type", [][2]interface{}{{int64(1), "staff"}})

	past := time.Now().Add(-time.Hour)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `notice_store` WHERE is_deleted = ? AND is_draft = ? AND publish_at <= ? AND notice_type_id IN (?) AND JSON_OVERLAPS(receiver_type_ids, CAST(? AS JSON)) AND `notice_store`.id = ? ORDER BY `notice_store`.`id` LIMIT ?")).
		WithArgs(false, false, sqlmock.AnyArg(), int64(1), "[1]", int64(5), 1).
		WillReturnRows(noticeRow(5, false, &past))

	// 幂等落已读标记：重复阅读靠唯一索引冲突时不做任何事
	mock.ExpectExec("INSERT INTO `notice_receiver_tag`").
		WillReturnResult(sqlmock.NewResult(1, 1))

	detail, err := svc.Read(context.Background(), ReceiverContext{ReceiverID: 1}, 5)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if detail.ID != 5 || detail.PublishAt == "" {
		t.Fatalf("expected published detail, got %+v", detail)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("sql expectations: %v", err)
	}
}
