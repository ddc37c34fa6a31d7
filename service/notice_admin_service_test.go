package service

import (
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/cydxin/notice-sdk/cons"
	"github.com/cydxin/notice-sdk/response"
)

func TestNoticeAdminService_CreateDraft(t *testing.T) {
	gormDB, mock, sqlDB := newMockDB(t)
	defer func() { _ = sqlDB.Close() }()

	svc := NewNoticeAdminService(&Service{DB: gormDB})

	// 类型存在性校验
	mock.ExpectQuery(regexp.QuoteMeta("SELECT count(*) FROM `notice_type` WHERE is_deleted = ? AND id = ?")).
		WithArgs(false, int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"count(*)"}).AddRow(1))

	mock.ExpectExec("INSERT INTO `notice_store`").
		WillReturnResult(sqlmock.NewResult(7, 1))

	id, err := svc.Create(&NoticeForm{
		Title:   "maintenance",
		Content: "tonight",
		TypeID:  3,
		SendWay: cons.SendWayNo,
	}, 1)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if id != 7 {
		t.Fatalf("expected id 7, got %d", id)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("sql expectations: %v", err)
	}
}

func TestNoticeAdminService_CreateTimingOutdated(t *testing.T) {
	gormDB, mock, sqlDB := newMockDB(t)
	defer func() { _ = sqlDB.Close() }()

	svc := NewNoticeAdminService(&Service{DB: gormDB})

	mock.ExpectQuery(regexp.QuoteMeta("SELECT count(*) FROM `notice_type` WHERE is_deleted = ? AND id = ?")).
		WithArgs(false, int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"count(*)"}).AddRow(1))

	past := time.Now().Add(-time.Hour).Format(DefaultDatetimeFormat)
	_, err := svc.Create(&NoticeForm{TypeID: 3, SendWay: cons.SendWayTiming, PublishAt: past}, 1)

	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if ve.Detail != response.DetailOutdate {
		t.Fatalf("expected %q, got %q", response.DetailOutdate, ve.Detail)
	}
	// 校验失败后不应有任何写库动作
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("sql expectations: %v", err)
	}
}

func TestNoticeAdminService_CreateUnknownType(t *testing.T) {
	gormDB, mock, sqlDB := newMockDB(t)
	defer func() { _ = sqlDB.Close() }()

	svc := NewNoticeAdminService(&Service{DB: gormDB})

	mock.ExpectQuery(regexp.QuoteMeta("SELECT count(*) FROM `notice_type` WHERE is_deleted = ? AND id = ?")).
		WithArgs(false, int64(99)).
		WillReturnRows(sqlmock.NewRows([]string{"count(*)"}).AddRow(0))

	_, err := svc.Create(&NoticeForm{TypeID: 99, SendWay: cons.SendWayNow}, 1)

	var ve *ValidationError
	if !errors.As(err, &ve) || ve.Detail != response.DetailInvalidNoticeType {
		t.Fatalf("expected invalid notice type, got %v", err)
	}
}

func noticeRow(id int64, isDraft bool, publishAt *time.Time) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows([]string{"id", "title", "content", "notice_type_id", "receiver_type_ids", "is_draft", "creator_id", "publish_at", "created_at", "updated_at", "is_deleted"}).
		AddRow(id, "t", "c", 3, []byte("[1]"), isDraft, 1, publishAt, now, now, false)
}

func TestNoticeAdminService_DeleteNotDraft(t *testing.T) {
	gormDB, mock, sqlDB := newMockDB(t)
	defer func() { _ = sqlDB.Close() }()

	svc := NewNoticeAdminService(&Service{DB: gormDB})

	past := time.Now().Add(-time.Hour)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `notice_store` WHERE is_deleted = ? AND id = ? ORDER BY `notice_store`.`id` LIMIT ?")).
		WithArgs(false, int64(5), 1).
		WillReturnRows(noticeRow(5, false, &past))

	err := svc.Delete(5)
	var ve *ValidationError
	if !errors.As(err, &ve) || ve.Detail != response.DetailDeleteNotDraft {
		t.Fatalf("expected delete-not-draft, got %v", err)
	}
	// 已发布公告不能删，也不应产生 UPDATE
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("sql expectations: %v", err)
	}
}

func TestNoticeAdminService_DeleteDraft(t *testing.T) {
	gormDB, mock, sqlDB := newMockDB(t)
	defer func() { _ = sqlDB.Close() }()

	svc := NewNoticeAdminService(&Service{DB: gormDB})

	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `notice_store` WHERE is_deleted = ? AND id = ? ORDER BY `notice_store`.`id` LIMIT ?")).
		WithArgs(false, int64(5), 1).
		WillReturnRows(noticeRow(5, true, nil))

	mock.ExpectExec("UPDATE `notice_store` SET `is_deleted`=.*`updated_at`=.* WHERE id = \\?").
		WithArgs(true, sqlmock.AnyArg(), int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := svc.Delete(5); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("sql expectations: %v", err)
	}
}

func TestNoticeAdminService_CancelTiming(t *testing.T) {
	gormDB, mock, sqlDB := newMockDB(t)
	defer func() { _ = sqlDB.Close() }()

	svc := NewNoticeAdminService(&Service{DB: gormDB})

	future := time.Now().Add(time.Hour)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `notice_store` WHERE is_deleted = ? AND id = ? ORDER BY `notice_store`.`id` LIMIT ?")).
		WithArgs(false, int64(9), 1).
		WillReturnRows(noticeRow(9, false, &future))

	// 退回草稿：is_draft=true，publish_at 清空
	mock.ExpectExec("UPDATE `notice_store` SET `is_draft`=.*`publish_at`=.*`updated_at`=.* WHERE id = \\?").
		WithArgs(true, nil, sqlmock.AnyArg(), int64(9)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := svc.CancelTiming(9); err != nil {
		t.Fatalf("CancelTiming: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("sql expectations: %v", err)
	}
}

func TestNoticeAdminService_CancelTimingPublished(t *testing.T) {
	gormDB, mock, sqlDB := newMockDB(t)
	defer func() { _ = sqlDB.Close() }()

	svc := NewNoticeAdminService(&Service{DB: gormDB})

	past := time.Now().Add(-time.Hour)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `notice_store` WHERE is_deleted = ? AND id = ? ORDER BY `notice_store`.`id` LIMIT ?")).
		WithArgs(false, int64(9), 1).
		WillReturnRows(noticeRow(9, false, &past))

	err := svc.CancelTiming(9)
	var ve *ValidationError
	if !errors.As(err, &ve) || ve.Detail != response.DetailChangePublished {
		t.Fatalf("expected change-published, got %v", err)
	}
}

func TestNoticeAdminService_RetrieveNotFound(t *testing.T) {
	gormDB, mock, sqlDB := newMockDB(t)
	defer func() { _ = sqlDB.Close() }()

	svc := NewNoticeAdminService(&Service{DB: gormDB})

	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `notice_store` WHERE is_deleted = ? AND id = ? ORDER BY `notice_store`.`id` LIMIT ?")).
		WithArgs(false, int64(404), 1).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := svc.Retrieve(404)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
