package service

import (
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func backlogRows(batch string, receivers []string, handlers string) *sqlmock.Rows {
	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "batch", "receiver", "obj_key", "obj_status", "handlers", "data", "is_done", "is_deleted", "created_at", "updated_at"})
	for i, receiver := range receivers {
		rows.AddRow(int64(i+1), batch, receiver, "obj-1", "pending", []byte(handlers), nil, false, false, now, now)
	}
	return rows
}

func TestBacklogService_Create(t *testing.T) {
	gormDB, mock, sqlDB := newMockDB(t)
	defer func() { _ = sqlDB.Close() }()

	var notified []string
	svc := NewBacklogService(&Service{DB: gormDB, WsNotifier: func(receiver string, _ []byte) {
		notified = append(notified, receiver)
	}})

	mock.ExpectExec("INSERT INTO `notice_backlog`").
		WillReturnResult(sqlmock.NewResult(10, 2))

	ids, err := svc.Create(&BacklogForm{
		Receivers: []string{"1", "2"},
		Title:     "approval",
		ObjKey:    "obj-1",
	}, "creator")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if len(ids) != 2 {
		t.Fatalf("expected 2 ids, got %v", ids)
	}
	if len(notified) != 2 || notified[0] != "1" || notified[1] != "2" {
		t.Fatalf("expected push to both receivers, got %v", notified)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("sql expectations: %v", err)
	}
}

func TestBacklogService_Stats(t *testing.T) {
	gormDB, mock, sqlDB := newMockDB(t)
	defer func() { _ = sqlDB.Close() }()

	svc := NewBacklogService(&Service{DB: gormDB})

	mock.ExpectQuery(regexp.QuoteMeta("SELECT count(*) FROM `notice_backlog` WHERE is_deleted = ? AND (receiver = ? AND is_done = ?)")).
		WithArgs(false, "1", false).
		WillReturnRows(sqlmock.NewRows([]string{"count(*)"}).AddRow(3))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT count(*) FROM `notice_backlog` WHERE is_deleted = ? AND (receiver = ? AND is_done = ?)")).
		WithArgs(false, "1", true).
		WillReturnRows(sqlmock.NewRows([]string{"count(*)"}).AddRow(2))

	stats, err := svc.Stats("1")
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if stats.Undo != 3 || stats.Done != 2 || stats.Total != 5 {
		t.Fatalf("unexpected stats %+v", stats)
	}
}

func TestBacklogService_HandleBatchUndo(t *testing.T) {
	gormDB, mock, sqlDB := newMockDB(t)
	defer func() { _ = sqlDB.Close() }()

	var notified []string
	svc := NewBacklogService(&Service{DB: gormDB, WsNotifier: func(receiver string, _ []byte) {
		notified = append(notified, receiver)
	}})

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `notice_backlog` WHERE batch = ? AND is_deleted = ? ORDER BY id FOR UPDATE")).
		WithArgs("b-1", false).
		WillReturnRows(backlogRows("b-1", []string{"1", "2"}, `[]`))
	mock.ExpectExec("UPDATE `notice_backlog` SET `handlers`=.*`updated_at`=.* WHERE batch = \\?").
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), "b-1").
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	if err := svc.HandleBatch(&HandleBacklogForm{Batch: "b-1", Handler: "2"}); err != nil {
		t.Fatalf("HandleBatch: %v", err)
	}
	// 提交后整组接收者都要收到推送
	if len(notified) != 2 {
		t.Fatalf("expected 2 pushes, got %v", notified)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("sql expectations: %v", err)
	}
}

func TestBacklogService_HandleBatchDone(t *testing.T) {
	gormDB, mock, sqlDB := newMockDB(t)
	defer func() { _ = sqlDB.Close() }()

	svc := NewBacklogService(&Service{DB: gormDB})

	// 接收者 1/2/3，已有处理人 ["5"]，本次 3 完成：
	// 3 在新 handlers 里保留，1/2 的行被软删，节点对他们不再可见
	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `notice_backlog` WHERE batch = ? AND is_deleted = ? ORDER BY id FOR UPDATE")).
		WithArgs("1", false).
		WillReturnRows(backlogRows("1", []string{"1", "2", "3"}, `["5"]`))
	mock.ExpectExec("UPDATE `notice_backlog` SET `done_at`=.*`handlers`=.*`is_done`=.*`updated_at`=.* WHERE id IN \\(\\?\\)").
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), true, sqlmock.AnyArg(), int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE `notice_backlog` SET `done_at`=.*`handlers`=.*`is_deleted`=.*`is_done`=.*`updated_at`=.* WHERE id IN \\(\\?,\\?\\)").
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), true, true, sqlmock.AnyArg(), int64(1), int64(2)).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	if err := svc.HandleBatch(&HandleBacklogForm{Batch: "1", Handler: "3", IsDone: true}); err != nil {
		t.Fatalf("HandleBatch: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("sql expectations: %v", err)
	}
}

func TestBacklogService_HandleBatchNotFound(t *testing.T) {
	gormDB, mock, sqlDB := newMockDB(t)
	defer func() { _ = sqlDB.Close() }()

	svc := NewBacklogService(&Service{DB: gormDB})

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `notice_backlog` WHERE batch = ? AND is_deleted = ? ORDER BY id FOR UPDATE")).
		WithArgs("gone", false).
		WillReturnRows(backlogRows("gone", nil, `[]`))
	mock.ExpectRollback()

	err := svc.HandleBatch(&HandleBacklogForm{Batch: "gone", Handler: "1"})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("sql expectations: %v", err)
	}
}

func TestBacklogService_HandleObject(t *testing.T) {
	gormDB, mock, sqlDB := newMockDB(t)
	defer func() { _ = sqlDB.Close() }()

	svc := NewBacklogService(&Service{DB: gormDB})

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `notice_backlog` WHERE obj_key = ? AND is_deleted = ? ORDER BY id FOR UPDATE")).
		WithArgs("obj-1", false).
		WillReturnRows(backlogRows("b-1", []string{"1", "2"}, `[]`))
	mock.ExpectExec("UPDATE `notice_backlog` SET `obj_status`=.*`updated_at`=.* WHERE obj_key = \\? AND is_deleted = \\?").
		WithArgs("approved", sqlmock.AnyArg(), "obj-1", false).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	if err := svc.HandleObject(&HandleObjForm{Key: "obj-1", Status: "approved"}); err != nil {
		t.Fatalf("HandleObject: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("sql expectations: %v", err)
	}
}

func TestBacklogService_ListInvalidType(t *testing.T) {
	gormDB, _, sqlDB := newMockDB(t)
	defer func() { _ = sqlDB.Close() }()

	svc := NewBacklogService(&Service{DB: gormDB})

	_, err := svc.List("1", 1, 10, &BacklogFilter{BacklogType: "bogus"})
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}
