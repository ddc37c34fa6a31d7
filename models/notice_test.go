package models

import (
	"testing"
	"time"
)

// TestNoticeStoreStatus 状态推导：任意时刻都只由 (is_draft, publish_at, now) 决定
func TestNoticeStoreStatus(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.Local)
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	cases := []struct {
		name      string
		isDraft   bool
		publishAt *time.Time
		want      NoticeStatus
	}{
		{"draft", true, nil, StatusDraft},
		{"queue", false, &future, StatusQueue},
		{"done_past", false, &past, StatusDone},
		{"done_exact_now", false, &now, StatusDone}, // publish_at == now 视为已发布
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			n := &NoticeStore{IsDraft: c.isDraft, PublishAt: c.publishAt}
			if got := n.Status(now); got != c.want {
				t.Fatalf("Status() = %v, want %v", got, c.want)
			}
		})
	}
}

func TestNoticeStorePublishedAt(t *testing.T) {
	layout := "2006-01-02 15:04:05"
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.Local)
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	n := &NoticeStore{IsDraft: false, PublishAt: &past}
	if got := n.PublishedAt(now, layout); got != "2024-06-01 11:00:00" {
		t.Fatalf("PublishedAt() = %q", got)
	}

	// 排队中的公告对外不暴露发布时间
	n = &NoticeStore{IsDraft: false, PublishAt: &future}
	if got := n.PublishedAt(now, layout); got != "" {
		t.Fatalf("expected empty for queued notice, got %q", got)
	}

	n = &NoticeStore{IsDraft: true}
	if got := n.PublishedAt(now, layout); got != "" {
		t.Fatalf("expected empty for draft, got %q", got)
	}
}
