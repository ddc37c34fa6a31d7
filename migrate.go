package notice_sdk

import (
	"log"
	"time"

	"github.com/cydxin/notice-sdk/models"
)

// AutoMigrate 建/补全本 SDK 的表
func (e *NoticeEngine) AutoMigrate() error {
	db := e.config.DB
	log.Println("AutoMigrate...")
	return db.AutoMigrate(
		&models.NoticeType{},
		&models.ReceiverType{},
		&models.NoticeStore{},
		&models.ReceiverTag{},
		&models.Backlog{},
		&models.PrivateNotice{},
	)
}

// TypeSeed 类型字典种子
type TypeSeed struct {
	Name string
	Desc string
}

// EnsureNoticeTypes 幂等补齐公告类型字典。
// resolver 是按类型名判定的，所以宿主接入时要先把名字种进来。
func (e *NoticeEngine) EnsureNoticeTypes(seeds []TypeSeed) error {
	for _, seed := range seeds {
		row := models.NoticeType{Name: seed.Name, Desc: seed.Desc}
		err := e.config.DB.
			Where(models.NoticeType{Name: seed.Name}).
			Attrs(models.NoticeType{Desc: seed.Desc, CreatedAt: time.Now()}).
			FirstOrCreate(&row).Error
		if err != nil {
			return err
		}
	}
	return nil
}

// EnsureReceiverTypes 幂等补齐接收者类型字典。
func (e *NoticeEngine) EnsureReceiverTypes(seeds []TypeSeed) error {
	for _, seed := range seeds {
		row := models.ReceiverType{Name: seed.Name, Desc: seed.Desc}
		err := e.config.DB.
			Where(models.ReceiverType{Name: seed.Name}).
			Attrs(models.ReceiverType{Desc: seed.Desc, CreatedAt: time.Now()}).
			FirstOrCreate(&row).Error
		if err != nil {
			return err
		}
	}
	return nil
}
