package service

import (
	"encoding/json"
	"time"

	"github.com/cydxin/notice-sdk/cons"
	"github.com/cydxin/notice-sdk/models"
	"github.com/cydxin/notice-sdk/response"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// BacklogForm 待办创建表单：一个流程节点按 receivers 扇出成 N 行同 batch 的记录
type BacklogForm struct {
	Batch         string                 `json:"batch" binding:"max=64"`
	Receivers     []string               `json:"receivers" binding:"required,min=1"`
	Title         string                 `json:"title" binding:"max=64"`
	Initiator     string                 `json:"initiator" binding:"max=64"`
	InitiatorName string                 `json:"initiator_name" binding:"max=64"`
	InitiatedAt   string                 `json:"initiated_at"`
	ObjKey        string                 `json:"obj_key" binding:"max=64"`
	ObjName       string                 `json:"obj_name" binding:"max=64"`
	ObjStatus     string                 `json:"obj_status" binding:"max=64"`
	Handlers      []string               `json:"handlers"`
	Candidates    []string               `json:"candidates"`
	Data          map[string]interface{} `json:"data"`

	ObjAssociatedData     string `json:"obj_associated_data" binding:"max=64"`
	ObjAssociatedDataType string `json:"obj_associated_data_type" binding:"max=64"`
	Company               string `json:"company" binding:"max=64"`
	CompanyType           string `json:"company_type" binding:"max=64"`
}

// HandleBacklogForm 整批处理表单
type HandleBacklogForm struct {
	Batch   string                 `json:"batch" binding:"required,max=64"`
	Handler string                 `json:"handler" binding:"required,max=64"`
	IsDone  bool                   `json:"is_done"`
	Data    map[string]interface{} `json:"data"`
}

// HandleObjForm 按业务对象处理表单
type HandleObjForm struct {
	Key    string                 `json:"key" binding:"required,max=64"`
	Status string                 `json:"status" binding:"required,max=64"`
	Data   map[string]interface{} `json:"data"`
}

// BacklogFilter 列表筛选
type BacklogFilter struct {
	BacklogType string // all/undo/done/initiated，空同 all
	Keyword     string // obj_key / obj_name / initiator_name 模糊
	Start       string // created_at >=
	End         string // created_at <=
	ObjStatus   string
}

// BacklogItem 列表项
type BacklogItem struct {
	ID            int64                  `json:"id"`
	Batch         string                 `json:"batch"`
	CreatedAt     string                 `json:"created_at"`
	IsDone        bool                   `json:"is_done"`
	Creator       string                 `json:"creator"`
	Title         string                 `json:"title"`
	Initiator     string                 `json:"initiator"`
	InitiatorName string                 `json:"initiator_name"`
	ObjKey        string                 `json:"obj_key"`
	ObjName       string                 `json:"obj_name"`
	ObjStatus     string                 `json:"obj_status"`
	Handlers      []string               `json:"handlers"`
	Candidates    []string               `json:"candidates"`
	Data          map[string]interface{} `json:"data"`
	IsRead        bool                   `json:"is_read"`
}

// BacklogStats 当前接收者的待办统计
type BacklogStats struct {
	Undo  int64 `json:"undo"`
	Done  int64 `json:"done"`
	Total int64 `json:"total"`
}

type BacklogService struct{ *Service }

func NewBacklogService(s *Service) *BacklogService { return &BacklogService{Service: s} }

// Create 扇出待办：每个 receiver 一行，batch 相同；未传 batch 时生成一个。
func (s *BacklogService) Create(f *BacklogForm, creator string) ([]int64, error) {
	batch := f.Batch
	if batch == "" {
		batch = uuid.NewString()
	}

	var initiatedAt *time.Time
	if f.InitiatedAt != "" {
		at, err := time.ParseInLocation(s.layout(), f.InitiatedAt, time.Local)
		if err != nil {
			return nil, invalid(response.DetailInvalidPublishTime)
		}
		initiatedAt = &at
	}

	data, err := marshalData(f.Data)
	if err != nil {
		return nil, err
	}

	rows := make([]models.Backlog, 0, len(f.Receivers))
	for _, receiver := range f.Receivers {
		rows = append(rows, models.Backlog{
			Batch:                 batch,
			Receiver:              receiver,
			Creator:               creator,
			Title:                 f.Title,
			Initiator:             f.Initiator,
			InitiatorName:         f.InitiatorName,
			InitiatedAt:           initiatedAt,
			ObjKey:                f.ObjKey,
			ObjName:               f.ObjName,
			ObjStatus:             f.ObjStatus,
			Handlers:              datatypes.NewJSONSlice(f.Handlers),
			Candidates:            datatypes.NewJSONSlice(f.Candidates),
			Data:                  data,
			ObjAssociatedData:     f.ObjAssociatedData,
			ObjAssociatedDataType: f.ObjAssociatedDataType,
			Company:               f.Company,
			CompanyType:           f.CompanyType,
		})
	}
	if err := s.DB.Create(&rows).Error; err != nil {
		return nil, err
	}

	ids := make([]int64, 0, len(rows))
	for i := range rows {
		ids = append(ids, rows[i].ID)
		s.pushEvent(rows[i].Receiver, cons.EventBacklogCreated, map[string]interface{}{
			"id":      rows[i].ID,
			"batch":   batch,
			"title":   f.Title,
			"obj_key": f.ObjKey,
		})
	}
	return ids, nil
}

// Stats 待办数量（待处理/已处理/总数）。
func (s *BacklogService) Stats(receiver string) (*BacklogStats, error) {
	var undo, done int64
	if err := notDeleted(s.DB.Model(&models.Backlog{})).
		Where("receiver = ? AND is_done = ?", receiver, false).
		Count(&undo).Error; err != nil {
		return nil, err
	}
	if err := notDeleted(s.DB.Model(&models.Backlog{})).
		Where("receiver = ? AND is_done = ?", receiver, true).
		Count(&done).Error; err != nil {
		return nil, err
	}
	return &BacklogStats{Undo: undo, Done: done, Total: undo + done}, nil
}

// List 待办分页列表。
func (s *BacklogService) List(receiver string, page, size int, filter *BacklogFilter) (*PageResult, error) {
	items := make([]BacklogItem, 0, size)

	q := notDeleted(s.DB.Model(&models.Backlog{})).Where("receiver = ?", receiver)
	switch filter.BacklogType {
	case "", cons.BacklogTypeAll:
	case cons.BacklogTypeUndo:
		q = q.Where("is_done = ?", false)
	case cons.BacklogTypeDone:
		q = q.Where("is_done = ?", true)
	case cons.BacklogTypeInitiated:
		q = q.Where("initiator = ?", receiver)
	default:
		return nil, invalid(response.DetailInvalidBacklogType)
	}
	if filter.Keyword != "" {
		kw := "%" + filter.Keyword + "%"
		q = q.Where("(obj_key LIKE ? OR obj_name LIKE ? OR initiator_name LIKE ?)", kw, kw, kw)
	}
	if filter.Start != "" {
		at, err := time.ParseInLocation(s.layout(), filter.Start, time.Local)
		if err != nil {
			return nil, invalid(response.DetailInvalidPublishTime)
		}
		q = q.Where("created_at >= ?", at)
	}
	if filter.End != "" {
		at, err := time.ParseInLocation(s.layout(), filter.End, time.Local)
		if err != nil {
			return nil, invalid(response.DetailInvalidPublishTime)
		}
		q = q.Where("created_at <= ?", at)
	}
	if filter.ObjStatus != "" {
		q = q.Where("obj_status = ?", filter.ObjStatus)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, err
	}
	if pastMaxPage(total, page, size) {
		return newPageResult(total, page, size, items), nil
	}

	var rows []models.Backlog
	if err := q.Order("id DESC").Offset((page - 1) * size).Limit(size).Find(&rows).Error; err != nil {
		return nil, err
	}
	for i := range rows {
		items = append(items, s.toItem(&rows[i]))
	}
	return newPageResult(total, page, size, items), nil
}

// Read 标记某条待办已读。
func (s *BacklogService) Read(receiver string, id int64) error {
	now := time.Now()
	return s.DB.Model(&models.Backlog{}).
		Where("receiver = ? AND id = ?", receiver, id).
		Updates(map[string]interface{}{"is_read": true, "read_at": now, "updated_at": now}).Error
}

// HandleBatch 整批处理一个流程节点。
// 同 batch 的行是一个逻辑整体：先 SELECT ... FOR UPDATE 锁住整组，
// 取首行作为代表读 handlers/data，再把结果写回每一行；
// is_done=true 时不在 handlers 里的接收者行被软删（该节点对他们不再可见）。
// 并发的 HandleBatch 在锁上排队，后到者看到的是前一次提交后的完整状态。
func (s *BacklogService) HandleBatch(f *HandleBacklogForm) error {
	var receivers []string

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var rows []models.Backlog
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("batch = ? AND is_deleted = ?", f.Batch, false).
			Order("id").
			Find(&rows).Error; err != nil {
			return err
		}
		if len(rows) == 0 {
			return ErrNotFound
		}
		for i := range rows {
			receivers = append(receivers, rows[i].Receiver)
		}

		// handlers/data 整组共享，任取一行作代表
		rep := &rows[0]
		handlers := append(append([]string{}, rep.Handlers...), f.Handler)
		data := rep.Data
		if len(f.Data) > 0 {
			merged, err := mergeData(rep.Data, f.Data)
			if err != nil {
				return err
			}
			data = merged
		}

		now := time.Now()
		updates := map[string]interface{}{
			"handlers":   datatypes.NewJSONSlice(handlers),
			"updated_at": now,
		}
		if len(f.Data) > 0 {
			updates["data"] = data
		}

		if !f.IsDone {
			return tx.Model(&models.Backlog{}).Where("batch = ?", f.Batch).Updates(updates).Error
		}

		// 完成：全部置 done；接收者不在 handlers 里的行软删
		updates["is_done"] = true
		updates["done_at"] = now

		var keepIDs, removeIDs []int64
		for i := range rows {
			if containsString(handlers, rows[i].Receiver) {
				keepIDs = append(keepIDs, rows[i].ID)
			} else {
				removeIDs = append(removeIDs, rows[i].ID)
			}
		}
		if len(keepIDs) > 0 {
			if err := tx.Model(&models.Backlog{}).Where("id IN ?", keepIDs).Updates(updates).Error; err != nil {
				return err
			}
		}
		if len(removeIDs) > 0 {
			removed := make(map[string]interface{}, len(updates)+1)
			for k, v := range updates {
				removed[k] = v
			}
			removed["is_deleted"] = true
			if err := tx.Model(&models.Backlog{}).Where("id IN ?", removeIDs).Updates(removed).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	// 提交后尽力推送
	for _, receiver := range receivers {
		s.pushEvent(receiver, cons.EventBacklogHandled, map[string]interface{}{
			"batch":   f.Batch,
			"handler": f.Handler,
			"is_done": f.IsDone,
		})
	}
	return nil
}

// HandleObject 按业务对象批量改流程状态；锁法与 HandleBatch 相同。
func (s *BacklogService) HandleObject(f *HandleObjForm) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		var rows []models.Backlog
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("obj_key = ? AND is_deleted = ?", f.Key, false).
			Order("id").
			Find(&rows).Error; err != nil {
			return err
		}
		if len(rows) == 0 {
			return ErrNotFound
		}

		now := time.Now()
		updates := map[string]interface{}{
			"obj_status": f.Status,
			"updated_at": now,
		}
		if len(f.Data) > 0 {
			merged, err := mergeData(rows[0].Data, f.Data)
			if err != nil {
				return err
			}
			updates["data"] = merged
		}
		return tx.Model(&models.Backlog{}).Where("obj_key = ? AND is_deleted = ?", f.Key, false).
			Updates(updates).Error
	})
}

func (s *BacklogService) toItem(b *models.Backlog) BacklogItem {
	data := map[string]interface{}{}
	if len(b.Data) > 0 {
		_ = json.Unmarshal(b.Data, &data)
	}
	return BacklogItem{
		ID:            b.ID,
		Batch:         b.Batch,
		CreatedAt:     b.CreatedAt.Format(s.layout()),
		IsDone:        b.IsDone,
		Creator:       b.Creator,
		Title:         b.Title,
		Initiator:     b.Initiator,
		InitiatorName: b.InitiatorName,
		ObjKey:        b.ObjKey,
		ObjName:       b.ObjName,
		ObjStatus:     b.ObjStatus,
		Handlers:      b.Handlers,
		Candidates:    b.Candidates,
		Data:          data,
		IsRead:        b.IsRead,
	}
}

func (s *BacklogService) pushEvent(receiver, eventType string, payload map[string]interface{}) {
	if s.WsNotifier == nil {
		return
	}
	msg := map[string]interface{}{"type": eventType}
	for k, v := range payload {
		msg[k] = v
	}
	b, err := json.Marshal(msg)
	if err != nil {
		return
	}
	s.notify(receiver, b)
}

// mergeData 浅合并：extra 的键覆盖原 data 的同名键
func mergeData(orig datatypes.JSON, extra map[string]interface{}) (datatypes.JSON, error) {
	merged := map[string]interface{}{}
	if len(orig) > 0 {
		if err := json.Unmarshal(orig, &merged); err != nil {
			return nil, err
		}
	}
	for k, v := range extra {
		merged[k] = v
	}
	b, err := json.Marshal(merged)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(b), nil
}

func marshalData(data map[string]interface{}) (datatypes.JSON, error) {
	if len(data) == 0 {
		return nil, nil
	}
	b, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(b), nil
}

func containsString(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
