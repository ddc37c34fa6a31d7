package cons

// 公告发送方式（send_way）
const (
	SendWayNo     = "no"     // 存草稿
	SendWayNow    = "now"    // 立即发布
	SendWayTiming = "timing" // 定时发布
)

// 待办列表筛选（backlog_type）
const (
	BacklogTypeAll       = "all"       // 全部待办
	BacklogTypeUndo      = "undo"      // 待处理
	BacklogTypeDone      = "done"      // 已处理
	BacklogTypeInitiated = "initiated" // 我发起的
)

// 统一的 WS 推送事件类型（event_type）
const (
	EventBacklogCreated = "backlog.created" // 新待办落库
	EventBacklogHandled = "backlog.handled" // 整批待办被处理
	EventPrivateCreated = "private.created" // 新私信落库
)
