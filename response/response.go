package response

import (
	"encoding/json"
	"log"
	"net/http"
)

// Failed 失败响应统一结构
// 使用说明：
// - 400 参数/状态校验失败（ValidationFailed）
// - 401 未认证（AuthFailed）
// - 404 资源不存在/不可见（NotFound，可见性失败与不存在刻意不作区分）
// 成功响应不走这个结构，直接返回业务数据。
type Failed struct {
	Detail string `json:"detail" example:"invalid input"` // 给调用方看的原因
	Code   string `json:"code" example:"invalid"`         // 机器可读错误码
}

// 错误码定义
const (
	CodeInvalid    = "invalid"
	CodeAuthFailed = "authentication_failed"
	CodeNotFound   = "not_found"
)

// 校验失败 detail 文案
const (
	DetailInvalidNoticeType   = "Invalid Notice Type"
	DetailInvalidReceiverType = "Invalid Receiver Type"
	DetailInvalidSendWay      = "Invalid Send Way"
	DetailInvalidPublishTime  = "Invalid Publish Time"
	DetailInvalidPage         = "Invalid Page"
	DetailInvalidSize         = "Invalid Size"
	DetailInvalidBacklogType  = "Invalid Backlog Type"

	DetailOutdate           = "Cant Set Time Which Is Out Of Date"
	DetailChangeNotDraft    = "Cant Change Notice Which Is Not Draft"
	DetailChangeDraftTiming = "Cant Change Timing Which Is Draft"
	DetailDeleteDraftTiming = "Cant Delete Timing Which Is Draft"
	DetailDeleteNotDraft    = "Cant Delete Notice Which Is Not Draft"
	DetailChangePublished   = "Cant Change Notice Which Has Been Published"
	DetailDeletePublished   = "Cant Delete Notice Which Has Been Published"
)

// ValidationFailed 400 响应体
func ValidationFailed(detail string) *Failed {
	if detail == "" {
		detail = "invalid input"
	}
	return &Failed{Detail: detail, Code: CodeInvalid}
}

// AuthFailed 401 响应体
func AuthFailed() *Failed {
	return &Failed{Detail: "Auth Failed", Code: CodeAuthFailed}
}

// NotFound 404 响应体
func NotFound() *Failed {
	return &Failed{Detail: "Not Found", Code: CodeNotFound}
}

// WriteJSON 写入 JSON 响应（指定 HTTP 状态码）
// 给不用 gin 的宿主自建 handler 用；gin 场景直接 ctx.JSON。
func (f *Failed) WriteJSON(w http.ResponseWriter, httpStatus int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(httpStatus)
	if err := json.NewEncoder(w).Encode(f); err != nil {
		log.Printf("Failed to encode response: %v", err)
	}
}
