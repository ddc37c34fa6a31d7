package notice_sdk

/* Handler 按资源拆分：
- handler_admin.go   管理端公告
- handler_client.go  客户端公告
- handler_backlog.go 待办
- handler_private.go 私信
*/

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/cydxin/notice-sdk/middleware"
	"github.com/cydxin/notice-sdk/response"
	"github.com/cydxin/notice-sdk/service"
	"github.com/gin-gonic/gin"
)

// receiverFromCtx 取鉴权中间件写入的接收者标识；没有视为未认证
func receiverFromCtx(ctx *gin.Context) (string, bool) {
	v, exists := ctx.Get(middleware.ContextReceiverKey)
	if !exists {
		return "", false
	}
	receiver, ok := v.(string)
	if !ok || receiver == "" {
		return "", false
	}
	return receiver, true
}

// receiverIDFromCtx 公告这边接收者/创建者是数字主键
func receiverIDFromCtx(ctx *gin.Context) (int64, bool) {
	receiver, ok := receiverFromCtx(ctx)
	if !ok {
		return 0, false
	}
	id, err := strconv.ParseInt(receiver, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// pageParams 解析 page/size，默认 1/10
func pageParams(ctx *gin.Context) (page, size int, errDetail string) {
	page, err := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		return 0, 0, response.DetailInvalidPage
	}
	size, err = strconv.Atoi(ctx.DefaultQuery("size", "10"))
	if err != nil || size < 1 {
		return 0, 0, response.DetailInvalidSize
	}
	return page, size, ""
}

func pathID(ctx *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// failJSON 按错误类别落 HTTP 状态码：校验 400、找不到 404，其余 500
func failJSON(ctx *gin.Context, err error) {
	var ve *service.ValidationError
	switch {
	case errors.As(err, &ve):
		ctx.JSON(http.StatusBadRequest, response.ValidationFailed(ve.Detail))
	case errors.Is(err, service.ErrNotFound):
		ctx.JSON(http.StatusNotFound, response.NotFound())
	default:
		// resolver 漏判等部署缺陷也从这里走 500，detail 不往外带内部信息
		ctx.JSON(http.StatusInternalServerError, &response.Failed{Detail: "Internal Server Error", Code: "error"})
	}
}
