package notice_sdk

import (
	"net/http"

	"github.com/cydxin/notice-sdk/response"
	"github.com/cydxin/notice-sdk/service"
	"github.com/gin-gonic/gin"
)

// -------------------- 客户端公告（Client）相关接口 --------------------

// receiverContext 组装 resolver 需要的上下文；扩展字段走 query 透传
func receiverContext(ctx *gin.Context, receiverID int64) service.ReceiverContext {
	return service.ReceiverContext{
		ReceiverID:  receiverID,
		Company:     ctx.Query("company"),
		CompanyType: ctx.Query("company_type"),
	}
}

// GinHandleListVisibleNotices 当前接收者可见的公告列表
// @Summary 可见公告列表
// @Description 只返回已发布且 resolver 放行类型的公告，带已读标记
// @Tags 公告-客户端
// @Produce json
// @Param page query int false "页码(默认1)"
// @Param size query int false "每页条数(默认10)"
// @Success 200 {object} service.PageResult
// @Failure 400 {object} response.Failed
// @Failure 401 {object} response.Failed
// @Security BearerAuth
// @Router /client [get]
func (e *NoticeEngine) GinHandleListVisibleNotices(ctx *gin.Context) {
	receiverID, ok := receiverIDFromCtx(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, response.AuthFailed())
		return
	}

	page, size, errDetail := pageParams(ctx)
	if errDetail != "" {
		ctx.JSON(http.StatusBadRequest, response.ValidationFailed(errDetail))
		return
	}

	result, err := e.ClientService.List(ctx.Request.Context(), receiverContext(ctx, receiverID), page, size)
	if err != nil {
		failJSON(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, result)
}

// GinHandleReadNotice 读一条公告并落已读标记
// @Summary 读公告
// @Description 不可见的公告与不存在一样返回 404
// @Tags 公告-客户端
// @Produce json
// @Param id path int true "公告ID"
// @Success 200 {object} service.AdminNoticeDetail
// @Failure 401 {object} response.Failed
// @Failure 404 {object} response.Failed
// @Security BearerAuth
// @Router /client/{id} [get]
func (e *NoticeEngine) GinHandleReadNotice(ctx *gin.Context) {
	receiverID, ok := receiverIDFromCtx(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, response.AuthFailed())
		return
	}

	id, ok := pathID(ctx)
	if !ok {
		ctx.JSON(http.StatusNotFound, response.NotFound())
		return
	}

	detail, err := e.ClientService.Read(ctx.Request.Context(), receiverContext(ctx, receiverID), id)
	if err != nil {
		failJSON(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, detail)
}
