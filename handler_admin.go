package notice_sdk

import (
	"net/http"

	"github.com/cydxin/notice-sdk/response"
	"github.com/cydxin/notice-sdk/service"
	"github.com/gin-gonic/gin"
)

// -------------------- 管理端公告（Admin）相关接口 --------------------

// GinHandleListNotices 管理端公告分页列表（含草稿）
// @Summary 管理端公告列表
// @Tags 公告-管理端
// @Accept json
// @Produce json
// @Param page query int false "页码(默认1)"
// @Param size query int false "每页条数(默认10)"
// @Success 200 {object} service.PageResult
// @Failure 400 {object} response.Failed
// @Router /admin [get]
func (e *NoticeEngine) GinHandleListNotices(ctx *gin.Context) {
	page, size, errDetail := pageParams(ctx)
	if errDetail != "" {
		ctx.JSON(http.StatusBadRequest, response.ValidationFailed(errDetail))
		return
	}

	result, err := e.AdminService.List(page, size)
	if err != nil {
		failJSON(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, result)
}

// GinHandleCreateNotice 新建公告
// @Summary 新建公告
// @Description send_way: no=存草稿 now=立即发布 timing=定时发布
// @Tags 公告-管理端
// @Accept json
// @Produce json
// @Param req body service.NoticeForm true "公告内容"
// @Success 200 {object} map[string]int64 "{id}"
// @Failure 400 {object} response.Failed
// @Failure 401 {object} response.Failed
// @Security BearerAuth
// @Router /admin [post]
func (e *NoticeEngine) GinHandleCreateNotice(ctx *gin.Context) {
	creatorID, ok := receiverIDFromCtx(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, response.AuthFailed())
		return
	}

	var f service.NoticeForm
	if err := ctx.ShouldBindJSON(&f); err != nil {
		ctx.JSON(http.StatusBadRequest, response.ValidationFailed(err.Error()))
		return
	}

	id, err := e.AdminService.Create(&f, creatorID)
	if err != nil {
		failJSON(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"id": id})
}

// GinHandleRetrieveNotice 公告详情
// @Summary 公告详情
// @Tags 公告-管理端
// @Produce json
// @Param id path int true "公告ID"
// @Success 200 {object} service.AdminNoticeDetail
// @Failure 404 {object} response.Failed
// @Router /admin/{id} [get]
func (e *NoticeEngine) GinHandleRetrieveNotice(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		ctx.JSON(http.StatusNotFound, response.NotFound())
		return
	}

	detail, err := e.AdminService.Retrieve(id)
	if err != nil {
		failJSON(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, detail)
}

// GinHandleUpdateNotice 编辑公告（仅草稿）
// @Summary 编辑公告
// @Tags 公告-管理端
// @Accept json
// @Produce json
// @Param id path int true "公告ID"
// @Param req body service.NoticeForm true "公告内容"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} response.Failed
// @Failure 404 {object} response.Failed
// @Router /admin/{id} [put]
func (e *NoticeEngine) GinHandleUpdateNotice(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		ctx.JSON(http.StatusNotFound, response.NotFound())
		return
	}

	var f service.NoticeForm
	if err := ctx.ShouldBindJSON(&f); err != nil {
		ctx.JSON(http.StatusBadRequest, response.ValidationFailed(err.Error()))
		return
	}

	if err := e.AdminService.Update(id, &f); err != nil {
		failJSON(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{})
}

// GinHandleDeleteNotice 删除公告（仅草稿，软删）
// @Summary 删除公告
// @Tags 公告-管理端
// @Produce json
// @Param id path int true "公告ID"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} response.Failed
// @Failure 404 {object} response.Failed
// @Router /admin/{id} [delete]
func (e *NoticeEngine) GinHandleDeleteNotice(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		ctx.JSON(http.StatusNotFound, response.NotFound())
		return
	}

	if err := e.AdminService.Delete(id); err != nil {
		failJSON(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{})
}

// GinHandleRescheduleNotice 调整定时发布时间（仅排队中）
// @Summary 调整定时发布时间
// @Tags 公告-管理端
// @Accept json
// @Produce json
// @Param id path int true "公告ID"
// @Param req body service.ChangeTimingForm true "新发布时间"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} response.Failed
// @Failure 404 {object} response.Failed
// @Router /admin/timing/{id} [put]
func (e *NoticeEngine) GinHandleRescheduleNotice(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		ctx.JSON(http.StatusNotFound, response.NotFound())
		return
	}

	var f service.ChangeTimingForm
	if err := ctx.ShouldBindJSON(&f); err != nil {
		ctx.JSON(http.StatusBadRequest, response.ValidationFailed(response.DetailInvalidPublishTime))
		return
	}

	if err := e.AdminService.Reschedule(id, &f); err != nil {
		failJSON(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{})
}

// GinHandleCancelTiming 取消定时发送，公告退回草稿（仅排队中）
// @Summary 取消定时发送
// @Tags 公告-管理端
// @Produce json
// @Param id path int true "公告ID"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} response.Failed
// @Failure 404 {object} response.Failed
// @Router /admin/timing/{id} [delete]
func (e *NoticeEngine) GinHandleCancelTiming(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		ctx.JSON(http.StatusNotFound, response.NotFound())
		return
	}

	if err := e.AdminService.CancelTiming(id); err != nil {
		failJSON(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{})
}

// GinHandleListNoticeTypes 公告类型字典
// @Summary 公告类型字典
// @Tags 公告-管理端
// @Produce json
// @Success 200 {array} service.TypeItem
// @Router /admin/types [get]
func (e *NoticeEngine) GinHandleListNoticeTypes(ctx *gin.Context) {
	items, err := e.AdminService.ListNoticeTypes()
	if err != nil {
		failJSON(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, items)
}

// GinHandleListReceiverTypes 接收者类型字典
// @Summary 接收者类型字典
// @Tags 公告-管理端
// @Produce json
// @Success 200 {array} service.TypeItem
// @Router /admin/receiver_types [get]
func (e *NoticeEngine) GinHandleListReceiverTypes(ctx *gin.Context) {
	items, err := e.AdminService.ListReceiverTypes()
	if err != nil {
		failJSON(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, items)
}
