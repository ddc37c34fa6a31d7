package notice_sdk

import (
	"net/http"

	"github.com/cydxin/notice-sdk/response"
	"github.com/cydxin/notice-sdk/service"
	"github.com/gin-gonic/gin"
)

// -------------------- 待办（Backlog）相关接口 --------------------

// GinHandleCreateBacklog 扇出一个流程节点的待办
// @Summary 新建待办
// @Description 按 receivers 扇出 N 行同 batch 记录；不传 batch 自动生成
// @Tags 待办
// @Accept json
// @Produce json
// @Param req body service.BacklogForm true "待办内容"
// @Success 200 {object} map[string][]int64 "{id: [ids]}"
// @Failure 400 {object} response.Failed
// @Failure 401 {object} response.Failed
// @Security BearerAuth
// @Router /backlog [post]
func (e *NoticeEngine) GinHandleCreateBacklog(ctx *gin.Context) {
	creator, ok := receiverFromCtx(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, response.AuthFailed())
		return
	}

	var f service.BacklogForm
	if err := ctx.ShouldBindJSON(&f); err != nil {
		ctx.JSON(http.StatusBadRequest, response.ValidationFailed(err.Error()))
		return
	}

	ids, err := e.BacklogService.Create(&f, creator)
	if err != nil {
		failJSON(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"id": ids})
}

// GinHandleBacklogStats 当前接收者的待办统计
// @Summary 待办统计
// @Tags 待办
// @Produce json
// @Success 200 {object} service.BacklogStats
// @Failure 401 {object} response.Failed
// @Security BearerAuth
// @Router /backlog [get]
func (e *NoticeEngine) GinHandleBacklogStats(ctx *gin.Context) {
	receiver, ok := receiverFromCtx(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, response.AuthFailed())
		return
	}

	stats, err := e.BacklogService.Stats(receiver)
	if err != nil {
		failJSON(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, stats)
}

// GinHandleListBacklogs 待办分页列表
// @Summary 待办列表
// @Tags 待办
// @Produce json
// @Param page query int false "页码(默认1)"
// @Param size query int false "每页条数(默认10)"
// @Param backlog_type query string false "all/undo/done/initiated"
// @Param keyword query string false "obj_key/obj_name/initiator_name 模糊"
// @Param start query string false "创建时间下限"
// @Param end query string false "创建时间上限"
// @Param obj_status query string false "业务对象状态"
// @Success 200 {object} service.PageResult
// @Failure 400 {object} response.Failed
// @Failure 401 {object} response.Failed
// @Security BearerAuth
// @Router /backlog/list [get]
func (e *NoticeEngine) GinHandleListBacklogs(ctx *gin.Context) {
	receiver, ok := receiverFromCtx(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, response.AuthFailed())
		return
	}

	page, size, errDetail := pageParams(ctx)
	if errDetail != "" {
		ctx.JSON(http.StatusBadRequest, response.ValidationFailed(errDetail))
		return
	}

	filter := &service.BacklogFilter{
		BacklogType: ctx.Query("backlog_type"),
		Keyword:     ctx.Query("keyword"),
		Start:       ctx.Query("start"),
		End:         ctx.Query("end"),
		ObjStatus:   ctx.Query("obj_status"),
	}
	result, err := e.BacklogService.List(receiver, page, size, filter)
	if err != nil {
		failJSON(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, result)
}

// GinHandleReadBacklog 标记待办已读
// @Summary 待办已读
// @Tags 待办
// @Produce json
// @Param id path int true "待办ID"
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} response.Failed
// @Security BearerAuth
// @Router /backlog/read/{id} [put]
func (e *NoticeEngine) GinHandleReadBacklog(ctx *gin.Context) {
	receiver, ok := receiverFromCtx(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, response.AuthFailed())
		return
	}

	id, ok := pathID(ctx)
	if !ok {
		ctx.JSON(http.StatusNotFound, response.NotFound())
		return
	}

	if err := e.BacklogService.Read(receiver, id); err != nil {
		failJSON(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{})
}

// GinHandleHandleBacklog 整批处理一个流程节点
// @Summary 整批处理待办
// @Description 同 batch 的行整组更新；is_done=true 时不在 handlers 里的接收者行被软删
// @Tags 待办
// @Accept json
// @Produce json
// @Param req body service.HandleBacklogForm true "处理参数"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} response.Failed
// @Failure 404 {object} response.Failed
// @Security BearerAuth
// @Router /backlog/handle [post]
func (e *NoticeEngine) GinHandleHandleBacklog(ctx *gin.Context) {
	var f service.HandleBacklogForm
	if err := ctx.ShouldBindJSON(&f); err != nil {
		ctx.JSON(http.StatusBadRequest, response.ValidationFailed(err.Error()))
		return
	}

	if err := e.BacklogService.HandleBatch(&f); err != nil {
		failJSON(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{})
}

// GinHandleHandleObject 按业务对象批量改流程状态
// @Summary 按对象处理待办
// @Tags 待办
// @Accept json
// @Produce json
// @Param req body service.HandleObjForm true "处理参数"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} response.Failed
// @Failure 404 {object} response.Failed
// @Security BearerAuth
// @Router /backlog/handle_obj [post]
func (e *NoticeEngine) GinHandleHandleObject(ctx *gin.Context) {
	var f service.HandleObjForm
	if err := ctx.ShouldBindJSON(&f); err != nil {
		ctx.JSON(http.StatusBadRequest, response.ValidationFailed(err.Error()))
		return
	}

	if err := e.BacklogService.HandleObject(&f); err != nil {
		failJSON(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{})
}
