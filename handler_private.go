package notice_sdk

import (
	"net/http"

	"github.com/cydxin/notice-sdk/response"
	"github.com/cydxin/notice-sdk/service"
	"github.com/gin-gonic/gin"
)

// -------------------- 私信（PrivateNotice）相关接口 --------------------

// GinHandleCreatePrivate 扇出私信
// @Summary 新建私信
// @Tags 私信
// @Accept json
// @Produce json
// @Param req body service.PrivateForm true "私信内容"
// @Success 200 {object} map[string][]int64 "{id: [ids]}"
// @Failure 400 {object} response.Failed
// @Failure 401 {object} response.Failed
// @Security BearerAuth
// @Router /private [post]
func (e *NoticeEngine) GinHandleCreatePrivate(ctx *gin.Context) {
	creator, ok := receiverFromCtx(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, response.AuthFailed())
		return
	}

	var f service.PrivateForm
	if err := ctx.ShouldBindJSON(&f); err != nil {
		ctx.JSON(http.StatusBadRequest, response.ValidationFailed(err.Error()))
		return
	}

	ids, err := e.PrivateService.Create(&f, creator)
	if err != nil {
		failJSON(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"id": ids})
}

// GinHandleUnreadPrivate 是否有未读私信
// @Summary 未读私信探测
// @Tags 私信
// @Produce json
// @Success 200 {object} map[string]bool "{undo}"
// @Failure 401 {object} response.Failed
// @Security BearerAuth
// @Router /private [get]
func (e *NoticeEngine) GinHandleUnreadPrivate(ctx *gin.Context) {
	receiver, ok := receiverFromCtx(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, response.AuthFailed())
		return
	}

	undo, err := e.PrivateService.HasUnread(receiver)
	if err != nil {
		failJSON(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"undo": undo})
}

// GinHandleListPrivates 私信分页列表
// @Summary 私信列表
// @Tags 私信
// @Produce json
// @Param page query int false "页码(默认1)"
// @Param size query int false "每页条数(默认10)"
// @Param title query string false "标题模糊"
// @Param unread_only query bool false "只看未读"
// @Success 200 {object} service.PageResult
// @Failure 400 {object} response.Failed
// @Failure 401 {object} response.Failed
// @Security BearerAuth
// @Router /private/list [get]
func (e *NoticeEngine) GinHandleListPrivates(ctx *gin.Context) {
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

	unreadOnly := ctx.DefaultQuery("unread_only", "false") == "true"
	result, err := e.PrivateService.List(receiver, page, size, ctx.Query("title"), unreadOnly)
	if err != nil {
		failJSON(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, result)
}

// GinHandlePrivateDetail 私信详情
// @Summary 私信详情
// @Tags 私信
// @Produce json
// @Param id path int true "私信ID"
// @Success 200 {object} service.PrivateNoticeItem
// @Failure 401 {object} response.Failed
// @Failure 404 {object} response.Failed
// @Security BearerAuth
// @Router /private/{id} [get]
func (e *NoticeEngine) GinHandlePrivateDetail(ctx *gin.Context) {
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

	item, err := e.PrivateService.Detail(receiver, id)
	if err != nil {
		failJSON(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, item)
}

// GinHandleFinishPrivate 标记私信已读
// @Summary 私信已读
// @Tags 私信
// @Produce json
// @Param id path int true "私信ID"
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} response.Failed
// @Security BearerAuth
// @Router /private/read/{id} [put]
func (e *NoticeEngine) GinHandleFinishPrivate(ctx *gin.Context) {
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

	if err := e.PrivateService.Finish(receiver, id); err != nil {
		failJSON(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{})
}

// GinHandleChangeNodeStatus 节点完成批量置位
// @Summary 节点完成置位
// @Description 把 {obj_key, business_type, node, receiver} 命中的所有私信标记节点完成
// @Tags 私信
// @Accept json
// @Produce json
// @Param req body service.NodeStatusForm true "节点定位"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} response.Failed
// @Failure 401 {object} response.Failed
// @Security BearerAuth
// @Router /private/node_status [put]
func (e *NoticeEngine) GinHandleChangeNodeStatus(ctx *gin.Context) {
	receiver, ok := receiverFromCtx(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, response.AuthFailed())
		return
	}

	var f service.NodeStatusForm
	if err := ctx.ShouldBindJSON(&f); err != nil {
		ctx.JSON(http.StatusBadRequest, response.ValidationFailed(err.Error()))
		return
	}

	if err := e.PrivateService.ChangeNodeStatus(receiver, &f); err != nil {
		failJSON(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{})
}
