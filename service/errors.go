package service

import "errors"

// ValidationError 输入/状态校验失败，Detail 原样进 400 响应体。
// 所有校验都发生在任何写库动作之前。
type ValidationError struct {
	Detail string
}

func (e *ValidationError) Error() string {
	return e.Detail
}

func invalid(detail string) error {
	return &ValidationError{Detail: detail}
}

var (
	// ErrNotFound 资源不存在、已软删或对当前接收者不可见（不可见与不存在不作区分）
	ErrNotFound = errors.New("not found")

	// ErrResolverNotConfigured 宿主没有配置 AllowedTypesResolver
	ErrResolverNotConfigured = errors.New("allowed types resolver is not configured")

	// ErrIncompleteClassification resolver 漏判了已知的类型名。
	// 这是部署缺陷不是请求级错误：新增类型必须被每个 resolver 实现显式判定，
	// 否则整个公告读取入口拒绝服务（fail closed）。
	ErrIncompleteClassification = errors.New("allowed types resolver left known types unclassified")
)
