// Package notice_sdk 提供站内通知 SDK 核心能力
// @title Notice SDK API
// @version 1.0
// @description 站内通知 SDK 的 RESTful API 文档，包含公告、待办、私信模块
// @description
// @description ## 错误响应格式
// @description 失败时统一返回：
// @description ```json
// @description {
// @description   "detail": "Invalid Notice Type",
// @description   "code": "invalid"
// @description }
// @description ```
// @description
// @description ## HTTP 状态码说明
// @description - **200**: 请求成功
// @description - **400**: 参数校验失败（code=invalid）
// @description - **401**: 认证失败（code=authentication_failed）
// @description - **404**: 资源不存在（code=not_found）
// @description - **500**: 服务器内部错误
//
// @termsOfService https://github.com/cydxin/notice-sdk
//
// @contact.name API Support
// @contact.url https://github.com/cydxin/notice-sdk/issues
// @contact.email support@example.com
//
// @license.name MIT
// @license.url https://opensource.org/licenses/MIT
//
// @host localhost:6789
// @BasePath /api/v1/notice
// @schemes http https
//
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description 格式：Bearer <token>
//
// @securityDefinitions.apikey QueryToken
// @in query
// @name token
// @description 用于 WebSocket 等无法传 header 的场景
package notice_sdk
