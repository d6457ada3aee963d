package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// 业务错误码
const (
	CodeInvalidParam  = 100001 // 参数错误
	CodeUnauthorized  = 100002 // 未登录或会话过期
	CodeNotFound      = 100003 // 资源不存在
	CodeInternal      = 100004 // 内部错误
	CodeRateLimited   = 100005 // 请求过于频繁
	CodeLoginDisabled = 100006 // 未配置登录账号
)

// Response 统一响应结构
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// ErrorResponse 错误响应
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Detail  string `json:"detail,omitempty"`
}

// IngestError 写入接口的错误响应
type IngestError struct {
	Error   string      `json:"error"`
	Details interface{} `json:"details,omitempty"`
}

// DeleteResult 单条删除结果
type DeleteResult struct {
	Success bool   `json:"success"`
	Deleted int64  `json:"deleted"`
	Error   string `json:"error,omitempty"`
}

// Success 成功响应
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    0,
		Message: "success",
		Data:    data,
	})
}

// Error 错误响应
func Error(c *gin.Context, httpCode int, errCode int, message string) {
	c.JSON(httpCode, ErrorResponse{
		Code:    errCode,
		Message: message,
	})
}

// ErrorWithDetail 带详情的错误响应
func ErrorWithDetail(c *gin.Context, httpCode int, errCode int, message, detail string) {
	c.JSON(httpCode, ErrorResponse{
		Code:    errCode,
		Message: message,
		Detail:  detail,
	})
}

// AbortError 错误响应并终止后续处理（中间件使用）
func AbortError(c *gin.Context, httpCode int, errCode int, message string) {
	c.AbortWithStatusJSON(httpCode, ErrorResponse{
		Code:    errCode,
		Message: message,
	})
}

// Ingest 写入接口错误响应
func Ingest(c *gin.Context, httpCode int, message string) {
	c.AbortWithStatusJSON(httpCode, IngestError{Error: message})
}

// IngestWithDetails 写入接口错误响应（带详情）
func IngestWithDetails(c *gin.Context, httpCode int, message string, details interface{}) {
	c.AbortWithStatusJSON(httpCode, IngestError{Error: message, Details: details})
}
