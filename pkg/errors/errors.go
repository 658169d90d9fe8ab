// Package errors 提供统一的错误定义
package errors

import (
	"fmt"
	"net/http"
)

// ErrorCode 错误码类型
type ErrorCode string

// 预定义错误码
const (
	// 通用错误 (1xxx)
	CodeSuccess            ErrorCode = "0"
	CodeUnknown            ErrorCode = "1000"
	CodeInvalidParam       ErrorCode = "1001"
	CodeUnauthorized       ErrorCode = "1002"
	CodeForbidden          ErrorCode = "1003"
	CodeNotFound           ErrorCode = "1004"
	CodeConflict           ErrorCode = "1005"
	CodeInternalError      ErrorCode = "1006"
	CodeServiceUnavailable ErrorCode = "1007"

	// 认证授权错误 (2xxx)
	CodeTokenExpired     ErrorCode = "2001"
	CodeTokenInvalid     ErrorCode = "2002"
	CodeTokenMissing     ErrorCode = "2003"
	CodePermissionDenied ErrorCode = "2004"

	// 资源错误 (3xxx)
	CodeProjectNotFound     ErrorCode = "3001"
	CodeVideoNotFound       ErrorCode = "3002"
	CodeDeliverableNotFound ErrorCode = "3003"
	CodeAreaNotFound        ErrorCode = "3004"
	CodeCounterNotFound     ErrorCode = "3005"

	// 业务错误 (4xxx)
	CodePhaseViolation      ErrorCode = "4001"
	CodeVideosNotReady      ErrorCode = "4002"
	CodeDeliverableSealed   ErrorCode = "4003"
	CodeRegressionForbidden ErrorCode = "4004"
	CodeValidationFailed    ErrorCode = "4005"

	// 外部服务错误 (5xxx)
	CodeDatabaseError ErrorCode = "5001"
	CodeCacheError    ErrorCode = "5002"
)

// AppError 应用错误
type AppError struct {
	Code       ErrorCode `json:"code"`
	Message    string    `json:"message"`
	Detail     string    `json:"detail,omitempty"`
	HTTPStatus int       `json:"-"`
	Err        error     `json:"-"`
}

// Error 实现 error 接口
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap 返回底层错误
func (e *AppError) Unwrap() error {
	return e.Err
}

// WithDetail 添加详细信息
func (e *AppError) WithDetail(detail string) *AppError {
	clone := *e
	clone.Detail = detail
	return &clone
}

// WithError 添加底层错误
func (e *AppError) WithError(err error) *AppError {
	clone := *e
	clone.Err = err
	return &clone
}

// New 创建新的应用错误
func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: codeToHTTPStatus(code),
	}
}

// Newf 创建带格式化消息的应用错误
func Newf(code ErrorCode, format string, args ...any) *AppError {
	return New(code, fmt.Sprintf(format, args...))
}

// Wrap 包装错误
func Wrap(err error, code ErrorCode, message string) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: codeToHTTPStatus(code),
		Err:        err,
	}
}

// codeToHTTPStatus 错误码转 HTTP 状态码
func codeToHTTPStatus(code ErrorCode) int {
	switch code {
	case CodeSuccess:
		return http.StatusOK
	case CodeInvalidParam:
		return http.StatusBadRequest
	case CodeUnauthorized, CodeTokenExpired, CodeTokenInvalid, CodeTokenMissing:
		return http.StatusUnauthorized
	case CodeForbidden, CodePermissionDenied:
		return http.StatusForbidden
	case CodeNotFound, CodeProjectNotFound, CodeVideoNotFound,
		CodeDeliverableNotFound, CodeAreaNotFound, CodeCounterNotFound:
		return http.StatusNotFound
	case CodeConflict:
		return http.StatusConflict
	case CodePhaseViolation, CodeVideosNotReady, CodeDeliverableSealed,
		CodeRegressionForbidden:
		return http.StatusBadRequest
	case CodeValidationFailed:
		return http.StatusUnprocessableEntity
	case CodeServiceUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// 预定义错误
var (
	ErrInvalidParam     = New(CodeInvalidParam, "invalid parameter")
	ErrUnauthorized     = New(CodeUnauthorized, "unauthorized")
	ErrForbidden        = New(CodeForbidden, "forbidden")
	ErrNotFound         = New(CodeNotFound, "resource not found")
	ErrConflict         = New(CodeConflict, "resource conflict")
	ErrInternalError    = New(CodeInternalError, "internal server error")
	ErrPermissionDenied = New(CodePermissionDenied, "permission denied")

	ErrTokenExpired = New(CodeTokenExpired, "token expired")
	ErrTokenInvalid = New(CodeTokenInvalid, "token invalid")
	ErrTokenMissing = New(CodeTokenMissing, "token missing")

	ErrProjectNotFound     = New(CodeProjectNotFound, "project not found")
	ErrVideoNotFound       = New(CodeVideoNotFound, "video not found")
	ErrDeliverableNotFound = New(CodeDeliverableNotFound, "deliverable not found")
	ErrCounterNotFound     = New(CodeCounterNotFound, "ad counter row not found")

	ErrDeliverableSealed = New(CodeDeliverableSealed, "deliverable is immutable after AD number assignment")
)

// IsAppError 检查是否为 AppError
func IsAppError(err error) bool {
	_, ok := err.(*AppError)
	return ok
}

// AsAppError 将错误转换为 AppError
func AsAppError(err error) *AppError {
	if appErr, ok := err.(*AppError); ok {
		return appErr
	}
	return Wrap(err, CodeUnknown, "unknown error")
}
