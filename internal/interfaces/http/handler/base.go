// Package handler 提供 HTTP 请求处理器
package handler

import (
	"context"

	"ad-workflow-api/internal/interfaces/http/dto"
	"ad-workflow-api/pkg/errors"
	"ad-workflow-api/pkg/logger"

	"github.com/gin-gonic/gin"
)

// replyError 将应用错误映射为 HTTP 响应
func replyError(ctx context.Context, c *gin.Context, err error, fallback string) {
	if errors.IsAppError(err) {
		appErr := errors.AsAppError(err)
		var detail *dto.ErrorDetail
		if appErr.Detail != "" || appErr.Code != "" {
			detail = &dto.ErrorDetail{
				ErrorCode: string(appErr.Code),
				Details:   appErr.Detail,
			}
		}
		c.JSON(appErr.HTTPStatus, dto.ErrorResponse{
			Code:    appErr.HTTPStatus,
			Message: appErr.Message,
			Error:   detail,
			TraceID: c.GetString("trace_id"),
		})
		return
	}
	logger.Error(ctx, fallback, err)
	dto.InternalError(c, fallback)
}
