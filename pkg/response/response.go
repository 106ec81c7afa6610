package response

import (
	"context"
	"net/http"

	"github.com/cloudwego/hertz/pkg/app"

	"PrivateCheck/pkg/errors"
)

// ErrorResponse 统一的错误响应格式
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

type ErrorDetail struct {
	Details map[string]interface{} `json:"details,omitempty"`
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
}

// SuccessResponse 统一的成功响应格式
type SuccessResponse struct {
	Data interface{}            `json:"data"`
	Meta map[string]interface{} `json:"meta,omitempty"`
}

// 错误码到 HTTP 状态码的映射：存储类失败给 503，提示用户稍后重试
func httpStatus(err error) int {
	def, ok := err.(errors.Definition)
	if !ok {
		return http.StatusInternalServerError
	}

	switch def.Code {
	case errors.InvalidRequest.Code, errors.InvalidSettings.Code, errors.InvalidCheckInDate.Code:
		return http.StatusBadRequest
	case errors.StoreIO.Code, errors.SecretStoreIO.Code, errors.CheckInStoreFailed.Code:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func detail(err error, details map[string]interface{}) ErrorDetail {
	if def, ok := err.(errors.Definition); ok {
		return ErrorDetail{Code: def.Code, Message: def.Message, Details: details}
	}
	return ErrorDetail{Code: "INTERNAL_ERROR", Message: err.Error(), Details: details}
}

func Error(ctx context.Context, c *app.RequestContext, err error) {
	c.JSON(httpStatus(err), ErrorResponse{Error: detail(err, nil)})
}

func ErrorWithDetails(ctx context.Context, c *app.RequestContext, err error, details map[string]interface{}) {
	c.JSON(httpStatus(err), ErrorResponse{Error: detail(err, details)})
}

func Success(ctx context.Context, c *app.RequestContext, data interface{}) {
	c.JSON(http.StatusOK, SuccessResponse{Data: data})
}

func SuccessWithMeta(ctx context.Context, c *app.RequestContext, data interface{}, meta map[string]interface{}) {
	c.JSON(http.StatusOK, SuccessResponse{Data: data, Meta: meta})
}

func BindError(ctx context.Context, c *app.RequestContext, err error) {
	c.JSON(http.StatusBadRequest, ErrorResponse{
		Error: ErrorDetail{Code: errors.InvalidRequest.Code, Message: err.Error()},
	})
}
