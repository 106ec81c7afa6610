package handler

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"

	"PrivateCheck/internal/model"
	"PrivateCheck/internal/service"
	"PrivateCheck/pkg/response"
)

// GetContactSettings 查询紧急联系人设置，凭证只回显是否已配置
// GET /v1/settings/contacts
func GetContactSettings(ctx context.Context, c *app.RequestContext) {
	view, err := service.Contact().GetSettings(ctx)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, view)
}

// UpdateContactSettings 保存紧急联系人设置
// PUT /v1/settings/contacts
func UpdateContactSettings(ctx context.Context, c *app.RequestContext) {
	var req model.UpdateContactsRequest
	if err := c.BindAndValidate(&req); err != nil {
		response.BindError(ctx, c, err)
		return
	}

	if err := service.Contact().UpdateSettings(ctx, req); err != nil {
		response.Error(ctx, c, err)
		return
	}

	view, err := service.Contact().GetSettings(ctx)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, view)
}
