// Package handler 提供HTTP请求处理器
package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gongwei/gongwei/pkg/errors"
	"github.com/gongwei/gongwei/pkg/logger"
)

// respondJSON 写入JSON响应
func respondJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.WithError(err).Msg("写入响应失败")
	}
}

// errorBody 错误响应体
type errorBody struct {
	Success bool             `json:"success"`
	Error   *errors.AppError `json:"error"`
}

// respondError 按错误码映射HTTP状态并写入错误响应
func respondError(w http.ResponseWriter, err error) {
	appErr, ok := err.(*errors.AppError)
	if !ok {
		appErr = errors.Wrap(err, errors.CodeInternal, "内部错误")
	}
	respondJSON(w, errors.GetHTTPStatus(appErr), errorBody{Success: false, Error: appErr})
}
