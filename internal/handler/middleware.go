// Package handler 提供HTTP请求处理器
package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gongwei/gongwei/internal/metrics"
	"github.com/gongwei/gongwei/pkg/logger"
)

// statusRecorder 捕获响应状态码
type statusRecorder struct {
	http.ResponseWriter
	status int
}

// WriteHeader 记录状态码
func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// RequestLogger 请求日志与指标中间件
func RequestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		duration := time.Since(start)
		logger.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", rec.status).
			Dur("duration", duration).
			Msg("HTTP请求")

		reg := metrics.GetRegistry()
		reg.IncCounter("gongwei_http_requests_total",
			fmt.Sprintf(`method=%q,path=%q,status="%d"`, r.Method, r.URL.Path, rec.status))
		reg.ObserveDuration("gongwei_http_request_duration_seconds",
			fmt.Sprintf(`method=%q,path=%q`, r.Method, r.URL.Path), duration)
	})
}
