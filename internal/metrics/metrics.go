// Package metrics 提供Prometheus文本格式的监控指标
package metrics

import (
	"fmt"
	"net/http"
	"sort"
	"strings"
	"sync"
	"time"
)

// Registry 指标注册表
type Registry struct {
	counters   map[string]*Counter
	gauges     map[string]*Gauge
	histograms map[string]*Histogram
	mu         sync.RWMutex
}

// Counter 计数器
type Counter struct {
	Name   string
	Help   string
	values map[string]float64
	mu     sync.RWMutex
}

// Gauge 仪表盘
type Gauge struct {
	Name   string
	Help   string
	values map[string]float64
	mu     sync.RWMutex
}

// Histogram 直方图
type Histogram struct {
	Name    string
	Help    string
	Buckets []float64
	counts  map[string][]int
	sums    map[string]float64
	totals  map[string]int
	mu      sync.RWMutex
}

var (
	registry *Registry
	once     sync.Once
)

// GetRegistry 获取全局注册表
func GetRegistry() *Registry {
	once.Do(func() {
		registry = &Registry{
			counters:   make(map[string]*Counter),
			gauges:     make(map[string]*Gauge),
			histograms: make(map[string]*Histogram),
		}
		initDefaultMetrics()
	})
	return registry
}

// initDefaultMetrics 初始化默认指标
func initDefaultMetrics() {
	// HTTP 层
	registry.NewCounter("gongwei_http_requests_total", "HTTP请求总数")
	registry.NewHistogram("gongwei_http_request_duration_seconds", "HTTP请求延迟",
		[]float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0})

	// 排位引擎
	registry.NewCounter("gongwei_plans_total", "周排位求解次数")
	registry.NewHistogram("gongwei_plan_duration_seconds", "周排位求解延迟",
		[]float64{0.01, 0.05, 0.1, 0.5, 1.0, 2.5, 5.0, 10.0, 30.0, 60.0})
	registry.NewGauge("gongwei_micro_teams", "最近一次求解的微组数")
	registry.NewGauge("gongwei_model_variables", "最近一次求解的变量数")
	registry.NewGauge("gongwei_plan_objective", "最近一次求解的目标函数值")
}

// NewCounter 创建计数器
func (r *Registry) NewCounter(name, help string) *Counter {
	r.mu.Lock()
	defer r.mu.Unlock()
	c := &Counter{Name: name, Help: help, values: make(map[string]float64)}
	r.counters[name] = c
	return c
}

// NewGauge 创建仪表盘
func (r *Registry) NewGauge(name, help string) *Gauge {
	r.mu.Lock()
	defer r.mu.Unlock()
	g := &Gauge{Name: name, Help: help, values: make(map[string]float64)}
	r.gauges[name] = g
	return g
}

// NewHistogram 创建直方图
func (r *Registry) NewHistogram(name, help string, buckets []float64) *Histogram {
	r.mu.Lock()
	defer r.mu.Unlock()
	h := &Histogram{
		Name:    name,
		Help:    help,
		Buckets: buckets,
		counts:  make(map[string][]int),
		sums:    make(map[string]float64),
		totals:  make(map[string]int),
	}
	r.histograms[name] = h
	return h
}

// IncCounter 计数器加一，labels 形如 `status="ok"`
func (r *Registry) IncCounter(name, labels string) {
	r.mu.RLock()
	c := r.counters[name]
	r.mu.RUnlock()
	if c == nil {
		return
	}
	c.mu.Lock()
	c.values[labels]++
	c.mu.Unlock()
}

// SetGauge 设置仪表盘取值
func (r *Registry) SetGauge(name, labels string, value float64) {
	r.mu.RLock()
	g := r.gauges[name]
	r.mu.RUnlock()
	if g == nil {
		return
	}
	g.mu.Lock()
	g.values[labels] = value
	g.mu.Unlock()
}

// Observe 记录直方图样本
func (r *Registry) Observe(name, labels string, value float64) {
	r.mu.RLock()
	h := r.histograms[name]
	r.mu.RUnlock()
	if h == nil {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.counts[labels]; !ok {
		h.counts[labels] = make([]int, len(h.Buckets))
	}
	for i, bound := range h.Buckets {
		if value <= bound {
			h.counts[labels][i]++
		}
	}
	h.sums[labels] += value
	h.totals[labels]++
}

// ObserveDuration 记录耗时样本
func (r *Registry) ObserveDuration(name, labels string, d time.Duration) {
	r.Observe(name, labels, d.Seconds())
}

// Handler 返回 /metrics 端点处理器，输出Prometheus文本格式
func (r *Registry) Handler() http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "text/plain; version=0.0.4")
		fmt.Fprint(w, r.Export())
	}
}

// Export 导出全部指标
func (r *Registry) Export() string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var sb strings.Builder
	for _, name := range sortedKeys(r.counters) {
		c := r.counters[name]
		fmt.Fprintf(&sb, "# HELP %s %s\n# TYPE %s counter\n", c.Name, c.Help, c.Name)
		c.mu.RLock()
		for _, labels := range sortedKeys(c.values) {
			fmt.Fprintf(&sb, "%s%s %g\n", c.Name, renderLabels(labels), c.values[labels])
		}
		c.mu.RUnlock()
	}
	for _, name := range sortedKeys(r.gauges) {
		g := r.gauges[name]
		fmt.Fprintf(&sb, "# HELP %s %s\n# TYPE %s gauge\n", g.Name, g.Help, g.Name)
		g.mu.RLock()
		for _, labels := range sortedKeys(g.values) {
			fmt.Fprintf(&sb, "%s%s %g\n", g.Name, renderLabels(labels), g.values[labels])
		}
		g.mu.RUnlock()
	}
	for _, name := range sortedKeys(r.histograms) {
		h := r.histograms[name]
		fmt.Fprintf(&sb, "# HELP %s %s\n# TYPE %s histogram\n", h.Name, h.Help, h.Name)
		h.mu.RLock()
		for _, labels := range sortedKeys(h.totals) {
			for i, bound := range h.Buckets {
				fmt.Fprintf(&sb, "%s_bucket%s %d\n", h.Name, renderBucketLabels(labels, fmt.Sprintf("%g", bound)), h.counts[labels][i])
			}
			fmt.Fprintf(&sb, "%s_bucket%s %d\n", h.Name, renderBucketLabels(labels, "+Inf"), h.totals[labels])
			fmt.Fprintf(&sb, "%s_sum%s %g\n", h.Name, renderLabels(labels), h.sums[labels])
			fmt.Fprintf(&sb, "%s_count%s %d\n", h.Name, renderLabels(labels), h.totals[labels])
		}
		h.mu.RUnlock()
	}
	return sb.String()
}

// renderLabels 渲染标签串，空标签不输出花括号
func renderLabels(labels string) string {
	if labels == "" {
		return ""
	}
	return "{" + labels + "}"
}

// renderBucketLabels 渲染带 le 的桶标签
func renderBucketLabels(labels, le string) string {
	if labels == "" {
		return fmt.Sprintf(`{le="%s"}`, le)
	}
	return fmt.Sprintf(`{%s,le="%s"}`, labels, le)
}

// sortedKeys 返回排序后的键，保证导出顺序稳定
func sortedKeys[M ~map[string]V, V any](m M) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
