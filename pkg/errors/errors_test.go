package errors

import (
	"fmt"
	"net/http"
	"testing"
)

func TestAppError_Error(t *testing.T) {
	e := New(CodeSolverError, "求解失败")
	if e.Error() != "[SOLVER_ERROR] 求解失败" {
		t.Errorf("Error() = %q", e.Error())
	}

	wrapped := Wrap(fmt.Errorf("connection refused"), CodeDatabaseError, "数据库不可用")
	if wrapped.Unwrap() == nil {
		t.Error("Unwrap() 应返回底层错误")
	}
}

func TestCodeToHTTPStatus(t *testing.T) {
	tests := []struct {
		name     string
		code     Code
		expected int
	}{
		{"输入无效", CodeInvalidInput, http.StatusBadRequest},
		{"解析失败", CodeParseError, http.StatusBadRequest},
		{"校验失败", CodeValidationFail, http.StatusBadRequest},
		{"无可行解", CodeNoFeasibleSolution, http.StatusUnprocessableEntity},
		{"未找到", CodeNotFound, http.StatusNotFound},
		{"超时", CodeTimeout, http.StatusGatewayTimeout},
		{"求解器失败", CodeSolverError, http.StatusInternalServerError},
		{"拆组不变量", CodeSplitInvariant, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetHTTPStatus(New(tt.code, "x")); got != tt.expected {
				t.Errorf("HTTP 状态 = %d, expected %d", got, tt.expected)
			}
		})
	}
}

func TestIs(t *testing.T) {
	err := NoFeasibleSolution("测试")
	if !Is(err, CodeNoFeasibleSolution) {
		t.Error("应匹配 NO_FEASIBLE_SOLUTION")
	}
	if Is(err, CodeSolverError) {
		t.Error("不应匹配 SOLVER_ERROR")
	}
	if Is(fmt.Errorf("plain"), CodeNoFeasibleSolution) {
		t.Error("普通错误不应匹配任何错误码")
	}
}

func TestGetCode(t *testing.T) {
	if GetCode(SplitInvariant("t/x", "人数不符")) != CodeSplitInvariant {
		t.Error("应返回 SPLIT_INVARIANT")
	}
	if GetCode(fmt.Errorf("plain")) != CodeUnknown {
		t.Error("普通错误应返回 UNKNOWN")
	}
}

func TestSolverError_WrapsCause(t *testing.T) {
	cause := fmt.Errorf("节点预算耗尽")
	err := SolverError("branch-bound", cause)
	if err.Code != CodeSolverError {
		t.Errorf("Code = %q, expected %q", err.Code, CodeSolverError)
	}
	if err.Unwrap() != cause {
		t.Error("应保留底层原因")
	}
}

func TestValidationErrors(t *testing.T) {
	ve := &ValidationErrors{}
	if ve.HasErrors() {
		t.Error("空集合不应有错误")
	}

	ve.Add("size", "人数必须为正")
	ve.Add("team", "团队无容量")
	if !ve.HasErrors() {
		t.Error("应有错误")
	}

	appErr := ve.ToAppError()
	if appErr.Code != CodeValidationFail {
		t.Errorf("Code = %q, expected %q", appErr.Code, CodeValidationFail)
	}
	if len(appErr.Fields) != 2 {
		t.Errorf("字段数 = %d, expected 2", len(appErr.Fields))
	}
}
