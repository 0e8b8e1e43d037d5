// Package errorx 提供带业务错误码的错误类型
// 业务逻辑层返回 CodeError，处理层据此生成统一的响应结构
package errorx

import (
	"errors"
	"fmt"
)

// 业务错误码定义
const (
	CodeSuccess        = 1000 // 成功
	CodeInvalidParam   = 1001 // 请求参数错误
	CodeUserExist      = 1002 // 用户已存在
	CodeUserNotExist   = 1003 // 用户不存在
	CodeInvalidPwd     = 1004 // 密码错误
	CodeServerBusy     = 1005 // 服务繁忙
	CodeUnauthorized   = 1006 // 未登录或 Token 无效
	CodeForbidden      = 1007 // 没有操作权限
	CodeNotFound       = 1008 // 记录不存在
	CodeAlreadyExist   = 1009 // 记录已存在
	CodeDBError        = 1010 // 数据库错误
	CodeCacheError     = 1011 // 缓存错误
	CodeAlreadyPending = 1012 // 已有待处理的申请
	CodeGroupFull      = 1013 // 群组人数已满
	CodeMuted          = 1014 // 已被禁言
)

// CodeError 带业务错误码的错误
type CodeError struct {
	Code  int
	Msg   string
	cause error
}

// Error 实现 error 接口
func (e *CodeError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("code: %d, msg: %s, cause: %v", e.Code, e.Msg, e.cause)
	}
	return fmt.Sprintf("code: %d, msg: %s", e.Code, e.Msg)
}

// Unwrap 支持 errors.Is / errors.As 链式匹配
func (e *CodeError) Unwrap() error {
	return e.cause
}

// New 创建一个新的业务错误
func New(code int, msg string) *CodeError {
	return &CodeError{Code: code, Msg: msg}
}

// Newf 创建一个格式化消息的业务错误
func Newf(code int, format string, args ...interface{}) *CodeError {
	return &CodeError{Code: code, Msg: fmt.Sprintf(format, args...)}
}

// Wrap 包装底层错误，附加业务错误码
func Wrap(err error, code int, msg string) *CodeError {
	return &CodeError{Code: code, Msg: msg, cause: err}
}

// Wrapf 包装底层错误，附加格式化的业务错误消息
func Wrapf(err error, code int, format string, args ...interface{}) *CodeError {
	return &CodeError{Code: code, Msg: fmt.Sprintf(format, args...), cause: err}
}

// GetCode 获取错误中的业务错误码，非 CodeError 返回 CodeServerBusy
func GetCode(err error) int {
	var codeErr *CodeError
	if errors.As(err, &codeErr) {
		return codeErr.Code
	}
	return CodeServerBusy
}

// IsNotFound 判断错误是否为记录不存在
func IsNotFound(err error) bool {
	return GetCode(err) == CodeNotFound
}

// 常用业务错误
var (
	ErrInvalidParam = New(CodeInvalidParam, "请求参数错误")
	ErrServerBusy   = New(CodeServerBusy, "服务繁忙，请稍后再试")
	ErrUnauthorized = New(CodeUnauthorized, "请先登录")
	ErrForbidden    = New(CodeForbidden, "没有操作权限")
)
