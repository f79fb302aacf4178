package ucierr

import (
	"errors"
	"fmt"
)

// Kind identifies the high level class of an error surfaced by uciconfig.
type Kind string

const (
	// KindParse indicates UCI 文本在严格模式下存在问题。
	KindParse Kind = "parse"
	// KindRender indicates 渲染失败或 API 误用（例如渲染 nil 文档）。
	KindRender Kind = "render"
	// KindConflict 表示 section 容器形态冲突（严格模式下由解析返回）。
	KindConflict Kind = "conflict"
	// KindValidation indicates caller supplied input failed validation.
	KindValidation Kind = "validation"
	// KindIO 表示读取或写入文件失败。
	KindIO Kind = "io"
	// KindInternal 表示未知或内部错误。
	KindInternal Kind = "internal"
)

// Error 包装底层错误并附加 Kind，方便调用方根据类型处理。
type Error struct {
	Kind Kind
	Err  error
}

// Error 实现 error 接口。
func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err == nil {
		return string(e.Kind)
	}
	return fmt.Sprintf("%s: %v", e.Kind, e.Err)
}

// Unwrap 允许 errors.Is/As 访问底层错误。
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// New 创建指定 Kind 的错误。
func New(kind Kind, err error) error {
	if err == nil {
		err = errors.New(string(kind))
	}
	return &Error{Kind: kind, Err: err}
}

// Is 判断 err 链上是否存在指定 Kind 的错误，嵌套的 *Error 也会逐层检查。
func Is(err error, kind Kind) bool {
	var e *Error
	for errors.As(err, &e) {
		if e.Kind == kind {
			return true
		}
		err = e.Err
	}
	return false
}
