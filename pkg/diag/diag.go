// Package diag collects non-fatal problems found while parsing, merging or
// rendering UCI documents. Callers inject a Sink instead of the library
// writing warnings to a shared stream.
package diag

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
)

// Code classifies a diagnostic.
type Code string

const (
	CodeMalformedLine         Code = "malformed-line"
	CodeCommentDropped        Code = "comment-dropped"
	CodeEntryOutsideBlock     Code = "entry-outside-block"
	CodeVariantConflict       Code = "variant-conflict"
	CodeUnserializableSection Code = "unserializable-section"
	CodeSortKey               Code = "sort-key"
)

// Diagnostic describes one problem. Line is 1-based and zero when the
// problem is not tied to a source line.
type Diagnostic struct {
	Line    int
	Code    Code
	Message string
	Text    string
}

func (d Diagnostic) String() string {
	if d.Line > 0 {
		return fmt.Sprintf("line %d: %s: %s", d.Line, d.Code, d.Message)
	}
	return fmt.Sprintf("%s: %s", d.Code, d.Message)
}

// Error 让 Diagnostic 可以直接参与 errors.Join。
func (d Diagnostic) Error() string {
	return d.String()
}

// Sink receives diagnostics.
type Sink interface {
	Report(d Diagnostic)
}

// Collector 在内存中按顺序保存诊断信息。
type Collector struct {
	items []Diagnostic
}

// Report 实现 Sink。
func (c *Collector) Report(d Diagnostic) {
	c.items = append(c.items, d)
}

// All 返回收集到的全部诊断。
func (c *Collector) All() []Diagnostic {
	return c.items
}

// Len 返回诊断数量。
func (c *Collector) Len() int {
	return len(c.items)
}

// Codes 返回每条诊断的 Code，便于测试断言。
func (c *Collector) Codes() []Code {
	out := make([]Code, 0, len(c.items))
	for _, d := range c.items {
		out = append(out, d.Code)
	}
	return out
}

// Err 将全部诊断合并为一个 error，没有诊断时返回 nil。
func (c *Collector) Err() error {
	if len(c.items) == 0 {
		return nil
	}
	errs := make([]error, 0, len(c.items))
	for _, d := range c.items {
		errs = append(errs, d)
	}
	return errors.Join(errs...)
}

type discard struct{}

func (discard) Report(Diagnostic) {}

// Discard drops every diagnostic.
var Discard Sink = discard{}

type multi []Sink

func (m multi) Report(d Diagnostic) {
	for _, s := range m {
		s.Report(d)
	}
}

// Tee fans a diagnostic out to every non-nil sink.
func Tee(sinks ...Sink) Sink {
	out := make(multi, 0, len(sinks))
	for _, s := range sinks {
		if s != nil {
			out = append(out, s)
		}
	}
	return out
}

// OrDiscard returns s, or Discard when s is nil.
func OrDiscard(s Sink) Sink {
	if s == nil {
		return Discard
	}
	return s
}

// LogSink forwards diagnostics to a charmbracelet logger as warnings.
type LogSink struct {
	logger *log.Logger
}

// NewLogSink wraps logger.
func NewLogSink(logger *log.Logger) *LogSink {
	return &LogSink{logger: logger}
}

// Report 实现 Sink。
func (s *LogSink) Report(d Diagnostic) {
	if s == nil || s.logger == nil {
		return
	}
	kv := []any{"code", string(d.Code)}
	if d.Line > 0 {
		kv = append(kv, "line", d.Line)
	}
	if d.Text != "" {
		kv = append(kv, "text", d.Text)
	}
	s.logger.Warn(d.Message, kv...)
}
