package uci

import (
	"context"
	"errors"
	"strings"

	ast "github.com/honeybbq/uciconfig/pkg/ast/uci"
	"github.com/honeybbq/uciconfig/pkg/diag"
	"github.com/honeybbq/uciconfig/pkg/ucierr"
	"github.com/honeybbq/uciconfig/pkg/uciconfig"
)

// ctxCheckInterval 控制解析过程中检查 context 的行数间隔。
const ctxCheckInterval = 4096

// Parser 将 UCI 文本解析为 ast.Document。
// 解析是尽力而为的：无法识别的行只产生诊断信息，不会中断解析。
type Parser struct{}

func NewParser() *Parser {
	return &Parser{}
}

// Parse 实现 renderer.Parser。
func (p *Parser) Parse(ctx context.Context, src []byte, opts uciconfig.ParseOptions) (*ast.Document, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var collected diag.Collector
	sink := diag.OrDiscard(opts.Sink)
	if opts.Strict {
		sink = diag.Tee(sink, &collected)
	}

	acc := &accumulator{builder: newBuilder(sink), sink: sink}
	lineNo := 0
	for raw := range strings.Lines(string(src)) {
		lineNo++
		if lineNo%ctxCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		acc.feed(lineNo, raw)
	}
	acc.finish()

	doc := acc.builder.doc
	if opts.Strict && collected.Len() > 0 {
		return doc, ucierr.New(ucierr.KindParse, strictErr(collected.All()))
	}
	return doc, nil
}

// strictErr 合并全部诊断；容器形态冲突额外标记为 KindConflict。
func strictErr(diags []diag.Diagnostic) error {
	errs := make([]error, 0, len(diags))
	for _, d := range diags {
		if d.Code == diag.CodeVariantConflict {
			errs = append(errs, ucierr.New(ucierr.KindConflict, d))
			continue
		}
		errs = append(errs, d)
	}
	return errors.Join(errs...)
}

// accumulator 是块累积状态机：open 为 nil 时处于 Idle，否则为 Open(block)。
type accumulator struct {
	builder  *builder
	sink     diag.Sink
	open     *ast.Block
	openLine int
	started  bool
}

func (a *accumulator) feed(lineNo int, raw string) {
	line := Classify(raw)
	switch line.Kind {
	case LineBlank:
		a.close()
	case LineComment:
		// 注释无法写回输出，只报告，不改变状态
		a.report(lineNo, diag.CodeCommentDropped, "comment dropped", raw)
	case LinePackage:
		// package 只能出现在第一个 config 之前，且只能出现一次
		if a.started || a.builder.doc.Package != "" {
			a.report(lineNo, diag.CodeMalformedLine, "package line after first section", raw)
			return
		}
		a.builder.doc.Package = line.Name
	case LineHeader:
		// 缺少空行分隔时，新的 header 隐式关闭上一个块
		a.close()
		a.open = ast.NewBlock(line.Type, line.Name)
		a.openLine = lineNo
		a.started = true
	case LineOption, LineList:
		if a.open == nil {
			a.report(lineNo, diag.CodeEntryOutsideBlock, "entry outside any block", raw)
			return
		}
		if line.Kind == LineOption {
			a.open.SetOption(line.Key, line.Value)
		} else {
			a.open.AppendList(line.Key, line.Value)
		}
	default:
		a.report(lineNo, diag.CodeMalformedLine, "unrecognized line", raw)
	}
}

// close 提交当前块并回到 Idle；Idle 状态下为空操作。
func (a *accumulator) close() {
	if a.open == nil {
		return
	}
	block := a.open
	a.open = nil
	a.builder.commit(block, a.openLine)
}

// finish 在输入结束时提交未以空行结尾的最后一个块。
func (a *accumulator) finish() {
	a.close()
}

func (a *accumulator) report(lineNo int, code diag.Code, msg, raw string) {
	a.sink.Report(diag.Diagnostic{
		Line:    lineNo,
		Code:    code,
		Message: msg,
		Text:    strings.TrimRight(raw, "\r\n"),
	})
}
