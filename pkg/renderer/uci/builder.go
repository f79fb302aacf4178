package uci

import (
	"fmt"

	ast "github.com/honeybbq/uciconfig/pkg/ast/uci"
	"github.com/honeybbq/uciconfig/pkg/diag"
)

// builder 持有最终文档，负责把完成的块提交到对应容器。
type builder struct {
	doc  *ast.Document
	sink diag.Sink
}

func newBuilder(sink diag.Sink) *builder {
	return &builder{doc: ast.NewDocument(), sink: sink}
}

// commit 按块名选择容器形态；与已有形态冲突时保留旧数据并丢弃该块。
func (b *builder) commit(block *ast.Block, line int) {
	kind := ast.KindFor(block.Name)
	section, ok := b.doc.Ensure(block.Type, kind)
	if !ok {
		b.sink.Report(diag.Diagnostic{
			Line:    line,
			Code:    diag.CodeVariantConflict,
			Message: fmt.Sprintf("section %q already holds %s blocks, dropping %s block", block.Type, section.Kind, kind),
			Text:    headerText(block),
		})
		return
	}
	if kind == ast.KindNamed {
		section.Set(block.Name, block)
		return
	}
	section.Append(block)
}

func headerText(block *ast.Block) string {
	if block.Name == "" {
		return "config " + block.Type
	}
	return fmt.Sprintf("config %s '%s'", block.Type, block.Name)
}
