package uci

import (
	"context"
	"fmt"
	"strings"

	ast "github.com/honeybbq/uciconfig/pkg/ast/uci"
	"github.com/honeybbq/uciconfig/pkg/diag"
	"github.com/honeybbq/uciconfig/pkg/ucierr"
	"github.com/honeybbq/uciconfig/pkg/uciconfig"
)

// PlainTextRenderer 将 UCI AST 渲染为纯文本 DSL。
//
// 输出是规范化的：option 按键排序，随后是按键排序的 list，
// 同一个 list 键内保持追加顺序。因此即使没有任何变换，输出也可能与输入顺序不同。
type PlainTextRenderer struct{}

func NewPlainTextRenderer() *PlainTextRenderer {
	return &PlainTextRenderer{}
}

// Render 实现 renderer.Renderer。
func (r *PlainTextRenderer) Render(ctx context.Context, doc *ast.Document, opts uciconfig.RenderOptions) ([]byte, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	if doc == nil {
		return nil, ucierr.New(ucierr.KindRender, fmt.Errorf("uci document is nil"))
	}
	sink := diag.OrDiscard(opts.Sink)

	var b strings.Builder
	if doc.Package != "" && !opts.OmitPackage {
		fmt.Fprintf(&b, "package %s\n", doc.Package)
	}
	b.WriteString("\n")

	for _, section := range doc.Sections() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		switch section.Kind {
		case ast.KindNamed:
			for _, name := range section.Names() {
				block, _ := section.Lookup(name)
				fmt.Fprintf(&b, "config %s '%s'\n", section.Type, name)
				writeEntries(&b, block)
			}
		case ast.KindAnonymous:
			for _, block := range section.Blocks() {
				fmt.Fprintf(&b, "config %s\n", section.Type)
				writeEntries(&b, block)
			}
		default:
			sink.Report(diag.Diagnostic{
				Code:    diag.CodeUnserializableSection,
				Message: fmt.Sprintf("section %q has %s container kind, skipped", section.Type, section.Kind),
			})
		}
	}

	return []byte(b.String()), nil
}

func writeEntries(b *strings.Builder, block *ast.Block) {
	if block != nil {
		for _, key := range block.OptionKeys() {
			fmt.Fprintf(b, "\toption %s '%s'\n", key, block.Options[key])
		}
		for _, key := range block.ListKeys() {
			for _, value := range block.Lists[key] {
				fmt.Fprintf(b, "\tlist %s '%s'\n", key, value)
			}
		}
	}
	b.WriteString("\n")
}
