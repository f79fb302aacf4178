package openwrt

import (
	"context"
	"errors"
	"fmt"

	domain "github.com/honeybbq/uciconfig/domain/openwrt"
	"github.com/honeybbq/uciconfig/pkg/ast/uci"
	"github.com/honeybbq/uciconfig/pkg/diag"
	"github.com/honeybbq/uciconfig/pkg/renderer"
	"github.com/honeybbq/uciconfig/pkg/ucierr"
	"github.com/honeybbq/uciconfig/pkg/uciconfig"
)

// Transform 在解析与渲染之间修改文档。
type Transform func(ctx context.Context, doc *uci.Document, sink diag.Sink) error

// SortTransform 返回按 option 值最后一段数字排序 section 的变换。
func SortTransform(section, option string) Transform {
	return func(ctx context.Context, doc *uci.Document, sink diag.Sink) error {
		domain.SortSection(doc, section, option, sink)
		return nil
	}
}

// Backend 实现 OpenWrt UCI 文本 ↔ 文档的双向转换。
type Backend struct {
	renderer   renderer.Renderer[*uci.Document]
	parser     renderer.Parser[*uci.Document]
	transforms []Transform
}

// New 构造 Backend。transforms 按顺序在 Rewrite 中执行。
func New(r renderer.Renderer[*uci.Document], p renderer.Parser[*uci.Document], transforms ...Transform) *Backend {
	return &Backend{
		renderer:   r,
		parser:     p,
		transforms: transforms,
	}
}

// Name 实现 Backend 接口。
func (b *Backend) Name() string {
	return "openwrt"
}

// Parse 实现 Backend 接口。
func (b *Backend) Parse(ctx context.Context, bundle *uciconfig.Bundle, opts uciconfig.ParseOptions) ([]*uci.Document, error) {
	if bundle == nil {
		return nil, ucierr.New(ucierr.KindValidation, errors.New("bundle is nil"))
	}
	docs := make([]*uci.Document, 0, len(bundle.Packages))
	for _, pkg := range bundle.Packages {
		doc, err := b.parser.Parse(ctx, pkg.Content, opts)
		if err != nil {
			return nil, fmt.Errorf("parse package %q: %w", pkg.Name, err)
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

// Render 实现 Backend 接口。
func (b *Backend) Render(ctx context.Context, names []string, docs []*uci.Document, opts uciconfig.RenderOptions) (*uciconfig.Bundle, error) {
	if len(names) != len(docs) {
		return nil, ucierr.New(ucierr.KindValidation, fmt.Errorf("got %d names for %d documents", len(names), len(docs)))
	}
	bundle := uciconfig.NewBundle("uci", b.Name())
	for i, doc := range docs {
		content, err := b.renderer.Render(ctx, doc, opts)
		if err != nil {
			return nil, fmt.Errorf("render package %q: %w", names[i], err)
		}
		bundle.Add(names[i], "", content)
	}
	return bundle, nil
}

// Rewrite 解析 bundle 中的每个包，依次应用变换，再渲染回文本。
// 输出包保留输入包的 Name 与 Path。
func (b *Backend) Rewrite(ctx context.Context, bundle *uciconfig.Bundle, popts uciconfig.ParseOptions, ropts uciconfig.RenderOptions) (*uciconfig.Bundle, error) {
	docs, err := b.Parse(ctx, bundle, popts)
	if err != nil {
		return nil, err
	}
	for i, doc := range docs {
		if err := b.Apply(ctx, doc, popts.Sink); err != nil {
			return nil, fmt.Errorf("transform package %q: %w", bundle.Packages[i].Name, err)
		}
	}

	names := make([]string, len(bundle.Packages))
	for i, pkg := range bundle.Packages {
		names[i] = pkg.Name
	}
	out, err := b.Render(ctx, names, docs, ropts)
	if err != nil {
		return nil, err
	}
	for i := range out.Packages {
		out.Packages[i].Path = bundle.Packages[i].Path
	}
	return out, nil
}

// Apply 对单个文档执行全部变换。
func (b *Backend) Apply(ctx context.Context, doc *uci.Document, sink diag.Sink) error {
	sink = diag.OrDiscard(sink)
	for _, transform := range b.transforms {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := transform(ctx, doc, sink); err != nil {
			return err
		}
	}
	return nil
}

var _ uciconfig.Backend = (*Backend)(nil)
