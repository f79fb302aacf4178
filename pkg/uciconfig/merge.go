package uciconfig

import (
	"errors"
	"fmt"
	"slices"

	"github.com/honeybbq/uciconfig/pkg/ast/uci"
	"github.com/honeybbq/uciconfig/pkg/diag"
	"github.com/honeybbq/uciconfig/pkg/ucierr"
)

// Merge merges multiple UCI documents with later documents overriding earlier ones.
// None of the inputs are modified.
//
// Merge rules:
//   - Section types keep the order in which they are first seen
//   - Named blocks: matched by name; options are overwritten, list values are
//     appended unless the key already holds the same value
//   - Anonymous blocks: appended, exact duplicates are skipped
//   - Variant conflicts (named in one document, anonymous in another): the first
//     variant wins and the conflicting section is reported to sink and skipped
//
// This enables layered configuration (base → regional → device-specific).
func Merge(docs []*uci.Document, sink diag.Sink) (*uci.Document, error) {
	if len(docs) == 0 {
		return nil, ucierr.New(ucierr.KindValidation, errors.New("no documents to merge"))
	}
	sink = diag.OrDiscard(sink)

	result := uci.NewDocument()
	for i, doc := range docs {
		if doc == nil {
			return nil, ucierr.New(ucierr.KindValidation, fmt.Errorf("document[%d] is nil", i))
		}
		if doc.Package != "" {
			result.Package = doc.Package
		}
		for _, section := range doc.Sections() {
			mergeSection(result, section, i, sink)
		}
	}
	return result, nil
}

func mergeSection(result *uci.Document, override *uci.Section, index int, sink diag.Sink) {
	base, ok := result.Ensure(override.Type, override.Kind)
	if !ok {
		sink.Report(diag.Diagnostic{
			Code: diag.CodeVariantConflict,
			Message: fmt.Sprintf("document[%d]: section %q is %s here but %s in an earlier document, skipped",
				index, override.Type, override.Kind, base.Kind),
		})
		return
	}

	switch override.Kind {
	case uci.KindNamed:
		for _, name := range override.Names() {
			block, _ := override.Lookup(name)
			existing, found := base.Lookup(name)
			if !found {
				base.Set(name, block.Clone())
				continue
			}
			base.Set(name, mergeBlock(existing, block))
		}
	case uci.KindAnonymous:
		current := base.Blocks()
		for _, block := range override.Blocks() {
			// 完全相同的匿名块视为重复
			if slices.ContainsFunc(current, block.Equal) {
				continue
			}
			clone := block.Clone()
			base.Append(clone)
			current = append(current, clone)
		}
	}
}

// mergeBlock returns a copy of base with override's entries applied.
func mergeBlock(base, override *uci.Block) *uci.Block {
	result := base.Clone()
	for key, value := range override.Options {
		result.SetOption(key, value)
	}
	for key, values := range override.Lists {
		for _, value := range values {
			if slices.Contains(result.Lists[key], value) {
				continue
			}
			result.AppendList(key, value)
		}
	}
	return result
}
