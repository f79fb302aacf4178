package common

import (
	"errors"
	"fmt"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/honeybbq/uciconfig/pkg/ast/uci"
	"github.com/honeybbq/uciconfig/pkg/ucierr"
)

// DocumentToMap converts a document into plain JSON-compatible values
// (map[string]any, []any, string) so it can be fed to encoders and jq.
func DocumentToMap(doc *uci.Document) map[string]any {
	result := map[string]any{}
	if doc == nil {
		return result
	}
	if doc.Package != "" {
		result["package"] = doc.Package
	}
	sections := make([]any, 0, doc.Len())
	for _, section := range doc.Sections() {
		blocks := make([]any, 0, section.Len())
		for _, block := range section.Blocks() {
			blocks = append(blocks, BlockToMap(block))
		}
		sections = append(sections, map[string]any{
			"type":   section.Type,
			"kind":   section.Kind.String(),
			"blocks": blocks,
		})
	}
	result["sections"] = sections
	return result
}

// BlockToMap converts a single block; the name is omitted for anonymous blocks.
func BlockToMap(block *uci.Block) map[string]any {
	out := map[string]any{}
	if block.Name != "" {
		out["name"] = block.Name
	}
	options := make(map[string]any, len(block.Options))
	for key, value := range block.Options {
		options[key] = value
	}
	out["options"] = options

	lists := make(map[string]any, len(block.Lists))
	for key, values := range block.Lists {
		lists[key] = toAnySlice(values)
	}
	out["lists"] = lists
	return out
}

// DocumentToStruct converts a document into a protobuf Struct.
func DocumentToStruct(doc *uci.Document) (*structpb.Struct, error) {
	if doc == nil {
		return nil, ucierr.New(ucierr.KindValidation, errors.New("uci document is nil"))
	}
	st, err := structpb.NewStruct(DocumentToMap(doc))
	if err != nil {
		return nil, ucierr.New(ucierr.KindInternal, fmt.Errorf("build struct: %w", err))
	}
	return st, nil
}

// DocumentToProtoJSON renders the document through protojson, optionally indented.
func DocumentToProtoJSON(doc *uci.Document, indent string) ([]byte, error) {
	st, err := DocumentToStruct(doc)
	if err != nil {
		return nil, err
	}
	opts := protojson.MarshalOptions{}
	if indent != "" {
		opts.Multiline = true
		opts.Indent = indent
	}
	return opts.Marshal(st)
}

func toAnySlice(items []string) []any {
	out := make([]any, 0, len(items))
	for _, item := range items {
		out = append(out, item)
	}
	return out
}
