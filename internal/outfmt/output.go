package outfmt

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/itchyny/gojq"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	common "github.com/honeybbq/uciconfig/domain/utils"
	"github.com/honeybbq/uciconfig/pkg/ast/uci"
)

// Format represents output format
type Format string

const (
	FormatJSON      Format = "json"
	FormatYAML      Format = "yaml"
	FormatTOML      Format = "toml"
	FormatProtoJSON Format = "protojson"
)

// Formats lists every supported format, for flag help.
var Formats = []Format{FormatJSON, FormatYAML, FormatTOML, FormatProtoJSON}

// Printer renders documents in a structured format.
type Printer struct {
	Format Format
	Query  string // optional jq expression applied before encoding
	Writer io.Writer
}

// NewPrinter creates a new printer writing to stdout.
func NewPrinter(format, query string) *Printer {
	return &Printer{
		Format: Format(format),
		Query:  query,
		Writer: os.Stdout,
	}
}

// PrintDocument outputs doc in the configured format.
func (p *Printer) PrintDocument(doc *uci.Document) error {
	if p.Format == FormatProtoJSON {
		if p.Query != "" {
			return fmt.Errorf("--query is not supported with %s output", FormatProtoJSON)
		}
		out, err := common.DocumentToProtoJSON(doc, "  ")
		if err != nil {
			return err
		}
		if _, err := p.Writer.Write(out); err != nil {
			return err
		}
		_, err = fmt.Fprintln(p.Writer)
		return err
	}

	var data any = common.DocumentToMap(doc)
	if p.Query != "" {
		results, err := runQuery(p.Query, data)
		if err != nil {
			return err
		}
		if len(results) == 1 {
			data = results[0]
		} else {
			data = results
		}
	}
	return p.Print(data)
}

// Print outputs data in the configured format
func (p *Printer) Print(data any) error {
	switch p.Format {
	case FormatJSON:
		return p.printJSON(data)
	case FormatYAML:
		return p.printYAML(data)
	case FormatTOML:
		return p.printTOML(data)
	default:
		return fmt.Errorf("unsupported format: %s", p.Format)
	}
}

func (p *Printer) printJSON(data any) error {
	encoder := json.NewEncoder(p.Writer)
	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

func (p *Printer) printYAML(data any) error {
	encoder := yaml.NewEncoder(p.Writer)
	encoder.SetIndent(2)
	if err := encoder.Encode(data); err != nil {
		return err
	}
	return encoder.Close()
}

func (p *Printer) printTOML(data any) error {
	// TOML 只能编码表，查询结果若不是对象则包一层
	if _, ok := data.(map[string]any); !ok {
		data = map[string]any{"result": data}
	}
	encoder := toml.NewEncoder(p.Writer)
	encoder.SetIndentTables(true)
	return encoder.Encode(data)
}

// runQuery evaluates a jq expression and collects every emitted value.
func runQuery(query string, data any) ([]any, error) {
	parsed, err := gojq.Parse(query)
	if err != nil {
		return nil, fmt.Errorf("invalid --query: %w", err)
	}
	code, err := gojq.Compile(parsed)
	if err != nil {
		return nil, fmt.Errorf("invalid --query: %w", err)
	}

	var results []any
	iter := code.Run(data)
	for {
		v, ok := iter.Next()
		if !ok {
			break
		}
		if err, isErr := v.(error); isErr {
			return nil, fmt.Errorf("query error: %w", err)
		}
		results = append(results, v)
	}
	return results, nil
}
