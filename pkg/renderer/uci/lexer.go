package uci

import (
	"regexp"
	"strings"
)

// LineKind 是单行文本的分类结果。
type LineKind int

const (
	LineUnrecognized LineKind = iota
	LineBlank
	LineComment
	LinePackage
	LineHeader
	LineOption
	LineList
)

func (k LineKind) String() string {
	switch k {
	case LineBlank:
		return "blank"
	case LineComment:
		return "comment"
	case LinePackage:
		return "package"
	case LineHeader:
		return "header"
	case LineOption:
		return "option"
	case LineList:
		return "list"
	default:
		return "unrecognized"
	}
}

// Line 是分类后的行。Header 使用 Type/Name，option/list 使用 Key/Value，
// package 行的包名放在 Name。
type Line struct {
	Kind  LineKind
	Type  string
	Name  string
	Key   string
	Value string
}

var (
	headerRe  = regexp.MustCompile(`^config (\w+) ?(?:'(\w+)')?$`)
	entryRe   = regexp.MustCompile(`^\t(option|list) (\w+) '(.*)'$`)
	packageRe = regexp.MustCompile(`^package (\w+)$`)
)

// Classify 识别一行 UCI 文本，raw 可以带有行尾的 "\n" 或 "\r\n"。
func Classify(raw string) Line {
	line := strings.TrimRight(raw, "\r\n")
	if line == "" {
		return Line{Kind: LineBlank}
	}
	if strings.HasPrefix(strings.TrimLeft(line, " \t"), "#") {
		return Line{Kind: LineComment}
	}
	if m := headerRe.FindStringSubmatch(line); m != nil {
		return Line{Kind: LineHeader, Type: m[1], Name: m[2]}
	}
	if m := entryRe.FindStringSubmatch(line); m != nil {
		kind := LineOption
		if m[1] == "list" {
			kind = LineList
		}
		return Line{Kind: kind, Key: m[2], Value: m[3]}
	}
	if m := packageRe.FindStringSubmatch(line); m != nil {
		return Line{Kind: LinePackage, Name: m[1]}
	}
	return Line{Kind: LineUnrecognized}
}
