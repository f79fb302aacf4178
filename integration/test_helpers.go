package integration

import (
	"fmt"
	"strings"

	"github.com/honeybbq/uciconfig/pkg/uciconfig"
)

// bundleToText 将 Bundle 转换为文本格式（用于测试对比）
// 多个包之间以 package 行分隔，单个包直接返回内容
func bundleToText(bundle *uciconfig.Bundle) string {
	if len(bundle.Packages) == 1 {
		return string(bundle.Packages[0].Content)
	}
	var b strings.Builder
	for i, pkg := range bundle.Packages {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "package %s\n", pkg.Name)
		b.Write(pkg.Content)
	}
	return b.String()
}

// normalizeConfig 标准化配置文本用于比较
// 1. 去除首尾空白
// 2. 统一换行符
func normalizeConfig(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return strings.TrimSpace(text)
}

// compareConfigs 比较配置内容，忽略首尾空白差异
func compareConfigs(got, want string) bool {
	return normalizeConfig(got) == normalizeConfig(want)
}

// formatConfigDiff 格式化配置差异信息
func formatConfigDiff(got, want string) string {
	gotNorm := normalizeConfig(got)
	wantNorm := normalizeConfig(want)

	if gotNorm == wantNorm {
		return "configs match (after normalization)"
	}

	gotLines := strings.Split(gotNorm, "\n")
	wantLines := strings.Split(wantNorm, "\n")

	var b strings.Builder
	fmt.Fprintf(&b, "config mismatch (got %d lines, want %d lines)\n", len(gotLines), len(wantLines))
	fmt.Fprintf(&b, "--- got (normalized) ---\n%s\n", gotNorm)
	fmt.Fprintf(&b, "--- want (normalized) ---\n%s\n", wantNorm)

	// 逐行比较找出差异
	maxLines := max(len(gotLines), len(wantLines))

	fmt.Fprintf(&b, "--- line-by-line diff ---\n")
	for i := range maxLines {
		var gotLine, wantLine string
		if i < len(gotLines) {
			gotLine = gotLines[i]
		}
		if i < len(wantLines) {
			wantLine = wantLines[i]
		}

		if gotLine != wantLine {
			fmt.Fprintf(&b, "Line %d differs:\n", i+1)
			fmt.Fprintf(&b, "  got:  %q\n", gotLine)
			fmt.Fprintf(&b, "  want: %q\n", wantLine)
		}
	}

	return b.String()
}
