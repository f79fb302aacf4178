package openwrt

import (
	"cmp"
	"fmt"
	"strconv"
	"strings"

	"github.com/honeybbq/uciconfig/pkg/ast/uci"
	"github.com/honeybbq/uciconfig/pkg/diag"
)

const (
	// HostSection 是 /etc/config/dhcp 中静态租约的 section 类型。
	HostSection = "host"
	// HostIPOption 保存静态租约的 IPv4 地址。
	HostIPOption = "ip"
)

// SortHostsByIP 将 host 块按 IP 最后一段升序排列。
func SortHostsByIP(doc *uci.Document, sink diag.Sink) bool {
	return SortSection(doc, HostSection, HostIPOption, sink)
}

// SortSection 按 option 值最后一个 "." 之后的整数对 sectionType 的块稳定排序，
// 具名与匿名容器都适用。无法解析的块排在最后并保持相对顺序，同时上报诊断。
// section 不存在时返回 false。
func SortSection(doc *uci.Document, sectionType, option string, sink diag.Sink) bool {
	section, ok := doc.Section(sectionType)
	if !ok {
		return false
	}
	sink = diag.OrDiscard(sink)

	type sortKey struct {
		value int
		ok    bool
	}
	keys := make(map[*uci.Block]sortKey, section.Len())
	for i, block := range section.Blocks() {
		raw, found := block.Option(option)
		if !found {
			sink.Report(diag.Diagnostic{
				Code:    diag.CodeSortKey,
				Message: fmt.Sprintf("%s %s has no option %q, moved to the end", sectionType, blockLabel(block, i), option),
			})
			keys[block] = sortKey{}
			continue
		}
		n, err := LastSegment(raw)
		if err != nil {
			sink.Report(diag.Diagnostic{
				Code:    diag.CodeSortKey,
				Message: fmt.Sprintf("%s %s: %v, moved to the end", sectionType, blockLabel(block, i), err),
				Text:    raw,
			})
			keys[block] = sortKey{}
			continue
		}
		keys[block] = sortKey{value: n, ok: true}
	}

	section.SortStableFunc(func(a, b *uci.Block) int {
		ka, kb := keys[a], keys[b]
		switch {
		case ka.ok && kb.ok:
			return cmp.Compare(ka.value, kb.value)
		case ka.ok:
			return -1
		case kb.ok:
			return 1
		default:
			return 0
		}
	})
	return true
}

// LastSegment 解析 value 中最后一个 "." 之后的十进制整数，例如 "10.0.0.12" → 12。
func LastSegment(value string) (int, error) {
	segment := value
	if idx := strings.LastIndexByte(value, '.'); idx >= 0 {
		segment = value[idx+1:]
	}
	n, err := strconv.Atoi(strings.TrimSpace(segment))
	if err != nil {
		return 0, fmt.Errorf("invalid sort key %q", value)
	}
	return n, nil
}

func blockLabel(block *uci.Block, index int) string {
	if block.Name != "" {
		return fmt.Sprintf("%q", block.Name)
	}
	return fmt.Sprintf("#%d", index)
}
