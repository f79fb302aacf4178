package openwrt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/honeybbq/uciconfig/pkg/ast/uci"
	"github.com/honeybbq/uciconfig/pkg/diag"
)

func hostDoc(kind uci.Kind, ips map[string]string, order []string) *uci.Document {
	doc := uci.NewDocument()
	section := uci.NewSection(HostSection, kind)
	for _, name := range order {
		blockName := name
		if kind == uci.KindAnonymous {
			blockName = ""
		}
		b := uci.NewBlock(HostSection, blockName)
		b.SetOption("name", name)
		if ip, ok := ips[name]; ok {
			b.SetOption(HostIPOption, ip)
		}
		if kind == uci.KindNamed {
			section.Set(name, b)
		} else {
			section.Append(b)
		}
	}
	doc.Put(section)
	return doc
}

func hostNames(t *testing.T, doc *uci.Document) []string {
	t.Helper()
	section, ok := doc.Section(HostSection)
	require.True(t, ok)
	var names []string
	for _, b := range section.Blocks() {
		names = append(names, b.Options["name"])
	}
	return names
}

func TestSortHostsByIP_Named(t *testing.T) {
	doc := hostDoc(uci.KindNamed, map[string]string{
		"thirty": "10.0.0.30",
		"five":   "10.0.0.5",
		"twelve": "10.0.0.12",
	}, []string{"thirty", "five", "twelve"})

	var sink diag.Collector
	require.True(t, SortHostsByIP(doc, &sink))
	assert.Zero(t, sink.Len())
	assert.Equal(t, []string{"five", "twelve", "thirty"}, hostNames(t, doc))

	section, _ := doc.Section(HostSection)
	assert.Equal(t, []string{"five", "twelve", "thirty"}, section.Names())
}

func TestSortHostsByIP_Anonymous(t *testing.T) {
	doc := hostDoc(uci.KindAnonymous, map[string]string{
		"c": "192.168.1.200",
		"a": "192.168.1.2",
		"b": "192.168.1.20",
	}, []string{"c", "a", "b"})

	require.True(t, SortHostsByIP(doc, nil))
	assert.Equal(t, []string{"a", "b", "c"}, hostNames(t, doc))
}

func TestSortHostsByIP_UnparseableKeysGoLast(t *testing.T) {
	doc := hostDoc(uci.KindNamed, map[string]string{
		"bad":  "10.0.0.x",
		"late": "10.0.0.9",
		"one":  "10.0.0.1",
	}, []string{"missing", "bad", "late", "one"})

	var sink diag.Collector
	require.True(t, SortHostsByIP(doc, &sink))
	assert.Equal(t, []string{"one", "late", "missing", "bad"}, hostNames(t, doc))
	assert.Equal(t, []diag.Code{diag.CodeSortKey, diag.CodeSortKey}, sink.Codes())
}

func TestSortHostsByIP_NoHostSection(t *testing.T) {
	assert.False(t, SortHostsByIP(uci.NewDocument(), nil))
}

func TestLastSegment(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{in: "10.0.0.12", want: 12},
		{in: "10.0.0.5", want: 5},
		{in: "42", want: 42},
		{in: "10.0.0.", wantErr: true},
		{in: "fe80::1", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := LastSegment(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
