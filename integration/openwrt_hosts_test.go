package integration

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	openwrtbackend "github.com/honeybbq/uciconfig/backend/openwrt"
	"github.com/honeybbq/uciconfig/pkg/diag"
	ucirenderer "github.com/honeybbq/uciconfig/pkg/renderer/uci"
	"github.com/honeybbq/uciconfig/pkg/uciconfig"
)

func TestOpenWrtHostSort(t *testing.T) {
	t.Parallel()

	cases := []string{"dhcp_hosts", "anonymous_hosts"}
	for _, name := range cases {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			inputPath := filepath.Join("..", "testdata", "openwrt", name+".uci")
			raw, err := os.ReadFile(inputPath)
			if err != nil {
				t.Fatalf("read input: %v", err)
			}

			backend := openwrtbackend.New(
				ucirenderer.NewPlainTextRenderer(),
				ucirenderer.NewParser(),
				openwrtbackend.SortTransform("host", "ip"),
			)
			bundle := uciconfig.NewBundle("uci", "openwrt").Add(name, inputPath, raw)

			var sink diag.Collector
			out, err := backend.Rewrite(context.Background(), bundle, uciconfig.ParseOptions{Sink: &sink}, uciconfig.RenderOptions{Sink: &sink})
			if err != nil {
				t.Fatalf("Rewrite failed: %v", err)
			}
			if sink.Len() != 0 {
				t.Fatalf("unexpected diagnostics: %v", sink.All())
			}

			got := bundleToText(out)
			wantBytes, err := os.ReadFile(filepath.Join("..", "testdata", "openwrt", name+".sorted.uci"))
			if err != nil {
				t.Fatalf("read expected uci: %v", err)
			}
			want := string(wantBytes)

			if !compareConfigs(got, want) {
				t.Fatalf("%s", formatConfigDiff(got, want))
			}
		})
	}
}

func TestOpenWrtRewriteIsIdempotent(t *testing.T) {
	t.Parallel()

	raw, err := os.ReadFile(filepath.Join("..", "testdata", "openwrt", "dhcp_hosts.uci"))
	if err != nil {
		t.Fatalf("read input: %v", err)
	}

	backend := openwrtbackend.New(
		ucirenderer.NewPlainTextRenderer(),
		ucirenderer.NewParser(),
		openwrtbackend.SortTransform("host", "ip"),
	)
	ctx := context.Background()

	first, err := backend.Rewrite(ctx, uciconfig.NewBundle("uci", "openwrt").Add("dhcp", "", raw), uciconfig.ParseOptions{}, uciconfig.RenderOptions{})
	if err != nil {
		t.Fatalf("first rewrite: %v", err)
	}
	second, err := backend.Rewrite(ctx, first, uciconfig.ParseOptions{}, uciconfig.RenderOptions{})
	if err != nil {
		t.Fatalf("second rewrite: %v", err)
	}

	if got, want := bundleToText(second), bundleToText(first); got != want {
		t.Fatalf("rewrite not idempotent\n%s", formatConfigDiff(got, want))
	}
}

func TestOpenWrtMultiplePackages(t *testing.T) {
	t.Parallel()

	bundle := uciconfig.NewBundle("uci", "openwrt").
		Add("system", "", []byte("config system\n\toption hostname 'OpenWrt'\n")).
		Add("dhcp", "", []byte("config host 'b'\n\toption ip '10.0.0.9'\nconfig host 'a'\n\toption ip '10.0.0.3'\n"))

	backend := openwrtbackend.New(ucirenderer.NewPlainTextRenderer(), ucirenderer.NewParser(), openwrtbackend.SortTransform("host", "ip"))
	out, err := backend.Rewrite(context.Background(), bundle, uciconfig.ParseOptions{}, uciconfig.RenderOptions{})
	if err != nil {
		t.Fatalf("Rewrite failed: %v", err)
	}

	want := `package system

config system
	option hostname 'OpenWrt'


package dhcp

config host 'a'
	option ip '10.0.0.3'

config host 'b'
	option ip '10.0.0.9'
`
	if got := bundleToText(out); !compareConfigs(got, want) {
		t.Fatalf("%s", formatConfigDiff(got, want))
	}
}
