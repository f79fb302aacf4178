package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	openwrtbackend "github.com/honeybbq/uciconfig/backend/openwrt"
	"github.com/honeybbq/uciconfig/internal/config"
	"github.com/honeybbq/uciconfig/pkg/ast/uci"
	"github.com/honeybbq/uciconfig/pkg/diag"
	ucirenderer "github.com/honeybbq/uciconfig/pkg/renderer/uci"
	"github.com/honeybbq/uciconfig/pkg/sync"
	"github.com/honeybbq/uciconfig/pkg/ucierr"
	"github.com/honeybbq/uciconfig/pkg/uciconfig"
)

// app 保存命令之间共享的状态，在 PersistentPreRunE 中初始化。
type app struct {
	cfgFile string
	verbose bool

	cfg    *config.Config
	logger *log.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "uciconfig <path>",
		Short: "Sort and normalise OpenWrt UCI configuration files",
		Long: `uciconfig parses a UCI configuration file, sorts its host sections by the
last segment of their IP address and writes the canonical result to <path>.new.
The input file is never modified.

Options are emitted sorted by key, followed by lists sorted by key; values of
one list keep their original order.`,
		Example: `  uciconfig /etc/config/dhcp
  uciconfig fmt --stdout /etc/config/network
  uciconfig export --format yaml --query '.sections[0]' /etc/config/dhcp`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runSort(cmd.Context(), args[0])
		},
	}

	root.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (default is $XDG_CONFIG_HOME/uciconfig/config.toml)")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(newFmtCmd(a), newCheckCmd(a), newExportCmd(a), newMergeCmd(a))
	return root
}

func (a *app) init(cmd *cobra.Command) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cfg, path, err := config.Load(ctx, config.LoadOptions{ConfigFilePath: a.cfgFile})
	if err != nil {
		return err
	}
	a.cfg = cfg

	a.logger = log.NewWithOptions(cmd.ErrOrStderr(), log.Options{Prefix: config.AppName})
	a.logger.SetLevel(cfg.LogLevel())
	if a.verbose {
		a.logger.SetLevel(log.DebugLevel)
	}
	if path != "" {
		a.logger.Debug("loaded config", "path", path)
	}
	return nil
}

func (a *app) backend(transforms ...openwrtbackend.Transform) *openwrtbackend.Backend {
	return openwrtbackend.New(ucirenderer.NewPlainTextRenderer(), ucirenderer.NewParser(), transforms...)
}

func (a *app) sink() diag.Sink {
	return diag.NewLogSink(a.logger)
}

func (a *app) parseOptions(sink diag.Sink) uciconfig.ParseOptions {
	return uciconfig.ParseOptions{Sink: sink, Strict: a.cfg.Parse.Strict}
}

// readBundle 读取输入文件；读取失败对 CLI 来说是致命错误。
func (a *app) readBundle(paths ...string) (*uciconfig.Bundle, error) {
	bundle := uciconfig.NewBundle("uci", "openwrt")
	for _, path := range paths {
		content, err := os.ReadFile(path)
		if err != nil {
			return nil, ucierr.New(ucierr.KindIO, fmt.Errorf("read input: %w", err))
		}
		bundle.Add(packageName(path), path, content)
	}
	return bundle, nil
}

func (a *app) outputPath(input string) string {
	return input + a.cfg.Output.Suffix
}

func (a *app) writeOutput(path string, content []byte) error {
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return ucierr.New(ucierr.KindIO, fmt.Errorf("write output: %w", err))
	}
	a.logger.Info("wrote", "path", path)
	return nil
}

// runSort 是根命令：解析、排序、写出 <path>.new。
func (a *app) runSort(ctx context.Context, path string) error {
	bundle, err := a.readBundle(path)
	if err != nil {
		return err
	}

	var transforms []openwrtbackend.Transform
	if a.cfg.Sort.Enabled {
		transforms = append(transforms, openwrtbackend.SortTransform(a.cfg.Sort.Section, a.cfg.Sort.Option))
	}
	backend := a.backend(transforms...)
	sink := a.sink()

	docs, err := backend.Parse(ctx, bundle, a.parseOptions(sink))
	if err != nil {
		return err
	}
	doc := docs[0]
	before := doc.Clone()
	if err := backend.Apply(ctx, doc, sink); err != nil {
		return err
	}

	out, err := backend.Render(ctx, []string{bundle.Packages[0].Name}, []*uci.Document{doc}, uciconfig.RenderOptions{Sink: sink})
	if err != nil {
		return err
	}
	content := out.Packages[0].Content
	a.logChanges(before, doc, bundle.Packages[0].Content, content)

	return a.writeOutput(a.outputPath(path), content)
}

func (a *app) logChanges(before, after *uci.Document, original, rendered []byte) {
	cs := sync.NewChangeSet(sync.Snapshot(before, original), sync.Snapshot(after, rendered))
	if cs.Identical() {
		a.logger.Debug("input already canonical", "checksum", cs.Base.VersionID)
		return
	}
	a.logger.Debug("rewrote document",
		"from", cs.Base.VersionID,
		"to", cs.Target.VersionID,
		"reordered", strings.Join(cs.Diff.Reordered, ","),
	)
}

// packageName 取文件名作为 UCI 包名，例如 /etc/config/dhcp → dhcp。
func packageName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
