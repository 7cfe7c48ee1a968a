// Package cli 提供 flow-dispatch CLI 的命令实现
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"yqhp/flow-dispatch/internal/config"
	"yqhp/flow-dispatch/internal/dispatch"
	"yqhp/flow-dispatch/internal/store"
	"yqhp/flow-dispatch/pkg/logger"
	"yqhp/flow-dispatch/pkg/utils"
)

// Version 是当前版本号
const Version = "0.1.0"

// app 保存一次命令执行的全局状态
type app struct {
	cfgFile string
	debug   bool
	quiet   bool
	sets    []string

	cfg *config.Config

	// 以下依赖可在测试中替换
	newClient func(routing config.RoutingConfig) dispatch.APIClient
	openStore func(ctx context.Context, cfg *config.StoreConfig) (store.ExecutorStore, error)
}

func newApp() *app {
	return &app{
		newClient: func(routing config.RoutingConfig) dispatch.APIClient {
			return dispatch.NewFiberClient(routing)
		},
		openStore: store.New,
	}
}

// NewRootCmd 创建根命令
func NewRootCmd() *cobra.Command {
	return newRootCmd(newApp())
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "flow-dispatch",
		Short: "工作流执行调度路由工具",
		Long: `flow-dispatch 负责把工作流执行的控制与状态请求路由到正确的执行端：
裸机 executor 进程，或每次执行独立的容器服务（直连或经反向代理）。
同时提供容器化执行前的 DAG 分析：作业类型、灰度分桶与代理用户。`,
		Version:           Version,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
	}

	// 全局 flags
	root.PersistentFlags().StringVar(&a.cfgFile, "config", "", "配置文件路径")
	root.PersistentFlags().BoolVar(&a.debug, "debug", false, "启用调试日志")
	root.PersistentFlags().BoolVarP(&a.quiet, "quiet", "q", false, "静默模式")
	root.PersistentFlags().StringArrayVar(&a.sets, "set", nil, "覆盖配置项 (可多次指定)，格式: executor.reverse_proxy.enabled=true")

	// 禁用默认的 completion 命令
	root.CompletionOptions.DisableDefaultCmd = true

	root.AddCommand(
		a.newPathCmd(),
		a.newEndpointCmd(),
		a.newCallCmd(),
		a.newUpdateCmd(),
		a.newInfoCmd(),
		a.newAnalyzeCmd(),
		a.newExecutorsCmd(),
	)
	return root
}

// Execute 执行根命令
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func (a *app) setup(cmd *cobra.Command, args []string) error {
	overrides := make(map[string]string, len(a.sets))
	for _, set := range a.sets {
		key, value, ok := strings.Cut(set, "=")
		if !ok || key == "" {
			return fmt.Errorf("无效的配置覆盖: %s", set)
		}
		overrides[key] = value
	}

	cfg, err := config.NewLoader().
		WithConfigPath(a.cfgFile).
		WithCmdArgs(overrides).
		LoadAndValidate()
	if err != nil {
		return fmt.Errorf("加载配置失败: %w", err)
	}
	a.cfg = cfg

	logger.Init(&logger.Config{
		Level:      cfg.Logging.Level,
		Format:     cfg.Logging.Format,
		Output:     cfg.Logging.Output,
		FilePath:   cfg.Logging.FilePath,
		MaxSize:    cfg.Logging.MaxSize,
		MaxBackups: cfg.Logging.MaxBackups,
		MaxAge:     cfg.Logging.MaxAge,
	})
	switch {
	case a.debug:
		logger.SetLevelFromString("debug")
	case a.quiet:
		logger.SetLevelFromString("error")
	}
	return nil
}

func (a *app) gateway() *dispatch.Gateway {
	routing := a.cfg.Routing()
	return dispatch.NewGateway(a.newClient(routing), routing,
		dispatch.WithTimeout(a.cfg.Executor.RequestTimeout))
}

func printJSON(w io.Writer, v any) error {
	s, err := utils.ToJSONPretty(v)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, s)
	return err
}
