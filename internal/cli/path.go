package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"yqhp/flow-dispatch/internal/dispatch"
)

func (a *app) newPathCmd() *cobra.Command {
	var target targetFlags

	cmd := &cobra.Command{
		Use:   "path",
		Short: "计算执行请求的 URL 路径",
		Example: `  flow-dispatch path --dispatch CONTAINERIZED --exec-id 12345 \
    --set executor.reverse_proxy.enabled=true \
    --set executor.reverse_proxy.hostname=proxy --set executor.reverse_proxy.port=9999`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			method, err := target.dispatchMethod()
			if err != nil {
				return err
			}
			execID, err := target.executionID()
			if err != nil {
				return err
			}
			path, err := dispatch.ResolvePath(execID, method, a.cfg.Routing())
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), path)
			return err
		},
	}

	cmd.Flags().StringVar(&target.execID, "exec-id", "", "执行 ID (留空表示无)")
	cmd.Flags().StringVar(&target.dispatch, "dispatch", "", "调度方式 (BARE_METAL, CONTAINERIZED)")
	return cmd
}

func (a *app) newEndpointCmd() *cobra.Command {
	var target targetFlags

	cmd := &cobra.Command{
		Use:   "endpoint",
		Short: "解析执行的目标 executor 与完整 URI",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			executor, err := target.resolve(cmd.Context(), a, cmd)
			if err != nil {
				return err
			}
			method, _ := target.dispatchMethod()
			execID, _ := target.executionID()

			path, err := dispatch.ResolvePath(execID, method, a.cfg.Routing())
			if err != nil {
				return err
			}
			client := dispatch.NewFiberClient(a.cfg.Routing())
			defer client.Close()

			return printJSON(cmd.OutOrStdout(), map[string]any{
				"executor": executor,
				"virtual":  executor.IsVirtual(),
				"uri":      client.BuildExecutorURI(executor.Host, executor.Port, path, method),
			})
		},
	}

	target.register(cmd, true)
	return cmd
}
