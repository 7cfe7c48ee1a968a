package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"yqhp/flow-dispatch/internal/dispatch"
	"yqhp/flow-dispatch/pkg/types"
)

func (a *app) newCallCmd() *cobra.Command {
	var (
		target  targetFlags
		user    string
		params  []string
		timeout time.Duration
	)

	cmd := &cobra.Command{
		Use:   "call <action>",
		Short: "向执行端发送一次控制或状态请求",
		Long: `向执行端发送一次控制或状态请求并打印 JSON 响应。

常用 action: ping, getStatus, cancel, pause, resume, log, metadata`,
		Example: `  # 探测裸机 executor
  flow-dispatch call ping --host exec-1 --port 12321

  # 以指定用户取消容器化执行
  flow-dispatch call cancel --dispatch CONTAINERIZED --exec-id 42 --user alice`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			executor, err := target.resolve(cmd.Context(), a, cmd)
			if err != nil {
				return err
			}
			method, _ := target.dispatchMethod()
			execID, _ := target.executionID()

			call := &dispatch.Call{
				Host:           executor.Host,
				Port:           executor.Port,
				Action:         args[0],
				ExecutionID:    execID,
				DispatchMethod: method,
				Timeout:        timeout,
			}
			if cmd.Flags().Changed("user") {
				call.User = &user
			}
			for _, p := range params {
				key, value, ok := strings.Cut(p, "=")
				if !ok {
					return fmt.Errorf("无效的参数: %s，格式: key=value", p)
				}
				call.Params = call.Params.Add(key, value)
			}

			resp, err := a.gateway().Do(cmd.Context(), call)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), resp)
		},
	}

	target.register(cmd, true)
	cmd.Flags().StringVar(&user, "user", "", "发起请求的用户 (未指定时发送空值)")
	cmd.Flags().StringArrayVarP(&params, "param", "p", nil, "额外参数 (可多次指定)，格式: key=value")
	cmd.Flags().DurationVar(&timeout, "timeout", 0, "请求超时 (默认使用配置)")
	return cmd
}

func (a *app) newUpdateCmd() *cobra.Command {
	var (
		target     targetFlags
		executions []string
	)

	cmd := &cobra.Command{
		Use:   "update",
		Short: "批量拉取一个裸机 executor 上多个执行的状态",
		Example: `  flow-dispatch update --executor-id 1 -e 101:1700000000000 -e 102:1700000000500`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			executor, err := target.resolve(cmd.Context(), a, cmd)
			if err != nil {
				return err
			}

			flows := make([]*types.FlowInstance, 0, len(executions))
			for _, e := range executions {
				flow, err := parseExecution(e)
				if err != nil {
					return err
				}
				flows = append(flows, flow)
			}

			resp, err := a.gateway().UpdateExecutions(cmd.Context(), executor, flows)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), resp)
		},
	}

	target.register(cmd, false)
	cmd.Flags().StringArrayVarP(&executions, "execution", "e", nil, "执行 (可多次指定)，格式: execId:updateTime")
	return cmd
}

// parseExecution 解析 "execId:updateTime"
func parseExecution(s string) (*types.FlowInstance, error) {
	idStr, timeStr, ok := strings.Cut(s, ":")
	if !ok {
		return nil, fmt.Errorf("无效的执行: %s，格式: execId:updateTime", s)
	}
	execID, err := dispatch.ParseExecID(idStr)
	if err != nil {
		return nil, err
	}
	updateTime, err := strconv.ParseInt(timeStr, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("无效的更新时间 %s: %w", timeStr, err)
	}

	flow := types.NewFlowInstance()
	flow.ExecutionID = *execID
	flow.UpdateTime = updateTime
	return flow, nil
}

func (a *app) newInfoCmd() *cobra.Command {
	var target targetFlags

	cmd := &cobra.Command{
		Use:   "info",
		Short: "查询裸机 executor 的负载信息",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			executor, err := target.resolve(cmd.Context(), a, cmd)
			if err != nil {
				return err
			}
			info, err := a.gateway().ExecutorInfo(cmd.Context(), executor)
			if err != nil {
				return err
			}
			if info == nil {
				_, err = fmt.Fprintln(cmd.OutOrStdout(), "executor 未返回负载信息")
				return err
			}
			return printJSON(cmd.OutOrStdout(), info)
		},
	}

	target.register(cmd, false)
	return cmd
}
