package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"yqhp/flow-dispatch/internal/dispatch"
	"yqhp/flow-dispatch/pkg/types"
)

// targetFlags 描述一次调用的目标执行端
type targetFlags struct {
	host       string
	port       int
	executorID int
	execID     string
	dispatch   string
}

func (f *targetFlags) register(cmd *cobra.Command, withExecution bool) {
	cmd.Flags().StringVar(&f.host, "host", "", "executor 主机")
	cmd.Flags().IntVar(&f.port, "port", 0, "executor 端口")
	cmd.Flags().IntVar(&f.executorID, "executor-id", 0, "从 executor 存储中按 ID 查找目标")
	if withExecution {
		cmd.Flags().StringVar(&f.execID, "exec-id", "", "执行 ID (留空表示无)")
		cmd.Flags().StringVar(&f.dispatch, "dispatch", "", "调度方式 (BARE_METAL, CONTAINERIZED)")
	}
}

func (f *targetFlags) executionID() (*int, error) {
	if f.execID == "" {
		return nil, nil
	}
	return dispatch.ParseExecID(f.execID)
}

func (f *targetFlags) dispatchMethod() (types.DispatchMethod, error) {
	return types.ParseDispatchMethod(f.dispatch)
}

// resolve 返回目标执行端。容器化执行由命名约定计算，其余按 executor-id 或 host/port 指定。
func (f *targetFlags) resolve(ctx context.Context, a *app, cmd *cobra.Command) (*types.Executor, error) {
	method, err := f.dispatchMethod()
	if err != nil {
		return nil, err
	}
	execID, err := f.executionID()
	if err != nil {
		return nil, err
	}

	if method.IsContainerized() {
		if execID == nil {
			return nil, fmt.Errorf("容器化执行必须指定 --exec-id")
		}
		return dispatch.ResolveExecutor(types.NewExecutionReference(*execID, method), a.cfg.Routing())
	}

	if cmd.Flags().Changed("executor-id") {
		executors, err := a.openStore(ctx, &a.cfg.Store)
		if err != nil {
			return nil, fmt.Errorf("打开 executor 存储失败: %w", err)
		}
		defer executors.Close()

		executor, err := executors.Get(ctx, f.executorID)
		if err != nil {
			return nil, fmt.Errorf("查找 executor %d 失败: %w", f.executorID, err)
		}
		return executor, nil
	}

	if f.host == "" || f.port <= 0 {
		return nil, fmt.Errorf("必须指定 --host 和 --port，或 --executor-id")
	}
	return types.NewExecutor(0, f.host, f.port, true), nil
}
