package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"yqhp/flow-dispatch/pkg/types"
)

func (a *app) newExecutorsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "executors",
		Short: "管理裸机 executor 注册表",
	}
	cmd.AddCommand(a.newExecutorsListCmd(), a.newExecutorsPutCmd(), a.newExecutorsRemoveCmd())
	return cmd
}

func (a *app) newExecutorsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "列出活跃的 executor",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			executors, err := a.openStore(cmd.Context(), &a.cfg.Store)
			if err != nil {
				return err
			}
			defer executors.Close()

			active, err := executors.ActiveExecutors(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), active)
		},
	}
}

func (a *app) newExecutorsPutCmd() *cobra.Command {
	var executor types.Executor

	cmd := &cobra.Command{
		Use:   "put",
		Short: "注册或更新 executor",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			executors, err := a.openStore(cmd.Context(), &a.cfg.Store)
			if err != nil {
				return err
			}
			defer executors.Close()

			if err := executors.Put(cmd.Context(), &executor); err != nil {
				return err
			}
			if !a.quiet {
				_, err = fmt.Fprintf(cmd.OutOrStdout(), "已保存 %s\n", executor.String())
			}
			return err
		},
	}

	cmd.Flags().IntVar(&executor.ID, "id", 0, "executor ID")
	cmd.Flags().StringVar(&executor.Host, "host", "", "executor 主机")
	cmd.Flags().IntVar(&executor.Port, "port", 0, "executor 端口")
	cmd.Flags().BoolVar(&executor.Active, "active", true, "是否活跃")
	_ = cmd.MarkFlagRequired("id")
	_ = cmd.MarkFlagRequired("host")
	_ = cmd.MarkFlagRequired("port")
	return cmd
}

func (a *app) newExecutorsRemoveCmd() *cobra.Command {
	var id int

	cmd := &cobra.Command{
		Use:   "remove",
		Short: "删除 executor",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			executors, err := a.openStore(cmd.Context(), &a.cfg.Store)
			if err != nil {
				return err
			}
			defer executors.Close()
			return executors.Remove(cmd.Context(), id)
		},
	}

	cmd.Flags().IntVar(&id, "id", 0, "executor ID")
	_ = cmd.MarkFlagRequired("id")
	return cmd
}
