package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"yqhp/flow-dispatch/internal/container"
	"yqhp/flow-dispatch/internal/project"
)

func (a *app) newAnalyzeCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "analyze <bundle.yaml>",
		Short: "分析容器化执行所需的作业类型、灰度分桶与代理用户",
		Long: `解析一个执行包 (项目、流定义、执行实例与属性源)，输出容器化启动前需要准备的内容：
  - 作业类型 (跳过已禁用的节点)
  - 灰度分桶 [1,100]
  - 代理用户 (流参数 > 节点 UI 覆盖 > 节点属性 > 流属性)
  - 配置中为这些作业类型预取的代理用户`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			bundle, err := project.NewBundleParser().ParseFile(args[0])
			if err != nil {
				return fmt.Errorf("解析执行包失败: %w", err)
			}

			jobTypeUsers, err := a.cfg.JobTypeProxyUsers()
			if err != nil {
				return err
			}

			registry := bundle.Registry()
			analyzer := container.NewAnalyzer(registry, registry, jobTypeUsers)
			plan, err := analyzer.Analyze(cmd.Context(), &bundle.Instance, bundle.FlowParams)
			if err != nil {
				return fmt.Errorf("分析失败: %w", err)
			}

			switch output {
			case "json":
				return printJSON(cmd.OutOrStdout(), plan)
			case "yaml":
				data, err := yaml.Marshal(plan)
				if err != nil {
					return err
				}
				_, err = cmd.OutOrStdout().Write(data)
				return err
			default:
				return fmt.Errorf("不支持的输出格式: %s", output)
			}
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "json", "输出格式 (json, yaml)")
	return cmd
}
