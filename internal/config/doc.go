// Package config 提供调度层的配置管理功能。
// 支持从 YAML 文件、环境变量和命令行参数加载配置，
// 优先级顺序为：默认值 < YAML 文件 < 环境变量 < 命令行参数。
// 加载完成后通过 Routing() 获取只读的路由配置快照。
package config
