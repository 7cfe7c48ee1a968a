package config

import (
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultClusterName is used when no cluster name is configured.
	DefaultClusterName = "azkaban"
	// DefaultServiceNamePrefix is the prefix of flow container service names.
	DefaultServiceNamePrefix = "fc-svc"
	// DefaultNamespace is the namespace flow container services live in.
	DefaultNamespace = "default"
	// DefaultServicePort is the port flow container services listen on.
	DefaultServicePort = 54343
)

// Config represents the complete configuration for the dispatch layer.
type Config struct {
	Cluster       ClusterConfig       `yaml:"cluster"`
	Executor      ExecutorConfig      `yaml:"executor"`
	Containerized ContainerizedConfig `yaml:"containerized"`
	Store         StoreConfig         `yaml:"store"`
	Logging       LoggingConfig       `yaml:"logging"`
}

// ClusterConfig identifies the cluster this process dispatches for.
type ClusterConfig struct {
	Name string `yaml:"name" env:"FD_CLUSTER_NAME"`
}

// ExecutorConfig holds executor RPC configuration.
type ExecutorConfig struct {
	ReverseProxy ReverseProxyConfig `yaml:"reverse_proxy"`
	// RequestTimeout bounds each RPC. Zero means no timeout.
	RequestTimeout time.Duration `yaml:"request_timeout" env:"FD_EXECUTOR_REQUEST_TIMEOUT"`
}

// ReverseProxyConfig holds the ingress that routes containerized executions by path prefix.
type ReverseProxyConfig struct {
	Enabled  bool   `yaml:"enabled" env:"FD_EXECUTOR_REVERSE_PROXY_ENABLED"`
	Hostname string `yaml:"hostname" env:"FD_EXECUTOR_REVERSE_PROXY_HOSTNAME"`
	Port     int    `yaml:"port" env:"FD_EXECUTOR_REVERSE_PROXY_PORT"`
}

// ContainerizedConfig holds the naming convention of flow container services.
type ContainerizedConfig struct {
	ServiceNamePrefix string `yaml:"service_name_prefix" env:"FD_CONTAINERIZED_SERVICE_NAME_PREFIX"`
	Namespace         string `yaml:"namespace" env:"FD_CONTAINERIZED_NAMESPACE"`
	ServicePort       int    `yaml:"service_port" env:"FD_CONTAINERIZED_SERVICE_PORT"`
	// PrefetchJobTypeProxyUsers has the form "jobtype1,user1;jobtype2,user2".
	PrefetchJobTypeProxyUsers string `yaml:"prefetch_jobtype_proxy_users" env:"FD_CONTAINERIZED_PREFETCH_JOBTYPE_PROXY_USERS"`
}

// StoreConfig selects the executor registry backend.
type StoreConfig struct {
	Type     string         `yaml:"type" env:"FD_STORE_TYPE"` // memory, redis, mysql, postgres
	Redis    RedisConfig    `yaml:"redis"`
	Database DatabaseConfig `yaml:"database"`
}

// RedisConfig Redis配置
type RedisConfig struct {
	Addr     string `yaml:"addr" env:"FD_STORE_REDIS_ADDR"`
	Password string `yaml:"password" env:"FD_STORE_REDIS_PASSWORD"`
	DB       int    `yaml:"db" env:"FD_STORE_REDIS_DB"`
	Prefix   string `yaml:"prefix" env:"FD_STORE_REDIS_PREFIX"`
}

// DatabaseConfig 数据库配置
type DatabaseConfig struct {
	Host     string `yaml:"host" env:"FD_STORE_DB_HOST"`
	Port     int    `yaml:"port" env:"FD_STORE_DB_PORT"`
	Username string `yaml:"username" env:"FD_STORE_DB_USERNAME"`
	Password string `yaml:"password" env:"FD_STORE_DB_PASSWORD"`
	Database string `yaml:"database" env:"FD_STORE_DB_DATABASE"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level      string `yaml:"level" env:"FD_LOG_LEVEL"`
	Format     string `yaml:"format" env:"FD_LOG_FORMAT"`
	Output     string `yaml:"output" env:"FD_LOG_OUTPUT"`
	FilePath   string `yaml:"file_path" env:"FD_LOG_FILE_PATH"`
	MaxSize    int    `yaml:"max_size"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAge     int    `yaml:"max_age"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Cluster: ClusterConfig{
			Name: DefaultClusterName,
		},
		Executor: ExecutorConfig{
			ReverseProxy: ReverseProxyConfig{
				Enabled: false,
			},
		},
		Containerized: ContainerizedConfig{
			ServiceNamePrefix: DefaultServiceNamePrefix,
			Namespace:         DefaultNamespace,
			ServicePort:       DefaultServicePort,
		},
		Store: StoreConfig{
			Type: "memory",
			Redis: RedisConfig{
				Addr:   "localhost:6379",
				Prefix: "flow-dispatch",
			},
			Database: DatabaseConfig{
				Host: "localhost",
				Port: 3306,
			},
		},
		Logging: LoggingConfig{
			Level:      "info",
			Format:     "console",
			Output:     "stderr",
			MaxSize:    100,
			MaxBackups: 3,
			MaxAge:     7,
		},
	}
}

// Loader handles configuration loading from multiple sources.
type Loader struct {
	configPath string
	cmdArgs    map[string]string
	lookupEnv  func(string) string
}

// NewLoader creates a new configuration loader.
func NewLoader() *Loader {
	return &Loader{
		cmdArgs:   make(map[string]string),
		lookupEnv: os.Getenv,
	}
}

// WithConfigPath sets the path to the YAML configuration file.
func (l *Loader) WithConfigPath(path string) *Loader {
	l.configPath = path
	return l
}

// WithCmdArgs sets dot-notation overrides, e.g. "executor.reverse_proxy.enabled" = "true".
func (l *Loader) WithCmdArgs(args map[string]string) *Loader {
	l.cmdArgs = args
	return l
}

// WithEnv replaces the environment lookup (used by tests).
func (l *Loader) WithEnv(lookup func(string) string) *Loader {
	l.lookupEnv = lookup
	return l
}

// Load loads configuration from all sources with proper precedence:
// defaults < YAML file < environment variables < command-line flags
func (l *Loader) Load() (*Config, error) {
	cfg := DefaultConfig()

	if l.configPath != "" {
		if err := l.loadFromFile(cfg); err != nil {
			return nil, fmt.Errorf("从文件加载配置失败: %w", err)
		}
	}

	if err := l.applyEnvToStruct(reflect.ValueOf(cfg).Elem()); err != nil {
		return nil, fmt.Errorf("应用环境变量覆盖失败: %w", err)
	}

	for key, value := range l.cmdArgs {
		if err := setConfigValue(cfg, key, value); err != nil {
			return nil, fmt.Errorf("设置配置值 %s 失败: %w", key, err)
		}
	}

	return cfg, nil
}

// LoadAndValidate loads the configuration and runs the Validator over it.
func (l *Loader) LoadAndValidate() (*Config, error) {
	cfg, err := l.Load()
	if err != nil {
		return nil, err
	}
	if err := NewValidator().Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (l *Loader) loadFromFile(cfg *Config) error {
	data, err := os.ReadFile(l.configPath)
	if err != nil {
		return fmt.Errorf("读取配置文件失败: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("解析配置文件失败: %w", err)
	}
	return nil
}

// applyEnvToStruct recursively applies environment variables to struct fields.
func (l *Loader) applyEnvToStruct(v reflect.Value) error {
	t := v.Type()

	for i := 0; i < v.NumField(); i++ {
		field := v.Field(i)
		fieldType := t.Field(i)

		if field.Kind() == reflect.Struct {
			if err := l.applyEnvToStruct(field); err != nil {
				return err
			}
			continue
		}

		envTag := fieldType.Tag.Get("env")
		if envTag == "" {
			continue
		}
		envValue := l.lookupEnv(envTag)
		if envValue == "" {
			continue
		}

		if err := setFieldValue(field, envValue); err != nil {
			return fmt.Errorf("从环境变量 %s 设置字段 %s 失败: %w", envTag, fieldType.Name, err)
		}
	}

	return nil
}

// setConfigValue sets a configuration value by dot-notation path.
func setConfigValue(cfg *Config, path, value string) error {
	parts := strings.Split(path, ".")
	v := reflect.ValueOf(cfg).Elem()

	for i, part := range parts {
		name := strings.ReplaceAll(part, "_", "")
		field := v.FieldByNameFunc(func(fieldName string) bool {
			return strings.EqualFold(fieldName, name)
		})
		if !field.IsValid() {
			return fmt.Errorf("未知的配置路径: %s", path)
		}

		if i == len(parts)-1 {
			return setFieldValue(field, value)
		}
		if field.Kind() != reflect.Struct {
			return fmt.Errorf("期望 %s 是结构体，实际是 %s", part, field.Kind())
		}
		v = field
	}

	return nil
}

// setFieldValue sets a reflect.Value from a string value.
func setFieldValue(field reflect.Value, value string) error {
	if !field.CanSet() {
		return fmt.Errorf("无法设置字段")
	}

	switch field.Kind() {
	case reflect.String:
		field.SetString(value)

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if field.Type() == reflect.TypeOf(time.Duration(0)) {
			d, err := time.ParseDuration(value)
			if err != nil {
				return fmt.Errorf("无效的时间格式: %w", err)
			}
			field.SetInt(int64(d))
		} else {
			i, err := strconv.ParseInt(value, 10, 64)
			if err != nil {
				return fmt.Errorf("无效的整数: %w", err)
			}
			field.SetInt(i)
		}

	case reflect.Bool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("无效的布尔值: %w", err)
		}
		field.SetBool(b)

	default:
		return fmt.Errorf("不支持的字段类型: %s", field.Kind())
	}

	return nil
}

// Serialize serializes the configuration to YAML bytes.
func (c *Config) Serialize() ([]byte, error) {
	return yaml.Marshal(c)
}

// ParseConfig parses a YAML configuration from bytes on top of the defaults.
func ParseConfig(data []byte) (*Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("解析配置失败: %w", err)
	}
	return cfg, nil
}
