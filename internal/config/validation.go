package config

import (
	"fmt"
	"net"
	"strings"

	"yqhp/flow-dispatch/internal/container"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
	Cause   error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Unwrap returns the underlying error, if any.
func (e *ValidationError) Unwrap() error {
	return e.Cause
}

// ValidationErrors is a collection of validation errors.
type ValidationErrors []*ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	msgs := make([]string, 0, len(e))
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return fmt.Sprintf("configuration validation failed:\n  - %s", strings.Join(msgs, "\n  - "))
}

// Unwrap exposes the individual errors to errors.Is and errors.As.
func (e ValidationErrors) Unwrap() []error {
	errs := make([]error, 0, len(e))
	for _, err := range e {
		errs = append(errs, err)
	}
	return errs
}

// HasErrors returns true if there are any validation errors.
func (e ValidationErrors) HasErrors() bool {
	return len(e) > 0
}

// Validator validates configuration values.
type Validator struct {
	errors ValidationErrors
}

// NewValidator creates a new configuration validator.
func NewValidator() *Validator {
	return &Validator{}
}

func (v *Validator) addError(field, message string) {
	v.errors = append(v.errors, &ValidationError{Field: field, Message: message})
}

// Validate validates the entire configuration and returns any errors.
func (v *Validator) Validate(cfg *Config) error {
	v.errors = nil

	v.validateCluster(&cfg.Cluster)
	v.validateExecutor(&cfg.Executor)
	v.validateContainerized(&cfg.Containerized)
	v.validateStore(&cfg.Store)
	v.validateLogging(&cfg.Logging)

	if v.errors.HasErrors() {
		return v.errors
	}
	return nil
}

func (v *Validator) validateCluster(cfg *ClusterConfig) {
	if strings.TrimSpace(cfg.Name) == "" {
		v.addError("cluster.name", "cluster name is required")
	} else if !isValidHostname(cfg.Name) {
		// The cluster name becomes part of a URL path segment and a service host name.
		v.addError("cluster.name", fmt.Sprintf("invalid cluster name '%s'", cfg.Name))
	}
}

func (v *Validator) validateExecutor(cfg *ExecutorConfig) {
	if cfg.RequestTimeout < 0 {
		v.addError("executor.request_timeout", "request timeout must be non-negative")
	}

	proxy := cfg.ReverseProxy
	if !proxy.Enabled {
		return
	}
	if proxy.Hostname == "" {
		v.addError("executor.reverse_proxy.hostname", "hostname is required when reverse proxy is enabled")
	} else if net.ParseIP(proxy.Hostname) == nil && !isValidHostname(proxy.Hostname) {
		v.addError("executor.reverse_proxy.hostname", fmt.Sprintf("invalid hostname '%s'", proxy.Hostname))
	}
	if !isValidPort(proxy.Port) {
		v.addError("executor.reverse_proxy.port", "port must be between 1 and 65535")
	}
}

func (v *Validator) validateContainerized(cfg *ContainerizedConfig) {
	if cfg.ServiceNamePrefix == "" {
		v.addError("containerized.service_name_prefix", "service name prefix is required")
	}
	if cfg.Namespace == "" {
		v.addError("containerized.namespace", "namespace is required")
	}
	if !isValidPort(cfg.ServicePort) {
		v.addError("containerized.service_port", "port must be between 1 and 65535")
	}
	if _, err := container.ParseJobTypeProxyMap(cfg.PrefetchJobTypeProxyUsers); err != nil {
		v.errors = append(v.errors, &ValidationError{
			Field:   "containerized.prefetch_jobtype_proxy_users",
			Message: err.Error(),
			Cause:   err,
		})
	}
}

func (v *Validator) validateStore(cfg *StoreConfig) {
	switch cfg.Type {
	case "memory":
	case "redis":
		if cfg.Redis.Addr == "" {
			v.addError("store.redis.addr", "redis address is required")
		}
	case "mysql", "postgres":
		if cfg.Database.Host == "" {
			v.addError("store.database.host", "database host is required")
		}
		if cfg.Database.Database == "" {
			v.addError("store.database.database", "database name is required")
		}
		if !isValidPort(cfg.Database.Port) {
			v.addError("store.database.port", "port must be between 1 and 65535")
		}
	default:
		v.addError("store.type", fmt.Sprintf("invalid store type '%s', must be one of: memory, redis, mysql, postgres", cfg.Type))
	}
}

func (v *Validator) validateLogging(cfg *LoggingConfig) {
	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if cfg.Level == "" {
		v.addError("logging.level", "log level is required")
	} else if !validLevels[strings.ToLower(cfg.Level)] {
		v.addError("logging.level", fmt.Sprintf("invalid log level '%s', must be one of: debug, info, warn, error", cfg.Level))
	}

	if cfg.Format != "json" && cfg.Format != "console" {
		v.addError("logging.format", fmt.Sprintf("invalid log format '%s', must be one of: json, console", cfg.Format))
	}

	switch cfg.Output {
	case "", "stdout", "stderr":
	case "file", "both":
		if cfg.FilePath == "" {
			v.addError("logging.file_path", "file path is required for file output")
		}
	default:
		v.addError("logging.output", fmt.Sprintf("invalid log output '%s', must be one of: stdout, stderr, file, both", cfg.Output))
	}
}

func isValidPort(port int) bool {
	return port > 0 && port <= 65535
}

// isValidHostname performs basic hostname validation.
func isValidHostname(hostname string) bool {
	if len(hostname) == 0 || len(hostname) > 253 {
		return false
	}

	for _, label := range strings.Split(hostname, ".") {
		if len(label) == 0 || len(label) > 63 {
			return false
		}
		if !isAlphanumeric(label[0]) || !isAlphanumeric(label[len(label)-1]) {
			return false
		}
		for _, c := range label {
			if !isAlphanumeric(byte(c)) && c != '-' {
				return false
			}
		}
	}

	return true
}

func isAlphanumeric(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}

// Validate validates the configuration and returns any errors.
func (c *Config) Validate() error {
	return NewValidator().Validate(c)
}
