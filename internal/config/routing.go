package config

import "yqhp/flow-dispatch/internal/container"

// RoutingConfig is the part of the configuration the resolvers and the
// gateway read. It is a value: copies handed to concurrent callers never
// change after construction.
type RoutingConfig struct {
	ClusterName         string
	ReverseProxyEnabled bool
	ReverseProxyHost    string
	ReverseProxyPort    int
	ServiceNamePrefix   string
	Namespace           string
	ServicePort         int
}

// DefaultRoutingConfig returns the routing snapshot of DefaultConfig.
func DefaultRoutingConfig() RoutingConfig {
	return DefaultConfig().Routing()
}

// Routing returns the routing snapshot of c.
func (c *Config) Routing() RoutingConfig {
	clusterName := c.Cluster.Name
	if clusterName == "" {
		clusterName = DefaultClusterName
	}
	return RoutingConfig{
		ClusterName:         clusterName,
		ReverseProxyEnabled: c.Executor.ReverseProxy.Enabled,
		ReverseProxyHost:    c.Executor.ReverseProxy.Hostname,
		ReverseProxyPort:    c.Executor.ReverseProxy.Port,
		ServiceNamePrefix:   c.Containerized.ServiceNamePrefix,
		Namespace:           c.Containerized.Namespace,
		ServicePort:         c.Containerized.ServicePort,
	}
}

// JobTypeProxyUsers parses the prefetch job type to proxy user mapping.
func (c *Config) JobTypeProxyUsers() (container.JobTypeProxyMap, error) {
	return container.ParseJobTypeProxyMap(c.Containerized.PrefetchJobTypeProxyUsers)
}
