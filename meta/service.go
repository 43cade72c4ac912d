package meta

import "sync"

var (
	serviceName    string    //nolint:gochecknoglobals // for minimizing dependency injection across codebase
	serviceVersion string    //nolint:gochecknoglobals // for minimizing dependency injection across codebase
	environment    string    //nolint:gochecknoglobals // for minimizing dependency injection across codebase
	once           sync.Once //nolint:gochecknoglobals // ensures SetServiceInfo is called once
)

// SetServiceInfo sets the global service identity used by logging, tracing
// and alerting. It should be called once at application startup; subsequent
// calls are ignored.
func SetServiceInfo(name, version, env string) {
	once.Do(func() {
		serviceName = name
		serviceVersion = version
		environment = env
	})
}

// GetServiceName returns the global service name.
func GetServiceName() string {
	return serviceName
}

// GetServiceVersion returns the global service version.
func GetServiceVersion() string {
	return serviceVersion
}

// GetEnvironment returns the deployment environment the service runs in.
func GetEnvironment() string {
	return environment
}
