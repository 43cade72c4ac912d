package tracing

import "time"

// reconnectionPeriod is the interval between OTLP exporter reconnect attempts.
const reconnectionPeriod = 10 * time.Second

// Config defines configuration options for the tracing package.
type Config struct {
	// Disable, if true, installs a no-op tracer provider and no spans are exported.
	Disable bool `yaml:"disable" default:"false"`

	// ExporterHost is the hostname or IP address of the OTLP collector.
	ExporterHost string `yaml:"exporter_host" validate:"required"`

	// ExporterPort is the port number of the OTLP collector.
	ExporterPort int `yaml:"exporter_port" validate:"required"`

	// SampleRate controls the trace sampling fraction in the range [0, 1].
	SampleRate float64 `yaml:"sample_rate" default:"1"`

	// Tags are added as resource attributes to all exported spans.
	Tags map[string]string `yaml:"tags"`
}
