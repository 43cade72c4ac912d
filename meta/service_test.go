package meta_test

import (
	"testing"

	"github.com/rise-and-shine/docstore/meta"
	"github.com/stretchr/testify/assert"
)

func TestServiceInfo(t *testing.T) {
	meta.SetServiceInfo("docstore", "1.2.3", "test")

	assert.Equal(t, "docstore", meta.GetServiceName())
	assert.Equal(t, "1.2.3", meta.GetServiceVersion())
	assert.Equal(t, "test", meta.GetEnvironment())

	// Later calls are ignored; the identity is set once at startup.
	meta.SetServiceInfo("other", "9.9.9", "production")
	assert.Equal(t, "docstore", meta.GetServiceName())

	// The accessors are distinct from the context keys of the same concern.
	assert.Equal(t, meta.ContextKey("service_name"), meta.ServiceName)
	assert.Equal(t, meta.ContextKey("service_version"), meta.ServiceVersion)
}
