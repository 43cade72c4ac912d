// Package config aggregates all service configuration.
package config

import (
	"github.com/rise-and-shine/docstore/alert"
	"github.com/rise-and-shine/docstore/filestore/miniowr"
	"github.com/rise-and-shine/docstore/http/server"
	"github.com/rise-and-shine/docstore/internal/usecase/editor"
	"github.com/rise-and-shine/docstore/logger"
	"github.com/rise-and-shine/docstore/outbox"
	"github.com/rise-and-shine/docstore/pg"
	"github.com/rise-and-shine/docstore/tracing"
)

// Config is the root configuration of the docstore service, loaded from
// config/${ENVIRONMENT}.yaml by cfgloader.
type Config struct {
	ServiceName    string `yaml:"service_name"    validate:"required"`
	ServiceVersion string `yaml:"service_version" default:"unknown"`

	Logger  logger.Config       `yaml:"logger"`
	Server  server.Config       `yaml:"server"`
	PG      pg.Config           `yaml:"pg"`
	Minio   miniowr.Config      `yaml:"minio"`
	Alert   alert.Config        `yaml:"alert"`
	Tracing tracing.Config      `yaml:"tracing"`
	Outbox  outbox.WorkerConfig `yaml:"outbox"`
	Editor  editor.Config       `yaml:"editor"`
}
