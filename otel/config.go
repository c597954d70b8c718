package otel

import (
	"strings"
	"time"
)

const ConfigName = "otel"

const (
	ExporterNone     = "none"
	ExporterStdout   = "stdout"
	ExporterOTLPGRPC = "otlp-grpc"
	ExporterOTLPHTTP = "otlp-http"
)

type Config struct {
	Enabled     bool        `mapstructure:"enabled"`
	ServiceName string      `mapstructure:"service_name"`
	Traces      TraceConfig `mapstructure:"traces"`
}

type TraceConfig struct {
	Exporter string        `mapstructure:"exporter"`
	Endpoint string        `mapstructure:"endpoint"`
	Insecure bool          `mapstructure:"insecure"`
	Timeout  time.Duration `mapstructure:"timeout"`
	Pretty   bool          `mapstructure:"pretty"`
}

func (c Config) exporter() string {
	if !c.Enabled {
		return ExporterNone
	}
	exp := strings.ToLower(strings.TrimSpace(c.Traces.Exporter))
	if exp == "" {
		return ExporterStdout
	}
	return exp
}
