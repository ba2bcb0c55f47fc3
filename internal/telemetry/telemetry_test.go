package telemetry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestSetupWithExporterRecordsSpans(t *testing.T) {
	exporter := tracetest.NewInMemoryExporter()
	shutdown, err := SetupWithExporter(context.Background(), exporter)
	require.NoError(t, err)
	defer Disable()

	_, span := Tracer("dataset").Start(context.Background(), "dataset.generate")
	span.End()

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	assert.Equal(t, "dataset.generate", spans[0].Name)
	assert.Equal(t, "mazegen/dataset", spans[0].InstrumentationScope.Name)
	assert.Contains(t, spans[0].Resource.Attributes(), attribute.String("service.name", serviceName))

	require.NoError(t, shutdown(context.Background()))
}

func TestDisableDropsSpans(t *testing.T) {
	exporter := tracetest.NewInMemoryExporter()
	_, err := SetupWithExporter(context.Background(), exporter)
	require.NoError(t, err)
	Disable()

	_, span := Tracer("generate").Start(context.Background(), "maze.generate")
	span.End()
	assert.Empty(t, exporter.GetSpans())
}
