package infra

import (
	"context"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/jaeger"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	tracesdk "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.4.0"
	"go.uber.org/fx"

	"exusiai.dev/activity-backend/internal/app/appconfig"
	"exusiai.dev/activity-backend/internal/pkg/bininfo"
)

const TracerName = "activity-backend"

func exporter(name string) (tracesdk.SpanExporter, error) {
	switch name {
	case "otlp":
		return otlptracegrpc.New(context.Background())
	case "jaeger":
		return jaeger.New(jaeger.WithCollectorEndpoint())
	case "stdout":
		return stdouttrace.New(stdouttrace.WithPrettyPrint())
	default:
		return nil, errors.Errorf("unknown tracing exporter %q", name)
	}
}

// Tracing installs the global tracer provider used by the http server and the
// bun query hook. It does nothing unless TracingEnabled is set.
func Tracing(lc fx.Lifecycle, conf *appconfig.Config) error {
	if !conf.TracingEnabled {
		return nil
	}

	opts := []tracesdk.TracerProviderOption{
		tracesdk.WithSampler(tracesdk.ParentBased(tracesdk.TraceIDRatioBased(conf.TracingSampleRate))),
		tracesdk.WithResource(resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceNameKey.String(TracerName),
			semconv.ServiceVersionKey.String(bininfo.Version),
			attribute.String("environment", conf.AppContext.Env.String()),
		)),
	}
	for _, name := range conf.TracingExporters {
		exp, err := exporter(name)
		if err != nil {
			return errors.Wrap(err, "infra: tracing: failed to create exporter")
		}
		opts = append(opts, tracesdk.WithBatcher(exp))
	}

	tp := tracesdk.NewTracerProvider(opts...)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(propagation.TraceContext{}, propagation.Baggage{}))

	log.Info().
		Strs("exporters", conf.TracingExporters).
		Float64("sampleRate", conf.TracingSampleRate).
		Msg("OpenTelemetry tracing enabled")

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return tp.Shutdown(ctx)
		},
	})

	return nil
}
