package data

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/jiaming2012/banking-services/src/models"
	"github.com/jiaming2012/banking-services/src/telemetry"
)

// TracedRepository decorates a Repository so that every call produces exactly
// one child span of whatever span is active in the calling context.
// Instrumentation is strictly non-blocking: attribute extraction never prevents
// the wrapped call from proceeding, and failures are re-thrown unmodified.
type TracedRepository[T any] struct {
	inner  Repository[T]
	entity string
}

func NewTracedRepository[T any](inner Repository[T], entityName string) *TracedRepository[T] {
	return &TracedRepository[T]{
		inner:  inner,
		entity: entityName,
	}
}

func (r *TracedRepository[T]) Save(ctx context.Context, entity T) (T, error) {
	ctx, span := r.startSpan(ctx, "save")
	defer span.End()

	span.SetAttributes(entityAttributes(entity)...)

	start := time.Now()
	result, err := r.inner.Save(ctx, entity)
	r.finish(span, start, err)
	if err != nil {
		return result, err
	}

	span.SetAttributes(entityAttributes(result)...)
	return result, nil
}

func (r *TracedRepository[T]) FindByID(ctx context.Context, id string) (T, error) {
	ctx, span := r.startSpan(ctx, "findById")
	defer span.End()

	recordIdentifier(span, id)

	start := time.Now()
	result, err := r.inner.FindByID(ctx, id)
	r.finish(span, start, err)
	if err != nil {
		return result, err
	}

	span.SetAttributes(entityAttributes(result)...)
	return result, nil
}

func (r *TracedRepository[T]) FindAll(ctx context.Context) ([]T, error) {
	ctx, span := r.startSpan(ctx, "findAll")
	defer span.End()

	start := time.Now()
	results, err := r.inner.FindAll(ctx)
	r.finish(span, start, err)
	if err != nil {
		return nil, err
	}

	span.SetAttributes(attribute.Int("db.result.count", len(results)))
	return results, nil
}

func (r *TracedRepository[T]) ExistsByID(ctx context.Context, id string) (bool, error) {
	ctx, span := r.startSpan(ctx, "existsById")
	defer span.End()

	recordIdentifier(span, id)

	start := time.Now()
	exists, err := r.inner.ExistsByID(ctx, id)
	r.finish(span, start, err)
	if err != nil {
		return false, err
	}

	span.SetAttributes(attribute.Bool("db.result.exists", exists))
	return exists, nil
}

func (r *TracedRepository[T]) DeleteByID(ctx context.Context, id string) error {
	ctx, span := r.startSpan(ctx, "deleteById")
	defer span.End()

	recordIdentifier(span, id)

	start := time.Now()
	err := r.inner.DeleteByID(ctx, id)
	r.finish(span, start, err)
	return err
}

func (r *TracedRepository[T]) Count(ctx context.Context) (int64, error) {
	ctx, span := r.startSpan(ctx, "count")
	defer span.End()

	start := time.Now()
	count, err := r.inner.Count(ctx)
	r.finish(span, start, err)
	if err != nil {
		return 0, err
	}

	span.SetAttributes(attribute.Int64("db.result.count", count))
	return count, nil
}

func (r *TracedRepository[T]) startSpan(ctx context.Context, method string) (context.Context, trace.Span) {
	tracer := otel.Tracer("data-access")
	ctx, span := tracer.Start(ctx, fmt.Sprintf("db:%s:%s", r.entity, method))

	span.SetAttributes(
		attribute.String("db.entity", r.entity),
		attribute.String("db.method", method),
		attribute.String("db.operation.category", string(CategorizeOperation(method))),
	)

	return ctx, span
}

func (r *TracedRepository[T]) finish(span trace.Span, start time.Time, err error) {
	span.SetAttributes(attribute.Int64("db.duration_ms", time.Since(start).Milliseconds()))

	if err != nil {
		span.RecordError(err)
		span.SetAttributes(telemetry.NewBusinessContext().ErrorType(models.ErrorTypeDatabase).ToAttributes()...)
		span.SetStatus(codes.Error, "database operation failed")
	}
}

func recordIdentifier(span trace.Span, id string) {
	if id != "" {
		span.SetAttributes(attribute.String("db.entity.id", id))
	}
}

// entityAttributes extracts identifying attributes from entities that opt into
// models.Identifiable. Types that do not implement it are traced without
// entity attributes.
func entityAttributes(entity interface{}) []attribute.KeyValue {
	identifiable, ok := entity.(models.Identifiable)
	if !ok {
		return nil
	}

	bCtx := telemetry.NewBusinessContext()

	if id := identifiable.EntityID(); id != "" {
		bCtx.Set("db.entity.id", id)
	}

	if owner := identifiable.EntityOwnerID(); owner != "" {
		bCtx.CustomerID(owner)
	}

	if kind := identifiable.EntityKind(); kind != "" {
		bCtx.Set("db.entity.kind", kind)
	}

	return bCtx.ToAttributes()
}
