package data

import (
	"context"
	"strings"
)

// Repository is the data-access capability surface the instrumentation wraps.
// All implementations are synchronous; concurrency control belongs to the
// underlying store.
type Repository[T any] interface {
	Save(ctx context.Context, entity T) (T, error)
	FindByID(ctx context.Context, id string) (T, error)
	FindAll(ctx context.Context) ([]T, error)
	ExistsByID(ctx context.Context, id string) (bool, error)
	DeleteByID(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
}

type OperationCategory string

const (
	OperationCategoryRead      OperationCategory = "READ"
	OperationCategoryWrite     OperationCategory = "WRITE"
	OperationCategoryDelete    OperationCategory = "DELETE"
	OperationCategoryOperation OperationCategory = "OPERATION"
)

// CategorizeOperation derives the semantic category of a data-access method
// from its name prefix. The mapping is total: anything unrecognized is a plain
// OPERATION.
func CategorizeOperation(method string) OperationCategory {
	name := strings.ToLower(method)

	switch {
	case strings.HasPrefix(name, "save"), strings.HasPrefix(name, "insert"):
		return OperationCategoryWrite
	case strings.HasPrefix(name, "delete"), strings.HasPrefix(name, "remove"):
		return OperationCategoryDelete
	case strings.HasPrefix(name, "find"), strings.HasPrefix(name, "get"),
		strings.HasPrefix(name, "exists"), strings.HasPrefix(name, "count"):
		return OperationCategoryRead
	default:
		return OperationCategoryOperation
	}
}
