package application

import "context"

type Repository interface {
	Create(ctx context.Context, a *Application) error
	GetByApplicationID(ctx context.Context, applicationID string) (*Application, error)
	List(ctx context.Context, f Filter) ([]Application, error)
	Count(ctx context.Context, f Filter) (int64, error)
	// CompareAndSetStatus moves the application to s.To only if its status is
	// still from. It reports false when no row matched.
	CompareAndSetStatus(ctx context.Context, applicationID string, from Status, s Stamp) (bool, error)
}
