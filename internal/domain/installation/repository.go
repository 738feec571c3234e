package installation

import "context"

type Repository interface {
	Create(ctx context.Context, inst *Installation) error
	GetByID(ctx context.Context, id string) (*Installation, error)
	Exists(ctx context.Context, id string) (bool, error)
	List(ctx context.Context, page, pageSize int) ([]*Installation, int64, error)
}
