package repository

import (
	"context"

	"policy-illustrator/domain"
)

type IllustrationRepository interface {
	Save(ctx context.Context, req domain.ProjectionRequest, result domain.ProjectionResult) error
}
