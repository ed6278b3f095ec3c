package queries

import (
	"context"

	"lashdiary/internal/domain/studio"
	"lashdiary/internal/usecase/shared"
)

type SettingsQueries interface {
	Get(ctx context.Context) (studio.Settings, error)
}

type settingsQueriesImpl struct {
	uow shared.UnitOfWork
}

func NewSettingsQueries(uow shared.UnitOfWork) SettingsQueries {
	return &settingsQueriesImpl{uow: uow}
}

func (q *settingsQueriesImpl) Get(ctx context.Context) (studio.Settings, error) {
	var s studio.Settings
	err := q.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		var err error
		s, err = tx.Settings().Get(ctx)
		return err
	})
	return s, err
}
