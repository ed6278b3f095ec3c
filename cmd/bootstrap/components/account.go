package components

import (
	"lashdiary/internal/infra/accounts"
	"lashdiary/internal/pkg/config"
	"lashdiary/internal/usecase/commands"
	"lashdiary/internal/usecase/queries"

	"go.uber.org/fx"
)

var AccountModule = fx.Module("account",
	fx.Provide(
		fx.Annotate(
			NewAccountDirectory,
			fx.As(new(commands.AccountDirectory)),
			fx.As(new(queries.UserReadStore)),
		),
	),
)

func NewAccountDirectory(cfg config.Config) (*accounts.Directory, error) {
	return accounts.NewDirectory(cfg.Admin)
}
