package bootstrap

import (
	"lashdiary/cmd/bootstrap/components"

	"go.uber.org/fx"
)

var Module = fx.Options(
	ConfigModule,
	StudioModule,
	LoggerModule,
	StoreModule,
	JWTModule,
	components.AccountModule,
	components.SinkModule,
	components.UseCaseModule,
	components.WorkerModule,
	components.HandlerModule,
)
