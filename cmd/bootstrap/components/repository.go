package components

import (
	"ec-checkout/internal/infra/db"
	"ec-checkout/internal/infra/repository"
	"ec-checkout/internal/infra/sessioncart"
	"ec-checkout/internal/infra/uow"
	"ec-checkout/internal/pkg/config"
	"ec-checkout/internal/usecase"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

var RepositoryModule = fx.Module("repository",
	fx.Provide(
		NewDBTX,
		uow.NewPostgresUnitOfWork,
		fx.Annotate(
			repository.NewUserRepository,
			fx.As(new(usecase.UserRepository)),
		),
		fx.Annotate(
			repository.NewOrderRepository,
			fx.As(new(usecase.OrderRepository)),
		),
		NewCartStore,
	),
)

func NewDBTX(pool *pgxpool.Pool) db.DBTX {
	return pool
}

func NewCartStore(client *redis.Client, cfg config.Config) usecase.CartStore {
	return sessioncart.NewStore(client, cfg.Redis.CartTTL)
}
