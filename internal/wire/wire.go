//go:build wireinject
// +build wireinject

package wire

import (
	"github.com/google/wire"

	"culturlens/internal/config"
	"culturlens/internal/dbmongo"
	"culturlens/internal/dbmysql"
	"culturlens/internal/forum"
	"culturlens/internal/hub"
	"culturlens/internal/media"
	"culturlens/internal/notif"
	"culturlens/internal/user"
)

// InitializeApplication assembles the full object graph: config, both
// stores, the notification pipeline, the broadcast hub and every HTTP
// handler. Wire generates the real body in wire_gen.go.
func InitializeApplication() (*Application, error) {
	wire.Build(
		config.LoadConfig,
		dbmysql.NewMySQL,
		dbmongo.NewMongoConnection,
		dbmongo.NewMediaStorage,

		user.NewUserRepository,
		user.NewUserService,
		user.NewHandler,

		forum.NewForumRepository,
		ProvideForumService,
		forum.NewHandler,

		dbmysql.NewNotificationRepository,
		notif.NewDeliveryScheduler,
		ProvideIdentityResolver,
		ProvideBuilder,
		ProvideNotifService,
		ProvideNotifHandler,

		hub.NewHub,
		ProvideHubServer,

		media.NewHandler,

		wire.Struct(new(Application), "*"),
	)
	return &Application{}, nil
}
