package wire

import (
	"gorm.io/gorm"

	"culturlens/internal/config"
	"culturlens/internal/dbmongo"
	"culturlens/internal/dbmysql"
	"culturlens/internal/forum"
	"culturlens/internal/hub"
	"culturlens/internal/media"
	"culturlens/internal/notif"
	"culturlens/internal/user"
)

// Application holds the fully-wired object graph for cmd/server.
type Application struct {
	Config *config.Config
	DB     *gorm.DB
	Mongo  *dbmongo.MongoClient

	Hub       *hub.Hub
	HubServer *hub.Server

	NotifService *notif.Service
	NotifHandler *notif.Handler

	UserHandler  *user.Handler
	ForumHandler *forum.Handler
	MediaHandler *media.Handler
}

func ProvideIdentityResolver(users user.UserRepository) *notif.IdentityResolver {
	return notif.NewIdentityResolver(users)
}

func ProvideBuilder(cfg *config.Config) *notif.Builder {
	return notif.NewBuilder(cfg.DeliveryDelay(), cfg.Notification.CommentPreviewLen)
}

func ProvideNotifService(
	resolver *notif.IdentityResolver,
	builder *notif.Builder,
	repo dbmysql.NotificationRepository,
	scheduler *notif.DeliveryScheduler,
	h *hub.Hub,
	forums forum.ForumRepository,
) *notif.Service {
	return notif.NewService(resolver, builder, repo, scheduler, h, forums)
}

func ProvideNotifHandler(cfg *config.Config, service *notif.Service) *notif.Handler {
	return notif.NewHandler(service, cfg.Notification.RecentLimit)
}

func ProvideForumService(
	repo forum.ForumRepository,
	photos *dbmongo.MediaStorage,
	notifService *notif.Service,
) forum.ForumService {
	return forum.NewForumService(repo, photos, notifService)
}

func ProvideHubServer(cfg *config.Config, h *hub.Hub) *hub.Server {
	return hub.NewServer(h, cfg.Notification.ClientBufferSize)
}
