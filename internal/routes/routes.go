package routes

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/xyz-asif/nagaralert/internal/config"
	"github.com/xyz-asif/nagaralert/internal/database"
	"github.com/xyz-asif/nagaralert/internal/features/analytics"
	"github.com/xyz-asif/nagaralert/internal/features/auth"
	"github.com/xyz-asif/nagaralert/internal/features/broadcasts"
	"github.com/xyz-asif/nagaralert/internal/features/media"
	"github.com/xyz-asif/nagaralert/internal/features/notifications"
	"github.com/xyz-asif/nagaralert/internal/features/reports"
	"github.com/xyz-asif/nagaralert/internal/features/teams"
	"github.com/xyz-asif/nagaralert/internal/features/users"
	"github.com/xyz-asif/nagaralert/internal/features/verify"
	"github.com/xyz-asif/nagaralert/internal/live"
	"github.com/xyz-asif/nagaralert/internal/middleware"
	"github.com/xyz-asif/nagaralert/internal/pkg/jwt"
	"github.com/xyz-asif/nagaralert/internal/pkg/storage"
)

// Deps are the collaborators built in main. Verifier and Relay may be nil.
type Deps struct {
	Config   *config.Config
	Firebase *database.Firebase
	Mongo    *database.MongoDB
	Uploader storage.Uploader
	Verifier verify.Verifier
	Relay    live.Relay
}

// repositorySource lets the hub read reports straight from the store,
// so the hub can exist before the report service that notifies it
type repositorySource struct {
	repo reports.Repository
}

func (s repositorySource) All(ctx context.Context) ([]reports.Report, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	reports.SortNewestFirst(items)
	return items, nil
}

// karmaWithNotice credits points and then tells the citizen about them
type karmaWithNotice struct {
	users   *users.Service
	notices *notifications.Service
}

func (k karmaWithNotice) AddPoints(ctx context.Context, uid string, delta int) error {
	if err := k.users.AddPoints(ctx, uid, delta); err != nil {
		return err
	}
	k.notices.KarmaAwarded(ctx, uid, delta)
	return nil
}

type stores struct {
	reports       reports.Repository
	users         users.Repository
	broadcasts    broadcasts.Repository
	notifications notifications.Repository
}

func newStores(deps Deps) stores {
	if deps.Config.StoreDriver == config.StoreMongo && deps.Mongo != nil {
		return stores{
			reports:       reports.NewMongoRepository(deps.Mongo.Database),
			users:         users.NewMongoRepository(deps.Mongo.Database),
			broadcasts:    broadcasts.NewMongoRepository(deps.Mongo.Database),
			notifications: notifications.NewMongoRepository(deps.Mongo.Database),
		}
	}
	return stores{
		reports:       reports.NewFirebaseRepository(deps.Firebase.DB),
		users:         users.NewFirebaseRepository(deps.Firebase.DB),
		broadcasts:    broadcasts.NewFirebaseRepository(deps.Firebase.DB),
		notifications: notifications.NewFirebaseRepository(deps.Firebase.DB),
	}
}

// SetupRoutes wires every feature and returns the live hub; the caller runs it
func SetupRoutes(router *gin.Engine, deps Deps) *live.Hub {
	cfg := deps.Config
	st := newStores(deps)

	hub := live.NewHub(repositorySource{repo: st.reports}, deps.Relay)

	usersService := users.NewService(st.users)
	notificationsService := notifications.NewService(st.notifications)
	reportsService := reports.NewService(st.reports, deps.Verifier, deps.Uploader,
		karmaWithNotice{users: usersService, notices: notificationsService}, hub)
	reportsService.Observe(notificationsService)
	authService := auth.NewService(
		auth.NewFirebaseProvider(deps.Firebase.Auth),
		st.users,
		jwt.DefaultConfig(cfg.JWTSecret, cfg.JWTExpireHours),
		cfg.AdminSecretCode,
	)
	broadcastsService := broadcasts.NewService(st.broadcasts, usersService, hub)

	authMiddleware := middleware.Auth(cfg.JWTSecret)

	// Unversioned paths kept for existing clients
	legacy := router.Group("/api")
	verify.RegisterRoutes(legacy, deps.Verifier)
	v1 := router.Group("/api/v1")
	media.RegisterRoutes(legacy, v1, deps.Uploader, authMiddleware)
	reportsGroup := reports.RegisterRoutes(legacy, v1, reportsService, authMiddleware)

	reportsGroup.GET("/live", live.NewHandler(hub, cfg.FrontendURL).Stream)

	auth.RegisterRoutes(v1, authService, authMiddleware)
	users.RegisterRoutes(v1, usersService, authMiddleware)
	analytics.RegisterRoutes(v1, analytics.NewService(reportsService, cfg.Location()), authMiddleware)
	teams.RegisterRoutes(v1, teams.NewService(reportsService), authMiddleware)
	broadcasts.RegisterRoutes(v1, broadcastsService, authMiddleware)
	notifications.RegisterRoutes(v1, notificationsService, authMiddleware)

	return hub
}
