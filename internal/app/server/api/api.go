//POST /user/register                         # register (public)
//POST /user/login                            # login (public)
//POST /secrets                               # create burn-after-reading secret (public)
//GET  /secrets/{id}                          # reveal secret, consumes a view (public)
//POST /api/drops                             # issue one-time drop token (auth)
//GET  /drops/{token}/check                   # probe token validity (public)
//POST /drops/{token}                         # redeem token, deliver message (auth)
//GET  /api/inbox                             # delivered messages (auth)
//CRUD /api/items/{kind}[...]                 # shared items and grants (auth)
//GET  /public/{token}                        # resolve public share token (public)
//GET  /api/trash, DELETE /api/trash/{id}     # trash relay (auth)

package api

import (
	"context"
	"errors"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"golang.org/x/exp/slog"

	dropAPI "vaultis/internal/app/server/api/http/drop"
	healthAPI "vaultis/internal/app/server/api/http/health"
	"vaultis/internal/app/server/api/http/middleware"
	"vaultis/internal/app/server/api/http/middleware/auth"
	"vaultis/internal/app/server/api/http/middleware/logger"
	secretAPI "vaultis/internal/app/server/api/http/secret"
	shareAPI "vaultis/internal/app/server/api/http/share"
	trashAPI "vaultis/internal/app/server/api/http/trash"
	userAPI "vaultis/internal/app/server/api/http/user"
	"vaultis/internal/app/server/crypto"
	"vaultis/internal/domain/drop"
	"vaultis/internal/domain/secret"
	"vaultis/internal/domain/session"
	"vaultis/internal/domain/share"
	"vaultis/internal/domain/trash"
	"vaultis/internal/domain/user"
	"vaultis/internal/infrastructure/storage/postgres"
)

type Handlers struct {
	Health *healthAPI.Handler
	User   *userAPI.Handler
	Secret *secretAPI.Handler
	Drop   *dropAPI.Handler
	Share  *shareAPI.Handler
	Trash  *trashAPI.Handler
}

// New builds a *chi.Mux with every operation registered through huma.
func New(storage *postgres.Storage, cipher *crypto.FieldCipher, log *slog.Logger) *chi.Mux {
	mux := chi.NewMux()

	config := huma.DefaultConfig("Vaultis API", "1.0.0")
	config.Components.SecuritySchemes = map[string]*huma.SecurityScheme{
		"bearer": {Type: "http", Scheme: "bearer"},
	}

	API := humachi.New(mux, config)

	h := handlers(storage, cipher, log)
	h.Health.SetupRoutes(API)
	h.User.SetupRoutes(API)
	h.Secret.SetupRoutes(API)
	h.Drop.SetupRoutes(API)
	h.Share.SetupRoutes(API)
	h.Trash.SetupRoutes(API)

	return mux
}

func handlers(storage *postgres.Storage, cipher *crypto.FieldCipher, log *slog.Logger) *Handlers {
	pool := storage.Pool()

	sessionRepo := postgres.NewSessionRepository(pool, log)
	sessionService := session.NewService(sessionRepo, log)
	authMW := auth.New(sessionService, log)
	loggerMW := logger.New(log)
	middlewares := middleware.NewContainer()

	middlewares.Add(loggerMW.Middleware())
	healthHandler := healthAPI.NewHandler(log, middlewares.GetAllAndClear())

	userRepo := postgres.NewUserRepository(pool, log)
	userService := user.NewService(userRepo, user.NewPasswordValidator(), log)
	middlewares.Add(loggerMW.Middleware())
	userHandler := userAPI.NewHandler(userService, sessionService, log, middlewares.GetAllAndClear())

	secretRepo := postgres.NewSecretRepository(pool, log)
	secretService := secret.NewService(secretRepo, cipher, log)
	middlewares.Add(loggerMW.Middleware())
	secretHandler := secretAPI.NewHandler(secretService, log, middlewares.GetAllAndClear())

	dropTokenRepo := postgres.NewDropTokenRepository(pool, log)
	dropMessageRepo := postgres.NewDropMessageRepository(pool, log)
	dropService := drop.NewService(dropTokenRepo, dropMessageRepo, cipher, log)
	middlewares.Add(authMW.Middleware())
	middlewares.Add(loggerMW.Middleware())
	dropAuthMW := middlewares.GetAllAndClear()
	middlewares.Add(loggerMW.Middleware())
	dropHandler := dropAPI.NewHandler(dropService, log, dropAuthMW, middlewares.GetAllAndClear())

	trashRepo := postgres.NewTrashRepository(pool, log)
	trashService := trash.NewService(trashRepo, log)
	middlewares.Add(authMW.Middleware())
	middlewares.Add(loggerMW.Middleware())
	trashHandler := trashAPI.NewHandler(trashService, log, middlewares.GetAllAndClear())

	shareRepo := postgres.NewShareRepository(pool, log)
	shareService := share.NewService(shareRepo, &userResolver{users: userService}, trashService, cipher, log)
	middlewares.Add(authMW.Middleware())
	middlewares.Add(loggerMW.Middleware())
	shareAuthMW := middlewares.GetAllAndClear()
	middlewares.Add(loggerMW.Middleware())
	shareHandler := shareAPI.NewHandler(shareService, log, shareAuthMW, middlewares.GetAllAndClear())

	return &Handlers{
		Health: healthHandler,
		User:   userHandler,
		Secret: secretHandler,
		Drop:   dropHandler,
		Share:  shareHandler,
		Trash:  trashHandler,
	}
}

// userResolver adapts the user service to the share package's Resolver,
// translating its not-found error into the grant-specific one.
type userResolver struct {
	users user.Servicer
}

func (r *userResolver) Resolve(ctx context.Context, username string) (int, error) {
	id, err := r.users.Resolve(ctx, username)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return 0, share.ErrGranteeNotFound
		}
		return 0, err
	}
	return id, nil
}
