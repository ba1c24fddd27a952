package app

import (
	"context"
	"time"

	"estagios/internal/config"
	"estagios/internal/database"
	dbpostgres "estagios/internal/database/postgres"
	"estagios/internal/delivery/http/handler"
	"estagios/internal/delivery/http/middleware"
	"estagios/internal/delivery/http/routes"
	"estagios/internal/infrastructure/cache"
	"estagios/internal/pkg/jwt"
	"estagios/internal/repository"
	"estagios/internal/usecase"
	"estagios/internal/ws"

	"go.uber.org/zap"
)

// Container owns the long-lived dependencies of the API process.
type Container struct {
	Config config.Config
	Logger *zap.Logger
	DB     database.DB
	Cache  *cache.Redis
	JWT    jwt.Service
	Hub    *ws.Hub
}

func NewContainer(cfg config.Config, logger *zap.Logger) (*Container, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := dbpostgres.Connect(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}

	return &Container{
		Config: cfg,
		Logger: logger,
		DB:     db,
		Cache:  cache.NewRedis(cfg.Redis, logger),
		JWT: jwt.NewHMACService(
			cfg.JWT.AccessSecret,
			cfg.JWT.RefreshSecret,
			cfg.JWT.AccessExpiresIn,
			cfg.JWT.RefreshExpiresIn,
		),
		Hub: ws.NewHub(logger),
	}, nil
}

// Handlers builds the repository, usecase and handler graph on top of the
// container's shared resources.
func (c *Container) Handlers() routes.Handlers {
	users := repository.NewPostgresUserRepository(c.DB)
	accounts := repository.NewPostgresAccountRepository(c.DB)
	students := repository.NewPostgresStudentRepository(c.DB)
	companies := repository.NewPostgresCompanyRepository(c.DB)
	gestores := repository.NewPostgresGestorRepository(c.DB)
	departments := repository.NewPostgresDepartmentRepository(c.DB)
	proposals := repository.NewPostgresProposalRepository(c.DB)
	favorites := repository.NewPostgresFavoriteRepository(c.DB)

	proposalUC := usecase.NewProposalUsecase(
		proposals, gestores, departments, c.Cache, ws.NewNotifier(c.Hub), c.Logger,
	)
	dashboardUC := usecase.NewDashboardUsecase(proposals, users, favorites, gestores)

	return routes.Handlers{
		Health:     handler.NewHealthHandler(c.DB),
		Department: handler.NewDepartmentHandler(usecase.NewDepartmentUsecase(departments)),
		Auth:       handler.NewAuthHandler(usecase.NewAuthUsecase(users, accounts, c.JWT)),
		User:       handler.NewUserHandler(usecase.NewUserUsecase(users)),
		Student:    handler.NewStudentHandler(usecase.NewStudentUsecase(students)),
		Match:      handler.NewMatchHandler(usecase.NewMatchingUsecase(students, proposalUC)),
		Favorite:   handler.NewFavoriteHandler(usecase.NewFavoriteUsecase(favorites, proposals)),
		Company:    handler.NewCompanyHandler(usecase.NewCompanyUsecase(companies, proposals)),
		Proposal:   handler.NewProposalHandler(proposalUC),
		Admin: handler.NewAdminHandler(
			usecase.NewAdminUsecase(users, accounts, departments, c.Cache, c.Logger),
			dashboardUC,
		),
		Gestor: handler.NewGestorHandler(dashboardUC),
	}
}

func (c *Container) AuthMiddleware() *middleware.AuthMiddleware {
	return middleware.NewAuthMiddleware(c.JWT)
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	if c.Cache != nil {
		_ = c.Cache.Close()
	}
	if c.DB == nil {
		return nil
	}
	return c.DB.Close()
}
