package routes

import (
	"estagios/internal/delivery/http/handler"
	"estagios/internal/delivery/http/middleware"
	"estagios/internal/domain/user"

	"github.com/gofiber/fiber/v3"
)

type Handlers struct {
	Health     *handler.HealthHandler
	Department *handler.DepartmentHandler
	Auth       *handler.AuthHandler
	User       *handler.UserHandler
	Student    *handler.StudentHandler
	Match      *handler.MatchHandler
	Favorite   *handler.FavoriteHandler
	Company    *handler.CompanyHandler
	Proposal   *handler.ProposalHandler
	Admin      *handler.AdminHandler
	Gestor     *handler.GestorHandler
}

type Registry struct {
	h    Handlers
	auth *middleware.AuthMiddleware
}

func NewRegistry(h Handlers, auth *middleware.AuthMiddleware) *Registry {
	return &Registry{h: h, auth: auth}
}

// Register mounts public routes first; everything registered after the
// protected group requires a valid access token.
func (r *Registry) Register(app *fiber.App) {
	if app == nil {
		return
	}

	r.registerPublic(app)
	r.registerProtected(app)
}

func (r *Registry) registerPublic(app *fiber.App) {
	r.h.Health.RegisterRoutes(app)
	r.h.Department.RegisterRoutes(app)
	r.h.Auth.RegisterRoutes(app.Group("/auth"))
}

func (r *Registry) registerProtected(app *fiber.App) {
	protected := app.Group("", r.auth.Middleware())

	r.h.User.RegisterRoutes(protected)
	r.h.Proposal.RegisterRoutes(protected)

	estudante := protected.Group("/estudante", middleware.RequireRoles(user.RoleEstudante))
	r.h.Student.RegisterRoutes(estudante)
	r.h.Match.RegisterRoutes(estudante)
	r.h.Favorite.RegisterRoutes(estudante)

	empresa := protected.Group("/empresa", middleware.RequireRoles(user.RoleEmpresa))
	r.h.Company.RegisterRoutes(empresa)

	gestor := protected.Group("/gestor", middleware.RequireRoles(user.RoleGestor))
	r.h.Gestor.RegisterRoutes(gestor)

	admin := protected.Group("/admin", middleware.RequireRoles(user.RoleAdmin))
	r.h.Admin.RegisterRoutes(admin)
}
