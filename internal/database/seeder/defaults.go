package seeder

import "estagios/internal/config"

// DefaultDepartments are the university departments proposals are filed under.
var DefaultDepartments = []string{
	"Informática",
	"Gestão",
	"Marketing",
	"Design",
	"Engenharia Civil",
	"Engenharia Mecânica",
	"Turismo",
}

func Defaults(cfg config.SeedConfig) []Seeder {
	seeders := []Seeder{
		DepartmentsSeeder{Names: DefaultDepartments},
	}
	if cfg.AdminEmail != "" && cfg.AdminPassword != "" {
		seeders = append(seeders, AdminSeeder{
			Email:       cfg.AdminEmail,
			Password:    cfg.AdminPassword,
			DisplayName: cfg.AdminName,
		})
	}
	return seeders
}
