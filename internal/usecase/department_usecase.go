package usecase

import (
	"context"

	"estagios/internal/domain/department"
	"estagios/internal/repository"
)

type DepartmentUsecase interface {
	List(ctx context.Context) ([]department.Department, error)
}

type Departments struct {
	repo repository.DepartmentRepository
}

func NewDepartmentUsecase(repo repository.DepartmentRepository) *Departments {
	return &Departments{repo: repo}
}

func (u *Departments) List(ctx context.Context) ([]department.Department, error) {
	items, err := u.repo.List(ctx)
	if err != nil {
		return nil, ErrInternal
	}
	return items, nil
}
