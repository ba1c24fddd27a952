package usecase

import (
	"context"
	"errors"
	"strings"

	"estagios/internal/domain/student"
	"estagios/internal/repository"

	"github.com/google/uuid"
)

var ErrProfileNotFound = errors.New("profile not found")

// UpdateStudentProfileInput uses pointers so absent JSON fields keep their
// stored value.
type UpdateStudentProfileInput struct {
	Name          *string
	Course        *string
	StudentNumber *string
	Skills        *[]string
}

type StudentUsecase interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (student.Profile, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, in UpdateStudentProfileInput) (student.Profile, error)
}

type Student struct {
	repo repository.StudentRepository
}

func NewStudentUsecase(repo repository.StudentRepository) *Student {
	return &Student{repo: repo}
}

func (u *Student) GetProfile(ctx context.Context, userID uuid.UUID) (student.Profile, error) {
	p, err := u.repo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, student.ErrNotFound) {
			return student.Profile{}, ErrProfileNotFound
		}
		return student.Profile{}, ErrInternal
	}
	return p, nil
}

func (u *Student) UpdateProfile(ctx context.Context, userID uuid.UUID, in UpdateStudentProfileInput) (student.Profile, error) {
	p, err := u.GetProfile(ctx, userID)
	if err != nil {
		return student.Profile{}, err
	}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return student.Profile{}, ErrInvalidInput
		}
		p.Name = name
	}
	if in.Course != nil {
		p.Course = strings.TrimSpace(*in.Course)
	}
	if in.StudentNumber != nil {
		p.StudentNumber = strings.TrimSpace(*in.StudentNumber)
	}
	if in.Skills != nil {
		p.Skills = student.ParseSkills(strings.Join(*in.Skills, ","))
	}

	updated, err := u.repo.Update(ctx, p)
	if err != nil {
		if errors.Is(err, student.ErrNotFound) {
			return student.Profile{}, ErrProfileNotFound
		}
		return student.Profile{}, ErrInternal
	}
	return updated, nil
}
