package dto

import (
	"bytes"
	"encoding/json"
	"time"

	"estagios/internal/domain/company"
	"estagios/internal/domain/student"

	"github.com/google/uuid"
)

type StudentProfileResponse struct {
	ID           uuid.UUID `json:"id"`
	Nome         string    `json:"nome"`
	Email        string    `json:"email"`
	Curso        string    `json:"curso"`
	NumeroAluno  string    `json:"numero_aluno"`
	Competencias []string  `json:"competencias"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type CompanyProfileResponse struct {
	ID          uuid.UUID `json:"id"`
	Nome        string    `json:"nome"`
	Email       string    `json:"email"`
	NomeEmpresa string    `json:"nome_empresa"`
	NIF         string    `json:"nif"`
	Morada      string    `json:"morada"`
	Telefone    string    `json:"telefone"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func NewStudentProfileResponse(p student.Profile) StudentProfileResponse {
	skills := p.Skills
	if skills == nil {
		skills = []string{}
	}
	return StudentProfileResponse{
		ID:           p.UserID,
		Nome:         p.Name,
		Email:        p.Email,
		Curso:        p.Course,
		NumeroAluno:  p.StudentNumber,
		Competencias: skills,
		UpdatedAt:    p.UpdatedAt,
	}
}

func NewCompanyProfileResponse(p company.Profile) CompanyProfileResponse {
	return CompanyProfileResponse{
		ID:          p.UserID,
		Nome:        p.ContactName,
		Email:       p.Email,
		NomeEmpresa: p.CompanyName,
		NIF:         p.NIF,
		Morada:      p.Address,
		Telefone:    p.Phone,
		UpdatedAt:   p.UpdatedAt,
	}
}

// SkillList accepts either a JSON array of strings or a single free-text
// string such as "Go, SQL; Docker".
type SkillList []string

func (s *SkillList) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*s = nil
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var raw string
		if err := json.Unmarshal(b, &raw); err != nil {
			return err
		}
		*s = student.ParseSkills(raw)
		return nil
	}
	var items []string
	if err := json.Unmarshal(b, &items); err != nil {
		return err
	}
	*s = items
	return nil
}
