package dto

import (
	"encoding/json"
	"strconv"
	"strings"

	"microjob_backend/internal/models"
)

// JobAmount принимает число или строку ("50", " 50.5 ") - админка
// исторически шлет и то и другое. Отрицательные и нечисловые значения
// нормализуются в 0 при записи.
type JobAmount float64

func (a *JobAmount) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `" `)
	if s == "" || s == "null" {
		*a = 0
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		*a = 0
		return nil
	}
	*a = JobAmount(v)
	return nil
}

func (a JobAmount) MarshalJSON() ([]byte, error) {
	return json.Marshal(float64(a))
}

// Value возвращает нормализованную неотрицательную сумму
func (a JobAmount) Value() float64 {
	if a < 0 {
		return 0
	}
	return float64(a)
}

// --- Job Requests ---

type CreateJobRequest struct {
	Title       string    `json:"title" validate:"required,min=3,max=150"`
	Company     string    `json:"company" validate:"required,max=150"`
	Logo        string    `json:"logo" validate:"omitempty,max=500"`
	Location    string    `json:"location" validate:"omitempty,max=150"`
	Type        string    `json:"type" validate:"omitempty,max=50"`
	Category    string    `json:"category" validate:"omitempty,max=100"`
	SalaryLabel string    `json:"salaryLabel" validate:"omitempty,max=100"`
	Amount      JobAmount `json:"amount"`
	Description string    `json:"description" validate:"omitempty,max=10000"`
}

type UpdateJobRequest struct {
	Title       *string    `json:"title,omitempty" validate:"omitempty,min=3,max=150"`
	Company     *string    `json:"company,omitempty" validate:"omitempty,max=150"`
	Logo        *string    `json:"logo,omitempty" validate:"omitempty,max=500"`
	Location    *string    `json:"location,omitempty" validate:"omitempty,max=150"`
	Type        *string    `json:"type,omitempty" validate:"omitempty,max=50"`
	Category    *string    `json:"category,omitempty" validate:"omitempty,max=100"`
	SalaryLabel *string    `json:"salaryLabel,omitempty" validate:"omitempty,max=100"`
	Amount      *JobAmount `json:"amount,omitempty"`
	Description *string    `json:"description,omitempty" validate:"omitempty,max=10000"`
}

// --- Job Responses ---

type JobListResponse struct {
	Jobs  []models.Job `json:"jobs"`
	Total int64        `json:"total"`
}

// JobResponse - вакансия + признаки "откликался"/"в закладках" для
// текущего пользователя
type JobResponse struct {
	models.Job
	HasApplied bool `json:"hasApplied"`
	IsSaved    bool `json:"isSaved"`
}
