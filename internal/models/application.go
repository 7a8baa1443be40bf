package models

import "time"

// Application - отклик пользователя на вакансию.
// Пара (job_id, user_id) уникальна на уровне БД: две конкурентные
// подачи не могут создать две строки. Строки никогда не удаляются.
type Application struct {
	BaseModel
	JobID  string `gorm:"not null;uniqueIndex:idx_applications_job_user" json:"jobId"`
	UserID string `gorm:"not null;uniqueIndex:idx_applications_job_user;index" json:"userId"`

	// Контактные поля заявителя - непрозрачная нагрузка, ядро их не трактует
	FullName    string `json:"fullName"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	TelegramID  string `json:"telegramId"`
	CoverLetter string `gorm:"type:text" json:"coverLetter"`

	Status ApplicationStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`

	// Снапшот вакансии на момент отклика: последующие правки или
	// удаление Job не искажают историю
	JobTitle  string  `gorm:"not null" json:"jobTitle"`
	Company   string  `json:"company"`
	Logo      string  `json:"logo"`
	JobAmount float64 `gorm:"not null;default:0" json:"jobAmount"`

	AppliedAt   time.Time  `gorm:"not null" json:"appliedAt"`
	CompletedAt *time.Time `json:"completedAt,omitempty"` // задан тогда и только тогда, когда status = completed
}
