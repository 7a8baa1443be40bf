package models

type User struct {
	BaseModel
	Email        string     `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string     `gorm:"not null" json:"-"`
	FullName     string     `json:"fullName"`
	Phone        string     `json:"phone"`
	TelegramID   string     `json:"telegramId"`
	Avatar       string     `json:"avatar"`
	Bio          string     `json:"bio"`
	Role         UserRole   `gorm:"type:varchar(20);not null;default:'user'" json:"role"`
	Status       UserStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`

	// Баланс меняется только кошельковым репозиторием через серверные
	// инкременты; check-констрейнт - последний рубеж против овердрафта.
	WalletBalance float64 `gorm:"not null;default:0;check:wallet_balance >= 0" json:"walletBalance"`

	SavedJobs []SavedJob `gorm:"foreignKey:UserID" json:"-"`
}

// SavedJob - членство вакансии в закладках пользователя, без порядка
type SavedJob struct {
	BaseModel
	UserID string `gorm:"not null;uniqueIndex:idx_saved_jobs_user_job" json:"userId"`
	JobID  string `gorm:"not null;uniqueIndex:idx_saved_jobs_user_job" json:"jobId"`
}
