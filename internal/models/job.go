package models

type Job struct {
	BaseModel
	Title       string `gorm:"not null" json:"title"`
	Company     string `gorm:"not null" json:"company"`
	Logo        string `json:"logo"`
	Location    string `json:"location"`
	Type        string `json:"type"`
	Category    string `json:"category"`
	SalaryLabel string `json:"salaryLabel"`

	// Amount - вознаграждение за выполненное задание, всегда >= 0
	Amount float64 `gorm:"not null;default:0" json:"amount"`

	Description string `gorm:"type:text" json:"description"`

	// Applicants - информационный счетчик, инкрементится атомарно,
	// но не является источником истины (им остаются строки applications)
	Applicants int `gorm:"not null;default:0" json:"applicants"`
}
