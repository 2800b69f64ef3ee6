package models

// BestPractice is one criterion from the STAR best-practice catalog that
// annotations are scored against. Positive entries describe strengths,
// negative entries describe areas needing improvement.
type BestPractice struct {
	Base
	Category     PracticeCategory `gorm:"not null;size:50;index" json:"category"`
	Title        string           `gorm:"not null;size:255" json:"title"`
	Description  string           `gorm:"type:text;not null" json:"description"`
	Criteria     string           `gorm:"type:text" json:"criteria"`
	IsPositive   bool             `gorm:"default:true" json:"is_positive"`
	DisplayOrder int              `gorm:"column:display_order;default:0" json:"order"`
}
