package model

import "time"

// DrugModel mirrors the 'pharmacy.drugs' table.
type DrugModel struct {
	ID                        int64   `gorm:"primaryKey;autoIncrement"`
	MA                        string  `gorm:"column:ma;type:varchar(8);uniqueIndex;not null"`
	Price                     float64 `gorm:"type:numeric(7,2);not null"`
	BrandName                 string  `gorm:"type:varchar(50);not null"`
	Manufacturer              string  `gorm:"type:varchar(50);not null"`
	ActiveIngredient          string  `gorm:"type:varchar(100);not null"`
	NDC                       string  `gorm:"column:ndc;type:varchar(12);not null"`
	ATCCode                   string  `gorm:"column:atc_code;type:varchar(7);not null"`
	DrugForm                  string  `gorm:"type:varchar(30);not null"`
	RouteOfAdministration     string  `gorm:"type:varchar(30);not null"`
	PrescriptionStatus        string  `gorm:"type:varchar(10);not null"`
	ControlledSubstanceStatus string  `gorm:"type:varchar(10);not null"`
	Contraindications         string  `gorm:"type:varchar(100)"`
	SideEffects               string  `gorm:"type:varchar(100)"`
	Dosage                    string  `gorm:"type:varchar(50);not null"`
	BatchNumber               string  `gorm:"type:varchar(20);not null"`
	ExpirationDate            string  `gorm:"type:varchar(10);not null"`
	StorageConditions         string  `gorm:"type:varchar(100)"`
	AvailableCopies           int     `gorm:"not null"`
	GraphicLink               string  `gorm:"type:varchar(1000)"`
	CreatedAt                 time.Time
}

// TableName explicitly sets the table name for GORM.
func (DrugModel) TableName() string {
	return "pharmacy.drugs"
}
