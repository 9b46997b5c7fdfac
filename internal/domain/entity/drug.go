package entity

import "time"

// Default descriptive texts applied when a drug is created without them.
const (
	DefaultContraindications = "There's no known contraindications"
	DefaultSideEffects       = "There's no known side effects"
	DefaultStorageConditions = "There's no specific storage conditions"
)

// Drug is a catalog record identified by a store-assigned numeric key.
type Drug struct {
	ID                        int64
	MA                        string // Marketing Authorization number, e.g. "AB123456".
	Price                     float64
	BrandName                 string
	Manufacturer              string
	ActiveIngredient          string
	NDC                       string
	ATCCode                   string
	DrugForm                  string
	RouteOfAdministration     string
	PrescriptionStatus        string
	ControlledSubstanceStatus string
	Contraindications         string
	SideEffects               string
	Dosage                    string
	BatchNumber               string
	ExpirationDate            string
	StorageConditions         string
	AvailableCopies           int
	GraphicLink               string
	CreatedAt                 time.Time
}

// IsAvailable reports whether at least one copy is in stock.
func (d *Drug) IsAvailable() bool {
	return d.AvailableCopies > 0
}

// ApplyDefaults fills optional descriptive fields left empty by the caller.
func (d *Drug) ApplyDefaults() {
	if d.Contraindications == "" {
		d.Contraindications = DefaultContraindications
	}
	if d.SideEffects == "" {
		d.SideEffects = DefaultSideEffects
	}
	if d.StorageConditions == "" {
		d.StorageConditions = DefaultStorageConditions
	}
}
