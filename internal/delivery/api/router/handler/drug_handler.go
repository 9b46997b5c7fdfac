package handler

import (
	"log/slog"
	"net/http"

	"pharmacy/internal/delivery/api/response"
	"pharmacy/internal/domain/entity"
	"pharmacy/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// DrugHandlerParams holds dependencies for DrugHandler, injected by Fx.
type DrugHandlerParams struct {
	fx.In

	DrugUC usecase.DrugUsecase
	Logger *slog.Logger
}

// DrugHandler serves the /api/drugs endpoints.
type DrugHandler struct {
	drugUC usecase.DrugUsecase
	logger *slog.Logger
}

// NewDrugHandler is the constructor for DrugHandler.
func NewDrugHandler(params DrugHandlerParams) *DrugHandler {
	return &DrugHandler{
		drugUC: params.DrugUC,
		logger: params.Logger,
	}
}

// CreateDrugRequest is the body of POST /api/drugs.
type CreateDrugRequest struct {
	MA                        string  `json:"ma" validate:"required,ma"`
	Price                     float64 `json:"price" validate:"gte=0.01,lte=10000,price"`
	BrandName                 string  `json:"brandName" validate:"required,max=50"`
	Manufacturer              string  `json:"manufacturer" validate:"required,max=50"`
	ActiveIngredient          string  `json:"activeIngredient" validate:"required,max=100"`
	NDC                       string  `json:"ndc" validate:"required,ndc"`
	ATCCode                   string  `json:"atcCode" validate:"required,atc"`
	DrugForm                  string  `json:"drugForm" validate:"required,max=30"`
	RouteOfAdministration     string  `json:"routeOfAdministration" validate:"required,max=30"`
	PrescriptionStatus        string  `json:"prescriptionStatus" validate:"required,oneof=OTC Rx-only"`
	ControlledSubstanceStatus string  `json:"controlledSubstanceStatus" validate:"required,controlled"`
	Contraindications         string  `json:"contraindications" validate:"max=100"`
	SideEffects               string  `json:"sideEffects" validate:"max=100"`
	Dosage                    string  `json:"dosage" validate:"required,max=50"`
	BatchNumber               string  `json:"batchNumber" validate:"required,max=20"`
	ExpirationDate            string  `json:"expirationDate" validate:"required,datetime=2006-01-02"`
	StorageConditions         string  `json:"storageConditions" validate:"max=100"`
	AvailableCopies           int     `json:"availableCopies" validate:"gte=1"`
	GraphicLink               string  `json:"graphicLink" validate:"omitempty,max=1000,imageurl"`
}

// DrugResponse is the read view of a drug; stock is reported as availability only.
type DrugResponse struct {
	ID                        int64   `json:"id"`
	MA                        string  `json:"ma"`
	Price                     float64 `json:"price"`
	BrandName                 string  `json:"brandName"`
	Manufacturer              string  `json:"manufacturer"`
	ActiveIngredient          string  `json:"activeIngredient"`
	NDC                       string  `json:"ndc"`
	ATCCode                   string  `json:"atcCode"`
	DrugForm                  string  `json:"drugForm"`
	RouteOfAdministration     string  `json:"routeOfAdministration"`
	PrescriptionStatus        string  `json:"prescriptionStatus"`
	ControlledSubstanceStatus string  `json:"controlledSubstanceStatus"`
	Contraindications         string  `json:"contraindications"`
	SideEffects               string  `json:"sideEffects"`
	Dosage                    string  `json:"dosage"`
	BatchNumber               string  `json:"batchNumber"`
	ExpirationDate            string  `json:"expirationDate"`
	StorageConditions         string  `json:"storageConditions"`
	IsAvailable               bool    `json:"isAvailable"`
	GraphicLink               string  `json:"graphicLink"`
}

// CreatedDrugResponse echoes the stored drug including its copy count.
type CreatedDrugResponse struct {
	ID                        int64   `json:"id"`
	MA                        string  `json:"ma"`
	Price                     float64 `json:"price"`
	BrandName                 string  `json:"brandName"`
	Manufacturer              string  `json:"manufacturer"`
	ActiveIngredient          string  `json:"activeIngredient"`
	NDC                       string  `json:"ndc"`
	ATCCode                   string  `json:"atcCode"`
	DrugForm                  string  `json:"drugForm"`
	RouteOfAdministration     string  `json:"routeOfAdministration"`
	PrescriptionStatus        string  `json:"prescriptionStatus"`
	ControlledSubstanceStatus string  `json:"controlledSubstanceStatus"`
	Contraindications         string  `json:"contraindications"`
	SideEffects               string  `json:"sideEffects"`
	Dosage                    string  `json:"dosage"`
	BatchNumber               string  `json:"batchNumber"`
	ExpirationDate            string  `json:"expirationDate"`
	StorageConditions         string  `json:"storageConditions"`
	AvailableCopies           int     `json:"availableCopies"`
	GraphicLink               string  `json:"graphicLink"`
}

// GetDrug returns a single drug. The route is public.
func (h *DrugHandler) GetDrug(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	drug, err := h.drugUC.GetDrug(c.Request().Context(), id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toDrugResponse(drug))
}

// ListDrugs returns the whole catalog, possibly empty.
func (h *DrugHandler) ListDrugs(c echo.Context) error {
	drugs, err := h.drugUC.ListDrugs(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	out := make([]DrugResponse, 0, len(drugs))
	for _, drug := range drugs {
		out = append(out, toDrugResponse(drug))
	}

	return response.Success(c, http.StatusOK, out)
}

// CreateDrug validates and stores a new drug.
func (h *DrugHandler) CreateDrug(c echo.Context) error {
	var req CreateDrugRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	drug, err := h.drugUC.CreateDrug(c.Request().Context(), req.toEntity())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, toCreatedDrugResponse(drug))
}

// DeleteDrug removes a drug from the catalog.
func (h *DrugHandler) DeleteDrug(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	if err := h.drugUC.DeleteDrug(c.Request().Context(), id); err != nil {
		return errors.WithStack(err)
	}

	return response.NoContent(c)
}

func (req *CreateDrugRequest) toEntity() *entity.Drug {
	return &entity.Drug{
		MA:                        req.MA,
		Price:                     req.Price,
		BrandName:                 req.BrandName,
		Manufacturer:              req.Manufacturer,
		ActiveIngredient:          req.ActiveIngredient,
		NDC:                       req.NDC,
		ATCCode:                   req.ATCCode,
		DrugForm:                  req.DrugForm,
		RouteOfAdministration:     req.RouteOfAdministration,
		PrescriptionStatus:        req.PrescriptionStatus,
		ControlledSubstanceStatus: req.ControlledSubstanceStatus,
		Contraindications:         req.Contraindications,
		SideEffects:               req.SideEffects,
		Dosage:                    req.Dosage,
		BatchNumber:               req.BatchNumber,
		ExpirationDate:            req.ExpirationDate,
		StorageConditions:         req.StorageConditions,
		AvailableCopies:           req.AvailableCopies,
		GraphicLink:               req.GraphicLink,
	}
}

func toDrugResponse(drug *entity.Drug) DrugResponse {
	return DrugResponse{
		ID:                        drug.ID,
		MA:                        drug.MA,
		Price:                     drug.Price,
		BrandName:                 drug.BrandName,
		Manufacturer:              drug.Manufacturer,
		ActiveIngredient:          drug.ActiveIngredient,
		NDC:                       drug.NDC,
		ATCCode:                   drug.ATCCode,
		DrugForm:                  drug.DrugForm,
		RouteOfAdministration:     drug.RouteOfAdministration,
		PrescriptionStatus:        drug.PrescriptionStatus,
		ControlledSubstanceStatus: drug.ControlledSubstanceStatus,
		Contraindications:         drug.Contraindications,
		SideEffects:               drug.SideEffects,
		Dosage:                    drug.Dosage,
		BatchNumber:               drug.BatchNumber,
		ExpirationDate:            drug.ExpirationDate,
		StorageConditions:         drug.StorageConditions,
		IsAvailable:               drug.IsAvailable(),
		GraphicLink:               drug.GraphicLink,
	}
}

func toCreatedDrugResponse(drug *entity.Drug) CreatedDrugResponse {
	return CreatedDrugResponse{
		ID:                        drug.ID,
		MA:                        drug.MA,
		Price:                     drug.Price,
		BrandName:                 drug.BrandName,
		Manufacturer:              drug.Manufacturer,
		ActiveIngredient:          drug.ActiveIngredient,
		NDC:                       drug.NDC,
		ATCCode:                   drug.ATCCode,
		DrugForm:                  drug.DrugForm,
		RouteOfAdministration:     drug.RouteOfAdministration,
		PrescriptionStatus:        drug.PrescriptionStatus,
		ControlledSubstanceStatus: drug.ControlledSubstanceStatus,
		Contraindications:         drug.Contraindications,
		SideEffects:               drug.SideEffects,
		Dosage:                    drug.Dosage,
		BatchNumber:               drug.BatchNumber,
		ExpirationDate:            drug.ExpirationDate,
		StorageConditions:         drug.StorageConditions,
		AvailableCopies:           drug.AvailableCopies,
		GraphicLink:               drug.GraphicLink,
	}
}
