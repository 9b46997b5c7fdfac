package postgres

import (
	"context"

	"pharmacy/internal/domain/entity"
	domainerrors "pharmacy/internal/domain/errors"
	"pharmacy/internal/domain/repository"
	"pharmacy/internal/infra/persistence/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type drugRepository struct {
	db *gorm.DB
}

// NewDrugRepository creates a GORM-backed repository.DrugRepository.
func NewDrugRepository(db *gorm.DB) repository.DrugRepository {
	return &drugRepository{db: db}
}

func (repo *drugRepository) FindByID(ctx context.Context, id int64) (*entity.Drug, error) {
	var drugM model.DrugModel
	if err := repo.db.WithContext(ctx).Where("id = ?", id).First(&drugM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrDrugNotFound
		}

		return nil, errors.Wrapf(err, "failed to find drug %d", id)
	}

	return toDrugDomain(&drugM), nil
}

func (repo *drugRepository) List(ctx context.Context) ([]*entity.Drug, error) {
	var drugMs []*model.DrugModel
	if err := repo.db.WithContext(ctx).Order("id").Find(&drugMs).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list drugs")
	}

	drugs := make([]*entity.Drug, 0, len(drugMs))
	for _, drugM := range drugMs {
		drugs = append(drugs, toDrugDomain(drugM))
	}

	return drugs, nil
}

func (repo *drugRepository) Create(ctx context.Context, drug *entity.Drug) error {
	drugM := fromDrugDomain(drug)

	if err := repo.db.WithContext(ctx).Create(drugM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return repository.ErrDrugMAExists
		}
		if isNotNullConstraintViolation(err) || isCheckConstraintViolation(err) {
			return domainerrors.ErrDrugCreationFailed.WrapMessage("drug violates a storage constraint")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create drug")
	}

	drug.ID = drugM.ID
	drug.CreatedAt = drugM.CreatedAt

	return nil
}

func (repo *drugRepository) Delete(ctx context.Context, id int64) error {
	result := repo.db.WithContext(ctx).Where("id = ?", id).Delete(&model.DrugModel{})
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete drug")
	}
	if result.RowsAffected == 0 {
		return repository.ErrDrugNotFound
	}

	return nil
}

func toDrugDomain(data *model.DrugModel) *entity.Drug {
	if data == nil {
		return nil
	}

	return &entity.Drug{
		ID:                        data.ID,
		MA:                        data.MA,
		Price:                     data.Price,
		BrandName:                 data.BrandName,
		Manufacturer:              data.Manufacturer,
		ActiveIngredient:          data.ActiveIngredient,
		NDC:                       data.NDC,
		ATCCode:                   data.ATCCode,
		DrugForm:                  data.DrugForm,
		RouteOfAdministration:     data.RouteOfAdministration,
		PrescriptionStatus:        data.PrescriptionStatus,
		ControlledSubstanceStatus: data.ControlledSubstanceStatus,
		Contraindications:         data.Contraindications,
		SideEffects:               data.SideEffects,
		Dosage:                    data.Dosage,
		BatchNumber:               data.BatchNumber,
		ExpirationDate:            data.ExpirationDate,
		StorageConditions:         data.StorageConditions,
		AvailableCopies:           data.AvailableCopies,
		GraphicLink:               data.GraphicLink,
		CreatedAt:                 data.CreatedAt,
	}
}

func fromDrugDomain(data *entity.Drug) *model.DrugModel {
	if data == nil {
		return nil
	}

	return &model.DrugModel{
		ID:                        data.ID,
		MA:                        data.MA,
		Price:                     data.Price,
		BrandName:                 data.BrandName,
		Manufacturer:              data.Manufacturer,
		ActiveIngredient:          data.ActiveIngredient,
		NDC:                       data.NDC,
		ATCCode:                   data.ATCCode,
		DrugForm:                  data.DrugForm,
		RouteOfAdministration:     data.RouteOfAdministration,
		PrescriptionStatus:        data.PrescriptionStatus,
		ControlledSubstanceStatus: data.ControlledSubstanceStatus,
		Contraindications:         data.Contraindications,
		SideEffects:               data.SideEffects,
		Dosage:                    data.Dosage,
		BatchNumber:               data.BatchNumber,
		ExpirationDate:            data.ExpirationDate,
		StorageConditions:         data.StorageConditions,
		AvailableCopies:           data.AvailableCopies,
		GraphicLink:               data.GraphicLink,
		CreatedAt:                 data.CreatedAt,
	}
}
