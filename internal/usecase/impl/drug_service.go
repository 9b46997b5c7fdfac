package impl

import (
	"context"
	"log/slog"

	deliverycontext "pharmacy/internal/delivery/context"
	"pharmacy/internal/domain/entity"
	domainerrors "pharmacy/internal/domain/errors"
	"pharmacy/internal/domain/repository"
	"pharmacy/internal/domain/service"
	"pharmacy/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

type drugService struct {
	drugRepo repository.DrugRepository
	cache    service.DrugCache
	logger   *slog.Logger
}

// DrugServiceParams holds dependencies for the drug catalog use case, injected by Fx.
type DrugServiceParams struct {
	fx.In

	DrugRepo repository.DrugRepository
	Cache    service.DrugCache
	Logger   *slog.Logger
}

// NewDrugService is the constructor for the catalog use case.
// Cache failures are logged and never fail a request.
func NewDrugService(params DrugServiceParams) usecase.DrugUsecase {
	return &drugService{
		drugRepo: params.DrugRepo,
		cache:    params.Cache,
		logger:   params.Logger,
	}
}

func (srv *drugService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

func (srv *drugService) GetDrug(ctx context.Context, id int64) (*entity.Drug, error) {
	cached, found, err := srv.cache.Get(ctx, id)
	if err != nil {
		srv.log(ctx).Warn("Drug cache read failed", slog.Int64("drugID", id), slog.Any("error", err))
	}
	if found {
		return cached, nil
	}

	drug, err := srv.drugRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrDrugNotFound) {
			return nil, domainerrors.DrugNotFound(id)
		}

		return nil, errors.Wrap(err, "failed to find drug")
	}

	if err := srv.cache.Set(ctx, drug); err != nil {
		srv.log(ctx).Warn("Drug cache write failed", slog.Int64("drugID", id), slog.Any("error", err))
	}

	return drug, nil
}

func (srv *drugService) ListDrugs(ctx context.Context) ([]*entity.Drug, error) {
	drugs, err := srv.drugRepo.List(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list drugs")
	}

	return drugs, nil
}

func (srv *drugService) CreateDrug(ctx context.Context, drug *entity.Drug) (*entity.Drug, error) {
	drug.ApplyDefaults()

	if err := srv.drugRepo.Create(ctx, drug); err != nil {
		if errors.Is(err, repository.ErrDrugMAExists) {
			return nil, domainerrors.ErrDrugAlreadyExists.WrapMessage(drug.MA)
		}

		return nil, errors.Wrap(err, "failed to create drug")
	}

	srv.log(ctx).Info("Drug created", slog.Int64("drugID", drug.ID), slog.String("ma", drug.MA))

	return drug, nil
}

func (srv *drugService) DeleteDrug(ctx context.Context, id int64) error {
	if err := srv.drugRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrDrugNotFound) {
			return domainerrors.DrugNotFound(id)
		}

		return errors.Wrap(err, "failed to delete drug")
	}

	if err := srv.cache.Delete(ctx, id); err != nil {
		srv.log(ctx).Warn("Drug cache eviction failed", slog.Int64("drugID", id), slog.Any("error", err))
	}

	srv.log(ctx).Info("Drug deleted", slog.Int64("drugID", id))

	return nil
}
