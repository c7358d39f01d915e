package record_stock_movement

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-WorkshopService/internal/domain"
	sparepartRepo "github.com/m04kA/SMC-WorkshopService/internal/infra/storage/sparepart"
	"github.com/m04kA/SMC-WorkshopService/internal/service/stock/models"
)

// UseCase use case для записи прихода и расхода запчастей
type UseCase struct {
	sparepartRepo SparepartRepository
	movementRepo  MovementRepository
	metrics       Metrics
	txManager     TransactionManager
	timeProvider  TimeProvider
	logger        Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	sparepartRepo SparepartRepository,
	movementRepo MovementRepository,
	metrics Metrics,
	txManager TransactionManager,
	timeProvider TimeProvider,
	logger Logger,
) *UseCase {
	return &UseCase{
		sparepartRepo: sparepartRepo,
		movementRepo:  movementRepo,
		metrics:       metrics,
		txManager:     txManager,
		timeProvider:  timeProvider,
		logger:        logger,
	}
}

// Execute записывает движение и меняет остаток в одной транзакции
// Расход больше текущего остатка отклоняется
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("RecordStockMovement: direction=%s, sparepart=%d, quantity=%d, user=%d",
		req.Direction, req.SparepartID, req.Quantity, req.UserID)

	direction, date, err := validateRequest(req, uc.timeProvider.Now())
	if err != nil {
		uc.logger.Warn("RecordStockMovement: validation failed: %v", err)
		return nil, err
	}

	var (
		movement *domain.StockMovement
		stock    int
	)
	err = uc.txManager.Do(ctx, func(txCtx context.Context) error {
		part, err := uc.sparepartRepo.GetByID(txCtx, req.SparepartID)
		if err != nil {
			if errors.Is(err, sparepartRepo.ErrSparepartNotFound) {
				uc.logger.Warn("RecordStockMovement: sparepart id=%d not found", req.SparepartID)
				return ErrSparepartNotFound
			}
			uc.logger.Error("RecordStockMovement: failed to get sparepart id=%d: %v", req.SparepartID, err)
			return fmt.Errorf("%w: failed to get sparepart: %v", ErrInternal, err)
		}

		m := &domain.StockMovement{
			SparepartID:   part.ID,
			SparepartName: part.Name,
			Direction:     direction,
			Quantity:      req.Quantity,
			MovementDate:  date,
			UserID:        req.UserID,
			Note:          req.Note,
		}

		if part.Stock+m.Delta() < 0 {
			uc.logger.Warn("RecordStockMovement: sparepart id=%d has %d, requested out %d",
				part.ID, part.Stock, req.Quantity)
			return fmt.Errorf("%w: available %d, requested %d", ErrInsufficientStock, part.Stock, req.Quantity)
		}

		stock, err = uc.sparepartRepo.AdjustStock(txCtx, part.ID, m.Delta())
		if err != nil {
			uc.logger.Error("RecordStockMovement: failed to adjust stock for sparepart id=%d: %v", part.ID, err)
			return fmt.Errorf("%w: failed to adjust stock: %v", ErrInternal, err)
		}

		created, err := uc.movementRepo.Create(txCtx, m)
		if err != nil {
			uc.logger.Error("RecordStockMovement: failed to create movement: %v", err)
			return fmt.Errorf("%w: failed to create movement: %v", ErrInternal, err)
		}

		movement = created
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.metrics.IncStockMovement(string(direction))
	uc.logger.Info("RecordStockMovement: movement id=%d recorded, sparepart=%d stock=%d",
		movement.ID, movement.SparepartID, stock)

	return &Response{
		Movement:     models.FromDomainMovement(movement),
		CurrentStock: stock,
		StockStatus:  string(domain.ClassifyStock(stock)),
	}, nil
}
