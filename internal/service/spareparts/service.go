package spareparts

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-WorkshopService/internal/domain"
	"github.com/m04kA/SMC-WorkshopService/internal/infra/export"
	sparepartRepo "github.com/m04kA/SMC-WorkshopService/internal/infra/storage/sparepart"
	"github.com/m04kA/SMC-WorkshopService/internal/service/spareparts/models"
)

// Service сервис склада запчастей
type Service struct {
	sparepartRepo SparepartRepository
	logger        Logger
}

// NewService создает новый экземпляр сервиса запчастей
func NewService(sparepartRepo SparepartRepository, logger Logger) *Service {
	return &Service{
		sparepartRepo: sparepartRepo,
		logger:        logger,
	}
}

// List возвращает страницу запчастей с поиском и фильтром по полосе остатка
func (s *Service) List(ctx context.Context, req *models.ListSparepartsRequest) (*models.SparepartListResponse, error) {
	filter, err := toDomainFilter(req.Search, req.Status)
	if err != nil {
		return nil, err
	}

	page, pageSize := req.Page, req.PageSize
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = domain.DefaultPageSize
	}
	filter.Limit = uint64(pageSize)
	filter.Offset = uint64((page - 1) * pageSize)

	parts, err := s.sparepartRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("ListSpareparts: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	total, err := s.sparepartRepo.Count(ctx, filter)
	if err != nil {
		s.logger.Error("ListSpareparts: count error: %v", err)
		return nil, fmt.Errorf("%w: List - count error: %v", ErrInternal, err)
	}

	return &models.SparepartListResponse{
		Spareparts: models.FromDomainSparepartList(parts),
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: models.TotalPages(total, pageSize),
	}, nil
}

// GetByID получает запчасть по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.SparepartResponse, error) {
	part, err := s.sparepartRepo.GetByID(ctx, id)
	if err != nil {
		return nil, s.mapRepoError("GetSparepart", id, err)
	}
	return models.FromDomainSparepart(part), nil
}

// Create создает запчасть
func (s *Service) Create(ctx context.Context, req *models.SparepartRequest) (*models.SparepartResponse, error) {
	part, err := toDomainSparepart(req)
	if err != nil {
		s.logger.Warn("CreateSparepart: validation failed: %v", err)
		return nil, err
	}

	created, err := s.sparepartRepo.Create(ctx, part)
	if err != nil {
		return nil, s.mapRepoError("CreateSparepart", 0, err)
	}

	s.logger.Info("CreateSparepart: created sparepart id=%d code=%s stock=%d", created.ID, created.Code, created.Stock)
	return models.FromDomainSparepart(created), nil
}

// Update обновляет запчасть, включая ручную корректировку остатка
func (s *Service) Update(ctx context.Context, id int64, req *models.SparepartRequest) (*models.SparepartResponse, error) {
	part, err := toDomainSparepart(req)
	if err != nil {
		s.logger.Warn("UpdateSparepart: validation failed for id=%d: %v", id, err)
		return nil, err
	}
	part.ID = id

	updated, err := s.sparepartRepo.Update(ctx, part)
	if err != nil {
		return nil, s.mapRepoError("UpdateSparepart", id, err)
	}

	s.logger.Info("UpdateSparepart: updated sparepart id=%d", id)
	return models.FromDomainSparepart(updated), nil
}

// Delete удаляет запчасть без истории движений
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.sparepartRepo.Delete(ctx, id); err != nil {
		return s.mapRepoError("DeleteSparepart", id, err)
	}
	s.logger.Info("DeleteSparepart: deleted sparepart id=%d", id)
	return nil
}

// LowStock запчасти в полосах out_of_stock, low и warning
func (s *Service) LowStock(ctx context.Context) ([]models.SparepartResponse, error) {
	parts, err := s.sparepartRepo.ListLowStock(ctx)
	if err != nil {
		s.logger.Error("LowStock: repository error: %v", err)
		return nil, fmt.Errorf("%w: LowStock - repository error: %v", ErrInternal, err)
	}
	return models.FromDomainSparepartList(parts), nil
}

// Export выгружает отфильтрованный список запчастей в xlsx
func (s *Service) Export(ctx context.Context, search string, status *string) ([]byte, error) {
	filter, err := toDomainFilter(search, status)
	if err != nil {
		return nil, err
	}

	parts, err := s.sparepartRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("ExportSpareparts: repository error: %v", err)
		return nil, fmt.Errorf("%w: Export - repository error: %v", ErrInternal, err)
	}

	table := export.Table{
		Sheet:   "Sparepart",
		Headers: []string{"ID", "Nama", "Kode", "Harga", "Stok", "Status"},
		Rows:    make([][]interface{}, 0, len(parts)),
	}
	for _, p := range parts {
		table.Rows = append(table.Rows, []interface{}{p.ID, p.Name, p.Code, p.Price, p.Stock, string(p.StockStatus())})
	}

	data, err := export.XLSX(table)
	if err != nil {
		s.logger.Error("ExportSpareparts: failed to build workbook: %v", err)
		return nil, fmt.Errorf("%w: Export - %v", ErrInternal, err)
	}

	s.logger.Info("ExportSpareparts: exported %d spareparts", len(parts))
	return data, nil
}

func (s *Service) mapRepoError(op string, id int64, err error) error {
	switch {
	case errors.Is(err, sparepartRepo.ErrSparepartNotFound):
		s.logger.Warn("%s: sparepart id=%d not found", op, id)
		return ErrSparepartNotFound
	case errors.Is(err, sparepartRepo.ErrSparepartAlreadyExists):
		s.logger.Warn("%s: duplicate sparepart code", op)
		return ErrCodeTaken
	case errors.Is(err, sparepartRepo.ErrSparepartInUse):
		s.logger.Warn("%s: sparepart id=%d has stock movements", op, id)
		return ErrSparepartInUse
	}
	s.logger.Error("%s: repository error for id=%d: %v", op, id, err)
	return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
}

func toDomainFilter(search string, status *string) (domain.SparepartsFilter, error) {
	filter := domain.SparepartsFilter{Search: strings.TrimSpace(search)}
	if status != nil {
		st := domain.StockStatus(*status)
		if !st.IsValid() {
			return filter, fmt.Errorf("%w: unknown stock status %q", ErrInvalidInput, *status)
		}
		filter.Status = &st
	}
	return filter, nil
}

func toDomainSparepart(req *models.SparepartRequest) (*domain.Sparepart, error) {
	name := strings.TrimSpace(req.Name)
	code := strings.ToUpper(strings.TrimSpace(req.Code))

	switch {
	case name == "":
		return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
	case code == "":
		return nil, fmt.Errorf("%w: code is required", ErrInvalidInput)
	case req.Price < 0:
		return nil, fmt.Errorf("%w: price must not be negative", ErrInvalidInput)
	case req.Stock < 0:
		return nil, fmt.Errorf("%w: stock must not be negative", ErrInvalidInput)
	}

	return &domain.Sparepart{Name: name, Code: code, Price: req.Price, Stock: req.Stock}, nil
}
