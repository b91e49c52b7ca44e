package temples

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/TCM-VisitService/internal/domain"
	templeRepo "github.com/m04kA/TCM-VisitService/internal/infra/storage/temple"
	"github.com/m04kA/TCM-VisitService/internal/service/temples/models"
)

// Service сервис для работы с храмами и их конфигурацией ёмкости
type Service struct {
	templeRepo TempleRepository
	logger     Logger
}

// NewService создает новый экземпляр сервиса храмов
func NewService(templeRepo TempleRepository, logger Logger) *Service {
	return &Service{
		templeRepo: templeRepo,
		logger:     logger,
	}
}

// GetByID получает храм по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.TempleResponse, error) {
	s.logger.Info("GetByID: fetching temple id=%d", id)

	temple, err := s.templeRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, templeRepo.ErrTempleNotFound) {
			s.logger.Warn("GetByID: temple id=%d not found", id)
			return nil, ErrTempleNotFound
		}
		s.logger.Error("GetByID: repository error for temple id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainTemple(temple), nil
}

// GetConfig получает конфигурацию ёмкости храма
func (s *Service) GetConfig(ctx context.Context, templeID int64) (*models.ConfigResponse, error) {
	s.logger.Info("GetConfig: fetching capacity config for temple id=%d", templeID)

	temple, err := s.templeRepo.GetByID(ctx, templeID)
	if err != nil {
		if errors.Is(err, templeRepo.ErrTempleNotFound) {
			s.logger.Warn("GetConfig: temple id=%d not found", templeID)
			return nil, ErrTempleNotFound
		}
		s.logger.Error("GetConfig: repository error for temple id=%d: %v", templeID, err)
		return nil, fmt.Errorf("%w: GetConfig - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainConfig(temple.ID, temple.Capacity), nil
}

// UpdateConfig обновляет конфигурацию ёмкости храма
// Доступно только оператору. Изменение влияет на новые слоты: уже
// созданные слоты сохраняют свою ёмкость.
func (s *Service) UpdateConfig(ctx context.Context, templeID int64, req *models.UpdateConfigRequest) (*models.ConfigResponse, error) {
	s.logger.Info("UpdateConfig: updating capacity config for temple id=%d by user=%d", templeID, req.UserID)

	if domain.ActorRole(req.Role) != domain.RoleOperator {
		s.logger.Warn("UpdateConfig: access denied for user=%d role=%s", req.UserID, req.Role)
		return nil, ErrAccessDenied
	}

	if err := validateConfig(req); err != nil {
		s.logger.Warn("UpdateConfig: invalid config for temple id=%d: %v", templeID, err)
		return nil, err
	}

	cfg := domain.CapacityConfig{
		MaxVisitorsPerSlot: req.MaxVisitorsPerSlot,
		TotalDailyCapacity: req.TotalDailyCapacity,
		PeakWindows:        req.PeakWindows,
	}

	if err := s.templeRepo.UpdateCapacityConfig(ctx, templeID, cfg); err != nil {
		if errors.Is(err, templeRepo.ErrTempleNotFound) {
			s.logger.Warn("UpdateConfig: temple id=%d not found", templeID)
			return nil, ErrTempleNotFound
		}
		s.logger.Error("UpdateConfig: repository error for temple id=%d: %v", templeID, err)
		return nil, fmt.Errorf("%w: UpdateConfig - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateConfig: temple id=%d capacity updated: perSlot=%d daily=%d",
		templeID, cfg.MaxVisitorsPerSlot, cfg.TotalDailyCapacity)
	return models.FromDomainConfig(templeID, cfg), nil
}

// validateConfig валидирует конфигурацию ёмкости
func validateConfig(req *models.UpdateConfigRequest) error {
	if req.MaxVisitorsPerSlot <= 0 {
		return fmt.Errorf("%w: maxVisitorsPerSlot must be positive", ErrInvalidInput)
	}
	if req.TotalDailyCapacity <= 0 {
		return fmt.Errorf("%w: totalDailyCapacity must be positive", ErrInvalidInput)
	}
	for _, w := range req.PeakWindows {
		if w.StartHour < 0 || w.EndHour > 23 || w.StartHour > w.EndHour {
			return fmt.Errorf("%w: peak window [%d, %d] is out of range", ErrInvalidInput, w.StartHour, w.EndHour)
		}
	}
	return nil
}
