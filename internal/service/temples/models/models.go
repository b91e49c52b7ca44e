package models

import (
	"time"

	"github.com/m04kA/TCM-VisitService/internal/domain"
)

// Request модели

// UpdateConfigRequest запрос на изменение конфигурации ёмкости храма
type UpdateConfigRequest struct {
	UserID             int64               `json:"userId"`
	Role               string              `json:"role"`
	MaxVisitorsPerSlot int                 `json:"maxVisitorsPerSlot"`
	TotalDailyCapacity int                 `json:"totalDailyCapacity"`
	PeakWindows        []domain.PeakWindow `json:"peakWindows,omitempty"`
}

// Response модели

// TempleResponse ответ с данными храма
type TempleResponse struct {
	ID                  int64              `json:"id"`
	Name                string             `json:"name"`
	City                string             `json:"city"`
	State               string             `json:"state"`
	Coordinates         domain.Coordinates `json:"coordinates"`
	OpenTime            string             `json:"openTime"`  // "06:00"
	CloseTime           string             `json:"closeTime"` // "22:00"
	SlotDurationMinutes int                `json:"slotDurationMinutes"`
	IsActive            bool               `json:"isActive"`
	CreatedAt           time.Time          `json:"createdAt"`
	UpdatedAt           time.Time          `json:"updatedAt"`
}

// ConfigResponse ответ с конфигурацией ёмкости храма
type ConfigResponse struct {
	TempleID           int64               `json:"templeId"`
	MaxVisitorsPerSlot int                 `json:"maxVisitorsPerSlot"`
	TotalDailyCapacity int                 `json:"totalDailyCapacity"`
	PeakWindows        []domain.PeakWindow `json:"peakWindows"`
}

// Методы конвертации

// FromDomainTemple конвертирует domain модель в DTO
func FromDomainTemple(t *domain.Temple) *TempleResponse {
	if t == nil {
		return nil
	}

	return &TempleResponse{
		ID:                  t.ID,
		Name:                t.Name,
		City:                t.City,
		State:               t.State,
		Coordinates:         t.Coordinates,
		OpenTime:            t.OpenTime.String(),
		CloseTime:           t.CloseTime.String(),
		SlotDurationMinutes: t.SlotDuration(),
		IsActive:            t.IsActive,
		CreatedAt:           t.CreatedAt,
		UpdatedAt:           t.UpdatedAt,
	}
}

// FromDomainConfig конвертирует конфигурацию ёмкости в DTO
func FromDomainConfig(templeID int64, cfg domain.CapacityConfig) *ConfigResponse {
	return &ConfigResponse{
		TempleID:           templeID,
		MaxVisitorsPerSlot: cfg.MaxVisitorsPerSlot,
		TotalDailyCapacity: cfg.TotalDailyCapacity,
		PeakWindows:        cfg.EffectivePeakWindows(),
	}
}
