package update_temple_config

import (
	"context"

	"github.com/m04kA/TCM-VisitService/internal/service/temples/models"
)

type TempleService interface {
	UpdateConfig(ctx context.Context, templeID int64, req *models.UpdateConfigRequest) (*models.ConfigResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
