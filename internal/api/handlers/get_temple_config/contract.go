package get_temple_config

import (
	"context"

	"github.com/m04kA/TCM-VisitService/internal/service/temples/models"
)

type TempleService interface {
	GetConfig(ctx context.Context, templeID int64) (*models.ConfigResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
