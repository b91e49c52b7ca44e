package get_temple

import (
	"context"

	"github.com/m04kA/TCM-VisitService/internal/service/temples/models"
)

type TempleService interface {
	GetByID(ctx context.Context, id int64) (*models.TempleResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
