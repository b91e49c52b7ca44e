package get_wait_estimate

import (
	"context"

	getWaitEstimate "github.com/m04kA/TCM-VisitService/internal/usecase/get_wait_estimate"
)

type GetWaitEstimateUseCase interface {
	Execute(ctx context.Context, req *getWaitEstimate.Request) (*getWaitEstimate.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
