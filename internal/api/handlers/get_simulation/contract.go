package get_simulation

import (
	"context"

	getSimulation "github.com/m04kA/TCM-VisitService/internal/usecase/get_simulation"
)

type GetSimulationUseCase interface {
	Execute(ctx context.Context, req *getSimulation.Request) (*getSimulation.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
