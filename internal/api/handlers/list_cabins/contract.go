package list_cabins

import (
	"context"

	"github.com/m04kA/SMC-CabinService/internal/service/cabins/models"
)

type CabinsService interface {
	List(ctx context.Context) ([]models.CabinResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
