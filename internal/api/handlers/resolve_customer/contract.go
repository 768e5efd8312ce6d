package resolve_customer

import (
	"context"

	"github.com/m04kA/SMC-MeetingService/internal/service/customers/models"
)

type CustomerService interface {
	FindOrCreate(ctx context.Context, req *models.ResolveRequest) (*models.ResolveResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
