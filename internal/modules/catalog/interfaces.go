package catalog

import (
	"context"
	"time"

	"jumparena/internal/domain"
	"jumparena/internal/repository"
)

type ZoneReader interface {
	List(ctx context.Context) ([]domain.Zone, error)
	GetByID(ctx context.Context, id int64) (*domain.Zone, error)
}

type ServiceReader interface {
	List(ctx context.Context) ([]domain.Service, error)
	GetByID(ctx context.Context, id int64) (*domain.Service, error)
}

type SlotReader interface {
	ListUpcoming(ctx context.Context, from time.Time, zoneID *int64, day *time.Time) ([]repository.SlotAvailability, error)
	GetByID(ctx context.Context, id int64) (*domain.ScheduleSlot, error)
	BookedSeats(ctx context.Context, slotID int64) (int, error)
}
