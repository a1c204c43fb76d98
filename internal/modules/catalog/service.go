package catalog

import (
	"context"
	"time"

	"jumparena/internal/domain"
	"jumparena/internal/repository"
)

// Service exposes the read-only reference data the booking flows consume:
// zones, catalog services and the slot schedule with seat availability.
// Managing this data is out of scope; it arrives via seeding or external
// tooling.
type Service struct {
	zones    ZoneReader
	services ServiceReader
	slots    SlotReader
	nowFn    func() time.Time
}

func NewService(zones ZoneReader, services ServiceReader, slots SlotReader) *Service {
	return &Service{zones: zones, services: services, slots: slots, nowFn: time.Now}
}

func (s *Service) WithClock(now func() time.Time) *Service {
	s.nowFn = now
	return s
}

func (s *Service) ListZones(ctx context.Context) ([]domain.Zone, error) {
	return s.zones.List(ctx)
}

func (s *Service) GetZone(ctx context.Context, id int64) (*domain.Zone, error) {
	return s.zones.GetByID(ctx, id)
}

func (s *Service) ListServices(ctx context.Context) ([]domain.Service, error) {
	return s.services.List(ctx)
}

func (s *Service) GetService(ctx context.Context, id int64) (*domain.Service, error) {
	return s.services.GetByID(ctx, id)
}

// Schedule lists upcoming bookable slots with free seats, optionally
// filtered by zone and day.
func (s *Service) Schedule(ctx context.Context, zoneID *int64, day *time.Time) ([]repository.SlotAvailability, error) {
	return s.slots.ListUpcoming(ctx, s.nowFn(), zoneID, day)
}

// GetSlot returns one slot with its current seat accounting.
func (s *Service) GetSlot(ctx context.Context, id int64) (*repository.SlotAvailability, error) {
	slot, err := s.slots.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	booked, err := s.slots.BookedSeats(ctx, id)
	if err != nil {
		return nil, err
	}
	free := slot.Capacity - booked
	if free < 0 {
		free = 0
	}
	return &repository.SlotAvailability{Slot: *slot, Booked: booked, FreeSeats: free}, nil
}
