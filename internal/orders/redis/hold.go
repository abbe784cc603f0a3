package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// Holds are advisory: they shorten the window in which two checkouts fight
// over one seat, but the tickets.flight_seat_id unique constraint is the
// authoritative guard. An expired or missing hold never blocks issuance.
type SeatHolds struct {
	Client *redis.Client
	TTL    time.Duration
	Prefix string
}

func NewSeatHolds(client *redis.Client, ttl time.Duration, prefix string) *SeatHolds {
	if prefix == "" {
		prefix = "seat_hold:"
	}
	return &SeatHolds{Client: client, TTL: ttl, Prefix: prefix}
}

func (s *SeatHolds) key(flightSeatID int64) string {
	return fmt.Sprintf("%s%d", s.Prefix, flightSeatID)
}

// HoldSeat sets the hold if free. Returns false when someone else holds it.
func (s *SeatHolds) HoldSeat(ctx context.Context, flightSeatID int64, owner string) (bool, error) {
	return s.Client.SetNX(ctx, s.key(flightSeatID), owner, s.TTL).Result()
}

// ReleaseSeat deletes the hold only if owned by owner.
func (s *SeatHolds) ReleaseSeat(ctx context.Context, flightSeatID int64, owner string) error {
	key := s.key(flightSeatID)
	val, err := s.Client.Get(ctx, key).Result()
	if err == redis.Nil {
		return nil // already released or expired
	}
	if err != nil {
		return err
	}
	if val == owner {
		_, err = s.Client.Del(ctx, key).Result()
	}
	return err
}

// HoldSeats takes all holds or none: on any refusal or error the holds
// already taken are released before returning.
func (s *SeatHolds) HoldSeats(ctx context.Context, flightSeatIDs []int64, owner string) (bool, error) {
	held := make([]int64, 0, len(flightSeatIDs))
	for _, id := range flightSeatIDs {
		ok, err := s.HoldSeat(ctx, id, owner)
		if err != nil || !ok {
			for _, h := range held {
				_ = s.ReleaseSeat(ctx, h, owner)
			}
			return false, err
		}
		held = append(held, id)
	}
	return true, nil
}

func (s *SeatHolds) ReleaseSeats(ctx context.Context, flightSeatIDs []int64, owner string) error {
	var firstErr error
	for _, id := range flightSeatIDs {
		if err := s.ReleaseSeat(ctx, id, owner); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
