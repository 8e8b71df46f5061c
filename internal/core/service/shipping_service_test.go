package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/99minutos/shipping-service/internal/core/domain"
	"github.com/99minutos/shipping-service/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory stub dedup store
// ---------------------------------------------------------------------------

type stubDedup struct {
	mu        sync.Mutex
	byKey     map[string]domain.TrackingID
	lookupErr error
	storeErr  error
	lastTTL   time.Duration
}

func newStubDedup() *stubDedup {
	return &stubDedup{byKey: make(map[string]domain.TrackingID)}
}

func (d *stubDedup) Lookup(_ context.Context, key string) (domain.TrackingID, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.lookupErr != nil {
		return "", d.lookupErr
	}
	return d.byKey[key], nil
}

func (d *stubDedup) Remember(_ context.Context, key string, id domain.TrackingID, ttl time.Duration) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.storeErr != nil {
		return false, d.storeErr
	}
	d.lastTTL = ttl
	if _, ok := d.byKey[key]; ok {
		return false, nil
	}
	d.byKey[key] = id
	return true, nil
}

// ---------------------------------------------------------------------------
// Tracking id tests
// ---------------------------------------------------------------------------

func TestNewTrackingID_Unique(t *testing.T) {
	const n = 20_000
	seen := make(map[domain.TrackingID]struct{}, n)
	for i := 0; i < n; i++ {
		id := NewTrackingID()
		if id == "" {
			t.Fatal("tracking id must not be empty")
		}
		if _, dup := seen[id]; dup {
			t.Fatalf("duplicate tracking id after %d calls: %s", i, id)
		}
		seen[id] = struct{}{}
	}
}

func TestNewTrackingID_UniqueAcrossGoroutines(t *testing.T) {
	const workers, perWorker = 8, 2_000

	var mu sync.Mutex
	seen := make(map[domain.TrackingID]struct{}, workers*perWorker)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			local := make([]domain.TrackingID, 0, perWorker)
			for i := 0; i < perWorker; i++ {
				local = append(local, NewTrackingID())
			}
			mu.Lock()
			for _, id := range local {
				seen[id] = struct{}{}
			}
			mu.Unlock()
		}()
	}
	wg.Wait()

	if len(seen) != workers*perWorker {
		t.Errorf("expected %d distinct ids, got %d", workers*perWorker, len(seen))
	}
}

// ---------------------------------------------------------------------------
// ShipOrder tests
// ---------------------------------------------------------------------------

func TestShippingService_ShipOrder_NoDedup(t *testing.T) {
	svc := NewShippingService(nil, 0, discardLogger)

	first := svc.ShipOrder(context.Background(), ports.ShipOrderInput{IdempotencyKey: "key-1"})
	second := svc.ShipOrder(context.Background(), ports.ShipOrderInput{IdempotencyKey: "key-1"})

	if first.TrackingID == "" || second.TrackingID == "" {
		t.Fatal("tracking id must not be empty")
	}
	if first.TrackingID == second.TrackingID {
		t.Error("without a dedup store every call must issue a new tracking id")
	}
	if first.Replayed || second.Replayed {
		t.Error("Replayed must be false without a dedup store")
	}
}

func TestShippingService_ShipOrder_IdempotencyReplay(t *testing.T) {
	dedup := newStubDedup()
	svc := NewShippingService(dedup, 10*time.Minute, discardLogger)

	first := svc.ShipOrder(context.Background(), ports.ShipOrderInput{IdempotencyKey: "key-abc"})
	second := svc.ShipOrder(context.Background(), ports.ShipOrderInput{IdempotencyKey: "key-abc"})

	if second.TrackingID != first.TrackingID {
		t.Errorf("replay must return same tracking id: got %q, want %q", second.TrackingID, first.TrackingID)
	}
	if first.Replayed {
		t.Error("first call must not be a replay")
	}
	if !second.Replayed {
		t.Error("replay must set Replayed=true")
	}
	if dedup.lastTTL != 10*time.Minute {
		t.Errorf("expected ttl 10m, got %v", dedup.lastTTL)
	}
}

func TestShippingService_ShipOrder_NoKeyAlwaysIssues(t *testing.T) {
	dedup := newStubDedup()
	svc := NewShippingService(dedup, 0, discardLogger)

	a := svc.ShipOrder(context.Background(), ports.ShipOrderInput{})
	b := svc.ShipOrder(context.Background(), ports.ShipOrderInput{})

	if a.TrackingID == b.TrackingID {
		t.Error("calls without idempotency key must issue distinct ids")
	}
	if len(dedup.byKey) != 0 {
		t.Errorf("nothing should be stored without a key, got %d entries", len(dedup.byKey))
	}
}

func TestShippingService_ShipOrder_StoreErrorsNeverFail(t *testing.T) {
	dedup := newStubDedup()
	dedup.lookupErr = errors.New("redis down")
	svc := NewShippingService(dedup, 0, discardLogger)

	res := svc.ShipOrder(context.Background(), ports.ShipOrderInput{IdempotencyKey: "k"})
	if res.TrackingID == "" {
		t.Fatal("expected a tracking id when lookup fails")
	}

	dedup.lookupErr = nil
	dedup.storeErr = errors.New("redis down")
	res = svc.ShipOrder(context.Background(), ports.ShipOrderInput{IdempotencyKey: "k"})
	if res.TrackingID == "" || res.Replayed {
		t.Fatalf("expected a fresh tracking id when store fails, got %+v", res)
	}
}

func TestShippingService_ShipOrder_LostRaceReturnsWinner(t *testing.T) {
	dedup := newStubDedup()
	svc := NewShippingService(dedup, 0, discardLogger)
	// Simulate a concurrent request storing its id between Lookup and Remember.
	svc.newID = func() domain.TrackingID {
		dedup.mu.Lock()
		dedup.byKey["race"] = "winner-id"
		dedup.mu.Unlock()
		return "loser-id"
	}

	res := svc.ShipOrder(context.Background(), ports.ShipOrderInput{IdempotencyKey: "race"})
	if res.TrackingID != "winner-id" || !res.Replayed {
		t.Errorf("expected winner id replayed, got %+v", res)
	}
}
