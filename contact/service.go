package contact

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
)

// EndpointFunc returns the current form endpoint, "" when contact is disabled.
type EndpointFunc func() string

type Service struct {
	client   *Client
	endpoint EndpointFunc
	limiter  *RateLimiter

	inFlightMu sync.Mutex
	inFlight   map[string]struct{}
}

func NewService(client *Client, endpoint EndpointFunc, limiter *RateLimiter) *Service {
	return &Service{
		client:   client,
		endpoint: endpoint,
		limiter:  limiter,
		inFlight: make(map[string]struct{}),
	}
}

// Submit validates sub and forwards it. clientKey identifies the sender for
// rate limiting (usually the remote IP).
func (s *Service) Submit(ctx context.Context, clientKey string, sub Submission) (Receipt, error) {
	endpoint := s.endpoint()
	if endpoint == "" {
		return Receipt{}, ErrNotConfigured
	}

	if s.limiter != nil && !s.limiter.Allow(clientKey) {
		return Receipt{}, ErrRateLimited
	}

	if err := sub.Validate(); err != nil {
		return Receipt{}, err
	}

	log := slog.With("client", clientKey)
	if sub.IsBot() {
		// Forwarded anyway; the backend drops honeypot hits itself.
		log.Warn("honeypot filled, probable bot submission")
	}

	key := sub.key()
	if !s.begin(key) {
		return Receipt{}, ErrInProgress
	}
	defer s.end(key)

	if err := s.client.Send(ctx, endpoint, sub); err != nil {
		log.Error("contact submission failed", "error", err)
		return Receipt{}, fmt.Errorf("forward submission: %w", err)
	}

	receipt := Receipt{
		ID:         uuid.Must(uuid.NewV7()).String(),
		ReceivedAt: time.Now().UTC(),
	}
	log.Info("contact submission forwarded", "receiptId", receipt.ID)
	return receipt, nil
}

func (s *Service) begin(key string) bool {
	s.inFlightMu.Lock()
	defer s.inFlightMu.Unlock()

	if _, ok := s.inFlight[key]; ok {
		return false
	}
	s.inFlight[key] = struct{}{}
	return true
}

func (s *Service) end(key string) {
	s.inFlightMu.Lock()
	defer s.inFlightMu.Unlock()
	delete(s.inFlight, key)
}
