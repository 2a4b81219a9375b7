package notify

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
)

var (
	ErrMissingEndpoint = errors.New("subscription: missing endpoint")
	ErrMissingKeys     = errors.New("subscription: missing p256dh/auth keys")
)

type SubscriptionKeys struct {
	P256dh string `json:"p256dh"`
	Auth   string `json:"auth"`
}

type Subscription struct {
	ID       string           `json:"id"`
	Endpoint string           `json:"endpoint"`
	Keys     SubscriptionKeys `json:"keys"`
}

// SubscriptionStore persiste as inscrições de push em um arquivo JSON,
// deduplicadas por endpoint.
type SubscriptionStore struct {
	mu   sync.Mutex
	path string
}

func NewSubscriptionStore(path string) *SubscriptionStore {
	return &SubscriptionStore{path: path}
}

// Add valida e grava a inscrição. Endpoints repetidos são ignorados
// em silêncio: re-subscrever no mesmo navegador não é erro.
func (s *SubscriptionStore) Add(sub Subscription) error {
	if sub.Endpoint == "" {
		return ErrMissingEndpoint
	}
	if sub.Keys.P256dh == "" || sub.Keys.Auth == "" {
		return ErrMissingKeys
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	list, err := s.load()
	if err != nil {
		return err
	}

	for _, existing := range list {
		if existing.Endpoint == sub.Endpoint {
			return nil
		}
	}

	if sub.ID == "" {
		sub.ID = uuid.New().String()
	}
	list = append(list, sub)

	return s.save(list)
}

func (s *SubscriptionStore) All() ([]Subscription, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

func (s *SubscriptionStore) load() ([]Subscription, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var list []Subscription
	if err := json.Unmarshal(data, &list); err != nil {
		return nil, err
	}
	return list, nil
}

func (s *SubscriptionStore) save(list []Subscription) error {
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}

	data, err := json.MarshalIndent(list, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0o644)
}
