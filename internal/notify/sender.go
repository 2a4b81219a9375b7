package notify

import (
	"encoding/json"
	"log/slog"

	webpush "github.com/SherClockHolmes/webpush-go"
)

type pushPayload struct {
	Title string `json:"title"`
	Body  string `json:"body"`
	URL   string `json:"url"`
}

type DeliveryResult struct {
	Endpoint string
	OK       bool
	Err      error
}

// Sender entrega notificações Web Push para todas as inscrições salvas.
type Sender struct {
	vapid *VAPID
	store *SubscriptionStore
	log   *slog.Logger
}

func NewSender(vapid *VAPID, store *SubscriptionStore, log *slog.Logger) *Sender {
	return &Sender{vapid: vapid, store: store, log: log}
}

// SendToAll é fan-out de melhor esforço: falha em um endpoint não impede a
// entrega nos demais e o endpoint falho continua salvo para a próxima leva.
func (s *Sender) SendToAll(title, body string) []DeliveryResult {
	subs, err := s.store.All()
	if err != nil {
		s.log.Error("failed to load push subscriptions", "error", err)
		return nil
	}

	payload, err := json.Marshal(pushPayload{Title: title, Body: body, URL: "/"})
	if err != nil {
		s.log.Error("failed to marshal push payload", "error", err)
		return nil
	}

	results := make([]DeliveryResult, 0, len(subs))

	for _, sub := range subs {
		resp, err := webpush.SendNotification(payload, &webpush.Subscription{
			Endpoint: sub.Endpoint,
			Keys: webpush.Keys{
				P256dh: sub.Keys.P256dh,
				Auth:   sub.Keys.Auth,
			},
		}, &webpush.Options{
			Subscriber:      s.vapid.Subject,
			VAPIDPublicKey:  s.vapid.PublicKey,
			VAPIDPrivateKey: s.vapid.PrivateKey,
			TTL:             3600,
		})
		if resp != nil {
			resp.Body.Close()
		}

		if err != nil {
			s.log.Warn("push delivery failed", "endpoint", truncate(sub.Endpoint, 50), "error", err)
			results = append(results, DeliveryResult{Endpoint: sub.Endpoint, Err: err})
			continue
		}

		s.log.Info("push delivered", "endpoint", truncate(sub.Endpoint, 50))
		results = append(results, DeliveryResult{Endpoint: sub.Endpoint, OK: true})
	}

	return results
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
