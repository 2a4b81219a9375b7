package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/EsmalteStudio/nail-scheduler/internal/httperr"
	"github.com/EsmalteStudio/nail-scheduler/internal/notify"
)

type PushHandler struct {
	vapid *notify.VAPID
	store *notify.SubscriptionStore
}

func NewPushHandler(vapid *notify.VAPID, store *notify.SubscriptionStore) *PushHandler {
	return &PushHandler{vapid: vapid, store: store}
}

// VapidPublicKey entrega a chave pública para o service worker assinar a
// inscrição. Endpoint público: roda antes do login no app.
func (h *PushHandler) VapidPublicKey(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"publicKey": h.vapid.PublicKey})
}

type SubscribeRequest struct {
	Endpoint string `json:"endpoint"`
	Keys     struct {
		P256dh string `json:"p256dh"`
		Auth   string `json:"auth"`
	} `json:"keys"`
}

func (h *PushHandler) Subscribe(c *gin.Context) {
	var req SubscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Inscrição inválida.")
		return
	}

	sub := notify.Subscription{
		Endpoint: req.Endpoint,
		Keys: notify.SubscriptionKeys{
			P256dh: req.Keys.P256dh,
			Auth:   req.Keys.Auth,
		},
	}

	if err := h.store.Add(sub); err != nil {
		if errors.Is(err, notify.ErrMissingEndpoint) || errors.Is(err, notify.ErrMissingKeys) {
			httperr.BadRequest(c, "invalid_subscription", "Inscrição inválida.")
			return
		}
		httperr.Internal(c, "failed_to_save_subscription", "Erro ao salvar inscrição.")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"ok": true})
}
