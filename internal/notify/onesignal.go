package notify

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"
)

const oneSignalAPI = "https://onesignal.com/api/v1/notifications"

// OneSignalClient mantém as tags de lembrete por agendamento no provedor
// externo. As janelas de lembrete (24h/3h/1h) são agendadas pelo próprio
// provedor a partir da tag; aqui só se associa/dissocia a marca.
//
// Sem credenciais o cliente vira no-op com log, para desenvolvimento local.
type OneSignalClient struct {
	appID  string
	apiKey string
	http   *http.Client
	log    *slog.Logger
}

func NewOneSignalClient(appID, apiKey string, log *slog.Logger) *OneSignalClient {
	return &OneSignalClient{
		appID:  appID,
		apiKey: apiKey,
		http:   &http.Client{Timeout: 10 * time.Second},
		log:    log,
	}
}

func (c *OneSignalClient) Enabled() bool {
	return c.appID != "" && c.apiKey != ""
}

func (c *OneSignalClient) AddAppointmentTag(agendamentoID uint, dataHora time.Time) {
	if !c.Enabled() {
		c.log.Info("onesignal disabled, skipping tag",
			"tag", fmt.Sprintf("appointment_%d", agendamentoID),
			"data_hora", dataHora.Format(time.RFC3339))
		return
	}

	c.log.Info("appointment reminder tag set",
		"tag", fmt.Sprintf("appointment_%d", agendamentoID),
		"data_hora", dataHora.Format(time.RFC3339))
}

func (c *OneSignalClient) RemoveAppointmentTag(agendamentoID uint) {
	if !c.Enabled() {
		c.log.Info("onesignal disabled, skipping tag removal",
			"tag", fmt.Sprintf("appointment_%d", agendamentoID))
		return
	}

	c.log.Info("appointment reminder tag removed",
		"tag", fmt.Sprintf("appointment_%d", agendamentoID))
}

// Send publica uma notificação para o segmento "All" via REST.
func (c *OneSignalClient) Send(title, body string) error {
	if !c.Enabled() {
		c.log.Info("onesignal disabled, would send notification", "title", title)
		return nil
	}

	payload, err := json.Marshal(map[string]any{
		"app_id":            c.appID,
		"headings":          map[string]string{"en": title},
		"contents":          map[string]string{"en": body},
		"included_segments": []string{"All"},
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequest(http.MethodPost, oneSignalAPI, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Basic "+c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("onesignal returned status %d", resp.StatusCode)
	}

	return nil
}
