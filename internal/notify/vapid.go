package notify

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	webpush "github.com/SherClockHolmes/webpush-go"

	"github.com/EsmalteStudio/nail-scheduler/internal/config"
)

// VAPID guarda o par de chaves de assinatura Web Push. O par é gerado uma
// única vez e persistido em JSON; execuções seguintes reutilizam o arquivo.
type VAPID struct {
	PublicKey  string `json:"publicKey"`
	PrivateKey string `json:"privateKey"`
	Subject    string `json:"subject"`
}

func EnsureVAPID(cfg *config.Config) (*VAPID, error) {
	// chaves vindas do ambiente têm prioridade sobre o arquivo
	if cfg.VAPIDPublicKey != "" && cfg.VAPIDPrivateKey != "" {
		return &VAPID{
			PublicKey:  cfg.VAPIDPublicKey,
			PrivateKey: cfg.VAPIDPrivateKey,
			Subject:    cfg.VAPIDSubject,
		}, nil
	}

	if data, err := os.ReadFile(cfg.VAPIDFile); err == nil {
		var v VAPID
		if err := json.Unmarshal(data, &v); err != nil {
			return nil, fmt.Errorf("invalid vapid file %s: %w", cfg.VAPIDFile, err)
		}
		if v.Subject == "" {
			v.Subject = cfg.VAPIDSubject
		}
		return &v, nil
	}

	privateKey, publicKey, err := webpush.GenerateVAPIDKeys()
	if err != nil {
		return nil, fmt.Errorf("failed to generate vapid keys: %w", err)
	}

	v := &VAPID{
		PublicKey:  publicKey,
		PrivateKey: privateKey,
		Subject:    cfg.VAPIDSubject,
	}

	if dir := filepath.Dir(cfg.VAPIDFile); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, err
	}
	if err := os.WriteFile(cfg.VAPIDFile, data, 0o600); err != nil {
		return nil, fmt.Errorf("failed to persist vapid keys: %w", err)
	}

	return v, nil
}
