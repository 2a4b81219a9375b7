// Package scanner roda a varredura diária de clientes inativos: quem tem
// histórico mas não conclui um atendimento há 30 dias recebe uma
// notificação de reengajamento.
package scanner

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	domain "github.com/EsmalteStudio/nail-scheduler/internal/domain/agendamento"
)

// JanelaInatividade é o período sem atendimento concluído que torna um
// cliente elegível para reengajamento.
const JanelaInatividade = 30 * 24 * time.Hour

// cronSpec dispara uma vez por dia às 10:00.
const cronSpec = "0 10 * * *"

type Notifier interface {
	NotificarClienteInativo(nomeCliente string)
}

type InactivityScanner struct {
	repo     domain.Repository
	notifier Notifier
	log      *slog.Logger
	cron     *cron.Cron
}

func New(repo domain.Repository, notifier Notifier, log *slog.Logger) *InactivityScanner {
	return &InactivityScanner{
		repo:     repo,
		notifier: notifier,
		log:      log,
	}
}

// Start agenda a varredura diária. Uma execução que falhe só é registrada
// no log; a próxima tentativa fica para o horário seguinte.
func (s *InactivityScanner) Start() error {
	s.cron = cron.New()

	_, err := s.cron.AddFunc(cronSpec, func() {
		if _, err := s.RunOnce(context.Background()); err != nil {
			s.log.Error("inactivity scan failed", "error", err)
		}
	})
	if err != nil {
		return err
	}

	s.cron.Start()
	s.log.Info("inactivity scanner started", "schedule", cronSpec)
	return nil
}

func (s *InactivityScanner) Stop() {
	if s.cron != nil {
		s.cron.Stop()
	}
}

// RunOnce executa uma varredura e devolve quantos clientes foram
// notificados.
func (s *InactivityScanner) RunOnce(ctx context.Context) (int, error) {
	corte := time.Now().Add(-JanelaInatividade)

	clientes, err := s.repo.ListClientesInativos(ctx, corte)
	if err != nil {
		return 0, err
	}

	for _, cliente := range clientes {
		s.notifier.NotificarClienteInativo(cliente.Nome)
		s.log.Info("reengagement notification queued", "cliente", cliente.Nome)
	}

	s.log.Info("inactivity scan completed", "clientes", len(clientes))
	return len(clientes), nil
}
