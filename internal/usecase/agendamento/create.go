package agendamento

import (
	"context"
	"time"

	domain "github.com/EsmalteStudio/nail-scheduler/internal/domain/agendamento"
	"github.com/EsmalteStudio/nail-scheduler/internal/httperr"
	"github.com/EsmalteStudio/nail-scheduler/internal/models"
)

// ======================================================
// INPUT
// ======================================================

type CreateAgendamentoInput struct {
	ClienteID   uint
	ServicoID   uint
	DataHora    time.Time
	Status      domain.Status
	Observacoes string
}

// ======================================================
// USE CASE
// ======================================================

type CreateAgendamento struct {
	repo     domain.Repository
	notifier Notifier
}

func NewCreateAgendamento(repo domain.Repository, notifier Notifier) *CreateAgendamento {
	return &CreateAgendamento{
		repo:     repo,
		notifier: notifier,
	}
}

func (uc *CreateAgendamento) Execute(
	ctx context.Context,
	userID uint,
	in CreateAgendamentoInput,
) (*models.Agendamento, error) {

	status := in.Status
	if status == "" {
		status = domain.StatusPending
	}
	if !status.IsValid() {
		return nil, httperr.ErrBusiness("invalid_status")
	}

	// cliente e serviço precisam pertencer ao mesmo usuário; id de outro
	// tenant é indistinguível de inexistente
	if _, err := uc.repo.GetCliente(ctx, userID, in.ClienteID); err != nil {
		return nil, httperr.ErrBusiness("cliente_not_found")
	}

	if _, err := uc.repo.GetServico(ctx, userID, in.ServicoID); err != nil {
		return nil, httperr.ErrBusiness("servico_not_found")
	}

	ag := &models.Agendamento{
		UserID:      userID,
		ClienteID:   in.ClienteID,
		ServicoID:   in.ServicoID,
		DataHora:    in.DataHora,
		Status:      string(status),
		Observacoes: in.Observacoes,
	}

	if err := uc.repo.CreateAgendamento(ctx, ag); err != nil {
		return nil, err
	}

	if status.Ativo() {
		uc.notifier.TagLembrete(ag.ID, ag.DataHora)
	}

	return ag, nil
}
