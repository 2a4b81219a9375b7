package agendamento

import (
	"context"
	"time"

	domain "github.com/EsmalteStudio/nail-scheduler/internal/domain/agendamento"
	"github.com/EsmalteStudio/nail-scheduler/internal/httperr"
	"github.com/EsmalteStudio/nail-scheduler/internal/models"
)

type UpdateAgendamentoInput struct {
	ClienteID   uint
	ServicoID   uint
	DataHora    time.Time
	Status      domain.Status
	Observacoes string
}

// UpdateAgendamento aplica o PATCH com semântica de substituição total:
// todos os campos são regravados com o payload recebido, inclusive os
// opcionais omitidos (que voltam a vazio). É o comportamento histórico da
// API e os formulários do app sempre enviam o registro inteiro.
type UpdateAgendamento struct {
	repo     domain.Repository
	notifier Notifier
}

func NewUpdateAgendamento(repo domain.Repository, notifier Notifier) *UpdateAgendamento {
	return &UpdateAgendamento{
		repo:     repo,
		notifier: notifier,
	}
}

func (uc *UpdateAgendamento) Execute(
	ctx context.Context,
	userID uint,
	agendamentoID uint,
	in UpdateAgendamentoInput,
) (*models.Agendamento, error) {

	if !in.Status.IsValid() {
		return nil, httperr.ErrBusiness("invalid_status")
	}

	prev, err := uc.repo.GetAgendamento(ctx, userID, agendamentoID)
	if err != nil {
		return nil, httperr.ErrBusiness("agendamento_not_found")
	}

	if _, err := uc.repo.GetCliente(ctx, userID, in.ClienteID); err != nil {
		return nil, httperr.ErrBusiness("cliente_not_found")
	}

	if _, err := uc.repo.GetServico(ctx, userID, in.ServicoID); err != nil {
		return nil, httperr.ErrBusiness("servico_not_found")
	}

	// o crédito de fidelidade depende do status ANTES da gravação:
	// só a transição que chega em "done" credita
	creditar := domain.DeveCreditarPontos(
		domain.Status(prev.Status),
		in.Status,
	)

	ag := &models.Agendamento{
		ID:          prev.ID,
		UserID:      userID,
		ClienteID:   in.ClienteID,
		ServicoID:   in.ServicoID,
		DataHora:    in.DataHora,
		Status:      string(in.Status),
		Observacoes: in.Observacoes,
	}

	if err := uc.repo.UpdateAgendamento(ctx, ag, creditar); err != nil {
		return nil, err
	}

	if in.Status.Ativo() {
		uc.notifier.TagLembrete(ag.ID, ag.DataHora)
	} else {
		uc.notifier.RemoveLembrete(ag.ID)
	}

	return uc.repo.GetAgendamento(ctx, userID, agendamentoID)
}
