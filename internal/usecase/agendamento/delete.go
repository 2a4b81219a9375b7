package agendamento

import (
	"context"

	domain "github.com/EsmalteStudio/nail-scheduler/internal/domain/agendamento"
	"github.com/EsmalteStudio/nail-scheduler/internal/httperr"
)

type DeleteAgendamento struct {
	repo     domain.Repository
	notifier Notifier
}

func NewDeleteAgendamento(repo domain.Repository, notifier Notifier) *DeleteAgendamento {
	return &DeleteAgendamento{
		repo:     repo,
		notifier: notifier,
	}
}

func (uc *DeleteAgendamento) Execute(
	ctx context.Context,
	userID uint,
	agendamentoID uint,
) error {

	if _, err := uc.repo.GetAgendamento(ctx, userID, agendamentoID); err != nil {
		return httperr.ErrBusiness("agendamento_not_found")
	}

	uc.notifier.RemoveLembrete(agendamentoID)

	return uc.repo.DeleteAgendamento(ctx, userID, agendamentoID)
}
