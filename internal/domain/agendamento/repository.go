package agendamento

import (
	"context"
	"time"

	"github.com/EsmalteStudio/nail-scheduler/internal/models"
)

type Repository interface {
	// -------- Cliente / Servico (validação de posse) --------
	GetCliente(
		ctx context.Context,
		userID uint,
		clienteID uint,
	) (*models.Cliente, error)

	GetServico(
		ctx context.Context,
		userID uint,
		servicoID uint,
	) (*models.Servico, error)

	// -------- Agendamento --------
	GetAgendamento(
		ctx context.Context,
		userID uint,
		agendamentoID uint,
	) (*models.Agendamento, error)

	CreateAgendamento(
		ctx context.Context,
		ag *models.Agendamento,
	) error

	// UpdateAgendamento persiste todos os campos e, quando creditarPontos
	// é verdadeiro, incrementa os pontos do cliente na MESMA transação.
	UpdateAgendamento(
		ctx context.Context,
		ag *models.Agendamento,
		creditarPontos bool,
	) error

	DeleteAgendamento(
		ctx context.Context,
		userID uint,
		agendamentoID uint,
	) error

	// -------- Consultas --------
	ListAgendamentos(
		ctx context.Context,
		userID uint,
	) ([]models.Agendamento, error)

	ListAgendamentosDoCliente(
		ctx context.Context,
		userID uint,
		clienteID uint,
	) ([]models.Agendamento, error)

	// ListClientesInativos devolve clientes com pelo menos um agendamento
	// no histórico e nenhum atendimento concluído desde o corte informado.
	ListClientesInativos(
		ctx context.Context,
		corte time.Time,
	) ([]models.Cliente, error)
}
