package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	domain "github.com/EsmalteStudio/nail-scheduler/internal/domain/agendamento"
	"github.com/EsmalteStudio/nail-scheduler/internal/models"
)

type AgendamentoGormRepository struct {
	db *gorm.DB
}

func NewAgendamentoGormRepository(db *gorm.DB) *AgendamentoGormRepository {
	return &AgendamentoGormRepository{db: db}
}

// --------------------------------------------------
// Cliente / Servico
// --------------------------------------------------

func (r *AgendamentoGormRepository) GetCliente(
	ctx context.Context,
	userID uint,
	clienteID uint,
) (*models.Cliente, error) {

	var cliente models.Cliente
	if err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", clienteID, userID).
		First(&cliente).Error; err != nil {
		return nil, err
	}
	return &cliente, nil
}

func (r *AgendamentoGormRepository) GetServico(
	ctx context.Context,
	userID uint,
	servicoID uint,
) (*models.Servico, error) {

	var servico models.Servico
	if err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", servicoID, userID).
		First(&servico).Error; err != nil {
		return nil, err
	}
	return &servico, nil
}

// --------------------------------------------------
// Agendamento
// --------------------------------------------------

func (r *AgendamentoGormRepository) GetAgendamento(
	ctx context.Context,
	userID uint,
	agendamentoID uint,
) (*models.Agendamento, error) {

	var ag models.Agendamento
	if err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", agendamentoID, userID).
		First(&ag).Error; err != nil {
		return nil, err
	}
	return &ag, nil
}

func (r *AgendamentoGormRepository) CreateAgendamento(
	ctx context.Context,
	ag *models.Agendamento,
) error {
	return r.db.WithContext(ctx).Create(ag).Error
}

// UpdateAgendamento grava o registro inteiro e, quando a transição credita
// fidelidade, soma os pontos do cliente na mesma transação. Um crash entre
// as duas escritas deixaria status "done" sem os pontos; a transação fecha
// essa janela.
func (r *AgendamentoGormRepository) UpdateAgendamento(
	ctx context.Context,
	ag *models.Agendamento,
	creditarPontos bool,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		if err := tx.Model(&models.Agendamento{}).
			Where("id = ? AND user_id = ?", ag.ID, ag.UserID).
			Updates(map[string]any{
				"cliente_id":  ag.ClienteID,
				"servico_id":  ag.ServicoID,
				"data_hora":   ag.DataHora,
				"status":      ag.Status,
				"observacoes": ag.Observacoes,
			}).Error; err != nil {
			return err
		}

		if creditarPontos {
			if err := tx.Model(&models.Cliente{}).
				Where("id = ?", ag.ClienteID).
				Update("pontos", gorm.Expr("pontos + ?", domain.PontosPorAtendimento)).
				Error; err != nil {
				return err
			}
		}

		return nil
	})
}

func (r *AgendamentoGormRepository) DeleteAgendamento(
	ctx context.Context,
	userID uint,
	agendamentoID uint,
) error {
	return r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", agendamentoID, userID).
		Delete(&models.Agendamento{}).Error
}

// --------------------------------------------------
// Consultas
// --------------------------------------------------

func (r *AgendamentoGormRepository) ListAgendamentos(
	ctx context.Context,
	userID uint,
) ([]models.Agendamento, error) {

	var ags []models.Agendamento
	if err := r.db.WithContext(ctx).
		Preload("Cliente").
		Preload("Servico").
		Where("user_id = ?", userID).
		Order("data_hora DESC").
		Find(&ags).Error; err != nil {
		return nil, err
	}
	return ags, nil
}

func (r *AgendamentoGormRepository) ListAgendamentosDoCliente(
	ctx context.Context,
	userID uint,
	clienteID uint,
) ([]models.Agendamento, error) {

	var ags []models.Agendamento
	if err := r.db.WithContext(ctx).
		Preload("Cliente").
		Preload("Servico").
		Where("user_id = ? AND cliente_id = ?", userID, clienteID).
		Order("data_hora DESC").
		Find(&ags).Error; err != nil {
		return nil, err
	}
	return ags, nil
}

func (r *AgendamentoGormRepository) ListClientesInativos(
	ctx context.Context,
	corte time.Time,
) ([]models.Cliente, error) {

	var clientes []models.Cliente
	err := r.db.WithContext(ctx).
		Where(`NOT EXISTS (
			SELECT 1 FROM agendamentos a
			WHERE a.cliente_id = clientes.id
			  AND a.status = ?
			  AND a.data_hora >= ?
		)`, string(domain.StatusDone), corte).
		Where(`EXISTS (
			SELECT 1 FROM agendamentos a2
			WHERE a2.cliente_id = clientes.id
		)`).
		Find(&clientes).Error
	if err != nil {
		return nil, err
	}
	return clientes, nil
}

// Compile-time check
var _ domain.Repository = (*AgendamentoGormRepository)(nil)
