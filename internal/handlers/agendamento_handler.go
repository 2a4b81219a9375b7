package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	domain "github.com/EsmalteStudio/nail-scheduler/internal/domain/agendamento"
	"github.com/EsmalteStudio/nail-scheduler/internal/httperr"
	"github.com/EsmalteStudio/nail-scheduler/internal/middleware"
	ucAgendamento "github.com/EsmalteStudio/nail-scheduler/internal/usecase/agendamento"
)

// ======================================================
// HANDLER
// ======================================================

type AgendamentoHandler struct {
	repo     domain.Repository
	createUC *ucAgendamento.CreateAgendamento
	updateUC *ucAgendamento.UpdateAgendamento
	deleteUC *ucAgendamento.DeleteAgendamento
}

func NewAgendamentoHandler(
	repo domain.Repository,
	createUC *ucAgendamento.CreateAgendamento,
	updateUC *ucAgendamento.UpdateAgendamento,
	deleteUC *ucAgendamento.DeleteAgendamento,
) *AgendamentoHandler {
	return &AgendamentoHandler{
		repo:     repo,
		createUC: createUC,
		updateUC: updateUC,
		deleteUC: deleteUC,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateAgendamentoRequest struct {
	ClienteID   uint      `json:"cliente_id" binding:"required"`
	ServicoID   uint      `json:"servico_id" binding:"required"`
	DataHora    time.Time `json:"data_hora" binding:"required"`
	Status      string    `json:"status" binding:"omitempty,oneof=pending confirmed done cancelled"`
	Observacoes string    `json:"observacoes"`
}

type UpdateAgendamentoRequest struct {
	ClienteID   uint      `json:"cliente_id" binding:"required"`
	ServicoID   uint      `json:"servico_id" binding:"required"`
	DataHora    time.Time `json:"data_hora" binding:"required"`
	Status      string    `json:"status" binding:"required,oneof=pending confirmed done cancelled"`
	Observacoes string    `json:"observacoes"`
}

// ======================================================
// HANDLERS
// ======================================================

func (h *AgendamentoHandler) List(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	ags, err := h.repo.ListAgendamentos(c.Request.Context(), userID)
	if err != nil {
		httperr.Internal(c, "failed_to_list_agendamentos", "Erro ao listar agendamentos.")
		return
	}

	c.JSON(http.StatusOK, ags)
}

func (h *AgendamentoHandler) Create(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var req CreateAgendamentoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	ag, err := h.createUC.Execute(c.Request.Context(), userID, ucAgendamento.CreateAgendamentoInput{
		ClienteID:   req.ClienteID,
		ServicoID:   req.ServicoID,
		DataHora:    req.DataHora,
		Status:      domain.Status(req.Status),
		Observacoes: req.Observacoes,
	})
	if err != nil {
		writeLifecycleError(c, err, "failed_to_create_agendamento", "Erro ao criar agendamento.")
		return
	}

	c.JSON(http.StatusCreated, ag)
}

func (h *AgendamentoHandler) Update(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	id, ok := paramID(c)
	if !ok {
		return
	}

	var req UpdateAgendamentoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	ag, err := h.updateUC.Execute(c.Request.Context(), userID, id, ucAgendamento.UpdateAgendamentoInput{
		ClienteID:   req.ClienteID,
		ServicoID:   req.ServicoID,
		DataHora:    req.DataHora,
		Status:      domain.Status(req.Status),
		Observacoes: req.Observacoes,
	})
	if err != nil {
		writeLifecycleError(c, err, "failed_to_update_agendamento", "Erro ao atualizar agendamento.")
		return
	}

	c.JSON(http.StatusOK, ag)
}

func (h *AgendamentoHandler) Delete(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	id, ok := paramID(c)
	if !ok {
		return
	}

	if err := h.deleteUC.Execute(c.Request.Context(), userID, id); err != nil {
		writeLifecycleError(c, err, "failed_to_delete_agendamento", "Erro ao excluir agendamento.")
		return
	}

	c.Status(http.StatusNoContent)
}

// ListByCliente devolve o histórico de um cliente com cliente e serviço
// embutidos em cada agendamento.
func (h *AgendamentoHandler) ListByCliente(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	id, ok := paramID(c)
	if !ok {
		return
	}

	if _, err := h.repo.GetCliente(c.Request.Context(), userID, id); err != nil {
		httperr.NotFound(c, "cliente_not_found", "Cliente não encontrado.")
		return
	}

	ags, err := h.repo.ListAgendamentosDoCliente(c.Request.Context(), userID, id)
	if err != nil {
		httperr.Internal(c, "failed_to_list_agendamentos", "Erro ao listar agendamentos.")
		return
	}

	c.JSON(http.StatusOK, ags)
}

// ======================================================
// HELPERS
// ======================================================

func paramID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Identificador inválido.")
		return 0, false
	}
	return uint(id), true
}

func writeLifecycleError(c *gin.Context, err error, fallbackCode, fallbackMsg string) {
	switch {
	case httperr.IsBusiness(err, "agendamento_not_found"):
		httperr.NotFound(c, "agendamento_not_found", "Agendamento não encontrado.")
	case httperr.IsBusiness(err, "cliente_not_found"):
		httperr.NotFound(c, "cliente_not_found", "Cliente não encontrado.")
	case httperr.IsBusiness(err, "servico_not_found"):
		httperr.NotFound(c, "servico_not_found", "Serviço não encontrado.")
	case httperr.IsBusiness(err, "invalid_status"):
		httperr.BadRequest(c, "invalid_status", "Status inválido.")
	default:
		httperr.Internal(c, fallbackCode, fallbackMsg)
	}
}
