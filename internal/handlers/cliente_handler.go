package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/EsmalteStudio/nail-scheduler/internal/httperr"
	"github.com/EsmalteStudio/nail-scheduler/internal/middleware"
	"github.com/EsmalteStudio/nail-scheduler/internal/models"
)

type ClienteHandler struct {
	db *gorm.DB
}

func NewClienteHandler(db *gorm.DB) *ClienteHandler {
	return &ClienteHandler{db: db}
}

// --------- Requests ---------

// O formulário do app envia o cadastro completo; o PATCH regrava todos os
// campos (campos opcionais omitidos voltam a vazio). Pontos ficam de fora:
// só o ciclo de vida do agendamento mexe neles.
type ClienteRequest struct {
	Nome         string `json:"nome" binding:"required"`
	Telefone     string `json:"telefone" binding:"required"`
	Email        string `json:"email" binding:"omitempty,email"`
	Instagram    string `json:"instagram"`
	Alergias     string `json:"alergias"`
	Preferencias string `json:"preferencias"`
}

// --------- Handlers ---------

func (h *ClienteHandler) List(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var clientes []models.Cliente
	if err := h.db.
		Where("user_id = ?", userID).
		Order("nome ASC").
		Find(&clientes).Error; err != nil {

		httperr.Internal(c, "failed_to_list_clientes", "Erro ao listar clientes.")
		return
	}

	c.JSON(http.StatusOK, clientes)
}

func (h *ClienteHandler) Get(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	id := c.Param("id")

	var cliente models.Cliente
	if err := h.db.
		Where("id = ? AND user_id = ?", id, userID).
		First(&cliente).Error; err != nil {

		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "cliente_not_found", "Cliente não encontrado.")
			return
		}
		httperr.Internal(c, "failed_to_get_cliente", "Erro ao buscar cliente.")
		return
	}

	c.JSON(http.StatusOK, cliente)
}

func (h *ClienteHandler) Create(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var req ClienteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	cliente := models.Cliente{
		UserID:       userID,
		Nome:         req.Nome,
		Telefone:     req.Telefone,
		Email:        req.Email,
		Instagram:    req.Instagram,
		Pontos:       0,
		Alergias:     req.Alergias,
		Preferencias: req.Preferencias,
	}

	if err := h.db.Create(&cliente).Error; err != nil {
		httperr.Internal(c, "failed_to_create_cliente", "Erro ao criar cliente.")
		return
	}

	c.JSON(http.StatusCreated, cliente)
}

func (h *ClienteHandler) Update(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	id := c.Param("id")

	var cliente models.Cliente
	if err := h.db.
		Where("id = ? AND user_id = ?", id, userID).
		First(&cliente).Error; err != nil {

		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "cliente_not_found", "Cliente não encontrado.")
			return
		}
		httperr.Internal(c, "failed_to_get_cliente", "Erro ao buscar cliente.")
		return
	}

	var req ClienteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	cliente.Nome = req.Nome
	cliente.Telefone = req.Telefone
	cliente.Email = req.Email
	cliente.Instagram = req.Instagram
	cliente.Alergias = req.Alergias
	cliente.Preferencias = req.Preferencias

	if err := h.db.Save(&cliente).Error; err != nil {
		httperr.Internal(c, "failed_to_update_cliente", "Erro ao atualizar cliente.")
		return
	}

	c.JSON(http.StatusOK, cliente)
}

func (h *ClienteHandler) Delete(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	id := c.Param("id")

	var cliente models.Cliente
	if err := h.db.
		Where("id = ? AND user_id = ?", id, userID).
		First(&cliente).Error; err != nil {

		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "cliente_not_found", "Cliente não encontrado.")
			return
		}
		httperr.Internal(c, "failed_to_get_cliente", "Erro ao buscar cliente.")
		return
	}

	// agendamentos do cliente caem junto via FK ON DELETE CASCADE
	if err := h.db.Delete(&cliente).Error; err != nil {
		httperr.Internal(c, "failed_to_delete_cliente", "Erro ao excluir cliente.")
		return
	}

	c.Status(http.StatusNoContent)
}
