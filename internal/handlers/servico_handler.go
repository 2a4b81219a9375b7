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

type ServicoHandler struct {
	db *gorm.DB
}

func NewServicoHandler(db *gorm.DB) *ServicoHandler {
	return &ServicoHandler{db: db}
}

// --------- Requests ---------

type CreateServicoRequest struct {
	Nome      string  `json:"nome" binding:"required"`
	Descricao string  `json:"descricao"`
	Preco     float64 `json:"preco" binding:"min=0"`
	Duracao   int     `json:"duracao" binding:"required,min=1"`
}

type UpdateServicoRequest struct {
	Nome      *string  `json:"nome,omitempty"`
	Descricao *string  `json:"descricao,omitempty"`
	Preco     *float64 `json:"preco,omitempty" binding:"omitempty,min=0"`
	Duracao   *int     `json:"duracao,omitempty" binding:"omitempty,min=1"`
}

// --------- Handlers ---------

func (h *ServicoHandler) List(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var servicos []models.Servico
	if err := h.db.
		Where("user_id = ?", userID).
		Order("nome ASC").
		Find(&servicos).Error; err != nil {

		httperr.Internal(c, "failed_to_list_servicos", "Erro ao listar serviços.")
		return
	}

	c.JSON(http.StatusOK, servicos)
}

func (h *ServicoHandler) Create(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var req CreateServicoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	servico := models.Servico{
		UserID:    userID,
		Nome:      req.Nome,
		Descricao: req.Descricao,
		Preco:     req.Preco,
		Duracao:   req.Duracao,
	}

	if err := h.db.Create(&servico).Error; err != nil {
		httperr.Internal(c, "failed_to_create_servico", "Erro ao criar serviço.")
		return
	}

	c.JSON(http.StatusCreated, servico)
}

func (h *ServicoHandler) Update(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	id := c.Param("id")

	var servico models.Servico
	if err := h.db.
		Where("id = ? AND user_id = ?", id, userID).
		First(&servico).Error; err != nil {

		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "servico_not_found", "Serviço não encontrado.")
			return
		}
		httperr.Internal(c, "failed_to_get_servico", "Erro ao buscar serviço.")
		return
	}

	var req UpdateServicoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	if req.Nome != nil {
		servico.Nome = *req.Nome
	}
	if req.Descricao != nil {
		servico.Descricao = *req.Descricao
	}
	if req.Preco != nil {
		servico.Preco = *req.Preco
	}
	if req.Duracao != nil {
		servico.Duracao = *req.Duracao
	}

	if err := h.db.Save(&servico).Error; err != nil {
		httperr.Internal(c, "failed_to_update_servico", "Erro ao atualizar serviço.")
		return
	}

	c.JSON(http.StatusOK, servico)
}

func (h *ServicoHandler) Delete(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	id := c.Param("id")

	var servico models.Servico
	if err := h.db.
		Where("id = ? AND user_id = ?", id, userID).
		First(&servico).Error; err != nil {

		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "servico_not_found", "Serviço não encontrado.")
			return
		}
		httperr.Internal(c, "failed_to_get_servico", "Erro ao buscar serviço.")
		return
	}

	if err := h.db.Delete(&servico).Error; err != nil {
		httperr.Internal(c, "failed_to_delete_servico", "Erro ao excluir serviço.")
		return
	}

	c.Status(http.StatusNoContent)
}
