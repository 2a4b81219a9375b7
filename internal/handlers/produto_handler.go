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

type ProdutoHandler struct {
	db *gorm.DB
}

func NewProdutoHandler(db *gorm.DB) *ProdutoHandler {
	return &ProdutoHandler{db: db}
}

// --------- Requests ---------

type CreateProdutoRequest struct {
	Nome      string `json:"nome" binding:"required"`
	Marca     string `json:"marca"`
	Categoria string `json:"categoria" binding:"required"`
	ColorHex  string `json:"colorHex"`
	Qty       int    `json:"qty" binding:"min=0"`
	MinQty    int    `json:"minQty" binding:"min=0"`
}

type UpdateProdutoRequest struct {
	Nome      *string `json:"nome,omitempty"`
	Marca     *string `json:"marca,omitempty"`
	Categoria *string `json:"categoria,omitempty"`
	ColorHex  *string `json:"colorHex,omitempty"`
	Qty       *int    `json:"qty,omitempty" binding:"omitempty,min=0"`
	MinQty    *int    `json:"minQty,omitempty" binding:"omitempty,min=0"`
}

// --------- Handlers ---------

func (h *ProdutoHandler) List(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var produtos []models.Produto
	if err := h.db.
		Where("user_id = ?", userID).
		Order("nome ASC").
		Find(&produtos).Error; err != nil {

		httperr.Internal(c, "failed_to_list_produtos", "Erro ao listar produtos.")
		return
	}

	c.JSON(http.StatusOK, produtos)
}

func (h *ProdutoHandler) Create(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var req CreateProdutoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	produto := models.Produto{
		UserID:    userID,
		Nome:      req.Nome,
		Marca:     req.Marca,
		Categoria: req.Categoria,
		ColorHex:  req.ColorHex,
		Qty:       req.Qty,
		MinQty:    req.MinQty,
	}

	if err := h.db.Create(&produto).Error; err != nil {
		httperr.Internal(c, "failed_to_create_produto", "Erro ao criar produto.")
		return
	}

	c.JSON(http.StatusCreated, produto)
}

func (h *ProdutoHandler) Update(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	id := c.Param("id")

	var produto models.Produto
	if err := h.db.
		Where("id = ? AND user_id = ?", id, userID).
		First(&produto).Error; err != nil {

		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "produto_not_found", "Produto não encontrado.")
			return
		}
		httperr.Internal(c, "failed_to_get_produto", "Erro ao buscar produto.")
		return
	}

	var req UpdateProdutoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	if req.Nome != nil {
		produto.Nome = *req.Nome
	}
	if req.Marca != nil {
		produto.Marca = *req.Marca
	}
	if req.Categoria != nil {
		produto.Categoria = *req.Categoria
	}
	if req.ColorHex != nil {
		produto.ColorHex = *req.ColorHex
	}
	if req.Qty != nil {
		produto.Qty = *req.Qty
	}
	if req.MinQty != nil {
		produto.MinQty = *req.MinQty
	}

	if err := h.db.Save(&produto).Error; err != nil {
		httperr.Internal(c, "failed_to_update_produto", "Erro ao atualizar produto.")
		return
	}

	c.JSON(http.StatusOK, produto)
}

func (h *ProdutoHandler) Delete(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	id := c.Param("id")

	var produto models.Produto
	if err := h.db.
		Where("id = ? AND user_id = ?", id, userID).
		First(&produto).Error; err != nil {

		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "produto_not_found", "Produto não encontrado.")
			return
		}
		httperr.Internal(c, "failed_to_get_produto", "Erro ao buscar produto.")
		return
	}

	if err := h.db.Delete(&produto).Error; err != nil {
		httperr.Internal(c, "failed_to_delete_produto", "Erro ao excluir produto.")
		return
	}

	c.Status(http.StatusNoContent)
}
