package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	domain "github.com/EsmalteStudio/nail-scheduler/internal/domain/agendamento"
	"github.com/EsmalteStudio/nail-scheduler/internal/httperr"
	"github.com/EsmalteStudio/nail-scheduler/internal/middleware"
	"github.com/EsmalteStudio/nail-scheduler/internal/models"
)

type RelatorioHandler struct {
	db *gorm.DB
}

func NewRelatorioHandler(db *gorm.DB) *RelatorioHandler {
	return &RelatorioHandler{db: db}
}

// Resumo do mês corrente: agendamentos por status, receita dos atendimentos
// concluídos, total de clientes e produtos em alerta de estoque.
func (h *RelatorioHandler) Resumo(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	now := time.Now()
	inicioMes := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	fimMes := inicioMes.AddDate(0, 1, 0)

	porStatus := map[string]int64{}
	for _, status := range []domain.Status{
		domain.StatusPending,
		domain.StatusConfirmed,
		domain.StatusDone,
		domain.StatusCancelled,
	} {
		var count int64
		if err := h.db.Model(&models.Agendamento{}).
			Where("user_id = ? AND status = ? AND data_hora >= ? AND data_hora < ?",
				userID, string(status), inicioMes, fimMes).
			Count(&count).Error; err != nil {
			httperr.Internal(c, "failed_to_build_report", "Erro ao montar relatório.")
			return
		}
		porStatus[string(status)] = count
	}

	var receita float64
	if err := h.db.Model(&models.Agendamento{}).
		Select("COALESCE(SUM(servicos.preco), 0)").
		Joins("JOIN servicos ON servicos.id = agendamentos.servico_id").
		Where("agendamentos.user_id = ? AND agendamentos.status = ? AND agendamentos.data_hora >= ? AND agendamentos.data_hora < ?",
			userID, string(domain.StatusDone), inicioMes, fimMes).
		Scan(&receita).Error; err != nil {
		httperr.Internal(c, "failed_to_build_report", "Erro ao montar relatório.")
		return
	}

	var totalClientes int64
	if err := h.db.Model(&models.Cliente{}).
		Where("user_id = ?", userID).
		Count(&totalClientes).Error; err != nil {
		httperr.Internal(c, "failed_to_build_report", "Erro ao montar relatório.")
		return
	}

	var produtosRepor int64
	if err := h.db.Model(&models.Produto{}).
		Where("user_id = ? AND qty <= min_qty", userID).
		Count(&produtosRepor).Error; err != nil {
		httperr.Internal(c, "failed_to_build_report", "Erro ao montar relatório.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"mes":                 inicioMes.Format("2006-01"),
		"agendamentos":        porStatus,
		"receita":             receita,
		"total_clientes":      totalClientes,
		"produtos_para_repor": produtosRepor,
	})
}
