package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/EsmalteStudio/nail-scheduler/internal/config"
	"github.com/EsmalteStudio/nail-scheduler/internal/handlers"
	infraRepo "github.com/EsmalteStudio/nail-scheduler/internal/infra/repository"
	"github.com/EsmalteStudio/nail-scheduler/internal/middleware"
	"github.com/EsmalteStudio/nail-scheduler/internal/notify"
	ucAgendamento "github.com/EsmalteStudio/nail-scheduler/internal/usecase/agendamento"
)

func RegisterRoutes(
	r *gin.Engine,
	db *gorm.DB,
	cfg *config.Config,
	vapid *notify.VAPID,
	subs *notify.SubscriptionStore,
	dispatcher *notify.Dispatcher,
) {

	// ======================================================
	// INFRA
	// ======================================================
	agendamentoRepo := infraRepo.NewAgendamentoGormRepository(db)

	// ======================================================
	// USE CASES — AGENDAMENTOS
	// ======================================================
	createAgendamentoUC := ucAgendamento.NewCreateAgendamento(agendamentoRepo, dispatcher)
	updateAgendamentoUC := ucAgendamento.NewUpdateAgendamento(agendamentoRepo, dispatcher)
	deleteAgendamentoUC := ucAgendamento.NewDeleteAgendamento(agendamentoRepo, dispatcher)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)
	meHandler := handlers.NewMeHandler(db)
	clienteHandler := handlers.NewClienteHandler(db)
	servicoHandler := handlers.NewServicoHandler(db)
	produtoHandler := handlers.NewProdutoHandler(db)
	relatorioHandler := handlers.NewRelatorioHandler(db)
	pushHandler := handlers.NewPushHandler(vapid, subs)

	agendamentoHandler := handlers.NewAgendamentoHandler(
		agendamentoRepo,
		createAgendamentoUC,
		updateAgendamentoUC,
		deleteAgendamentoUC,
	)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// PUSH (público: o service worker se inscreve antes do login)
		// ------------------------------
		api.GET("/vapid-public-key", pushHandler.VapidPublicKey)
		api.POST("/subscribe", pushHandler.Subscribe)

		// ------------------------------
		// API PRIVADA
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.GET("/auth/me", meHandler.GetMe)

			secured.GET("/clientes", clienteHandler.List)
			secured.POST("/clientes", clienteHandler.Create)
			secured.GET("/clientes/:id", clienteHandler.Get)
			secured.PATCH("/clientes/:id", clienteHandler.Update)
			secured.DELETE("/clientes/:id", clienteHandler.Delete)
			secured.GET("/clientes/:id/agendamentos", agendamentoHandler.ListByCliente)

			secured.GET("/servicos", servicoHandler.List)
			secured.POST("/servicos", servicoHandler.Create)
			secured.PATCH("/servicos/:id", servicoHandler.Update)
			secured.DELETE("/servicos/:id", servicoHandler.Delete)

			secured.GET("/produtos", produtoHandler.List)
			secured.POST("/produtos", produtoHandler.Create)
			secured.PATCH("/produtos/:id", produtoHandler.Update)
			secured.DELETE("/produtos/:id", produtoHandler.Delete)

			secured.GET("/agendamentos", agendamentoHandler.List)
			secured.POST("/agendamentos", agendamentoHandler.Create)
			secured.PATCH("/agendamentos/:id", agendamentoHandler.Update)
			secured.DELETE("/agendamentos/:id", agendamentoHandler.Delete)

			secured.GET("/relatorios/resumo", relatorioHandler.Resumo)
		}
	}
}
