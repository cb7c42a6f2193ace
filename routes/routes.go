package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dailyudhari/udhari-backend/config"
	"github.com/dailyudhari/udhari-backend/handlers"
	"github.com/dailyudhari/udhari-backend/middleware"
	"github.com/dailyudhari/udhari-backend/repository"
	"github.com/dailyudhari/udhari-backend/services"
)

// SetupRoutes builds the service graph and registers all API routes
func SetupRoutes(router *gin.Engine, cfg *config.Config) {
	userRepo := repository.NewUserRepository()
	groupRepo := repository.NewGroupRepository()
	expenseRepo := repository.NewExpenseRepository()
	settlementRepo := repository.NewSettlementRepository()

	splitService := services.NewSplitService()
	authService := services.NewAuthService(userRepo, groupRepo, cfg.Auth.JWTSecret, cfg.Auth.TokenDuration)
	expenseService := services.NewExpenseService(expenseRepo, groupRepo, splitService)
	balanceService := services.NewBalanceService(expenseRepo, settlementRepo, userRepo)
	settlementService := services.NewSettlementService(settlementRepo, groupRepo, userRepo)
	simplifyService := services.NewSimplifyService(groupRepo, expenseRepo, settlementRepo)
	groupService := services.NewGroupService(groupRepo, userRepo)
	exportService := services.NewExportService(groupRepo, expenseRepo, settlementRepo)

	handlers.InitHandlers(&handlers.HandlerServices{
		AuthService:       authService,
		ExpenseService:    expenseService,
		BalanceService:    balanceService,
		SettlementService: settlementService,
		SimplifyService:   simplifyService,
		GroupService:      groupService,
		ExportService:     exportService,
	})

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api")
	{
		api.POST("/register", handlers.Register)
		api.POST("/login", handlers.Login)

		authorized := api.Group("")
		authorized.Use(middleware.Auth(authService))
		{
			authorized.GET("/users/search", handlers.SearchUser)
			authorized.GET("/friends", handlers.GetFriends)

			authorized.POST("/expenses", handlers.AddExpense)
			authorized.GET("/expenses", handlers.ListExpenses)
			authorized.GET("/balances", handlers.GetBalances)

			authorized.POST("/settlements/initiate", handlers.InitiateSettlement)
			authorized.POST("/settlements/confirm", handlers.ConfirmSettlement)
			authorized.GET("/settlements/simplify", handlers.SimplifyDebts)

			authorized.POST("/groups", handlers.CreateGroup)
			authorized.GET("/groups", handlers.GetUserGroups)
			authorized.GET("/groups/:groupId/members", handlers.GetGroupMembers)
			authorized.POST("/groups/add-member", handlers.AddGroupMember)
			authorized.POST("/groups/:groupId/rotate-key", handlers.RotateSettlementKey)
			authorized.GET("/groups/:groupId/export", handlers.ExportGroup)
		}
	}
}
