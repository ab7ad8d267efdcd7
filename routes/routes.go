package routes

import (
	"database/sql"

	"github.com/gin-gonic/gin"

	"github.com/tripsettle/tripsettle-api/handlers"
	"github.com/tripsettle/tripsettle-api/services"
)

// SetupAuthRoutes sets up public authentication routes.
func SetupAuthRoutes(rg *gin.RouterGroup, db *sql.DB) {
	authHandler := handlers.NewAuthHandler(db)

	rg.POST("/auth/login", authHandler.Login)
	rg.POST("/auth/refresh", authHandler.Refresh)
	rg.POST("/auth/logout", authHandler.Logout)
}

// SetupTripRoutes sets up protected trip, expense, payment and balance
// routes.
func SetupTripRoutes(rg *gin.RouterGroup, db *sql.DB, ws *handlers.WSHandler) {
	tripService := services.NewTripService(db)
	expenseService := services.NewExpenseService(db)
	paymentService := services.NewPaymentService(db)
	balanceService := services.NewBalanceService(db)

	tripHandler := handlers.NewTripHandler(tripService, ws)
	expenseHandler := handlers.NewExpenseHandler(tripService, expenseService, ws)
	paymentHandler := handlers.NewPaymentHandler(tripService, paymentService, ws)
	balanceHandler := handlers.NewBalanceHandler(tripService, balanceService)

	rg.GET("/trips", tripHandler.GetTrips)
	rg.POST("/trips", tripHandler.CreateTrip)
	rg.POST("/trips/join", tripHandler.JoinTrip)
	rg.GET("/trips/:id", tripHandler.GetTrip)
	rg.PUT("/trips/:id/archive", tripHandler.ArchiveTrip)
	rg.DELETE("/trips/:id/members", tripHandler.RemoveMember)

	rg.POST("/trips/:id/subgroups", tripHandler.CreateSubGroup)
	rg.POST("/trips/:id/subgroups/:subgroup_id/join", tripHandler.JoinSubGroup)
	rg.DELETE("/trips/:id/subgroups/:subgroup_id/join", tripHandler.LeaveSubGroup)

	rg.GET("/trips/:id/expenses", expenseHandler.GetExpenses)
	rg.POST("/trips/:id/expenses", expenseHandler.CreateExpense)

	rg.GET("/trips/:id/payments", paymentHandler.GetPayments)
	rg.POST("/trips/:id/payments", paymentHandler.CreatePayment)

	rg.GET("/trips/:id/balances", balanceHandler.GetBalances)
}

// SetupProfileRoutes sets up protected profile and PromptPay routes.
func SetupProfileRoutes(rg *gin.RouterGroup, db *sql.DB) {
	profileHandler := handlers.NewProfileHandler(services.NewUserService(db))
	uploadHandler := handlers.NewUploadHandler()

	rg.GET("/profile", profileHandler.GetProfile)
	rg.POST("/profile", profileHandler.SaveProfile)
	rg.POST("/promptpay/decode", profileHandler.DecodeQR)
	rg.GET("/promptpay/qr/:user_id", profileHandler.PromptPayQR)

	rg.POST("/upload", uploadHandler.UploadSlip)
}
