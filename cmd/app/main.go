package main

import (
	"context"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/fx"
	"log"
	"os"
	"solsub/cmd/fx/controllers_fx"
	"solsub/cmd/fx/db_fx"
	"solsub/cmd/fx/memcache_fx"
	"solsub/cmd/fx/plan_fx"
	"solsub/cmd/fx/rpc_fx"
	"solsub/cmd/fx/subscription_fx"
	"solsub/cmd/fx/swap_fx"
	"solsub/cmd/fx/tokensfx"
	"solsub/cmd/fx/wallet_fx"
	"solsub/internal/api/controllers"
	"solsub/pkg/middleware"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using process environment")
	}

	app := fx.New(
		db_fx.Module,
		memcache_fx.Module,
		rpc_fx.Module,
		wallet_fx.Module,
		plan_fx.Module,
		subscription_fx.Module,
		swap_fx.Module,
		tokensfx.Module,
		controllers_fx.Module,

		fx.Provide(ProvideRouter),
		fx.Invoke(StartServer),
	)

	app.Run()
}

func StartServer(lc fx.Lifecycle, engine *gin.Engine) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			port := os.Getenv("PORT")
			if port == "" {
				port = "8080"
			}
			go func() {
				log.Printf("Starting HTTP server at :%s", port)
				if err := engine.Run(":" + port); err != nil {
					log.Fatalf("Failed to start server: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Println("Stopping HTTP server")
			return nil
		},
	})
}

func ProvideRouter(
	walletController *controllers.WalletController,
	planController *controllers.PlanController,
	subscriptionController *controllers.SubscriptionController,
	swapController *controllers.SwapController,
	tokenController *controllers.TokenController,
	healthController *controllers.HealthController) *gin.Engine {

	r := gin.Default()
	r.Use(middleware.TraceIDMiddleware())
	r.Use(middleware.CORSMiddleware())

	RegisterRoutes(r, walletController, planController, subscriptionController, swapController, tokenController, healthController)

	return r
}

func RegisterRoutes(r *gin.Engine,
	walletController *controllers.WalletController,
	planController *controllers.PlanController,
	subscriptionController *controllers.SubscriptionController,
	swapController *controllers.SwapController,
	tokenController *controllers.TokenController,
	healthController *controllers.HealthController) {

	r.GET("/health", healthController.Check)

	walletGroup := r.Group("/wallet")
	walletGroup.POST("/connect", walletController.Connect)

	walletAuthed := walletGroup.Group("", middleware.JWTAuthMiddleware())
	walletAuthed.GET("/session", walletController.GetSession)
	walletAuthed.POST("/disconnect", walletController.Disconnect)
	walletAuthed.GET("/balance", walletController.GetBalance)

	planGroup := r.Group("/plans")
	planGroup.GET("", planController.ListPlans)
	planGroup.GET("/:code", planController.GetPlanByCode)

	subscriptionGroup := r.Group("/subscriptions", middleware.JWTAuthMiddleware())
	subscriptionGroup.POST("", subscriptionController.Create)
	subscriptionGroup.GET("", subscriptionController.List)
	subscriptionGroup.GET("/:id", subscriptionController.Get)
	subscriptionGroup.POST("/:id/cancel", subscriptionController.Cancel)
	subscriptionGroup.POST("/:id/payments", subscriptionController.RecordPayment)
	subscriptionGroup.GET("/:id/payments", subscriptionController.ListPayments)

	swapGroup := r.Group("/swap")
	swapGroup.GET("/quote", swapController.GetQuote)
	swapGroup.POST("", middleware.JWTAuthMiddleware(), swapController.CreateSwap)

	r.GET("/tokens", tokenController.ListTokens)
}
