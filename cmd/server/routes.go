package main

import (
	"github.com/gin-gonic/gin"

	"farm-bridge.backend/internal/interfaces/http/handlers"
	"farm-bridge.backend/internal/interfaces/http/middleware"
)

type routeDeps struct {
	authHandler       *handlers.AuthHandler
	registryHandler   *handlers.RegistryHandler
	adminHandler      *handlers.AdminHandler
	aidRequestHandler *handlers.AidRequestHandler
	depositHandler    *handlers.DepositHandler
	statsHandler      *handlers.StatsHandler
	ownerAuth         gin.HandlerFunc
	metricsHandler    gin.HandlerFunc
}

func registerAPIV1Routes(r *gin.Engine, d routeDeps) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	r.GET("/metrics", d.metricsHandler)

	v1 := r.Group("/api/v1")
	{
		// Owner auth (public)
		auth := v1.Group("/auth")
		{
			auth.POST("/owner/login", d.authHandler.OwnerLogin)
			auth.POST("/owner/refresh", d.authHandler.Refresh)
		}

		// Identity registry (public)
		farmers := v1.Group("/farmers")
		{
			farmers.POST("/register", d.registryHandler.RegisterFarmer)
			farmers.GET("", d.registryHandler.ListFarmers)
			farmers.GET("/:address", d.registryHandler.GetFarmer)
			farmers.GET("/:address/registered", d.registryHandler.GetFarmerRegistered)
		}
		donors := v1.Group("/donors")
		{
			donors.POST("/register", d.registryHandler.RegisterDonor)
			donors.GET("", d.registryHandler.ListDonors)
			donors.GET("/:address", d.registryHandler.GetDonor)
			donors.GET("/:address/registered", d.registryHandler.GetDonorRegistered)
		}

		// Aid request ledger (public; callers present their address)
		requests := v1.Group("/aid-requests")
		{
			requests.POST("", d.aidRequestHandler.CreateAidRequest)
			requests.GET("", d.aidRequestHandler.ListAidRequests)
			requests.GET("/:id", d.aidRequestHandler.GetAidRequest)
			requests.POST("/:id/fund", middleware.IdempotencyMiddleware(), d.aidRequestHandler.FundAidRequest)
		}

		// Treasury deposits and balances
		v1.POST("/deposits", middleware.IdempotencyMiddleware(), d.depositHandler.SubmitDeposit)
		v1.GET("/balances/:address", d.depositHandler.GetBalance)

		// Statistics and the event log
		v1.GET("/stats", d.statsHandler.GetContractStats)
		v1.GET("/events", d.statsHandler.ListEvents)

		// Owner-only verification
		admin := v1.Group("/admin")
		admin.Use(d.ownerAuth)
		{
			admin.PUT("/farmers/:address/verify", d.adminHandler.VerifyFarmer)
			admin.PUT("/donors/:address/verify", d.adminHandler.VerifyDonor)
		}
	}
}
