package server

import (
	auction "auction-engine/internal/auctionService"
	handler "auction-engine/services/auction/handler"

	"github.com/gin-gonic/gin"
)

// SetupRouter configures all Gin routes for the auction engine
func SetupRouter(coordinator *auction.Coordinator) *gin.Engine {
	router := gin.New() // New router without default middleware for full control over middleware and logging

	router.Use(gin.Recovery())          // recover from panics
	router.Use(RequestLoggerMiddleware) // custom request logging

	auctionHandler := handler.NewAuctionHandler(coordinator)

	bids := router.Group("/bids")
	{
		bids.POST("", auctionHandler.SubmitBidHandler)
	}

	agents := router.Group("/agents")
	{
		agents.POST("", auctionHandler.RegisterAgentHandler)
	}

	auctions := router.Group("/auctions")
	{
		auctions.POST("", auctionHandler.ScheduleAuctionHandler)
		auctions.GET("/:auction_id", auctionHandler.GetAuctionHandler)
		auctions.GET("/:auction_id/bids", auctionHandler.GetBidsByAuctionHandler)
		auctions.GET("/:auction_id/events", auctionHandler.StreamEventsHandler)
		auctions.POST("/:auction_id/cancel", auctionHandler.CancelAuctionHandler)
	}

	return router
}
