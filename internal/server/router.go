package server

import (
	"net/http"

	"gallery-auctions/internal/metrics"
	handler "gallery-auctions/services/bidding/handler"
	"gallery-auctions/utils"

	"github.com/gin-gonic/gin"
)

// RouterOption customizes SetupRouter
type RouterOption func(*routerConfig)

type routerConfig struct {
	bidLimiter     *BidRateLimiter
	trustedProxies []string
}

// WithTrustedProxies lists the proxy IPs or CIDRs whose X-Forwarded-For is honored.
// Without it no proxy is trusted and the client IP is the connection's remote address.
func WithTrustedProxies(proxies []string) RouterOption {
	return func(rc *routerConfig) {
		rc.trustedProxies = proxies
	}
}

// WithBidRateLimiter throttles POST /auctions/:auction_id/bids per client
func WithBidRateLimiter(rl *BidRateLimiter) RouterOption {
	return func(rc *routerConfig) {
		rc.bidLimiter = rl
	}
}

// SetupRouter configures all Gin routes for the application.
// m may be nil, in which case no request metrics are recorded and /metrics is not served.
func SetupRouter(biddingService handler.BiddingServiceInterface, m *metrics.Metrics, opts ...RouterOption) *gin.Engine {
	var rc routerConfig
	for _, opt := range opts {
		opt(&rc)
	}

	router := gin.New() // New router without default middleware for full control over middleware and logging
	if err := router.SetTrustedProxies(rc.trustedProxies); err != nil {
		utils.Error("invalid trusted proxies, trusting none", map[string]any{"proxies": rc.trustedProxies, "error": err.Error()})
		_ = router.SetTrustedProxies(nil)
	}

	router.Use(gin.Recovery())          // recover from panics
	router.Use(RequestLoggerMiddleware) // custom request logging
	if m != nil {
		router.Use(RequestMetricsMiddleware(m))
		router.GET("/metrics", gin.WrapH(m.Handler()))
	}

	router.GET("/health", func(c *gin.Context) {
		utils.JSONResponse(c, http.StatusOK, gin.H{"state": "ok"}, "healthy")
	})

	biddingHandler := handler.NewBiddingHandler(biddingService)

	auctions := router.Group("/auctions")
	{
		auctions.POST("", biddingHandler.CreateAuctionHandler)
		auctions.GET("/:auction_id", biddingHandler.GetAuctionHandler)
		bidChain := []gin.HandlerFunc{biddingHandler.PlaceBidHandler}
		if rc.bidLimiter != nil {
			bidChain = append([]gin.HandlerFunc{rc.bidLimiter.Middleware()}, bidChain...)
		}
		auctions.POST("/:auction_id/bids", bidChain...)
		auctions.GET("/:auction_id/bids", biddingHandler.GetBidsByAuctionHandler)
		auctions.GET("/:auction_id/winning", biddingHandler.GetWinningBidHandler)
		auctions.POST("/:auction_id/settle", biddingHandler.SettleAuctionHandler)
	}

	users := router.Group("/users")
	{
		users.GET("/:user_id/auctions", biddingHandler.GetAuctionsByUserHandler)
	}

	return router
}
