package api

import (
	"net/http"

	toolsHandler "voice-bridge/internal/agenttools/handler"
	"voice-bridge/internal/voicecall/call"
	voiceCallHandler "voice-bridge/internal/voicecall/handler"

	"github.com/gin-gonic/gin"
)

// Limiters throttle the routes that cost money upstream. A nil limiter leaves
// its route unthrottled.
type Limiters struct {
	Outbound gin.HandlerFunc
	Messages gin.HandlerFunc
}

type API struct {
	router            *gin.RouterGroup
	voiceCallHandler  voiceCallHandler.Handler
	agentToolsHandler toolsHandler.Handler
	metricsHandler    http.Handler
	limiters          Limiters
}

func New(router *gin.RouterGroup, voiceCallHandler voiceCallHandler.Handler, agentToolsHandler toolsHandler.Handler, metricsHandler http.Handler, limiters Limiters) API {
	return API{
		router:            router,
		voiceCallHandler:  voiceCallHandler,
		agentToolsHandler: agentToolsHandler,
		metricsHandler:    metricsHandler,
		limiters:          limiters,
	}
}

func (a *API) RegisterRoutes() {
	a.Health()
	a.router.GET("/metrics", gin.WrapH(a.metricsHandler))

	apiGroup := a.router.Group("/api")
	phoneGroup := apiGroup.Group("/phone")
	{
		phoneGroup.POST("/inbound", a.voiceCallHandler.HandleInbound)
		phoneGroup.POST("/outbound", limited(a.limiters.Outbound, a.voiceCallHandler.HandleOutbound)...)
		phoneGroup.GET("/outbound/twiml", a.voiceCallHandler.HandleOutboundTwiML)
		phoneGroup.POST("/outbound/twiml", a.voiceCallHandler.HandleOutboundTwiML)
		phoneGroup.GET("/media-stream/inbound", a.voiceCallHandler.HandleMediaStream(call.DirectionInbound))
		phoneGroup.GET("/media-stream/outbound", a.voiceCallHandler.HandleMediaStream(call.DirectionOutbound))
		phoneGroup.GET("/calls/:callID", a.voiceCallHandler.HandleGetCall)
	}

	// Tools the call agent invokes mid-conversation
	{
		phoneGroup.POST("/sms", limited(a.limiters.Messages, a.agentToolsHandler.HandleSendSMS)...)
		phoneGroup.POST("/payment-link", a.agentToolsHandler.HandleCreatePaymentLink)
		phoneGroup.POST("/prompts/:name", a.agentToolsHandler.HandlePreviewPrompt)
	}
}

func limited(limiter, handler gin.HandlerFunc) []gin.HandlerFunc {
	if limiter == nil {
		return []gin.HandlerFunc{handler}
	}
	return []gin.HandlerFunc{limiter, handler}
}

func (a *API) Health() {
	a.router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "ok"})
	})
}
