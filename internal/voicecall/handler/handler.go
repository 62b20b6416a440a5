package handler

//go:generate go run go.uber.org/mock/mockgen@latest -source=handler.go -destination=mocks_test.go -package=handler

import (
	"context"
	"net/http"

	"voice-bridge/internal/apierrors"
	"voice-bridge/internal/observability"
	"voice-bridge/internal/voicecall/call"
	"voice-bridge/internal/voicecall/socket"

	"github.com/gin-gonic/gin"
)

// CallService is the processor surface the phone routes need
type CallService interface {
	AnswerInbound(ctx context.Context, requestHost, from string) (string, error)
	PlaceOutboundCall(ctx context.Context, requestHost, number, prompt string) (string, error)
	OutboundTwiML(ctx context.Context, requestHost, number, prompt string) (string, error)
	ServeMediaStream(ctx context.Context, direction call.Direction, conn socket.FrameConn) error
	GetCallRecord(ctx context.Context, id string) (call.Record, error)
}

type Handler struct {
	calls  CallService
	logger *observability.Logger
}

func New(calls CallService, logger *observability.Logger) Handler {
	return Handler{
		calls:  calls,
		logger: logger,
	}
}

// OutboundCallRequest represents the HTTP request for placing an outbound call
type OutboundCallRequest struct {
	Number string `json:"number" binding:"required,max=32"`
	Prompt string `json:"prompt" binding:"max=4000"`
}

type OutboundCallResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	CallSID string `json:"callSid"`
}

const contentTypeXML = "text/xml"

// HandleInbound handles POST /api/phone/inbound
func (h *Handler) HandleInbound(c *gin.Context) {
	ctx := c.Request.Context()

	markup, err := h.calls.AnswerInbound(ctx, c.Request.Host, c.PostForm("From"))
	if err != nil {
		apierrors.RespondWithError(c, err)
		return
	}

	c.Data(http.StatusOK, contentTypeXML, []byte(markup))
}

// HandleOutbound handles POST /api/phone/outbound
func (h *Handler) HandleOutbound(c *gin.Context) {
	ctx := c.Request.Context()

	var req OutboundCallRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.ValidationError(c, err)
		return
	}

	callSID, err := h.calls.PlaceOutboundCall(ctx, c.Request.Host, req.Number, req.Prompt)
	if err != nil {
		apierrors.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, OutboundCallResponse{
		Success: true,
		Message: "Call initiated",
		CallSID: callSID,
	})
}

// HandleOutboundTwiML handles GET|POST /api/phone/outbound/twiml. The provider
// calls it once the dialed party answers.
func (h *Handler) HandleOutboundTwiML(c *gin.Context) {
	ctx := c.Request.Context()

	markup, err := h.calls.OutboundTwiML(ctx, c.Request.Host, c.Query("number"), c.Query("prompt"))
	if err != nil {
		apierrors.RespondWithError(c, err)
		return
	}

	c.Data(http.StatusOK, contentTypeXML, []byte(markup))
}

// HandleMediaStream upgrades GET /api/phone/media-stream/{direction} and runs
// the call over it until either side hangs up.
func (h *Handler) HandleMediaStream(direction call.Direction) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := observability.WithFields(c.Request.Context(),
			observability.Field{Key: "direction", Value: direction.String()},
		)

		conn, err := socket.Upgrade(c.Writer, c.Request)
		if err != nil {
			// the upgrader has already replied
			h.logger.Error(ctx, "websocket upgrade failed", err)
			return
		}
		defer conn.Close()

		h.logger.Info(ctx, "media stream connected")
		if err := h.calls.ServeMediaStream(ctx, direction, conn); err != nil {
			h.logger.Error(ctx, "media stream rejected", err)
			return
		}
		h.logger.Info(ctx, "media stream ended")
	}
}

// HandleGetCall handles GET /api/phone/calls/:callID
func (h *Handler) HandleGetCall(c *gin.Context) {
	ctx := c.Request.Context()

	rec, err := h.calls.GetCallRecord(ctx, c.Param("callID"))
	if err != nil {
		apierrors.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, rec)
}
