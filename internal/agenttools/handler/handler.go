package handler

//go:generate go run go.uber.org/mock/mockgen@latest -source=handler.go -destination=mocks_test.go -package=handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"voice-bridge/internal/agenttools/processor"
	"voice-bridge/internal/apierrors"
	"voice-bridge/internal/clients/stripe"
	"voice-bridge/internal/observability"
	"voice-bridge/internal/voicecall/agent"
	"voice-bridge/internal/voicecall/call"

	"github.com/gin-gonic/gin"
)

// ToolsService backs the tools the call agent invokes mid-conversation
type ToolsService interface {
	SendSMS(ctx context.Context, to, body string) (string, error)
	CreatePaymentLink(ctx context.Context, in processor.PaymentLinkInput) (stripe.PaymentLink, error)
	PreviewPrompt(ctx context.Context, name string, params agent.PreviewParams) (agent.PromptPreview, error)
}

type Handler struct {
	tools  ToolsService
	logger *observability.Logger
}

func New(tools ToolsService, logger *observability.Logger) Handler {
	return Handler{
		tools:  tools,
		logger: logger,
	}
}

type SMSRequest struct {
	To      string `json:"to" binding:"required,max=32"`
	Message string `json:"message" binding:"required,max=1600"`
}

type SMSResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	SID     string `json:"sid,omitempty"`
}

// PaymentLinkRequest takes the amount in major units; environment "production"
// uses the live Stripe account.
type PaymentLinkRequest struct {
	Amount      float64 `json:"amount" binding:"required,gt=0"`
	Currency    string  `json:"currency" binding:"required,len=3"`
	DebtorID    string  `json:"debtor_id" binding:"max=128"`
	CaseID      string  `json:"case_id" binding:"required,max=128"`
	Environment string  `json:"environment" binding:"omitempty,oneof=production test"`
}

type PaymentLinkResponse struct {
	PaymentURL    string `json:"payment_url"`
	PaymentLinkID string `json:"payment_link_id"`
	CaseID        string `json:"case_id"`
}

// PromptRequest is the debtor context a prompt preview is rendered with.
// DebtAmount is in the smallest currency unit.
type PromptRequest struct {
	Name        string `json:"name" binding:"max=256"`
	Language    string `json:"language" binding:"max=16"`
	CaseNumber  string `json:"case_number" binding:"max=128"`
	DebtAmount  int64  `json:"debt_amount"`
	Currency    string `json:"currency" binding:"max=3"`
	Phone       string `json:"phone" binding:"max=32"`
	Description string `json:"description" binding:"max=4000"`
	Prompt      string `json:"prompt" binding:"max=4000"`
}

// HandleSendSMS handles POST /api/phone/sms
func (h *Handler) HandleSendSMS(c *gin.Context) {
	ctx := c.Request.Context()

	var req SMSRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.ValidationError(c, err)
		return
	}

	sid, err := h.tools.SendSMS(ctx, req.To, req.Message)
	if err != nil {
		apierrors.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, SMSResponse{
		Success: true,
		Message: "SMS sent successfully",
		SID:     sid,
	})
}

// HandleCreatePaymentLink handles POST /api/phone/payment-link
func (h *Handler) HandleCreatePaymentLink(c *gin.Context) {
	ctx := c.Request.Context()

	var req PaymentLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.ValidationError(c, err)
		return
	}

	link, err := h.tools.CreatePaymentLink(ctx, processor.PaymentLinkInput{
		Amount:   req.Amount,
		Currency: req.Currency,
		DebtorID: req.DebtorID,
		CaseID:   req.CaseID,
		Live:     req.Environment == "production",
	})
	if err != nil {
		apierrors.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, PaymentLinkResponse{
		PaymentURL:    link.URL,
		PaymentLinkID: link.ID,
		CaseID:        req.CaseID,
	})
}

// HandlePreviewPrompt handles POST /api/phone/prompts/:name
func (h *Handler) HandlePreviewPrompt(c *gin.Context) {
	ctx := c.Request.Context()

	var req PromptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.ValidationError(c, err)
		return
	}

	first, last, _ := strings.Cut(strings.TrimSpace(req.Name), " ")
	preview, err := h.tools.PreviewPrompt(ctx, c.Param("name"), agent.PreviewParams{
		Record: call.ContextRecord{
			Debtor: call.Debtor{FirstName: first, LastName: last, Language: req.Language},
			Case: call.Case{
				CaseNumber:      req.CaseNumber,
				DebtAmount:      json.Number(strconv.FormatInt(req.DebtAmount, 10)),
				Currency:        req.Currency,
				CaseDescription: req.Description,
			},
		},
		Phone:  req.Phone,
		Custom: req.Prompt,
	})
	if err != nil {
		apierrors.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, preview)
}
