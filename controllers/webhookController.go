package controllers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/Kariqs/kartdaily-api/apperrors"
	"github.com/Kariqs/kartdaily-api/payment"
	"github.com/gin-gonic/gin"
)

const msgInvalidRequest = "Invalid request"

// WebhookController receives Razorpay's asynchronous callbacks. It only checks
// and logs them; order state is changed through the pay endpoint.
type WebhookController struct {
	secret string
}

func NewWebhookController(secret string) *WebhookController {
	return &WebhookController{secret: secret}
}

// Verify handles POST /verification. The signature covers the exact request
// bytes, so the body is read raw before anything parses it.
func (c *WebhookController) Verify(ctx *gin.Context) {
	body, err := ctx.GetRawData()
	if err != nil {
		sendError(ctx, apperrors.Validation(msgInvalidRequest))
		return
	}

	signature := ctx.GetHeader(payment.SignatureHeader)
	if c.secret == "" || !payment.VerifySignature(body, signature, c.secret) {
		log.Println("Rejected payment callback with invalid signature")
		sendError(ctx, apperrors.SignatureMismatch(msgInvalidRequest))
		return
	}

	if !json.Valid(body) {
		sendError(ctx, apperrors.Validation(msgInvalidRequest))
		return
	}

	log.Println("Verified payment callback:", string(body))
	ctx.Data(http.StatusOK, "application/json; charset=utf-8", body)
}
