package http

import (
	"crypto/subtle"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/dventura/autogest-api/internal/application/dto"
	"github.com/dventura/autogest-api/internal/application/usecase"
)

// SubscriptionHandler expone el estado de suscripción y el endpoint interno
// que aplica los eventos del proveedor de pagos.
type SubscriptionHandler struct {
	uc            *usecase.SubscriptionUseCase
	webhookSecret string
}

// NewSubscriptionHandler construye el handler de suscripciones.
func NewSubscriptionHandler(uc *usecase.SubscriptionUseCase, webhookSecret string) *SubscriptionHandler {
	return &SubscriptionHandler{uc: uc, webhookSecret: webhookSecret}
}

// Status godoc
// @Summary      Estado de la suscripción del usuario
// @Tags         subscription
// @Produce      json
// @Success      200  {object}  map[string]bool
// @Router       /api/subscription/status [get]
func (h *SubscriptionHandler) Status(c *fiber.Ctx) error {
	active, err := h.uc.HasActiveSubscription(GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"active": active})
}

// Cancel godoc
// @Summary      Cancelar la suscripción propia
// @Description  El acceso se mantiene hasta el vencimiento ya pagado.
// @Tags         subscription
// @Success      204
// @Router       /api/subscription [delete]
func (h *SubscriptionHandler) Cancel(c *fiber.Ctx) error {
	if err := h.uc.Cancel(GetUserID(c)); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// webhookEvent carga mínima de un evento de suscripción del proveedor de pagos.
type webhookEvent struct {
	UserID string     `json:"user_id"`
	Event  string     `json:"event"` // activated, canceled, expired
	Expiry *time.Time `json:"expiry"`
}

// Webhook aplica un evento de suscripción. Se autentica con el secreto
// compartido del proveedor (header X-Webhook-Secret); la verificación de firma
// nativa del proveedor queda en la pasarela.
// POST /api/subscription/webhook
func (h *SubscriptionHandler) Webhook(c *fiber.Ctx) error {
	if h.webhookSecret == "" ||
		subtle.ConstantTimeCompare([]byte(c.Get("X-Webhook-Secret")), []byte(h.webhookSecret)) != 1 {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "secreto inválido"})
	}
	var ev webhookEvent
	if err := c.BodyParser(&ev); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if ev.UserID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "user_id es requerido"})
	}

	var err error
	switch ev.Event {
	case "activated":
		expiry := time.Now().AddDate(0, 1, 0)
		if ev.Expiry != nil {
			expiry = *ev.Expiry
		}
		err = h.uc.Activate(ev.UserID, expiry)
	case "canceled":
		err = h.uc.Cancel(ev.UserID)
	case "expired":
		err = h.uc.Expire(ev.UserID)
	default:
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "evento desconocido"})
	}
	if err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
