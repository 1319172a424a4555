package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/dventura/autogest-api/internal/application/dto"
	"github.com/dventura/autogest-api/internal/domain/entity"
)

// subscriptionChecker es el contrato mínimo que necesita el middleware para
// verificar suscripciones. Lo implementa *usecase.SubscriptionUseCase; el uso
// de interfaz evita el import circular.
type subscriptionChecker interface {
	HasActiveSubscription(userID string) (bool, error)
}

// RequireSubscription devuelve un middleware Fiber que exige una cuenta de
// compraventa con suscripción activa o periodo de prueba vivo. Debe usarse
// DESPUÉS de AuthMiddleware (necesita LocalUserID).
//
// Comportamiento:
//   - 403 Forbidden → sin suscripción ni prueba vigente.
//   - 503 Service Unavailable → fallo de infraestructura al consultar la DB.
func RequireSubscription(checker subscriptionChecker) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := GetUserID(c)
		if userID == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Code:    "UNAUTHORIZED",
				Message: "user_id no encontrado en el token",
			})
		}

		// el rol suscrito del token evita la consulta en el camino caliente
		if GetRole(c) == entity.RoleTechnicianSubscribed {
			return c.Next()
		}

		active, err := checker.HasActiveSubscription(userID)
		if err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
				Code:    "SUBSCRIPTION_CHECK_FAILED",
				Message: "no se pudo verificar la suscripción, intente más tarde",
			})
		}
		if !active {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Code:    "SUBSCRIPTION_REQUIRED",
				Message: "se requiere una suscripción activa o periodo de prueba vigente",
			})
		}
		return c.Next()
	}
}
