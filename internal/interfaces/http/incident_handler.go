package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/dventura/autogest-api/internal/application/dto"
	"github.com/dventura/autogest-api/internal/application/usecase"
)

// IncidentHandler maneja las incidencias de los coches.
type IncidentHandler struct {
	uc *usecase.IncidentUseCase
}

// NewIncidentHandler construye el handler de incidencias.
func NewIncidentHandler(uc *usecase.IncidentUseCase) *IncidentHandler {
	return &IncidentHandler{uc: uc}
}

// Create godoc
// @Summary      Abrir una incidencia
// @Tags         incidents
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateIncidentRequest  true  "coche y descripción"
// @Success      201   {object}  dto.IncidentResponse
// @Router       /api/incidents [post]
func (h *IncidentHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateIncidentRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.CarID == "" || in.Description == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "car_id y description son requeridos"})
	}
	inc, err := h.uc.Create(GetUserID(c), GetCompanyID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(inc)
}

// List godoc
// @Summary      Listar incidencias
// @Tags         incidents
// @Produce      json
// @Param        limit   query  int     false  "máximo por página"
// @Param        offset  query  int     false  "desplazamiento"
// @Param        car_id  query  string  false  "filtrar por coche"
// @Success      200  {object}  dto.IncidentListResponse
// @Router       /api/incidents [get]
func (h *IncidentHandler) List(c *fiber.Ctx) error {
	if carID := c.Query("car_id"); carID != "" {
		list, err := h.uc.ListByCar(GetUserID(c), GetCompanyID(c), carID)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(list)
	}
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	page.DefaultPage()
	list, err := h.uc.List(GetUserID(c), page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(list)
}

// Update godoc
// @Summary      Actualizar una incidencia
// @Tags         incidents
// @Accept       json
// @Produce      json
// @Param        id    path  string                     true  "ID de la incidencia"
// @Param        body  body  dto.UpdateIncidentRequest  true  "campos a actualizar"
// @Success      200   {object}  dto.IncidentResponse
// @Router       /api/incidents/{id} [put]
func (h *IncidentHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateIncidentRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	inc, err := h.uc.Update(GetUserID(c), GetCompanyID(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(inc)
}

// Resolve godoc
// @Summary      Marcar incidencia como resuelta
// @Tags         incidents
// @Produce      json
// @Param        id  path  string  true  "ID de la incidencia"
// @Success      200  {object}  dto.IncidentResponse
// @Router       /api/incidents/{id}/resolve [put]
func (h *IncidentHandler) Resolve(c *fiber.Ctx) error {
	inc, err := h.uc.Resolve(GetUserID(c), GetCompanyID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(inc)
}

// Delete godoc
// @Summary      Eliminar una incidencia
// @Tags         incidents
// @Param        id  path  string  true  "ID de la incidencia"
// @Success      204
// @Router       /api/incidents/{id} [delete]
func (h *IncidentHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(GetUserID(c), GetCompanyID(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
