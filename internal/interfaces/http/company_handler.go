package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/dventura/autogest-api/internal/application/dto"
	"github.com/dventura/autogest-api/internal/application/usecase"
)

// CompanyHandler maneja los equipos, sus miembros y las invitaciones.
type CompanyHandler struct {
	uc          *usecase.CompanyUseCase
	invitations *usecase.InvitationUseCase
}

// NewCompanyHandler construye el handler de equipos.
func NewCompanyHandler(uc *usecase.CompanyUseCase, invitations *usecase.InvitationUseCase) *CompanyHandler {
	return &CompanyHandler{uc: uc, invitations: invitations}
}

// Create godoc
// @Summary      Crear equipo
// @Tags         company
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateCompanyRequest  true  "nombre"
// @Success      201   {object}  dto.CompanyResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/company [post]
func (h *CompanyHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateCompanyRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	company, err := h.uc.Create(GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(company)
}

// Get godoc
// @Summary      Equipo del usuario autenticado
// @Tags         company
// @Produce      json
// @Success      200  {object}  dto.CompanyResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/company [get]
func (h *CompanyHandler) Get(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "no perteneces a ningún equipo"})
	}
	company, err := h.uc.Get(companyID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(company)
}

// Members godoc
// @Summary      Miembros del equipo
// @Tags         company
// @Produce      json
// @Success      200  {array}  dto.MemberResponse
// @Router       /api/company/members [get]
func (h *CompanyHandler) Members(c *fiber.Ctx) error {
	members, err := h.uc.Members(GetCompanyID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(members)
}

// UpdatePermissions godoc
// @Summary      Cambiar permisos de un miembro
// @Tags         company
// @Accept       json
// @Param        id    path  string                        true  "ID del miembro"
// @Param        body  body  dto.UpdatePermissionsRequest  true  "flags"
// @Success      204
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/company/members/{id}/permissions [put]
func (h *CompanyHandler) UpdatePermissions(c *fiber.Ctx) error {
	var in dto.UpdatePermissionsRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.uc.UpdatePermissions(GetUserID(c), GetCompanyID(c), c.Params("id"), in); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Expel godoc
// @Summary      Expulsar a un miembro del equipo
// @Tags         company
// @Param        id  path  string  true  "ID del miembro"
// @Success      204
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/company/members/{id} [delete]
func (h *CompanyHandler) Expel(c *fiber.Ctx) error {
	if err := h.uc.Expel(GetUserID(c), GetCompanyID(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Leave godoc
// @Summary      Abandonar el equipo
// @Tags         company
// @Success      204
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/company/leave [post]
func (h *CompanyHandler) Leave(c *fiber.Ctx) error {
	if err := h.uc.Leave(GetUserID(c), GetCompanyID(c)); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Invite godoc
// @Summary      Invitar por email al equipo
// @Description  Si el invitador aún no tiene equipo, se crea uno implícitamente.
// @Tags         company
// @Accept       json
// @Produce      json
// @Param        body  body  dto.InviteRequest  true  "email del invitado"
// @Success      201   {object}  dto.InvitationResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/company/invitations [post]
func (h *CompanyHandler) Invite(c *fiber.Ctx) error {
	var in dto.InviteRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Email == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "email es requerido"})
	}
	inv, err := h.invitations.Invite(GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(inv)
}

// ListInvitations godoc
// @Summary      Listar invitaciones del equipo
// @Tags         company
// @Produce      json
// @Success      200  {array}  dto.InvitationResponse
// @Router       /api/company/invitations [get]
func (h *CompanyHandler) ListInvitations(c *fiber.Ctx) error {
	list, err := h.invitations.List(GetCompanyID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(list)
}

// RevokeInvitation godoc
// @Summary      Retirar una invitación pendiente
// @Tags         company
// @Param        id  path  string  true  "ID de la invitación"
// @Success      204
// @Router       /api/company/invitations/{id} [delete]
func (h *CompanyHandler) RevokeInvitation(c *fiber.Ctx) error {
	if err := h.invitations.Revoke(GetCompanyID(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// AcceptInvitation godoc
// @Summary      Aceptar una invitación por token
// @Tags         company
// @Param        token  path  string  true  "token de la invitación"
// @Success      204
// @Failure      410  {object}  dto.ErrorResponse
// @Router       /api/invitations/{token}/accept [post]
func (h *CompanyHandler) AcceptInvitation(c *fiber.Ctx) error {
	if err := h.invitations.Accept(GetUserID(c), c.Params("token")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
