package http

import (
	"io"

	"github.com/gofiber/fiber/v2"

	"github.com/dventura/autogest-api/internal/application/billing"
	"github.com/dventura/autogest-api/internal/application/cars"
	"github.com/dventura/autogest-api/internal/application/dto"
	"github.com/dventura/autogest-api/internal/domain"
	"github.com/dventura/autogest-api/internal/domain/entity"
)

// CarHandler maneja las fichas de coche, su ciclo de estados y sus documentos.
type CarHandler struct {
	uc        *cars.CarUseCase
	status    *cars.ChangeStatusUseCase
	documents *billing.DocumentUseCase
	files     fileSaver
}

// NewCarHandler construye el handler de coches.
func NewCarHandler(uc *cars.CarUseCase, status *cars.ChangeStatusUseCase, documents *billing.DocumentUseCase, files fileSaver) *CarHandler {
	return &CarHandler{uc: uc, status: status, documents: documents, files: files}
}

// Create godoc
// @Summary      Dar de alta un coche
// @Tags         cars
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateCarRequest  true  "datos del coche"
// @Success      201   {object}  dto.CarResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/cars [post]
func (h *CarHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateCarRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Make == "" || in.Model == "" || in.LicensePlate == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "make, model y license_plate son requeridos"})
	}
	var companyID *string
	if id := GetCompanyID(c); id != "" {
		companyID = &id
	}
	car, err := h.uc.Create(GetUserID(c), companyID, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(car)
}

// List godoc
// @Summary      Listar coches de la cuenta
// @Tags         cars
// @Produce      json
// @Param        limit   query  int  false  "máximo por página"
// @Param        offset  query  int  false  "desplazamiento"
// @Success      200  {object}  dto.CarListResponse
// @Router       /api/cars [get]
func (h *CarHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	page.DefaultPage()
	list, err := h.uc.List(GetUserID(c), GetCompanyID(c), page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(list)
}

// GetByID godoc
// @Summary      Detalle de un coche
// @Tags         cars
// @Produce      json
// @Param        id  path  string  true  "ID del coche"
// @Success      200  {object}  dto.CarResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/cars/{id} [get]
func (h *CarHandler) GetByID(c *fiber.Ctx) error {
	car, err := h.uc.GetByID(GetUserID(c), GetCompanyID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	if car == nil {
		return respondError(c, domain.ErrNotFound)
	}
	return c.JSON(car)
}

// Update godoc
// @Summary      Actualizar ficha de un coche
// @Tags         cars
// @Accept       json
// @Produce      json
// @Param        id    path  string                true  "ID del coche"
// @Param        body  body  dto.UpdateCarRequest  true  "campos a actualizar"
// @Success      200   {object}  dto.CarResponse
// @Router       /api/cars/{id} [put]
func (h *CarHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateCarRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	car, err := h.uc.Update(GetUserID(c), GetCompanyID(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	if car == nil {
		return respondError(c, domain.ErrNotFound)
	}
	return c.JSON(car)
}

// Delete godoc
// @Summary      Eliminar un coche
// @Tags         cars
// @Param        id  path  string  true  "ID del coche"
// @Success      204
// @Router       /api/cars/{id} [delete]
func (h *CarHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(GetUserID(c), GetCompanyID(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ChangeStatus godoc
// @Summary      Cambiar el estado de un coche
// @Description  Vendido exige sale_price y buyer y emite la factura en la misma transacción. Reservado genera el contrato de reserva.
// @Tags         cars
// @Accept       json
// @Produce      json
// @Param        id    path  string                   true  "ID del coche"
// @Param        body  body  dto.ChangeStatusRequest  true  "estado destino y carga"
// @Success      200   {object}  dto.CarResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/cars/{id}/status [put]
func (h *CarHandler) ChangeStatus(c *fiber.Ctx) error {
	var in dto.ChangeStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Status == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "status es requerido"})
	}
	car, err := h.status.ChangeStatus(c.Context(), GetUserID(c), GetCompanyID(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(car)
}

// GenerateInvoice godoc
// @Summary      Generar factura o proforma en PDF
// @Tags         cars
// @Accept       json
// @Produce      application/pdf
// @Param        id    path  string                      true  "ID del coche"
// @Param        body  body  dto.GenerateInvoiceRequest  true  "proforma, tipo IGIC, forma de pago"
// @Success      200
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/cars/{id}/invoice [post]
func (h *CarHandler) GenerateInvoice(c *fiber.Ctx) error {
	var in dto.GenerateInvoiceRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	pdfBytes, filename, err := h.documents.GenerateInvoice(c.Context(), GetUserID(c), GetCompanyID(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return sendPDF(c, filename, pdfBytes)
}

// GenerateTestDrive godoc
// @Summary      Generar autorización de prueba de vehículo en PDF
// @Tags         cars
// @Accept       json
// @Produce      application/pdf
// @Param        id    path  string               true  "ID del coche"
// @Param        body  body  dto.TestDriveRequest true  "datos del conductor"
// @Success      200
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/cars/{id}/test-drive [post]
func (h *CarHandler) GenerateTestDrive(c *fiber.Ctx) error {
	var in dto.TestDriveRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	pdfBytes, filename, err := h.documents.GenerateTestDrive(c.Context(), GetUserID(c), GetCompanyID(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return sendPDF(c, filename, pdfBytes)
}

// AddNote añade una nota al coche.
// POST /api/cars/:id/notes
func (h *CarHandler) AddNote(c *fiber.Ctx) error {
	var in dto.CreateNoteRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Content == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "content es requerido"})
	}
	note, err := h.uc.AddNote(GetUserID(c), GetCompanyID(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(note)
}

// ListNotes lista las notas del coche.
// GET /api/cars/:id/notes
func (h *CarHandler) ListNotes(c *fiber.Ctx) error {
	notes, err := h.uc.ListNotes(GetUserID(c), GetCompanyID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(notes)
}

// DeleteNote borra una nota del coche.
// DELETE /api/cars/:id/notes/:noteId
func (h *CarHandler) DeleteNote(c *fiber.Ctx) error {
	if err := h.uc.DeleteNote(GetUserID(c), GetCompanyID(c), c.Params("id"), c.Params("noteId")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// UploadDocument sube un documento o foto del coche.
// POST /api/cars/:id/documents (multipart, campo "file"; form "kind")
func (h *CarHandler) UploadDocument(c *fiber.Ctx) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "fichero 'file' requerido"})
	}
	kind := c.FormValue("kind")
	if kind == "" {
		kind = entity.DocOtros
	}
	f, err := fh.Open()
	if err != nil {
		return respondError(c, err)
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return respondError(c, err)
	}
	path, err := h.files.SaveUpload(kind, fh.Filename, data)
	if err != nil {
		return respondError(c, err)
	}
	doc, err := h.uc.AttachDocument(GetUserID(c), GetCompanyID(c), c.Params("id"), kind, path, fh.Filename)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(doc)
}

// ListDocuments lista los documentos del coche.
// GET /api/cars/:id/documents
func (h *CarHandler) ListDocuments(c *fiber.Ctx) error {
	docs, err := h.uc.ListDocuments(GetUserID(c), GetCompanyID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(docs)
}

// DeleteDocument borra un documento del coche.
// DELETE /api/cars/:id/documents/:docId
func (h *CarHandler) DeleteDocument(c *fiber.Ctx) error {
	if err := h.uc.DeleteDocument(GetUserID(c), GetCompanyID(c), c.Params("id"), c.Params("docId")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func sendPDF(c *fiber.Ctx, filename string, data []byte) error {
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(data)
}
