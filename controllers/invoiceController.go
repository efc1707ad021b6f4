package controllers

import (
	"time"

	"bizplan-backend/finance"
	"bizplan-backend/utils"

	"github.com/gofiber/fiber/v2"
)

// GetInvoices lists the plan's documents, optionally filtered via query
// params: status, type (comma-separated), from, to, min_amount, max_amount, q.
func GetInvoices(c *fiber.Ctx) error {
	mgr, err := loadManager(c)
	if err != nil {
		return err
	}

	filter := finance.InvoiceFilter{
		From:      queryDate(c, "from"),
		To:        queryDate(c, "to"),
		MinAmount: queryFloat(c, "min_amount"),
		MaxAmount: queryFloat(c, "max_amount"),
		Search:    c.Query("q"),
	}
	for _, s := range queryList(c, "status") {
		filter.Statuses = append(filter.Statuses, finance.ParseDocumentStatus(s))
	}
	for _, t := range queryList(c, "type") {
		filter.Types = append(filter.Types, finance.ParseDocumentType(t))
	}

	return c.JSON(fiber.Map{
		"invoices": mgr.FilterInvoices(filter),
		"stats":    mgr.InvoiceStats(),
		"message":  "success",
	})
}

func GetInvoice(c *fiber.Ctx) error {
	mgr, err := loadManager(c)
	if err != nil {
		return err
	}
	id := c.Params("id")
	for _, d := range mgr.Invoices() {
		if d.Id == id {
			return c.JSON(d)
		}
	}
	return fiber.NewError(fiber.StatusNotFound, "invoice not found")
}

// SaveInvoice upserts a document: a matching id replaces in place, anything
// else appends as a new record.
func SaveInvoice(c *fiber.Ctx) error {
	mgr, err := loadManager(c)
	if err != nil {
		return err
	}

	var doc finance.Document
	if err := c.BodyParser(&doc); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	saved, err := mgr.SaveInvoice(c.Context(), doc)
	if err != nil {
		return err
	}
	return c.JSON(saved)
}

func DeleteInvoice(c *fiber.Ctx) error {
	mgr, err := loadManager(c)
	if err != nil {
		return err
	}
	if err := mgr.DeleteInvoice(c.Context(), c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "success"})
}

type paymentDTO struct {
	Amount    float64   `json:"amount" validate:"required,gt=0"`
	Date      time.Time `json:"date"`
	Method    string    `json:"method"`
	Reference string    `json:"reference"`
	Note      string    `json:"note"`
}

// CreatePayment records a payment against an invoice and returns the updated
// document with its rederived status.
func CreatePayment(c *fiber.Ctx) error {
	mgr, err := loadManager(c)
	if err != nil {
		return err
	}

	var dto paymentDTO
	if err := bindAndValidate(c, &dto); err != nil {
		return err
	}
	utils.NormalizeDTO(&dto)

	payment := finance.Payment{
		Amount:    dto.Amount,
		Date:      dto.Date,
		Method:    finance.ParsePaymentMethod(dto.Method),
		Reference: dto.Reference,
		Note:      dto.Note,
	}

	doc, err := mgr.AddPayment(c.Context(), c.Params("id"), payment)
	if err != nil {
		return err
	}
	return c.JSON(doc)
}

// ListPayments returns the payment sequence of one invoice.
func ListPayments(c *fiber.Ctx) error {
	mgr, err := loadManager(c)
	if err != nil {
		return err
	}
	id := c.Params("id")
	for _, d := range mgr.Invoices() {
		if d.Id == id {
			return c.JSON(fiber.Map{
				"payments": d.Payments,
				"message":  "success",
			})
		}
	}
	return fiber.NewError(fiber.StatusNotFound, "invoice not found")
}
