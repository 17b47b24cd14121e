// Package api exposes the parsing engine over HTTP.
package api

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/smartexpense/expense-validator/internal/models"
	"github.com/smartexpense/expense-validator/internal/parser"
	"github.com/smartexpense/expense-validator/internal/report"
	"github.com/smartexpense/expense-validator/internal/store"
	"github.com/smartexpense/expense-validator/internal/writer"
)

// Handler wires the engine and store into the HTTP routes.
type Handler struct {
	Engine *parser.Engine
	Store  store.Store
}

// Register mounts the API routes on app.
func (h *Handler) Register(app *fiber.App) {
	app.Get("/api/health", h.Health)

	tx := app.Group("/api/transactions")
	tx.Post("/upload", h.Upload)
	tx.Post("/export", h.Export)
	tx.Get("/totals", h.Totals)
	tx.Get("/", h.List)
}

// Health reports liveness.
func (h *Handler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok", "engine": "fiber"})
}

// Upload parses a multipart statement file (form field "file"), persists
// the batch, and responds with the transactions plus a per-category sum.
// For PDF uploads the printed statement summary rides along when found.
// Any core failure surfaces its message verbatim in the error field.
func (h *Handler) Upload(c *fiber.Ctx) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"error": "no file uploaded; use form field 'file'"})
	}

	f, err := fh.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	txns, err := h.Engine.Parse(fh.Filename, f)
	f.Close()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if len(txns) > 0 {
		if err := h.Store.Save(c.Context(), txns); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		}
	}

	// nil marshals to JSON null, not [].
	if txns == nil {
		txns = []models.Transaction{}
	}
	resp := fiber.Map{
		"transactions": txns,
		"summary":      report.SummarizeByCategory(txns),
	}
	if strings.HasSuffix(strings.ToLower(fh.Filename), ".pdf") {
		if f2, err := fh.Open(); err == nil {
			if sum, err := h.Engine.ExtractSummary(fh.Filename, f2); err == nil && len(sum) > 0 {
				resp["statementSummary"] = sum
			}
			f2.Close()
		}
	}
	return c.JSON(resp)
}

// Export renders a posted transaction list as a CSV attachment. Nothing
// is returned when serialization fails.
func (h *Handler) Export(c *fiber.Ctx) error {
	var txns []models.Transaction
	if err := c.BodyParser(&txns); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	data, err := writer.Serialize(txns)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	c.Set(fiber.HeaderContentType, fiber.MIMEOctetStream)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+writer.AttachmentFilename+`"`)
	return c.Send(data)
}

// List returns everything in the store.
func (h *Handler) List(c *fiber.Ctx) error {
	txns, err := h.Store.ListAll(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	if txns == nil {
		txns = []models.Transaction{}
	}
	return c.JSON(txns)
}

// Totals computes debit/credit/net sums over the stored transactions,
// optionally windowed by from/to query params (ISO dates, inclusive).
func (h *Handler) Totals(c *fiber.Ctx) error {
	from, err := parseDateParam(c.Query("from"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid 'from' date; use YYYY-MM-DD"})
	}
	to, err := parseDateParam(c.Query("to"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid 'to' date; use YYYY-MM-DD"})
	}

	txns, err := h.Store.ListAll(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(report.ComputeTotals(txns, from, to))
}

func parseDateParam(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil, err
	}
	return &d, nil
}
