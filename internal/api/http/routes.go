package httpapi

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/i474232898/temperature-heatmap/internal/chart"
	"github.com/i474232898/temperature-heatmap/internal/observability"
	"github.com/i474232898/temperature-heatmap/internal/temperature"
)

var validate = validator.New()

// Options carries the dependencies of the HTTP handlers.
type Options struct {
	Service        *temperature.Service
	Metrics        *observability.Metrics
	Logger         *slog.Logger
	Layout         chart.Layout
	RefreshTimeout time.Duration
}

type handlers struct {
	Options
}

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, opts Options) {
	if opts.RefreshTimeout <= 0 {
		opts.RefreshTimeout = 15 * time.Second
	}
	if opts.Layout == (chart.Layout{}) {
		opts.Layout = chart.DefaultLayout
	}
	h := &handlers{Options: opts}

	app.Get("/", h.page)
	app.Get("/chart.svg", h.svg)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	v1 := app.Group("/api/v1")
	v1.Get("/status", h.status)
	v1.Get("/dataset", h.dataset)
	v1.Get("/history", h.history)
	v1.Get("/cells", h.cell)
	v1.Post("/refresh", h.refresh)
}

func (h *handlers) page(c *fiber.Ctx) error {
	snap, err := h.Service.Latest()
	if err != nil {
		var buf bytes.Buffer
		if werr := chart.WriteErrorPage(&buf, h.unavailableMessage()); werr != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "failed to render page")
		}
		c.Type("html", "utf-8")
		return c.Status(fiber.StatusServiceUnavailable).Send(buf.Bytes())
	}

	body, err := h.render(snap.Dataset, "html", chart.WritePage)
	if err != nil {
		return err
	}
	c.Type("html", "utf-8")
	return c.Send(body)
}

func (h *handlers) svg(c *fiber.Ctx) error {
	snap, err := h.Service.Latest()
	if err != nil {
		return fiber.NewError(fiber.StatusServiceUnavailable, h.unavailableMessage())
	}

	body, err := h.render(snap.Dataset, "svg", chart.WriteSVG)
	if err != nil {
		return err
	}
	c.Type("svg")
	return c.Send(body)
}

func (h *handlers) render(ds temperature.Dataset, format string, write func(io.Writer, *chart.Chart) error) ([]byte, error) {
	start := time.Now()
	built := chart.Build(ds, h.Layout)

	var buf bytes.Buffer
	if err := write(&buf, built); err != nil {
		h.Logger.Error("chart render failed", "format", format, "error", err)
		return nil, fiber.NewError(fiber.StatusInternalServerError, "failed to render chart")
	}

	h.Metrics.RenderDuration.WithLabelValues(format).Observe(time.Since(start).Seconds())
	h.Metrics.CellsRendered.Add(float64(len(built.Cells)))
	return buf.Bytes(), nil
}

func (h *handlers) unavailableMessage() string {
	st := h.Service.Status()
	if st.Error != "" {
		return "temperature dataset could not be loaded: " + st.Error
	}
	return "temperature dataset is not loaded yet"
}

func (h *handlers) status(c *fiber.Ctx) error {
	return c.JSON(h.Service.Status())
}

func (h *handlers) dataset(c *fiber.Ctx) error {
	snap, err := h.Service.Latest()
	if err != nil {
		return notLoaded(err, h.unavailableMessage())
	}

	resp := fiber.Map{
		"snapshot":        snap,
		"baseTemperature": snap.Dataset.BaseTemperature,
		"monthlyVariance": snap.Dataset.MonthlyVariance,
	}
	if ext, ok := temperature.ComputeExtent(snap.Dataset); ok {
		resp["extent"] = ext
	}
	return c.JSON(resp)
}

func (h *handlers) history(c *fiber.Ctx) error {
	snaps, err := h.Service.History()
	if err != nil {
		return notLoaded(err, h.unavailableMessage())
	}
	return c.JSON(fiber.Map{"snapshots": snaps})
}

// cellQuery holds query parameters for the cell endpoint.
type cellQuery struct {
	Year  int `validate:"required,gt=0"`
	Month int `validate:"required,min=1,max=12"`
}

type cellResponse struct {
	Year        int     `json:"year"`
	Month       int     `json:"month"`
	MonthName   string  `json:"monthName"`
	Variance    float64 `json:"variance"`
	Temperature float64 `json:"temperature"`
	Temp        string  `json:"temp"`
	Fill        string  `json:"fill"`
	Tooltip     string  `json:"tooltip"`
}

func (h *handlers) cell(c *fiber.Ctx) error {
	q := cellQuery{
		Year:  c.QueryInt("year"),
		Month: c.QueryInt("month"),
	}
	if err := validate.Struct(q); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	snap, err := h.Service.Latest()
	if err != nil {
		return notLoaded(err, h.unavailableMessage())
	}

	cell, ok := chart.Build(snap.Dataset, h.Layout).FindCell(q.Year, q.Month)
	if !ok {
		return fiber.NewError(fiber.StatusNotFound, "no observation for requested year and month")
	}

	return c.JSON(cellResponse{
		Year:        cell.Year,
		Month:       cell.Month,
		MonthName:   chart.MonthName(cell.Month),
		Variance:    cell.Variance,
		Temperature: cell.Temperature,
		Temp:        cell.Temp(),
		Fill:        cell.Fill,
		Tooltip:     chart.TooltipText(cell),
	})
}

func (h *handlers) refresh(c *fiber.Ctx) error {
	if err := h.Service.LoadOnce(c.UserContext(), h.RefreshTimeout); err != nil {
		return fiber.NewError(fiber.StatusBadGateway, "refresh failed: "+err.Error())
	}
	return c.JSON(h.Service.Status())
}

func notLoaded(err error, message string) error {
	if errors.Is(err, temperature.ErrNotLoaded) {
		return fiber.NewError(fiber.StatusServiceUnavailable, message)
	}
	return fiber.NewError(fiber.StatusInternalServerError, "failed to read dataset")
}
