package httpapi

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/thurmanmarka/solarpos"
	"github.com/thurmanmarka/solarpos/internal/logging"
	"github.com/thurmanmarka/solarpos/internal/tracker"
)

var validate = validator.New()

// Deps are the collaborators the handlers read from. Any may be nil; the
// routes that need a nil one are not registered.
type Deps struct {
	Tracker  *tracker.Tracker
	Gatherer prometheus.Gatherer
	Logger   logging.Logger
}

// NewApp builds the Fiber app with error handling, panic recovery, request
// logging and all routes.
func NewApp(deps Deps) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "solarpos",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          10 * time.Second,
		ErrorHandler:          ErrorHandler,
	})

	app.Use(recover.New())
	if deps.Logger != nil {
		app.Use(requestLogger(deps.Logger))
	}

	RegisterRoutes(app, deps)
	return app
}

// ErrorHandler renders errors as {"error": true, "message": ...}.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
	}
	return c.Status(code).JSON(fiber.Map{
		"error":   true,
		"message": err.Error(),
	})
}

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, deps Deps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": "solarpos",
		})
	})

	if deps.Gatherer != nil {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{})))
	}

	v1 := app.Group("/api/v1")

	v1.Get("/position", func(c *fiber.Ctx) error {
		in, err := parsePositionQuery(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		s, err := solarpos.Solve(in)
		resp := newPositionResponse(s, c.QueryBool("detail"))
		if err != nil {
			code := statusFor(err)
			if code != fiber.StatusUnprocessableEntity {
				return fiber.NewError(code, err.Error())
			}
			resp.Error = true
			resp.Message = err.Error()
			return c.Status(code).JSON(resp)
		}
		return c.JSON(resp)
	})

	if deps.Tracker == nil {
		return
	}

	v1.Get("/sites", func(c *fiber.Ctx) error {
		out := make([]siteResponse, 0, len(deps.Tracker.Sites()))
		for _, site := range deps.Tracker.Sites() {
			out = append(out, newSiteResponse(site, deps.Tracker.Store()))
		}
		return c.JSON(out)
	})

	v1.Get("/sites/:name", func(c *fiber.Ctx) error {
		name := c.Params("name")
		for _, site := range deps.Tracker.Sites() {
			if site.Name != name {
				continue
			}
			resp := newSiteResponse(site, deps.Tracker.Store())
			if resp.Latest == nil {
				return fiber.NewError(fiber.StatusNotFound, "no sample yet for site "+name)
			}
			return c.JSON(resp)
		}
		return fiber.NewError(fiber.StatusNotFound, "unknown site "+name)
	})
}

// statusFor maps calculator errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, solarpos.ErrInvalidDate):
		return fiber.StatusBadRequest
	case errors.Is(err, solarpos.ErrDomain):
		return fiber.StatusUnprocessableEntity
	default:
		return fiber.StatusInternalServerError
	}
}

// positionQuery holds the raw query parameters of /position.
type positionQuery struct {
	Lat  string `validate:"required,numeric"`
	Lon  string `validate:"required,numeric"`
	Date string `validate:"required"` // YYYY-MM-DD
	Time string `validate:"required"` // HH:MM, local
	TZ   string `validate:"omitempty,numeric"`
}

// positionParams are the parsed values, range-checked.
type positionParams struct {
	Lat    float64 `validate:"gte=-90,lte=90"`
	Lon    float64 `validate:"gte=-180,lte=180"`
	TZ     float64 `validate:"gte=-14,lte=14"`
	Hour   int     `validate:"gte=0,lte=23"`
	Minute int     `validate:"gte=0,lte=59"`
}

func parsePositionQuery(c *fiber.Ctx) (solarpos.Input, error) {
	q := positionQuery{
		Lat:  c.Query("lat"),
		Lon:  c.Query("lon"),
		Date: c.Query("date"),
		Time: c.Query("time"),
		TZ:   c.Query("tz"),
	}
	if err := validate.Struct(q); err != nil {
		return solarpos.Input{}, err
	}

	var p positionParams
	p.Lat, _ = strconv.ParseFloat(q.Lat, 64)
	p.Lon, _ = strconv.ParseFloat(q.Lon, 64)
	if q.TZ != "" {
		p.TZ, _ = strconv.ParseFloat(q.TZ, 64)
	}

	ymd, err := splitInts(q.Date, "-", 3)
	if err != nil {
		return solarpos.Input{}, fmt.Errorf("date %q: want YYYY-MM-DD", q.Date)
	}
	hm, err := splitInts(q.Time, ":", 2)
	if err != nil {
		return solarpos.Input{}, fmt.Errorf("time %q: want HH:MM", q.Time)
	}
	p.Hour, p.Minute = hm[0], hm[1]

	if err := validate.Struct(p); err != nil {
		return solarpos.Input{}, err
	}

	return solarpos.Input{
		Year: ymd[0], Month: ymd[1], Day: ymd[2],
		Hour: p.Hour, Minute: p.Minute,
		TZ: p.TZ, Lat: p.Lat, Lon: p.Lon,
	}, nil
}

func splitInts(s, sep string, n int) ([]int, error) {
	parts := strings.Split(s, sep)
	if len(parts) != n {
		return nil, errors.New("wrong number of fields")
	}
	out := make([]int, n)
	for i, p := range parts {
		v, err := strconv.Atoi(p)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// positionResponse uses pointers so NaN outputs encode as null.
type positionResponse struct {
	Elevation *float64            `json:"elevation"`
	Azimuth   *float64            `json:"azimuth"`
	Solution  map[string]*float64 `json:"solution,omitempty"`
	Error     bool                `json:"error,omitempty"`
	Message   string              `json:"message,omitempty"`
}

func newPositionResponse(s solarpos.Solution, detail bool) positionResponse {
	resp := positionResponse{
		Elevation: finite(s.ApparentElevation),
		Azimuth:   finite(s.Azimuth),
	}
	if detail {
		resp.Solution = make(map[string]*float64)
		for _, v := range s.Values() {
			resp.Solution[v.Name] = finite(v.Value)
		}
	}
	return resp
}

type siteResponse struct {
	tracker.Site
	Latest *tracker.Sample `json:"latest"`
}

func newSiteResponse(site tracker.Site, store *tracker.Store) siteResponse {
	resp := siteResponse{Site: site}
	if s, err := store.Latest(site.Name); err == nil {
		resp.Latest = &s
	}
	return resp
}

func finite(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}
