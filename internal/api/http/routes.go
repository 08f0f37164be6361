package httpapi

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/i474232898/weather-logger/internal/scheduler"
	"github.com/i474232898/weather-logger/internal/store"
	"github.com/i474232898/weather-logger/internal/weather"
)

var validate = validator.New()

// RegisterRoutes wires the HTTP handlers into the Fiber app. The weather
// routes are stateless call-throughs to the provider; only /weather/latest
// reads the snapshot cached by the scheduled collection job.
func RegisterRoutes(app *fiber.App, service *weather.Service, sched *scheduler.Scheduler) {
	app.Get("/weather", func(c *fiber.Ctx) error {
		bundle, err := service.Current(c.Context())
		if err != nil {
			return fiber.NewError(fiber.StatusBadGateway, "failed to fetch current weather data")
		}
		return c.JSON(bundle)
	})

	app.Get("/weather/hourly", func(c *fiber.Ctx) error {
		bundle, err := service.Hourly(c.Context())
		if err != nil {
			return fiber.NewError(fiber.StatusBadGateway, "failed to fetch hourly weather data")
		}
		return c.JSON(bundle)
	})

	app.Get("/weather/historic", func(c *fiber.Ctx) error {
		raw, err := service.Historic(c.Context())
		if err != nil {
			return fiber.NewError(fiber.StatusBadGateway, "failed to fetch historic weather data")
		}
		c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		return c.Send(raw)
	})

	app.Get("/weather/latest", func(c *fiber.Ctx) error {
		bundle, fetchedAt, err := service.Latest()
		if err != nil {
			if errors.Is(err, store.ErrNoSnapshot) {
				return fiber.NewError(fiber.StatusNotFound, "no weather data collected yet")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "failed to read cached snapshot")
		}
		return c.JSON(fiber.Map{
			"snapshot":   bundle,
			"fetched_at": fetchedAt,
		})
	})

	app.Post("/update-frequency", func(c *fiber.Ctx) error {
		req, err := parseFrequencyQuery(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		if err := sched.UpdateInterval(req.Seconds); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}

		return c.JSON(fiber.Map{
			"message": fmt.Sprintf("Data fetch frequency updated to every %d seconds.", req.Seconds),
		})
	})
}

// frequencyQuery holds the query parameters of the update-frequency endpoint.
type frequencyQuery struct {
	Seconds int `validate:"required,gt=0"`
}

func parseFrequencyQuery(c *fiber.Ctx) (frequencyQuery, error) {
	var q frequencyQuery

	raw := c.Query("seconds")
	if raw == "" {
		return q, errors.New("seconds query parameter is required")
	}

	seconds, err := strconv.Atoi(raw)
	if err != nil {
		return q, errors.New("seconds must be an integer")
	}
	q.Seconds = seconds

	if err := validate.Struct(q); err != nil {
		return q, err
	}

	return q, nil
}
