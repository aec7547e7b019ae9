package tracker

import (
	"errors"

	"backend-waytrack/internal/workout"

	"github.com/gofiber/fiber/v2"
)

func RegisterRoutes(r fiber.Router, svc *Service) {
	r.Post("/form/open", func(c *fiber.Ctx) error {
		var body struct {
			Lat float64 `json:"lat"`
			Lng float64 `json:"lng"`
		}
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		form := svc.OpenForm(workout.Coords{Lat: body.Lat, Lng: body.Lng})
		return c.JSON(form)
	})

	r.Get("/form", func(c *fiber.Ctx) error {
		form, open := svc.Form()
		if !open {
			return fiber.NewError(fiber.StatusNotFound, "no form open")
		}
		return c.JSON(form)
	})

	r.Post("/form/cancel", func(c *fiber.Ctx) error {
		svc.CancelForm()
		return c.SendStatus(fiber.StatusNoContent)
	})

	r.Post("/form/submit", func(c *fiber.Ctx) error {
		var values FormValues
		if err := c.BodyParser(&values); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		w, err := svc.Submit(c.Context(), values)
		if err != nil {
			var verr *workout.ValidationError
			if errors.As(err, &verr) {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
					"error":  "inputs have to be positive numbers",
					"fields": verr.Fields,
				})
			}
			if errors.Is(err, workout.ErrFormHidden) {
				return fiber.NewError(fiber.StatusConflict, err.Error())
			}
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.Status(fiber.StatusCreated).JSON(w)
	})

	r.Get("/workouts", func(c *fiber.Ctx) error {
		return c.JSON(svc.Workouts())
	})

	r.Get("/workouts/:id", func(c *fiber.Ctx) error {
		w, ok := svc.Get(c.Params("id"))
		if !ok {
			return fiber.NewError(fiber.StatusNotFound, "workout not found")
		}
		return c.JSON(w)
	})

	r.Post("/workouts/:id/click", func(c *fiber.Ctx) error {
		w, err := svc.Click(c.Context(), c.Params("id"))
		if err != nil {
			if errors.Is(err, workout.ErrNotFound) {
				return fiber.NewError(fiber.StatusNotFound, err.Error())
			}
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(w)
	})

	r.Post("/workouts/:id/edit", func(c *fiber.Ctx) error {
		form, err := svc.Edit(c.Params("id"))
		if err != nil {
			return fiber.NewError(fiber.StatusNotFound, err.Error())
		}
		return c.JSON(form)
	})

	r.Delete("/workouts/:id", func(c *fiber.Ctx) error {
		if err := svc.Delete(c.Context(), c.Params("id")); err != nil {
			if errors.Is(err, workout.ErrNotFound) {
				return fiber.NewError(fiber.StatusNotFound, err.Error())
			}
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.SendStatus(fiber.StatusNoContent)
	})

	r.Post("/workouts/clear", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusAccepted).JSON(fiber.Map{"token": svc.RequestClear()})
	})

	r.Post("/workouts/clear/confirm", func(c *fiber.Ctx) error {
		var body struct {
			Token string `json:"token"`
		}
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		if err := svc.ConfirmClear(c.Context(), body.Token); err != nil {
			if errors.Is(err, workout.ErrNoPendingClear) {
				return fiber.NewError(fiber.StatusConflict, err.Error())
			}
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.SendStatus(fiber.StatusNoContent)
	})

	r.Post("/workouts/sort", func(c *fiber.Ctx) error {
		var body struct {
			Key       string `json:"key"`
			Direction string `json:"direction"`
		}
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		dir := workout.SortDirection(body.Direction)
		if dir == "" {
			dir = workout.Descending
		}
		view, err := svc.ChangeSort(c.Context(), workout.SortKey(body.Key), dir)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(view)
	})

	r.Post("/workouts/filter", func(c *fiber.Ctx) error {
		var body struct {
			Type string `json:"type"`
		}
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		kind := workout.Kind(body.Type)
		switch kind {
		case workout.KindAll, workout.KindRunning, workout.KindCycling, "":
		default:
			return fiber.NewError(fiber.StatusBadRequest, "unknown workout type")
		}
		return c.JSON(svc.ChangeFilter(kind))
	})
}
