package handler

import (
	"context"
	"fmt"
	"net/http"

	"mail-telegram-notifier/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// CompletedMessage is reported on a successful invocation.
const CompletedMessage = "Email check completed"

// Runner performs one invocation.
type Runner interface {
	Run(ctx context.Context) models.RunResult
}

// Response is the structured result returned to the host.
type Response struct {
	Success   bool   `json:"success"`
	Message   string `json:"message,omitempty"`
	Processed *int   `json:"processed,omitempty"`
	Error     string `json:"error,omitempty"`
}

// Invoke runs one check and converts its outcome into a response and an HTTP status code:
// 200 on success, 500 on an aborting failure. Nothing panics past Invoke.
func Invoke(ctx context.Context, runner Runner, log logrus.FieldLogger) (resp Response, status int) {
	defer func() {
		if rec := recover(); rec != nil {
			log.WithField("panic", fmt.Sprint(rec)).Error("Critical error in email check")
			resp = Response{Success: false, Error: fmt.Sprint(rec)}
			status = http.StatusInternalServerError
		}
	}()

	log.Info("Starting email check")
	result := runner.Run(ctx)

	if !result.Success {
		log.WithField("error", result.Error).Error("Email check failed")
		return Response{Success: false, Error: result.Error}, http.StatusInternalServerError
	}

	processed := result.ProcessedCount
	log.WithField("processed", processed).Info("Email check finished successfully")
	return Response{Success: true, Message: CompletedMessage, Processed: &processed}, http.StatusOK
}

// NewServer exposes Invoke over HTTP. POST / and POST /run each trigger one check.
func NewServer(runner Runner, log logrus.FieldLogger) *fiber.App {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})

	invoke := func(c *fiber.Ctx) error {
		resp, status := Invoke(c.UserContext(), runner, log)
		return c.Status(status).JSON(resp)
	}

	app.Post("/", invoke)
	app.Post("/run", invoke)
	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})

	return app
}
