package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/MultiTienda-api/internal/application/dto"
	"github.com/jhoicas/MultiTienda-api/internal/domain"
	"github.com/jhoicas/MultiTienda-api/pkg/logger"
)

// ok responde {data} con el status dado.
func ok(c *fiber.Ctx, status int, data any) error {
	return c.Status(status).JSON(dto.Envelope{Data: data})
}

// okList responde {data: {items, total, page, pageSize, hasMore}}.
func okList[T any](c *fiber.Ctx, items []T) error {
	return c.Status(fiber.StatusOK).JSON(dto.Envelope{Data: dto.NewList(items)})
}

// okMessage responde {message} sin datos.
func okMessage(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusOK).JSON(dto.Envelope{Message: message})
}

// StatusFor traduce un código estable de error a status HTTP.
func StatusFor(code string) int {
	switch code {
	case domain.CodeValidation:
		return fiber.StatusBadRequest
	case domain.CodeUnauthorized:
		return fiber.StatusUnauthorized
	case domain.CodeForbidden:
		return fiber.StatusForbidden
	case domain.CodeNotFound:
		return fiber.StatusNotFound
	case domain.CodeInsufficientStock,
		domain.CodeShopLimitReached,
		domain.CodeCannotDeleteOnlyShop,
		domain.CodeDuplicate,
		domain.CodeEmailExists,
		domain.CodeNoActiveShop:
		return fiber.StatusConflict
	case domain.CodeUnavailable:
		return fiber.StatusServiceUnavailable
	default:
		return fiber.StatusInternalServerError
	}
}

// fail responde {error, message} según el error de dominio. Los errores internos no
// exponen su detalle.
func fail(c *fiber.Ctx, err error) error {
	code := domain.Code(err)
	status := StatusFor(code)
	message := err.Error()
	if status == fiber.StatusInternalServerError {
		message = "error interno del servidor"
	}
	return c.Status(status).JSON(dto.Envelope{Error: code, Message: message})
}

// ErrorHandler manejador global de Fiber: errores de ruta (404/405), panics recuperados
// y cualquier error no atendido por un handler.
func ErrorHandler(log *logger.Logger) fiber.ErrorHandler {
	if log == nil {
		log = logger.NewNop()
	}
	return func(c *fiber.Ctx, err error) error {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			code := domain.CodeInternal
			switch fe.Code {
			case fiber.StatusNotFound:
				code = domain.CodeNotFound
			case fiber.StatusBadRequest, fiber.StatusUnprocessableEntity, fiber.StatusRequestEntityTooLarge:
				code = domain.CodeValidation
			case fiber.StatusMethodNotAllowed:
				code = "METHOD_NOT_ALLOWED"
			}
			return c.Status(fe.Code).JSON(dto.Envelope{Error: code, Message: fe.Message})
		}
		if domain.Code(err) == domain.CodeInternal {
			log.Error().Err(err).Str("method", c.Method()).Str("path", c.Path()).Msg("error no controlado")
		}
		return fail(c, err)
	}
}
