package handlers

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/bson"

	"linkconnect/internal/dto"
	"linkconnect/internal/services"
)

var validate = validator.New()

// parseBody decodes and validates the request body. Validation failures get
// the field-level message so clients can tell what was wrong.
func parseBody(c *fiber.Ctx, out any) error {
	if err := c.BodyParser(out); err != nil {
		return services.NewValidation("invalid request body")
	}
	if err := validate.Struct(out); err != nil {
		return services.NewValidation(err.Error())
	}
	return nil
}

// parseID reads a 24-hex ObjectID path parameter; malformed ids become a 400
// without touching the database.
func parseID(c *fiber.Ctx, param string) (bson.ObjectID, error) {
	id, err := bson.ObjectIDFromHex(c.Params(param))
	if err != nil {
		return bson.ObjectID{}, services.NewValidation("invalid id: " + c.Params(param))
	}
	return id, nil
}

// fail maps business errors to their status and everything else to a generic
// 500 with the cause logged.
func fail(c *fiber.Ctx, log zerolog.Logger, err error) error {
	if svcErr, ok := services.AsError(err); ok {
		return c.Status(svcErr.Status).JSON(dto.Error(svcErr.Message))
	}
	log.Error().Err(err).Str("path", c.Path()).Msg("request failed")
	return c.Status(fiber.StatusInternalServerError).JSON(dto.Error("internal server error"))
}
