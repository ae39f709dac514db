package serverutils

import (
	"errors"

	"rag-assistant-be/internal/service"
	"rag-assistant-be/pkg/embedding"
	"rag-assistant-be/pkg/llm"
	"rag-assistant-be/pkg/rag/profile"
	"rag-assistant-be/pkg/rag/session"
	"rag-assistant-be/pkg/rag/vectorindex"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandlerMiddleware converts the typed errors of the core into HTTP
// statuses at the boundary. Handlers just return errors.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		code, message := classify(err)
		return ctx.Status(code).JSON(ErrorResponse(code, message))
	}
}

func classify(err error) (int, string) {
	// A query failure carries its cause; classify the cause so callers see
	// the real status, then fall back to the umbrella message.
	var queryErr *service.QueryProcessingError
	if errors.As(err, &queryErr) {
		if code, _ := classifyCause(queryErr.Err); code != 0 {
			return code, queryErr.Error()
		}
		return fiber.StatusInternalServerError, queryErr.Error()
	}

	if code, message := classifyCause(err); code != 0 {
		return code, message
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return fiberErr.Code, fiberErr.Message
	}

	return fiber.StatusInternalServerError, err.Error()
}

func classifyCause(err error) (int, string) {
	var profileErr *profile.ErrUnknown
	if errors.As(err, &profileErr) {
		return fiber.StatusBadRequest, profileErr.Error()
	}

	var providerErr *llm.ErrUnknownProvider
	if errors.As(err, &providerErr) {
		return fiber.StatusBadRequest, providerErr.Error()
	}

	if errors.Is(err, vectorindex.ErrNotInitialized) {
		return fiber.StatusConflict, err.Error()
	}

	if embedding.IsEmbeddingError(err) {
		return fiber.StatusBadGateway, err.Error()
	}

	if session.IsStorageError(err) {
		return fiber.StatusInternalServerError, err.Error()
	}

	return 0, ""
}
