package controller

import (
	"fmt"
	"os"
	"path/filepath"

	"rag-assistant-be/internal/dto"
	"rag-assistant-be/internal/pkg/serverutils"
	"rag-assistant-be/internal/service"
	"rag-assistant-be/pkg/loader"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IDocumentController interface {
	RegisterRoutes(r fiber.Router)
	Upload(ctx *fiber.Ctx) error
	List(ctx *fiber.Ctx) error
}

type documentController struct {
	ragService service.IRagService
	uploadDir  string
}

func NewDocumentController(ragService service.IRagService, uploadDir string) IDocumentController {
	return &documentController{
		ragService: ragService,
		uploadDir:  uploadDir,
	}
}

func (c *documentController) RegisterRoutes(r fiber.Router) {
	r.Post("/upload", c.Upload)
	r.Get("/documents/:sessionId", c.List)
}

func (c *documentController) Upload(ctx *fiber.Ctx) error {
	form, err := ctx.MultipartForm()
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Multipart form is required")
	}

	fileHeaders := form.File["files"]
	if len(fileHeaders) == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "At least one file is required")
	}

	if err := os.MkdirAll(c.uploadDir, 0o755); err != nil {
		return err
	}

	files := make([]loader.UploadedFile, len(fileHeaders))
	for i, header := range fileHeaders {
		// Stored name is unique per upload; the original name survives in
		// the document metadata.
		storedName := fmt.Sprintf("%s_%s", uuid.NewString(), filepath.Base(header.Filename))
		storedPath := filepath.Join(c.uploadDir, storedName)
		if err := ctx.SaveFile(header, storedPath); err != nil {
			return err
		}
		files[i] = loader.UploadedFile{Name: header.Filename, Path: storedPath}
	}

	if _, err := c.ragService.IngestDocuments(ctx.Context(), files); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Documents uploaded", dto.UploadResponse{
		SessionId: c.ragService.CurrentSessionId(),
		Files:     len(files),
	}))
}

func (c *documentController) List(ctx *fiber.Ctx) error {
	sessionId := ctx.Params("sessionId")

	metas, err := c.ragService.GetDocumentNames(ctx.Context(), sessionId)
	if err != nil {
		return err
	}

	documents := make([]dto.DocumentResponse, len(metas))
	for i, m := range metas {
		documents[i] = dto.DocumentResponse{FileName: m.FileName, FilePath: m.FilePath}
	}

	return ctx.JSON(serverutils.SuccessResponse("Session documents", dto.ListDocumentsResponse{
		Documents: documents,
	}))
}
