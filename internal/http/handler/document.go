package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"resumatch/internal/model"
	"resumatch/internal/service"
)

// ListDocuments pages through stored documents.
//
// @Summary  List stored documents
// @Tags     documents
// @Produce  json
// @Param    kind   query string false "resume or job_description"
// @Param    limit  query int    false "page size" default(10)
// @Param    offset query int    false "offset"    default(0)
// @Success  200 {object} service.DocumentListResult
// @Failure  400 {object} errorPayload
// @Failure  422 {object} errorPayload
// @Router   /documents [get]
func ListDocuments(docSvc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit, err := strconv.Atoi(c.Query("limit", "10"))
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_LIMIT", "invalid limit")
		}
		offset, err := strconv.Atoi(c.Query("offset", "0"))
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_OFFSET", "invalid offset")
		}
		kind := model.DocumentKind(c.Query("kind"))

		res, err := docSvc.List(c.UserContext(), kind, limit, offset)
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(res)
	}
}

// UploadDocument stores a source document (multipart/form-data, fields: file, kind).
// kind defaults to resume.
//
// @Summary  Upload a resume or job description
// @Tags     documents
// @Accept   multipart/form-data
// @Produce  json
// @Param    file formData file   true  "document"
// @Param    kind formData string false "resume or job_description"
// @Success  201 {object} model.Document
// @Failure  400 {object} errorPayload
// @Failure  422 {object} errorPayload
// @Router   /documents [post]
func UploadDocument(docSvc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		fh, err := c.FormFile("file")
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_REQUIRED", "file is required")
		}

		f, err := fh.Open()
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_OPEN_ERROR", "cannot open uploaded file")
		}
		defer f.Close()

		kind := model.DocumentKind(c.FormValue("kind", string(model.KindResume)))

		doc, err := docSvc.Upload(c.UserContext(), kind, f, fh.Filename, uploadContentType(fh.Header.Get("Content-Type")), fh.Size)
		if err != nil {
			return serviceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(doc)
	}
}

// GetDocument returns stored document metadata.
//
// @Summary  Get document metadata
// @Tags     documents
// @Produce  json
// @Param    id path string true "document id"
// @Success  200 {object} model.Document
// @Failure  400 {object} errorPayload
// @Failure  404 {object} errorPayload
// @Router   /documents/{id} [get]
func GetDocument(docSvc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := documentID(c)
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		doc, err := docSvc.Get(c.UserContext(), id)
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(doc)
	}
}

// DocumentURL returns a presigned download link for the stored bytes.
//
// @Summary  Presigned download URL
// @Tags     documents
// @Produce  json
// @Param    id path string true "document id"
// @Success  200 {object} map[string]string
// @Failure  404 {object} errorPayload
// @Router   /documents/{id}/url [get]
func DocumentURL(docSvc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := documentID(c)
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		u, err := docSvc.PresignURL(c.UserContext(), id)
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(fiber.Map{"url": u})
	}
}

// DeleteDocument removes both the stored bytes and the metadata row.
//
// @Summary  Delete a document
// @Tags     documents
// @Param    id path string true "document id"
// @Success  204
// @Failure  404 {object} errorPayload
// @Router   /documents/{id} [delete]
func DeleteDocument(docSvc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := documentID(c)
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		if err := docSvc.Delete(c.UserContext(), id); err != nil {
			return serviceError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

func documentID(c *fiber.Ctx) (string, bool) {
	id := c.Params("id")
	if _, err := uuid.Parse(id); err != nil {
		return "", false
	}
	return id, true
}

func uploadContentType(ct string) string {
	if ct == "" {
		return "application/octet-stream"
	}
	return ct
}
