package handler

import (
	"mime"

	"github.com/gofiber/fiber/v2"

	"storeadmin/internal/http/middleware"
	"storeadmin/internal/service"
)

// ListDocuments lists an organization's documents with limit & offset.
func ListDocuments(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		orgID, valid := paramID(c, "id")
		if !valid {
			return notFound(c)
		}
		limit, offset, err := pagination(c)
		if err != nil {
			return fail(c, err)
		}
		res, err := svc.List(c.UserContext(), middleware.UserID(c), orgID, limit, offset)
		if err != nil {
			return fail(c, err)
		}
		return list(c, res)
	}
}

// UploadDocument stores a document for an organization (multipart/form-data, field name: file).
//
//	@Summary	Upload document
//	@Tags		documents
//	@Accept		multipart/form-data
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id		path		string	true	"organization ID"
//	@Param		file	formData	file	true	"pdf or image up to 10 MiB"
//	@Success	201		{object}	successPayload
//	@Failure	413		{object}	errorPayload
//	@Failure	415		{object}	errorPayload
//	@Router		/organizations/{id}/documents [post]
func UploadDocument(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		orgID, valid := paramID(c, "id")
		if !valid {
			return notFound(c)
		}
		up, err := formFile(c)
		if err != nil {
			return fail(c, err)
		}
		defer up.Close()

		doc, err := svc.Upload(c.UserContext(), middleware.UserID(c), orgID, up.file, up.filename, up.contentType, up.size)
		if err != nil {
			return fail(c, err)
		}
		return created(c, doc)
	}
}

func GetDocument(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		orgID, valid := paramID(c, "id")
		if !valid {
			return notFound(c)
		}
		id, valid := paramID(c, "docId")
		if !valid {
			return notFound(c)
		}
		doc, err := svc.Get(c.UserContext(), middleware.UserID(c), orgID, id)
		if err != nil {
			return fail(c, err)
		}
		return ok(c, doc)
	}
}

func DeleteDocument(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		orgID, valid := paramID(c, "id")
		if !valid {
			return notFound(c)
		}
		id, valid := paramID(c, "docId")
		if !valid {
			return notFound(c)
		}
		if err := svc.Delete(c.UserContext(), middleware.UserID(c), orgID, id); err != nil {
			return fail(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// DocumentURL returns a short-lived download link.
func DocumentURL(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		orgID, valid := paramID(c, "id")
		if !valid {
			return notFound(c)
		}
		id, valid := paramID(c, "docId")
		if !valid {
			return notFound(c)
		}
		url, err := svc.DownloadURL(c.UserContext(), middleware.UserID(c), orgID, id)
		if err != nil {
			return fail(c, err)
		}
		return ok(c, presignedURL{URL: url, ExpiresIn: int(service.DownloadURLExpiry.Seconds())})
	}
}

// DocumentContent streams the stored file through the API.
func DocumentContent(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		orgID, valid := paramID(c, "id")
		if !valid {
			return notFound(c)
		}
		id, valid := paramID(c, "docId")
		if !valid {
			return notFound(c)
		}
		doc, rc, err := svc.Open(c.UserContext(), middleware.UserID(c), orgID, id)
		if err != nil {
			return fail(c, err)
		}
		c.Set(fiber.HeaderContentType, doc.ContentType)
		c.Set(fiber.HeaderContentDisposition, mime.FormatMediaType("attachment", map[string]string{"filename": doc.OriginalName}))
		return c.SendStream(rc, int(doc.Size))
	}
}
