package handler

import (
	"github.com/gofiber/fiber/v2"

	"storeadmin/internal/http/middleware"
	"storeadmin/internal/model"
	"storeadmin/internal/service"
)

// ListProducts lists the catalog. Archived products are visible to admins only.
//
//	@Summary	List products
//	@Tags		products
//	@Produce	json
//	@Security	BearerAuth
//	@Param		search				query		string	false	"name contains"
//	@Param		category			query		string	false	"category"
//	@Param		include_archived	query		bool	false	"admins only"
//	@Param		limit				query		int		false	"page size"
//	@Param		offset				query		int		false	"page offset"
//	@Success	200					{object}	successPayload
//	@Router		/products [get]
func ListProducts(svc service.ProductService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit, offset, err := pagination(c)
		if err != nil {
			return fail(c, err)
		}
		f := model.ProductFilter{
			Search:   c.Query("search"),
			Category: c.Query("category"),
			Limit:    limit,
			Offset:   offset,
		}
		if middleware.IsAdmin(c) {
			f.IncludeArchived = c.QueryBool("include_archived")
		}
		res, err := svc.List(c.UserContext(), f)
		if err != nil {
			return fail(c, err)
		}
		return list(c, res)
	}
}

func GetProduct(svc service.ProductService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, valid := paramID(c, "id")
		if !valid {
			return notFound(c)
		}
		p, err := svc.Visible(c.UserContext(), id, middleware.IsAdmin(c))
		if err != nil {
			return fail(c, err)
		}
		return ok(c, p)
	}
}

// CreateProduct adds a product to the catalog.
//
//	@Summary	Create product
//	@Tags		products
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		body	body		service.ProductInput	true	"product"
//	@Success	201		{object}	successPayload
//	@Failure	400		{object}	errorPayload
//	@Router		/products [post]
func CreateProduct(svc service.ProductService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in service.ProductInput
		if err := bind(c, &in); err != nil {
			return fail(c, err)
		}
		p, err := svc.Create(c.UserContext(), in)
		if err != nil {
			return fail(c, err)
		}
		return created(c, p)
	}
}

func UpdateProduct(svc service.ProductService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, valid := paramID(c, "id")
		if !valid {
			return notFound(c)
		}
		var in service.ProductInput
		if err := bind(c, &in); err != nil {
			return fail(c, err)
		}
		p, err := svc.Update(c.UserContext(), id, in)
		if err != nil {
			return fail(c, err)
		}
		return ok(c, p)
	}
}

type archiveRequest struct {
	Archived *bool `json:"archived"`
}

// ArchiveProduct hides or restores a product. An empty body archives it.
func ArchiveProduct(svc service.ProductService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, valid := paramID(c, "id")
		if !valid {
			return notFound(c)
		}
		archived := true
		if len(c.Body()) > 0 {
			var req archiveRequest
			if err := bind(c, &req); err != nil {
				return fail(c, err)
			}
			if req.Archived != nil {
				archived = *req.Archived
			}
		}
		p, err := svc.Archive(c.UserContext(), id, archived)
		if err != nil {
			return fail(c, err)
		}
		return ok(c, p)
	}
}

func DeleteProduct(svc service.ProductService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, valid := paramID(c, "id")
		if !valid {
			return notFound(c)
		}
		if err := svc.Delete(c.UserContext(), id); err != nil {
			return fail(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// UploadProductImage replaces a product image (multipart/form-data, field name: file).
//
//	@Summary	Upload product image
//	@Tags		products
//	@Accept		multipart/form-data
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id		path		string	true	"product ID"
//	@Param		file	formData	file	true	"jpeg, png, webp or gif up to 4 MiB"
//	@Success	200		{object}	successPayload
//	@Failure	413		{object}	errorPayload
//	@Failure	415		{object}	errorPayload
//	@Router		/products/{id}/image [post]
func UploadProductImage(svc service.ProductService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, valid := paramID(c, "id")
		if !valid {
			return notFound(c)
		}
		up, err := formFile(c)
		if err != nil {
			return fail(c, err)
		}
		defer up.Close()

		p, err := svc.UploadImage(c.UserContext(), id, up.file, up.filename, up.contentType, up.size)
		if err != nil {
			return fail(c, err)
		}
		return ok(c, p)
	}
}

func ProductImageURL(svc service.ProductService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, valid := paramID(c, "id")
		if !valid {
			return notFound(c)
		}
		url, err := svc.ImageURL(c.UserContext(), id, middleware.IsAdmin(c))
		if err != nil {
			return fail(c, err)
		}
		return ok(c, presignedURL{URL: url, ExpiresIn: int(service.ImageURLExpiry.Seconds())})
	}
}
