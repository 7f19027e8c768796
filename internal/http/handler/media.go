package handler

import (
	"bytes"
	"io"
	"mime"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"mediaapi/internal/service"
)

const (
	defaultLinkExpiry = 15 * time.Minute
	maxLinkExpiry     = 7 * 24 * time.Hour
)

type uploadURLRequest struct {
	URL      string `json:"url"`
	FileName string `json:"file_name"`
}

type linkResponse struct {
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expires_at"`
}

// ListMedia lists media using limit & offset.
//
// @Summary  List media
// @Tags     media
// @Produce  json
// @Param    limit  query int false "page size" default(10)
// @Param    offset query int false "offset"    default(0)
// @Success  200 {object} service.MediaListResult
// @Router   /media [get]
func ListMedia(svc service.MediaService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit, err := strconv.Atoi(c.Query("limit", "10"))
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_LIMIT", "invalid limit")
		}
		offset, err := strconv.Atoi(c.Query("offset", "0"))
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_OFFSET", "invalid offset")
		}

		res, err := svc.List(c.UserContext(), limit, offset)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(res)
	}
}

// UploadMedia streams the raw request body into storage. The body size must be
// declared with Content-Length and is verified against the bytes received.
//
// @Summary  Upload media from the request body
// @Tags     media
// @Accept   application/octet-stream
// @Produce  json
// @Param    fileName query string true "original file name"
// @Success  201 {object} model.Media
// @Failure  400 {object} errorPayload
// @Failure  411 {object} errorPayload
// @Router   /media/upload [post]
func UploadMedia(svc service.MediaService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		fileName := c.Query("fileName")
		if fileName == "" {
			return writeError(c, fiber.StatusBadRequest, "FILE_NAME_REQUIRED", "fileName query parameter is required")
		}

		// fasthttp reports -1 for chunked and -2 for bodies without a declared length.
		size := c.Request().Header.ContentLength()
		if size < 0 {
			return writeError(c, fiber.StatusLengthRequired, "CONTENT_LENGTH_REQUIRED", "Content-Length header is required")
		}

		m, err := svc.UploadFromRequest(c.UserContext(), requestBody(c), fileName, contentType(c), int64(size))
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(m)
	}
}

// UploadMediaFromURL fetches a remote http(s) file into storage.
//
// @Summary  Upload media from a URL
// @Tags     media
// @Accept   json
// @Produce  json
// @Param    body body uploadURLRequest true "source url and optional file name"
// @Success  201 {object} model.Media
// @Failure  400 {object} errorPayload
// @Failure  422 {object} errorPayload
// @Router   /media/upload-url [post]
func UploadMediaFromURL(svc service.MediaService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req uploadURLRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}

		m, err := svc.UploadFromURL(c.UserContext(), req.URL, req.FileName)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(m)
	}
}

// GetMedia returns the metadata of a media record.
//
// @Summary  Get media
// @Tags     media
// @Produce  json
// @Param    id path string true "media id"
// @Success  200 {object} model.Media
// @Failure  404 {object} errorPayload
// @Router   /media/{id} [get]
func GetMedia(svc service.MediaService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := mediaID(c)
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		m, err := svc.Get(c.UserContext(), id)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(m)
	}
}

// GetMediaContent streams the stored bytes of a media record.
//
// @Summary  Download media content
// @Tags     media
// @Produce  octet-stream
// @Param    id path string true "media id"
// @Success  200 {file} binary
// @Router   /media/{id}/content [get]
func GetMediaContent(svc service.MediaService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := mediaID(c)
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		rc, m, err := svc.Open(c.UserContext(), id)
		if err != nil {
			return writeServiceError(c, err)
		}

		name := m.FileName
		if m.Extension != "" {
			name += "." + m.Extension
		}
		c.Set(fiber.HeaderContentType, m.MimeType)
		c.Set(fiber.HeaderContentDisposition, mime.FormatMediaType("inline", map[string]string{"filename": name}))
		// fasthttp closes rc once the body has been written.
		return c.SendStream(rc, int(m.Size))
	}
}

// GetMediaLink returns a presigned download URL.
//
// @Summary  Presigned download link
// @Tags     media
// @Produce  json
// @Param    id      path  string true  "media id"
// @Param    expires query int    false "expiry in seconds" default(900)
// @Success  200 {object} linkResponse
// @Failure  501 {object} errorPayload
// @Router   /media/{id}/link [get]
func GetMediaLink(svc service.MediaService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := mediaID(c)
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}

		expiry := defaultLinkExpiry
		if v := c.Query("expires"); v != "" {
			sec, err := strconv.Atoi(v)
			if err != nil || sec <= 0 || time.Duration(sec)*time.Second > maxLinkExpiry {
				return writeError(c, fiber.StatusBadRequest, "INVALID_EXPIRES", "expires must be between 1 second and 7 days")
			}
			expiry = time.Duration(sec) * time.Second
		}

		link, err := svc.Link(c.UserContext(), id, expiry)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(linkResponse{URL: link, ExpiresAt: time.Now().UTC().Add(expiry)})
	}
}

// DeleteMedia removes a media record and its stored object.
//
// @Summary  Delete media
// @Tags     media
// @Param    id path string true "media id"
// @Success  204
// @Failure  404 {object} errorPayload
// @Router   /media/{id} [delete]
func DeleteMedia(svc service.MediaService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := mediaID(c)
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		if err := svc.Delete(c.UserContext(), id); err != nil {
			return writeServiceError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

func mediaID(c *fiber.Ctx) (string, bool) {
	id := c.Params("id")
	if _, err := uuid.Parse(id); err != nil {
		return "", false
	}
	return id, true
}

// requestBody prefers the streamed body so large uploads are not held in memory.
func requestBody(c *fiber.Ctx) io.Reader {
	if s := c.Context().RequestBodyStream(); s != nil {
		return s
	}
	return bytes.NewReader(c.Body())
}

func contentType(c *fiber.Ctx) string {
	ct := c.Get(fiber.HeaderContentType)
	if ct == "" {
		return ""
	}
	mt, _, err := mime.ParseMediaType(ct)
	if err != nil {
		return ""
	}
	return mt
}
