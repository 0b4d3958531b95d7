package handler

import (
	"fmt"
	"mime"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	fileService "fileshare/internal/application/file"
	domain "fileshare/internal/domain/file"
	"fileshare/internal/domain/stats"
)

type FileHandler struct {
	service fileService.Service
}

func NewFileHandler(service fileService.Service) *FileHandler {
	return &FileHandler{
		service: service,
	}
}

// List handles GET /api/files
func (h *FileHandler) List(c echo.Context) error {
	files, err := h.service.ListFiles(c.Request().Context(), GetSession(c))
	if err != nil {
		return SendServiceError(c, err)
	}
	return SendSuccess(c, "", files)
}

// Upload handles POST /api/files
func (h *FileHandler) Upload(c echo.Context) error {
	form, err := c.MultipartForm()
	if err != nil {
		return SendError(c, "Failed to parse form", http.StatusBadRequest)
	}
	headers := form.File["files"]
	if len(headers) == 0 {
		return SendServiceError(c, domain.ErrNoFiles)
	}

	items := make([]domain.UploadItem, 0, len(headers))
	for _, fh := range headers {
		src, err := fh.Open()
		if err != nil {
			return SendError(c, "Failed to read uploaded file", http.StatusBadRequest)
		}
		defer src.Close()
		items = append(items, domain.UploadItem{
			Name:         fh.Filename,
			Content:      src,
			DeclaredSize: fh.Size,
		})
	}

	result, err := h.service.Upload(c.Request().Context(), GetSession(c), items)
	if err != nil {
		return SendServiceError(c, err)
	}

	if len(result.Accepted) == 0 {
		status := http.StatusBadRequest
		if allTooLarge(result.Rejected) {
			status = http.StatusRequestEntityTooLarge
		}
		return SendJSON(c, status, Response{
			Success: false,
			Message: "No files were uploaded",
			Data:    result,
		})
	}

	return SendSuccess(c, fmt.Sprintf("Uploaded %d file(s)", len(result.Accepted)), result)
}

func allTooLarge(rejected []domain.Rejection) bool {
	for _, r := range rejected {
		if r.Reason != domain.RejectTooLarge {
			return false
		}
	}
	return len(rejected) > 0
}

// Download handles GET /api/files/:name
func (h *FileHandler) Download(c echo.Context) error {
	dl, err := h.service.Download(c.Request().Context(), GetSession(c), pathParam(c, "name"))
	if err != nil {
		return SendServiceError(c, err)
	}
	return serveFile(c, dl, "attachment")
}

// Raw handles GET /api/files/:name/raw
func (h *FileHandler) Raw(c echo.Context) error {
	dl, err := h.service.View(c.Request().Context(), GetSession(c), pathParam(c, "name"))
	if err != nil {
		return SendServiceError(c, err)
	}
	return serveFile(c, dl, "inline")
}

func serveFile(c echo.Context, dl *fileService.Download, disposition string) error {
	defer dl.File.Close()

	header := c.Response().Header()
	header.Set(echo.HeaderContentDisposition,
		mime.FormatMediaType(disposition, map[string]string{"filename": dl.Entry.Name}))
	header.Set(echo.HeaderContentLength, strconv.FormatInt(dl.Entry.SizeBytes, 10))
	header.Set(echo.HeaderLastModified, dl.Entry.Modified.UTC().Format(http.TimeFormat))

	return c.Stream(http.StatusOK, dl.ContentType, dl.File)
}

// Thumbnail handles GET /api/files/:name/thumbnail?size=
func (h *FileHandler) Thumbnail(c echo.Context) error {
	size, _ := strconv.Atoi(c.QueryParam("size"))
	data, err := h.service.Thumbnail(c.Request().Context(), GetSession(c), pathParam(c, "name"), size)
	if err != nil {
		return SendServiceError(c, err)
	}
	c.Response().Header().Set("Cache-Control", "private, max-age=300")
	return c.Blob(http.StatusOK, "image/jpeg", data)
}

// Delete handles DELETE /api/files/:name
func (h *FileHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), GetSession(c), pathParam(c, "name")); err != nil {
		return SendServiceError(c, err)
	}
	return SendSuccess(c, "File deleted", nil)
}

type statRequest struct {
	Action string `json:"action" form:"action"`
}

// RecordStat handles POST /api/files/:name/stats
func (h *FileHandler) RecordStat(c echo.Context) error {
	var req statRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, "Invalid request body", http.StatusBadRequest)
	}
	action, err := stats.ParseAction(req.Action)
	if err != nil {
		return SendServiceError(c, err)
	}

	ctx, s, name := c.Request().Context(), GetSession(c), pathParam(c, "name")
	var st stats.FileStat
	switch action {
	case stats.ActionView:
		st, err = h.service.RecordView(ctx, s, name)
	case stats.ActionDownload:
		st, err = h.service.RecordDownload(ctx, s, name)
	default:
		// Uploads are only recorded by the upload itself.
		err = stats.ErrInvalidAction
	}
	if err != nil {
		return SendServiceError(c, err)
	}
	return SendSuccess(c, "", st)
}

// BulkDelete handles POST /api/files/bulk-delete
func (h *FileHandler) BulkDelete(c echo.Context) error {
	var req domain.BulkRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, "Invalid request body", http.StatusBadRequest)
	}
	if len(req.Files) == 0 {
		return SendServiceError(c, domain.ErrNoFiles)
	}

	result, err := h.service.BulkDelete(c.Request().Context(), GetSession(c), req.Files)
	if err != nil {
		return SendServiceError(c, err)
	}
	return SendSuccess(c, fmt.Sprintf("Deleted %d file(s)", result.Deleted), result)
}

// BulkDownload handles POST /api/files/bulk-download
func (h *FileHandler) BulkDownload(c echo.Context) error {
	var req domain.BulkRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, "Invalid request body", http.StatusBadRequest)
	}

	data, err := h.service.Archive(c.Request().Context(), GetSession(c), req.Files)
	if err != nil {
		return SendServiceError(c, err)
	}

	c.Response().Header().Set(echo.HeaderContentDisposition,
		mime.FormatMediaType("attachment", map[string]string{"filename": "files.zip"}))
	return c.Blob(http.StatusOK, "application/zip", data)
}
