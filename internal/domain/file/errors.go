package file

import "fileshare/internal/domain/apperr"

var (
	ErrNotFound            = apperr.New(apperr.ErrNotFound, "file not found")
	ErrInvalidName         = apperr.New(apperr.ErrValidation, "invalid file name")
	ErrFileTooLarge        = apperr.New(apperr.ErrValidation, "file exceeds maximum allowed size")
	ErrDisallowedExtension = apperr.New(apperr.ErrValidation, "file type not allowed")
	ErrNoFiles             = apperr.New(apperr.ErrValidation, "no files selected")
	ErrNotImage            = apperr.New(apperr.ErrValidation, "file is not a supported image")
	ErrUploadFailed        = apperr.New(apperr.ErrIO, "failed to upload files")
	ErrEmptyArchive        = apperr.New(apperr.ErrNotFound, "none of the requested files exist")
)

