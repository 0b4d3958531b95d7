// Package archive builds in-memory ZIP bundles of shared files.
package archive

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
)

// Opener resolves an archive member to an open file.
type Opener func(name string) (*os.File, error)

// Build writes each named file into a Deflate-compressed ZIP held in memory.
// Names are used verbatim as flat entry names. Members that fail to open are
// skipped and reported in the returned list.
func Build(ctx context.Context, names []string, open Opener) ([]byte, []string, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	var included []string
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			zw.Close()
			return nil, nil, err
		}

		f, err := open(name)
		if err != nil {
			continue
		}
		err = addFile(zw, f, name)
		f.Close()
		if err != nil {
			zw.Close()
			return nil, nil, err
		}
		included = append(included, name)
	}

	if err := zw.Close(); err != nil {
		return nil, nil, fmt.Errorf("failed to close zip writer: %w", err)
	}
	return buf.Bytes(), included, nil
}

func addFile(zw *zip.Writer, file *os.File, name string) error {
	info, err := file.Stat()
	if err != nil {
		return fmt.Errorf("failed to stat file: %w", err)
	}

	header, err := zip.FileInfoHeader(info)
	if err != nil {
		return fmt.Errorf("failed to create zip header: %w", err)
	}
	header.Name = name
	header.Method = zip.Deflate

	writer, err := zw.CreateHeader(header)
	if err != nil {
		return fmt.Errorf("failed to create zip entry: %w", err)
	}

	if _, err := io.Copy(writer, file); err != nil {
		return fmt.Errorf("failed to write file to zip: %w", err)
	}
	return nil
}
