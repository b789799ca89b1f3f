// Package utils provides host side helpers for loading ROM images and
// saving screenshots.
package utils

import (
	"archive/zip"
	"bytes"
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/bodgit/sevenzip"
	"github.com/ulikunitz/xz"
)

// ErrEmptyArchive is returned when an archive contains no files.
var ErrEmptyArchive = errors.New("utils: empty archive")

// LoadFile loads the given file and performs decompression if necessary.
// The compression is taken from the file extension: .gz, .xz, .zip and
// .7z are supported. Archives yield their first regular file; anything
// else is returned as is.
func LoadFile(filename string) ([]byte, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	return Decompress(filepath.Ext(filename), data)
}

// Decompress decompresses data according to the file extension ext.
func Decompress(ext string, data []byte) ([]byte, error) {
	var decoder io.Reader
	var err error
	switch strings.ToLower(ext) {
	case ".gz":
		decoder, err = gzip.NewReader(bytes.NewReader(data))
	case ".xz":
		decoder, err = xz.NewReader(bytes.NewReader(data))
	case ".zip":
		decoder, err = firstInZip(data)
	case ".7z":
		decoder, err = firstIn7z(data)
	default:
		return data, nil
	}
	if err != nil {
		return nil, fmt.Errorf("utils: decompressing %s: %w", ext, err)
	}
	if c, ok := decoder.(io.Closer); ok {
		defer c.Close()
	}

	out, err := io.ReadAll(decoder)
	if err != nil {
		return nil, fmt.Errorf("utils: decompressing %s: %w", ext, err)
	}
	return out, nil
}

func firstInZip(data []byte) (io.Reader, error) {
	r, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, err
	}
	for _, f := range r.File {
		if f.FileInfo().IsDir() {
			continue
		}
		return f.Open()
	}
	return nil, ErrEmptyArchive
}

func firstIn7z(data []byte) (io.Reader, error) {
	r, err := sevenzip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, err
	}
	for _, f := range r.File {
		if f.FileInfo().IsDir() {
			continue
		}
		return f.Open()
	}
	return nil, ErrEmptyArchive
}
