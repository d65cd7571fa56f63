// Copyright (c) 2026 BuyPy Team
// BuyPy Backoffice - shop administration console
// This source code is licensed under the MIT license found in the LICENSE file.

// Package export writes order reports to files for offline processing.
package export // import "github.com/buypy/backoffice/internal/export"

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/buypy/backoffice/internal/model"
	"github.com/klauspost/compress/zstd"
)

// TimeLayout is used for order timestamps in exported files.
const TimeLayout = "2006-01-02 15:04:05"

// ZstdSuffix selects compressed output in CreateFile.
const ZstdSuffix = ".zst"

var orderHeader = []string{"order_id", "customer_id", "card_holder_name", "order_datetime", "status"}

// WriteOrdersCSV writes a header row and one row per order.
func WriteOrdersCSV(w io.Writer, orders []model.OrderSummary) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(orderHeader); err != nil {
		return err
	}
	for _, o := range orders {
		rec := []string{
			strconv.FormatInt(o.ID, 10),
			strconv.FormatInt(o.CustomerID, 10),
			o.CardHolderName,
			o.OrderedAt.Format(TimeLayout),
			o.Status,
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

type zstdFile struct {
	*zstd.Encoder
	f *os.File
}

func (z *zstdFile) Close() error {
	encErr := z.Encoder.Close()
	fileErr := z.f.Close()
	if encErr != nil {
		return encErr
	}
	return fileErr
}

// CreateFile creates path (mode 0600) and returns a writer for it. Paths
// ending in ".zst" are zstd-compressed. Close must be called to flush.
func CreateFile(path string) (io.WriteCloser, error) {
	if err := ensureDir(path); err != nil {
		return nil, err
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return nil, fmt.Errorf("create export file: %w", err)
	}
	return wrap(f, path)
}

func ensureDir(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create export directory: %w", err)
		}
	}
	return nil
}

// wrap adds zstd compression to f when path asks for it.
func wrap(f *os.File, path string) (io.WriteCloser, error) {
	if !strings.HasSuffix(strings.ToLower(path), ZstdSuffix) {
		return f, nil
	}
	enc, err := zstd.NewWriter(f)
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("create zstd writer: %w", err)
	}
	return &zstdFile{Encoder: enc, f: f}, nil
}

// writeFileAtomic runs write against a temporary file next to path and
// renames it into place only when write and the final flush succeed. On
// failure path is left as it was.
func writeFileAtomic(path string, write func(io.Writer) error) error {
	if err := ensureDir(path); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create export file: %w", err)
	}
	tmpName := tmp.Name()
	cleanup := func() { _ = os.Remove(tmpName) }

	w, err := wrap(tmp, path)
	if err != nil {
		cleanup()
		return err
	}
	if err := write(w); err != nil {
		_ = w.Close()
		cleanup()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := w.Close(); err != nil {
		cleanup()
		return fmt.Errorf("close %s: %w", path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		cleanup()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// OrdersToFile writes orders as CSV to path and returns the number of rows.
// A failed export leaves no partial file behind.
func OrdersToFile(path string, orders []model.OrderSummary) (int, error) {
	err := writeFileAtomic(path, func(w io.Writer) error {
		return WriteOrdersCSV(w, orders)
	})
	if err != nil {
		return 0, err
	}
	return len(orders), nil
}
