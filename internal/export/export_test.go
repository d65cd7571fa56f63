// Copyright (c) 2026 BuyPy Team
// BuyPy Backoffice - shop administration console
// This source code is licensed under the MIT license found in the LICENSE file.

package export

import (
	"bytes"
	"encoding/csv"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/buypy/backoffice/internal/model"
	"github.com/klauspost/compress/zstd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleOrders() []model.OrderSummary {
	at := time.Date(2024, 5, 1, 14, 30, 0, 0, time.UTC)
	return []model.OrderSummary{
		{ID: 11, CustomerID: 2, CardHolderName: "RUI COSTA", OrderedAt: at, Status: "open"},
		{ID: 12, CustomerID: 1, CardHolderName: "Silva, Ana", OrderedAt: at.Add(time.Hour), Status: "shipped"},
	}
}

func readCSV(t *testing.T, data []byte) [][]string {
	t.Helper()
	recs, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)
	return recs
}

func TestWriteOrdersCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteOrdersCSV(&buf, sampleOrders()))

	recs := readCSV(t, buf.Bytes())
	require.Len(t, recs, 3)
	assert.Equal(t, orderHeader, recs[0])
	assert.Equal(t, []string{"11", "2", "RUI COSTA", "2024-05-01 14:30:00", "open"}, recs[1])
	assert.Equal(t, "Silva, Ana", recs[2][2], "commas are quoted, not split")
}

func TestWriteOrdersCSV_HeaderOnly(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteOrdersCSV(&buf, nil))
	assert.Len(t, readCSV(t, buf.Bytes()), 1)
}

func TestOrdersToFile_Plain(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "orders.csv")
	n, err := OrdersToFile(path, sampleOrders())
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Len(t, readCSV(t, data), 3)
}

func TestOrdersToFile_Zstd(t *testing.T) {
	path := filepath.Join(t.TempDir(), "orders.csv.zst")
	_, err := OrdersToFile(path, sampleOrders())
	require.NoError(t, err)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	dec, err := zstd.NewReader(nil)
	require.NoError(t, err)
	defer dec.Close()
	plain, err := dec.DecodeAll(raw, nil)
	require.NoError(t, err)

	recs := readCSV(t, plain)
	require.Len(t, recs, 3)
	assert.Equal(t, "12", recs[2][0])
}

func TestWriteFileAtomic_FailureKeepsPreviousFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "orders.csv")
	require.NoError(t, os.WriteFile(path, []byte("previous export\n"), 0o600))

	err := writeFileAtomic(path, func(w io.Writer) error {
		_, _ = w.Write([]byte("order_id,cust"))
		return errors.New("disk full")
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "previous export\n", string(data))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temporary file is left behind")
}

func TestWriteFileAtomic_FailureCreatesNothing(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "orders.csv.zst")

	err := writeFileAtomic(path, func(io.Writer) error { return errors.New("boom") })
	require.Error(t, err)

	_, statErr := os.Stat(path)
	assert.ErrorIs(t, statErr, os.ErrNotExist)
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestOrdersToFile_ReplacesExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "orders.csv")
	require.NoError(t, os.WriteFile(path, []byte("stale\n"), 0o644))

	_, err := OrdersToFile(path, sampleOrders())
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Len(t, readCSV(t, data), 3)
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestCreateFile_PlainAndCompressed(t *testing.T) {
	dir := t.TempDir()

	plain, err := CreateFile(filepath.Join(dir, "a.csv"))
	require.NoError(t, err)
	_, isFile := plain.(*os.File)
	assert.True(t, isFile)
	require.NoError(t, plain.Close())

	packed, err := CreateFile(filepath.Join(dir, "sub", "a.CSV.ZST"))
	require.NoError(t, err)
	_, isZstd := packed.(*zstdFile)
	assert.True(t, isZstd, "suffix match ignores case")
	require.NoError(t, packed.Close())
}
