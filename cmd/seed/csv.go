package main

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/MultiTienda-api/internal/application/dto"
)

func readProductsCSV(path string) ([]dto.CreateProductRequest, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return parseProducts(f)
}

// parseProducts omite la cabecera si la primera celda es "sku".
func parseProducts(r io.Reader) ([]dto.CreateProductRequest, error) {
	r, err := utf8Reader(r)
	if err != nil {
		return nil, err
	}
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	var out []dto.CreateProductRequest
	line := 0
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		line++
		if line == 1 && strings.EqualFold(strings.TrimSpace(rec[0]), "sku") {
			continue
		}
		p, err := parseRecord(rec)
		if err != nil {
			return nil, fmt.Errorf("línea %d: %w", line, err)
		}
		out = append(out, p)
	}
	return out, nil
}

func parseRecord(rec []string) (dto.CreateProductRequest, error) {
	if len(rec) < 6 {
		return dto.CreateProductRequest{}, fmt.Errorf("se esperaban al menos 6 columnas, hay %d", len(rec))
	}
	price, err := decimal.NewFromString(strings.TrimSpace(rec[3]))
	if err != nil {
		return dto.CreateProductRequest{}, fmt.Errorf("unit_price %q: %w", rec[3], err)
	}
	stock, err := strconv.Atoi(strings.TrimSpace(rec[4]))
	if err != nil {
		return dto.CreateProductRequest{}, fmt.Errorf("stock %q: %w", rec[4], err)
	}
	threshold, err := strconv.Atoi(strings.TrimSpace(rec[5]))
	if err != nil {
		return dto.CreateProductRequest{}, fmt.Errorf("reorder_threshold %q: %w", rec[5], err)
	}
	p := dto.CreateProductRequest{
		SKU:              strings.TrimSpace(rec[0]),
		Name:             strings.TrimSpace(rec[1]),
		Category:         strings.TrimSpace(rec[2]),
		UnitPrice:        price,
		CurrentStock:     stock,
		ReorderThreshold: threshold,
	}
	if len(rec) > 6 {
		p.Location = strings.TrimSpace(rec[6])
	}
	return p, nil
}

// utf8Reader decodifica ISO-8859-1 cuando el contenido no es UTF-8 válido.
func utf8Reader(r io.Reader) (io.Reader, error) {
	br := bufio.NewReader(r)
	head, err := br.Peek(4096)
	if err != nil && err != io.EOF && err != bufio.ErrBufferFull {
		return nil, err
	}
	if utf8.Valid(head) {
		return br, nil
	}
	return transform.NewReader(br, charmap.ISO8859_1.NewDecoder()), nil
}
