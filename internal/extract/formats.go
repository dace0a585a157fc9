package extract

import (
	"fmt"
	"os"
	"strings"

	"github.com/gen2brain/go-fitz"
	"github.com/tidwall/gjson"
	"github.com/xuri/excelize/v2"
)

// readPDF pulls the embedded text layer of every page. Scanned PDFs without
// a text layer come back unsupported.
func readPDF(path string) Result {
	doc, err := fitz.New(path)
	if err != nil {
		return unsupported("pdf", fmt.Errorf("open pdf: %w", err))
	}
	defer doc.Close()

	var pages []string
	for n := 0; n < doc.NumPage(); n++ {
		pageText, err := doc.Text(n)
		if err != nil {
			return unsupported("pdf", fmt.Errorf("page %d: %w", n+1, err))
		}
		if t := strings.TrimSpace(pageText); t != "" {
			pages = append(pages, t)
		}
	}
	if len(pages) == 0 {
		return unsupported("pdf", fmt.Errorf("pdf has no text layer"))
	}
	return text("pdf", strings.Join(pages, "\n\n"))
}

func readXLSX(path string) Result {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return unsupported("xlsx", fmt.Errorf("open xlsx: %w", err))
	}
	defer f.Close()

	var lines []string
	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil {
			return unsupported("xlsx", fmt.Errorf("sheet %s: %w", sheet, err))
		}
		for _, row := range rows {
			line := strings.TrimRight(strings.Join(row, "\t"), "\t")
			if line != "" {
				lines = append(lines, line)
			}
		}
	}
	return text("xlsx", strings.Join(lines, "\n"))
}

// readNotebook concatenates the source of every notebook cell.
func readNotebook(path string) Result {
	data, err := os.ReadFile(path)
	if err != nil {
		return readError(err)
	}
	if !gjson.ValidBytes(data) {
		return unsupported("ipynb", fmt.Errorf("notebook is not valid json"))
	}
	cells := gjson.GetBytes(data, "cells")
	if !cells.IsArray() {
		return unsupported("ipynb", fmt.Errorf("notebook has no cells"))
	}

	var blocks []string
	cells.ForEach(func(_, cell gjson.Result) bool {
		src := cell.Get("source")
		var b strings.Builder
		if src.IsArray() {
			for _, line := range src.Array() {
				b.WriteString(line.String())
			}
		} else {
			b.WriteString(src.String())
		}
		if s := strings.TrimSpace(b.String()); s != "" {
			blocks = append(blocks, s)
		}
		return true
	})
	return text("ipynb", strings.Join(blocks, "\n\n"))
}
