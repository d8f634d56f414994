package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/xuri/excelize/v2"

	"book-catalog/internal/domains/book/model"
	"book-catalog/internal/shared/pagination"
	"book-catalog/internal/shared/utils"
)

const exportSheet = "Books"

var exportHeaders = []string{
	"ID",
	"ISBN",
	"Title",
	"Authors",
	"Language",
	"Publication Year",
	"Publisher",
	"Print Length",
	"Genre",
	"Cover URL",
}

// ExportToExcel writes the whole catalog to a single-sheet workbook,
// one row per book in id order. The caller closes the file.
func (s *BookService) ExportToExcel(ctx context.Context) (*excelize.File, error) {
	// 1. Đọc toàn bộ books, từng trang MaxSize
	var books []model.Book
	for pageNo := 0; ; pageNo++ {
		page, err := s.repo.FindAll(ctx, pagination.NewPageRequest(pageNo, pagination.MaxSize))
		if err != nil {
			return nil, fmt.Errorf("failed to list books: %w", err)
		}
		books = append(books, page.Content...)
		if pageNo+1 >= page.TotalPages {
			break
		}
	}

	// 2. Tạo file Excel bằng excelize
	f, err := buildBooksExcelFile(books)
	if err != nil {
		return nil, fmt.Errorf("failed to build excel file: %w", err)
	}

	log.Info().Int("rows", len(books)).Msg("[BookService] Catalog exported")
	return f, nil
}

func buildBooksExcelFile(books []model.Book) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		f.Close()
		return nil, err
	}

	// Row 1: Header
	for colIdx, header := range exportHeaders {
		cell, _ := excelize.CoordinatesToCellName(colIdx+1, 1)
		if err := f.SetCellValue(exportSheet, cell, header); err != nil {
			f.Close()
			return nil, err
		}
	}

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err == nil {
		lastCol, _ := excelize.CoordinatesToCellName(len(exportHeaders), 1)
		_ = f.SetCellStyle(exportSheet, "A1", lastCol, headerStyle)
	}

	// Data rows, bắt đầu từ row 2
	for i, b := range books {
		if err := f.SetSheetRow(exportSheet, fmt.Sprintf("A%d", i+2), &[]interface{}{
			b.ID,
			b.ISBN,
			b.Title,
			authorNames(b),
			b.Language,
			b.PublicationYear,
			utils.StringOrEmpty(b.Publisher),
			b.PrintLength,
			genreName(b.Genre),
			b.URLCover,
		}); err != nil {
			f.Close()
			return nil, err
		}
	}

	return f, nil
}

// authorNames joins names by |
func authorNames(b model.Book) string {
	names := make([]string, len(b.Authors))
	for i, a := range b.Authors {
		names[i] = a.Name
	}
	return strings.Join(names, "|")
}

func genreName(g *model.Genre) string {
	if g == nil {
		return ""
	}
	return g.String()
}
