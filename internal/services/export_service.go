package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/xuri/excelize/v2"

	"github.com/batchbinder/content-service/internal/models"
	"github.com/batchbinder/content-service/internal/repositories"
)

const exportSheet = "Content"

type exportService struct {
	repo   repositories.Repository
	logger *slog.Logger
}

func NewExportService(repo repositories.Repository, logger *slog.Logger) ExportService {
	return &exportService{repo: repo, logger: logger}
}

// ExportContent writes the full content inventory as an xlsx workbook, one
// row per record, newest first.
func (s *exportService) ExportContent(ctx context.Context, w io.Writer) error {
	contents, err := s.repo.Content().List(ctx, repositories.ContentFilter{})
	if err != nil {
		return err
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		return fmt.Errorf("failed to set up export sheet: %w", err)
	}

	headers := []string{"ID", "Type", "Department", "Semester", "Subject", "Topic", "Professor", "Title", "Price", "Downloads", "Created"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(exportSheet, cell, h); err != nil {
			return fmt.Errorf("failed to write export header: %w", err)
		}
	}

	for row, c := range contents {
		values := exportRow(c)
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			if err := f.SetCellValue(exportSheet, cell, v); err != nil {
				return fmt.Errorf("failed to write export row: %w", err)
			}
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}

	s.logger.Info("content inventory exported", "records", len(contents))
	return nil
}

func exportRow(c models.Content) []interface{} {
	return []interface{}{
		c.ID,
		string(c.ContentType),
		c.Department,
		c.Semester,
		c.Subject,
		c.Topic,
		c.Professor,
		c.Title,
		c.Price,
		c.Downloads,
		c.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}
