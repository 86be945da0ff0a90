// Package excel writes finished campaigns to xlsx workbooks so results
// can be handed to people who live in spreadsheets.
package excel

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/mlazarev/campaign-engine/internal/core/domain"
)

const (
	summarySheet = "Campaign"
	postsSheet   = "Posts"
)

type Exporter struct {
	dir string
}

func NewExporter(dir string) *Exporter {
	return &Exporter{dir: dir}
}

// Export writes one workbook per campaign and returns the file path.
func (e *Exporter) Export(ctx context.Context, result domain.WorkflowResult) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := os.MkdirAll(e.dir, 0o755); err != nil {
		return "", fmt.Errorf("create export dir: %w", err)
	}

	file := excelize.NewFile()
	defer file.Close()

	if err := writeSummary(file, result); err != nil {
		return "", err
	}
	if err := writePosts(file, result.GeneratedContent); err != nil {
		return "", err
	}
	file.DeleteSheet("Sheet1")

	path := filepath.Join(e.dir, workbookName(result.CampaignID))
	if err := file.SaveAs(path); err != nil {
		return "", fmt.Errorf("save workbook: %w", err)
	}
	return path, nil
}

func writeSummary(file *excelize.File, result domain.WorkflowResult) error {
	if _, err := file.NewSheet(summarySheet); err != nil {
		return fmt.Errorf("create summary sheet: %w", err)
	}

	rows := [][2]any{
		{"Campaign ID", result.CampaignID},
		{"Generated At", time.Now().Format(time.RFC3339)},
		{"Posts", len(result.GeneratedContent)},
	}
	if analysis := result.BusinessAnalysis; analysis != nil {
		profile := analysis.Profile
		rows = append(rows,
			[2]any{"Company", profile.CompanyName},
			[2]any{"Industry", profile.Industry},
			[2]any{"Business Type", string(profile.BusinessType)},
			[2]any{"Target Audience", profile.TargetAudience},
		)
		if guidance := analysis.Guidance; guidance != nil {
			rows = append(rows,
				[2]any{"Creative Direction", guidance.CreativeDirection},
				[2]any{"Themes", strings.Join(guidance.SuggestedThemes, "; ")},
			)
		}
	}
	if len(result.Notes) > 0 {
		rows = append(rows, [2]any{"Notes", strings.Join(result.Notes, "; ")})
	}

	for i, row := range rows {
		keyCell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return fmt.Errorf("summary cell name: %w", err)
		}
		valueCell, err := excelize.CoordinatesToCellName(2, i+1)
		if err != nil {
			return fmt.Errorf("summary cell name: %w", err)
		}
		if err := file.SetCellValue(summarySheet, keyCell, row[0]); err != nil {
			return fmt.Errorf("write summary key: %w", err)
		}
		if err := file.SetCellValue(summarySheet, valueCell, row[1]); err != nil {
			return fmt.Errorf("write summary value: %w", err)
		}
	}
	return nil
}

func writePosts(file *excelize.File, items []domain.ContentItem) error {
	if _, err := file.NewSheet(postsSheet); err != nil {
		return fmt.Errorf("create posts sheet: %w", err)
	}

	header := []any{"#", "Platform", "Content", "Hashtags"}
	if err := file.SetSheetRow(postsSheet, "A1", &header); err != nil {
		return fmt.Errorf("write posts header: %w", err)
	}

	for i, item := range items {
		row := []any{
			i + 1,
			string(item.Platform),
			item.Content,
			strings.Join(item.Hashtags, " "),
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("posts cell name: %w", err)
		}
		if err := file.SetSheetRow(postsSheet, cell, &row); err != nil {
			return fmt.Errorf("write post row: %w", err)
		}
	}
	return nil
}

func workbookName(campaignID string) string {
	id := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		default:
			return '-'
		}
	}, campaignID)
	if id == "" {
		id = "campaign"
	}
	return fmt.Sprintf("campaign-%s.xlsx", id)
}
