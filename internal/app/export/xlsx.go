// Package export writes client-side export formats. Server-side formats
// (txt, docx) come from the API; the segment table export is produced
// locally from the in-memory collection.
package export

import (
	"fmt"

	"github.com/tealeg/xlsx"

	"loopa-cli/internal/app/model"
	"loopa-cli/internal/app/segment"
)

// SegmentsToExcel writes the segment table to an .xlsx file, one row per
// segment with its speaker label and timing.
func SegmentsToExcel(segments []model.Segment, outputFilePath string) error {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Transcript")
	if err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}

	headerRow := sheet.AddRow()
	headerRow.AddCell().Value = "Start"
	headerRow.AddCell().Value = "End"
	headerRow.AddCell().Value = "Speaker"
	headerRow.AddCell().Value = "Text"
	headerRow.AddCell().Value = "Fillers"
	headerRow.AddCell().Value = "Corrected"

	labels := speakerLabels(segments)
	for _, seg := range segments {
		row := sheet.AddRow()
		row.AddCell().Value = FormatTimestamp(seg.StartTime)
		row.AddCell().Value = FormatTimestamp(seg.EndTime)
		row.AddCell().Value = labels[seg.Speaker()]
		row.AddCell().Value = seg.Text
		row.AddCell().Value = yesNo(seg.HasFillers)
		row.AddCell().Value = yesNo(seg.IsCorrected)
	}

	if err := file.Save(outputFilePath); err != nil {
		return fmt.Errorf("failed to save %s: %w", outputFilePath, err)
	}
	return nil
}

// FormatTimestamp renders milliseconds as m:ss.
func FormatTimestamp(ms int64) string {
	seconds := ms / 1000
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}

func speakerLabels(segments []model.Segment) map[string]string {
	labels := map[string]string{"": ""}
	for _, sp := range segment.Speakers(segments) {
		labels[sp.ID] = segment.DisplayName(sp)
	}
	return labels
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return ""
}
