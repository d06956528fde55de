package pdf

import (
	"fmt"

	"github.com/go-pdf/fpdf"
	"github.com/spigell/interview-feedback/internal/report"
)

// Layout constants, in centimeters on an A4 portrait page.
const (
	pageMargin = 1.5

	colNameWidth    = 4.0
	colScoreWidth   = 2.0
	colCommentWidth = 10.0

	cellPadding = 0.2
	lineHeight  = 0.45
	headerRow   = 0.8
)

// Render lays the report out as a paginated PDF and writes it to path.
// It holds no business logic; the report is assumed canonical.
func Render(rep *report.FeedbackReport, path string) error {
	doc := fpdf.New("P", "cm", "A4", "")
	doc.SetMargins(pageMargin, pageMargin, pageMargin)
	doc.SetAutoPageBreak(true, pageMargin)
	doc.AddPage()

	doc.SetFont("Helvetica", "B", 16)
	doc.CellFormat(0, 0.8, fmt.Sprintf("Interview Feedback: %s", rep.CandidateName), "", 1, "L", false, 0, "")
	doc.SetFont("Helvetica", "", 10)
	doc.CellFormat(0, 0.5, "1 - worst, 5 - best", "", 1, "L", false, 0, "")
	doc.Ln(0.5)

	writeSection(doc, "Technical:", rep.TechnicalScores)
	writeSection(doc, "Non-technical:", rep.NonTechnicalScores)
	if len(rep.PersonalAssessmentScores) > 0 {
		writeSection(doc, "Personal Assessment:", rep.PersonalAssessmentScores)
	}

	doc.SetFont("Helvetica", "B", 12)
	doc.CellFormat(0, 0.7, "Overall assessment: "+rep.OverallLevel, "", 1, "L", false, 0, "")
	doc.SetFont("Helvetica", "", 10)
	doc.MultiCell(0, 0.5, rep.OverallComment, "", "L", false)

	if rep.AIEvaluation != "" {
		doc.Ln(0.5)
		doc.SetTextColor(0x55, 0x55, 0x55)
		doc.SetFont("Helvetica", "I", 11)
		doc.CellFormat(0, 0.6, "AI Evaluation", "", 1, "L", false, 0, "")
		doc.SetFont("Helvetica", "", 9)
		doc.MultiCell(0, 0.4, rep.AIEvaluation, "", "L", false)
		doc.SetTextColor(0, 0, 0)
	}

	if err := doc.OutputFileAndClose(path); err != nil {
		return fmt.Errorf("writing pdf %q: %w", path, err)
	}

	return nil
}

func writeSection(doc *fpdf.Fpdf, title string, scores []*report.AreaScore) {
	doc.SetTextColor(0, 0, 0)
	doc.SetFont("Helvetica", "B", 12)
	doc.CellFormat(0, 0.7, title, "", 1, "L", false, 0, "")

	doc.SetDrawColor(0x80, 0x80, 0x80)
	doc.SetLineWidth(0.02)

	doc.SetFillColor(0x44, 0x72, 0xC4)
	doc.SetTextColor(0xF5, 0xF5, 0xF5)
	doc.SetFont("Helvetica", "B", 10)
	doc.CellFormat(colNameWidth, headerRow, "Name", "1", 0, "L", true, 0, "")
	doc.CellFormat(colScoreWidth, headerRow, "Evaluation", "1", 0, "C", true, 0, "")
	doc.CellFormat(colCommentWidth, headerRow, "Comment", "1", 1, "L", true, 0, "")

	doc.SetTextColor(0, 0, 0)
	doc.SetFont("Helvetica", "", 9)
	for i, score := range scores {
		if i%2 == 1 {
			doc.SetFillColor(0xF2, 0xF2, 0xF2)
		} else {
			doc.SetFillColor(0xFF, 0xFF, 0xFF)
		}
		writeRow(doc, score)
	}

	doc.Ln(0.5)
}

// writeRow draws one table row, sized to the tallest wrapped column.
func writeRow(doc *fpdf.Fpdf, score *report.AreaScore) {
	nameLines := doc.SplitText(score.Name, colNameWidth-2*cellPadding)
	commentLines := doc.SplitText(score.Comment, colCommentWidth-2*cellPadding)
	height := float64(max(len(nameLines), len(commentLines), 1))*lineHeight + 2*cellPadding

	// Keep a row on one page; auto page break would split it mid-cell.
	_, pageHeight := doc.GetPageSize()
	if doc.GetY()+height > pageHeight-pageMargin {
		doc.AddPage()
	}

	x, y := doc.GetXY()

	doc.Rect(x, y, colNameWidth, height, "FD")
	doc.Rect(x+colNameWidth, y, colScoreWidth, height, "FD")
	doc.Rect(x+colNameWidth+colScoreWidth, y, colCommentWidth, height, "FD")

	doc.SetXY(x+cellPadding, y+cellPadding)
	doc.MultiCell(colNameWidth-2*cellPadding, lineHeight, score.Name, "", "L", false)

	doc.SetXY(x+colNameWidth, y+cellPadding)
	doc.CellFormat(colScoreWidth, lineHeight, score.DisplayScore(), "", 0, "C", false, 0, "")

	doc.SetXY(x+colNameWidth+colScoreWidth+cellPadding, y+cellPadding)
	doc.MultiCell(colCommentWidth-2*cellPadding, lineHeight, score.Comment, "", "L", false)

	doc.SetXY(x, y+height)
}
