// Package report renders filtered news sentiment articles as a PDF document.
package report

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"golang-market-sentiment/internal/entity"
	"golang-market-sentiment/internal/sentiment"
	"golang-market-sentiment/pkg/utils"

	"github.com/go-pdf/fpdf"
)

const (
	pageMargin = 15.0
	lineHeight = 6.0
	fontFamily = "Helvetica"
)

// Options configures a PDFRenderer.
type Options struct {
	// Compress enables stream compression. Disable it to keep the text layout greppable.
	Compress bool
	// Clock supplies the document creation date. Defaults to time.Now.
	Clock func() time.Time
}

// PDFRenderer turns a list of filtered articles into a paginated PDF.
type PDFRenderer struct {
	opts Options
}

// NewPDFRenderer creates a PDFRenderer.
func NewPDFRenderer(opts Options) *PDFRenderer {
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	return &PDFRenderer{opts: opts}
}

// Render writes a title line naming subject followed by one block per article,
// in the given order. Any article missing a required field aborts the render.
func (r *PDFRenderer) Render(articles []entity.FilteredArticle, subject string) ([]byte, error) {
	for i, a := range articles {
		if err := sentiment.ValidateArticle(a); err != nil {
			return nil, fmt.Errorf("article %d: %w", i, err)
		}
	}

	now := r.opts.Clock()
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetCompression(r.opts.Compress)
	pdf.SetCatalogSort(true)
	pdf.SetCreationDate(now)
	pdf.SetModificationDate(now)
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetAutoPageBreak(true, pageMargin)
	pdf.SetTitle("News Sentiment Report: "+subject, true)
	pdf.SetCreator("golang-market-sentiment", false)

	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.AddPage()
	pdf.SetFont(fontFamily, "B", 16)
	pdf.CellFormat(0, 10, tr("News Sentiment Report: "+subject), "", 1, "C", false, 0, "")
	pdf.SetFont(fontFamily, "", 10)
	pdf.CellFormat(0, lineHeight, fmt.Sprintf("Articles: %d", len(articles)), "", 1, "C", false, 0, "")
	pdf.Ln(lineHeight)

	if len(articles) == 0 {
		pdf.SetFont(fontFamily, "I", 11)
		pdf.MultiCell(0, lineHeight, "No articles met the relevance threshold.", "", "L", false)
	}

	for _, a := range articles {
		writeArticle(pdf, tr, a)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render report: %w", err)
	}
	return buf.Bytes(), nil
}

func writeArticle(pdf *fpdf.Fpdf, tr func(string) string, a entity.FilteredArticle) {
	pdf.SetFont(fontFamily, "B", 12)
	pdf.MultiCell(0, lineHeight, tr(a.Title), "", "L", false)

	pdf.SetFont(fontFamily, "I", 10)
	pdf.MultiCell(0, lineHeight, tr("Published on: "+publishedLabel(a)), "", "L", false)

	pdf.SetFont(fontFamily, "", 10)
	pdf.MultiCell(0, 5, tr(a.Summary), "", "L", false)
	pdf.Ln(1)
	pdf.CellFormat(0, lineHeight, tr("Sentiment: "+a.SentimentLabel), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, lineHeight, fmt.Sprintf("Score: %.4f", *a.SentimentScore), "", 1, "L", false, 0, "")
	pdf.MultiCell(0, lineHeight, tr("Topics: "+strings.Join(a.QualifyingTopics, ", ")), "", "L", false)

	pdf.SetTextColor(0, 0, 255)
	pdf.SetFont(fontFamily, "U", 10)
	pdf.WriteLinkString(lineHeight, "Read more", a.URL)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetFont(fontFamily, "", 10)
	pdf.Ln(lineHeight * 2)
}

func publishedLabel(a entity.FilteredArticle) string {
	if a.PublishedAt != nil {
		return a.PublishedAt.Format(utils.DisplayTimestampLayout)
	}
	return utils.FormatCompactTimestamp(a.PublishedRaw)
}
