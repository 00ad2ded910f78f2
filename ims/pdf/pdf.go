package pdf

import (
	"bytes"
	"fmt"
	"os"
	"time"

	"github.com/jung-kurt/gofpdf"
)

const (
	margin       = 14.0
	lineHeight   = 5.0
	headerHeight = 8.0
)

// Assets points at the static files drawn into every report. Missing files
// degrade to placeholders instead of failing the render.
type Assets struct {
	LogoPath string
}

type TableStyle struct {
	FontSize   float64
	HeaderFill [3]int
	HeaderText [3]int
	AltRowFill [3]int
}

// GridStyle matches the indigo header used on the dashboard exports.
var GridStyle = TableStyle{
	FontSize:   9,
	HeaderFill: [3]int{75, 70, 229},
	HeaderText: [3]int{255, 255, 255},
	AltRowFill: [3]int{240, 240, 255},
}

// PlainStyle is the grey-header preset used for statistics sections.
var PlainStyle = TableStyle{
	FontSize:   8,
	HeaderFill: [3]int{240, 240, 240},
	HeaderText: [3]int{0, 0, 0},
	AltRowFill: [3]int{255, 255, 255},
}

type SignatureLine struct {
	Label     string
	Name      string
	Role      string
	ImagePath string
}

// Document wraps a single in-progress report PDF. Pages are appended
// through the drawing helpers and the byte stream is produced by Finalize,
// which also back-fills the "Page X of Y" footers.
type Document struct {
	f          *gofpdf.Fpdf
	assets     Assets
	footerNote string
}

func NewDocument(assets Assets, landscape bool) *Document {
	orientation := "P"
	if landscape {
		orientation = "L"
	}

	f := gofpdf.New(orientation, "mm", "A4", "")
	f.SetMargins(margin, 15, margin)
	f.SetAutoPageBreak(false, 20)
	f.AliasNbPages("")

	doc := &Document{f: f, assets: assets}

	f.SetFooterFunc(func() {
		f.SetY(-14)
		f.SetFont("Helvetica", "", 8)
		f.SetTextColor(100, 100, 100)
		pageWidth, _ := f.GetPageSize()
		f.Text(pageWidth/2-10, f.GetY()+5, fmt.Sprintf("Page %d of {nb}", f.PageNo()))
		if doc.footerNote != "" {
			f.Text(margin, f.GetY()+5, doc.footerNote)
		}
	})

	f.AddPage()

	return doc
}

// SetFooterNote adds a left-aligned line next to the page counter on every
// page. Must be called before Finalize to cover pages already drawn.
func (d *Document) SetFooterNote(note string) {
	d.footerNote = note
}

func (d *Document) AddPage() {
	d.f.AddPage()
}

func (d *Document) PageWidth() float64 {
	w, _ := d.f.GetPageSize()
	return w
}

func (d *Document) PageHeight() float64 {
	_, h := d.f.GetPageSize()
	return h
}

// Letterhead draws the institutional header block and leaves the cursor
// where body content should start. An unreadable logo file degrades to a
// bordered placeholder box.
func (d *Document) Letterhead(reportTitle, departmentName string) {
	f := d.f

	logoDrawn := false
	if d.assets.LogoPath != "" {
		if data, err := os.ReadFile(d.assets.LogoPath); err == nil {
			name := fmt.Sprintf("logo-%d", f.PageNo())
			f.RegisterImageOptionsReader(name, gofpdf.ImageOptions{ImageType: "JPEG"}, bytes.NewReader(data))
			if f.Err() {
				// Bad image data poisons the whole document, so clear it and
				// fall back to the placeholder.
				f.SetError(nil)
			} else {
				f.ImageOptions(name, 15, 15, 25, 25, false, gofpdf.ImageOptions{ImageType: "JPEG"}, 0, "")
				logoDrawn = !f.Err()
				if f.Err() {
					f.SetError(nil)
				}
			}
		}
	}
	if !logoDrawn {
		f.Rect(15, 15, 25, 25, "D")
		f.SetFont("Helvetica", "", 8)
		f.SetTextColor(0, 0, 0)
		f.Text(22, 30, "LOGO")
	}

	f.SetTextColor(0, 0, 0)
	f.SetFont("Helvetica", "B", 14)
	d.centeredText("Agnel Charities", 20)
	f.SetFont("Helvetica", "B", 16)
	d.centeredText("Fr. C. Rodrigues Institute of Technology, Vashi", 28)
	f.SetFont("Helvetica", "", 10)
	d.centeredText("(An Autonomous Institute & Permanently Affiliated to University of Mumbai)", 35)

	f.SetFont("Helvetica", "B", 14)
	d.centeredText(reportTitle, 50)

	f.SetFont("Helvetica", "", 10)
	y := 65.0
	f.Text(margin, y, fmt.Sprintf("Generated on: %s", time.Now().Format("02/01/2006")))
	if departmentName != "" && departmentName != "All Departments" {
		y += 7
		f.Text(margin, y, fmt.Sprintf("Department: %s", departmentName))
	}

	f.SetXY(margin, y+10)
}

func (d *Document) centeredText(text string, y float64) {
	width := d.f.GetStringWidth(text)
	d.f.Text(d.PageWidth()/2-width/2, y, text)
}

func (d *Document) Heading(text string) {
	d.f.SetFont("Helvetica", "B", 14)
	d.f.SetTextColor(0, 0, 0)
	d.f.SetX(margin)
	d.f.CellFormat(0, 10, text, "", 1, "L", false, 0, "")
}

func (d *Document) Paragraph(text string) {
	d.f.SetFont("Helvetica", "", 12)
	d.f.SetTextColor(0, 0, 0)
	d.f.SetX(margin)
	d.f.MultiCell(0, 6, text, "", "L", false)
	d.f.SetX(margin)
}

func (d *Document) CenteredParagraph(text string, size float64) {
	d.f.SetFont("Helvetica", "", size)
	d.f.SetTextColor(0, 0, 0)
	d.f.SetX(margin)
	d.f.MultiCell(0, 7, text, "", "C", false)
	d.f.SetX(margin)
}

func (d *Document) Footnote(text string) {
	d.f.SetFont("Helvetica", "", 10)
	d.f.SetTextColor(100, 100, 100)
	d.f.SetXY(margin, d.f.GetY()+5)
	d.f.MultiCell(0, 5, text, "", "L", false)
	d.f.SetX(margin)
}

// Notice draws the red no-data message used when an aggregator returns an
// empty row set.
func (d *Document) Notice(text string) {
	d.f.SetFont("Helvetica", "", 12)
	d.f.SetTextColor(255, 0, 0)
	d.f.SetXY(margin, d.f.GetY()+10)
	d.f.MultiCell(0, 6, text, "", "L", false)
	d.f.SetTextColor(0, 0, 0)
	d.f.SetX(margin)
}

func (d *Document) Space(h float64) {
	d.f.SetY(d.f.GetY() + h)
	d.f.SetX(margin)
}

// Table renders a bordered table with wrapped cells, repeating the header
// row after every page break. Column widths default to an even split of the
// printable width when widths is nil.
func (d *Document) Table(columns []string, rows [][]string, style TableStyle, widths []float64) {
	if len(columns) == 0 {
		return
	}

	f := d.f
	printable := d.PageWidth() - 2*margin
	if widths == nil {
		widths = make([]float64, len(columns))
		for i := range widths {
			widths[i] = printable / float64(len(columns))
		}
	}

	limit := d.PageHeight() - 25

	drawHeader := func() {
		f.SetFont("Helvetica", "B", style.FontSize)
		f.SetFillColor(style.HeaderFill[0], style.HeaderFill[1], style.HeaderFill[2])
		f.SetTextColor(style.HeaderText[0], style.HeaderText[1], style.HeaderText[2])
		x := margin
		y := f.GetY()
		for i, col := range columns {
			f.Rect(x, y, widths[i], headerHeight, "FD")
			f.SetXY(x+1, y+1.5)
			f.CellFormat(widths[i]-2, lineHeight, col, "", 0, "L", false, 0, "")
			x += widths[i]
		}
		f.SetXY(margin, y+headerHeight)
		f.SetTextColor(0, 0, 0)
		f.SetFont("Helvetica", "", style.FontSize)
	}

	if f.GetY()+headerHeight+lineHeight > limit {
		f.AddPage()
		f.SetY(20)
	}
	drawHeader()

	for r, row := range rows {
		cellLines := make([][]string, len(columns))
		height := lineHeight
		for i := range columns {
			text := ""
			if i < len(row) {
				text = row[i]
			}
			lines := f.SplitText(text, widths[i]-2)
			if len(lines) == 0 {
				lines = []string{""}
			}
			cellLines[i] = lines
			if h := float64(len(lines)) * lineHeight; h > height {
				height = h
			}
		}

		y := f.GetY()
		if y+height+2 > limit {
			f.AddPage()
			f.SetY(20)
			drawHeader()
			y = f.GetY()
		}

		fill := r%2 == 1
		f.SetFillColor(style.AltRowFill[0], style.AltRowFill[1], style.AltRowFill[2])

		x := margin
		for i := range columns {
			mode := "D"
			if fill {
				mode = "FD"
			}
			f.Rect(x, y, widths[i], height+2, mode)
			f.SetXY(x+1, y+1)
			for _, line := range cellLines[i] {
				f.CellFormat(widths[i]-2, lineHeight, line, "", 2, "L", false, 0, "")
				f.SetX(x + 1)
			}
			x += widths[i]
		}
		f.SetXY(margin, y+height+2)
	}
}

// SignatureBlock draws the faculty and HOD sign-off columns near the page
// bottom. The HOD line is always left blank for a wet signature; the faculty
// side uses the registered signature image when one is readable.
func (d *Document) SignatureBlock(faculty, hod SignatureLine) {
	f := d.f
	pageHeight := d.PageHeight()

	signatureY := f.GetY() + 30
	if floor := pageHeight - 80; signatureY < floor {
		signatureY = floor
	}
	if signatureY > pageHeight-45 {
		f.AddPage()
		signatureY = pageHeight - 80
	}

	f.SetFont("Helvetica", "", 10)
	f.SetTextColor(0, 0, 0)

	f.Text(margin, signatureY, faculty.Label)
	imageDrawn := false
	if faculty.ImagePath != "" {
		if data, err := os.ReadFile(faculty.ImagePath); err == nil {
			name := fmt.Sprintf("signature-%d", f.PageNo())
			f.RegisterImageOptionsReader(name, gofpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(data))
			if !f.Err() {
				f.ImageOptions(name, margin, signatureY+5, 40, 15, false, gofpdf.ImageOptions{ImageType: "PNG"}, 0, "")
				imageDrawn = !f.Err()
			}
			if f.Err() {
				f.SetError(nil)
			}
		}
	}
	if !imageDrawn {
		f.Line(margin, signatureY+15, margin+60, signatureY+15)
	}
	f.Text(margin, signatureY+25, faculty.Name)
	f.Text(margin, signatureY+32, faculty.Role)

	hodX := d.PageWidth() - margin - 60
	f.Text(hodX, signatureY, hod.Label)
	f.Line(hodX, signatureY+15, hodX+60, signatureY+15)
	f.Text(hodX, signatureY+25, hod.Name)
	f.Text(hodX, signatureY+32, hod.Role)

	f.SetXY(margin, signatureY+36)
}

// Finalize resolves the page-count alias on every footer and returns the
// PDF bytes. The document must not be drawn into afterwards.
func (d *Document) Finalize() ([]byte, error) {
	var buf bytes.Buffer
	if err := d.f.Output(&buf); err != nil {
		return nil, fmt.Errorf("error rendering pdf: %w", err)
	}
	return buf.Bytes(), nil
}
