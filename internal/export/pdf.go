// Package export writes distribution results to PDF reports, QR label
// sheets and JSON.
package export

import (
	"fmt"
	"math"

	"github.com/go-pdf/fpdf"

	"github.com/piwi3910/scatter/internal/engine"
	"github.com/piwi3910/scatter/internal/model"
)

// itemColor represents an RGB color for a placed item.
type itemColor struct {
	R, G, B int
}

var itemColors = []itemColor{
	{R: 76, G: 175, B: 80},  // green
	{R: 33, G: 150, B: 243}, // blue
	{R: 255, G: 152, B: 0},  // orange
	{R: 156, G: 39, B: 176}, // purple
	{R: 0, G: 188, B: 212},  // cyan
	{R: 244, G: 67, B: 54},  // red
	{R: 255, G: 235, B: 59}, // yellow
	{R: 121, G: 85, B: 72},  // brown
}

// Page layout constants (A4 landscape in mm).
const (
	pageWidth    = 297.0
	pageHeight   = 210.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 15.0
	headerHeight = 12.0
	legendHeight = 20.0
	drawAreaTop  = marginTop + headerHeight + 5.0
)

// ExportPDF generates a PDF report of a distribution result: one page with
// the layout diagram and one summary page with separation statistics.
// settings are the ones the result was produced with; their unpadded bounds
// frame the diagram.
func ExportPDF(path string, title string, result model.DistributeResult, settings model.LayoutSettings) error {
	if len(result.Outcomes) == 0 {
		return fmt.Errorf("no items to export")
	}

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, marginBottom)
	pdf.SetTitle(title, false)

	pdf.AddPage()
	renderLayoutPage(pdf, title, result, settings)

	pdf.AddPage()
	renderSummaryPage(pdf, result, settings, engine.Analyze(result))

	return pdf.OutputFileAndClose(path)
}

// canvas maps layout coordinates onto the page.
type canvas struct {
	extent           model.Rect
	scale            float64
	offsetX, offsetY float64
}

func newCanvas(extent model.Rect) canvas {
	drawWidth := pageWidth - marginLeft - marginRight
	drawHeight := pageHeight - drawAreaTop - marginBottom - legendHeight

	scale := 1.0
	if extent.Width() > 0 && extent.Height() > 0 {
		scale = math.Min(drawWidth/extent.Width(), drawHeight/extent.Height())
	}
	return canvas{
		extent:  extent,
		scale:   scale,
		offsetX: marginLeft + (drawWidth-extent.Width()*scale)/2,
		offsetY: drawAreaTop,
	}
}

// page returns the page position and size of r.
func (c canvas) page(r model.Rect) (x, y, w, h float64) {
	return c.offsetX + (r.Left-c.extent.Left)*c.scale,
		c.offsetY + (r.Top-c.extent.Top)*c.scale,
		r.Width() * c.scale,
		r.Height() * c.scale
}

// renderLayoutPage draws bounds, avoidance zones, candidate regions and
// placed items on the current page.
func renderLayoutPage(pdf *fpdf.Fpdf, title string, result model.DistributeResult, settings model.LayoutSettings) {
	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetXY(marginLeft, marginTop)
	heading := fmt.Sprintf("%s (%.0f x %.0f)", title, settings.Bounds.Width(), settings.Bounds.Height())
	pdf.CellFormat(pageWidth-marginLeft-marginRight, headerHeight, heading, "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetXY(marginLeft, marginTop+headerHeight)
	line := fmt.Sprintf("Placed: %d of %d | Regions: %d | Seed: %d",
		result.PlacedCount(), len(result.Outcomes), len(result.Regions), result.Seed)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 5, line, "", 0, "L", false, 0, "")

	extent := settings.Bounds
	if !result.Bounds.Empty() {
		extent = model.RectLTRB(
			math.Min(extent.Left, result.Bounds.Left), math.Min(extent.Top, result.Bounds.Top),
			math.Max(extent.Right, result.Bounds.Right), math.Max(extent.Bottom, result.Bounds.Bottom))
	}
	c := newCanvas(extent)

	// Bounds background
	x, y, w, h := c.page(settings.Bounds)
	pdf.SetFillColor(235, 235, 235)
	pdf.SetDrawColor(100, 100, 100)
	pdf.SetLineWidth(0.5)
	pdf.Rect(x, y, w, h, "FD")

	// Padded draw region
	x, y, w, h = c.page(result.Bounds)
	pdf.SetFillColor(255, 255, 255)
	pdf.SetLineWidth(0.3)
	pdf.Rect(x, y, w, h, "FD")

	drawRegions(pdf, c, result.Regions)
	drawAvoidZones(pdf, c, result.Avoid)
	drawItems(pdf, c, result.Placements())
	drawDimensionAnnotations(pdf, c, settings.Bounds)
	drawItemsLegend(pdf, result, c.offsetY+extent.Height()*c.scale+5)
}

// drawRegions outlines the candidate regions, merged into row strips.
func drawRegions(pdf *fpdf.Fpdf, c canvas, regions []model.Rect) {
	pdf.SetDrawColor(120, 180, 120)
	pdf.SetLineWidth(0.15)
	pdf.SetDashPattern([]float64{1, 1}, 0)
	for _, r := range engine.MergeRegions(regions) {
		x, y, w, h := c.page(r)
		pdf.Rect(x, y, w, h, "D")
	}
	pdf.SetDashPattern([]float64{}, 0)
}

// drawAvoidZones renders the padded avoidance rectangles, clipped to the
// diagram extent.
func drawAvoidZones(pdf *fpdf.Fpdf, c canvas, avoid []model.Rect) {
	for _, a := range avoid {
		clipped := a.Intersection(c.extent)
		if clipped.Empty() {
			continue
		}
		x, y, w, h := c.page(clipped)

		pdf.SetFillColor(255, 200, 200)
		pdf.SetDrawColor(200, 0, 0)
		pdf.SetLineWidth(0.3)
		pdf.Rect(x, y, w, h, "FD")
		drawHatchPattern(pdf, x, y, w, h)

		if w > 20 && h > 8 {
			pdf.SetFont("Helvetica", "B", 6)
			pdf.SetTextColor(180, 0, 0)
			labelW := pdf.GetStringWidth("AVOID")
			pdf.SetXY(x+(w-labelW)/2, y+h/2-2)
			pdf.CellFormat(labelW, 4, "AVOID", "", 0, "C", false, 0, "")
		}
	}
	pdf.SetTextColor(0, 0, 0)
}

// drawHatchPattern draws diagonal lines inside a rectangle to indicate avoidance zones.
func drawHatchPattern(pdf *fpdf.Fpdf, x, y, w, h float64) {
	pdf.SetDrawColor(200, 0, 0)
	pdf.SetLineWidth(0.15)

	spacing := 4.0
	maxDist := w + h

	for d := spacing; d < maxDist; d += spacing {
		x1 := x + math.Max(0, d-h)
		y1 := y + math.Min(h, d)
		x2 := x + math.Min(w, d)
		y2 := y + math.Max(0, d-w)

		pdf.Line(x1, y1, x2, y2)
	}
}

// drawItems renders placed items. Each item is rotated about its center;
// positive angles turn clockwise on the page.
func drawItems(pdf *fpdf.Fpdf, c canvas, placements []model.Placement) {
	for i, p := range placements {
		col := itemColors[i%len(itemColors)]
		x, y, w, h := c.page(p.Rect)

		pdf.TransformBegin()
		if p.Rotation != 0 {
			pdf.TransformRotate(-p.Rotation, x+w/2, y+h/2)
		}

		pdf.SetFillColor(col.R, col.G, col.B)
		pdf.SetDrawColor(30, 30, 30)
		pdf.SetLineWidth(0.3)
		if w == 0 || h == 0 {
			// Zero-size items show as a dot
			pdf.Circle(x+w/2, y+h/2, 0.6, "F")
		} else {
			pdf.Rect(x, y, w, h, "FD")
		}

		if w > 15 && h > 8 {
			pdf.SetFont("Helvetica", "", labelFontSize(w, h))
			pdf.SetTextColor(0, 0, 0)
			labelW := pdf.GetStringWidth(p.Item.Label)
			if labelW < w-2 {
				pdf.SetXY(x+(w-labelW)/2, y+h/2-2)
				pdf.CellFormat(labelW, 4, p.Item.Label, "", 0, "C", false, 0, "")
			}
		}
		pdf.TransformEnd()
	}
}

// drawDimensionAnnotations adds width and height labels outside the bounds.
func drawDimensionAnnotations(pdf *fpdf.Fpdf, c canvas, bounds model.Rect) {
	x, y, w, h := c.page(bounds)
	pdf.SetFont("Helvetica", "", 8)
	pdf.SetTextColor(80, 80, 80)

	widthLabel := fmt.Sprintf("%.0f", bounds.Width())
	wLabelW := pdf.GetStringWidth(widthLabel)
	pdf.SetXY(x+(w-wLabelW)/2, y+h+1)
	pdf.CellFormat(wLabelW, 4, widthLabel, "", 0, "C", false, 0, "")

	heightLabel := fmt.Sprintf("%.0f", bounds.Height())
	pdf.TransformBegin()
	pdf.TransformRotate(90, x-3, y+h/2)
	hLabelW := pdf.GetStringWidth(heightLabel)
	pdf.SetXY(x-3-hLabelW/2, y+h/2-2)
	pdf.CellFormat(hLabelW, 4, heightLabel, "", 0, "C", false, 0, "")
	pdf.TransformEnd()

	pdf.SetTextColor(0, 0, 0)
}

// drawItemsLegend renders a compact legend of placed items below the diagram.
func drawItemsLegend(pdf *fpdf.Fpdf, result model.DistributeResult, startY float64) {
	placements := result.Placements()
	if len(placements) == 0 {
		return
	}

	pdf.SetFont("Helvetica", "B", 8)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(marginLeft, startY)
	pdf.CellFormat(30, 4, "Items placed:", "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	xPos := marginLeft + 32
	maxX := pageWidth - marginRight

	for i, p := range placements {
		col := itemColors[i%len(itemColors)]
		label := fmt.Sprintf("%s (%.0fx%.0f)", p.Item.Label, p.Item.Width, p.Item.Height)
		if p.Rotation != 0 {
			label += fmt.Sprintf(" %.0f\xb0", p.Rotation)
		}
		labelW := pdf.GetStringWidth(label) + 6

		if xPos+labelW > maxX {
			startY += 5
			xPos = marginLeft
			if startY > pageHeight-marginBottom {
				return
			}
		}

		pdf.SetFillColor(col.R, col.G, col.B)
		pdf.Rect(xPos, startY+0.5, 3, 3, "F")

		pdf.SetXY(xPos+4, startY)
		pdf.CellFormat(labelW-4, 4, label, "", 0, "L", false, 0, "")

		xPos += labelW + 2
	}
}

// renderSummaryPage draws the statistics and settings page.
func renderSummaryPage(pdf *fpdf.Fpdf, result model.DistributeResult, settings model.LayoutSettings, stats engine.Stats) {
	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 10, "Distribution Summary", "", 0, "L", false, 0, "")

	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.5)
	pdf.Line(marginLeft, marginTop+12, pageWidth-marginRight, marginTop+12)

	y := marginTop + 18
	y = drawKeyValues(pdf, y, "Separation Statistics", []keyValue{
		{"Items Placed", fmt.Sprintf("%d", stats.Placed)},
		{"Items Unplaced", fmt.Sprintf("%d", stats.Unplaced)},
		{"Closest Pair Distance", fmt.Sprintf("%.2f", stats.MinPairDistance)},
		{"Mean Nearest Distance", fmt.Sprintf("%.2f", stats.MeanNearest)},
		{"Std Dev Nearest", fmt.Sprintf("%.2f", stats.StdDevNearest)},
		{"Evenness (CV)", fmt.Sprintf("%.3f", stats.Evenness)},
		{"Coverage", fmt.Sprintf("%.1f%%", stats.Coverage)},
		{"Candidate Regions", fmt.Sprintf("%d (area %.0f)", len(result.Regions), engine.RegionArea(result.Regions))},
	})

	rotation := settings.Rotation.String()
	if settings.Rotation == model.RotationRandom || settings.Rotation == model.RotationPosition {
		rotation += fmt.Sprintf(" [%.1f, %.1f]", settings.MinAngle, settings.MaxAngle)
	}
	y = drawKeyValues(pdf, y+5, "Settings", []keyValue{
		{"Seed", fmt.Sprintf("%d", result.Seed)},
		{"Retries", fmt.Sprintf("%d", settings.Retries)},
		{"Sampling", string(settings.Sampling)},
		{"Workers", fmt.Sprintf("%d", settings.Workers)},
		{"Bound Padding", fmt.Sprintf("%.2f", settings.BoundPadding)},
		{"Avoid Padding", fmt.Sprintf("%.2f", settings.AvoidPadding)},
		{"Rotation", rotation},
	})

	if unplaced := result.Unplaced(); len(unplaced) > 0 {
		y += 8
		pdf.SetFont("Helvetica", "B", 11)
		pdf.SetTextColor(200, 0, 0)
		pdf.SetXY(marginLeft, y)
		pdf.CellFormat(200, 7, "WARNING: Unplaced Items", "", 0, "L", false, 0, "")
		y += 8

		pdf.SetFont("Helvetica", "", 9)
		pdf.SetTextColor(0, 0, 0)
		for _, o := range unplaced {
			if y > pageHeight-marginBottom-5 {
				break
			}
			pdf.SetXY(marginLeft+5, y)
			text := fmt.Sprintf("- %s: %.0f x %.0f (%s)", o.Item.Label, o.Item.Width, o.Item.Height, o.Reason)
			pdf.CellFormat(200, 5, text, "", 0, "L", false, 0, "")
			y += 5
		}
	}

	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(120, 120, 120)
	pdf.SetXY(marginLeft, pageHeight-marginBottom)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 4, "Generated by scatter", "", 0, "C", false, 0, "")
}

type keyValue struct {
	label string
	value string
}

func drawKeyValues(pdf *fpdf.Fpdf, y float64, heading string, items []keyValue) float64 {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, heading, "", 0, "L", false, 0, "")
	y += 9

	pdf.SetFont("Helvetica", "", 10)
	for _, item := range items {
		pdf.SetXY(marginLeft+5, y)
		pdf.CellFormat(60, 6, item.label+":", "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(60, 6, item.value, "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		y += 7
	}
	return y
}

// labelFontSize returns an appropriate font size based on the rectangle dimensions.
func labelFontSize(w, h float64) float64 {
	minDim := math.Min(w, h)
	switch {
	case minDim > 40:
		return 8
	case minDim > 20:
		return 7
	default:
		return 6
	}
}
