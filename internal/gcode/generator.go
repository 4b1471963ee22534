package gcode

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/piwi3910/scatter/internal/model"
)

// Settings controls how outlines are traced.
type Settings struct {
	Profile  string  `json:"profile"`
	FeedRate float64 `json:"feed_rate"` // mm/min while marking
	Margin   float64 `json:"margin"`    // outline offset outward from each item
	TravelZ  float64 `json:"travel_z"`  // pen-up height
	MarkZ    float64 `json:"mark_z"`    // pen-down height
	Power    int     `json:"power"`     // laser power for the tool-on command
	MarkDots bool    `json:"mark_dots"` // mark zero-size items with a single touch
}

func DefaultSettings() Settings {
	return Settings{
		Profile:  Profiles[0].Name,
		FeedRate: 3000,
		TravelZ:  5,
		MarkZ:    0,
		Power:    255,
		MarkDots: true,
	}
}

// Generator produces marking G-code from a distribution result.
// Coordinates are emitted in layout units with the layout's y axis.
type Generator struct {
	Settings Settings
	profile  Profile
}

func New(settings Settings) *Generator {
	return &Generator{
		Settings: settings,
		profile:  GetProfile(settings.Profile),
	}
}

// Generate traces every placed item of result, in placement order.
func (g *Generator) Generate(result model.DistributeResult) string {
	var b strings.Builder

	g.writeHeader(&b, result)

	n := 0
	for _, o := range result.Outcomes {
		if !o.Placed {
			continue
		}
		n++
		g.writeItem(&b, o, n)
	}

	g.writeFooter(&b)
	return b.String()
}

// Export writes the marking G-code for result to path.
func Export(path string, result model.DistributeResult, settings Settings) error {
	if result.PlacedCount() == 0 {
		return fmt.Errorf("no items placed to mark")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create export directory: %w", err)
	}
	code := New(settings).Generate(result)
	if err := os.WriteFile(path, []byte(code), 0644); err != nil {
		return fmt.Errorf("failed to write G-code: %w", err)
	}
	return nil
}

func (g *Generator) writeHeader(b *strings.Builder, result model.DistributeResult) {
	p := g.profile

	b.WriteString(g.comment("Scatter marking layout"))
	b.WriteString(g.comment(fmt.Sprintf("Bounds: %.1f x %.1f at %.1f, %.1f",
		result.Bounds.Width(), result.Bounds.Height(), result.Bounds.Left, result.Bounds.Top)))
	b.WriteString(g.comment(fmt.Sprintf("Items: %d placed of %d, seed %d", result.PlacedCount(), len(result.Outcomes), result.Seed)))
	b.WriteString(g.comment(fmt.Sprintf("Feed: %.0f mm/min, margin %.2f", g.Settings.FeedRate, g.Settings.Margin)))
	b.WriteString(g.comment(fmt.Sprintf("Profile: %s", p.Name)))
	b.WriteString("\n")

	for _, code := range p.StartCode {
		b.WriteString(code + "\n")
	}

	if p.UsesZ {
		b.WriteString(fmt.Sprintf("%s Z%s\n", p.RapidMove, g.format(g.Settings.TravelZ)))
	} else if p.ToolOff != "" {
		b.WriteString(p.ToolOff + "\n")
	}

	b.WriteString("\n")
}

func (g *Generator) writeFooter(b *strings.Builder) {
	b.WriteString("\n")
	b.WriteString(g.comment("=== Layout complete ==="))

	for _, code := range g.profile.EndCode {
		code = strings.ReplaceAll(code, "[TravelZ]", g.format(g.Settings.TravelZ))
		b.WriteString(code + "\n")
	}
}

func (g *Generator) writeItem(b *strings.Builder, o model.Outcome, num int) {
	p := g.profile

	b.WriteString(g.comment(fmt.Sprintf("--- Item %d: %s, %.1f x %.1f%s ---",
		num, o.Item.Label, o.Item.Width, o.Item.Height, rotatedStr(o.Rotation))))

	outline := ItemOutline(o, g.Settings.Margin)
	bounds := outlineBounds(outline)
	if bounds.Width() < 1e-9 && bounds.Height() < 1e-9 {
		if !g.Settings.MarkDots {
			b.WriteString(g.comment("WARNING: zero-size item, skipping"))
			return
		}
		c := outline[0]
		b.WriteString(fmt.Sprintf("%s X%s Y%s\n", p.RapidMove, g.format(c.X), g.format(c.Y)))
		g.toolDown(b)
		g.toolUp(b)
		b.WriteString("\n")
		return
	}

	b.WriteString(fmt.Sprintf("%s X%s Y%s\n", p.RapidMove, g.format(outline[0].X), g.format(outline[0].Y)))
	g.toolDown(b)

	for i := 1; i < len(outline); i++ {
		b.WriteString(fmt.Sprintf("%s X%s Y%s F%s\n", p.FeedMove,
			g.format(outline[i].X), g.format(outline[i].Y), g.format(g.Settings.FeedRate)))
	}
	// Close the loop back to the first corner
	b.WriteString(fmt.Sprintf("%s X%s Y%s F%s\n", p.FeedMove,
		g.format(outline[0].X), g.format(outline[0].Y), g.format(g.Settings.FeedRate)))

	g.toolUp(b)
	b.WriteString("\n")
}

func (g *Generator) toolDown(b *strings.Builder) {
	p := g.profile
	if p.UsesZ {
		b.WriteString(fmt.Sprintf("%s Z%s F%s\n", p.FeedMove, g.format(g.Settings.MarkZ), g.format(g.Settings.FeedRate)))
		return
	}
	if p.ToolOn != "" {
		b.WriteString(fmt.Sprintf(p.ToolOn+"\n", g.Settings.Power))
	}
}

func (g *Generator) toolUp(b *strings.Builder) {
	p := g.profile
	if p.UsesZ {
		b.WriteString(fmt.Sprintf("%s Z%s\n", p.RapidMove, g.format(g.Settings.TravelZ)))
		return
	}
	if p.ToolOff != "" {
		b.WriteString(p.ToolOff + "\n")
	}
}

// ItemOutline returns the four corners of a placed item, grown by margin and
// rotated about the item center by its rotation (positive is clockwise with
// y pointing down). Corners run top-left, top-right, bottom-right,
// bottom-left before rotation.
func ItemOutline(o model.Outcome, margin float64) []model.Point {
	r := o.Rect()
	r = model.RectLTRB(r.Left-margin, r.Top-margin, r.Right+margin, r.Bottom+margin)
	c := r.Center()

	corners := []model.Point{
		{X: r.Left, Y: r.Top},
		{X: r.Right, Y: r.Top},
		{X: r.Right, Y: r.Bottom},
		{X: r.Left, Y: r.Bottom},
	}
	if o.Rotation == 0 {
		return corners
	}

	sin, cos := math.Sincos(o.Rotation * math.Pi / 180)
	for i, pt := range corners {
		dx, dy := pt.X-c.X, pt.Y-c.Y
		corners[i] = model.Point{
			X: c.X + dx*cos - dy*sin,
			Y: c.Y + dx*sin + dy*cos,
		}
	}
	return corners
}

func outlineBounds(pts []model.Point) model.Rect {
	r := model.Rect{Left: pts[0].X, Top: pts[0].Y, Right: pts[0].X, Bottom: pts[0].Y}
	for _, p := range pts[1:] {
		r.Left = math.Min(r.Left, p.X)
		r.Top = math.Min(r.Top, p.Y)
		r.Right = math.Max(r.Right, p.X)
		r.Bottom = math.Max(r.Bottom, p.Y)
	}
	return r
}

// comment wraps text in the profile's comment syntax. Line breaks and, for
// parenthesised comments, parentheses are replaced so item labels cannot
// end the comment early.
func (g *Generator) comment(text string) string {
	text = lineBreaks.Replace(text)
	if g.profile.CommentSuffix != "" {
		text = parens.Replace(text)
	}
	return g.profile.CommentPrefix + " " + text + g.profile.CommentSuffix + "\n"
}

var (
	lineBreaks = strings.NewReplacer("\r\n", " ", "\r", " ", "\n", " ")
	parens     = strings.NewReplacer("(", "[", ")", "]")
)

// format formats a coordinate according to the profile's decimal places.
func (g *Generator) format(v float64) string {
	return fmt.Sprintf("%.*f", g.profile.DecimalPlaces, v)
}

func rotatedStr(deg float64) string {
	if deg != 0 {
		return fmt.Sprintf(" [rotated %.1f deg]", deg)
	}
	return ""
}
