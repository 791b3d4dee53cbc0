package services

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"

	errs "github.com/projectsail/rainfall-backend/internal/pkg/errors"
	"github.com/projectsail/rainfall-backend/internal/platform/logger"
	"github.com/projectsail/rainfall-backend/internal/presentation"
)

const (
	chartWidth  = 1000
	chartHeight = 450

	chartMarginLeft   = 80.0
	chartMarginRight  = 40.0
	chartMarginTop    = 60.0
	chartMarginBottom = 80.0

	chartYTicks = 5
)

// ChartService renders a labeled series as a PNG line chart, the payload the
// frontend gets back from the forecast endpoints.
type ChartService interface {
	RenderLineChart(points []presentation.LabeledPoint, title string) (bytes.Buffer, error)
}

type chartService struct {
	log       *logger.Logger
	labelFace font.Face
	titleFace font.Face
}

// NewChartService loads the chart typeface from CHART_FONT when set,
// otherwise falls back to a built-in bitmap face so rendering always works.
func NewChartService(baseLog *logger.Logger) (ChartService, error) {
	serviceLog := baseLog.With("service", "ChartService")

	labelFace := font.Face(basicfont.Face7x13)
	titleFace := font.Face(basicfont.Face7x13)

	fontPath := strings.TrimSpace(os.Getenv("CHART_FONT"))
	if fontPath != "" {
		serviceLog.Info("Loading chart font", "font", fontPath)
		lf, err := loadFontFace(fontPath, 14)
		if err != nil {
			return nil, fmt.Errorf("could not load chart font: %w", err)
		}
		tf, err := loadFontFace(fontPath, 20)
		if err != nil {
			return nil, fmt.Errorf("could not load chart font: %w", err)
		}
		labelFace, titleFace = lf, tf
	}

	return &chartService{log: serviceLog, labelFace: labelFace, titleFace: titleFace}, nil
}

func (cs *chartService) RenderLineChart(points []presentation.LabeledPoint, title string) (bytes.Buffer, error) {
	var buf bytes.Buffer
	if len(points) == 0 {
		return buf, fmt.Errorf("no points to plot: %w", errs.ErrInvalidArgument)
	}

	dc := gg.NewContext(chartWidth, chartHeight)
	dc.SetRGB(1, 1, 1)
	dc.Clear()

	plotLeft := chartMarginLeft
	plotRight := float64(chartWidth) - chartMarginRight
	plotTop := chartMarginTop
	plotBottom := float64(chartHeight) - chartMarginBottom

	minV, maxV := points[0].Rainfall, points[0].Rainfall
	for _, p := range points {
		if p.Rainfall < minV {
			minV = p.Rainfall
		}
		if p.Rainfall > maxV {
			maxV = p.Rainfall
		}
	}
	if maxV == minV {
		// Flat series still needs a visible vertical range.
		maxV = minV + 1
	}

	xAt := func(i int) float64 {
		if len(points) == 1 {
			return (plotLeft + plotRight) / 2
		}
		return plotLeft + (plotRight-plotLeft)*float64(i)/float64(len(points)-1)
	}
	yAt := func(v float64) float64 {
		return plotBottom - (plotBottom-plotTop)*(v-minV)/(maxV-minV)
	}

	// Horizontal grid and y tick labels.
	dc.SetFontFace(cs.labelFace)
	for i := 0; i <= chartYTicks; i++ {
		v := minV + (maxV-minV)*float64(i)/float64(chartYTicks)
		y := yAt(v)
		dc.SetRGB(0.85, 0.85, 0.85)
		dc.SetLineWidth(1)
		dc.DrawLine(plotLeft, y, plotRight, y)
		dc.Stroke()
		dc.SetRGB(0.25, 0.25, 0.25)
		dc.DrawStringAnchored(fmt.Sprintf("%.1f", v), plotLeft-8, y, 1, 0.5)
	}

	// Axes.
	dc.SetRGB(0.1, 0.1, 0.1)
	dc.SetLineWidth(1.5)
	dc.DrawLine(plotLeft, plotTop, plotLeft, plotBottom)
	dc.DrawLine(plotLeft, plotBottom, plotRight, plotBottom)
	dc.Stroke()

	// Series line.
	dc.SetRGB(0.12, 0.35, 0.72)
	dc.SetLineWidth(2)
	for i := 1; i < len(points); i++ {
		dc.DrawLine(xAt(i-1), yAt(points[i-1].Rainfall), xAt(i), yAt(points[i].Rainfall))
	}
	dc.Stroke()

	// Point markers and x tick labels (calendar label over raw date).
	for i, p := range points {
		x := xAt(i)
		dc.SetRGB(0.12, 0.35, 0.72)
		dc.DrawCircle(x, yAt(p.Rainfall), 4)
		dc.Fill()

		dc.SetRGB(0.25, 0.25, 0.25)
		dc.DrawStringAnchored(p.Label, x, plotBottom+16, 0.5, 0.5)
		dc.DrawStringAnchored(p.Date, x, plotBottom+32, 0.5, 0.5)
	}

	// Title and axis captions.
	dc.SetRGB(0.1, 0.1, 0.1)
	dc.SetFontFace(cs.titleFace)
	dc.DrawStringAnchored(title, float64(chartWidth)/2, chartMarginTop/2, 0.5, 0.5)
	dc.SetFontFace(cs.labelFace)
	dc.DrawStringAnchored("Date", (plotLeft+plotRight)/2, float64(chartHeight)-20, 0.5, 0.5)
	dc.Push()
	dc.RotateAbout(-gg.Radians(90), 24, (plotTop+plotBottom)/2)
	dc.DrawStringAnchored("Rainfall", 24, (plotTop+plotBottom)/2, 0.5, 0.5)
	dc.Pop()

	if err := dc.EncodePNG(&buf); err != nil {
		return bytes.Buffer{}, fmt.Errorf("encode chart png: %w", err)
	}
	return buf, nil
}

func loadFontFace(fontPath string, size float64) (font.Face, error) {
	fontBytes, err := os.ReadFile(fontPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read font file: %w", err)
	}
	parsedFont, err := truetype.Parse(fontBytes)
	if err != nil {
		return nil, fmt.Errorf("failed to parse TTF: %w", err)
	}
	return truetype.NewFace(parsedFont, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	}), nil
}
