// Command drawdemo renders a demo sketch to SVG and reports the size of the
// mesh the same sketch tessellates into.
package main

import (
	"flag"
	"io"
	"log"
	"log/slog"
	"math"
	"os"

	"github.com/gogpu/draw"
	"github.com/gogpu/draw/backends/meshrender"
	_ "github.com/gogpu/draw/backends/svg"
	"github.com/gogpu/draw/geom"
	"github.com/gogpu/draw/tess"
)

func main() {
	var (
		width   = flag.Int("width", 800, "canvas width")
		height  = flag.Int("height", 600, "canvas height")
		output  = flag.String("output", "demo.svg", "output file")
		theme   = flag.String("theme", "", "YAML theme file")
		verbose = flag.Bool("v", false, "log replay statistics")
	)
	flag.Parse()

	if *verbose {
		draw.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	opts := []draw.Option{draw.WithBackground(draw.RGB8(0x1e, 0x1e, 0x2e))}
	if *theme != "" {
		t, err := loadTheme(*theme)
		if err != nil {
			log.Fatalf("Failed to load theme: %v", err)
		}
		opts = append(opts, draw.WithTheme(t))
	}
	d := draw.New(opts...)
	w, h := float32(*width), float32(*height)

	backend, err := draw.NewBackend("svg")
	if err != nil {
		log.Fatalf("Failed to create backend: %v", err)
	}
	sketch(d, w, h)
	d.Render(backend)
	if err := save(*output, backend.(io.WriterTo)); err != nil {
		log.Fatalf("Failed to save: %v", err)
	}

	r := meshrender.New()
	sketch(d, w, h)
	d.Render(r)
	r.Commands()
	st := r.Stats()

	log.Printf("Demo saved to %s (%dx%d)\n", *output, *width, *height)
	log.Printf("Mesh: %d vertices, %d indices, %d draws\n", st.Vertices, st.Indices, st.Draws)
}

func loadTheme(name string) (*draw.Theme, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return draw.LoadTheme(f)
}

func save(name string, doc io.WriterTo) error {
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	if _, err := doc.WriteTo(f); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// sketch records the demo; the origin is the center of the canvas.
func sketch(d *draw.Draw, w, h float32) {
	d.Rect().WH(w, h).NoFill().Stroke(draw.RGB8(0x58, 0x5b, 0x70)).StrokeWeight(4)

	drawShapes(d, w)
	drawTransforms(d.XY(0, -h/4))
	drawPaths(d, w, h)
}

func drawShapes(d *draw.Draw, w float32) {
	colors := []draw.Color{
		draw.RGBA(1, 0.3, 0.3, 0.8),
		draw.RGBA(0.3, 1, 0.3, 0.8),
		draw.RGBA(0.3, 0.3, 1, 0.8),
	}
	for i, c := range colors {
		d.Ellipse().XY(-w/4+float32(i)*50, 100).Radius(60).Color(c)
	}

	d.Rect().XY(w/8, 100).WH(120, 80).Color(draw.Hex("#f9e2af")).Stroke(draw.White).StrokeWeight(2)
	d.Tri().XY(w/3, 100).WH(100, 100)
	d.Ellipse().XY(w/3, -20).Radius(40).Section(0, math.Pi*1.5).Color(draw.Hex("#fab387"))
}

func drawTransforms(d *draw.Draw) {
	const n = 12
	for i := 0; i < n; i++ {
		a := float32(i) * 2 * math.Pi / n
		d.Rotate(a).Rect().XY(120, 0).WH(40, 10).Color(draw.HSL(float32(i)*360/n, 0.7, 0.6))
	}
}

func drawPaths(d *draw.Draw, w, h float32) {
	pts := make([]geom.Vec2, 0, 64)
	for i := 0; i < cap(pts); i++ {
		x := -w/2 + 40 + float32(i)*(w-80)/float32(cap(pts)-1)
		y := -h/3 + 30*float32(math.Sin(float64(i)/4))
		pts = append(pts, geom.V2(x, y))
	}
	d.Path().Stroke().Weight(3).Caps(tess.LineCapRound).Points(pts...).Color(draw.Hex("#89b4fa"))

	star, err := d.Polygon().XY(-w/3, -40).SVG("M0 50 L12 15 L48 15 L19 -6 L29 -40 L0 -20 L-29 -40 L-19 -6 L-48 15 L-12 15 Z")
	if err != nil {
		log.Fatalf("Invalid star: %v", err)
	}
	star.Color(draw.Hex("#f5c2e7")).FillRule(tess.FillRuleEvenOdd)

	d.Line().Points(geom.V2(-w/2+40, h/2-40), geom.V2(w/2-40, h/2-40)).Weight(2).Color(draw.Hex("#a6e3a1"))
}
