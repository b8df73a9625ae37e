package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/coursemap/pkg/dag"
	"github.com/matzehuels/coursemap/pkg/layout"
)

// Format is an output format for [Render].
type Format string

// Supported output formats.
const (
	FormatSVG Format = "svg"
	FormatPNG Format = "png"
	FormatDOT Format = "dot"
)

// ParseFormat converts a string to a Format, rejecting unknown values.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatSVG, FormatPNG, FormatDOT:
		return f, nil
	default:
		return "", fmt.Errorf("invalid format: %q (must be one of: svg, png, dot)", s)
	}
}

// Default canvas size in inches.
const (
	DefaultWidth  = 12.0
	DefaultHeight = 8.0
)

// Options configures node-link diagram rendering.
type Options struct {
	// Width and Height give the canvas size in inches. The normalized
	// [0,100] coordinates are scaled onto it. Zero means the default.
	Width, Height float64

	// Detailed adds the node ID and depth below the title.
	Detailed bool
}

func (o Options) size() (w, h float64) {
	w, h = o.Width, o.Height
	if w <= 0 {
		w = DefaultWidth
	}
	if h <= 0 {
		h = DefaultHeight
	}
	return w, h
}

// ToDOT converts a computed layout to Graphviz DOT with every node pinned to
// its position. Edges run from each prerequisite to the node that requires
// it; references to nodes missing from the layout are skipped.
//
// Nodes reported on a cycle (see [layout.Layout.MarkCyclic]) are drawn in red,
// as are edges between two such nodes.
//
// Layout Y grows downward while Graphviz Y grows upward, so Y is flipped.
func ToDOT(l *layout.Layout, g *dag.Graph, opts Options) string {
	w, h := opts.size()
	cyclic := make(map[string]bool, len(l.Cyclic))
	for _, id := range l.Cyclic {
		cyclic[id] = true
	}
	placed := make(map[string]bool, len(l.Placements))

	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  layout=neato;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  splines=true;\n")
	buf.WriteString("  overlap=true;\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=12, margin=\"0.15,0.05\"];\n")
	buf.WriteString("\n")

	for _, p := range l.Placements {
		placed[p.ID] = true
		x := p.X / 100 * w
		y := (100 - p.Y) / 100 * h
		attrs := []string{
			fmt.Sprintf("label=%q", fmtLabel(p, opts.Detailed)),
			fmt.Sprintf("pos=\"%.2f,%.2f!\"", x, y),
		}
		if cyclic[p.ID] {
			attrs = append(attrs, "color=red", "fontcolor=red", "penwidth=2")
		}
		fmt.Fprintf(&buf, "  %q [%s];\n", p.ID, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	if g != nil {
		for _, n := range g.Nodes() {
			if !placed[n.ID] {
				continue
			}
			for _, pre := range n.Prerequisites {
				if !placed[pre] {
					continue
				}
				if cyclic[pre] && cyclic[n.ID] {
					fmt.Fprintf(&buf, "  %q -> %q [color=red];\n", pre, n.ID)
				} else {
					fmt.Fprintf(&buf, "  %q -> %q;\n", pre, n.ID)
				}
			}
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(p layout.Placement, detailed bool) string {
	label := p.Title
	if label == "" {
		label = p.ID
	}
	if !detailed {
		return label
	}
	return fmt.Sprintf("%s\n%s · depth %d", label, p.ID, p.Depth)
}

// Render converts DOT source to the given format. [FormatDOT] returns the
// source unchanged; SVG and PNG are produced in-process by Graphviz using
// the neato engine, which honors the pinned positions.
func Render(ctx context.Context, dot string, f Format) ([]byte, error) {
	switch f {
	case FormatDOT:
		return []byte(dot), nil
	case FormatSVG:
		out, err := render(ctx, dot, graphviz.SVG)
		if err != nil {
			return nil, err
		}
		return normalizeViewBox(out), nil
	case FormatPNG:
		return render(ctx, dot, graphviz.PNG)
	default:
		return nil, fmt.Errorf("unsupported format: %q", f)
	}
}

// RenderSVG renders DOT source to SVG.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	return Render(ctx, dot, FormatSVG)
}

// RenderPNG renders DOT source to PNG.
func RenderPNG(ctx context.Context, dot string) ([]byte, error) {
	return Render(ctx, dot, FormatPNG)
}

func render(ctx context.Context, dot string, f graphviz.Format) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()
	gv.SetLayout(graphviz.NEATO)

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, f, &buf); err != nil {
		return nil, fmt.Errorf("render %s: %w", f, err)
	}
	return buf.Bytes(), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces the Graphviz <svg> tag with one whose origin is
// zero and whose width and height match the viewBox, so the output scales
// cleanly when embedded.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	tag := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(tag))
}
