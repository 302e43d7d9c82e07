package render

import (
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// LineKind selects the style of a flattened body line
type LineKind uint8

const (
	LinePlain LineKind = iota
	LineHeading
	LineBullet
	LineCode
	LineRule
	LineBlank
)

// Line is one terminal row of scene body text
type Line struct {
	Text string
	Kind LineKind
}

var markdown = goldmark.New()

// Flatten parses a markdown scene body and wraps it into terminal rows of width cells
func Flatten(src string, width int) []Line {
	if width < 1 {
		width = 1
	}
	source := []byte(src)
	doc := markdown.Parser().Parse(text.NewReader(source))

	var lines []Line
	blank := func() {
		if len(lines) > 0 && lines[len(lines)-1].Kind != LineBlank {
			lines = append(lines, Line{Kind: LineBlank})
		}
	}

	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		switch b := n.(type) {
		case *ast.Heading:
			blank()
			lines = append(lines, wrap(strings.ToUpper(inlineText(b, source)), width, "", LineHeading)...)
			lines = append(lines, Line{Kind: LineBlank})
		case *ast.Paragraph, *ast.TextBlock:
			lines = append(lines, wrap(inlineText(b, source), width, "", LinePlain)...)
			blank()
		case *ast.List:
			for item := b.FirstChild(); item != nil; item = item.NextSibling() {
				lines = append(lines, wrap(inlineText(item, source), width, "• ", LineBullet)...)
			}
			blank()
		case *ast.FencedCodeBlock, *ast.CodeBlock:
			segs := b.Lines()
			for i := 0; i < segs.Len(); i++ {
				seg := segs.At(i)
				row := strings.TrimRight(string(seg.Value(source)), "\n")
				lines = append(lines, Line{Text: truncate("  "+row, width), Kind: LineCode})
			}
			blank()
		case *ast.ThematicBreak:
			lines = append(lines, Line{Text: strings.Repeat("─", width), Kind: LineRule})
		default:
			if t := inlineText(b, source); t != "" {
				lines = append(lines, wrap(t, width, "", LinePlain)...)
				blank()
			}
		}
	}

	for len(lines) > 0 && lines[len(lines)-1].Kind == LineBlank {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// inlineText collects the text of n, turning line breaks into spaces
func inlineText(n ast.Node, source []byte) string {
	var sb strings.Builder
	ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch t := c.(type) {
		case *ast.Text:
			sb.Write(t.Segment.Value(source))
			if t.SoftLineBreak() || t.HardLineBreak() {
				sb.WriteByte(' ')
			}
		case *ast.String:
			sb.Write(t.Value)
		}
		return ast.WalkContinue, nil
	})
	return strings.TrimSpace(sb.String())
}

// wrap breaks s on spaces so no row exceeds width display cells
func wrap(s string, width int, bullet string, kind LineKind) []Line {
	words := strings.Fields(s)
	if len(words) == 0 {
		return nil
	}

	indent := strings.Repeat(" ", runewidth.StringWidth(bullet))
	var out []Line
	cur := bullet
	curW := runewidth.StringWidth(bullet)
	fresh := true

	for _, w := range words {
		ww := runewidth.StringWidth(w)
		switch {
		case fresh:
			cur += w
			curW += ww
			fresh = false
		case curW+1+ww <= width:
			cur += " " + w
			curW += 1 + ww
		default:
			out = append(out, Line{Text: truncate(cur, width), Kind: kind})
			cur = indent + w
			curW = runewidth.StringWidth(indent) + ww
		}
	}
	out = append(out, Line{Text: truncate(cur, width), Kind: kind})
	return out
}

func truncate(s string, width int) string {
	if runewidth.StringWidth(s) <= width {
		return s
	}
	return runewidth.Truncate(s, width, "…")
}
