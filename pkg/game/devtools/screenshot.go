package devtools

import (
	"fmt"
	"html"
	"io"
	"os"
	"strings"
	"time"

	"github.com/leonelquinteros/gotext"

	"areagen/pkg/game/area"
)

const htmlHead = `<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>%s</title>
    <style>
        body {
            background-color: #1a1a2e;
            color: #eee;
            font-family: 'Courier New', monospace;
            padding: 20px;
        }
        .header {
            color: #bb86fc;
            font-size: 18px;
            margin-bottom: 10px;
        }
        .meta { color: #888; margin-bottom: 20px; }
        .map-container {
            background-color: #0f0f1a;
            padding: 20px;
            border-radius: 8px;
            display: inline-block;
            margin: 20px 0;
        }
        .map-row {
            white-space: pre;
            line-height: 1.2;
            font-size: 16px;
        }
        .floor { color: #888; }
        .blocked { color: #4444ff; }
        .wall { color: #666; font-weight: bold; }
        .feature { color: #ffff00; font-weight: bold; }
        .prop { color: #ff66ff; }
        .encounter { color: #ff4444; font-weight: bold; }
        .path { color: #00ff00; font-weight: bold; }
        .transition { color: #00ffff; font-weight: bold; }
        .viewer { color: #00ff00; font-weight: bold; }
        .unexplored { color: #333; }
        .legend { color: #888; margin-top: 20px; }
    </style>
</head>
<body>
`

// WriteHTML renders the tile map of a as a standalone HTML page
func WriteHTML(w io.Writer, a *area.Area, opts Options) error {
	var sb strings.Builder

	title := html.EscapeString(a.Name)
	fmt.Fprintf(&sb, htmlHead, title)
	fmt.Fprintf(&sb, `    <div class="header">%s</div>`+"\n", title)
	fmt.Fprintf(&sb, `    <div class="meta">%s: %d &middot; id: %s &middot; %dx%d</div>`+"\n",
		html.EscapeString(gotext.Get("Seed")), a.Seed, a.ID, a.Layers.Width(), a.Layers.Height())

	sb.WriteString(`    <div class="map-container">` + "\n")
	for _, row := range tileGlyphs(a, opts, opts.Viewer != nil) {
		sb.WriteString(`        <div class="map-row">`)
		for _, g := range row {
			fmt.Fprintf(&sb, `<span class="%s">%s</span>`, glyphClassNames[g.class], html.EscapeString(string(g.r)))
		}
		sb.WriteString("</div>\n")
	}
	sb.WriteString(`    </div>` + "\n")

	fmt.Fprintf(&sb, `    <div class="legend">%s</div>`+"\n", html.EscapeString(legend))
	sb.WriteString("</body>\n</html>\n")

	_, err := io.WriteString(w, sb.String())
	return err
}

// SaveScreenshotHTML writes the HTML snapshot to a timestamped file and
// returns its name
func SaveScreenshotHTML(a *area.Area, opts Options) (string, error) {
	timestamp := time.Now().Format("20060102-150405")
	filename := fmt.Sprintf("screenshot-%s.html", timestamp)

	f, err := os.Create(filename)
	if err != nil {
		return "", err
	}
	defer f.Close()

	if err := WriteHTML(f, a, opts); err != nil {
		return filename, err
	}
	return filename, nil
}
