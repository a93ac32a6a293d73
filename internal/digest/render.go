// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package digest

import (
	"bytes"
	"html/template"
	"strings"
	"time"

	"github.com/pdiddy/arxiv-digest/pkg/types"
)

// NoReadingsMessage is rendered in place of entries when a digest is empty.
const NoReadingsMessage = "Lucky you, no new readings today..."

// digestTmpl renders the mailed HTML fragment. html/template escapes
// titles and abstracts, which may contain '<' from inline math.
var digestTmpl = template.Must(template.New("digest").Parse(
	`<h1>arXiv results for {{.Date}}</h1>` +
		`{{range .Entries}}` +
		`<h2>{{.Title}}</h2>` +
		`<h3>{{.AuthorList}}</h3>` +
		`<p>{{.Abstract}}</p>` +
		`<a href="{{.AbsURL}}">{{.ShortID}}</a> [<a href="{{.PDFURL}}">pdf</a>]` +
		`{{else}}` +
		`<p>{{.NoReadings}}</p>` +
		`{{end}}` +
		`<p><em>Selected keywords: {{.Keywords}}</em></p>`))

// RenderHTML renders entries as the digest body dated date. An empty entry
// list renders the no-readings message between the heading and the footer.
func RenderHTML(entries []types.Entry, keywords []string, date time.Time) (string, error) {
	data := struct {
		Date       string
		Entries    []types.Entry
		NoReadings string
		Keywords   string
	}{
		Date:       date.Format("2006-01-02"),
		Entries:    entries,
		NoReadings: NoReadingsMessage,
		Keywords:   strings.Join(keywords, ", "),
	}

	var buf bytes.Buffer
	if err := digestTmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
