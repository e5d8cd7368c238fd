// Package pages renders the HTML pages of the screening application.
//
// The surface is two small views (the upload form and an error page), so
// the components are handwritten templ.Component values instead of
// generated templates.
package pages

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
)

// IndexData feeds the upload form page with the loaded reference set sizes.
type IndexData struct {
	ImneoNames       int
	ImneoCompanies   int
	XClientNames     int
	XClientCompanies int
}

const indexHTML = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>List Screening</title>
<style>
body { font-family: system-ui, sans-serif; max-width: 40rem; margin: 3rem auto; padding: 0 1rem; color: #1a202c; }
h1 { font-size: 1.5rem; }
form { border: 1px solid #cbd5e0; border-radius: 6px; padding: 1.5rem; margin-top: 1.5rem; }
label { display: block; margin-bottom: .5rem; font-weight: 600; }
input[type=file], select { display: block; margin-bottom: 1.25rem; }
button { background: #2b6cb0; color: #fff; border: 0; border-radius: 4px; padding: .5rem 1.25rem; font-size: 1rem; cursor: pointer; }
.refs { color: #4a5568; font-size: .875rem; margin-top: 1.5rem; }
</style>
</head>
<body>
<h1>List Screening</h1>
<p>Upload a list of people or companies. Every row is checked against the
reference groups and the annotated workbook is returned for download.</p>
<form method="post" action="/upload" enctype="multipart/form-data">
<label for="file">List file (CSV or Excel)</label>
<input id="file" type="file" name="file" accept=".csv,.xlsx" required>
<label for="mode">Check mode</label>
<select id="mode" name="mode">
<option value="candidate">Candidate</option>
<option value="client">Client / Relation</option>
</select>
<button type="submit">Check list</button>
</form>
<p class="refs">Loaded reference data &mdash; IMNEO: %d names, %d companies.
X-Client: %d names, %d companies.</p>
</body>
</html>
`

// Index is the upload form page.
func Index(data IndexData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w, indexHTML,
			data.ImneoNames, data.ImneoCompanies,
			data.XClientNames, data.XClientCompanies)
		return err
	})
}

const errorHTML = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>Screening failed</title>
<style>
body { font-family: system-ui, sans-serif; max-width: 40rem; margin: 3rem auto; padding: 0 1rem; color: #1a202c; }
h1 { font-size: 1.5rem; color: #c53030; }
.action { color: #4a5568; }
.code { color: #718096; font-size: .875rem; margin-top: 1.5rem; }
</style>
</head>
<body>
<h1>Screening failed</h1>
<p>%s</p>
<p class="action">%s</p>
<p class="code">Error code %s &mdash; quote this code when contacting support.</p>
<p><a href="/">Back to the upload form</a></p>
</body>
</html>
`

// Error is the full error page shown to browser form posts. The message,
// action and code come from the error mapping table.
func Error(message, action, code string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w, errorHTML,
			templ.EscapeString(message),
			templ.EscapeString(action),
			templ.EscapeString(code))
		return err
	})
}
