/*
 * Copyright 2026 The gqlview Authors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package render

import (
	"html/template"
	"io"
	"strings"

	"github.com/pkg/errors"
)

var htmlTmpl = template.Must(template.New("displayable").Parse(
	`{{- if eq .Kind.String "list" -}}
<div><ul class="ul">{{range .Items}}<li data-key="{{.Key}}">{{.Text}}</li>{{end}}</ul></div>
{{- else -}}
<div>{{.Text}}</div>
{{- end}}`))

// WriteHTML writes d as an HTML fragment.  Names and keys are escaped.
func WriteHTML(w io.Writer, d Displayable) error {
	return errors.Wrap(htmlTmpl.Execute(w, d), "while writing HTML")
}

// WriteText writes d for a terminal: text as is, list items one per line.
func WriteText(w io.Writer, d Displayable) error {
	var b strings.Builder
	switch d.Kind {
	case KindList:
		for _, it := range d.Items {
			b.WriteString("- ")
			b.WriteString(it.Text)
			b.WriteByte('\n')
		}
	default:
		b.WriteString(d.Text)
		b.WriteByte('\n')
	}
	_, err := io.WriteString(w, b.String())
	return errors.Wrap(err, "while writing text")
}
