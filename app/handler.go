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

package app

import (
	"bytes"
	"html/template"
	"net/http"
	"time"

	"github.com/golang/glog"

	"github.com/gqlview/gqlview/graphql/api"
	"github.com/gqlview/gqlview/render"
	"github.com/gqlview/gqlview/x"
)

var pageTmpl = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Heading}}</title>
</head>
<body>
<div id="root"><div class="App"><h2>{{.Heading}}</h2>{{.View}}</div></div>
</body>
</html>
`))

// Frames is the body of /users.json.
type Frames struct {
	Mode      Mode                 `json:"mode"`
	RequestID string               `json:"requestID"`
	Frames    []render.Displayable `json:"frames"`
	Error     string               `json:"error,omitempty"`
}

// Handler serves the page at / and the frames behind it at /users.json.  A
// failed fetch is part of the page, so both answer 200 once the request
// itself is valid.
func (a *App) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		out, ok := a.serve(w, r)
		if !ok {
			return
		}

		var view bytes.Buffer
		if err := render.WriteHTML(&view, out.last()); err != nil {
			glog.Errorf("Request %s: %v", out.RequestID, err)
			w.WriteHeader(http.StatusInternalServerError)
			x.SetStatus(w, x.Error, "Internal server error")
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := pageTmpl.Execute(w, struct {
			Heading string
			View    template.HTML
		}{Heading, template.HTML(view.String())}); err != nil {
			glog.Errorf("Request %s: error while writing page: %v", out.RequestID, err)
		}
	})
	mux.HandleFunc("/users.json", func(w http.ResponseWriter, r *http.Request) {
		out, ok := a.serve(w, r)
		if !ok {
			return
		}
		x.Reply(w, out)
	})
	return mux
}

// serve renders the view for one request.  It writes the error response
// itself and returns false when the request is not acceptable.
func (a *App) serve(w http.ResponseWriter, r *http.Request) (*Frames, bool) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.WriteHeader(http.StatusMethodNotAllowed)
		x.SetStatus(w, x.ErrorInvalidMethod, "Invalid method")
		return nil, false
	}

	mode := a.Mode
	if mode == "" {
		mode = ModeQuery
	}
	if m := r.URL.Query().Get("mode"); m != "" {
		var err error
		if mode, err = ParseMode(m); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			x.SetStatus(w, x.ErrorInvalidRequest, err.Error())
			return nil, false
		}
	}

	ctx, reqID := api.WithRequestID(r.Context(), r)
	w.Header().Set(api.RequestIDHeader, reqID)

	start := time.Now()
	out := &Frames{Mode: mode, RequestID: reqID}
	var frames render.Frames
	err := a.render(ctx, mode, &frames)
	out.Frames = append([]render.Displayable{}, frames...)
	if err != nil {
		out.Error = err.Error()
		glog.Warningf("Request %s: render ended early: %v", reqID, err)
		a.AccessLog.AccessE("users page", "requestID", reqID, "path", r.URL.Path,
			"mode", mode, "frames", len(frames), "latencyMs", x.SinceMs(start), "error", out.Error)
	} else {
		a.AccessLog.AccessI("users page", "requestID", reqID, "path", r.URL.Path,
			"mode", mode, "frames", len(frames), "latencyMs", x.SinceMs(start))
	}
	return out, true
}

func (f *Frames) last() render.Displayable {
	return render.Frames(f.Frames).Last()
}
