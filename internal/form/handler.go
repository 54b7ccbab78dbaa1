package form

import (
	"colorseason/internal/analysis"
	"colorseason/internal/hexcolor"
	"colorseason/internal/season"
	"colorseason/internal/templates"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"
)

const sessionCookie = "cs_session"

type pipeline interface {
	Run(ctx context.Context, colors analysis.Colors) season.Display
}

// Controller serves the color form. It is built once at startup and keeps no
// per-visitor state beyond which sessions have a submission in flight.
type Controller struct {
	pipeline    pipeline
	submissions *submissions
}

func NewController(p pipeline) *Controller {
	return &Controller{
		pipeline:    p,
		submissions: newSubmissions(),
	}
}

func (c *Controller) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /{$}", c.handleHome)
	mux.HandleFunc("POST /fields/{field}/picker", c.handlePicker)
	mux.HandleFunc("POST /fields/{field}/hex", c.handleHex)
	mux.HandleFunc("POST /analyze", c.handleAnalyze)
}

// InFlight is the number of sessions currently submitting.
func (c *Controller) InFlight() int {
	return c.submissions.Len()
}

type fieldView struct {
	ColorField
	OOB bool
}

func (c *Controller) handleHome(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	ensureSession(w, r)

	f := Default()
	data := struct {
		Fields    []fieldView
		Analyzing season.Display
	}{
		Analyzing: season.Analyzing(),
	}
	for _, field := range f.Fields {
		data.Fields = append(data.Fields, fieldView{ColorField: field})
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := templates.Home.Execute(w, data); err != nil {
		slog.ErrorContext(ctx, "home template execute error", "error", err)
		http.Error(w, "template error", http.StatusInternalServerError)
	}
}

func (c *Controller) handlePicker(w http.ResponseWriter, r *http.Request) {
	field, ok := fieldFromRequest(w, r)
	if !ok {
		return
	}
	value := r.PostForm.Get(pickerKey(field.Name))
	if !hexcolor.Valid(value) {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	writeFragments(w, r, field.OnPickerChange(value), "hex", "swatch")
}

func (c *Controller) handleHex(w http.ResponseWriter, r *http.Request) {
	field, ok := fieldFromRequest(w, r)
	if !ok {
		return
	}
	raw := r.PostForm.Get(hexKey(field.Name))
	if !hexcolor.Valid(raw) {
		// leave picker and swatch alone, the text box keeps what was typed
		w.WriteHeader(http.StatusNoContent)
		return
	}
	// the text box comes back normalized so it matches the picker
	writeFragments(w, r, field.OnHexTextChange(raw), "picker", "hex", "swatch")
}

// fieldFromRequest rebuilds the {field} named in the path from the posted
// form. It writes the error response itself.
func fieldFromRequest(w http.ResponseWriter, r *http.Request) (ColorField, bool) {
	name, err := ParseFieldName(r.PathValue("field"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return ColorField{}, false
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return ColorField{}, false
	}
	field := ColorField{
		Name:    name,
		Picker:  strings.ToUpper(r.PostForm.Get(pickerKey(name))),
		HexText: r.PostForm.Get(hexKey(name)),
	}
	field.RepaintSwatch()
	return field, true
}

func writeFragments(w http.ResponseWriter, r *http.Request, field ColorField, names ...string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	view := fieldView{ColorField: field, OOB: true}
	for _, name := range names {
		if err := templates.Fragments.ExecuteTemplate(w, name, view); err != nil {
			slog.ErrorContext(r.Context(), "fragment template execute error", "fragment", name, "error", err)
			return
		}
	}
}

func (c *Controller) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	session, ok := sessionFromRequest(r)
	if !ok {
		// the guard is per session, so a submission must carry one
		ensureSession(w, r)
		renderResult(w, r, http.StatusBadRequest, season.ErrorDisplay("Session expired", "Reload the page and try again."))
		return
	}

	if err := r.ParseForm(); err != nil {
		renderResult(w, r, http.StatusBadRequest, season.ErrorDisplay("Invalid Request", "The form could not be read."))
		return
	}
	f, err := FromValues(r.PostForm)
	if err != nil {
		slog.InfoContext(ctx, "rejected submission", "error", err)
		renderResult(w, r, http.StatusBadRequest, season.ErrorDisplay("Invalid Color", err.Error()))
		return
	}

	if err := c.submissions.Begin(session); err != nil {
		if errors.Is(err, ErrBusy) {
			renderResult(w, r, http.StatusConflict, season.ErrorDisplay("Analysis already in progress", "Wait for the current analysis to finish."))
			return
		}
		renderResult(w, r, http.StatusInternalServerError, season.Failed())
		return
	}
	failed := true
	defer func() {
		state := c.submissions.Finish(session, failed)
		slog.InfoContext(ctx, "submission finished", "session", session, "state", state.String())
	}()

	d := c.pipeline.Run(ctx, f.Colors())
	failed = d.IsError()
	renderResult(w, r, http.StatusOK, d)
}

func renderResult(w http.ResponseWriter, r *http.Request, status int, d season.Display) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	if err := templates.Result.Execute(w, d); err != nil {
		slog.ErrorContext(r.Context(), "result template execute error", "error", err)
	}
}

// ensureSession returns the caller's session id, issuing one if needed.
func ensureSession(w http.ResponseWriter, r *http.Request) string {
	if id, ok := sessionFromRequest(r); ok {
		return id
	}
	id := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return id
}

func sessionFromRequest(r *http.Request) (string, bool) {
	c, err := r.Cookie(sessionCookie)
	if err != nil {
		return "", false
	}
	if _, err := uuid.Parse(c.Value); err != nil {
		return "", false
	}
	return c.Value, true
}
