package view

import (
	"embed"
	"fmt"
	"goalTracker/internal/models/goal"
	"html/template"
	"io"
	"io/fs"
	"net/url"
	"strings"
	texttemplate "text/template"
)

//go:embed templates/*.html templates/*.txt
var templatesFS embed.FS

//go:embed static
var staticFS embed.FS

// Static holds the stylesheet served under /static/.
func Static() fs.FS {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return sub
}

type FormValues struct {
	Title       string
	Category    string
	Priority    string
	Description string
}

type Page struct {
	Board  Board
	Notice string
	Error  string
	Form   FormValues
}

type EditPage struct {
	Card   GoalCard
	Error  string
	Notice string
	Filter goal.Filter
}

type ConfirmPage struct {
	Question  string
	Title     string
	Action    string
	CancelURL string
}

type Renderer struct {
	html *template.Template
	text *texttemplate.Template
}

func NewRenderer() (*Renderer, error) {
	html, err := template.New("").ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("разбор html шаблонов: %w", err)
	}

	text, err := texttemplate.New("board.txt").Funcs(texttemplate.FuncMap{
		"bar":    progressBar,
		"indent": indent,
	}).ParseFS(templatesFS, "templates/board.txt")
	if err != nil {
		return nil, fmt.Errorf("разбор текстового шаблона: %w", err)
	}

	return &Renderer{html: html, text: text}, nil
}

type pageData struct {
	Page
	Categories     []string
	Priorities     []string
	FilterCategory string
	FilterPriority string
	Query          string
}

func (r *Renderer) Page(w io.Writer, p Page) error {
	return r.html.ExecuteTemplate(w, "page.html", pageData{
		Page:           p,
		Categories:     categoryOptions(),
		Priorities:     priorityOptions(),
		FilterCategory: string(p.Board.Filter.Category),
		FilterPriority: string(p.Board.Filter.Priority),
		Query:          FilterQuery(p.Board.Filter),
	})
}

type editData struct {
	EditPage
	Categories []string
	Priorities []string
	Query      string
}

func (r *Renderer) Edit(w io.Writer, p EditPage) error {
	return r.html.ExecuteTemplate(w, "edit.html", editData{
		EditPage:   p,
		Categories: categoryOptions(),
		Priorities: priorityOptions(),
		Query:      FilterQuery(p.Filter),
	})
}

func (r *Renderer) Confirm(w io.Writer, p ConfirmPage) error {
	return r.html.ExecuteTemplate(w, "confirm.html", p)
}

// Text draws the board for a terminal.
func (r *Renderer) Text(w io.Writer, b Board) error {
	return r.text.Execute(w, b)
}

// FilterQuery keeps the active filters across redirects and links.
func FilterQuery(f goal.Filter) string {
	values := url.Values{}
	if f.Category != "" {
		values.Set("category", string(f.Category))
	}
	if f.Priority != "" {
		values.Set("priority", string(f.Priority))
	}
	if len(values) == 0 {
		return ""
	}
	return "?" + values.Encode()
}

func categoryOptions() []string {
	out := make([]string, 0, len(goal.Categories))
	for _, c := range goal.Categories {
		out = append(out, string(c))
	}
	return out
}

func priorityOptions() []string {
	out := make([]string, 0, len(goal.Priorities))
	for _, p := range goal.Priorities {
		out = append(out, string(p))
	}
	return out
}

func progressBar(progress int) string {
	const width = 20
	filled := min(width, max(0, progress*width/goal.ProgressMax))
	return strings.Repeat("#", filled) + strings.Repeat(".", width-filled)
}

func indent(s string) string {
	return strings.ReplaceAll(strings.TrimSpace(s), "\n", "\n      ")
}
