package report

import (
	"embed"
	"errors"
	"html/template"
	"io"
	"net/url"

	"github.com/Kabroda-Trading/KTBB-APP/Internal/handlers/input"
	"github.com/Kabroda-Trading/KTBB-APP/Internal/utils/formatting"
)

//go:embed templates/*.html
var templateFS embed.FS

var pages = template.Must(template.New("pages").Funcs(template.FuncMap{
	"price":    formatting.Price,
	"level":    formatting.Level,
	"strength": formatting.Strength,
}).ParseFS(templateFS, "templates/*.html"))

// FormPage is the input form, optionally re-filled after a failed submit.
type FormPage struct {
	Values    map[string]string
	Errors    map[string]string
	ErrorList input.Errors
}

func (FormPage) Groups() []input.FieldGroup {
	return input.Groups()
}

// NewFormPage re-fills the form from submitted values. err may be nil.
func NewFormPage(values url.Values, err error) FormPage {
	page := FormPage{Values: map[string]string{}, Errors: map[string]string{}}
	for _, f := range input.Fields {
		page.Values[f.Name] = values.Get(f.Name)
	}
	var errs input.Errors
	if errors.As(err, &errs) {
		page.ErrorList = errs
		page.Errors = errs.ByField()
	}
	return page
}

func RenderForm(w io.Writer, page FormPage) error {
	if page.Values == nil {
		page.Values = map[string]string{}
	}
	return pages.ExecuteTemplate(w, "form", page)
}

type resultPage struct {
	Review
	Block string
}

func RenderResult(w io.Writer, r Review) error {
	block, err := r.YAML()
	if err != nil {
		return err
	}
	return pages.ExecuteTemplate(w, "result", resultPage{Review: r, Block: block})
}
