package templates

import (
	"embed"
	"html/template"
)

//go:embed *.html
var htmlFiles embed.FS

var Home,
	Result *template.Template

// Fragments holds the named field fragments (field, picker, hex, swatch).
var Fragments *template.Template

func Init(styleAssetPath string) error {
	funcs := template.FuncMap{
		"StyleAssetPath": func() string { return styleAssetPath },
	}
	tmpls, err := template.New("all").Funcs(funcs).ParseFS(htmlFiles, "*.html")
	if err != nil {
		return err
	}
	Home = ensure(tmpls, "home.html")
	Result = ensure(tmpls, "result.html")
	ensure(tmpls, "field")
	ensure(tmpls, "picker")
	ensure(tmpls, "hex")
	ensure(tmpls, "swatch")
	Fragments = tmpls
	return nil
}

func ensure(templates *template.Template, name string) *template.Template {
	tmpl := templates.Lookup(name)
	if tmpl == nil {
		panic("template " + name + " not found")
	}
	return tmpl
}
