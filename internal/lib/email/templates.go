package email

// Template names an embedded file under templates/.
type Template string

const (
	TemplateWelcome        Template = "welcome"
	TemplatePropertyListed Template = "property_listed"
)

func (t Template) file() string {
	return string(t) + ".html"
}
