package email

// PreviewData holds sample values for rendering each template locally.
var PreviewData = map[Template]map[string]string{
	TemplateWelcome: {
		"UserName": "Eva Stanley",
	},
	TemplatePropertyListed: {
		"OwnerName":     "Eva Stanley",
		"PropertyTitle": "Speed lamp",
		"City":          "Vancouver",
	},
}
