package codegen

// htmlElementFunc maps a tag onto its constructor in the html package, ""
// when only g.El can express it.
func htmlElementFunc(tag string) string {
	if fn, ok := elementFuncs[tag]; ok {
		return fn
	}
	return ""
}

var elementFuncs = map[string]string{
	"a": "A", "article": "Article", "aside": "Aside",
	"b": "B", "blockquote": "BlockQuote", "body": "Body", "br": "Br",
	"button": "Button", "caption": "Caption", "code": "Code", "col": "Col",
	"dd": "Dd", "details": "Details", "dialog": "Dialog", "div": "Div",
	"dl": "Dl", "dt": "Dt", "em": "Em", "fieldset": "FieldSet",
	"figure": "Figure", "footer": "Footer", "form": "Form",
	"h1": "H1", "h2": "H2", "h3": "H3", "h4": "H4", "h5": "H5", "h6": "H6",
	"head": "Head", "header": "Header", "hr": "Hr", "html": "HTML",
	"i": "I", "iframe": "IFrame", "img": "Img", "input": "Input",
	"label": "Label", "legend": "Legend", "li": "Li", "link": "Link",
	"main": "Main", "meta": "Meta", "nav": "Nav", "ol": "Ol",
	"optgroup": "OptGroup", "option": "Option", "p": "P", "pre": "Pre",
	"progress": "Progress", "script": "Script", "section": "Section",
	"select": "Select", "small": "Small", "span": "Span", "strong": "Strong",
	"style": "StyleEl", "summary": "Summary", "table": "Table",
	"tbody": "TBody", "td": "Td", "textarea": "Textarea", "tfoot": "TFoot",
	"th": "Th", "thead": "THead", "title": "TitleEl", "tr": "Tr",
	"ul": "Ul", "video": "Video",
}

// htmlStringAttrFunc maps an attribute key onto its constructor in the html
// package, "" when only g.Attr can express it.
func htmlStringAttrFunc(key string) string {
	if fn, ok := stringAttrFuncs[key]; ok {
		return fn
	}
	return ""
}

// htmlFlagAttrFunc maps a boolean attribute key onto its no-argument
// constructor in the html package, "" when only a valueless g.Attr works.
func htmlFlagAttrFunc(key string) string {
	if fn, ok := flagAttrFuncs[key]; ok {
		return fn
	}
	return ""
}

// isBoolAttr reports whether key is a boolean HTML attribute, so an
// expression value reads as a render condition rather than attribute text.
func isBoolAttr(key string) bool {
	_, ok := flagAttrFuncs[key]
	return ok
}

var flagAttrFuncs = map[string]string{
	"async": "Async", "autofocus": "AutoFocus", "autoplay": "AutoPlay",
	"checked": "Checked", "controls": "Controls", "defer": "Defer",
	"disabled": "Disabled", "loop": "Loop", "multiple": "Multiple",
	"muted": "Muted", "readonly": "ReadOnly", "required": "Required",
	"selected": "Selected",
}

var stringAttrFuncs = map[string]string{
	"accept": "Accept", "action": "Action", "alt": "Alt",
	"autocomplete": "AutoComplete", "charset": "Charset", "class": "Class",
	"cols": "Cols", "content": "Content", "for": "For", "form": "FormAttr",
	"height": "Height", "href": "Href", "id": "ID", "lang": "Lang",
	"max": "Max", "method": "Method", "min": "Min", "name": "Name",
	"placeholder": "Placeholder", "rel": "Rel", "rows": "Rows",
	"src": "Src", "style": "Style", "tabindex": "TabIndex",
	"target": "Target", "title": "Title", "type": "Type",
	"value": "Value", "width": "Width",
}
