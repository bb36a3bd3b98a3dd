package headless

import (
	"github.com/dop251/goja"
	"go.uber.org/zap"
	"golang.org/x/text/language"
)

// page is the script context of one loaded document.
type page struct {
	vm        *goja.Runtime
	document  *goja.Object
	source    string
	listeners []goja.Value
	stringify goja.Callable
	parse     goja.Callable
	post      func(json string)
}

// newPage creates a script context with the globals page script expects.
// post receives every message page script sends to the host, as JSON.
func newPage(source, title string, lang language.Tag, post func(json string)) *page {
	p := &page{vm: goja.New(), source: source, post: post}

	global := p.vm.GlobalObject()
	global.Set("window", global)
	global.Set("self", global)

	p.document = p.vm.NewObject()
	p.document.Set("title", title)
	p.document.Set("URL", source)
	p.document.Set("readyState", "complete")
	global.Set("document", p.document)

	location := p.vm.NewObject()
	location.Set("href", source)
	global.Set("location", location)

	navigator := p.vm.NewObject()
	navigator.Set("language", lang.String())
	navigator.Set("userAgent", "Mozilla/5.0 (headless) Edg/"+DefaultVersion)
	global.Set("navigator", navigator)

	webview := p.vm.NewObject()
	webview.Set("postMessage", p.postMessage)
	webview.Set("addEventListener", p.addEventListener)
	webview.Set("removeEventListener", p.removeEventListener)
	chrome := p.vm.NewObject()
	chrome.Set("webview", webview)
	global.Set("chrome", chrome)

	json := global.Get("JSON").ToObject(p.vm)
	p.stringify, _ = goja.AssertFunction(json.Get("stringify"))
	p.parse, _ = goja.AssertFunction(json.Get("parse"))
	return p
}

// run executes src as a script.
func (p *page) run(name, src string) (goja.Value, error) {
	prog, err := goja.Compile(name, src, false)
	if err != nil {
		return nil, err
	}
	return p.vm.RunProgram(prog)
}

// eval runs src and returns the JSON encoding of its completion value.
// Values JSON cannot represent encode as null.
func (p *page) eval(src string) (string, error) {
	v, err := p.run("script", src)
	if err != nil {
		return "null", err
	}
	return p.toJSON(v)
}

func (p *page) toJSON(v goja.Value) (string, error) {
	out, err := p.stringify(goja.Undefined(), v)
	if err != nil {
		return "null", err
	}
	if out == nil || goja.IsUndefined(out) {
		return "null", nil
	}
	return out.String(), nil
}

// title returns document.title as page script left it.
func (p *page) title() string {
	v := p.document.Get("title")
	if v == nil || goja.IsUndefined(v) || goja.IsNull(v) {
		return ""
	}
	return v.String()
}

func (p *page) postMessage(call goja.FunctionCall) goja.Value {
	json, err := p.toJSON(call.Argument(0))
	if err != nil {
		panic(p.vm.NewGoError(err))
	}
	p.post(json)
	return goja.Undefined()
}

func (p *page) addEventListener(call goja.FunctionCall) goja.Value {
	fn := call.Argument(1)
	if call.Argument(0).String() != "message" {
		return goja.Undefined()
	}
	if _, ok := goja.AssertFunction(fn); !ok {
		return goja.Undefined()
	}
	for _, l := range p.listeners {
		if l.SameAs(fn) {
			return goja.Undefined()
		}
	}
	p.listeners = append(p.listeners, fn)
	return goja.Undefined()
}

func (p *page) removeEventListener(call goja.FunctionCall) goja.Value {
	fn := call.Argument(1)
	for i, l := range p.listeners {
		if l.SameAs(fn) {
			p.listeners = append(p.listeners[:i], p.listeners[i+1:]...)
			break
		}
	}
	return goja.Undefined()
}

// deliverJSON raises a message event whose data is the parsed json.
func (p *page) deliverJSON(json string) {
	data, err := p.parse(goja.Undefined(), p.vm.ToValue(json))
	if err != nil {
		Logger().Debug("web message not parsed", zap.Error(err))
		return
	}
	p.dispatch(data)
}

// deliverString raises a message event whose data is s.
func (p *page) deliverString(s string) {
	p.dispatch(p.vm.ToValue(s))
}

func (p *page) dispatch(data goja.Value) {
	event := p.vm.NewObject()
	event.Set("type", "message")
	event.Set("data", data)
	event.Set("source", p.source)

	for _, l := range append([]goja.Value(nil), p.listeners...) {
		fn, _ := goja.AssertFunction(l)
		if _, err := fn(goja.Undefined(), event); err != nil {
			Logger().Debug("message listener failed", zap.Error(err))
		}
	}
}
