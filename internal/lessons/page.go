package lessons

import (
	"github.com/vango-dev/memolab/pkg/vdom"
)

const (
	// PageTitle is the home page title.
	PageTitle = "Understanding React Hooks"

	// PageSubtitle is shown under the title.
	PageSubtitle = "Interactive guide to useCallback and useMemo"
)

// HomePage renders the header and one section per lesson.
func HomePage(lessons []*Lesson) *vdom.VNode {
	return vdom.Div(vdom.Class("page"),
		AnimatedBackground(),
		vdom.Header(vdom.Class("page-header"),
			Logo(LogoSm),
			vdom.H1(vdom.Text(PageTitle)),
			vdom.P(vdom.Class("muted"), vdom.Text(PageSubtitle)),
		),
		vdom.Main(vdom.Class("lessons"),
			vdom.Range(lessons, func(_ int, l *Lesson) *vdom.VNode {
				return Section(l)
			}),
		),
	)
}

// Section renders one lesson: heading, description, code sample, live demo
// and its action buttons.
func Section(l *Lesson) *vdom.VNode {
	return vdom.Section(vdom.Class("lesson"), vdom.ID("lesson-"+l.ID), vdom.Data("lesson", l.ID),
		vdom.Div(vdom.Class("lesson-heading"),
			vdom.H2(vdom.Text(l.Title)),
			Badge("Hook"),
		),
		vdom.P(vdom.Class("lesson-description"), vdom.Text(l.Description)),
		vdom.Div(vdom.Class("code"),
			vdom.Pre(vdom.Code(vdom.Text(l.Code))),
		),
		vdom.Div(vdom.Class("demo-frame"), vdom.AriaLive("polite"),
			l.Demo(),
		),
		vdom.Div(vdom.Class("actions"),
			vdom.Range(l.Actions, func(_ int, a Action) *vdom.VNode {
				return actionForm("/lessons/"+l.ID+"/slots/"+a.Slot+"/bump",
					Button(a.Variant, SizeDefault, vdom.Text(a.Label)))
			}),
			actionForm("/lessons/"+l.ID+"/reset",
				Button(VariantDestructive, SizeSm, vdom.Text("Reset"))),
		),
	)
}

func actionForm(action string, button *vdom.VNode) *vdom.VNode {
	return vdom.Form(vdom.Method("post"), vdom.Action(action), button)
}

// LiveScript reloads the page whenever a lesson commits a pass elsewhere.
const LiveScript = `(function () {
  var proto = location.protocol === "https:" ? "wss://" : "ws://";
  var ws = new WebSocket(proto + location.host + "/ws");
  ws.onmessage = function (ev) {
    var msg = JSON.parse(ev.data);
    if (msg.type === "pass") { location.reload(); }
  };
})();`

// Stylesheet is the page CSS.
const Stylesheet = `
body{margin:0;background:#0a0a0a;color:#e5e5e5;font-family:system-ui,sans-serif}
.page{position:relative;min-height:100vh;overflow:hidden}
.page-header{border-bottom:1px solid #333;background:#121212;padding:1.5rem 2rem}
.page-header h1{font-size:1.875rem;font-weight:600;color:#f5f5f5;margin:.5rem 0 0}
.muted{color:#a0a0a0}
.lessons{display:grid;gap:2rem;max-width:80rem;margin:0 auto;padding:3rem 2rem;grid-template-columns:repeat(auto-fit,minmax(28rem,1fr))}
.lesson{border:1px solid #333;background:#1a1a1a;border-radius:.5rem;padding:1.5rem;position:relative}
.lesson-heading{display:flex;align-items:center;justify-content:space-between}
.lesson-heading h2{font-size:1.5rem;font-weight:600;color:#f5f5f5;margin:0}
.lesson-description{color:#b0b0b0}
.badge{border-radius:.25rem;background:#252525;padding:.25rem .75rem;font-family:monospace;font-size:.875rem;color:#64748b}
.code{border:1px solid #404040;background:#0a0a0a;border-radius:.25rem;padding:1rem;margin-bottom:1.5rem}
.code pre{margin:0;overflow-x:auto;font-size:.875rem}
.demo-frame{border:1px solid #404040;background:#252525;border-radius:.25rem;padding:1.5rem}
.demo-state{display:flex;gap:1rem;margin-bottom:1rem;font-family:monospace}
.demo-children{display:grid;grid-template-columns:1fr 1fr;gap:1rem}
.child-panel{border:1px solid #404040;border-radius:.25rem;padding:1rem;background:#1a1a1a}
.renders{font-family:monospace;color:#f5f5f5}
.token{font-family:monospace;font-size:.75rem;color:#64748b}
.actions{display:flex;flex-wrap:wrap;gap:.5rem;margin-top:1rem}
.btn{display:inline-flex;align-items:center;justify-content:center;gap:.5rem;white-space:nowrap;border-radius:.375rem;font-size:.875rem;font-weight:500;border:0;cursor:pointer;transition:all .15s}
.btn:disabled{pointer-events:none;opacity:.5}
.btn-primary{background:#f5f5f5;color:#0a0a0a}
.btn-secondary{background:#333;color:#f5f5f5}
.btn-outline{background:transparent;color:#f5f5f5;border:1px solid #404040}
.btn-ghost{background:transparent;color:#f5f5f5}
.btn-link{background:transparent;color:#f5f5f5;text-decoration:underline;text-underline-offset:4px}
.btn-destructive{background:#dc2626;color:#fff}
.btn-gradient{background:#171717;color:#f5f5f5;border-radius:9999px;position:relative}
.btn-md{height:2.25rem;padding:.5rem 1rem}
.btn-sm{height:2rem;padding:0 .75rem}
.btn-lg{height:2.5rem;padding:0 1.5rem}
.btn-icon{height:2.25rem;width:2.25rem}
.btn-gradient-ring{position:relative;display:inline-flex;border-radius:9999px;padding:3px;overflow:hidden}
.btn-gradient-spin{position:absolute;left:50%;top:50%;height:500%;width:500%;transform:translate(-50%,-50%);background:conic-gradient(from 0deg,#06b6d4,#3b82f6,#8b5cf6,#d946ef,#f43f5e,#f97316,#eab308,#22c55e,#06b6d4);animation:spin 4s linear infinite}
.logo{display:flex;align-items:center;gap:.5rem}
.logo-icon{display:flex;align-items:center;justify-content:center;border-radius:9999px;background:linear-gradient(135deg,#3b82f6,#7c3aed);padding:.375rem;color:#fff}
.logo-sm .logo-text{font-size:1.25rem}.logo-md .logo-text{font-size:1.5rem}.logo-lg .logo-text{font-size:1.875rem}
.logo-primary{font-weight:700;background:linear-gradient(90deg,#3b82f6,#7c3aed);-webkit-background-clip:text;background-clip:text;color:transparent}
.logo-secondary{font-family:serif;font-style:italic}
.bg{pointer-events:none;position:absolute;inset:0;overflow:hidden}
.blob{position:absolute;border-radius:9999px;filter:blur(64px);animation:blob 12s infinite}
.blob-cyan{left:-8rem;top:15%;height:31rem;width:31rem;background:radial-gradient(rgba(6,182,212,.15),transparent)}
.blob-purple{right:-5rem;top:20%;height:37rem;width:37rem;background:radial-gradient(rgba(168,85,247,.15),transparent)}
.blob-blue{left:30%;top:70%;height:34rem;width:34rem;background:radial-gradient(rgba(59,130,246,.12),transparent)}
.delay-2000{animation-delay:2s}.delay-4000{animation-delay:4s}
@keyframes blob{0%,100%{transform:translate(0,0) scale(1)}33%{transform:translate(30px,-50px) scale(1.1)}66%{transform:translate(-20px,20px) scale(.9)}}
@keyframes spin{to{transform:translate(-50%,-50%) rotate(360deg)}}
`
