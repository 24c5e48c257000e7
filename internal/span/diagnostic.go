package span

// Level distinguishes a hard error from an advisory warning. Only
// Error levels halt the pipeline stage that produced them (spec §7).
type Level string

const (
	Error   Level = "Error"
	Warning Level = "Warning"
)

// Related is a secondary span attached to a Diagnostic, e.g. pointing
// back at the original declaration of a symbol that was redeclared.
type Related struct {
	File    string `json:"file"`
	Line    int    `json:"line"`
	Column  int    `json:"column"`
	Length  int    `json:"length"`
	Message string `json:"message"`
}

// Diagnostic is the structured record produced by every pipeline
// stage: lexer, parser, binder, type checker, interpreter, and VM.
//
// Version is bumped only if the wire shape changes; it lets hosts
// detect a schema they don't understand instead of guessing.
type Diagnostic struct {
	Version int     `json:"version"`
	Level   Level   `json:"level"`
	Code    Code    `json:"code"`
	Message string  `json:"message"`
	File    string  `json:"file"`
	Line    int     `json:"line"`
	Column  int     `json:"column"`
	Length  int     `json:"length"`
	Snippet string  `json:"snippet,omitempty"`
	Label   string  `json:"label,omitempty"`
	Notes   []string `json:"notes,omitempty"`
	Related []Related `json:"related,omitempty"`
	Help    string  `json:"help,omitempty"`

	// TraceID is an optional host-side correlation id (see
	// SPEC_FULL.md §3). It is set only on diagnostics raised through
	// native.Registry.Call, from native.Context.TraceID; diagnostics
	// from the lexer, parser, binder and checker leave it empty.
	TraceID string `json:"trace_id,omitempty"`
}

// Span returns the primary location of the diagnostic.
func (d *Diagnostic) Span() Span {
	return Span{FileID: d.File, Line: d.Line, Column: d.Column, Length: d.Length}
}

// IsError reports whether this diagnostic should halt its stage.
func (d *Diagnostic) IsError() bool {
	return d.Level == Error
}

// List is a convenience alias used throughout the pipeline.
type List []*Diagnostic

// HasErrors reports whether any diagnostic in the list is an Error.
func (l List) HasErrors() bool {
	for _, d := range l {
		if d.IsError() {
			return true
		}
	}
	return false
}

// Errors filters the list down to Error-level diagnostics.
func (l List) Errors() List {
	out := make(List, 0, len(l))
	for _, d := range l {
		if d.IsError() {
			out = append(out, d)
		}
	}
	return out
}
