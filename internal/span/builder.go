package span

// DiagVersion is the current wire version of Diagnostic.
const DiagVersion = 1

// Builder incrementally assembles a Diagnostic, grounded on the
// teacher's NewStructuredError/NewParserError builder shape
// (internal/parser.StructuredParserError in the teacher repo).
type Builder struct {
	d Diagnostic
}

// New starts a Builder for the given code at Error level.
func New(code Code) *Builder {
	return &Builder{d: Diagnostic{Version: DiagVersion, Level: Error, Code: code}}
}

// Warn starts a Builder for the given code at Warning level.
func Warn(code Code) *Builder {
	return &Builder{d: Diagnostic{Version: DiagVersion, Level: Warning, Code: code}}
}

func (b *Builder) Errorf() *Builder   { b.d.Level = Error; return b }
func (b *Builder) Warning() *Builder  { b.d.Level = Warning; return b }

// At sets the primary span.
func (b *Builder) At(s Span) *Builder {
	b.d.File = s.FileID
	b.d.Line = s.Line
	b.d.Column = s.Column
	b.d.Length = s.Length
	return b
}

// Message sets the headline message.
func (b *Builder) Message(msg string) *Builder {
	b.d.Message = msg
	return b
}

// Snippet attaches the raw source line text for human rendering.
func (b *Builder) Snippet(line string) *Builder {
	b.d.Snippet = line
	return b
}

// Label sets the caret-line label, e.g. "Unknown symbol 'x'".
func (b *Builder) Label(label string) *Builder {
	b.d.Label = label
	return b
}

// Note appends a note line.
func (b *Builder) Note(note string) *Builder {
	b.d.Notes = append(b.d.Notes, note)
	return b
}

// RelatedSpan attaches a secondary span with a message.
func (b *Builder) RelatedSpan(s Span, message string) *Builder {
	b.d.Related = append(b.d.Related, Related{
		File: s.FileID, Line: s.Line, Column: s.Column, Length: s.Length, Message: message,
	})
	return b
}

// Help sets the trailing help line.
func (b *Builder) Help(help string) *Builder {
	b.d.Help = help
	return b
}

// TraceID attaches a host correlation id.
func (b *Builder) TraceID(id string) *Builder {
	b.d.TraceID = id
	return b
}

// Build finalizes and returns the Diagnostic.
func (b *Builder) Build() *Diagnostic {
	d := b.d
	return &d
}
