// FILE: lixenwraith/treelog/pattern.go
package treelog

import (
	"fmt"
	"strconv"
	"strings"
	"sync/atomic"
	"time"
	"unicode/utf8"

	"github.com/valyala/bytebufferpool"
)

// PatternSyntaxError reports a malformed format specification. It is
// returned synchronously at pattern-set time, never during rendering.
type PatternSyntaxError struct {
	Pattern string
	Pos     int
	Reason  string
}

func (e *PatternSyntaxError) Error() string {
	return fmt.Sprintf("treelog: pattern syntax error at position %d: %s", e.Pos, e.Reason)
}

type tokenKind uint8

const (
	tokenLiteral tokenKind = iota
	tokenTime
	tokenMsec
	tokenUsec
	tokenNsec
	tokenCategory
	tokenLevel
	tokenFile
	tokenLine
	tokenFunction
	tokenThread
	tokenMessage
)

type alignKind uint8

const (
	alignLeft alignKind = iota
	alignRight
	alignCenter
)

// stringSpecs is the optional per-placeholder padding spec:
// {name:[fill][<^>]width}.
type stringSpecs struct {
	fill  string
	align alignKind
	width int
}

type token struct {
	kind    tokenKind
	literal string
	specs   stringSpecs
}

// PatternProgram is an immutable compiled pattern. Token order is
// rendering order.
type PatternProgram struct {
	tokens []token
}

var placeholderKinds = map[string]tokenKind{
	"time":     tokenTime,
	"msec":     tokenMsec,
	"usec":     tokenUsec,
	"nsec":     tokenNsec,
	"category": tokenCategory,
	"level":    tokenLevel,
	"file":     tokenFile,
	"line":     tokenLine,
	"function": tokenFunction,
	"thread":   tokenThread,
	"message":  tokenMessage,
}

// Percent short flags equivalent to the brace placeholders
var shortFlagKinds = map[byte]tokenKind{
	'T': tokenTime,
	't': tokenCategory,
	'l': tokenLevel,
	'F': tokenFile,
	'L': tokenLine,
	'f': tokenFunction,
	'm': tokenMessage,
}

// messageOnlyProgram is the compiled form of the empty pattern.
var messageOnlyProgram = &PatternProgram{tokens: []token{{kind: tokenMessage}}}

// CompilePattern compiles a format specification into a token program.
// Unterminated or unrecognized placeholder syntax fails with a
// *PatternSyntaxError naming the offending position.
func CompilePattern(spec string) (*PatternProgram, error) {
	var tokens []token

	appendLiteral := func(text string) {
		if text == "" {
			return
		}
		if n := len(tokens); n > 0 && tokens[n-1].kind == tokenLiteral {
			tokens[n-1].literal += text
			return
		}
		tokens = append(tokens, token{kind: tokenLiteral, literal: text})
	}

	for i := 0; i < len(spec); {
		switch c := spec[i]; c {
		case '{':
			if i+1 < len(spec) && spec[i+1] == '{' {
				appendLiteral("{")
				i += 2
				continue
			}
			end := -1
			for j := i + 1; j < len(spec); j++ {
				if spec[j] == '}' {
					end = j
					break
				}
				if spec[j] == '{' {
					return nil, &PatternSyntaxError{Pattern: spec, Pos: i, Reason: "unmatched '{' in pattern"}
				}
			}
			if end < 0 {
				return nil, &PatternSyntaxError{Pattern: spec, Pos: i, Reason: "unmatched '{' in pattern"}
			}
			body := spec[i+1 : end]
			name, specText := body, ""
			if colon := strings.IndexByte(body, ':'); colon >= 0 {
				name, specText = body[:colon], body[colon+1:]
			}
			kind, ok := placeholderKinds[name]
			if !ok {
				return nil, &PatternSyntaxError{Pattern: spec, Pos: i + 1, Reason: "unknown placeholder '" + name + "'"}
			}
			specs, err := parseStringSpecs(spec, i+1+len(name)+1, specText)
			if err != nil {
				return nil, err
			}
			tokens = append(tokens, token{kind: kind, specs: specs})
			i = end + 1
		case '}':
			if i+1 < len(spec) && spec[i+1] == '}' {
				appendLiteral("}")
				i += 2
				continue
			}
			return nil, &PatternSyntaxError{Pattern: spec, Pos: i, Reason: "unmatched '}' in pattern"}
		case '%':
			if i+1 >= len(spec) {
				return nil, &PatternSyntaxError{Pattern: spec, Pos: i, Reason: "unterminated '%' flag"}
			}
			next := spec[i+1]
			if next == '%' {
				appendLiteral("%")
				i += 2
				continue
			}
			kind, ok := shortFlagKinds[next]
			if !ok {
				return nil, &PatternSyntaxError{Pattern: spec, Pos: i, Reason: "unknown flag '%" + string(next) + "'"}
			}
			tokens = append(tokens, token{kind: kind})
			i += 2
		default:
			start := i
			for i < len(spec) && spec[i] != '{' && spec[i] != '}' && spec[i] != '%' {
				i++
			}
			appendLiteral(spec[start:i])
		}
	}

	// An empty pattern renders the bare message
	if len(tokens) == 0 {
		return messageOnlyProgram, nil
	}
	return &PatternProgram{tokens: tokens}, nil
}

// parseStringSpecs parses "[fill][<^>]width" from the text after ':'.
// pos is the spec text's position within the full pattern, for errors.
func parseStringSpecs(pattern string, pos int, text string) (stringSpecs, error) {
	specs := stringSpecs{fill: " "}
	if text == "" {
		return specs, nil
	}

	rest := text
	r, size := utf8.DecodeRuneInString(rest)
	if next := rest[size:]; next != "" && isAlignByte(next[0]) {
		// Fill rune followed by an alignment marker
		if r == '{' || r == '}' {
			return specs, &PatternSyntaxError{Pattern: pattern, Pos: pos, Reason: "invalid fill character"}
		}
		specs.fill = rest[:size]
		specs.align = alignFor(next[0])
		rest = next[1:]
	} else if isAlignByte(rest[0]) {
		specs.align = alignFor(rest[0])
		rest = rest[1:]
	}

	if rest == "" {
		return specs, nil
	}
	width, err := strconv.Atoi(rest)
	if err != nil || width < 0 {
		return specs, &PatternSyntaxError{Pattern: pattern, Pos: pos, Reason: "invalid field width '" + rest + "'"}
	}
	specs.width = width
	return specs, nil
}

func isAlignByte(c byte) bool {
	return c == '<' || c == '>' || c == '^'
}

func alignFor(c byte) alignKind {
	switch c {
	case '>':
		return alignRight
	case '^':
		return alignCenter
	default:
		return alignLeft
	}
}

// render replays the program against a record, appending to buf. levels
// supplies the display-name table for the level placeholder.
func (p *PatternProgram) render(buf *bytebufferpool.ByteBuffer, rec *Record, levels *[numLevels]string) {
	for i := range p.tokens {
		t := &p.tokens[i]
		switch t.kind {
		case tokenLiteral:
			buf.B = append(buf.B, t.literal...)
		case tokenTime:
			appendPaddedTime(buf, rec.Time.Local, &t.specs)
		case tokenMsec:
			appendPaddedUint(buf, uint64(rec.Time.Nsec)/1_000_000, &t.specs)
		case tokenUsec:
			appendPaddedUint(buf, uint64(rec.Time.Nsec)/1_000, &t.specs)
		case tokenNsec:
			appendPaddedUint(buf, uint64(rec.Time.Nsec), &t.specs)
		case tokenCategory:
			appendPadded(buf, rec.Category, &t.specs)
		case tokenLevel:
			appendPadded(buf, levelDisplayName(levels, rec.Level), &t.specs)
		case tokenFile:
			appendPadded(buf, rec.Location.File, &t.specs)
		case tokenLine:
			appendPaddedUint(buf, uint64(rec.Location.Line), &t.specs)
		case tokenFunction:
			appendPadded(buf, rec.Location.Function, &t.specs)
		case tokenThread:
			appendPaddedUint(buf, rec.ThreadID, &t.specs)
		case tokenMessage:
			if !rec.msgSet {
				panic("treelog: record message read before materialization")
			}
			if rec.msgBytes != nil {
				appendPaddedBytes(buf, rec.msgBytes, &t.specs)
			} else {
				appendPadded(buf, rec.msg, &t.specs)
			}
		}
	}
}

func levelDisplayName(levels *[numLevels]string, l Level) string {
	if l.valid() {
		return levels[l]
	}
	return l.String()
}

func appendPadded(buf *bytebufferpool.ByteBuffer, s string, specs *stringSpecs) {
	if specs.width == 0 {
		buf.B = append(buf.B, s...)
		return
	}
	left, right := paddingFor(utf8.RuneCountInString(s), specs)
	appendFill(buf, specs.fill, left)
	buf.B = append(buf.B, s...)
	appendFill(buf, specs.fill, right)
}

func appendPaddedBytes(buf *bytebufferpool.ByteBuffer, s []byte, specs *stringSpecs) {
	if specs.width == 0 {
		buf.B = append(buf.B, s...)
		return
	}
	left, right := paddingFor(utf8.RuneCount(s), specs)
	appendFill(buf, specs.fill, left)
	buf.B = append(buf.B, s...)
	appendFill(buf, specs.fill, right)
}

func appendPaddedUint(buf *bytebufferpool.ByteBuffer, v uint64, specs *stringSpecs) {
	if specs.width == 0 {
		buf.B = strconv.AppendUint(buf.B, v, 10)
		return
	}
	var scratch [20]byte
	appendPaddedBytes(buf, strconv.AppendUint(scratch[:0], v, 10), specs)
}

func appendPaddedTime(buf *bytebufferpool.ByteBuffer, t time.Time, specs *stringSpecs) {
	if specs.width == 0 {
		buf.B = t.AppendFormat(buf.B, defaultTimeLayout)
		return
	}
	var scratch [64]byte
	appendPaddedBytes(buf, t.AppendFormat(scratch[:0], defaultTimeLayout), specs)
}

func paddingFor(codepoints int, specs *stringSpecs) (left, right int) {
	padding := specs.width - codepoints
	if padding <= 0 {
		return 0, 0
	}
	switch specs.align {
	case alignRight:
		return padding, 0
	case alignCenter:
		return padding / 2, padding - padding/2
	default:
		return 0, padding
	}
}

func appendFill(buf *bytebufferpool.ByteBuffer, fill string, count int) {
	for ; count > 0; count-- {
		buf.B = append(buf.B, fill...)
	}
}

// Pattern is the per-sink pattern state: the compiled program and the
// level-name table, each swapped atomically so a render in flight
// finishes against whichever program it started with.
type Pattern struct {
	prog   atomic.Pointer[PatternProgram]
	levels atomic.Pointer[[numLevels]string]
}

// SetPattern recompiles and atomically swaps the program.
func (p *Pattern) SetPattern(spec string) error {
	prog, err := CompilePattern(spec)
	if err != nil {
		return err
	}
	p.prog.Store(prog)
	return nil
}

// SetLevels overrides display names for the given levels. Levels without
// an override keep their current name, falling back to the built-in
// defaults.
func (p *Pattern) SetLevels(names ...LevelName) {
	table := defaultLevelNames
	if cur := p.levels.Load(); cur != nil {
		table = *cur
	}
	for _, n := range names {
		if n.Level.valid() {
			table[n.Level] = n.Name
		}
	}
	p.levels.Store(&table)
}

// Render appends the record's rendered form to buf. A Pattern that was
// never configured renders the bare message.
func (p *Pattern) Render(buf *bytebufferpool.ByteBuffer, rec *Record) {
	prog := p.prog.Load()
	if prog == nil {
		prog = messageOnlyProgram
	}
	levels := p.levels.Load()
	if levels == nil {
		levels = &defaultLevelNames
	}
	prog.render(buf, rec, levels)
}
