package analyzer

import (
	"go/ast"
	"strconv"
	"strings"

	"github.com/Gijsreyn/bicep-local-docgen/pkg/docmodel"
)

// DirectivePrefix introduces a documentation directive inside a doc comment.
const DirectivePrefix = "docgen:"

// DefaultExampleLanguage is used when an example directive carries no lang
// argument.
const DefaultExampleLanguage = "bicep"

// Directive names understood on type declarations.
const (
	directiveResource = "resource"
	directiveMetadata = "metadata"
	directiveHeading  = "heading"
	directiveExample  = "example"
	directiveSection  = "section"
)

type diagFunc func(line int, format string, args ...any)

// applyDirectives walks the doc comment of a type declaration line by line,
// applying directives to the declaration. Comment lines following an example
// directive become that example's code block, up to the next directive or
// the end of the comment.
func (a *Analyzer) applyDirectives(d *docmodel.Declaration, doc *ast.CommentGroup, diag diagFunc) {
	if doc == nil {
		return
	}

	var pending *docmodel.Example
	var pendingCode []string
	flush := func() {
		if pending == nil {
			return
		}
		pending.Code = strings.Join(pendingCode, "\n")
		d.Examples = append(d.Examples, *pending)
		pending, pendingCode = nil, nil
	}

	for _, c := range doc.List {
		for _, body := range commentLines(c.Text) {
			line := a.fset.Position(c.Pos()).Line
			name, argText, ok := cutDirective(body)
			if !ok {
				if pending != nil {
					pendingCode = append(pendingCode, strings.TrimPrefix(body, " "))
				}
				continue
			}
			flush()
			args := tokenizeArgs(argText)
			switch name {
			case directiveResource:
				if len(args) == 0 {
					diag(line, "docgen:resource needs a resource type name")
					continue
				}
				if d.ResourceTypeName == "" {
					d.ResourceTypeName = args[0].val
				}
			case directiveMetadata:
				md, err := parseMetadataDirective(args)
				if err != nil {
					diag(line, "docgen:metadata: %v", err)
					continue
				}
				d.Block(md.Block).Set(md.Key, md.Value)
			case directiveHeading:
				if len(positional(args)) == 0 {
					diag(line, "docgen:heading needs a title")
					continue
				}
				if d.Heading == nil {
					pos := positional(args)
					h := &docmodel.Heading{Title: pos[0]}
					if len(pos) > 1 {
						h.Description = pos[1]
					}
					d.Heading = h
				}
			case directiveExample:
				pos := positional(args)
				ex := docmodel.Example{Language: DefaultExampleLanguage}
				if len(pos) > 0 {
					ex.Title = pos[0]
				}
				if len(pos) > 1 {
					ex.Description = pos[1]
				}
				if lang, ok := named(args, "lang"); ok && lang != "" {
					ex.Language = lang
				}
				pending = &ex
			case directiveSection:
				pos := positional(args)
				if len(pos) == 0 {
					diag(line, "docgen:section needs a title")
					continue
				}
				sec := docmodel.CustomSection{Title: pos[0]}
				if len(pos) > 1 {
					sec.Description = pos[1]
				}
				d.CustomSections = append(d.CustomSections, sec)
			default:
				diag(line, "unknown directive %q", DirectivePrefix+name)
			}
		}
	}
	flush()
}

// metadataDirective is the parsed form of a docgen:metadata line. Indexed
// reports whether the block index was given explicitly, either as a leading
// bare integer or a block= argument.
type metadataDirective struct {
	Block   int
	Key     string
	Value   string
	Indexed bool
}

func parseMetadataDirective(args []argToken) (metadataDirective, error) {
	md := metadataDirective{Block: 1}
	if v, ok := named(args, "block"); ok {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return md, errBadBlockIndex(v)
		}
		md.Block = n
		md.Indexed = true
	}

	pos := positional(args)
	if !md.Indexed && len(pos) >= 3 {
		if n, err := strconv.Atoi(pos[0]); err == nil {
			if n < 1 {
				return md, errBadBlockIndex(pos[0])
			}
			md.Block = n
			md.Indexed = true
			pos = pos[1:]
		}
	}
	if len(pos) < 2 {
		return md, errNeedKeyValue
	}
	md.Key = pos[0]
	md.Value = pos[1]
	return md, nil
}

type metadataError string

func (e metadataError) Error() string { return string(e) }

const errNeedKeyValue = metadataError("needs a key and a value")

func errBadBlockIndex(v string) error {
	return metadataError("invalid block index " + strconv.Quote(v))
}

// commentLines yields the content lines of one comment, without markers.
func commentLines(text string) []string {
	if strings.HasPrefix(text, "//") {
		return []string{strings.TrimPrefix(text, "//")}
	}
	// block comment
	text = strings.TrimPrefix(text, "/*")
	text = strings.TrimSuffix(text, "*/")
	return strings.Split(text, "\n")
}

// cutDirective splits "docgen:<name> <args>" out of a comment line. Both
// "//docgen:..." and "// docgen:..." spellings are accepted.
func cutDirective(body string) (name, args string, ok bool) {
	trimmed := strings.TrimSpace(body)
	rest, ok := strings.CutPrefix(trimmed, DirectivePrefix)
	if !ok {
		return "", "", false
	}
	name, args, _ = strings.Cut(rest, " ")
	return strings.TrimSpace(name), strings.TrimSpace(args), name != ""
}

// argToken is one directive argument. key is non-empty for name=value
// arguments.
type argToken struct {
	key string
	val string
}

func positional(args []argToken) []string {
	var out []string
	for _, a := range args {
		if a.key == "" {
			out = append(out, a.val)
		}
	}
	return out
}

func named(args []argToken, key string) (string, bool) {
	for _, a := range args {
		if a.key == key {
			return a.val, true
		}
	}
	return "", false
}

// tokenizeArgs splits a directive argument list. Arguments are separated by
// spaces; double-quoted arguments may contain spaces and \" escapes; bare
// name=value pairs become named arguments, with an optionally quoted value.
func tokenizeArgs(s string) []argToken {
	var out []argToken
	i := 0
	for i < len(s) {
		for i < len(s) && (s[i] == ' ' || s[i] == '\t') {
			i++
		}
		if i >= len(s) {
			break
		}
		if s[i] == '"' {
			val, next := readQuoted(s, i)
			out = append(out, argToken{val: val})
			i = next
			continue
		}
		start := i
		for i < len(s) && s[i] != ' ' && s[i] != '\t' && s[i] != '=' {
			i++
		}
		if i < len(s) && s[i] == '=' {
			key := s[start:i]
			i++
			var val string
			if i < len(s) && s[i] == '"' {
				val, i = readQuoted(s, i)
			} else {
				vs := i
				for i < len(s) && s[i] != ' ' && s[i] != '\t' {
					i++
				}
				val = s[vs:i]
			}
			out = append(out, argToken{key: key, val: val})
			continue
		}
		out = append(out, argToken{val: s[start:i]})
	}
	return out
}

func readQuoted(s string, start int) (string, int) {
	var b strings.Builder
	i := start + 1
	for i < len(s) {
		switch s[i] {
		case '\\':
			if i+1 < len(s) {
				b.WriteByte(s[i+1])
				i += 2
				continue
			}
			i++
		case '"':
			return b.String(), i + 1
		default:
			b.WriteByte(s[i])
			i++
		}
	}
	return b.String(), i
}
