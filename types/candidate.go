package types

import (
	"bytes"
	"reflect"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/segmentio/encoding/json"
	"golang.org/x/text/unicode/norm"
)

// PostKind tags the shape a candidate's Post field arrived in.
type PostKind int

const (
	PostMalformed PostKind = iota
	PostPlain
	PostStructured
)

// Post is a candidate's role. Upstream sends either a bare string or an
// object carrying a Title; anything else decodes as PostMalformed.
type Post struct {
	kind  PostKind
	title string
}

// PlainTitle builds a Post from a bare string.
func PlainTitle(title string) Post {
	return Post{kind: PostPlain, title: NormalizeTitle(title)}
}

// StructuredTitle builds a Post from an object's Title field.
func StructuredTitle(title string) Post {
	return Post{kind: PostStructured, title: NormalizeTitle(title)}
}

// MalformedPost is the Post for records whose role could not be read.
func MalformedPost() Post {
	return Post{kind: PostMalformed}
}

func (p Post) Kind() PostKind { return p.kind }

// Title returns the normalized title. Malformed posts have an empty title.
func (p Post) Title() string { return p.title }

// UnmarshalJSON never fails: unreadable posts become PostMalformed so the
// record drops out of every filter instead of aborting the whole payload.
func (p *Post) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		*p = MalformedPost()
		return nil
	}

	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			*p = MalformedPost()
			return nil
		}
		*p = PlainTitle(s)
	case '{':
		var obj struct {
			Title *string `json:"Title"`
		}
		if err := json.Unmarshal(data, &obj); err != nil || obj.Title == nil {
			*p = MalformedPost()
			return nil
		}
		*p = StructuredTitle(*obj.Title)
	default:
		*p = MalformedPost()
	}
	return nil
}

// NormalizeTitle trims surrounding space and folds to NFC so that titles and
// configured role names compare byte-for-byte.
func NormalizeTitle(s string) string {
	return strings.TrimSpace(norm.NFC.String(s))
}

// Candidate is one record from the candidates or results feed. Everything
// other than Post is kept verbatim for the display layer.
type Candidate struct {
	post   Post
	fields map[string]json.RawMessage
}

// NewCandidate creates a Candidate with string-valued passthrough fields.
func NewCandidate(post Post, fields map[string]string) Candidate {
	raw := make(map[string]json.RawMessage, len(fields))
	for k, v := range fields {
		b, _ := json.Marshal(v)
		raw[k] = b
	}
	return Candidate{post: post, fields: raw}
}

// identity is shared by every copy of one decoded record, 0 when the record
// has no fields.
func (c Candidate) identity() uintptr {
	if c.fields == nil {
		return 0
	}
	return reflect.ValueOf(c.fields).Pointer()
}

func (c Candidate) Post() Post        { return c.post }
func (c Candidate) PostTitle() string { return c.post.Title() }

// Field returns a passthrough field rendered as text. Strings are unquoted,
// numbers and booleans use their literal form, anything else is "".
func (c Candidate) Field(key string) string {
	raw, ok := c.fields[key]
	if !ok {
		return ""
	}
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return ""
	}
	switch raw[0] {
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return ""
		}
		return s
	case '{', '[', 'n':
		return ""
	default:
		return string(raw)
	}
}

// Fields returns the names of the passthrough fields.
func (c Candidate) Fields() []string {
	out := make([]string, 0, len(c.fields))
	for k := range c.fields {
		out = append(out, k)
	}
	return out
}

// Name picks the best available display name.
func (c Candidate) Name() string {
	for _, key := range []string{"Name", "FullName", "DisplayName"} {
		if v := strings.TrimSpace(c.Field(key)); v != "" {
			return v
		}
	}
	first := strings.TrimSpace(c.Field("FirstName"))
	last := strings.TrimSpace(c.Field("LastName"))
	if last == "" {
		last = strings.TrimSpace(c.Field("Surname"))
	}
	return strings.TrimSpace(first + " " + last)
}

func (c Candidate) Manifesto() string { return c.Field("Manifesto") }

// Votes reports the vote count on results records.
func (c Candidate) Votes() (int, bool) {
	v := c.Field("Votes")
	if v == "" {
		return 0, false
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		f, ferr := strconv.ParseFloat(v, 64)
		if ferr != nil {
			return 0, false
		}
		return int(f), true
	}
	return n, true
}

// Elected reports whether a results record is flagged as elected.
func (c Candidate) Elected() bool {
	b, _ := strconv.ParseBool(c.Field("Elected"))
	return b
}

func (c *Candidate) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		// Non-object records are kept as malformed entries.
		*c = Candidate{post: MalformedPost()}
		return nil
	}

	post := MalformedPost()
	raw, ok := fields["Post"]
	if !ok {
		raw, ok = fields["post"]
	}
	if ok {
		_ = post.UnmarshalJSON(raw)
	}
	*c = Candidate{post: post, fields: fields}
	return nil
}

func (c Candidate) MarshalJSON() ([]byte, error) {
	if c.fields == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(c.fields)
}

// list.Item interface implementation
func (c Candidate) FilterValue() string { return c.Name() }

// Compile-time check that Candidate implements list.Item
var _ list.Item = Candidate{}
