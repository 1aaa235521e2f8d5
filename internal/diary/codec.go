// ABOUTME: YAML encoding of the persisted diary list with an explicit schema version.
// ABOUTME: Decodes record by record so malformed records are reported and skipped, not fatal.
package diary

import (
	"errors"
	"fmt"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/2389-research/diary/internal/models"
)

// SchemaVersion is the version written by this package. Version 0 is the
// legacy layout: a bare sequence of records with no envelope.
const SchemaVersion = 1

// Record-level decode failures.
var (
	ErrNotRecord    = errors.New("record is not a mapping")
	ErrMissingField = errors.New("missing field")
	ErrFieldType    = errors.New("wrong field type")
)

// Document-level failures. A document that fails this way yields no entries.
var (
	ErrUnreadableDocument = errors.New("unreadable diary document")
	ErrUnsupportedVersion = errors.New("unsupported diary schema version")
)

// Persisted field names.
const (
	fieldTitle    = "title"
	fieldContents = "contents"
	fieldDate     = "date"
	fieldIsStar   = "isStar"
)

// YAML short tags checked during decoding.
const (
	tagStr       = "!!str"
	tagBool      = "!!bool"
	tagInt       = "!!int"
	tagNull      = "!!null"
	tagTimestamp = "!!timestamp"
)

// DecodeError describes one persisted record that could not become an entry.
type DecodeError struct {
	Index int    // position in the persisted sequence
	Field string // empty when the record as a whole is malformed
	Err   error
}

func (e *DecodeError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("record %d: %v", e.Index, e.Err)
	}
	return fmt.Sprintf("record %d: field %q: %v", e.Index, e.Field, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

type document struct {
	Version int      `yaml:"version"`
	Entries []record `yaml:"entries"`
}

type record struct {
	Title    string    `yaml:"title"`
	Contents string    `yaml:"contents"`
	Date     time.Time `yaml:"date"`
	IsStar   bool      `yaml:"isStar"`
}

// decoded is the outcome of decoding a readable document.
type decoded struct {
	version  int
	entries  []models.DiaryEntry
	failures []*DecodeError
}

// encodeEntries renders entries, in order, as a current-version document.
func encodeEntries(entries []models.DiaryEntry) ([]byte, error) {
	doc := document{
		Version: SchemaVersion,
		Entries: make([]record, 0, len(entries)),
	}
	for _, e := range entries {
		doc.Entries = append(doc.Entries, record{
			Title:    e.Title,
			Contents: e.Contents,
			Date:     e.Date,
			IsStar:   e.IsStar,
		})
	}
	return yaml.Marshal(doc)
}

// decodeDocument parses a persisted document. Malformed records are collected
// as failures; only a document that cannot be interpreted at all is an error.
func decodeDocument(data []byte) (*decoded, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreadableDocument, err)
	}
	if root.Kind == 0 || len(root.Content) == 0 {
		return &decoded{version: SchemaVersion}, nil
	}

	top := resolveAlias(root.Content[0])
	switch {
	case top.Kind == yaml.SequenceNode:
		return decodeRecords(0, top), nil
	case top.Kind == yaml.MappingNode:
		return decodeEnvelope(top)
	case top.ShortTag() == tagNull:
		return &decoded{version: SchemaVersion}, nil
	default:
		return nil, fmt.Errorf("%w: top level is %s", ErrUnreadableDocument, top.ShortTag())
	}
}

func decodeEnvelope(top *yaml.Node) (*decoded, error) {
	fields := mappingFields(top)

	versionNode, ok := fields["version"]
	if !ok {
		return nil, fmt.Errorf("%w: missing version", ErrUnreadableDocument)
	}
	if versionNode.ShortTag() != tagInt {
		return nil, fmt.Errorf("%w: version is %s", ErrUnreadableDocument, versionNode.ShortTag())
	}
	var version int
	if err := versionNode.Decode(&version); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreadableDocument, err)
	}
	if version < 1 || version > SchemaVersion {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, version)
	}

	entriesNode, ok := fields["entries"]
	if !ok || entriesNode.ShortTag() == tagNull {
		return &decoded{version: version}, nil
	}
	if entriesNode.Kind != yaml.SequenceNode {
		return nil, fmt.Errorf("%w: entries is %s", ErrUnreadableDocument, entriesNode.ShortTag())
	}
	return decodeRecords(version, entriesNode), nil
}

func decodeRecords(version int, seq *yaml.Node) *decoded {
	out := &decoded{version: version}
	for i, n := range seq.Content {
		entry, derr := decodeRecord(i, resolveAlias(n))
		if derr != nil {
			out.failures = append(out.failures, derr)
			continue
		}
		out.entries = append(out.entries, entry)
	}
	return out
}

// decodeRecord converts one record node, requiring every field to be present
// with its exact type.
func decodeRecord(index int, n *yaml.Node) (models.DiaryEntry, *DecodeError) {
	if n.Kind != yaml.MappingNode {
		return models.DiaryEntry{}, &DecodeError{Index: index, Err: ErrNotRecord}
	}
	fields := mappingFields(n)

	var e models.DiaryEntry
	if err := decodeField(fields, fieldTitle, tagStr, &e.Title); err != nil {
		return models.DiaryEntry{}, &DecodeError{Index: index, Field: fieldTitle, Err: err}
	}
	if err := decodeField(fields, fieldContents, tagStr, &e.Contents); err != nil {
		return models.DiaryEntry{}, &DecodeError{Index: index, Field: fieldContents, Err: err}
	}
	if err := decodeField(fields, fieldDate, tagTimestamp, &e.Date); err != nil {
		return models.DiaryEntry{}, &DecodeError{Index: index, Field: fieldDate, Err: err}
	}
	if err := decodeField(fields, fieldIsStar, tagBool, &e.IsStar); err != nil {
		return models.DiaryEntry{}, &DecodeError{Index: index, Field: fieldIsStar, Err: err}
	}
	return e, nil
}

func decodeField(fields map[string]*yaml.Node, name, wantTag string, out interface{}) error {
	n, ok := fields[name]
	if !ok {
		return ErrMissingField
	}
	if got := n.ShortTag(); got != wantTag {
		return fmt.Errorf("%w: want %s, got %s", ErrFieldType, wantTag, got)
	}
	if err := n.Decode(out); err != nil {
		return fmt.Errorf("%w: %v", ErrFieldType, err)
	}
	return nil
}

// mappingFields indexes a mapping node's values by key. Later duplicates win.
func mappingFields(n *yaml.Node) map[string]*yaml.Node {
	fields := make(map[string]*yaml.Node, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		fields[n.Content[i].Value] = resolveAlias(n.Content[i+1])
	}
	return fields
}

func resolveAlias(n *yaml.Node) *yaml.Node {
	for n.Kind == yaml.AliasNode && n.Alias != nil {
		n = n.Alias
	}
	return n
}
