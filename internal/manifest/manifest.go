// Package manifest merges routing metadata into an application's
// manifest.json.
//
// The manifest is kept as raw bytes. The routing section
// ("sap.ui5" → "routing") is read into typed records. Changes are spliced
// into the document as new members, indented the way the document already
// is, so every other byte is written back exactly as it was read.
package manifest

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fernandofps20/tsui5/internal/apperr"
	"github.com/spf13/afero"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// Path is the manifest location relative to the project root.
const Path = "src/manifest.json"

const (
	ui5Path     = `sap\.ui5`
	routingPath = ui5Path + `.routing`
	routesPath  = routingPath + `.routes`
	targetsPath = routingPath + `.targets`
)

// Route is one entry of routing.routes.
type Route struct {
	Name    string    `json:"name"`
	Pattern string    `json:"pattern"`
	Target  TargetRef `json:"target"`
}

// TargetRef lists the target names of a route. Manifests may spell a target
// as a name, as an object with a "name" key, or as an array of either. Routes
// tsui5 adds always use an array of names.
type TargetRef []string

func (t *TargetRef) UnmarshalJSON(data []byte) error {
	res := gjson.ParseBytes(data)
	if res.Type == gjson.Null {
		*t = nil
		return nil
	}
	items := []gjson.Result{res}
	if res.IsArray() {
		items = res.Array()
	}

	names := make(TargetRef, 0, len(items))
	for _, item := range items {
		switch name := item.Get("name"); {
		case item.Type == gjson.String:
			names = append(names, item.String())
		case item.IsObject() && name.Type == gjson.String:
			names = append(names, name.String())
		default:
			return fmt.Errorf("route target must name a target: %s", item.Raw)
		}
	}
	*t = names
	return nil
}

// Target is one entry of routing.targets.
type Target struct {
	ViewType string `json:"viewType"`
	ViewID   string `json:"viewId"`
	ViewName string `json:"viewName"`
}

// Routing is the typed view of sap.ui5.routing. Keys other than routes and
// targets stay in the document untouched.
type Routing struct {
	Routes  []Route           `json:"routes"`
	Targets map[string]Target `json:"targets"`
}

// Manifest is an application manifest document.
type Manifest struct {
	doc []byte
}

// Parse wraps data, which must be a JSON object.
func Parse(data []byte) (*Manifest, error) {
	if !gjson.ValidBytes(data) {
		return nil, apperr.New(apperr.ManifestCorrupt, "manifest.json is not valid JSON")
	}
	if !gjson.ParseBytes(data).IsObject() {
		return nil, apperr.New(apperr.ManifestCorrupt, "manifest.json must contain a JSON object")
	}
	return &Manifest{doc: append([]byte(nil), data...)}, nil
}

// Load reads and parses the manifest at path.
func Load(fsys afero.Fs, path string) (*Manifest, error) {
	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, apperr.Wrap(apperr.ManifestCorrupt, err, "%s not found", filepath.ToSlash(path))
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return Parse(data)
}

// Routing returns the routing section. Missing routes or targets come back
// empty; containers of the wrong type are ManifestCorrupt.
func (m *Manifest) Routing() (*Routing, error) {
	if err := m.checkShape(); err != nil {
		return nil, err
	}

	r := &Routing{Targets: map[string]Target{}}
	section := gjson.GetBytes(m.doc, routingPath)
	if !section.Exists() {
		return r, nil
	}
	if err := json.Unmarshal([]byte(section.Raw), r); err != nil {
		return nil, apperr.Wrap(apperr.ManifestCorrupt, err, "sap.ui5.routing has an unexpected structure")
	}
	if r.Targets == nil {
		r.Targets = map[string]Target{}
	}
	return r, nil
}

// checkShape verifies every routing container that exists has the type the
// merge expects.
func (m *Manifest) checkShape() error {
	checks := []struct {
		path  string
		label string
		want  string
		ok    func(gjson.Result) bool
	}{
		{ui5Path, "sap.ui5", "an object", gjson.Result.IsObject},
		{routingPath, "sap.ui5.routing", "an object", gjson.Result.IsObject},
		{routesPath, "sap.ui5.routing.routes", "an array", gjson.Result.IsArray},
		{targetsPath, "sap.ui5.routing.targets", "an object", gjson.Result.IsObject},
	}
	for _, c := range checks {
		res := gjson.GetBytes(m.doc, c.path)
		if res.Exists() && !c.ok(res) {
			return apperr.New(apperr.ManifestCorrupt, "%s must be %s", c.label, c.want)
		}
	}
	return nil
}

// EnsureRouting creates sap.ui5, routing, routes and targets where they are
// missing. Existing containers are never replaced.
func (m *Manifest) EnsureRouting() error {
	if err := m.checkShape(); err != nil {
		return err
	}

	for _, c := range []struct{ parent, path, key, empty string }{
		{"", ui5Path, "sap.ui5", "{}"},
		{ui5Path, routingPath, "routing", "{}"},
		{routingPath, routesPath, "routes", "[]"},
		{routingPath, targetsPath, "targets", "{}"},
	} {
		if gjson.GetBytes(m.doc, c.path).Exists() {
			continue
		}
		if err := m.appendMember(c.parent, c.key, json.RawMessage(c.empty)); err != nil {
			return fmt.Errorf("creating %s: %w", displayPath(c.path), err)
		}
	}
	return nil
}

// AddRoute appends r to routing.routes. An existing route with the same
// name is kept; the list can hold duplicates.
func (m *Manifest) AddRoute(r Route) error {
	if err := m.EnsureRouting(); err != nil {
		return err
	}
	if r.Target == nil {
		r.Target = TargetRef{}
	}

	if err := m.appendMember(routesPath, "", r); err != nil {
		return fmt.Errorf("appending route %s: %w", r.Name, err)
	}
	return nil
}

// SetTarget inserts or replaces routing.targets[name].
func (m *Manifest) SetTarget(name string, t Target) error {
	if err := m.EnsureRouting(); err != nil {
		return err
	}

	path := targetsPath + "." + escapeKey(name)
	existing := gjson.GetBytes(m.doc, path)
	if !existing.Exists() {
		if err := m.appendMember(targetsPath, name, t); err != nil {
			return fmt.Errorf("setting target %s: %w", name, err)
		}
		return nil
	}

	start, _, err := m.span(path)
	if err != nil {
		return fmt.Errorf("setting target %s: %w", name, err)
	}
	lay := detectLayout(m.doc)
	raw, err := lay.encode(t, lineIndent(m.doc, start))
	if err != nil {
		return err
	}
	doc, err := sjson.SetRawBytes(m.doc, path, raw)
	if err != nil {
		return fmt.Errorf("setting target %s: %w", name, err)
	}
	m.doc = doc
	return nil
}

// RegisterView adds the route and target for an XML view called name.
func (m *Manifest) RegisterView(name string) error {
	if _, err := m.Routing(); err != nil {
		return err
	}
	targetName := "Target" + name

	if err := m.AddRoute(Route{
		Name:    name,
		Pattern: "Route" + name,
		Target:  TargetRef{targetName},
	}); err != nil {
		return err
	}
	return m.SetTarget(targetName, Target{
		ViewType: "XML",
		ViewID:   strings.ToLower(name),
		ViewName: name,
	})
}

// Bytes returns the document. Bytes outside the inserted members are the
// ones the manifest was parsed from.
func (m *Manifest) Bytes() []byte {
	return append([]byte(nil), m.doc...)
}

// appendMember adds v as the last member of the object or array at parent
// ("" is the document root). key names the member in objects and is ignored
// for arrays. The member is indented one level below the line the container
// opens on, using the document's own indentation.
func (m *Manifest) appendMember(parent, key string, v any) error {
	start, end, err := m.span(parent)
	if err != nil {
		return err
	}
	lay := detectLayout(m.doc)

	closing := end - 1
	last := closing - 1
	for last > start && isSpace(m.doc[last]) {
		last--
	}
	empty := last == start

	outer := lineIndent(m.doc, start)
	inner := outer + lay.unit
	value, err := lay.encode(v, inner)
	if err != nil {
		return err
	}

	var member []byte
	if m.doc[start] == '{' {
		k, err := json.Marshal(key)
		if err != nil {
			return err
		}
		member = append(member, k...)
		member = append(member, ':')
		if lay.pretty() {
			member = append(member, ' ')
		}
	}
	member = append(member, value...)

	var ins []byte
	from, to := last+1, last+1
	switch {
	case empty && lay.pretty():
		from, to = start+1, closing
		ins = []byte(lay.newline + inner + string(member) + lay.newline + outer)
	case empty:
		from, to = start+1, closing
		ins = member
	case lay.pretty():
		ins = append([]byte(","+lay.newline+inner), member...)
	default:
		ins = append([]byte(","), member...)
	}

	doc := make([]byte, 0, len(m.doc)+len(ins))
	doc = append(doc, m.doc[:from]...)
	doc = append(doc, ins...)
	doc = append(doc, m.doc[to:]...)
	m.doc = doc
	return nil
}

// span returns the byte range of the value at path. The empty path is the
// root object.
func (m *Manifest) span(path string) (int, int, error) {
	if path == "" {
		start := bytes.IndexByte(m.doc, '{')
		end := bytes.LastIndexByte(m.doc, '}') + 1
		if start < 0 || end <= start {
			return 0, 0, apperr.New(apperr.ManifestCorrupt, "manifest.json must contain a JSON object")
		}
		return start, end, nil
	}

	res := gjson.GetBytes(m.doc, path)
	start, end := res.Index, res.Index+len(res.Raw)
	if !res.Exists() || start <= 0 || end > len(m.doc) || string(m.doc[start:end]) != res.Raw {
		return 0, 0, fmt.Errorf("cannot locate %s", displayPath(path))
	}
	return start, end, nil
}

// layout is the whitespace style of a document. A zero unit means the
// document is on a single line.
type layout struct {
	unit    string
	newline string
}

func detectLayout(doc []byte) layout {
	if bytes.IndexByte(doc, '\n') < 0 {
		return layout{}
	}
	lay := layout{unit: "  ", newline: "\n"}
	if bytes.Contains(doc, []byte("\r\n")) {
		lay.newline = "\r\n"
	}
	for _, line := range bytes.Split(doc, []byte("\n")) {
		if len(bytes.TrimSpace(line)) == 0 {
			continue
		}
		if n := len(line) - len(bytes.TrimLeft(line, " \t")); n > 0 {
			lay.unit = string(line[:n])
			break
		}
	}
	return lay
}

func (l layout) pretty() bool { return l.unit != "" }

// encode marshals v for a position whose line is indented by prefix.
func (l layout) encode(v any, prefix string) ([]byte, error) {
	if !l.pretty() {
		return json.Marshal(v)
	}
	b, err := json.MarshalIndent(v, prefix, l.unit)
	if err != nil {
		return nil, err
	}
	if l.newline != "\n" {
		b = bytes.ReplaceAll(b, []byte("\n"), []byte(l.newline))
	}
	return b, nil
}

// lineIndent returns the leading whitespace of the line containing pos.
func lineIndent(doc []byte, pos int) string {
	start := bytes.LastIndexByte(doc[:pos], '\n') + 1
	end := start
	for end < pos && (doc[end] == ' ' || doc[end] == '\t') {
		end++
	}
	return string(doc[start:end])
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

func displayPath(path string) string {
	return strings.ReplaceAll(path, `\.`, ".")
}

// Save writes the manifest to path. The document goes to a temporary file in
// the same directory first and is renamed over path, so a failed write
// leaves the previous manifest in place.
func (m *Manifest) Save(fsys afero.Fs, path string) error {
	data := m.Bytes()

	tmp, err := afero.TempFile(fsys, filepath.Dir(path), ".manifest-*.json")
	if err != nil {
		return fmt.Errorf("saving %s: %w", path, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		fsys.Remove(tmpName)
		return fmt.Errorf("saving %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		fsys.Remove(tmpName)
		return fmt.Errorf("saving %s: %w", path, err)
	}
	if err := fsys.Rename(tmpName, path); err != nil {
		fsys.Remove(tmpName)
		return fmt.Errorf("saving %s: %w", path, err)
	}
	return nil
}

// escapeKey escapes the characters gjson/sjson treat as path syntax.
func escapeKey(key string) string {
	var b strings.Builder
	for _, r := range key {
		switch r {
		case '.', '*', '?', '|', '#', '@', '\\', '!', '=', '<', '>', '%':
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}
