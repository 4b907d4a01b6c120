package requirements

import (
	"bufio"
	"bytes"
	"fmt"
	"regexp"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// pinPattern matches an exact "name==version" requirement.
var pinPattern = regexp.MustCompile(`^([A-Za-z0-9][A-Za-z0-9._-]*)==(\S+)$`)

var separatorRun = regexp.MustCompile(`[-_.]+`)

// Pin is one exact requirement.
type Pin struct {
	Name     string // as written
	Version  *semver.Version
	Raw      string // version as written
	Group    string
	Optional bool // commented out in the manifest
	Line     int
}

// Key returns the normalized package name used for comparisons.
func (p Pin) Key() string { return Normalize(p.Name) }

func (p Pin) String() string { return p.Name + "==" + p.Raw }

// Group is a run of pins under one comment header.
type Group struct {
	Name string
	Pins []Pin
}

// Manifest is a parsed requirements file.
type Manifest struct {
	Groups []Group
}

// Normalize lowercases a package name and folds runs of "-", "_" and "." to "-".
func Normalize(name string) string {
	return separatorRun.ReplaceAllString(strings.ToLower(name), "-")
}

// Parse reads a requirements file made of comment headers and exact pins.
// A comment that itself looks like a pin is an optional pin in the current
// group; any other comment starts a new group. Lines with other version
// specifiers, or versions that are not semantic versions, are errors.
func Parse(data []byte) (*Manifest, error) {
	m := &Manifest{}
	current := -1

	scanner := bufio.NewScanner(bytes.NewReader(data))
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		optional := false
		if strings.HasPrefix(line, "#") {
			body := strings.TrimSpace(strings.TrimLeft(line, "#"))
			if !pinPattern.MatchString(body) {
				m.Groups = append(m.Groups, Group{Name: body})
				current = len(m.Groups) - 1
				continue
			}
			line = body
			optional = true
		}

		// Inline comments trail the requirement.
		if i := strings.Index(line, " #"); i >= 0 {
			line = strings.TrimSpace(line[:i])
		}

		match := pinPattern.FindStringSubmatch(line)
		if match == nil {
			return nil, fmt.Errorf("line %d: %q is not an exact name==version pin", lineNo, line)
		}
		v, err := semver.NewVersion(match[2])
		if err != nil {
			return nil, fmt.Errorf("line %d: version %q of %s: %w", lineNo, match[2], match[1], err)
		}

		if current < 0 {
			m.Groups = append(m.Groups, Group{})
			current = 0
		}
		g := &m.Groups[current]
		g.Pins = append(g.Pins, Pin{
			Name:     match[1],
			Version:  v,
			Raw:      match[2],
			Group:    g.Name,
			Optional: optional,
			Line:     lineNo,
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading requirements: %w", err)
	}
	return m, nil
}

// Pins returns every pin in file order.
func (m *Manifest) Pins() []Pin {
	var out []Pin
	for _, g := range m.Groups {
		out = append(out, g.Pins...)
	}
	return out
}

// Required returns the pins that are not commented out.
func (m *Manifest) Required() []Pin {
	var out []Pin
	for _, p := range m.Pins() {
		if !p.Optional {
			out = append(out, p)
		}
	}
	return out
}

// Lookup finds a pin by name, ignoring case and separator differences.
func (m *Manifest) Lookup(name string) (Pin, bool) {
	key := Normalize(name)
	for _, p := range m.Pins() {
		if p.Key() == key {
			return p, true
		}
	}
	return Pin{}, false
}

// Group finds a group by name, ignoring case.
func (m *Manifest) Group(name string) (Group, bool) {
	for _, g := range m.Groups {
		if strings.EqualFold(g.Name, name) {
			return g, true
		}
	}
	return Group{}, false
}
