// Package cldr reads CLDR windowsZones.xml documents.
package cldr

import (
	"bytes"
	"encoding/xml"
	"errors"
	"io"
	"strings"

	"go.trai.ch/tzmap/internal/core/domain"
	"go.trai.ch/zerr"
	"golang.org/x/net/html/charset"
)

const (
	elemMapTimezones = "mapTimezones"
	elemMapZone      = "mapZone"

	attrTypeVersion  = "typeVersion"
	attrOtherVersion = "otherVersion"
	attrTerritory    = "territory"
	attrType         = "type"
	attrOther        = "other"

	// territoryDefault marks the "golden" zone of a platform id, which would
	// duplicate one of the territory specific entries.
	territoryDefault = "001"
)

// Document is the parsed content of a mapping document.
type Document struct {
	TZIDVersion     string
	PlatformVersion string
	Candidates      []domain.Candidate
}

// Version returns the versions declared by the document.
func (d *Document) Version() domain.Version {
	return domain.Version{TZID: d.TZIDVersion, Platform: d.PlatformVersion}
}

// Parse reads the first mapTimezones element of data and returns its
// candidates in document order.
func Parse(data []byte) (*Document, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))
	dec.Strict = true
	dec.CharsetReader = charset.NewReaderLabel

	var (
		doc      *Document
		depth    int // depth inside the selected mapTimezones element, 0 when outside
		level    int // element depth in the whole document
		sawRoot  bool
		rootDone bool
		done     bool
	)

	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, malformed(err, dec)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if rootDone {
				return nil, notWellFormed("second root element", dec)
			}
			if name, ok := duplicateAttr(t); ok {
				return nil, zerr.With(notWellFormed("duplicate attribute", dec), "attribute", name)
			}
			sawRoot = true
			level++
			if depth > 0 {
				depth++
				if t.Name.Local == elemMapZone {
					if err := doc.add(t, dec); err != nil {
						return nil, err
					}
				}
				continue
			}
			if !done && t.Name.Local == elemMapTimezones {
				doc = &Document{
					TZIDVersion:     attr(t, attrTypeVersion),
					PlatformVersion: attr(t, attrOtherVersion),
				}
				depth = 1
			}
		case xml.EndElement:
			level--
			if level == 0 {
				rootDone = true
			}
			if depth > 0 {
				depth--
				if depth == 0 {
					done = true
				}
			}
		case xml.CharData:
			if level == 0 && len(bytes.TrimSpace(t)) > 0 {
				return nil, notWellFormed("text outside the root element", dec)
			}
		}
	}

	if !sawRoot {
		return nil, zerr.Wrap(domain.ErrMalformedDocument, "document has no root element")
	}
	if doc == nil {
		return nil, zerr.Wrap(domain.ErrSchemaMismatch, "mapTimezones element not found")
	}
	return doc, nil
}

func (d *Document) add(el xml.StartElement, dec *xml.Decoder) error {
	territory, okTerritory := lookup(el, attrTerritory)
	types, okType := lookup(el, attrType)
	other, okOther := lookup(el, attrOther)

	var missing string
	switch {
	case !okTerritory:
		missing = attrTerritory
	case !okType:
		missing = attrType
	case !okOther:
		missing = attrOther
	}
	if missing != "" {
		line, col := dec.InputPos()
		err := zerr.Wrap(domain.ErrMalformedDocument, "mapZone element lacks a required attribute")
		err = zerr.With(err, "attribute", missing)
		err = zerr.With(err, "line", line)
		return zerr.With(err, "column", col)
	}

	if territory == territoryDefault {
		return nil
	}

	for _, id := range strings.Split(types, " ") {
		if id == "" {
			continue
		}
		d.Candidates = append(d.Candidates, domain.Candidate{TZID: id, PlatformID: other})
	}
	return nil
}

// duplicateAttr returns the first attribute name that occurs twice on el.
func duplicateAttr(el xml.StartElement) (string, bool) {
	seen := make(map[xml.Name]struct{}, len(el.Attr))
	for _, a := range el.Attr {
		if _, ok := seen[a.Name]; ok {
			return a.Name.Local, true
		}
		seen[a.Name] = struct{}{}
	}
	return "", false
}

func lookup(el xml.StartElement, name string) (string, bool) {
	for _, a := range el.Attr {
		if a.Name.Space == "" && a.Name.Local == name {
			return a.Value, true
		}
	}
	return "", false
}

func attr(el xml.StartElement, name string) string {
	v, _ := lookup(el, name)
	return v
}

func malformed(cause error, dec *xml.Decoder) error {
	line, col := dec.InputPos()
	err := zerr.Wrap(errors.Join(domain.ErrMalformedDocument, cause), "failed to parse mapping document")
	err = zerr.With(err, "line", line)
	return zerr.With(err, "column", col)
}

func notWellFormed(msg string, dec *xml.Decoder) error {
	line, col := dec.InputPos()
	err := zerr.Wrap(domain.ErrMalformedDocument, msg)
	err = zerr.With(err, "line", line)
	return zerr.With(err, "column", col)
}
