package app

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/specialistvlad/framegrid/internal/catalog"
	"github.com/specialistvlad/framegrid/internal/pipeline"
	"github.com/specialistvlad/framegrid/internal/plan"
	"gopkg.in/yaml.v3"
)

// Document is what a run writes out.
type Document struct {
	Build       *pipeline.Result `json:"build" yaml:"build"`
	Catalog     CatalogView      `json:"catalog" yaml:"catalog"`
	Nodes       []NodeView       `json:"nodes" yaml:"nodes"`
	Connections []string         `json:"connections,omitempty" yaml:"connections,omitempty"`
	Orderings   []string         `json:"orderings,omitempty" yaml:"orderings,omitempty"`
}

// CatalogView lists the frames known to the build and the producers it could
// pick from.
type CatalogView struct {
	Frames    []string `json:"frames,omitempty" yaml:"frames,omitempty"`
	Producers []string `json:"producers,omitempty" yaml:"producers,omitempty"`
}

// NodeView is the frame state of one node after the build.
type NodeView struct {
	ID        string            `json:"id" yaml:"id"`
	Component string            `json:"component" yaml:"component"`
	Producer  bool              `json:"producer,omitempty" yaml:"producer,omitempty"`
	Frames    map[string]string `json:"frames,omitempty" yaml:"frames,omitempty"`
	Chains    map[string]string `json:"chains,omitempty" yaml:"chains,omitempty"`
}

func newDocument(cat *catalog.Catalog, p *plan.Plan, res *pipeline.Result) *Document {
	doc := &Document{Build: res}
	for _, f := range cat.Frames() {
		doc.Catalog.Frames = append(doc.Catalog.Frames, string(f))
	}
	for dp := range cat.DynamicProducers() {
		doc.Catalog.Producers = append(doc.Catalog.Producers, dp.String())
	}
	for n := range p.Nodes() {
		pn := n.(*plan.Node)
		view := NodeView{ID: pn.ID(), Component: pn.Component(), Producer: pn.IsProducer()}
		st := pn.State()
		if entries := st.Selected.Entries(); len(entries) > 0 {
			view.Frames = make(map[string]string, len(entries))
			for alias, f := range entries {
				view.Frames[string(alias)] = string(f)
			}
		}
		if len(st.Chains) > 0 {
			view.Chains = make(map[string]string, len(st.Chains))
			for lt, c := range st.Chains {
				view.Chains[lt.String()] = c.String()
			}
		}
		doc.Nodes = append(doc.Nodes, view)
	}
	for _, c := range p.Connections() {
		doc.Connections = append(doc.Connections, c.String())
	}
	for _, o := range p.Orderings() {
		doc.Orderings = append(doc.Orderings, fmt.Sprintf("%s before %s", o.Before.ID(), o.After.ID()))
	}
	return doc
}

func writeDocument(w io.Writer, format string, doc *Document) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(doc)
	case FormatYAML, "":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return err
		}
		return enc.Close()
	}
	return fmt.Errorf("unknown output format %q", format)
}
