package dot

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"text/template"

	"github.com/goccy/go-graphviz"
)

// Render lays out a dot graph with the embedded graphviz library and writes
// the image to outfname in the given format (svg, png, jpg, ...).
func Render(outfname string, format string, dot []byte) error {
	ctx := context.Background()
	g, err := graphviz.New(ctx)
	if err != nil {
		return err
	}
	graph, err := graphviz.ParseBytes(dot)
	if err != nil {
		return err
	}
	defer func() {
		if err := graph.Close(); err != nil {
			log.Println(err)
		}
		g.Close()
	}()
	// RenderFilename in the wasm-based go-graphviz writes inside its sandbox
	// filesystem; render through a host file instead.
	f, err := os.Create(outfname)
	if err != nil {
		return err
	}
	if err := g.Render(ctx, graph, graphviz.Format(format), f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

const tmplEdge = `{{define "edge" -}}
	{{printf "%q -> %q [ %s ]" .From .To .Attrs}}
{{- end}}`

const tmplNode = `{{define "node" -}}
	{{printf "%q [ %s ]" .ID .Attrs}}
{{- end}}`

const tmplGraph = `digraph Expression {
	label="{{.Title}}";
	labeljust="l";
	fontname="Arial";
	fontsize="14";
	rankdir="{{or .Options.rankdir "TB"}}";
	bgcolor="lightgray";
	style="solid";
	penwidth="0.5";
	pad="0.0";
	nodesep="{{or .Options.nodesep "0.25"}}";

	node [shape="box" style="rounded,filled" fillcolor="honeydew" fontname="Verdana" penwidth="1.0" margin="0.05,0.0"];

	{{range .Nodes}}
	{{template "node" .}}
	{{- end}}

	{{- range .Edges}}
	{{template "edge" .}}
	{{- end}}
}
`

// ==[ type def/func: DotNode    ]===============================================
type DotNode struct {
	ID    string
	Attrs DotAttrs
}

func (n *DotNode) String() string {
	return n.ID
}

// ==[ type def/func: DotEdge    ]===============================================
type DotEdge struct {
	From  *DotNode
	To    *DotNode
	Attrs DotAttrs
}

// ==[ type def/func: DotAttrs   ]===============================================
type DotAttrs map[string]string

// List renders the attributes sorted by key, so output is reproducible.
func (p DotAttrs) List() []string {
	keys := make([]string, 0, len(p))
	for k := range p {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	l := make([]string, len(keys))
	for i, k := range keys {
		l[i] = fmt.Sprintf("%s=%q;", k, p[k])
	}
	return l
}

func (p DotAttrs) String() string {
	return strings.Join(p.List(), " ")
}

// ==[ type def/func: DotGraph   ]===============================================
type DotGraph struct {
	Title   string
	Nodes   []*DotNode
	Edges   []*DotEdge
	Options map[string]string
}

// AddNode adds a node with a fresh identifier.
func (g *DotGraph) AddNode(attrs DotAttrs) *DotNode {
	n := &DotNode{ID: fmt.Sprintf("n%d", len(g.Nodes)), Attrs: attrs}
	g.Nodes = append(g.Nodes, n)
	return n
}

func (g *DotGraph) AddEdge(from, to *DotNode, attrs DotAttrs) {
	g.Edges = append(g.Edges, &DotEdge{From: from, To: to, Attrs: attrs})
}

func (g *DotGraph) WriteDot(w io.Writer) error {
	t := template.New("dot")
	t.Option("missingkey=zero") // Make missing map keys return the zero value of appropriate type
	for _, s := range []string{tmplNode, tmplEdge, tmplGraph} {
		if _, err := t.Parse(s); err != nil {
			return err
		}
	}
	var buf bytes.Buffer
	if err := t.Execute(&buf, g); err != nil {
		return err
	}
	_, err := buf.WriteTo(w)
	return err
}

// Export writes the graph to path. A path ending in .dot gets the dot source;
// any other extension is rendered to an image of that format.
func (g *DotGraph) Export(path string) error {
	var buf bytes.Buffer
	if err := g.WriteDot(&buf); err != nil {
		return err
	}
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	if ext == "" || ext == "dot" {
		return os.WriteFile(path, buf.Bytes(), 0644)
	}
	return Render(path, ext, buf.Bytes())
}
