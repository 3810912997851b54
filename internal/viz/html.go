package viz

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html/template"
	"strings"

	"github.com/TTAWDTT/ToGraph/internal/graph"
)

// hoverRunes caps the node tooltip text.
const hoverRunes = 300

// HTMLOptions configure the interactive page.
type HTMLOptions struct {
	Title string // Page heading; empty means "Knowledge Graph"
	Theme Theme  // Zero value means Light
}

// visNode and visEdge mirror the vis-network dataset schema.
type visNode struct {
	ID                  string `json:"id"`
	Label               string `json:"label"`
	Title               string `json:"title"`
	Color               string `json:"color"`
	Size                int    `json:"size"`
	BorderWidth         int    `json:"borderWidth"`
	BorderWidthSelected int    `json:"borderWidthSelected"`
}

type visEdge struct {
	From   string `json:"from"`
	To     string `json:"to"`
	Title  string `json:"title"`
	Color  string `json:"color"`
	Width  int    `json:"width"`
	Dashes bool   `json:"dashes"`
}

// RenderHTML renders the graph as a self-contained interactive page backed
// by vis-network. content supplies the full section text for hover
// previews, keyed by node ID; nodes missing from the map fall back to
// their stored preview.
func RenderHTML(g *graph.Graph, content map[string]string, opts HTMLOptions) ([]byte, error) {
	if opts.Title == "" {
		opts.Title = "Knowledge Graph"
	}
	if opts.Theme.Name == "" {
		opts.Theme = Light
	}
	theme := opts.Theme

	nodes := make([]visNode, 0, g.NodeCount())
	for _, n := range g.Nodes() {
		text, ok := content[n.ID]
		if !ok {
			text = n.Preview
		}
		nodes = append(nodes, visNode{
			ID:                  n.ID,
			Label:               n.Label,
			Title:               hoverText(text),
			Color:               theme.nodeColor(n.Level),
			Size:                nodeSize(n.Level),
			BorderWidth:         2,
			BorderWidthSelected: 4,
		})
	}

	edges := make([]visEdge, 0, g.EdgeCount())
	for _, e := range g.Edges() {
		ve := visEdge{
			From:  e.From,
			To:    e.To,
			Title: string(e.Relation),
			Color: theme.Edge,
			Width: 2,
		}
		if e.Relation == graph.RelationRelated {
			ve.Width = 1
			ve.Dashes = true
			if len(e.SharedTerms) > 0 {
				ve.Title = "related: " + strings.Join(e.SharedTerms, ", ")
			}
		}
		edges = append(edges, ve)
	}

	nodesJSON, err := json.Marshal(nodes)
	if err != nil {
		return nil, fmt.Errorf("marshal nodes: %w", err)
	}
	edgesJSON, err := json.Marshal(edges)
	if err != nil {
		return nil, fmt.Errorf("marshal edges: %w", err)
	}
	optionsJSON, err := networkOptions(theme)
	if err != nil {
		return nil, fmt.Errorf("marshal options: %w", err)
	}

	var buf bytes.Buffer
	err = pageTemplate.Execute(&buf, pageData{
		Title:   opts.Title,
		Theme:   theme,
		Nodes:   template.JS(nodesJSON),
		Edges:   template.JS(edgesJSON),
		Options: template.JS(optionsJSON),
	})
	if err != nil {
		return nil, fmt.Errorf("render page: %w", err)
	}
	return buf.Bytes(), nil
}

// hoverText truncates section text for the tooltip.
func hoverText(text string) string {
	if text == "" {
		return "No content"
	}
	runes := []rune(text)
	if len(runes) <= hoverRunes {
		return text
	}
	return string(runes[:hoverRunes]) + "..."
}

// networkOptions builds the vis-network options blob. The physics constants
// are tuned for a few dozen nodes; only the label color varies by theme.
func networkOptions(theme Theme) ([]byte, error) {
	return json.Marshal(map[string]any{
		"physics": map[string]any{
			"enabled": true,
			"barnesHut": map[string]any{
				"gravitationalConstant": -8000,
				"centralGravity":        0.3,
				"springLength":          150,
				"springConstant":        0.04,
				"damping":               0.09,
				"avoidOverlap":          0.1,
			},
			"stabilization": map[string]any{
				"enabled":    true,
				"iterations": 200,
			},
		},
		"nodes": map[string]any{
			"shape": "dot",
			"font": map[string]any{
				"size":  14,
				"face":  "arial",
				"color": theme.Text,
			},
		},
		"edges": map[string]any{
			"color": map[string]any{
				"inherit": false,
			},
			"smooth": map[string]any{
				"enabled": true,
				"type":    "continuous",
			},
		},
	})
}

type pageData struct {
	Title   string
	Theme   Theme
	Nodes   template.JS
	Edges   template.JS
	Options template.JS
}

var pageTemplate = template.Must(template.New("graph").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>{{.Title}}</title>

    <link rel="stylesheet" href="https://unpkg.com/vis-network@9.1.2/dist/vis-network.min.css" />
    <script src="https://unpkg.com/vis-network@9.1.2/dist/vis-network.min.js"></script>

    <script>
        if (typeof vis === 'undefined') {
            document.write('<script src="https://cdn.jsdelivr.net/npm/vis-network@9.1.2/dist/vis-network.min.js"><\/script>');
        }
    </script>

    <style>
        body {
            margin: 0;
            padding: 0;
            font-family: Arial, sans-serif;
            background-color: {{.Theme.Background}};
            color: {{.Theme.Text}};
        }
        .header {
            padding: 20px;
            text-align: center;
            background-color: {{.Theme.Background}};
            border-bottom: 2px solid {{.Theme.Edge}};
        }
        h1 {
            margin: 0;
            color: {{.Theme.Text}};
        }
        .controls {
            padding: 10px 20px;
            background-color: {{.Theme.Background}};
            border-bottom: 1px solid {{.Theme.Edge}};
        }
        .button {
            padding: 8px 16px;
            margin-right: 10px;
            background-color: {{.Theme.Node}};
            color: #ffffff;
            border: none;
            border-radius: 4px;
            cursor: pointer;
            font-size: 14px;
        }
        .button:hover {
            opacity: 0.8;
        }
        #mynetwork {
            width: 100%;
            height: 800px;
            border: none;
            background-color: {{.Theme.Background}};
        }
        .info-panel {
            position: fixed;
            bottom: 20px;
            right: 20px;
            background-color: {{.Theme.Background}};
            padding: 15px;
            border-radius: 8px;
            box-shadow: 0 2px 10px rgba(0,0,0,0.2);
            max-width: 300px;
            display: none;
        }
        .info-panel.visible {
            display: block;
        }
    </style>
</head>
<body>
    <div class="header">
        <h1>{{.Title}}</h1>
    </div>
    <div class="controls">
        <button class="button" onclick="network.fit()">Fit to Screen</button>
        <button class="button" onclick="togglePhysics()">Toggle Physics</button>
        <button class="button" onclick="exportImage()">Export as Image</button>
    </div>
    <div id="mynetwork"></div>
    <div id="info-panel" class="info-panel">
        <h3 id="info-title">Node Information</h3>
        <p id="info-content">Click on a node to see details</p>
    </div>

    <script type="text/javascript">
        var nodes = new vis.DataSet({{.Nodes}});
        var edges = new vis.DataSet({{.Edges}});
        var container = document.getElementById('mynetwork');
        var network = new vis.Network(container, {nodes: nodes, edges: edges}, {{.Options}});
        var physicsEnabled = true;

        function togglePhysics() {
            physicsEnabled = !physicsEnabled;
            network.setOptions({physics: {enabled: physicsEnabled}});
        }

        function exportImage() {
            alert('Use browser screenshot or print to PDF functionality to save the graph');
        }

        network.on("click", function(params) {
            var panel = document.getElementById('info-panel');
            if (params.nodes.length > 0) {
                var nodeId = params.nodes[0];
                var node = nodes.get(nodeId);
                document.getElementById('info-title').textContent = node.label || nodeId;
                document.getElementById('info-content').textContent = node.title || 'No additional information';
                panel.classList.add('visible');
            } else {
                panel.classList.remove('visible');
            }
        });
    </script>
</body>
</html>
`))
