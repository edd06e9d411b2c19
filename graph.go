package hmmtag

import (
	"fmt"
	"io"
	"io/ioutil"
	"os"
	"strings"

	"github.com/golang/glog"
	"gopkg.in/yaml.v2"
)

// State is a node of the model graph with its output distribution.
type State struct {
	Name   string  `yaml:"name" json:"name"`
	Mean   float64 `yaml:"mean" json:"mean"`
	StdDev float64 `yaml:"sd" json:"sd"`
}

type Edge struct {
	FromName string  `yaml:"from" json:"from"`
	ToName   string  `yaml:"to" json:"to"`
	Weight   float64 `yaml:"weight" json:"weight"`
}

// Graph describes a model by hand: states with Gaussian outputs and
// weighted transitions. Weights out of a state are normalized to
// probabilities.
type Graph struct {
	Name   string   `yaml:"name" json:"name"`
	States []*State `yaml:"states" json:"states"`
	Edges  []*Edge  `yaml:"edges" json:"edges"`
	index  map[string]int
}

// DefaultGraph is a three state chain with overlapping Gaussian outputs.
const DefaultGraph = `
name: toy
states:
  - {name: "1", mean: 0.5, sd: 1.0}
  - {name: "2", mean: 0.75, sd: 0.1}
  - {name: "3", mean: 0.4, sd: 0.3}
edges:
  - {from: "1", to: "1", weight: 0.7}
  - {from: "1", to: "2", weight: 0.3}
  - {from: "2", to: "1", weight: 0.05}
  - {from: "2", to: "2", weight: 0.4}
  - {from: "2", to: "3", weight: 0.55}
  - {from: "3", to: "1", weight: 0.25}
  - {from: "3", to: "2", weight: 0.25}
  - {from: "3", to: "3", weight: 0.5}
`

// Reads graph from io.Reader and creates a new Graph instance.
func ReadGraph(r io.Reader) (*Graph, error) {

	b, err := ioutil.ReadAll(r)
	if err != nil {
		return nil, err
	}

	g := &Graph{}
	err = yaml.Unmarshal(b, g)
	if err != nil {
		return nil, err
	}
	if err = g.createIndex(); err != nil {
		return nil, err
	}
	return g, nil
}

// Reads graph from file and creates a new Graph instance.
func ReadGraphFile(fn string) (*Graph, error) {

	f, err := os.Open(fn)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadGraph(f)
}

// ReadDefaultGraph returns the graph in DefaultGraph.
func ReadDefaultGraph() (*Graph, error) {
	return ReadGraph(strings.NewReader(DefaultGraph))
}

// Writes Graph to an io.Writer.
func (g *Graph) Write(w io.Writer) error {

	b, err := yaml.Marshal(g)
	if err != nil {
		return err
	}
	_, e := w.Write(b)
	return e
}

// Writes Graph to a file.
func (g *Graph) WriteFile(fn string) error {

	f, err := os.Create(fn)
	if err != nil {
		return err
	}
	defer f.Close()

	return g.Write(f)
}

// Index states by name and check that every edge connects known states.
func (g *Graph) createIndex() error {

	g.index = make(map[string]int, len(g.States))
	for i, s := range g.States {
		if _, dup := g.index[s.Name]; dup {
			return fmt.Errorf("graph [%s]: duplicate state [%s]", g.Name, s.Name)
		}
		g.index[s.Name] = i
	}
	for _, e := range g.Edges {
		if _, ok := g.index[e.FromName]; !ok {
			return fmt.Errorf("graph [%s]: edge from unknown state [%s]", g.Name, e.FromName)
		}
		if _, ok := g.index[e.ToName]; !ok {
			return fmt.Errorf("graph [%s]: edge to unknown state [%s]", g.Name, e.ToName)
		}
		if e.Weight < 0 {
			return fmt.Errorf("graph [%s]: negative weight on edge %s->%s", g.Name, e.FromName, e.ToName)
		}
	}

	glog.V(1).Infof("Read %d states and %d edges.", len(g.States), len(g.Edges))
	return nil
}

// TransitionMatrix returns the state names in graph order and the row
// normalized transition probabilities. Every state must have an outgoing
// edge with positive weight.
func (g *Graph) TransitionMatrix() ([]string, [][]float64, error) {

	if g.index == nil {
		if err := g.createIndex(); err != nil {
			return nil, nil, err
		}
	}
	n := len(g.States)
	names := make([]string, n)
	probs := make([][]float64, n)
	for i, s := range g.States {
		names[i] = s.Name
		probs[i] = make([]float64, n)
	}
	for _, e := range g.Edges {
		probs[g.index[e.FromName]][g.index[e.ToName]] += e.Weight
	}
	for i, row := range probs {
		var sum float64
		for _, w := range row {
			sum += w
		}
		if !(sum > 0) {
			return nil, nil, fmt.Errorf("graph [%s]: state [%s] has no outgoing edges", g.Name, names[i])
		}
		for j := range row {
			row[j] /= sum
		}
	}
	return names, probs, nil
}
