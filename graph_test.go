package hmmtag

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestGraph(t *testing.T) {

	// Create graph yaml file.
	fn := filepath.Join(os.TempDir(), "graph.yaml")
	err := ioutil.WriteFile(fn, []byte(graphData), 0644)
	CheckError(t, err)

	g, e := ReadGraphFile(fn)
	CheckError(t, e)

	t.Logf("Graph:\n,%+v", *g)
	t.Logf("Edges[0]:\n,%+v", *g.Edges[0])

	fn = filepath.Join(os.TempDir(), "graph-out.yaml")
	CheckError(t, g.WriteFile(fn))
	t.Logf("Wrote to file %s", fn)

	g2, e := ReadGraphFile(fn)
	CheckError(t, e)
	if len(g2.States) != len(g.States) || len(g2.Edges) != len(g.Edges) {
		t.Fatalf("graph changed after write/read: %+v", g2)
	}

	// Get transition probs.
	names, tpm, e := g.TransitionMatrix()
	CheckError(t, e)
	for k, v := range tpm {
		t.Logf("From: %20s: %v", names[k], v)
	}

	// Check values.
	CompareSliceFloat(t, expectedProbs[0], tpm[0], "Error in row 0", 0.0001)
	CompareSliceFloat(t, expectedProbs[1], tpm[1], "Error in row 1", 0.0001)
	CompareSliceFloat(t, expectedProbs[2], tpm[2], "Error in row 2", 0.0001)
}

func TestDefaultGraph(t *testing.T) {

	g, e := ReadDefaultGraph()
	CheckError(t, e)
	names, tpm, e := g.TransitionMatrix()
	CheckError(t, e)

	if strings.Join(names, ",") != "1,2,3" {
		t.Fatalf("Wrong state order: %v", names)
	}
	CompareSliceFloat(t, []float64{0.7, 0.3, 0}, tpm[0], "row 1", 1e-9)
	CompareSliceFloat(t, []float64{0.05, 0.4, 0.55}, tpm[1], "row 2", 1e-9)
	CompareSliceFloat(t, []float64{0.25, 0.25, 0.5}, tpm[2], "row 3", 1e-9)
	CompareFloats(t, 0.1, g.States[1].StdDev, "sd of state 2", 1e-9)
}

func TestGraphErrors(t *testing.T) {

	_, e := ReadGraph(strings.NewReader(`
name: bad
states: [{name: a, mean: 0, sd: 1}]
edges: [{from: a, to: b, weight: 1}]
`))
	if e == nil {
		t.Fatalf("expected unknown state error")
	}

	g, e := ReadGraph(strings.NewReader(`
name: sink
states: [{name: a, mean: 0, sd: 1}, {name: b, mean: 1, sd: 1}]
edges: [{from: a, to: b, weight: 1}]
`))
	CheckError(t, e)
	if _, _, e := g.TransitionMatrix(); e == nil {
		t.Fatalf("expected error for state without outgoing edges")
	}
}

const graphData string = `
name: rooms
states:
  - {name: BACKYARD, mean: 0.1, sd: 1}
  - {name: BATH1, mean: 0.2, sd: 1}
  - {name: BED1, mean: 0.3, sd: 1}
  - {name: DINING, mean: 0.4, sd: 1}
edges:
  - {from: BACKYARD, to: DINING, weight: 2.0}
  - {from: BACKYARD, to: BED1, weight: 1.0}
  - {from: BACKYARD, to: BACKYARD, weight: 1.0}
  - {from: BATH1, to: BED1, weight: 3.0}
  - {from: BATH1, to: DINING, weight: 2.0}
  - {from: BED1, to: BATH1, weight: 2.0}
  - {from: BED1, to: BED1, weight: 2.0}
  - {from: DINING, to: BACKYARD, weight: 1.0}
`

var expectedProbs = [][]float64{
	{0.25, 0, 0.25, 0.5},
	{0, 0, 0.6, 0.4},
	{0, 0.5, 0.5, 0},
}
