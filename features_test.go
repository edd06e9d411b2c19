package hmmtag

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/akualab/hmmtag/model"
)

func seqOf(labs string, v float64) []model.Obs {
	var seq []model.Obs
	for _, l := range strings.Fields(labs) {
		seq = append(seq, model.NewObs(model.Label(l), v))
	}
	return seq
}

func TestDataSet(t *testing.T) {

	dir, e := ioutil.TempDir("", "hmmtag-ds")
	CheckError(t, e)
	defer os.RemoveAll(dir)

	CheckError(t, ioutil.WriteFile(filepath.Join(dir, "a.json"), []byte(
		`{"id":"a1","labels":["DT","NN"],"values":[0.1,0.8]}
{"id":"a2","labels":["VB"],"values":[0.4]}
`), 0644))
	CheckError(t, ioutil.WriteFile(filepath.Join(dir, "b.json"), []byte(
		`{"id":"b1","labels":["NN"],"values":[0.9]}
`), 0644))

	ds, e := ReadDataSetReader(strings.NewReader("path: " + dir + "\nfiles: [a.json, b.json]\n"))
	CheckError(t, e)

	seqs, e := ds.Sequences()
	CheckError(t, e)
	if len(seqs) != 3 {
		t.Fatalf("expected 3 sequences, got %d", len(seqs))
	}
	CompareLabels(t, []model.Label{"DT", "NN"}, model.Labels(seqs[0]), "first sequence")
	CompareFloats(t, 0.9, seqs[2][0].Value, "b1 value", 1e-12)
}

func TestSplit(t *testing.T) {

	seqs := make([][]model.Obs, 10)
	for i := range seqs {
		seqs[i] = seqOf("A", float64(i))
	}
	train, val, test := Split(seqs, 0.8, 0.1)
	if len(train) != 8 || len(val) != 1 || len(test) != 1 {
		t.Fatalf("wrong split sizes %d/%d/%d", len(train), len(val), len(test))
	}
	CompareFloats(t, 9, test[0][0].Value, "test value", 1e-12)
}

func TestStitch(t *testing.T) {

	stream := Stitch([][]model.Obs{seqOf("DT NN", 1), seqOf("VB", 2)}, -1)
	expected := []model.Label{"DT", "NN", model.Stop, model.Start, "VB", model.Stop}
	CompareLabels(t, expected, model.Labels(stream), "stitched labels")
	CompareFloats(t, -1, stream[2].Value, "boundary value", 1e-12)
}

func TestAccuracy(t *testing.T) {

	ref := []model.Label{model.Start, "DT", "NN", "VB", model.Stop}
	hyp := []model.Label{"NN", "DT", "NN", "NN", "NN"}
	correct, total := Accuracy(ref, hyp)
	if correct != 2 || total != 3 {
		t.Fatalf("expected 2/3, got %d/%d", correct, total)
	}

	correct, total = Accuracy([]model.Label{"A", "B"}, []model.Label{"A"})
	if correct != 1 || total != 2 {
		t.Fatalf("expected 1/2, got %d/%d", correct, total)
	}
}
