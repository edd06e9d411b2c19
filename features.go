package hmmtag

import (
	"io"
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/akualab/hmmtag/model"
	"github.com/golang/glog"
	"gopkg.in/yaml.v2"
)

// DataSet is a list of JSON-lines files of tagged sequences (see model.Seq).
type DataSet struct {
	Path  string   `yaml:"path"`
	Files []string `yaml:"files"`
}

// Reads a list of sequence files from a file. See ReadDataSetReader()
func ReadDataSet(fn string) (*DataSet, error) {

	f, e := os.Open(fn)
	if e != nil {
		return nil, e
	}
	defer f.Close()
	return ReadDataSetReader(f)
}

// Reads a list of sequence files from an io.Reader.
func ReadDataSetReader(r io.Reader) (*DataSet, error) {

	b, e := ioutil.ReadAll(r)
	if e != nil {
		return nil, e
	}
	ds := &DataSet{}
	if e = yaml.Unmarshal(b, ds); e != nil {
		return nil, e
	}
	return ds, nil
}

// Sequences reads every sequence in the data set, in file order.
func (ds *DataSet) Sequences() ([][]model.Obs, error) {

	var all [][]model.Obs
	for _, name := range ds.Files {
		fn := filepath.Join(ds.Path, name)
		f, e := os.Open(fn)
		if e != nil {
			return nil, e
		}
		seqs, e := model.NewSeqObserver(f).ReadAll()
		f.Close()
		if e != nil {
			return nil, e
		}
		for _, s := range seqs {
			obs, e := s.Obs()
			if e != nil {
				return nil, e
			}
			all = append(all, obs)
		}
		glog.V(1).Infof("read %d sequences from %s", len(seqs), fn)
	}
	return all, nil
}

// Split partitions sequences into contiguous train, validation, and test
// parts. The test part takes the remainder.
func Split(seqs [][]model.Obs, trainFrac, validationFrac float64) (train, validation, test [][]model.Obs) {

	n := len(seqs)
	nt := int(float64(n) * trainFrac)
	nv := int(float64(n) * validationFrac)
	if nt+nv > n {
		nv = n - nt
	}
	return seqs[:nt], seqs[nt : nt+nv], seqs[nt+nv:]
}

// Stitch concatenates sequences into one training stream. Each sequence is
// preceded by a model.Start observation and followed by a model.Stop
// observation, both with emission value boundary. The leading Start of the
// stream is omitted because training already counts the first transition
// out of model.Start.
func Stitch(seqs [][]model.Obs, boundary float64) []model.Obs {

	var stream []model.Obs
	for i, seq := range seqs {
		if i > 0 {
			stream = append(stream, model.NewObs(model.Start, boundary))
		}
		stream = append(stream, seq...)
		stream = append(stream, model.NewObs(model.Stop, boundary))
	}
	return stream
}

// Accuracy counts the positions where hyp equals ref, skipping boundary
// labels in ref. Positions past the shorter sequence count as errors.
func Accuracy(ref, hyp []model.Label) (correct, total int) {

	for i, r := range ref {
		if r.IsBoundary() {
			continue
		}
		total++
		if i < len(hyp) && hyp[i] == r {
			correct++
		}
	}
	return
}
