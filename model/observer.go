package model

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/golang/glog"
)

// Seq is a data format to represent a tagged sequence of emissions.
// We use it to read json data.
type Seq struct {
	ID     string    `json:"id"`
	Labels []string  `json:"labels"`
	Values []float64 `json:"values"`
}

// Obs converts the sequence to labeled observations.
func (s Seq) Obs() ([]Obs, error) {
	labs := make([]Label, len(s.Labels))
	for i, l := range s.Labels {
		labs[i] = Label(l)
	}
	seq, err := Zip(labs, s.Values)
	if err != nil {
		return nil, fmt.Errorf("sequence [%s]: %w", s.ID, err)
	}
	return seq, nil
}

// SeqObserver streams Seq values from a reader.
type SeqObserver struct {
	reader  io.Reader
	decoder *json.Decoder
}

// NewSeqObserver creates a new SeqObserver. The data is read as a stream of JSON objects
// accessed from an io.Reader. Each JSON object must be separated by a newline.
//
// Example to read sequences from a file (error handling ignored for brevity).
//
//   r, _ = os.Open(fn)              // Open file.
//   obs := NewSeqObserver(r)        // Create observer that reads from file.
//   c, _ = obs.ObsChan()            // Get channel.
//  _ = obs.Close()                  // Closes the underlying file reader.
func NewSeqObserver(reader io.Reader) *SeqObserver {
	return &SeqObserver{
		reader:  reader,
		decoder: json.NewDecoder(reader),
	}
}

// Next returns the next sequence. Returns io.EOF when no more data is available.
func (so *SeqObserver) Next() (Seq, error) {
	var v Seq
	err := so.decoder.Decode(&v)
	return v, err
}

// ReadAll reads every remaining sequence.
func (so *SeqObserver) ReadAll() ([]Seq, error) {
	var all []Seq
	for {
		v, err := so.Next()
		if err == io.EOF {
			return all, nil
		}
		if err != nil {
			return nil, err
		}
		all = append(all, v)
	}
}

// ObsChan returns a channel of sequences. The channel closes at the end of
// the stream or on the first decoding error, which is logged.
func (so *SeqObserver) ObsChan() (<-chan Seq, error) {
	obsChan := make(chan Seq, 1000)
	go func() {
		defer close(obsChan)
		for {
			v, err := so.Next()
			if err == io.EOF {
				return
			}
			if err != nil {
				glog.Warning(err)
				return
			}
			obsChan <- v
		}
	}()
	return obsChan, nil
}

// Close underlying reader if reader implements the io.Closer interface.
func (so *SeqObserver) Close() error {

	c, ok := so.reader.(io.Closer)
	if ok {
		return c.Close()
	}
	return nil
}
