// Package stdjson provides an osver.JSONDriver backed by encoding/json.
//
//	osver.SetJSONDriver(stdjson.Driver())
//	defer osver.UseDefaultJSONDriver()
package stdjson

import (
	"io"

	"github.com/reoring/osver"
	"github.com/reoring/osver/internal/jsontok"
)

// Driver returns an osver.JSONDriver backed by encoding/json. Its Location
// is exact, which makes MaxBytes enforcement precise.
func Driver() osver.JSONDriver { return driverStd{} }

type driverStd struct{}

func (driverStd) NewReader(r io.Reader) osver.Source {
	return osver.SourceFromEngine(jsontok.NewStdReader(r))
}
func (driverStd) NewBytes(b []byte) osver.Source {
	return osver.SourceFromEngine(jsontok.NewStdBytes(b))
}
func (driverStd) Name() string { return "encoding/json" }
