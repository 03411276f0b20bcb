package formatter

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/fxamacker/cbor/v2"

	"github.com/philipp01105/chanlog/core"
)

// Record is the CBOR form of an Entry. Integer keys keep captures compact.
// Params are substituted before encoding because they may hold values CBOR
// cannot represent.
type Record struct {
	Time     time.Time  `cbor:"1,keyasint"`
	Level    core.Level `cbor:"2,keyasint"`
	Logger   string     `cbor:"3,keyasint,omitempty"`
	Message  string     `cbor:"4,keyasint"`
	Error    string     `cbor:"5,keyasint,omitempty"`
	File     string     `cbor:"6,keyasint,omitempty"`
	Line     int        `cbor:"7,keyasint,omitempty"`
	Function string     `cbor:"8,keyasint,omitempty"`
}

// Entry rebuilds a core.Entry from the record, e.g. to re-render a capture
// with the text formatter.
func (r Record) Entry() *core.Entry {
	e := &core.Entry{
		Time:    r.Time,
		Level:   r.Level,
		Logger:  r.Logger,
		Message: r.Message,
	}
	if r.Error != "" {
		e.Cause = errors.New(r.Error)
	}
	if r.File != "" {
		e.Caller = core.CallerInfo{ShortFile: r.File, Line: r.Line, Function: r.Function, Defined: true}
	}
	return e
}

var (
	cborEncMode cbor.EncMode
	cborDecMode cbor.DecMode
)

func init() {
	var err error

	encOpts := cbor.EncOptions{
		Sort:          cbor.SortCanonical,
		IndefLength:   cbor.IndefLengthForbidden,
		NilContainers: cbor.NilContainerAsNull,
		Time:          cbor.TimeRFC3339Nano,
	}
	cborEncMode, err = encOpts.EncMode()
	if err != nil {
		panic(fmt.Sprintf("failed to create CBOR encoder mode: %v", err))
	}

	decOpts := cbor.DecOptions{
		DupMapKey:   cbor.DupMapKeyQuiet,
		IndefLength: cbor.IndefLengthAllowed,
	}
	cborDecMode, err = decOpts.DecMode()
	if err != nil {
		panic(fmt.Sprintf("failed to create CBOR decoder mode: %v", err))
	}
}

// CBORFormatter writes each entry as one CBOR data item, so a capture file
// is a CBOR sequence that NewCBORDecoder can stream back.
type CBORFormatter struct {
	Config
}

// NewCBORFormatter creates a new CBOR formatter. TimestampFormat is ignored.
func NewCBORFormatter(cfg Config) *CBORFormatter {
	return &CBORFormatter{Config: cfg}
}

func (f *CBORFormatter) record(entry *core.Entry) Record {
	r := Record{
		Time:    entry.Time,
		Level:   entry.Level,
		Message: entry.Text(),
	}
	if !f.OmitLogger {
		r.Logger = entry.Logger
	}
	if entry.Cause != nil {
		r.Error = entry.Cause.Error()
	}
	if f.IncludeCaller && entry.Caller.Defined {
		r.File = entry.Caller.ShortFile
		r.Line = entry.Caller.Line
		r.Function = entry.Caller.Function
	}
	return r
}

// Format encodes an entry as a CBOR data item
func (f *CBORFormatter) Format(entry *core.Entry) ([]byte, error) {
	return cborEncMode.Marshal(f.record(entry))
}

// FormatTo encodes an entry straight into the writer
func (f *CBORFormatter) FormatTo(entry *core.Entry, w io.Writer) error {
	return cborEncMode.NewEncoder(w).Encode(f.record(entry))
}

// CBORDecoder streams Records from a capture written by CBORFormatter.
type CBORDecoder struct {
	dec *cbor.Decoder
}

// NewCBORDecoder creates a decoder reading from r.
func NewCBORDecoder(r io.Reader) *CBORDecoder {
	return &CBORDecoder{dec: cborDecMode.NewDecoder(r)}
}

// Next returns the next record, or io.EOF when the capture is exhausted.
func (d *CBORDecoder) Next() (Record, error) {
	var r Record
	if err := d.dec.Decode(&r); err != nil {
		return Record{}, err
	}
	return r, nil
}
