// Package formatter defines how native engine entries are serialized.
//
// It exposes two interfaces: Formatter, which returns a []byte, and
// WriterFormatter, which writes directly to an io.Writer. Handlers
// check for WriterFormatter at construction time and prefer it when
// available.
//
// TextFormatter and JSONFormatter use a pooled bytes.Buffer and
// Append-style functions (time.AppendFormat, strconv.AppendInt) to keep
// per-call allocations down. Buffers larger than 64 KiB are not returned
// to the pool.
//
// CBORFormatter produces a compact binary capture (one CBOR data item per
// entry, integer map keys) meant for side channels that are archived and
// read back later with NewCBORDecoder.
//
// All formatters substitute positional parameters through core.Entry.Text;
// the facade above never formats messages itself.
package formatter
