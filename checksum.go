package skink

import (
	"crypto/md5"
	"crypto/sha1"
	"encoding/base64"
	"encoding/binary"
	"encoding/hex"
	"hash"
)

// ChecksumAlgorithm selects the digest function.
type ChecksumAlgorithm int

const (
	// SHA1 is the default algorithm.
	SHA1 ChecksumAlgorithm = iota
	// MD5 is retained for interoperability with older consumers.
	MD5
)

// String returns the conventional name of the algorithm.
func (a ChecksumAlgorithm) String() string {
	switch a {
	case SHA1:
		return "sha1"
	case MD5:
		return "md5"
	}
	return "invalid"
}

// DigestFormat selects the output encoding of a checksum.
type DigestFormat int

const (
	// Hex encodes the digest as lowercase hexadecimal. It is the default.
	Hex DigestFormat = iota
	// Base64 encodes the digest with the unpadded standard alphabet.
	Base64
	// Binary returns the raw digest bytes in the string.
	Binary
)

// String returns the conventional name of the format.
func (f DigestFormat) String() string {
	switch f {
	case Hex:
		return "hex"
	case Base64:
		return "base64"
	case Binary:
		return "binary"
	}
	return "invalid"
}

// ChecksumOpts configures Checksum. The zero value requests a hex-encoded
// SHA-1 digest.
type ChecksumOpts struct {
	Algorithm ChecksumAlgorithm
	Format    DigestFormat
}

// Tag bytes of the canonical digest stream. These are frozen: changing any
// of them changes every previously computed checksum.
const (
	csumVersion = 0x01

	csumBless   = 'B' // class binding: name follows
	csumBackref = 'R' // container on the current descent: its entry index follows
	csumList    = 'L'
	csumMap     = 'M'
	csumCode    = 'C'
	csumUndef   = 'u'
	csumBool    = 'b'
	csumNumber  = 'n'
	csumText    = 't'
	csumBytes   = 'y'
)

// Checksum digests the subject's current content together with its class
// binding, so identical content under different classes yields different
// checksums. It is a pure function of (content, class) at call time:
// repeated calls without mutation agree, and mutating the subject changes
// subsequent digests without updating earlier ones.
func (m *Meta) Checksum(opts ChecksumOpts) (string, error) {
	var h hash.Hash
	switch opts.Algorithm {
	case SHA1:
		h = sha1.New()
	case MD5:
		h = md5.New()
	default:
		return "", Usagef("unknown checksum algorithm %d", int(opts.Algorithm))
	}
	w := &digestWriter{h: h, path: make(map[uintptr]uint64)}
	w.h.Write([]byte{csumVersion})
	w.walk(m.subject)
	sum := h.Sum(nil)
	switch opts.Format {
	case Hex:
		return hex.EncodeToString(sum), nil
	case Base64:
		return base64.RawStdEncoding.EncodeToString(sum), nil
	case Binary:
		return string(sum), nil
	}
	return "", Usagef("unknown digest format %d", int(opts.Format))
}

// digestWriter serializes an object graph into a hash in canonical form.
type digestWriter struct {
	h hash.Hash
	// path maps the containers on the current descent to their entry
	// index. Only a true cycle digests as a back-reference; a container
	// shared between siblings digests in full at each position, so the
	// checksum depends on content alone and not on aliasing.
	path map[uintptr]uint64
	n    uint64
	buf  [binary.MaxVarintLen64]byte
}

func (w *digestWriter) uvarint(v uint64) {
	n := binary.PutUvarint(w.buf[:], v)
	w.h.Write(w.buf[:n])
}

func (w *digestWriter) str(s string) {
	w.uvarint(uint64(len(s)))
	w.h.Write([]byte(s))
}

func (w *digestWriter) tag(t byte) {
	w.h.Write([]byte{t})
}

func (w *digestWriter) walk(o *Object) {
	if o.RefType() == RefSequence || o.RefType() == RefMapping {
		id := o.UniqueID()
		if i, ok := w.path[id]; ok {
			w.tag(csumBackref)
			w.uvarint(i)
			return
		}
		w.path[id] = w.n
		w.n++
		defer delete(w.path, id)
	}
	if c, ok := o.Blessed(); ok {
		w.tag(csumBless)
		w.str(c.Name())
	}
	switch o.RefType() {
	case RefScalar:
		switch o.Kind() {
		case KindUndef:
			w.tag(csumUndef)
		case KindBool:
			w.tag(csumBool)
			if o.Bool() {
				w.tag(1)
			} else {
				w.tag(0)
			}
		case KindNumber:
			w.tag(csumNumber)
			w.str(formatNumber(o.Number()))
		case KindText:
			w.tag(csumText)
			w.str(o.Text())
		case KindBytes:
			b, _ := o.BytesValue()
			w.tag(csumBytes)
			w.uvarint(uint64(len(b)))
			w.h.Write(b)
		}
	case RefSequence:
		elems := o.elements()
		w.tag(csumList)
		w.uvarint(uint64(len(elems)))
		for _, e := range elems {
			w.walk(e)
		}
	case RefMapping:
		keys := o.MapKeys()
		w.tag(csumMap)
		w.uvarint(uint64(len(keys)))
		for _, k := range keys {
			w.str(k)
			w.walk(o.MapAt(k))
		}
	case RefCode:
		w.tag(csumCode)
		w.str(o.CodeName())
	}
}
