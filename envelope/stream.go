package envelope

import (
	"encoding/binary"
	"errors"
	"io"
	"slices"
)

// MaxBlockSize is the maximum size of an envelope stream block, in bytes.
// Writes larger than this are broken up into blocks of this size, matching
// aestream's block-length encoding (a 2-byte big-endian header).
const MaxBlockSize = 1<<16 - 1

// ErrInvalidCiphertext is returned by Reader when the stream ends before a
// terminal empty block is seen.
var ErrInvalidCiphertext = errors.New("envelope: invalid ciphertext")

// Writer encrypts written data in length-framed blocks. Each block is
// sealed independently through the wrapped cipher's running state, so the
// cipher's own nonce/counter advance (and, on the authenticated path, its
// MAC absorbs each block's ciphertext) carries the forward progression that
// aestream achieves by ratcheting its thyrse.Protocol between blocks.
type Writer struct {
	c        transformer
	overhead int
	w        io.Writer
	buf      []byte
	closed   bool
}

// NewWriter wraps c (an *rcs.Cipher or *csx.Cipher constructed for
// encryption) and w with a streaming authenticated encryption writer.
// overhead must equal the cipher's per-call tag size (0 if c was built
// unauthenticated).
//
// The returned io.WriteCloser MUST be closed for the encrypted stream to be
// valid. c MUST NOT be used elsewhere while the writer is open.
func NewWriter(c transformer, overhead int, w io.Writer) *Writer {
	return &Writer{
		c:        c,
		overhead: overhead,
		w:        w,
		buf:      make([]byte, 0, 1024),
	}
}

func (s *Writer) Write(p []byte) (n int, err error) {
	if len(p) == 0 {
		return 0, nil
	}

	total := len(p)
	for len(p) > 0 {
		blockLen := min(len(p), MaxBlockSize)
		if err = s.sealAndWrite(p[:blockLen]); err != nil {
			return total - len(p), err
		}
		p = p[blockLen:]
	}
	return total, nil
}

// Close ends the stream with a terminal empty block.
func (s *Writer) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	return s.sealAndWrite(nil)
}

func (s *Writer) sealAndWrite(p []byte) error {
	// The header is sealed as its own unit so the reader can learn the
	// block length before it has enough ciphertext to decrypt the block.
	var header [headerSize]byte
	binary.BigEndian.PutUint16(header[:], uint16(len(p)))

	s.buf = slices.Grow(s.buf[:0], headerSize+s.overhead)
	sealedHeader := s.buf[:headerSize+s.overhead]
	if _, err := s.c.Transform(sealedHeader, header[:]); err != nil {
		return err
	}
	if _, err := s.w.Write(sealedHeader); err != nil {
		return err
	}

	sealedBlock := make([]byte, len(p)+s.overhead)
	if _, err := s.c.Transform(sealedBlock, p); err != nil {
		return err
	}
	_, err := s.w.Write(sealedBlock)
	return err
}

// Reader decrypts a stream written by Writer.
type Reader struct {
	c        transformer
	overhead int
	r        io.Reader
	buf      []byte
	blockBuf []byte
	eos      bool
}

// NewReader wraps c (an *rcs.Cipher or *csx.Cipher constructed for
// decryption) and r. overhead must match the value passed to NewWriter.
func NewReader(c transformer, overhead int, r io.Reader) *Reader {
	return &Reader{
		c:        c,
		overhead: overhead,
		r:        r,
		buf:      make([]byte, 0, 1024),
	}
}

func (o *Reader) Read(p []byte) (n int, err error) {
	if len(p) == 0 {
		return 0, nil
	}

	for {
		if len(o.blockBuf) > 0 {
			n = min(len(o.blockBuf), len(p))
			copy(p, o.blockBuf[:n])
			o.blockBuf = o.blockBuf[n:]
			return n, nil
		}

		if o.eos {
			return 0, io.EOF
		}

		sealedHeader, err := o.read(headerSize + o.overhead)
		if err != nil {
			return 0, err
		}

		header := make([]byte, headerSize)
		ok, err := o.c.Transform(header, sealedHeader)
		if err != nil {
			return 0, err
		}
		if !ok {
			return 0, ErrAuthFailed
		}
		blockLen := int(binary.BigEndian.Uint16(header))

		// The terminal empty block still carries a sealed (tag-only)
		// payload, which is read and verified like any other block.
		sealedBlock, err := o.read(blockLen + o.overhead)
		if err != nil {
			return 0, err
		}
		block := make([]byte, blockLen)
		ok, err = o.c.Transform(block, sealedBlock)
		if err != nil {
			return 0, err
		}
		if !ok {
			return 0, ErrAuthFailed
		}
		if blockLen > 0 {
			o.blockBuf = block
		} else {
			o.eos = true
		}
	}
}

func (o *Reader) read(n int) ([]byte, error) {
	o.buf = slices.Grow(o.buf[:0], n)
	data := o.buf[:n]
	if _, err := io.ReadFull(o.r, data); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, ErrInvalidCiphertext
		}
		return nil, err
	}
	return data, nil
}

const headerSize = 2

var (
	_ io.WriteCloser = (*Writer)(nil)
	_ io.Reader      = (*Reader)(nil)
)
