package draw

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// maxChunkSize is the maximum bytes written at once. 1400 bytes stays under
// a typical MTU for smooth SSH transmission.
const maxChunkSize = 1400

// FrameWriter collects one frame of terminal output (canvas rows, text
// overlays, borders) and sends it in MTU-sized chunks on Flush. Positions
// passed to WriteAt are 1-based within the render area; the area's offset
// inside the terminal is added here.
type FrameWriter struct {
	frame  bytes.Buffer
	out    *bufio.Writer
	offCol int
	offRow int
	num    [20]byte
}

var _ io.Writer = (*FrameWriter)(nil)

// NewFrameWriter creates a FrameWriter sending frames to w.
func NewFrameWriter(w io.Writer, offsetCol, offsetRow int) *FrameWriter {
	return &FrameWriter{
		out:    bufio.NewWriterSize(w, 8192),
		offCol: offsetCol,
		offRow: offsetRow,
	}
}

// SetOffset moves the render area, e.g. after a resize.
func (f *FrameWriter) SetOffset(offsetCol, offsetRow int) {
	f.offCol = offsetCol
	f.offRow = offsetRow
}

// Write queues raw bytes, such as sequences already carrying absolute
// positions.
func (f *FrameWriter) Write(p []byte) (int, error) {
	return f.frame.Write(p)
}

// WriteAt queues s at the render-area position (col, row).
func (f *FrameWriter) WriteAt(col, row int, s string) {
	f.frame.WriteString(termenv.CSI)
	f.frame.Write(strconv.AppendInt(f.num[:0], int64(row+f.offRow), 10))
	f.frame.WriteByte(';')
	f.frame.Write(strconv.AppendInt(f.num[:0], int64(col+f.offCol), 10))
	f.frame.WriteByte('H')
	f.frame.WriteString(s)
}

// Pending returns the number of queued bytes.
func (f *FrameWriter) Pending() int {
	return f.frame.Len()
}

// Flush sends the queued frame and empties the queue, even on error.
func (f *FrameWriter) Flush() error {
	defer f.frame.Reset()
	if err := writeChunked(f.out, f.frame.Bytes()); err != nil {
		return err
	}
	return f.out.Flush()
}

func writeChunked(w io.Writer, data []byte) error {
	for len(data) > 0 {
		n := min(len(data), maxChunkSize)
		if _, err := w.Write(data[:n]); err != nil {
			return err
		}
		data = data[n:]
	}
	return nil
}

// TermSizeFunc reports the terminal size in columns and rows.
type TermSizeFunc func() (width, height int, err error)

// DefaultTermSizeFunc reads the size of the process's stdout.
var DefaultTermSizeFunc TermSizeFunc = func() (int, int, error) {
	return term.GetSize(int(os.Stdout.Fd()))
}

// ClearScreen erases the terminal and homes the cursor.
func ClearScreen(w io.Writer) {
	fmt.Fprintf(w, termenv.CSI+"H"+termenv.CSI+termenv.EraseDisplaySeq, 2)
}

// HideCursor hides the terminal cursor.
func HideCursor(w io.Writer) {
	io.WriteString(w, termenv.CSI+termenv.HideCursorSeq)
}

// ShowCursor shows the terminal cursor.
func ShowCursor(w io.Writer) {
	io.WriteString(w, termenv.CSI+termenv.ShowCursorSeq)
}
