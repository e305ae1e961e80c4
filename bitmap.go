package zpl

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

const (
	defaultHandle = "IMAGE"
	defaultDevice = "R"

	infoHeaderMinSize = 40
	widthAlignment    = 32
)

// fileHeader is the BITMAPFILEHEADER after the "BM" signature.
type fileHeader struct {
	Size      uint32
	Reserved1 uint16
	Reserved2 uint16
	OffBits   uint32
}

// infoHeader is the BITMAPINFOHEADER after its size field.
type infoHeader struct {
	Width           int32
	Height          int32
	Planes          uint16
	BitCount        uint16
	Compression     uint32
	SizeImage       uint32
	XPixelsPerM     int32
	YPixelsPerM     int32
	ColorsUsed      uint32
	ColorsImportant uint32
}

// Bitmap is a monochrome image encoded as a ~DG graphic upload. The width is
// always a multiple of 32 pixels.
type Bitmap struct {
	Handle string
	Device string
	Width  int
	Height int

	upload string
}

type bitmapConfig struct {
	device string
}

// BitmapOption configures bitmap decoding.
type BitmapOption func(*bitmapConfig)

// WithDevice stores the graphic on another printer device, e.g. "E" for
// flash. The default is "R", printer DRAM.
func WithDevice(device string) BitmapOption {
	return func(c *bitmapConfig) {
		c.device = device
	}
}

// LoadBitmap decodes the BMP file at path.
func LoadBitmap(path, handle string, opts ...BitmapOption) (*Bitmap, error) {
	slog.Info("Loading bitmap", "path", path)

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening bitmap: %w", err)
	}
	defer f.Close()

	return DecodeBitmap(f, handle, opts...)
}

// DecodeBitmap reads an uncompressed 1 bit per pixel BMP and encodes it for
// upload under handle. BMP stores the bottom row first; the graphic is
// written top row first.
func DecodeBitmap(r io.ReadSeeker, handle string, opts ...BitmapOption) (*Bitmap, error) {
	cfg := bitmapConfig{device: defaultDevice}
	for _, opt := range opts {
		opt(&cfg)
	}
	if handle == "" {
		handle = defaultHandle
	}

	sig := make([]byte, 2)
	if _, err := io.ReadFull(r, sig); err != nil {
		return nil, fmt.Errorf("%w: reading signature: %v", ErrFormat, err)
	}
	if string(sig) != "BM" {
		return nil, fmt.Errorf("%w: bad signature %q", ErrFormat, sig)
	}

	var fh fileHeader
	if err := binary.Read(r, binary.LittleEndian, &fh); err != nil {
		return nil, fmt.Errorf("%w: reading file header: %v", ErrFormat, err)
	}
	slog.Debug("Bitmap file header", "size", fh.Size, "pixelOffset", fh.OffBits)

	var headerSize uint32
	if err := binary.Read(r, binary.LittleEndian, &headerSize); err != nil {
		return nil, fmt.Errorf("%w: reading info header size: %v", ErrFormat, err)
	}
	if headerSize < infoHeaderMinSize {
		return nil, fmt.Errorf("%w: unsupported header of %d bytes, need at least %d", ErrFormat, headerSize, infoHeaderMinSize)
	}

	var ih infoHeader
	if err := binary.Read(r, binary.LittleEndian, &ih); err != nil {
		return nil, fmt.Errorf("%w: reading info header: %v", ErrFormat, err)
	}
	slog.Debug("Bitmap info header",
		"width", ih.Width,
		"height", ih.Height,
		"bpp", ih.BitCount,
		"compression", ih.Compression,
		"imageSize", ih.SizeImage,
		"hRes", ih.XPixelsPerM,
		"vRes", ih.YPixelsPerM,
		"colours", ih.ColorsUsed,
		"importantColours", ih.ColorsImportant,
	)

	if ih.Width < 0 || ih.Width%widthAlignment != 0 {
		return nil, fmt.Errorf("%w: width %d not multiple of %d", ErrFormat, ih.Width, widthAlignment)
	}
	if ih.Planes != 1 {
		return nil, fmt.Errorf("%w: unsupported planes %d", ErrFormat, ih.Planes)
	}
	if ih.BitCount != 1 {
		return nil, fmt.Errorf("%w: unsupported depth of %d bits per pixel, only monochrome is supported", ErrFormat, ih.BitCount)
	}
	if ih.Compression != 0 {
		return nil, fmt.Errorf("%w: unsupported compression %d", ErrFormat, ih.Compression)
	}

	width := int(ih.Width)
	height := int(ih.Height)
	topDown := height < 0
	if topDown {
		height = -height
	}
	rowBytes := width / 8
	total := rowBytes * height

	size, err := r.Seek(0, io.SeekEnd)
	if err != nil {
		return nil, fmt.Errorf("%w: sizing input: %v", ErrFormat, err)
	}
	if int64(fh.OffBits)+int64(total) > size {
		return nil, fmt.Errorf("%w: header claims %d bytes of pixel data at offset %d, input holds %d bytes", ErrFormat, total, fh.OffBits, size)
	}

	if _, err := r.Seek(int64(fh.OffBits), io.SeekStart); err != nil {
		return nil, fmt.Errorf("%w: seeking to pixel data: %v", ErrFormat, err)
	}
	pixels := make([]byte, total)
	if _, err := io.ReadFull(r, pixels); err != nil {
		return nil, fmt.Errorf("%w: reading %d bytes of pixel data: %v", ErrFormat, total, err)
	}
	slog.Debug("Read bitmap pixel data", "bytes", total)

	var data strings.Builder
	data.Grow(total * 2)
	for i := range height {
		row := height - 1 - i
		if topDown {
			row = i
		}
		data.WriteString(strings.ToUpper(hex.EncodeToString(pixels[row*rowBytes : (row+1)*rowBytes])))
	}

	return &Bitmap{
		Handle: handle,
		Device: cfg.device,
		Width:  width,
		Height: height,
		upload: fmt.Sprintf("~DG%s:%s.GRF,%d,%d,%s", cfg.device, handle, total, rowBytes, data.String()),
	}, nil
}

// UploadCommand returns the ~DG line that stores the graphic on the printer.
func (b *Bitmap) UploadCommand() string {
	return b.upload
}

// RenderCommand returns the ^XG line that recalls the graphic magnified by
// scaleX and scaleY.
func (b *Bitmap) RenderCommand(scaleX, scaleY int) string {
	return fmt.Sprintf("^XG%s:%s.GRF,%d,%d", b.Device, b.Handle, scaleX, scaleY)
}

func (b *Bitmap) String() string {
	return fmt.Sprintf("Bitmap(%s,%d,%d)", b.Handle, b.Width, b.Height)
}
