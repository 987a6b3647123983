package adl

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"image"
	"io"
	"io/fs"

	"github.com/32bitkid/onebit/screen"
)

// Picture locates a picture stream inside one of the game's BLOCK files.
type Picture struct {
	Block  uint8
	Offset uint16
}

// Root is a reference to the files of a hi-res adventure game.
type Root struct {
	FS       fs.FS
	Pictures []Picture

	blocks map[uint8][]byte
}

func NewRoot(fsys fs.FS) *Root {
	return &Root{FS: fsys}
}

// LoadPictures reads a table of n picture entries, each a block number
// followed by a little-endian offset.
func (root *Root) LoadPictures(r io.Reader, n int) error {
	pics := make([]Picture, 0, n)
	for i := 0; i < n; i++ {
		var p Picture
		if err := binary.Read(r, binary.LittleEndian, &p); err != nil {
			return fmt.Errorf("adl: picture table entry %d: %w", i, err)
		}
		pics = append(pics, p)
	}
	root.Pictures = pics
	return nil
}

func (root *Root) block(n uint8) ([]byte, error) {
	if data, ok := root.blocks[n]; ok {
		return data, nil
	}

	data, err := fs.ReadFile(root.FS, fmt.Sprintf("BLOCK%d", n))
	if err != nil {
		return nil, err
	}

	if root.blocks == nil {
		root.blocks = make(map[uint8][]byte)
	}
	root.blocks[n] = data
	return data, nil
}

// DrawPicture draws picture pic of the table at pos.
func (root *Root) DrawPicture(pic int, pos image.Point, dst *screen.Surface) error {
	if pic < 0 || pic >= len(root.Pictures) {
		return fmt.Errorf("adl: no picture %d", pic)
	}
	p := root.Pictures[pic]

	data, err := root.block(p.Block)
	if err != nil {
		return err
	}
	if int(p.Offset) > len(data) {
		return fmt.Errorf("%w: offset 0x%04x past end of BLOCK%d", ErrPictureTruncated, p.Offset, p.Block)
	}
	return DrawPic(bytes.NewReader(data[p.Offset:]), pos, dst, PicColor)
}
