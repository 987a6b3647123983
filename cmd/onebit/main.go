package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	"image/png"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/draw"

	"github.com/32bitkid/onebit"
	"github.com/32bitkid/onebit/adl"
	"github.com/32bitkid/onebit/device"
	"github.com/32bitkid/onebit/graphics"
	"github.com/32bitkid/onebit/screen"
)

var validTypes = map[string]bool{
	"png": true,
	"gif": true,
	"pic": true,
	"hgr": true,
	"adl": true,
}

var validFormats = map[string]bool{
	"pbm": true,
	"png": true,
}

func main() {
	typeFlag := flag.String("t", "", "Input type (png, gif, pic, hgr, adl); defaults to the file extension")
	formatFlag := flag.String("format", "pbm", "Output format (pbm, png)")
	scaleFlag := flag.Bool("scale", false, "Scale the picture up by the largest integer factor that fits")
	thresholdFlag := flag.Bool("threshold", false, "Threshold instead of dithering")
	budgetFlag := flag.Int("budget", 0, "Error row budget in cells, 0 for no limit")
	previewFlag := flag.Int("preview", 0, "Render a tinted LCD preview at this scale (png only)")
	posFlag := flag.String("pos", "0,0", "Picture offset for pic and adl input, as x,y")
	tableFlag := flag.String("table", "", "adl input: file in the game directory holding the picture table")
	tableOffsetFlag := flag.Int64("tableoffset", 0, "adl input: offset of the picture table")
	picsFlag := flag.Int("pics", 0, "adl input: number of entries in the picture table")
	picFlag := flag.Int("pic", 0, "adl input: picture to draw")
	verboseFlag := flag.Bool("verbose", false, "Verbose output")

	flag.Parse()
	args := flag.Args()

	if len(args) == 0 {
		fmt.Println("Usage: onebit [options] inputfile [outputfile]")
		flag.PrintDefaults()
		os.Exit(1)
	}

	if *verboseFlag {
		log.SetFlags(log.LstdFlags | log.Lshortfile)
	} else {
		log.SetFlags(0)
	}

	input := args[0]
	inputType := strings.ToLower(*typeFlag)
	if inputType == "" {
		inputType = strings.TrimPrefix(strings.ToLower(filepath.Ext(input)), ".")
	}
	if !validTypes[inputType] {
		log.Fatalf("Error: unsupported input type %q", inputType)
	}
	if !validFormats[*formatFlag] {
		log.Fatalf("Error: unsupported output format %q", *formatFlag)
	}

	output := strings.TrimSuffix(filepath.Clean(input), filepath.Ext(filepath.Clean(input))) + "." + *formatFlag
	if len(args) > 1 {
		output = args[1]
	}

	var pos image.Point
	if _, err := fmt.Sscanf(*posFlag, "%d,%d", &pos.X, &pos.Y); err != nil {
		log.Fatalf("Error: bad -pos %q: %v", *posFlag, err)
	}

	var (
		surface *screen.Surface
		colors  color.Palette
		err     error
	)
	if inputType == "adl" {
		table := pictureTable{*tableFlag, *tableOffsetFlag, *picsFlag}
		surface, colors, err = loadADL(input, table, *picFlag, pos)
	} else {
		surface, colors, err = load(input, inputType, pos)
	}
	if err != nil {
		log.Fatalf("Error: %v", err)
	}

	cfg := onebit.Config{}
	cfg.Graphics.ErrorRowBudget = *budgetFlag
	if *scaleFlag {
		cfg.Graphics.Scaler = screen.ScalerNearest{}
	}
	if *thresholdFlag {
		cfg.Graphics.Mode = screen.DirectThreshold
	}

	var logger *log.Logger
	if *verboseFlag {
		logger = log.Default()
	}

	dev := device.NewHeadless(screen.DisplayWidth, screen.DisplayHeight)
	sys := onebit.New(dev, cfg, logger)
	if err := sys.Init(); err != nil {
		log.Fatalf("Error: %v", err)
	}
	defer sys.Close()

	err = sys.Run(context.Background(), func(sys *onebit.System) error {
		defer sys.Quit()
		return present(sys, surface, colors)
	})
	if err != nil {
		log.Fatalf("Error: %v", err)
	}

	if *verboseFlag {
		log.Printf("%s: %dx%d %s -> %s", input, surface.W, surface.H, inputType, output)
	}

	if err := write(output, *formatFlag, sys.Graphics().Framebuffer(), *previewFlag); err != nil {
		log.Fatalf("Error: %v", err)
	}
}

func load(name, inputType string, pos image.Point) (*screen.Surface, color.Palette, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	switch inputType {
	case "hgr":
		s, err := adl.ReadHGR(f)
		return s, adl.HGRPalette, err
	case "pic":
		s := screen.NewSurface(adl.HGRWidth, adl.HGRHeight)
		return s, picPalette(), adl.DrawPic(f, pos, s, adl.PicColor)
	}

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, nil, err
	}
	if p, ok := img.(*image.Paletted); ok {
		return screen.SurfaceFrom(p), p.Palette, nil
	}

	p := image.NewPaletted(img.Bounds(), screen.DefaultPalettes.Gray)
	draw.Draw(p, p.Bounds(), img, img.Bounds().Min, draw.Src)
	return screen.SurfaceFrom(p), p.Palette, nil
}

func picPalette() color.Palette {
	colors := make(color.Palette, int(adl.PicColor)+1)
	for i := range colors {
		colors[i] = color.Black
	}
	colors[adl.PicColor] = color.White
	return colors
}

type pictureTable struct {
	file   string
	offset int64
	count  int
}

// loadADL draws one picture of the game installed in dir.
func loadADL(dir string, table pictureTable, pic int, pos image.Point) (*screen.Surface, color.Palette, error) {
	if table.file == "" || table.count <= 0 {
		return nil, nil, errors.New("adl input needs -table and -pics")
	}

	f, err := os.Open(filepath.Join(dir, table.file))
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	if _, err := f.Seek(table.offset, io.SeekStart); err != nil {
		return nil, nil, err
	}

	root := adl.NewRoot(os.DirFS(dir))
	if err := root.LoadPictures(f, table.count); err != nil {
		return nil, nil, err
	}

	s := screen.NewSurface(adl.HGRWidth, adl.HGRHeight)
	return s, picPalette(), root.DrawPicture(pic, pos, s)
}

func present(sys *onebit.System, s *screen.Surface, colors color.Palette) error {
	gm := sys.Graphics()

	gm.BeginTransaction()
	gm.InitSize(s.W, s.H, nil)
	if err := gm.EndTransaction(); err != graphics.TransactionSuccess {
		return err
	}

	pal := screen.NewPalette(colors)
	buf := make([]byte, 3*screen.PaletteSize)
	if err := pal.GrabRange(buf, 0, screen.PaletteSize); err != nil {
		return err
	}
	if err := gm.SetPalette(buf, 0, screen.PaletteSize); err != nil {
		return err
	}

	gm.CopyRectToScreen(s.Pix, s.Stride, 0, 0, s.W, s.H)
	return nil
}

func write(name, format string, fb *screen.Framebuffer, preview int) error {
	f, err := os.Create(name)
	if err != nil {
		return err
	}

	switch {
	case format == "pbm":
		err = fb.WritePBM(f)
	case preview > 0:
		err = png.Encode(f, screen.RenderLCD(fb, preview))
	default:
		err = png.Encode(f, fb)
	}
	if err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
