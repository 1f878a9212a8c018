// Command sheetgen writes placeholder knight sprite sheets, one per family and
// facing, laid out the way the knight prefab expects. Each frame shows its
// index and a dot pointing the way the sheet faces.
package main

import (
	"flag"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/milk9111/topdown/animation"
	"github.com/milk9111/topdown/movement"
	"github.com/milk9111/topdown/prefabs"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

var familyColors = map[string]color.RGBA{
	"idle":   {R: 0x3c, G: 0x6e, B: 0xb4, A: 0xff},
	"walk":   {R: 0x3c, G: 0xa0, B: 0x5a, A: 0xff},
	"run":    {R: 0xd2, G: 0x8c, B: 0x28, A: 0xff},
	"attack": {R: 0xc8, G: 0x32, B: 0x32, A: 0xff},
}

func main() {
	out := flag.String("out", "assets", "asset root to write sheets under")
	size := flag.Int("size", 32, "frame width and height in pixels")
	prefab := flag.String("prefab", "knight.yaml", "character prefab to generate sheets for")
	flag.Parse()

	spec, err := prefabs.LoadCharacterSpec(*prefab)
	if err != nil {
		log.Fatal(err)
	}

	n, err := writeSheets(*out, *spec, *size)
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("sheetgen: wrote %d sheets under %s", n, filepath.Join(*out, filepath.FromSlash(spec.Folder)))
}

func writeSheets(root string, spec prefabs.CharacterSpec, size int) (int, error) {
	names := make([]string, 0, len(spec.Families))
	for name := range spec.Families {
		names = append(names, name)
	}
	sort.Strings(names)

	written := 0
	for _, name := range names {
		fam := spec.Families[name]
		for _, d := range movement.Directions {
			p := filepath.Join(root, filepath.FromSlash(animation.SheetPath(spec.Folder, fam, d)))
			if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
				return written, err
			}
			if err := writePNG(p, renderSheet(fam, familyColors[name], d, size)); err != nil {
				return written, fmt.Errorf("sheetgen: %s: %w", p, err)
			}
			written++
		}
	}
	return written, nil
}

func writePNG(p string, img image.Image) error {
	f, err := os.Create(p)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// renderSheet draws frames First..Last of a cols x rows grid. Cells outside
// that range stay transparent.
func renderSheet(fam prefabs.FamilySpec, fill color.RGBA, d movement.Direction, size int) *image.RGBA {
	if fill.A == 0 {
		fill = color.RGBA{R: 0x80, G: 0x80, B: 0x80, A: 0xff}
	}
	sheet := image.NewRGBA(image.Rect(0, 0, fam.Cols*size, fam.Rows*size))
	layout := animation.GridLayout(sheet.Bounds().Dx(), fam.Cols, fam.Rows)
	dir := d.Vector(nil).Normalize()

	for i := fam.First; i <= fam.Last; i++ {
		cell := layout.Rect(i)
		body := image.Rect(cell.Min.X+2, cell.Min.Y+2, cell.Max.X-2, cell.Max.Y-2)
		draw.Draw(sheet, body, image.NewUniform(fill), image.Point{}, draw.Src)

		cx := float64(cell.Min.X+cell.Max.X) / 2
		cy := float64(cell.Min.Y+cell.Max.Y) / 2
		reach := float64(size) / 3
		mx, my := int(cx+dir.X*reach), int(cy+dir.Y*reach)
		marker := image.Rect(mx-2, my-2, mx+2, my+2).Intersect(body)
		draw.Draw(sheet, marker, image.White, image.Point{}, draw.Src)

		drawer := &font.Drawer{
			Dst:  sheet,
			Src:  image.White,
			Face: basicfont.Face7x13,
			Dot:  fixed.P(cell.Min.X+3, cell.Min.Y+13),
		}
		drawer.DrawString(strconv.Itoa(i))
	}
	return sheet
}
