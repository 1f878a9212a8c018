// Command sheetview plays one clip of the knight animation set, for checking
// sheet layout and frame timing without starting the game.
package main

import (
	"context"
	"flag"
	"fmt"
	"image/color"
	"log"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/topdown/animation"
	"github.com/milk9111/topdown/assets"
	"github.com/milk9111/topdown/ecs/render"
	"github.com/milk9111/topdown/movement"
	"github.com/milk9111/topdown/prefabs"
)

const (
	viewSize = 512
	scale    = 4
)

type viewer struct {
	lib      *animation.Library
	playback animation.Playback
	dirIndex int
}

func (v *viewer) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowRight):
		v.dirIndex = (v.dirIndex + 1) % len(movement.Directions)
		v.apply(v.playback.Key.Family)
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowLeft):
		v.dirIndex = (v.dirIndex + len(movement.Directions) - 1) % len(movement.Directions)
		v.apply(v.playback.Key.Family)
	case inpututil.IsKeyJustPressed(ebiten.KeyTab):
		v.apply(animation.Families[(int(v.playback.Key.Family)+1)%len(animation.Families)])
	}
	v.playback.Advance(time.Second / time.Duration(ebiten.TPS()))
	return nil
}

func (v *viewer) apply(fam animation.Family) {
	key := animation.Key{Family: fam, Direction: movement.Directions[v.dirIndex]}
	if err := v.playback.Apply(v.lib, key); err != nil {
		log.Printf("sheetview: %v", err)
	}
}

func (v *viewer) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{0x00, 0x00, 0x00, 0xff})
	ebitenutil.DebugPrint(screen, fmt.Sprintf("%s  frame %d  (Tab family, arrows facing)", v.playback.Key, v.playback.Index))

	img := render.GetImage(v.playback.Texture)
	if img == nil {
		return
	}
	r := v.playback.Layout.Rect(v.playback.Index)
	frame, ok := img.SubImage(r).(*ebiten.Image)
	if !ok {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(float64(viewSize-r.Dx()*scale)/2, float64(viewSize-r.Dy()*scale)/2)
	op.Filter = ebiten.FilterNearest
	screen.DrawImage(frame, op)
}

func (v *viewer) Layout(outsideWidth, outsideHeight int) (int, int) {
	return viewSize, viewSize
}

func main() {
	assetsDir := flag.String("assets", "assets", "directory holding the sprite folders")
	family := flag.String("family", "idle", "family to start on")
	flag.Parse()

	spec, err := prefabs.LoadCharacterSpec("knight.yaml")
	if err != nil {
		log.Fatal(err)
	}
	fam, err := animation.ParseFamily(*family)
	if err != nil {
		log.Fatal(err)
	}

	folder := assets.NewLoader(os.DirFS(*assetsDir), 4).LoadFolder(context.Background(), spec.Folder)
	if err := folder.Wait(context.Background()); err != nil {
		log.Fatal(err)
	}
	lib, err := animation.LoadCharacter(*spec, folder)
	if err != nil {
		log.Fatal(err)
	}
	if err := render.UploadFolder(folder); err != nil {
		log.Fatal(err)
	}

	playback, err := animation.NewPlayback(lib, animation.Key{Family: fam, Direction: movement.Directions[0]})
	if err != nil {
		log.Fatal(err)
	}

	ebiten.SetWindowSize(viewSize, viewSize)
	ebiten.SetWindowTitle("sheetview")
	if err := ebiten.RunGame(&viewer{lib: lib, playback: playback}); err != nil {
		log.Fatal(err)
	}
}
