package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"math/rand/v2"
	"os"
	"time"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/topdown/animation"
	"github.com/milk9111/topdown/assets"
	"github.com/milk9111/topdown/common"
	"github.com/milk9111/topdown/ecs"
	"github.com/milk9111/topdown/ecs/component"
	"github.com/milk9111/topdown/ecs/entity"
	"github.com/milk9111/topdown/ecs/render"
	"github.com/milk9111/topdown/ecs/system"
	"github.com/milk9111/topdown/prefabs"
)

const loaderWorkers = 4

type appState int

const (
	stateLoading appState = iota
	stateMainMenu
	stateGame
)

func (s appState) String() string {
	switch s {
	case stateLoading:
		return "loading"
	case stateMainMenu:
		return "main menu"
	case stateGame:
		return "game"
	default:
		return "unknown"
	}
}

type Options struct {
	AssetsDir string
	Debug     bool
	Watch     bool
	Wanderers int
	Seed      uint64
}

type Game struct {
	frames int
	opts   Options

	state  appState
	paused bool
	quit   bool

	cancel  context.CancelFunc
	spec    *prefabs.CharacterSpec
	folder  *assets.Folder
	lib     *animation.Library
	loadErr error

	world     *ecs.World
	scheduler *ecs.Scheduler
	renderer  *render.RenderSystem
	keyboard  *keyboard
	watcher   *prefabs.Watcher

	menuUI  *ebitenui.UI
	pauseUI *ebitenui.UI
}

// NewGame reads the character prefab and starts decoding its sprite folder
// in the background. The game stays in the loading state until the folder
// is ready.
func NewGame(opts Options) (*Game, error) {
	spec, err := prefabs.LoadCharacterSpec("knight.yaml")
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(context.Background())
	loader := assets.NewLoader(os.DirFS(opts.AssetsDir), loaderWorkers)

	g := &Game{
		opts:     opts,
		state:    stateLoading,
		cancel:   cancel,
		spec:     spec,
		folder:   loader.LoadFolder(ctx, spec.Folder),
		renderer: render.NewRenderSystem(),
		keyboard: &keyboard{},
	}
	g.menuUI = NewMainMenuUI(g)
	g.pauseUI = NewPauseUI(g)

	if opts.Watch {
		w, err := prefabs.NewWatcher("prefabs")
		if err != nil {
			log.Printf("watch disabled: %v", err)
		} else {
			g.watcher = w
		}
	}

	return g, nil
}

func (g *Game) Close() {
	g.cancel()
	if g.watcher != nil {
		_ = g.watcher.Close()
	}
}

func (g *Game) Update() error {
	g.frames++

	if g.quit || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	switch g.state {
	case stateLoading:
		g.updateLoading()
	case stateMainMenu:
		g.menuUI.Update()
	case stateGame:
		g.updateGame()
	}

	return nil
}

func (g *Game) updateLoading() {
	if g.loadErr != nil {
		return
	}
	if !g.folder.Loaded() {
		select {
		case <-g.folder.Done():
			if err := g.folder.Err(); err != nil {
				g.loadErr = err
				log.Printf("loading %s: %v", g.folder.Dir(), err)
			}
		default:
		}
		return
	}

	lib, err := animation.LoadCharacter(*g.spec, g.folder)
	if err != nil {
		g.loadErr = err
		log.Printf("loading %s: %v", g.spec.Name, err)
		return
	}
	if err := render.UploadFolder(g.folder); err != nil {
		g.loadErr = err
		log.Printf("uploading %s: %v", g.folder.Dir(), err)
		return
	}
	if missing := render.MissingTextures(lib); len(missing) > 0 {
		g.loadErr = fmt.Errorf("%d textures missing, first %s", len(missing), missing[0])
		log.Printf("uploading %s: %v", g.folder.Dir(), g.loadErr)
		return
	}

	g.lib = lib
	g.setState(stateMainMenu)
}

// startGame builds a fresh world. It runs when Play is clicked.
func (g *Game) startGame() {
	world, scheduler, err := newWorld(g.lib, g.keyboard, g.opts.Wanderers, g.opts.Seed)
	if err != nil {
		g.loadErr = err
		log.Printf("start game: %v", err)
		return
	}
	g.world = world
	g.scheduler = scheduler
	g.paused = false
	g.setState(stateGame)
}

func newWorld(lib *animation.Library, input system.InputSource, wanderers int, seed uint64) (*ecs.World, *ecs.Scheduler, error) {
	world := ecs.NewWorld()
	world.SetPhysicsWorld(ecs.NewPhysicsWorld())

	if _, err := entity.NewPlayer(world, entity.Resources{Library: lib}); err != nil {
		return nil, nil, err
	}
	if _, err := entity.NewCamera(world); err != nil {
		return nil, nil, err
	}
	rng := rand.New(rand.NewPCG(seed, seed>>1|1))
	if _, err := entity.NewWanderers(world, wanderers, rng); err != nil {
		return nil, nil, err
	}

	return world, system.NewPipeline(input, lib, prefabs.LoadScript, seed), nil
}

func (g *Game) updateGame() {
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.paused = !g.paused
	}
	if g.paused {
		g.pauseUI.Update()
		return
	}

	g.pollWatcher()

	g.world.SetDelta(time.Second / time.Duration(ebiten.TPS()))
	g.scheduler.Update(g.world)
}

func (g *Game) pollWatcher() {
	if g.watcher == nil {
		return
	}
	for _, name := range g.watcher.Poll() {
		if name != "player.yaml" {
			continue
		}
		n, err := entity.ReloadPlayerTuning(g.world)
		if err != nil {
			log.Printf("watch: %v", err)
			continue
		}
		log.Printf("watch: reloaded player tuning for %d entities", n)
	}
}

func (g *Game) setState(s appState) {
	if g.opts.Debug {
		log.Printf("app: %s -> %s", g.state, s)
	}
	g.state = s
}

func (g *Game) Draw(screen *ebiten.Image) {
	switch g.state {
	case stateLoading:
		msg := fmt.Sprintf("Loading %s...", g.folder.Dir())
		if g.loadErr != nil {
			msg = fmt.Sprintf("Failed to load %s: %v", g.folder.Dir(), g.loadErr)
			if errors.Is(g.loadErr, animation.ErrMissingAsset) || errors.Is(g.loadErr, fs.ErrNotExist) {
				msg += "\nRun `go run ./cmd/sheetgen` to write placeholder sheets."
			}
		}
		ebitenutil.DebugPrint(screen, msg)
		return
	case stateMainMenu:
		g.menuUI.Draw(screen)
		return
	}

	g.renderer.Draw(g.world, screen)
	if g.opts.Debug {
		g.renderer.DrawPhysics(g.world, screen)
	}
	if g.paused {
		g.pauseUI.Draw(screen)
	}

	ebitenutil.DebugPrint(screen, g.debugText())
}

func (g *Game) debugText() string {
	text := fmt.Sprintf("Frames: %d    FPS: %.2f", g.frames, ebiten.ActualFPS())
	if !g.opts.Debug {
		return text
	}
	text += fmt.Sprintf("\nentities: %d", len(ecs.Entities(g.world)))
	player, ok := g.world.First(component.PlayerTagComponent.Kind())
	if !ok {
		return text
	}
	if ctrl, ok := ecs.Get(g.world, player, component.ControllerComponent.Kind()); ok {
		text += fmt.Sprintf("\nmovement: %s  attack: %s  facing: %s", ctrl.State.Movement, ctrl.State.Attack, ctrl.Direction)
	}
	if anim, ok := ecs.Get(g.world, player, component.AnimationComponent.Kind()); ok {
		text += fmt.Sprintf("\nclip: %s  frame: %d", anim.Playback.Key, anim.Playback.Index)
	}
	return text
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return common.BaseWidth, common.BaseHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}
