package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"sort"

	"github.com/leonelquinteros/gotext"

	"roomgen/pkg/engine/input"
	"roomgen/pkg/engine/seed"
	"roomgen/pkg/game/config"
	"roomgen/pkg/game/devtools"
	"roomgen/pkg/game/renderer"
	preview "roomgen/pkg/game/renderer/ebiten"
	"roomgen/pkg/game/renderer/tui"
	"roomgen/pkg/game/signals"
)

func main() {
	configPath := flag.String("config", "configs/room1.json", "room configuration file")
	mode := flag.String("mode", "plan", "plan, interactive or preview")
	seedFlag := flag.String("seed", "", "override the room seed")
	seedMode := flag.String("seed-mode", "", "override the seed mode: manual, per_entity or per_generate")
	dump := flag.String("dump", "", "write a plan dump to this file")
	localeDir := flag.String("locales", "locales", "directory holding the translations")
	lang := flag.String("locale", "en_GB", "language of user-facing text")
	width := flag.Int("width", 0, "table width (0 = terminal width)")
	debug := flag.Bool("debug", false, "log every placement decision")
	flag.Parse()

	gotext.Configure(*localeDir, *lang, "default")

	f, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Cannot load room: %v", err)
	}
	if *seedFlag != "" {
		f.Room.Seed = *seedFlag
	}
	if *seedMode != "" {
		if _, ok := seed.ParseMode(*seedMode); !ok {
			log.Fatalf("Unknown seed mode %q", *seedMode)
		}
		f.Room.SeedMode = *seedMode
	}
	if *debug {
		f.Room.Debug = true
	}

	a := newApp(f)
	a.start()
	if len(a.gen.Entries()) == 0 && *mode == "plan" {
		a.bus.Send(signals.Generate)
	}

	r := tui.New(os.Stdout, *width)
	r.Init()

	switch *mode {
	case "plan":
		r.RenderPlan(a.gen)
		printCorridors(r, a)
		printLinkErrors(r, a)
	case "interactive":
		if err := runInteractive(a, r); err != nil {
			log.Fatalf("Cannot read keys: %v", err)
		}
	case "preview":
		p := preview.New(a.gen, a.world, a.bus.Send)
		if err := p.Run(gotext.Get("PREVIEW_TITLE")); err != nil {
			log.Fatalf("Preview failed: %v", err)
		}
	default:
		log.Fatalf("Unknown mode %q", *mode)
	}

	if *dump != "" {
		path, err := devtools.DumpPlan(*dump, a.gen)
		if err != nil {
			log.Fatalf("Cannot write plan dump: %v", err)
		}
		r.ShowMessage(fmt.Sprintf(gotext.Get("DUMP_WRITTEN"), path))
	}
}

// runInteractive redraws the plan after every key until quit or end of input
func runInteractive(a *app, r *tui.TUIRenderer) error {
	keys := input.NewKeyReader(os.Stdin)
	for {
		r.Clear()
		r.RenderPlan(a.gen)
		printCorridors(r, a)
		printLinkErrors(r, a)
		r.RenderHelp()

		ev, err := readKey(keys)
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		act := input.MapToAction(ev)
		if act == input.ActionQuit {
			return nil
		}
		if s, ok := signals.ForAction(act); ok {
			a.bus.Send(s)
		}
	}
}

// readKey reads one key with the terminal in raw mode, or as-is when
// stdin is not a terminal
func readKey(keys *input.KeyReader) (input.RawInput, error) {
	restore, err := input.MakeRaw()
	if err == nil {
		defer restore()
	}
	return keys.ReadKey()
}

func printCorridors(r renderer.Renderer, a *app) {
	assets := a.corridorAssets()
	if len(assets) == 0 {
		return
	}
	names := make([]string, 0, len(assets))
	for name := range assets {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		r.ShowMessage(fmt.Sprintf(gotext.Get("CORRIDOR_SHOWS"), name, assets[name]))
	}
}

// printLinkErrors reports every door to corridor link the last sync could not apply
func printLinkErrors(r renderer.Renderer, a *app) {
	for _, res := range a.linkErrs {
		target := res.Link.Anchor
		if target == "" {
			target = "?"
		}
		r.ShowError(fmt.Sprintf(gotext.Get("LINK_FAILED"), res.Link.Door, target, res.Err))
	}
}
