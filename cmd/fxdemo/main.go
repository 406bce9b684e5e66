// Command fxdemo runs a preset filter chain over an image file.
package main

import (
	"flag"
	"fmt"
	"image/color"
	"log"
	"log/slog"
	"os"
	"sort"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/gogpu/fx"
)

// presets builds the filter chains selectable with -effect.
var presets = map[string]func(dev float64) *fx.Filter{
	"blur": func(dev float64) *fx.Filter {
		f := fx.New()
		f.AddEffect(fx.NewGaussianBlur(dev, dev))
		return f
	},
	"shadow": func(dev float64) *fx.Filter {
		f := fx.New()
		f.AddEffect(fx.NewDropShadow(dev, dev, dev))
		return f
	},
	"glow": func(dev float64) *fx.Filter {
		f := fx.New()
		halo := f.AddEffect(fx.NewDilate(dev/2, dev/2))
		halo.SetInput(fx.SlotSourceAlpha)
		halo.SetOutput(f.NamedSlot("halo"))
		soft := f.AddEffect(fx.NewGaussianBlur(dev, dev))
		soft.SetInput(f.NamedSlot("halo"))
		soft.SetOutput(f.NamedSlot("soft"))
		tint := f.AddEffect(fx.NewFlood(color.NRGBA{R: 255, G: 200, B: 40, A: 255}))
		tint.SetOutput(f.NamedSlot("tint"))
		glow := f.AddEffect(fx.NewComposite(fx.CompositeIn))
		glow.SetInputAt(0, f.NamedSlot("tint"))
		glow.SetInputAt(1, f.NamedSlot("soft"))
		glow.SetOutput(f.NamedSlot("glow"))
		m := f.AddEffect(fx.NewMerge())
		m.SetInputAt(0, f.NamedSlot("glow"))
		m.SetInputAt(1, fx.SlotSourceGraphic)
		return f
	},
	"emboss": func(dev float64) *fx.Filter {
		f := fx.New()
		bump := f.AddEffect(fx.NewGaussianBlur(dev/2, dev/2))
		bump.SetInput(fx.SlotSourceAlpha)
		bump.SetOutput(f.NamedSlot("bump"))
		light := fx.NewSpecularLighting()
		light.SetSurfaceScale(5)
		light.SetSpecularExponent(20)
		light.SetDistantLight(225, 45)
		lit := f.AddEffect(light)
		lit.SetInput(f.NamedSlot("bump"))
		lit.SetOutput(f.NamedSlot("lit"))
		c := fx.NewComposite(fx.CompositeArithmetic)
		c.SetArithmetic(0, 1, 1, 0)
		out := f.AddEffect(c)
		out.SetInputAt(0, fx.SlotSourceGraphic)
		out.SetInputAt(1, f.NamedSlot("lit"))
		return f
	},
	"grayscale": func(float64) *fx.Filter {
		f := fx.New()
		m := fx.NewColorMatrix(nil)
		m.SetSaturate(0)
		f.AddEffect(m)
		return f
	},
	"noise": func(dev float64) *fx.Filter {
		f := fx.New()
		n := f.AddEffect(fx.NewTurbulence(fx.FractalNoise, 0.02*dev, 0.02*dev, 4, 7))
		n.SetOutput(f.NamedSlot("noise"))
		b := f.AddEffect(fx.NewBlend(fx.BlendOverlay))
		b.SetInputAt(0, f.NamedSlot("noise"))
		b.SetInputAt(1, fx.SlotSourceGraphic)
		c := f.AddEffect(fx.NewComposite(fx.CompositeIn))
		c.SetInputAt(1, fx.SlotSourceGraphic)
		return f
	},
}

func presetNames() []string {
	names := make([]string, 0, len(presets))
	for n := range presets {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

func main() {
	var (
		in      = flag.String("in", "", "input image")
		out     = flag.String("out", "out.png", "output file")
		effect  = flag.String("effect", "blur", fmt.Sprintf("preset, one of %v", presetNames()))
		dev     = flag.Float64("dev", 4, "effect size in pixels")
		quality = flag.String("quality", "best", "worst, worse, normal, better or best")
		workers = flag.Int("workers", 0, "worker goroutines, 0 for GOMAXPROCS, -1 for serial")
		verbose = flag.Bool("v", false, "log filter details")
	)
	flag.Parse()

	if *in == "" {
		flag.Usage()
		os.Exit(2)
	}
	build, ok := presets[*effect]
	if !ok {
		log.Fatalf("Unknown effect %q", *effect)
	}
	q, err := fx.ParseQuality(*quality)
	if err != nil {
		log.Fatal(err)
	}
	if *verbose {
		fx.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	src, err := fx.LoadSurface(*in)
	if err != nil {
		log.Fatalf("Failed to load: %v", err)
	}

	opts := fx.DefaultDrawingOptions()
	opts.BlurQuality, opts.FilterQuality = q, q
	if *workers >= 0 {
		pool := fx.NewPool(*workers)
		defer pool.Close()
		opts.Parallel, opts.Pool = true, pool
	}

	w, h := src.Size()
	bbox := fx.XYWH(0, 0, float64(w), float64(h))
	start := time.Now()
	dst, err := build(*dev).Render(fx.RenderInput{
		Source:   src,
		CTM:      fx.Identity(),
		ItemBBox: &bbox,
		Options:  &opts,
	})
	if err != nil {
		log.Fatalf("Failed to render: %v", err)
	}
	elapsed := time.Since(start)

	if err := dst.Save(*out); err != nil {
		log.Fatalf("Failed to save: %v", err)
	}

	avg := fx.AverageColor(dst)
	p := message.NewPrinter(language.English)
	p.Printf("%s: %d pixels filtered with %s in %v\n", *out, w*h, *effect, elapsed.Round(time.Microsecond))
	p.Printf("average color: r=%.3f g=%.3f b=%.3f a=%.3f\n", avg[0], avg[1], avg[2], avg[3])
}
