// Command instdemo draws two instances of a colored triangle through the
// instanced vertex stage and writes a flat-shaded preview image.
package main

import (
	"context"
	"flag"
	"image/png"
	"log"
	"log/slog"
	"math"
	"os"

	"github.com/gogpu/instvert"
)

func main() {
	var (
		width     = flag.Int("width", 800, "image width")
		height    = flag.Int("height", 600, "image height")
		output    = flag.String("output", "instdemo.png", "output file")
		precision = flag.String("precision", "half", "color precision: full, half or low")
		workers   = flag.Int("workers", 0, "worker goroutines (0 = GOMAXPROCS)")
		verbose   = flag.Bool("v", false, "log draw dispatch")
	)
	flag.Parse()

	if *verbose {
		instvert.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	p, err := instvert.ParsePrecision(*precision)
	if err != nil {
		log.Fatal(err)
	}

	u, err := sceneUniforms(float32(*width) / float32(*height))
	if err != nil {
		log.Fatalf("Failed to build uniforms: %v", err)
	}

	st := instvert.NewStage(instvert.WithPrecision(p), instvert.WithWorkers(*workers))
	defer st.Close()

	vertices := triangle()
	out, err := st.Draw(context.Background(), vertices, u.Instances.Len(), u)
	if err != nil {
		log.Fatalf("Draw failed: %v", err)
	}

	for i, o := range out {
		c := o.ClipPosition
		log.Printf("instance %d vertex %d: clip=(%.4f, %.4f, %.4f, %.4f)",
			i/len(vertices), i%len(vertices), c.X, c.Y, c.Z, c.W)
	}

	img := renderPreview(out, len(vertices), *width, *height)

	f, err := os.Create(*output)
	if err != nil {
		log.Fatalf("Failed to create %s: %v", *output, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		log.Fatalf("Failed to save: %v", err)
	}
	if err := f.Close(); err != nil {
		log.Fatalf("Failed to save: %v", err)
	}

	log.Printf("Preview saved to %s (%dx%d)\n", *output, *width, *height)
}

func triangle() []instvert.Vertex {
	return []instvert.Vertex{
		{Position: instvert.V3(-0.5, -0.5, 0), Color: instvert.RGBA(1, 0, 0, 1)},
		{Position: instvert.V3(0.5, -0.5, 0), Color: instvert.RGBA(0, 1, 0, 1)},
		{Position: instvert.V3(0, 0.5, 0), Color: instvert.RGBA(0, 0, 1, 1)},
	}
}

// sceneUniforms places the camera at (0, 0, 1) looking at the origin and
// pushes the two instances 0.3 and 0.5 units away from it.
func sceneUniforms(aspect float32) (*instvert.FrameUniforms, error) {
	u, err := instvert.NewFrameUniforms(instvert.DefaultInstanceCapacity)
	if err != nil {
		return nil, err
	}
	u.Projection = instvert.Perspective(math.Pi/2, aspect, 0.1, 100)
	u.View = instvert.LookAt(instvert.V3(0, 0, 1), instvert.V3(0, 0, 0), instvert.V3(0, 1, 0))
	for _, z := range []float32{-0.3, -0.5} {
		if err := u.Instances.Append(instvert.Translate(0, 0, z)); err != nil {
			return nil, err
		}
	}
	return u, nil
}
