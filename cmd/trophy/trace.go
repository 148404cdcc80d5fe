package main

import (
	"context"
	"flag"
	"fmt"
	"math"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	uv "github.com/charmbracelet/ultraviolet"
	"github.com/taigrr/trophy/pkg/bsdf"
	"github.com/taigrr/trophy/pkg/geometry"
	"github.com/taigrr/trophy/pkg/math3d"
	"github.com/taigrr/trophy/pkg/models"
	"github.com/taigrr/trophy/pkg/render"
)

// pathRng adapts math/rand to the bsdf.Rng contract.
type pathRng struct{ r *rand.Rand }

func (p *pathRng) Uniform() float64       { return p.r.Float64() }
func (p *pathRng) Coin(prob float64) bool { return p.r.Float64() < prob }

func runTraceCmd(args []string) {
	fs := flag.NewFlagSet("trace", flag.ExitOnError)
	targetFPS := fs.Int("fps", 30, "Target FPS")
	maxBounces := fs.Int("bounces", 6, "Maximum path bounces per sample")
	material := fs.String("material", "lambertian", "Surface material: lambertian, mirror or glass")
	albedo := fs.String("albedo", "200,200,200", "Material albedo (R,G,B)")
	ior := fs.Float64("ior", 1.5, "Index of refraction (glass material only)")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "trophy trace - terminal progressive path tracer preview\n\n")
		fmt.Fprintf(os.Stderr, "Usage: trophy trace [options] <model.obj|model.glb>\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nControls:\n")
		fmt.Fprintf(os.Stderr, "  Mouse drag  - Orbit camera\n")
		fmt.Fprintf(os.Stderr, "  Scroll      - Zoom in/out\n")
		fmt.Fprintf(os.Stderr, "  Esc         - Quit\n")
	}
	fs.Parse(args)

	if fs.NArg() < 1 {
		fs.Usage()
		os.Exit(1)
	}
	modelPath := fs.Arg(0)

	mesh, err := loadMesh(modelPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	mesh.CalculateBounds()
	center := mesh.Center()
	size := mesh.Size()
	maxDim := math.Max(size.X, math.Max(size.Y, size.Z))
	if maxDim > 0 {
		scale := 2.0 / maxDim
		mesh.Transform(math3d.Scale(math3d.V3(scale, scale, scale)).Mul(math3d.Translate(center.Scale(-1))))
	}
	mesh.CalculateSmoothNormals()

	bvhTree := geometry.Build(buildTriangles(mesh))
	mat := buildMaterial(*material, *albedo, *ior)

	if err := runTraceLoop(bvhTree, mat, *targetFPS, *maxBounces); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runTraceLoop(bvhTree *geometry.BVH[geometry.Triangle], mat bsdf.BSDF, targetFPS, maxBounces int) error {
	term := uv.DefaultTerminal()
	width, height, err := term.GetSize()
	if err != nil {
		return fmt.Errorf("get terminal size: %w", err)
	}
	if err := term.Start(); err != nil {
		return fmt.Errorf("start terminal: %w", err)
	}
	term.EnterAltScreen()
	term.HideCursor()
	term.Resize(width, height)

	fmt.Fprint(os.Stdout, "\x1b[?1003h")
	fmt.Fprint(os.Stdout, "\x1b[?1006h")

	termRenderer := render.NewTerminalRenderer(term, width, height)
	fbWidth, fbHeight := termRenderer.FramebufferSize()
	fb := render.NewFramebuffer(fbWidth, fbHeight)
	accum := make([]math3d.Vec3, fbWidth*fbHeight)
	samples := 0

	camera := render.NewCamera()
	camera.SetAspectRatio(float64(fbWidth) / float64(fbHeight))
	camera.SetFOV(math.Pi / 3)
	camera.SetClipPlanes(0.01, 100)

	orbit := render.NewOrbitSpring(math3d.Zero3(), 4.0, float64(targetFPS), 4.0, 1.0)
	orbit.Step(camera)

	rng := &pathRng{r: rand.New(rand.NewSource(time.Now().UnixNano()))}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	var mouseDown bool
	var lastMouseX, lastMouseY int

	resetAccum := func() {
		for i := range accum {
			accum[i] = math3d.Vec3{}
		}
		samples = 0
	}

	go func() {
		for ev := range term.Events() {
			switch ev := ev.(type) {
			case uv.WindowSizeEvent:
				width, height = ev.Width, ev.Height
				term.Erase()
				term.Resize(width, height)
				termRenderer = render.NewTerminalRenderer(term, width, height)
				fbWidth, fbHeight = termRenderer.FramebufferSize()
				fb = render.NewFramebuffer(fbWidth, fbHeight)
				accum = make([]math3d.Vec3, fbWidth*fbHeight)
				samples = 0
				camera.SetAspectRatio(float64(fbWidth) / float64(fbHeight))

			case uv.KeyPressEvent:
				if ev.MatchString("escape") || ev.MatchString("ctrl+c") {
					cancel()
					return
				}

			case uv.MouseClickEvent:
				mouseDown = true
				lastMouseX, lastMouseY = ev.X, ev.Y

			case uv.MouseReleaseEvent:
				mouseDown = false

			case uv.MouseMotionEvent:
				if mouseDown {
					dx := ev.X - lastMouseX
					dy := ev.Y - lastMouseY
					orbit.Nudge(float64(dx)*0.02, float64(dy)*0.02, 0)
					lastMouseX, lastMouseY = ev.X, ev.Y
					resetAccum()
				}

			case uv.MouseWheelEvent:
				switch ev.Button {
				case uv.MouseWheelUp:
					orbit.Nudge(0, 0, -0.3)
				case uv.MouseWheelDown:
					orbit.Nudge(0, 0, 0.3)
				}
				resetAccum()
			}
		}
	}()

	cleanup := func() {
		fmt.Fprint(os.Stdout, "\x1b[?1003l")
		fmt.Fprint(os.Stdout, "\x1b[?1006l")
		term.ExitAltScreen()
		term.ShowCursor()
		term.Shutdown(context.Background())
	}

	targetDuration := time.Second / time.Duration(targetFPS)
	for {
		select {
		case <-ctx.Done():
			cleanup()
			return nil
		default:
		}

		frameStart := time.Now()
		orbit.Step(camera)

		for y := 0; y < fbHeight; y++ {
			v := 1 - (float64(y)+0.5)/float64(fbHeight)
			for x := 0; x < fbWidth; x++ {
				u := (float64(x) + 0.5) / float64(fbWidth)
				ray := camera.GenerateRay(u, v)
				color := tracePath(bvhTree, mat, ray, rng, maxBounces)
				idx := y*fbWidth + x
				accum[idx] = accum[idx].Add(color)
			}
		}
		samples++

		for i := range accum {
			avg := accum[i].Scale(1 / float64(samples))
			fb.Pixels[i] = toSRGB(avg)
		}

		termRenderer.Render(fb)
		if err := termRenderer.Flush(); err != nil {
			cleanup()
			return fmt.Errorf("flush: %w", err)
		}

		elapsed := time.Since(frameStart)
		if elapsed < targetDuration {
			time.Sleep(targetDuration - elapsed)
		}
	}
}

// tracePath traces a single path through the BVH, returning the
// radiance estimate for one camera sample.
func tracePath(bvhTree *geometry.BVH[geometry.Triangle], mat bsdf.BSDF, r geometry.Ray, rng bsdf.Rng, maxBounces int) math3d.Vec3 {
	throughput := math3d.V3(1, 1, 1)
	radiance := math3d.Vec3{}
	ray := r

	for bounce := 0; bounce < maxBounces; bounce++ {
		trace := bvhTree.Hit(&ray)
		if !trace.Hit {
			radiance = radiance.Add(throughput.Mul(skyColor(ray.Dir)))
			break
		}

		outLocal := worldToLocal(trace.Normal, ray.Dir.Negate())
		sample := mat.Sample(outLocal, rng)
		radiance = radiance.Add(throughput.Mul(sample.Emissive))

		if sample.PDF <= 0 {
			break
		}

		// Cosine-weighted continuous samples (Lambertian/Emissive)
		// still carry an explicit cos(theta) weight; delta BSDFs
		// (Mirror/Glass, PDF == 1) already fold it into Attenuation.
		cosTerm := 1.0
		if sample.PDF != 1 {
			cosTerm = math.Max(0, sample.InDir.Y)
		}
		throughput = throughput.Mul(sample.Attenuation).Scale(cosTerm / sample.PDF)

		if throughput.LenSq() < 1e-8 {
			break
		}

		nextDir := localToWorld(trace.Normal, sample.InDir)
		bias := trace.Normal.Scale(1e-4)
		if sample.InDir.Y < 0 {
			bias = bias.Negate()
		}
		ray = geometry.NewRay(trace.Position.Add(bias), nextDir)
	}

	return radiance
}

// skyColor is a simple vertical gradient used as the environment for
// rays that escape the scene.
func skyColor(dir math3d.Vec3) math3d.Vec3 {
	t := 0.5 * (dir.Normalize().Y + 1)
	return math3d.V3(1, 1, 1).Scale(1 - t).Add(math3d.V3(0.5, 0.7, 1.0).Scale(t))
}

// localFrame builds an orthonormal tangent/bitangent basis for the
// plane perpendicular to n.
func localFrame(n math3d.Vec3) (tangent, bitangent math3d.Vec3) {
	up := math3d.V3(0, 1, 0)
	if math.Abs(n.Y) > 0.999 {
		up = math3d.V3(1, 0, 0)
	}
	tangent = up.Cross(n).Normalize()
	bitangent = n.Cross(tangent)
	return tangent, bitangent
}

func worldToLocal(n, v math3d.Vec3) math3d.Vec3 {
	t, b := localFrame(n)
	return math3d.V3(v.Dot(t), v.Dot(n), v.Dot(b))
}

func localToWorld(n, v math3d.Vec3) math3d.Vec3 {
	t, b := localFrame(n)
	return t.Scale(v.X).Add(n.Scale(v.Y)).Add(b.Scale(v.Z))
}

// toSRGB gamma-corrects a linear radiance estimate into a displayable
// 8-bit color, clamping to [0, 1] first.
func toSRGB(c math3d.Vec3) render.Color {
	gamma := func(v float64) uint8 {
		if v < 0 {
			v = 0
		}
		if v > 1 {
			v = 1
		}
		return uint8(math.Pow(v, 1/2.2) * 255)
	}
	return render.RGB(gamma(c.X), gamma(c.Y), gamma(c.Z))
}

func buildTriangles(mesh *models.Mesh) []geometry.Triangle {
	tris := make([]geometry.Triangle, mesh.TriangleCount())
	for i := range tris {
		f := mesh.GetFace(i)
		p0, n0, uv0 := mesh.GetVertex(f[0])
		p1, n1, uv1 := mesh.GetVertex(f[1])
		p2, n2, uv2 := mesh.GetVertex(f[2])
		tris[i] = geometry.Triangle{
			V0: p0, V1: p1, V2: p2,
			N0: n0, N1: n1, N2: n2,
			UV0: uv0, UV1: uv1, UV2: uv2,
		}
	}
	return tris
}

func buildMaterial(kind, albedoStr string, ior float64) bsdf.BSDF {
	var r, g, b uint8 = 200, 200, 200
	fmt.Sscanf(albedoStr, "%d,%d,%d", &r, &g, &b)
	albedo := math3d.V3(float64(r)/255, float64(g)/255, float64(b)/255)

	switch kind {
	case "mirror":
		return bsdf.Mirror{Albedo: albedo}
	case "glass":
		return bsdf.Glass{IOR: ior}
	default:
		return bsdf.Lambertian{Albedo: albedo}
	}
}
