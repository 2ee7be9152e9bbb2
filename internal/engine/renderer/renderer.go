// Package renderer draws the splat working buffer as point sprites.
package renderer

import (
	"fmt"
	gomath "math"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/splatfx/internal/engine/shader"
	"github.com/Faultbox/splatfx/internal/engine/vertex"
	"github.com/Faultbox/splatfx/internal/evaluator"
	"github.com/Faultbox/splatfx/pkg/math"
)

// Config holds renderer configuration.
type Config struct {
	Width       int
	Height      int
	PointSizePx float32 // on-screen size of a unit splat at distance 1
	FovY        float32 // radians
	Background  [3]float32
}

// DefaultConfig returns the viewer's renderer settings for a window size.
func DefaultConfig(width, height int) Config {
	return Config{
		Width:       width,
		Height:      height,
		PointSizePx: 600,
		FovY:        gomath.Pi / 4,
		Background:  [3]float32{0.02, 0.02, 0.04},
	}
}

// Renderer handles all OpenGL rendering.
type Renderer struct {
	config  Config
	program *shader.Program
	vao     uint32
	vbo     uint32
	vboSize int // bytes allocated for vbo
	packed  []float32
	drawn   int
	log     *zap.Logger
}

const vertexShader = `
#version 410 core

layout (location = 0) in vec3 aPos;
layout (location = 1) in vec4 aColor;
layout (location = 2) in float aSize;

uniform mat4 uModel;
uniform mat4 uView;
uniform mat4 uProjection;
uniform float uPointSize;
uniform float uModelScale;

out vec4 vColor;

void main() {
	vec4 viewPos = uView * uModel * vec4(aPos, 1.0);
	gl_Position = uProjection * viewPos;
	gl_PointSize = clamp(uPointSize * aSize * uModelScale / max(-viewPos.z, 0.001), 1.0, 64.0);
	vColor = aColor;
}
`

const fragmentShader = `
#version 410 core

in vec4 vColor;
out vec4 FragColor;

void main() {
	vec2 d = gl_PointCoord * 2.0 - 1.0;
	float r2 = dot(d, d);
	if (r2 > 1.0) discard;
	float a = vColor.a * exp(-4.0 * r2);
	if (a < 0.004) discard;
	FragColor = vec4(vColor.rgb, a);
}
`

// New creates a new renderer.
// Must be called after the OpenGL context is created.
func New(cfg Config, log *zap.Logger) (*Renderer, error) {
	if log == nil {
		log = zap.NewNop()
	}
	r := &Renderer{config: cfg, log: log}

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	log.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	gl.Enable(gl.PROGRAM_POINT_SIZE)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.Disable(gl.DEPTH_TEST)
	bg := cfg.Background
	gl.ClearColor(bg[0], bg[1], bg[2], 1.0)

	var err error
	r.program, err = shader.NewProgram(vertexShader, fragmentShader,
		"uModel", "uView", "uProjection", "uPointSize", "uModelScale")
	if err != nil {
		return nil, fmt.Errorf("failed to create splat program: %w", err)
	}

	gl.GenVertexArrays(1, &r.vao)
	gl.GenBuffers(1, &r.vbo)
	gl.BindVertexArray(r.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.vbo)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, vertex.Stride, vertex.PositionOffset*4)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(1, 4, gl.FLOAT, false, vertex.Stride, vertex.ColorOffset*4)
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointerWithOffset(2, 1, gl.FLOAT, false, vertex.Stride, vertex.SizeOffset*4)
	gl.EnableVertexAttribArray(2)
	gl.BindVertexArray(0)

	r.Resize(cfg.Width, cfg.Height)
	return r, nil
}

// Close cleans up renderer resources.
func (r *Renderer) Close() {
	r.log.Info("closing renderer")
	if r.vao != 0 {
		gl.DeleteVertexArrays(1, &r.vao)
	}
	if r.vbo != 0 {
		gl.DeleteBuffers(1, &r.vbo)
	}
	if r.program != nil {
		r.program.Delete()
	}
}

// Resize handles window resize. Sizes are drawable pixels.
func (r *Renderer) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	r.config.Width = width
	r.config.Height = height
	gl.Viewport(0, 0, int32(width), int32(height))
	r.log.Debug("renderer resized", zap.Int("width", width), zap.Int("height", height))
}

// Begin starts a new frame.
func (r *Renderer) Begin() {
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

// ReadPixels reads the back buffer as bottom-up RGBA rows.
func (r *Renderer) ReadPixels() (pixels []byte, width, height int) {
	width, height = r.config.Width, r.config.Height
	pixels = make([]byte, width*height*4)
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(width), int32(height), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
	return pixels, width, height
}

// Drawn returns the number of splats submitted by the last Draw.
func (r *Renderer) Drawn() int {
	return r.drawn
}

// Draw uploads the frame's working buffer and draws it.
func (r *Renderer) Draw(fr evaluator.Frame, view math.Mat4) {
	r.packed = vertex.Pack(r.packed, fr.Splats)
	r.drawn = vertex.Count(r.packed)
	if r.drawn == 0 {
		return
	}

	gl.BindBuffer(gl.ARRAY_BUFFER, r.vbo)
	size := len(r.packed) * 4
	if size > r.vboSize {
		// grow with headroom so slowly growing fields do not reallocate every frame
		r.vboSize = size + size/2
		gl.BufferData(gl.ARRAY_BUFFER, r.vboSize, nil, gl.DYNAMIC_DRAW)
	}
	gl.BufferSubData(gl.ARRAY_BUFFER, 0, size, gl.Ptr(r.packed))

	aspect := float32(r.config.Width) / float32(max(r.config.Height, 1))
	proj := math.Perspective(r.config.FovY, aspect, 0.01, 500)

	r.program.Use()
	r.program.SetMat4("uModel", vertex.ModelMatrix(fr.ModelScale, fr.FlipX))
	r.program.SetMat4("uView", view)
	r.program.SetMat4("uProjection", proj)
	r.program.SetFloat("uPointSize", r.config.PointSizePx)
	r.program.SetFloat("uModelScale", fr.ModelScale)

	gl.BindVertexArray(r.vao)
	gl.DrawArrays(gl.POINTS, 0, int32(r.drawn))
	gl.BindVertexArray(0)
}
