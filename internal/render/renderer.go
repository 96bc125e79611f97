package render

import (
	"time"
)

type Renderer interface {
	Init() error
	Deinit() error
	AddDecoration(row, col int, content string, frames int)
	RenderLoop(period time.Duration, frame func(now time.Time, dt time.Duration) bool)
	Fill(row, col int, message string)
	FillColor(row, col int, r, g, b uint8, message string)
}
