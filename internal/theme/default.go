package theme

import (
	"fmt"

	"git.lost.host/meutraa/tilefall/internal/game"
)

type DefaultTheme struct {
}

type rgb struct {
	R, G, B uint8
}

const (
	tileSym     = "⬤"
	holdHeadSym = "⬛"
	holdBodySym = "┃"
	slideSym    = "◆"
)

var (
	barSyms    = [...]string{"-", "-", "-", "-"}
	laneColors = [...]rgb{
		{236, 30, 0},
		{0, 118, 236},
		{236, 195, 0},
		{106, 0, 236},
	}
	ratingColors = map[game.Rating]rgb{
		game.RatingPerfect: {173, 236, 236},
		game.RatingGreat:   {0, 236, 128},
		game.RatingCool:    {236, 195, 0},
		game.RatingMiss:    {236, 30, 0},
	}
)

func laneColor(lane int) rgb {
	return laneColors[lane%len(laneColors)]
}

func colored(c rgb, sym string) string {
	return fmt.Sprintf("\033[38;2;%v;%v;%vm%v\033[0m", c.R, c.G, c.B, sym)
}

func (t *DefaultTheme) RenderTile(lane int, kind game.NoteKind) string {
	sym := tileSym
	switch kind {
	case game.KindHold:
		sym = holdHeadSym
	case game.KindSlide:
		sym = slideSym
	}
	return colored(laneColor(lane), sym)
}

func (t *DefaultTheme) RenderHoldBody(lane int) string {
	return colored(laneColor(lane), holdBodySym)
}

func (t *DefaultTheme) RenderHitField(lane int) string {
	return barSyms[lane%len(barSyms)]
}

func (t *DefaultTheme) RatingColor(rating game.Rating) (r, g, b uint8) {
	c, ok := ratingColors[rating]
	if !ok {
		c = rgb{255, 255, 255}
	}
	return c.R, c.G, c.B
}
