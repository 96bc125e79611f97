package theme

import "git.lost.host/meutraa/tilefall/internal/game"

type Theme interface {
	RenderTile(lane int, kind game.NoteKind) string
	RenderHoldBody(lane int) string
	RenderHitField(lane int) string
	RatingColor(rating game.Rating) (r, g, b uint8)
}
