package beatmap

import "git.lost.host/meutraa/tilefall/internal/game"

type Parser interface {
	Parse(file string) (*game.Beatmap, error)
}
