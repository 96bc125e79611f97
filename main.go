package main

import (
	"errors"
	"fmt"
	"log"
	"math"
	"os"
	"path"
	"path/filepath"
	"time"

	"github.com/eiannone/keyboard"
	"golang.org/x/term"

	"git.lost.host/meutraa/tilefall/internal/audio"
	"git.lost.host/meutraa/tilefall/internal/beatmap"
	"git.lost.host/meutraa/tilefall/internal/clock"
	"git.lost.host/meutraa/tilefall/internal/config"
	"git.lost.host/meutraa/tilefall/internal/game"
	"git.lost.host/meutraa/tilefall/internal/input"
	"git.lost.host/meutraa/tilefall/internal/render"
	"git.lost.host/meutraa/tilefall/internal/score"
	"git.lost.host/meutraa/tilefall/internal/theme"
	"git.lost.host/meutraa/tilefall/internal/tile"
)

func main() {
	config.Parse()
	if err := run(); nil != err {
		log.Fatalln(err)
	}
}

// offsetClock shifts the audio clock by the global offset flag.
type offsetClock struct {
	inner  *clock.AudioClock
	offset time.Duration
}

func (c offsetClock) Estimate() time.Duration {
	return c.inner.Estimate() + c.offset
}

func laneForRune(r rune) int {
	for i, c := range []rune(*config.Keys) {
		if r == c {
			return i
		}
	}
	return -1
}

func run() error {
	var r render.Renderer = &render.DefaultRenderer{}
	var th theme.Theme = &theme.DefaultTheme{}

	columns, rows, err := term.GetSize(int(os.Stdout.Fd()))
	if nil != err {
		return fmt.Errorf("unable to get terminal size: %w", err)
	}

	var beatmapFile, audioFile string
	if err := filepath.Walk(*config.Directory, func(p string, info os.FileInfo, err error) error {
		if nil != err {
			return err
		}
		switch path.Ext(info.Name()) {
		case ".json":
			beatmapFile = p
		case ".mp3", ".ogg":
			audioFile = p
		}
		return nil
	}); nil != err {
		return fmt.Errorf("unable to walk song directory: %w", err)
	}
	if beatmapFile == "" || audioFile == "" {
		return errors.New("unable to find .json and .mp3/.ogg file in given directory")
	}

	psr := &beatmap.DefaultParser{Processor: newProcessor()}
	bm, err := psr.Parse(beatmapFile)
	if nil != err {
		return err
	}

	speed := (&game.SpeedCalculator{Multiplier: *config.ScrollMultiplier}).
		Speed(bm.Notes, *config.ScrollSpeed)

	src, err := audio.Open(audioFile)
	if nil != err {
		return err
	}
	defer src.Stop()

	clk := clock.New(src)
	correctionBase := int(*config.CorrectionInterval)

	evaluator := score.NewEvaluator()
	lanes := int(*config.LaneCount)
	spacing := 4
	mc := columns >> 1
	laneCol := func(lane int) int {
		return mc + (2*lane-lanes+1)*spacing/2
	}
	sideCol := laneCol(0) - 36
	if sideCol < 2 {
		sideCol = 2
	}
	hitRow := rows - int(*config.BarRow)

	evaluator.Subscribe(func(lane int, rating game.Rating) {
		cr, cg, cb := th.RatingColor(rating)
		msg := fmt.Sprintf("\033[38;2;%v;%v;%vm%v\033[0m", cr, cg, cb, rating)
		r.AddDecoration(hitRow+2, mc-len(rating.String())/2, msg, 30)
	})

	cfg := tile.Config{
		Lanes: lanes,
		Geometry: tile.Geometry{
			SpawnY:         1,
			TargetY:        float64(hitRow),
			MissY:          float64(hitRow) + 1,
			RecycleY:       float64(rows),
			TileHeight:     1,
			MovementBuffer: 2,
		},
		ScrollSpeed: speed,
		LookAhead:   *config.LookAhead,
		PoolSize:    int(*config.PoolSize),
		MaxPoolSize: int(*config.MaxPoolSize),
		Windows: game.Windows{
			Perfect:         *config.PerfectWindow,
			Great:           *config.GreatWindow,
			Cool:            *config.CoolWindow,
			CompensationCap: *config.CompensationCap,
		},
		HoldWindows: game.HoldWindows{
			Perfect: *config.HoldPerfectRatio,
			Great:   *config.HoldGreatRatio,
			Cool:    *config.HoldCoolRatio,
		},
		UpdateBudget: int(*config.UpdateBudget),
		Autoplay:     *config.Autoplay,
	}
	manager := tile.NewManager(cfg, offsetClock{clk, *config.Offset}, func(lane int, rating game.Rating) {
		evaluator.ValidateTap(lane, rating)
	})
	manager.Load(bm.Notes)

	keyChannel, err := keyboard.GetKeys(128)
	if nil != err {
		return fmt.Errorf("unable to open keyboard: %w", err)
	}
	defer func() {
		if err := keyboard.Close(); nil != err {
			log.Println("unable to close keyboard:", err)
		}
	}()

	var evdevChannel chan *input.Event
	if *config.EvdevPath != "" {
		evdevChannel = make(chan *input.Event, 128)
		if err := input.ReadInput(*config.EvdevPath, evdevChannel); nil != err {
			return fmt.Errorf("unable to open input device: %w", err)
		}
	}

	if err := r.Init(); nil != err {
		return err
	}
	defer func() {
		if err := r.Deinit(); nil != err {
			log.Println("unable to restore terminal:", err)
		}
	}()

	go func() {
		time.Sleep(*config.Delay)
		src.Play()
	}()

	type tileRow struct {
		row, col int
	}
	prev := []tileRow{}

	r.RenderLoop(*config.FramePeriod, func(now time.Time, dt time.Duration) bool {
		// Inputs first, so a tap between ticks is judged against
		// the freshest state the player saw.
		for i := 0; i < len(keyChannel); i++ {
			key := <-keyChannel
			if key.Key == keyboard.KeyEsc {
				return false
			}
			if lane := laneForRune(key.Rune); lane >= 0 {
				manager.HandleLaneTouch(lane, true)
			}
		}
		for nil != evdevChannel && len(evdevChannel) > 0 {
			ev := <-evdevChannel
			lane := input.Lane(ev.Code)
			if lane < 0 || lane >= lanes {
				continue
			}
			if ev.Pressed {
				manager.HandleLaneTouch(lane, true)
			} else if ev.Released {
				manager.HandleLaneTouch(lane, false)
			}
		}

		clk.SetCorrectionInterval(manager.Monitor().CorrectionInterval(correctionBase))
		manager.Tick(dt)

		for _, p := range prev {
			r.Fill(p.row, p.col, " ")
		}
		prev = prev[:0]

		for i := 0; i < lanes; i++ {
			r.Fill(hitRow, laneCol(i), th.RenderHitField(i))
		}

		for _, t := range manager.Active() {
			row := int(math.Round(t.Y()))
			if row < 1 || row > rows {
				continue
			}
			col := laneCol(t.Lane())
			switch t.Status() {
			case tile.StatusActive, tile.StatusHolding:
				if t.Note().Kind == game.KindHold {
					body := int(t.Note().Duration.Seconds() * speed)
					for b := 1; b <= body; b++ {
						if row-b < 1 {
							break
						}
						r.Fill(row-b, col, th.RenderHoldBody(t.Lane()))
						prev = append(prev, tileRow{row - b, col})
					}
				}
				r.Fill(row, col, th.RenderTile(t.Lane(), t.Note().Kind))
				prev = append(prev, tileRow{row, col})
			}
		}

		combo := evaluator.Combo()
		r.Fill(10, sideCol, fmt.Sprintf("      Combo:  %6v", combo.Count))
		r.Fill(11, sideCol, fmt.Sprintf("  Max Combo:  %6v", combo.MaxCount))
		r.Fill(12, sideCol, fmt.Sprintf("   Accuracy:  %5v%%", evaluator.Accuracy()))
		r.Fill(13, sideCol, fmt.Sprintf("        FPS:  %6.0f", manager.Monitor().FPS()))
		r.Fill(14, sideCol, fmt.Sprintf("       Pool:  %3v/%v", manager.Pool().Free(), manager.Pool().Size()))
		r.Fill(17, sideCol, fmt.Sprintf("    Perfect:  %6v", combo.PerfectCount))
		r.Fill(18, sideCol, fmt.Sprintf("      Great:  %6v", combo.GreatCount))
		r.Fill(19, sideCol, fmt.Sprintf("       Cool:  %6v", combo.CoolCount))
		r.Fill(20, sideCol, fmt.Sprintf("       Miss:  %6v", combo.MissCount))

		return !manager.Done()
	})

	combo := evaluator.Combo()
	fmt.Printf("%v - %v [%v]\n", bm.Metadata.Artist, bm.Metadata.Title, bm.Metadata.DifficultyName)
	fmt.Printf("   Score: %v\n", evaluator.Score(len(bm.Notes)))
	fmt.Printf("Accuracy: %v%%\n", evaluator.Accuracy())
	fmt.Printf("   Combo: %v/%v\n", combo.MaxCount, len(bm.Notes))
	fmt.Printf(" P/G/C/M: %v/%v/%v/%v\n",
		combo.PerfectCount, combo.GreatCount, combo.CoolCount, combo.MissCount)
	return nil
}

func newProcessor() *game.Processor {
	return &game.Processor{
		LaneCount:     int(*config.LaneCount),
		PitchOffset:   *config.LanePitchOffset,
		HoldThreshold: *config.HoldThreshold,
		TapCap:        *config.TapDurationCap,
		FinalDuration: *config.FinalNoteDuration,
	}
}
