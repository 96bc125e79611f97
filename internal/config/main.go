package config

import (
	"gopkg.in/alecthomas/kingpin.v2"
)

var (
	Directory = kingpin.Arg("directory", "Song directory containing beatmap and audio").Required().ExistingDir()
	Offset    = kingpin.Flag("offset", "Global audio offset").Default("0ms").Short('o').Duration()
	Delay     = kingpin.Flag("delay", "Start delay").Default("1.5s").Short('d').Duration()

	FramePeriod = kingpin.Flag("frame-period", "Render frame period").Default("4ms").Short('p').Duration()
	Keys        = kingpin.Flag("keys", "Lane keys").Default("dfjk").Short('k').String()
	EvdevPath   = kingpin.Flag("evdev", "Raw keyboard device for press/release input").Default("").String()
	Autoplay    = kingpin.Flag("autoplay", "Let the game play itself").Bool()

	LaneCount       = kingpin.Flag("lanes", "Number of lanes").Default("4").Uint()
	LanePitchOffset = kingpin.Flag("pitch-offset", "MIDI pitch of lane 0").Default("96").Int()

	HoldThreshold     = kingpin.Flag("hold-threshold", "Raw durations above this become hold notes").Default("300ms").Duration()
	TapDurationCap    = kingpin.Flag("tap-cap", "Maximum effective tap duration").Default("230ms").Duration()
	FinalNoteDuration = kingpin.Flag("final-duration", "Fallback duration for the last note").Default("200ms").Duration()

	PerfectWindow   = kingpin.Flag("perfect", "Perfect hit window").Default("100ms").Duration()
	GreatWindow     = kingpin.Flag("great", "Great hit window").Default("300ms").Duration()
	CoolWindow      = kingpin.Flag("cool", "Cool hit window").Default("500ms").Duration()
	CompensationCap = kingpin.Flag("compensation-cap", "Maximum frame-time window scaling").Default("2.0").Float64()

	HoldPerfectRatio = kingpin.Flag("hold-perfect", "Held duration ratio for Perfect").Default("0.95").Float64()
	HoldGreatRatio   = kingpin.Flag("hold-great", "Held duration ratio for Great").Default("0.7").Float64()
	HoldCoolRatio    = kingpin.Flag("hold-cool", "Held duration ratio for Cool").Default("0.4").Float64()

	LookAhead        = kingpin.Flag("look-ahead", "How far ahead of the song notes are spawned").Default("2s").Duration()
	ScrollSpeed      = kingpin.Flag("scroll-speed", "Base scroll speed in rows per second").Default("12").Float64()
	ScrollMultiplier = kingpin.Flag("scroll-multiplier", "Tuning multiplier for the computed scroll speed").Default("3.0").Float64()

	PoolSize    = kingpin.Flag("pool-size", "Initial tile pool capacity").Default("32").Uint()
	MaxPoolSize = kingpin.Flag("max-pool-size", "Maximum tile pool capacity").Default("128").Uint()

	UpdateBudget       = kingpin.Flag("update-budget", "Full tile updates per frame at high FPS").Default("24").Uint()
	CorrectionInterval = kingpin.Flag("correction-interval", "Audio clock correction every N estimates").Default("30").Uint()

	BarRow = kingpin.Flag("bar-row", "Console rows between hit bar and bottom edge").Default("6").Uint()
)

func Parse() {
	kingpin.Version("0.1.0")
	kingpin.Parse()
}
