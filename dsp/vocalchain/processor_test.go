package vocalchain

import (
	"math"
	"slices"
	"testing"

	"github.com/cwbudde/algo-vocal/dsp/vocal"
	"github.com/cwbudde/algo-vocal/dsp/vocal/human"
	"github.com/cwbudde/algo-vocal/internal/testutil"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
)

const testRate = 44100.0

func sineBuffer(channels, n int) [][]float32 {
	return testutil.Planar(channels, testutil.DeterministicSine(330, testRate, 0.5, n))
}

func TestModuleOrder(t *testing.T) {
	p := New(WithSeed(1))
	want := []string{
		"PitchDriftBrain", "FormantWhispers", "BreathNoiseEngine", "TimingWobble",
		"VolumePersonality", "PorcelainReflections", "SteamModulator",
		"RubberDuckFM", "SoapBarGlitch",
	}

	modules := p.Modules()
	if len(modules) != len(want) {
		t.Fatalf("len(Modules()) = %d, want %d", len(modules), len(want))
	}

	for i, m := range modules {
		if m.Name() != want[i] {
			t.Fatalf("module %d = %q, want %q", i, m.Name(), want[i])
		}

		if m.Enabled() {
			t.Fatalf("%s enabled by default", m.Name())
		}
	}

	if m, ok := p.Lookup("SteamModulator"); !ok || m != vocal.Module(p.SteamModulator()) {
		t.Fatalf("Lookup(SteamModulator) = %v, %v", m, ok)
	}

	if _, ok := p.Lookup("Reverb"); ok {
		t.Fatal("Lookup(Reverb) found a module")
	}
}

func TestDefaults(t *testing.T) {
	p := New()

	if got := p.MasterMix(); got != defaultMasterMix {
		t.Fatalf("MasterMix() = %v, want %v", got, defaultMasterMix)
	}

	if p.SampleRate() != 44100 || p.BlockSize() != 512 || p.Channels() != 2 {
		t.Fatalf("format = %v/%d/%d, want 44100/512/2", p.SampleRate(), p.BlockSize(), p.Channels())
	}

	p.SetMasterMix(3)
	if got := p.MasterMix(); got != 1 {
		t.Fatalf("MasterMix() after 3 = %v, want 1", got)
	}

	p.SetMasterMix(-1)
	if got := p.MasterMix(); got != 0 {
		t.Fatalf("MasterMix() after -1 = %v, want 0", got)
	}
}

func TestAllModulesOnSilence(t *testing.T) {
	p := New(WithSeed(3))
	p.EnableAll(true)

	buf := [][]float32{make([]float32, 512), make([]float32, 512)}
	p.Process(buf)

	for ch := range buf {
		for i, x := range buf[ch] {
			if x != 0 {
				t.Fatalf("buf[%d][%d] = %v, want 0", ch, i, x)
			}
		}
	}
}

// engageAll enables every module with audible, non-noise settings.
func engageAll(p *Processor) {
	p.EnableAll(true)
	p.PitchDriftBrain().SetIntensity(0.5)
	p.FormantWhispers().SetShiftLow(-1)
	p.FormantWhispers().SetShiftHigh(1)
	p.TimingWobble().SetWobbleAmount(1)
	p.VolumePersonality().SetIntensity(1)
	p.PorcelainReflections().SetTileScatter(1)
	p.PorcelainReflections().SetEdgeSlap(1)
	p.SteamModulator().SetHumidity(1)
	p.RubberDuckFM().SetQuackIntensity(1)
	p.SoapBarGlitch().SetSlipperiness(1)
	p.SoapBarGlitch().SetSoapyBlur(1)
}

func TestEngagedModulesOnSilence(t *testing.T) {
	p := New(WithSeed(3))
	p.Prepare(testRate, 512)
	p.SetMasterMix(1)
	engageAll(p)

	for block := range 50 {
		buf := [][]float32{make([]float32, 512), make([]float32, 512)}
		p.Process(buf)

		for ch := range buf {
			for i, x := range buf[ch] {
				if x != 0 {
					t.Fatalf("block %d: buf[%d][%d] = %v, want 0", block, ch, i, x)
				}
			}
		}
	}
}

func TestMasterMixZeroIsDry(t *testing.T) {
	p := New(WithSeed(5))
	p.Prepare(testRate, 256)
	p.EnableAll(true)
	p.VolumePersonality().SetIntensity(1)
	p.PorcelainReflections().SetEdgeSlap(1)
	p.RubberDuckFM().SetQuackIntensity(1)
	p.SetMasterMix(0)

	buf := sineBuffer(2, 2048)
	want := testutil.Clone(buf)

	p.Process(buf)
	testutil.RequireEqual32(t, buf, want)
}

func TestMasterMixOneIsWetChain(t *testing.T) {
	const seed = 7

	p := New(WithSeed(seed))
	p.Prepare(testRate, 256)
	p.SetMasterMix(1)
	p.VolumePersonality().SetEnabled(true)
	p.VolumePersonality().SetIntensity(0.8)

	ref := human.NewVolumePersonality(vocal.WithSeed(seed + 4))
	ref.Prepare(testRate, 256)
	ref.SetEnabled(true)
	ref.SetIntensity(0.8)

	buf := sineBuffer(2, 2048)
	want := testutil.Clone(buf)

	p.Process(buf)

	for pos := 0; pos < 2048; pos += 256 {
		ref.Process([][]float32{want[0][pos : pos+256], want[1][pos : pos+256]})
	}

	testutil.RequireEqual32(t, buf, want)
}

func TestMasterMixBlends(t *testing.T) {
	const seed = 9

	p := New(WithSeed(seed))
	p.Prepare(testRate, 128)
	p.SetMasterMix(0.25)
	p.RubberDuckFM().SetEnabled(true)
	p.RubberDuckFM().SetQuackIntensity(1)

	dry := sineBuffer(2, 1024)
	buf := testutil.Clone(dry)
	wet := testutil.Clone(dry)

	p.Process(buf)

	q := New(WithSeed(seed))
	q.Prepare(testRate, 128)
	q.SetMasterMix(1)
	q.RubberDuckFM().SetEnabled(true)
	q.RubberDuckFM().SetQuackIntensity(1)
	q.Process(wet)

	for ch := range buf {
		for i := range buf[ch] {
			want := 0.75*float64(dry[ch][i]) + 0.25*float64(wet[ch][i])
			if math.Abs(float64(buf[ch][i])-want) > 1e-6 {
				t.Fatalf("buf[%d][%d] = %v, want %v", ch, i, buf[ch][i], want)
			}
		}
	}
}

func TestLongBufferMatchesBlockwise(t *testing.T) {
	setup := func() *Processor {
		p := New(WithSeed(11))
		p.Prepare(testRate, 256)
		p.EnableAll(true)
		p.BreathNoiseEngine().SetBreathIntensity(0.7)
		p.TimingWobble().SetWobbleAmount(0.5)
		p.SteamModulator().SetHumidity(0.6)
		p.SoapBarGlitch().SetSlipperiness(0.8)

		return p
	}

	long := setup()
	blockwise := setup()

	got := sineBuffer(2, 3000)
	want := testutil.Clone(got)

	long.Process(got)

	for pos := 0; pos < 3000; pos += 256 {
		end := min(pos+256, 3000)
		blockwise.Process([][]float32{want[0][pos:end], want[1][pos:end]})
	}

	testutil.RequireEqual32(t, got, want)
	testutil.RequireFinite32(t, got)
}

func TestExtraChannelsUntouched(t *testing.T) {
	p := New(WithSeed(13), WithChannels(1))
	p.SetMasterMix(1)
	p.VolumePersonality().SetEnabled(true)
	p.VolumePersonality().SetIntensity(1)

	buf := sineBuffer(2, 4096)
	want := slices.Clone(buf[1])

	p.Process(buf)

	for i := range want {
		if buf[1][i] != want[i] {
			t.Fatalf("buf[1][%d] = %v, want %v", i, buf[1][i], want[i])
		}
	}
}

func TestLatency(t *testing.T) {
	p := New(WithSeed(1))

	if got := p.Latency(); got != 0 {
		t.Fatalf("Latency() disabled = %d, want 0", got)
	}

	p.EnableAll(true)

	if got := p.Latency(); got != 0 {
		t.Fatalf("Latency() at neutral ranges = %d, want 0", got)
	}

	engageAll(p)

	want := p.PitchDriftBrain().Latency() + p.FormantWhispers().Latency()
	if want == 0 {
		t.Fatal("pitch and formant modules report no latency")
	}

	if got := p.Latency(); got != want {
		t.Fatalf("Latency() = %d, want %d", got, want)
	}
}

func BenchmarkProcessorProcess(b *testing.B) {
	p := New(WithSeed(1))
	p.Prepare(testRate, 512)
	engageAll(p)

	buf := sineBuffer(2, 512)

	b.ReportAllocs()
	b.ResetTimer()

	for range b.N {
		p.Process(buf)
	}
}

func TestResetReproducible(t *testing.T) {
	p := New(WithSeed(17))
	p.Prepare(testRate, 256)
	p.SetMasterMix(1)
	p.EnableAll(true)
	p.BreathNoiseEngine().SetBreathIntensity(1)
	p.VolumePersonality().SetIntensity(1)

	first := sineBuffer(2, 1024)
	p.Process(first)

	p.Reset()

	second := sineBuffer(2, 1024)
	p.Process(second)

	testutil.RequireEqual32(t, second, first)
}

func TestLifecycleLogging(t *testing.T) {
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)

	p := New(WithLogger(logger))

	entry := hook.LastEntry()
	if entry == nil || entry.Message != "vocal processor prepared" {
		t.Fatalf("last entry = %v, want prepare message", entry)
	}

	if got := entry.Data["block_size"]; got != 512 {
		t.Fatalf("block_size = %v, want 512", got)
	}

	hook.Reset()
	p.Process(sineBuffer(2, 512))

	if n := len(hook.AllEntries()); n != 0 {
		t.Fatalf("Process logged %d entries, want 0", n)
	}

	p.Reset()

	entry = hook.LastEntry()
	if entry == nil || entry.Message != "vocal processor reset" || entry.Level != logrus.DebugLevel {
		t.Fatalf("last entry = %v, want debug reset message", entry)
	}
}
