package preset

import (
	"fmt"
	"slices"

	"github.com/cwbudde/algo-vocal/dsp/vocal/character"
	"github.com/cwbudde/algo-vocal/dsp/vocal/human"
	"github.com/cwbudde/algo-vocal/dsp/vocalchain"
)

type setter func(value interface{}) error

func number(set func(float64)) setter {
	return func(value interface{}) error {
		switch v := value.(type) {
		case float64:
			set(v)
		case int:
			set(float64(v))
		default:
			return fmt.Errorf("%w: %v is not a number", ErrInvalidValue, value)
		}

		return nil
	}
}

func flag(set func(bool)) setter {
	return func(value interface{}) error {
		v, ok := value.(bool)
		if !ok {
			return fmt.Errorf("%w: %v is not a boolean", ErrInvalidValue, value)
		}

		set(v)

		return nil
	}
}

func enum[T any](parse func(string) (T, bool), set func(T)) setter {
	return func(value interface{}) error {
		s, ok := value.(string)
		if !ok {
			return fmt.Errorf("%w: %v is not a name", ErrInvalidValue, value)
		}

		v, ok := parse(s)
		if !ok {
			return fmt.Errorf("%w: %q", ErrInvalidValue, s)
		}

		set(v)

		return nil
	}
}

// exclusiveKeys lists, per module, key groups that select competing range
// modes. A preset may use keys from one group only.
var exclusiveKeys = map[string][][]string{
	"PitchDriftBrain": {{"intensity"}, {"cents_low", "cents_high"}},
}

func checkExclusive(name string, params map[string]interface{}) error {
	used := ""

	for _, group := range exclusiveKeys[name] {
		for _, key := range group {
			if _, ok := params[key]; !ok {
				continue
			}

			if used != "" && !slices.Contains(group, used) {
				return fmt.Errorf("%w: %s.%s conflicts with %s.%s", ErrInvalidValue, name, key, name, used)
			}

			used = key
		}
	}

	return nil
}

// parameterTable maps module name and parameter key to the setter on proc.
func parameterTable(proc *vocalchain.Processor) map[string]map[string]setter {
	pitch := proc.PitchDriftBrain()
	formant := proc.FormantWhispers()
	breath := proc.BreathNoiseEngine()
	timing := proc.TimingWobble()
	volume := proc.VolumePersonality()
	porcelain := proc.PorcelainReflections()
	steam := proc.SteamModulator()
	duck := proc.RubberDuckFM()
	soap := proc.SoapBarGlitch()

	return map[string]map[string]setter{
		pitch.Name(): {
			"intensity":  number(pitch.SetIntensity),
			"cents_low":  number(pitch.SetCentsLow),
			"cents_high": number(pitch.SetCentsHigh),
			"lfo_speed":  number(pitch.SetLFOSpeed),
			"randomize":  flag(pitch.SetRandomizeMode),
		},
		formant.Name(): {
			"shift_low":  number(formant.SetShiftLow),
			"shift_high": number(formant.SetShiftHigh),
			"lfo_speed":  number(formant.SetLFOSpeed),
			"randomize":  flag(formant.SetRandomizeMode),
		},
		breath.Name(): {
			"intensity": number(breath.SetBreathIntensity),
			"huff_mode": flag(breath.SetHuffMode),
		},
		timing.Name(): {
			"wobble_amount": number(timing.SetWobbleAmount),
			"swing_feel":    number(timing.SetSwingFeel),
		},
		volume.Name(): {
			"intensity":   number(volume.SetIntensity),
			"personality": enum(human.ParsePersonality, volume.SetPersonality),
		},
		porcelain.Name(): {
			"tile_scatter": number(porcelain.SetTileScatter),
			"edge_slap":    number(porcelain.SetEdgeSlap),
		},
		steam.Name(): {
			"humidity": number(steam.SetHumidity),
			"fog_mode": flag(steam.SetFogMode),
		},
		duck.Name(): {
			"intensity": number(duck.SetQuackIntensity),
			"mode":      enum(character.ParseQuackMode, duck.SetQuackMode),
		},
		soap.Name(): {
			"slipperiness": number(soap.SetSlipperiness),
			"soapy_blur":   number(soap.SetSoapyBlur),
		},
	}
}
