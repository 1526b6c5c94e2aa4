package savel

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Instrument selects the waveform a track is played with. The set is closed:
// adding a waveform means adding a constant here and an entry in the waveform
// table in oscillator.go.
type Instrument int

const (
	Sine Instrument = iota
	Square
	Saw
	numInstruments // keep last
)

var instrumentNames = [numInstruments]string{"sine", "square", "saw"}

func (i Instrument) String() string {
	if i < 0 || i >= numInstruments {
		return fmt.Sprintf("Instrument(%d)", int(i))
	}
	return instrumentNames[i]
}

// MarshalText makes instruments appear as their lower-case names in JSON song
// files instead of bare integers.
func (i Instrument) MarshalText() ([]byte, error) {
	if i < 0 || i >= numInstruments {
		return nil, fmt.Errorf("cannot marshal unknown instrument %d", int(i))
	}
	return []byte(instrumentNames[i]), nil
}

func (i *Instrument) UnmarshalText(text []byte) error {
	for k, name := range instrumentNames {
		if name == string(text) {
			*i = Instrument(k)
			return nil
		}
	}
	return fmt.Errorf("unknown instrument %q", text)
}

// MarshalYAML mirrors MarshalText, as yaml.v3 does not consult
// encoding.TextMarshaler.
func (i Instrument) MarshalYAML() (interface{}, error) {
	b, err := i.MarshalText()
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (i *Instrument) UnmarshalYAML(value *yaml.Node) error {
	var name string
	if err := value.Decode(&name); err != nil {
		return err
	}
	return i.UnmarshalText([]byte(name))
}
