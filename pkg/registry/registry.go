// Package registry builds protection engines from a declarative YAML
// stream catalog. Each entry names a stream, picks a profile, and
// overrides whichever parameters differ from the profile defaults.
package registry

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/embedsafe/e2e-go/pkg/e2e"
	"github.com/embedsafe/e2e-go/pkg/internal/logger"
)

// Stream is one catalog entry. Every parameter except Name and Profile is
// optional; omitted values fall back to the profile defaults. Offsets and
// lengths are in bits, as in the profile configs.
type Stream struct {
	Name    string `yaml:"name"`
	Profile string `yaml:"profile"`

	DataID     *uint32 `yaml:"data_id,omitempty"`
	DataIDList []uint8 `yaml:"data_id_list,omitempty"`
	IDMode     string  `yaml:"id_mode,omitempty"`

	Offset        *uint32 `yaml:"offset,omitempty"`
	CRCOffset     *uint32 `yaml:"crc_offset,omitempty"`
	CounterOffset *uint32 `yaml:"counter_offset,omitempty"`
	NibbleOffset  *uint32 `yaml:"nibble_offset,omitempty"`

	DataLength    *uint32 `yaml:"data_length,omitempty"`
	MinDataLength *uint32 `yaml:"min_data_length,omitempty"`
	MaxDataLength *uint32 `yaml:"max_data_length,omitempty"`

	MaxDeltaCounter *uint32 `yaml:"max_delta_counter,omitempty"`
}

// File is a parsed stream catalog.
type File struct {
	Streams []Stream `yaml:"streams"`
}

// Load reads a stream catalog from a YAML file.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read stream catalog: %w", err)
	}
	file, err := Parse(data)
	if err != nil {
		return nil, err
	}
	logger.Info("loaded stream catalog %s (%d streams)", path, len(file.Streams))
	return file, nil
}

// Parse decodes a stream catalog from YAML bytes.
func Parse(data []byte) (*File, error) {
	var file File
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse stream catalog YAML: %w", err)
	}
	if err := file.Validate(); err != nil {
		return nil, err
	}
	return &file, nil
}

// Validate checks catalog shape problems that Build would not reach:
// missing or duplicate names and unknown profile kinds.
func (f *File) Validate() error {
	seen := make(map[string]bool, len(f.Streams))
	for i, s := range f.Streams {
		if s.Name == "" {
			return fmt.Errorf("%w: stream %d has no name", e2e.ErrInvalidConfig, i)
		}
		if seen[s.Name] {
			return fmt.Errorf("%w: duplicate stream name %q", e2e.ErrInvalidConfig, s.Name)
		}
		seen[s.Name] = true
		if !knownProfiles[s.Profile] {
			return fmt.Errorf("%w: stream %q: unknown profile %q",
				e2e.ErrInvalidConfig, s.Name, s.Profile)
		}
	}
	return nil
}

var knownProfiles = map[string]bool{
	"4": true, "4m": true, "5": true, "6": true,
	"7": true, "7m": true, "8": true, "11": true, "22": true,
}

// Build constructs a live engine per stream, keyed by stream name. Any
// invalid entry fails the whole build.
func (f *File) Build() (map[string]e2e.Profile, error) {
	engines := make(map[string]e2e.Profile, len(f.Streams))
	for _, s := range f.Streams {
		p, err := s.Build()
		if err != nil {
			return nil, fmt.Errorf("stream %q: %w", s.Name, err)
		}
		engines[s.Name] = p
	}
	return engines, nil
}

// Build constructs the engine for a single stream.
func (s Stream) Build() (e2e.Profile, error) {
	switch s.Profile {
	case "4":
		cfg, err := s.profile4Config()
		if err != nil {
			return nil, err
		}
		return e2e.NewProfile4(cfg)
	case "4m":
		cfg, err := s.profile4Config()
		if err != nil {
			return nil, err
		}
		return e2e.NewProfile4M(cfg)
	case "5":
		cfg, err := s.profile5Config()
		if err != nil {
			return nil, err
		}
		return e2e.NewProfile5(cfg)
	case "6":
		cfg, err := s.profile6Config()
		if err != nil {
			return nil, err
		}
		return e2e.NewProfile6(cfg)
	case "7":
		return e2e.NewProfile7(s.profile7Config())
	case "7m":
		return e2e.NewProfile7M(s.profile7Config())
	case "8":
		return e2e.NewProfile8(s.profile8Config())
	case "11":
		return s.buildProfile11()
	case "22":
		return s.buildProfile22()
	default:
		return nil, fmt.Errorf("%w: unknown profile %q", e2e.ErrInvalidConfig, s.Profile)
	}
}

func override32(dst *uint32, src *uint32) {
	if src != nil {
		*dst = *src
	}
}

// overrideU16 and overrideU8 narrow a catalog value into a narrower config
// field, rejecting out-of-range values instead of truncating them.
func overrideU16(dst *uint16, src *uint32, name string) error {
	if src == nil {
		return nil
	}
	if *src > 0xFFFF {
		return fmt.Errorf("%w: %s %d does not fit in 16 bits", e2e.ErrInvalidConfig, name, *src)
	}
	*dst = uint16(*src)
	return nil
}

func overrideU8(dst *uint8, src *uint32, name string) error {
	if src == nil {
		return nil
	}
	if *src > 0xFF {
		return fmt.Errorf("%w: %s %d does not fit in 8 bits", e2e.ErrInvalidConfig, name, *src)
	}
	*dst = uint8(*src)
	return nil
}

func (s Stream) profile4Config() (e2e.Profile4Config, error) {
	cfg := e2e.DefaultProfile4Config()
	override32(&cfg.DataID, s.DataID)
	override32(&cfg.Offset, s.Offset)
	override32(&cfg.MinDataLength, s.MinDataLength)
	override32(&cfg.MaxDataLength, s.MaxDataLength)
	err := overrideU16(&cfg.MaxDeltaCounter, s.MaxDeltaCounter, "max_delta_counter")
	return cfg, err
}

func (s Stream) profile5Config() (e2e.Profile5Config, error) {
	cfg := e2e.DefaultProfile5Config()
	if err := overrideU16(&cfg.DataID, s.DataID, "data_id"); err != nil {
		return cfg, err
	}
	override32(&cfg.Offset, s.Offset)
	override32(&cfg.DataLength, s.DataLength)
	err := overrideU8(&cfg.MaxDeltaCounter, s.MaxDeltaCounter, "max_delta_counter")
	return cfg, err
}

func (s Stream) profile6Config() (e2e.Profile6Config, error) {
	cfg := e2e.DefaultProfile6Config()
	if err := overrideU16(&cfg.DataID, s.DataID, "data_id"); err != nil {
		return cfg, err
	}
	override32(&cfg.Offset, s.Offset)
	override32(&cfg.MinDataLength, s.MinDataLength)
	override32(&cfg.MaxDataLength, s.MaxDataLength)
	err := overrideU8(&cfg.MaxDeltaCounter, s.MaxDeltaCounter, "max_delta_counter")
	return cfg, err
}

func (s Stream) profile7Config() e2e.Profile7Config {
	cfg := e2e.DefaultProfile7Config()
	override32(&cfg.DataID, s.DataID)
	override32(&cfg.Offset, s.Offset)
	override32(&cfg.MinDataLength, s.MinDataLength)
	override32(&cfg.MaxDataLength, s.MaxDataLength)
	override32(&cfg.MaxDeltaCounter, s.MaxDeltaCounter)
	return cfg
}

func (s Stream) profile8Config() e2e.Profile8Config {
	cfg := e2e.DefaultProfile8Config()
	override32(&cfg.DataID, s.DataID)
	override32(&cfg.Offset, s.Offset)
	override32(&cfg.MinDataLength, s.MinDataLength)
	override32(&cfg.MaxDataLength, s.MaxDataLength)
	override32(&cfg.MaxDeltaCounter, s.MaxDeltaCounter)
	return cfg
}

func (s Stream) buildProfile11() (e2e.Profile, error) {
	cfg := e2e.DefaultProfile11Config()
	if err := overrideU16(&cfg.DataID, s.DataID, "data_id"); err != nil {
		return nil, err
	}
	switch s.IDMode {
	case "", "nibble":
		cfg.DataIDMode = e2e.DataIDModeNibble
	case "both":
		cfg.DataIDMode = e2e.DataIDModeBoth
	default:
		return nil, fmt.Errorf("%w: unknown id_mode %q", e2e.ErrInvalidConfig, s.IDMode)
	}
	override32(&cfg.CRCOffset, s.CRCOffset)
	override32(&cfg.CounterOffset, s.CounterOffset)
	override32(&cfg.NibbleOffset, s.NibbleOffset)
	override32(&cfg.DataLength, s.DataLength)
	if err := overrideU8(&cfg.MaxDeltaCounter, s.MaxDeltaCounter, "max_delta_counter"); err != nil {
		return nil, err
	}
	return e2e.NewProfile11(cfg)
}

func (s Stream) buildProfile22() (e2e.Profile, error) {
	cfg := e2e.DefaultProfile22Config()
	if s.DataIDList != nil {
		if len(s.DataIDList) != len(cfg.DataIDList) {
			return nil, fmt.Errorf("%w: data_id_list has %d entries, expected %d",
				e2e.ErrInvalidConfig, len(s.DataIDList), len(cfg.DataIDList))
		}
		copy(cfg.DataIDList[:], s.DataIDList)
	}
	override32(&cfg.Offset, s.Offset)
	override32(&cfg.DataLength, s.DataLength)
	if err := overrideU8(&cfg.MaxDeltaCounter, s.MaxDeltaCounter, "max_delta_counter"); err != nil {
		return nil, err
	}
	return e2e.NewProfile22(cfg)
}
