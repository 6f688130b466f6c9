package slug

import (
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"sync"
	"unicode/utf8"
)

// Mode names a preset of formatting defaults.
type Mode string

// Built-in modes. They differ only in which characters survive transliteration:
// pretty keeps ASCII letters and digits, rfc3986 additionally keeps the
// unreserved URI characters "_", "-", "." and "~".
const (
	ModePretty  Mode = "pretty"
	ModeRFC3986 Mode = "rfc3986"
)

// CharMap maps a single code point to its replacement.
type CharMap map[string]string

// MultiCharMap maps a sequence of two or more code points to its replacement.
type MultiCharMap map[string]string

// Preset bundles the defaults of a mode.
type Preset struct {
	Remove       *regexp.Regexp
	CharMap      CharMap
	MultiCharMap MultiCharMap
	Replacement  string
	Lower        bool
	Trim         bool
}

// Defaults holds the mode presets of a store along with the default mode.
// Its CharMap and MultiCharMap are the same maps the presets reference.
type Defaults struct {
	Modes        map[Mode]*Preset
	CharMap      CharMap
	MultiCharMap MultiCharMap
	Mode         Mode
}

// EffectiveOptions is the configuration a single call runs with: the caller's
// overrides merged over the selected preset.
type EffectiveOptions struct {
	Remove       *regexp.Regexp
	CharMap      CharMap
	MultiCharMap MultiCharMap
	Mode         Mode
	Replacement  string
	Lower        bool
	Trim         bool
}

// Store owns substitution tables and mode presets.
//
// The tables are shared by reference: the maps returned by CharMap and
// MultiCharMap are the ones every preset and Defaults point at, so a write
// through any of them is visible through all. Extend and Reset are
// synchronized with concurrent Make calls; writing to the returned maps
// directly is not.
type Store struct {
	charMap      CharMap
	multiCharMap MultiCharMap
	defaults     *Defaults
	logger       *slog.Logger
	mu           sync.RWMutex
}

// NewStore creates a store initialized from the built-in tables.
func NewStore(opts ...StoreOption) *Store {
	o := defaultStoreOptions()
	for _, opt := range opts {
		opt(o)
	}

	s := &Store{
		logger: o.logger,
		defaults: &Defaults{
			Mode:  o.defaultMode,
			Modes: make(map[Mode]*Preset, 2),
		},
	}
	s.install(BuiltinCharMap(), BuiltinMultiCharMap())
	return s
}

func newPreset() *Preset {
	return &Preset{
		Replacement: "-",
		Lower:       true,
		Trim:        true,
	}
}

// install points the store, the built-in presets and Defaults at cm and mcm.
func (s *Store) install(cm CharMap, mcm MultiCharMap) {
	s.charMap = cm
	s.multiCharMap = mcm
	s.defaults.CharMap = cm
	s.defaults.MultiCharMap = mcm

	if s.defaults.Modes == nil {
		s.defaults.Modes = make(map[Mode]*Preset, 2)
	}
	for _, mode := range []Mode{ModeRFC3986, ModePretty} {
		p := s.defaults.Modes[mode]
		if p == nil {
			p = newPreset()
			s.defaults.Modes[mode] = p
		}
		p.CharMap = cm
		p.MultiCharMap = mcm
	}
}

// CharMap returns the live single code point table.
func (s *Store) CharMap() CharMap {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.charMap
}

// MultiCharMap returns the live multi code point table.
func (s *Store) MultiCharMap() MultiCharMap {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.multiCharMap
}

// Defaults returns the live presets. Changes to the returned value affect
// every later call on the store.
func (s *Store) Defaults() *Defaults {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.defaults
}

// Extend merges custom into the live tables. Keys of exactly one code point
// go to the CharMap, longer keys to the MultiCharMap.
func (s *Store) Extend(custom map[string]string) {
	if len(custom) == 0 {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var single, multi int
	for k, v := range custom {
		if utf8.RuneCountInString(k) > 1 {
			s.multiCharMap[k] = v
			multi++
			continue
		}
		s.charMap[k] = v
		single++
	}

	s.logger.Debug("slug tables extended",
		slog.Int("charmap_entries", single),
		slog.Int("multicharmap_entries", multi),
	)
}

// ExtendYAML decodes a table with LoadTable and merges it with Extend.
func (s *Store) ExtendYAML(r io.Reader) error {
	table, err := LoadTable(r)
	if err != nil {
		return err
	}
	s.Extend(table)
	return nil
}

// Reset installs fresh copies of the built-in tables. The previous maps are
// replaced, not cleared, so references taken before Reset keep their contents.
func (s *Store) Reset() {
	cm, mcm := BuiltinCharMap(), BuiltinMultiCharMap()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.install(cm, mcm)
	s.logger.Debug("slug tables reset",
		slog.Int("charmap_entries", len(cm)),
		slog.Int("multicharmap_entries", len(mcm)),
	)
}

// Resolve merges opts over the selected preset without running a
// transformation.
func (s *Store) Resolve(opts ...Option) (EffectiveOptions, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.resolve(newOverrides(opts...))
}

func (s *Store) resolve(o *overrides) (EffectiveOptions, error) {
	mode := o.mode
	if mode == "" {
		mode = s.defaults.Mode
	}
	if mode == "" {
		mode = ModePretty
	}

	preset := s.defaults.Modes[mode]
	if preset == nil {
		return EffectiveOptions{}, fmt.Errorf("%w: %q", ErrUnknownMode, mode)
	}

	eff := EffectiveOptions{
		Mode:         mode,
		Replacement:  preset.Replacement,
		Remove:       preset.Remove,
		Lower:        preset.Lower,
		Trim:         preset.Trim,
		CharMap:      preset.CharMap,
		MultiCharMap: preset.MultiCharMap,
	}
	if o.replacement != nil {
		eff.Replacement = *o.replacement
	}
	if o.remove != nil {
		eff.Remove = *o.remove
	}
	if o.lower != nil {
		eff.Lower = *o.lower
	}
	if o.trim != nil {
		eff.Trim = *o.trim
	}
	if o.hasCharMap {
		eff.CharMap = o.charMap
	}
	if o.hasMultiMap {
		eff.MultiCharMap = o.multiCharMap
	}
	return eff, nil
}

// Make converts text into a slug. The error is non-nil only when the options
// cannot be resolved.
func (s *Store) Make(text string, opts ...Option) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	eff, err := s.resolve(newOverrides(opts...))
	if err != nil {
		return "", err
	}
	return makeString(text, &eff), nil
}

// MakeUTF16 converts UTF-16 code units into a slug. Unpaired surrogates are
// tolerated.
func (s *Store) MakeUTF16(units []uint16, opts ...Option) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	eff, err := s.resolve(newOverrides(opts...))
	if err != nil {
		return "", err
	}
	return makeUTF16(units, &eff), nil
}

// MakeValue converts a textual value into a slug: string, []byte, []rune,
// []uint16 (UTF-16) or fmt.Stringer. Anything else fails with
// ErrInvalidArgument before any work is done.
func (s *Store) MakeValue(v any, opts ...Option) (string, error) {
	switch t := v.(type) {
	case string:
		return s.Make(t, opts...)
	case []byte:
		return s.Make(string(t), opts...)
	case []rune:
		return s.Make(string(t), opts...)
	case []uint16:
		return s.MakeUTF16(t, opts...)
	case fmt.Stringer:
		return s.Make(t.String(), opts...)
	default:
		return "", fmt.Errorf("%w: requires a string argument, received %T", ErrInvalidArgument, v)
	}
}
