package config

import (
	"log/slog"
	"os"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
)

// Load reads, ownership-checks, decomments, and decodes the configuration
// file at path. On any refusal (missing file, ownership violation) it
// logs a warning and returns NewDefault() rather than failing, mirroring
// the teacher's file.Provider os.IsNotExist fallback generalized to a
// second failure mode.
func Load(path string, log *slog.Logger) (*Root, error) {
	if log == nil {
		log = slog.Default()
	}

	k := koanf.New(".")
	if err := k.Load(structs.Provider(NewDefault(), "koanf"), nil); err != nil {
		return nil, errors.Wrap(err, "config: loading defaults")
	}

	raw, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		log.Warn("configuration file not found, using defaults", "path", path)
		return NewDefault(), nil
	case err != nil:
		return nil, errors.Wrapf(err, "config: reading %s", path)
	}

	if err := checkOwnership(path); err != nil {
		log.Warn("configuration file ownership check failed, using defaults", "path", path, "error", err)
		return NewDefault(), nil
	}

	stripped := stripJSONComments(raw)
	if err := k.Load(rawbytes.Provider(stripped), json.Parser()); err != nil {
		return nil, errors.Wrapf(err, "config: parsing %s", path)
	}

	root := &Root{}
	unmarshalConf := koanf.UnmarshalConf{
		DecoderConfig: &mapstructure.DecoderConfig{
			DecodeHook: newDecodeHooks(),
			Result:     root,
		},
	}
	if err := k.UnmarshalWithConf("", root, unmarshalConf); err != nil {
		return nil, &UnmarshalError{Path: path, Err: err}
	}
	return root, nil
}

// checkOwnership refuses to load a configuration file owned by neither
// root nor the invoking session user, mirroring
// core_configuration.hpp's valid_file_owner check.
func checkOwnership(path string) error {
	owner, err := fileOwnerUID(path)
	if err != nil {
		return errors.Wrap(err, "config: stat")
	}
	expected := currentUID()
	if owner == 0 || owner == expected {
		return nil
	}
	return &FileOwnerError{Path: path, OwnerUID: owner, ExpectedUID: expected}
}
