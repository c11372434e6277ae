package config

import "fmt"

// UnmarshalError wraps a failure decoding the configuration tree into
// *Root, carrying the underlying koanf/mapstructure error.
type UnmarshalError struct {
	Path string
	Err  error
}

func (e *UnmarshalError) Error() string {
	return fmt.Sprintf("config: unmarshal %s: %v", e.Path, e.Err)
}

func (e *UnmarshalError) Unwrap() error { return e.Err }

// FileOwnerError reports that the configuration file is owned by neither
// root nor the expected session user, so loading was refused.
type FileOwnerError struct {
	Path        string
	OwnerUID    uint32
	ExpectedUID uint32
}

func (e *FileOwnerError) Error() string {
	return fmt.Sprintf("config: %s is owned by uid %d, expected root or uid %d", e.Path, e.OwnerUID, e.ExpectedUID)
}
