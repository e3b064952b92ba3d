package errors

import (
	"errors"
	"fmt"
)

// Standard sentinel errors for type checking
var (
	ErrImageLoad         = errors.New("image load failed")
	ErrIndexOutOfRange   = errors.New("index out of range")
	ErrUnsupportedFormat = errors.New("unsupported format")
	ErrIO                = errors.New("i/o failure")
	ErrConfig            = errors.New("invalid configuration")
)

// ImageLoadError indicates an image could not be opened or decoded.
type ImageLoadError struct {
	Path string
	Err  error
}

func (e *ImageLoadError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("cannot load image %s: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("cannot load image %s", e.Path)
}

func (e *ImageLoadError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrImageLoad, e.Err}
	}
	return []error{ErrImageLoad}
}

// IndexOutOfRangeError indicates a palette selector outside 1..Length.
// Raw is set when the selector was not a number at all.
type IndexOutOfRangeError struct {
	Index  int
	Raw    string
	Length int
}

func (e *IndexOutOfRangeError) Error() string {
	sel := fmt.Sprintf("%d", e.Index)
	if e.Raw != "" {
		sel = fmt.Sprintf("%q", e.Raw)
	}
	if e.Length == 0 {
		return fmt.Sprintf("invalid palette index %s: no palette available", sel)
	}
	return fmt.Sprintf("invalid palette index %s: expected 1-%d", sel, e.Length)
}

func (e *IndexOutOfRangeError) Unwrap() error {
	return ErrIndexOutOfRange
}

// UnsupportedFormatError indicates an unknown export format token.
type UnsupportedFormatError struct {
	Format string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported export format: %q", e.Format)
}

func (e *UnsupportedFormatError) Unwrap() error {
	return ErrUnsupportedFormat
}

// IOError indicates a read or write failure on a path.
type IOError struct {
	Op   string // "write", "read", "create"
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("failed to %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() []error {
	return []error{ErrIO, e.Err}
}

// ConfigError indicates a configuration key with an unusable value.
type ConfigError struct {
	Key     string
	Message string
}

func (e *ConfigError) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("invalid %s: %s", e.Key, e.Message)
	}
	return e.Message
}

func (e *ConfigError) Unwrap() error {
	return ErrConfig
}

// Helper constructors for common cases

func ImageLoad(path string, err error) error {
	return &ImageLoadError{Path: path, Err: err}
}

func IndexOutOfRange(index, length int) error {
	return &IndexOutOfRangeError{Index: index, Length: length}
}

func InvalidSelector(raw string, length int) error {
	return &IndexOutOfRangeError{Raw: raw, Length: length}
}

func UnsupportedFormat(format string) error {
	return &UnsupportedFormatError{Format: format}
}

func WriteFailed(path string, err error) error {
	return &IOError{Op: "write", Path: path, Err: err}
}

func InvalidConfig(key, message string) error {
	return &ConfigError{Key: key, Message: message}
}

// IsImageLoad checks if an error is an image load error.
func IsImageLoad(err error) bool {
	return errors.Is(err, ErrImageLoad)
}

// IsIndexOutOfRange checks if an error is a bad palette selector.
func IsIndexOutOfRange(err error) bool {
	return errors.Is(err, ErrIndexOutOfRange)
}

// IsUnsupportedFormat checks if an error is an unknown export format.
func IsUnsupportedFormat(err error) bool {
	return errors.Is(err, ErrUnsupportedFormat)
}

// IsIO checks if an error is an i/o failure.
func IsIO(err error) bool {
	return errors.Is(err, ErrIO)
}

// IsConfig checks if an error is a configuration error.
func IsConfig(err error) bool {
	return errors.Is(err, ErrConfig)
}
