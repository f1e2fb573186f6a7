package main

import (
	"github.com/spf13/pflag"

	"github.com/lernapp-2025/studycards-v3/internal/datasync"
)

// FormatFlag selects an export format on the command line.
type FormatFlag datasync.Format

// Set implements pflag.Value.
func (f *FormatFlag) Set(v string) error {
	format, err := datasync.ParseFormat(v)
	if err != nil {
		return err
	}
	*f = FormatFlag(format)
	return nil
}

// String implements pflag.Value.
func (f *FormatFlag) String() string {
	if f == nil {
		return ""
	}
	return string(*f)
}

// Type implements pflag.Value.
func (f *FormatFlag) Type() string {
	return "format"
}

var (
	_ pflag.Value = (*FormatFlag)(nil)
)
