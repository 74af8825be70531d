package cmd

import "github.com/ardnew/acd/pkg"

var (
	ErrMarshal     = pkg.NewError("marshal output")
	ErrWriteConfig = pkg.NewError("write configuration file")
	ErrFileExists  = pkg.NewError("file exists (use --force to overwrite)")
	ErrUnknownType = pkg.NewError("unknown type")
)
