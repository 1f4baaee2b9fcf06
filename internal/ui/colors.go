package ui

import "github.com/fatih/color"

// Status colors
var (
	InfoColor    = color.New(color.FgCyan).SprintFunc()
	SuccessColor = color.New(color.FgGreen).SprintFunc()
	WarningColor = color.New(color.FgYellow).SprintFunc()
	ErrorColor   = color.New(color.FgRed).SprintFunc()
	DetailColor  = color.New(color.FgHiBlack).SprintFunc()
)

// Report colors
var (
	HeaderColor = color.New(color.FgGreen, color.Bold).SprintFunc()
	ColumnColor = color.New(color.FgBlue, color.Bold).SprintFunc()
	ValueColor  = color.New(color.FgWhite).SprintFunc()
)
