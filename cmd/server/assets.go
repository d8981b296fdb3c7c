package main

import "embed"

// embeddedWeb holds the page templates and static assets.
//
//go:embed web/*
var embeddedWeb embed.FS
