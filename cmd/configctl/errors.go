package main

import "errors"

var (
	errPathNotFound = errors.New("no value at path")
	errEmptyPatch   = errors.New("patch must be a non-empty JSON object")
)
