// Package errs holds the sentinel errors shared across the pipeline
// packages, matching the four failure kinds spec.md §7 names.
package errs

import "errors"

var (
	// ErrResourceLoad wraps failures loading an on-disk asset: a
	// dictionary, an ONNX graph, tokenizer.json, model weights.
	ErrResourceLoad = errors.New("resource load error")
	// ErrTokenizer wraps a tokenizer/segmenter-level failure distinct
	// from a missing dictionary entry (e.g. a malformed vocabulary).
	ErrTokenizer = errors.New("tokenizer error")
	// ErrLookupMiss marks a dictionary/table lookup that found nothing;
	// callers log it and fall back, they don't treat it as fatal.
	ErrLookupMiss = errors.New("lookup miss")
	// ErrInference is returned verbatim (wrapped with %w) by the
	// acoustic decode loop on any tensor-runtime failure.
	ErrInference = errors.New("infer error")
)
