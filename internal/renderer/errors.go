package renderer

import "errors"

// The closed set of failure kinds a render can surface. Callers match with
// errors.Is and decide per kind whether the fault is the client's (bad
// signature, unknown form type) or the deployment's (config, fonts, backend).
var (
	ErrConfiguration    = errors.New("renderer configuration unreadable")
	ErrTemplateNotFound = errors.New("form template not found")
	ErrInvalidSignature = errors.New("invalid signature image")
	ErrFont             = errors.New("font unavailable")
	ErrRender           = errors.New("document serialization failed")
)
