package encoder

import (
	"fmt"
	"strings"
)

// Registry holds the available encoders per format in priority order.
type Registry struct {
	encoders map[string][]Encoder
}

// NewRegistry keeps the available encoders among all, preserving order.
func NewRegistry(all ...Encoder) *Registry {
	r := &Registry{
		encoders: make(map[string][]Encoder),
	}
	for _, enc := range all {
		if enc.Available() {
			f := enc.Format()
			r.encoders[f] = append(r.encoders[f], enc)
		}
	}
	return r
}

// Defaults lists every encoder the engine knows, best first. cwebpPath may
// be empty to search PATH.
func Defaults(cwebpPath string) []Encoder {
	return []Encoder{
		&CWebPEncoder{Path: cwebpPath},
		&LibWebPEncoder{},
		&PNGEncoder{},
	}
}

// Get returns the preferred encoder for the given format, or nil if unavailable.
func (r *Registry) Get(format string) Encoder {
	encs := r.encoders[strings.ToLower(format)]
	if len(encs) == 0 {
		return nil
	}
	return encs[0]
}

// Available returns the names of all usable encoders as format/name pairs.
func (r *Registry) Available() []string {
	var result []string
	for _, f := range []string{"webp", "png"} {
		for _, enc := range r.encoders[f] {
			result = append(result, f+"/"+enc.Name())
		}
	}
	return result
}

// String returns a summary of available encoders.
func (r *Registry) String() string {
	avail := r.Available()
	if len(avail) == 0 {
		return "no encoders available"
	}
	return fmt.Sprintf("encoders: %s", strings.Join(avail, ", "))
}
