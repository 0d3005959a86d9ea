package params

// Builder accumulates validated parameters. A rejected setter returns an
// *webperr.InvalidOptionError and leaves the builder as it was, so Build
// never sees an unvalidated value.
type Builder struct {
	p Params
}

// NewBuilder starts from Default.
func NewBuilder() *Builder {
	return &Builder{p: Default()}
}

// From starts from an existing value.
func From(p Params) *Builder {
	return &Builder{p: p}
}

func (b *Builder) SetQuality(v int) error {
	if err := checkRange("quality", v, MinQuality, MaxQuality); err != nil {
		return err
	}
	b.p.quality = v
	return nil
}

func (b *Builder) SetCompression(v int) error {
	if err := checkRange("compression", v, MinCompression, MaxCompression); err != nil {
		return err
	}
	b.p.compression = v
	return nil
}

// SetMaxWidth bounds the output width. 0 is rejected here: "unconstrained"
// is only reachable through the defaults.
func (b *Builder) SetMaxWidth(v int) error {
	if err := checkRange("max width", v, MinDimension, MaxDimension); err != nil {
		return err
	}
	b.p.maxWidth = v
	return nil
}

func (b *Builder) SetMaxHeight(v int) error {
	if err := checkRange("max height", v, MinDimension, MaxDimension); err != nil {
		return err
	}
	b.p.maxHeight = v
	return nil
}

// SetJpegScaling asks the engine to downscale while decoding JPEG.
func (b *Builder) SetJpegScaling(on bool) *Builder { b.p.jpegScaling = on; return b }

func (b *Builder) SetLossless(on bool) *Builder      { b.p.lossless = on; return b }
func (b *Builder) SetMultithreaded(on bool) *Builder { b.p.multithreaded = on; return b }
func (b *Builder) SetPNG(on bool) *Builder           { b.p.png = on; return b }
func (b *Builder) SetJPEG(on bool) *Builder          { b.p.jpeg = on; return b }

// Build returns the current value. The builder stays usable.
func (b *Builder) Build() Params {
	return b.p
}
