package reflow

// ConvertOptions holds the settings a Converter applies to its page.
type ConvertOptions struct {
	config   Config
	useLines bool
}

// defaultOptions returns the default conversion options.
func defaultOptions() ConvertOptions {
	return ConvertOptions{
		config: DefaultConfig(),
	}
}

// clone creates a deep copy of ConvertOptions.
func (o ConvertOptions) clone() ConvertOptions {
	return ConvertOptions{
		config:   o.config.clone(),
		useLines: o.useLines,
	}
}
